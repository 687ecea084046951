package http

import "net/http"

// Route is a protected resource route and the permission it demands.
type Route struct {
	Method     string
	Path       string
	Permission string
}

// Pattern returns the ServeMux pattern, e.g. "PATCH /actors/{id}".
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// ResourceRoutes is the casting agency API behind the gate.
var ResourceRoutes = []Route{
	{http.MethodGet, "/actors", "get:actors"},
	{http.MethodPost, "/actors", "post:actors"},
	{http.MethodPatch, "/actors/{id}", "patch:actors"},
	{http.MethodDelete, "/actors/{id}", "delete:actors"},

	{http.MethodGet, "/movies", "get:movies"},
	{http.MethodPost, "/movies", "post:movies"},
	{http.MethodPatch, "/movies/{id}", "patch:movies"},
	{http.MethodDelete, "/movies/{id}", "delete:movies"},
}
