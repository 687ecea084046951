/*
Package authsdk is a small client for services sitting behind the gatekeeper.

# Overview

SDKClient talks to a gatekeeper instance: the health checks, the session
endpoint and the proxied resource routes. Access tokens come from the
identity provider, the SDK never mints or refreshes them.

	client := authsdk.NewSDKClient("https://gate.example.com")

	// Check service health
	health, err := client.GetReadiness(ctx)

	// Who am I, and what may I do?
	session, err := client.GetSession(ctx, accessToken)
	fmt.Println(session.Subject, session.Permissions)

	// Call a protected route through the gate
	resp, err := client.Do(ctx, accessToken, http.MethodGet, "/actors", nil)

# Error Handling

Denials come back as *APIError carrying the HTTP status, the public message
from the JSON body and the WWW-Authenticate challenge:

	_, err := client.GetSession(ctx, expiredToken)
	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Message == authsdk.MessageTokenExpired {
		// fetch a fresh token from the provider
	}
*/
package authsdk
