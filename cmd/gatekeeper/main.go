package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aussiebroadwan/gatekeeper/internal/gatekeeper/cli"
)

//go:generate swag init --dir ../../ --generalInfo cmd/gatekeeper/main.go --output ../../api/gatekeeper --packageName gatekeeper --outputTypes go

// main runs the gatekeeper command line.
//
//	@title						gatekeeper
//	@version					1.0
//	@description				Bearer token gate in front of the casting agency API. Tokens are verified against the identity provider's JWKS.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				"Bearer <access token>"
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, cli.ErrDenied) {
			fmt.Fprintf(os.Stderr, "gatekeeper: %v\n", err)
		}
		os.Exit(1)
	}
}
