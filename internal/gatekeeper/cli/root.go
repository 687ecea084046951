// Package cli is the gatekeeper command line.
package cli

import (
	"github.com/aussiebroadwan/gatekeeper/internal/gatekeeper/app"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the gatekeeper command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gatekeeper",
		Short: "Bearer token gate for the casting agency API",
		Long: "gatekeeper verifies identity-provider access tokens against the provider's JWKS\n" +
			"and enforces per-route permissions in front of an upstream application.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newVerifyCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the gatekeeper version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("%s\n", app.BuildVersion)
		},
	})

	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gate HTTP service",
		Long:  "Run the gate HTTP service. Configuration comes from GATEKEEPER_* environment variables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(cmd.Context(), app.LoadConfig())
			if err != nil {
				return err
			}
			return application.Run()
		},
	}
}
