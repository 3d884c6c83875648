package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bharath31/auth0-mcp-server/internal/auth0"
)

// newRunCmd starts the stdio server after seeding tenant credentials from
// positional arguments. This is the form MCP client configs typically use:
//
//	auth0-mcp-server run my-tenant.us.auth0.com <token>
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [domain] [token]",
		Short: "Start the MCP server, optionally seeding tenant credentials",
		Long: `Start the MCP server over stdio. A domain and token given as arguments
are exported as AUTH0_DOMAIN and AUTH0_TOKEN before the server starts, taking
priority over every other credential source.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if err := os.Setenv(auth0.EnvDomain, args[0]); err != nil {
					return err
				}
			}
			if len(args) > 1 {
				if err := os.Setenv(auth0.EnvToken, args[1]); err != nil {
					return err
				}
			}
			return runServer(cmd, nil)
		},
	}
}
