// Package cmd implements the CLI surface of the Auth0 MCP server.
package cmd

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bharath31/auth0-mcp-server/internal/auth0"
	"github.com/bharath31/auth0-mcp-server/internal/logging"
	"github.com/bharath31/auth0-mcp-server/internal/server"
)

var (
	version        string
	verbose        bool
	noColor        bool
	requestTimeout time.Duration
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "auth0-mcp-server",
	Short: "MCP server for the Auth0 Management API",
	Long: `auth0-mcp-server exposes Auth0 Management API operations as MCP tools
for AI assistants like Claude or Cursor.

The server speaks JSON-RPC over stdin/stdout; configure it in your AI
assistant's MCP settings. All diagnostics go to stderr, never stdout.

Credentials are resolved in priority order from:
1. AUTH0_TOKEN and AUTH0_DOMAIN environment variables
2. The in-memory token cache
3. The auth0 CLI (AUTH0_CLI_PATH overrides the binary location)
4. The auth0 CLI config files under your home directory

Tools cover applications, resource servers, actions, logs and forms.`,
	RunE: runServer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version for the application
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().DurationVar(&requestTimeout, "timeout", 15*time.Second, "Timeout for Management API requests")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDebugCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}

// newLogger builds the shared stderr logger from the persistent flags.
func newLogger() *logging.Logger {
	return logging.NewLogger(verbose, !noColor)
}

// newDispatcher wires the credential resolver into a request dispatcher.
func newDispatcher(logger *logging.Logger) (*server.Dispatcher, *auth0.Resolver) {
	resolver := auth0.NewResolver(auth0.NewTokenCache(), logger)
	dispatcher := server.NewDispatcher(resolver, logger,
		server.WithRequestTimeout(requestTimeout),
	)
	return dispatcher, resolver
}

func runServer(cmd *cobra.Command, args []string) error {
	// Optional .env in the working directory; a missing file is fine.
	_ = godotenv.Load()

	logger := newLogger()
	dispatcher, _ := newDispatcher(logger)

	srv := server.New(dispatcher, version, logger)
	return srv.ServeStdio()
}
