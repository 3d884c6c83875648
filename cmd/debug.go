package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bharath31/auth0-mcp-server/internal/server"
)

// newDebugCmd starts an interactive REPL that invokes the Auth0 tools
// directly, without an MCP client attached. Useful for verifying credentials
// and trying tool calls before wiring the server into an assistant.
func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Interactively invoke Auth0 tools without an MCP client",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigChan
				cancel()
			}()

			logger := newLogger()
			dispatcher, resolver := newDispatcher(logger)

			repl := server.NewREPL(dispatcher, resolver, logger)
			return repl.Run(ctx)
		},
	}
}
