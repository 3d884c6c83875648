package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bharath31/auth0-mcp-server/internal/auth0"
	"github.com/bharath31/auth0-mcp-server/internal/logging"
	"github.com/bharath31/auth0-mcp-server/internal/tools"
)

// errExit is a sentinel error used to signal REPL exit
var errExit = errors.New("exit")

// REPL is an interactive shell for invoking Auth0 tools locally, without an
// MCP client attached. It drives the same dispatcher the stdio server uses.
type REPL struct {
	dispatcher *Dispatcher
	resolver   *auth0.Resolver
	logger     *logging.Logger
	rl         *readline.Instance
}

// NewREPL creates a new REPL instance.
func NewREPL(dispatcher *Dispatcher, resolver *auth0.Resolver, logger *logging.Logger) *REPL {
	return &REPL{
		dispatcher: dispatcher,
		resolver:   resolver,
		logger:     logger,
	}
}

// Run starts the REPL loop.
func (r *REPL) Run(ctx context.Context) error {
	historyFile := filepath.Join(os.TempDir(), ".auth0_mcp_history")

	config := &readline.Config{
		Prompt:          "auth0> ",
		HistoryFile:     historyFile,
		AutoComplete:    r.createCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer func() { _ = rl.Close() }()
	r.rl = rl

	r.logger.Info("Auth0 tool REPL started. Type 'help' for available commands. Use TAB for completion.")
	fmt.Println()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("REPL shutting down...")
			return nil
		default:
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				continue
			}
		} else if err == io.EOF {
			r.logger.Info("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if err := r.executeCommand(ctx, input); err != nil {
			if errors.Is(err, errExit) {
				r.logger.Info("Goodbye!")
				return nil
			}
			r.logger.Error("%v", err)
		}

		fmt.Println()
	}
}

func (r *REPL) executeCommand(ctx context.Context, input string) error {
	parts := strings.SplitN(input, " ", 3)
	command := parts[0]

	switch command {
	case "help", "?":
		r.printHelp()
		return nil
	case "exit", "quit":
		return errExit
	case "tools":
		r.handleTools()
		return nil
	case "schema":
		if len(parts) < 2 {
			return errors.New("usage: schema <tool>")
		}
		return r.handleSchema(parts[1])
	case "call":
		if len(parts) < 2 {
			return errors.New("usage: call <tool> [json-arguments]")
		}
		argsStr := ""
		if len(parts) == 3 {
			argsStr = parts[2]
		}
		return r.handleCall(ctx, parts[1], argsStr)
	case "creds":
		return r.handleCreds(ctx)
	case "refresh":
		r.resolver.InvalidateCache()
		return r.handleCreds(ctx)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", command)
	}
}

func (r *REPL) printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  tools                        List all Auth0 tools")
	fmt.Println("  schema <tool>                Show the input schema for a tool")
	fmt.Println("  call <tool> [json]           Invoke a tool with JSON arguments")
	fmt.Println("  creds                        Show the resolved tenant credentials")
	fmt.Println("  refresh                      Invalidate the token cache and re-resolve")
	fmt.Println("  help, ?                      Show this help")
	fmt.Println("  exit, quit                   Leave the REPL")
}

func (r *REPL) handleTools() {
	for _, tool := range tools.All() {
		fmt.Printf("  %-32s %s\n", tool.Definition.Name, tool.Definition.Description)
	}
}

func (r *REPL) handleSchema(name string) error {
	for _, tool := range tools.All() {
		if tool.Definition.Name != name {
			continue
		}
		data, err := json.MarshalIndent(tool.Definition.InputSchema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	return fmt.Errorf("tool not found: %s", name)
}

func (r *REPL) handleCall(ctx context.Context, name, argsStr string) error {
	var args map[string]interface{}
	if argsStr != "" {
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			fmt.Printf("Example: call %s {\"per_page\": 5}\n", name)
			return fmt.Errorf("invalid JSON arguments: %w", err)
		}
	}

	fmt.Printf("Executing %s...\n", name)
	displayResult(r.dispatcher.Dispatch(ctx, name, args))
	return nil
}

func (r *REPL) handleCreds(ctx context.Context) error {
	cred, err := r.resolver.Resolve(ctx, false)
	if err != nil {
		return err
	}
	fmt.Printf("Tenant:  %s\n", cred.TenantName)
	fmt.Printf("Domain:  %s\n", cred.Domain)
	fmt.Printf("Token:   %s\n", redactToken(cred.Token))
	return nil
}

// displayResult prints the text content of a tool result.
func displayResult(result *mcp.CallToolResult) {
	if result.IsError {
		fmt.Println("Tool returned an error:")
	}
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			fmt.Println(textContent.Text)
		}
	}
}

// redactToken keeps just enough of the token to recognize it.
func redactToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// createCompleter creates the tab completion configuration.
func (r *REPL) createCompleter() *readline.PrefixCompleter {
	toolItems := make([]readline.PrefixCompleterInterface, 0, len(tools.All()))
	for _, tool := range tools.All() {
		toolItems = append(toolItems, readline.PcItem(tool.Definition.Name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("?"),
		readline.PcItem("tools"),
		readline.PcItem("schema", toolItems...),
		readline.PcItem("call", toolItems...),
		readline.PcItem("creds"),
		readline.PcItem("refresh"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}

// filterInput filters input characters for readline.
func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
