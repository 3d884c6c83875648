package auth0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// commandRunner executes an external command and returns its stdout. Injected
// into the Resolver so tests can fake subprocess behavior.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// runCommand is the production commandRunner. The context deadline kills the
// subprocess on expiry; the known failure mode of the auth0 CLI is hanging on
// an interactive browser login rather than returning an error.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s timed out and was killed: %w", name, ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s failed: %s", name, msg)
	}
	return stdout.Bytes(), nil
}

// parseTokenOutput extracts a bearer token from CLI stdout. The CLI prints
// either the raw token, a quoted token, or a small JSON object with an
// access_token field depending on version.
func parseTokenOutput(output []byte) (string, error) {
	text := strings.TrimSpace(string(output))
	if text == "" {
		return "", errors.New("empty token output")
	}

	if strings.HasPrefix(text, "{") {
		var body struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal([]byte(text), &body); err != nil {
			return "", fmt.Errorf("unparseable token output: %w", err)
		}
		if body.AccessToken == "" {
			return "", errors.New("token output JSON has no access_token")
		}
		return body.AccessToken, nil
	}

	text = strings.Trim(text, `"'`)
	if text == "" {
		return "", errors.New("empty token output")
	}
	return text, nil
}

// cliTenant is one entry of `auth0 tenants list --json`.
type cliTenant struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// parseTenantListOutput picks the active tenant, or the first one when none is
// marked active.
func parseTenantListOutput(output []byte) (string, error) {
	var tenants []cliTenant
	if err := json.Unmarshal(bytes.TrimSpace(output), &tenants); err != nil {
		return "", fmt.Errorf("unparseable tenant list: %w", err)
	}
	if len(tenants) == 0 {
		return "", errors.New("tenant list is empty")
	}
	for _, t := range tenants {
		if t.Active && t.Name != "" {
			return t.Name, nil
		}
	}
	if tenants[0].Name == "" {
		return "", errors.New("tenant list has no usable entries")
	}
	return tenants[0].Name, nil
}
