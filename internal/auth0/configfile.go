package auth0

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// errNoConfigCredential is returned when no config file yields a usable token.
var errNoConfigCredential = errors.New("no usable credential in auth0 config files")

// tenantConfig is one entry in the auth0 CLI config "tenants" map.
type tenantConfig struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Domain      string    `json:"domain"`
}

// cliConfig mirrors the on-disk auth0 CLI configuration file. The format is
// owned by the CLI, not by this server; only the fields needed for credential
// extraction are modeled.
type cliConfig struct {
	AccessToken   string                  `json:"access_token"`
	DefaultTenant string                  `json:"default_tenant"`
	Tenants       map[string]tenantConfig `json:"tenants"`
}

// configFilePaths lists the conventional per-user locations of the auth0 CLI
// configuration, in the order they are tried.
func configFilePaths(home string) []string {
	return []string{
		filepath.Join(home, ".config", "auth0", "config.json"),
		filepath.Join(home, ".auth0", "config.json"),
	}
}

func loadCLIConfig(path string) (*cliConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg cliConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// credential extracts a token, domain and tenant name from the config.
// A top-level access_token wins; otherwise the named tenant entry is used,
// defaulting to the config's default_tenant. Entries with a known-past
// expires_at are skipped.
func (c *cliConfig) credential(tenantName string, now time.Time) (token, domain, tenant string, ok bool) {
	tenant = tenantName
	if tenant == "" {
		tenant = c.DefaultTenant
	}

	entry, haveEntry := c.Tenants[tenant]
	if haveEntry {
		domain = entry.Domain
		if domain == "" {
			domain = FormatDomain(tenant)
		}
	}

	if c.AccessToken != "" {
		return c.AccessToken, domain, tenant, true
	}

	if !haveEntry || entry.AccessToken == "" {
		return "", "", "", false
	}
	if !entry.ExpiresAt.IsZero() && !now.Before(entry.ExpiresAt) {
		return "", "", "", false
	}
	return entry.AccessToken, domain, tenant, true
}

// credentialFromConfigFiles tries each candidate config file in order and
// returns the first usable credential.
func credentialFromConfigFiles(home, tenantName string, now time.Time) (token, domain, tenant string, err error) {
	for _, path := range configFilePaths(home) {
		cfg, loadErr := loadCLIConfig(path)
		if loadErr != nil {
			continue
		}
		if tok, dom, ten, ok := cfg.credential(tenantName, now); ok {
			return tok, dom, ten, nil
		}
	}
	return "", "", "", errNoConfigCredential
}
