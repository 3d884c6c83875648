// Package auth0 resolves Management API credentials from a layered set of
// sources: explicit environment variables, an in-memory token cache, the
// auth0 CLI, and the CLI's on-disk configuration files.
package auth0

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bharath31/auth0-mcp-server/internal/logging"
)

const (
	// cacheTTL stays below the 60 minute lifetime of Management API tokens.
	cacheTTL = 55 * time.Minute

	// jwtExpiryMargin is subtracted from a token's own exp claim when that
	// expiry is sooner than cacheTTL.
	jwtExpiryMargin = 5 * time.Minute

	// subprocessTimeout bounds every auth0 CLI invocation. On expiry the
	// process is killed and the source is treated as failed, not retried.
	subprocessTimeout = 10 * time.Second

	// cliName is the PATH-resolved auth0 CLI binary.
	cliName = "auth0"
)

// Environment variables consumed by the resolver.
const (
	EnvToken      = "AUTH0_TOKEN"
	EnvDomain     = "AUTH0_DOMAIN"
	EnvTenantName = "AUTH0_TENANT_NAME"
	EnvCLIPath    = "AUTH0_CLI_PATH"
	EnvDebug      = "AUTH0_MCP_DEBUG"
)

var (
	// ErrTokenRetrieval is returned when every token source is exhausted.
	ErrTokenRetrieval = errors.New("failed to retrieve an Auth0 Management API token from any source")

	// ErrDomainResolution is returned when no source yields a tenant domain.
	ErrDomainResolution = errors.New("failed to determine the Auth0 tenant domain")
)

// Credential is a resolved bearer token plus the tenant it belongs to.
// Credentials are replaced wholesale on refresh, never partially updated.
type Credential struct {
	Token      string
	Domain     string
	TenantName string
}

// Valid reports whether the credential can be used for a Management API call.
func (c Credential) Valid() bool {
	return c.Token != "" && c.Domain != ""
}

// Resolver obtains credentials from the highest-priority available source.
// It owns the token cache exclusively; callers see only extracted tokens.
type Resolver struct {
	cache  *TokenCache
	logger *logging.Logger

	lookupEnv  func(string) string
	runCommand commandRunner
	homeDir    string
	timeout    time.Duration
	now        func() time.Time

	// Domain is stable for the life of a tenant session, so the last
	// resolved value is kept to avoid a CLI subprocess per dispatch.
	lastDomain string
	lastTenant string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnvLookup replaces the environment lookup, for tests.
func WithEnvLookup(fn func(string) string) Option {
	return func(r *Resolver) { r.lookupEnv = fn }
}

// WithCommandRunner replaces the subprocess runner, for tests.
func WithCommandRunner(fn commandRunner) Option {
	return func(r *Resolver) { r.runCommand = fn }
}

// WithHomeDir overrides the directory searched for CLI config files.
func WithHomeDir(dir string) Option {
	return func(r *Resolver) { r.homeDir = dir }
}

// WithSubprocessTimeout overrides the per-invocation CLI timeout.
func WithSubprocessTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// WithClock replaces the time source, for tests.
func WithClock(fn func() time.Time) Option {
	return func(r *Resolver) { r.now = fn }
}

// NewResolver creates a Resolver around the given cache. The cache must not
// be shared with another Resolver.
func NewResolver(cache *TokenCache, logger *logging.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		cache:      cache,
		logger:     logger,
		lookupEnv:  os.Getenv,
		runCommand: runCommand,
		timeout:    subprocessTimeout,
		now:        time.Now,
	}
	if home, err := os.UserHomeDir(); err == nil {
		r.homeDir = home
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a usable credential, consulting sources in priority order:
// environment, cache, auth0 CLI, CLI config files. forceRefresh bypasses the
// cache but not the environment, since env-provided credentials represent
// explicit operator intent.
func (r *Resolver) Resolve(ctx context.Context, forceRefresh bool) (Credential, error) {
	envToken := r.lookupEnv(EnvToken)
	envDomain := r.lookupEnv(EnvDomain)

	if envToken != "" && envDomain != "" {
		r.logger.Debug("using credentials from environment")
		return Credential{
			Token:      envToken,
			Domain:     FormatDomain(envDomain),
			TenantName: r.lookupEnv(EnvTenantName),
		}, nil
	}

	token, err := r.resolveToken(ctx, forceRefresh, envToken)
	if err != nil {
		return Credential{}, err
	}

	domain, tenant, err := r.resolveDomain(ctx, forceRefresh, envDomain)
	if err != nil {
		return Credential{}, err
	}

	return Credential{Token: token, Domain: domain, TenantName: tenant}, nil
}

// InvalidateCache drops the cached token so the next Resolve walks the chain.
func (r *Resolver) InvalidateCache() {
	r.cache.Invalidate()
}

func (r *Resolver) resolveToken(ctx context.Context, forceRefresh bool, envToken string) (string, error) {
	if envToken != "" {
		r.logger.Debug("using token from %s", EnvToken)
		return envToken, nil
	}

	if !forceRefresh {
		if token, ok := r.cache.Get(); ok {
			r.logger.Debug("using cached token")
			return token, nil
		}
	}

	if token, err := r.tokenFromCLI(ctx); err == nil {
		r.cache.Set(token, r.tokenExpiry(token))
		return token, nil
	} else {
		r.logger.Debug("CLI token retrieval failed: %v", err)
	}

	if token, _, _, err := credentialFromConfigFiles(r.homeDir, r.lookupEnv(EnvTenantName), r.now()); err == nil {
		r.logger.Debug("using token from auth0 CLI config file")
		r.cache.Set(token, r.tokenExpiry(token))
		return token, nil
	} else {
		r.logger.Debug("config file token retrieval failed: %v", err)
	}

	return "", fmt.Errorf("%w: set %s and %s, or run `auth0 login`", ErrTokenRetrieval, EnvToken, EnvDomain)
}

func (r *Resolver) resolveDomain(ctx context.Context, forceRefresh bool, envDomain string) (domain, tenant string, err error) {
	if envDomain != "" {
		return FormatDomain(envDomain), r.lookupEnv(EnvTenantName), nil
	}

	if !forceRefresh && r.lastDomain != "" {
		return r.lastDomain, r.lastTenant, nil
	}

	if name, cliErr := r.tenantFromCLI(ctx); cliErr == nil {
		r.lastDomain = FormatDomain(name)
		r.lastTenant = name
		return r.lastDomain, r.lastTenant, nil
	} else {
		r.logger.Debug("CLI tenant lookup failed: %v", cliErr)
	}

	if _, dom, ten, cfgErr := credentialFromConfigFiles(r.homeDir, r.lookupEnv(EnvTenantName), r.now()); cfgErr == nil && dom != "" {
		r.lastDomain = FormatDomain(dom)
		r.lastTenant = ten
		return r.lastDomain, r.lastTenant, nil
	}

	return "", "", fmt.Errorf("%w: set %s or run `auth0 login`", ErrDomainResolution, EnvDomain)
}

// cliCandidates orders the CLI binaries to try. With AUTH0_MCP_DEBUG set the
// local (development) binary is preferred; otherwise the PATH-resolved binary
// is tried first.
func (r *Resolver) cliCandidates() []string {
	local := r.lookupEnv(EnvCLIPath)
	if local == "" {
		return []string{cliName}
	}
	if isTruthy(r.lookupEnv(EnvDebug)) {
		return []string{local, cliName}
	}
	return []string{cliName, local}
}

func (r *Resolver) tokenFromCLI(ctx context.Context) (string, error) {
	return r.runCLI(ctx, parseTokenOutput, "api", "get-token")
}

func (r *Resolver) tenantFromCLI(ctx context.Context) (string, error) {
	return r.runCLI(ctx, parseTenantListOutput, "tenants", "list", "--json")
}

func (r *Resolver) runCLI(ctx context.Context, parse func([]byte) (string, error), args ...string) (string, error) {
	var lastErr error
	for _, bin := range r.cliCandidates() {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		output, err := r.runCommand(callCtx, bin, args...)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}
		value, err := parse(output)
		if err != nil {
			lastErr = err
			continue
		}
		return value, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no auth0 CLI available")
	}
	return "", lastErr
}

// tokenExpiry computes the cache expiry for a freshly resolved token: the
// conservative TTL, or the token's own exp claim minus a margin when sooner.
func (r *Resolver) tokenExpiry(token string) time.Time {
	fallback := r.now().Add(cacheTTL)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	if claimed := exp.Time.Add(-jwtExpiryMargin); claimed.Before(fallback) {
		return claimed
	}
	return fallback
}

func isTruthy(value string) bool {
	switch value {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
