package auth0

import "strings"

// defaultDomainSuffix is appended to bare tenant labels that are not already
// fully-qualified Auth0 hosts.
const defaultDomainSuffix = ".us.auth0.com"

// FormatDomain normalizes a tenant domain into a fully-qualified Auth0 host.
// A value that already contains a dot is returned unchanged, so the function
// is idempotent; a bare tenant label gets the default regional suffix appended
// exactly once.
func FormatDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return ""
	}
	if strings.Contains(domain, ".") {
		return domain
	}
	return domain + defaultDomainSuffix
}
