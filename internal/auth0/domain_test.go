package auth0

import "testing"

func TestFormatDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare tenant label gets suffix",
			input:    "my-tenant",
			expected: "my-tenant.us.auth0.com",
		},
		{
			name:     "fully qualified domain unchanged",
			input:    "my-tenant.eu.auth0.com",
			expected: "my-tenant.eu.auth0.com",
		},
		{
			name:     "custom domain unchanged",
			input:    "login.example.com",
			expected: "login.example.com",
		},
		{
			name:     "whitespace trimmed",
			input:    "  my-tenant  ",
			expected: "my-tenant.us.auth0.com",
		},
		{
			name:     "empty stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDomain(tt.input); got != tt.expected {
				t.Errorf("FormatDomain(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatDomainIdempotent(t *testing.T) {
	for _, input := range []string{"my-tenant", "my-tenant.us.auth0.com", "login.example.com", ""} {
		once := FormatDomain(input)
		twice := FormatDomain(once)
		if once != twice {
			t.Errorf("FormatDomain not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
