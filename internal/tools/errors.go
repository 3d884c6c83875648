package tools

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
)

// networkErrorKind is the closed classification of network-level failures.
// One function classifies at the HTTP boundary; handlers consume the result
// uniformly instead of re-probing error values.
type networkErrorKind int

const (
	networkTimeout networkErrorKind = iota
	networkDNSFailure
	networkConnectionRefused
	networkConnectionReset
	networkTLSError
	networkOther
)

func classifyNetworkError(err error) networkErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return networkTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return networkTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return networkDNSFailure
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return networkConnectionRefused
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return networkConnectionReset
	}
	var recordErr tls.RecordHeaderError
	var certErr *tls.CertificateVerificationError
	var unknownAuthErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	if errors.As(err, &recordErr) || errors.As(err, &certErr) ||
		errors.As(err, &unknownAuthErr) || errors.As(err, &hostErr) {
		return networkTLSError
	}
	return networkOther
}

// networkErrorResult converts a network-level failure into a user-facing
// error result.
func networkErrorResult(err error, domain string) *mcp.CallToolResult {
	var msg string
	switch classifyNetworkError(err) {
	case networkTimeout:
		msg = "The request to the Auth0 API timed out. The API may be slow or unreachable; try again."
	case networkDNSFailure:
		msg = fmt.Sprintf("Could not resolve the Auth0 domain `%s`. Check that the tenant domain is correct.", domain)
	case networkConnectionRefused:
		msg = fmt.Sprintf("Connection to `%s` was refused. Check the tenant domain and your network.", domain)
	case networkConnectionReset:
		msg = "The connection to the Auth0 API was reset. Try again."
	case networkTLSError:
		msg = fmt.Sprintf("TLS handshake with `%s` failed. Check the tenant domain; custom domains need a valid certificate.", domain)
	default:
		msg = fmt.Sprintf("Network error while calling the Auth0 API: %v", err)
	}
	return mcp.NewToolResultError(msg)
}

// apiErrorResult maps an upstream HTTP error status to user-facing guidance.
// The wording is best-effort developer experience; the status-to-category
// mapping is the stable part. resource names the entity for 404 rewording and
// id, when known, is called out explicitly.
func apiErrorResult(resp *apiResponse, resource, scope, id string) *mcp.CallToolResult {
	var msg string
	switch resp.Status {
	case http.StatusUnauthorized:
		msg = "Unauthorized: your token is likely expired or invalid, or is missing the required scope. Re-authenticate with `auth0 login` or provide a fresh AUTH0_TOKEN."
	case http.StatusForbidden:
		msg = fmt.Sprintf("Forbidden: your token does not have permission for this operation. Ensure it includes the `%s` scope.", scope)
	case http.StatusNotFound:
		if id != "" {
			msg = fmt.Sprintf("%s with id `%s` was not found. Check that the identifier is correct.", resource, id)
		} else {
			msg = fmt.Sprintf("%s was not found. Check that the identifier is correct.", resource)
		}
	case http.StatusConflict:
		msg = fmt.Sprintf("Conflict: the %s operation was blocked, likely by a dependent resource or a duplicate.", strings.ToLower(resource))
	case http.StatusUnprocessableEntity:
		msg = "Validation error: the Auth0 API rejected the request payload."
	case http.StatusTooManyRequests:
		msg = "Rate limited by the Auth0 API. Wait a moment and retry."
	default:
		if resp.Status >= http.StatusInternalServerError {
			msg = fmt.Sprintf("Auth0 server error (%d). The Management API is having trouble; retry later.", resp.Status)
		} else {
			msg = fmt.Sprintf("%s request failed: %d %s.", resource, resp.Status, resp.StatusText)
		}
	}
	if detail := errorDetail(resp.Body); detail != "" {
		msg += " Details: " + detail
	}
	return mcp.NewToolResultError(msg)
}

// errorDetail extracts the human-readable message Auth0 embeds in error
// bodies, when present.
func errorDetail(body []byte) string {
	var payload struct {
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.ErrorDescription
}
