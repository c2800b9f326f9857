package gate

import (
	"net/http"
	"strings"
)

// fallbackClientIP is reported when no forwarding header is present.
const fallbackClientIP = "0.0.0.0"

// ResolveClientIP extracts the client IP from proxy headers, in priority
// order X-Forwarded-For (first entry), X-Real-IP, X-Client-IP. The value is
// informational metadata only and is never validated or used for
// authorization.
func ResolveClientIP(headers http.Header) string {
	if forwarded := headers.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := headers.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := headers.Get("X-Client-IP"); ip != "" {
		return ip
	}
	return fallbackClientIP
}
