package core

import (
	"net"
	"net/http"
	"strings"
)

// getClientIP determines the client IP for rate limiting and blocking.
// When the deployment sits behind a trusted proxy the configured header
// (X-Forwarded-For style) wins, otherwise the connection's remote address
// is used.
func (a *App) getClientIP(r *http.Request) string {
	if header := a.Config().Server.ClientIpProxyHeader; header != "" {
		if value := r.Header.Get(header); value != "" {
			// X-Forwarded-For may carry a chain; the first entry is
			// the originating client.
			ip, _, _ := strings.Cut(value, ",")
			return strings.TrimSpace(ip)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
