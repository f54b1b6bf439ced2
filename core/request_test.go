package core

import (
	"net/http/httptest"
	"testing"

	"github.com/albashop/alba/config"
)

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name        string
		proxyHeader string
		headerValue string
		remoteAddr  string
		want        string
	}{
		{
			name:       "remote addr without proxy",
			remoteAddr: "203.0.113.7:54321",
			want:       "203.0.113.7",
		},
		{
			name:        "proxy header wins",
			proxyHeader: "X-Forwarded-For",
			headerValue: "198.51.100.4",
			remoteAddr:  "10.0.0.1:1234",
			want:        "198.51.100.4",
		},
		{
			name:        "first entry of forwarded chain",
			proxyHeader: "X-Forwarded-For",
			headerValue: "198.51.100.4, 10.0.0.2, 10.0.0.3",
			remoteAddr:  "10.0.0.1:1234",
			want:        "198.51.100.4",
		},
		{
			name:        "configured header absent falls back",
			proxyHeader: "X-Forwarded-For",
			remoteAddr:  "203.0.113.7:54321",
			want:        "203.0.113.7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := &App{
				configProvider: config.NewProvider(&config.Config{
					Server: config.Server{ClientIpProxyHeader: tc.proxyHeader},
				}),
			}

			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.headerValue != "" {
				req.Header.Set(tc.proxyHeader, tc.headerValue)
			}

			if got := app.getClientIP(req); got != tc.want {
				t.Errorf("getClientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}
