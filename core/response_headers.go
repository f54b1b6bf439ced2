package core

import (
	"net/http"
)

// HeadersJson is applied to every API response.
var HeadersJson = map[string]string{
	"Content-Type": "application/json; charset=utf-8",

	// Ensure the browser respects the declared content type strictly.
	// Mitigates MIME-type sniffing attacks.
	"X-Content-Type-Options": "nosniff",

	// The response must not be stored in any cache, anywhere, under any
	// circumstances. no-store alone is enough to prevent all caching;
	// no-cache and must-revalidate cover anything downstream that
	// misinterprets no-store.
	"Cache-Control": "no-store, no-cache, must-revalidate",

	// Prevents the response from being embedded in an <iframe>.
	"X-Frame-Options": "DENY",

	// frame-ancestors 'none' is the modern replacement for X-Frame-Options
	// DENY; default-src 'none' asserts the response is never an active
	// document.
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
}

// setHeaders applies one or more sets of headers to the response writer.
// Headers from later maps will overwrite headers from earlier maps if keys conflict.
func setHeaders(w http.ResponseWriter, headers ...map[string]string) {
	for _, headerMap := range headers {
		for key, value := range headerMap {
			w.Header().Set(key, value)
		}
	}
}
