package core

import (
	"net/http"
	"time"
)

const (
	// CookieAccessToken holds the "Bearer <token>" value browser clients
	// authenticate with.
	CookieAccessToken = "Authorization"
	// CookieRefreshToken holds the rotating refresh token.
	CookieRefreshToken = "RefreshToken"
)

// setAuthCookies installs the token pair for browser clients. Both cookies
// are HttpOnly; Secure follows the TLS setting so local plain-HTTP setups
// still work.
func (a *App) setAuthCookies(w http.ResponseWriter, accessToken string, accessExpiry time.Time, refreshToken string, refreshExpiry time.Time) {
	secure := a.Config().Server.EnableTLS
	http.SetCookie(w, &http.Cookie{
		Name:     CookieAccessToken,
		Value:    "Bearer " + accessToken,
		Path:     "/",
		Expires:  accessExpiry,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CookieRefreshToken,
		Value:    refreshToken,
		Path:     "/",
		Expires:  refreshExpiry,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookies expires both auth cookies.
func (a *App) clearAuthCookies(w http.ResponseWriter) {
	secure := a.Config().Server.EnableTLS
	for _, name := range []string{CookieAccessToken, CookieRefreshToken} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
