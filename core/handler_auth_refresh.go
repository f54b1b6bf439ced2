package core

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/albashop/alba/crypto"
)

// RefreshHandler exchanges a valid refresh token for a fresh token pair.
// Endpoint: POST /auth/refresh
// Authenticated: No (the refresh token is the credential)
// Allowed Mimetype: application/json
//
// Rotation: the presented token must equal the stored one, and a new token
// replaces it on success. A replayed older token fails the comparison.
func (a *App) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	token := a.requestRefreshToken(r)
	if token == "" {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	cfg := a.Config()
	userID, err := crypto.ParseRefreshToken(token, []byte(cfg.Jwt.RefreshSecret))
	if err != nil {
		if errors.Is(err, crypto.ErrJwtTokenExpired) {
			writeJsonError(w, errorJwtTokenExpired)
			return
		}
		writeJsonError(w, errorJwtInvalidToken)
		return
	}

	user, err := a.DbAuth().GetUserById(userID)
	if err != nil || user == nil {
		writeJsonError(w, errorJwtInvalidToken)
		return
	}

	if user.RefreshToken == "" ||
		subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(token)) != 1 {
		writeJsonError(w, errorRefreshMismatch)
		return
	}

	a.issueSession(w, http.StatusOK, user)
}

// requestRefreshToken reads the refresh token from the JSON body, falling
// back to the browser cookie.
func (a *App) requestRefreshToken(r *http.Request) string {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	if cookie, err := r.Cookie(CookieRefreshToken); err == nil {
		return cookie.Value
	}
	return ""
}

// SignOutHandler clears the active session.
// Endpoint: POST /auth/sign-out
// Authenticated: Yes
//
// Clearing the stored refresh token invalidates every outstanding refresh
// token; access tokens remain valid until they expire.
func (a *App) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	if err := a.DbAuth().UpdateRefreshToken(claims.UserID, ""); err != nil {
		a.Logger().Error("failed to clear refresh token", "user", claims.UserID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	a.clearAuthCookies(w)
	writeJsonOk(w, okSignedOut)
}
