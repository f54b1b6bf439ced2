package core

import (
	"net/http"

	"github.com/albashop/alba/crypto"
	"github.com/albashop/alba/db"
)

// issueSession generates a fresh token pair for user, persists the refresh
// token as the single active one, installs the browser cookies and writes
// the authentication response. Used by login, registration and refresh.
func (a *App) issueSession(w http.ResponseWriter, status int, user *db.User) {
	cfg := a.Config()

	accessToken, accessExpiry, err := crypto.NewAccessToken(
		user.ID, user.Verified, user.Role,
		[]byte(cfg.Jwt.AccessSecret), cfg.Jwt.AccessTokenDuration.Duration)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	refreshToken, refreshExpiry, err := crypto.NewRefreshToken(
		user.ID, []byte(cfg.Jwt.RefreshSecret), cfg.Jwt.RefreshTokenDuration.Duration)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	// Persisting the token makes it the only one the refresh exchange
	// accepts, which is what revokes all earlier sessions.
	if err := a.DbAuth().UpdateRefreshToken(user.ID, refreshToken); err != nil {
		a.Logger().Error("failed to persist refresh token", "user", user.ID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	a.setAuthCookies(w, accessToken, accessExpiry, refreshToken, refreshExpiry)
	expiresIn := int(cfg.Jwt.AccessTokenDuration.Duration.Seconds())
	writeAuthResponse(w, status, accessToken, refreshToken, expiresIn, user)
}
