package core

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/albashop/alba/config"
	"github.com/albashop/alba/crypto"
)

// AuthClaims carries the identity the authorization middleware extracted
// from the access token. Verified and Role come straight from the token, so
// they reflect the state at login or last refresh rather than the current
// database row.
type AuthClaims struct {
	UserID   string
	Verified bool
	Role     string
}

// Authenticator defines the interface for request authentication operations.
// On failure it returns the precomputed response the caller should write.
type Authenticator interface {
	Authenticate(r *http.Request) (*AuthClaims, error, jsonResponse)
}

// DefaultAuthenticator provides the default implementation of the
// Authenticator interface. It is stateless: all decisions are taken from the
// token itself, no user lookup per request.
type DefaultAuthenticator struct {
	logger         *slog.Logger
	configProvider *config.Provider
}

// NewDefaultAuthenticator creates a new DefaultAuthenticator instance
func NewDefaultAuthenticator(logger *slog.Logger, configProvider *config.Provider) *DefaultAuthenticator {
	return &DefaultAuthenticator{
		logger:         logger,
		configProvider: configProvider,
	}
}

// Authenticate extracts and validates the access token from the request.
// Browser clients carry it in the Authorization cookie, other clients
// declare themselves with the "Client: not-browser" header and use the
// Authorization header instead.
func (a *DefaultAuthenticator) Authenticate(r *http.Request) (*AuthClaims, error, jsonResponse) {
	token, err := requestAccessToken(r)
	if err != nil {
		return nil, err, errorNoAuthToken
	}

	cfg := a.configProvider.Get()
	claims, err := crypto.ParseAccessToken(token, []byte(cfg.Jwt.AccessSecret))
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrJwtTokenExpired):
			return nil, err, errorJwtTokenExpired
		default:
			a.logger.Debug("auth: rejected access token", "err", err)
			return nil, err, errorJwtInvalidToken
		}
	}

	return &AuthClaims{
		UserID:   claims[crypto.ClaimUserID].(string),
		Verified: claims[crypto.ClaimVerified].(bool),
		Role:     claims[crypto.ClaimRole].(string),
	}, nil, jsonResponse{}
}

// requestAccessToken locates the bearer token for the request. Both sources
// use the "Bearer <token>" format so the same parsing applies.
func requestAccessToken(r *http.Request) (string, error) {
	var raw string
	if r.Header.Get("Client") == "not-browser" {
		raw = r.Header.Get("Authorization")
		if raw == "" {
			return "", errors.New("missing Authorization header")
		}
	} else {
		cookie, err := r.Cookie(CookieAccessToken)
		if err != nil {
			return "", errors.New("missing Authorization cookie")
		}
		raw = cookie.Value
	}

	token, ok := strings.CutPrefix(raw, "Bearer ")
	if !ok || token == "" {
		return "", errors.New("authorization value is not a bearer token")
	}
	return token, nil
}
