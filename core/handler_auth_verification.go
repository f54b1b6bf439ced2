package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/albashop/alba/crypto"
	"github.com/albashop/alba/notify"
)

const verificationCooldownKeyPrefix = "verification-cooldown:"

// SendVerificationCodeHandler emails a 6-digit one-time code to the
// authenticated user's address.
// Endpoint: PATCH /auth/send-verification-code
// Authenticated: Yes
//
// Only the HMAC digest of the code is persisted, and only after the email
// actually went out. A cache cooldown limits request frequency per user.
func (a *App) SendVerificationCodeHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	user, err := a.DbAuth().GetUserById(claims.UserID)
	if err != nil || user == nil {
		writeJsonError(w, errorUserNotFound)
		return
	}

	if user.Verified {
		writeJsonError(w, errorAlreadyVerified)
		return
	}

	cooldownKey := verificationCooldownKeyPrefix + user.ID
	if _, onCooldown := a.Cache().Get(cooldownKey); onCooldown {
		writeJsonError(w, errorTooManyRequests)
		return
	}

	code, err := crypto.RandomCode()
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	if err := a.Notifier().Send(r.Context(), notify.Message{
		Kind:      notify.VerificationCode,
		Recipient: user.Email,
		Code:      code,
	}); err != nil {
		a.Logger().Error("failed to send verification code", "user", user.ID, "err", err)
		writeJsonError(w, errorServiceUnavailable)
		return
	}

	cfg := a.Config()
	codeHash := crypto.CodeHmac(code, []byte(cfg.Jwt.CodeSecret))
	if err := a.DbAuth().SetVerificationCode(user.ID, codeHash, time.Now()); err != nil {
		a.Logger().Error("failed to store verification code", "user", user.ID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	a.Cache().SetWithTTL(cooldownKey, struct{}{}, 1, cfg.RateLimits.VerificationCodeCooldown.Duration)
	writeJsonOk(w, okCodeSent)
}

// VerifyVerificationCodeHandler confirms the emailed code and marks the
// account verified.
// Endpoint: PATCH /auth/verify-verification-code
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) VerifyVerificationCodeHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserById(claims.UserID)
	if err != nil || user == nil {
		writeJsonError(w, errorUserNotFound)
		return
	}

	if user.Verified {
		writeJsonError(w, errorAlreadyVerified)
		return
	}

	if !user.HasPendingVerificationCode() {
		writeJsonError(w, errorNoPendingCode)
		return
	}

	cfg := a.Config()
	if time.Since(user.VerificationIssuedAt) > cfg.Jwt.CodeDuration.Duration {
		writeJsonError(w, errorCodeExpired)
		return
	}

	if !crypto.CodeHmacEqual(user.VerificationCode, req.Code, []byte(cfg.Jwt.CodeSecret)) {
		writeJsonError(w, errorCodeMismatch)
		return
	}

	if err := a.DbAuth().VerifyEmail(user.ID); err != nil {
		a.Logger().Error("failed to mark email verified", "user", user.ID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	writeJsonOk(w, okEmailVerified)
}

// VerifyEmailLinkHandler confirms the signed token from an emailed
// verification link.
// Endpoint: GET /auth/verify-email?token=...
// Authenticated: No (the token is the credential)
//
// Idempotent: a second click on the same valid link reports success.
func (a *App) VerifyEmailLinkHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	cfg := a.Config()
	userID, _, err := crypto.ParseVerificationLinkToken(token, []byte(cfg.Jwt.CodeSecret))
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
		writeJsonError(w, errorUserNotFound)
		return
	}

	if !user.Verified {
		if err := a.DbAuth().VerifyEmail(user.ID); err != nil {
			a.Logger().Error("failed to mark email verified", "user", user.ID, "err", err)
			writeJsonError(w, errorDatabase)
			return
		}
	}

	writeJsonOk(w, okEmailVerified)
}
