package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/albashop/alba/crypto"
	"github.com/albashop/alba/db"
	"github.com/albashop/alba/notify"
)

const forgotPasswordCooldownKeyPrefix = "forgot-password-cooldown:"

// ChangePasswordHandler replaces the password of the authenticated user
// after re-checking the current one.
// Endpoint: PATCH /auth/change-password
// Authenticated: Yes, verified only
// Allowed Mimetype: application/json
//
// Existing sessions stay valid; only the credential changes.
func (a *App) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
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
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	user, err := a.DbAuth().GetUserById(claims.UserID)
	if err != nil || user == nil {
		writeJsonError(w, errorUserNotFound)
		return
	}

	if !crypto.CheckPassword(req.OldPassword, user.Password) {
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	if err := ValidatePassword(req.NewPassword); err != nil {
		writeJsonError(w, errorPasswordComplexity)
		return
	}

	hashed, err := crypto.GenerateHash(req.NewPassword)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	if err := a.DbAuth().UpdatePassword(user.ID, hashed); err != nil {
		a.Logger().Error("failed to update password", "user", user.ID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	writeJsonOk(w, okPasswordChanged)
}

// SendForgotPasswordCodeHandler emails a 6-digit reset code.
// Endpoint: PATCH /auth/send-forgot-password-code
// Authenticated: No
// Allowed Mimetype: application/json
//
// Reports 404 for unknown addresses. That leaks address existence, which
// the storefront accepts in exchange for an actionable error.
func (a *App) SendForgotPasswordCodeHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJsonError(w, errorMissingFields)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			writeJsonError(w, errorUserNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}

	cooldownKey := forgotPasswordCooldownKeyPrefix + user.ID
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
		Kind:      notify.ForgotPasswordCode,
		Recipient: user.Email,
		Code:      code,
	}); err != nil {
		a.Logger().Error("failed to send reset code", "user", user.ID, "err", err)
		writeJsonError(w, errorServiceUnavailable)
		return
	}

	cfg := a.Config()
	codeHash := crypto.CodeHmac(code, []byte(cfg.Jwt.CodeSecret))
	if err := a.DbAuth().SetForgotPasswordCode(user.ID, codeHash, time.Now()); err != nil {
		a.Logger().Error("failed to store reset code", "user", user.ID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	a.Cache().SetWithTTL(cooldownKey, struct{}{}, 1, cfg.RateLimits.ForgotPasswordCodeCooldown.Duration)
	writeJsonOk(w, okCodeSent)
}

// VerifyForgotPasswordCodeHandler consumes a valid reset code and sets the
// new password.
// Endpoint: PATCH /auth/verify-forgot-password-code
// Authenticated: No (the code is the credential)
// Allowed Mimetype: application/json
func (a *App) VerifyForgotPasswordCodeHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		writeJsonError(w, errorMissingFields)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			writeJsonError(w, errorUserNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}

	if !user.HasPendingForgotPasswordCode() {
		writeJsonError(w, errorNoPendingCode)
		return
	}

	cfg := a.Config()
	if time.Since(user.ForgotPasswordIssuedAt) > cfg.Jwt.CodeDuration.Duration {
		writeJsonError(w, errorCodeExpired)
		return
	}

	if !crypto.CodeHmacEqual(user.ForgotPasswordCode, req.Code, []byte(cfg.Jwt.CodeSecret)) {
		writeJsonError(w, errorCodeMismatch)
		return
	}

	if err := ValidatePassword(req.NewPassword); err != nil {
		writeJsonError(w, errorPasswordComplexity)
		return
	}

	hashed, err := crypto.GenerateHash(req.NewPassword)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	// Clears the pending code in the same statement, so a code is good for
	// exactly one reset.
	if err := a.DbAuth().ResetPassword(user.ID, hashed); err != nil {
		a.Logger().Error("failed to reset password", "user", user.ID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	writeJsonOk(w, okPasswordReset)
}
