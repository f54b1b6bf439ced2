package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/albashop/alba/crypto"
	"github.com/albashop/alba/db"
	"github.com/albashop/alba/queue"
)

// RegisterHandler handles password-based user registration.
// Endpoint: POST /auth/register
// Authenticated: No
// Allowed Mimetype: application/json
//
// A verification link job is queued on success; the new session is issued
// immediately with verified false, so flows that require verification stay
// gated until the link or a code confirms the address.
func (a *App) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	// Email and username are stored case-normalized so the unique index on
	// email holds regardless of the casing the client typed.
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Email == "" || req.Password == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if err := ValidatePassword(req.Password); err != nil {
		writeJsonError(w, errorPasswordComplexity)
		return
	}

	if req.Username == "" {
		// Default to the local part of the address.
		req.Username, _, _ = strings.Cut(req.Email, "@")
	}
	if err := ValidateUsername(req.Username); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	hashedPassword, err := crypto.GenerateHash(req.Password)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	newUser, err := a.DbAuth().CreateUserWithPassword(db.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hashedPassword,
		Avatar:   db.DefaultAvatar,
	})
	if err != nil {
		if errors.Is(err, db.ErrConstraintUnique) {
			writeJsonError(w, errorEmailConflict)
			return
		}
		a.Logger().Error("failed to create user", "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	cfg := a.Config()
	payload, _ := json.Marshal(queue.PayloadVerificationLink{
		Email:          newUser.Email,
		CooldownBucket: queue.CoolDownBucket(cfg.RateLimits.VerificationCodeCooldown.Duration, time.Now()),
	})
	job := db.Job{
		JobType: queue.JobTypeVerificationLink,
		Payload: payload,
	}
	if err := a.DbQueue().InsertJob(job); err != nil && !errors.Is(err, db.ErrConstraintUnique) {
		a.Logger().Error("failed to insert verification link job", "err", err, "email", newUser.Email)
		writeJsonError(w, errorServiceUnavailable)
		return
	}

	a.issueSession(w, http.StatusCreated, newUser)
}
