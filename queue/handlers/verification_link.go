package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/albashop/alba/config"
	"github.com/albashop/alba/crypto"
	"github.com/albashop/alba/db"
	"github.com/albashop/alba/notify"
	"github.com/albashop/alba/queue"
)

// VerificationLinkHandler emails a signed verification link to a freshly
// registered user.
type VerificationLinkHandler struct {
	db             db.DbAuth
	configProvider *config.Provider
	notifier       notify.Notifier
}

// NewVerificationLinkHandler creates a new VerificationLinkHandler
func NewVerificationLinkHandler(db db.DbAuth, configProvider *config.Provider, notifier notify.Notifier) *VerificationLinkHandler {
	return &VerificationLinkHandler{
		db:             db,
		configProvider: configProvider,
		notifier:       notifier,
	}
}

// Handle implements the executor.JobHandler interface.
func (h *VerificationLinkHandler) Handle(ctx context.Context, job db.Job) error {
	var payload queue.PayloadVerificationLink
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse verification link payload: %w", err)
	}

	user, err := h.db.GetUserByEmail(payload.Email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			// The account was deleted between registration and this job
			// running. Nothing to send.
			return nil
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.Verified {
		return nil
	}

	cfg := h.configProvider.Get()
	token, _, err := crypto.NewVerificationLinkToken(
		user.ID,
		user.Email,
		[]byte(cfg.Jwt.CodeSecret),
		cfg.Jwt.VerificationLinkDuration.Duration,
	)
	if err != nil {
		return fmt.Errorf("failed to create verification link token: %w", err)
	}

	callbackURL := fmt.Sprintf("%s/auth/verify-email?token=%s", cfg.PublicBaseURL, url.QueryEscape(token))

	msg := notify.Message{
		Kind:      notify.VerificationLink,
		Recipient: user.Email,
		URL:       callbackURL,
	}
	if err := h.notifier.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send verification link email: %w", err)
	}

	return nil
}
