package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/albashop/alba/config"
	"github.com/albashop/alba/db"
	"github.com/albashop/alba/db/mock"
	"github.com/albashop/alba/notify"
	"github.com/albashop/alba/queue"
)

type mockNotifier struct {
	sendFunc func(ctx context.Context, m notify.Message) error
	sent     []notify.Message
}

func (n *mockNotifier) Send(ctx context.Context, m notify.Message) error {
	n.sent = append(n.sent, m)
	if n.sendFunc != nil {
		return n.sendFunc(ctx, m)
	}
	return nil
}

func verificationJob(t *testing.T, email string) db.Job {
	t.Helper()
	payload, err := json.Marshal(queue.PayloadVerificationLink{Email: email, CooldownBucket: 1})
	if err != nil {
		t.Fatal(err)
	}
	return db.Job{ID: 1, JobType: queue.JobTypeVerificationLink, Payload: payload}
}

func TestVerificationLinkHandlerSendsLink(t *testing.T) {
	testDb := &mock.Db{
		GetUserByEmailFunc: func(email string) (*db.User, error) {
			return &db.User{ID: "user1", Email: email, Verified: false}, nil
		},
	}
	notifier := &mockNotifier{}
	provider := config.NewProvider(config.NewDefaultConfig())

	h := NewVerificationLinkHandler(testDb, provider, notifier)
	if err := h.Handle(context.Background(), verificationJob(t, "shopper@example.com")); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if msg.Kind != notify.VerificationLink {
		t.Errorf("kind = %v, want VerificationLink", msg.Kind)
	}
	if msg.Recipient != "shopper@example.com" {
		t.Errorf("recipient = %q", msg.Recipient)
	}
	if !strings.Contains(msg.URL, "/auth/verify-email?token=") {
		t.Errorf("URL %q does not contain the verify-email path", msg.URL)
	}
}

func TestVerificationLinkHandlerSkipsVerifiedUser(t *testing.T) {
	testDb := &mock.Db{
		GetUserByEmailFunc: func(email string) (*db.User, error) {
			return &db.User{ID: "user1", Email: email, Verified: true}, nil
		},
	}
	notifier := &mockNotifier{}
	h := NewVerificationLinkHandler(testDb, config.NewProvider(config.NewDefaultConfig()), notifier)

	if err := h.Handle(context.Background(), verificationJob(t, "shopper@example.com")); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(notifier.sent))
	}
}

func TestVerificationLinkHandlerMissingUser(t *testing.T) {
	// Default mock returns db.ErrUserNotFound; a deleted account is not a
	// job failure.
	h := NewVerificationLinkHandler(&mock.Db{}, config.NewProvider(config.NewDefaultConfig()), &mockNotifier{})

	if err := h.Handle(context.Background(), verificationJob(t, "gone@example.com")); err != nil {
		t.Fatalf("Handle should ignore a missing user, got: %v", err)
	}
}

func TestVerificationLinkHandlerNotifierError(t *testing.T) {
	testDb := &mock.Db{
		GetUserByEmailFunc: func(email string) (*db.User, error) {
			return &db.User{ID: "user1", Email: email}, nil
		},
	}
	wantErr := errors.New("smtp refused")
	notifier := &mockNotifier{sendFunc: func(ctx context.Context, m notify.Message) error { return wantErr }}
	h := NewVerificationLinkHandler(testDb, config.NewProvider(config.NewDefaultConfig()), notifier)

	err := h.Handle(context.Background(), verificationJob(t, "shopper@example.com"))
	if !errors.Is(err, wantErr) {
		t.Errorf("got error %v, want wrapped %v", err, wantErr)
	}
}

func TestVerificationLinkHandlerBadPayload(t *testing.T) {
	h := NewVerificationLinkHandler(&mock.Db{}, config.NewProvider(config.NewDefaultConfig()), &mockNotifier{})

	job := db.Job{ID: 1, JobType: queue.JobTypeVerificationLink, Payload: []byte("not json")}
	if err := h.Handle(context.Background(), job); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
