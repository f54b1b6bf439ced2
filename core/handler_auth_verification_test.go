package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/albashop/alba/config"
	"github.com/albashop/alba/crypto"
	"github.com/albashop/alba/db"
	"github.com/albashop/alba/db/mock"
	"github.com/albashop/alba/notify"
)

func verificationTestConfig() *config.Config {
	return &config.Config{
		Jwt: testJwtConfig(),
		RateLimits: config.RateLimits{
			VerificationCodeCooldown:   config.Duration{Duration: time.Minute},
			ForgotPasswordCodeCooldown: config.Duration{Duration: time.Minute},
		},
	}
}

// TestSendVerificationCodeHandler covers the send flow: code emailed, HMAC
// digest stored, cooldown applied.
func TestSendVerificationCodeHandler(t *testing.T) {
	cfg := verificationTestConfig()
	testUser := &db.User{ID: "user123", Email: "test@example.com", Role: db.RoleUser}

	var storedHash string
	mockDb := &mock.Db{
		GetUserByIdFunc: func(id string) (*db.User, error) {
			return testUser, nil
		},
		SetVerificationCodeFunc: func(userID, codeHash string, issuedAt time.Time) error {
			storedHash = codeHash
			return nil
		},
	}
	notifier := &mockNotifier{}

	app := &App{
		dbAuth:         mockDb,
		cache:          newMapCache(),
		notifier:       notifier,
		logger:         discardLogger(),
		configProvider: config.NewProvider(cfg),
	}

	req := httptest.NewRequest("PATCH", "/auth/send-verification-code", nil)
	req = withClaims(req, &AuthClaims{UserID: "user123", Role: db.RoleUser})
	rr := httptest.NewRecorder()

	app.SendVerificationCodeHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	sent := notifier.sentMessages()
	if len(sent) != 1 {
		t.Fatalf("expected 1 sent message, got %d", len(sent))
	}
	msg := sent[0]
	if msg.Kind != notify.VerificationCode || msg.Recipient != testUser.Email {
		t.Errorf("unexpected message %+v", msg)
	}
	if len(msg.Code) != 6 {
		t.Errorf("expected a 6 digit code, got %q", msg.Code)
	}

	// Only the digest is persisted, and it matches the emailed code.
	if storedHash == msg.Code {
		t.Error("stored value must not be the raw code")
	}
	if !crypto.CodeHmacEqual(storedHash, msg.Code, []byte(cfg.Jwt.CodeSecret)) {
		t.Error("stored digest does not match the emailed code")
	}

	// Immediate resend hits the cooldown.
	rr2 := httptest.NewRecorder()
	app.SendVerificationCodeHandler(rr2, req)
	if rr2.Code != http.StatusTooManyRequests {
		t.Errorf("expected cooldown status %d, got %d", http.StatusTooManyRequests, rr2.Code)
	}
}

// TestSendVerificationCodeHandler_Rejections covers the paths that never
// send an email.
func TestSendVerificationCodeHandler_Rejections(t *testing.T) {
	testCases := []struct {
		name          string
		user          *db.User
		notifierErr   bool
		wantStatus    int
		wantCode      string
		wantPersisted bool
	}{
		{
			name:       "already verified",
			user:       &db.User{ID: "user123", Email: "test@example.com", Verified: true},
			wantStatus: http.StatusConflict,
			wantCode:   CodeErrorAlreadyVerified,
		},
		{
			name:        "notifier failure leaves no pending code",
			user:        &db.User{ID: "user123", Email: "test@example.com"},
			notifierErr: true,
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    CodeErrorServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			persisted := false
			mockDb := &mock.Db{
				GetUserByIdFunc: func(id string) (*db.User, error) {
					return tc.user, nil
				},
				SetVerificationCodeFunc: func(userID, codeHash string, issuedAt time.Time) error {
					persisted = true
					return nil
				},
			}
			notifier := &mockNotifier{}
			if tc.notifierErr {
				notifier.sendFunc = func(ctx context.Context, msg notify.Message) error {
					return errors.New("smtp down")
				}
			}

			app := &App{
				dbAuth:         mockDb,
				cache:          newMapCache(),
				notifier:       notifier,
				logger:         discardLogger(),
				configProvider: config.NewProvider(verificationTestConfig()),
			}

			req := httptest.NewRequest("PATCH", "/auth/send-verification-code", nil)
			req = withClaims(req, &AuthClaims{UserID: "user123", Role: db.RoleUser})
			rr := httptest.NewRecorder()

			app.SendVerificationCodeHandler(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			body := decodeEnvelope(t, rr)
			if body["code"] != tc.wantCode {
				t.Errorf("expected code %q, got %q", tc.wantCode, body["code"])
			}
			if persisted != tc.wantPersisted {
				t.Errorf("persisted=%v, want %v", persisted, tc.wantPersisted)
			}
		})
	}
}

// TestVerifyVerificationCodeHandler covers code confirmation.
func TestVerifyVerificationCodeHandler(t *testing.T) {
	cfg := verificationTestConfig()
	code := "123456"
	codeHash := crypto.CodeHmac(code, []byte(cfg.Jwt.CodeSecret))

	userWithCode := func(issuedAt time.Time) *db.User {
		return &db.User{
			ID:                   "user123",
			Email:                "test@example.com",
			Role:                 db.RoleUser,
			VerificationCode:     codeHash,
			VerificationIssuedAt: issuedAt,
		}
	}

	testCases := []struct {
		name       string
		body       string
		user       *db.User
		wantStatus int
		wantCode   string
		wantVerify bool
	}{
		{
			name:       "successful verification",
			body:       `{"code":"123456"}`,
			user:       userWithCode(time.Now()),
			wantStatus: http.StatusOK,
			wantCode:   CodeOkEmailVerified,
			wantVerify: true,
		},
		{
			name:       "already verified",
			body:       `{"code":"123456"}`,
			user:       &db.User{ID: "user123", Verified: true},
			wantStatus: http.StatusConflict,
			wantCode:   CodeErrorAlreadyVerified,
		},
		{
			name:       "no pending code",
			body:       `{"code":"123456"}`,
			user:       &db.User{ID: "user123"},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorNoPendingCode,
		},
		{
			name:       "expired code",
			body:       `{"code":"123456"}`,
			user:       userWithCode(time.Now().Add(-10 * time.Minute)),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorCodeExpired,
		},
		{
			name:       "wrong code",
			body:       `{"code":"654321"}`,
			user:       userWithCode(time.Now()),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorCodeMismatch,
		},
		{
			name:       "empty code",
			body:       `{"code":""}`,
			user:       userWithCode(time.Now()),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorInvalidRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			verified := false
			mockDb := &mock.Db{
				GetUserByIdFunc: func(id string) (*db.User, error) {
					return tc.user, nil
				},
				VerifyEmailFunc: func(userID string) error {
					verified = true
					return nil
				},
			}

			app := &App{
				validator:      &DefaultValidator{},
				dbAuth:         mockDb,
				logger:         discardLogger(),
				configProvider: config.NewProvider(cfg),
			}

			req := httptest.NewRequest("PATCH", "/auth/verify-verification-code", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			req = withClaims(req, &AuthClaims{UserID: "user123", Role: db.RoleUser})
			rr := httptest.NewRecorder()

			app.VerifyVerificationCodeHandler(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			body := decodeEnvelope(t, rr)
			if body["code"] != tc.wantCode {
				t.Errorf("expected code %q, got %q", tc.wantCode, body["code"])
			}
			if verified != tc.wantVerify {
				t.Errorf("verified=%v, want %v", verified, tc.wantVerify)
			}
		})
	}
}

// TestVerifyEmailLinkHandler covers the emailed link token flow.
func TestVerifyEmailLinkHandler(t *testing.T) {
	cfg := verificationTestConfig()
	validToken, _, err := crypto.NewVerificationLinkToken("user123", "test@example.com",
		[]byte(cfg.Jwt.CodeSecret), 24*time.Hour)
	if err != nil {
		t.Fatalf("failed to create link token: %v", err)
	}
	expiredToken, _, err := crypto.NewVerificationLinkToken("user123", "test@example.com",
		[]byte(cfg.Jwt.CodeSecret), -time.Minute)
	if err != nil {
		t.Fatalf("failed to create expired token: %v", err)
	}

	testCases := []struct {
		name       string
		token      string
		user       *db.User
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid link",
			token:      validToken,
			user:       &db.User{ID: "user123"},
			wantStatus: http.StatusOK,
			wantCode:   CodeOkEmailVerified,
		},
		{
			name:       "second click is idempotent",
			token:      validToken,
			user:       &db.User{ID: "user123", Verified: true},
			wantStatus: http.StatusOK,
			wantCode:   CodeOkEmailVerified,
		},
		{
			name:       "expired link",
			token:      expiredToken,
			user:       &db.User{ID: "user123"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeErrorJwtTokenExpired,
		},
		{
			name:       "garbage token",
			token:      "garbage",
			user:       &db.User{ID: "user123"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeErrorJwtInvalidToken,
		},
		{
			name:       "missing token",
			token:      "",
			user:       &db.User{ID: "user123"},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorInvalidRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDb := &mock.Db{
				GetUserByIdFunc: func(id string) (*db.User, error) {
					return tc.user, nil
				},
			}

			app := &App{
				dbAuth:         mockDb,
				logger:         discardLogger(),
				configProvider: config.NewProvider(cfg),
			}

			target := "/auth/verify-email"
			if tc.token != "" {
				target += "?token=" + url.QueryEscape(tc.token)
			}
			req := httptest.NewRequest("GET", target, nil)
			rr := httptest.NewRecorder()

			app.VerifyEmailLinkHandler(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			body := decodeEnvelope(t, rr)
			if body["code"] != tc.wantCode {
				t.Errorf("expected code %q, got %q", tc.wantCode, body["code"])
			}
		})
	}
}
