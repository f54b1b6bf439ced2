package crypto

import (
	"errors"
	"testing"
	"time"
)

var (
	accessSecret  = []byte("test_access_secret_test_access_secret")
	refreshSecret = []byte("test_refresh_secret_test_refresh_secret")
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, expiry, err := NewAccessToken("user123", true, "admin", accessSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	if time.Until(expiry) > time.Hour || time.Until(expiry) < 59*time.Minute {
		t.Errorf("unexpected expiry %v", expiry)
	}

	claims, err := ParseAccessToken(token, accessSecret)
	if err != nil {
		t.Fatalf("ParseAccessToken failed: %v", err)
	}
	if claims[ClaimUserID] != "user123" {
		t.Errorf("expected user_id user123, got %v", claims[ClaimUserID])
	}
	if claims[ClaimVerified] != true {
		t.Errorf("expected verified true, got %v", claims[ClaimVerified])
	}
	if claims[ClaimRole] != "admin" {
		t.Errorf("expected role admin, got %v", claims[ClaimRole])
	}
}

func TestAccessTokenRejections(t *testing.T) {
	token, _, err := NewAccessToken("user123", false, "user", accessSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}

	testCases := []struct {
		name    string
		token   string
		secret  []byte
		wantErr error
	}{
		{"wrong secret", token, refreshSecret, ErrJwtInvalidSigningMethod},
		{"garbage token", "not.a.token", accessSecret, ErrJwtInvalidToken},
		{"empty token", "", accessSecret, ErrJwtInvalidToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAccessToken(tc.token, tc.secret)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, _, err := NewAccessToken("user123", true, "user", accessSecret, -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	_, err = ParseAccessToken(token, accessSecret)
	if !errors.Is(err, ErrJwtTokenExpired) {
		t.Errorf("expected ErrJwtTokenExpired, got %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, _, err := NewRefreshToken("user123", refreshSecret, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}

	userID, err := ParseRefreshToken(token, refreshSecret)
	if err != nil {
		t.Fatalf("ParseRefreshToken failed: %v", err)
	}
	if userID != "user123" {
		t.Errorf("expected user123, got %q", userID)
	}
}

func TestTokenTypeCrossUseRejected(t *testing.T) {
	// Sign both token kinds with the same secret so only the type claim
	// can tell them apart.
	secret := []byte("shared_secret_shared_secret_shared!!")

	access, _, err := NewAccessToken("user123", true, "user", secret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	refresh, _, err := NewRefreshToken("user123", secret, time.Hour)
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}

	if _, err := ParseRefreshToken(access, secret); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := ParseAccessToken(refresh, secret); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestShortSecretRejected(t *testing.T) {
	_, _, err := NewAccessToken("user123", true, "user", []byte("short"), time.Hour)
	if !errors.Is(err, ErrJwtInvalidSecretLength) {
		t.Errorf("expected ErrJwtInvalidSecretLength, got %v", err)
	}
}

func TestVerificationLinkTokenRoundTrip(t *testing.T) {
	secret := []byte("verification_secret_verification_sec")

	token, _, err := NewVerificationLinkToken("user123", "shopper@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("NewVerificationLinkToken failed: %v", err)
	}

	userID, email, err := ParseVerificationLinkToken(token, secret)
	if err != nil {
		t.Fatalf("ParseVerificationLinkToken failed: %v", err)
	}
	if userID != "user123" {
		t.Errorf("userID = %q, want user123", userID)
	}
	if email != "shopper@example.com" {
		t.Errorf("email = %q, want shopper@example.com", email)
	}

	// An access token must not pass as a verification link.
	access, _, err := NewAccessToken("user123", false, "user", secret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	if _, _, err := ParseVerificationLinkToken(access, secret); err == nil {
		t.Error("access token accepted as verification link token")
	}
}
