package db

import (
	"testing"
	"time"
)

func TestTimeFormat(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	tt := time.Date(2024, 3, 11, 10, 4, 5, 0, loc) // 10:04:05 EST is 14:04:05 UTC
	expected := "2024-03-11T14:04:05Z"
	if got := TimeFormat(tt); got != expected {
		t.Errorf("TimeFormat() = %v, want %v", got, expected)
	}

	var zeroTime time.Time
	expectedZero := "0001-01-01T00:00:00Z"
	if got := TimeFormat(zeroTime); got != expectedZero {
		t.Errorf("TimeFormat() for zero time = %v, want %v", got, expectedZero)
	}
}

func TestTimeParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid UTC timestamp",
			input: "2024-03-11T14:04:05Z",
			want:  time.Date(2024, 3, 11, 14, 4, 5, 0, time.UTC),
		},
		{
			name:    "not a timestamp",
			input:   "yesterday",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TimeParse(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("TimeParse() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && !got.Equal(tc.want) {
				t.Errorf("TimeParse() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUserPendingCodeHelpers(t *testing.T) {
	u := &User{}
	if u.HasPendingVerificationCode() || u.HasPendingForgotPasswordCode() {
		t.Error("empty user should have no pending codes")
	}

	u.VerificationCode = "abcd"
	if u.HasPendingVerificationCode() {
		t.Error("digest without issue time is not a pending code")
	}
	u.VerificationIssuedAt = time.Now()
	if !u.HasPendingVerificationCode() {
		t.Error("digest plus issue time is a pending code")
	}

	u.ForgotPasswordCode = "abcd"
	u.ForgotPasswordIssuedAt = time.Now()
	if !u.HasPendingForgotPasswordCode() {
		t.Error("expected pending forgot-password code")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleAdmin, RoleVendor} {
		if !ValidRole(role) {
			t.Errorf("expected %q to be valid", role)
		}
	}
	for _, role := range []string{"", "root", "Administrator"} {
		if ValidRole(role) {
			t.Errorf("expected %q to be invalid", role)
		}
	}
}
