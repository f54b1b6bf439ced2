package db

import "time"

// Roles a user record can carry. Role changes are an administrative
// operation; registration always produces RoleUser.
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

// DefaultAvatar is the placeholder assigned at registration, replaced when
// the user uploads an avatar through the profile endpoint.
const DefaultAvatar = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/wIAAg0B7kH4VQAAAABJRU5ErkJggg=="

// User represents a user record.
// Timestamps use RFC3339 format in UTC.
//
// Password only ever holds a bcrypt hash. VerificationCode and
// ForgotPasswordCode hold hex HMAC-SHA256 digests of one-time codes, never
// the codes themselves; their IssuedAt companions are zero when no code is
// pending. RefreshToken holds the latest issued refresh token: presenting
// any other token, including a previously valid one, fails the refresh
// exchange.
type User struct {
	ID       string
	Email    string
	Username string
	Password string
	Role     string
	Verified bool
	Avatar   string

	CartCount int

	RefreshToken string

	VerificationCode     string
	VerificationIssuedAt time.Time

	ForgotPasswordCode     string
	ForgotPasswordIssuedAt time.Time

	Created time.Time
	Updated time.Time
}

// HasPendingVerificationCode reports whether an unconsumed verification
// code exists for the user.
func (u *User) HasPendingVerificationCode() bool {
	return u.VerificationCode != "" && !u.VerificationIssuedAt.IsZero()
}

// HasPendingForgotPasswordCode reports whether an unconsumed reset code
// exists for the user.
func (u *User) HasPendingForgotPasswordCode() bool {
	return u.ForgotPasswordCode != "" && !u.ForgotPasswordIssuedAt.IsZero()
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleVendor:
		return true
	}
	return false
}
