package db

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound is returned when a user lookup matches no record.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotFound is returned when a store record lookup matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrConstraintUnique is returned when an insert violates a unique
	// constraint (duplicate email, duplicate queue job in a cooldown
	// bucket, duplicate review).
	ErrConstraintUnique = errors.New("unique constraint violation")
)

// TimeFormat formats a time as RFC3339 in UTC, the canonical form for all
// persisted timestamps.
func TimeFormat(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TimeParse parses an RFC3339 timestamp as stored in the database.
func TimeParse(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// DbAuth groups the user/credential operations the auth core depends on.
type DbAuth interface {
	GetUserByEmail(email string) (*User, error)
	GetUserById(id string) (*User, error)
	CreateUserWithPassword(user User) (*User, error)

	// VerifyEmail marks the user verified and clears any pending
	// verification code in the same statement.
	VerifyEmail(userID string) error

	// SetVerificationCode stores the HMAC digest of a freshly issued
	// verification code together with its issue time, overwriting any
	// previous pending code.
	SetVerificationCode(userID string, codeHash string, issuedAt time.Time) error

	// SetForgotPasswordCode mirrors SetVerificationCode for the
	// password reset flow.
	SetForgotPasswordCode(userID string, codeHash string, issuedAt time.Time) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(userID string, newPasswordHash string) error

	// ResetPassword replaces the password hash and clears the pending
	// forgot-password code in one statement.
	ResetPassword(userID string, newPasswordHash string) error

	// UpdateRefreshToken stores the latest issued refresh token. An
	// empty string clears the active session.
	UpdateRefreshToken(userID string, refreshToken string) error

	// UpdateProfile updates username and/or avatar. Empty arguments
	// leave the corresponding column untouched.
	UpdateProfile(userID string, username string, avatarURL string) error

	// UpdateRole replaces the user's role. Callers validate the role
	// against ValidRole first.
	UpdateRole(userID string, role string) error
}

// DbQueue groups the job queue operations.
type DbQueue interface {
	InsertJob(job Job) error
	Claim(limit int) ([]*Job, error)
	MarkCompleted(jobID int64) error
	MarkFailed(jobID int64, errMsg string) error
}

// DbStore groups the collaborator CRUD operations outside the auth core.
type DbStore interface {
	CreateProduct(p Product) (*Product, error)
	GetProduct(id string) (*Product, error)
	ListProducts(limit, offset int) ([]*Product, error)
	UpdateProduct(p Product) error
	DeleteProduct(id string) error

	AddCartItem(item CartItem) error
	RemoveCartItem(userID, productID string) error
	ListCartItems(userID string) ([]*CartItem, error)
	ClearCart(userID string) error

	CreatePurchase(p Purchase) (*Purchase, error)
	ListPurchasesByUser(userID string) ([]*Purchase, error)
	ListPurchases(limit, offset int) ([]*Purchase, error)

	CreateAddress(a Address) (*Address, error)
	UpdateAddress(a Address) error
	DeleteAddress(id, userID string) error
	ListAddressesByUser(userID string) ([]*Address, error)

	UpsertReview(r Review) error
	DeleteReview(userID, productID string) error
	ListReviewsByProduct(productID string, limit, offset int) ([]*Review, error)
}

// DbApp combines the roles the application wires together. The concrete
// implementation (*zombiezen.Db) satisfies it.
type DbApp interface {
	DbAuth
	DbQueue
	DbStore
}
