package zombiezen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/albashop/alba/db"
	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const userColumns = `id, email, username, password, role, verified, avatar, cart_count,
	refresh_token, verification_code, verification_issued_at,
	forgot_password_code, forgot_password_issued_at, created, updated`

// newUserFromStmt creates a User struct from a SQLite statement positioned
// on a row of userColumns.
func newUserFromStmt(stmt *sqlite.Stmt) (*db.User, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}
	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}

	// Code issue timestamps are empty strings while no code is pending.
	var verificationIssuedAt time.Time
	if s := stmt.GetText("verification_issued_at"); s != "" {
		verificationIssuedAt, err = db.TimeParse(s)
		if err != nil {
			return nil, fmt.Errorf("error parsing verification_issued_at time: %w", err)
		}
	}
	var forgotPasswordIssuedAt time.Time
	if s := stmt.GetText("forgot_password_issued_at"); s != "" {
		forgotPasswordIssuedAt, err = db.TimeParse(s)
		if err != nil {
			return nil, fmt.Errorf("error parsing forgot_password_issued_at time: %w", err)
		}
	}

	return &db.User{
		ID:                     stmt.GetText("id"),
		Email:                  stmt.GetText("email"),
		Username:               stmt.GetText("username"),
		Password:               stmt.GetText("password"),
		Role:                   stmt.GetText("role"),
		Verified:               stmt.GetInt64("verified") != 0,
		Avatar:                 stmt.GetText("avatar"),
		CartCount:              int(stmt.GetInt64("cart_count")),
		RefreshToken:           stmt.GetText("refresh_token"),
		VerificationCode:       stmt.GetText("verification_code"),
		VerificationIssuedAt:   verificationIssuedAt,
		ForgotPasswordCode:     stmt.GetText("forgot_password_code"),
		ForgotPasswordIssuedAt: forgotPasswordIssuedAt,
		Created:                created,
		Updated:                updated,
	}, nil
}

// GetUserByEmail retrieves a user by email address. The lookup is
// case-normalized to match the stored form.
// Returns db.ErrUserNotFound when no record matches.
func (d *Db) GetUserByEmail(email string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var user *db.User
	err = sqlitex.Execute(conn,
		`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: []any{email},
		})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, db.ErrUserNotFound
	}
	return user, nil
}

// GetUserById retrieves a user by id.
// Returns db.ErrUserNotFound when no record matches.
func (d *Db) GetUserById(id string) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var user *db.User
	err = sqlitex.Execute(conn,
		`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: []any{id},
		})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, db.ErrUserNotFound
	}
	return user, nil
}

// CreateUserWithPassword inserts a new unverified user. Email and username
// are stored lowercased so the unique index on email is effectively
// case-insensitive. A duplicate email returns db.ErrConstraintUnique and
// leaves the existing record unchanged.
func (d *Db) CreateUserWithPassword(user db.User) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = db.RoleUser
	}
	if user.Avatar == "" {
		user.Avatar = db.DefaultAvatar
	}

	var createdUser *db.User
	err = sqlitex.Execute(conn,
		`INSERT INTO users (id, email, username, password, role, verified, avatar)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				createdUser, err = newUserFromStmt(stmt)
				return err
			},
			Args: []any{
				user.ID,
				user.Email,
				user.Username,
				user.Password,
				user.Role,
				user.Verified,
				user.Avatar,
			},
		})
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	return createdUser, nil
}

// VerifyEmail marks the user verified and clears the pending verification
// code in the same statement, so a consumed code can never be replayed.
func (d *Db) VerifyEmail(userID string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET verified = 1,
			verification_code = '',
			verification_issued_at = '',
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{userID},
		})
	if err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}
	return nil
}

// SetVerificationCode overwrites any pending verification code with the
// given digest and issue time.
func (d *Db) SetVerificationCode(userID string, codeHash string, issuedAt time.Time) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET verification_code = ?,
			verification_issued_at = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{codeHash, db.TimeFormat(issuedAt), userID},
		})
	if err != nil {
		return fmt.Errorf("failed to set verification code: %w", err)
	}
	return nil
}

// SetForgotPasswordCode overwrites any pending forgot-password code with
// the given digest and issue time.
func (d *Db) SetForgotPasswordCode(userID string, codeHash string, issuedAt time.Time) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET forgot_password_code = ?,
			forgot_password_issued_at = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{codeHash, db.TimeFormat(issuedAt), userID},
		})
	if err != nil {
		return fmt.Errorf("failed to set forgot password code: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (d *Db) UpdatePassword(userID string, newPasswordHash string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET password = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{newPasswordHash, userID},
		})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateRole replaces the user's role.
func (d *Db) UpdateRole(userID string, role string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET role = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{role, userID},
		})
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// ResetPassword replaces the password hash and clears the pending
// forgot-password code in one statement.
func (d *Db) ResetPassword(userID string, newPasswordHash string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET password = ?,
			forgot_password_code = '',
			forgot_password_issued_at = '',
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{newPasswordHash, userID},
		})
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// UpdateRefreshToken stores the latest issued refresh token, invalidating
// whatever was there before.
func (d *Db) UpdateRefreshToken(userID string, refreshToken string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET refresh_token = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{refreshToken, userID},
		})
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return nil
}

// UpdateProfile updates username and/or avatar; empty arguments leave the
// corresponding column untouched.
func (d *Db) UpdateProfile(userID string, username string, avatarURL string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET username = IIF(? = '', username, ?),
			avatar = IIF(? = '', avatar, ?),
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{username, username, avatarURL, avatarURL, userID},
		})
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
