package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// MinSecretLength is the minimum required length for JWT signing
	// secrets. 32 bytes (256 bits) is the minimum recommended length for
	// HMAC-SHA256 keys.
	MinSecretLength = 32

	// JWT claim keys
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
	ClaimUserID    = "user_id"
	ClaimVerified  = "verified"
	ClaimRole      = "role"
	ClaimType      = "type"

	ClaimEmail = "email"

	// Values of the type claim. Token kinds are signed with distinct
	// secrets, but the claim makes a mixed-up token fail fast.
	ClaimAccessValue       = "access"
	ClaimRefreshValue      = "refresh"
	ClaimVerificationValue = "verification"
)

var (
	// ErrJwtTokenExpired is returned when the token has expired
	ErrJwtTokenExpired = errors.New("token expired")
	// ErrJwtInvalidToken is returned when the token is invalid
	ErrJwtInvalidToken = errors.New("invalid token")
	// ErrJwtInvalidSigningMethod is returned when the signing method is not HS256
	ErrJwtInvalidSigningMethod = errors.New("unexpected signing method")
	// ErrJwtInvalidSecretLength is returned for invalid secret lengths
	ErrJwtInvalidSecretLength = errors.New("invalid secret length")
)

// NewJwt generates a signed token carrying the provided claims plus iat/exp.
func NewJwt(payload jwt.MapClaims, secret []byte, duration time.Duration) (string, time.Time, error) {
	if len(secret) < MinSecretLength {
		return "", time.Time{}, ErrJwtInvalidSecretLength
	}

	now := time.Now()
	expirationTime := now.Add(duration)
	payload[ClaimIssuedAt] = now.Unix()
	payload[ClaimExpiresAt] = expirationTime.Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expirationTime, nil
}

// ParseJwt verifies a token against secret and returns its claims.
// Only HS256 is accepted; expiry is enforced by the parser.
func ParseJwt(token string, secret []byte) (jwt.MapClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())

	parsedToken, err := parser.Parse(token, func(t *jwt.Token) (any, error) {
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrJwtTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrJwtInvalidSigningMethod
		}
		return nil, fmt.Errorf("%w: %w", ErrJwtInvalidToken, err)
	}

	if claims, ok := parsedToken.Claims.(jwt.MapClaims); ok && parsedToken.Valid {
		return claims, nil
	}

	return nil, ErrJwtInvalidToken
}

// NewAccessToken issues a short-lived token authorizing requests on behalf
// of the user. Verified and role ride along so the authorization middleware
// can gate routes without a user lookup.
func NewAccessToken(userID string, verified bool, role string, secret []byte, duration time.Duration) (string, time.Time, error) {
	claims := jwt.MapClaims{
		ClaimUserID:   userID,
		ClaimVerified: verified,
		ClaimRole:     role,
		ClaimType:     ClaimAccessValue,
	}
	return NewJwt(claims, secret, duration)
}

// NewRefreshToken issues the long-lived token exchanged for a fresh token
// pair. It carries only the subject; the server-side copy on the user
// record is what makes rotation enforceable.
func NewRefreshToken(userID string, secret []byte, duration time.Duration) (string, time.Time, error) {
	claims := jwt.MapClaims{
		ClaimUserID: userID,
		ClaimType:   ClaimRefreshValue,
	}
	return NewJwt(claims, secret, duration)
}

// ParseAccessToken verifies an access token and returns its claims after
// checking the required claim set.
func ParseAccessToken(token string, secret []byte) (jwt.MapClaims, error) {
	claims, err := ParseJwt(token, secret)
	if err != nil {
		return nil, err
	}
	if err := validateAccessClaims(claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefreshToken verifies a refresh token and returns the subject user id.
func ParseRefreshToken(token string, secret []byte) (string, error) {
	claims, err := ParseJwt(token, secret)
	if err != nil {
		return "", err
	}
	userID, ok := claims[ClaimUserID].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user_id", ErrJwtInvalidToken)
	}
	if typ, _ := claims[ClaimType].(string); typ != ClaimRefreshValue {
		return "", fmt.Errorf("%w: wrong type claim %q", ErrJwtInvalidToken, typ)
	}
	return userID, nil
}

// NewVerificationLinkToken issues the token embedded in emailed
// verification links. Email rides along so the confirmation handler can
// report which address was verified without a second lookup.
func NewVerificationLinkToken(userID, email string, secret []byte, duration time.Duration) (string, time.Time, error) {
	claims := jwt.MapClaims{
		ClaimUserID: userID,
		ClaimEmail:  email,
		ClaimType:   ClaimVerificationValue,
	}
	return NewJwt(claims, secret, duration)
}

// ParseVerificationLinkToken verifies a link token and returns the subject
// user id and email.
func ParseVerificationLinkToken(token string, secret []byte) (userID string, email string, err error) {
	claims, err := ParseJwt(token, secret)
	if err != nil {
		return "", "", err
	}
	userID, ok := claims[ClaimUserID].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("%w: missing user_id", ErrJwtInvalidToken)
	}
	email, _ = claims[ClaimEmail].(string)
	if typ, _ := claims[ClaimType].(string); typ != ClaimVerificationValue {
		return "", "", fmt.Errorf("%w: wrong type claim %q", ErrJwtInvalidToken, typ)
	}
	return userID, email, nil
}

// validateAccessClaims enforces presence of the claims the middleware
// depends on. The parser validates values of standard claims when present,
// it does not enforce presence of custom ones.
func validateAccessClaims(claims jwt.MapClaims) error {
	userID, ok := claims[ClaimUserID].(string)
	if !ok || userID == "" {
		return fmt.Errorf("%w: missing user_id", ErrJwtInvalidToken)
	}
	if _, ok := claims[ClaimVerified].(bool); !ok {
		return fmt.Errorf("%w: missing verified claim", ErrJwtInvalidToken)
	}
	role, ok := claims[ClaimRole].(string)
	if !ok || role == "" {
		return fmt.Errorf("%w: missing role claim", ErrJwtInvalidToken)
	}
	if typ, _ := claims[ClaimType].(string); typ != ClaimAccessValue {
		return fmt.Errorf("%w: wrong type claim %q", ErrJwtInvalidToken, typ)
	}
	return nil
}
