package notify

import (
	"context"
)

type Kind int

const (
	// VerificationCode carries a one-time email verification code.
	VerificationCode Kind = iota
	// ForgotPasswordCode carries a one-time password reset code.
	ForgotPasswordCode
	// VerificationLink carries a signed email verification URL.
	VerificationLink
)

func (k Kind) String() string {
	switch k {
	case VerificationCode:
		return "VerificationCode"
	case ForgotPasswordCode:
		return "ForgotPasswordCode"
	case VerificationLink:
		return "VerificationLink"
	default:
		return "Unknown"
	}
}

// Message is a single transactional email. Code is set for the one-time
// code kinds, URL for the link kind.
type Message struct {
	Kind      Kind
	Recipient string
	Code      string
	URL       string
}

// Notifier delivers transactional messages to users.
// Implementations MUST be safe for concurrent use by multiple goroutines.
//
// The one-time code flows call Send synchronously and persist their code
// digests only after it returns nil, so implementations must not report
// success before the message is accepted for delivery.
type Notifier interface {
	Send(ctx context.Context, m Message) error
}
