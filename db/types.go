package db

import (
	"encoding/json"
	"time"
)

// Job represents a job in the processing queue.
type Job struct {
	ID           int64           `json:"id"`
	JobType      string          `json:"job_type"`
	Payload      json.RawMessage `json:"payload"`       // unique payload part
	PayloadExtra json.RawMessage `json:"payload_extra"` // non-unique payload part
	Status       string          `json:"status"`
	Attempts     int             `json:"attempts"`
	MaxAttempts  int             `json:"max_attempts"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	ScheduledFor time.Time       `json:"scheduled_for"`
	LockedAt     time.Time       `json:"locked_at,omitempty"`
	CompletedAt  time.Time       `json:"completed_at,omitempty"`
	LastError    string          `json:"last_error,omitempty"`
}

// Product is a catalog record. Price is stored in cents to avoid floating
// point drift.
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	VendorID    string
	Created     time.Time
	Updated     time.Time
}

// CartItem links a user to a product with a quantity.
type CartItem struct {
	UserID    string
	ProductID string
	Quantity  int
	Added     time.Time
}

// Purchase is an order created from a cart snapshot. Items holds the JSON
// encoded cart lines at purchase time; the tracking and invoice numbers are
// opaque identifiers generated at creation.
type Purchase struct {
	ID             string
	UserID         string
	Items          json.RawMessage
	TotalCents     int64
	TrackingNumber string
	InvoiceNumber  string
	AddressID      string
	Created        time.Time
}

// Address is a shipping address owned by a user.
type Address struct {
	ID      string
	UserID  string
	Line1   string
	Line2   string
	City    string
	Region  string
	Postal  string
	Country string
	Created time.Time
	Updated time.Time
}

// Review is a product review. One review per (user, product); writing a
// second one replaces the first.
type Review struct {
	UserID    string
	ProductID string
	Rating    int
	Comment   string
	Created   time.Time
	Updated   time.Time
}
