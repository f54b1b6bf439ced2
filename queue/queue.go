package queue

import (
	"time"
)

// Job types
const (
	JobTypeVerificationLink = "job_type_verification_link"
)

// Job statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// PayloadVerificationLink identifies a user whose signed verification link
// should be emailed. CooldownBucket makes the payload unique per time
// window, so the queue's dedup index limits requests to one per bucket.
type PayloadVerificationLink struct {
	Email string `json:"email"`
	// CooldownBucket is the time bucket number calculated from the current
	// time divided by the cooldown duration. The unique constraint on
	// (job_type, payload) then allows at most one pending job per bucket.
	CooldownBucket int `json:"cooldown_bucket"`
}

// CoolDownBucket calculates which time bucket t falls into for the given
// duration period. It returns the number of complete duration periods
// since the Unix epoch.
//
// Multiple requests within the same period get the same bucket number,
// which gives a simple rate limit: a request at the end of a bucket can be
// followed by another shortly after the bucket rolls over, but never two
// within one bucket.
//
// Panics if duration is zero or negative.
func CoolDownBucket(duration time.Duration, t time.Time) int {
	if duration <= 0 {
		panic("duration must be positive")
	}

	return int(t.Unix() / int64(duration.Seconds()))
}
