package model

import "time"

// VerificationToken is a one-time token confirming ownership of an email address.
type VerificationToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}
