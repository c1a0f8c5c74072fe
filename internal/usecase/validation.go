package usecase

import "regexp"

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the address has a plausible mailbox@domain shape.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword checks the password satisfies the minimum length policy.
func ValidatePassword(password string) bool {
	return len(password) >= minPasswordLength
}
