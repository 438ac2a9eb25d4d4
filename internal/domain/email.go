package domain

import "regexp"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// ValidEmail reports whether email is syntactically acceptable for signup.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
