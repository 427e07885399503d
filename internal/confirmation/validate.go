package confirmation

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail accepts local@domain.tld where no part holds whitespace or '@'.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Message: "email address is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	return nil
}
