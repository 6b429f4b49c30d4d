// Package validation implements the account input policies enforced at
// signup and profile updates.
package validation

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

var (
	emailRegex          = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	passwordSymbolRegex = regexp.MustCompile(`[!@#$%^&*]`)
)

// ValidateEmail requires the local@domain.tld shape and at least 5
// characters overall.
func ValidateEmail(email string) error {
	if utf8.RuneCountInString(email) < 5 {
		return fmt.Errorf("email must be at least 5 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces 8-20 characters with at least one lowercase
// letter, one uppercase letter, one digit and one of !@#$%^&*.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < 8 || n > 20 {
		return fmt.Errorf("password must be 8-20 characters")
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower {
		return fmt.Errorf("password must contain a lowercase letter")
	}
	if !hasUpper {
		return fmt.Errorf("password must contain an uppercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain a digit")
	}
	if !passwordSymbolRegex.MatchString(password) {
		return fmt.Errorf("password must contain one of !@#$%%^&*")
	}
	return nil
}

// ValidateNickname requires a non-empty nickname of at most 10 characters
// with no whitespace.
func ValidateNickname(nickname string) error {
	if nickname == "" {
		return fmt.Errorf("nickname is required")
	}
	if utf8.RuneCountInString(nickname) > 10 {
		return fmt.Errorf("nickname must be at most 10 characters")
	}
	for _, r := range nickname {
		if unicode.IsSpace(r) {
			return fmt.Errorf("nickname must not contain whitespace")
		}
	}
	return nil
}
