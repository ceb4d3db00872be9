// Package validate holds the client-side field checks run before any form
// reaches the network.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Email messages.
const (
	MsgEmailRequired = "Email is required"
	MsgEmailEmpty    = "Email cannot be empty"
	MsgEmailDomain   = "Email must end with .com, .uk, or .pk domain"
)

// emailPattern is an allow-list of top-level domains, not an RFC validator.
// The local part and domain reject every Unicode space separator, vertical
// tab and BOM, not only ASCII whitespace.
var emailPattern = regexp.MustCompile(`^[^\s\x{0B}\p{Z}\x{FEFF}@]+@[^\s\x{0B}\p{Z}\x{FEFF}@]+\.(com|uk|pk)$`)

// EmailResult is the outcome of Email.
type EmailResult struct {
	Valid bool
	Error string
}

// Email checks that email is present and ends in an allowed domain.
func Email(email string) EmailResult {
	switch {
	case email == "":
		return EmailResult{Error: MsgEmailRequired}
	case strings.TrimSpace(email) == "":
		return EmailResult{Error: MsgEmailEmpty}
	case !emailPattern.MatchString(email):
		return EmailResult{Error: MsgEmailDomain}
	}
	return EmailResult{Valid: true}
}

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 8

// Password messages.
const (
	MsgPasswordRequired  = "Password is required"
	MsgPasswordUppercase = "Password must contain at least one uppercase letter (A-Z)"
	MsgPasswordLowercase = "Password must contain at least one lowercase letter (a-z)"
	MsgPasswordNumber    = "Password must contain at least one number (0-9)"
	MsgPasswordSpecial   = "Password must contain at least one special character (!@#$%^&*)"
	MsgPasswordMismatch  = "Passwords do not match"
)

// MsgPasswordLength is reported when the password is too short.
var MsgPasswordLength = fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength)

var (
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	numberPattern  = regexp.MustCompile(`\d`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

// PasswordResult lists every unmet requirement.
type PasswordResult struct {
	Strong bool
	Errors []string
}

// Password reports every strength requirement password fails.
func Password(password string) PasswordResult {
	if password == "" {
		return PasswordResult{Errors: []string{MsgPasswordRequired}}
	}

	var errs []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs = append(errs, MsgPasswordLength)
	}
	if !upperPattern.MatchString(password) {
		errs = append(errs, MsgPasswordUppercase)
	}
	if !lowerPattern.MatchString(password) {
		errs = append(errs, MsgPasswordLowercase)
	}
	if !numberPattern.MatchString(password) {
		errs = append(errs, MsgPasswordNumber)
	}
	if !specialPattern.MatchString(password) {
		errs = append(errs, MsgPasswordSpecial)
	}
	return PasswordResult{Strong: len(errs) == 0, Errors: errs}
}

// NewPassword validates a password together with its confirmation and
// returns every problem found. An empty slice means the pair is acceptable.
func NewPassword(password, confirm string) []string {
	errs := Password(password).Errors
	if password != confirm {
		errs = append(errs, MsgPasswordMismatch)
	}
	return errs
}

// OTP reports whether code is exactly six ASCII digits.
func OTP(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
