package registration

import (
	"errors"
	"strings"

	"github.com/proconsult/onboard/internal/api"
	"github.com/proconsult/onboard/internal/services"
)

// Sentinel errors returned by the controller.
var (
	ErrBusy            = errors.New("a request is already in progress")
	ErrNoVerifiedEmail = errors.New("no verified email")
	ErrNoChallenge     = errors.New("no OTP has been sent")
	ErrOTPExpired      = errors.New("OTP expired. Please request a new one.")
	ErrNoCurrencies    = errors.New("No currencies available")
	ErrStepComplete    = errors.New("This step is already complete")
)

// Fixed user-facing messages.
const (
	MsgInvalidOTP      = "Invalid OTP. Please try again."
	MsgOTPLength       = "Please enter a 6-digit OTP"
	MsgEmailRegistered = "This email is already registered. Please use a different email."
	MsgCompanyName     = "Company name is required"
	MsgUsername        = "Username is required"
)

// ValidationError lists every problem found in user input. No request was
// made.
type ValidationError struct {
	Field    string
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func invalid(field string, messages ...string) *ValidationError {
	return &ValidationError{Field: field, Messages: messages}
}

// ErrRedirect tells the caller to navigate elsewhere because the session
// is missing a prerequisite for the requested step.
type ErrRedirect struct {
	To Route
}

func (e ErrRedirect) Error() string {
	return "redirect to " + string(e.To)
}

// RedirectOf returns the redirect target carried by err.
func RedirectOf(err error) (Route, bool) {
	var r ErrRedirect
	if errors.As(err, &r) {
		return r.To, true
	}
	return "", false
}

// Message returns the text to show the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		ve *ValidationError
		br *services.BusinessRuleError
		ue *services.UserCreationError
		ae *api.Error
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &br):
		return br.Message
	case errors.As(err, &ue):
		return ue.Message
	case errors.As(err, &ae):
		return ae.Message
	default:
		return err.Error()
	}
}
