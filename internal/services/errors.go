package services

import "fmt"

// BusinessRuleError is a well-formed response that the backend marked as
// unsuccessful, or one missing the id the flow depends on.
type BusinessRuleError struct {
	Op      string
	Message string
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// UserCreationError reports a user creation response without a user id.
type UserCreationError struct {
	Message string
}

func (e *UserCreationError) Error() string {
	return e.Message
}
