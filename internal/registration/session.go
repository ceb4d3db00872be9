// Package registration holds the onboarding wizard's state and the flow
// controller that drives it.
package registration

import "sync"

// Session is the state shared by the wizard steps. A company id is only
// ever recorded for a verified email.
type Session struct {
	mu            sync.RWMutex
	verifiedEmail string
	companyID     int
	currencyID    int
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Verify records email as verified. It clears any company recorded for a
// previous email.
func (s *Session) Verify(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verifiedEmail != email {
		s.companyID = 0
		s.currencyID = 0
	}
	s.verifiedEmail = email
}

// WithCompany records the created company and its reporting currency.
func (s *Session) WithCompany(companyID, currencyID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verifiedEmail == "" {
		return ErrNoVerifiedEmail
	}
	s.companyID = companyID
	s.currencyID = currencyID
	return nil
}

// Reset clears every field.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifiedEmail = ""
	s.companyID = 0
	s.currencyID = 0
}

// VerifiedEmail returns the verified email or "".
func (s *Session) VerifiedEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verifiedEmail
}

// CompanyID returns the created company id or 0.
func (s *Session) CompanyID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.companyID
}

// CurrencyID returns the company's reporting currency id or 0.
func (s *Session) CurrencyID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currencyID
}
