// Package services wraps the backend endpoints the onboarding flow uses.
// Every call goes through api.Client.AuthenticatedRequest.
package services

import (
	"context"
	"net/http"

	"github.com/proconsult/onboard/internal/api"
	"github.com/proconsult/onboard/internal/log"
)

// Endpoint paths.
const (
	PathSendOtp        = "/Registration/send-otp"
	PathVerifyOtp      = "/Registration/verify-otp"
	PathUserExist      = "/User/UserExist"
	PathCompany        = "/Registration/company"
	PathUser           = "/Registration"
	PathLeaseForm      = "/LeaseFormData"
	PathCurrencies     = "/Currency/GetAllCurrencies"
	PathForgotPassword = "/User/ForgotPassword"
)

// Registration is the identity service registration API.
type Registration struct {
	client api.Doer
}

// NewRegistration creates a Registration service.
func NewRegistration(client api.Doer) *Registration {
	return &Registration{client: client}
}

// SendOtp asks the backend to email a one-time code.
func (s *Registration) SendOtp(ctx context.Context, email string) (*SendOtpResponse, error) {
	resp, err := api.Do[SendOtpResponse](ctx, s.client, api.Request{
		Method: http.MethodPost,
		Path:   PathSendOtp,
		Body:   emailRequest{Email: email},
	})
	if err != nil {
		log.ErrorErr(log.CatAPI, "Send OTP failed", err)
		return nil, err
	}
	return &resp, nil
}

// VerifyOtp checks code for email. Success=false is returned as a response,
// not an error.
func (s *Registration) VerifyOtp(ctx context.Context, email, code string) (*VerifyOtpResponse, error) {
	resp, err := api.Do[VerifyOtpResponse](ctx, s.client, api.Request{
		Method: http.MethodPost,
		Path:   PathVerifyOtp,
		Body:   verifyOtpRequest{Email: email, OTP: code},
	})
	if err != nil {
		log.ErrorErr(log.CatAPI, "Verify OTP failed", err)
		return nil, err
	}
	return &resp, nil
}

// CheckUserExists reports whether a user is registered with email.
func (s *Registration) CheckUserExists(ctx context.Context, email string) (bool, error) {
	exists, err := api.Do[bool](ctx, s.client, api.Request{
		Method: http.MethodPost,
		Path:   PathUserExist,
		Body:   emailRequest{Email: email},
	})
	if err != nil {
		log.ErrorErr(log.CatAPI, "User existence check failed", err)
		return false, err
	}
	return exists, nil
}

// CreateCompany registers a company. An unsuccessful envelope or a
// non-positive company id is a *BusinessRuleError.
func (s *Registration) CreateCompany(ctx context.Context, req CompanyRequest) (*CompanyCreated, error) {
	env, err := api.Do[Envelope[CompanyCreated]](ctx, s.client, api.Request{
		Method: http.MethodPost,
		Path:   PathCompany,
		Body:   req,
	})
	if err != nil {
		log.ErrorErr(log.CatAPI, "Create company failed", err)
		return nil, err
	}
	if !env.Success {
		err := &BusinessRuleError{Op: "create company", Message: firstNonEmpty(env.Message, env.Error, "Failed to initialize company profile")}
		log.ErrorErr(log.CatAPI, "Create company rejected", err)
		return nil, err
	}
	if env.Data == nil || env.Data.CompanyID <= 0 {
		err := &BusinessRuleError{Op: "create company", Message: "Server error: Invalid company ID received."}
		log.ErrorErr(log.CatAPI, "Create company returned no id", err)
		return nil, err
	}
	log.Info(log.CatAPI, "Company created", "company_id", env.Data.CompanyID)
	return env.Data, nil
}

// CreateUser registers the administrator. A response without a user id is
// a *UserCreationError.
func (s *Registration) CreateUser(ctx context.Context, req UserRequest) (*UserCreated, error) {
	env, err := api.Do[Envelope[UserCreated]](ctx, s.client, api.Request{
		Method: http.MethodPost,
		Path:   PathUser,
		Body:   req,
	})
	if err != nil {
		log.ErrorErr(log.CatAPI, "Create user failed", err)
		return nil, err
	}
	if !env.Success || env.Data == nil || env.Data.UserID == 0 {
		err := &UserCreationError{Message: firstNonEmpty(env.Error, env.Message, "Failed to create user")}
		log.ErrorErr(log.CatAPI, "Create user rejected", err)
		return nil, err
	}
	log.Info(log.CatAPI, "User created", "user_id", env.Data.UserID)
	return env.Data, nil
}

// Lease is the IFRS 16 lease API.
type Lease struct {
	client api.Doer
}

// NewLease creates a Lease service.
func NewLease(client api.Doer) *Lease {
	return &Lease{client: client}
}

// CreateDemoLease submits the demo lease to the lease service.
func (s *Lease) CreateDemoLease(ctx context.Context, req LeaseRequest) (*LeaseCreated, error) {
	resp, err := api.Do[*LeaseCreated](ctx, s.client, api.Request{
		Method:  http.MethodPost,
		Path:    PathLeaseForm,
		Body:    req,
		BaseURL: s.client.IFRS16URL(),
	})
	if err != nil {
		log.ErrorErr(log.CatAPI, "Create demo lease failed", err)
		return nil, err
	}
	if resp == nil || resp.LeaseID == 0 {
		err := &BusinessRuleError{Op: "create demo lease", Message: "Failed to create lease"}
		log.ErrorErr(log.CatAPI, "Create demo lease returned no id", err)
		return nil, err
	}
	log.Info(log.CatAPI, "Demo lease created", "lease_id", resp.LeaseID)
	return resp, nil
}

// Currencies is the IFRS 16 currency API.
type Currencies struct {
	client api.Doer
}

// NewCurrencies creates a Currencies service.
func NewCurrencies(client api.Doer) *Currencies {
	return &Currencies{client: client}
}

// GetAllCurrencies lists the currencies a company can report in.
func (s *Currencies) GetAllCurrencies(ctx context.Context) ([]Currency, error) {
	list, err := api.Do[[]Currency](ctx, s.client, api.Request{
		Method:  http.MethodGet,
		Path:    PathCurrencies,
		BaseURL: s.client.IFRS16URL(),
	})
	if err != nil {
		log.ErrorErr(log.CatAPI, "Fetching currencies failed", err)
		return nil, err
	}
	log.Debug(log.CatAPI, "Currencies loaded", "count", len(list))
	return list, nil
}

// ForgotPassword is the password recovery API.
type ForgotPassword struct {
	client api.Doer
}

// NewForgotPassword creates a ForgotPassword service.
func NewForgotPassword(client api.Doer) *ForgotPassword {
	return &ForgotPassword{client: client}
}

// UpdatePassword sets a new password for email.
func (s *ForgotPassword) UpdatePassword(ctx context.Context, email, password string) error {
	_, err := s.client.AuthenticatedRequest(ctx, api.Request{
		Method: http.MethodPost,
		Path:   PathForgotPassword,
		Body:   passwordRequest{Email: email, Password: password},
	})
	if err != nil {
		log.ErrorErr(log.CatAPI, "Password update failed", err)
		return err
	}
	log.Info(log.CatAPI, "Password updated")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
