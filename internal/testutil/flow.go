package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/proconsult/onboard/internal/config"
	"github.com/proconsult/onboard/internal/mocks"
	"github.com/proconsult/onboard/internal/mode"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/services"
)

// Currencies is the list the fake currency service returns by default.
var Currencies = []services.Currency{
	{CurrencyID: 3, CurrencyCode: "EUR", CurrencyName: "Euro"},
	{CurrencyID: 1, CurrencyCode: "USD", CurrencyName: "US Dollar"},
	{CurrencyID: 7, CurrencyCode: "PKR", CurrencyName: "Pakistani Rupee"},
}

// Flow bundles a registration controller with the mocks behind it and the
// mode services built on top of it.
type Flow struct {
	t          *testing.T
	Reg        *mocks.MockRegistrationAPI
	Leases     *mocks.MockLeaseAPI
	Currencies *mocks.MockCurrencyAPI
	Passwords  *mocks.MockPasswordUpdater
	Clock      *FakeClock
	Config     config.Config
	Ctrl       *registration.Controller
	Services   mode.Services
}

// NewFlow creates a controller at EMAIL_ENTRY backed by fresh mocks.
func NewFlow(t *testing.T) *Flow {
	t.Helper()
	f := &Flow{
		t:          t,
		Reg:        mocks.NewMockRegistrationAPI(t),
		Leases:     mocks.NewMockLeaseAPI(t),
		Currencies: mocks.NewMockCurrencyAPI(t),
		Passwords:  mocks.NewMockPasswordUpdater(t),
		Clock:      NewFakeClock(),
		Config:     config.Defaults(),
	}
	f.Ctrl = registration.NewController(registration.NewSession(), registration.Deps{
		Registration:    f.Reg,
		Leases:          f.Leases,
		Currencies:      f.Currencies,
		CompanyDefaults: f.Config.CompanyDefaults,
		LeaseDefaults:   f.Config.LeaseDefaults,
		MinOverlay:      7 * time.Second,
		Clock:           f.Clock,
		Suffix:          func() int { return 555 },
	})
	f.Services = mode.Services{
		Config:    &f.Config,
		Flow:      f.Ctrl,
		Passwords: f.Passwords,
		LoginURL:  "https://ifrs16.example.com/",
		Ctx:       t.Context(),
	}
	return f
}

// Verified drives the controller through OTP verification for email.
func (f *Flow) Verified(email string) *Flow {
	f.t.Helper()
	f.Reg.On("SendOtp", mock.Anything, email).Return(&services.SendOtpResponse{Success: true}, nil).Once()
	f.Reg.On("VerifyOtp", mock.Anything, email, "123456").Return(&services.VerifyOtpResponse{Success: true}, nil).Once()
	ctx := context.Background()
	require.NoError(f.t, f.Ctrl.SendOtp(ctx, email))
	for _, d := range "123456" {
		f.Ctrl.TypeDigit(d)
	}
	require.NoError(f.t, f.Ctrl.VerifyOtp(ctx, "123456"))
	return f
}

// CompanyCreated drives a verified controller through company creation,
// recording companyID in the session.
func (f *Flow) CompanyCreated(companyID int) *Flow {
	f.t.Helper()
	email := f.Ctrl.Session().VerifiedEmail()
	f.Currencies.On("GetAllCurrencies", mock.Anything).Return(Currencies, nil).Once()
	f.Reg.On("CheckUserExists", mock.Anything, email).Return(false, nil).Once()
	f.Reg.On("CreateCompany", mock.Anything, mock.Anything).
		Return(&services.CompanyCreated{CompanyID: companyID, Name: "Acme"}, nil).Once()
	ctx := context.Background()
	_, err := f.Ctrl.LoadCurrencies(ctx)
	require.NoError(f.t, err)
	_, err = f.Ctrl.CreateCompany(ctx, registration.CompanyForm{Name: "Acme"})
	require.NoError(f.t, err)
	return f
}
