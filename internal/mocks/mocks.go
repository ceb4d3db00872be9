// Package mocks holds testify mocks of the backend services used by the
// registration flow and the recovery screen.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/proconsult/onboard/internal/services"
)

// MockRegistrationAPI mocks the identity service registration endpoints.
type MockRegistrationAPI struct {
	mock.Mock
}

// NewMockRegistrationAPI creates a mock whose expectations are asserted at
// test cleanup.
func NewMockRegistrationAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRegistrationAPI {
	m := &MockRegistrationAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRegistrationAPI) SendOtp(ctx context.Context, email string) (*services.SendOtpResponse, error) {
	args := m.Called(ctx, email)
	resp, _ := args.Get(0).(*services.SendOtpResponse)
	return resp, args.Error(1)
}

func (m *MockRegistrationAPI) VerifyOtp(ctx context.Context, email, code string) (*services.VerifyOtpResponse, error) {
	args := m.Called(ctx, email, code)
	resp, _ := args.Get(0).(*services.VerifyOtpResponse)
	return resp, args.Error(1)
}

func (m *MockRegistrationAPI) CheckUserExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrationAPI) CreateCompany(ctx context.Context, req services.CompanyRequest) (*services.CompanyCreated, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*services.CompanyCreated)
	return resp, args.Error(1)
}

func (m *MockRegistrationAPI) CreateUser(ctx context.Context, req services.UserRequest) (*services.UserCreated, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*services.UserCreated)
	return resp, args.Error(1)
}

// MockLeaseAPI mocks the lease service.
type MockLeaseAPI struct {
	mock.Mock
}

// NewMockLeaseAPI creates a mock whose expectations are asserted at test
// cleanup.
func NewMockLeaseAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLeaseAPI {
	m := &MockLeaseAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLeaseAPI) CreateDemoLease(ctx context.Context, req services.LeaseRequest) (*services.LeaseCreated, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*services.LeaseCreated)
	return resp, args.Error(1)
}

// MockCurrencyAPI mocks the currency list endpoint.
type MockCurrencyAPI struct {
	mock.Mock
}

// NewMockCurrencyAPI creates a mock whose expectations are asserted at test
// cleanup.
func NewMockCurrencyAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCurrencyAPI {
	m := &MockCurrencyAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCurrencyAPI) GetAllCurrencies(ctx context.Context) ([]services.Currency, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]services.Currency)
	return list, args.Error(1)
}

// MockPasswordUpdater mocks the forgot-password endpoint.
type MockPasswordUpdater struct {
	mock.Mock
}

// NewMockPasswordUpdater creates a mock whose expectations are asserted at
// test cleanup.
func NewMockPasswordUpdater(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordUpdater {
	m := &MockPasswordUpdater{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordUpdater) UpdatePassword(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}
