package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proconsult/onboard/internal/api"
	"github.com/proconsult/onboard/internal/config"
)

type fixedToken string

func (f fixedToken) Token() string { return string(f) }

func (f fixedToken) EnsureToken(context.Context) (string, error) { return string(f), nil }

type route struct {
	status int
	body   string
}

type recorded struct {
	path   string
	auth   string
	body   map[string]any
	method string
}

type callLog struct {
	mu    sync.Mutex
	calls []recorded
}

func (l *callLog) at(i int) recorded {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[i]
}

func (l *callLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

// newBackend serves fixed responses per path and records every request.
func newBackend(t *testing.T, routes map[string]route) (*api.Client, *callLog) {
	t.Helper()
	calls := &callLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{path: r.URL.Path, auth: r.Header.Get("Authorization"), method: r.Method}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		calls.mu.Lock()
		calls.calls = append(calls.calls, rec)
		calls.mu.Unlock()

		rt, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if rt.status != 0 {
			w.WriteHeader(rt.status)
		}
		_, _ = io.WriteString(w, rt.body)
	}))
	t.Cleanup(srv.Close)

	c := api.NewClient(api.Options{Services: config.ServiceURLs{Identity: srv.URL, IFRS16: srv.URL + "/ifrs"}})
	c.SetTokenSource(fixedToken("tok"))
	return c, calls
}

func TestRegistration_SendAndVerifyOtp(t *testing.T) {
	c, calls := newBackend(t, map[string]route{
		PathSendOtp:   {body: `{"success":true,"message":"OTP sent","data":{"email":"a@b.com"}}`},
		PathVerifyOtp: {body: `{"success":false,"message":"Invalid"}`},
	})
	svc := NewRegistration(c)

	sent, err := svc.SendOtp(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.True(t, sent.Success)
	require.Equal(t, "a@b.com", sent.Data.Email)

	verified, err := svc.VerifyOtp(context.Background(), "a@b.com", "123456")
	require.NoError(t, err, "success=false is not an error")
	require.False(t, verified.Success)

	require.Equal(t, 2, calls.len())
	require.Equal(t, map[string]any{"email": "a@b.com"}, calls.at(0).body)
	require.Equal(t, map[string]any{"email": "a@b.com", "otp": "123456"}, calls.at(1).body)
	require.Equal(t, "Bearer tok", calls.at(1).auth)
}

func TestRegistration_CheckUserExists(t *testing.T) {
	c, _ := newBackend(t, map[string]route{PathUserExist: {body: `true`}})
	exists, err := NewRegistration(c).CheckUserExists(context.Background(), "dup@test.com")
	require.NoError(t, err)
	require.True(t, exists)

	c, _ = newBackend(t, map[string]route{PathUserExist: {body: `"yes"`}})
	_, err = NewRegistration(c).CheckUserExists(context.Background(), "dup@test.com")
	require.ErrorContains(t, err, "decoding response")
}

func TestRegistration_CreateCompany(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantID  int
		wantErr string
	}{
		{name: "success", body: `{"success":true,"message":"ok","data":{"companyId":42,"name":"Acme"}}`, wantID: 42},
		{name: "rejected", body: `{"success":false,"message":"Duplicate company"}`, wantErr: "Duplicate company"},
		{name: "zero id", body: `{"success":true,"data":{"companyId":0}}`, wantErr: "Invalid company ID"},
		{name: "no data", body: `{"success":true}`, wantErr: "Invalid company ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, calls := newBackend(t, map[string]route{PathCompany: {body: tt.body}})
			got, err := NewRegistration(c).CreateCompany(context.Background(), CompanyRequest{Name: "Acme", RegistrationNumber: "Acme123"})
			if tt.wantErr != "" {
				var br *BusinessRuleError
				require.ErrorAs(t, err, &br)
				require.Contains(t, br.Message, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, got.CompanyID)
			require.Equal(t, "Acme123", calls.at(0).body["registrationNumber"])
			require.EqualValues(t, 0, calls.at(0).body["companyID"])
		})
	}
}

func TestRegistration_CreateUser(t *testing.T) {
	c, calls := newBackend(t, map[string]route{
		PathUser: {body: `{"success":true,"data":{"userId":7,"email":"a@b.com","username":"jdoe"}}`},
	})
	got, err := NewRegistration(c).CreateUser(context.Background(), UserRequest{
		Username: "jdoe", PasswordHash: "Str0ng!Pass", Email: "a@b.com", CompanyID: "42", Role: "Admin",
	})
	require.NoError(t, err)
	require.Equal(t, 7, got.UserID)
	require.Equal(t, "42", calls.at(0).body["companyID"])
	require.Equal(t, "Admin", calls.at(0).body["role"])

	c, _ = newBackend(t, map[string]route{PathUser: {body: `{"success":false,"error":"Username taken"}`}})
	_, err = NewRegistration(c).CreateUser(context.Background(), UserRequest{})
	var ue *UserCreationError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, "Username taken", ue.Message)

	c, _ = newBackend(t, map[string]route{PathUser: {body: `{"success":true,"data":{"userId":0}}`}})
	_, err = NewRegistration(c).CreateUser(context.Background(), UserRequest{})
	require.ErrorAs(t, err, &ue)
	require.Equal(t, "Failed to create user", ue.Message)
}

func TestRegistration_HTTPErrorPassesThrough(t *testing.T) {
	c, _ := newBackend(t, map[string]route{PathSendOtp: {status: http.StatusBadRequest, body: `{"message":"Too many requests"}`}})
	_, err := NewRegistration(c).SendOtp(context.Background(), "a@b.com")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Too many requests", apiErr.Message)
}

func TestLease_CreateDemoLeaseUsesLeaseService(t *testing.T) {
	c, calls := newBackend(t, map[string]route{"/ifrs" + PathLeaseForm: {body: `{"leaseId":99}`}})
	got, err := NewLease(c).CreateDemoLease(context.Background(), LeaseRequest{
		LeaseData: DemoLease{LeaseName: "Demo", CompanyID: 42, UserID: "7"},
	})
	require.NoError(t, err)
	require.Equal(t, 99, got.LeaseID)

	body := calls.at(0).body
	require.Contains(t, body, "LessorData")
	require.Nil(t, body["LessorData"])
	lease := body["LeaseData"].(map[string]any)
	require.EqualValues(t, 42, lease["companyId"])
	require.Equal(t, "7", lease["userId"])
	require.Nil(t, lease["grv"])

	c, _ = newBackend(t, map[string]route{"/ifrs" + PathLeaseForm: {body: `{}`}})
	_, err = NewLease(c).CreateDemoLease(context.Background(), LeaseRequest{})
	var br *BusinessRuleError
	require.ErrorAs(t, err, &br)

	c, _ = newBackend(t, map[string]route{"/ifrs" + PathLeaseForm: {}})
	_, err = NewLease(c).CreateDemoLease(context.Background(), LeaseRequest{})
	require.ErrorAs(t, err, &br, "empty body is not a lease")
}

func TestCurrencies_GetAll(t *testing.T) {
	c, calls := newBackend(t, map[string]route{
		"/ifrs" + PathCurrencies: {body: `[{"currencyID":1,"currencyCode":"USD","currencyName":"US Dollar"},{"currencyID":2,"currencyCode":"PKR","currencyName":"Rupee"}]`},
	})
	list, err := NewCurrencies(c).GetAllCurrencies(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Currency{
		{CurrencyID: 1, CurrencyCode: "USD", CurrencyName: "US Dollar"},
		{CurrencyID: 2, CurrencyCode: "PKR", CurrencyName: "Rupee"},
	}, list)
	require.Equal(t, http.MethodGet, calls.at(0).method)
}

func TestForgotPassword_UpdatePassword(t *testing.T) {
	c, calls := newBackend(t, map[string]route{PathForgotPassword: {}})
	require.NoError(t, NewForgotPassword(c).UpdatePassword(context.Background(), "a@b.com", "N3w!Passw"))
	require.Equal(t, map[string]any{"email": "a@b.com", "password": "N3w!Passw"}, calls.at(0).body)

	c, _ = newBackend(t, map[string]route{})
	err := NewForgotPassword(c).UpdatePassword(context.Background(), "a@b.com", "N3w!Passw")
	require.Equal(t, http.StatusNotFound, api.StatusOf(err))
}
