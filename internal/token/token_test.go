package token

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proconsult/onboard/internal/api"
	"github.com/proconsult/onboard/internal/config"
	"github.com/proconsult/onboard/internal/storage"
)

var testCreds = config.CredentialsConfig{ClientID: "id", ClientSecret: "secret", Scope: "api"}

func newServer(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.NewClient(api.Options{Services: config.ServiceURLs{Identity: srv.URL}})
}

func TestEnsureToken_AcquiresOnceAndReuses(t *testing.T) {
	var calls atomic.Int32
	var grant map[string]string
	var auth string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, Path, r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&grant))
		_, _ = io.WriteString(w, `{"access_token":"T1","token_type":"Bearer"}`)
	})
	store := storage.NewSession("test")
	cache := NewCache(client, store, testCreds)
	client.SetTokenSource(cache)

	require.Empty(t, cache.Token())

	tok, err := cache.EnsureToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "T1", tok)

	tok, err = cache.EnsureToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "T1", tok)

	require.EqualValues(t, 1, calls.Load())
	require.Empty(t, auth, "token request is sent without auth")
	require.Equal(t, map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     "id",
		"client_secret": "secret",
		"scope":         "api",
	}, grant)

	stored, ok := store.GetItem(context.Background(), StorageKey)
	require.True(t, ok)
	require.Equal(t, "T1", stored)
	require.Equal(t, "T1", cache.Token())
}

func TestEnsureToken_ConcurrentCallersShareOneRequest(t *testing.T) {
	var calls atomic.Int32
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		_, _ = io.WriteString(w, `{"access_token":"T"}`)
	})
	cache := NewCache(client, storage.NewSession("test"), testCreds)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := cache.EnsureToken(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "T", tok)
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, calls.Load())
}

func TestEnsureToken_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusUnauthorized, body: `{"message":"bad client"}`},
		{name: "missing access_token", status: http.StatusOK, body: `{"token_type":"Bearer"}`},
		{name: "not json", status: http.StatusOK, body: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			cache := NewCache(client, storage.NewSession("test"), testCreds)

			_, err := cache.EnsureToken(context.Background())
			var acqErr *AcquisitionError
			require.ErrorAs(t, err, &acqErr)
			require.Contains(t, err.Error(), "failed to get authentication token")
			require.Empty(t, cache.Token())
			require.EqualValues(t, 1, calls.Load(), "never retried")
		})
	}
}

func TestEnsureToken_HTTPErrorUnwrapsToAPIError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	cache := NewCache(client, storage.NewSession("test"), testCreds)

	_, err := cache.EnsureToken(context.Background())
	require.Equal(t, http.StatusUnauthorized, api.StatusOf(err))
}

func TestClear_ForcesReacquire(t *testing.T) {
	var n atomic.Int32
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1) == 1 {
			_, _ = io.WriteString(w, `{"access_token":"first"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"second"}`)
	})
	cache := NewCache(client, storage.NewSession("test"), testCreds)

	tok, err := cache.EnsureToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "first", tok)

	cache.Clear()
	require.Empty(t, cache.Token())

	tok, err = cache.EnsureToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "second", tok)
}

func TestInspect(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "client-1",
		Issuer:    "identity",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	info := Inspect(signed)
	require.True(t, info.IsJWT)
	require.Equal(t, "client-1", info.Subject)
	require.Equal(t, "identity", info.Issuer)
	require.True(t, exp.Equal(info.ExpiresAt))

	require.Equal(t, Info{}, Inspect("opaque-token"))
}
