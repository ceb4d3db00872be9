// Package token caches the client-credentials bearer token for the
// lifetime of the process.
package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/proconsult/onboard/internal/api"
	"github.com/proconsult/onboard/internal/config"
	"github.com/proconsult/onboard/internal/log"
	"github.com/proconsult/onboard/internal/storage"
)

// StorageKey is the key the token is stored under.
const StorageKey = "pci_access_token"

// Path is the token endpoint on the identity service.
const Path = "/GenerateToken/token"

// ErrMissingToken is wrapped when the token response has no access_token.
var ErrMissingToken = errors.New("no access_token in response")

// AcquisitionError reports a failed token request.
type AcquisitionError struct {
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("failed to get authentication token: %v", e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Requester sends unauthenticated requests. *api.Client satisfies it.
type Requester interface {
	Request(ctx context.Context, r api.Request) (json.RawMessage, error)
}

type grantRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Scope        string `json:"scope"`
}

type grantResponse struct {
	AccessToken string `json:"access_token"`
}

// Cache acquires the token lazily and reuses it until Clear.
type Cache struct {
	client Requester
	store  storage.Store
	creds  config.CredentialsConfig

	// mu serializes acquisition so concurrent callers share one request.
	mu sync.Mutex
}

// NewCache creates a Cache backed by store.
func NewCache(client Requester, store storage.Store, creds config.CredentialsConfig) *Cache {
	return &Cache{client: client, store: store, creds: creds}
}

// Token returns the stored token, or "".
func (c *Cache) Token() string {
	v, _ := c.store.GetItem(context.Background(), StorageKey)
	return v
}

// EnsureToken returns the stored token or acquires a new one. Failures are
// *AcquisitionError and are never retried.
func (c *Cache) EnsureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.store.GetItem(ctx, StorageKey); ok && v != "" {
		return v, nil
	}

	log.Debug(log.CatToken, "Requesting access token", "client_id", c.creds.ClientID)

	raw, err := c.client.Request(ctx, api.Request{
		Method:   http.MethodPost,
		Path:     Path,
		SkipAuth: true,
		Body: grantRequest{
			GrantType:    "client_credentials",
			ClientID:     c.creds.ClientID,
			ClientSecret: c.creds.ClientSecret,
			Scope:        c.creds.Scope,
		},
	})
	if err != nil {
		log.ErrorErr(log.CatToken, "Token request failed", err)
		return "", &AcquisitionError{Err: err}
	}

	var resp grantResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.ErrorErr(log.CatToken, "Token response malformed", err)
		return "", &AcquisitionError{Err: fmt.Errorf("decoding token response: %w", err)}
	}
	if resp.AccessToken == "" {
		log.Error(log.CatToken, "Token response missing access_token")
		return "", &AcquisitionError{Err: ErrMissingToken}
	}

	c.store.SetItem(ctx, StorageKey, resp.AccessToken)
	logClaims(resp.AccessToken)
	return resp.AccessToken, nil
}

// Clear removes the stored token.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.RemoveItem(context.Background(), StorageKey)
	log.Debug(log.CatToken, "Access token cleared")
}

// Info is what Inspect can tell about a token without verifying it.
type Info struct {
	Subject   string
	Issuer    string
	ExpiresAt time.Time
	IsJWT     bool
}

// Inspect decodes the token's claims without verifying the signature.
// Opaque tokens return Info{IsJWT: false}.
func Inspect(tok string) Info {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return Info{}
	}
	info := Info{Subject: claims.Subject, Issuer: claims.Issuer, IsJWT: true}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info
}

func logClaims(tok string) {
	if !log.Enabled() {
		return
	}
	info := Inspect(tok)
	if !info.IsJWT {
		log.Debug(log.CatToken, "Access token acquired", "format", "opaque")
		return
	}
	log.Debug(log.CatToken, "Access token acquired",
		"sub", info.Subject, "iss", info.Issuer, "exp", info.ExpiresAt.Format(time.RFC3339))
}
