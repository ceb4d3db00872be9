package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/proconsult/onboard/internal/api"
	"github.com/proconsult/onboard/internal/config"
	"github.com/proconsult/onboard/internal/log"
	"github.com/proconsult/onboard/internal/mode"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/services"
	"github.com/proconsult/onboard/internal/storage"
	"github.com/proconsult/onboard/internal/token"
	"github.com/proconsult/onboard/internal/tracing"
)

// runtime holds the objects shared by every command: the API client, its
// token cache and the tracer provider.
type runtime struct {
	cfg     config.Config
	urls    config.ServiceURLs
	client  *api.Client
	tokens  *token.Cache
	tracing *tracing.Provider

	registration *services.Registration
	leases       *services.Lease
	currencies   *services.CachedCurrencies
	passwords    *services.ForgotPassword
}

func newRuntime(cfg config.Config) (*runtime, error) {
	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}

	urls := cfg.ResolveServices(cfg.Host, os.Getenv)
	log.Info(log.CatConfig, "Using services", "identity", urls.Identity, "ifrs16", urls.IFRS16)

	client := api.NewClient(api.Options{
		Services: urls,
		Timeout:  cfg.Timeout(),
		Version:  version,
		Tracer:   tp.Tracer(),
	})
	tokens := token.NewCache(client, storage.NewSession("onboard"), cfg.Credentials)
	client.SetTokenSource(tokens)

	return &runtime{
		cfg:          cfg,
		urls:         urls,
		client:       client,
		tokens:       tokens,
		tracing:      tp,
		registration: services.NewRegistration(client),
		leases:       services.NewLease(client),
		currencies:   services.NewCachedCurrencies(services.NewCurrencies(client), cfg.API.CurrencyTTL),
		passwords:    services.NewForgotPassword(client),
	}, nil
}

// Services builds the screen services around a fresh registration session.
func (r *runtime) Services(ctx context.Context) mode.Services {
	flow := registration.NewController(registration.NewSession(), registration.Deps{
		Registration:    r.registration,
		Leases:          r.leases,
		Currencies:      r.currencies,
		CompanyDefaults: r.cfg.CompanyDefaults,
		LeaseDefaults:   r.cfg.LeaseDefaults,
		MinOverlay:      r.cfg.MinOverlay(),
	})
	return mode.Services{
		Config:    &r.cfg,
		Flow:      flow,
		Passwords: r.passwords,
		LoginURL:  strings.TrimRight(r.urls.IFRS16, "/") + "/",
		Ctx:       ctx,
	}
}

// Close flushes pending spans.
func (r *runtime) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.tracing.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
	}
}
