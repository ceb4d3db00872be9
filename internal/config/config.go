// Package config provides configuration types, defaults and validation for
// onboard.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds all configuration options for onboard.
type Config struct {
	// Host plays the role of the browser hostname: it selects which
	// deployment's service URLs are used.
	Host  string `mapstructure:"host" yaml:"host"`
	Debug bool   `mapstructure:"debug" yaml:"debug"`

	// AppCode is the IFRS 16 application code shown in the header.
	AppCode string `mapstructure:"app_code" yaml:"app_code"`

	API             APIConfig          `mapstructure:"api" yaml:"api"`
	Credentials     CredentialsConfig  `mapstructure:"credentials" yaml:"credentials"`
	Deployments     []DeploymentConfig `mapstructure:"deployments" yaml:"deployments"`
	CompanyDefaults CompanyDefaults    `mapstructure:"company_defaults" yaml:"company_defaults"`
	LeaseDefaults   LeaseDefaults      `mapstructure:"lease_defaults" yaml:"lease_defaults"`
	UI              UIConfig           `mapstructure:"ui" yaml:"ui"`
	Tracing         TracingConfig      `mapstructure:"tracing" yaml:"tracing"`
}

// APIConfig holds the fallback service pair and the request timeout.
type APIConfig struct {
	IdentityService string        `mapstructure:"identity_service" yaml:"identity_service"`
	IFRS16Service   string        `mapstructure:"ifrs16_service" yaml:"ifrs16_service"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// CurrencyTTL is how long the currency list is reused; 0 refetches
	// every time.
	CurrencyTTL time.Duration `mapstructure:"currency_ttl" yaml:"currency_ttl"`
}

// CredentialsConfig is the client-credentials grant used to obtain the
// bearer token.
type CredentialsConfig struct {
	ClientID     string `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret string `mapstructure:"client_secret" yaml:"client_secret"`
	Scope        string `mapstructure:"scope" yaml:"scope"`
}

// DeploymentConfig maps a set of known hosts to a service pair. A URL left
// empty is read from the environment variable named by the matching *Env
// field.
type DeploymentConfig struct {
	Name            string   `mapstructure:"name" yaml:"name"`
	Hosts           []string `mapstructure:"hosts" yaml:"hosts"`
	IdentityService string   `mapstructure:"identity_service" yaml:"identity_service,omitempty"`
	IFRS16Service   string   `mapstructure:"ifrs16_service" yaml:"ifrs16_service,omitempty"`
	IdentityEnv     string   `mapstructure:"identity_env" yaml:"identity_env,omitempty"`
	IFRS16Env       string   `mapstructure:"ifrs16_env" yaml:"ifrs16_env,omitempty"`
}

// CompanyDefaults are the organisational settings every new company gets.
type CompanyDefaults struct {
	ReportingCurrencyID   int    `mapstructure:"reporting_currency_id" yaml:"reporting_currency_id"`
	ReportingCurrencyCode string `mapstructure:"reporting_currency_code" yaml:"reporting_currency_code"`
	FinancialYearEnd      string `mapstructure:"financial_year_end" yaml:"financial_year_end"`
	LeaseTypes            string `mapstructure:"lease_types" yaml:"lease_types"`
	AssetTypes            string `mapstructure:"asset_types" yaml:"asset_types"`
	AllowedUsers          int    `mapstructure:"allowed_users" yaml:"allowed_users"`
	AllowedLeases         int    `mapstructure:"allowed_leases" yaml:"allowed_leases"`
	LicenseMonths         int    `mapstructure:"license_months" yaml:"license_months"`
}

// LeaseDefaults describe the demo lease provisioned for every new account.
type LeaseDefaults struct {
	LeaseID              int      `mapstructure:"lease_id" yaml:"lease_id"`
	LeaseName            string   `mapstructure:"lease_name" yaml:"lease_name"`
	Rental               float64  `mapstructure:"rental" yaml:"rental"`
	CommencementDate     string   `mapstructure:"commencement_date" yaml:"commencement_date"`
	EndDate              string   `mapstructure:"end_date" yaml:"end_date"`
	Annuity              string   `mapstructure:"annuity" yaml:"annuity"`
	IBR                  float64  `mapstructure:"ibr" yaml:"ibr"`
	Frequency            string   `mapstructure:"frequency" yaml:"frequency"`
	AssetType            string   `mapstructure:"asset_type" yaml:"asset_type"`
	CurrencyID           int      `mapstructure:"currency_id" yaml:"currency_id"`
	IncrementalFrequency string   `mapstructure:"incremental_frequency" yaml:"incremental_frequency"`
	IsActive             bool     `mapstructure:"is_active" yaml:"is_active"`
	LastModifiedDate     string   `mapstructure:"last_modified_date" yaml:"last_modified_date"`
	IsLeaseModified      bool     `mapstructure:"is_lease_modified" yaml:"is_lease_modified"`
	ParentLeaseID        *int     `mapstructure:"parent_lease_id" yaml:"parent_lease_id"`
	GRV                  *float64 `mapstructure:"grv" yaml:"grv"`
	IDC                  *float64 `mapstructure:"idc" yaml:"idc"`
	Increment            *float64 `mapstructure:"increment" yaml:"increment"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"` // "dark" (default) or "light"

	// MinOverlay is how long the setup overlay stays up at minimum.
	MinOverlay time.Duration `mapstructure:"min_overlay" yaml:"min_overlay"`

	// Brand colors as hex strings; empty keeps the built-in palette.
	PrimaryColor   string `mapstructure:"primary_color" yaml:"primary_color,omitempty"`
	SecondaryColor string `mapstructure:"secondary_color" yaml:"secondary_color,omitempty"`
}

// TracingConfig holds OpenTelemetry export options.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled" yaml:"enabled"`
	Exporter     string  `mapstructure:"exporter" yaml:"exporter"` // none, file, stdout, otlp
	FilePath     string  `mapstructure:"file_path" yaml:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// Default service URLs used when neither config nor environment supply one.
const (
	DefaultIdentityService = "https://localhost:7269"
	DefaultIFRS16Service   = "https://localhost:7151"
	DefaultTimeout         = 30 * time.Second
	DefaultMinOverlay      = 7 * time.Second
	DefaultCurrencyTTL     = 10 * time.Minute
)

// Environment variables holding the service URLs of the built-in deployments.
const (
	EnvIdentityService     = "ONBOARD_PCI_IDENTITY_SERVICE"
	EnvIFRS16Service       = "ONBOARD_IFRS16_SERVICE"
	EnvIdentityServiceProd = "ONBOARD_PCI_IDENTITY_SERVICE_PROD"
	EnvIFRS16ServiceProd   = "ONBOARD_IFRS16_SERVICE_PROD"
)

// DefaultDeployments returns the known production hosts.
func DefaultDeployments() []DeploymentConfig {
	return []DeploymentConfig{
		{
			Name:        "pci",
			Hosts:       []string{"ifrs16.ifrs.ca", "ifrspci.ifrs.ca"},
			IdentityEnv: EnvIdentityService,
			IFRS16Env:   EnvIFRS16Service,
		},
		{
			Name:        "tool",
			Hosts:       []string{"ifrs16-tool.ifrs.ca", "ifrs16pci-tool.ifrs.ca"},
			IdentityEnv: EnvIdentityServiceProd,
			IFRS16Env:   EnvIFRS16ServiceProd,
		},
	}
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		API: APIConfig{
			Timeout:     DefaultTimeout,
			CurrencyTTL: DefaultCurrencyTTL,
		},
		Credentials: CredentialsConfig{
			ClientID:     "default_client_id",
			ClientSecret: "default_client_secret",
			Scope:        "api",
		},
		Deployments: DefaultDeployments(),
		CompanyDefaults: CompanyDefaults{
			ReportingCurrencyID:   1,
			ReportingCurrencyCode: "USD",
			FinancialYearEnd:      "2026-12-31",
			LeaseTypes:            "Annual, Bi-Annual, Quarterly, Monthly, Irregular",
			AssetTypes:            "BTS Sites, Land and buildings",
			AllowedUsers:          1,
			AllowedLeases:         3,
			LicenseMonths:         1,
		},
		LeaseDefaults: LeaseDefaults{
			LeaseID:              0,
			LeaseName:            "Demo",
			Rental:               150000,
			CommencementDate:     "2024-01-01",
			EndDate:              "2027-12-31",
			Annuity:              "Advance",
			IBR:                  12,
			Frequency:            "annual",
			AssetType:            "Land and buildings",
			CurrencyID:           1,
			IncrementalFrequency: "annual",
			IsActive:             true,
			LastModifiedDate:     "2024-12-31",
			IsLeaseModified:      false,
		},
		UI: UIConfig{
			MarkdownStyle: "dark",
			MinOverlay:    DefaultMinOverlay,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the configuration for errors. Empty values fall back to
// defaults and are accepted.
func Validate(c Config) error {
	if err := validateURL("api.identity_service", c.API.IdentityService); err != nil {
		return err
	}
	if err := validateURL("api.ifrs16_service", c.API.IFRS16Service); err != nil {
		return err
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	if c.API.CurrencyTTL < 0 {
		return fmt.Errorf("api.currency_ttl must not be negative, got %s", c.API.CurrencyTTL)
	}
	if c.UI.MinOverlay < 0 {
		return fmt.Errorf("ui.min_overlay must not be negative, got %s", c.UI.MinOverlay)
	}
	if c.UI.MarkdownStyle != "" && c.UI.MarkdownStyle != "dark" && c.UI.MarkdownStyle != "light" {
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle)
	}

	for i, d := range c.Deployments {
		if len(d.Hosts) == 0 {
			return fmt.Errorf("deployment %d (%s): at least one host is required", i, d.Name)
		}
		if err := validateURL(fmt.Sprintf("deployment %d (%s): identity_service", i, d.Name), d.IdentityService); err != nil {
			return err
		}
		if err := validateURL(fmt.Sprintf("deployment %d (%s): ifrs16_service", i, d.Name), d.IFRS16Service); err != nil {
			return err
		}
	}

	if c.CompanyDefaults.LicenseMonths < 0 {
		return fmt.Errorf("company_defaults.license_months must not be negative, got %d", c.CompanyDefaults.LicenseMonths)
	}

	return ValidateTracing(c.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host, got %q", field, raw)
	}
	return nil
}

// Timeout returns the configured request timeout or the default.
func (c Config) Timeout() time.Duration {
	if c.API.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.API.Timeout
}

// MinOverlay returns the minimum setup overlay duration or the default.
func (c Config) MinOverlay() time.Duration {
	if c.UI.MinOverlay <= 0 {
		return DefaultMinOverlay
	}
	return c.UI.MinOverlay
}
