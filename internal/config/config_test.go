package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, DefaultTimeout, cfg.API.Timeout)
	require.Equal(t, "USD", cfg.CompanyDefaults.ReportingCurrencyCode)
	require.Equal(t, 3, cfg.CompanyDefaults.AllowedLeases)
	require.Equal(t, "Demo", cfg.LeaseDefaults.LeaseName)
	require.Equal(t, 150000.0, cfg.LeaseDefaults.Rental)
	require.Equal(t, 12.0, cfg.LeaseDefaults.IBR)
	require.Equal(t, "annual", cfg.LeaseDefaults.Frequency)
	require.Nil(t, cfg.LeaseDefaults.GRV)
	require.Equal(t, 7*time.Second, cfg.UI.MinOverlay)
	require.Len(t, cfg.Deployments, 2)
	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad identity url",
			mutate:  func(c *Config) { c.API.IdentityService = "ftp://x" },
			wantErr: "api.identity_service must be an http(s) URL",
		},
		{
			name:    "url without host",
			mutate:  func(c *Config) { c.API.IFRS16Service = "https://" },
			wantErr: "api.ifrs16_service is missing a host",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.API.Timeout = -time.Second },
			wantErr: "api.timeout must not be negative",
		},
		{
			name:    "deployment without hosts",
			mutate:  func(c *Config) { c.Deployments = []DeploymentConfig{{Name: "x"}} },
			wantErr: "deployment 0 (x): at least one host is required",
		},
		{
			name:    "bad markdown style",
			mutate:  func(c *Config) { c.UI.MarkdownStyle = "neon" },
			wantErr: "ui.markdown_style",
		},
		{
			name:    "sample rate out of range",
			mutate:  func(c *Config) { c.Tracing.SampleRate = 1.5 },
			wantErr: "tracing.sample_rate",
		},
		{
			name:    "unknown exporter",
			mutate:  func(c *Config) { c.Tracing.Exporter = "zipkin" },
			wantErr: "tracing.exporter",
		},
		{
			name: "otlp without endpoint",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.Exporter = "otlp"
				c.Tracing.OTLPEndpoint = ""
			},
			wantErr: "tracing.otlp_endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTimeoutAndMinOverlayFallback(t *testing.T) {
	var cfg Config
	require.Equal(t, DefaultTimeout, cfg.Timeout())
	require.Equal(t, DefaultMinOverlay, cfg.MinOverlay())

	cfg.API.Timeout = 5 * time.Second
	cfg.UI.MinOverlay = time.Second
	require.Equal(t, 5*time.Second, cfg.Timeout())
	require.Equal(t, time.Second, cfg.MinOverlay())
}

func fakeEnv(vars map[string]string) Getenv {
	return func(key string) string { return vars[key] }
}

func TestResolveServices(t *testing.T) {
	env := fakeEnv(map[string]string{
		EnvIdentityService:     "https://id.pci.example.com/",
		EnvIFRS16Service:       "https://lease.pci.example.com",
		EnvIdentityServiceProd: "https://id.tool.example.com",
		EnvIFRS16ServiceProd:   "https://lease.tool.example.com",
	})
	cfg := Defaults()

	tests := []struct {
		host string
		want ServiceURLs
	}{
		{
			host: "ifrs16.ifrs.ca",
			want: ServiceURLs{Identity: "https://id.pci.example.com", IFRS16: "https://lease.pci.example.com"},
		},
		{
			host: "www.ifrspci.ifrs.ca",
			want: ServiceURLs{Identity: "https://id.pci.example.com", IFRS16: "https://lease.pci.example.com"},
		},
		{
			host: "IFRS16-TOOL.ifrs.ca",
			want: ServiceURLs{Identity: "https://id.tool.example.com", IFRS16: "https://lease.tool.example.com"},
		},
		{
			host: "unknown.example.org",
			want: ServiceURLs{Identity: "https://id.pci.example.com", IFRS16: "https://lease.pci.example.com"},
		},
		{
			host: "",
			want: ServiceURLs{Identity: "https://id.pci.example.com", IFRS16: "https://lease.pci.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			require.Equal(t, tt.want, cfg.ResolveServices(tt.host, env))
		})
	}
}

func TestResolveServices_ExplicitAndDefaults(t *testing.T) {
	cfg := Defaults()
	cfg.Deployments = append(cfg.Deployments, DeploymentConfig{
		Name:            "staging",
		Hosts:           []string{"staging.local"},
		IdentityService: "http://id.staging.local",
	})

	got := cfg.ResolveServices("staging.local", fakeEnv(nil))
	require.Equal(t, "http://id.staging.local", got.Identity)
	require.Equal(t, DefaultIFRS16Service, got.IFRS16, "missing half falls back to the default pair")

	got = cfg.ResolveServices("", fakeEnv(nil))
	require.Equal(t, ServiceURLs{Identity: DefaultIdentityService, IFRS16: DefaultIFRS16Service}, got)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed), "template must be valid YAML")
	require.Contains(t, parsed, "company_defaults")
	require.Contains(t, parsed, "lease_defaults")
}

func TestRender_MasksSecret(t *testing.T) {
	cfg := Defaults()
	cfg.Credentials.ClientSecret = "s3cr3t"

	out, err := Render(cfg)
	require.NoError(t, err)
	require.NotContains(t, string(out), "s3cr3t")
	require.Contains(t, string(out), "********")
	require.Equal(t, "s3cr3t", cfg.Credentials.ClientSecret, "caller's config is untouched")
}
