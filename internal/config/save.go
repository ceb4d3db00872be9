package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/proconsult/onboard/internal/log"
)

// DefaultConfigTemplate returns the default config as commented YAML.
func DefaultConfigTemplate() string {
	return `# onboard configuration

# Deployment host used to pick service URLs (like the browser hostname).
# host: ifrs16.ifrs.ca

# IFRS 16 application code shown in the header
# app_code: IFRS16

# Fallback service pair and request timeout.
# Empty URLs are read from ONBOARD_PCI_IDENTITY_SERVICE / ONBOARD_IFRS16_SERVICE.
api:
  # identity_service: https://identity.example.com
  # ifrs16_service: https://ifrs16.example.com
  timeout: 30s
  currency_ttl: 10m  # how long the currency list is reused; 0 disables

# Client-credentials grant for the bearer token.
# Prefer ONBOARD_CREDENTIALS_CLIENT_ID / _CLIENT_SECRET / _SCOPE or a .env file.
credentials:
  client_id: default_client_id
  client_secret: default_client_secret
  scope: api

# Known hosts and where their service URLs come from.
deployments:
  - name: pci
    hosts: [ifrs16.ifrs.ca, ifrspci.ifrs.ca]
    identity_env: ONBOARD_PCI_IDENTITY_SERVICE
    ifrs16_env: ONBOARD_IFRS16_SERVICE
  - name: tool
    hosts: [ifrs16-tool.ifrs.ca, ifrs16pci-tool.ifrs.ca]
    identity_env: ONBOARD_PCI_IDENTITY_SERVICE_PROD
    ifrs16_env: ONBOARD_IFRS16_SERVICE_PROD

# Settings applied to every newly registered company
company_defaults:
  reporting_currency_id: 1
  reporting_currency_code: USD
  financial_year_end: "2026-12-31"
  lease_types: "Annual, Bi-Annual, Quarterly, Monthly, Irregular"
  asset_types: "BTS Sites, Land and buildings"
  allowed_users: 1
  allowed_leases: 3
  license_months: 1

# Demo lease provisioned right after the administrator is created
lease_defaults:
  lease_name: Demo
  rental: 150000
  commencement_date: "2024-01-01"
  end_date: "2027-12-31"
  annuity: Advance
  ibr: 12
  frequency: annual
  asset_type: Land and buildings
  currency_id: 1
  incremental_frequency: annual
  is_active: true
  last_modified_date: "2024-12-31"

ui:
  markdown_style: dark  # "dark" (default) or "light"
  min_overlay: 7s       # minimum time the setup overlay stays visible
  # primary_color: "#003399"
  # secondary_color: "#2E9900"

# tracing:
#   enabled: false
#   exporter: file        # none, file, stdout, otlp
#   file_path: ~/.config/onboard/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at configPath with the default
// template, creating the parent directory when needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// Render returns c as YAML with the client secret masked.
func Render(c Config) ([]byte, error) {
	if c.Credentials.ClientSecret != "" {
		c.Credentials.ClientSecret = "********"
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultTracesFilePath returns ~/.config/onboard/traces/traces.jsonl, or ""
// when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "onboard", "traces", "traces.jsonl")
}
