package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/proconsult/onboard/internal/app"
	"github.com/proconsult/onboard/internal/config"
	"github.com/proconsult/onboard/internal/log"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/ui/styles"
)

func init() {
	// Query the terminal background before any program starts so the OSC 11
	// reply cannot land in an input field.
	_ = lipgloss.HasDarkBackground()
}

// Config file locations, in lookup order.
const (
	localConfigPath = ".onboard/config.yaml"
	envPrefix       = "ONBOARD"
	debugLogPath    = "debug.log"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Self-service onboarding for the IFRS 16 lease accounting platform",
	Long: `A terminal wizard that verifies a corporate email, registers the company,
creates its first administrator and provisions a demo lease.`,
	Version:           version,
	PersistentPreRunE: setup,
	RunE:              runApp,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .onboard/config.yaml, then ~/.config/onboard/config.yaml)")
	rootCmd.PersistentFlags().String("host", "",
		"deployment host used to pick the service URLs (e.g. ifrs16.ifrs.ca)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write logs to debug.log and enable the log overlay (ctrl+x)")
	rootCmd.Flags().String("route", string(registration.RouteHome),
		"screen to open first (/, /verify-email, /create-company, /create-user, /forgot-password)")

	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// setup loads the configuration and starts logging for every command.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	if cfg.Debug {
		closeLog, err := log.Init(debugLogPath)
		if err != nil {
			return err
		}
		cobra.OnFinalize(closeLog)
		log.Info(log.CatConfig, "Configuration loaded", "file", viper.ConfigFileUsed(), "host", cfg.Host)
	}
	return nil
}

// loadConfig reads .env, the config file and ONBOARD_* variables into a
// validated Config. A missing config file is not an error.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config.Config{}, fmt.Errorf("loading .env: %w", err)
	}

	setDefaults(v, config.Defaults())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("app_code", "ONBOARD_APP_IFRS16_CODE")

	switch {
	case path != "":
		v.SetConfigFile(path)
	case fileExists(localConfigPath):
		v.SetConfigFile(localConfigPath)
	default:
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "onboard"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	// Sections missing from the file keep their defaults.
	c := config.Defaults()
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(c); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.currency_ttl", d.API.CurrencyTTL)
	v.SetDefault("credentials.client_id", d.Credentials.ClientID)
	v.SetDefault("credentials.client_secret", d.Credentials.ClientSecret)
	v.SetDefault("credentials.scope", d.Credentials.Scope)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.min_overlay", d.UI.MinOverlay)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", config.DefaultTracesFilePath())
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)

	// Registered so AutomaticEnv can override them.
	v.SetDefault("host", "")
	v.SetDefault("debug", false)
	v.SetDefault("app_code", "")
	v.SetDefault("api.identity_service", "")
	v.SetDefault("api.ifrs16_service", "")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	styles.ApplyTheme(cfg.UI.PrimaryColor, cfg.UI.SecondaryColor)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt, err := newRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	route, _ := cmd.Flags().GetString("route")
	model := app.New(rt.Services(ctx), registration.Route(route), cfg.Debug)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if m, ok := final.(app.Model); ok {
		if closeErr := m.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
