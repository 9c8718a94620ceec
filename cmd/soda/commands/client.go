package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/fivetwenty-io/soda/pkg/sodaclient"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Common static errors used throughout the commands package.
var (
	ErrDomainNotConfigured = errors.New("no domain configured, use --domain or SODA_DOMAIN")
	ErrPasswordRequired    = errors.New("a password is required for basic authentication")
	ErrInvalidKeyValue     = errors.New("expected key=value")
	ErrInvalidPermission   = errors.New("permission must be 'public' or 'private'")
)

// readPassword prompts for a password on the terminal.
var readPassword = func() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", ErrPasswordRequired
	}

	fmt.Fprint(os.Stderr, "Password: ")

	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return string(password), nil
}

// loadConfig builds the client configuration from flags, environment and the
// config file.
func loadConfig() (*soda.Config, error) {
	domain := viper.GetString("domain")
	if domain == "" {
		return nil, ErrDomainNotConfigured
	}

	config := &soda.Config{
		Domain:      domain,
		AppToken:    viper.GetString("app-token"),
		Username:    viper.GetString("username"),
		Password:    viper.GetString("password"),
		AccessToken: viper.GetString("access-token"),
		Timeout:     viper.GetDuration("timeout"),
		UserAgent:   "soda-cli",
		Debug:       viper.GetBool("verbose"),

		RequestInterceptors: []soda.RequestInterceptor{soda.RequestIDInterceptor()},
	}

	if limit := viper.GetFloat64("rate-limit"); limit > 0 {
		config.RequestInterceptors = append(config.RequestInterceptors, soda.RateLimitInterceptor(limit, 1))
	}

	if config.Username != "" && config.Password == "" {
		password, err := readPassword()
		if err != nil {
			return nil, err
		}

		config.Password = password
	}

	level := slog.LevelWarn
	if config.Debug {
		level = slog.LevelDebug
	}

	config.Logger = soda.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return config, nil
}

// newClient creates a SODA client from the loaded configuration.
func newClient() (soda.Client, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := sodaclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}
