// Package sodaclient provides the main entry point for creating SODA API clients
package sodaclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/soda/internal/client"
	"github.com/fivetwenty-io/soda/pkg/soda"
)

// New creates a new SODA client. A scheme given in Domain is moved to URIPrefix
// unless one is already set; config itself is not modified.
func New(config *soda.Config) (soda.Client, error) {
	if config == nil {
		return nil, soda.ErrConfigRequired
	}

	normalized := *config
	normalized.Domain, normalized.URIPrefix = normalizeDomain(config.Domain, config.URIPrefix)

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// normalizeDomain strips a scheme and trailing slashes from domain.
func normalizeDomain(domain, prefix string) (string, string) {
	domain = strings.TrimSpace(domain)

	for _, scheme := range []string{"https://", "http://"} {
		if rest, ok := strings.CutPrefix(domain, scheme); ok {
			domain = rest

			if prefix == "" {
				prefix = scheme
			}

			break
		}
	}

	return strings.TrimRight(domain, "/"), prefix
}

// NewWithDomain creates an anonymous client for domain.
func NewWithDomain(domain string) (soda.Client, error) {
	return New(&soda.Config{
		Domain: domain,
	})
}

// NewWithAppToken creates a client sending an application token.
func NewWithAppToken(domain, appToken string) (soda.Client, error) {
	return New(&soda.Config{
		Domain:   domain,
		AppToken: appToken,
	})
}

// NewWithToken creates a client using an OAuth 2.0 access token.
func NewWithToken(domain, appToken, accessToken string) (soda.Client, error) {
	return New(&soda.Config{
		Domain:      domain,
		AppToken:    appToken,
		AccessToken: accessToken,
	})
}

// NewWithPassword creates a client using HTTP Basic authentication.
func NewWithPassword(domain, appToken, username, password string) (soda.Client, error) {
	return New(&soda.Config{
		Domain:   domain,
		AppToken: appToken,
		Username: username,
		Password: password,
	})
}
