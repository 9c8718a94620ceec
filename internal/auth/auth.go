// Package auth selects and applies the authentication mode of a client.
package auth

import (
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/soda/internal/constants"
	"github.com/fivetwenty-io/soda/pkg/soda"
)

// Mode is the authentication mode in effect.
type Mode int

// Authentication modes.
const (
	// ModeAnonymous sends no credentials at all.
	ModeAnonymous Mode = iota
	// ModeAppToken sends only the application token.
	ModeAppToken
	// ModeBasic sends HTTP Basic credentials.
	ModeBasic
	// ModeOAuth sends an OAuth 2.0 access token.
	ModeOAuth
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAnonymous:
		return "anonymous"
	case ModeAppToken:
		return "app-token"
	case ModeBasic:
		return "basic"
	case ModeOAuth:
		return "oauth"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Credentials are the raw authentication inputs. Empty means absent.
type Credentials struct {
	AppToken    string
	Username    string
	Password    string
	AccessToken string
}

// Validate checks that at most one of basic and OAuth authentication is requested,
// and that username and password come together.
func Validate(creds Credentials) error {
	hasUser := creds.Username != ""
	hasPassword := creds.Password != ""

	if hasUser != hasPassword {
		return soda.ErrBasicAuthIncomplete
	}

	if creds.AccessToken != "" && (hasUser || hasPassword) {
		return soda.ErrConflictingAuth
	}

	return nil
}

// Authenticator attaches credentials to requests. It is immutable once created.
type Authenticator struct {
	creds Credentials
	mode  Mode
}

// New validates creds and returns an Authenticator for them.
func New(creds Credentials) (*Authenticator, error) {
	if err := Validate(creds); err != nil {
		return nil, err
	}

	mode := ModeAnonymous

	switch {
	case creds.Username != "":
		mode = ModeBasic
	case creds.AccessToken != "":
		mode = ModeOAuth
	case creds.AppToken != "":
		mode = ModeAppToken
	}

	return &Authenticator{creds: creds, mode: mode}, nil
}

// Mode returns the authentication mode.
func (a *Authenticator) Mode() Mode {
	return a.mode
}

// HasAppToken reports whether requests carry an application token.
func (a *Authenticator) HasAppToken() bool {
	return a.creds.AppToken != ""
}

// Apply sets the authentication headers on h.
func (a *Authenticator) Apply(h http.Header) {
	if a.creds.AppToken != "" {
		h.Set(constants.HeaderAppToken, a.creds.AppToken)
	}

	switch a.mode {
	case ModeBasic:
		req := http.Request{Header: h}
		req.SetBasicAuth(a.creds.Username, a.creds.Password)
	case ModeOAuth:
		h.Set(constants.HeaderAuthorization, "OAuth "+a.creds.AccessToken)
	case ModeAnonymous, ModeAppToken:
	}
}
