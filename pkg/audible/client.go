// Package audible provides a client for the Audible catalog API.
//
// This package implements the small slice of the Audible API that the
// sequels tool needs: session handling and the authenticated library
// listing. It is designed to be usable as a standalone SDK.
//
// Example usage:
//
//	import "github.com/jfmyers9/sequels/pkg/audible"
//
//	client, err := audible.NewClient(audible.Config{
//	    Region:      "au",
//	    SessionFile: "/home/user/.config/sequels/session.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	items, err := client.Library().List(ctx, audible.ListOptions{NumResults: 1000})
package audible

import (
	"fmt"
	"net/http"
)

// Config holds client configuration.
type Config struct {
	Region      string       // Required: marketplace region code (e.g. "au", "us", "uk", "de")
	SessionFile string       // Optional: path used by Auth().LoadSession/SaveSession
	HTTPClient  *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL     string       // Optional: API base URL (defaults to the regional endpoint, used for testing)
	AuthURL     string       // Optional: sign-in endpoint (defaults to the regional endpoint, used for testing)
	Logger      Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Audible API operations.
type Client struct {
	region       string
	sessionToken string
	httpClient   *http.Client
	baseURL      string
	authURL      string
	logger       Logger

	auth    *AuthService
	library *LibraryService
}

// regionDomains maps a marketplace region code to the Audible domain
// serving it. Both the API host and the public storefront hang off the
// same domain.
var regionDomains = map[string]string{
	"au": "audible.com.au",
	"ca": "audible.ca",
	"de": "audible.de",
	"fr": "audible.fr",
	"in": "audible.in",
	"it": "audible.it",
	"jp": "audible.co.jp",
	"uk": "audible.co.uk",
	"us": "audible.com",
}

// Domain returns the Audible storefront domain for a region code, or an
// error for an unknown region.
func Domain(region string) (string, error) {
	domain, ok := regionDomains[region]
	if !ok {
		return "", fmt.Errorf("audible: unknown region %q", region)
	}
	return domain, nil
}

// NewClient creates a new Audible API client.
//
// Returns an error if the configured region is unknown.
func NewClient(cfg Config) (*Client, error) {
	domain, err := Domain(cfg.Region)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api." + domain + "/1.0"
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = "https://api." + domain + "/auth/signin"
	}

	c := &Client{
		region:     cfg.Region,
		httpClient: httpClient,
		baseURL:    baseURL,
		authURL:    authURL,
		logger:     cfg.Logger,
	}

	c.auth = &AuthService{client: c, sessionFile: cfg.SessionFile}
	c.library = &LibraryService{client: c}

	return c, nil
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Library returns the library service.
func (c *Client) Library() *LibraryService {
	return c.library
}

// SetSession sets the session token used for authenticated requests.
func (c *Client) SetSession(token string) {
	c.sessionToken = token
}

// SessionToken returns the current session token.
func (c *Client) SessionToken() string {
	return c.sessionToken
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
