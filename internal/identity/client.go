package identity

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Nerzal/gocloak/v13"
	"go.uber.org/zap"
)

// Client talks to a Keycloak-style OpenID Connect server. None of its methods
// return errors; failures are reported in the result values.
type Client struct {
	http          *http.Client
	keycloak      *gocloak.GoCloak
	realm         string
	clientID      string
	userAgent     string
	statusTimeout time.Duration
	authTimeout   time.Duration
	logger        *zap.Logger
}

const (
	// DefaultRealm is the realm every endpoint lives under.
	DefaultRealm = "idklol"
	// DefaultClientID is the public client used for password grants.
	DefaultClientID = "idklol-chat"

	defaultUserAgent     = "idklol-launcher/0.1"
	defaultStatusTimeout = 5 * time.Second
	defaultAuthTimeout   = 10 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the sink for attempt/result records.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeouts overrides the probe and login/registration deadlines.
func WithTimeouts(status, auth time.Duration) Option {
	return func(c *Client) {
		if status > 0 {
			c.statusTimeout = status
		}
		if auth > 0 {
			c.authTimeout = auth
		}
	}
}

// WithRealm overrides the realm and client id.
func WithRealm(realm, clientID string) Option {
	return func(c *Client) {
		if strings.TrimSpace(realm) != "" {
			c.realm = strings.TrimSpace(realm)
		}
		if strings.TrimSpace(clientID) != "" {
			c.clientID = strings.TrimSpace(clientID)
		}
	}
}

// NewClient builds a Client with the launcher defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:          &http.Client{},
		realm:         DefaultRealm,
		clientID:      DefaultClientID,
		userAgent:     defaultUserAgent,
		statusTimeout: defaultStatusTimeout,
		authTimeout:   defaultAuthTimeout,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.keycloak = gocloak.NewClient("")
	c.keycloak.RestyClient().SetHeader("User-Agent", c.userAgent)
	if c.http.Transport != nil {
		c.keycloak.RestyClient().SetTransport(c.http.Transport)
	}
	return c
}

// FailureKind classifies a failed identity call.
type FailureKind string

const (
	FailureNone     FailureKind = ""
	FailureNetwork  FailureKind = "network"
	FailureTimeout  FailureKind = "timeout"
	FailureRejected FailureKind = "rejected"
	FailureConfig   FailureKind = "config"
)

// NormalizeBaseURL trims whitespace and trailing slashes.
func NormalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

func (c *Client) realmURL(baseURL string) string {
	return NormalizeBaseURL(baseURL) + "/realms/" + c.realm
}

// StatusURL returns the discovery document URL for baseURL.
func (c *Client) StatusURL(baseURL string) string {
	return c.realmURL(baseURL) + "/.well-known/openid-configuration"
}

// TokenURL returns the token endpoint for baseURL.
func (c *Client) TokenURL(baseURL string) string {
	return c.realmURL(baseURL) + "/protocol/openid-connect/token"
}

func classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	return FailureNetwork
}
