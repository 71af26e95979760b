package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// LoginResult is the outcome of a password grant.
type LoginResult struct {
	Success bool        `json:"success"`
	Token   *AuthToken  `json:"token"`
	Error   string      `json:"error,omitempty"`
	Kind    FailureKind `json:"kind,omitempty"`
}

const (
	errUnauthorizedClient = "unauthorized_client"
	genericLoginFailure   = "Login failed."
)

type oidcErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Login exchanges username and password for a token at the realm's token
// endpoint. The username is trimmed; the password is sent as given.
func (c *Client) Login(ctx context.Context, baseURL, username, password string) LoginResult {
	username = strings.TrimSpace(username)
	tokenURL := c.TokenURL(baseURL)
	logger := c.logger.With(zap.String("url", tokenURL), zap.String("username", username))
	logger.Info("login attempt")

	ctx, cancel := context.WithTimeout(ctx, c.authTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	cfg := oauth2.Config{
		ClientID: c.clientID,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	token, err := cfg.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			msg := loginErrorMessage(string(rerr.Body), c.clientID)
			status := 0
			if rerr.Response != nil {
				status = rerr.Response.StatusCode
			}
			logger.Warn("login rejected", zap.Int("status", status), zap.String("error", msg))
			return LoginResult{Error: msg, Kind: FailureRejected}
		}
		kind := classify(err)
		logger.Warn("login failed", zap.String("kind", string(kind)), zap.Error(err))
		return LoginResult{Error: transportMessage(err), Kind: kind}
	}

	authToken := newAuthToken(token, c.logger)
	logger.Info("login succeeded", zap.Time("expiry", authToken.Expiry))
	return LoginResult{Success: true, Token: authToken}
}

// loginErrorMessage turns a token endpoint error body into a user-facing
// message. Bodies that are not JSON are returned as-is.
func loginErrorMessage(body, clientID string) string {
	var parsed oidcErrorBody
	if err := json.Unmarshal([]byte(body), &parsed); err == nil {
		if parsed.Error == errUnauthorizedClient {
			return directGrantDisabledMessage(clientID, body)
		}
		if parsed.ErrorDescription != "" {
			return parsed.ErrorDescription
		}
	}
	if strings.TrimSpace(body) == "" {
		return genericLoginFailure
	}
	return body
}

func directGrantDisabledMessage(clientID, original string) string {
	return fmt.Sprintf("Direct Access Grants (Resource Owner Password Credentials) is disabled for this client. "+
		"Please enable it in Keycloak Admin Console:\n\n"+
		"1. Go to Clients → %s\n"+
		"2. Click Settings tab\n"+
		"3. Enable \"Direct access grants\"\n"+
		"4. Click Save\n\n"+
		"Original error: %s", clientID, original)
}

func transportMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "The identity server did not respond in time."
	}
	return err.Error()
}
