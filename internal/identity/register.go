package identity

import (
	"context"
	"strings"

	"github.com/Nerzal/gocloak/v13"
	"go.uber.org/zap"
)

// RegisterResult is the outcome of an account registration.
type RegisterResult struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Kind    FailureKind `json:"kind,omitempty"`
}

const genericRegisterFailure = "Registration failed."

type registrationRequest struct {
	ClientID      string                             `json:"client_id"`
	Username      string                             `json:"username"`
	Email         string                             `json:"email"`
	Enabled       bool                               `json:"enabled"`
	EmailVerified bool                               `json:"emailVerified"`
	Credentials   []gocloak.CredentialRepresentation `json:"credentials"`
}

// Register creates an account through the endpoint advertised by the
// discovery document.
func (c *Client) Register(ctx context.Context, registrationEndpoint, username, email, password string) RegisterResult {
	endpoint := strings.TrimSpace(registrationEndpoint)
	logger := c.logger.With(zap.String("url", endpoint), zap.String("username", strings.TrimSpace(username)))
	if endpoint == "" {
		logger.Warn("registration endpoint not available")
		return RegisterResult{Error: "Registration is not available on this server.", Kind: FailureConfig}
	}
	logger.Info("registration attempt")

	ctx, cancel := context.WithTimeout(ctx, c.authTimeout)
	defer cancel()

	body := registrationRequest{
		ClientID:      c.clientID,
		Username:      strings.TrimSpace(username),
		Email:         strings.TrimSpace(email),
		Enabled:       true,
		EmailVerified: true,
		Credentials: []gocloak.CredentialRepresentation{{
			Type:      gocloak.StringP("password"),
			Value:     gocloak.StringP(password),
			Temporary: gocloak.BoolP(false),
		}},
	}

	resp, err := c.keycloak.RestyClient().R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(endpoint)
	if err != nil {
		kind := classify(err)
		logger.Warn("registration failed", zap.String("kind", string(kind)), zap.Error(err))
		return RegisterResult{Error: transportMessage(err), Kind: kind}
	}
	if !resp.IsSuccess() {
		msg := strings.TrimSpace(resp.String())
		if msg == "" {
			msg = genericRegisterFailure
		}
		logger.Warn("registration rejected", zap.Int("status", resp.StatusCode()), zap.String("error", msg))
		return RegisterResult{Error: msg, Kind: FailureRejected}
	}

	logger.Info("registration succeeded")
	return RegisterResult{Success: true}
}
