package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
)

// maxDiscoveryBytes caps the discovery document read.
const maxDiscoveryBytes = 1 << 20

// StatusResult is the outcome of a discovery probe. RegistrationEndpoint is
// empty when the server does not advertise one.
type StatusResult struct {
	OK                   bool   `json:"ok"`
	RegistrationEndpoint string `json:"registrationEndpoint"`
}

// discoveryDocument is the subset of the realm's OpenID configuration the
// launcher reads.
type discoveryDocument struct {
	oidc.ProviderConfig
	RegistrationEndpoint string `json:"registration_endpoint"`
}

// CheckStatus fetches the realm's OpenID configuration. OK is true when the
// server answered with any 2xx status and a JSON document.
func (c *Client) CheckStatus(ctx context.Context, baseURL string) StatusResult {
	statusURL := c.StatusURL(baseURL)
	logger := c.logger.With(zap.String("url", statusURL))
	logger.Debug("identity status check")

	ctx, cancel := context.WithTimeout(ctx, c.statusTimeout)
	defer cancel()

	doc, err := c.fetchDiscovery(ctx, statusURL)
	if err != nil {
		logger.Info("identity status check failed",
			zap.String("kind", string(classify(err))),
			zap.Error(err))
		return StatusResult{}
	}

	logger.Info("identity status check succeeded",
		zap.String("issuer", doc.IssuerURL),
		zap.Bool("registration", doc.RegistrationEndpoint != ""))
	return StatusResult{OK: true, RegistrationEndpoint: doc.RegistrationEndpoint}
}

func (c *Client) fetchDiscovery(ctx context.Context, statusURL string) (discoveryDocument, error) {
	var doc discoveryDocument

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return doc, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return doc, fmt.Errorf("fetch discovery document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return doc, fmt.Errorf("discovery document: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDiscoveryBytes))
	if err != nil {
		return doc, fmt.Errorf("read discovery document: %w", err)
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return doc, fmt.Errorf("decode discovery document: %w", err)
	}
	return doc, nil
}
