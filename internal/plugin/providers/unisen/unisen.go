// Package unisen checks PAN eligibility through the Unisen API.
package unisen

import (
	"context"
	"time"

	"pangate/internal/plugin/models"
	"pangate/internal/plugin/providers"
	"pangate/pkg/pan"
)

const eligibilityPath = "/v1/pan/eligibility"

type eligibilityRequest struct {
	PAN string `json:"pan"`
}

type eligibilityResponse struct {
	PAN      string `json:"pan"`
	Eligible *bool  `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// Client is the Unisen PANEligibilityChecker.
type Client struct {
	transport *providers.HTTPTransport
}

// New builds a Unisen client rooted at baseURL.
func New(baseURL string, timeout time.Duration, opts ...providers.TransportOption) *Client {
	return &Client{transport: providers.NewHTTPTransport(models.ProviderUnisen, baseURL, timeout, opts...)}
}

// IsPANEligible asks Unisen whether the PAN is eligible. Eligibility only has
// meaning for a well-formed number, so malformed input is a bad_data error.
func (c *Client) IsPANEligible(ctx context.Context, plugin *models.Plugin, number string) (bool, error) {
	number = pan.Normalize(number)
	if !pan.WellFormed(number) {
		return false, providers.NewProviderError(providers.ErrorBadData, string(models.ProviderUnisen), "malformed PAN", nil)
	}

	var resp eligibilityResponse
	if err := c.transport.PostJSON(ctx, plugin, eligibilityPath, eligibilityRequest{PAN: number}, &resp); err != nil {
		return false, err
	}
	if resp.Eligible == nil {
		return false, providers.NewProviderError(providers.ErrorBadData, string(models.ProviderUnisen), "response missing eligible flag", nil)
	}
	return *resp.Eligible, nil
}
