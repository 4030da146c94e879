// Package nsdl validates PANs against the NSDL verification API.
package nsdl

import (
	"context"
	"strings"
	"time"

	"pangate/internal/plugin/models"
	"pangate/internal/plugin/providers"
	"pangate/pkg/pan"
)

const verifyPath = "/v1/pan/verify"

type verifyRequest struct {
	PAN string `json:"pan"`
}

type verifyResponse struct {
	PAN    string `json:"pan"`
	Valid  *bool  `json:"valid"`
	Status string `json:"status"`
}

// Client is the NSDL PANValidator.
type Client struct {
	transport *providers.HTTPTransport
}

// New builds an NSDL client rooted at baseURL.
func New(baseURL string, timeout time.Duration, opts ...providers.TransportOption) *Client {
	return &Client{transport: providers.NewHTTPTransport(models.ProviderNSDL, baseURL, timeout, opts...)}
}

// ValidatePAN reports whether NSDL considers the PAN valid. Malformed numbers
// are invalid without a network call.
func (c *Client) ValidatePAN(ctx context.Context, plugin *models.Plugin, number string) (bool, error) {
	number = pan.Normalize(number)
	if !pan.WellFormed(number) {
		return false, nil
	}

	var resp verifyResponse
	if err := c.transport.PostJSON(ctx, plugin, verifyPath, verifyRequest{PAN: number}, &resp); err != nil {
		if providers.GetCategory(err) == providers.ErrorNotFound {
			// NSDL answers 404 for numbers it never issued.
			return false, nil
		}
		return false, err
	}
	return parseVerifyResponse(number, resp)
}

func parseVerifyResponse(number string, resp verifyResponse) (bool, error) {
	if resp.Valid == nil {
		return false, providers.NewProviderError(providers.ErrorBadData, string(models.ProviderNSDL), "response missing valid flag", nil)
	}
	if resp.PAN != "" && !strings.EqualFold(resp.PAN, number) {
		return false, providers.NewProviderError(providers.ErrorBadData, string(models.ProviderNSDL), "response is for a different PAN", nil)
	}
	return *resp.Valid, nil
}
