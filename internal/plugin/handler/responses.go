package handler

import (
	"strings"
	"time"

	"pangate/internal/plugin/models"
)

// PluginResponse is the admin view of a plugin. Secrets are never included;
// callers see only which credential form is configured.
type PluginResponse struct {
	UID            string    `json:"uid"`
	Name           string    `json:"name"`
	Provider       string    `json:"provider"`
	Service        string    `json:"service"`
	Username       string    `json:"username,omitempty"`
	AuthMethod     string    `json:"auth_method"`
	HasCredentials bool      `json:"has_credentials"`
	APIKeyHint     string    `json:"api_key_hint,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PluginListResponse struct {
	Plugins []PluginResponse `json:"plugins"`
	Count   int              `json:"count"`
}

type PANCheckResponse struct {
	PluginUID string    `json:"plugin_uid"`
	Service   string    `json:"service"`
	Provider  string    `json:"provider"`
	PAN       string    `json:"pan"`
	Result    bool      `json:"result"`
	Cached    bool      `json:"cached"`
	CheckedAt time.Time `json:"checked_at"`
}

func toPluginResponse(p *models.Plugin) PluginResponse {
	return PluginResponse{
		UID:            p.UID,
		Name:           p.Name,
		Provider:       p.Provider.String(),
		Service:        p.Service.String(),
		Username:       p.Username,
		AuthMethod:     string(p.AuthMethod()),
		HasCredentials: p.Credentials().HasCredentials(),
		APIKeyHint:     maskSecret(p.APIKey),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toPANCheckResponse(r *models.PANCheckResult) PANCheckResponse {
	return PANCheckResponse{
		PluginUID: r.PluginUID,
		Service:   r.Service.String(),
		Provider:  r.Provider.String(),
		PAN:       r.PAN,
		Result:    r.Result,
		Cached:    r.Cached,
		CheckedAt: r.CheckedAt,
	}
}

// maskSecret keeps the last four characters of secrets longer than eight.
func maskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return strings.Repeat("*", 8)
	default:
		return strings.Repeat("*", 8) + s[len(s)-4:]
	}
}
