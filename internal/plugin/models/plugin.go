package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "pangate/pkg/domain-errors"
	"pangate/pkg/uid"
)

// CredentialsConstraint is the name of the database CHECK constraint that
// mirrors HasCredentials.
const CredentialsConstraint = "either_username_password_or_api_key_required"

// MaxNameLength bounds the plugin label.
const MaxNameLength = 255

// Plugin is one configured integration: a service, the provider serving it and
// the credentials the provider needs.
//
// Invariants:
//   - UID is 21 URL-safe characters, assigned at creation and never changed
//   - Either Username and Password are both non-empty, or APIKey is non-empty
//   - Name is non-empty and at most MaxNameLength characters
//
// Provider is not tied to Service at the storage layer; the service layer
// checks the pairing against Service.Providers.
type Plugin struct {
	ID        uuid.UUID `json:"id"`
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Provider  Provider  `json:"provider"`
	Service   Service   `json:"service"`
	Username  string    `json:"-"`
	Password  string    `json:"-"`
	APIKey    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credentials groups the secret-bearing fields for create and update.
type Credentials struct {
	Username string
	Password string
	APIKey   string
}

// AuthMethod says which credential form a plugin will present to its provider.
type AuthMethod string

const (
	AuthMethodBasic  AuthMethod = "basic"
	AuthMethodAPIKey AuthMethod = "api_key"
	AuthMethodNone   AuthMethod = "none"
)

// HasCredentials reports whether the credential invariant holds.
func (c Credentials) HasCredentials() bool {
	return (c.Username != "" && c.Password != "") || c.APIKey != ""
}

// NewPlugin validates inputs and builds a plugin with a fresh ID and UID.
func NewPlugin(name string, provider Provider, service Service, creds Credentials, now time.Time) (*Plugin, error) {
	publicID, err := uid.New()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate plugin uid")
	}
	p := &Plugin{
		ID:        uuid.New(),
		UID:       publicID,
		Name:      strings.TrimSpace(name),
		Provider:  provider,
		Service:   service,
		Username:  creds.Username,
		Password:  creds.Password,
		APIKey:    creds.APIKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks every invariant the database also enforces, plus enum membership.
func (p *Plugin) Validate() error {
	if p.Name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "plugin name cannot be empty")
	}
	if len(p.Name) > MaxNameLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "plugin name must be 255 characters or less")
	}
	if !p.Provider.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown provider: "+string(p.Provider))
	}
	if !p.Service.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown service: "+string(p.Service))
	}
	if !p.Credentials().HasCredentials() {
		return dErrors.New(dErrors.CodeInvariantViolation, "either username and password or api_key must be provided")
	}
	return nil
}

// Credentials returns the plugin's secret-bearing fields.
func (p *Plugin) Credentials() Credentials {
	return Credentials{Username: p.Username, Password: p.Password, APIKey: p.APIKey}
}

// AuthMethod prefers basic auth when a full username/password pair is present.
func (p *Plugin) AuthMethod() AuthMethod {
	switch {
	case p.Username != "" && p.Password != "":
		return AuthMethodBasic
	case p.APIKey != "":
		return AuthMethodAPIKey
	default:
		return AuthMethodNone
	}
}

// ProviderMatchesService reports whether Provider is listed for Service.
func (p *Plugin) ProviderMatchesService() bool {
	return p.Service.Allows(p.Provider)
}

// String returns the human-readable label.
func (p *Plugin) String() string {
	return p.Name
}

// PANCheckResult is the outcome of a validation or eligibility check.
type PANCheckResult struct {
	PluginUID string    `json:"plugin_uid"`
	Service   Service   `json:"service"`
	Provider  Provider  `json:"provider"`
	PAN       string    `json:"pan"`
	Result    bool      `json:"result"`
	Cached    bool      `json:"cached"`
	CheckedAt time.Time `json:"checked_at"`
}
