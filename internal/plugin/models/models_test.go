package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "pangate/pkg/domain-errors"
	"pangate/pkg/uid"
)

func TestServiceProviders(t *testing.T) {
	assert.Equal(t, []Provider{ProviderNSDL}, ServicePANValidation.Providers())
	assert.Equal(t, []Provider{ProviderUnisen}, ServicePANEligibility.Providers())
	assert.Empty(t, Service("pan_aadhaar_link").Providers())
	assert.NotNil(t, Service("unknown").Providers(), "unknown services return an empty, non-nil slice")
}

func TestServiceProvidersReturnsCopy(t *testing.T) {
	got := ServicePANValidation.Providers()
	got[0] = ProviderUnisen
	assert.Equal(t, []Provider{ProviderNSDL}, ServicePANValidation.Providers())
}

func TestProviderService(t *testing.T) {
	svc, ok := ProviderNSDL.Service()
	require.True(t, ok)
	assert.Equal(t, ServicePANValidation, svc)

	svc, ok = ProviderUnisen.Service()
	require.True(t, ok)
	assert.Equal(t, ServicePANEligibility, svc)

	_, ok = Provider("karza").Service()
	assert.False(t, ok)
	assert.False(t, Provider("karza").IsValid())
}

func TestServiceAllows(t *testing.T) {
	assert.True(t, ServicePANValidation.Allows(ProviderNSDL))
	assert.False(t, ServicePANValidation.Allows(ProviderUnisen))
	assert.True(t, ServicePANEligibility.Allows(ProviderUnisen))
	assert.False(t, Service("nope").Allows(ProviderNSDL))
}

type PluginSuite struct {
	suite.Suite
	now time.Time
}

func TestPluginSuite(t *testing.T) {
	suite.Run(t, new(PluginSuite))
}

func (s *PluginSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *PluginSuite) TestCredentialInvariant() {
	cases := []struct {
		name  string
		creds Credentials
		ok    bool
	}{
		{"username and password", Credentials{Username: "u", Password: "p"}, true},
		{"api key only", Credentials{APIKey: "k"}, true},
		{"all three", Credentials{Username: "u", Password: "p", APIKey: "k"}, true},
		{"username without password", Credentials{Username: "u"}, false},
		{"password without username", Credentials{Password: "p"}, false},
		{"username without password but api key", Credentials{Username: "u", APIKey: "k"}, true},
		{"nothing", Credentials{}, false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			p, err := NewPlugin("NSDL prod", ProviderNSDL, ServicePANValidation, tc.creds, s.now)
			if tc.ok {
				s.Require().NoError(err)
				s.NotNil(p)
				return
			}
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}
}

func (s *PluginSuite) TestNewPluginAssignsIdentity() {
	p, err := NewPlugin("  Unisen  ", ProviderUnisen, ServicePANEligibility, Credentials{APIKey: "k"}, s.now)
	s.Require().NoError(err)

	s.Len(p.UID, uid.Length)
	s.True(uid.Valid(p.UID))
	s.NotEqual(uuid.Nil, p.ID)
	s.Equal("Unisen", p.Name)
	s.Equal("Unisen", p.String())
	s.Equal(s.now, p.CreatedAt)
	s.Equal(s.now, p.UpdatedAt)
}

func (s *PluginSuite) TestNewPluginRejectsBadEnums() {
	_, err := NewPlugin("x", Provider("karza"), ServicePANValidation, Credentials{APIKey: "k"}, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewPlugin("x", ProviderNSDL, Service("gst"), Credentials{APIKey: "k"}, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *PluginSuite) TestNameBounds() {
	_, err := NewPlugin("   ", ProviderNSDL, ServicePANValidation, Credentials{APIKey: "k"}, s.now)
	s.Error(err)

	_, err = NewPlugin(strings.Repeat("a", MaxNameLength+1), ProviderNSDL, ServicePANValidation, Credentials{APIKey: "k"}, s.now)
	s.Error(err)

	_, err = NewPlugin(strings.Repeat("a", MaxNameLength), ProviderNSDL, ServicePANValidation, Credentials{APIKey: "k"}, s.now)
	s.NoError(err)
}

func (s *PluginSuite) TestAuthMethod() {
	p := &Plugin{Username: "u", Password: "p", APIKey: "k"}
	s.Equal(AuthMethodBasic, p.AuthMethod())

	p = &Plugin{Username: "u", APIKey: "k"}
	s.Equal(AuthMethodAPIKey, p.AuthMethod())

	p = &Plugin{}
	s.Equal(AuthMethodNone, p.AuthMethod())
}

func (s *PluginSuite) TestProviderMatchesService() {
	p := &Plugin{Provider: ProviderNSDL, Service: ServicePANValidation}
	s.True(p.ProviderMatchesService())

	// The entity itself accepts a mismatched pair; callers decide.
	p.Provider = ProviderUnisen
	s.False(p.ProviderMatchesService())
	p.Name = "mismatch"
	p.APIKey = "k"
	s.NoError(p.Validate())
}
