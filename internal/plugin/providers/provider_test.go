package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pangate/internal/plugin/models"
)

type stubValidator struct{ valid bool }

func (s stubValidator) ValidatePAN(context.Context, *models.Plugin, string) (bool, error) {
	return s.valid, nil
}

type stubEligibility struct{ eligible bool }

func (s stubEligibility) IsPANEligible(context.Context, *models.Plugin, string) (bool, error) {
	return s.eligible, nil
}

func TestRegistryDispatch(t *testing.T) {
	validator := stubValidator{valid: true}
	checker := stubEligibility{eligible: true}
	reg, err := NewRegistry(
		Registration{Provider: models.ProviderNSDL, Impl: validator},
		Registration{Provider: models.ProviderUnisen, Impl: checker},
	)
	require.NoError(t, err)

	impl, ok := reg.Plugin(models.ProviderNSDL)
	require.True(t, ok)
	assert.Equal(t, validator, impl)

	impl, ok = reg.Plugin(models.ProviderUnisen)
	require.True(t, ok)
	assert.Equal(t, checker, impl)

	_, ok = reg.Plugin(models.Provider("karza"))
	assert.False(t, ok, "unknown providers are an explicit miss")

	v, ok := reg.Validator(models.ProviderNSDL)
	require.True(t, ok)
	got, err := v.ValidatePAN(context.Background(), nil, "ABCDE1234F")
	require.NoError(t, err)
	assert.True(t, got)

	_, ok = reg.Validator(models.ProviderUnisen)
	assert.False(t, ok, "unisen does not validate")
	_, ok = reg.EligibilityChecker(models.ProviderNSDL)
	assert.False(t, ok, "nsdl does not check eligibility")

	assert.Equal(t, []models.Provider{models.ProviderNSDL, models.ProviderUnisen}, reg.Registered())
}

func TestNewRegistryRejectsMisconfiguration(t *testing.T) {
	t.Run("capability mismatch", func(t *testing.T) {
		_, err := NewRegistry(Registration{Provider: models.ProviderNSDL, Impl: stubEligibility{}})
		assert.True(t, errors.Is(err, ErrCapabilityMismatch))
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewRegistry(Registration{Provider: "karza", Impl: stubValidator{}})
		assert.True(t, errors.Is(err, ErrProviderNotRegistered))
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := NewRegistry(
			Registration{Provider: models.ProviderNSDL, Impl: stubValidator{}},
			Registration{Provider: models.ProviderNSDL, Impl: stubValidator{}},
		)
		assert.Error(t, err)
	})

	t.Run("nil implementation", func(t *testing.T) {
		_, err := NewRegistry(Registration{Provider: models.ProviderNSDL})
		assert.Error(t, err)
	})
}

func TestEmptyRegistry(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	_, ok := reg.Plugin(models.ProviderNSDL)
	assert.False(t, ok)
	assert.Empty(t, reg.Registered())
}

func TestProviderErrorTaxonomy(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewProviderError(ErrorProviderOutage, "nsdl", "request failed", cause)
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "nsdl [provider_outage]")

	assert.False(t, IsRetryable(NewProviderError(ErrorAuthentication, "nsdl", "bad creds", nil)))
	assert.False(t, IsRetryable(cause))
	assert.Equal(t, ErrorInternal, GetCategory(cause))
}
