// Package providers defines the PAN capability contracts and the dispatch
// table from provider name to implementation.
package providers

import (
	"context"
	"fmt"

	"pangate/internal/plugin/models"
)

// PANValidator answers whether a PAN is valid according to the provider.
type PANValidator interface {
	ValidatePAN(ctx context.Context, plugin *models.Plugin, pan string) (bool, error)
}

// PANEligibilityChecker answers whether a valid PAN is eligible for downstream use.
type PANEligibilityChecker interface {
	IsPANEligible(ctx context.Context, plugin *models.Plugin, pan string) (bool, error)
}

// Registration binds one provider to its implementation.
type Registration struct {
	Provider models.Provider
	Impl     any
}

// Registry is the immutable provider → implementation table. Build it once at
// startup with NewRegistry; lookups never return a nil implementation.
type Registry struct {
	impls map[models.Provider]any
}

// NewRegistry checks every registration against the capability its provider's
// service requires and builds the table.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := &Registry{impls: make(map[models.Provider]any, len(regs))}
	for _, reg := range regs {
		if reg.Impl == nil {
			return nil, fmt.Errorf("provider %s: nil implementation", reg.Provider)
		}
		svc, ok := reg.Provider.Service()
		if !ok {
			return nil, fmt.Errorf("provider %s: %w", reg.Provider, ErrProviderNotRegistered)
		}
		if !implementsService(reg.Impl, svc) {
			return nil, fmt.Errorf("provider %s for %s: %w", reg.Provider, svc, ErrCapabilityMismatch)
		}
		if _, exists := r.impls[reg.Provider]; exists {
			return nil, fmt.Errorf("provider %s already registered", reg.Provider)
		}
		r.impls[reg.Provider] = reg.Impl
	}
	return r, nil
}

func implementsService(impl any, svc models.Service) bool {
	switch svc {
	case models.ServicePANValidation:
		_, ok := impl.(PANValidator)
		return ok
	case models.ServicePANEligibility:
		_, ok := impl.(PANEligibilityChecker)
		return ok
	default:
		return false
	}
}

// Plugin returns the implementation registered for p.
func (r *Registry) Plugin(p models.Provider) (any, bool) {
	impl, ok := r.impls[p]
	return impl, ok
}

// Validator returns p's implementation if it validates PANs.
func (r *Registry) Validator(p models.Provider) (PANValidator, bool) {
	v, ok := r.impls[p].(PANValidator)
	return v, ok
}

// EligibilityChecker returns p's implementation if it checks PAN eligibility.
func (r *Registry) EligibilityChecker(p models.Provider) (PANEligibilityChecker, bool) {
	c, ok := r.impls[p].(PANEligibilityChecker)
	return c, ok
}

// Registered lists registered providers in declaration order.
func (r *Registry) Registered() []models.Provider {
	var out []models.Provider
	for _, p := range models.AllProviders() {
		if _, ok := r.impls[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
