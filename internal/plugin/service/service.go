// Package service orchestrates plugin administration and PAN checks.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"pangate/internal/audit"
	"pangate/internal/platform/metrics"
	"pangate/internal/plugin/models"
	"pangate/internal/plugin/providers"
	"pangate/internal/plugin/store"
	dErrors "pangate/pkg/domain-errors"
	"pangate/pkg/pan"
	"pangate/pkg/platform/circuit"
	"pangate/pkg/platform/sentinel"
	"pangate/pkg/requestcontext"
)

type PluginStore interface {
	Create(ctx context.Context, p *models.Plugin) error
	Update(ctx context.Context, p *models.Plugin) error
	FindByUID(ctx context.Context, uid string) (*models.Plugin, error)
	List(ctx context.Context, service models.Service) ([]*models.Plugin, error)
	DeleteByUID(ctx context.Context, uid string) error
}

type ProviderRegistry interface {
	Validator(p models.Provider) (providers.PANValidator, bool)
	EligibilityChecker(p models.Provider) (providers.PANEligibilityChecker, bool)
}

type ResultCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expire time.Duration) error
}

type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event)
}

// Service manages plugins and dispatches PAN checks to their providers.
type Service struct {
	plugins  PluginStore
	registry ProviderRegistry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	auditor  AuditRecorder
	cache    ResultCache
	cacheTTL time.Duration
	inflight singleflight.Group
	breakers map[models.Provider]*circuit.Breaker

	callTimeout time.Duration
}

const defaultCallTimeout = 30 * time.Second

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Service) {
		s.auditor = recorder
	}
}

// WithResultCache caches PAN check outcomes for ttl. A non-positive ttl
// disables caching.
func WithResultCache(cache ResultCache, ttl time.Duration) Option {
	return func(s *Service) {
		if ttl <= 0 {
			return
		}
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithCircuitBreakers gives each provider a breaker that opens after threshold
// consecutive outages and fails calls fast for cooldown.
func WithCircuitBreakers(threshold int, cooldown time.Duration) Option {
	return func(s *Service) {
		if threshold <= 0 {
			return
		}
		s.breakers = make(map[models.Provider]*circuit.Breaker, len(models.AllProviders()))
		for _, p := range models.AllProviders() {
			s.breakers[p] = circuit.New(p.String(),
				circuit.WithFailureThreshold(threshold),
				circuit.WithCooldown(cooldown),
			)
		}
	}
}

// WithCallTimeout bounds a shared provider call. The call outlives any single
// caller's cancellation, so it needs its own deadline.
func WithCallTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.callTimeout = d
		}
	}
}

// New constructs a Service.
func New(plugins PluginStore, registry ProviderRegistry, opts ...Option) *Service {
	s := &Service{plugins: plugins, registry: registry, logger: slog.Default(), callTimeout: defaultCallTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePlugin builds and stores a plugin with a fresh uid.
func (s *Service) CreatePlugin(ctx context.Context, req *models.CreatePluginRequest) (*models.Plugin, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := checkPairing(req.Provider, req.Service); err != nil {
		return nil, err
	}
	p, err := models.NewPlugin(req.Name, req.Provider, req.Service, req.Credentials(), requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.plugins.Create(ctx, p); err != nil {
		return nil, translateStoreError(err, "failed to create plugin")
	}

	s.logAudit(ctx, audit.Event{
		Action:    audit.ActionPluginCreated,
		PluginUID: p.UID,
		Service:   p.Service.String(),
		Provider:  p.Provider.String(),
	})
	s.incrementPluginChange("created")
	return p, nil
}

func (s *Service) GetPlugin(ctx context.Context, uid string) (*models.Plugin, error) {
	p, err := s.plugins.FindByUID(ctx, uid)
	if err != nil {
		return nil, translateStoreError(err, "failed to load plugin")
	}
	return p, nil
}

// ListPlugins returns every plugin, or only those for service when it is set.
func (s *Service) ListPlugins(ctx context.Context, service string) ([]*models.Plugin, error) {
	svc := models.Service(service)
	if service != "" && !svc.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "service must be one of pan_validation, pan_eligibility")
	}
	plugins, err := s.plugins.List(ctx, svc)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list plugins")
	}
	return plugins, nil
}

// UpdatePlugin applies a partial update. The uid, id and creation time never change.
func (s *Service) UpdatePlugin(ctx context.Context, uid string, req *models.UpdatePluginRequest) (*models.Plugin, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	p, err := s.plugins.FindByUID(ctx, uid)
	if err != nil {
		return nil, translateStoreError(err, "failed to load plugin")
	}

	req.Apply(p)
	p.UpdatedAt = requestcontext.Now(ctx)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := checkPairing(p.Provider, p.Service); err != nil {
		return nil, err
	}
	if err := s.plugins.Update(ctx, p); err != nil {
		return nil, translateStoreError(err, "failed to update plugin")
	}

	s.logAudit(ctx, audit.Event{
		Action:    audit.ActionPluginUpdated,
		PluginUID: p.UID,
		Service:   p.Service.String(),
		Provider:  p.Provider.String(),
	})
	s.incrementPluginChange("updated")
	return p, nil
}

func (s *Service) DeletePlugin(ctx context.Context, uid string) error {
	if err := s.plugins.DeleteByUID(ctx, uid); err != nil {
		return translateStoreError(err, "failed to delete plugin")
	}
	s.logAudit(ctx, audit.Event{Action: audit.ActionPluginDeleted, PluginUID: uid})
	s.incrementPluginChange("deleted")
	return nil
}

// ValidatePAN asks the plugin's provider whether the PAN is valid.
func (s *Service) ValidatePAN(ctx context.Context, uid, number string) (*models.PANCheckResult, error) {
	return s.checkPAN(ctx, uid, number, models.ServicePANValidation)
}

// CheckPANEligibility asks the plugin's provider whether the PAN is eligible.
func (s *Service) CheckPANEligibility(ctx context.Context, uid, number string) (*models.PANCheckResult, error) {
	return s.checkPAN(ctx, uid, number, models.ServicePANEligibility)
}

type panCheck func(ctx context.Context, p *models.Plugin, number string) (bool, error)

type flightResult struct {
	result bool
	cached bool
}

func (s *Service) checkPAN(ctx context.Context, uid, number string, service models.Service) (*models.PANCheckResult, error) {
	number = pan.Normalize(number)
	if number == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "pan is required")
	}

	p, err := s.plugins.FindByUID(ctx, uid)
	if err != nil {
		return nil, translateStoreError(err, "failed to load plugin")
	}
	if p.Service != service {
		return nil, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("plugin %s serves %s, not %s", p.UID, p.Service, service))
	}
	if !p.ProviderMatchesService() {
		return nil, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("provider %s cannot serve %s", p.Provider, p.Service))
	}
	check, err := s.resolve(p)
	if err != nil {
		return nil, err
	}

	result := &models.PANCheckResult{
		PluginUID: p.UID,
		Service:   p.Service,
		Provider:  p.Provider,
		PAN:       pan.Mask(number),
	}

	// The cache is read inside the flight so a caller arriving just after a
	// flight completes sees its stored result instead of starting another.
	// The flight is detached from the caller that started it: each caller
	// stops waiting on its own cancellation without failing the others.
	key := resultCacheKey(p, number)
	flight := s.inflight.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.callTimeout)
		defer cancel()

		if ok, hit := s.cachedResult(fctx, key); hit {
			return flightResult{result: ok, cached: true}, nil
		}
		ok, err := s.callProvider(fctx, p, number, check)
		if err != nil {
			return nil, err
		}
		s.storeResult(fctx, key, ok)
		return flightResult{result: ok}, nil
	})

	var shared singleflight.Result
	select {
	case shared = <-flight:
	case <-ctx.Done():
		return nil, translateProviderError(ctx.Err(), number)
	}
	if shared.Err != nil {
		return nil, translateProviderError(shared.Err, number)
	}
	outcome := shared.Val.(flightResult)
	result.Result = outcome.result
	result.Cached = outcome.cached
	result.CheckedAt = requestcontext.Now(ctx)

	action := audit.ActionPANValidated
	if service == models.ServicePANEligibility {
		action = audit.ActionPANEligibilityChecked
	}
	s.logAudit(ctx, audit.Event{
		Action:    action,
		PluginUID: p.UID,
		Service:   p.Service.String(),
		Provider:  p.Provider.String(),
		PANHash:   pan.Hash(number),
		Outcome:   strconv.FormatBool(result.Result),
		Cached:    result.Cached,
	})
	return result, nil
}

// resolve finds the provider implementation for the plugin's service.
func (s *Service) resolve(p *models.Plugin) (panCheck, error) {
	switch p.Service {
	case models.ServicePANValidation:
		v, ok := s.registry.Validator(p.Provider)
		if !ok {
			return nil, dErrors.New(dErrors.CodeInvalidState, "no validator registered for provider "+p.Provider.String())
		}
		return v.ValidatePAN, nil
	case models.ServicePANEligibility:
		c, ok := s.registry.EligibilityChecker(p.Provider)
		if !ok {
			return nil, dErrors.New(dErrors.CodeInvalidState, "no eligibility checker registered for provider "+p.Provider.String())
		}
		return c.IsPANEligible, nil
	default:
		return nil, dErrors.New(dErrors.CodeInvalidState, "unknown service "+p.Service.String())
	}
}

func (s *Service) callProvider(ctx context.Context, p *models.Plugin, number string, check panCheck) (bool, error) {
	breaker := s.breakers[p.Provider]
	if breaker != nil && !breaker.Allow() {
		return false, providers.NewProviderError(providers.ErrorProviderOutage, p.Provider.String(), "circuit open", circuit.ErrOpen)
	}

	s.publishCircuitState(breaker)

	start := time.Now()
	ok, err := check(ctx, p, number)
	s.recordOutcome(ctx, breaker, err)
	s.publishCircuitState(breaker)
	outcome := "success"
	if err != nil {
		outcome = string(providers.GetCategory(err))
		s.logger.WarnContext(ctx, "provider call failed",
			"request_id", requestcontext.RequestID(ctx),
			"plugin_uid", p.UID,
			"provider", p.Provider.String(),
			"category", outcome,
			"error", err,
		)
	}
	if s.metrics != nil {
		s.metrics.ObserveProviderCall(p.Provider.String(), outcome, time.Since(start))
	}
	return ok, err
}

// recordOutcome feeds the breaker. Only retryable failures count as outages;
// rejected credentials or bad input say nothing about provider health, and a
// cancelled call says nothing at all.
func (s *Service) recordOutcome(ctx context.Context, breaker *circuit.Breaker, err error) {
	if breaker == nil || errors.Is(err, context.Canceled) {
		return
	}
	if err != nil && providers.IsRetryable(err) {
		if change := breaker.RecordFailure(); change.Opened {
			s.logger.WarnContext(ctx, "provider circuit opened", "provider", breaker.Name())
		}
		return
	}
	if change := breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "provider circuit closed", "provider", breaker.Name())
	}
}

func (s *Service) publishCircuitState(breaker *circuit.Breaker) {
	if breaker != nil && s.metrics != nil {
		s.metrics.SetCircuitState(breaker.Name(), int(breaker.State()))
	}
}

func (s *Service) cachedResult(ctx context.Context, key string) (result, hit bool) {
	if s.cache == nil {
		return false, false
	}
	v, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.incrementCacheLookup("hit")
		return v == "true", true
	case errors.Is(err, sentinel.ErrNotFound):
		s.incrementCacheLookup("miss")
	default:
		s.incrementCacheLookup("error")
		s.logger.WarnContext(ctx, "pan result cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	return false, false
}

func (s *Service) storeResult(ctx context.Context, key string, result bool) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, strconv.FormatBool(result), s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "pan result cache write failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

// resultCacheKey scopes a cached outcome to one plugin's service and provider,
// so re-pointing a plugin never serves another provider's answer. The PAN
// only appears as its hash.
func resultCacheKey(p *models.Plugin, number string) string {
	return fmt.Sprintf("pan:%s:%s:%s:%s", p.Service, p.Provider, p.UID, pan.Hash(number))
}

func checkPairing(provider models.Provider, service models.Service) error {
	if service.IsValid() && provider.IsValid() && !service.Allows(provider) {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("provider %s cannot serve %s", provider, service))
	}
	return nil
}

func translateStoreError(err error, msg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "plugin not found")
	case errors.Is(err, store.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "plugin uid already exists")
	case errors.Is(err, store.ErrCredentialsRequired):
		return dErrors.Wrap(err, dErrors.CodeInvariantViolation, "either username and password or api_key must be provided")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func translateProviderError(err error, number string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "provider timed out")
	}
	switch providers.GetCategory(err) {
	case providers.ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "provider timed out")
	case providers.ErrorProviderOutage, providers.ErrorRateLimited:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "provider unavailable")
	case providers.ErrorAuthentication:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "provider rejected plugin credentials")
	case providers.ErrorNotFound:
		return dErrors.Wrap(err, dErrors.CodeNotFound, "pan not known to provider")
	case providers.ErrorBadData:
		if !pan.WellFormed(number) {
			return dErrors.Wrap(err, dErrors.CodeValidation, "pan is malformed")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "provider returned malformed data")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "provider call failed")
	}
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	event.Actor = requestcontext.Actor(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action),
			"request_id", event.RequestID,
			"plugin_uid", event.PluginUID,
			"log_type", "audit",
		)
	}
	if s.auditor != nil {
		s.auditor.Record(ctx, event)
	}
}

func (s *Service) incrementPluginChange(action string) {
	if s.metrics != nil {
		s.metrics.IncrementPluginChange(action)
	}
}

func (s *Service) incrementCacheLookup(result string) {
	if s.metrics != nil {
		s.metrics.IncrementCacheLookup(result)
	}
}
