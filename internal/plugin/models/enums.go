package models

// Provider names an external integration able to serve one capability.
type Provider string

const (
	ProviderNSDL   Provider = "nsdl"
	ProviderUnisen Provider = "unisen"
)

// Service names a capability family. Each service admits a fixed set of providers.
type Service string

const (
	ServicePANValidation  Service = "pan_validation"
	ServicePANEligibility Service = "pan_eligibility"
)

// serviceProviders is the curated service → provider table. Adding a provider
// means implementing its capability, adding a constant above and an entry here.
var serviceProviders = map[Service][]Provider{
	ServicePANValidation:  {ProviderNSDL},
	ServicePANEligibility: {ProviderUnisen},
}

// AllProviders lists every known provider in declaration order.
func AllProviders() []Provider {
	return []Provider{ProviderNSDL, ProviderUnisen}
}

// AllServices lists every known service in declaration order.
func AllServices() []Service {
	return []Service{ServicePANValidation, ServicePANEligibility}
}

// IsValid reports whether p is a known provider.
func (p Provider) IsValid() bool {
	for _, known := range AllProviders() {
		if known == p {
			return true
		}
	}
	return false
}

// Service returns the service p belongs to.
func (p Provider) Service() (Service, bool) {
	for _, svc := range AllServices() {
		for _, candidate := range serviceProviders[svc] {
			if candidate == p {
				return svc, true
			}
		}
	}
	return "", false
}

func (p Provider) String() string {
	return string(p)
}

// IsValid reports whether s is a known service.
func (s Service) IsValid() bool {
	_, ok := serviceProviders[s]
	return ok
}

// Providers returns the providers valid for s, in order. Unknown services
// return an empty slice. The result is a copy.
func (s Service) Providers() []Provider {
	return append([]Provider{}, serviceProviders[s]...)
}

// Allows reports whether p may serve s.
func (s Service) Allows(p Provider) bool {
	for _, candidate := range serviceProviders[s] {
		if candidate == p {
			return true
		}
	}
	return false
}

func (s Service) String() string {
	return string(s)
}
