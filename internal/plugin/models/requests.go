package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "pangate/pkg/domain-errors"
	"pangate/pkg/pan"
	"pangate/pkg/platform/httputil"
)

// CreatePluginRequest is the body of plugin creation. Credentials are kept
// byte for byte: only an empty string counts as missing.
type CreatePluginRequest struct {
	Name     string   `json:"name" validate:"required,max=255"`
	Provider Provider `json:"provider" validate:"required,oneof=nsdl unisen"`
	Service  Service  `json:"service" validate:"required,oneof=pan_validation pan_eligibility"`
	Username string   `json:"username,omitempty" validate:"max=255"`
	Password string   `json:"password,omitempty"`
	APIKey   string   `json:"api_key,omitempty"`
}

func (r *CreatePluginRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Provider = Provider(strings.TrimSpace(strings.ToLower(string(r.Provider))))
	r.Service = Service(strings.TrimSpace(strings.ToLower(string(r.Service))))
}

// Validate checks shape only. The credential invariant and the
// provider/service pairing are enforced when the plugin is built.
func (r *CreatePluginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return structError(httputil.Validator().Struct(r))
}

func (r *CreatePluginRequest) Credentials() Credentials {
	return Credentials{Username: r.Username, Password: r.Password, APIKey: r.APIKey}
}

// UpdatePluginRequest is a partial update: nil fields keep their stored value
// and an empty string clears a credential.
type UpdatePluginRequest struct {
	Name     *string `json:"name,omitempty"`
	Provider *string `json:"provider,omitempty"`
	Service  *string `json:"service,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	APIKey   *string `json:"api_key,omitempty"`
}

func (r *UpdatePluginRequest) Normalize() {
	if r == nil {
		return
	}
	trim(r.Name)
	if r.Provider != nil {
		*r.Provider = strings.TrimSpace(strings.ToLower(*r.Provider))
	}
	if r.Service != nil {
		*r.Service = strings.TrimSpace(strings.ToLower(*r.Service))
	}
}

// Follows validation order: Size -> Required -> Syntax.
func (r *UpdatePluginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Name != nil && len(*r.Name) > MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be 255 characters or less")
	}
	if r.Username != nil && len(*r.Username) > 255 {
		return dErrors.New(dErrors.CodeValidation, "username must be 255 characters or less")
	}
	if r.Name != nil && *r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	if r.Provider != nil && !Provider(*r.Provider).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "provider must be one of nsdl, unisen")
	}
	if r.Service != nil && !Service(*r.Service).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "service must be one of pan_validation, pan_eligibility")
	}
	return nil
}

// Apply copies the set fields onto p.
func (r *UpdatePluginRequest) Apply(p *Plugin) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Provider != nil {
		p.Provider = Provider(*r.Provider)
	}
	if r.Service != nil {
		p.Service = Service(*r.Service)
	}
	if r.Username != nil {
		p.Username = *r.Username
	}
	if r.Password != nil {
		p.Password = *r.Password
	}
	if r.APIKey != nil {
		p.APIKey = *r.APIKey
	}
}

// PANCheckRequest is the body of both PAN endpoints. The format is not
// checked here; each provider decides how to treat a malformed PAN.
type PANCheckRequest struct {
	PAN string `json:"pan" validate:"required,max=32"`
}

func (r *PANCheckRequest) Normalize() {
	if r == nil {
		return
	}
	r.PAN = pan.Normalize(r.PAN)
}

func (r *PANCheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return structError(httputil.Validator().Struct(r))
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// structError reports the first failing field as a validation error.
func structError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid request")
	}
	fe := fieldErrs[0]
	field := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return dErrors.New(dErrors.CodeValidation, field+" is required")
	case "max":
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be %s characters or less", field, fe.Param()))
	case "oneof":
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
	default:
		return dErrors.New(dErrors.CodeValidation, field+" is invalid")
	}
}

func jsonName(field string) string {
	switch field {
	case "APIKey":
		return "api_key"
	case "PAN":
		return "pan"
	default:
		return strings.ToLower(field)
	}
}
