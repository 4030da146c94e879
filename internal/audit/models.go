package audit

import "time"

// Action names an audited operation.
type Action string

const (
	ActionPluginCreated         Action = "plugin_created"
	ActionPluginUpdated         Action = "plugin_updated"
	ActionPluginDeleted         Action = "plugin_deleted"
	ActionPANValidated          Action = "pan_validated"
	ActionPANEligibilityChecked Action = "pan_eligibility_checked"
)

// Event is emitted from the plugin service to capture admin changes and PAN
// checks. PANs are never carried in clear; PANHash holds their SHA-256 digest.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	PluginUID string    `json:"plugin_uid"`
	Service   string    `json:"service,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	PANHash   string    `json:"pan_hash,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Cached    bool      `json:"cached,omitempty"`
}
