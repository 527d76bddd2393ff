package config

import (
	"os"
	"strings"
)

// DebugFlags toggles per-component audit logging. All flags default to off,
// matching the plugin-style "debug toggles" this service replaces.
type DebugFlags struct {
	Conversion           bool
	OrderCreation        bool
	SubscriptionCreation bool
	Checkout             bool
	General              bool
}

// Config is the flat service configuration resolved from the environment.
type Config struct {
	Debug DebugFlags

	// StaffPublishers lists user ids granted the publish_proposals capability.
	StaffPublishers []string
}

// Load reads configuration from the environment.
//
// Supported env vars:
//   - DEBUG_CONVERSION, DEBUG_ORDER_CREATION, DEBUG_SUBSCRIPTION_CREATION,
//     DEBUG_CHECKOUT, DEBUG_GENERAL (1/true/yes/on)
//   - STAFF_PUBLISHERS (comma-separated user ids)
func Load() Config {
	return Config{
		Debug: DebugFlags{
			Conversion:           envBool("DEBUG_CONVERSION"),
			OrderCreation:        envBool("DEBUG_ORDER_CREATION"),
			SubscriptionCreation: envBool("DEBUG_SUBSCRIPTION_CREATION"),
			Checkout:             envBool("DEBUG_CHECKOUT"),
			General:              envBool("DEBUG_GENERAL"),
		},
		StaffPublishers: envList("STAFF_PUBLISHERS"),
	}
}

// ProposalProjectMetaKeys is the static allow-list mapping proposal meta keys
// to their project meta names. Conversion copies only these keys.
var ProposalProjectMetaKeys = map[string]string{
	"_proposal_budget":           "_project_budget",
	"_proposal_recurring_budget": "_project_recurring_budget",
	"_proposal_billing_interval": "_project_billing_interval",
	"_proposal_billing_period":   "_project_billing_period",
	"_proposal_start_date":       "_project_start_date",
	"_proposal_delivery_date":    "_project_delivery_date",
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func envList(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
