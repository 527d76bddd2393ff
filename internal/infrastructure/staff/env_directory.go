package staff

import (
	"context"
	"strings"

	"project_billing/internal/usecase/interfaces"
)

// EnvDirectory grants the publish_proposals capability to the user ids listed
// in STAFF_PUBLISHERS (resolved via config.Load). It stands in for a real
// identity provider; the conversion flows only need a yes/no answer.
type EnvDirectory struct {
	publishers map[string]struct{}
}

var _ interfaces.ICapabilityChecker = (*EnvDirectory)(nil)

func NewEnvDirectory(publishers []string) *EnvDirectory {
	set := make(map[string]struct{}, len(publishers))
	for _, p := range publishers {
		if v := strings.TrimSpace(p); v != "" {
			set[v] = struct{}{}
		}
	}
	return &EnvDirectory{publishers: set}
}

func (d *EnvDirectory) HasCapability(_ context.Context, userID, capability string) (bool, error) {
	if capability != interfaces.CapabilityPublishProposals {
		return false, nil
	}
	_, ok := d.publishers[strings.TrimSpace(userID)]
	return ok, nil
}
