package interfaces

import "context"

// Capabilities checked by the conversion flows.
const (
	CapabilityPublishProposals = "publish_proposals"
)

// ICapabilityChecker answers whether a user holds a capability. Conversion
// requires publish_proposals; a missing grant is fatal to the whole
// transition and nothing is created or deleted.
//
//go:generate mockgen -source=capability_checker_interface.go -destination=mocks/capability_checker_mock.go -package=mocks

type ICapabilityChecker interface {
	HasCapability(ctx context.Context, userID, capability string) (bool, error)
}
