package interfaces

// Components known to the audit log. Each maps to one debug flag.
const (
	ComponentConversion           = "conversion"
	ComponentOrderCreation        = "order_creation"
	ComponentSubscriptionCreation = "subscription_creation"
	ComponentCheckout             = "checkout"
	ComponentGeneral              = "general"
)

// IAuditLogger records leveled pipeline messages per component. The concrete
// implementation gates each component behind a debug flag (see
// infrastructure/audit); tests substitute a recorder.

type IAuditLogger interface {
	Info(component, format string, args ...any)
	Warn(component, format string, args ...any)
	Error(component, format string, args ...any)
}

// NopAuditLogger discards everything.
type NopAuditLogger struct{}

func (NopAuditLogger) Info(string, string, ...any)  {}
func (NopAuditLogger) Warn(string, string, ...any)  {}
func (NopAuditLogger) Error(string, string, ...any) {}
