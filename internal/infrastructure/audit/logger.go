package audit

import (
	"log"

	"project_billing/internal/config"
	"project_billing/internal/usecase/interfaces"
)

// Logger writes leveled audit lines in the service's
// "[component][level] ..." format. A component whose debug flag is off is a
// no-op, so pipeline stages can log freely without flooding production output.
type Logger struct {
	enabled map[string]bool
}

var _ interfaces.IAuditLogger = (*Logger)(nil)

// New builds a Logger from the configured debug flags.
func New(flags config.DebugFlags) *Logger {
	return &Logger{enabled: map[string]bool{
		interfaces.ComponentConversion:           flags.Conversion,
		interfaces.ComponentOrderCreation:        flags.OrderCreation,
		interfaces.ComponentSubscriptionCreation: flags.SubscriptionCreation,
		interfaces.ComponentCheckout:             flags.Checkout,
		interfaces.ComponentGeneral:              flags.General,
	}}
}

// NewEnabled returns a Logger with every component enabled.
func NewEnabled() *Logger {
	return New(config.DebugFlags{
		Conversion:           true,
		OrderCreation:        true,
		SubscriptionCreation: true,
		Checkout:             true,
		General:              true,
	})
}

func (l *Logger) Info(component, format string, args ...any) {
	l.logf("info", component, format, args...)
}

func (l *Logger) Warn(component, format string, args ...any) {
	l.logf("warning", component, format, args...)
}

func (l *Logger) Error(component, format string, args ...any) {
	l.logf("error", component, format, args...)
}

func (l *Logger) logf(level, component, format string, args ...any) {
	if l == nil || !l.enabled[component] {
		return
	}
	log.Printf("["+component+"]["+level+"] "+format, args...)
}
