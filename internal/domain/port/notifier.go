package port

import (
	"context"

	"safety-watch/internal/domain/entity"
)

// AlertNotifier pushes safety events to an external channel (MQTT topic,
// messenger chat). Delivery failures are logged by callers, never fatal.
type AlertNotifier interface {
	// NotifyTriggered reports a fired user-defined alert rule.
	NotifyTriggered(ctx context.Context, alert entity.TriggeredAlert) error

	// NotifyCritical reports a criticality assessment that escalated
	// to CRITICAL.
	NotifyCritical(ctx context.Context, assessment entity.Assessment) error
}
