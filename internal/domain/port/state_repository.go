package port

import "context"

// Persisted keys.
const (
	KeyEquipmentStatus  = "equipment_status"
	KeyDetectionHistory = "detection_history"
	KeyAlertRules       = "alert_rules"
	KeyDetectionLog     = "detection_log"
)

// StateRepository is the durable key-value contract. Values are JSON blobs;
// the core does not care whether the backing store is a file, a database,
// or memory.
type StateRepository interface {
	// Load returns the stored value for a key, or (nil, nil) when absent.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save durably stores the value for a key.
	Save(ctx context.Context, key string, value []byte) error
}
