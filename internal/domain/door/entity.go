package door

import (
	"time"
)

// EventType distinguishes normal unlocks from remote/emergency ones.
type EventType string

const (
	EventUnlock          EventType = "unlock"
	EventEmergencyUnlock EventType = "emergency_unlock"
)

// Event is a door-unlock audit record emitted by the door-control
// subsystem or by an admin emergency-open command.
type Event struct {
	ID            string
	CompanyID     string
	DeviceID      string
	Type          EventType
	TriggerReason string
	EmployeeID    *string // set when the unlock is attributed to an employee
	Timestamp     time.Time // UTC
	CreatedAt     time.Time
}
