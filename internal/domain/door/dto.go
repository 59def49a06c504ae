package door

import (
	"time"

	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

// HardwarePunchRequest is a punch pushed by a registered door device. The
// device reports its own clock so replayed submissions can be rejected.
type HardwarePunchRequest struct {
	EmployeeID   string    `json:"employee_id"`
	ReportedTime time.Time `json:"reported_time"` // device clock, UTC
}

func (r *HardwarePunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.ReportedTime.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "reported_time",
			Message: "reported_time is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HardwarePunchResponse tells the device whether to open the door.
type HardwarePunchResponse struct {
	OpenDoor   bool   `json:"open_door"`
	DurationMS int    `json:"duration_ms"`
	Direction  string `json:"direction"` // check_in or check_out
	Message    string `json:"message"`
}

type EmergencyOpenRequest struct {
	DeviceID   string  `json:"device_id"`
	Reason     string  `json:"reason"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *EmergencyOpenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DeviceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_id",
			Message: "device_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventFilter struct {
	From string // "2006-01-02", inclusive, UTC day
	To   string // "2006-01-02", inclusive, UTC day
}

type EventResponse struct {
	ID            string    `json:"id"`
	DeviceID      string    `json:"device_id"`
	Type          string    `json:"event_type"`
	TriggerReason string    `json:"trigger_reason"`
	EmployeeID    *string   `json:"employee_id"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewEventResponse(ev Event) EventResponse {
	return EventResponse{
		ID:            ev.ID,
		DeviceID:      ev.DeviceID,
		Type:          string(ev.Type),
		TriggerReason: ev.TriggerReason,
		EmployeeID:    ev.EmployeeID,
		Timestamp:     ev.Timestamp,
	}
}
