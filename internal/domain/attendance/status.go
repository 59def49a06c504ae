package attendance

import (
	"fmt"
	"strings"
)

// Status is the closed set of daily attendance statuses. Values are stored
// in their canonical display form; parsing is case-insensitive so records
// written by older clients ("late", "SUPER_LATE") still resolve.
type Status string

const (
	StatusPresent   Status = "Present"
	StatusLate      Status = "Late"
	StatusSuperLate Status = "Super Late"
	StatusAbsent    Status = "Absent"
)

// ParseStatus normalizes a status string to its canonical value.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "_", " ")
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = strings.Join(strings.Fields(normalized), " ")

	switch normalized {
	case "present":
		return StatusPresent, nil
	case "late":
		return StatusLate, nil
	case "super late", "superlate":
		return StatusSuperLate, nil
	case "absent":
		return StatusAbsent, nil
	}
	return "", fmt.Errorf("unknown attendance status %q", s)
}

func (s Status) String() string {
	return string(s)
}

// EventType distinguishes the two punch directions.
type EventType string

const (
	EventCheckIn  EventType = "check_in"
	EventCheckOut EventType = "check_out"
)

// EventSource identifies which collaborator submitted a punch.
type EventSource string

const (
	SourceGPSPunch       EventSource = "gps_punch"
	SourceManualAdmin    EventSource = "manual_admin"
	SourceDeviceHardware EventSource = "device_hardware"
)

// Valid reports whether the source is one of the known submitters.
func (s EventSource) Valid() bool {
	switch s {
	case SourceGPSPunch, SourceManualAdmin, SourceDeviceHardware:
		return true
	}
	return false
}
