package door

import (
	"context"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
)

// Service handles door-event intake: hardware punches, admin emergency
// opens, the audit listing, and correlation of daily records to unlocks.
type Service interface {
	// AuthenticateDevice verifies the X-Device-ID / X-Device-Key pair
	// against the device registry.
	AuthenticateDevice(ctx context.Context, deviceUID, deviceKey string) (Device, error)

	// HardwarePunch processes a device-authenticated punch: first scan of
	// the local day checks the employee in, a later scan checks them out.
	// A reported device time outside the replay tolerance is rejected.
	HardwarePunch(ctx context.Context, deviceUID string, req HardwarePunchRequest) (HardwarePunchResponse, error)

	// EmergencyOpen records an emergency_unlock door event and, when the
	// targeted employee is checked in with no checkout during work hours,
	// synthesizes an emergency checkout through the classifier.
	EmergencyOpen(ctx context.Context, companyID string, req EmergencyOpenRequest) (EventResponse, error)

	// ListEvents returns the door audit log for a UTC date range.
	ListEvents(ctx context.Context, companyID string, filter EventFilter) ([]EventResponse, error)

	// CorrelateRecent fills door_unlock_time on recent daily records by
	// matching each check-in to the nearest subsequent unlock on the same
	// device. Run periodically.
	CorrelateRecent(ctx context.Context, companyID string) (int, error)
}

// Correlate selects the earliest unlock on the record's device whose
// timestamp falls after the check-in within the given window. Returns nil
// when none qualifies; it never guesses a correlation.
func Correlate(rec attendance.DailyRecord, events []Event, window time.Duration) *time.Time {
	if rec.CheckInTime == nil || rec.DeviceID == nil {
		return nil
	}

	checkIn := *rec.CheckInTime
	deadline := checkIn.Add(window)

	var best *time.Time
	for i := range events {
		ev := events[i]
		if ev.DeviceID != *rec.DeviceID {
			continue
		}
		if !ev.Timestamp.After(checkIn) || ev.Timestamp.After(deadline) {
			continue
		}
		if best == nil || ev.Timestamp.Before(*best) {
			t := ev.Timestamp
			best = &t
		}
	}
	return best
}
