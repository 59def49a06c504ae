package attendance

import (
	"time"
)

// Event is a single raw punch submission. Events are append-only and
// immutable once recorded; the daily record is derived from them.
type Event struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Type       EventType
	Source     EventSource
	Timestamp  time.Time // UTC instant
	Latitude   *float64
	Longitude  *float64
	DeviceID   *string
	CreatedAt  time.Time
}

// DailyRecord is the authoritative one-record-per-employee-per-day ledger
// entry. Date is the company-local calendar day the punch bucketed into,
// not the UTC day of the instant.
type DailyRecord struct {
	ID                      string
	CompanyID               string
	EmployeeID              string
	Date                    time.Time // local calendar date at midnight
	CheckInTime             *time.Time
	CheckOutTime            *time.Time
	Status                  Status
	LateMinutes             int
	LateReason              *string
	IsEmergencyCheckout     bool
	EmergencyCheckoutReason *string
	DoorUnlockTime          *time.Time
	NeedsReview             bool
	IsCorrection            bool
	CheckInSource           EventSource
	DeviceID                *string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DateKey returns the canonical per-day lock and dedup key for an
// employee on a local calendar date.
func DateKey(employeeID string, localDate time.Time) string {
	return employeeID + "|" + localDate.Format("2006-01-02")
}
