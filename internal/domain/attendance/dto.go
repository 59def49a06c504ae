package attendance

import (
	"time"

	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string      `json:"employee_id"`
	Timestamp  time.Time   `json:"timestamp"` // UTC; zero value means "now"
	Source     EventSource `json:"source"`
	Latitude   *float64    `json:"latitude,omitempty"`
	Longitude  *float64    `json:"longitude,omitempty"`
	DeviceID   *string     `json:"device_id,omitempty"`
	LateReason *string     `json:"late_reason,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !r.Source.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of gps_punch, manual_admin, device_hardware",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID      string      `json:"employee_id"`
	Timestamp       time.Time   `json:"timestamp"`
	Source          EventSource `json:"source"`
	Latitude        *float64    `json:"latitude,omitempty"`
	Longitude       *float64    `json:"longitude,omitempty"`
	DeviceID        *string     `json:"device_id,omitempty"`
	Emergency       bool        `json:"emergency,omitempty"`
	EmergencyReason *string     `json:"emergency_reason,omitempty"`
	DoorUnlockTime  *time.Time  `json:"door_unlock_time,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !r.Source.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of gps_punch, manual_admin, device_hardware",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Emergency && (r.EmergencyReason == nil || validator.IsEmpty(*r.EmergencyReason)) {
		errs = append(errs, validator.ValidationError{
			Field:   "emergency_reason",
			Message: "emergency_reason is required for an emergency checkout",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LateReasonRequest patches the late reason on an existing record without
// touching its status or check-in time.
type LateReasonRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // "2006-01-02", company-local
	Reason     string `json:"reason"`
}

func (r *LateReasonRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	EmployeeID string
	From       string // "2006-01-02", inclusive
	To         string // "2006-01-02", inclusive
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	from, fromOK := validator.IsValidDate(f.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}

	to, toOK := validator.IsValidDate(f.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}

	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID                      string     `json:"id"`
	EmployeeID              string     `json:"employee_id"`
	Date                    string     `json:"date"`
	CheckInTime             *time.Time `json:"check_in_time"`
	CheckOutTime            *time.Time `json:"check_out_time"`
	Status                  string     `json:"status"`
	LateMinutes             int        `json:"late_minutes"`
	LateReason              *string    `json:"late_reason"`
	IsEmergencyCheckout     bool       `json:"is_emergency_checkout"`
	EmergencyCheckoutReason *string    `json:"emergency_checkout_reason"`
	DoorUnlockTime          *time.Time `json:"door_unlock_time"`
	NeedsReview             bool       `json:"needs_review"`
	IsCorrection            bool       `json:"is_correction"`
	Source                  string     `json:"source"`
}

// NewRecordResponse converts a DailyRecord to its API shape.
func NewRecordResponse(rec DailyRecord) RecordResponse {
	return RecordResponse{
		ID:                      rec.ID,
		EmployeeID:              rec.EmployeeID,
		Date:                    rec.Date.Format("2006-01-02"),
		CheckInTime:             rec.CheckInTime,
		CheckOutTime:            rec.CheckOutTime,
		Status:                  rec.Status.String(),
		LateMinutes:             rec.LateMinutes,
		LateReason:              rec.LateReason,
		IsEmergencyCheckout:     rec.IsEmergencyCheckout,
		EmergencyCheckoutReason: rec.EmergencyCheckoutReason,
		DoorUnlockTime:          rec.DoorUnlockTime,
		NeedsReview:             rec.NeedsReview,
		IsCorrection:            rec.IsCorrection,
		Source:                  string(rec.CheckInSource),
	}
}
