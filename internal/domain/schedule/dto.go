package schedule

import (
	"time"

	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

type UpdateScheduleRequest struct {
	StartTime                 string `json:"start_time"` // "HH:MM"
	EndTime                   string `json:"end_time"`   // "HH:MM"
	Timezone                  string `json:"timezone"`
	SuperLateThresholdMinutes int    `json:"super_late_threshold_minutes"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startErr := time.Parse("15:04", r.StartTime)
	if startErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	end, endErr := time.Parse("15:04", r.EndTime)
	if endErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if startErr == nil && endErr == nil && !start.Before(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be before end_time",
		})
	}

	if validator.IsEmpty(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone is required",
		})
	} else if _, err := time.LoadLocation(r.Timezone); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA timezone name",
		})
	}

	if r.SuperLateThresholdMinutes < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "super_late_threshold_minutes",
			Message: "super_late_threshold_minutes must be at least 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleResponse struct {
	CompanyID                 string `json:"company_id"`
	StartTime                 string `json:"start_time"`
	EndTime                   string `json:"end_time"`
	Timezone                  string `json:"timezone"`
	SuperLateThresholdMinutes int    `json:"super_late_threshold_minutes"`
}

func NewScheduleResponse(ws WorkSchedule) ScheduleResponse {
	return ScheduleResponse{
		CompanyID:                 ws.CompanyID,
		StartTime:                 ws.StartTime,
		EndTime:                   ws.EndTime,
		Timezone:                  ws.Timezone,
		SuperLateThresholdMinutes: ws.SuperLateThresholdMinutes,
	}
}
