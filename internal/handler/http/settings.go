package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/geoattend/attendance-backend-go/internal/domain/geofence"
	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/middleware"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	UpdateSchedule(w http.ResponseWriter, r *http.Request)
	UpdateGeofence(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	resolver  schedule.Resolver
	validator geofence.Validator
}

func NewSettingsHandler(resolver schedule.Resolver, validator geofence.Validator) SettingsHandler {
	return &settingsHandlerImpl{
		resolver:  resolver,
		validator: validator,
	}
}

// Get handles GET /settings, returning the company's schedule and
// geofence together. A section the company never configured comes back
// null rather than failing the whole read.
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result := map[string]interface{}{
		"schedule": nil,
		"geofence": nil,
	}

	sched, err := h.resolver.Get(r.Context(), companyID)
	switch {
	case err == nil:
		result["schedule"] = sched
	case !errors.Is(err, schedule.ErrScheduleNotFound):
		response.HandleError(w, err)
		return
	}

	geo, err := h.validator.Get(r.Context(), companyID)
	switch {
	case err == nil:
		result["geofence"] = geo
	case !errors.Is(err, geofence.ErrGeofenceNotFound):
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSchedule handles PUT /settings/schedule (admin only).
func (h *settingsHandlerImpl) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req schedule.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.resolver.Update(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule updated", result)
}

// UpdateGeofence handles PUT /settings/geofence (admin only).
func (h *settingsHandlerImpl) UpdateGeofence(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req geofence.UpdateGeofenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.validator.Update(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Geofence updated", result)
}
