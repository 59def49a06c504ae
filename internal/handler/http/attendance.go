package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/middleware"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ManualCheckIn(w http.ResponseWriter, r *http.Request)
	ManualCheckOut(w http.ResponseWriter, r *http.Request)
	SetLateReason(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler. The punch source is fixed by the
// route: the employee app can never submit a privileged source.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.checkIn(w, r, attendance.SourceGPSPunch)
}

// ManualCheckIn implements AttendanceHandler. Admin-only route; the
// manual_admin source may overwrite an existing record as a correction.
func (h *attendanceHandlerImpl) ManualCheckIn(w http.ResponseWriter, r *http.Request) {
	h.checkIn(w, r, attendance.SourceManualAdmin)
}

func (h *attendanceHandlerImpl) checkIn(w http.ResponseWriter, r *http.Request, source attendance.EventSource) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Source = source

	result, err := h.attendanceService.CheckIn(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in recorded", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.checkOut(w, r, attendance.SourceGPSPunch)
}

// ManualCheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ManualCheckOut(w http.ResponseWriter, r *http.Request) {
	h.checkOut(w, r, attendance.SourceManualAdmin)
}

func (h *attendanceHandlerImpl) checkOut(w http.ResponseWriter, r *http.Request, source attendance.EventSource) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Source = source

	result, err := h.attendanceService.CheckOut(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out recorded", result)
}

// SetLateReason implements AttendanceHandler.
// PATCH /attendance/{employeeID}/{date}/late-reason
func (h *attendanceHandlerImpl) SetLateReason(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.LateReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")
	req.Date = chi.URLParam(r, "date")

	result, err := h.attendanceService.SetLateReason(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler. GET /attendance/{employeeID}/{date}
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	result, err := h.attendanceService.GetRecord(r.Context(), companyID, employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler. GET /attendance/{employeeID}?from=&to=
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := attendance.HistoryFilter{
		EmployeeID: chi.URLParam(r, "employeeID"),
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
	}

	result, err := h.attendanceService.ListRecords(r.Context(), companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
