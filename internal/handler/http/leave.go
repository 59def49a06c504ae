package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/middleware"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	tracker leave.Tracker
}

func NewLeaveHandler(tracker leave.Tracker) LeaveHandler {
	return &leaveHandlerImpl{
		tracker: tracker,
	}
}

// Start handles POST /leaves
func (h *leaveHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.StartLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.tracker.Start(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Short leave started", result)
}

// End handles PATCH /leaves/{leaveID}/return
func (h *leaveHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.EndLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LeaveID = chi.URLParam(r, "leaveID")

	result, err := h.tracker.End(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Short leave closed", result)
}

// List handles GET /leaves?employee_id=&from=&to=
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := leave.LeaveFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
	}

	result, err := h.tracker.List(r.Context(), companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
