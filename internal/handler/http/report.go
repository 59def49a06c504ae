package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/report"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/middleware"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	aggregator report.Aggregator
}

func NewReportHandler(aggregator report.Aggregator) ReportHandler {
	return &reportHandlerImpl{
		aggregator: aggregator,
	}
}

// GetMonthlySummary handles GET /reports/monthly?employee_id=&year=&month=[&as_of=]
func (h *reportHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id parameter is required", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}

	// as_of pins the absence cutoff for reproducible historical queries;
	// it defaults to the current instant.
	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(w, "as_of must be an RFC3339 timestamp", nil)
			return
		}
		asOf = parsed.UTC()
	}

	result, err := h.aggregator.Summarize(r.Context(), companyID, employeeID, year, time.Month(month), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
