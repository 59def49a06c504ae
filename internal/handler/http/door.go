package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/geoattend/attendance-backend-go/internal/domain/door"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/middleware"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/response"
	"github.com/geoattend/attendance-backend-go/internal/pkg/jwt"
	"github.com/geoattend/attendance-backend-go/internal/pkg/sse"
)

type DoorHandler interface {
	PushLog(w http.ResponseWriter, r *http.Request)
	EmergencyOpen(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type doorHandlerImpl struct {
	doorService door.Service
	jwtService  jwt.Service
	hub         *sse.Hub
}

func NewDoorHandler(doorService door.Service, jwtService jwt.Service, hub *sse.Hub) DoorHandler {
	return &doorHandlerImpl{
		doorService: doorService,
		jwtService:  jwtService,
		hub:         hub,
	}
}

// PushLog handles POST /integrations/devices/push-log. The route sits
// outside the JWT group: devices authenticate with their registered key
// via the X-Device-ID / X-Device-Key headers.
func (h *doorHandlerImpl) PushLog(w http.ResponseWriter, r *http.Request) {
	deviceUID := r.Header.Get("X-Device-ID")
	deviceKey := r.Header.Get("X-Device-Key")
	if deviceUID == "" || deviceKey == "" {
		response.Unauthorized(w, "Device credentials required")
		return
	}

	if _, err := h.doorService.AuthenticateDevice(r.Context(), deviceUID, deviceKey); err != nil {
		response.HandleError(w, err)
		return
	}

	var req door.HardwarePunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.doorService.HardwarePunch(r.Context(), deviceUID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmergencyOpen handles POST /doors/emergency-open (admin only).
func (h *doorHandlerImpl) EmergencyOpen(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req door.EmergencyOpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.doorService.EmergencyOpen(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Emergency open recorded", result)
}

// ListEvents handles GET /doors/events?from=&to=
func (h *doorHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := door.EventFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	result, err := h.doorService.ListEvents(r.Context(), companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StreamToken handles POST /doors/stream-token. EventSource cannot set
// an Authorization header, so the dashboard trades its access token for
// a short-lived stream token passed via query string.
func (h *doorHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(companyID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream handles GET /doors/stream?token= as a server-sent event feed of
// the company's live door and attendance events.
func (h *doorHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Stream token required")
		return
	}

	companyID, err := h.jwtService.ValidateStreamToken(token)
	if err != nil {
		response.Unauthorized(w, "Invalid stream token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cleanup := h.hub.Subscribe(companyID)
	defer cleanup()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(ev.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Event, payload)
			flusher.Flush()
		}
	}
}
