/*
handlers.go - HTTP API handlers for the credit schedule engine

PURPOSE:
  Exposes the calculation engine and plan persistence via REST. Handles
  HTTP request/response, JSON serialization, and delegates all domain
  logic to the credit package.

ENDPOINTS:
  Compute:
    POST   /api/schedule                    Stateless schedule computation

  Plans:
    GET    /api/plans                       List stored plans
    POST   /api/plans                       Create a plan
    GET    /api/plans/{id}                  Get a plan with its events
    DELETE /api/plans/{id}                  Delete a plan
    GET    /api/plans/{id}/schedule         Effective schedule + summary

  Events:
    POST   /api/plans/{id}/events           Attach an early-repayment event
    DELETE /api/plans/{id}/events/{eventID} Remove an event

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, unparseable input (field list included)
  - 404: Plan or event not found
  - 413: Serialized schedule exceeds the persistence size cap
  - 500: Internal errors

CACHING:
  POST /api/schedule responses are cached by a hash of the raw request
  body when a cache is configured. Identical inputs always produce
  byte-identical outputs, so cached replies never go stale.
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/warp/credit-engine/cache"
	"github.com/warp/credit-engine/credit"
	"github.com/warp/credit-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
	Cache cache.Cache // nil disables caching
	Log   *logrus.Logger
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(store *sqlite.Store, c cache.Cache, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{Store: store, Cache: c, Log: log}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// STATELESS COMPUTE
// =============================================================================

// ComputeSchedule generates the effective schedule for inline
// parameters and events without touching the store.
func (h *Handler) ComputeSchedule(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", nil)
		return
	}

	key := cache.Key("schedule", body)
	if h.Cache != nil {
		if cached, ok := h.Cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			io.WriteString(w, cached)
			return
		}
	}

	var req ComputeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	params, err := req.Params.toParams()
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	events := make([]credit.Event, 0, len(req.Events))
	for _, dto := range req.Events {
		ev, err := dto.toEvent()
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		if fieldErrs := ev.Validate(); len(fieldErrs) > 0 {
			writeError(w, http.StatusBadRequest, "invalid early repayment event", fieldErrs)
			return
		}
		events = append(events, ev)
	}
	credit.SortEvents(events)

	resp, err := h.computeEffective(params, events)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to serialize schedule", nil)
		return
	}
	if h.Cache != nil {
		if err := h.Cache.Set(key, string(payload)); err != nil {
			h.Log.WithError(err).Warn("schedule cache write failed")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// computeEffective runs the whole pipeline: base schedule, event fold,
// summary.
func (h *Handler) computeEffective(params credit.Params, events []credit.Event) (*ScheduleResponse, error) {
	base, err := credit.Generate(params)
	if err != nil {
		return nil, err
	}
	effective, err := credit.ApplyAll(base, events, params)
	if err != nil {
		return nil, err
	}
	return &ScheduleResponse{
		Schedule: effective,
		Summary:  credit.Summarize(effective),
	}, nil
}

// =============================================================================
// PLANS
// =============================================================================

func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "plan name is required", nil)
		return
	}

	params, err := req.Params.toParams()
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if fieldErrs := params.Validate(); len(fieldErrs) > 0 {
		writeError(w, http.StatusBadRequest, "invalid credit parameters", fieldErrs)
		return
	}

	plan := sqlite.Plan{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Params: params,
	}
	if err := h.Store.SavePlan(r.Context(), plan); err != nil {
		h.Log.WithError(err).Error("failed to save plan")
		writeError(w, http.StatusInternalServerError, "failed to save plan", nil)
		return
	}

	h.Log.WithField("plan", plan.ID).Info("plan created")
	writeJSON(w, http.StatusCreated, planDTO(plan, nil))
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Store.ListPlans(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("failed to list plans")
		writeError(w, http.StatusInternalServerError, "failed to list plans", nil)
		return
	}

	dtos := make([]PlanDTO, 0, len(plans))
	for _, p := range plans {
		dtos = append(dtos, planDTO(p, nil))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	plan, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	events, err := h.Store.ListEvents(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, planDTO(plan, events))
}

func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeletePlan(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PlanSchedule computes a plan's effective schedule, persists the
// snapshot through the size-capped store, and returns it with the
// summary.
func (h *Handler) PlanSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	plan, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	events, err := h.Store.ListEvents(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	resp, err := h.computeEffective(plan.Params, events)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	if err := h.Store.SaveSchedule(r.Context(), id, resp.Schedule); err != nil {
		h.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// EVENTS
// =============================================================================

func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	event, err := dto.toEvent()
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if fieldErrs := event.Validate(); len(fieldErrs) > 0 {
		writeError(w, http.StatusBadRequest, "invalid early repayment event", fieldErrs)
		return
	}

	event.ID = uuid.NewString()
	if err := h.Store.AddEvent(r.Context(), planID, event); err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.Log.WithFields(logrus.Fields{"plan": planID, "event": event.ID}).Info("event added")
	writeJSON(w, http.StatusCreated, eventDTO(event))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")
	eventID := chi.URLParam(r, "eventID")

	if err := h.Store.DeleteEvent(r.Context(), planID, eventID); err != nil {
		h.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, fields []credit.FieldError) {
	writeJSON(w, status, ErrorResponse{Error: msg, Fields: fields})
}

// writeDomainError maps engine errors to HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var ipe *credit.InvalidParamsError
	switch {
	case errors.As(err, &ipe):
		writeError(w, http.StatusBadRequest, "invalid credit parameters", ipe.Fields)
	case errors.Is(err, credit.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid date", nil)
	case errors.Is(err, credit.ErrInvalidEvent):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, credit.ErrCalculation):
		h.Log.WithError(err).Error("calculation failed")
		writeError(w, http.StatusInternalServerError, "calculation failed", nil)
	default:
		h.Log.WithError(err).Error("unexpected error")
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

// writeStoreError maps persistence errors to HTTP statuses.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sqlite.ErrPlanNotFound):
		writeError(w, http.StatusNotFound, "plan not found", nil)
	case errors.Is(err, sqlite.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "event not found", nil)
	case errors.Is(err, sqlite.ErrScheduleNotFound):
		writeError(w, http.StatusNotFound, "schedule not found", nil)
	case errors.Is(err, sqlite.ErrScheduleTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "schedule exceeds storage size cap", nil)
	default:
		h.Log.WithError(err).Error("storage failure")
		writeError(w, http.StatusInternalServerError, "storage failure", nil)
	}
}
