package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rpgo/loan-amortizer/internal/api/handler/dto"
	"github.com/rpgo/loan-amortizer/internal/calculation"
	"github.com/rpgo/loan-amortizer/internal/monitoring"
)

type ScheduleHandler struct {
	gen    *calculation.Generator
	logger *slog.Logger
}

func NewScheduleHandler(gen *calculation.Generator, l *slog.Logger) *ScheduleHandler {
	if gen == nil {
		panic("schedule generator cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &ScheduleHandler{
		gen:    gen,
		logger: l.With("component", "ScheduleHandler"),
	}
}

// CreateSchedule handles POST /schedules. Nothing is stored: the response is
// the full amortization table for the submitted terms.
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}
	terms, err := req.ToDomain()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}
	activation, err := req.Activation()
	if err != nil {
		respondError(w, badRequest(err))
		return
	}
	if activation.IsZero() {
		activation = calculation.Today()
	}

	start := time.Now()
	schedule, err := h.gen.Generate(terms, activation)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Schedule generation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}
	monitoring.RecordScheduleGenerated(terms.Periodicity.String(), time.Since(start))

	h.logger.InfoContext(r.Context(), "Schedule generated",
		slog.String("periodicity", terms.Periodicity.String()),
		slog.Int("term", terms.Term),
		slog.String("payment", schedule.PeriodicPayment.StringFixed(2)))
	respondJSON(w, http.StatusCreated, dto.NewScheduleResponse(schedule))
}
