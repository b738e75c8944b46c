package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rpgo/loan-amortizer/internal/api/handler/dto"
	"github.com/rpgo/loan-amortizer/internal/calculation"
	"github.com/rpgo/loan-amortizer/internal/domain"
	"github.com/rpgo/loan-amortizer/internal/monitoring"
)

const (
	operationPay    = "pay"
	operationCredit = "credit"
)

// AdjustmentHandler applies payments and principal credits to a balance state
// supplied by the caller. The server keeps no loan state between requests.
type AdjustmentHandler struct {
	gen    *calculation.Generator
	logger *slog.Logger
}

func NewAdjustmentHandler(gen *calculation.Generator, l *slog.Logger) *AdjustmentHandler {
	if gen == nil {
		panic("schedule generator cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AdjustmentHandler{
		gen:    gen,
		logger: l.With("component", "AdjustmentHandler"),
	}
}

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return monitoring.OutcomeApplied
	case errors.Is(err, domain.ErrOutstandingDue), errors.Is(err, domain.ErrLoanRetired):
		return monitoring.OutcomeRejected
	default:
		return monitoring.OutcomeError
	}
}

// Pay handles POST /adjustments/pay
func (h *AdjustmentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req dto.PayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	state, err := calculation.ApplyPayment(req.State.ToDomain(), req.Amount)
	monitoring.RecordAdjustment(operationPay, outcomeFor(err))
	if err != nil {
		h.logger.WarnContext(r.Context(), "Payment rejected", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Payment applied",
		slog.String("amount", req.Amount.StringFixed(2)),
		slog.String("outstanding_due", state.OutstandingDue.StringFixed(2)),
		slog.String("credit_balance", state.CreditBalance.StringFixed(2)))
	respondJSON(w, http.StatusOK, dto.NewBalanceStateResponse(state))
}

// Credit handles POST /adjustments/credit. A 409 is returned while a due
// balance remains; when the credit covers the principal the loan is retired
// and no schedule is returned.
func (h *AdjustmentHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	terms, err := req.Loan.ToDomain()
	if err != nil {
		respondError(w, err)
		return
	}
	asOf, err := req.AsOfDate()
	if err != nil {
		respondError(w, badRequest(err))
		return
	}
	if asOf.IsZero() {
		asOf = calculation.Today()
	}

	account, err := calculation.NewAccountFromState(h.gen, terms, asOf, req.State.ToDomain())
	if err != nil {
		monitoring.RecordAdjustment(operationCredit, outcomeFor(err))
		h.logger.WarnContext(r.Context(), "Credit rejected", slog.Any("error", err))
		respondError(w, err)
		return
	}
	schedule, err := account.ApplyCredit(req.Amount)
	if err != nil {
		monitoring.RecordAdjustment(operationCredit, outcomeFor(err))
		h.logger.WarnContext(r.Context(), "Credit rejected", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.CreditResponse{
		State:     dto.NewBalanceStateResponse(account.State()),
		Principal: account.Principal().StringFixed(2),
		Retired:   account.Retired(),
	}
	if schedule != nil {
		resp.Schedule = dto.NewScheduleResponse(schedule)
		monitoring.RecordAdjustment(operationCredit, monitoring.OutcomeApplied)
	} else {
		monitoring.RecordAdjustment(operationCredit, monitoring.OutcomeRetired)
	}
	h.logger.InfoContext(r.Context(), "Credit applied",
		slog.String("amount", req.Amount.StringFixed(2)),
		slog.String("principal", resp.Principal),
		slog.Bool("retired", resp.Retired))
	respondJSON(w, http.StatusOK, resp)
}
