package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/avencrest/raisegate/internal/domain"
)

// InvestorService defines what the investor handler requires from the
// service layer.
type InvestorService interface {
	CreateInvestor(ctx context.Context, in domain.NewInvestor) (domain.InvestorReceipt, error)
	UpdateStep(ctx context.Context, in domain.StepUpdate) (domain.StepReceipt, error)
}

// InvestorHandler serves investor submission endpoints.
type InvestorHandler struct {
	investors InvestorService
	logger    *slog.Logger
}

// NewInvestorHandler creates an InvestorHandler.
func NewInvestorHandler(investors InvestorService, logger *slog.Logger) *InvestorHandler {
	return &InvestorHandler{
		investors: investors,
		logger:    logger,
	}
}

// CreateInvestor creates an investor profile and deal investor from the
// submitted contact fields and amount.
// POST /api/investors
func (h *InvestorHandler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	var in domain.NewInvestor
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Email == "" || in.InvestmentAmount <= 0 {
		writeError(w, http.StatusBadRequest, "email and a positive investmentAmount are required")
		return
	}

	receipt, err := h.investors.CreateInvestor(r.Context(), in)
	if err != nil {
		h.writeSubmissionError(w, r, err, "failed to create investor record")
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}

// UpdateInvestor moves a deal investor to a new funnel step.
// PATCH /api/investors/{id}
func (h *InvestorHandler) UpdateInvestor(w http.ResponseWriter, r *http.Request) {
	investorID, err := strconv.ParseInt(pathParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor id")
		return
	}

	var body struct {
		CurrentStep string `json:"currentStep"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.investors.UpdateStep(r.Context(), domain.StepUpdate{
		InvestorID:  investorID,
		CurrentStep: body.CurrentStep,
	})
	if err != nil {
		h.writeSubmissionError(w, r, err, "failed to update investor record")
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

// writeSubmissionError maps service failures to boundary responses. Internal
// detail stays in the log; the caller only sees a generic message.
func (h *InvestorHandler) writeSubmissionError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, domain.ErrNotConfigured) {
		writeError(w, http.StatusServiceUnavailable, "investment service is not configured")
		return
	}

	h.logger.ErrorContext(r.Context(), "handler: investor submission failed",
		slog.String("error", err.Error()),
	)
	writeError(w, http.StatusBadGateway, msg)
}
