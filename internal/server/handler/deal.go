package handler

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/avencrest/raisegate/internal/domain"
	"github.com/avencrest/raisegate/internal/invest"
)

// ConfigService defines what the deal handler requires from the service
// layer. It is declared locally so the handler package does not depend on the
// concrete service implementation.
type ConfigService interface {
	FetchConfig(ctx context.Context) domain.ConfigResult
}

// DealHandler serves campaign configuration and investment quotes.
type DealHandler struct {
	configs ConfigService
	logger  *slog.Logger
}

// NewDealHandler creates a DealHandler.
func NewDealHandler(configs ConfigService, logger *slog.Logger) *DealHandler {
	return &DealHandler{
		configs: configs,
		logger:  logger,
	}
}

// GetConfig returns the current investment configuration together with the
// source that produced it. This endpoint always answers 200: failures on the
// live path have already been converted into a fallback result.
// GET /api/deal/config
func (h *DealHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	res := h.configs.FetchConfig(r.Context())
	writeJSON(w, http.StatusOK, res)
}

// quoteResponse pairs the calculation with the upsell target, priced against
// whichever config was resolved.
type quoteResponse struct {
	Source      domain.ConfigSource          `json:"source"`
	Calculation domain.InvestmentCalculation `json:"calculation"`
	NextTier    *domain.NextTier             `json:"nextTier,omitempty"`
}

// GetQuote computes the share/fee breakdown for an amount.
// GET /api/investment/quote?amount=10000
func (h *DealHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("amount")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "amount query parameter is required")
		return
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be a non-negative number")
		return
	}

	res := h.configs.FetchConfig(r.Context())

	resp := quoteResponse{
		Source:      res.Source,
		Calculation: invest.Calculate(amount, res.Config),
	}
	if next, ok := invest.NextTier(amount, res.Config); ok {
		resp.NextTier = &next
	}

	writeJSON(w, http.StatusOK, resp)
}
