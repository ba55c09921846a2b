package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencrest/raisegate/internal/domain"
)

// stubConfigService serves a canned result.
type stubConfigService struct {
	result domain.ConfigResult
}

func (s *stubConfigService) FetchConfig(context.Context) domain.ConfigResult {
	return s.result
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestGetConfig(t *testing.T) {
	h := NewDealHandler(&stubConfigService{result: domain.ConfigResult{
		Source: domain.SourceFallback,
		Config: domain.FallbackConfig(),
		Reason: "integration not configured",
	}}, discard())

	rec := httptest.NewRecorder()
	h.GetConfig(rec, httptest.NewRequest(http.MethodGet, "/api/deal/config", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.ConfigResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, domain.SourceFallback, res.Source)
	assert.Equal(t, 0.85, res.Config.SharePrice)
	assert.Len(t, res.Config.VolumeTiers, 3)
}

func TestGetQuote(t *testing.T) {
	h := NewDealHandler(&stubConfigService{result: domain.ConfigResult{
		Source: domain.SourceLive,
		Config: domain.FallbackConfig(),
	}}, discard())

	rec := httptest.NewRecorder()
	h.GetQuote(rec, httptest.NewRequest(http.MethodGet, "/api/investment/quote?amount=10000", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res quoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, domain.SourceLive, res.Source)
	assert.Equal(t, int64(11764), res.Calculation.BaseShares)
	assert.Equal(t, 10.0, res.Calculation.BonusPercent)
	assert.Equal(t, int64(12940), res.Calculation.TotalShares)
	require.NotNil(t, res.NextTier)
	assert.Equal(t, 25000.0, res.NextTier.Threshold)
	assert.InDelta(t, 15000.0, res.NextTier.AmountNeeded, 1e-9)
}

func TestGetQuoteAboveTopTierOmitsNextTier(t *testing.T) {
	h := NewDealHandler(&stubConfigService{result: domain.ConfigResult{
		Source: domain.SourceFallback,
		Config: domain.FallbackConfig(),
	}}, discard())

	rec := httptest.NewRecorder()
	h.GetQuote(rec, httptest.NewRequest(http.MethodGet, "/api/investment/quote?amount=250000", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res quoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Nil(t, res.NextTier)
}

func TestGetQuoteRejectsBadAmounts(t *testing.T) {
	h := NewDealHandler(&stubConfigService{result: domain.ConfigResult{
		Source: domain.SourceFallback,
		Config: domain.FallbackConfig(),
	}}, discard())

	for _, query := range []string{"", "amount=", "amount=abc", "amount=-50", "amount=NaN", "amount=Inf"} {
		rec := httptest.NewRecorder()
		h.GetQuote(rec, httptest.NewRequest(http.MethodGet, "/api/investment/quote?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}
