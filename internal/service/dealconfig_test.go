package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencrest/raisegate/internal/domain"
	"github.com/avencrest/raisegate/internal/platform/dealmaker"
)

// fakeDealAPI is a scriptable DealAPI that counts calls.
type fakeDealAPI struct {
	configured bool
	deal       dealmaker.Deal
	dealErr    error
	tiers      []dealmaker.IncentiveTier
	tierErr    error

	dealCalls atomic.Int64
	tierCalls atomic.Int64
}

func (f *fakeDealAPI) Configured() bool { return f.configured }

func (f *fakeDealAPI) GetDeal(ctx context.Context, dealID string) (dealmaker.Deal, error) {
	f.dealCalls.Add(1)
	return f.deal, f.dealErr
}

func (f *fakeDealAPI) ListIncentiveTiers(ctx context.Context, dealID string) ([]dealmaker.IncentiveTier, error) {
	f.tierCalls.Add(1)
	return f.tiers, f.tierErr
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func liveDeal() dealmaker.Deal {
	return dealmaker.Deal{
		ID:                42,
		PricePerSecurity:  1.25,
		MinimumInvestment: 500,
		MaximumInvestment: 500000,
		Currency:          "USD",
		CurrencySymbol:    "$",
		SecurityType:      "Common Shares",
		FundingGoalCents:  2_000_000_00,
		FundedAmountCents: 1_250_000_00,
		InvestorsCount:    321,
	}
}

func TestFetchConfigUnconfiguredServesFallbackWithoutNetwork(t *testing.T) {
	api := &fakeDealAPI{configured: false}
	svc := NewDealConfigService(api, "42", discard())

	res := svc.FetchConfig(context.Background())

	assert.Equal(t, domain.SourceFallback, res.Source)
	assert.Equal(t, domain.FallbackConfig(), res.Config)
	assert.NotEmpty(t, res.Reason)
	assert.Zero(t, api.dealCalls.Load())
	assert.Zero(t, api.tierCalls.Load())
}

func TestFetchConfigMissingDealIDServesFallback(t *testing.T) {
	api := &fakeDealAPI{configured: true}
	svc := NewDealConfigService(api, "", discard())

	res := svc.FetchConfig(context.Background())

	assert.Equal(t, domain.SourceFallback, res.Source)
	assert.Zero(t, api.dealCalls.Load())
}

func TestFetchConfigLiveMapsDealAndTiers(t *testing.T) {
	api := &fakeDealAPI{
		configured: true,
		deal:       liveDeal(),
		tiers: []dealmaker.IncentiveTier{
			{MinimumAmount: 1000, BonusPercentage: 2},
			{MinimumAmount: 50000, BonusPercentage: 12},
			{MinimumAmount: 10000, BonusPercentage: 7},
		},
	}
	svc := NewDealConfigService(api, "42", discard())

	res := svc.FetchConfig(context.Background())
	require.Equal(t, domain.SourceLive, res.Source)
	assert.Empty(t, res.Reason)

	cfg := res.Config
	fallback := domain.FallbackConfig()

	assert.Equal(t, 1.25, cfg.SharePrice)
	assert.Equal(t, 500.0, cfg.MinInvestment)
	assert.Equal(t, 500000.0, cfg.MaxInvestment)
	assert.Equal(t, 1_250_000.0, cfg.CampaignRaised) // cents / 100
	assert.Equal(t, 2_000_000.0, cfg.CampaignGoal)
	assert.Equal(t, 321, cfg.InvestorsCount)
	assert.Equal(t, "USD", cfg.Currency)

	// Fee percent and presets have no remote equivalent.
	assert.Equal(t, fallback.InvestorFeePercent, cfg.InvestorFeePercent)
	assert.Equal(t, fallback.PresetAmounts, cfg.PresetAmounts)

	// Tiers are remapped and stored descending by threshold.
	assert.Equal(t, []domain.VolumeTier{
		{Threshold: 50000, BonusPercent: 12},
		{Threshold: 10000, BonusPercent: 7},
		{Threshold: 1000, BonusPercent: 2},
	}, cfg.VolumeTiers)
}

func TestFetchConfigDealFailureServesFallback(t *testing.T) {
	api := &fakeDealAPI{
		configured: true,
		dealErr:    errors.New("boom"),
		tiers:      []dealmaker.IncentiveTier{{MinimumAmount: 1000, BonusPercentage: 2}},
	}
	svc := NewDealConfigService(api, "42", discard())

	res := svc.FetchConfig(context.Background())

	assert.Equal(t, domain.SourceFallback, res.Source)
	assert.Equal(t, domain.FallbackConfig(), res.Config)
	assert.Contains(t, res.Reason, "boom")
}

func TestFetchConfigTierFailureIsTolerated(t *testing.T) {
	api := &fakeDealAPI{
		configured: true,
		deal:       liveDeal(),
		tierErr:    errors.New("tiers unavailable"),
	}
	svc := NewDealConfigService(api, "42", discard())

	res := svc.FetchConfig(context.Background())

	// Live result, but with the fallback's tier list substituted in.
	require.Equal(t, domain.SourceLive, res.Source)
	assert.Equal(t, domain.FallbackConfig().VolumeTiers, res.Config.VolumeTiers)
	assert.Equal(t, 1.25, res.Config.SharePrice)
}

func TestFetchConfigEmptyTierListFallsBackToDefaultTiers(t *testing.T) {
	api := &fakeDealAPI{
		configured: true,
		deal:       liveDeal(),
		tiers:      []dealmaker.IncentiveTier{},
	}
	svc := NewDealConfigService(api, "42", discard())

	res := svc.FetchConfig(context.Background())
	require.Equal(t, domain.SourceLive, res.Source)
	assert.Equal(t, domain.FallbackConfig().VolumeTiers, res.Config.VolumeTiers)
}
