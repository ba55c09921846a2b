// Package service contains the orchestration layer between the HTTP boundary
// and the DealMaker platform client: live config resolution with fallback,
// and investor submission flows.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/avencrest/raisegate/internal/domain"
	"github.com/avencrest/raisegate/internal/platform/dealmaker"
)

// DealAPI is the slice of the platform client the config service needs.
type DealAPI interface {
	Configured() bool
	GetDeal(ctx context.Context, dealID string) (dealmaker.Deal, error)
	ListIncentiveTiers(ctx context.Context, dealID string) ([]dealmaker.IncentiveTier, error)
}

// DealConfigService resolves the investment configuration for the campaign:
// live from the platform when the integration is configured and healthy,
// the hardcoded fallback otherwise.
type DealConfigService struct {
	api    DealAPI
	dealID string
	logger *slog.Logger
}

// NewDealConfigService creates a DealConfigService for the given deal.
func NewDealConfigService(api DealAPI, dealID string, logger *slog.Logger) *DealConfigService {
	return &DealConfigService{
		api:    api,
		dealID: dealID,
		logger: logger.With(slog.String("component", "dealconfig")),
	}
}

// Configured reports whether the live path can be attempted at all: client
// credentials and a deal id must all be present.
func (s *DealConfigService) Configured() bool {
	return s.api.Configured() && s.dealID != ""
}

// FetchConfig resolves the current investment configuration. It never fails
// outward: every error on the live path is logged and converted into a
// fallback result whose Reason records the cause. When unconfigured it
// returns the fallback immediately without touching the network.
//
// The deal record and its incentive tiers are fetched concurrently. A tier
// fetch failure is tolerated (tiers are an enhancement, not a requirement)
// and never cancels or fails the deal fetch; a deal fetch failure is fatal to
// the live path.
func (s *DealConfigService) FetchConfig(ctx context.Context) domain.ConfigResult {
	if !s.Configured() {
		return domain.ConfigResult{
			Source: domain.SourceFallback,
			Config: domain.FallbackConfig(),
			Reason: "integration not configured",
		}
	}

	var (
		deal  dealmaker.Deal
		tiers []dealmaker.IncentiveTier
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.api.GetDeal(gctx, s.dealID)
		if err != nil {
			return fmt.Errorf("fetch deal: %w", err)
		}
		deal = d
		return nil
	})
	g.Go(func() error {
		ts, err := s.api.ListIncentiveTiers(gctx, s.dealID)
		if err != nil {
			// Swallowed on purpose: a deal without reachable tiers is still
			// a deal worth showing.
			s.logger.WarnContext(gctx, "incentive tier fetch failed, continuing without tiers",
				slog.String("deal_id", s.dealID),
				slog.String("error", err.Error()),
			)
			return nil
		}
		tiers = ts
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "live config fetch failed, serving fallback",
			slog.String("deal_id", s.dealID),
			slog.String("error", err.Error()),
		)
		return domain.ConfigResult{
			Source: domain.SourceFallback,
			Config: domain.FallbackConfig(),
			Reason: err.Error(),
		}
	}

	return domain.ConfigResult{
		Source: domain.SourceLive,
		Config: mapDealConfig(deal, tiers),
	}
}

// mapDealConfig normalizes a remote deal and its tiers into the domain
// config shape. Cents fields divide by 100; tiers are stored descending by
// threshold; an empty tier list is replaced by the fallback's tiers so a live
// deal never ships without tiers. The fee percent and preset amounts have no
// platform equivalent and always come from the fallback.
func mapDealConfig(deal dealmaker.Deal, tiers []dealmaker.IncentiveTier) domain.InvestmentConfig {
	fallback := domain.FallbackConfig()

	cfg := domain.InvestmentConfig{
		SharePrice:         deal.PricePerSecurity,
		MinInvestment:      deal.MinimumInvestment,
		MaxInvestment:      deal.MaximumInvestment,
		InvestorFeePercent: fallback.InvestorFeePercent,
		CampaignRaised:     deal.FundedAmountCents / 100,
		CampaignGoal:       deal.FundingGoalCents / 100,
		InvestorsCount:     deal.InvestorsCount,
		Currency:           deal.Currency,
		CurrencySymbol:     deal.CurrencySymbol,
		SecurityType:       deal.SecurityType,
		PresetAmounts:      fallback.PresetAmounts,
	}

	if len(tiers) == 0 {
		cfg.VolumeTiers = fallback.VolumeTiers
		return cfg
	}

	mapped := make([]domain.VolumeTier, 0, len(tiers))
	for _, t := range tiers {
		mapped = append(mapped, domain.VolumeTier{
			Threshold:    t.MinimumAmount,
			BonusPercent: t.BonusPercentage,
		})
	}
	sort.Slice(mapped, func(i, j int) bool {
		return mapped[i].Threshold > mapped[j].Threshold
	})
	cfg.VolumeTiers = mapped

	return cfg
}
