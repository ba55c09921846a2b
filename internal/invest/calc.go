// Package invest implements the investment calculation engine: converting a
// chosen amount into share, bonus, and fee totals against a campaign
// configuration, and locating the next volume tier worth upselling to.
package invest

import (
	"math"

	"github.com/avencrest/raisegate/internal/domain"
)

// Calculate converts amount into a full share/fee breakdown. It is a pure,
// total function: any finite non-negative amount and well-formed config yield
// a result, and amount 0 yields all-zero shares with the config share price
// as the effective price. Negative or non-finite amounts are not rejected
// here; callers validate upstream.
//
// The active tier is the qualifying tier with the highest threshold
// (argmax threshold over tiers with threshold <= amount), regardless of the
// order tiers are stored in. An amount exactly at a threshold qualifies.
func Calculate(amount float64, cfg domain.InvestmentConfig) domain.InvestmentCalculation {
	var baseShares int64
	if cfg.SharePrice > 0 {
		baseShares = int64(math.Floor(amount / cfg.SharePrice))
	}

	bonusPercent := activeBonusPercent(amount, cfg.VolumeTiers)
	bonusShares := int64(math.Floor(float64(baseShares) * bonusPercent / 100))
	totalShares := baseShares + bonusShares

	effectivePrice := cfg.SharePrice
	if totalShares > 0 {
		effectivePrice = amount / float64(totalShares)
	}

	investorFee := float64(baseShares) * cfg.SharePrice * cfg.InvestorFeePercent / 100

	return domain.InvestmentCalculation{
		Amount:              amount,
		BaseShares:          baseShares,
		BonusPercent:        bonusPercent,
		BonusShares:         bonusShares,
		TotalShares:         totalShares,
		EffectiveSharePrice: effectivePrice,
		InvestorFee:         investorFee,
		TotalWithFee:        amount + investorFee,
	}
}

// NextTier returns the nearest tier the amount has not yet reached
// (min threshold over tiers with threshold > amount) and how much more is
// needed to unlock it. The second return is false when the amount already
// meets or exceeds every threshold, or when there are no tiers.
func NextTier(amount float64, cfg domain.InvestmentConfig) (domain.NextTier, bool) {
	var next domain.VolumeTier
	found := false
	for _, t := range cfg.VolumeTiers {
		if t.Threshold <= amount {
			continue
		}
		if !found || t.Threshold < next.Threshold {
			next = t
			found = true
		}
	}
	if !found {
		return domain.NextTier{}, false
	}
	return domain.NextTier{
		Threshold:    next.Threshold,
		BonusPercent: next.BonusPercent,
		AmountNeeded: next.Threshold - amount,
	}, true
}

// activeBonusPercent picks the richest tier already unlocked by amount. Note
// the asymmetry with NextTier: current benefit wants the highest qualifying
// threshold, next benefit wants the lowest non-qualifying one.
func activeBonusPercent(amount float64, tiers []domain.VolumeTier) float64 {
	best := -1.0
	percent := 0.0
	for _, t := range tiers {
		if amount >= t.Threshold && t.Threshold > best {
			best = t.Threshold
			percent = t.BonusPercent
		}
	}
	return percent
}
