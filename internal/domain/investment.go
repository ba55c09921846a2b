// Package domain holds the core value objects and interfaces shared across
// the raisegate backend: investment configuration, calculation results,
// investor submissions, and the token cache contract.
package domain

// VolumeTier unlocks a bonus share percentage once the invested amount
// reaches its threshold.
type VolumeTier struct {
	Threshold    float64 `json:"threshold"`
	BonusPercent float64 `json:"bonusPercent"`
}

// InvestmentConfig describes a single campaign's investment parameters. It is
// immutable per request: either the hardcoded fallback or a snapshot mapped
// from the remote deal record.
type InvestmentConfig struct {
	SharePrice         float64      `json:"sharePrice"`
	MinInvestment      float64      `json:"minInvestment"`
	MaxInvestment      float64      `json:"maxInvestment,omitempty"`
	InvestorFeePercent float64      `json:"investorFeePercent"`
	CampaignRaised     float64      `json:"campaignRaised"`
	CampaignGoal       float64      `json:"campaignGoal"`
	InvestorsCount     int          `json:"investorsCount,omitempty"`
	Currency           string       `json:"currency,omitempty"`
	CurrencySymbol     string       `json:"currencySymbol,omitempty"`
	SecurityType       string       `json:"securityType,omitempty"`
	PresetAmounts      []float64    `json:"presetAmounts"`
	VolumeTiers        []VolumeTier `json:"volumeTiers"`
}

// ConfigSource identifies which path produced an InvestmentConfig.
type ConfigSource string

const (
	// SourceLive means the config was mapped from a freshly fetched deal.
	SourceLive ConfigSource = "live"
	// SourceFallback means the hardcoded default was served.
	SourceFallback ConfigSource = "fallback"
)

// ConfigResult is the outcome of a config fetch. Source tells callers which
// path executed; Reason carries the failure cause on the fallback path.
type ConfigResult struct {
	Source ConfigSource     `json:"source"`
	Config InvestmentConfig `json:"config"`
	Reason string           `json:"reason,omitempty"`
}

// InvestmentCalculation is the derived share/fee breakdown for a chosen
// amount. It has no identity beyond its inputs and is recomputed on every
// amount change.
type InvestmentCalculation struct {
	Amount              float64 `json:"amount"`
	BaseShares          int64   `json:"baseShares"`
	BonusPercent        float64 `json:"bonusPercent"`
	BonusShares         int64   `json:"bonusShares"`
	TotalShares         int64   `json:"totalShares"`
	EffectiveSharePrice float64 `json:"effectiveSharePrice"`
	InvestorFee         float64 `json:"investorFee"`
	TotalWithFee        float64 `json:"totalWithFee"`
}

// NextTier describes the nearest tier the amount has not yet reached.
type NextTier struct {
	Threshold    float64 `json:"threshold"`
	BonusPercent float64 `json:"bonusPercent"`
	AmountNeeded float64 `json:"amountNeeded"`
}

// FallbackConfig returns the hardcoded campaign configuration used whenever
// the remote integration is unconfigured or fails. Tiers are stored in
// descending threshold order. A fresh copy is returned on every call so
// callers can never mutate the defaults.
func FallbackConfig() InvestmentConfig {
	return InvestmentConfig{
		SharePrice:         0.85,
		MinInvestment:      998.75,
		InvestorFeePercent: 2,
		CampaignRaised:     14_000_000,
		CampaignGoal:       17_000_000,
		PresetAmounts:      []float64{2500, 5000, 10000, 25000, 50000, 100000, 250000},
		VolumeTiers: []VolumeTier{
			{Threshold: 25000, BonusPercent: 15},
			{Threshold: 10000, BonusPercent: 10},
			{Threshold: 5000, BonusPercent: 5},
		},
	}
}
