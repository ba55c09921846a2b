package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avencrest/raisegate/internal/domain"
	"github.com/avencrest/raisegate/internal/notify"
	"github.com/avencrest/raisegate/internal/platform/dealmaker"
)

// InvestorAPI is the slice of the platform client the investor service needs.
type InvestorAPI interface {
	Configured() bool
	CreateIndividualProfile(ctx context.Context, req dealmaker.ProfileRequest) (dealmaker.InvestorProfile, error)
	CreateDealInvestor(ctx context.Context, dealID string, req dealmaker.InvestorRequest) (dealmaker.DealInvestor, error)
	UpdateDealInvestor(ctx context.Context, dealID string, investorID int64, req dealmaker.InvestorUpdate) (dealmaker.DealInvestor, error)
}

// InvestorService orchestrates investor submissions against the platform:
// profile creation, deal investor creation, and funnel step updates. Unlike
// config fetches these operations have real-world side effects, so failures
// are surfaced to the caller rather than silently swallowed.
type InvestorService struct {
	api      InvestorAPI
	dealID   string
	notifier *notify.Notifier
	logger   *slog.Logger
}

// NewInvestorService creates an InvestorService. notifier may be nil when no
// notification channel is configured.
func NewInvestorService(api InvestorAPI, dealID string, notifier *notify.Notifier, logger *slog.Logger) *InvestorService {
	return &InvestorService{
		api:      api,
		dealID:   dealID,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "investor")),
	}
}

// Configured reports whether submissions can reach the platform.
func (s *InvestorService) Configured() bool {
	return s.api.Configured() && s.dealID != ""
}

// CreateInvestor creates an individual profile from the contact fields, then
// a deal investor referencing it with the chosen amount. If the profile is
// created but the investor call fails, the orphaned profile is NOT rolled
// back; the platform has no delete endpoint for profiles and a retried
// submission creates a fresh one. Returns domain.ErrNotConfigured when the
// integration is disabled.
func (s *InvestorService) CreateInvestor(ctx context.Context, in domain.NewInvestor) (domain.InvestorReceipt, error) {
	if !s.Configured() {
		return domain.InvestorReceipt{}, domain.ErrNotConfigured
	}

	profile, err := s.api.CreateIndividualProfile(ctx, dealmaker.ProfileRequest{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.Phone,
	})
	if err != nil {
		return domain.InvestorReceipt{}, fmt.Errorf("create profile: %w", err)
	}

	investor, err := s.api.CreateDealInvestor(ctx, s.dealID, dealmaker.InvestorRequest{
		Email:             in.Email,
		InvestorProfileID: profile.ID,
		InvestmentValue:   in.InvestmentAmount,
		AllocationUnit:    "amount",
	})
	if err != nil {
		s.logger.WarnContext(ctx, "investor creation failed after profile creation, profile left orphaned",
			slog.Int64("profile_id", profile.ID),
			slog.String("error", err.Error()),
		)
		return domain.InvestorReceipt{}, fmt.Errorf("create investor: %w", err)
	}

	receipt := domain.InvestorReceipt{
		ProfileID:      profile.ID,
		InvestorID:     investor.ID,
		SubscriptionID: investor.SubscriptionID,
		State:          investor.State,
	}

	s.logger.InfoContext(ctx, "investor created",
		slog.Int64("investor_id", receipt.InvestorID),
		slog.Int64("profile_id", receipt.ProfileID),
		slog.String("state", receipt.State),
	)
	s.notify(ctx, "investor_created", "New investor",
		fmt.Sprintf("%s %s committed %.2f (investor %d, %s)",
			in.FirstName, in.LastName, in.InvestmentAmount, receipt.InvestorID, receipt.State))

	return receipt, nil
}

// UpdateStep moves a deal investor to a new funnel step.
func (s *InvestorService) UpdateStep(ctx context.Context, in domain.StepUpdate) (domain.StepReceipt, error) {
	if !s.Configured() {
		return domain.StepReceipt{}, domain.ErrNotConfigured
	}

	updated, err := s.api.UpdateDealInvestor(ctx, s.dealID, in.InvestorID, dealmaker.InvestorUpdate{
		CurrentStep: in.CurrentStep,
	})
	if err != nil {
		return domain.StepReceipt{}, fmt.Errorf("update investor step: %w", err)
	}

	receipt := domain.StepReceipt{
		InvestorID:  updated.ID,
		State:       updated.State,
		CurrentStep: updated.CurrentStep,
	}

	s.notify(ctx, "investor_updated", "Investor step updated",
		fmt.Sprintf("investor %d moved to %q (%s)", receipt.InvestorID, receipt.CurrentStep, receipt.State))

	return receipt, nil
}

// notify is best-effort; the notifier logs its own failures.
func (s *InvestorService) notify(ctx context.Context, event, title, message string) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Notify(ctx, event, title, message)
}
