package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencrest/raisegate/internal/domain"
	"github.com/avencrest/raisegate/internal/platform/dealmaker"
)

// fakeInvestorAPI records the requests the service issues.
type fakeInvestorAPI struct {
	configured bool

	profile    dealmaker.InvestorProfile
	profileErr error
	profileReq *dealmaker.ProfileRequest

	investor    dealmaker.DealInvestor
	investorErr error
	investorReq *dealmaker.InvestorRequest

	updated    dealmaker.DealInvestor
	updateErr  error
	updateReq  *dealmaker.InvestorUpdate
	updatedID  int64
	updateDeal string
}

func (f *fakeInvestorAPI) Configured() bool { return f.configured }

func (f *fakeInvestorAPI) CreateIndividualProfile(ctx context.Context, req dealmaker.ProfileRequest) (dealmaker.InvestorProfile, error) {
	f.profileReq = &req
	return f.profile, f.profileErr
}

func (f *fakeInvestorAPI) CreateDealInvestor(ctx context.Context, dealID string, req dealmaker.InvestorRequest) (dealmaker.DealInvestor, error) {
	f.investorReq = &req
	return f.investor, f.investorErr
}

func (f *fakeInvestorAPI) UpdateDealInvestor(ctx context.Context, dealID string, investorID int64, req dealmaker.InvestorUpdate) (dealmaker.DealInvestor, error) {
	f.updateDeal = dealID
	f.updatedID = investorID
	f.updateReq = &req
	return f.updated, f.updateErr
}

func TestCreateInvestorNotConfigured(t *testing.T) {
	svc := NewInvestorService(&fakeInvestorAPI{configured: false}, "42", nil, discard())

	_, err := svc.CreateInvestor(context.Background(), domain.NewInvestor{Email: "a@b.co"})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestCreateInvestor(t *testing.T) {
	api := &fakeInvestorAPI{
		configured: true,
		profile:    dealmaker.InvestorProfile{ID: 7},
		investor:   dealmaker.DealInvestor{ID: 99, SubscriptionID: "sub-1", State: "draft"},
	}
	svc := NewInvestorService(api, "42", nil, discard())

	receipt, err := svc.CreateInvestor(context.Background(), domain.NewInvestor{
		Email:            "jane@example.com",
		FirstName:        "Jane",
		LastName:         "Doe",
		Phone:            "+1 555 0100",
		InvestmentAmount: 10000,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvestorReceipt{
		ProfileID:      7,
		InvestorID:     99,
		SubscriptionID: "sub-1",
		State:          "draft",
	}, receipt)

	require.NotNil(t, api.profileReq)
	assert.Equal(t, "jane@example.com", api.profileReq.Email)
	assert.Equal(t, "+1 555 0100", api.profileReq.PhoneNumber)

	require.NotNil(t, api.investorReq)
	assert.Equal(t, int64(7), api.investorReq.InvestorProfileID)
	assert.Equal(t, 10000.0, api.investorReq.InvestmentValue)
	assert.Equal(t, "amount", api.investorReq.AllocationUnit)
}

func TestCreateInvestorProfileFailureStopsFlow(t *testing.T) {
	api := &fakeInvestorAPI{
		configured: true,
		profileErr: errors.New("422"),
	}
	svc := NewInvestorService(api, "42", nil, discard())

	_, err := svc.CreateInvestor(context.Background(), domain.NewInvestor{Email: "a@b.co"})
	require.Error(t, err)
	assert.Nil(t, api.investorReq, "investor creation must not be attempted")
}

func TestCreateInvestorNoRollbackOnPartialFailure(t *testing.T) {
	api := &fakeInvestorAPI{
		configured:  true,
		profile:     dealmaker.InvestorProfile{ID: 7},
		investorErr: errors.New("allocation full"),
	}
	svc := NewInvestorService(api, "42", nil, discard())

	_, err := svc.CreateInvestor(context.Background(), domain.NewInvestor{Email: "a@b.co", InvestmentAmount: 500})
	require.Error(t, err)

	// The profile was created and is deliberately left in place.
	require.NotNil(t, api.profileReq)
	require.NotNil(t, api.investorReq)
}

func TestUpdateStep(t *testing.T) {
	api := &fakeInvestorAPI{
		configured: true,
		updated:    dealmaker.DealInvestor{ID: 99, State: "invited", CurrentStep: "payment"},
	}
	svc := NewInvestorService(api, "42", nil, discard())

	receipt, err := svc.UpdateStep(context.Background(), domain.StepUpdate{InvestorID: 99, CurrentStep: "payment"})
	require.NoError(t, err)

	assert.Equal(t, domain.StepReceipt{InvestorID: 99, State: "invited", CurrentStep: "payment"}, receipt)
	assert.Equal(t, "42", api.updateDeal)
	assert.Equal(t, int64(99), api.updatedID)
	require.NotNil(t, api.updateReq)
	assert.Equal(t, "payment", api.updateReq.CurrentStep)
}

func TestUpdateStepNotConfigured(t *testing.T) {
	svc := NewInvestorService(&fakeInvestorAPI{}, "", nil, discard())

	_, err := svc.UpdateStep(context.Background(), domain.StepUpdate{InvestorID: 99})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
