package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencrest/raisegate/internal/domain"
)

// stubInvestorService returns canned receipts or errors.
type stubInvestorService struct {
	receipt     domain.InvestorReceipt
	stepReceipt domain.StepReceipt
	err         error

	gotCreate *domain.NewInvestor
	gotUpdate *domain.StepUpdate
}

func (s *stubInvestorService) CreateInvestor(_ context.Context, in domain.NewInvestor) (domain.InvestorReceipt, error) {
	s.gotCreate = &in
	return s.receipt, s.err
}

func (s *stubInvestorService) UpdateStep(_ context.Context, in domain.StepUpdate) (domain.StepReceipt, error) {
	s.gotUpdate = &in
	return s.stepReceipt, s.err
}

func postInvestor(t *testing.T, h *InvestorHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/investors", strings.NewReader(body))
	h.CreateInvestor(rec, req)
	return rec
}

func TestCreateInvestorHandler(t *testing.T) {
	svc := &stubInvestorService{receipt: domain.InvestorReceipt{
		ProfileID:      7,
		InvestorID:     99,
		SubscriptionID: "sub-1",
		State:          "draft",
	}}
	h := NewInvestorHandler(svc, discard())

	rec := postInvestor(t, h, `{
		"email": "jane@example.com",
		"firstName": "Jane",
		"lastName": "Doe",
		"phone": "+1 555 0100",
		"investmentAmount": 10000
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var receipt domain.InvestorReceipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, svc.receipt, receipt)

	require.NotNil(t, svc.gotCreate)
	assert.Equal(t, "Jane", svc.gotCreate.FirstName)
	assert.Equal(t, 10000.0, svc.gotCreate.InvestmentAmount)
}

func TestCreateInvestorHandlerValidation(t *testing.T) {
	h := NewInvestorHandler(&stubInvestorService{}, discard())

	assert.Equal(t, http.StatusBadRequest, postInvestor(t, h, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, postInvestor(t, h, `{"firstName":"Jane"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postInvestor(t, h, `{"email":"a@b.co","investmentAmount":0}`).Code)
}

func TestCreateInvestorHandlerUnconfigured(t *testing.T) {
	h := NewInvestorHandler(&stubInvestorService{err: domain.ErrNotConfigured}, discard())

	rec := postInvestor(t, h, `{"email":"a@b.co","investmentAmount":500}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateInvestorHandlerPlatformFailureIsGeneric(t *testing.T) {
	h := NewInvestorHandler(&stubInvestorService{err: errors.New("dealmaker: API 422: /deals/42/investors - secrets")}, discard())

	rec := postInvestor(t, h, `{"email":"a@b.co","investmentAmount":500}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	// The platform's error detail must not leak to the caller.
	assert.NotContains(t, rec.Body.String(), "secrets")
	assert.Contains(t, rec.Body.String(), "failed to create investor record")
}

func TestUpdateInvestorHandler(t *testing.T) {
	svc := &stubInvestorService{stepReceipt: domain.StepReceipt{
		InvestorID:  99,
		State:       "invited",
		CurrentStep: "payment",
	}}
	h := NewInvestorHandler(svc, discard())

	req := httptest.NewRequest(http.MethodPatch, "/api/investors/99", strings.NewReader(`{"currentStep":"payment"}`))
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	h.UpdateInvestor(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var receipt domain.StepReceipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, svc.stepReceipt, receipt)

	require.NotNil(t, svc.gotUpdate)
	assert.Equal(t, int64(99), svc.gotUpdate.InvestorID)
	assert.Equal(t, "payment", svc.gotUpdate.CurrentStep)
}

func TestUpdateInvestorHandlerBadID(t *testing.T) {
	h := NewInvestorHandler(&stubInvestorService{}, discard())

	req := httptest.NewRequest(http.MethodPatch, "/api/investors/abc", strings.NewReader(`{}`))
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.UpdateInvestor(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
