package pay_batch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	payReservation "github.com/m04kA/SMC-RentalService/internal/usecase/pay_reservation"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) ExecuteBatch(ctx context.Context, req *payReservation.BatchRequest) (*payReservation.BatchResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*payReservation.BatchResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *mockUseCase, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/payments/batch", strings.NewReader(body))
	NewHandler(uc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandle_PartialSuccess(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("ExecuteBatch", mock.Anything, &payReservation.BatchRequest{ReservationIDs: []int64{1, 2}}).
		Return(&payReservation.BatchResponse{
			ClientID:   3,
			Count:      1,
			LocalTotal: decimal.RequireFromString("72"),
			Paid:       []payReservation.PaidItem{{ReservationID: 1, PaymentID: 9}},
			Errors: []payReservation.ItemError{{
				ReservationID: 2,
				Reason:        payReservation.ReasonCashDeadlineMissed,
				Released:      true,
			}},
		}, nil)

	w := serve(uc, `{"reservationIds":[1,2]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp PayBatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "CASH_DEADLINE_MISSED", resp.Errors[0].Reason)
	assert.True(t, resp.Errors[0].Released)
}

func TestHandle_NothingToPayCarriesDetails(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("ExecuteBatch", mock.Anything, mock.Anything).
		Return(nil, &payReservation.NothingToPayError{Errors: []payReservation.ItemError{
			{ReservationID: 1, Reason: payReservation.ReasonWrongState},
			{ReservationID: 2, Reason: payReservation.ReasonNotFound},
		}})

	w := serve(uc, `{"reservationIds":[1,2]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp NothingToPayResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOTHING_TO_PAY", resp.Reason)
	assert.Len(t, resp.Errors, 2)
}

func TestHandle_MixedClients(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("ExecuteBatch", mock.Anything, mock.Anything).Return(nil, payReservation.ErrMixedClients)

	w := serve(uc, `{"reservationIds":[1,2]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MIXED_CLIENTS", resp.Reason)
}
