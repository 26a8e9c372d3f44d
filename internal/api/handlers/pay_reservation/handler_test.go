package pay_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	payReservation "github.com/m04kA/SMC-RentalService/internal/usecase/pay_reservation"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *payReservation.Request) (*payReservation.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*payReservation.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *mockUseCase, id, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+id+"/pay", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"reservationId": id})
	NewHandler(uc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandle_EmptyBodyIsAccepted(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &payReservation.Request{ReservationID: 7}).
		Return(&payReservation.Response{
			FinalAmount: decimal.RequireFromString("57.5"),
			Currency:    "FOREIGN",
			Reservation: payReservation.Reservation{ID: 7, Status: "PAID"},
		}, nil)

	w := serve(uc, "7", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp PayReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PAID", resp.Reservation.Status)
	assert.True(t, resp.FinalAmount.Equal(decimal.RequireFromString("57.5")))
	uc.AssertExpectations(t)
}

func TestHandle_PassesDeclaredMethodAndCurrency(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &payReservation.Request{
		ReservationID: 7,
		PaymentMethod: ptr.Ptr("CASH"),
		Currency:      ptr.Ptr("LOCAL"),
	}).Return(nil, fmt.Errorf("%w: reservation uses TRANSFER", payReservation.ErrPaymentMethodMismatch))

	w := serve(uc, "7", `{"paymentMethod":"CASH","currency":"LOCAL"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PAYMENT_METHOD_MISMATCH", resp.Reason)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		reason string
	}{
		{payReservation.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND"},
		{payReservation.ErrWrongState, http.StatusConflict, "WRONG_STATE"},
		{payReservation.ErrSlotPassed, http.StatusConflict, "SLOT_PASSED"},
		{payReservation.ErrCashDeadlineMissed, http.StatusConflict, "CASH_DEADLINE_MISSED"},
		{payReservation.ErrRateNotConfigured, http.StatusInternalServerError, "RATE_NOT_CONFIGURED"},
		{payReservation.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(uc, "7", "")

			assert.Equal(t, tt.status, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	uc := &mockUseCase{}

	w := serve(uc, "abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
