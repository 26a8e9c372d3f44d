package cancel_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	cancelReservation "github.com/m04kA/SMC-RentalService/internal/usecase/cancel_reservation"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *cancelReservation.Request) (*cancelReservation.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*cancelReservation.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(uc *mockUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/reservations/{reservationId}/cancel", h.Handle).Methods(http.MethodPut)
	r.HandleFunc("/slots/{slotId}/cancel", h.Handle).Methods(http.MethodPut)
	return r
}

func TestHandle_ByReservation(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &cancelReservation.Request{ReservationID: ptr.Ptr(int64(5))}).
		Return(&cancelReservation.Response{
			Reservation: cancelReservation.Reservation{ID: 5, Status: "CANCELLED", PreviousStatus: "PAID"},
			Slot:        cancelReservation.Slot{ID: 8, StartsAt: time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), Status: "AVAILABLE"},
			Refund:      &cancelReservation.Refund{Amount: decimal.RequireFromString("72"), Currency: "LOCAL"},
		}, nil)

	w := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/reservations/5/cancel", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp CancelReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AVAILABLE", resp.Slot.Status)
	require.NotNil(t, resp.Refund)
	assert.True(t, resp.Refund.Amount.Equal(decimal.RequireFromString("72")))
	uc.AssertExpectations(t)
}

func TestHandle_BySlot(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &cancelReservation.Request{SlotID: ptr.Ptr(int64(8))}).
		Return(nil, cancelReservation.ErrNoActiveReservation)

	w := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/slots/8/cancel", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NO_ACTIVE_RESERVATION", resp.Reason)
	uc.AssertExpectations(t)
}

func TestHandle_RuleViolations(t *testing.T) {
	tests := []struct {
		err    error
		status int
		reason string
	}{
		{cancelReservation.ErrAlreadyCancelled, http.StatusConflict, "ALREADY_CANCELLED"},
		{cancelReservation.ErrCancellationDeadline, http.StatusConflict, "CANCELLATION_DEADLINE"},
		{cancelReservation.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND"},
		{cancelReservation.ErrPaymentMissing, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/reservations/5/cancel", nil))

			assert.Equal(t, tt.status, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}
}
