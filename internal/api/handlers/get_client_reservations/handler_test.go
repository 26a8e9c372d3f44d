package get_client_reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/service/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetClientReservations(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.ReservationListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/clients/{clientId}/reservations", NewHandler(svc, nopLogger{}).Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandle_FilterByStatus(t *testing.T) {
	svc := &mockService{}
	svc.On("GetClientReservations", mock.Anything, &models.GetClientReservationsRequest{
		ClientID: 4,
		Status:   ptr.Ptr("PAID"),
	}).Return(&models.ReservationListResponse{Reservations: []models.ReservationResponse{{ID: 1}}}, nil)

	w := serve(svc, "/clients/4/reservations?status=PAID")

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ReservationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Reservations, 1)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		err    error
		status int
	}{
		{"invalid status", "/clients/4/reservations?status=LOST", reservations.ErrInvalidInput, http.StatusBadRequest},
		{"unknown client", "/clients/4/reservations", reservations.ErrClientNotFound, http.StatusNotFound},
		{"storage failure", "/clients/4/reservations", reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("GetClientReservations", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(svc, tt.url)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandle_InvalidClientID(t *testing.T) {
	svc := &mockService{}

	w := serve(svc, "/clients/0/reservations")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetClientReservations", mock.Anything, mock.Anything)
}
