package generate_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	generateSlots "github.com/m04kA/SMC-RentalService/internal/usecase/generate_slots"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *generateSlots.Request) (*generateSlots.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*generateSlots.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *mockUseCase, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/slots/generate", strings.NewReader(body))
	NewHandler(uc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandle_DefaultCount(t *testing.T) {
	uc := &mockUseCase{}
	from := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &generateSlots.Request{}).
		Return(&generateSlots.Response{CreatedCount: 16, From: from, To: from.Add(8 * time.Hour)}, nil)

	w := serve(uc, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"createdCount":16`)
	uc.AssertExpectations(t)
}

func TestHandle_InvalidCount(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &generateSlots.Request{Count: ptr.Ptr(500)}).
		Return(nil, generateSlots.ErrInvalidInput)

	w := serve(uc, `{"count":500}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_COUNT")
}
