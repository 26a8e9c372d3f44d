package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/catalog/models"
	"github.com/m04kA/SMC-RentalService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RentalService/pkg/clock"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

var now = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

func newService(store *memstore.Store) *Service {
	return NewService(store.Products, store.Slots, &clock.Fixed{At: now}, memstore.NopLogger{})
}

func TestListProducts(t *testing.T) {
	store := memstore.New()
	store.AddProduct(domain.Product{Type: domain.ProductATV, Name: "ATV", BasePrice: decimal.NewFromInt(80), MaxCapacity: ptr.Ptr(2)})
	board := store.AddProduct(domain.Product{
		Type:      domain.ProductSurfboard,
		Name:      "Board",
		BasePrice: decimal.NewFromInt(30),
		BoardSize: ptr.Ptr(domain.BoardChild),
	})
	service := newService(store)

	all, err := service.ListProducts(context.Background(), &models.ListProductsRequest{})
	require.NoError(t, err)
	require.Len(t, all.Products, 2)
	require.NotNil(t, all.Products[0].RequiredDevice)
	assert.Equal(t, string(domain.DeviceHelmet), *all.Products[0].RequiredDevice)

	boards, err := service.ListProducts(context.Background(), &models.ListProductsRequest{Type: ptr.Ptr("SURFBOARD")})
	require.NoError(t, err)
	require.Len(t, boards.Products, 1)
	assert.Equal(t, board.ID, boards.Products[0].ID)
	require.NotNil(t, boards.Products[0].BoardSize)
	assert.Equal(t, "CHILD", *boards.Products[0].BoardSize)
	assert.Nil(t, boards.Products[0].RequiredDevice)

	_, err = service.ListProducts(context.Background(), &models.ListProductsRequest{Type: ptr.Ptr("BOAT")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListAvailableSlots(t *testing.T) {
	store := memstore.New()
	past := store.AddSlot(now.Add(-time.Hour))
	today := store.AddSlot(now.Add(2 * time.Hour))
	taken := store.AddSlot(now.Add(3 * time.Hour))
	tomorrow := store.AddSlot(now.Add(20 * time.Hour))
	store.AddReservation(domain.Reservation{SlotID: taken.ID, Status: domain.ReservationPaid})
	service := newService(store)

	upcoming, err := service.ListAvailableSlots(context.Background(), &models.ListSlotsRequest{})
	require.NoError(t, err)
	require.Len(t, upcoming.Slots, 2)
	assert.Equal(t, today.ID, upcoming.Slots[0].ID)
	assert.Equal(t, tomorrow.ID, upcoming.Slots[1].ID)
	assert.Equal(t, today.StartsAt.Add(domain.SlotDuration), upcoming.Slots[0].EndsAt)

	byDate, err := service.ListAvailableSlots(context.Background(), &models.ListSlotsRequest{Date: ptr.Ptr("2025-06-10")})
	require.NoError(t, err)
	require.Len(t, byDate.Slots, 2)
	assert.Equal(t, past.ID, byDate.Slots[0].ID)
	assert.Equal(t, today.ID, byDate.Slots[1].ID)

	_, err = service.ListAvailableSlots(context.Background(), &models.ListSlotsRequest{Date: ptr.Ptr("10.06.2025")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
