package generate_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RentalService/pkg/clock"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

var now = time.Date(2025, 6, 10, 9, 40, 0, 0, time.UTC)

func newUseCase(store *memstore.Store) *UseCase {
	return NewUseCase(store.Slots, store.Tx, &clock.Fixed{At: now}, memstore.NopLogger{})
}

func TestGridStart(t *testing.T) {
	assert.Equal(t, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC), gridStart(now))
	assert.Equal(t, time.Date(2025, 6, 11, 2, 0, 0, 0, time.UTC),
		gridStart(time.Date(2025, 6, 10, 23, 5, 0, 0, time.UTC)))
}

func TestExecute_DefaultCount(t *testing.T) {
	store := memstore.New()

	resp, err := newUseCase(store).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	require.Len(t, resp.Slots, domain.DefaultSlotSeedCount)
	assert.Equal(t, domain.DefaultSlotSeedCount, resp.CreatedCount)
	assert.Equal(t, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC), resp.From)
	assert.Equal(t, time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC), resp.To)

	for i := 1; i < len(resp.Slots); i++ {
		assert.Equal(t, domain.SlotDuration, resp.Slots[i].StartsAt.Sub(resp.Slots[i-1].StartsAt))
		assert.Equal(t, string(domain.SlotAvailable), resp.Slots[i].Status)
	}
}

func TestExecute_IsIdempotent(t *testing.T) {
	store := memstore.New()
	store.AddSlot(time.Date(2025, 6, 10, 12, 30, 0, 0, time.UTC))
	uc := newUseCase(store)

	first, err := uc.Execute(context.Background(), &Request{Count: ptr.Ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 3, first.CreatedCount)
	assert.Equal(t, 1, first.SkippedCount)
	require.Len(t, first.Slots, 3)
	assert.Equal(t, time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC), first.Slots[1].StartsAt)

	second, err := uc.Execute(context.Background(), &Request{Count: ptr.Ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 0, second.CreatedCount)
	assert.Equal(t, 4, second.SkippedCount)
	assert.Empty(t, second.Slots)
}

func TestExecute_InvalidCount(t *testing.T) {
	uc := newUseCase(memstore.New())

	for _, count := range []int{0, -1, domain.MaxSlotSeedCount + 1} {
		_, err := uc.Execute(context.Background(), &Request{Count: ptr.Ptr(count)})
		assert.ErrorIs(t, err, ErrInvalidInput, "count=%d", count)
	}
}

func TestExecute_FailureRollsBack(t *testing.T) {
	store := memstore.New()
	store.FailOn("slots.CreateIfAbsent", errors.New("db down"))

	_, err := newUseCase(store).Execute(context.Background(), &Request{Count: ptr.Ptr(2)})
	assert.ErrorIs(t, err, ErrInternal)
}
