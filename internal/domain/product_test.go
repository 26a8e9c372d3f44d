package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func sizePtr(s BoardSize) *BoardSize { return &s }

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{
			name:    "jetsky with capacity",
			product: Product{Type: ProductJetsky, BasePrice: decimal.NewFromInt(80), MaxCapacity: intPtr(2)},
		},
		{
			name:    "atv without capacity",
			product: Product{Type: ProductATV, BasePrice: decimal.NewFromInt(60)},
			wantErr: true,
		},
		{
			name:    "dive gear with capacity",
			product: Product{Type: ProductDiveGear, BasePrice: decimal.NewFromInt(45), MaxCapacity: intPtr(1)},
			wantErr: true,
		},
		{
			name:    "surfboard with size",
			product: Product{Type: ProductSurfboard, BasePrice: decimal.NewFromInt(30), BoardSize: sizePtr(BoardAdult)},
		},
		{
			name:    "surfboard without size",
			product: Product{Type: ProductSurfboard, BasePrice: decimal.NewFromInt(30)},
			wantErr: true,
		},
		{
			name:    "jetsky with board size",
			product: Product{Type: ProductJetsky, BasePrice: decimal.NewFromInt(80), MaxCapacity: intPtr(2), BoardSize: sizePtr(BoardChild)},
			wantErr: true,
		},
		{
			name:    "unknown type",
			product: Product{Type: "KAYAK", BasePrice: decimal.NewFromInt(10)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProduct)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProduct_EffectivePartySize(t *testing.T) {
	jetsky := Product{Type: ProductJetsky, MaxCapacity: intPtr(2)}
	surf := Product{Type: ProductSurfboard, BoardSize: sizePtr(BoardAdult)}

	size, ok := jetsky.EffectivePartySize(2)
	assert.True(t, ok)
	assert.Equal(t, 2, size)

	_, ok = jetsky.EffectivePartySize(3)
	assert.False(t, ok)

	size, ok = surf.EffectivePartySize(4)
	assert.True(t, ok)
	assert.Equal(t, 1, size)
}

func TestProduct_RequiredDevice(t *testing.T) {
	kind, ok := (&Product{Type: ProductJetsky}).RequiredDevice()
	assert.True(t, ok)
	assert.Equal(t, DeviceLifeVest, kind)

	kind, ok = (&Product{Type: ProductATV}).RequiredDevice()
	assert.True(t, ok)
	assert.Equal(t, DeviceHelmet, kind)

	_, ok = (&Product{Type: ProductDiveGear}).RequiredDevice()
	assert.False(t, ok)
}

func TestPaymentMethod_Supports(t *testing.T) {
	assert.True(t, PaymentCash.Supports(CurrencyLocal))
	assert.True(t, PaymentCash.Supports(CurrencyForeign))
	assert.True(t, PaymentTransfer.Supports(CurrencyLocal))
	assert.False(t, PaymentTransfer.Supports(CurrencyForeign))
}

func TestBalance_Credit(t *testing.T) {
	var b Balance

	b.Credit(CurrencyLocal, decimal.RequireFromString("28.75"))
	b.Credit(CurrencyForeign, decimal.NewFromInt(10))
	b.Credit(CurrencyLocal, decimal.RequireFromString("1.25"))

	assert.True(t, b.Amount(CurrencyLocal).Equal(decimal.NewFromInt(30)))
	assert.True(t, b.Amount(CurrencyForeign).Equal(decimal.NewFromInt(10)))
}
