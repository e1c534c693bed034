package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntryPrice(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice string
		quantity  int
		want      string
	}{
		{"whole price", "5.00", 3, "15.00"},
		{"cents", "1999.99", 2, "3999.98"},
		{"rounds half up", "0.125", 1, "0.13"},
		{"single unit", "27500.50", 1, "27500.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EntryPrice(decimal.RequireFromString(tt.unitPrice), tt.quantity)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestReplaceEntryPrice(t *testing.T) {
	total := decimal.RequireFromString("40.00")
	got := replaceEntryPrice(total, decimal.RequireFromString("15.00"), decimal.RequireFromString("25.00"))
	assert.Equal(t, "50.00", got.StringFixed(2))

	back := replaceEntryPrice(got, decimal.RequireFromString("25.00"), decimal.RequireFromString("15.00"))
	assert.True(t, back.Equal(total))
}

func TestSumEntryPrices(t *testing.T) {
	prices := []decimal.Decimal{
		decimal.RequireFromString("0.10"),
		decimal.RequireFromString("0.20"),
		decimal.RequireFromString("1500.00"),
	}
	assert.Equal(t, "1500.30", sumEntryPrices(prices).StringFixed(2))
	assert.True(t, sumEntryPrices(nil).IsZero())
}
