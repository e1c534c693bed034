package services

import "github.com/shopspring/decimal"

// moneyPlaces matches the decimal(12,2) money columns
const moneyPlaces = 2

// EntryPrice snapshots the price of a line: the catalog price or cost as it is
// right now, times quantity. The result is stored on the entry and never
// recomputed from the catalog afterwards.
func EntryPrice(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return roundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}
