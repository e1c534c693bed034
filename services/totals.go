package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The order total aggregator. Sales and service orders keep total_price equal
// to the sum of their entries' frozen prices; every entry write adjusts it by
// the entry's own price instead of re-aggregating.

func addEntryPrice(total, price decimal.Decimal) decimal.Decimal {
	return roundMoney(roundMoney(total).Add(roundMoney(price)))
}

func removeEntryPrice(total, price decimal.Decimal) decimal.Decimal {
	return roundMoney(roundMoney(total).Sub(roundMoney(price)))
}

// replaceEntryPrice is two steps, subtract old then add new, each at money precision
func replaceEntryPrice(total, oldPrice, newPrice decimal.Decimal) decimal.Decimal {
	return addEntryPrice(removeEntryPrice(total, oldPrice), newPrice)
}

// sumEntryPrices is what a total should be; used by reconciliation and tests
func sumEntryPrices(prices []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(roundMoney(p))
	}
	return roundMoney(sum)
}

// saveTotal writes total_price on an already locked order row
func saveTotal(tx *gorm.DB, model interface{}, orderID uint, total decimal.Decimal) error {
	if err := tx.Model(model).Where("id = ?", orderID).Update("total_price", total).Error; err != nil {
		return fmt.Errorf("failed to update total for order %d: %w", orderID, err)
	}
	return nil
}
