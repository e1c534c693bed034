package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name  string
		model interface{ TableName() string }
		want  string
	}{
		{"aircon types", AirconType{}, "aircon_types"},
		{"product units", ProductUnit{}, "product_units"},
		{"service types", ServiceType{}, "service_types"},
		{"customers", CustomerDetails{}, "customers"},
		{"technicians", TechnicianDetails{}, "technicians"},
		{"schedules", TechnicianSchedule{}, "technician_schedules"},
		{"sales orders", SalesOrder{}, "sales_orders"},
		{"sales entries", SalesOrderEntry{}, "sales_order_entries"},
		{"sales payments", SalesOrderPayment{}, "sales_order_payments"},
		{"service orders", ServiceOrder{}, "service_orders"},
		{"service entries", ServiceOrderEntry{}, "service_order_entries"},
		{"service payments", ServiceOrderPayment{}, "service_order_payments"},
		{"supply orders", SupplyOrder{}, "supply_orders"},
		{"supply entries", SupplyOrderEntry{}, "supply_order_entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.model.TableName())
		})
	}
}

func TestAllIncludesEveryModel(t *testing.T) {
	assert.Len(t, All(), 14, "every table should be auto-migrated")
}
