package models

// All returns every persisted model in dependency order, for auto-migration
func All() []interface{} {
	return []interface{}{
		&AirconType{},
		&ProductUnit{},
		&ServiceType{},
		&CustomerDetails{},
		&TechnicianDetails{},
		&TechnicianSchedule{},
		&SalesOrder{},
		&SalesOrderEntry{},
		&SalesOrderPayment{},
		&ServiceOrder{},
		&ServiceOrderEntry{},
		&ServiceOrderPayment{},
		&SupplyOrder{},
		&SupplyOrderEntry{},
	}
}
