package controllers

import (
	"time"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/services"
	"github.com/johncar-aircon/backoffice-api/utils"
	"github.com/shopspring/decimal"
)

// Response bodies. Models carry no JSON tags; everything leaving the API
// goes through these types so money is always two decimals, dates are
// YYYY-MM-DD and card data is masked.

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type AirconTypeResponse struct {
	Name string `json:"name"`
}

type ProductResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Stock     int       `json:"stock"`
	Type      *string   `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceTypeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Cost string `json:"cost"`
}

type CustomerResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type ScheduleResponse struct {
	ID           uint   `json:"id"`
	TechnicianID uint   `json:"technician_id"`
	Day          int    `json:"day"`
	TimeStart    string `json:"time_start"`
	TimeEnd      string `json:"time_end"`
	Active       bool   `json:"active"`
}

type TechnicianResponse struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Email     string             `json:"email"`
	Schedules []ScheduleResponse `json:"schedules"`
}

type SalesEntryResponse struct {
	ID          uint   `json:"id"`
	OrderID     uint   `json:"order_id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	EntryPrice  string `json:"entry_price"`
}

type SalesOrderResponse struct {
	ID           uint                 `json:"id"`
	CustomerID   uint                 `json:"customer_id"`
	CustomerName string               `json:"customer_name,omitempty"`
	DateOrdered  string               `json:"date_ordered"`
	DeliveryDate *string              `json:"delivery_date"`
	TotalPrice   string               `json:"total_price"`
	Status       string               `json:"status"`
	Entries      []SalesEntryResponse `json:"entries,omitempty"`
}

type ServiceEntryResponse struct {
	ID          uint   `json:"id"`
	OrderID     uint   `json:"order_id"`
	ServiceID   uint   `json:"service_id"`
	ServiceName string `json:"service_name,omitempty"`
	Quantity    int    `json:"quantity"`
	EntryPrice  string `json:"entry_price"`
}

type ServiceOrderResponse struct {
	ID             uint                   `json:"id"`
	CustomerID     *uint                  `json:"customer_id"`
	CustomerName   string                 `json:"customer_name,omitempty"`
	TechnicianID   *uint                  `json:"technician_id"`
	TechnicianName string                 `json:"technician_name,omitempty"`
	DateOrdered    string                 `json:"date_ordered"`
	ServiceDate    string                 `json:"service_date"`
	TotalPrice     string                 `json:"total_price"`
	Status         string                 `json:"status"`
	Entries        []ServiceEntryResponse `json:"entries,omitempty"`
}

type SupplyEntryResponse struct {
	ID          uint   `json:"id"`
	OrderID     uint   `json:"order_id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
}

type SupplyOrderResponse struct {
	ID           uint                  `json:"id"`
	DateOrdered  string                `json:"date_ordered"`
	DeliveryDate *string               `json:"delivery_date"`
	Status       string                `json:"status"`
	Entries      []SupplyEntryResponse `json:"entries,omitempty"`
}

type PaymentResponse struct {
	ID         uint    `json:"id"`
	OrderID    uint    `json:"order_id"`
	AmountPaid string  `json:"amount_paid"`
	DatePaid   string  `json:"date_paid"`
	IsCash     bool    `json:"is_cash"`
	CardNumber *string `json:"cc_number,omitempty"`
	CardName   *string `json:"cc_name,omitempty"`
	CardExpiry *string `json:"cc_expiry,omitempty"`
}

type PaymentListResponse struct {
	Payments   []PaymentResponse `json:"payments"`
	OrderTotal string            `json:"order_total"`
	TotalPaid  string            `json:"total_paid"`
	Balance    string            `json:"balance"`
}

func toProductResponse(p models.ProductUnit) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: money(p.UnitPrice),
		Stock:     p.Stock,
		Type:      p.TypeName,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toServiceTypeResponse(s models.ServiceType) ServiceTypeResponse {
	return ServiceTypeResponse{ID: s.ID, Name: s.Name, Cost: money(s.Cost)}
}

func toCustomerResponse(c models.CustomerDetails) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Contact: c.Contact, Email: c.Email, Address: c.Address}
}

func toScheduleResponse(s models.TechnicianSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:           s.ID,
		TechnicianID: s.TechnicianID,
		Day:          s.Day,
		TimeStart:    utils.FormatTimeOfDay(s.TimeStart),
		TimeEnd:      utils.FormatTimeOfDay(s.TimeEnd),
		Active:       s.Active,
	}
}

func toTechnicianResponse(t models.TechnicianDetails) TechnicianResponse {
	schedules := make([]ScheduleResponse, 0, len(t.Schedules))
	for _, s := range t.Schedules {
		schedules = append(schedules, toScheduleResponse(s))
	}
	return TechnicianResponse{ID: t.ID, Name: t.Name, Phone: t.Phone, Email: t.Email, Schedules: schedules}
}

func toSalesEntryResponse(e models.SalesOrderEntry) SalesEntryResponse {
	return SalesEntryResponse{
		ID:          e.ID,
		OrderID:     e.OrderID,
		ProductID:   e.ProductID,
		ProductName: e.Product.Name,
		Quantity:    e.Quantity,
		EntryPrice:  money(e.EntryPrice),
	}
}

func toSalesOrderResponse(o models.SalesOrder) SalesOrderResponse {
	resp := SalesOrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.Customer.Name,
		DateOrdered:  utils.FormatDate(o.DateOrdered),
		DeliveryDate: utils.FormatOptionalDate(o.DeliveryDate),
		TotalPrice:   money(o.TotalPrice),
		Status:       string(o.Status),
	}
	for _, e := range o.Entries {
		resp.Entries = append(resp.Entries, toSalesEntryResponse(e))
	}
	return resp
}

func toServiceEntryResponse(e models.ServiceOrderEntry) ServiceEntryResponse {
	return ServiceEntryResponse{
		ID:          e.ID,
		OrderID:     e.OrderID,
		ServiceID:   e.ServiceID,
		ServiceName: e.Service.Name,
		Quantity:    e.Quantity,
		EntryPrice:  money(e.EntryPrice),
	}
}

func toServiceOrderResponse(o models.ServiceOrder) ServiceOrderResponse {
	resp := ServiceOrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		TechnicianID: o.TechnicianID,
		DateOrdered:  utils.FormatDate(o.DateOrdered),
		ServiceDate:  utils.FormatDate(o.ServiceDate),
		TotalPrice:   money(o.TotalPrice),
		Status:       string(o.Status),
	}
	if o.Customer != nil {
		resp.CustomerName = o.Customer.Name
	}
	if o.Technician != nil {
		resp.TechnicianName = o.Technician.Name
	}
	for _, e := range o.Entries {
		resp.Entries = append(resp.Entries, toServiceEntryResponse(e))
	}
	return resp
}

func toSupplyEntryResponse(e models.SupplyOrderEntry) SupplyEntryResponse {
	return SupplyEntryResponse{
		ID:          e.ID,
		OrderID:     e.OrderID,
		ProductID:   e.ProductID,
		ProductName: e.Product.Name,
		Quantity:    e.Quantity,
	}
}

func toSupplyOrderResponse(o models.SupplyOrder) SupplyOrderResponse {
	resp := SupplyOrderResponse{
		ID:           o.ID,
		DateOrdered:  utils.FormatDate(o.DateOrdered),
		DeliveryDate: utils.FormatOptionalDate(o.DeliveryDate),
		Status:       string(o.Status),
	}
	for _, e := range o.Entries {
		resp.Entries = append(resp.Entries, toSupplyEntryResponse(e))
	}
	return resp
}

// maskCardNumber keeps the last four digits
func maskCardNumber(number *string) *string {
	if number == nil {
		return nil
	}
	n := *number
	masked := make([]byte, len(n))
	for i := range masked {
		masked[i] = '*'
	}
	if len(n) > 4 {
		copy(masked[len(n)-4:], n[len(n)-4:])
	}
	s := string(masked)
	return &s
}

func toPaymentResponse(id, orderID uint, d models.PaymentDetails) PaymentResponse {
	return PaymentResponse{
		ID:         id,
		OrderID:    orderID,
		AmountPaid: money(d.AmountPaid),
		DatePaid:   utils.FormatDate(d.DatePaid),
		IsCash:     d.IsCash,
		CardNumber: maskCardNumber(d.CCNumber),
		CardName:   d.CCName,
		CardExpiry: d.CCExpiry,
	}
}

func toPaymentListResponse(payments []PaymentResponse, summary services.PaymentSummary) PaymentListResponse {
	if payments == nil {
		payments = []PaymentResponse{}
	}
	return PaymentListResponse{
		Payments:   payments,
		OrderTotal: money(summary.OrderTotal),
		TotalPaid:  money(summary.TotalPaid),
		Balance:    money(summary.Balance),
	}
}
