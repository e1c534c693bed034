package models

import (
	"time"

	"gorm.io/datatypes"
)

// CustomerDetails holds a customer's contact record
type CustomerDetails struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Contact   string `gorm:"size:12"`
	Email     string `gorm:"size:255"`
	Address   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the CustomerDetails model
func (CustomerDetails) TableName() string {
	return "customers"
}

// TechnicianDetails is a field technician and their weekly availability
type TechnicianDetails struct {
	ID        uint                 `gorm:"primaryKey"`
	Name      string               `gorm:"size:255;not null"`
	Phone     string               `gorm:"size:12"`
	Email     string               `gorm:"size:255"`
	Schedules []TechnicianSchedule `gorm:"foreignKey:TechnicianID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the TechnicianDetails model
func (TechnicianDetails) TableName() string {
	return "technicians"
}

// TechnicianSchedule is a recurring weekly window. Day follows ISO numbering,
// 1 = Monday through 7 = Sunday.
type TechnicianSchedule struct {
	ID           uint           `gorm:"primaryKey"`
	TechnicianID uint           `gorm:"not null;index:idx_schedule_lookup,priority:1"`
	Day          int            `gorm:"not null;check:day BETWEEN 1 AND 7;index:idx_schedule_lookup,priority:2"`
	TimeStart    datatypes.Time `gorm:"not null"`
	TimeEnd      datatypes.Time `gorm:"not null"`
	Active       bool           `gorm:"not null"` // no db default, false must be writable
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the TechnicianSchedule model
func (TechnicianSchedule) TableName() string {
	return "technician_schedules"
}
