package services

import (
	"fmt"
	"time"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"gorm.io/gorm"
)

// CheckTechnicianAvailability passes when the technician has at least one
// active schedule on the ISO weekday of serviceDate. Only the day matters:
// the schedule's start/end times and other bookings on that day are not
// consulted.
func CheckTechnicianAvailability(db *gorm.DB, technicianID uint, serviceDate time.Time) error {
	weekday := utils.ISOWeekday(serviceDate)

	var count int64
	err := db.Model(&models.TechnicianSchedule{}).
		Where("technician_id = ? AND day = ? AND active = ?", technicianID, weekday, true).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to load schedules for technician %d: %w", technicianID, err)
	}

	if count == 0 {
		return utils.TechnicianUnavailableError(technicianID, weekday)
	}
	return nil
}
