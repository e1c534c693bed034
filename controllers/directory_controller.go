package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/config"
	"github.com/johncar-aircon/backoffice-api/services"
	"github.com/johncar-aircon/backoffice-api/utils"
)

// CustomerRequest represents the request body for creating or editing a customer.
// An empty email clears the stored address.
type CustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Contact *string `json:"contact" binding:"omitempty,max=12"`
	Email   *string `json:"email" binding:"omitempty,max=255,email|eq="`
	Address *string `json:"address" binding:"omitempty,max=255"`
}

// TechnicianRequest represents the request body for creating or editing a technician
type TechnicianRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=12"`
	Email *string `json:"email" binding:"omitempty,max=255,email|eq="`
}

// ScheduleRequest represents the request body for a technician schedule.
// Times are HH:MM or HH:MM:SS.
type ScheduleRequest struct {
	Day       *int    `json:"day"`
	TimeStart *string `json:"time_start"`
	TimeEnd   *string `json:"time_end"`
	Active    *bool   `json:"active"`
}

func (r ScheduleRequest) toInput() (services.ScheduleInput, error) {
	input := services.ScheduleInput{Day: r.Day, Active: r.Active}
	if r.TimeStart != nil {
		t, err := utils.ParseTimeOfDay(*r.TimeStart)
		if err != nil {
			return input, err
		}
		input.TimeStart = &t
	}
	if r.TimeEnd != nil {
		t, err := utils.ParseTimeOfDay(*r.TimeEnd)
		if err != nil {
			return input, err
		}
		input.TimeEnd = &t
	}
	return input, nil
}

func directoryService() *services.DirectoryService {
	return services.NewDirectoryService(config.GetDB())
}

// ListCustomers handles GET /api/v1/customers
func ListCustomers(c *gin.Context) {
	customers, err := directoryService().ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve customers")
		return
	}

	resp := make([]CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		resp = append(resp, toCustomerResponse(customer))
	}
	respondData(c, http.StatusOK, resp)
}

// GetCustomer handles GET /api/v1/customers/:id
func GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := directoryService().GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	respondData(c, http.StatusOK, toCustomerResponse(*customer))
}

// CreateCustomer handles POST /api/v1/customers
func CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customer, err := directoryService().CreateCustomer(c.Request.Context(), services.ContactInput{
		Name:    req.Name,
		Phone:   req.Contact,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		respondError(c, err, "Failed to create customer")
		return
	}
	respondData(c, http.StatusCreated, toCustomerResponse(*customer))
}

// UpdateCustomer handles PATCH /api/v1/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customer, err := directoryService().UpdateCustomer(c.Request.Context(), id, services.ContactInput{
		Name:    req.Name,
		Phone:   req.Contact,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		respondError(c, err, "Failed to update customer")
		return
	}
	respondData(c, http.StatusOK, toCustomerResponse(*customer))
}

// DeleteCustomer handles DELETE /api/v1/customers/:id
func DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := directoryService().DeleteCustomer(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete customer")
		return
	}
	respondDeleted(c, "Customer deleted")
}

// ListTechnicians handles GET /api/v1/technicians
func ListTechnicians(c *gin.Context) {
	technicians, err := directoryService().ListTechnicians(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve technicians")
		return
	}

	resp := make([]TechnicianResponse, 0, len(technicians))
	for _, t := range technicians {
		resp = append(resp, toTechnicianResponse(t))
	}
	respondData(c, http.StatusOK, resp)
}

// GetTechnician handles GET /api/v1/technicians/:id
func GetTechnician(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	technician, err := directoryService().GetTechnician(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve technician")
		return
	}
	respondData(c, http.StatusOK, toTechnicianResponse(*technician))
}

// CreateTechnician handles POST /api/v1/technicians
func CreateTechnician(c *gin.Context) {
	var req TechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	technician, err := directoryService().CreateTechnician(c.Request.Context(), services.ContactInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, err, "Failed to create technician")
		return
	}
	respondData(c, http.StatusCreated, toTechnicianResponse(*technician))
}

// UpdateTechnician handles PATCH /api/v1/technicians/:id
func UpdateTechnician(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req TechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	technician, err := directoryService().UpdateTechnician(c.Request.Context(), id, services.ContactInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, err, "Failed to update technician")
		return
	}
	respondData(c, http.StatusOK, toTechnicianResponse(*technician))
}

// DeleteTechnician handles DELETE /api/v1/technicians/:id
func DeleteTechnician(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := directoryService().DeleteTechnician(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete technician")
		return
	}
	respondDeleted(c, "Technician deleted")
}

// ListSchedules handles GET /api/v1/technicians/:id/schedules
func ListSchedules(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	schedules, err := directoryService().ListSchedules(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve schedules")
		return
	}

	resp := make([]ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		resp = append(resp, toScheduleResponse(s))
	}
	respondData(c, http.StatusOK, resp)
}

// CreateSchedule handles POST /api/v1/technicians/:id/schedules
func CreateSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, err, "Invalid schedule")
		return
	}

	schedule, err := directoryService().CreateSchedule(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err, "Failed to create schedule")
		return
	}
	respondData(c, http.StatusCreated, toScheduleResponse(*schedule))
}

// UpdateSchedule handles PATCH /api/v1/schedules/:id
func UpdateSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, err, "Invalid schedule")
		return
	}

	schedule, err := directoryService().UpdateSchedule(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err, "Failed to update schedule")
		return
	}
	respondData(c, http.StatusOK, toScheduleResponse(*schedule))
}

// DeleteSchedule handles DELETE /api/v1/schedules/:id
func DeleteSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := directoryService().DeleteSchedule(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete schedule")
		return
	}
	respondDeleted(c, "Schedule deleted")
}

