package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/interfaces/http/middleware"
	"trivix-payroll.backend/internal/interfaces/http/response"
	"trivix-payroll.backend/internal/usecases"
)

type ScheduleService interface {
	UpdateSchedule(ctx context.Context, businessID string, input usecases.ScheduleInput) (*entities.PayrollSchedule, error)
	GetSchedule(ctx context.Context, businessID string) (*entities.PayrollSchedule, error)
}

// ScheduleHandler handles the payroll schedule of a business
type ScheduleHandler struct {
	schedules ScheduleService
}

func NewScheduleHandler(schedules ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

type updateScheduleRequest struct {
	PaymentInterval string `json:"paymentInterval" binding:"required"`
	PaymentDay      string `json:"paymentDay" binding:"required"`
	SpecificDate    *int   `json:"specificDate"`
}

// UpdateSchedule
// PUT /api/v1/payroll/schedule
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	schedule, err := h.schedules.UpdateSchedule(c.Request.Context(), businessID, usecases.ScheduleInput{
		PaymentInterval: entities.PaymentInterval(req.PaymentInterval),
		PaymentDay:      req.PaymentDay,
		SpecificDate:    req.SpecificDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, schedule)
}

// GetSchedule
// GET /api/v1/payroll/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	schedule, err := h.schedules.GetSchedule(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, schedule)
}
