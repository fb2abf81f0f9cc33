package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"trivix-payroll.backend/internal/domain/entities"
	"trivix-payroll.backend/internal/interfaces/http/response"
)

type SweepService interface {
	Run(ctx context.Context) (*entities.SweepSummary, error)
}

// SweepHandler lets an external scheduler trigger the payroll sweep
type SweepHandler struct {
	sweep SweepService
}

func NewSweepHandler(sweep SweepService) *SweepHandler {
	return &SweepHandler{sweep: sweep}
}

// RunSweep runs the sweep synchronously and returns its summary
// POST /internal/payroll/sweep
func (h *SweepHandler) RunSweep(c *gin.Context) {
	summary, err := h.sweep.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}
