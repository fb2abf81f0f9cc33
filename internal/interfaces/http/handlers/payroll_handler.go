package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/interfaces/http/middleware"
	"trivix-payroll.backend/internal/interfaces/http/response"
	"trivix-payroll.backend/pkg/utils"
)

type PayrollService interface {
	PayWorkersByID(ctx context.Context, businessID string, workerIDs []string) (*entities.PaymentAttempt, error)
	PayContractorByID(ctx context.Context, businessID, contractorID string) (*entities.PaymentAttempt, error)
	Cancel(paymentID string) error
}

type PaymentRecordService interface {
	Get(ctx context.Context, businessID, paymentID string) (*entities.PaymentRecord, error)
	ListByBusiness(ctx context.Context, businessID string, page utils.PageRequest) ([]*entities.PaymentRecord, utils.PaginationMeta, error)
	ListStalePending(ctx context.Context, businessID string, olderThan time.Duration) ([]*entities.PaymentRecord, error)
}

// PayrollHandler handles payroll payment endpoints
type PayrollHandler struct {
	payroll  PayrollService
	payments PaymentRecordService
}

func NewPayrollHandler(payroll PayrollService, payments PaymentRecordService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll, payments: payments}
}

type payWorkersRequest struct {
	WorkerIDs []string `json:"workerIds"`
}

// PayWorkers pays the selected workers, or every Active worker when none are listed.
// POST /api/v1/payroll/workers
func (h *PayrollHandler) PayWorkers(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	var req payWorkersRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	attempt, err := h.payroll.PayWorkersByID(c.Request.Context(), businessID, req.WorkerIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, attempt)
}

// PayContractor pays one contractor
// POST /api/v1/payroll/contractors/:id
func (h *PayrollHandler) PayContractor(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	attempt, err := h.payroll.PayContractorByID(c.Request.Context(), businessID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, attempt)
}

// CancelPayment aborts a payment still waiting for wallet approval
// POST /api/v1/payments/:id/cancel
func (h *PayrollHandler) CancelPayment(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	paymentID := c.Param("id")
	// scope the cancel to the caller's own records
	if _, err := h.payments.Get(c.Request.Context(), businessID, paymentID); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.payroll.Cancel(paymentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"paymentId": paymentID, "message": "Cancellation requested"})
}

// GetPayment gets a payment record
// GET /api/v1/payments/:id
func (h *PayrollHandler) GetPayment(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	record, err := h.payments.Get(c.Request.Context(), businessID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// ListPayments lists payment records, newest first
// GET /api/v1/payments?page=1&limit=20
func (h *PayrollHandler) ListPayments(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	page := utils.ParsePageRequest(c.Query("page"), c.Query("limit"))
	records, meta, err := h.payments.ListByBusiness(c.Request.Context(), businessID, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items": records,
		"meta":  meta,
	})
}

// ListStalePayments lists records stuck in Pending
// GET /api/v1/payments/stale?olderThan=1h
func (h *PayrollHandler) ListStalePayments(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	var olderThan time.Duration
	if raw := c.Query("olderThan"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			response.Error(c, domainerrors.BadRequest("olderThan must be a positive duration like 30m"))
			return
		}
		olderThan = d
	}

	records, err := h.payments.ListStalePending(c.Request.Context(), businessID, olderThan)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": records})
}
