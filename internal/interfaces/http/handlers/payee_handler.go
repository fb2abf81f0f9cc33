package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/interfaces/http/middleware"
	"trivix-payroll.backend/internal/interfaces/http/response"
	"trivix-payroll.backend/internal/usecases"
)

type PayeeService interface {
	CreatePayee(ctx context.Context, businessID string, input usecases.CreatePayeeInput) (*entities.Payee, error)
	ListPayees(ctx context.Context, businessID string, kind entities.PayeeKind) ([]*entities.Payee, error)
	ConnectWallet(ctx context.Context, businessID, payeeID, walletAddress string) (*entities.Payee, error)
	UpdateStatus(ctx context.Context, businessID, payeeID string, status entities.PayeeStatus) error
}

// PayeeHandler handles worker and contractor endpoints
type PayeeHandler struct {
	payees PayeeService
}

func NewPayeeHandler(payees PayeeService) *PayeeHandler {
	return &PayeeHandler{payees: payees}
}

type createPayeeRequest struct {
	Kind   string          `json:"kind" binding:"required"`
	Name   string          `json:"name" binding:"required"`
	Email  string          `json:"email" binding:"required"`
	Role   string          `json:"role"`
	Salary decimal.Decimal `json:"salary"`
	Note   string          `json:"note"`
}

// CreatePayee invites a worker or contractor
// POST /api/v1/payees
func (h *PayeeHandler) CreatePayee(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	var req createPayeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payee, err := h.payees.CreatePayee(c.Request.Context(), businessID, usecases.CreatePayeeInput{
		Kind:   entities.PayeeKind(req.Kind),
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Salary: req.Salary,
		Note:   req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payee)
}

// ListPayees lists payees, optionally filtered by kind
// GET /api/v1/payees?kind=worker
func (h *PayeeHandler) ListPayees(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	kind := entities.PayeeKind(c.Query("kind"))
	if kind != "" && kind != entities.PayeeKindWorker && kind != entities.PayeeKindContractor {
		response.Error(c, domainerrors.BadRequest("kind must be worker or contractor"))
		return
	}

	payees, err := h.payees.ListPayees(c.Request.Context(), businessID, kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": payees})
}

type updatePayeeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus changes the status of a payee
// PATCH /api/v1/payees/:id/status
func (h *PayeeHandler) UpdateStatus(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	var req updatePayeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.payees.UpdateStatus(c.Request.Context(), businessID, c.Param("id"), entities.PayeeStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}

type connectWalletRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// ConnectWallet is the public landing of an invite link
// POST /api/v1/connect/:businessId/:payeeId
func (h *PayeeHandler) ConnectWallet(c *gin.Context) {
	var req connectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payee, err := h.payees.ConnectWallet(c.Request.Context(), c.Param("businessId"), c.Param("payeeId"), req.WalletAddress)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payee)
}
