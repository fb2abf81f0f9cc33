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
	"trivix-payroll.backend/pkg/utils"
)

type HistoryService interface {
	List(ctx context.Context, businessID string, page utils.PageRequest) ([]*entities.PaymentHistoryEntry, utils.PaginationMeta, error)
	RecordPoolTransfer(ctx context.Context, businessID string, input usecases.PoolTransferInput) (*entities.PaymentHistoryEntry, error)
}

// HistoryHandler exposes the payment history ledger
type HistoryHandler struct {
	history HistoryService
}

func NewHistoryHandler(history HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// ListHistory
// GET /api/v1/history?page=1&limit=20
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	page := utils.ParsePageRequest(c.Query("page"), c.Query("limit"))
	entries, meta, err := h.history.List(c.Request.Context(), businessID, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items": entries,
		"meta":  meta,
	})
}

type poolTransferRequest struct {
	Category        string          `json:"category" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionHash string          `json:"transactionHash" binding:"required"`
	WalletAddress   string          `json:"walletAddress" binding:"required"`
}

// RecordPoolTransfer logs a confirmed pool deposit or withdrawal
// POST /api/v1/history/pool-transfers
func (h *HistoryHandler) RecordPoolTransfer(c *gin.Context) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Business not authenticated"))
		return
	}

	var req poolTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	entry, err := h.history.RecordPoolTransfer(c.Request.Context(), businessID, usecases.PoolTransferInput{
		Category:        entities.PaymentCategory(req.Category),
		Amount:          req.Amount,
		TransactionHash: req.TransactionHash,
		WalletAddress:   req.WalletAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entry)
}
