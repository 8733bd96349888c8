package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sudha-chandrann/settleupbackend/internal/domain"
	"github.com/sudha-chandrann/settleupbackend/internal/repository"
)

// TransactionHandler holds dependencies for settlement endpoints.
type TransactionHandler struct {
	logger       *zap.Logger
	transactions repository.TransactionRepository
}

func NewTransactionHandler(logger *zap.Logger, transactions repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{
		logger:       logger,
		transactions: transactions,
	}
}

// CreateTransaction handles POST /transactions. New transactions start
// pending.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req struct {
		ToID    string  `json:"to_id"`
		Amount  float64 `json:"amount"`
		GroupID *string `json:"group_id"`
		Method  string  `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	if req.ToID == "" {
		respondError(c, http.StatusBadRequest, "Recipient is required", nil)
		return
	}
	if req.ToID == user.ID {
		respondError(c, http.StatusBadRequest, "Cannot record a payment to yourself", nil)
		return
	}
	if req.Amount <= 0 {
		respondError(c, http.StatusBadRequest, "Amount must be greater than zero", nil)
		return
	}
	method := req.Method
	if method == "" {
		method = domain.MethodCash
	}
	if !domain.ValidPaymentMethod(method) {
		respondError(c, http.StatusBadRequest, "Invalid payment method", nil)
		return
	}

	tx := domain.Transaction{
		ID:        uuid.NewString(),
		FromID:    user.ID,
		ToID:      req.ToID,
		Amount:    req.Amount,
		GroupID:   req.GroupID,
		Status:    domain.TransactionPending,
		Method:    method,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.transactions.Create(c.Request.Context(), tx); err != nil {
		h.logger.Error("create transaction failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusCreated, "Transaction created successfully", gin.H{"transactionId": tx.ID})
}

// ListTransactions handles GET /transactions, returning settlements the
// caller is party to.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	txs, err := h.transactions.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list transactions failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Transactions fetched successfully", gin.H{"transactions": txs})
}

// SettleTransaction handles PATCH /transactions/:id/settle. Only a party to
// the transaction may settle it; settled is terminal.
func (h *TransactionHandler) SettleTransaction(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	tx, err := h.transactions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Transaction not found", nil)
			return
		}
		h.logger.Error("get transaction failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	if tx.FromID != user.ID && tx.ToID != user.ID {
		respondError(c, http.StatusForbidden, "You are not part of this transaction", nil)
		return
	}
	if tx.Status == domain.TransactionSettled {
		respondError(c, http.StatusBadRequest, "Transaction is already settled", nil)
		return
	}

	if err := h.transactions.MarkSettled(c.Request.Context(), tx.ID); err != nil {
		h.logger.Error("settle transaction failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Transaction settled successfully", nil)
}
