package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sudha-chandrann/settleupbackend/internal/domain"
	"github.com/sudha-chandrann/settleupbackend/internal/repository"
)

// ExpenseHandler holds dependencies for expense endpoints. Split type is
// recorded as-is; no share computation happens here.
type ExpenseHandler struct {
	logger   *zap.Logger
	expenses repository.ExpenseRepository
	groups   repository.GroupRepository
}

func NewExpenseHandler(logger *zap.Logger, expenses repository.ExpenseRepository, groups repository.GroupRepository) *ExpenseHandler {
	return &ExpenseHandler{
		logger:   logger,
		expenses: expenses,
		groups:   groups,
	}
}

// CreateExpense handles POST /expenses.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req struct {
		Title      string   `json:"title"`
		Amount     float64  `json:"amount"`
		SharedWith []string `json:"shared_with"`
		GroupID    *string  `json:"group_id"`
		SplitType  string   `json:"split_type"`
		Notes      string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		respondError(c, http.StatusBadRequest, "Expense title is required", nil)
		return
	}
	if req.Amount <= 0 {
		respondError(c, http.StatusBadRequest, "Amount must be greater than zero", nil)
		return
	}
	if len(req.SharedWith) == 0 {
		respondError(c, http.StatusBadRequest, "At least one participant is required", nil)
		return
	}
	splitType := req.SplitType
	if splitType == "" {
		splitType = domain.SplitEqual
	}
	if !domain.ValidSplitType(splitType) {
		respondError(c, http.StatusBadRequest, "Invalid split type", nil)
		return
	}

	if req.GroupID != nil {
		group, err := h.groups.GetByID(c.Request.Context(), *req.GroupID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				respondError(c, http.StatusNotFound, "Group not found", nil)
				return
			}
			h.logger.Error("group lookup failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal server error", nil)
			return
		}
		if !containsID(group.MemberIDs, user.ID) {
			respondError(c, http.StatusForbidden, "You are not a member of this group", nil)
			return
		}
	}

	expense := domain.Expense{
		ID:         uuid.NewString(),
		Title:      title,
		Amount:     req.Amount,
		PaidByID:   user.ID,
		SharedWith: req.SharedWith,
		GroupID:    req.GroupID,
		SplitType:  splitType,
		Notes:      strings.TrimSpace(req.Notes),
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.expenses.Create(c.Request.Context(), expense); err != nil {
		h.logger.Error("create expense failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusCreated, "Expense created successfully", gin.H{"expenseId": expense.ID})
}

// ListExpenses handles GET /expenses, returning expenses the caller paid or
// shares in.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	expenses, err := h.expenses.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list expenses failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Expenses fetched successfully", gin.H{"expenses": expenses})
}

// ListGroupExpenses handles GET /groups/:id/expenses.
func (h *ExpenseHandler) ListGroupExpenses(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	group, err := h.groups.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Group not found", nil)
			return
		}
		h.logger.Error("group lookup failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if !containsID(group.MemberIDs, user.ID) {
		respondError(c, http.StatusForbidden, "You are not a member of this group", nil)
		return
	}

	expenses, err := h.expenses.ListByGroup(c.Request.Context(), group.ID)
	if err != nil {
		h.logger.Error("list group expenses failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Expenses fetched successfully", gin.H{"expenses": expenses})
}
