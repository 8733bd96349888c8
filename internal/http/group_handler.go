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

// GroupHandler holds dependencies for group endpoints.
type GroupHandler struct {
	logger *zap.Logger
	groups repository.GroupRepository
}

func NewGroupHandler(logger *zap.Logger, groups repository.GroupRepository) *GroupHandler {
	return &GroupHandler{
		logger: logger,
		groups: groups,
	}
}

// CreateGroup handles POST /groups.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, http.StatusBadRequest, "Group name is required", nil)
		return
	}
	if req.Icon == "" {
		respondError(c, http.StatusBadRequest, "Group icon is required", nil)
		return
	}

	_, err := h.groups.GetByNameAndMember(c.Request.Context(), name, user.ID)
	if err == nil {
		respondError(c, http.StatusConflict, "You already have a group with this name", nil)
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		h.logger.Error("group lookup failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	group := domain.Group{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Icon:        req.Icon,
		CreatorID:   user.ID,
		MemberIDs:   []string{user.ID},
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.groups.Create(c.Request.Context(), group); err != nil {
		h.logger.Error("create group failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusCreated, "Group created successfully", gin.H{"groupId": group.ID})
}

// ListGroups handles GET /groups.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	groups, err := h.groups.ListByMember(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list groups failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Groups fetched successfully", gin.H{"groups": groups})
}

// GetGroup handles GET /groups/:id. Only members may read a group.
func (h *GroupHandler) GetGroup(c *gin.Context) {
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
		h.logger.Error("get group failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	if !containsID(group.MemberIDs, user.ID) {
		respondError(c, http.StatusForbidden, "You are not a member of this group", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Group fetched successfully", gin.H{"group": group})
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
