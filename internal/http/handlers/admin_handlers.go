package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/middleware"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/respond"
)

// AdminHandlers exposes privileged role and account administration.
type AdminHandlers struct {
	admin    domain.AdminService
	policies domain.PolicyService
	logger   *slog.Logger
}

// NewAdminHandlers creates the admin handler set.
func NewAdminHandlers(admin domain.AdminService, policies domain.PolicyService, logger *slog.Logger) *AdminHandlers {
	return &AdminHandlers{admin: admin, policies: policies, logger: logger}
}

type createAdminRequest struct {
	Email  string `json:"email" binding:"required"`
	Phone  string `json:"phone"`
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role" binding:"required"`
	Locale string `json:"locale"`
}

type promoteRequest struct {
	Role string `json:"role" binding:"required"`
}

func pathUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// CreateAdmin provisions an administrative account, active and verified
// immediately.
func (h *AdminHandlers) CreateAdmin(c *gin.Context) {
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, h.logger, err)
		return
	}

	user, err := h.admin.CreateAdmin(c.Request.Context(), req.Email, req.Phone, req.Name, domain.Role(req.Role), req.Locale)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	respond.Data(c, http.StatusCreated, userPayload(user))
}

// Promote raises a user to an administrative role.
func (h *AdminHandlers) Promote(c *gin.Context) {
	id, ok := pathUserID(c)
	if !ok {
		respond.Error(c, h.logger, domain.ErrUserNotFound)
		return
	}

	var req promoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, h.logger, err)
		return
	}

	if err := h.admin.Promote(c.Request.Context(), id, domain.Role(req.Role)); err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	respond.Data(c, http.StatusOK, gin.H{"message": "user promoted"})
}

// Demote strips administrative rights. SuperAdmin only; self-demotion is
// rejected by the service.
func (h *AdminHandlers) Demote(c *gin.Context) {
	id, ok := pathUserID(c)
	if !ok {
		respond.Error(c, h.logger, domain.ErrUserNotFound)
		return
	}

	sess, ok := middleware.CurrentSession(c)
	if !ok {
		respond.Error(c, h.logger, domain.ErrUnauthenticated)
		return
	}

	if err := h.admin.Demote(c.Request.Context(), id, sess.User.ID); err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	respond.Data(c, http.StatusOK, gin.H{"message": "user demoted"})
}

// Ban marks the account banned and revokes every live session.
func (h *AdminHandlers) Ban(c *gin.Context) {
	h.setStatus(c, h.admin.Ban, "user banned")
}

// Deactivate marks the account inactive and revokes every live session.
func (h *AdminHandlers) Deactivate(c *gin.Context) {
	h.setStatus(c, h.admin.Deactivate, "user deactivated")
}

// Activate restores a deactivated or banned account.
func (h *AdminHandlers) Activate(c *gin.Context) {
	h.setStatus(c, h.admin.Activate, "user activated")
}

func (h *AdminHandlers) setStatus(c *gin.Context, op func(ctx context.Context, userID uint) error, message string) {
	id, ok := pathUserID(c)
	if !ok {
		respond.Error(c, h.logger, domain.ErrUserNotFound)
		return
	}

	if err := op(c.Request.Context(), id); err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	respond.Data(c, http.StatusOK, gin.H{"message": message})
}

// Policies lists the role→permission table.
func (h *AdminHandlers) Policies(c *gin.Context) {
	rows := h.policies.Policies()
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		out = append(out, gin.H{"role": row[0], "permission": row[1]})
	}
	respond.Data(c, http.StatusOK, gin.H{"policies": out})
}
