package roles

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/MoisesFigueroaV/panorama-sub000/pkg/response"
)

// RoleRequest is the body for POST and PUT /roles-usuario.
type RoleRequest struct {
	Nombre string `json:"nombre" binding:"required"`
}

// Handler handles role HTTP endpoints (admin only).
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a roles handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid role id")
		return 0, false
	}
	return id, true
}

// List handles GET /roles-usuario.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list roles", zap.Error(err))
		response.Internal(c, "failed to list roles")
		return
	}
	response.OK(c, list)
}

// Get handles GET /roles-usuario/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	role, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "role not found")
			return
		}
		h.logger.Error("get role", zap.Error(err))
		response.Internal(c, "failed to load role")
		return
	}
	response.OK(c, role)
}

// Create handles POST /roles-usuario.
func (h *Handler) Create(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}
	role, err := h.repo.Create(c.Request.Context(), req.Nombre)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			response.Conflict(c, "role name already exists")
			return
		}
		h.logger.Error("create role", zap.Error(err))
		response.Internal(c, "failed to create role")
		return
	}
	response.Created(c, role)
}

// Update handles PUT /roles-usuario/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}
	role, err := h.repo.Update(c.Request.Context(), id, req.Nombre)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			response.Conflict(c, "role name already exists")
			return
		}
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "role not found")
			return
		}
		h.logger.Error("update role", zap.Error(err))
		response.Internal(c, "failed to update role")
		return
	}
	response.OK(c, role)
}

// Delete handles DELETE /roles-usuario/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("delete role", zap.Error(err))
		response.Internal(c, "failed to delete role")
		return
	}
	if deleted == 0 {
		response.NotFound(c, "role not found")
		return
	}
	response.NoContent(c)
}
