package users

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/middleware"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/response"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/utils"
)

// UpdateProfileRequest is the body for PUT /usuarios/yo. Absent fields are
// left unchanged; explicit nulls clear the field (nombre cannot be cleared).
type UpdateProfileRequest struct {
	Nombre          utils.Optional[string] `json:"nombre"`
	Sexo            utils.Optional[string] `json:"sexo"`
	FechaNacimiento utils.Optional[string] `json:"fecha_nacimiento"` // YYYY-MM-DD
	Biografia       utils.Optional[string] `json:"biografia"`
	Intereses       utils.Optional[string] `json:"intereses"`
	Foto            utils.Optional[string] `json:"foto"`
	Telefono        utils.Optional[string] `json:"telefono"`
	Ubicacion       utils.Optional[string] `json:"ubicacion"`
}

// Handler handles user profile HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a users handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// Me handles GET /usuarios/yo.
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.SessionUserID(c)
	u, err := h.repo.GetPublicByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "user not found")
			return
		}
		h.logger.Error("get user", zap.Error(err), zap.Int64("user_id", userID))
		response.Internal(c, "failed to load profile")
		return
	}
	response.OK(c, u)
}

// UpdateMe handles PUT /usuarios/yo with partial update semantics.
func (h *Handler) UpdateMe(c *gin.Context) {
	userID := middleware.SessionUserID(c)
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}
	if req.Nombre.Set && !req.Nombre.Valid {
		response.BadRequest(c, "nombre cannot be null")
		return
	}

	update := ProfileUpdate{
		Nombre:    req.Nombre,
		Sexo:      req.Sexo,
		Biografia: req.Biografia,
		Intereses: req.Intereses,
		Foto:      req.Foto,
		Telefono:  req.Telefono,
		Ubicacion: req.Ubicacion,
	}
	if req.FechaNacimiento.Set {
		update.FechaNacimiento.Set = true
		if req.FechaNacimiento.Valid {
			t, err := time.Parse("2006-01-02", req.FechaNacimiento.Value)
			if err != nil {
				response.BadRequest(c, "invalid fecha_nacimiento", "expected YYYY-MM-DD")
				return
			}
			update.FechaNacimiento.Valid = true
			update.FechaNacimiento.Value = t
		}
	}

	u, err := h.repo.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "user not found")
			return
		}
		h.logger.Error("update profile", zap.Error(err), zap.Int64("user_id", userID))
		response.Internal(c, "failed to update profile")
		return
	}
	response.OK(c, u)
}

// List handles GET /admin/usuarios (admin only).
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list users", zap.Error(err))
		response.Internal(c, "failed to list users")
		return
	}
	response.OK(c, list)
}
