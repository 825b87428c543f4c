package auth

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/response"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/utils"
)

// Store is the user persistence surface the handler needs. *Repository
// implements it.
type Store interface {
	Create(ctx context.Context, email, passwordHash, nombre string, roleID *int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// RegisterRequest is the body for POST /auth/registro.
type RegisterRequest struct {
	Correo     string `json:"correo" binding:"required,email"`
	Contrasena string `json:"contrasena" binding:"required,min=6"`
	Nombre     string `json:"nombre" binding:"required"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Correo     string `json:"correo" binding:"required,email"`
	Contrasena string `json:"contrasena" binding:"required"`
}

// RefreshRequest is the body for POST /auth/token/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is the auth response with the token pair and public user.
type TokenResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	Usuario      models.UserPublic `json:"usuario"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo   Store
	tokens *TokenService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo Store, tokens *TokenService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, tokens: tokens, logger: logger}
}

// Register handles POST /auth/registro. New users get the common role.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Contrasena)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}

	role := models.RoleCommon
	user, err := h.repo.Create(c.Request.Context(), req.Correo, hash, req.Nombre, &role)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Conflict(c, "email already registered")
			return
		}
		h.logger.Error("create user", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}

	access, refresh, err := h.tokenPair(user)
	if err != nil {
		h.logger.Error("generate tokens", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}
	response.Created(c, TokenResponse{AccessToken: access, RefreshToken: refresh, Usuario: user.ToPublic()})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Correo)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			h.logger.Error("get user by email", zap.Error(err))
		}
		response.Unauthorized(c, "invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Contrasena, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	access, refresh, err := h.tokenPair(user)
	if err != nil {
		h.logger.Error("generate tokens", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{AccessToken: access, RefreshToken: refresh, Usuario: user.ToPublic()})
}

// Refresh handles POST /auth/token/refresh. A valid refresh token yields a
// fresh token pair; the role claim is re-read from the user row so role
// changes take effect on rotation.
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}

	claims, err := h.tokens.ValidateRefresh(req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, "invalid or expired refresh token")
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		response.Unauthorized(c, "invalid or expired refresh token")
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Unauthorized(c, "invalid or expired refresh token")
		return
	}

	access, refresh, err := h.tokenPair(user)
	if err != nil {
		h.logger.Error("generate tokens", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{AccessToken: access, RefreshToken: refresh, Usuario: user.ToPublic()})
}

func (h *Handler) tokenPair(user *models.User) (access, refresh string, err error) {
	access, err = h.tokens.GenerateAccess(user.ID, user.RoleID)
	if err != nil {
		return "", "", err
	}
	refresh, err = h.tokens.GenerateRefresh(user.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
