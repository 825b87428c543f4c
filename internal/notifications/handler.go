package notifications

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/middleware"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/queue"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/response"
)

// CreateRequest is the body for POST /notificaciones (admin only).
type CreateRequest struct {
	UserID  int64  `json:"id_usuario" binding:"required"`
	EventID *int64 `json:"id_evento"`
	Mensaje string `json:"mensaje" binding:"required"`
}

// Handler handles notification HTTP endpoints.
type Handler struct {
	repo   *Repository
	queue  *queue.Queue
	logger *zap.Logger
}

// NewHandler creates a notifications handler. queue may be nil; notifications
// are then recorded without enqueueing a dispatch job.
func NewHandler(repo *Repository, q *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, queue: q, logger: logger}
}

// Create handles POST /notificaciones. Records the notification and enqueues
// a dispatch job for the worker.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}
	n := &models.Notification{
		UserID:  req.UserID,
		EventID: req.EventID,
		Mensaje: req.Mensaje,
	}
	if err := h.repo.Create(c.Request.Context(), n); err != nil {
		if errors.Is(err, ErrBadReference) {
			response.BadRequest(c, "unknown user or event")
			return
		}
		h.logger.Error("create notification", zap.Error(err))
		response.Internal(c, "failed to create notification")
		return
	}
	if h.queue != nil {
		payload := queue.NotificationPayload{
			NotificationID: n.ID,
			UserID:         n.UserID,
			EventID:        n.EventID,
			Mensaje:        n.Mensaje,
		}
		if err := h.queue.EnqueueNotification(c.Request.Context(), payload); err != nil {
			h.logger.Warn("enqueue notification", zap.Error(err), zap.Int64("notification_id", n.ID))
		}
	}
	response.Created(c, n)
}

// ListMine handles GET /notificaciones/yo.
func (h *Handler) ListMine(c *gin.Context) {
	userID := middleware.SessionUserID(c)
	list, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list notifications", zap.Error(err), zap.Int64("user_id", userID))
		response.Internal(c, "failed to list notifications")
		return
	}
	response.OK(c, list)
}

// Delete handles DELETE /notificaciones/:id. Only the owning user may delete.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid notification id")
		return
	}
	n, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "notification not found")
			return
		}
		h.logger.Error("get notification", zap.Error(err), zap.Int64("notification_id", id))
		response.Internal(c, "failed to load notification")
		return
	}
	if n.UserID != middleware.SessionUserID(c) {
		response.Forbidden(c, "not the owner of this notification")
		return
	}
	if _, err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete notification", zap.Error(err), zap.Int64("notification_id", id))
		response.Internal(c, "failed to delete notification")
		return
	}
	response.NoContent(c)
}
