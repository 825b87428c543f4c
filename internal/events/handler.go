package events

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/middleware"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/organizers"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/response"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/storage"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/utils"
)

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// CreateRequest is the body for POST /eventos.
type CreateRequest struct {
	CategoryID  int      `json:"id_categoria" binding:"required"`
	Titulo      string   `json:"titulo" binding:"required"`
	Descripcion *string  `json:"descripcion"`
	FechaInicio string   `json:"fecha_inicio" binding:"required"`
	FechaFin    string   `json:"fecha_fin" binding:"required"`
	Ubicacion   *string  `json:"ubicacion"`
	Latitud     *float64 `json:"latitud"`
	Longitud    *float64 `json:"longitud"`
	Capacidad   int      `json:"capacidad" binding:"required"`
	Imagen      *string  `json:"imagen"`
}

// UpdateRequest is the body for PUT /eventos/:id. Absent fields are left
// unchanged; explicit nulls clear the nullable fields, required fields
// (category, title, dates, capacity) cannot be null.
type UpdateRequest struct {
	CategoryID  utils.Optional[int]     `json:"id_categoria"`
	Titulo      utils.Optional[string]  `json:"titulo"`
	Descripcion utils.Optional[string]  `json:"descripcion"`
	FechaInicio utils.Optional[string]  `json:"fecha_inicio"`
	FechaFin    utils.Optional[string]  `json:"fecha_fin"`
	Ubicacion   utils.Optional[string]  `json:"ubicacion"`
	Latitud     utils.Optional[float64] `json:"latitud"`
	Longitud    utils.Optional[float64] `json:"longitud"`
	Capacidad   utils.Optional[int]     `json:"capacidad"`
	Imagen      utils.Optional[string]  `json:"imagen"`
}

// StatusRequest is the body for PATCH /admin/events/:id/estado.
type StatusRequest struct {
	EstadoID int `json:"id_estado" binding:"required"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	repo    *Repository
	orgRepo *organizers.Repository
	s3      *storage.S3
	logger  *zap.Logger
}

// NewHandler creates an events handler. s3 may be nil when object storage is
// not configured.
func NewHandler(repo *Repository, orgRepo *organizers.Repository, s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, orgRepo: orgRepo, s3: s3, logger: logger}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid event id")
		return 0, false
	}
	return id, true
}

// sessionOrganizer resolves the acting user's organizer profile, or writes a
// 403 and returns nil when the user has none.
func (h *Handler) sessionOrganizer(c *gin.Context) *models.Organizer {
	userID := middleware.SessionUserID(c)
	org, err := h.orgRepo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Forbidden(c, "organizer profile required")
			return nil
		}
		h.logger.Error("get organizer by user", zap.Error(err), zap.Int64("user_id", userID))
		response.Internal(c, "failed to resolve organizer")
		return nil
	}
	return org
}

// Create handles POST /eventos. The caller must own an organizer profile.
func (h *Handler) Create(c *gin.Context) {
	org := h.sessionOrganizer(c)
	if org == nil {
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}
	inicio, err := parseTime(req.FechaInicio)
	if err != nil {
		response.BadRequest(c, "invalid fecha_inicio", "expected RFC 3339 timestamp")
		return
	}
	fin, err := parseTime(req.FechaFin)
	if err != nil {
		response.BadRequest(c, "invalid fecha_fin", "expected RFC 3339 timestamp")
		return
	}
	if err := ValidateSchedule(inicio, fin, req.Capacidad); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	e := &models.Event{
		OrganizerID: org.ID,
		CategoryID:  req.CategoryID,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		FechaInicio: inicio,
		FechaFin:    fin,
		Ubicacion:   req.Ubicacion,
		Latitud:     req.Latitud,
		Longitud:    req.Longitud,
		Capacidad:   req.Capacidad,
		Imagen:      req.Imagen,
	}
	if err := h.repo.Create(c.Request.Context(), e); err != nil {
		if errors.Is(err, ErrBadReference) {
			response.BadRequest(c, "unknown category")
			return
		}
		h.logger.Error("create event", zap.Error(err), zap.Int64("organizer_id", org.ID))
		response.Internal(c, "failed to create event")
		return
	}
	response.Created(c, e)
}

// List handles GET /eventos (public). Query ?categoria= filters by category id.
func (h *Handler) List(c *gin.Context) {
	var categoryID *int
	if v := c.Query("categoria"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			response.BadRequest(c, "invalid categoria filter")
			return
		}
		categoryID = &id
	}
	list, err := h.repo.List(c.Request.Context(), categoryID, nil)
	if err != nil {
		h.logger.Error("list events", zap.Error(err))
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /eventos/:id (public).
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	e, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "event not found")
			return
		}
		h.logger.Error("get event", zap.Error(err), zap.Int64("event_id", id))
		response.Internal(c, "failed to load event")
		return
	}
	response.OK(c, e)
}

// MyEvents handles GET /eventos/mis-eventos.
func (h *Handler) MyEvents(c *gin.Context) {
	org := h.sessionOrganizer(c)
	if org == nil {
		return
	}
	list, err := h.repo.List(c.Request.Context(), nil, &org.ID)
	if err != nil {
		h.logger.Error("list my events", zap.Error(err), zap.Int64("organizer_id", org.ID))
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// loadOwned fetches the event and asserts the session's organizer owns it.
func (h *Handler) loadOwned(c *gin.Context) *models.Event {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	e, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "event not found")
			return nil
		}
		h.logger.Error("get event", zap.Error(err), zap.Int64("event_id", id))
		response.Internal(c, "failed to load event")
		return nil
	}
	org := h.sessionOrganizer(c)
	if org == nil {
		return nil
	}
	if e.OrganizerID != org.ID {
		response.Forbidden(c, "not the owner of this event")
		return nil
	}
	return e
}

// Update handles PUT /eventos/:id. Only the owning organizer may update; the
// date invariant is re-checked against the merged record.
func (h *Handler) Update(c *gin.Context) {
	e := h.loadOwned(c)
	if e == nil {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}

	required := []struct {
		name string
		null bool
	}{
		{"id_categoria", req.CategoryID.Set && !req.CategoryID.Valid},
		{"titulo", req.Titulo.Set && !req.Titulo.Valid},
		{"fecha_inicio", req.FechaInicio.Set && !req.FechaInicio.Valid},
		{"fecha_fin", req.FechaFin.Set && !req.FechaFin.Valid},
		{"capacidad", req.Capacidad.Set && !req.Capacidad.Valid},
	}
	for _, f := range required {
		if f.null {
			response.BadRequest(c, f.name+" cannot be null")
			return
		}
	}

	if req.CategoryID.Set {
		e.CategoryID = req.CategoryID.Value
	}
	if req.Titulo.Set {
		e.Titulo = req.Titulo.Value
	}
	if req.Descripcion.Set {
		e.Descripcion = req.Descripcion.Ptr()
	}
	if req.FechaInicio.Set {
		t, err := parseTime(req.FechaInicio.Value)
		if err != nil {
			response.BadRequest(c, "invalid fecha_inicio", "expected RFC 3339 timestamp")
			return
		}
		e.FechaInicio = t
	}
	if req.FechaFin.Set {
		t, err := parseTime(req.FechaFin.Value)
		if err != nil {
			response.BadRequest(c, "invalid fecha_fin", "expected RFC 3339 timestamp")
			return
		}
		e.FechaFin = t
	}
	if req.Ubicacion.Set {
		e.Ubicacion = req.Ubicacion.Ptr()
	}
	if req.Latitud.Set {
		e.Latitud = req.Latitud.Ptr()
	}
	if req.Longitud.Set {
		e.Longitud = req.Longitud.Ptr()
	}
	if req.Capacidad.Set {
		e.Capacidad = req.Capacidad.Value
	}
	if req.Imagen.Set {
		e.Imagen = req.Imagen.Ptr()
	}
	if err := ValidateSchedule(e.FechaInicio, e.FechaFin, e.Capacidad); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.repo.ApplyUpdate(c.Request.Context(), e); err != nil {
		if errors.Is(err, ErrBadReference) {
			response.BadRequest(c, "unknown category")
			return
		}
		h.logger.Error("update event", zap.Error(err), zap.Int64("event_id", e.ID))
		response.Internal(c, "failed to update event")
		return
	}
	response.OK(c, e)
}

// Delete handles DELETE /eventos/:id. Only the owning organizer may delete.
func (h *Handler) Delete(c *gin.Context) {
	e := h.loadOwned(c)
	if e == nil {
		return
	}
	if _, err := h.repo.Delete(c.Request.Context(), e.ID); err != nil {
		h.logger.Error("delete event", zap.Error(err), zap.Int64("event_id", e.ID))
		response.Internal(c, "failed to delete event")
		return
	}
	response.NoContent(c)
}

// UploadImage handles POST /eventos/:id/imagen. Accepts a multipart file field
// "imagen" from the owning organizer.
func (h *Handler) UploadImage(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "object storage not configured")
		return
	}
	e := h.loadOwned(c)
	if e == nil {
		return
	}
	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		response.BadRequest(c, "imagen file required")
		return
	}
	if fileHeader.Size > storage.MaxImageSize {
		response.BadRequest(c, "image too large")
		return
	}
	if !storage.ValidateImageType(fileHeader.Filename) {
		response.BadRequest(c, "unsupported image type", "allowed: jpg, png, webp")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer file.Close()

	key := storage.EventImageKey(e.ID, fileHeader.Filename)
	contentType := storage.ContentTypeForFilename(fileHeader.Filename)
	url, err := h.s3.UploadEventImage(c.Request.Context(), key, contentType, file, fileHeader.Size)
	if err != nil {
		h.logger.Error("upload event image", zap.Error(err), zap.Int64("event_id", e.ID))
		response.Internal(c, "failed to upload image")
		return
	}
	if err := h.repo.SetImage(c.Request.Context(), e.ID, url); err != nil {
		_ = h.s3.DeleteEventImage(c.Request.Context(), key)
		h.logger.Error("set event image", zap.Error(err), zap.Int64("event_id", e.ID))
		response.Internal(c, "failed to save image")
		return
	}
	response.OK(c, gin.H{"imagen": url})
}

// AdminList handles GET /admin/events (admin only).
func (h *Handler) AdminList(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), nil, nil)
	if err != nil {
		h.logger.Error("admin list events", zap.Error(err))
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// SetStatus handles PATCH /admin/events/:id/estado (admin only).
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}
	if err := h.repo.SetStatus(c.Request.Context(), id, req.EstadoID); err != nil {
		switch {
		case errors.Is(err, ErrBadReference):
			response.BadRequest(c, "unknown event state")
		case errors.Is(err, pgx.ErrNoRows):
			response.NotFound(c, "event not found")
		default:
			h.logger.Error("set event status", zap.Error(err), zap.Int64("event_id", id))
			response.Internal(c, "failed to update event status")
		}
		return
	}
	e, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("load event after status change", zap.Error(err), zap.Int64("event_id", id))
		response.Internal(c, "failed to load event")
		return
	}
	response.OK(c, e)
}
