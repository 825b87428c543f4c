package organizers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/middleware"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/response"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/storage"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/utils"
)

// Store is the persistence surface the handler needs. *Repository implements it.
type Store interface {
	Create(ctx context.Context, org *models.Organizer) error
	GetByID(ctx context.Context, id int64) (*models.Organizer, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Organizer, error)
	List(ctx context.Context) ([]*models.Organizer, error)
	UpdateProfile(ctx context.Context, id int64, p ProfileUpdate) error
	SetDocument(ctx context.Context, id int64, key string) error
	SetAccreditation(ctx context.Context, organizerID int64, stateID int, adminID int64, notas *string) error
	History(ctx context.Context, organizerID int64) ([]models.AccreditationRecord, error)
}

// CreateRequest is the body for POST /organizadores.
type CreateRequest struct {
	NombreOrganizacion string  `json:"nombre_organizacion" binding:"required"`
	Descripcion        *string `json:"descripcion"`
	Ubicacion          *string `json:"ubicacion"`
	AnioFundacion      *int    `json:"anio_fundacion"`
	SitioWeb           *string `json:"sitio_web"`
	RedesSociales      *string `json:"redes_sociales"`
	Imagen             *string `json:"imagen"`
}

// UpdateRequest is the body for PUT /organizadores/:id. Absent fields are left
// unchanged; explicit nulls clear the field (nombre_organizacion cannot be cleared).
type UpdateRequest struct {
	NombreOrganizacion utils.Optional[string] `json:"nombre_organizacion"`
	Descripcion        utils.Optional[string] `json:"descripcion"`
	Ubicacion          utils.Optional[string] `json:"ubicacion"`
	AnioFundacion      utils.Optional[int]    `json:"anio_fundacion"`
	SitioWeb           utils.Optional[string] `json:"sitio_web"`
	RedesSociales      utils.Optional[string] `json:"redes_sociales"`
	Imagen             utils.Optional[string] `json:"imagen"`
}

// AccreditationRequest is the body for PATCH /admin/organizadores/:id/acreditacion.
type AccreditationRequest struct {
	EstadoID int     `json:"id_estado" binding:"required"`
	Notas    *string `json:"notas"`
}

// Handler handles organizer HTTP endpoints.
type Handler struct {
	repo   Store
	s3     *storage.S3
	logger *zap.Logger
}

// NewHandler creates an organizers handler. s3 may be nil when object storage
// is not configured; document endpoints then return 503-like errors.
func NewHandler(repo Store, s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, s3: s3, logger: logger}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid organizer id")
		return 0, false
	}
	return id, true
}

// Create handles POST /organizadores. One profile per user.
func (h *Handler) Create(c *gin.Context) {
	userID := middleware.SessionUserID(c)
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}

	org := &models.Organizer{
		UserID:             userID,
		NombreOrganizacion: req.NombreOrganizacion,
		Descripcion:        req.Descripcion,
		Ubicacion:          req.Ubicacion,
		AnioFundacion:      req.AnioFundacion,
		SitioWeb:           req.SitioWeb,
		RedesSociales:      req.RedesSociales,
		Imagen:             req.Imagen,
	}
	if err := h.repo.Create(c.Request.Context(), org); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyOrganizer):
			response.Conflict(c, "user already has an organizer profile")
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			h.logger.Error("create organizer", zap.Error(err), zap.Int64("user_id", userID))
			response.Internal(c, "failed to create organizer")
		}
		return
	}

	created, err := h.repo.GetByID(c.Request.Context(), org.ID)
	if err != nil {
		h.logger.Error("load created organizer", zap.Error(err), zap.Int64("organizer_id", org.ID))
		response.Created(c, org)
		return
	}
	response.Created(c, created)
}

// Me handles GET /organizadores/yo.
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.SessionUserID(c)
	org, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "organizer profile not found")
			return
		}
		h.logger.Error("get organizer by user", zap.Error(err), zap.Int64("user_id", userID))
		response.Internal(c, "failed to load organizer")
		return
	}
	response.OK(c, org)
}

// GetByID handles GET /organizadores/:id (public).
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	org, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "organizer not found")
			return
		}
		h.logger.Error("get organizer", zap.Error(err), zap.Int64("organizer_id", id))
		response.Internal(c, "failed to load organizer")
		return
	}
	response.OK(c, org)
}

// List handles GET /organizadores (public).
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list organizers", zap.Error(err))
		response.Internal(c, "failed to list organizers")
		return
	}
	response.OK(c, list)
}

// Update handles PUT /organizadores/:id. Only the owning user may update.
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	org, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "organizer not found")
			return
		}
		h.logger.Error("get organizer", zap.Error(err), zap.Int64("organizer_id", id))
		response.Internal(c, "failed to load organizer")
		return
	}
	if org.UserID != middleware.SessionUserID(c) {
		response.Forbidden(c, "not the owner of this organizer profile")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}
	if req.NombreOrganizacion.Set && !req.NombreOrganizacion.Valid {
		response.BadRequest(c, "nombre_organizacion cannot be null")
		return
	}
	update := ProfileUpdate{
		NombreOrganizacion: req.NombreOrganizacion,
		Descripcion:        req.Descripcion,
		Ubicacion:          req.Ubicacion,
		AnioFundacion:      req.AnioFundacion,
		SitioWeb:           req.SitioWeb,
		RedesSociales:      req.RedesSociales,
		Imagen:             req.Imagen,
	}
	if err := h.repo.UpdateProfile(c.Request.Context(), id, update); err != nil {
		h.logger.Error("update organizer", zap.Error(err), zap.Int64("organizer_id", id))
		response.Internal(c, "failed to update organizer")
		return
	}
	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("load updated organizer", zap.Error(err), zap.Int64("organizer_id", id))
		response.Internal(c, "failed to load organizer")
		return
	}
	response.OK(c, updated)
}

// UploadDocument handles POST /organizadores/yo/documento. Accepts a multipart
// file field "documento"; replacing an existing document deletes the old S3
// object after the new one is stored.
func (h *Handler) UploadDocument(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "object storage not configured")
		return
	}
	userID := middleware.SessionUserID(c)
	org, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "organizer profile not found")
			return
		}
		h.logger.Error("get organizer by user", zap.Error(err), zap.Int64("user_id", userID))
		response.Internal(c, "failed to load organizer")
		return
	}

	fileHeader, err := c.FormFile("documento")
	if err != nil {
		response.BadRequest(c, "documento file required")
		return
	}
	if fileHeader.Size > storage.MaxDocumentSize {
		response.BadRequest(c, "document too large")
		return
	}
	if !storage.ValidateDocumentType(fileHeader.Filename) {
		response.BadRequest(c, "unsupported document type", "allowed: pdf, png, jpg")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer file.Close()

	key := storage.DocumentKey(org.ID, fileHeader.Filename)
	contentType := storage.ContentTypeForFilename(fileHeader.Filename)
	if err := h.s3.UploadDocument(c.Request.Context(), key, contentType, file, fileHeader.Size); err != nil {
		h.logger.Error("upload document", zap.Error(err), zap.Int64("organizer_id", org.ID))
		response.Internal(c, "failed to upload document")
		return
	}
	if err := h.repo.SetDocument(c.Request.Context(), org.ID, key); err != nil {
		// compensate: the row was not updated, drop the new object
		_ = h.s3.DeleteDocument(c.Request.Context(), key)
		h.logger.Error("set document", zap.Error(err), zap.Int64("organizer_id", org.ID))
		response.Internal(c, "failed to save document")
		return
	}
	if org.Documento != nil && *org.Documento != key {
		if err := h.s3.DeleteDocument(c.Request.Context(), *org.Documento); err != nil {
			h.logger.Warn("delete old document", zap.Error(err), zap.String("key", *org.Documento))
		}
	}
	response.OK(c, gin.H{"documento_acreditacion": key})
}

// DocumentURL handles GET /admin/organizadores/:id/documento. Returns a
// presigned download URL for the accreditation document.
func (h *Handler) DocumentURL(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "object storage not configured")
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	org, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "organizer not found")
			return
		}
		h.logger.Error("get organizer", zap.Error(err), zap.Int64("organizer_id", id))
		response.Internal(c, "failed to load organizer")
		return
	}
	if org.Documento == nil {
		response.NotFound(c, "organizer has no accreditation document")
		return
	}
	url, err := h.s3.GenerateDocumentDownloadURL(c.Request.Context(), *org.Documento)
	if err != nil {
		h.logger.Error("presign document", zap.Error(err), zap.Int64("organizer_id", id))
		response.Internal(c, "failed to generate download url")
		return
	}
	response.OK(c, gin.H{"url": url, "expires_in": h.s3.PresignExpire().String()})
}

// SetAccreditation handles PATCH /admin/organizadores/:id/acreditacion (admin only).
func (h *Handler) SetAccreditation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AccreditationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err.Error())
		return
	}
	adminID := middleware.SessionUserID(c)
	if err := h.repo.SetAccreditation(c.Request.Context(), id, req.EstadoID, adminID, req.Notas); err != nil {
		switch {
		case errors.Is(err, ErrUnknownState):
			response.BadRequest(c, "unknown accreditation state")
		case errors.Is(err, pgx.ErrNoRows):
			response.NotFound(c, "organizer not found")
		default:
			h.logger.Error("set accreditation", zap.Error(err), zap.Int64("organizer_id", id))
			response.Internal(c, "failed to update accreditation")
		}
		return
	}
	org, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("load organizer after accreditation", zap.Error(err), zap.Int64("organizer_id", id))
		response.Internal(c, "failed to load organizer")
		return
	}
	response.OK(c, org)
}

// History handles GET /admin/organizadores/:id/acreditacion/historial (admin only).
func (h *Handler) History(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	records, err := h.repo.History(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("accreditation history", zap.Error(err), zap.Int64("organizer_id", id))
		response.Internal(c, "failed to load history")
		return
	}
	response.OK(c, records)
}
