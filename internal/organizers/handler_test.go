package organizers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/middleware"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
)

type fakeStore struct {
	createErr  error
	byID       map[int64]*models.Organizer
	lastUpdate ProfileUpdate
}

func (f *fakeStore) Create(_ context.Context, org *models.Organizer) error {
	if f.createErr != nil {
		return f.createErr
	}
	org.ID = 1
	org.EstadoAcreditacion = models.AccreditationPending
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*models.Organizer, error) {
	if o, ok := f.byID[id]; ok {
		return o, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetByUserID(_ context.Context, userID int64) (*models.Organizer, error) {
	for _, o := range f.byID {
		if o.UserID == userID {
			return o, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) List(context.Context) ([]*models.Organizer, error) { return nil, nil }

func (f *fakeStore) UpdateProfile(_ context.Context, _ int64, p ProfileUpdate) error {
	f.lastUpdate = p
	return nil
}

func (f *fakeStore) SetDocument(context.Context, int64, string) error { return nil }

func (f *fakeStore) SetAccreditation(context.Context, int64, int, int64, *string) error { return nil }

func (f *fakeStore) History(context.Context, int64) ([]models.AccreditationRecord, error) {
	return nil, nil
}

func organizerRouter(store Store, sessionUserID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, nil, nil)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if sessionUserID != 0 {
			c.Set(middleware.ContextUserID, sessionUserID)
		}
	})
	r.POST("/organizadores", h.Create)
	r.PUT("/organizadores/:id", h.Update)
	return r
}

func TestCreateSecondProfileConflicts(t *testing.T) {
	store := &fakeStore{createErr: ErrAlreadyOrganizer}
	r := organizerRouter(store, 5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/organizadores",
		strings.NewReader(`{"nombre_organizacion":"Feria Norte"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestUpdateByNonOwnerForbidden(t *testing.T) {
	store := &fakeStore{byID: map[int64]*models.Organizer{
		3: {ID: 3, UserID: 7, NombreOrganizacion: "Feria Norte"},
	}}
	r := organizerRouter(store, 5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/organizadores/3",
		strings.NewReader(`{"descripcion":"otra"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestUpdateExplicitNullClearsField(t *testing.T) {
	store := &fakeStore{byID: map[int64]*models.Organizer{
		3: {ID: 3, UserID: 5, NombreOrganizacion: "Feria Norte"},
	}}
	r := organizerRouter(store, 5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/organizadores/3",
		strings.NewReader(`{"descripcion":null}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	if !store.lastUpdate.Descripcion.Set || store.lastUpdate.Descripcion.Valid {
		t.Errorf("descripcion update = %+v, want set and null", store.lastUpdate.Descripcion)
	}
	if store.lastUpdate.SitioWeb.Set {
		t.Error("absent sitio_web reported as set")
	}
}

func TestUpdateRejectsNullName(t *testing.T) {
	store := &fakeStore{byID: map[int64]*models.Organizer{
		3: {ID: 3, UserID: 5, NombreOrganizacion: "Feria Norte"},
	}}
	r := organizerRouter(store, 5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/organizadores/3",
		strings.NewReader(`{"nombre_organizacion":null}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
