package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/utils"
)

type fakeStore struct {
	byEmail map[string]*models.User
	nextID  int64
}

func (f *fakeStore) Create(_ context.Context, email, passwordHash, nombre string, roleID *int) (*models.User, error) {
	if _, exists := f.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}
	f.nextID++
	u := &models.User{ID: f.nextID, RoleID: roleID, Email: email, Nombre: nombre, Password: passwordHash}
	if f.byEmail == nil {
		f.byEmail = make(map[string]*models.User)
	}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func authRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := NewTokenService("access-secret", "refresh-secret", 15, 168)
	h := NewHandler(store, tokens, nil)
	r := gin.New()
	r.POST("/auth/registro", h.Register)
	r.POST("/auth/login", h.Login)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	r := authRouter(&fakeStore{})
	body := `{"correo":"ana@example.com","contrasena":"secreta1","nombre":"Ana"}`

	if w := postJSON(r, "/auth/registro", body); w.Code != http.StatusCreated {
		t.Fatalf("first registration: status = %d, want 201 (%s)", w.Code, w.Body.String())
	}
	if w := postJSON(r, "/auth/registro", body); w.Code != http.StatusConflict {
		t.Errorf("second registration: status = %d, want 409", w.Code)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r := authRouter(&fakeStore{})
	w := postJSON(r, "/auth/registro", `{"correo":"ana@example.com","contrasena":"abc","nombre":"Ana"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	store := &fakeStore{}
	hash, err := utils.HashPassword("secreta1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	role := models.RoleCommon
	if _, err := store.Create(context.Background(), "ana@example.com", hash, "Ana", &role); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	r := authRouter(store)
	if w := postJSON(r, "/auth/login", `{"correo":"ana@example.com","contrasena":"equivocada"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if w := postJSON(r, "/auth/login", `{"correo":"ana@example.com","contrasena":"secreta1"}`); w.Code != http.StatusOK {
		t.Errorf("correct password: status = %d, want 200", w.Code)
	}
}
