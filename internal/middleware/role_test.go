package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/response"
)

func guardedRouter(guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := newTokenService()
	r := gin.New()
	r.Use(Session(tokens))
	r.GET("/guarded", guard, func(c *gin.Context) {
		response.OK(c, gin.H{"ok": true})
	})
	return r
}

func doGuarded(t *testing.T, r *gin.Engine, userID int64, roleID *int) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if userID != 0 {
		token, err := newTokenService().GenerateAccess(userID, roleID)
		if err != nil {
			t.Fatalf("GenerateAccess: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	r := guardedRouter(RequireAuth())
	if w := doGuarded(t, r, 0, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", w.Code)
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	r := guardedRouter(RequireAuth())
	role := models.RoleCommon
	if w := doGuarded(t, r, 5, &role); w.Code != http.StatusOK {
		t.Errorf("authenticated: status = %d, want 200", w.Code)
	}
}

func TestRequireRoleRejectsAnonymous(t *testing.T) {
	r := guardedRouter(RequireRole(models.RoleAdmin))
	if w := doGuarded(t, r, 0, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", w.Code)
	}
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	r := guardedRouter(RequireRole(models.RoleAdmin))
	role := models.RoleCommon
	if w := doGuarded(t, r, 5, &role); w.Code != http.StatusForbidden {
		t.Errorf("wrong role: status = %d, want 403", w.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	r := guardedRouter(RequireRole(models.RoleAdmin))
	if w := doGuarded(t, r, 5, nil); w.Code != http.StatusForbidden {
		t.Errorf("no role: status = %d, want 403", w.Code)
	}
}

func TestRequireRolePassesMatchingRole(t *testing.T) {
	r := guardedRouter(RequireRole(models.RoleAdmin, models.RoleOrganizer))
	role := models.RoleOrganizer
	if w := doGuarded(t, r, 5, &role); w.Code != http.StatusOK {
		t.Errorf("matching role: status = %d, want 200", w.Code)
	}
}
