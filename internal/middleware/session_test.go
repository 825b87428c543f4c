package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/auth"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/response"
)

func newTokenService() *auth.TokenService {
	return auth.NewTokenService("access-secret", "refresh-secret", 15, 168)
}

func sessionRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(tokens))
	r.GET("/whoami", func(c *gin.Context) {
		response.OK(c, gin.H{"user_id": SessionUserID(c)})
	})
	return r
}

func TestSessionMissingHeaderIsAnonymous(t *testing.T) {
	r := sessionRouter(newTokenService())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestSessionValidTokenSetsUserID(t *testing.T) {
	tokens := newTokenService()
	role := 3
	token, err := tokens.GenerateAccess(42, &role)
	if err != nil {
		t.Fatalf("GenerateAccess: %v", err)
	}

	r := sessionRouter(tokens)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":42}` {
		t.Errorf("body = %s", body)
	}
}

func TestSessionMalformedHeaderRejected(t *testing.T) {
	r := sessionRouter(newTokenService())
	for _, header := range []string{"Bearer", "Basic abc", "bearer x y"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestSessionInvalidTokenRejected(t *testing.T) {
	tokens := newTokenService()
	other := auth.NewTokenService("wrong-secret", "refresh-secret", 15, 168)
	token, err := other.GenerateAccess(1, nil)
	if err != nil {
		t.Fatalf("GenerateAccess: %v", err)
	}

	r := sessionRouter(tokens)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
