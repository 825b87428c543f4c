package main

import (
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/auth"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/categories"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/events"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/notifications"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/organizers"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/roles"
	"github.com/MoisesFigueroaV/panorama-sub000/internal/users"
)

// Route registration needs no live connections, so handlers are built over
// nil pools.
func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	tokens := auth.NewTokenService("a", "r", 15, 168)
	orgRepo := organizers.NewRepository(nil)
	h := apiHandlers{
		auth:          auth.NewHandler(auth.NewRepository(nil), tokens, logger),
		users:         users.NewHandler(users.NewRepository(nil), logger),
		roles:         roles.NewHandler(roles.NewRepository(nil), logger),
		organizers:    organizers.NewHandler(orgRepo, nil, logger),
		categories:    categories.NewHandler(categories.NewRepository(nil), logger),
		events:        events.NewHandler(events.NewRepository(nil), orgRepo, nil, logger),
		notifications: notifications.NewHandler(notifications.NewRepository(nil), nil, logger),
	}
	return newRouter("*", logger, tokens, h)
}

func TestRouterRegistersAPIRoutes(t *testing.T) {
	registered := make(map[string]bool)
	for _, route := range testRouter().Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		"POST /api/v1/auth/registro",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/token/refresh",
		"GET /api/v1/categorias",
		"GET /api/v1/eventos",
		"GET /api/v1/eventos/:id",
		"GET /api/v1/eventos/mis-eventos",
		"POST /api/v1/eventos",
		"PUT /api/v1/eventos/:id",
		"DELETE /api/v1/eventos/:id",
		"POST /api/v1/eventos/:id/imagen",
		"GET /api/v1/organizadores",
		"GET /api/v1/organizadores/:id",
		"GET /api/v1/organizadores/yo",
		"POST /api/v1/organizadores",
		"PUT /api/v1/organizadores/:id",
		"POST /api/v1/organizadores/yo/documento",
		"GET /api/v1/usuarios/yo",
		"PUT /api/v1/usuarios/yo",
		"GET /api/v1/admin/usuarios",
		"GET /api/v1/roles-usuario",
		"POST /api/v1/roles-usuario",
		"PUT /api/v1/roles-usuario/:id",
		"DELETE /api/v1/roles-usuario/:id",
		"PATCH /api/v1/admin/organizadores/:id/acreditacion",
		"GET /api/v1/admin/organizadores/:id/acreditacion/historial",
		"GET /api/v1/admin/organizadores/:id/documento",
		"GET /api/v1/admin/events",
		"PATCH /api/v1/admin/events/:id/estado",
		"POST /api/v1/notificaciones",
		"GET /api/v1/notificaciones/yo",
		"DELETE /api/v1/notificaciones/:id",
		"GET /health",
	}
	for _, r := range want {
		if !registered[r] {
			t.Errorf("route %s not registered", r)
		}
	}
}
