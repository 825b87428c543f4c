package organizers

import (
	"encoding/json"
	"testing"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
)

func TestPromotableRole(t *testing.T) {
	admin := models.RoleAdmin
	organizer := models.RoleOrganizer
	common := models.RoleCommon

	cases := []struct {
		name   string
		roleID *int
		want   bool
	}{
		{"no role", nil, true},
		{"common user", &common, true},
		{"already organizer", &organizer, false},
		{"admin keeps role", &admin, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := promotableRole(tc.roleID); got != tc.want {
				t.Errorf("promotableRole(%v) = %v, want %v", tc.roleID, got, tc.want)
			}
		})
	}
}

func TestProfileUpdateSetClauses(t *testing.T) {
	var req UpdateRequest
	body := `{"descripcion":null,"sitio_web":null,"redes_sociales":"@panorama"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	p := ProfileUpdate{
		NombreOrganizacion: req.NombreOrganizacion,
		Descripcion:        req.Descripcion,
		Ubicacion:          req.Ubicacion,
		AnioFundacion:      req.AnioFundacion,
		SitioWeb:           req.SitioWeb,
		RedesSociales:      req.RedesSociales,
		Imagen:             req.Imagen,
	}
	sets, args := p.setClauses()
	if len(sets) != 3 {
		t.Fatalf("sets = %v, want 3 clauses", sets)
	}
	if sets[0] != "descripcion = $1" || sets[1] != "sitio_web = $2" || sets[2] != "redes_sociales = $3" {
		t.Errorf("sets = %v", sets)
	}
	// explicit nulls must clear, not keep the old value
	if ptr, ok := args[0].(*string); !ok || ptr != nil {
		t.Errorf("descripcion arg = %#v, want nil *string", args[0])
	}
	if ptr, ok := args[1].(*string); !ok || ptr != nil {
		t.Errorf("sitio_web arg = %#v, want nil *string", args[1])
	}
	if ptr, ok := args[2].(*string); !ok || ptr == nil || *ptr != "@panorama" {
		t.Errorf("redes_sociales arg = %#v", args[2])
	}
}
