package users

import (
	"encoding/json"
	"testing"
)

func TestProfileUpdateSetClauses(t *testing.T) {
	var req UpdateProfileRequest
	body := `{"biografia":"hola","sitio":"ignored","sexo":null}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	p := ProfileUpdate{
		Nombre:    req.Nombre,
		Sexo:      req.Sexo,
		Biografia: req.Biografia,
		Intereses: req.Intereses,
		Foto:      req.Foto,
		Telefono:  req.Telefono,
		Ubicacion: req.Ubicacion,
	}
	sets, args := p.setClauses()
	if len(sets) != 2 || len(args) != 2 {
		t.Fatalf("sets = %v, args = %v; want 2 clauses", sets, args)
	}
	if sets[0] != "sexo = $1" || sets[1] != "biografia = $2" {
		t.Errorf("sets = %v", sets)
	}
	// explicit null must reach the database as NULL, not keep the old value
	if ptr, ok := args[0].(*string); !ok || ptr != nil {
		t.Errorf("sexo arg = %#v, want nil *string", args[0])
	}
	if ptr, ok := args[1].(*string); !ok || ptr == nil || *ptr != "hola" {
		t.Errorf("biografia arg = %#v", args[1])
	}
}

func TestProfileUpdateAbsentFieldsProduceNoClauses(t *testing.T) {
	var p ProfileUpdate
	sets, args := p.setClauses()
	if len(sets) != 0 || len(args) != 0 {
		t.Errorf("empty update produced clauses: %v", sets)
	}
}
