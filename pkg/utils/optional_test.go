package utils

import (
	"encoding/json"
	"testing"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	type doc struct {
		Descripcion Optional[string] `json:"descripcion"`
		SitioWeb    Optional[string] `json:"sitio_web"`
	}

	var absent doc
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.Descripcion.Set || absent.SitioWeb.Set {
		t.Error("absent fields reported as set")
	}

	var nulled doc
	if err := json.Unmarshal([]byte(`{"descripcion":null,"sitio_web":null}`), &nulled); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !nulled.Descripcion.Set || !nulled.SitioWeb.Set {
		t.Error("explicit nulls reported as absent")
	}
	if nulled.Descripcion.Valid || nulled.SitioWeb.Valid {
		t.Error("explicit nulls reported as carrying a value")
	}
	if nulled.Descripcion.Ptr() != nil {
		t.Error("Ptr() of explicit null is not nil")
	}

	var valued doc
	if err := json.Unmarshal([]byte(`{"descripcion":"una feria"}`), &valued); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !valued.Descripcion.Set || !valued.Descripcion.Valid {
		t.Error("value field not reported as set and valid")
	}
	if p := valued.Descripcion.Ptr(); p == nil || *p != "una feria" {
		t.Errorf("Ptr() = %v", p)
	}
	if valued.SitioWeb.Set {
		t.Error("untouched field reported as set")
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var o Optional[int]
	if err := json.Unmarshal([]byte(`"abc"`), &o); err == nil {
		t.Error("string decoded into Optional[int]")
	}
}
