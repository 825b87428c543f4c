package utils

import "encoding/json"

// Optional is a JSON field that records whether it appeared in the document
// and whether it carried a value. An absent field leaves both flags false,
// an explicit null sets only Set, and a value sets both. This lets partial
// updates tell "leave unchanged" apart from "clear".
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for fields
// present in the document, so Set marks presence.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr returns a pointer to the value, or nil for an explicit null.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
