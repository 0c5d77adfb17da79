package model

import (
	"encoding/json"
	"strconv"
)

// Record is a schema-agnostic row for any data source. Values are scalars
// (numbers, strings, booleans) or nil; nothing about the key set is assumed.
type Record map[string]interface{}

// FieldKind tells the accessors which coercion a field is expected to take.
type FieldKind string

const (
	KindAuto        FieldKind = ""
	KindNumeric     FieldKind = "numeric"
	KindCategorical FieldKind = "categorical"
	KindBoolean     FieldKind = "boolean"
)

// FieldSpec identifies a field and the coercion expected of it.
type FieldSpec struct {
	Field  string    `json:"field" yaml:"field"`
	Header string    `json:"header,omitempty" yaml:"header,omitempty"`
	Kind   FieldKind `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Label returns the header, falling back to the field name.
func (f FieldSpec) Label() string {
	if f.Header != "" {
		return f.Header
	}
	return f.Field
}

// NullFloat is a float64 that may be absent. Absence is never encoded as 0;
// it marshals to JSON null so renderers can tell "no data" from a true zero.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float wraps a present value.
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// MarshalJSON implements json.Marshaler.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}
