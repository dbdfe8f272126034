// Package model holds the wire-level request/response record catalog and the
// single conversion layer that coerces the platform's loosely-typed JSON
// (numbers-as-strings, "0"/"1" booleans, empty-string-as-absent) into strict
// Go types. Ground truth for every coercion rule here is
// original_source/src/presentation/serialization.rs; ground truth for every
// field name is original_source/src/application/models/{account,market,order}.rs.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OptFloat represents an optional float64 that may arrive on the wire as
// JSON null, a JSON number, or a JSON string (empty string meaning absent,
// otherwise a parseable number). It always marshals back out as a bare
// number or null, never as a string, mirroring the reference serializer.
type OptFloat struct {
	Value float64
	Valid bool
}

// SomeFloat builds a present OptFloat.
func SomeFloat(v float64) OptFloat { return OptFloat{Value: v, Valid: true} }

// SomeFloatPtr builds a present OptFloat behind a pointer, for the
// struct fields that rely on a nil pointer (rather than OptFloat's own
// null-marshaling Valid flag) to let encoding/json omitempty actually
// omit the field.
func SomeFloatPtr(v float64) *OptFloat { f := SomeFloat(v); return &f }

// NoFloat is the absent OptFloat.
var NoFloat = OptFloat{}

func (f OptFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f *OptFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*f = OptFloat{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("optfloat: %w", err)
		}
		if s == "" {
			*f = OptFloat{}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("optfloat: failed to parse string %q as float: %w", s, err)
		}
		*f = OptFloat{Value: v, Valid: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("optfloat: expected null, number or string: %w", err)
	}
	*f = OptFloat{Value: v, Valid: true}
	return nil
}

// OptBool represents an optional bool that arrives on the wire as "0"/"1"
// strings (or JSON null / empty string for absent).
type OptBool struct {
	Value bool
	Valid bool
}

// SomeBool builds a present OptBool.
func SomeBool(v bool) OptBool { return OptBool{Value: v, Valid: true} }

// SomeBoolPtr builds a present OptBool behind a pointer, for the struct
// fields that rely on a nil pointer to let encoding/json omitempty
// actually omit the field.
func SomeBoolPtr(v bool) *OptBool { b := SomeBool(v); return &b }

func (b OptBool) MarshalJSON() ([]byte, error) {
	if !b.Valid {
		return []byte("null"), nil
	}
	if b.Value {
		return json.Marshal("1")
	}
	return json.Marshal("0")
}

func (b *OptBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*b = OptBool{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("optbool: expected null or string: %w", err)
	}
	switch s {
	case "":
		*b = OptBool{}
	case "0":
		*b = OptBool{Value: false, Valid: true}
	case "1":
		*b = OptBool{Value: true, Valid: true}
	default:
		return fmt.Errorf("optbool: invalid boolean value %q", s)
	}
	return nil
}

// OptString normalizes an empty-string wire value to absent. Represented as
// a plain *string: nil means absent.
type OptString = *string

// NormalizeEmptyString converts an empty-string pointer into a nil pointer,
// the "" -> None rule for optional strings. No record type in this package
// calls it from its decode path.
func NormalizeEmptyString(s *string) *string {
	if s != nil && *s == "" {
		return nil
	}
	return s
}
