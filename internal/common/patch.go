package common

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Nullable is a patch value for a nullable column. Set is false when the
// field was absent; Value is nil when the field was an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Arg returns the value to bind for the column: the dereferenced value or nil.
func (n Nullable[T]) Arg() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}

// Patch is a sparse JSON object keyed by external field name.
type Patch map[string]json.RawMessage

// DecodePatch parses a partial-update body. An empty object is rejected.
func DecodePatch(data []byte) (Patch, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, NewError(CodeValidation, "request body must be a JSON object", nil)
	}
	var patch Patch
	if err := json.Unmarshal(trimmed, &patch); err != nil {
		return nil, NewError(CodeValidation, "invalid json", err)
	}
	if len(patch) == 0 {
		return nil, NewError(CodeValidation, "no data", nil)
	}
	return patch, nil
}

// Immutable fails when the patch tries to change any of the given fields.
func (p Patch) Immutable(fields ...string) error {
	bad := map[string]string{}
	for _, field := range fields {
		if _, ok := p[field]; ok {
			bad[field] = field + " cannot be changed"
		}
	}
	if len(bad) > 0 {
		return NewValidationError("identity fields cannot be updated", bad)
	}
	return nil
}

// Allow fails when the patch carries a key outside the allow-list.
func (p Patch) Allow(fields ...string) error {
	allowed := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		allowed[field] = struct{}{}
	}
	var unknown []string
	for key := range p {
		if _, ok := allowed[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	bad := make(map[string]string, len(unknown))
	for _, key := range unknown {
		bad[key] = "field is not allowed"
	}
	return NewValidationError("unknown fields: "+strings.Join(unknown, ", "), bad)
}

// Field decodes a non-nullable field. Absent fields leave dst untouched.
func Field[T any](p Patch, name string, dst **T) error {
	raw, ok := p[name]
	if !ok {
		return nil
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return NewValidationError("invalid "+name, map[string]string{name: name + " must not be null"})
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return NewValidationError("invalid "+name, map[string]string{name: name + " has the wrong type"})
	}
	*dst = &value
	return nil
}

// NullableField decodes a field that may be explicitly cleared with null.
func NullableField[T any](p Patch, name string, dst *Nullable[T]) error {
	raw, ok := p[name]
	if !ok {
		return nil
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		*dst = Null[T]()
		return nil
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return NewValidationError("invalid "+name, map[string]string{name: name + " has the wrong type"})
	}
	*dst = NullableOf(value)
	return nil
}
