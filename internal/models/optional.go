package models

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes an absent JSON field from an explicit null.
// Present is false when the field was not sent; Value is nil for null.
type Optional[T any] struct {
	Present bool
	Value   *T
}

// Some returns a present Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: &v}
}

// Null returns a present Optional that clears the field
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// Ptr returns a copy of the held value, or nil
func (o Optional[T]) Ptr() *T {
	if o.Value == nil {
		return nil
	}
	v := *o.Value
	return &v
}

// IsZero lets encoding/json omit absent fields tagged omitzero
func (o Optional[T]) IsZero() bool {
	return !o.Present
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
