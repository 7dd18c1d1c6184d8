package models

import "encoding/json"

// Opt is a tri-state request field: absent from the payload, explicitly
// null, or carrying a value. Partial updates need the distinction because
// "not sent" leaves a column untouched while "null" clears it.
type Opt[T any] struct {
	Set   bool // key was present in the payload
	Valid bool // value is non-null
	Value T
}

// OptValue returns an Opt holding v.
func OptValue[T any](v T) Opt[T] {
	return Opt[T]{Set: true, Valid: true, Value: v}
}

// OptNull returns an Opt representing an explicit null.
func OptNull[T any]() Opt[T] {
	return Opt[T]{Set: true}
}

// Ptr returns the value as a pointer, nil when the field is null or absent.
func (o Opt[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// IsZero reports whether the field was absent, letting encoding/json's
// omitzero drop it from outgoing payloads.
func (o Opt[T]) IsZero() bool {
	return !o.Set
}

// UnmarshalJSON is only invoked for keys present in the payload, so Set is
// always true here; absent fields keep the zero Opt.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON renders null for absent or null fields.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
