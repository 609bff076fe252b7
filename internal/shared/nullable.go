package shared

import "encoding/json"

// Nullable is a partial-update field that tells an absent key apart from an
// explicit null. Set is true when the key was present; Value is nil when it
// was null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Present wraps v as a field that was sent with a value.
func Present[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null is a field that was sent as null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler. encoding/json only calls it
// when the key is present, null included.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}
