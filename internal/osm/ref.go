package osm

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref is a reference from one object to another. In a snapshot it is written
// as the kind and name of its target and resolved again on import.
type Ref[T Object] struct {
	target  T
	ok      bool
	pending *refKey
}

type refKey struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
}

type resolver interface {
	resolve(m *Model) error
}

type referencer interface {
	references() []resolver
}

// RefTo returns a reference to obj.
func RefTo[T Object](obj T) Ref[T] { return Ref[T]{target: obj, ok: true} }

// Get returns the referenced object.
func (r Ref[T]) Get() (T, bool) { return r.target, r.ok }

// IsSet reports whether the reference points at an object.
func (r Ref[T]) IsSet() bool { return r.ok }

// Name returns the name of the referenced object, or "" when unset.
func (r Ref[T]) Name() string {
	if !r.ok {
		return ""
	}
	return r.target.ObjectName()
}

// Is reports whether the reference points at obj.
func (r Ref[T]) Is(obj Object) bool {
	return r.ok && Object(r.target) == obj
}

// MarshalJSON writes the kind and name of the target, or null.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return []byte("null"), nil
	}
	return json.Marshal(refKey{Kind: r.target.Kind(), Name: r.target.ObjectName()})
}

// UnmarshalJSON records the target for resolution once every object exists.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	*r = Ref[T]{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var key refKey
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	r.pending = &key
	return nil
}

func (r *Ref[T]) resolve(m *Model) error {
	if r.pending == nil {
		return nil
	}
	key := *r.pending
	obj, ok := m.Lookup(key.Kind, key.Name)
	if !ok {
		return fmt.Errorf("unresolved reference to %s %q", key.Kind, key.Name)
	}
	typed, ok := obj.(T)
	if !ok {
		return fmt.Errorf("reference to %s %q has unexpected type %T", key.Kind, key.Name, obj)
	}
	r.target, r.ok, r.pending = typed, true, nil
	return nil
}

func refList[T Object](refs []Ref[T]) []resolver {
	out := make([]resolver, 0, len(refs))
	for i := range refs {
		out = append(out, &refs[i])
	}
	return out
}
