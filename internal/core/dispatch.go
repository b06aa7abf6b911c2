package core

import (
	"fmt"
	"sort"

	"energyport/pkg/domain"
)

// BuildFunc builds one record into an engine object.
type BuildFunc[R domain.Record, O any] func(bc *BuildContext, rec R) (O, error)

// Dispatcher routes the records of one category to the builder registered
// for their type discriminant.
type Dispatcher[R domain.Record, O any] struct {
	category domain.EntityType
	builders map[string]BuildFunc[R, O]
}

// NewDispatcher returns an empty dispatcher for category.
func NewDispatcher[R domain.Record, O any](category domain.EntityType) *Dispatcher[R, O] {
	return &Dispatcher[R, O]{category: category, builders: make(map[string]BuildFunc[R, O])}
}

// Register binds a builder to a discriminant. Registering a discriminant
// twice panics.
func (d *Dispatcher[R, O]) Register(discriminant string, fn BuildFunc[R, O]) {
	if _, exists := d.builders[discriminant]; exists {
		panic(fmt.Sprintf("core: %s builder for %q registered twice", d.category, discriminant))
	}
	d.builders[discriminant] = fn
}

// Build dispatches rec. An unregistered discriminant is an UnknownTypeError.
func (d *Dispatcher[R, O]) Build(bc *BuildContext, rec R) (O, error) {
	fn, ok := d.builders[rec.RecordType()]
	if !ok {
		var zero O
		return zero, &domain.UnknownTypeError{Category: d.category, Name: rec.RecordName(), Type: rec.RecordType()}
	}
	return fn(bc, rec)
}

// Discriminants returns the registered discriminants in sorted order.
func (d *Dispatcher[R, O]) Discriminants() []string {
	out := make([]string, 0, len(d.builders))
	for disc := range d.builders {
		out = append(out, disc)
	}
	sort.Strings(out)
	return out
}

// Covers reports an error naming every discriminant without a builder.
func (d *Dispatcher[R, O]) Covers(discriminants []string) error {
	var missing []string
	for _, disc := range discriminants {
		if _, ok := d.builders[disc]; !ok {
			missing = append(missing, disc)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("core: no %s builder for %v", d.category, missing)
	}
	return nil
}

// handle adapts a builder of one concrete record type T producing V into a
// BuildFunc. It verifies the discriminant and the record type before the
// builder reads any property.
func handle[R domain.Record, O any, T domain.Record, V any](category domain.EntityType, discriminant string, fn func(*BuildContext, T) (V, error)) BuildFunc[R, O] {
	return func(bc *BuildContext, rec R) (O, error) {
		var zero O
		typed, ok := any(rec).(T)
		if !ok {
			return zero, &domain.TypeMismatchError{Category: category, Name: rec.RecordName(), Expected: discriminant, Actual: fmt.Sprintf("%s (%T)", rec.RecordType(), rec)}
		}
		if err := checkRecord(category, typed, discriminant); err != nil {
			return zero, err
		}
		built, err := fn(bc, typed)
		if err != nil {
			return zero, err
		}
		out, ok := any(built).(O)
		if !ok {
			return zero, fmt.Errorf("core: %s builder for %q returned %T", category, discriminant, built)
		}
		return out, nil
	}
}

// checkRecord verifies the discriminant and name of a record.
func checkRecord(category domain.EntityType, rec domain.Record, discriminant string) error {
	if rec.RecordType() != discriminant {
		return &domain.TypeMismatchError{Category: category, Name: rec.RecordName(), Expected: discriminant, Actual: rec.RecordType()}
	}
	if rec.RecordName() == "" {
		return &domain.MissingRequiredError{Type: discriminant, Property: "identifier"}
	}
	return nil
}
