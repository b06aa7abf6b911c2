package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched through errors.Is against the typed errors below.
var (
	ErrSchemaLoad          = errors.New("schema load failed")
	ErrUnknownType         = errors.New("unknown type")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrDuplicateName       = errors.New("duplicate name")
	ErrInvalidEnumValue    = errors.New("invalid enum value")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrUnsupportedEntity   = errors.New("unsupported entity")
	ErrMissingRequired     = errors.New("missing required property")
)

// SchemaLoadError reports a malformed schema or a type the schema does not declare.
type SchemaLoadError struct {
	Source string
	Type   string
	Err    error
}

func (e *SchemaLoadError) Error() string {
	var b strings.Builder
	b.WriteString("schema")
	if e.Source != "" {
		fmt.Fprintf(&b, " %s", e.Source)
	}
	if e.Type != "" {
		fmt.Fprintf(&b, ": type %q", e.Type)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *SchemaLoadError) Unwrap() error { return e.Err }

// Is matches ErrSchemaLoad.
func (e *SchemaLoadError) Is(target error) bool { return target == ErrSchemaLoad }

// UnknownTypeError reports a discriminant with no registered builder.
type UnknownTypeError struct {
	Category EntityType
	Name     string
	Type     string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q for %q", e.Category, e.Type, e.Name)
}

// Is matches ErrUnknownType.
func (e *UnknownTypeError) Is(target error) bool { return target == ErrUnknownType }

// TypeMismatchError reports a record routed to a builder expecting another discriminant.
type TypeMismatchError struct {
	Category EntityType
	Name     string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s %q: expected type %q, got %q", e.Category, e.Name, e.Expected, e.Actual)
}

// Is matches ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// DuplicateNameError reports a different object registered under an occupied name.
type DuplicateNameError struct {
	Category EntityType
	Name     string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q already registered to a different object", e.Category, e.Name)
}

// Is matches ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// InvalidEnumValueError reports a value outside the enumerated choices of a field.
type InvalidEnumValueError struct {
	Type    string
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumValueError) Error() string {
	msg := fmt.Sprintf("%s.%s: invalid value %q", e.Type, e.Field, e.Value)
	if len(e.Allowed) > 0 {
		msg += fmt.Sprintf(" (allowed: %s)", strings.Join(e.Allowed, ", "))
	}
	return msg
}

// Is matches ErrInvalidEnumValue.
func (e *InvalidEnumValueError) Is(target error) bool { return target == ErrInvalidEnumValue }

// UnresolvedReferenceError reports a by-name reference with no target. It is
// recorded as a warning; the referencing entity is still built.
type UnresolvedReferenceError struct {
	Category  EntityType
	Name      string
	Field     string
	Target    EntityType
	Reference string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s %q: %s references unknown %s %q", e.Category, e.Name, e.Field, e.Target, e.Reference)
}

// Is matches ErrUnresolvedReference.
func (e *UnresolvedReferenceError) Is(target error) bool { return target == ErrUnresolvedReference }

// UnsupportedEntityError reports a document category with no target representation.
type UnsupportedEntityError struct {
	Category string
	Count    int
}

func (e *UnsupportedEntityError) Error() string {
	return fmt.Sprintf("%d %s cannot be translated without a parent room", e.Count, e.Category)
}

// Is matches ErrUnsupportedEntity.
func (e *UnsupportedEntityError) Is(target error) bool { return target == ErrUnsupportedEntity }

// MissingRequiredError reports an omitted property that has no schema default.
type MissingRequiredError struct {
	Type     string
	Property string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("%s.%s is required and has no default", e.Type, e.Property)
}

// Is matches ErrMissingRequired.
func (e *MissingRequiredError) Is(target error) bool { return target == ErrMissingRequired }

// BuildError identifies the entity whose construction aborted a build.
type BuildError struct {
	Phase    string
	Category EntityType
	Name     string
	Type     string
	Err      error
}

func (e *BuildError) Error() string {
	if e.Name == "" && e.Type == "" {
		return fmt.Sprintf("build %s: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("build %s: %s %q (%s): %v", e.Phase, e.Category, e.Name, e.Type, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
