package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestResultWarningsAndMerge(t *testing.T) {
	var res Result
	res.Warn(EntityRoom, "Office", &UnresolvedReferenceError{
		Category: EntityRoom, Name: "Office", Field: "program_type", Target: EntityProgramType, Reference: "Lab",
	})
	other := Result{Issues: []Issue{{Severity: SeverityError, Category: EntityFace, Name: "Wall", Message: "bad"}}}
	res.Merge(other)
	res.Merge(Result{})

	if len(res.Issues) != 2 || len(res.Warnings()) != 1 {
		t.Fatalf("unexpected issues %+v", res.Issues)
	}
	if !res.HasErrors() {
		t.Fatal("expected merged error issue to be reported")
	}
	unresolved := res.Unresolved()
	if len(unresolved) != 1 || unresolved[0].Reference != "Lab" {
		t.Fatalf("unexpected unresolved references %+v", unresolved)
	}
	lines := strings.Split(res.String(), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], `[warn] room "Office"`) {
		t.Fatalf("unexpected rendering %q", res.String())
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
		contains string
	}{
		{&SchemaLoadError{Source: "embedded", Type: "Face", Err: errors.New("no such type")}, ErrSchemaLoad, `type "Face"`},
		{&UnknownTypeError{Category: EntityHVAC, Name: "VAV", Type: "VAV"}, ErrUnknownType, "unknown hvac type"},
		{&TypeMismatchError{Category: EntityMaterial, Name: "Brick", Expected: "EnergyMaterial", Actual: "Shade"}, ErrTypeMismatch, "expected type"},
		{&DuplicateNameError{Category: EntityMaterial, Name: "Brick"}, ErrDuplicateName, "already registered"},
		{&InvalidEnumValueError{Type: "EnergyMaterial", Field: "roughness", Value: "Sandpaper", Allowed: []string{"Rough", "Smooth"}}, ErrInvalidEnumValue, "allowed: Rough, Smooth"},
		{&UnresolvedReferenceError{Category: EntityFace, Name: "W", Field: "construction", Target: EntityConstruction, Reference: "X"}, ErrUnresolvedReference, "references unknown construction"},
		{&UnsupportedEntityError{Category: "orphaned_faces", Count: 3}, ErrUnsupportedEntity, "3 orphaned_faces"},
		{&MissingRequiredError{Type: "Face", Property: "face_type"}, ErrMissingRequired, "Face.face_type"},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.sentinel) {
			t.Errorf("%T does not match %v", tc.err, tc.sentinel)
		}
		if !strings.Contains(tc.err.Error(), tc.contains) {
			t.Errorf("%T message %q lacks %q", tc.err, tc.err.Error(), tc.contains)
		}
		for _, other := range []error{ErrSchemaLoad, ErrUnknownType, ErrMissingRequired} {
			if other != tc.sentinel && errors.Is(tc.err, other) {
				t.Errorf("%T unexpectedly matches %v", tc.err, other)
			}
		}
	}
}

func TestBuildErrorUnwraps(t *testing.T) {
	inner := &MissingRequiredError{Type: "Face", Property: "face_type"}
	err := &BuildError{Phase: "rooms", Category: EntityFace, Name: "Wall", Type: "Face", Err: inner}
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatal("expected build error to unwrap to its cause")
	}
	var target *MissingRequiredError
	if !errors.As(err, &target) || target != inner {
		t.Fatal("expected errors.As to reach the cause")
	}
	if got := err.Error(); !strings.HasPrefix(got, `build rooms: face "Wall" (Face)`) {
		t.Fatalf("unexpected message %q", got)
	}
	bare := &BuildError{Phase: "materials", Err: errors.New("context canceled")}
	if bare.Error() != "build materials: context canceled" {
		t.Fatalf("unexpected phase-only message %q", bare.Error())
	}
}
