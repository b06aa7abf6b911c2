// Package osm is the in-process engine object graph that documents are
// translated into. Objects are grouped by kind, named uniquely within their
// kind, and reference each other through Ref values that survive a snapshot
// round trip.
//
// A Model is not safe for concurrent mutation; callers serialise access.
package osm

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies an object collection.
type Kind string

// Object kinds in snapshot order. Referenced kinds come before the kinds that
// reference them.
const (
	KindStandardOpaqueMaterial Kind = "standard_opaque_material"
	KindMasslessOpaqueMaterial Kind = "massless_opaque_material"
	KindGas                    Kind = "gas"
	KindGasMixture             Kind = "gas_mixture"
	KindSimpleGlazing          Kind = "simple_glazing"
	KindStandardGlazing        Kind = "standard_glazing"
	KindBlind                  Kind = "blind"
	KindWindowShade            Kind = "window_shade"
	KindConstruction           Kind = "construction"
	KindShadingConstruction    Kind = "shading_construction"
	KindDefaultConstructionSet Kind = "default_construction_set"
	KindScheduleTypeLimits     Kind = "schedule_type_limits"
	KindScheduleRuleset        Kind = "schedule_ruleset"
	KindScheduleFixedInterval  Kind = "schedule_fixed_interval"
	KindSpaceType              Kind = "space_type"
	KindThermostat             Kind = "thermostat"
	KindHumidistat             Kind = "humidistat"
	KindThermalZone            Kind = "thermal_zone"
	KindSpace                  Kind = "space"
	KindSurface                Kind = "surface"
	KindSubSurface             Kind = "sub_surface"
	KindShadingSurfaceGroup    Kind = "shading_surface_group"
	KindShadingSurface         Kind = "shading_surface"
	KindIdealLoadsAirSystem    Kind = "ideal_loads_air_system"
	KindDesignDay              Kind = "design_day"
	KindOutputVariable         Kind = "output_variable"
)

// Kinds returns every object kind in snapshot order.
func Kinds() []Kind {
	return []Kind{
		KindStandardOpaqueMaterial, KindMasslessOpaqueMaterial, KindGas, KindGasMixture,
		KindSimpleGlazing, KindStandardGlazing, KindBlind, KindWindowShade,
		KindConstruction, KindShadingConstruction, KindDefaultConstructionSet,
		KindScheduleTypeLimits, KindScheduleRuleset, KindScheduleFixedInterval,
		KindSpaceType, KindThermostat, KindHumidistat, KindThermalZone, KindSpace,
		KindSurface, KindSubSurface, KindShadingSurfaceGroup, KindShadingSurface,
		KindIdealLoadsAirSystem, KindDesignDay, KindOutputVariable,
	}
}

// ErrNameTaken is returned by Add when the name is already used within the kind.
var ErrNameTaken = errors.New("name already used")

// Object is implemented by every engine object.
type Object interface {
	Kind() Kind
	ObjectName() string
	ObjectHandle() uuid.UUID
	base() *Base
}

// Base carries the identity shared by every engine object. Internal objects
// are engine artifacts with no document counterpart.
type Base struct {
	Handle   uuid.UUID `json:"handle"`
	Name     string    `json:"name"`
	Internal bool      `json:"internal,omitempty"`
}

// ObjectName returns the object name.
func (b *Base) ObjectName() string { return b.Name }

// ObjectHandle returns the object handle.
func (b *Base) ObjectHandle() uuid.UUID { return b.Handle }

// IsInternal reports whether the object is an engine artifact.
func (b *Base) IsInternal() bool { return b.Internal }

func (b *Base) base() *Base { return b }

// Model owns every engine object.
type Model struct {
	objects    map[Kind][]Object
	byName     map[Kind]map[string]Object
	singletons singletons
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		objects: make(map[Kind][]Object),
		byName:  make(map[Kind]map[string]Object),
	}
}

// Add inserts an object, assigning a handle when it has none.
func (m *Model) Add(obj Object) error {
	b := obj.base()
	if b.Name == "" {
		return fmt.Errorf("add %s: empty name", obj.Kind())
	}
	kind := obj.Kind()
	names := m.byName[kind]
	if names == nil {
		names = make(map[string]Object)
		m.byName[kind] = names
	}
	if _, exists := names[b.Name]; exists {
		return fmt.Errorf("add %s %q: %w", kind, b.Name, ErrNameTaken)
	}
	if b.Handle == uuid.Nil {
		b.Handle = uuid.New()
	}
	names[b.Name] = obj
	m.objects[kind] = append(m.objects[kind], obj)
	return nil
}

// Lookup finds an object by kind and name.
func (m *Model) Lookup(kind Kind, name string) (Object, bool) {
	obj, ok := m.byName[kind][name]
	return obj, ok
}

// Objects returns the objects of a kind in insertion order.
func (m *Model) Objects(kind Kind) []Object {
	return append([]Object(nil), m.objects[kind]...)
}

// Len returns the total number of objects across all kinds.
func (m *Model) Len() int {
	n := 0
	for _, objs := range m.objects {
		n += len(objs)
	}
	return n
}

// Get finds an object of concrete type T by name. T must be a pointer to one
// of the object structs of this package.
func Get[T Object](m *Model, name string) (T, bool) {
	var zero T
	obj, ok := m.Lookup(zero.Kind(), name)
	if !ok {
		return zero, false
	}
	typed, ok := obj.(T)
	return typed, ok
}

// All returns every object of concrete type T in insertion order.
func All[T Object](m *Model) []T {
	var zero T
	objs := m.objects[zero.Kind()]
	out := make([]T, 0, len(objs))
	for _, obj := range objs {
		if typed, ok := obj.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
