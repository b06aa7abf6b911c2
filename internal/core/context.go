package core

import (
	"context"
	"fmt"

	"energyport/internal/osm"
	"energyport/internal/schema"
	"energyport/pkg/domain"
)

// BuildContext carries the state shared by the builders of one translation.
type BuildContext struct {
	ctx      context.Context
	registry *Registry
	defaults *schema.Defaults
	result   *domain.Result
	log      Logger
	counter  EntityCounter
	phase    string
	adjacent []pendingAdjacency
}

type pendingAdjacency struct {
	room    string
	surface *osm.Surface
	target  string
}

func newBuildContext(ctx context.Context, registry *Registry, defaults *schema.Defaults, log Logger, counter EntityCounter) *BuildContext {
	return &BuildContext{
		ctx:      ctx,
		registry: registry,
		defaults: defaults,
		result:   &domain.Result{},
		log:      log,
		counter:  counter,
	}
}

// Context returns the context of the build.
func (bc *BuildContext) Context() context.Context { return bc.ctx }

// Model returns the model being built.
func (bc *BuildContext) Model() *osm.Model { return bc.registry.Model() }

// Registry returns the name index of the model being built.
func (bc *BuildContext) Registry() *Registry { return bc.registry }

func (bc *BuildContext) warn(category domain.EntityType, name string, err error) {
	bc.result.Warn(category, name, err)
	bc.log.Warn("build warning", "phase", bc.phase, "category", string(category), "name", name, "error", err)
	if bc.counter != nil {
		bc.counter.IssueRaised(domain.SeverityWarn)
	}
}

func (bc *BuildContext) built(category domain.EntityType) {
	if bc.counter != nil {
		bc.counter.EntityBuilt(category)
	}
}

// unresolved records a reference that names no existing object.
func (bc *BuildContext) unresolved(category domain.EntityType, name, field string, target domain.EntityType, ref string) {
	bc.warn(category, name, &domain.UnresolvedReferenceError{
		Category:  category,
		Name:      name,
		Field:     field,
		Target:    target,
		Reference: ref,
	})
}

// findOrCreate returns the object registered under (category, name) or
// builds and registers a new one. An occupant of another concrete type is a
// DuplicateNameError.
func findOrCreate[T osm.Object](bc *BuildContext, category domain.EntityType, name string, create func() (T, error)) (T, error) {
	var zero T
	if existing, ok := bc.registry.Find(category, name); ok {
		typed, ok := existing.(T)
		if !ok {
			return zero, &domain.DuplicateNameError{Category: category, Name: name}
		}
		return typed, nil
	}
	obj, err := create()
	if err != nil {
		return zero, err
	}
	if err := bc.registry.Register(category, name, obj); err != nil {
		return zero, err
	}
	bc.built(category)
	return obj, nil
}

// link resolves a by-name reference held by an entity. A nil or empty name
// yields an unset reference; an unknown name is recorded as a warning.
func link[T osm.Object](bc *BuildContext, owner domain.EntityType, ownerName, field string, target domain.EntityType, ref *string) osm.Ref[T] {
	if ref == nil || *ref == "" {
		return osm.Ref[T]{}
	}
	obj, ok := bc.registry.Find(target, *ref)
	if ok {
		if typed, ok := obj.(T); ok {
			return osm.RefTo(typed)
		}
	}
	bc.unresolved(owner, ownerName, field, target, *ref)
	return osm.Ref[T]{}
}

// ensure returns the model object of concrete type T named name, adding the
// one built by create when none exists. It serves objects outside any
// document category, such as zones and shading groups.
func ensure[T osm.Object](bc *BuildContext, name string, create func() T) (T, error) {
	return ensureObject(bc.Model(), name, create)
}

// props reads the properties of one record, falling back to the schema
// defaults of its type. The first failure is kept and later reads return
// zero values.
type props struct {
	td    schema.TypeDefaults
	first error
}

func (bc *BuildContext) props(typeName string) *props {
	td, err := bc.defaults.For(typeName)
	return &props{td: td, first: err}
}

func (p *props) fail(err error) {
	if p.first == nil && err != nil {
		p.first = err
	}
}

func (p *props) err() error { return p.first }

func (p *props) float(name string, v *float64) float64 {
	if p.first != nil {
		return 0
	}
	if v != nil {
		return *v
	}
	out, err := p.td.Float(name)
	p.fail(err)
	return out
}

func (p *props) str(name string, v *string) string {
	if p.first != nil {
		return ""
	}
	if v == nil {
		out, err := p.td.String(name)
		p.fail(err)
		return out
	}
	p.fail(p.td.CheckString(name, *v))
	return *v
}

// required returns v, or the default of name when v is empty.
func (p *props) required(name, v string) string {
	if v != "" {
		return p.str(name, &v)
	}
	return p.str(name, nil)
}

func (p *props) yesNo(name string, v *string) bool {
	return p.str(name, v) == "Yes"
}

func (p *props) boolean(name string, v *bool) bool {
	if p.first != nil {
		return false
	}
	if v != nil {
		return *v
	}
	out, err := p.td.Bool(name)
	p.fail(err)
	return out
}

func (p *props) integer(name string, v *int) int {
	if p.first != nil {
		return 0
	}
	if v == nil {
		out, err := p.td.Int(name)
		p.fail(err)
		return out
	}
	p.fail(p.td.CheckInt(name, *v))
	return *v
}

func (p *props) date(name string, v *[2]int) [2]int {
	if p.first != nil {
		return [2]int{}
	}
	if v != nil {
		return *v
	}
	out, err := p.td.Ints(name)
	if err != nil {
		p.fail(err)
		return [2]int{}
	}
	if len(out) != 2 {
		p.fail(fmt.Errorf("%s.%s: default is not a [month, day] pair", p.td.Name(), name))
		return [2]int{}
	}
	return [2]int{out[0], out[1]}
}

func (p *props) times(name string, v [][2]int) [][2]int {
	if p.first != nil {
		return nil
	}
	if len(v) > 0 {
		return v
	}
	raw, err := schema.Decode[[][]int](p.td, name)
	if err != nil {
		p.fail(err)
		return nil
	}
	out := make([][2]int, 0, len(raw))
	for _, pair := range raw {
		if len(pair) != 2 {
			p.fail(fmt.Errorf("%s.%s: default is not a list of [hour, minute] pairs", p.td.Name(), name))
			return nil
		}
		out = append(out, [2]int{pair[0], pair[1]})
	}
	return out
}

func (p *props) floats(name string, v []float64) []float64 {
	if p.first != nil {
		return nil
	}
	if len(v) > 0 {
		return v
	}
	out, err := p.td.Floats(name)
	p.fail(err)
	return out
}

func (p *props) strings(name string, v []string) []string {
	if p.first != nil {
		return nil
	}
	if len(v) == 0 {
		out, err := p.td.Strings(name)
		p.fail(err)
		return out
	}
	for _, item := range v {
		p.fail(p.td.CheckString(name, item))
	}
	return v
}
