package core

import (
	"errors"
	"fmt"
	"sync"

	"energyport/internal/osm"
	"energyport/pkg/domain"
)

// categoryKinds maps each document category to the engine object kinds it
// may hold. Apertures and doors share the sub-surface kind but keep separate
// namespaces.
var categoryKinds = map[domain.EntityType][]osm.Kind{
	domain.EntityMaterial:          osm.MaterialKinds(),
	domain.EntityConstruction:      {osm.KindConstruction, osm.KindShadingConstruction},
	domain.EntityConstructionSet:   {osm.KindDefaultConstructionSet},
	domain.EntityScheduleTypeLimit: {osm.KindScheduleTypeLimits},
	domain.EntitySchedule:          osm.ScheduleKinds(),
	domain.EntityProgramType:       {osm.KindSpaceType},
	domain.EntityRoom:              {osm.KindSpace},
	domain.EntityFace:              {osm.KindSurface},
	domain.EntityAperture:          {osm.KindSubSurface},
	domain.EntityDoor:              {osm.KindSubSurface},
	domain.EntityShade:             {osm.KindShadingSurface},
	domain.EntityHVAC:              {osm.KindIdealLoadsAirSystem},
	domain.EntitySetpoint:          {osm.KindThermostat},
}

// Registry is the name index of a target model. Every builder consults it
// before creating an object so that translating a document twice yields the
// same objects. Objects already present in the model, including those
// created outside a build, are found by name unless another category
// registered them or, for unregistered sub-surfaces, their type belongs to
// the other category.
type Registry struct {
	mu     sync.Mutex
	model  *osm.Model
	owners map[osm.Object]domain.EntityType
}

// NewRegistry indexes model.
func NewRegistry(model *osm.Model) *Registry {
	return &Registry{model: model, owners: map[osm.Object]domain.EntityType{}}
}

// Model returns the indexed model.
func (r *Registry) Model() *osm.Model { return r.model }

// Find returns the object registered under (category, name).
func (r *Registry) Find(category domain.EntityType, name string) (osm.Object, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(category, name)
}

func (r *Registry) find(category domain.EntityType, name string) (osm.Object, bool) {
	for _, kind := range categoryKinds[category] {
		obj, ok := r.model.Lookup(kind, name)
		if !ok {
			continue
		}
		if owner, claimed := r.owners[obj]; claimed {
			if owner != category {
				continue
			}
		} else if !unclaimedFits(category, obj) {
			continue
		}
		return obj, true
	}
	return nil, false
}

// Register adds obj to the model under (category, name). Registering the
// object already held under that name is a no-op; any other occupant is a
// DuplicateNameError.
func (r *Registry) Register(category domain.EntityType, name string, obj osm.Object) error {
	if !r.accepts(category, obj.Kind()) {
		return fmt.Errorf("register %s %q: kind %s does not belong to the category", category, name, obj.Kind())
	}
	if obj.ObjectName() != name {
		return fmt.Errorf("register %s %q: object is named %q", category, name, obj.ObjectName())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.find(category, name); ok {
		if existing == obj {
			r.owners[obj] = category
			return nil
		}
		return &domain.DuplicateNameError{Category: category, Name: name}
	}
	if err := r.model.Add(obj); err != nil {
		if errors.Is(err, osm.ErrNameTaken) {
			return &domain.DuplicateNameError{Category: category, Name: name}
		}
		return err
	}
	r.owners[obj] = category
	return nil
}

// unclaimedFits decides the category of an object no build has registered,
// such as one loaded from a snapshot. Sub-surfaces go by their type.
func unclaimedFits(category domain.EntityType, obj osm.Object) bool {
	sub, ok := obj.(*osm.SubSurface)
	if !ok {
		return true
	}
	switch category {
	case domain.EntityDoor:
		return sub.IsDoor()
	case domain.EntityAperture:
		return !sub.IsDoor()
	}
	return true
}

func (r *Registry) accepts(category domain.EntityType, kind osm.Kind) bool {
	for _, k := range categoryKinds[category] {
		if k == kind {
			return true
		}
	}
	return false
}
