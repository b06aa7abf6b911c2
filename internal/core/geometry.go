package core

import (
	"errors"
	"slices"

	"energyport/internal/osm"
	"energyport/pkg/domain"
)

// Shading group name suffixes.
const (
	outdoorShadesSuffix = " Outdoor Shades"
	indoorShadesSuffix  = " Indoor Shades"
	buildingShadesGroup = "Building Shades"
)

// buildRoom creates the space and thermal zone of a room together with its
// faces, sub-surfaces, shades, and zone controls. Surface adjacencies are
// queued and bound once every room exists.
func buildRoom(bc *BuildContext, rec *domain.Room, setpoints map[string]*domain.Setpoint) (*osm.Space, error) {
	if err := checkRecord(domain.EntityRoom, rec, domain.TypeRoom); err != nil {
		return nil, err
	}
	name := rec.RecordName()
	energy := rec.Energy()
	p := bc.props(domain.TypeRoom)
	multiplier := p.integer("multiplier", rec.Multiplier)
	if err := p.err(); err != nil {
		return nil, err
	}

	zone, err := ensure(bc, name, func() *osm.ThermalZone {
		return &osm.ThermalZone{Base: osm.Base{Name: name}, Multiplier: multiplier}
	})
	if err != nil {
		return nil, err
	}
	space, err := findOrCreate(bc, domain.EntityRoom, name, func() (*osm.Space, error) {
		space := &osm.Space{
			Base:            osm.Base{Name: name},
			SpaceType:       link[*osm.SpaceType](bc, domain.EntityRoom, name, "program_type", domain.EntityProgramType, energy.ProgramType),
			ConstructionSet: link[*osm.DefaultConstructionSet](bc, domain.EntityRoom, name, "construction_set", domain.EntityConstructionSet, energy.ConstructionSet),
			ThermalZone:     osm.RefTo(zone),
		}
		return space, nil
	})
	if err != nil {
		return nil, err
	}

	for _, face := range rec.Faces {
		if _, err := buildFace(bc, space, face); err != nil {
			return nil, wrapChild(domain.EntityFace, face, err)
		}
	}
	if err := buildShades(bc, space, nil, rec.OutdoorShades, rec.IndoorShades); err != nil {
		return nil, err
	}
	if err := applySetpoint(bc, zone, name, energy, setpoints); err != nil {
		return nil, err
	}
	return space, nil
}

func buildFace(bc *BuildContext, space *osm.Space, rec *domain.Face) (*osm.Surface, error) {
	if rec == nil {
		return nil, &domain.MissingRequiredError{Type: domain.TypeRoom, Property: "faces"}
	}
	if err := checkRecord(domain.EntityFace, rec, domain.TypeFace); err != nil {
		return nil, err
	}
	name := rec.RecordName()
	cond := rec.BoundaryCondition
	surface, err := findOrCreate(bc, domain.EntityFace, name, func() (*osm.Surface, error) {
		p := bc.props(domain.TypeFace)
		surface := &osm.Surface{
			Base:         osm.Base{Name: name},
			Space:        osm.RefTo(space),
			SurfaceType:  p.required("face_type", rec.FaceType),
			Construction: link[*osm.Construction](bc, domain.EntityFace, name, "construction", domain.EntityConstruction, domain.SurfaceConstruction(rec.Properties)),
		}
		if err := p.err(); err != nil {
			return nil, err
		}
		vertices, err := vertices(domain.TypeFace, rec.Geometry)
		if err != nil {
			return nil, err
		}
		surface.Vertices = vertices
		if err := applyBoundaryCondition(bc, surface, cond); err != nil {
			return nil, err
		}
		return surface, nil
	})
	if err != nil {
		return nil, err
	}
	if cond.Type == domain.BoundarySurface && len(cond.BoundaryConditionObjects) > 0 {
		bc.adjacent = append(bc.adjacent, pendingAdjacency{
			room:    space.Name,
			surface: surface,
			target:  cond.BoundaryConditionObjects[0],
		})
	}

	exposedHorizontal := cond.Type == domain.BoundaryOutdoors &&
		(surface.SurfaceType == domain.FaceTypeRoofCeiling || surface.SurfaceType == domain.FaceTypeFloor)
	for _, ap := range rec.Apertures {
		if _, err := buildAperture(bc, surface, ap, exposedHorizontal); err != nil {
			return nil, wrapChild(domain.EntityAperture, ap, err)
		}
	}
	for _, door := range rec.Doors {
		if _, err := buildDoor(bc, surface, door, exposedHorizontal); err != nil {
			return nil, wrapChild(domain.EntityDoor, door, err)
		}
	}
	if len(rec.OutdoorShades) > 0 || len(rec.IndoorShades) > 0 {
		if err := buildShades(bc, space, surface, rec.OutdoorShades, rec.IndoorShades); err != nil {
			return nil, err
		}
	}
	return surface, nil
}

// applyBoundaryCondition sets the outside boundary of a new surface.
// Outdoors surfaces take their exposure and view factor; Surface boundaries
// are bound later; any other type is stored as is.
func applyBoundaryCondition(bc *BuildContext, surface *osm.Surface, cond domain.BoundaryCondition) error {
	switch cond.Type {
	case "":
		return &domain.MissingRequiredError{Type: domain.TypeFace, Property: "boundary_condition"}
	case domain.BoundaryOutdoors:
		p := bc.props(domain.BoundaryOutdoors)
		surface.OutsideBoundaryCondition = osm.BoundaryOutdoors
		surface.SunExposed = p.boolean("sun_exposure", cond.SunExposure)
		surface.WindExposed = p.boolean("wind_exposure", cond.WindExposure)
		if err := p.err(); err != nil {
			return err
		}
		if v, ok := cond.ViewFactor.Float(); ok {
			surface.SetViewFactorToGround(v)
			return nil
		}
		if cond.ViewFactor != nil && cond.ViewFactor.Keyword != "" && cond.ViewFactor.Keyword != domain.KeywordAutocalculate {
			return &domain.InvalidEnumValueError{Type: domain.BoundaryOutdoors, Field: "view_factor", Value: cond.ViewFactor.Keyword, Allowed: []string{domain.KeywordAutocalculate}}
		}
		surface.AutocalculateViewFactorToGround()
	case domain.BoundarySurface:
		if len(cond.BoundaryConditionObjects) == 0 {
			return &domain.MissingRequiredError{Type: domain.BoundarySurface, Property: "boundary_condition_objects"}
		}
		surface.OutsideBoundaryCondition = osm.BoundarySurface
		surface.BoundaryObjects = slices.Clone(cond.BoundaryConditionObjects)
	default:
		surface.OutsideBoundaryCondition = cond.Type
	}
	return nil
}

// bindAdjacencies pairs every queued Surface boundary with the face it
// names. An unknown or self-referencing target leaves the face unpaired.
func bindAdjacencies(bc *BuildContext) {
	for _, pending := range bc.adjacent {
		obj, ok := bc.registry.Find(domain.EntityFace, pending.target)
		other, _ := obj.(*osm.Surface)
		if !ok || other == nil || !pending.surface.SetAdjacentSurface(other) {
			bc.unresolved(domain.EntityFace, pending.surface.Name, "boundary_condition_objects", domain.EntityFace, pending.target)
		}
	}
	bc.adjacent = nil
}

func buildAperture(bc *BuildContext, host *osm.Surface, rec *domain.Aperture, exposedHorizontal bool) (*osm.SubSurface, error) {
	if rec == nil {
		return nil, &domain.MissingRequiredError{Type: domain.TypeFace, Property: "apertures"}
	}
	if err := checkRecord(domain.EntityAperture, rec, domain.TypeAperture); err != nil {
		return nil, err
	}
	name := rec.RecordName()
	return findOrCreate(bc, domain.EntityAperture, name, func() (*osm.SubSurface, error) {
		p := bc.props(domain.TypeAperture)
		operable := p.boolean("is_operable", rec.IsOperable)
		if err := p.err(); err != nil {
			return nil, err
		}
		kind := osm.SubSurfaceFixedWindow
		switch {
		case operable:
			kind = osm.SubSurfaceOperableWindow
		case exposedHorizontal:
			kind = osm.SubSurfaceSkylight
		}
		sub, err := newSubSurface(bc, domain.EntityAperture, domain.TypeAperture, name, host, kind, rec.Geometry, rec.Properties)
		if err != nil {
			return nil, err
		}
		sub.IsOperable = operable
		return sub, nil
	})
}

func buildDoor(bc *BuildContext, host *osm.Surface, rec *domain.Door, exposedHorizontal bool) (*osm.SubSurface, error) {
	if rec == nil {
		return nil, &domain.MissingRequiredError{Type: domain.TypeFace, Property: "doors"}
	}
	if err := checkRecord(domain.EntityDoor, rec, domain.TypeDoor); err != nil {
		return nil, err
	}
	name := rec.RecordName()
	return findOrCreate(bc, domain.EntityDoor, name, func() (*osm.SubSurface, error) {
		p := bc.props(domain.TypeDoor)
		glass := p.boolean("is_glass", rec.IsGlass)
		if err := p.err(); err != nil {
			return nil, err
		}
		kind := osm.SubSurfaceDoor
		switch {
		case exposedHorizontal:
			kind = osm.SubSurfaceOverheadDoor
		case glass:
			kind = osm.SubSurfaceGlassDoor
		}
		sub, err := newSubSurface(bc, domain.EntityDoor, domain.TypeDoor, name, host, kind, rec.Geometry, rec.Properties)
		if err != nil {
			return nil, err
		}
		sub.IsGlass = glass
		return sub, nil
	})
}

func newSubSurface(bc *BuildContext, category domain.EntityType, typeName, name string, host *osm.Surface, kind string, geometry domain.Face3D, props *domain.SurfaceProperties) (*osm.SubSurface, error) {
	vertices, err := vertices(typeName, geometry)
	if err != nil {
		return nil, err
	}
	return &osm.SubSurface{
		Base:           osm.Base{Name: name},
		Surface:        osm.RefTo(host),
		SubSurfaceType: kind,
		Vertices:       vertices,
		Construction:   link[*osm.Construction](bc, category, name, "construction", domain.EntityConstruction, domain.SurfaceConstruction(props)),
	}, nil
}

// buildShades places the outdoor and indoor shades of a room or face in the
// shading groups of its space. Face shades keep parent as their surface.
func buildShades(bc *BuildContext, space *osm.Space, parent *osm.Surface, outdoor, indoor []*domain.Shade) error {
	if len(outdoor) > 0 {
		group, err := ensure(bc, space.Name+outdoorShadesSuffix, func() *osm.ShadingSurfaceGroup {
			return &osm.ShadingSurfaceGroup{Base: osm.Base{Name: space.Name + outdoorShadesSuffix}, ShadingSurfaceType: osm.ShadingSpace, Space: osm.RefTo(space)}
		})
		if err != nil {
			return err
		}
		for _, shade := range outdoor {
			if _, err := buildShade(bc, group, parent, shade); err != nil {
				return wrapChild(domain.EntityShade, shade, err)
			}
		}
	}
	if len(indoor) > 0 {
		group, err := ensure(bc, space.Name+indoorShadesSuffix, func() *osm.ShadingSurfaceGroup {
			return &osm.ShadingSurfaceGroup{Base: osm.Base{Name: space.Name + indoorShadesSuffix}, ShadingSurfaceType: osm.ShadingSpace, Space: osm.RefTo(space), Interior: true}
		})
		if err != nil {
			return err
		}
		for _, shade := range indoor {
			if _, err := buildShade(bc, group, parent, shade); err != nil {
				return wrapChild(domain.EntityShade, shade, err)
			}
		}
	}
	return nil
}

// buildOrphanedShades collects the shades without a parent room in one
// building shading group.
func buildOrphanedShades(bc *BuildContext, shades []*domain.Shade) error {
	if len(shades) == 0 {
		return nil
	}
	group, err := ensure(bc, buildingShadesGroup, func() *osm.ShadingSurfaceGroup {
		return &osm.ShadingSurfaceGroup{Base: osm.Base{Name: buildingShadesGroup}, ShadingSurfaceType: osm.ShadingBuilding}
	})
	if err != nil {
		return err
	}
	for _, shade := range shades {
		if _, err := buildShade(bc, group, nil, shade); err != nil {
			return wrapChild(domain.EntityShade, shade, err)
		}
	}
	return nil
}

func buildShade(bc *BuildContext, group *osm.ShadingSurfaceGroup, parent *osm.Surface, rec *domain.Shade) (*osm.ShadingSurface, error) {
	if rec == nil {
		return nil, &domain.MissingRequiredError{Type: domain.TypeShade, Property: "identifier"}
	}
	if err := checkRecord(domain.EntityShade, rec, domain.TypeShade); err != nil {
		return nil, err
	}
	name := rec.RecordName()
	energy := rec.ShadeEnergy()
	return findOrCreate(bc, domain.EntityShade, name, func() (*osm.ShadingSurface, error) {
		vertices, err := vertices(domain.TypeShade, rec.Geometry)
		if err != nil {
			return nil, err
		}
		shade := &osm.ShadingSurface{
			Base:                  osm.Base{Name: name},
			Group:                 osm.RefTo(group),
			Vertices:              vertices,
			Construction:          link[*osm.ShadingConstruction](bc, domain.EntityShade, name, "construction", domain.EntityConstruction, energy.Construction),
			TransmittanceSchedule: link[osm.Schedule](bc, domain.EntityShade, name, "transmittance_schedule", domain.EntitySchedule, energy.TransmittanceSchedule),
		}
		if parent != nil {
			shade.ParentSurface = osm.RefTo(parent)
		}
		return shade, nil
	})
}

func vertices(typeName string, geometry domain.Face3D) ([]osm.Point, error) {
	if len(geometry.Boundary) < 3 {
		return nil, &domain.MissingRequiredError{Type: typeName, Property: "geometry"}
	}
	out := make([]osm.Point, 0, len(geometry.Boundary))
	for _, pt := range geometry.Boundary {
		out = append(out, osm.Point(pt))
	}
	return out, nil
}

// wrapChild names the nested record whose build failed. An error that
// already names a record is returned unchanged.
func wrapChild(category domain.EntityType, rec domain.Record, err error) error {
	var built *domain.BuildError
	if errors.As(err, &built) {
		return err
	}
	name, typ := "", ""
	if !isNil(rec) {
		name, typ = rec.RecordName(), rec.RecordType()
	}
	return &domain.BuildError{Category: category, Name: name, Type: typ, Err: err}
}
