package core

import (
	"energyport/internal/osm"
	"energyport/pkg/domain"
)

func newConstructionDispatcher() *Dispatcher[domain.Construction, osm.Object] {
	d := NewDispatcher[domain.Construction, osm.Object](domain.EntityConstruction)
	d.Register(domain.TypeOpaqueConstruction, handle[domain.Construction, osm.Object](domain.EntityConstruction, domain.TypeOpaqueConstruction, buildOpaqueConstruction))
	d.Register(domain.TypeWindowConstruction, handle[domain.Construction, osm.Object](domain.EntityConstruction, domain.TypeWindowConstruction, buildWindowConstruction))
	d.Register(domain.TypeShadeConstruction, handle[domain.Construction, osm.Object](domain.EntityConstruction, domain.TypeShadeConstruction, buildShadeConstruction))
	return d
}

func buildOpaqueConstruction(bc *BuildContext, rec *domain.OpaqueConstructionAbridged) (*osm.Construction, error) {
	return buildLayered(bc, rec.Base, rec.Layers)
}

func buildWindowConstruction(bc *BuildContext, rec *domain.WindowConstructionAbridged) (*osm.Construction, error) {
	return buildLayered(bc, rec.Base, rec.Layers)
}

// buildLayered creates a construction whose layers follow the order of the
// record. A layer naming no material is dropped with a warning.
func buildLayered(bc *BuildContext, rec domain.Base, layers []string) (*osm.Construction, error) {
	name := rec.RecordName()
	return findOrCreate(bc, domain.EntityConstruction, name, func() (*osm.Construction, error) {
		if layers == nil {
			return nil, &domain.MissingRequiredError{Type: rec.Type, Property: "layers"}
		}
		c := &osm.Construction{Base: osm.Base{Name: name}}
		for _, layer := range layers {
			ref := link[osm.Material](bc, domain.EntityConstruction, name, "layers", domain.EntityMaterial, &layer)
			if ref.IsSet() {
				c.Layers = append(c.Layers, ref)
			}
		}
		return c, nil
	})
}

func buildShadeConstruction(bc *BuildContext, rec *domain.ShadeConstruction) (*osm.ShadingConstruction, error) {
	return findOrCreate(bc, domain.EntityConstruction, rec.RecordName(), func() (*osm.ShadingConstruction, error) {
		p := bc.props(rec.Type)
		c := &osm.ShadingConstruction{
			Base:               osm.Base{Name: rec.RecordName()},
			SolarReflectance:   p.float("solar_reflectance", rec.SolarReflectance),
			VisibleReflectance: p.float("visible_reflectance", rec.VisibleReflectance),
			IsSpecular:         p.boolean("is_specular", rec.IsSpecular),
		}
		return c, p.err()
	})
}

// buildConstructionSet maps the surface, aperture, door, and shade slots of a
// set onto the default construction set of the engine.
func buildConstructionSet(bc *BuildContext, rec *domain.ConstructionSet) (*osm.DefaultConstructionSet, error) {
	if err := checkRecord(domain.EntityConstructionSet, rec, domain.TypeConstructionSet); err != nil {
		return nil, err
	}
	name := rec.RecordName()
	return findOrCreate(bc, domain.EntityConstructionSet, name, func() (*osm.DefaultConstructionSet, error) {
		set := &osm.DefaultConstructionSet{Base: osm.Base{Name: name}}
		slot := func(field string, ref *string) osm.Ref[*osm.Construction] {
			return link[*osm.Construction](bc, domain.EntityConstructionSet, name, field, domain.EntityConstruction, ref)
		}
		surfaces := []struct {
			field string
			set   *domain.SurfaceConstructionSet
			ext   *osm.Ref[*osm.Construction]
			in    *osm.Ref[*osm.Construction]
			gnd   *osm.Ref[*osm.Construction]
		}{
			{"wall_set", rec.WallSet, &set.ExteriorSurfaces.Wall, &set.InteriorSurfaces.Wall, &set.GroundContactSurfaces.Wall},
			{"floor_set", rec.FloorSet, &set.ExteriorSurfaces.Floor, &set.InteriorSurfaces.Floor, &set.GroundContactSurfaces.Floor},
			{"roof_ceiling_set", rec.RoofCeilingSet, &set.ExteriorSurfaces.RoofCeiling, &set.InteriorSurfaces.RoofCeiling, &set.GroundContactSurfaces.RoofCeiling},
		}
		for _, s := range surfaces {
			if s.set == nil {
				continue
			}
			*s.ext = slot(s.field+".exterior_construction", s.set.ExteriorConstruction)
			*s.in = slot(s.field+".interior_construction", s.set.InteriorConstruction)
			*s.gnd = slot(s.field+".ground_construction", s.set.GroundConstruction)
		}
		if ap := rec.ApertureSet; ap != nil {
			set.ExteriorSubSurfaces.FixedWindow = slot("aperture_set.window_construction", ap.WindowConstruction)
			set.ExteriorSubSurfaces.OperableWindow = slot("aperture_set.operable_construction", ap.OperableConstruction)
			set.ExteriorSubSurfaces.Skylight = slot("aperture_set.skylight_construction", ap.SkylightConstruction)
			interior := slot("aperture_set.interior_construction", ap.InteriorConstruction)
			set.InteriorSubSurfaces.FixedWindow = interior
			set.InteriorSubSurfaces.OperableWindow = interior
		}
		if door := rec.DoorSet; door != nil {
			set.ExteriorSubSurfaces.Door = slot("door_set.exterior_construction", door.ExteriorConstruction)
			set.InteriorSubSurfaces.Door = slot("door_set.interior_construction", door.InteriorConstruction)
			set.ExteriorSubSurfaces.GlassDoor = slot("door_set.exterior_glass_construction", door.ExteriorGlassConstruction)
			set.InteriorSubSurfaces.GlassDoor = slot("door_set.interior_glass_construction", door.InteriorGlassConstruction)
			set.ExteriorSubSurfaces.OverheadDoor = slot("door_set.overhead_construction", door.OverheadConstruction)
		}
		set.Shading = link[*osm.ShadingConstruction](bc, domain.EntityConstructionSet, name, "shade_construction", domain.EntityConstruction, rec.ShadeConstruction)
		return set, nil
	})
}
