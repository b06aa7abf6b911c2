package osm

// Construction is an ordered stack of material layers, outermost first.
type Construction struct {
	Base
	Layers []Ref[Material] `json:"layers"`
}

// Fenestration reports whether the construction is a window construction,
// judged by its outermost layer.
func (c *Construction) Fenestration() bool {
	if len(c.Layers) == 0 {
		return false
	}
	mat, ok := c.Layers[0].Get()
	return ok && mat.Fenestration()
}

// LayerNames returns the names of the layers in order.
func (c *Construction) LayerNames() []string {
	out := make([]string, 0, len(c.Layers))
	for _, layer := range c.Layers {
		out = append(out, layer.Name())
	}
	return out
}

func (c *Construction) references() []resolver { return refList(c.Layers) }

// ShadingConstruction describes the reflectance of shading surfaces.
type ShadingConstruction struct {
	Base
	SolarReflectance   float64 `json:"solar_reflectance"`
	VisibleReflectance float64 `json:"visible_reflectance"`
	IsSpecular         bool    `json:"is_specular"`
}

// SurfaceConstructions assigns constructions to opaque surface types.
type SurfaceConstructions struct {
	Wall        Ref[*Construction] `json:"wall"`
	Floor       Ref[*Construction] `json:"floor"`
	RoofCeiling Ref[*Construction] `json:"roof_ceiling"`
}

func (s *SurfaceConstructions) references() []resolver {
	return []resolver{&s.Wall, &s.Floor, &s.RoofCeiling}
}

// SubSurfaceConstructions assigns constructions to sub-surface types.
type SubSurfaceConstructions struct {
	FixedWindow    Ref[*Construction] `json:"fixed_window"`
	OperableWindow Ref[*Construction] `json:"operable_window"`
	Door           Ref[*Construction] `json:"door"`
	GlassDoor      Ref[*Construction] `json:"glass_door"`
	OverheadDoor   Ref[*Construction] `json:"overhead_door"`
	Skylight       Ref[*Construction] `json:"skylight"`
}

func (s *SubSurfaceConstructions) references() []resolver {
	return []resolver{&s.FixedWindow, &s.OperableWindow, &s.Door, &s.GlassDoor, &s.OverheadDoor, &s.Skylight}
}

// DefaultConstructionSet supplies constructions to surfaces that do not name
// one explicitly.
type DefaultConstructionSet struct {
	Base
	ExteriorSurfaces      SurfaceConstructions      `json:"exterior_surfaces"`
	InteriorSurfaces      SurfaceConstructions      `json:"interior_surfaces"`
	GroundContactSurfaces SurfaceConstructions      `json:"ground_contact_surfaces"`
	ExteriorSubSurfaces   SubSurfaceConstructions   `json:"exterior_sub_surfaces"`
	InteriorSubSurfaces   SubSurfaceConstructions   `json:"interior_sub_surfaces"`
	Shading               Ref[*ShadingConstruction] `json:"shading"`
}

func (d *DefaultConstructionSet) references() []resolver {
	out := []resolver{&d.Shading}
	for _, s := range []*SurfaceConstructions{&d.ExteriorSurfaces, &d.InteriorSurfaces, &d.GroundContactSurfaces} {
		out = append(out, s.references()...)
	}
	out = append(out, d.ExteriorSubSurfaces.references()...)
	return append(out, d.InteriorSubSurfaces.references()...)
}

func (*Construction) Kind() Kind           { return KindConstruction }
func (*ShadingConstruction) Kind() Kind    { return KindShadingConstruction }
func (*DefaultConstructionSet) Kind() Kind { return KindDefaultConstructionSet }
