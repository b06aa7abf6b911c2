package domain

// Construction discriminants.
const (
	TypeOpaqueConstruction = "OpaqueConstructionAbridged"
	TypeWindowConstruction = "WindowConstructionAbridged"
	TypeShadeConstruction  = "ShadeConstruction"
	TypeConstructionSet    = "ConstructionSetAbridged"
)

// ConstructionTypes lists every construction discriminant understood by the decoder.
func ConstructionTypes() []string {
	return []string{TypeOpaqueConstruction, TypeWindowConstruction, TypeShadeConstruction}
}

// Construction is the closed set of construction records.
type Construction interface {
	Record
	isConstruction()
}

// OpaqueConstructionAbridged is an ordered stack of opaque material names,
// outermost layer first.
type OpaqueConstructionAbridged struct {
	Base
	Layers []string `json:"layers"`
}

// WindowConstructionAbridged is an ordered stack of window material names,
// outermost layer first.
type WindowConstructionAbridged struct {
	Base
	Layers []string `json:"layers"`
}

// ShadeConstruction describes the reflectance of shading geometry.
type ShadeConstruction struct {
	Base
	SolarReflectance   *float64 `json:"solar_reflectance,omitempty"`
	VisibleReflectance *float64 `json:"visible_reflectance,omitempty"`
	IsSpecular         *bool    `json:"is_specular,omitempty"`
}

func (*OpaqueConstructionAbridged) isConstruction() {}
func (*WindowConstructionAbridged) isConstruction() {}
func (*ShadeConstruction) isConstruction()          {}

// ConstructionSet bundles the constructions applied by surface category.
type ConstructionSet struct {
	Base
	WallSet           *SurfaceConstructionSet  `json:"wall_set,omitempty"`
	FloorSet          *SurfaceConstructionSet  `json:"floor_set,omitempty"`
	RoofCeilingSet    *SurfaceConstructionSet  `json:"roof_ceiling_set,omitempty"`
	ApertureSet       *ApertureConstructionSet `json:"aperture_set,omitempty"`
	DoorSet           *DoorConstructionSet     `json:"door_set,omitempty"`
	ShadeConstruction *string                  `json:"shade_construction,omitempty"`
}

// SurfaceConstructionSet names the constructions of one opaque surface category.
type SurfaceConstructionSet struct {
	Type                 string  `json:"type,omitempty"`
	ExteriorConstruction *string `json:"exterior_construction,omitempty"`
	InteriorConstruction *string `json:"interior_construction,omitempty"`
	GroundConstruction   *string `json:"ground_construction,omitempty"`
}

// ApertureConstructionSet names the constructions applied to apertures.
type ApertureConstructionSet struct {
	Type                 string  `json:"type,omitempty"`
	WindowConstruction   *string `json:"window_construction,omitempty"`
	InteriorConstruction *string `json:"interior_construction,omitempty"`
	SkylightConstruction *string `json:"skylight_construction,omitempty"`
	OperableConstruction *string `json:"operable_construction,omitempty"`
}

// DoorConstructionSet names the constructions applied to doors.
type DoorConstructionSet struct {
	Type                      string  `json:"type,omitempty"`
	ExteriorConstruction      *string `json:"exterior_construction,omitempty"`
	InteriorConstruction      *string `json:"interior_construction,omitempty"`
	ExteriorGlassConstruction *string `json:"exterior_glass_construction,omitempty"`
	InteriorGlassConstruction *string `json:"interior_glass_construction,omitempty"`
	OverheadConstruction      *string `json:"overhead_construction,omitempty"`
}
