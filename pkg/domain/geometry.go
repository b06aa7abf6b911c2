package domain

// Geometry discriminants and the enumerations they carry.
const (
	TypeModel    = "Model"
	TypeRoom     = "Room"
	TypeFace     = "Face"
	TypeAperture = "Aperture"
	TypeDoor     = "Door"
	TypeShade    = "Shade"

	FaceTypeWall        = "Wall"
	FaceTypeFloor       = "Floor"
	FaceTypeRoofCeiling = "RoofCeiling"
	FaceTypeAirBoundary = "AirBoundary"

	BoundaryOutdoors  = "Outdoors"
	BoundarySurface   = "Surface"
	BoundaryGround    = "Ground"
	BoundaryAdiabatic = "Adiabatic"
)

// Room is a closed volume of faces. It becomes a space and a thermal zone.
type Room struct {
	Base
	Faces         []*Face         `json:"faces"`
	IndoorShades  []*Shade        `json:"indoor_shades,omitempty"`
	OutdoorShades []*Shade        `json:"outdoor_shades,omitempty"`
	Multiplier    *int            `json:"multiplier,omitempty"`
	Properties    *RoomProperties `json:"properties,omitempty"`
}

// RoomProperties groups the extension properties of a room.
type RoomProperties struct {
	Type   string                `json:"type,omitempty"`
	Energy *RoomEnergyProperties `json:"energy,omitempty"`
}

// RoomEnergyProperties references the energy resources applied to a room by name.
type RoomEnergyProperties struct {
	Type            string    `json:"type,omitempty"`
	ConstructionSet *string   `json:"construction_set,omitempty"`
	ProgramType     *string   `json:"program_type,omitempty"`
	HVAC            *string   `json:"hvac,omitempty"`
	Setpoint        *Setpoint `json:"setpoint,omitempty"`
}

// Energy returns the energy properties of the room, or an empty value.
func (r *Room) Energy() RoomEnergyProperties {
	if r == nil || r.Properties == nil || r.Properties.Energy == nil {
		return RoomEnergyProperties{}
	}
	return *r.Properties.Energy
}

// BoundaryCondition describes what lies on the outside of a face. Only the
// fields relevant to Type are populated.
type BoundaryCondition struct {
	Type                     string    `json:"type"`
	SunExposure              *bool     `json:"sun_exposure,omitempty"`
	WindExposure             *bool     `json:"wind_exposure,omitempty"`
	ViewFactor               *NumberOr `json:"view_factor,omitempty"`
	BoundaryConditionObjects []string  `json:"boundary_condition_objects,omitempty"`
}

// Face is a planar surface of a room.
type Face struct {
	Base
	FaceType          string             `json:"face_type"`
	Geometry          Face3D             `json:"geometry"`
	BoundaryCondition BoundaryCondition  `json:"boundary_condition"`
	Apertures         []*Aperture        `json:"apertures,omitempty"`
	Doors             []*Door            `json:"doors,omitempty"`
	IndoorShades      []*Shade           `json:"indoor_shades,omitempty"`
	OutdoorShades     []*Shade           `json:"outdoor_shades,omitempty"`
	Properties        *SurfaceProperties `json:"properties,omitempty"`
}

// Aperture is a window or skylight hosted on a face.
type Aperture struct {
	Base
	Geometry          Face3D             `json:"geometry"`
	BoundaryCondition BoundaryCondition  `json:"boundary_condition"`
	IsOperable        *bool              `json:"is_operable,omitempty"`
	Properties        *SurfaceProperties `json:"properties,omitempty"`
}

// Door is an opaque or glass door hosted on a face.
type Door struct {
	Base
	Geometry          Face3D             `json:"geometry"`
	BoundaryCondition BoundaryCondition  `json:"boundary_condition"`
	IsGlass           *bool              `json:"is_glass,omitempty"`
	Properties        *SurfaceProperties `json:"properties,omitempty"`
}

// Shade is a shading surface, either attached to a room or orphaned.
type Shade struct {
	Base
	Geometry   Face3D           `json:"geometry"`
	Properties *ShadeProperties `json:"properties,omitempty"`
}

// SurfaceProperties groups the extension properties of faces, apertures, and doors.
type SurfaceProperties struct {
	Type   string                   `json:"type,omitempty"`
	Energy *SurfaceEnergyProperties `json:"energy,omitempty"`
}

// SurfaceEnergyProperties references an explicit construction by name.
type SurfaceEnergyProperties struct {
	Type         string  `json:"type,omitempty"`
	Construction *string `json:"construction,omitempty"`
}

// ShadeProperties groups the extension properties of shades.
type ShadeProperties struct {
	Type   string                 `json:"type,omitempty"`
	Energy *ShadeEnergyProperties `json:"energy,omitempty"`
}

// ShadeEnergyProperties references the construction and transmittance schedule of a shade.
type ShadeEnergyProperties struct {
	Type                  string  `json:"type,omitempty"`
	Construction          *string `json:"construction,omitempty"`
	TransmittanceSchedule *string `json:"transmittance_schedule,omitempty"`
}

// SurfaceConstruction returns the explicit construction name of a face,
// aperture, or door property block, if any.
func SurfaceConstruction(p *SurfaceProperties) *string {
	if p == nil || p.Energy == nil {
		return nil
	}
	return p.Energy.Construction
}

// ShadeEnergy returns the energy properties of a shade, or an empty value.
func (s *Shade) ShadeEnergy() ShadeEnergyProperties {
	if s == nil || s.Properties == nil || s.Properties.Energy == nil {
		return ShadeEnergyProperties{}
	}
	return *s.Properties.Energy
}
