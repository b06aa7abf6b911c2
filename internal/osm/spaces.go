package osm

// Point is a vertex in model coordinates (meters).
type Point [3]float64

// Outside boundary conditions of a surface.
const (
	BoundaryOutdoors  = "Outdoors"
	BoundarySurface   = "Surface"
	BoundaryGround    = "Ground"
	BoundaryAdiabatic = "Adiabatic"
)

// Sub-surface types.
const (
	SubSurfaceFixedWindow    = "FixedWindow"
	SubSurfaceOperableWindow = "OperableWindow"
	SubSurfaceSkylight       = "Skylight"
	SubSurfaceDoor           = "Door"
	SubSurfaceGlassDoor      = "GlassDoor"
	SubSurfaceOverheadDoor   = "OverheadDoor"
)

// Shading surface group types.
const (
	ShadingSite     = "Site"
	ShadingBuilding = "Building"
	ShadingSpace    = "Space"
)

// People is the occupancy load of a space type. A nil LatentFraction is
// autocalculated.
type People struct {
	Name               string        `json:"name"`
	PeoplePerFloorArea float64       `json:"people_per_floor_area"`
	Schedule           Ref[Schedule] `json:"schedule"`
	ActivitySchedule   Ref[Schedule] `json:"activity_schedule"`
	FractionRadiant    float64       `json:"fraction_radiant"`
	LatentFraction     *float64      `json:"latent_fraction,omitempty"`
}

// Lights is the lighting load of a space type.
type Lights struct {
	Name              string        `json:"name"`
	WattsPerFloorArea float64       `json:"watts_per_floor_area"`
	Schedule          Ref[Schedule] `json:"schedule"`
	ReturnAirFraction float64       `json:"return_air_fraction"`
	FractionRadiant   float64       `json:"fraction_radiant"`
	FractionVisible   float64       `json:"fraction_visible"`
}

// Equipment is an electric or gas equipment load of a space type.
type Equipment struct {
	Name              string        `json:"name"`
	WattsPerFloorArea float64       `json:"watts_per_floor_area"`
	Schedule          Ref[Schedule] `json:"schedule"`
	FractionRadiant   float64       `json:"fraction_radiant"`
	FractionLatent    float64       `json:"fraction_latent"`
	FractionLost      float64       `json:"fraction_lost"`
}

// Infiltration is the design infiltration rate of a space type.
type Infiltration struct {
	Name                       string        `json:"name"`
	FlowPerExteriorSurfaceArea float64       `json:"flow_per_exterior_surface_area"`
	Schedule                   Ref[Schedule] `json:"schedule"`
	ConstantTermCoefficient    float64       `json:"constant_term_coefficient"`
	TemperatureTermCoefficient float64       `json:"temperature_term_coefficient"`
	VelocityTermCoefficient    float64       `json:"velocity_term_coefficient"`
}

// Ventilation is the outdoor air requirement of a space type.
type Ventilation struct {
	Name                    string        `json:"name"`
	OutdoorAirFlowPerPerson float64       `json:"outdoor_air_flow_per_person"`
	OutdoorAirFlowPerArea   float64       `json:"outdoor_air_flow_per_area"`
	AirChangesPerHour       float64       `json:"air_changes_per_hour"`
	OutdoorAirFlowRate      float64       `json:"outdoor_air_flow_rate"`
	Schedule                Ref[Schedule] `json:"schedule"`
}

// ProgramSetpoint is the setpoint a space type hands down to the zones of its
// spaces. Schedules are kept by name; zones link them when they inherit it.
type ProgramSetpoint struct {
	Name          string `json:"name"`
	Heating       string `json:"heating_schedule"`
	Cooling       string `json:"cooling_schedule"`
	Humidifying   string `json:"humidifying_schedule,omitempty"`
	Dehumidifying string `json:"dehumidifying_schedule,omitempty"`
}

// SpaceType bundles the loads applied to every space that uses it.
type SpaceType struct {
	Base
	People            *People          `json:"people,omitempty"`
	Lights            *Lights          `json:"lights,omitempty"`
	ElectricEquipment *Equipment       `json:"electric_equipment,omitempty"`
	GasEquipment      *Equipment       `json:"gas_equipment,omitempty"`
	Infiltration      *Infiltration    `json:"infiltration,omitempty"`
	Ventilation       *Ventilation     `json:"ventilation,omitempty"`
	Setpoint          *ProgramSetpoint `json:"setpoint,omitempty"`
}

func (s *SpaceType) references() []resolver {
	var out []resolver
	if s.People != nil {
		out = append(out, &s.People.Schedule, &s.People.ActivitySchedule)
	}
	if s.Lights != nil {
		out = append(out, &s.Lights.Schedule)
	}
	if s.ElectricEquipment != nil {
		out = append(out, &s.ElectricEquipment.Schedule)
	}
	if s.GasEquipment != nil {
		out = append(out, &s.GasEquipment.Schedule)
	}
	if s.Infiltration != nil {
		out = append(out, &s.Infiltration.Schedule)
	}
	if s.Ventilation != nil {
		out = append(out, &s.Ventilation.Schedule)
	}
	return out
}

// ThermalZone groups spaces conditioned together.
type ThermalZone struct {
	Base
	Multiplier int              `json:"multiplier"`
	Thermostat Ref[*Thermostat] `json:"thermostat"`
	Humidistat Ref[*Humidistat] `json:"humidistat"`
}

func (z *ThermalZone) references() []resolver {
	return []resolver{&z.Thermostat, &z.Humidistat}
}

// Space is an enclosed volume bounded by surfaces.
type Space struct {
	Base
	SpaceType       Ref[*SpaceType]              `json:"space_type"`
	ConstructionSet Ref[*DefaultConstructionSet] `json:"construction_set"`
	ThermalZone     Ref[*ThermalZone]            `json:"thermal_zone"`
}

func (s *Space) references() []resolver {
	return []resolver{&s.SpaceType, &s.ConstructionSet, &s.ThermalZone}
}

// Surface is a planar boundary of a space. A nil ViewFactorToGround is
// autocalculated by the engine. BoundaryObjects keeps the names a Surface
// boundary was declared with, whether or not they resolved.
type Surface struct {
	Base
	Space                    Ref[*Space]        `json:"space"`
	SurfaceType              string             `json:"surface_type"`
	Vertices                 []Point            `json:"vertices"`
	Construction             Ref[*Construction] `json:"construction"`
	OutsideBoundaryCondition string             `json:"outside_boundary_condition"`
	AdjacentSurface          Ref[*Surface]      `json:"adjacent_surface"`
	BoundaryObjects          []string           `json:"boundary_objects,omitempty"`
	SunExposed               bool               `json:"sun_exposed"`
	WindExposed              bool               `json:"wind_exposed"`
	ViewFactorToGround       *float64           `json:"view_factor_to_ground,omitempty"`
}

// SetAdjacentSurface binds s and other to each other with a Surface
// boundary condition. A surface cannot be adjacent to itself.
func (s *Surface) SetAdjacentSurface(other *Surface) bool {
	if other == nil || other == s {
		return false
	}
	s.AdjacentSurface = RefTo(other)
	s.OutsideBoundaryCondition = BoundarySurface
	s.SunExposed, s.WindExposed = false, false
	other.AdjacentSurface = RefTo(s)
	other.OutsideBoundaryCondition = BoundarySurface
	other.SunExposed, other.WindExposed = false, false
	return true
}

// AutocalculateViewFactorToGround hands the view factor back to the engine.
func (s *Surface) AutocalculateViewFactorToGround() { s.ViewFactorToGround = nil }

// SetViewFactorToGround fixes the view factor to v.
func (s *Surface) SetViewFactorToGround(v float64) { s.ViewFactorToGround = &v }

// ViewFactorToGroundAutocalculated reports whether the engine computes the
// view factor.
func (s *Surface) ViewFactorToGroundAutocalculated() bool { return s.ViewFactorToGround == nil }

func (s *Surface) references() []resolver {
	return []resolver{&s.Space, &s.Construction, &s.AdjacentSurface}
}

// SubSurface is a window, skylight, or door hosted on a surface. IsGlass and
// IsOperable hold the declared flags, which the sub-surface type alone can
// lose (a glass door on a roof is an overhead door).
type SubSurface struct {
	Base
	Surface            Ref[*Surface]      `json:"surface"`
	SubSurfaceType     string             `json:"sub_surface_type"`
	Vertices           []Point            `json:"vertices"`
	Construction       Ref[*Construction] `json:"construction"`
	AdjacentSubSurface Ref[*SubSurface]   `json:"adjacent_sub_surface"`
	IsGlass            bool               `json:"is_glass,omitempty"`
	IsOperable         bool               `json:"is_operable,omitempty"`
}

// IsDoor reports whether the sub-surface is one of the door types.
func (s *SubSurface) IsDoor() bool {
	switch s.SubSurfaceType {
	case SubSurfaceDoor, SubSurfaceGlassDoor, SubSurfaceOverheadDoor:
		return true
	}
	return false
}

// SetAdjacentSubSurface binds s and other to each other.
func (s *SubSurface) SetAdjacentSubSurface(other *SubSurface) bool {
	if other == nil || other == s {
		return false
	}
	s.AdjacentSubSurface = RefTo(other)
	other.AdjacentSubSurface = RefTo(s)
	return true
}

func (s *SubSurface) references() []resolver {
	return []resolver{&s.Surface, &s.Construction, &s.AdjacentSubSurface}
}

// ShadingSurfaceGroup collects shading surfaces of one type. Space groups
// belong to a space; Interior marks shades inside it.
type ShadingSurfaceGroup struct {
	Base
	ShadingSurfaceType string      `json:"shading_surface_type"`
	Space              Ref[*Space] `json:"space"`
	Interior           bool        `json:"interior,omitempty"`
}

func (g *ShadingSurfaceGroup) references() []resolver { return []resolver{&g.Space} }

// ShadingSurface is a shading polygon. ParentSurface is set for shades
// attached to a face rather than to its space.
type ShadingSurface struct {
	Base
	Group                 Ref[*ShadingSurfaceGroup] `json:"group"`
	ParentSurface         Ref[*Surface]             `json:"parent_surface"`
	Vertices              []Point                   `json:"vertices"`
	Construction          Ref[*ShadingConstruction] `json:"construction"`
	TransmittanceSchedule Ref[Schedule]             `json:"transmittance_schedule"`
}

func (s *ShadingSurface) references() []resolver {
	return []resolver{&s.Group, &s.ParentSurface, &s.Construction, &s.TransmittanceSchedule}
}

func (*SpaceType) Kind() Kind           { return KindSpaceType }
func (*ThermalZone) Kind() Kind         { return KindThermalZone }
func (*Space) Kind() Kind               { return KindSpace }
func (*Surface) Kind() Kind             { return KindSurface }
func (*SubSurface) Kind() Kind          { return KindSubSurface }
func (*ShadingSurfaceGroup) Kind() Kind { return KindShadingSurfaceGroup }
func (*ShadingSurface) Kind() Kind      { return KindShadingSurface }

// SurfacesOf returns the surfaces of a space in insertion order.
func (m *Model) SurfacesOf(space *Space) []*Surface {
	var out []*Surface
	for _, s := range All[*Surface](m) {
		if s.Space.Is(space) {
			out = append(out, s)
		}
	}
	return out
}

// SubSurfacesOf returns the sub-surfaces hosted on a surface.
func (m *Model) SubSurfacesOf(surface *Surface) []*SubSurface {
	var out []*SubSurface
	for _, s := range All[*SubSurface](m) {
		if s.Surface.Is(surface) {
			out = append(out, s)
		}
	}
	return out
}

// ShadingSurfacesOf returns the shading surfaces of a group.
func (m *Model) ShadingSurfacesOf(group *ShadingSurfaceGroup) []*ShadingSurface {
	var out []*ShadingSurface
	for _, s := range All[*ShadingSurface](m) {
		if s.Group.Is(group) {
			out = append(out, s)
		}
	}
	return out
}

// SpacesIn returns the spaces of a thermal zone.
func (m *Model) SpacesIn(zone *ThermalZone) []*Space {
	var out []*Space
	for _, s := range All[*Space](m) {
		if s.ThermalZone.Is(zone) {
			out = append(out, s)
		}
	}
	return out
}
