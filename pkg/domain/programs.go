package domain

// Program type and load discriminants.
const (
	TypeProgramType       = "ProgramTypeAbridged"
	TypePeople            = "PeopleAbridged"
	TypeLighting          = "LightingAbridged"
	TypeElectricEquipment = "ElectricEquipmentAbridged"
	TypeGasEquipment      = "GasEquipmentAbridged"
	TypeInfiltration      = "InfiltrationAbridged"
	TypeVentilation       = "VentilationAbridged"
	TypeSetpoint          = "SetpointAbridged"
)

// ProgramType bundles the loads, schedules, and setpoints of a space usage.
type ProgramType struct {
	Base
	People            *People       `json:"people,omitempty"`
	Lighting          *Lighting     `json:"lighting,omitempty"`
	ElectricEquipment *Equipment    `json:"electric_equipment,omitempty"`
	GasEquipment      *Equipment    `json:"gas_equipment,omitempty"`
	Infiltration      *Infiltration `json:"infiltration,omitempty"`
	Ventilation       *Ventilation  `json:"ventilation,omitempty"`
	Setpoint          *Setpoint     `json:"setpoint,omitempty"`
}

// People is an occupancy load.
type People struct {
	Base
	PeoplePerArea     *float64  `json:"people_per_area,omitempty"`
	OccupancySchedule string    `json:"occupancy_schedule"`
	ActivitySchedule  *string   `json:"activity_schedule,omitempty"`
	RadiantFraction   *float64  `json:"radiant_fraction,omitempty"`
	LatentFraction    *NumberOr `json:"latent_fraction,omitempty"`
}

// Lighting is a lighting power density load.
type Lighting struct {
	Base
	WattsPerArea      *float64 `json:"watts_per_area,omitempty"`
	Schedule          string   `json:"schedule"`
	ReturnAirFraction *float64 `json:"return_air_fraction,omitempty"`
	RadiantFraction   *float64 `json:"radiant_fraction,omitempty"`
	VisibleFraction   *float64 `json:"visible_fraction,omitempty"`
}

// Equipment is an electric or gas equipment load; the discriminant tells them apart.
type Equipment struct {
	Base
	WattsPerArea    *float64 `json:"watts_per_area,omitempty"`
	Schedule        string   `json:"schedule"`
	RadiantFraction *float64 `json:"radiant_fraction,omitempty"`
	LatentFraction  *float64 `json:"latent_fraction,omitempty"`
	LostFraction    *float64 `json:"lost_fraction,omitempty"`
}

// Infiltration is an outdoor air leakage load per exterior area.
type Infiltration struct {
	Base
	FlowPerExteriorArea    *float64 `json:"flow_per_exterior_area,omitempty"`
	Schedule               string   `json:"schedule"`
	ConstantCoefficient    *float64 `json:"constant_coefficient,omitempty"`
	TemperatureCoefficient *float64 `json:"temperature_coefficient,omitempty"`
	VelocityCoefficient    *float64 `json:"velocity_coefficient,omitempty"`
}

// Ventilation is a minimum outdoor air requirement.
type Ventilation struct {
	Base
	FlowPerPerson     *float64 `json:"flow_per_person,omitempty"`
	FlowPerArea       *float64 `json:"flow_per_area,omitempty"`
	AirChangesPerHour *float64 `json:"air_changes_per_hour,omitempty"`
	FlowPerZone       *float64 `json:"flow_per_zone,omitempty"`
	Schedule          *string  `json:"schedule,omitempty"`
}

// Setpoint holds the thermostat and humidistat schedules of a zone.
type Setpoint struct {
	Base
	HeatingSchedule       string  `json:"heating_schedule"`
	CoolingSchedule       string  `json:"cooling_schedule"`
	HumidifyingSchedule   *string `json:"humidifying_schedule,omitempty"`
	DehumidifyingSchedule *string `json:"dehumidifying_schedule,omitempty"`
}

// HasHumidistat reports whether the setpoint controls humidity.
func (s *Setpoint) HasHumidistat() bool {
	return s != nil && (s.HumidifyingSchedule != nil || s.DehumidifyingSchedule != nil)
}
