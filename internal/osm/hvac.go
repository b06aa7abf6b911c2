package osm

// Thermostat holds the heating and cooling setpoint schedules of a zone.
type Thermostat struct {
	Base
	Heating Ref[Schedule] `json:"heating"`
	Cooling Ref[Schedule] `json:"cooling"`
}

func (t *Thermostat) references() []resolver { return []resolver{&t.Heating, &t.Cooling} }

// Humidistat holds the relative humidity setpoint schedules of a zone.
type Humidistat struct {
	Base
	Humidifying   Ref[Schedule] `json:"humidifying"`
	Dehumidifying Ref[Schedule] `json:"dehumidifying"`
}

func (h *Humidistat) references() []resolver { return []resolver{&h.Humidifying, &h.Dehumidifying} }

// Demand controlled ventilation and heat recovery choices of an ideal
// loads system.
const (
	VentilationNone              = "None"
	VentilationOccupancySchedule = "OccupancySchedule"
	HeatRecoveryNone             = "None"
	HeatRecoverySensible         = "Sensible"
	HeatRecoveryEnthalpy         = "Enthalpy"
)

// IdealLoadsAirSystem meets the loads of its zones with ideal supply air.
type IdealLoadsAirSystem struct {
	Base
	EconomizerType                     string              `json:"economizer_type"`
	DemandControlledVentilationType    string              `json:"demand_controlled_ventilation_type"`
	HeatRecoveryType                   string              `json:"heat_recovery_type"`
	SensibleHeatRecoveryEffectiveness  float64             `json:"sensible_heat_recovery_effectiveness"`
	LatentHeatRecoveryEffectiveness    float64             `json:"latent_heat_recovery_effectiveness"`
	MaximumHeatingSupplyAirTemperature float64             `json:"maximum_heating_supply_air_temperature"`
	MinimumCoolingSupplyAirTemperature float64             `json:"minimum_cooling_supply_air_temperature"`
	Zones                              []Ref[*ThermalZone] `json:"zones"`
}

// AddToThermalZone attaches the system to zone. It reports false when the
// system already serves the zone.
func (s *IdealLoadsAirSystem) AddToThermalZone(zone *ThermalZone) bool {
	for _, z := range s.Zones {
		if z.Is(zone) {
			return false
		}
	}
	s.Zones = append(s.Zones, RefTo(zone))
	return true
}

// Serves reports whether the system is attached to zone.
func (s *IdealLoadsAirSystem) Serves(zone *ThermalZone) bool {
	for _, z := range s.Zones {
		if z.Is(zone) {
			return true
		}
	}
	return false
}

func (s *IdealLoadsAirSystem) references() []resolver { return refList(s.Zones) }

// ZoneEquipment returns the ideal loads systems serving zone.
func (m *Model) ZoneEquipment(zone *ThermalZone) []*IdealLoadsAirSystem {
	var out []*IdealLoadsAirSystem
	for _, sys := range All[*IdealLoadsAirSystem](m) {
		if sys.Serves(zone) {
			out = append(out, sys)
		}
	}
	return out
}

func (*Thermostat) Kind() Kind          { return KindThermostat }
func (*Humidistat) Kind() Kind          { return KindHumidistat }
func (*IdealLoadsAirSystem) Kind() Kind { return KindIdealLoadsAirSystem }
