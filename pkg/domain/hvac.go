package domain

// HVAC discriminants.
const (
	TypeIdealAirSystem = "IdealAirSystemAbridged"
)

// HVACTypes lists every HVAC discriminant understood by the decoder.
func HVACTypes() []string {
	return []string{TypeIdealAirSystem}
}

// HVAC is the closed set of HVAC system templates.
type HVAC interface {
	Record
	isHVAC()
}

// IdealAirSystemAbridged is an ideal loads air system serving any number of rooms.
type IdealAirSystemAbridged struct {
	Base
	EconomizerType              *string  `json:"economizer_type,omitempty"`
	DemandControlledVentilation *bool    `json:"demand_controlled_ventilation,omitempty"`
	SensibleHeatRecovery        *float64 `json:"sensible_heat_recovery,omitempty"`
	LatentHeatRecovery          *float64 `json:"latent_heat_recovery,omitempty"`
	HeatingAirTemperature       *float64 `json:"heating_air_temperature,omitempty"`
	CoolingAirTemperature       *float64 `json:"cooling_air_temperature,omitempty"`
}

func (*IdealAirSystemAbridged) isHVAC() {}
