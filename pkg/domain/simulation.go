package domain

// Simulation parameter discriminants.
const (
	TypeSimulationParameter = "SimulationParameter"
	TypeSimulationControl   = "SimulationControl"
	TypeShadowCalculation   = "ShadowCalculation"
	TypeSizingParameter     = "SizingParameter"
	TypeSimulationOutput    = "SimulationOutput"
	TypeRunPeriod           = "RunPeriod"
	TypeDesignDay           = "DesignDay"
	TypeDaylightSavingTime  = "DaylightSavingTime"

	SkyASHRAEClearSky = "ASHRAEClearSky"
	SkyASHRAETau      = "ASHRAETau"
)

// SimulationParameter is the sibling document carrying the run settings
// applied to an already translated model.
type SimulationParameter struct {
	Type              string             `json:"type"`
	Output            *SimulationOutput  `json:"output,omitempty"`
	RunPeriod         *RunPeriod         `json:"run_period,omitempty"`
	Timestep          *int               `json:"timestep,omitempty"`
	SimulationControl *SimulationControl `json:"simulation_control,omitempty"`
	ShadowCalculation *ShadowCalculation `json:"shadow_calculation,omitempty"`
	SizingParameter   *SizingParameter   `json:"sizing_parameter,omitempty"`
}

// SimulationControl toggles the sizing and run period calculations.
type SimulationControl struct {
	Type                string `json:"type,omitempty"`
	DoZoneSizing        *bool  `json:"do_zone_sizing,omitempty"`
	DoSystemSizing      *bool  `json:"do_system_sizing,omitempty"`
	DoPlantSizing       *bool  `json:"do_plant_sizing,omitempty"`
	RunForRunPeriods    *bool  `json:"run_for_run_periods,omitempty"`
	RunForSizingPeriods *bool  `json:"run_for_sizing_periods,omitempty"`
}

// ShadowCalculation configures solar distribution and shadowing.
type ShadowCalculation struct {
	Type                 string  `json:"type,omitempty"`
	SolarDistribution    *string `json:"solar_distribution,omitempty"`
	CalculationMethod    *string `json:"calculation_method,omitempty"`
	CalculationFrequency *int    `json:"calculation_frequency,omitempty"`
	MaximumFigures       *int    `json:"maximum_figures,omitempty"`
}

// SizingParameter carries the sizing factors and design days.
type SizingParameter struct {
	Type          string      `json:"type,omitempty"`
	DesignDays    []DesignDay `json:"design_days,omitempty"`
	HeatingFactor *float64    `json:"heating_factor,omitempty"`
	CoolingFactor *float64    `json:"cooling_factor,omitempty"`
}

// DesignDay is a sizing period described by its weather conditions.
type DesignDay struct {
	Type              string            `json:"type,omitempty"`
	Name              string            `json:"name,omitempty"`
	Identifier        string            `json:"identifier,omitempty"`
	DayType           string            `json:"day_type"`
	DryBulbCondition  DryBulbCondition  `json:"dry_bulb_condition"`
	HumidityCondition HumidityCondition `json:"humidity_condition"`
	WindCondition     WindCondition     `json:"wind_condition"`
	SkyCondition      SkyCondition      `json:"sky_condition"`
}

// DayName returns the name of the design day, honouring the identifier alias.
func (d DesignDay) DayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Identifier
}

// DryBulbCondition is the design day temperature profile.
type DryBulbCondition struct {
	Type         string  `json:"type,omitempty"`
	DryBulbMax   float64 `json:"dry_bulb_max"`
	DryBulbRange float64 `json:"dry_bulb_range"`
}

// HumidityCondition is the design day humidity description.
type HumidityCondition struct {
	Type               string   `json:"type,omitempty"`
	HumidityType       string   `json:"humidity_type"`
	HumidityValue      float64  `json:"humidity_value"`
	BarometricPressure *float64 `json:"barometric_pressure,omitempty"`
	Rain               *bool    `json:"rain,omitempty"`
	SnowOnGround       *bool    `json:"snow_on_ground,omitempty"`
}

// WindCondition is the design day wind description.
type WindCondition struct {
	Type          string   `json:"type,omitempty"`
	WindSpeed     float64  `json:"wind_speed"`
	WindDirection *float64 `json:"wind_direction,omitempty"`
}

// SkyCondition is the design day solar model. Clearness applies to
// ASHRAEClearSky skies and the tau pair to ASHRAETau skies.
type SkyCondition struct {
	Type            string   `json:"type"`
	Date            [2]int   `json:"date"`
	DaylightSavings *bool    `json:"daylight_savings,omitempty"`
	Clearness       *float64 `json:"clearness,omitempty"`
	TauB            *float64 `json:"tau_b,omitempty"`
	TauD            *float64 `json:"tau_d,omitempty"`
}

// SimulationOutput lists the requested output variables.
type SimulationOutput struct {
	Type               string   `json:"type,omitempty"`
	ReportingFrequency *string  `json:"reporting_frequency,omitempty"`
	Outputs            []string `json:"outputs,omitempty"`
}

// RunPeriod is the simulated date range. Dates are [month, day] pairs.
type RunPeriod struct {
	Type               string              `json:"type,omitempty"`
	StartDate          *[2]int             `json:"start_date,omitempty"`
	EndDate            *[2]int             `json:"end_date,omitempty"`
	StartDayOfWeek     *string             `json:"start_day_of_week,omitempty"`
	LeapYear           *bool               `json:"leap_year,omitempty"`
	DaylightSavingTime *DaylightSavingTime `json:"daylight_saving_time,omitempty"`
}

// DaylightSavingTime is the daylight saving window within a run period.
type DaylightSavingTime struct {
	Type      string `json:"type,omitempty"`
	StartDate [2]int `json:"start_date"`
	EndDate   [2]int `json:"end_date"`
}
