package osm

// DesignDay is a sizing period. Sky models use either Clearness or the pair
// TauB and TauD.
type DesignDay struct {
	Base
	DayType                      string  `json:"day_type"`
	Month                        int     `json:"month"`
	DayOfMonth                   int     `json:"day_of_month"`
	MaximumDryBulbTemperature    float64 `json:"maximum_dry_bulb_temperature"`
	DailyDryBulbTemperatureRange float64 `json:"daily_dry_bulb_temperature_range"`
	HumidityIndicatingType       string  `json:"humidity_indicating_type"`
	HumidityIndicatingConditions float64 `json:"humidity_indicating_conditions"`
	BarometricPressure           float64 `json:"barometric_pressure"`
	RainIndicator                bool    `json:"rain_indicator"`
	SnowIndicator                bool    `json:"snow_indicator"`
	WindSpeed                    float64 `json:"wind_speed"`
	WindDirection                float64 `json:"wind_direction"`
	DaylightSavingTimeIndicator  bool    `json:"daylight_saving_time_indicator"`
	SolarModelIndicator          string  `json:"solar_model_indicator"`
	SkyClearness                 float64 `json:"sky_clearness,omitempty"`
	TauB                         float64 `json:"tau_b,omitempty"`
	TauD                         float64 `json:"tau_d,omitempty"`
}

// OutputVariable requests a report variable. The object name is the variable
// name.
type OutputVariable struct {
	Base
	ReportingFrequency string `json:"reporting_frequency"`
}

func (*DesignDay) Kind() Kind      { return KindDesignDay }
func (*OutputVariable) Kind() Kind { return KindOutputVariable }

// Building is the unique building object.
type Building struct {
	Name                   string                       `json:"name,omitempty"`
	NorthAxis              float64                      `json:"north_axis"`
	DefaultConstructionSet Ref[*DefaultConstructionSet] `json:"default_construction_set"`
}

func (b *Building) references() []resolver { return []resolver{&b.DefaultConstructionSet} }

// Site is the unique site object.
type Site struct {
	TerrainType string `json:"terrain_type"`
}

// SimulationControl selects which sizing and simulation runs happen.
type SimulationControl struct {
	DoZoneSizing        bool   `json:"do_zone_sizing"`
	DoSystemSizing      bool   `json:"do_system_sizing"`
	DoPlantSizing       bool   `json:"do_plant_sizing"`
	RunForSizingPeriods bool   `json:"run_for_sizing_periods"`
	RunForWeatherFile   bool   `json:"run_for_weather_file"`
	SolarDistribution   string `json:"solar_distribution"`
}

// ShadowCalculation configures shading computations.
type ShadowCalculation struct {
	CalculationMethod    string `json:"calculation_method"`
	CalculationFrequency int    `json:"calculation_frequency"`
	MaximumFigures       int    `json:"maximum_figures"`
}

// SizingParameters holds the global sizing factors.
type SizingParameters struct {
	HeatingSizingFactor float64 `json:"heating_sizing_factor"`
	CoolingSizingFactor float64 `json:"cooling_sizing_factor"`
}

// Timestep is the number of zone timesteps per hour.
type Timestep struct {
	NumberOfTimestepsPerHour int `json:"number_of_timesteps_per_hour"`
}

// RunPeriod is the simulated date range.
type RunPeriod struct {
	BeginMonth      int `json:"begin_month"`
	BeginDayOfMonth int `json:"begin_day_of_month"`
	EndMonth        int `json:"end_month"`
	EndDayOfMonth   int `json:"end_day_of_month"`
}

// YearDescription describes the simulated calendar year.
type YearDescription struct {
	DayOfWeekForStartDay string `json:"day_of_week_for_start_day"`
	IsLeapYear           bool   `json:"is_leap_year"`
}

// DaylightSavingTime is the daylight saving period.
type DaylightSavingTime struct {
	StartMonth int `json:"start_month"`
	StartDay   int `json:"start_day"`
	EndMonth   int `json:"end_month"`
	EndDay     int `json:"end_day"`
}

type singletons struct {
	Building           *Building           `json:"building,omitempty"`
	Site               *Site               `json:"site,omitempty"`
	SimulationControl  *SimulationControl  `json:"simulation_control,omitempty"`
	ShadowCalculation  *ShadowCalculation  `json:"shadow_calculation,omitempty"`
	SizingParameters   *SizingParameters   `json:"sizing_parameters,omitempty"`
	Timestep           *Timestep           `json:"timestep,omitempty"`
	RunPeriod          *RunPeriod          `json:"run_period,omitempty"`
	YearDescription    *YearDescription    `json:"year_description,omitempty"`
	DaylightSavingTime *DaylightSavingTime `json:"daylight_saving_time,omitempty"`
}

// Building returns the building, creating it on first use.
func (m *Model) Building() *Building {
	if m.singletons.Building == nil {
		m.singletons.Building = &Building{}
	}
	return m.singletons.Building
}

// Site returns the site, creating it on first use.
func (m *Model) Site() *Site {
	if m.singletons.Site == nil {
		m.singletons.Site = &Site{}
	}
	return m.singletons.Site
}

// SimulationControl returns the simulation control, creating it on first
// use with every run enabled.
func (m *Model) SimulationControl() *SimulationControl {
	if m.singletons.SimulationControl == nil {
		m.singletons.SimulationControl = &SimulationControl{
			RunForSizingPeriods: true,
			RunForWeatherFile:   true,
			SolarDistribution:   "FullExteriorWithReflections",
		}
	}
	return m.singletons.SimulationControl
}

// ShadowCalculation returns the shadow calculation settings, creating them on
// first use.
func (m *Model) ShadowCalculation() *ShadowCalculation {
	if m.singletons.ShadowCalculation == nil {
		m.singletons.ShadowCalculation = &ShadowCalculation{
			CalculationMethod:    "AverageOverDaysInFrequency",
			CalculationFrequency: 30,
			MaximumFigures:       15000,
		}
	}
	return m.singletons.ShadowCalculation
}

// SizingParameters returns the sizing factors, creating them on first use.
func (m *Model) SizingParameters() *SizingParameters {
	if m.singletons.SizingParameters == nil {
		m.singletons.SizingParameters = &SizingParameters{HeatingSizingFactor: 1.25, CoolingSizingFactor: 1.15}
	}
	return m.singletons.SizingParameters
}

// Timestep returns the timestep, creating it on first use.
func (m *Model) Timestep() *Timestep {
	if m.singletons.Timestep == nil {
		m.singletons.Timestep = &Timestep{NumberOfTimestepsPerHour: 6}
	}
	return m.singletons.Timestep
}

// RunPeriod returns the run period, creating a full year on first use.
func (m *Model) RunPeriod() *RunPeriod {
	if m.singletons.RunPeriod == nil {
		m.singletons.RunPeriod = &RunPeriod{BeginMonth: 1, BeginDayOfMonth: 1, EndMonth: 12, EndDayOfMonth: 31}
	}
	return m.singletons.RunPeriod
}

// YearDescription returns the calendar description, creating it on first use.
func (m *Model) YearDescription() *YearDescription {
	if m.singletons.YearDescription == nil {
		m.singletons.YearDescription = &YearDescription{DayOfWeekForStartDay: "Sunday"}
	}
	return m.singletons.YearDescription
}

// DaylightSavingTime returns the daylight saving period, creating it on first
// use.
func (m *Model) DaylightSavingTime() *DaylightSavingTime {
	if m.singletons.DaylightSavingTime == nil {
		m.singletons.DaylightSavingTime = &DaylightSavingTime{StartMonth: 3, StartDay: 8, EndMonth: 11, EndDay: 1}
	}
	return m.singletons.DaylightSavingTime
}

// HasDaylightSavingTime reports whether a daylight saving period was set.
func (m *Model) HasDaylightSavingTime() bool { return m.singletons.DaylightSavingTime != nil }

// HasSimulationSettings reports whether any simulation singleton exists.
func (m *Model) HasSimulationSettings() bool {
	s := m.singletons
	return s.SimulationControl != nil || s.ShadowCalculation != nil || s.SizingParameters != nil ||
		s.Timestep != nil || s.RunPeriod != nil || s.YearDescription != nil
}
