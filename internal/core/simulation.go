package core

import (
	"context"
	"fmt"

	"energyport/internal/osm"
	"energyport/internal/schema"
	"energyport/pkg/domain"
)

// ApplySimulationParameter writes the run settings of a simulation parameter
// document onto an already translated model. Omitted sections fall back to
// their schema defaults, so applying an empty document resets the model to
// the default run. Design days and output variables are matched by name and
// updated in place, which keeps repeated applications idempotent.
func ApplySimulationParameter(ctx context.Context, model *osm.Model, doc *domain.SimulationParameter, defaults *schema.Defaults) (domain.Result, error) {
	var result domain.Result
	if model == nil {
		return result, &domain.MissingRequiredError{Type: domain.TypeSimulationParameter, Property: "model"}
	}
	if doc == nil {
		return result, &domain.MissingRequiredError{Type: domain.TypeSimulationParameter, Property: "document"}
	}
	if doc.Type != domain.TypeSimulationParameter {
		return result, &domain.TypeMismatchError{Category: domain.EntitySimulationParameter, Expected: domain.TypeSimulationParameter, Actual: doc.Type}
	}
	if defaults == nil {
		return result, &domain.SchemaLoadError{Source: "simulation parameter", Err: fmt.Errorf("no schema defaults")}
	}
	a := &simApplier{ctx: ctx, model: model, defaults: defaults, result: &result}
	steps := []func(*domain.SimulationParameter) error{
		a.simulationControl,
		a.shadowCalculation,
		a.sizing,
		a.output,
		a.runPeriod,
		a.timestep,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := step(doc); err != nil {
			return result, err
		}
	}
	return result, nil
}

type simApplier struct {
	ctx      context.Context
	model    *osm.Model
	defaults *schema.Defaults
	result   *domain.Result
}

func (a *simApplier) props(typeName string) *props {
	td, err := a.defaults.For(typeName)
	return &props{td: td, first: err}
}

func (a *simApplier) simulationControl(doc *domain.SimulationParameter) error {
	rec := doc.SimulationControl
	if rec == nil {
		rec = &domain.SimulationControl{}
	}
	p := a.props(domain.TypeSimulationControl)
	sc := a.model.SimulationControl()
	sc.DoZoneSizing = p.boolean("do_zone_sizing", rec.DoZoneSizing)
	sc.DoSystemSizing = p.boolean("do_system_sizing", rec.DoSystemSizing)
	sc.DoPlantSizing = p.boolean("do_plant_sizing", rec.DoPlantSizing)
	sc.RunForWeatherFile = p.boolean("run_for_run_periods", rec.RunForRunPeriods)
	sc.RunForSizingPeriods = p.boolean("run_for_sizing_periods", rec.RunForSizingPeriods)
	return p.err()
}

// shadowCalculation also owns the solar distribution, which the engine keeps
// on the simulation control object.
func (a *simApplier) shadowCalculation(doc *domain.SimulationParameter) error {
	rec := doc.ShadowCalculation
	if rec == nil {
		rec = &domain.ShadowCalculation{}
	}
	p := a.props(domain.TypeShadowCalculation)
	distribution := p.str("solar_distribution", rec.SolarDistribution)
	method := p.str("calculation_method", rec.CalculationMethod)
	frequency := p.integer("calculation_frequency", rec.CalculationFrequency)
	figures := p.integer("maximum_figures", rec.MaximumFigures)
	if err := p.err(); err != nil {
		return err
	}
	a.model.SimulationControl().SolarDistribution = distribution
	shadow := a.model.ShadowCalculation()
	shadow.CalculationMethod = method
	shadow.CalculationFrequency = frequency
	shadow.MaximumFigures = figures
	return nil
}

func (a *simApplier) sizing(doc *domain.SimulationParameter) error {
	rec := doc.SizingParameter
	if rec == nil {
		rec = &domain.SizingParameter{}
	}
	p := a.props(domain.TypeSizingParameter)
	heating := p.float("heating_factor", rec.HeatingFactor)
	cooling := p.float("cooling_factor", rec.CoolingFactor)
	if err := p.err(); err != nil {
		return err
	}
	sizing := a.model.SizingParameters()
	sizing.HeatingSizingFactor = heating
	sizing.CoolingSizingFactor = cooling
	for _, day := range rec.DesignDays {
		if err := a.ctx.Err(); err != nil {
			return err
		}
		if err := a.designDay(day); err != nil {
			return &domain.BuildError{Category: domain.EntitySimulationParameter, Name: day.DayName(), Type: domain.TypeDesignDay, Err: err}
		}
	}
	return nil
}

func (a *simApplier) designDay(rec domain.DesignDay) error {
	name := rec.DayName()
	if name == "" {
		return &domain.MissingRequiredError{Type: domain.TypeDesignDay, Property: "name"}
	}
	p := a.props(domain.TypeDesignDay)
	dayType := p.required("day_type", rec.DayType)
	humidity := a.props("HumidityCondition")
	humidityType := humidity.required("humidity_type", rec.HumidityCondition.HumidityType)
	pressure := humidity.float("barometric_pressure", rec.HumidityCondition.BarometricPressure)
	rain := humidity.boolean("rain", rec.HumidityCondition.Rain)
	snow := humidity.boolean("snow_on_ground", rec.HumidityCondition.SnowOnGround)
	wind := a.props("WindCondition")
	direction := wind.float("wind_direction", rec.WindCondition.WindDirection)
	for _, r := range []*props{p, humidity, wind} {
		if err := r.err(); err != nil {
			return err
		}
	}

	sky := rec.SkyCondition
	day := osm.DesignDay{
		DayType:                      dayType,
		Month:                        sky.Date[0],
		DayOfMonth:                   sky.Date[1],
		MaximumDryBulbTemperature:    rec.DryBulbCondition.DryBulbMax,
		DailyDryBulbTemperatureRange: rec.DryBulbCondition.DryBulbRange,
		HumidityIndicatingType:       humidityType,
		HumidityIndicatingConditions: rec.HumidityCondition.HumidityValue,
		BarometricPressure:           pressure,
		RainIndicator:                rain,
		SnowIndicator:                snow,
		WindSpeed:                    rec.WindCondition.WindSpeed,
		WindDirection:                direction,
		SolarModelIndicator:          sky.Type,
	}
	skyProps := a.props(sky.Type)
	switch sky.Type {
	case domain.SkyASHRAEClearSky:
		day.SkyClearness = skyProps.float("clearness", sky.Clearness)
	case domain.SkyASHRAETau:
		day.TauB = skyProps.float("tau_b", sky.TauB)
		day.TauD = skyProps.float("tau_d", sky.TauD)
	default:
		return &domain.UnknownTypeError{Category: domain.EntitySimulationParameter, Name: name, Type: sky.Type}
	}
	day.DaylightSavingTimeIndicator = skyProps.boolean("daylight_savings", sky.DaylightSavings)
	if err := skyProps.err(); err != nil {
		return err
	}

	existing, err := ensureObject(a.model, name, func() *osm.DesignDay {
		return &osm.DesignDay{Base: osm.Base{Name: name}}
	})
	if err != nil {
		return err
	}
	day.Base = existing.Base
	*existing = day
	return nil
}

func (a *simApplier) output(doc *domain.SimulationParameter) error {
	rec := doc.Output
	if rec == nil {
		return nil
	}
	p := a.props(domain.TypeSimulationOutput)
	frequency := p.str("reporting_frequency", rec.ReportingFrequency)
	if err := p.err(); err != nil {
		return err
	}
	for _, name := range rec.Outputs {
		if name == "" {
			a.result.Warn(domain.EntitySimulationParameter, "output", fmt.Errorf("empty output variable name skipped"))
			continue
		}
		v, err := ensureObject(a.model, name, func() *osm.OutputVariable {
			return &osm.OutputVariable{Base: osm.Base{Name: name}}
		})
		if err != nil {
			return err
		}
		v.ReportingFrequency = frequency
	}
	return nil
}

func (a *simApplier) runPeriod(doc *domain.SimulationParameter) error {
	rec := doc.RunPeriod
	if rec == nil {
		rec = &domain.RunPeriod{}
	}
	p := a.props(domain.TypeRunPeriod)
	start := p.date("start_date", rec.StartDate)
	end := p.date("end_date", rec.EndDate)
	startDay := p.str("start_day_of_week", rec.StartDayOfWeek)
	leap := p.boolean("leap_year", rec.LeapYear)
	if err := p.err(); err != nil {
		return err
	}
	if err := checkDate(start, leap); err != nil {
		return fmt.Errorf("run period start: %w", err)
	}
	if err := checkDate(end, leap); err != nil {
		return fmt.Errorf("run period end: %w", err)
	}
	period := a.model.RunPeriod()
	period.BeginMonth, period.BeginDayOfMonth = start[0], start[1]
	period.EndMonth, period.EndDayOfMonth = end[0], end[1]
	year := a.model.YearDescription()
	year.DayOfWeekForStartDay = startDay
	year.IsLeapYear = leap

	if rec.DaylightSavingTime == nil {
		return nil
	}
	dst := a.props(domain.TypeDaylightSavingTime)
	dstStart := dst.date("start_date", &rec.DaylightSavingTime.StartDate)
	dstEnd := dst.date("end_date", &rec.DaylightSavingTime.EndDate)
	if err := dst.err(); err != nil {
		return err
	}
	saving := a.model.DaylightSavingTime()
	saving.StartMonth, saving.StartDay = dstStart[0], dstStart[1]
	saving.EndMonth, saving.EndDay = dstEnd[0], dstEnd[1]
	return nil
}

func (a *simApplier) timestep(doc *domain.SimulationParameter) error {
	p := a.props(domain.TypeSimulationParameter)
	steps := p.integer("timestep", doc.Timestep)
	if err := p.err(); err != nil {
		return err
	}
	a.model.Timestep().NumberOfTimestepsPerHour = steps
	return nil
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func checkDate(date [2]int, leap bool) error {
	month, day := date[0], date[1]
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}
	last := daysInMonth[month-1]
	if month == 2 && leap {
		last = 29
	}
	if day < 1 || day > last {
		return fmt.Errorf("day %d out of range for month %d", day, month)
	}
	return nil
}

// ensureObject returns the object of type T named name, adding the one
// built by create when the model has none. create must set the name.
func ensureObject[T osm.Object](model *osm.Model, name string, create func() T) (T, error) {
	if existing, ok := osm.Get[T](model, name); ok {
		return existing, nil
	}
	obj := create()
	if err := model.Add(obj); err != nil {
		var zero T
		return zero, fmt.Errorf("add %s %q: %w", obj.Kind(), name, err)
	}
	return obj, nil
}
