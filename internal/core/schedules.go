package core

import (
	"fmt"

	"energyport/internal/osm"
	"energyport/pkg/domain"
)

func newScheduleDispatcher() *Dispatcher[domain.Schedule, osm.Schedule] {
	d := NewDispatcher[domain.Schedule, osm.Schedule](domain.EntitySchedule)
	d.Register(domain.TypeScheduleRuleset, handle[domain.Schedule, osm.Schedule](domain.EntitySchedule, domain.TypeScheduleRuleset, buildScheduleRuleset))
	d.Register(domain.TypeScheduleFixedInterval, handle[domain.Schedule, osm.Schedule](domain.EntitySchedule, domain.TypeScheduleFixedInterval, buildScheduleFixedInterval))
	return d
}

func buildScheduleTypeLimit(bc *BuildContext, rec *domain.ScheduleTypeLimit) (*osm.ScheduleTypeLimits, error) {
	if err := checkRecord(domain.EntityScheduleTypeLimit, rec, domain.TypeScheduleTypeLimit); err != nil {
		return nil, err
	}
	return findOrCreate(bc, domain.EntityScheduleTypeLimit, rec.RecordName(), func() (*osm.ScheduleTypeLimits, error) {
		lower, err := limitValue(rec.Type, "lower_limit", rec.LowerLimit)
		if err != nil {
			return nil, err
		}
		upper, err := limitValue(rec.Type, "upper_limit", rec.UpperLimit)
		if err != nil {
			return nil, err
		}
		p := bc.props(rec.Type)
		limits := &osm.ScheduleTypeLimits{
			Base:        osm.Base{Name: rec.RecordName()},
			LowerLimit:  lower,
			UpperLimit:  upper,
			NumericType: p.str("numeric_type", rec.NumericType),
			UnitType:    p.str("unit_type", rec.UnitType),
		}
		return limits, p.err()
	})
}

// limitValue returns nil for an absent bound or the NoLimit keyword.
func limitValue(typeName, field string, n *domain.NumberOr) (*float64, error) {
	if n == nil {
		return nil, nil
	}
	if v, ok := n.Float(); ok {
		return &v, nil
	}
	if n.Keyword == "" || n.Keyword == domain.KeywordNoLimit {
		return nil, nil
	}
	return nil, &domain.InvalidEnumValueError{Type: typeName, Field: field, Value: n.Keyword, Allowed: []string{domain.KeywordNoLimit}}
}

func buildScheduleRuleset(bc *BuildContext, rec *domain.ScheduleRulesetAbridged) (*osm.ScheduleRuleset, error) {
	name := rec.RecordName()
	return findOrCreate(bc, domain.EntitySchedule, name, func() (*osm.ScheduleRuleset, error) {
		if len(rec.DaySchedules) == 0 {
			return nil, &domain.MissingRequiredError{Type: rec.Type, Property: "day_schedules"}
		}
		sch := &osm.ScheduleRuleset{
			Base:   osm.Base{Name: name},
			Limits: link[*osm.ScheduleTypeLimits](bc, domain.EntitySchedule, name, "schedule_type_limit", domain.EntityScheduleTypeLimit, rec.ScheduleTypeLimit),
		}
		for _, day := range rec.DaySchedules {
			built, err := buildScheduleDay(bc, name, day)
			if err != nil {
				return nil, err
			}
			sch.Days = append(sch.Days, built)
		}

		if _, ok := sch.Day(rec.DefaultDaySchedule); ok {
			sch.DefaultDay = rec.DefaultDaySchedule
		} else {
			bc.unresolved(domain.EntitySchedule, name, "default_day_schedule", domain.EntitySchedule, rec.DefaultDaySchedule)
			sch.DefaultDay = sch.Days[0].Name
		}

		for _, rule := range rec.ScheduleRules {
			if _, ok := sch.Day(rule.ScheduleDay); !ok {
				bc.unresolved(domain.EntitySchedule, name, "schedule_rules.schedule_day", domain.EntitySchedule, rule.ScheduleDay)
				continue
			}
			built, err := buildScheduleRule(bc, rule)
			if err != nil {
				return nil, err
			}
			sch.Rules = append(sch.Rules, built)
		}

		sch.SummerDesignDay = dayRef(bc, sch, "summer_designday_schedule", rec.SummerDesignday)
		sch.WinterDesignDay = dayRef(bc, sch, "winter_designday_schedule", rec.WinterDesignday)
		sch.HolidayDay = dayRef(bc, sch, "holiday_schedule", rec.HolidaySchedule)
		return sch, nil
	})
}

func buildScheduleDay(bc *BuildContext, schedule string, day domain.ScheduleDay) (osm.ScheduleDay, error) {
	if day.DayName() == "" {
		return osm.ScheduleDay{}, &domain.MissingRequiredError{Type: domain.TypeScheduleDay, Property: "identifier"}
	}
	if day.Values == nil {
		return osm.ScheduleDay{}, &domain.MissingRequiredError{Type: domain.TypeScheduleDay, Property: "values"}
	}
	p := bc.props(domain.TypeScheduleDay)
	out := osm.ScheduleDay{
		Name:        day.DayName(),
		Values:      day.Values,
		Times:       p.times("times", day.Times),
		Interpolate: p.boolean("interpolate", day.Interpolate),
	}
	if err := p.err(); err != nil {
		return osm.ScheduleDay{}, err
	}
	if len(out.Times) != len(out.Values) {
		return osm.ScheduleDay{}, fmt.Errorf("schedule %q day %q: %d values but %d times", schedule, out.Name, len(out.Values), len(out.Times))
	}
	return out, nil
}

func buildScheduleRule(bc *BuildContext, rule domain.ScheduleRuleAbridged) (osm.ScheduleRule, error) {
	p := bc.props(domain.TypeScheduleRule)
	start := p.date("start_date", rule.StartDate)
	end := p.date("end_date", rule.EndDate)
	out := osm.ScheduleRule{
		Day:        rule.ScheduleDay,
		Sunday:     p.boolean("apply_sunday", rule.ApplySunday),
		Monday:     p.boolean("apply_monday", rule.ApplyMonday),
		Tuesday:    p.boolean("apply_tuesday", rule.ApplyTuesday),
		Wednesday:  p.boolean("apply_wednesday", rule.ApplyWednesday),
		Thursday:   p.boolean("apply_thursday", rule.ApplyThursday),
		Friday:     p.boolean("apply_friday", rule.ApplyFriday),
		Saturday:   p.boolean("apply_saturday", rule.ApplySaturday),
		StartMonth: start[0],
		StartDay:   start[1],
		EndMonth:   end[0],
		EndDay:     end[1],
	}
	return out, p.err()
}

// dayRef returns the named day when the ruleset has it. An unknown name is
// dropped with a warning.
func dayRef(bc *BuildContext, sch *osm.ScheduleRuleset, field string, ref *string) string {
	if ref == nil || *ref == "" {
		return ""
	}
	if _, ok := sch.Day(*ref); !ok {
		bc.unresolved(domain.EntitySchedule, sch.Name, field, domain.EntitySchedule, *ref)
		return ""
	}
	return *ref
}

func buildScheduleFixedInterval(bc *BuildContext, rec *domain.ScheduleFixedIntervalAbridged) (*osm.ScheduleFixedInterval, error) {
	name := rec.RecordName()
	return findOrCreate(bc, domain.EntitySchedule, name, func() (*osm.ScheduleFixedInterval, error) {
		if len(rec.Values) == 0 {
			return nil, &domain.MissingRequiredError{Type: rec.Type, Property: "values"}
		}
		p := bc.props(rec.Type)
		timestep := p.integer("timestep", rec.Timestep)
		start := p.date("start_date", rec.StartDate)
		interpolate := p.boolean("interpolate", rec.Interpolate)
		if err := p.err(); err != nil {
			return nil, err
		}
		if timestep <= 0 {
			return nil, &domain.InvalidEnumValueError{Type: rec.Type, Field: "timestep", Value: fmt.Sprint(timestep)}
		}
		sch := &osm.ScheduleFixedInterval{
			Base:            osm.Base{Name: name},
			Limits:          link[*osm.ScheduleTypeLimits](bc, domain.EntitySchedule, name, "schedule_type_limit", domain.EntityScheduleTypeLimit, rec.ScheduleTypeLimit),
			IntervalMinutes: 60 / timestep,
			StartMonth:      start[0],
			StartDay:        start[1],
			Values:          rec.Values,
			Interpolate:     interpolate,
		}
		return sch, nil
	})
}
