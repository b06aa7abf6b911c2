package domain

// Schedule discriminants.
const (
	TypeScheduleRuleset       = "ScheduleRulesetAbridged"
	TypeScheduleFixedInterval = "ScheduleFixedIntervalAbridged"
	TypeScheduleTypeLimit     = "ScheduleTypeLimit"
	TypeScheduleDay           = "ScheduleDay"
	TypeScheduleRule          = "ScheduleRuleAbridged"
)

// ScheduleTypes lists every schedule discriminant understood by the decoder.
func ScheduleTypes() []string {
	return []string{TypeScheduleRuleset, TypeScheduleFixedInterval}
}

// Schedule is the closed set of schedule records.
type Schedule interface {
	Record
	isSchedule()
}

// ScheduleTypeLimit bounds and classifies the values of a schedule.
type ScheduleTypeLimit struct {
	Base
	LowerLimit  *NumberOr `json:"lower_limit,omitempty"`
	UpperLimit  *NumberOr `json:"upper_limit,omitempty"`
	NumericType *string   `json:"numeric_type,omitempty"`
	UnitType    *string   `json:"unit_type,omitempty"`
}

// ScheduleDay is a named 24 hour profile. Times are [hour, minute] pairs
// marking the start of each value.
type ScheduleDay struct {
	Type        string    `json:"type,omitempty"`
	Name        string    `json:"name,omitempty"`
	Identifier  string    `json:"identifier,omitempty"`
	Values      []float64 `json:"values"`
	Times       [][2]int  `json:"times,omitempty"`
	Interpolate *bool     `json:"interpolate,omitempty"`
}

// DayName returns the name of the day profile, honouring the identifier alias.
func (d ScheduleDay) DayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Identifier
}

// ScheduleRuleAbridged applies a day profile to selected weekdays in a date range.
type ScheduleRuleAbridged struct {
	Type           string  `json:"type,omitempty"`
	ScheduleDay    string  `json:"schedule_day"`
	ApplySunday    *bool   `json:"apply_sunday,omitempty"`
	ApplyMonday    *bool   `json:"apply_monday,omitempty"`
	ApplyTuesday   *bool   `json:"apply_tuesday,omitempty"`
	ApplyWednesday *bool   `json:"apply_wednesday,omitempty"`
	ApplyThursday  *bool   `json:"apply_thursday,omitempty"`
	ApplyFriday    *bool   `json:"apply_friday,omitempty"`
	ApplySaturday  *bool   `json:"apply_saturday,omitempty"`
	StartDate      *[2]int `json:"start_date,omitempty"`
	EndDate        *[2]int `json:"end_date,omitempty"`
}

// ScheduleRulesetAbridged is a rule based schedule referencing its type limit by name.
type ScheduleRulesetAbridged struct {
	Base
	DaySchedules       []ScheduleDay          `json:"day_schedules"`
	DefaultDaySchedule string                 `json:"default_day_schedule"`
	ScheduleRules      []ScheduleRuleAbridged `json:"schedule_rules,omitempty"`
	HolidaySchedule    *string                `json:"holiday_schedule,omitempty"`
	SummerDesignday    *string                `json:"summer_designday_schedule,omitempty"`
	WinterDesignday    *string                `json:"winter_designday_schedule,omitempty"`
	ScheduleTypeLimit  *string                `json:"schedule_type_limit,omitempty"`
}

// ScheduleFixedIntervalAbridged is a list of values at a fixed timestep.
type ScheduleFixedIntervalAbridged struct {
	Base
	Values            []float64 `json:"values"`
	Timestep          *int      `json:"timestep,omitempty"`
	StartDate         *[2]int   `json:"start_date,omitempty"`
	Interpolate       *bool     `json:"interpolate,omitempty"`
	ScheduleTypeLimit *string   `json:"schedule_type_limit,omitempty"`
}

func (*ScheduleRulesetAbridged) isSchedule()       {}
func (*ScheduleFixedIntervalAbridged) isSchedule() {}
