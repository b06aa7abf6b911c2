package osm

// Schedule is a time series referenced by loads, setpoints, and shades.
type Schedule interface {
	Object
	TypeLimits() (*ScheduleTypeLimits, bool)
}

// ScheduleKinds lists the kinds whose objects implement Schedule.
func ScheduleKinds() []Kind {
	return []Kind{KindScheduleRuleset, KindScheduleFixedInterval}
}

// LookupSchedule finds a schedule of any kind by name.
func (m *Model) LookupSchedule(name string) (Schedule, bool) {
	for _, kind := range ScheduleKinds() {
		if obj, ok := m.Lookup(kind, name); ok {
			sch, ok := obj.(Schedule)
			return sch, ok
		}
	}
	return nil, false
}

// ScheduleTypeLimits bounds the values of the schedules that use it. Nil
// limits are unbounded.
type ScheduleTypeLimits struct {
	Base
	LowerLimit  *float64 `json:"lower_limit,omitempty"`
	UpperLimit  *float64 `json:"upper_limit,omitempty"`
	NumericType string   `json:"numeric_type,omitempty"`
	UnitType    string   `json:"unit_type,omitempty"`
}

// ScheduleDay is a 24 hour profile owned by a ruleset. Times holds the
// (hour, minute) at which each value starts.
type ScheduleDay struct {
	Name        string    `json:"name"`
	Values      []float64 `json:"values"`
	Times       [][2]int  `json:"times"`
	Interpolate bool      `json:"interpolate"`
}

// ScheduleRule applies a day profile to a date range and set of weekdays.
type ScheduleRule struct {
	Day        string `json:"day"`
	Sunday     bool   `json:"sunday"`
	Monday     bool   `json:"monday"`
	Tuesday    bool   `json:"tuesday"`
	Wednesday  bool   `json:"wednesday"`
	Thursday   bool   `json:"thursday"`
	Friday     bool   `json:"friday"`
	Saturday   bool   `json:"saturday"`
	StartMonth int    `json:"start_month"`
	StartDay   int    `json:"start_day"`
	EndMonth   int    `json:"end_month"`
	EndDay     int    `json:"end_day"`
}

// ScheduleRuleset is a schedule built from day profiles and the rules that
// select them. Rules are ordered by priority, highest first.
type ScheduleRuleset struct {
	Base
	Limits          Ref[*ScheduleTypeLimits] `json:"limits"`
	Days            []ScheduleDay            `json:"days"`
	DefaultDay      string                   `json:"default_day"`
	Rules           []ScheduleRule           `json:"rules,omitempty"`
	SummerDesignDay string                   `json:"summer_design_day,omitempty"`
	WinterDesignDay string                   `json:"winter_design_day,omitempty"`
	HolidayDay      string                   `json:"holiday_day,omitempty"`
}

// Day returns the named day profile.
func (s *ScheduleRuleset) Day(name string) (*ScheduleDay, bool) {
	for i := range s.Days {
		if s.Days[i].Name == name {
			return &s.Days[i], true
		}
	}
	return nil, false
}

// TypeLimits returns the limits of the schedule, if any.
func (s *ScheduleRuleset) TypeLimits() (*ScheduleTypeLimits, bool) { return s.Limits.Get() }

func (s *ScheduleRuleset) references() []resolver { return []resolver{&s.Limits} }

// ScheduleFixedInterval is a schedule of evenly spaced values starting at a
// given date.
type ScheduleFixedInterval struct {
	Base
	Limits          Ref[*ScheduleTypeLimits] `json:"limits"`
	IntervalMinutes int                      `json:"interval_minutes"`
	StartMonth      int                      `json:"start_month"`
	StartDay        int                      `json:"start_day"`
	Values          []float64                `json:"values"`
	Interpolate     bool                     `json:"interpolate"`
}

// TypeLimits returns the limits of the schedule, if any.
func (s *ScheduleFixedInterval) TypeLimits() (*ScheduleTypeLimits, bool) { return s.Limits.Get() }

func (s *ScheduleFixedInterval) references() []resolver { return []resolver{&s.Limits} }

func (*ScheduleTypeLimits) Kind() Kind    { return KindScheduleTypeLimits }
func (*ScheduleRuleset) Kind() Kind       { return KindScheduleRuleset }
func (*ScheduleFixedInterval) Kind() Kind { return KindScheduleFixedInterval }
