package core

import (
	"energyport/internal/osm"
	"energyport/pkg/domain"
)

// applySetpoint gives a zone its thermostat and humidistat. An explicit room
// setpoint wins; otherwise the setpoint of the room's program is used and the
// resulting controls are marked internal, since they belong to the program
// rather than the room.
func applySetpoint(bc *BuildContext, zone *osm.ThermalZone, room string, energy domain.RoomEnergyProperties, setpoints map[string]*domain.Setpoint) error {
	sp, derived := energy.Setpoint, false
	if sp == nil {
		if energy.ProgramType == nil {
			return nil
		}
		inherited, ok := setpoints[*energy.ProgramType]
		if !ok {
			return nil
		}
		sp, derived = inherited, true
	}
	name := sp.RecordName()
	if name == "" {
		if derived {
			name = programSetpointName(*energy.ProgramType)
		} else {
			name = room + " Setpoint"
		}
	}
	if sp.Type != "" && sp.Type != domain.TypeSetpoint {
		return &domain.TypeMismatchError{Category: domain.EntitySetpoint, Name: name, Expected: domain.TypeSetpoint, Actual: sp.Type}
	}

	thermostat, err := findOrCreate(bc, domain.EntitySetpoint, name, func() (*osm.Thermostat, error) {
		p := bc.props(domain.TypeSetpoint)
		heating := p.required("heating_schedule", sp.HeatingSchedule)
		cooling := p.required("cooling_schedule", sp.CoolingSchedule)
		if err := p.err(); err != nil {
			return nil, err
		}
		t := &osm.Thermostat{
			Base:    osm.Base{Name: name, Internal: derived},
			Heating: link[osm.Schedule](bc, domain.EntitySetpoint, name, "heating_schedule", domain.EntitySchedule, &heating),
			Cooling: link[osm.Schedule](bc, domain.EntitySetpoint, name, "cooling_schedule", domain.EntitySchedule, &cooling),
		}
		return t, nil
	})
	if err != nil {
		return err
	}
	zone.Thermostat = osm.RefTo(thermostat)

	if !sp.HasHumidistat() {
		return nil
	}
	humidistat, err := ensure(bc, name, func() *osm.Humidistat {
		return &osm.Humidistat{
			Base:          osm.Base{Name: name, Internal: derived},
			Humidifying:   link[osm.Schedule](bc, domain.EntitySetpoint, name, "humidifying_schedule", domain.EntitySchedule, sp.HumidifyingSchedule),
			Dehumidifying: link[osm.Schedule](bc, domain.EntitySetpoint, name, "dehumidifying_schedule", domain.EntitySchedule, sp.DehumidifyingSchedule),
		}
	})
	if err != nil {
		return err
	}
	zone.Humidistat = osm.RefTo(humidistat)
	return nil
}

func programSetpointName(program string) string { return program + " Setpoint" }

// spaceTypeSetpoint is the copy of a program setpoint kept on its space type,
// so programs that no room uses still carry it.
func spaceTypeSetpoint(program string, sp *domain.Setpoint) *osm.ProgramSetpoint {
	out := &osm.ProgramSetpoint{
		Name:    sp.RecordName(),
		Heating: sp.HeatingSchedule,
		Cooling: sp.CoolingSchedule,
	}
	if out.Name == "" {
		out.Name = programSetpointName(program)
	}
	if sp.HumidifyingSchedule != nil {
		out.Humidifying = *sp.HumidifyingSchedule
	}
	if sp.DehumidifyingSchedule != nil {
		out.Dehumidifying = *sp.DehumidifyingSchedule
	}
	return out
}
