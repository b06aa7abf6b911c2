package core

import (
	"energyport/internal/osm"
	"energyport/pkg/domain"
)

// buildProgramType creates the space type of a program. The program setpoint
// is not part of the space type; the room phase receives it separately.
func buildProgramType(bc *BuildContext, rec *domain.ProgramType) (*osm.SpaceType, error) {
	if err := checkRecord(domain.EntityProgramType, rec, domain.TypeProgramType); err != nil {
		return nil, err
	}
	name := rec.RecordName()
	return findOrCreate(bc, domain.EntityProgramType, name, func() (*osm.SpaceType, error) {
		st := &osm.SpaceType{Base: osm.Base{Name: name}}
		schedule := func(field, ref string) osm.Ref[osm.Schedule] {
			return link[osm.Schedule](bc, domain.EntityProgramType, name, field, domain.EntitySchedule, &ref)
		}

		if ppl := rec.People; ppl != nil {
			p := bc.props(domain.TypePeople)
			st.People = &osm.People{
				Name:               loadName(ppl.Base, name, "People"),
				PeoplePerFloorArea: p.float("people_per_area", ppl.PeoplePerArea),
				Schedule:           schedule("people.occupancy_schedule", p.required("occupancy_schedule", ppl.OccupancySchedule)),
				FractionRadiant:    p.float("radiant_fraction", ppl.RadiantFraction),
			}
			if ppl.ActivitySchedule != nil {
				st.People.ActivitySchedule = schedule("people.activity_schedule", *ppl.ActivitySchedule)
			}
			if v, ok := ppl.LatentFraction.Float(); ok {
				st.People.LatentFraction = &v
			}
			if err := p.err(); err != nil {
				return nil, err
			}
		}

		if light := rec.Lighting; light != nil {
			p := bc.props(domain.TypeLighting)
			st.Lights = &osm.Lights{
				Name:              loadName(light.Base, name, "Lighting"),
				WattsPerFloorArea: p.float("watts_per_area", light.WattsPerArea),
				Schedule:          schedule("lighting.schedule", p.required("schedule", light.Schedule)),
				ReturnAirFraction: p.float("return_air_fraction", light.ReturnAirFraction),
				FractionRadiant:   p.float("radiant_fraction", light.RadiantFraction),
				FractionVisible:   p.float("visible_fraction", light.VisibleFraction),
			}
			if err := p.err(); err != nil {
				return nil, err
			}
		}

		var err error
		if st.ElectricEquipment, err = buildEquipment(bc, name, domain.TypeElectricEquipment, "electric_equipment", "Electric Equipment", rec.ElectricEquipment, schedule); err != nil {
			return nil, err
		}
		if st.GasEquipment, err = buildEquipment(bc, name, domain.TypeGasEquipment, "gas_equipment", "Gas Equipment", rec.GasEquipment, schedule); err != nil {
			return nil, err
		}

		if inf := rec.Infiltration; inf != nil {
			p := bc.props(domain.TypeInfiltration)
			st.Infiltration = &osm.Infiltration{
				Name:                       loadName(inf.Base, name, "Infiltration"),
				FlowPerExteriorSurfaceArea: p.float("flow_per_exterior_area", inf.FlowPerExteriorArea),
				Schedule:                   schedule("infiltration.schedule", p.required("schedule", inf.Schedule)),
				ConstantTermCoefficient:    p.float("constant_coefficient", inf.ConstantCoefficient),
				TemperatureTermCoefficient: p.float("temperature_coefficient", inf.TemperatureCoefficient),
				VelocityTermCoefficient:    p.float("velocity_coefficient", inf.VelocityCoefficient),
			}
			if err := p.err(); err != nil {
				return nil, err
			}
		}

		if vent := rec.Ventilation; vent != nil {
			p := bc.props(domain.TypeVentilation)
			st.Ventilation = &osm.Ventilation{
				Name:                    loadName(vent.Base, name, "Ventilation"),
				OutdoorAirFlowPerPerson: p.float("flow_per_person", vent.FlowPerPerson),
				OutdoorAirFlowPerArea:   p.float("flow_per_area", vent.FlowPerArea),
				AirChangesPerHour:       p.float("air_changes_per_hour", vent.AirChangesPerHour),
				OutdoorAirFlowRate:      p.float("flow_per_zone", vent.FlowPerZone),
			}
			if vent.Schedule != nil {
				st.Ventilation.Schedule = schedule("ventilation.schedule", *vent.Schedule)
			}
			if err := p.err(); err != nil {
				return nil, err
			}
		}
		return st, nil
	})
}

func buildEquipment(bc *BuildContext, program, typeName, field, suffix string, rec *domain.Equipment, schedule func(string, string) osm.Ref[osm.Schedule]) (*osm.Equipment, error) {
	if rec == nil {
		return nil, nil
	}
	if rec.Type != "" && rec.Type != typeName {
		return nil, &domain.TypeMismatchError{Category: domain.EntityProgramType, Name: program, Expected: typeName, Actual: rec.Type}
	}
	p := bc.props(typeName)
	eq := &osm.Equipment{
		Name:              loadName(rec.Base, program, suffix),
		WattsPerFloorArea: p.float("watts_per_area", rec.WattsPerArea),
		Schedule:          schedule(field+".schedule", p.required("schedule", rec.Schedule)),
		FractionRadiant:   p.float("radiant_fraction", rec.RadiantFraction),
		FractionLatent:    p.float("latent_fraction", rec.LatentFraction),
		FractionLost:      p.float("lost_fraction", rec.LostFraction),
	}
	return eq, p.err()
}

// loadName names a load after its record, or after its program when the
// record carries no name.
func loadName(rec domain.Base, program, suffix string) string {
	if name := rec.RecordName(); name != "" {
		return name
	}
	return program + " " + suffix
}
