package core

import (
	"energyport/internal/osm"
	"energyport/pkg/domain"
)

func newHVACDispatcher() *Dispatcher[domain.HVAC, *osm.IdealLoadsAirSystem] {
	d := NewDispatcher[domain.HVAC, *osm.IdealLoadsAirSystem](domain.EntityHVAC)
	d.Register(domain.TypeIdealAirSystem, handle[domain.HVAC, *osm.IdealLoadsAirSystem](domain.EntityHVAC, domain.TypeIdealAirSystem, buildIdealAirSystem))
	return d
}

func buildIdealAirSystem(bc *BuildContext, rec *domain.IdealAirSystemAbridged) (*osm.IdealLoadsAirSystem, error) {
	return findOrCreate(bc, domain.EntityHVAC, rec.RecordName(), func() (*osm.IdealLoadsAirSystem, error) {
		p := bc.props(rec.Type)
		sys := &osm.IdealLoadsAirSystem{
			Base:                               osm.Base{Name: rec.RecordName()},
			EconomizerType:                     p.str("economizer_type", rec.EconomizerType),
			SensibleHeatRecoveryEffectiveness:  p.float("sensible_heat_recovery", rec.SensibleHeatRecovery),
			LatentHeatRecoveryEffectiveness:    p.float("latent_heat_recovery", rec.LatentHeatRecovery),
			MaximumHeatingSupplyAirTemperature: p.float("heating_air_temperature", rec.HeatingAirTemperature),
			MinimumCoolingSupplyAirTemperature: p.float("cooling_air_temperature", rec.CoolingAirTemperature),
		}
		sys.DemandControlledVentilationType = osm.VentilationNone
		if p.boolean("demand_controlled_ventilation", rec.DemandControlledVentilation) {
			sys.DemandControlledVentilationType = osm.VentilationOccupancySchedule
		}
		switch {
		case sys.LatentHeatRecoveryEffectiveness > 0:
			sys.HeatRecoveryType = osm.HeatRecoveryEnthalpy
		case sys.SensibleHeatRecoveryEffectiveness > 0:
			sys.HeatRecoveryType = osm.HeatRecoverySensible
		default:
			sys.HeatRecoveryType = osm.HeatRecoveryNone
		}
		return sys, p.err()
	})
}

// hvacMembers maps each HVAC name to the rooms that reference it, in room
// order.
func hvacMembers(rooms []*domain.Room) (map[string][]string, []string) {
	members := map[string][]string{}
	var order []string
	for _, room := range rooms {
		if room == nil {
			continue
		}
		ref := room.Energy().HVAC
		if ref == nil || *ref == "" {
			continue
		}
		if _, seen := members[*ref]; !seen {
			order = append(order, *ref)
		}
		members[*ref] = append(members[*ref], room.RecordName())
	}
	return members, order
}

// attachHVAC connects a system to the zone of every member room. A room
// whose zone cannot be found is skipped with a warning.
func attachHVAC(bc *BuildContext, sys *osm.IdealLoadsAirSystem, rooms []string) {
	for _, room := range rooms {
		zone, ok := zoneOf(bc, room)
		if !ok {
			bc.unresolved(domain.EntityHVAC, sys.Name, "rooms", domain.EntityRoom, room)
			continue
		}
		sys.AddToThermalZone(zone)
	}
}

func zoneOf(bc *BuildContext, room string) (*osm.ThermalZone, bool) {
	obj, ok := bc.registry.Find(domain.EntityRoom, room)
	if !ok {
		return nil, false
	}
	space, ok := obj.(*osm.Space)
	if !ok {
		return nil, false
	}
	return space.ThermalZone.Get()
}
