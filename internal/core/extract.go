package core

import (
	"fmt"
	"slices"

	"energyport/internal/osm"
	"energyport/pkg/domain"
)

// Document-level values written by Extract. Engine models are always held in
// meters.
const (
	extractedUnits          = "Meters"
	extractedTolerance      = 0.01
	extractedAngleTolerance = 1.0
)

// Extract walks an engine model and rebuilds the model document it
// represents. Internal objects, which have no document form, are skipped.
func Extract(m *osm.Model) (*domain.Model, domain.Result) {
	x := &extractor{model: m}
	building := m.Building()
	name := building.Name
	if name == "" {
		name = "Unnamed"
	}
	doc := &domain.Model{
		Base:           domain.Base{Type: domain.TypeModel, Name: name},
		NorthAngle:     domain.Float(building.NorthAxis),
		Units:          domain.String(extractedUnits),
		Tolerance:      domain.Float(extractedTolerance),
		AngleTolerance: domain.Float(extractedAngleTolerance),
	}
	energy := &domain.ModelEnergyProperties{Type: "ModelEnergyProperties"}
	if terrain := m.Site().TerrainType; terrain != "" {
		energy.TerrainType = domain.String(terrain)
	}
	if set, ok := building.DefaultConstructionSet.Get(); ok {
		energy.GlobalConstructionSet = domain.String(set.Name)
	}
	energy.Materials = x.materials()
	energy.Constructions = x.constructions()
	energy.ConstructionSets = x.constructionSets()
	energy.ScheduleTypeLimits = x.scheduleTypeLimits()
	energy.Schedules = x.schedules()
	energy.ProgramTypes = x.programTypes()
	energy.HVACs = x.hvacs()
	doc.Properties = &domain.ModelProperties{Type: "ModelProperties", Energy: energy}
	doc.Rooms = x.rooms()
	doc.OrphanedShades = x.orphanedShades()
	return doc, x.result
}

type extractor struct {
	model  *osm.Model
	result domain.Result
}

func (x *extractor) materials() []domain.Material {
	var out []domain.Material
	for _, kind := range osm.MaterialKinds() {
		for _, obj := range x.model.Objects(kind) {
			if internal(obj) {
				continue
			}
			if rec := extractMaterial(obj); rec != nil {
				out = append(out, rec)
			}
		}
	}
	return out
}

func extractMaterial(obj osm.Object) domain.Material {
	switch m := obj.(type) {
	case *osm.StandardOpaqueMaterial:
		return &domain.EnergyMaterial{
			Base:               record(domain.TypeEnergyMaterial, m.Name),
			Roughness:          domain.String(m.Roughness),
			Thickness:          domain.Float(m.Thickness),
			Conductivity:       domain.Float(m.Conductivity),
			Density:            domain.Float(m.Density),
			SpecificHeat:       domain.Float(m.SpecificHeat),
			ThermalAbsorptance: domain.Float(m.ThermalAbsorptance),
			SolarAbsorptance:   domain.Float(m.SolarAbsorptance),
			VisibleAbsorptance: domain.Float(m.VisibleAbsorptance),
		}
	case *osm.MasslessOpaqueMaterial:
		return &domain.EnergyMaterialNoMass{
			Base:               record(domain.TypeEnergyMaterialNoMass, m.Name),
			RValue:             domain.Float(m.ThermalResistance),
			Roughness:          domain.String(m.Roughness),
			ThermalAbsorptance: domain.Float(m.ThermalAbsorptance),
			SolarAbsorptance:   domain.Float(m.SolarAbsorptance),
			VisibleAbsorptance: domain.Float(m.VisibleAbsorptance),
		}
	case *osm.Gas:
		if m.GasType == osm.GasTypeCustom && m.Custom != nil {
			c := m.Custom
			return &domain.EnergyWindowMaterialGasCustom{
				Base:               record(domain.TypeEnergyWindowMaterialGasCustom, m.Name),
				Thickness:          domain.Float(m.Thickness),
				ConductivityCoeffA: domain.Float(c.ConductivityCoefficientA),
				ConductivityCoeffB: domain.Float(c.ConductivityCoefficientB),
				ConductivityCoeffC: domain.Float(c.ConductivityCoefficientC),
				ViscosityCoeffA:    domain.Float(c.ViscosityCoefficientA),
				ViscosityCoeffB:    domain.Float(c.ViscosityCoefficientB),
				ViscosityCoeffC:    domain.Float(c.ViscosityCoefficientC),
				SpecificHeatCoeffA: domain.Float(c.SpecificHeatCoefficientA),
				SpecificHeatCoeffB: domain.Float(c.SpecificHeatCoefficientB),
				SpecificHeatCoeffC: domain.Float(c.SpecificHeatCoefficientC),
				SpecificHeatRatio:  domain.Float(c.SpecificHeatRatio),
				MolecularWeight:    domain.Float(c.MolecularWeight),
			}
		}
		return &domain.EnergyWindowMaterialGas{
			Base:      record(domain.TypeEnergyWindowMaterialGas, m.Name),
			Thickness: domain.Float(m.Thickness),
			GasType:   domain.String(m.GasType),
		}
	case *osm.GasMixture:
		rec := &domain.EnergyWindowMaterialGasMixture{
			Base:      record(domain.TypeEnergyWindowMaterialGasMixture, m.Name),
			Thickness: domain.Float(m.Thickness),
		}
		for _, gas := range m.Gases {
			rec.GasTypes = append(rec.GasTypes, gas.GasType)
			rec.GasFractions = append(rec.GasFractions, gas.Fraction)
		}
		return rec
	case *osm.SimpleGlazing:
		return &domain.EnergyWindowMaterialSimpleGlazSys{
			Base:    record(domain.TypeEnergyWindowMaterialSimpleGlazSys, m.Name),
			UFactor: domain.Float(m.UFactor),
			SHGC:    domain.Float(m.SolarHeatGainCoefficient),
			VT:      domain.Float(m.VisibleTransmittance),
		}
	case *osm.StandardGlazing:
		diffusing := "No"
		if m.SolarDiffusing {
			diffusing = "Yes"
		}
		return &domain.EnergyWindowMaterialGlazing{
			Base:                   record(domain.TypeEnergyWindowMaterialGlazing, m.Name),
			Thickness:              domain.Float(m.Thickness),
			SolarTransmittance:     domain.Float(m.SolarTransmittance),
			SolarReflectance:       domain.Float(m.FrontSideSolarReflectance),
			SolarReflectanceBack:   domain.Float(m.BackSideSolarReflectance),
			VisibleTransmittance:   domain.Float(m.VisibleTransmittance),
			VisibleReflectance:     domain.Float(m.FrontSideVisibleReflectance),
			VisibleReflectanceBack: domain.Float(m.BackSideVisibleReflectance),
			InfraredTransmittance:  domain.Float(m.InfraredTransmittance),
			Emissivity:             domain.Float(m.FrontSideInfraredHemisphericalEmissivity),
			EmissivityBack:         domain.Float(m.BackSideInfraredHemisphericalEmissivity),
			Conductivity:           domain.Float(m.Conductivity),
			DirtCorrection:         domain.Float(m.DirtCorrectionFactor),
			SolarDiffusing:         domain.String(diffusing),
		}
	case *osm.Blind:
		return &domain.EnergyWindowMaterialBlind{
			Base:                          record(domain.TypeEnergyWindowMaterialBlind, m.Name),
			SlatOrientation:               domain.String(m.SlatOrientation),
			SlatWidth:                     domain.Float(m.SlatWidth),
			SlatSeparation:                domain.Float(m.SlatSeparation),
			SlatThickness:                 domain.Float(m.SlatThickness),
			SlatAngle:                     domain.Float(m.SlatAngle),
			SlatConductivity:              domain.Float(m.SlatConductivity),
			BeamSolarTransmittance:        domain.Float(m.SlatBeamSolarTransmittance),
			BeamSolarReflectance:          domain.Float(m.FrontSideSlatBeamSolarReflectance),
			BeamSolarReflectanceBack:      domain.Float(m.BackSideSlatBeamSolarReflectance),
			DiffuseSolarTransmittance:     domain.Float(m.SlatDiffuseSolarTransmittance),
			DiffuseSolarReflectance:       domain.Float(m.FrontSideSlatDiffuseSolarReflectance),
			DiffuseSolarReflectanceBack:   domain.Float(m.BackSideSlatDiffuseSolarReflectance),
			BeamVisibleTransmittance:      domain.Float(m.SlatBeamVisibleTransmittance),
			BeamVisibleReflectance:        domain.Float(m.FrontSideSlatBeamVisibleReflectance),
			BeamVisibleReflectanceBack:    domain.Float(m.BackSideSlatBeamVisibleReflectance),
			DiffuseVisibleTransmittance:   domain.Float(m.SlatDiffuseVisibleTransmittance),
			DiffuseVisibleReflectance:     domain.Float(m.FrontSideSlatDiffuseVisibleReflectance),
			DiffuseVisibleReflectanceBack: domain.Float(m.BackSideSlatDiffuseVisibleReflectance),
			InfraredTransmittance:         domain.Float(m.SlatInfraredTransmittance),
			Emissivity:                    domain.Float(m.FrontSideSlatInfraredEmissivity),
			EmissivityBack:                domain.Float(m.BackSideSlatInfraredEmissivity),
			DistanceToGlass:               domain.Float(m.BlindToGlassDistance),
			TopOpeningMultiplier:          domain.Float(m.TopOpeningMultiplier),
			BottomOpeningMultiplier:       domain.Float(m.BottomOpeningMultiplier),
			LeftOpeningMultiplier:         domain.Float(m.LeftOpeningMultiplier),
			RightOpeningMultiplier:        domain.Float(m.RightOpeningMultiplier),
		}
	case *osm.WindowShade:
		return &domain.EnergyWindowMaterialShade{
			Base:                    record(domain.TypeEnergyWindowMaterialShade, m.Name),
			SolarTransmittance:      domain.Float(m.SolarTransmittance),
			SolarReflectance:        domain.Float(m.SolarReflectance),
			VisibleTransmittance:    domain.Float(m.VisibleTransmittance),
			VisibleReflectance:      domain.Float(m.VisibleReflectance),
			InfraredTransmittance:   domain.Float(m.ThermalTransmittance),
			Emissivity:              domain.Float(m.ThermalHemisphericalEmissivity),
			Thickness:               domain.Float(m.Thickness),
			Conductivity:            domain.Float(m.Conductivity),
			DistanceToGlass:         domain.Float(m.ShadeToGlassDistance),
			TopOpeningMultiplier:    domain.Float(m.TopOpeningMultiplier),
			BottomOpeningMultiplier: domain.Float(m.BottomOpeningMultiplier),
			LeftOpeningMultiplier:   domain.Float(m.LeftOpeningMultiplier),
			RightOpeningMultiplier:  domain.Float(m.RightOpeningMultiplier),
			AirflowPermeability:     domain.Float(m.AirflowPermeability),
		}
	}
	return nil
}

func (x *extractor) constructions() []domain.Construction {
	var out []domain.Construction
	for _, c := range osm.All[*osm.Construction](x.model) {
		if c.Internal {
			continue
		}
		if c.Fenestration() {
			out = append(out, &domain.WindowConstructionAbridged{Base: record(domain.TypeWindowConstruction, c.Name), Layers: c.LayerNames()})
			continue
		}
		out = append(out, &domain.OpaqueConstructionAbridged{Base: record(domain.TypeOpaqueConstruction, c.Name), Layers: c.LayerNames()})
	}
	for _, c := range osm.All[*osm.ShadingConstruction](x.model) {
		if c.Internal {
			continue
		}
		out = append(out, &domain.ShadeConstruction{
			Base:               record(domain.TypeShadeConstruction, c.Name),
			SolarReflectance:   domain.Float(c.SolarReflectance),
			VisibleReflectance: domain.Float(c.VisibleReflectance),
			IsSpecular:         domain.Bool(c.IsSpecular),
		})
	}
	return out
}

func (x *extractor) constructionSets() []*domain.ConstructionSet {
	var out []*domain.ConstructionSet
	for _, set := range osm.All[*osm.DefaultConstructionSet](x.model) {
		if set.Internal {
			continue
		}
		rec := &domain.ConstructionSet{
			Base:              record(domain.TypeConstructionSet, set.Name),
			WallSet:           surfaceSet("WallConstructionSetAbridged", set.ExteriorSurfaces.Wall, set.InteriorSurfaces.Wall, set.GroundContactSurfaces.Wall),
			FloorSet:          surfaceSet("FloorConstructionSetAbridged", set.ExteriorSurfaces.Floor, set.InteriorSurfaces.Floor, set.GroundContactSurfaces.Floor),
			RoofCeilingSet:    surfaceSet("RoofCeilingConstructionSetAbridged", set.ExteriorSurfaces.RoofCeiling, set.InteriorSurfaces.RoofCeiling, set.GroundContactSurfaces.RoofCeiling),
			ShadeConstruction: refName(set.Shading),
		}
		ext, in := set.ExteriorSubSurfaces, set.InteriorSubSurfaces
		aperture := &domain.ApertureConstructionSet{
			Type:                 "ApertureConstructionSetAbridged",
			WindowConstruction:   refName(ext.FixedWindow),
			OperableConstruction: refName(ext.OperableWindow),
			SkylightConstruction: refName(ext.Skylight),
			InteriorConstruction: refName(in.FixedWindow),
		}
		if aperture.WindowConstruction != nil || aperture.OperableConstruction != nil || aperture.SkylightConstruction != nil || aperture.InteriorConstruction != nil {
			rec.ApertureSet = aperture
		}
		door := &domain.DoorConstructionSet{
			Type:                      "DoorConstructionSetAbridged",
			ExteriorConstruction:      refName(ext.Door),
			InteriorConstruction:      refName(in.Door),
			ExteriorGlassConstruction: refName(ext.GlassDoor),
			InteriorGlassConstruction: refName(in.GlassDoor),
			OverheadConstruction:      refName(ext.OverheadDoor),
		}
		if door.ExteriorConstruction != nil || door.InteriorConstruction != nil || door.ExteriorGlassConstruction != nil ||
			door.InteriorGlassConstruction != nil || door.OverheadConstruction != nil {
			rec.DoorSet = door
		}
		out = append(out, rec)
	}
	return out
}

func surfaceSet(typeName string, exterior, interior, ground osm.Ref[*osm.Construction]) *domain.SurfaceConstructionSet {
	if !exterior.IsSet() && !interior.IsSet() && !ground.IsSet() {
		return nil
	}
	return &domain.SurfaceConstructionSet{
		Type:                 typeName,
		ExteriorConstruction: refName(exterior),
		InteriorConstruction: refName(interior),
		GroundConstruction:   refName(ground),
	}
}

func (x *extractor) scheduleTypeLimits() []*domain.ScheduleTypeLimit {
	var out []*domain.ScheduleTypeLimit
	for _, l := range osm.All[*osm.ScheduleTypeLimits](x.model) {
		if l.Internal {
			continue
		}
		rec := &domain.ScheduleTypeLimit{Base: record(domain.TypeScheduleTypeLimit, l.Name)}
		if l.LowerLimit != nil {
			rec.LowerLimit = domain.Number(*l.LowerLimit)
		}
		if l.UpperLimit != nil {
			rec.UpperLimit = domain.Number(*l.UpperLimit)
		}
		if l.NumericType != "" {
			rec.NumericType = domain.String(l.NumericType)
		}
		if l.UnitType != "" {
			rec.UnitType = domain.String(l.UnitType)
		}
		out = append(out, rec)
	}
	return out
}

func (x *extractor) schedules() []domain.Schedule {
	var out []domain.Schedule
	for _, s := range osm.All[*osm.ScheduleRuleset](x.model) {
		if s.Internal {
			continue
		}
		rec := &domain.ScheduleRulesetAbridged{
			Base:               record(domain.TypeScheduleRuleset, s.Name),
			DefaultDaySchedule: s.DefaultDay,
			ScheduleTypeLimit:  refName(s.Limits),
			SummerDesignday:    optional(s.SummerDesignDay),
			WinterDesignday:    optional(s.WinterDesignDay),
			HolidaySchedule:    optional(s.HolidayDay),
		}
		for _, day := range s.Days {
			rec.DaySchedules = append(rec.DaySchedules, domain.ScheduleDay{
				Type:        domain.TypeScheduleDay,
				Name:        day.Name,
				Values:      day.Values,
				Times:       day.Times,
				Interpolate: domain.Bool(day.Interpolate),
			})
		}
		for _, rule := range s.Rules {
			start, end := [2]int{rule.StartMonth, rule.StartDay}, [2]int{rule.EndMonth, rule.EndDay}
			rec.ScheduleRules = append(rec.ScheduleRules, domain.ScheduleRuleAbridged{
				Type:           domain.TypeScheduleRule,
				ScheduleDay:    rule.Day,
				ApplySunday:    domain.Bool(rule.Sunday),
				ApplyMonday:    domain.Bool(rule.Monday),
				ApplyTuesday:   domain.Bool(rule.Tuesday),
				ApplyWednesday: domain.Bool(rule.Wednesday),
				ApplyThursday:  domain.Bool(rule.Thursday),
				ApplyFriday:    domain.Bool(rule.Friday),
				ApplySaturday:  domain.Bool(rule.Saturday),
				StartDate:      &start,
				EndDate:        &end,
			})
		}
		out = append(out, rec)
	}
	for _, s := range osm.All[*osm.ScheduleFixedInterval](x.model) {
		if s.Internal {
			continue
		}
		start := [2]int{s.StartMonth, s.StartDay}
		rec := &domain.ScheduleFixedIntervalAbridged{
			Base:              record(domain.TypeScheduleFixedInterval, s.Name),
			Values:            s.Values,
			StartDate:         &start,
			Interpolate:       domain.Bool(s.Interpolate),
			ScheduleTypeLimit: refName(s.Limits),
		}
		if s.IntervalMinutes > 0 {
			rec.Timestep = domain.Int(60 / s.IntervalMinutes)
		} else {
			x.result.Warn(domain.EntitySchedule, s.Name, fmt.Errorf("interval of %d minutes has no timestep", s.IntervalMinutes))
		}
		out = append(out, rec)
	}
	return out
}

func (x *extractor) programTypes() []*domain.ProgramType {
	var out []*domain.ProgramType
	for _, st := range osm.All[*osm.SpaceType](x.model) {
		if st.Internal {
			continue
		}
		rec := &domain.ProgramType{Base: record(domain.TypeProgramType, st.Name)}
		if p := st.People; p != nil {
			rec.People = &domain.People{
				Base:              record(domain.TypePeople, p.Name),
				PeoplePerArea:     domain.Float(p.PeoplePerFloorArea),
				OccupancySchedule: p.Schedule.Name(),
				ActivitySchedule:  refName(p.ActivitySchedule),
				RadiantFraction:   domain.Float(p.FractionRadiant),
			}
			if p.LatentFraction != nil {
				rec.People.LatentFraction = domain.Number(*p.LatentFraction)
			} else {
				rec.People.LatentFraction = domain.Keyword(domain.KeywordAutocalculate)
			}
		}
		if l := st.Lights; l != nil {
			rec.Lighting = &domain.Lighting{
				Base:              record(domain.TypeLighting, l.Name),
				WattsPerArea:      domain.Float(l.WattsPerFloorArea),
				Schedule:          l.Schedule.Name(),
				ReturnAirFraction: domain.Float(l.ReturnAirFraction),
				RadiantFraction:   domain.Float(l.FractionRadiant),
				VisibleFraction:   domain.Float(l.FractionVisible),
			}
		}
		rec.ElectricEquipment = extractEquipment(domain.TypeElectricEquipment, st.ElectricEquipment)
		rec.GasEquipment = extractEquipment(domain.TypeGasEquipment, st.GasEquipment)
		if inf := st.Infiltration; inf != nil {
			rec.Infiltration = &domain.Infiltration{
				Base:                   record(domain.TypeInfiltration, inf.Name),
				FlowPerExteriorArea:    domain.Float(inf.FlowPerExteriorSurfaceArea),
				Schedule:               inf.Schedule.Name(),
				ConstantCoefficient:    domain.Float(inf.ConstantTermCoefficient),
				TemperatureCoefficient: domain.Float(inf.TemperatureTermCoefficient),
				VelocityCoefficient:    domain.Float(inf.VelocityTermCoefficient),
			}
		}
		if v := st.Ventilation; v != nil {
			rec.Ventilation = &domain.Ventilation{
				Base:              record(domain.TypeVentilation, v.Name),
				FlowPerPerson:     domain.Float(v.OutdoorAirFlowPerPerson),
				FlowPerArea:       domain.Float(v.OutdoorAirFlowPerArea),
				AirChangesPerHour: domain.Float(v.AirChangesPerHour),
				FlowPerZone:       domain.Float(v.OutdoorAirFlowRate),
				Schedule:          refName(v.Schedule),
			}
		}
		rec.Setpoint = x.programSetpoint(st)
		out = append(out, rec)
	}
	return out
}

func extractEquipment(typeName string, eq *osm.Equipment) *domain.Equipment {
	if eq == nil {
		return nil
	}
	return &domain.Equipment{
		Base:            record(typeName, eq.Name),
		WattsPerArea:    domain.Float(eq.WattsPerFloorArea),
		Schedule:        eq.Schedule.Name(),
		RadiantFraction: domain.Float(eq.FractionRadiant),
		LatentFraction:  domain.Float(eq.FractionLatent),
		LostFraction:    domain.Float(eq.FractionLost),
	}
}

// programSetpoint returns the setpoint kept on a space type. Space types
// without one fall back to the internal thermostat of any zone whose space
// uses them.
func (x *extractor) programSetpoint(st *osm.SpaceType) *domain.Setpoint {
	if ps := st.Setpoint; ps != nil {
		return &domain.Setpoint{
			Base:                  record(domain.TypeSetpoint, ps.Name),
			HeatingSchedule:       ps.Heating,
			CoolingSchedule:       ps.Cooling,
			HumidifyingSchedule:   optional(ps.Humidifying),
			DehumidifyingSchedule: optional(ps.Dehumidifying),
		}
	}
	for _, space := range osm.All[*osm.Space](x.model) {
		if !space.SpaceType.Is(st) {
			continue
		}
		zone, ok := space.ThermalZone.Get()
		if !ok {
			continue
		}
		if t, ok := zone.Thermostat.Get(); ok && t.Internal {
			return zoneSetpoint(zone, t)
		}
	}
	return nil
}

func zoneSetpoint(zone *osm.ThermalZone, t *osm.Thermostat) *domain.Setpoint {
	sp := &domain.Setpoint{
		Base:            record(domain.TypeSetpoint, t.Name),
		HeatingSchedule: t.Heating.Name(),
		CoolingSchedule: t.Cooling.Name(),
	}
	if h, ok := zone.Humidistat.Get(); ok {
		sp.HumidifyingSchedule = refName(h.Humidifying)
		sp.DehumidifyingSchedule = refName(h.Dehumidifying)
	}
	return sp
}

func (x *extractor) hvacs() []domain.HVAC {
	var out []domain.HVAC
	for _, sys := range osm.All[*osm.IdealLoadsAirSystem](x.model) {
		if sys.Internal {
			continue
		}
		out = append(out, &domain.IdealAirSystemAbridged{
			Base:                        record(domain.TypeIdealAirSystem, sys.Name),
			EconomizerType:              domain.String(sys.EconomizerType),
			DemandControlledVentilation: domain.Bool(sys.DemandControlledVentilationType == osm.VentilationOccupancySchedule),
			SensibleHeatRecovery:        domain.Float(sys.SensibleHeatRecoveryEffectiveness),
			LatentHeatRecovery:          domain.Float(sys.LatentHeatRecoveryEffectiveness),
			HeatingAirTemperature:       domain.Float(sys.MaximumHeatingSupplyAirTemperature),
			CoolingAirTemperature:       domain.Float(sys.MinimumCoolingSupplyAirTemperature),
		})
	}
	return out
}

func (x *extractor) rooms() []*domain.Room {
	var out []*domain.Room
	for _, space := range osm.All[*osm.Space](x.model) {
		if space.Internal {
			continue
		}
		room := &domain.Room{Base: record(domain.TypeRoom, space.Name)}
		energy := &domain.RoomEnergyProperties{
			Type:            "RoomEnergyPropertiesAbridged",
			ConstructionSet: refName(space.ConstructionSet),
			ProgramType:     refName(space.SpaceType),
		}
		if zone, ok := space.ThermalZone.Get(); ok {
			room.Multiplier = domain.Int(zone.Multiplier)
			if t, ok := zone.Thermostat.Get(); ok && !t.Internal {
				energy.Setpoint = zoneSetpoint(zone, t)
			}
			if equipment := x.model.ZoneEquipment(zone); len(equipment) > 0 {
				energy.HVAC = domain.String(equipment[0].Name)
				if len(equipment) > 1 {
					x.result.Warn(domain.EntityRoom, space.Name, fmt.Errorf("zone %q has %d HVAC systems; only %q is kept", zone.Name, len(equipment), equipment[0].Name))
				}
			}
		} else {
			x.result.Warn(domain.EntityRoom, space.Name, fmt.Errorf("space has no thermal zone"))
		}
		room.Properties = &domain.RoomProperties{Type: "RoomPropertiesAbridged", Energy: energy}
		for _, surface := range x.model.SurfacesOf(space) {
			if !surface.Internal {
				room.Faces = append(room.Faces, x.face(surface))
			}
		}
		room.OutdoorShades, room.IndoorShades = x.spaceShades(space, nil)
		out = append(out, room)
	}
	return out
}

func (x *extractor) face(surface *osm.Surface) *domain.Face {
	face := &domain.Face{
		Base:              record(domain.TypeFace, surface.Name),
		FaceType:          surface.SurfaceType,
		Geometry:          face3D(surface.Vertices),
		BoundaryCondition: boundaryCondition(surface),
		Properties:        surfaceProperties(surface.Construction),
	}
	for _, sub := range x.model.SubSurfacesOf(surface) {
		if sub.Internal {
			continue
		}
		if sub.IsDoor() {
			face.Doors = append(face.Doors, &domain.Door{
				Base:              record(domain.TypeDoor, sub.Name),
				Geometry:          face3D(sub.Vertices),
				BoundaryCondition: face.BoundaryCondition,
				IsGlass:           domain.Bool(sub.IsGlass || sub.SubSurfaceType == osm.SubSurfaceGlassDoor),
				Properties:        surfaceProperties(sub.Construction),
			})
			continue
		}
		face.Apertures = append(face.Apertures, &domain.Aperture{
			Base:              record(domain.TypeAperture, sub.Name),
			Geometry:          face3D(sub.Vertices),
			BoundaryCondition: face.BoundaryCondition,
			IsOperable:        domain.Bool(sub.IsOperable || sub.SubSurfaceType == osm.SubSurfaceOperableWindow),
			Properties:        surfaceProperties(sub.Construction),
		})
	}
	if space, ok := surface.Space.Get(); ok {
		face.OutdoorShades, face.IndoorShades = x.spaceShades(space, surface)
	}
	return face
}

// spaceShades returns the outdoor and indoor shades of a space that hang on
// parent, or on the space itself when parent is nil.
func (x *extractor) spaceShades(space *osm.Space, parent *osm.Surface) (outdoor, indoor []*domain.Shade) {
	for _, group := range osm.All[*osm.ShadingSurfaceGroup](x.model) {
		if group.Internal || group.ShadingSurfaceType != osm.ShadingSpace || !group.Space.Is(space) {
			continue
		}
		shades := x.shades(group, func(s *osm.ShadingSurface) bool {
			if parent == nil {
				return !s.ParentSurface.IsSet()
			}
			return s.ParentSurface.Is(parent)
		})
		if group.Interior {
			indoor = append(indoor, shades...)
		} else {
			outdoor = append(outdoor, shades...)
		}
	}
	return outdoor, indoor
}

func boundaryCondition(surface *osm.Surface) domain.BoundaryCondition {
	switch surface.OutsideBoundaryCondition {
	case osm.BoundaryOutdoors:
		cond := domain.BoundaryCondition{
			Type:         domain.BoundaryOutdoors,
			SunExposure:  domain.Bool(surface.SunExposed),
			WindExposure: domain.Bool(surface.WindExposed),
		}
		if surface.ViewFactorToGroundAutocalculated() {
			cond.ViewFactor = domain.Keyword(domain.KeywordAutocalculate)
		} else {
			cond.ViewFactor = domain.Number(*surface.ViewFactorToGround)
		}
		return cond
	case osm.BoundarySurface:
		cond := domain.BoundaryCondition{Type: domain.BoundarySurface}
		if adjacent, ok := surface.AdjacentSurface.Get(); ok {
			cond.BoundaryConditionObjects = []string{adjacent.Name}
			if space, ok := adjacent.Space.Get(); ok {
				cond.BoundaryConditionObjects = append(cond.BoundaryConditionObjects, space.Name)
			}
		} else if len(surface.BoundaryObjects) > 0 {
			cond.BoundaryConditionObjects = slices.Clone(surface.BoundaryObjects)
		}
		return cond
	}
	return domain.BoundaryCondition{Type: surface.OutsideBoundaryCondition}
}

func (x *extractor) orphanedShades() []*domain.Shade {
	var out []*domain.Shade
	for _, group := range osm.All[*osm.ShadingSurfaceGroup](x.model) {
		if group.Internal {
			continue
		}
		if group.ShadingSurfaceType == osm.ShadingSite || group.ShadingSurfaceType == osm.ShadingBuilding {
			out = append(out, x.shades(group, nil)...)
		}
	}
	return out
}

// shades converts the shading surfaces of a group accepted by keep. A nil
// keep accepts every surface.
func (x *extractor) shades(group *osm.ShadingSurfaceGroup, keep func(*osm.ShadingSurface) bool) []*domain.Shade {
	var out []*domain.Shade
	for _, s := range x.model.ShadingSurfacesOf(group) {
		if s.Internal || (keep != nil && !keep(s)) {
			continue
		}
		shade := &domain.Shade{Base: record(domain.TypeShade, s.Name), Geometry: face3D(s.Vertices)}
		if s.Construction.IsSet() || s.TransmittanceSchedule.IsSet() {
			shade.Properties = &domain.ShadeProperties{
				Type: "ShadePropertiesAbridged",
				Energy: &domain.ShadeEnergyProperties{
					Type:                  "ShadeEnergyPropertiesAbridged",
					Construction:          refName(s.Construction),
					TransmittanceSchedule: refName(s.TransmittanceSchedule),
				},
			}
		}
		out = append(out, shade)
	}
	return out
}

func record(typeName, name string) domain.Base {
	return domain.Base{Type: typeName, Name: name}
}

func internal(obj osm.Object) bool {
	type flagged interface{ IsInternal() bool }
	if f, ok := obj.(flagged); ok {
		return f.IsInternal()
	}
	return false
}

func refName[T osm.Object](ref osm.Ref[T]) *string {
	if !ref.IsSet() {
		return nil
	}
	return domain.String(ref.Name())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func face3D(points []osm.Point) domain.Face3D {
	out := domain.Face3D{Type: "Face3D", Boundary: make([]domain.Point3D, 0, len(points))}
	for _, pt := range points {
		out.Boundary = append(out.Boundary, domain.Point3D(pt))
	}
	return out
}

func surfaceProperties(ref osm.Ref[*osm.Construction]) *domain.SurfaceProperties {
	if !ref.IsSet() {
		return nil
	}
	return &domain.SurfaceProperties{
		Type:   "SurfacePropertiesAbridged",
		Energy: &domain.SurfaceEnergyProperties{Type: "SurfaceEnergyPropertiesAbridged", Construction: refName(ref)},
	}
}
