package core

import (
	"context"
	"errors"
	"testing"

	"energyport/internal/osm"
	"energyport/pkg/domain"
)

func TestBuildFixtureWarnsOnlyForMissingLayer(t *testing.T) {
	_, res := buildFixture(t)
	warnings := res.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %d:\n%s", len(warnings), res)
	}
	unresolved := res.Unresolved()
	if len(unresolved) != 1 {
		t.Fatalf("expected one unresolved reference, got %d", len(unresolved))
	}
	ref := unresolved[0]
	if ref.Category != domain.EntityConstruction || ref.Name != "Ext Wall" || ref.Reference != "Missing Insulation" {
		t.Fatalf("unexpected unresolved reference %+v", ref)
	}
	if !errors.Is(warnings[0].Err, domain.ErrUnresolvedReference) {
		t.Fatalf("expected unresolved reference sentinel, got %v", warnings[0].Err)
	}
}

func TestBuildFixtureAppliesSchemaDefaults(t *testing.T) {
	model, _ := buildFixture(t)

	brick := mustGet[*osm.StandardOpaqueMaterial](t, model, "Brick")
	if brick.Roughness != "MediumRough" || brick.ThermalAbsorptance != 0.9 {
		t.Fatalf("expected brick defaults, got roughness=%q absorptance=%v", brick.Roughness, brick.ThermalAbsorptance)
	}
	if brick.Thickness != 0.1 || brick.Density != 1900 {
		t.Fatalf("expected explicit brick values, got %+v", brick)
	}

	glass := mustGet[*osm.StandardGlazing](t, model, "Clear Glass")
	if glass.Thickness != 0.003 {
		t.Fatalf("expected default glazing thickness, got %v", glass.Thickness)
	}
	gap := mustGet[*osm.Gas](t, model, "Air Gap")
	if gap.GasType != "Air" || gap.Thickness != 0.0127 {
		t.Fatalf("unexpected gas layer %+v", gap)
	}

	overhang := mustGet[*osm.ShadingConstruction](t, model, "Overhang")
	if overhang.SolarReflectance != 0.35 || overhang.VisibleReflectance != 0.2 {
		t.Fatalf("unexpected shade construction %+v", overhang)
	}

	air := mustGet[*osm.IdealLoadsAirSystem](t, model, "Ideal Air")
	if air.EconomizerType != "DifferentialDryBulb" {
		t.Fatalf("expected default economizer, got %q", air.EconomizerType)
	}
	if air.MaximumHeatingSupplyAirTemperature != 50 || air.MinimumCoolingSupplyAirTemperature != 13 {
		t.Fatalf("unexpected supply air temperatures %+v", air)
	}
	if air.DemandControlledVentilationType != osm.VentilationOccupancySchedule {
		t.Fatalf("expected demand controlled ventilation, got %q", air.DemandControlledVentilationType)
	}
	if air.HeatRecoveryType != osm.HeatRecoveryNone {
		t.Fatalf("expected no heat recovery, got %q", air.HeatRecoveryType)
	}

	if got := model.Site().TerrainType; got != "City" {
		t.Fatalf("expected City terrain, got %q", got)
	}
	building := model.Building()
	if building.NorthAxis != 0 || building.Name != "Two Room Office" {
		t.Fatalf("unexpected building %+v", building)
	}
	if building.DefaultConstructionSet.Name() != "Office Set" {
		t.Fatalf("expected global construction set, got %q", building.DefaultConstructionSet.Name())
	}
}

func TestBuildFixtureConstructionsAndSchedules(t *testing.T) {
	model, _ := buildFixture(t)

	wall := mustGet[*osm.Construction](t, model, "Ext Wall")
	if got := wall.LayerNames(); len(got) != 1 || got[0] != "Brick" {
		t.Fatalf("expected unresolved layer to be dropped, got %v", got)
	}
	pane := mustGet[*osm.Construction](t, model, "Double Pane")
	if got := pane.LayerNames(); len(got) != 3 || got[1] != "Air Gap" {
		t.Fatalf("unexpected window layers %v", got)
	}
	if !pane.Fenestration() || wall.Fenestration() {
		t.Fatal("expected only the window construction to be fenestration")
	}

	set := mustGet[*osm.DefaultConstructionSet](t, model, "Office Set")
	if set.ExteriorSurfaces.Wall.Name() != "Ext Wall" {
		t.Fatalf("expected exterior wall slot, got %q", set.ExteriorSurfaces.Wall.Name())
	}
	if set.ExteriorSubSurfaces.FixedWindow.Name() != "Double Pane" {
		t.Fatalf("expected window slot, got %q", set.ExteriorSubSurfaces.FixedWindow.Name())
	}

	temperature := mustGet[*osm.ScheduleTypeLimits](t, model, "Temperature")
	if temperature.LowerLimit != nil || temperature.UpperLimit != nil {
		t.Fatalf("expected NoLimit bounds to be unbounded, got %+v", temperature)
	}
	fractional := mustGet[*osm.ScheduleTypeLimits](t, model, "Fractional")
	if fractional.UpperLimit == nil || *fractional.UpperLimit != 1 || fractional.NumericType != "Continuous" {
		t.Fatalf("unexpected fractional limits %+v", fractional)
	}

	occupancy := mustGet[*osm.ScheduleRuleset](t, model, "Occupancy")
	if occupancy.DefaultDay != "Occ Off" || len(occupancy.Days) != 2 {
		t.Fatalf("unexpected ruleset %+v", occupancy)
	}
	off, ok := occupancy.Day("Occ Off")
	if !ok || len(off.Times) != 1 || off.Times[0] != [2]int{0, 0} {
		t.Fatalf("expected default day times, got %+v", off)
	}
	if len(occupancy.Rules) != 1 {
		t.Fatalf("expected one rule, got %d", len(occupancy.Rules))
	}
	rule := occupancy.Rules[0]
	if !rule.Monday || !rule.Friday || rule.Sunday || rule.EndMonth != 12 || rule.EndDay != 31 {
		t.Fatalf("unexpected rule %+v", rule)
	}

	cooling := mustGet[*osm.ScheduleFixedInterval](t, model, "Cooling SP")
	if cooling.IntervalMinutes != 15 || cooling.StartMonth != 1 || cooling.StartDay != 1 {
		t.Fatalf("unexpected fixed interval schedule %+v", cooling)
	}
}

func TestBuildFixtureRoomsAndZones(t *testing.T) {
	model, _ := buildFixture(t)

	roomA := mustGet[*osm.Space](t, model, "Room A")
	roomB := mustGet[*osm.Space](t, model, "Room B")
	if roomA.SpaceType.Name() != "Office Program" || roomA.ConstructionSet.Name() != "Office Set" {
		t.Fatalf("unexpected room A links %+v", roomA)
	}
	zoneA, ok := roomA.ThermalZone.Get()
	if !ok || zoneA.Multiplier != 1 {
		t.Fatalf("expected room A zone with default multiplier, got %+v", zoneA)
	}
	zoneB, ok := roomB.ThermalZone.Get()
	if !ok || zoneB.Multiplier != 2 {
		t.Fatalf("expected room B zone with multiplier 2, got %+v", zoneB)
	}

	programStat, ok := zoneA.Thermostat.Get()
	if !ok || programStat.Name != "Office Setpoint" || !programStat.IsInternal() {
		t.Fatalf("expected internal program thermostat on room A, got %+v", programStat)
	}
	roomStat, ok := zoneB.Thermostat.Get()
	if !ok || roomStat.Name != "B Setpoint" || roomStat.IsInternal() {
		t.Fatalf("expected explicit thermostat on room B, got %+v", roomStat)
	}
	if roomStat.Heating.Name() != "Heating SP" || roomStat.Cooling.Name() != "Cooling SP" {
		t.Fatalf("unexpected thermostat schedules %+v", roomStat)
	}

	air := mustGet[*osm.IdealLoadsAirSystem](t, model, "Ideal Air")
	if len(air.Zones) != 2 || !air.Serves(zoneA) || !air.Serves(zoneB) {
		t.Fatalf("expected ideal air to serve both zones, got %d zones", len(air.Zones))
	}
	if got := model.ZoneEquipment(zoneB); len(got) != 1 || got[0] != air {
		t.Fatalf("unexpected zone equipment %v", got)
	}

	office := mustGet[*osm.SpaceType](t, model, "Office Program")
	if office.People == nil || office.People.LatentFraction != nil || office.People.FractionRadiant != 0.3 {
		t.Fatalf("unexpected people load %+v", office.People)
	}
	if office.Lights == nil || office.Lights.Schedule.Name() != "Occupancy" || office.Lights.FractionVisible != 0.25 {
		t.Fatalf("unexpected lighting load %+v", office.Lights)
	}
}

func TestBuildFixtureSurfaces(t *testing.T) {
	model, _ := buildFixture(t)

	wall := mustGet[*osm.Surface](t, model, "A Wall")
	if !wall.SunExposed || !wall.WindExposed || !wall.ViewFactorToGroundAutocalculated() {
		t.Fatalf("unexpected outdoor wall %+v", wall)
	}
	roof := mustGet[*osm.Surface](t, model, "A Roof")
	if roof.ViewFactorToGround == nil || *roof.ViewFactorToGround != 0.3 {
		t.Fatalf("expected fixed view factor, got %v", roof.ViewFactorToGround)
	}
	floor := mustGet[*osm.Surface](t, model, "A Floor")
	if floor.OutsideBoundaryCondition != osm.BoundaryGround || floor.SunExposed {
		t.Fatalf("unexpected ground floor %+v", floor)
	}
	if got := mustGet[*osm.Surface](t, model, "B Floor").OutsideBoundaryCondition; got != osm.BoundaryAdiabatic {
		t.Fatalf("expected adiabatic floor, got %q", got)
	}

	partyA := mustGet[*osm.Surface](t, model, "A Party")
	partyB := mustGet[*osm.Surface](t, model, "B Party")
	if !partyA.AdjacentSurface.Is(partyB) || !partyB.AdjacentSurface.Is(partyA) {
		t.Fatal("expected party walls to reference each other")
	}
	if partyA.OutsideBoundaryCondition != osm.BoundarySurface || partyA.SunExposed {
		t.Fatalf("unexpected party wall %+v", partyA)
	}

	subTypes := map[string]string{
		"A Window":   osm.SubSurfaceOperableWindow,
		"A Door":     osm.SubSurfaceDoor,
		"A Skylight": osm.SubSurfaceSkylight,
		"B Hatch":    osm.SubSurfaceOverheadDoor,
	}
	for name, want := range subTypes {
		t.Run(name, func(t *testing.T) {
			sub := mustGet[*osm.SubSurface](t, model, name)
			if sub.SubSurfaceType != want {
				t.Fatalf("expected %s, got %s", want, sub.SubSurfaceType)
			}
		})
	}
	if got := model.SubSurfacesOf(wall); len(got) != 2 {
		t.Fatalf("expected two sub-surfaces on A Wall, got %d", len(got))
	}

	fins := mustGet[*osm.ShadingSurfaceGroup](t, model, "Room A Outdoor Shades")
	if fins.ShadingSurfaceType != osm.ShadingSpace || !fins.Space.Is(mustGet[*osm.Space](t, model, "Room A")) {
		t.Fatalf("unexpected room shading group %+v", fins)
	}
	fin := mustGet[*osm.ShadingSurface](t, model, "A Fin")
	if fin.Construction.Name() != "Overhang" || !fin.Group.Is(fins) {
		t.Fatalf("unexpected fin %+v", fin)
	}
	building := mustGet[*osm.ShadingSurfaceGroup](t, model, "Building Shades")
	if building.ShadingSurfaceType != osm.ShadingBuilding {
		t.Fatalf("unexpected building shading group %+v", building)
	}
	if got := model.ShadingSurfacesOf(building); len(got) != 1 || got[0].Name != "Tree" {
		t.Fatalf("expected the orphaned tree shade, got %v", got)
	}
}

func TestBuildIntoTwiceIsIdempotent(t *testing.T) {
	b := testBuilder(t)
	doc := loadFixture(t, "two_rooms.json")
	model := osm.NewModel()
	ctx := context.Background()

	if _, err := b.BuildInto(ctx, model, doc); err != nil {
		t.Fatalf("first build: %v", err)
	}
	before := kindCounts(model)
	total := model.Len()
	handle := mustGet[*osm.Surface](t, model, "A Wall").Handle

	if _, err := b.BuildInto(ctx, model, doc); err != nil {
		t.Fatalf("second build: %v", err)
	}
	if model.Len() != total {
		t.Fatalf("expected %d objects after rebuild, got %d", total, model.Len())
	}
	after := kindCounts(model)
	for kind, n := range before {
		if after[kind] != n {
			t.Fatalf("kind %s: expected %d objects, got %d", kind, n, after[kind])
		}
	}
	if got := mustGet[*osm.Surface](t, model, "A Wall").Handle; got != handle {
		t.Fatalf("expected surface handle to be kept, got %s want %s", got, handle)
	}
	air := mustGet[*osm.IdealLoadsAirSystem](t, model, "Ideal Air")
	if len(air.Zones) != 2 {
		t.Fatalf("expected rebuild to keep two served zones, got %d", len(air.Zones))
	}
}

func TestBuildRejectsOrphanedGeometry(t *testing.T) {
	doc := minimalModel()
	doc.OrphanedFaces = []*domain.Face{{Base: domain.Base{Type: domain.TypeFace, Name: "Loose"}}}

	_, _, err := testBuilder(t).Build(context.Background(), doc)
	if !errors.Is(err, domain.ErrUnsupportedEntity) {
		t.Fatalf("expected unsupported entity error, got %v", err)
	}
	var built *domain.BuildError
	if !errors.As(err, &built) || built.Phase != PhaseOrphanedGeometry {
		t.Fatalf("expected failure in %s phase, got %+v", PhaseOrphanedGeometry, built)
	}
	var unsupported *domain.UnsupportedEntityError
	if !errors.As(err, &unsupported) || unsupported.Count != 1 {
		t.Fatalf("expected count of orphaned faces, got %+v", unsupported)
	}
}

func TestBuildFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Model)
		target error
		phase  string
	}{
		{
			name: "duplicate name across kinds",
			mutate: func(doc *domain.Model) {
				doc.Properties = &domain.ModelProperties{Energy: &domain.ModelEnergyProperties{
					Materials: []domain.Material{
						&domain.EnergyMaterialNoMass{Base: domain.Base{Type: domain.TypeEnergyMaterialNoMass, Name: "Layer"}, RValue: domain.Float(1)},
						&domain.EnergyMaterial{Base: domain.Base{Type: domain.TypeEnergyMaterial, Name: "Layer"}, Thickness: domain.Float(0.1), Conductivity: domain.Float(1), Density: domain.Float(1), SpecificHeat: domain.Float(1)},
					},
				}}
			},
			target: domain.ErrDuplicateName,
			phase:  PhaseMaterials,
		},
		{
			name: "invalid enum",
			mutate: func(doc *domain.Model) {
				doc.Properties = &domain.ModelProperties{Energy: &domain.ModelEnergyProperties{
					Materials: []domain.Material{
						&domain.EnergyMaterial{Base: domain.Base{Type: domain.TypeEnergyMaterial, Name: "Rough"}, Roughness: domain.String("Sandpaper"), Thickness: domain.Float(0.1), Conductivity: domain.Float(1), Density: domain.Float(1), SpecificHeat: domain.Float(1)},
					},
				}}
			},
			target: domain.ErrInvalidEnumValue,
			phase:  PhaseMaterials,
		},
		{
			name: "missing required",
			mutate: func(doc *domain.Model) {
				doc.Properties = &domain.ModelProperties{Energy: &domain.ModelEnergyProperties{
					Materials: []domain.Material{
						&domain.EnergyMaterial{Base: domain.Base{Type: domain.TypeEnergyMaterial, Name: "Thin"}},
					},
				}}
			},
			target: domain.ErrMissingRequired,
			phase:  PhaseMaterials,
		},
		{
			name: "type mismatch",
			mutate: func(doc *domain.Model) {
				doc.Properties = &domain.ModelProperties{Energy: &domain.ModelEnergyProperties{
					Materials: []domain.Material{
						&domain.EnergyMaterial{Base: domain.Base{Type: domain.TypeEnergyMaterialNoMass, Name: "Liar"}},
					},
				}}
			},
			target: domain.ErrTypeMismatch,
			phase:  PhaseMaterials,
		},
		{
			name: "unknown face type",
			mutate: func(doc *domain.Model) {
				doc.Rooms[0].Faces[0].FaceType = ""
			},
			target: domain.ErrMissingRequired,
			phase:  PhaseRooms,
		},
		{
			name: "invalid view factor keyword",
			mutate: func(doc *domain.Model) {
				doc.Rooms[0].Faces[0].BoundaryCondition.ViewFactor = domain.Keyword("Sometimes")
			},
			target: domain.ErrInvalidEnumValue,
			phase:  PhaseRooms,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := minimalModel()
			tc.mutate(doc)
			_, _, err := testBuilder(t).Build(context.Background(), doc)
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
			var built *domain.BuildError
			if !errors.As(err, &built) || built.Phase != tc.phase {
				t.Fatalf("expected failure in %s phase, got %+v", tc.phase, built)
			}
		})
	}
}

func TestBuildUnknownDiscriminantIsRejectedByDecode(t *testing.T) {
	data := []byte(`{"type": "Model", "name": "M", "properties": {"energy": {"materials": [{"type": "EnergyMaterialFoam", "name": "Foam"}]}}}`)
	_, err := domain.DecodeModel(data)
	if !errors.Is(err, domain.ErrUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestBuildRejectsWrongDocumentType(t *testing.T) {
	b := testBuilder(t)
	if _, _, err := b.Build(context.Background(), nil); !errors.Is(err, domain.ErrMissingRequired) {
		t.Fatalf("expected missing document error, got %v", err)
	}
	doc := minimalModel()
	doc.Type = "Building"
	if _, _, err := b.Build(context.Background(), doc); !errors.Is(err, domain.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
}

func TestBuildStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := testBuilder(t).Build(ctx, minimalModel())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	var built *domain.BuildError
	if !errors.As(err, &built) || built.Phase != PhaseMaterials {
		t.Fatalf("expected cancellation before the first phase, got %+v", built)
	}
}

func TestBuildUnknownHVACIsWarning(t *testing.T) {
	doc := minimalModel()
	doc.Rooms[0].Properties = &domain.RoomProperties{Energy: &domain.RoomEnergyProperties{HVAC: domain.String("Ghost")}}
	model, res, err := testBuilder(t).Build(context.Background(), doc)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	unresolved := res.Unresolved()
	if len(unresolved) != 1 || unresolved[0].Target != domain.EntityHVAC || unresolved[0].Reference != "Ghost" {
		t.Fatalf("unexpected unresolved references %+v", unresolved)
	}
	zone := mustGet[*osm.ThermalZone](t, model, "Only Room")
	if len(model.ZoneEquipment(zone)) != 0 {
		t.Fatal("expected the zone to stay unconditioned")
	}
}

func TestBuildReportsPhasesToObservers(t *testing.T) {
	metrics := NewExpvarMetricsRecorder("")
	tracer := NewJSONTracer(nil)
	b := testBuilder(t, WithBuildMetrics(metrics), WithBuildTracer(tracer))
	if _, _, err := b.Build(context.Background(), loadFixture(t, "two_rooms.json")); err != nil {
		t.Fatalf("build: %v", err)
	}

	entries := tracer.Entries()
	if len(entries) != len(Phases()) {
		t.Fatalf("expected one span per phase, got %d", len(entries))
	}
	for i, phase := range Phases() {
		if entries[i].Operation != "build."+phase || entries[i].Status != "success" {
			t.Fatalf("span %d: unexpected %+v", i, entries[i])
		}
	}

	snap := metrics.Snapshot()
	if snap.Results["build.rooms"]["success"] != 1 {
		t.Fatalf("expected rooms phase to be recorded, got %v", snap.Results)
	}
	if snap.Entities[string(domain.EntityRoom)] != 2 || snap.Entities[string(domain.EntityFace)] != 7 {
		t.Fatalf("unexpected entity counts %v", snap.Entities)
	}
	if snap.Issues[string(domain.SeverityWarn)] != 1 {
		t.Fatalf("expected one warning counted, got %v", snap.Issues)
	}
}
