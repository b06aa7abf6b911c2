package core

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"energyport/internal/osm"
	"energyport/pkg/domain"
)

func TestExtractRoundTripKeepsObjectCounts(t *testing.T) {
	model, _ := buildFixture(t)
	doc, res := Extract(model)
	if len(res.Warnings()) != 0 {
		t.Fatalf("unexpected extraction warnings:\n%s", res)
	}

	data, err := EncodeModel(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := domain.DecodeModel(data)
	if err != nil {
		t.Fatalf("decode extracted document: %v", err)
	}
	rebuilt, res, err := testBuilder(t).Build(context.Background(), decoded)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(res.Warnings()) != 0 {
		t.Fatalf("expected a clean rebuild, got:\n%s", res)
	}

	want, got := kindCounts(model), kindCounts(rebuilt)
	for _, kind := range osm.Kinds() {
		if want[kind] != got[kind] {
			t.Errorf("kind %s: built %d, rebuilt %d", kind, want[kind], got[kind])
		}
	}
}

// roundTripDocument extends the fixture with records whose settings the
// engine types alone cannot carry.
func roundTripDocument(t *testing.T) *domain.Model {
	t.Helper()
	doc := loadFixture(t, "two_rooms.json")
	energy := doc.Energy()
	energy.Materials = append(energy.Materials, &domain.EnergyWindowMaterialGlazing{
		Base:             domain.Base{Type: domain.TypeEnergyWindowMaterialGlazing, Name: "Low-e Pane"},
		SolarReflectance: domain.Float(0.2),
		Emissivity:       domain.Float(0.1),
	})
	energy.ProgramTypes = append(energy.ProgramTypes, &domain.ProgramType{
		Base:     domain.Base{Type: domain.TypeProgramType, Name: "Storage Program"},
		Setpoint: &domain.Setpoint{
			Base:                domain.Base{Type: domain.TypeSetpoint, Name: "Storage Setpoint"},
			HeatingSchedule:     "Heating SP",
			CoolingSchedule:     "Cooling SP",
			HumidifyingSchedule: domain.String("Occupancy"),
		},
	})

	faces := docFaces(doc)
	faces["B Roof"].Doors[0].IsGlass = domain.Bool(true)
	faces["B Wall"].BoundaryCondition = domain.BoundaryCondition{
		Type:                     domain.BoundarySurface,
		BoundaryConditionObjects: []string{"Neighbour Wall", "Neighbour Room"},
	}
	faces["A Wall"].OutdoorShades = []*domain.Shade{{
		Base:     domain.Base{Type: domain.TypeShade, Name: "A Louver"},
		Geometry: domain.Face3D{Boundary: []domain.Point3D{{0, -0.5, 2.5}, {5, -0.5, 2.5}, {5, 0, 2.5}}},
	}}
	return doc
}

func docFaces(doc *domain.Model) map[string]*domain.Face {
	out := map[string]*domain.Face{}
	for _, room := range doc.Rooms {
		for _, face := range room.Faces {
			out[face.RecordName()] = face
		}
	}
	return out
}

func shadeNames(shades []*domain.Shade) []string {
	var out []string
	for _, s := range shades {
		out = append(out, s.RecordName())
	}
	return out
}

func TestExtractRoundTripKeepsDeclaredSettings(t *testing.T) {
	b := testBuilder(t)
	ctx := context.Background()
	model, res, err := b.Build(ctx, roundTripDocument(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Warnings()) != 2 {
		t.Fatalf("expected the missing layer and the unpaired wall to warn, got:\n%s", res)
	}
	hatch := mustGet[*osm.SubSurface](t, model, "B Hatch")
	if hatch.SubSurfaceType != osm.SubSurfaceOverheadDoor || !hatch.IsGlass {
		t.Fatalf("expected a glass overhead door, got %+v", hatch)
	}

	first, res := Extract(model)
	if len(res.Warnings()) != 0 {
		t.Fatalf("unexpected extraction warnings:\n%s", res)
	}
	faces := docFaces(first)

	if door := faces["B Roof"].Doors; len(door) != 1 || door[0].IsGlass == nil || !*door[0].IsGlass {
		t.Fatalf("expected B Hatch to stay glass, got %+v", door)
	}
	if door := faces["A Wall"].Doors; len(door) != 1 || door[0].IsGlass == nil || *door[0].IsGlass {
		t.Fatalf("expected A Door to stay opaque, got %+v", door)
	}
	if ap := faces["A Roof"].Apertures; len(ap) != 1 || ap[0].IsOperable == nil || *ap[0].IsOperable {
		t.Fatalf("expected a fixed skylight, got %+v", ap)
	}

	cond := faces["B Wall"].BoundaryCondition
	if cond.Type != domain.BoundarySurface || !slices.Equal(cond.BoundaryConditionObjects, []string{"Neighbour Wall", "Neighbour Room"}) {
		t.Fatalf("expected the declared adjacency names, got %+v", cond)
	}
	if objs := faces["A Party"].BoundaryCondition.BoundaryConditionObjects; !slices.Equal(objs, []string{"B Party", "Room B"}) {
		t.Fatalf("unexpected resolved adjacency %v", objs)
	}

	if got := shadeNames(faces["A Wall"].OutdoorShades); !slices.Equal(got, []string{"A Louver"}) {
		t.Fatalf("expected the louver under A Wall, got %v", got)
	}
	for _, room := range first.Rooms {
		if room.RecordName() == "Room A" {
			if got := shadeNames(room.OutdoorShades); !slices.Equal(got, []string{"A Fin"}) {
				t.Fatalf("expected only the fin on Room A, got %v", got)
			}
		}
	}

	programs := map[string]*domain.ProgramType{}
	for _, p := range first.Energy().ProgramTypes {
		programs[p.RecordName()] = p
	}
	storage := programs["Storage Program"]
	if storage == nil || storage.Setpoint == nil {
		t.Fatalf("expected the unused program to keep its setpoint, got %+v", storage)
	}
	sp := storage.Setpoint
	if sp.RecordName() != "Storage Setpoint" || sp.HeatingSchedule != "Heating SP" || sp.CoolingSchedule != "Cooling SP" {
		t.Fatalf("unexpected program setpoint %+v", sp)
	}
	if sp.HumidifyingSchedule == nil || *sp.HumidifyingSchedule != "Occupancy" || sp.DehumidifyingSchedule != nil {
		t.Fatalf("unexpected humidity schedules %v %v", sp.HumidifyingSchedule, sp.DehumidifyingSchedule)
	}
	if office := programs["Office Program"]; office == nil || office.Setpoint == nil || office.Setpoint.RecordName() != "Office Setpoint" {
		t.Fatalf("unexpected office program %+v", office)
	}

	var glazing *domain.EnergyWindowMaterialGlazing
	for _, m := range first.Energy().Materials {
		if g, ok := m.(*domain.EnergyWindowMaterialGlazing); ok && g.RecordName() == "Low-e Pane" {
			glazing = g
		}
	}
	if glazing == nil {
		t.Fatal("expected the Low-e Pane glazing")
	}
	checks := []struct {
		field string
		got   *float64
		want  float64
	}{
		{"solar_reflectance", glazing.SolarReflectance, 0.2},
		{"solar_reflectance_back", glazing.SolarReflectanceBack, 0.075},
		{"visible_reflectance", glazing.VisibleReflectance, 0.075},
		{"visible_reflectance_back", glazing.VisibleReflectanceBack, 0.075},
		{"emissivity", glazing.Emissivity, 0.1},
		{"emissivity_back", glazing.EmissivityBack, 0.84},
	}
	for _, c := range checks {
		if c.got == nil || *c.got != c.want {
			t.Errorf("glazing %s: expected %v, got %v", c.field, c.want, c.got)
		}
	}

	data, err := EncodeModel(first)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := domain.DecodeModel(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rebuilt, res, err := b.Build(ctx, decoded)
	if err != nil {
		t.Fatalf("rebuild extracted document: %v", err)
	}
	if len(res.Warnings()) != 1 {
		t.Fatalf("expected only the unpaired wall to warn on rebuild, got:\n%s", res)
	}
	second, _ := Extract(rebuilt)
	again, err := EncodeModel(second)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Fatalf("second extraction differs from the first:\n%s\n---\n%s", data, again)
	}
}

func TestExtractSkipsInternalObjects(t *testing.T) {
	model, _ := buildFixture(t)
	doc, _ := Extract(model)

	rooms := map[string]*domain.Room{}
	for _, room := range doc.Rooms {
		rooms[room.RecordName()] = room
	}
	roomA, roomB := rooms["Room A"], rooms["Room B"]
	if roomA == nil || roomB == nil {
		t.Fatalf("expected both rooms, got %v", rooms)
	}
	if roomA.Energy().Setpoint != nil {
		t.Fatal("expected the program thermostat to stay on the program")
	}
	if sp := roomB.Energy().Setpoint; sp == nil || sp.RecordName() != "B Setpoint" {
		t.Fatalf("expected room B setpoint, got %+v", sp)
	}
	if roomB.Multiplier == nil || *roomB.Multiplier != 2 {
		t.Fatalf("expected multiplier 2, got %v", roomB.Multiplier)
	}

	energy := doc.Energy()
	if len(energy.ProgramTypes) != 1 {
		t.Fatalf("expected one program, got %d", len(energy.ProgramTypes))
	}
	if sp := energy.ProgramTypes[0].Setpoint; sp == nil || sp.RecordName() != "Office Setpoint" {
		t.Fatalf("expected program setpoint to be recovered, got %+v", sp)
	}
	if energy.GlobalConstructionSet == nil || *energy.GlobalConstructionSet != "Office Set" {
		t.Fatalf("unexpected global construction set %v", energy.GlobalConstructionSet)
	}
	if len(doc.OrphanedShades) != 1 || doc.OrphanedShades[0].RecordName() != "Tree" {
		t.Fatalf("expected the orphaned tree, got %v", doc.OrphanedShades)
	}
}

func TestExtractBoundaryConditions(t *testing.T) {
	model, _ := buildFixture(t)
	doc, _ := Extract(model)

	faces := map[string]*domain.Face{}
	for _, room := range doc.Rooms {
		for _, face := range room.Faces {
			faces[face.RecordName()] = face
		}
	}
	party := faces["A Party"]
	if party == nil || party.BoundaryCondition.Type != domain.BoundarySurface {
		t.Fatalf("unexpected party wall %+v", party)
	}
	if objs := party.BoundaryCondition.BoundaryConditionObjects; len(objs) != 2 || objs[0] != "B Party" || objs[1] != "Room B" {
		t.Fatalf("unexpected boundary objects %v", objs)
	}
	wall := faces["A Wall"]
	if vf := wall.BoundaryCondition.ViewFactor; vf == nil || vf.Keyword != domain.KeywordAutocalculate {
		t.Fatalf("expected autocalculated view factor, got %+v", vf)
	}
	roof := faces["A Roof"]
	if v, ok := roof.BoundaryCondition.ViewFactor.Float(); !ok || v != 0.3 {
		t.Fatalf("expected fixed view factor, got %v", roof.BoundaryCondition.ViewFactor)
	}
	if len(wall.Apertures) != 1 || len(wall.Doors) != 1 {
		t.Fatalf("expected one aperture and one door on A Wall, got %d and %d", len(wall.Apertures), len(wall.Doors))
	}
	if op := wall.Apertures[0].IsOperable; op == nil || !*op {
		t.Fatal("expected operable window")
	}
}

func TestExtractEmptyModel(t *testing.T) {
	doc, res := Extract(osm.NewModel())
	if doc.RecordName() != "Unnamed" || doc.Type != domain.TypeModel {
		t.Fatalf("unexpected empty document %+v", doc.Base)
	}
	if len(doc.Rooms) != 0 || len(res.Issues) != 0 {
		t.Fatalf("expected no rooms and no issues, got %d rooms and %d issues", len(doc.Rooms), len(res.Issues))
	}
}
