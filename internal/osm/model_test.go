package osm

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAddAssignsHandleAndRejectsDuplicates(t *testing.T) {
	m := NewModel()
	mat := &StandardOpaqueMaterial{Base: Base{Name: "Brick"}, Thickness: 0.1}
	if err := m.Add(mat); err != nil {
		t.Fatalf("add: %v", err)
	}
	if mat.Handle == uuid.Nil {
		t.Fatal("expected handle to be assigned")
	}
	err := m.Add(&StandardOpaqueMaterial{Base: Base{Name: "Brick"}})
	if !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
	if err := m.Add(&Gas{Base: Base{Name: "Brick"}}); err != nil {
		t.Fatalf("names are scoped per kind: %v", err)
	}
	if err := m.Add(&Gas{}); err == nil {
		t.Fatal("expected empty name to be rejected")
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", m.Len())
	}
}

func TestGenericAccessors(t *testing.T) {
	m := NewModel()
	for _, name := range []string{"Zone B", "Zone A"} {
		if err := m.Add(&ThermalZone{Base: Base{Name: name}, Multiplier: 1}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	zone, ok := Get[*ThermalZone](m, "Zone A")
	if !ok || zone.Name != "Zone A" {
		t.Fatalf("expected Zone A, got %+v", zone)
	}
	if _, ok := Get[*ThermalZone](m, "Zone C"); ok {
		t.Fatal("expected missing zone")
	}
	zones := All[*ThermalZone](m)
	if len(zones) != 2 || zones[0].Name != "Zone B" {
		t.Fatalf("expected insertion order, got %v", zones)
	}
	if _, ok := m.LookupMaterial("Zone A"); ok {
		t.Fatal("zone must not resolve as a material")
	}
}

func TestConstructionFenestration(t *testing.T) {
	glass := &StandardGlazing{Base: Base{Name: "Clear"}}
	brick := &StandardOpaqueMaterial{Base: Base{Name: "Brick"}}
	window := &Construction{Base: Base{Name: "Window"}, Layers: []Ref[Material]{RefTo[Material](glass)}}
	wall := &Construction{Base: Base{Name: "Wall"}, Layers: []Ref[Material]{RefTo[Material](brick)}}
	if !window.Fenestration() || wall.Fenestration() {
		t.Fatal("unexpected fenestration classification")
	}
	if (&Construction{}).Fenestration() {
		t.Fatal("a construction without layers is opaque")
	}
	if got := window.LayerNames(); len(got) != 1 || got[0] != "Clear" {
		t.Fatalf("unexpected layer names %v", got)
	}
}

func TestSetAdjacentSurfaceBindsBothSides(t *testing.T) {
	a := &Surface{Base: Base{Name: "A"}, OutsideBoundaryCondition: BoundaryOutdoors, SunExposed: true}
	b := &Surface{Base: Base{Name: "B"}}
	if a.SetAdjacentSurface(a) {
		t.Fatal("a surface cannot be adjacent to itself")
	}
	if !a.SetAdjacentSurface(b) {
		t.Fatal("expected adjacency to be set")
	}
	if !a.AdjacentSurface.Is(b) || !b.AdjacentSurface.Is(a) {
		t.Fatal("expected adjacency in both directions")
	}
	if a.OutsideBoundaryCondition != BoundarySurface || a.SunExposed {
		t.Fatalf("unexpected boundary state %+v", a)
	}
}

func TestViewFactorToGround(t *testing.T) {
	s := &Surface{}
	if !s.ViewFactorToGroundAutocalculated() {
		t.Fatal("new surfaces autocalculate the view factor")
	}
	s.SetViewFactorToGround(0.5)
	if s.ViewFactorToGroundAutocalculated() || *s.ViewFactorToGround != 0.5 {
		t.Fatalf("expected 0.5, got %v", s.ViewFactorToGround)
	}
	s.AutocalculateViewFactorToGround()
	if !s.ViewFactorToGroundAutocalculated() {
		t.Fatal("expected autocalculate after reset")
	}
}

func TestAddToThermalZoneIsIdempotent(t *testing.T) {
	m := NewModel()
	zone := &ThermalZone{Base: Base{Name: "Z"}}
	sys := &IdealLoadsAirSystem{Base: Base{Name: "Sys"}}
	for _, obj := range []Object{zone, sys} {
		if err := m.Add(obj); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if !sys.AddToThermalZone(zone) || sys.AddToThermalZone(zone) {
		t.Fatal("expected first attach to succeed and second to be a no-op")
	}
	if got := m.ZoneEquipment(zone); len(got) != 1 || got[0] != sys {
		t.Fatalf("unexpected zone equipment %v", got)
	}
}

func TestSingletonsAreCreatedOnce(t *testing.T) {
	m := NewModel()
	if m.HasSimulationSettings() || m.HasDaylightSavingTime() {
		t.Fatal("new models carry no simulation settings")
	}
	b := m.Building()
	b.NorthAxis = 30
	if m.Building().NorthAxis != 30 {
		t.Fatal("expected the same building on every call")
	}
	if m.Timestep().NumberOfTimestepsPerHour != 6 {
		t.Fatalf("unexpected timestep default %d", m.Timestep().NumberOfTimestepsPerHour)
	}
	if !m.HasSimulationSettings() {
		t.Fatal("expected timestep to count as a simulation setting")
	}
}
