package core

import (
	"context"
	"path/filepath"
	"testing"

	"energyport/internal/osm"
	"energyport/internal/schema"
	"energyport/pkg/domain"
)

func testDefaults(t *testing.T) *schema.Defaults {
	t.Helper()
	defs, err := schema.LoadEmbedded()
	if err != nil {
		t.Fatalf("load schema defaults: %v", err)
	}
	return defs
}

func testBuilder(t *testing.T, opts ...BuilderOption) *GraphBuilder {
	t.Helper()
	b, err := NewGraphBuilder(testDefaults(t), opts...)
	if err != nil {
		t.Fatalf("new graph builder: %v", err)
	}
	return b
}

func loadFixture(t *testing.T, name string) *domain.Model {
	t.Helper()
	doc, err := ReadModel(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return doc
}

func buildFixture(t *testing.T) (*osm.Model, domain.Result) {
	t.Helper()
	model, res, err := testBuilder(t).Build(context.Background(), loadFixture(t, "two_rooms.json"))
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	return model, res
}

func mustGet[T osm.Object](t *testing.T, m *osm.Model, name string) T {
	t.Helper()
	obj, ok := osm.Get[T](m, name)
	if !ok {
		var zero T
		t.Fatalf("expected %s %q in model", zero.Kind(), name)
	}
	return obj
}

// minimalModel returns a document holding one room with a single outdoor
// wall, for tests that only need a valid starting point.
func minimalModel() *domain.Model {
	return &domain.Model{
		Base: domain.Base{Type: domain.TypeModel, Name: "Minimal"},
		Rooms: []*domain.Room{{
			Base: domain.Base{Type: domain.TypeRoom, Name: "Only Room"},
			Faces: []*domain.Face{{
				Base:              domain.Base{Type: domain.TypeFace, Name: "Only Wall"},
				FaceType:          domain.FaceTypeWall,
				Geometry:          domain.Face3D{Boundary: []domain.Point3D{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}}},
				BoundaryCondition: domain.BoundaryCondition{Type: domain.BoundaryOutdoors},
			}},
		}},
	}
}

func kindCounts(m *osm.Model) map[osm.Kind]int {
	out := map[osm.Kind]int{}
	for _, kind := range osm.Kinds() {
		if n := len(m.Objects(kind)); n > 0 {
			out[kind] = n
		}
	}
	return out
}
