package osm

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SnapshotVersion is the snapshot format written by Export.
const SnapshotVersion = 1

// SingletonsBucket is the bucket name holding the unique model objects.
const SingletonsBucket = "singletons"

// Snapshot is the serialisable form of a Model. Objects are grouped by kind
// and references are written as the kind and name of their target.
type Snapshot struct {
	Version    int                        `json:"version"`
	Objects    map[Kind][]json.RawMessage `json:"objects"`
	Singletons json.RawMessage            `json:"singletons,omitempty"`
}

var factories = map[Kind]func() Object{
	KindStandardOpaqueMaterial: func() Object { return new(StandardOpaqueMaterial) },
	KindMasslessOpaqueMaterial: func() Object { return new(MasslessOpaqueMaterial) },
	KindGas:                    func() Object { return new(Gas) },
	KindGasMixture:             func() Object { return new(GasMixture) },
	KindSimpleGlazing:          func() Object { return new(SimpleGlazing) },
	KindStandardGlazing:        func() Object { return new(StandardGlazing) },
	KindBlind:                  func() Object { return new(Blind) },
	KindWindowShade:            func() Object { return new(WindowShade) },
	KindConstruction:           func() Object { return new(Construction) },
	KindShadingConstruction:    func() Object { return new(ShadingConstruction) },
	KindDefaultConstructionSet: func() Object { return new(DefaultConstructionSet) },
	KindScheduleTypeLimits:     func() Object { return new(ScheduleTypeLimits) },
	KindScheduleRuleset:        func() Object { return new(ScheduleRuleset) },
	KindScheduleFixedInterval:  func() Object { return new(ScheduleFixedInterval) },
	KindSpaceType:              func() Object { return new(SpaceType) },
	KindThermostat:             func() Object { return new(Thermostat) },
	KindHumidistat:             func() Object { return new(Humidistat) },
	KindThermalZone:            func() Object { return new(ThermalZone) },
	KindSpace:                  func() Object { return new(Space) },
	KindSurface:                func() Object { return new(Surface) },
	KindSubSurface:             func() Object { return new(SubSurface) },
	KindShadingSurfaceGroup:    func() Object { return new(ShadingSurfaceGroup) },
	KindShadingSurface:         func() Object { return new(ShadingSurface) },
	KindIdealLoadsAirSystem:    func() Object { return new(IdealLoadsAirSystem) },
	KindDesignDay:              func() Object { return new(DesignDay) },
	KindOutputVariable:         func() Object { return new(OutputVariable) },
}

// Export captures every object and singleton of the model.
func (m *Model) Export() (Snapshot, error) {
	snap := Snapshot{Version: SnapshotVersion, Objects: make(map[Kind][]json.RawMessage)}
	for _, kind := range Kinds() {
		for _, obj := range m.objects[kind] {
			data, err := json.Marshal(obj)
			if err != nil {
				return Snapshot{}, fmt.Errorf("encode %s %q: %w", kind, obj.ObjectName(), err)
			}
			snap.Objects[kind] = append(snap.Objects[kind], data)
		}
	}
	data, err := json.Marshal(m.singletons)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode singletons: %w", err)
	}
	snap.Singletons = data
	return snap, nil
}

// Import rebuilds a model from a snapshot, restoring handles and resolving
// every reference.
func Import(snap Snapshot) (*Model, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	for kind := range snap.Objects {
		if _, ok := factories[kind]; !ok {
			return nil, fmt.Errorf("unknown object kind %q", kind)
		}
	}
	m := NewModel()
	for _, kind := range Kinds() {
		for i, raw := range snap.Objects[kind] {
			obj := factories[kind]()
			if err := json.Unmarshal(raw, obj); err != nil {
				return nil, fmt.Errorf("decode %s %d: %w", kind, i, err)
			}
			if err := m.Add(obj); err != nil {
				return nil, err
			}
		}
	}
	if len(snap.Singletons) > 0 {
		if err := json.Unmarshal(snap.Singletons, &m.singletons); err != nil {
			return nil, fmt.Errorf("decode singletons: %w", err)
		}
	}
	if err := m.resolveReferences(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) resolveReferences() error {
	var targets []referencer
	for _, kind := range Kinds() {
		for _, obj := range m.objects[kind] {
			if r, ok := obj.(referencer); ok {
				targets = append(targets, r)
			}
		}
	}
	if m.singletons.Building != nil {
		targets = append(targets, m.singletons.Building)
	}
	for _, target := range targets {
		for _, ref := range target.references() {
			if err := ref.resolve(m); err != nil {
				return err
			}
		}
	}
	return nil
}

// Buckets flattens the snapshot into named JSON payloads, one per object kind
// plus the singletons bucket. Stores persist one row per bucket.
func (s Snapshot) Buckets() (map[string][]byte, error) {
	out := make(map[string][]byte, len(s.Objects)+1)
	for kind, objs := range s.Objects {
		data, err := json.Marshal(objs)
		if err != nil {
			return nil, fmt.Errorf("encode bucket %s: %w", kind, err)
		}
		out[string(kind)] = data
	}
	if len(s.Singletons) > 0 {
		out[SingletonsBucket] = append([]byte(nil), s.Singletons...)
	}
	return out, nil
}

// SnapshotFromBuckets reverses Buckets.
func SnapshotFromBuckets(buckets map[string][]byte) (Snapshot, error) {
	snap := Snapshot{Version: SnapshotVersion, Objects: make(map[Kind][]json.RawMessage)}
	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		payload := buckets[name]
		if name == SingletonsBucket {
			snap.Singletons = append(json.RawMessage(nil), payload...)
			continue
		}
		var objs []json.RawMessage
		if err := json.Unmarshal(payload, &objs); err != nil {
			return Snapshot{}, fmt.Errorf("decode bucket %s: %w", name, err)
		}
		snap.Objects[Kind(name)] = objs
	}
	return snap, nil
}
