package core

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"energyport/internal/osm"
	"energyport/internal/schema"
	"energyport/pkg/domain"
)

// Build phases in execution order.
const (
	PhaseMaterials          = "materials"
	PhaseConstructions      = "constructions"
	PhaseConstructionSets   = "construction_sets"
	PhaseScheduleTypeLimits = "schedule_type_limits"
	PhaseSchedules          = "schedules"
	PhaseProgramTypes       = "program_types"
	PhaseRooms              = "rooms"
	PhaseOrphanedShades     = "orphaned_shades"
	PhaseOrphanedGeometry   = "orphaned_geometry"
	PhaseHVAC               = "hvac"
	PhaseMetadata           = "metadata"
)

// Phases returns the build phases in execution order.
func Phases() []string {
	return []string{
		PhaseMaterials, PhaseConstructions, PhaseConstructionSets, PhaseScheduleTypeLimits,
		PhaseSchedules, PhaseProgramTypes, PhaseRooms, PhaseOrphanedShades,
		PhaseOrphanedGeometry, PhaseHVAC, PhaseMetadata,
	}
}

// GraphBuilder translates model documents into engine models. A builder is
// immutable once constructed and may be shared; each Build call works on its
// own model.
type GraphBuilder struct {
	defaults      *schema.Defaults
	materials     *Dispatcher[domain.Material, osm.Material]
	constructions *Dispatcher[domain.Construction, osm.Object]
	schedules     *Dispatcher[domain.Schedule, osm.Schedule]
	hvacs         *Dispatcher[domain.HVAC, *osm.IdealLoadsAirSystem]
	logger        Logger
	metrics       MetricsRecorder
	tracer        Tracer
}

// BuilderOption configures a GraphBuilder.
type BuilderOption func(*GraphBuilder)

// WithBuildLogger sets the logger used for phase and warning output.
func WithBuildLogger(logger Logger) BuilderOption {
	return func(b *GraphBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBuildMetrics sets the recorder observing each phase. Recorders that
// also implement EntityCounter receive entity and issue counts.
func WithBuildMetrics(metrics MetricsRecorder) BuilderOption {
	return func(b *GraphBuilder) {
		if metrics != nil {
			b.metrics = metrics
		}
	}
}

// WithBuildTracer sets the tracer wrapping each phase in a span.
func WithBuildTracer(tracer Tracer) BuilderOption {
	return func(b *GraphBuilder) {
		if tracer != nil {
			b.tracer = tracer
		}
	}
}

// NewGraphBuilder returns a builder reading defaults from defs. It fails when
// a document discriminant has no builder.
func NewGraphBuilder(defs *schema.Defaults, opts ...BuilderOption) (*GraphBuilder, error) {
	if defs == nil {
		return nil, &domain.SchemaLoadError{Err: errors.New("no schema defaults")}
	}
	b := &GraphBuilder{
		defaults:      defs,
		materials:     newMaterialDispatcher(),
		constructions: newConstructionDispatcher(),
		schedules:     newScheduleDispatcher(),
		hvacs:         newHVACDispatcher(),
		logger:        noopLogger{},
		metrics:       noopMetrics{},
		tracer:        noopTracer{},
	}
	for _, opt := range opts {
		opt(b)
	}
	checks := []error{
		b.materials.Covers(domain.MaterialTypes()),
		b.constructions.Covers(domain.ConstructionTypes()),
		b.schedules.Covers(domain.ScheduleTypes()),
		b.hvacs.Covers(domain.HVACTypes()),
	}
	if err := errors.Join(checks...); err != nil {
		return nil, err
	}
	return b, nil
}

// Build translates doc into a new model.
func (b *GraphBuilder) Build(ctx context.Context, doc *domain.Model) (*osm.Model, domain.Result, error) {
	model := osm.NewModel()
	res, err := b.BuildInto(ctx, model, doc)
	if err != nil {
		return nil, res, err
	}
	return model, res, nil
}

// BuildInto translates doc into model. Objects already present under the
// names the document uses are reused, so building the same document twice
// leaves the model unchanged. On error the model may hold the objects built
// before the failing phase.
func (b *GraphBuilder) BuildInto(ctx context.Context, model *osm.Model, doc *domain.Model) (domain.Result, error) {
	if doc == nil {
		return domain.Result{}, &domain.MissingRequiredError{Type: domain.TypeModel, Property: "document"}
	}
	if doc.Type != domain.TypeModel {
		return domain.Result{}, &domain.TypeMismatchError{Category: "model", Name: doc.RecordName(), Expected: domain.TypeModel, Actual: doc.Type}
	}
	counter, _ := b.metrics.(EntityCounter)
	bc := newBuildContext(ctx, NewRegistry(model), b.defaults, b.logger, counter)
	energy := doc.Energy()
	if energy == nil {
		energy = &domain.ModelEnergyProperties{}
	}
	var setpoints map[string]*domain.Setpoint

	steps := []struct {
		phase string
		run   func() error
	}{
		{PhaseMaterials, func() error {
			return eachRecord(energy.Materials, domain.EntityMaterial, func(rec domain.Material) error {
				_, err := b.materials.Build(bc, rec)
				return err
			})
		}},
		{PhaseConstructions, func() error {
			return eachRecord(energy.Constructions, domain.EntityConstruction, func(rec domain.Construction) error {
				_, err := b.constructions.Build(bc, rec)
				return err
			})
		}},
		{PhaseConstructionSets, func() error {
			err := eachRecord(energy.ConstructionSets, domain.EntityConstructionSet, func(rec *domain.ConstructionSet) error {
				_, err := buildConstructionSet(bc, rec)
				return err
			})
			if err != nil {
				return err
			}
			if global := energy.GlobalConstructionSet; global != nil && *global != "" {
				model.Building().DefaultConstructionSet = link[*osm.DefaultConstructionSet](bc, domain.EntityConstructionSet, doc.RecordName(), "global_construction_set", domain.EntityConstructionSet, global)
			}
			return nil
		}},
		{PhaseScheduleTypeLimits, func() error {
			return eachRecord(energy.ScheduleTypeLimits, domain.EntityScheduleTypeLimit, func(rec *domain.ScheduleTypeLimit) error {
				_, err := buildScheduleTypeLimit(bc, rec)
				return err
			})
		}},
		{PhaseSchedules, func() error {
			return eachRecord(energy.Schedules, domain.EntitySchedule, func(rec domain.Schedule) error {
				_, err := b.schedules.Build(bc, rec)
				return err
			})
		}},
		{PhaseProgramTypes, func() error {
			var err error
			setpoints, err = buildProgramTypes(bc, energy.ProgramTypes)
			return err
		}},
		{PhaseRooms, func() error {
			err := eachRecord(doc.Rooms, domain.EntityRoom, func(rec *domain.Room) error {
				_, err := buildRoom(bc, rec, setpoints)
				return err
			})
			if err != nil {
				return err
			}
			bindAdjacencies(bc)
			return nil
		}},
		{PhaseOrphanedShades, func() error {
			return buildOrphanedShades(bc, doc.OrphanedShades)
		}},
		{PhaseOrphanedGeometry, func() error {
			return rejectOrphans(doc)
		}},
		{PhaseHVAC, func() error {
			return b.buildHVAC(bc, energy.HVACs, doc.Rooms)
		}},
		{PhaseMetadata, func() error {
			return applyMetadata(bc, doc, energy)
		}},
	}

	for _, step := range steps {
		if err := b.phase(bc, step.phase, step.run); err != nil {
			b.logger.Error("build aborted", "model", doc.RecordName(), "phase", step.phase, "error", err)
			return *bc.result, err
		}
	}
	b.logger.Info("build complete", "model", doc.RecordName(), "objects", model.Len(), "warnings", len(bc.result.Warnings()))
	return *bc.result, nil
}

// phase runs one build phase inside a span and reports its duration. Errors
// are returned as BuildErrors carrying the phase name.
func (b *GraphBuilder) phase(bc *BuildContext, name string, run func() error) (err error) {
	if ctxErr := bc.ctx.Err(); ctxErr != nil {
		return &domain.BuildError{Phase: name, Err: ctxErr}
	}
	ctx, span := b.tracer.Start(bc.ctx, "build."+name)
	start := time.Now()
	bc.phase = name
	b.logger.Debug("build phase started", "phase", name)
	defer func() {
		b.metrics.Observe(ctx, "build."+name, err == nil, time.Since(start))
		span.End(err)
		b.logger.Debug("build phase finished", "phase", name, "duration", time.Since(start), "error", err)
	}()

	if err = run(); err == nil {
		return nil
	}
	var built *domain.BuildError
	if errors.As(err, &built) {
		if built.Phase == "" {
			built.Phase = name
		}
		return built
	}
	return &domain.BuildError{Phase: name, Err: err}
}

// eachRecord builds the records of one category in document order. A failure
// is wrapped with the name and type of the record.
func eachRecord[R domain.Record](records []R, category domain.EntityType, build func(R) error) error {
	for _, rec := range records {
		if isNil(rec) {
			return &domain.BuildError{Category: category, Err: fmt.Errorf("null %s record", category)}
		}
		if err := build(rec); err != nil {
			var built *domain.BuildError
			if errors.As(err, &built) {
				return err
			}
			return &domain.BuildError{Category: category, Name: rec.RecordName(), Type: rec.RecordType(), Err: err}
		}
	}
	return nil
}

func isNil(rec domain.Record) bool {
	if rec == nil {
		return true
	}
	v := reflect.ValueOf(rec)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// buildProgramTypes creates the space types and returns the setpoints of
// their programs keyed by program name, for the room phase to inherit.
func buildProgramTypes(bc *BuildContext, programs []*domain.ProgramType) (map[string]*domain.Setpoint, error) {
	setpoints := map[string]*domain.Setpoint{}
	err := eachRecord(programs, domain.EntityProgramType, func(rec *domain.ProgramType) error {
		st, err := buildProgramType(bc, rec)
		if err != nil {
			return err
		}
		if rec.Setpoint != nil {
			setpoints[rec.RecordName()] = rec.Setpoint
			st.Setpoint = spaceTypeSetpoint(rec.RecordName(), rec.Setpoint)
		}
		return nil
	})
	return setpoints, err
}

// rejectOrphans fails when the document holds geometry without a parent
// room, which the engine cannot represent.
func rejectOrphans(doc *domain.Model) error {
	orphans := []struct {
		category string
		count    int
	}{
		{"orphaned_faces", len(doc.OrphanedFaces)},
		{"orphaned_apertures", len(doc.OrphanedApertures)},
		{"orphaned_doors", len(doc.OrphanedDoors)},
	}
	for _, o := range orphans {
		if o.count > 0 {
			return &domain.UnsupportedEntityError{Category: o.category, Count: o.count}
		}
	}
	return nil
}

// buildHVAC instantiates every HVAC system once and attaches it to the zones
// of the rooms referencing it. Rooms naming an unknown system are warned
// about and left unconditioned.
func (b *GraphBuilder) buildHVAC(bc *BuildContext, hvacs []domain.HVAC, rooms []*domain.Room) error {
	members, order := hvacMembers(rooms)
	known := map[string]bool{}
	err := eachRecord(hvacs, domain.EntityHVAC, func(rec domain.HVAC) error {
		sys, err := b.hvacs.Build(bc, rec)
		if err != nil {
			return err
		}
		known[rec.RecordName()] = true
		attachHVAC(bc, sys, members[rec.RecordName()])
		return nil
	})
	if err != nil {
		return err
	}
	for _, name := range order {
		if known[name] {
			continue
		}
		for _, room := range members[name] {
			bc.unresolved(domain.EntityRoom, room, "hvac", domain.EntityHVAC, name)
		}
	}
	return nil
}

// applyMetadata sets the document-level values that have no ordering
// constraints.
func applyMetadata(bc *BuildContext, doc *domain.Model, energy *domain.ModelEnergyProperties) error {
	model := bc.Model()
	mp := bc.props(domain.TypeModel)
	north := mp.float("north_angle", doc.NorthAngle)
	ep := bc.props("ModelEnergyProperties")
	terrain := ep.str("terrain_type", energy.TerrainType)
	if err := errors.Join(mp.err(), ep.err()); err != nil {
		return err
	}
	building := model.Building()
	building.NorthAxis = north
	building.Name = doc.RecordName()
	model.Site().TerrainType = terrain
	return nil
}
