package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"energyport/internal/blob"
	"energyport/internal/osm"
	"energyport/internal/schema"
	"energyport/pkg/domain"
)

// Service operation names, used for metrics, spans and audit entries.
const (
	OpTranslate                = "translate"
	OpTranslateAndSave         = "translate_save"
	OpTranslateBlob            = "translate_blob"
	OpLoadModel                = "load_model"
	OpExtract                  = "extract"
	OpExtractToBlob            = "extract_blob"
	OpApplySimulationParameter = "apply_simulation_parameter"
	OpDeleteModel              = "delete_model"
)

// Service runs translations against a model store and a document store,
// reporting every operation to the configured logger, metrics, tracer and
// audit recorder.
type Service struct {
	defaults *schema.Defaults
	builder  *GraphBuilder
	store    ModelStore
	blobs    blob.Store
	logger   Logger
	metrics  MetricsRecorder
	tracer   Tracer
	audit    AuditRecorder
	clock    Clock
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger. The graph builder logs through it too.
func WithLogger(logger Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRecorder sets the metrics recorder.
func WithMetricsRecorder(metrics MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer Tracer) ServiceOption {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithAuditRecorder sets the audit recorder.
func WithAuditRecorder(audit AuditRecorder) ServiceOption {
	return func(s *Service) {
		if audit != nil {
			s.audit = audit
		}
	}
}

// WithClock overrides the clock stamping audit entries.
func WithClock(clock Clock) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithModelStore sets where translated models are saved. The default keeps
// them in memory.
func WithModelStore(store ModelStore) ServiceOption {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBlobStore sets the document store. The default keeps documents in
// memory.
func WithBlobStore(store blob.Store) ServiceOption {
	return func(s *Service) {
		if store != nil {
			s.blobs = store
		}
	}
}

// NewService constructs a service reading defaults from defs.
func NewService(defs *schema.Defaults, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		defaults: defs,
		logger:   noopLogger{},
		metrics:  noopMetrics{},
		tracer:   noopTracer{},
		audit:    noopAudit{},
		clock:    systemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewMemoryModelStore()
	}
	if s.blobs == nil {
		s.blobs = blob.NewMemory()
	}
	builder, err := NewGraphBuilder(defs,
		WithBuildLogger(s.logger),
		WithBuildMetrics(s.metrics),
		WithBuildTracer(s.tracer),
	)
	if err != nil {
		return nil, err
	}
	s.builder = builder
	return s, nil
}

// Builder returns the graph builder used by the service.
func (s *Service) Builder() *GraphBuilder { return s.builder }

// Store returns the model store.
func (s *Service) Store() ModelStore { return s.store }

// Blobs returns the document store.
func (s *Service) Blobs() blob.Store { return s.blobs }

// Close releases the model store.
func (s *Service) Close() error { return s.store.Close() }

// Translate builds doc into a new engine model without saving it.
func (s *Service) Translate(ctx context.Context, doc *domain.Model) (*osm.Model, domain.Result, error) {
	var model *osm.Model
	res, err := s.run(ctx, OpTranslate, docName(doc), func(ctx context.Context) (domain.Result, error) {
		var (
			res domain.Result
			err error
		)
		model, res, err = s.builder.Build(ctx, doc)
		return res, err
	})
	return model, res, err
}

// TranslateAndSave builds doc and saves the engine model under key. Building
// into a model already saved under key reuses its objects.
func (s *Service) TranslateAndSave(ctx context.Context, key string, doc *domain.Model) (domain.Result, error) {
	return s.run(ctx, OpTranslateAndSave, key, func(ctx context.Context) (domain.Result, error) {
		return s.translateInto(ctx, key, doc)
	})
}

// TranslateBlob reads a model document from the blob store and saves its
// translation under modelKey.
func (s *Service) TranslateBlob(ctx context.Context, blobKey, modelKey string) (domain.Result, error) {
	return s.run(ctx, OpTranslateBlob, modelKey, func(ctx context.Context) (domain.Result, error) {
		doc, err := ReadModelBlob(ctx, s.blobs, blobKey)
		if err != nil {
			return domain.Result{}, err
		}
		return s.translateInto(ctx, modelKey, doc)
	})
}

func (s *Service) translateInto(ctx context.Context, key string, doc *domain.Model) (domain.Result, error) {
	model, err := s.loadOrNew(ctx, key)
	if err != nil {
		return domain.Result{}, err
	}
	res, err := s.builder.BuildInto(ctx, model, doc)
	if err != nil {
		return res, err
	}
	return res, s.save(ctx, key, model)
}

// LoadModel returns the engine model saved under key.
func (s *Service) LoadModel(ctx context.Context, key string) (*osm.Model, error) {
	var model *osm.Model
	_, err := s.run(ctx, OpLoadModel, key, func(ctx context.Context) (domain.Result, error) {
		var err error
		model, err = s.load(ctx, key)
		return domain.Result{}, err
	})
	return model, err
}

// Extract rebuilds a model document from the engine model saved under key.
func (s *Service) Extract(ctx context.Context, key string) (*domain.Model, domain.Result, error) {
	var doc *domain.Model
	res, err := s.run(ctx, OpExtract, key, func(ctx context.Context) (domain.Result, error) {
		model, err := s.load(ctx, key)
		if err != nil {
			return domain.Result{}, err
		}
		var res domain.Result
		doc, res = Extract(model)
		return res, nil
	})
	return doc, res, err
}

// ExtractToBlob extracts the model saved under modelKey and writes the
// document to blobKey.
func (s *Service) ExtractToBlob(ctx context.Context, modelKey, blobKey string) (domain.Result, error) {
	return s.run(ctx, OpExtractToBlob, modelKey, func(ctx context.Context) (domain.Result, error) {
		model, err := s.load(ctx, modelKey)
		if err != nil {
			return domain.Result{}, err
		}
		doc, res := Extract(model)
		if _, err := WriteModelBlob(ctx, s.blobs, blobKey, doc); err != nil {
			return res, err
		}
		return res, nil
	})
}

// ApplySimulationParameter applies doc to the model saved under key and saves
// the result.
func (s *Service) ApplySimulationParameter(ctx context.Context, key string, doc *domain.SimulationParameter) (domain.Result, error) {
	return s.run(ctx, OpApplySimulationParameter, key, func(ctx context.Context) (domain.Result, error) {
		model, err := s.loadOrNew(ctx, key)
		if err != nil {
			return domain.Result{}, err
		}
		res, err := ApplySimulationParameter(ctx, model, doc, s.defaults)
		if err != nil {
			return res, err
		}
		return res, s.save(ctx, key, model)
	})
}

// Models lists the keys of saved models.
func (s *Service) Models(ctx context.Context) ([]string, error) {
	return s.store.Keys(ctx)
}

// DeleteModel removes the model saved under key and reports whether it
// existed.
func (s *Service) DeleteModel(ctx context.Context, key string) (bool, error) {
	var existed bool
	_, err := s.run(ctx, OpDeleteModel, key, func(ctx context.Context) (domain.Result, error) {
		var err error
		existed, err = s.store.Delete(ctx, key)
		return domain.Result{}, err
	})
	return existed, err
}

func (s *Service) load(ctx context.Context, key string) (*osm.Model, error) {
	snap, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	model, err := osm.Import(snap)
	if err != nil {
		return nil, fmt.Errorf("import model %s: %w", key, err)
	}
	return model, nil
}

func (s *Service) loadOrNew(ctx context.Context, key string) (*osm.Model, error) {
	model, err := s.load(ctx, key)
	if IsModelNotFound(err) {
		return osm.NewModel(), nil
	}
	return model, err
}

func (s *Service) save(ctx context.Context, key string, model *osm.Model) error {
	snap, err := model.Export()
	if err != nil {
		return fmt.Errorf("export model %s: %w", key, err)
	}
	return s.store.Save(ctx, key, snap)
}

// run wraps one operation with a span, a metrics observation, an audit entry
// and a log line.
func (s *Service) run(ctx context.Context, op, key string, fn func(context.Context) (domain.Result, error)) (domain.Result, error) {
	ctx, span := s.tracer.Start(ctx, op)
	start := time.Now()
	res, err := fn(ctx)
	duration := time.Since(start)
	s.metrics.Observe(ctx, op, err == nil, duration)
	span.End(err)

	entry := AuditEntry{
		Operation: op,
		Key:       key,
		Status:    AuditStatusSuccess,
		Warnings:  len(res.Warnings()),
		Duration:  duration,
		Timestamp: s.clock.Now(),
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
		s.logger.Error("operation failed", "operation", op, "key", key, "error", err)
	} else {
		s.logger.Info("operation complete", "operation", op, "key", key, "warnings", entry.Warnings, "duration", duration)
	}
	s.audit.Record(ctx, entry)
	return res, err
}

func docName(doc *domain.Model) string {
	if doc == nil {
		return ""
	}
	return doc.RecordName()
}

// IsUserError reports whether err was caused by the input document rather
// than by storage or the environment.
func IsUserError(err error) bool {
	for _, target := range []error{
		domain.ErrUnknownType,
		domain.ErrTypeMismatch,
		domain.ErrDuplicateName,
		domain.ErrInvalidEnumValue,
		domain.ErrUnsupportedEntity,
		domain.ErrMissingRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
