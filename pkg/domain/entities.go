// Package domain defines the building energy document records translated by
// energyport, together with the typed errors and issue reporting shared by the
// translation and extraction pipelines.
package domain

// EntityType identifies the category of a named record in a model document.
type EntityType string

// Supported entity categories. Names are unique within a category.
const (
	// EntityMaterial identifies opaque, glazing, gas, and shade materials.
	EntityMaterial EntityType = "material"
	// EntityConstruction identifies layered, window, and shade constructions.
	EntityConstruction EntityType = "construction"
	// EntityConstructionSet identifies construction set records.
	EntityConstructionSet EntityType = "construction_set"
	// EntityScheduleTypeLimit identifies schedule type limit records.
	EntityScheduleTypeLimit EntityType = "schedule_type_limit"
	// EntitySchedule identifies ruleset and fixed interval schedules.
	EntitySchedule EntityType = "schedule"
	// EntityProgramType identifies space usage programs.
	EntityProgramType EntityType = "program_type"
	// EntityRoom identifies rooms (spaces with their thermal zones).
	EntityRoom EntityType = "room"
	// EntityFace identifies room faces.
	EntityFace EntityType = "face"
	// EntityAperture identifies windows and skylights.
	EntityAperture EntityType = "aperture"
	// EntityDoor identifies doors.
	EntityDoor EntityType = "door"
	// EntityShade identifies shading geometry.
	EntityShade EntityType = "shade"
	// EntityHVAC identifies HVAC system templates.
	EntityHVAC EntityType = "hvac"
	// EntitySetpoint identifies thermostat and humidistat setpoints.
	EntitySetpoint EntityType = "setpoint"
	// EntitySimulationParameter identifies simulation parameter records.
	EntitySimulationParameter EntityType = "simulation_parameter"
)

// Record is implemented by every named, typed document record.
type Record interface {
	RecordName() string
	RecordType() string
}

// Base carries the identity shared by every document record. Older documents
// name records with "name" while newer ones use "identifier"; both are read and
// RecordName prefers "name" when set.
type Base struct {
	Type        string  `json:"type"`
	Name        string  `json:"name,omitempty"`
	Identifier  string  `json:"identifier,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// RecordName returns the unique name of the record within its category.
func (b Base) RecordName() string {
	if b.Name != "" {
		return b.Name
	}
	return b.Identifier
}

// RecordType returns the type discriminant declared on the record.
func (b Base) RecordType() string { return b.Type }

// Point3D is an x, y, z vertex in model coordinates.
type Point3D [3]float64

// Face3D is a planar polygon with optional holes.
type Face3D struct {
	Type     string      `json:"type,omitempty"`
	Boundary []Point3D   `json:"boundary"`
	Holes    [][]Point3D `json:"holes,omitempty"`
}

// Model is the root of a building energy document.
type Model struct {
	Base
	NorthAngle        *float64         `json:"north_angle,omitempty"`
	Units             *string          `json:"units,omitempty"`
	Tolerance         *float64         `json:"tolerance,omitempty"`
	AngleTolerance    *float64         `json:"angle_tolerance,omitempty"`
	Rooms             []*Room          `json:"rooms,omitempty"`
	OrphanedFaces     []*Face          `json:"orphaned_faces,omitempty"`
	OrphanedShades    []*Shade         `json:"orphaned_shades,omitempty"`
	OrphanedApertures []*Aperture      `json:"orphaned_apertures,omitempty"`
	OrphanedDoors     []*Door          `json:"orphaned_doors,omitempty"`
	Properties        *ModelProperties `json:"properties,omitempty"`
}

// ModelProperties groups the extension properties of a model.
type ModelProperties struct {
	Type   string                 `json:"type,omitempty"`
	Energy *ModelEnergyProperties `json:"energy,omitempty"`
}

// ModelEnergyProperties holds the energy resource libraries of a model.
// Materials, constructions, schedules, and HVACs are polymorphic and decoded
// by their "type" discriminant.
type ModelEnergyProperties struct {
	Type                  string               `json:"type,omitempty"`
	TerrainType           *string              `json:"terrain_type,omitempty"`
	GlobalConstructionSet *string              `json:"global_construction_set,omitempty"`
	Materials             []Material           `json:"materials,omitempty"`
	Constructions         []Construction       `json:"constructions,omitempty"`
	ConstructionSets      []*ConstructionSet   `json:"construction_sets,omitempty"`
	ScheduleTypeLimits    []*ScheduleTypeLimit `json:"schedule_type_limits,omitempty"`
	Schedules             []Schedule           `json:"schedules,omitempty"`
	ProgramTypes          []*ProgramType       `json:"program_types,omitempty"`
	HVACs                 []HVAC               `json:"hvacs,omitempty"`
}

// Energy returns the energy properties of the model, or nil when absent.
func (m *Model) Energy() *ModelEnergyProperties {
	if m == nil || m.Properties == nil {
		return nil
	}
	return m.Properties.Energy
}

// String returns a pointer to s. It is a convenience for optional fields.
func String(s string) *string { return &s }

// Float returns a pointer to f. It is a convenience for optional fields.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i. It is a convenience for optional fields.
func Int(i int) *int { return &i }

// Bool returns a pointer to b. It is a convenience for optional fields.
func Bool(b bool) *bool { return &b }
