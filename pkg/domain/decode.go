package domain

import (
	"encoding/json"
	"fmt"
)

var materialVariants = map[string]func() Material{
	TypeEnergyMaterial:                    func() Material { return new(EnergyMaterial) },
	TypeEnergyMaterialNoMass:              func() Material { return new(EnergyMaterialNoMass) },
	TypeEnergyWindowMaterialGas:           func() Material { return new(EnergyWindowMaterialGas) },
	TypeEnergyWindowMaterialGasCustom:     func() Material { return new(EnergyWindowMaterialGasCustom) },
	TypeEnergyWindowMaterialGasMixture:    func() Material { return new(EnergyWindowMaterialGasMixture) },
	TypeEnergyWindowMaterialSimpleGlazSys: func() Material { return new(EnergyWindowMaterialSimpleGlazSys) },
	TypeEnergyWindowMaterialGlazing:       func() Material { return new(EnergyWindowMaterialGlazing) },
	TypeEnergyWindowMaterialBlind:         func() Material { return new(EnergyWindowMaterialBlind) },
	TypeEnergyWindowMaterialShade:         func() Material { return new(EnergyWindowMaterialShade) },
}

var constructionVariants = map[string]func() Construction{
	TypeOpaqueConstruction: func() Construction { return new(OpaqueConstructionAbridged) },
	TypeWindowConstruction: func() Construction { return new(WindowConstructionAbridged) },
	TypeShadeConstruction:  func() Construction { return new(ShadeConstruction) },
}

var scheduleVariants = map[string]func() Schedule{
	TypeScheduleRuleset:       func() Schedule { return new(ScheduleRulesetAbridged) },
	TypeScheduleFixedInterval: func() Schedule { return new(ScheduleFixedIntervalAbridged) },
}

var hvacVariants = map[string]func() HVAC{
	TypeIdealAirSystem: func() HVAC { return new(IdealAirSystemAbridged) },
}

// UnmarshalJSON decodes the polymorphic resource lists by peeking at each
// record's type discriminant.
func (p *ModelEnergyProperties) UnmarshalJSON(data []byte) error {
	type plain ModelEnergyProperties
	aux := struct {
		*plain
		Materials     []json.RawMessage `json:"materials"`
		Constructions []json.RawMessage `json:"constructions"`
		Schedules     []json.RawMessage `json:"schedules"`
		HVACs         []json.RawMessage `json:"hvacs"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if p.Materials, err = decodeVariants(EntityMaterial, aux.Materials, materialVariants); err != nil {
		return err
	}
	if p.Constructions, err = decodeVariants(EntityConstruction, aux.Constructions, constructionVariants); err != nil {
		return err
	}
	if p.Schedules, err = decodeVariants(EntitySchedule, aux.Schedules, scheduleVariants); err != nil {
		return err
	}
	if p.HVACs, err = decodeVariants(EntityHVAC, aux.HVACs, hvacVariants); err != nil {
		return err
	}
	return nil
}

func decodeVariants[T Record](category EntityType, raws []json.RawMessage, variants map[string]func() T) ([]T, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var head Base
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("decode %s %d: %w", category, i, err)
		}
		newRecord, ok := variants[head.Type]
		if !ok {
			return nil, &UnknownTypeError{Category: category, Name: head.RecordName(), Type: head.Type}
		}
		rec := newRecord()
		if err := json.Unmarshal(raw, rec); err != nil {
			return nil, fmt.Errorf("decode %s %q: %w", category, head.RecordName(), err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// DecodeModel parses a model document. The top-level type must be "Model".
func DecodeModel(data []byte) (*Model, error) {
	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if model.Type != TypeModel {
		return nil, &TypeMismatchError{Category: "model", Name: model.RecordName(), Expected: TypeModel, Actual: model.Type}
	}
	return &model, nil
}

// DecodeSimulationParameter parses a simulation parameter document. The
// top-level type must be "SimulationParameter".
func DecodeSimulationParameter(data []byte) (*SimulationParameter, error) {
	var params SimulationParameter
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("decode simulation parameter: %w", err)
	}
	if params.Type != TypeSimulationParameter {
		return nil, &TypeMismatchError{Category: EntitySimulationParameter, Expected: TypeSimulationParameter, Actual: params.Type}
	}
	return &params, nil
}
