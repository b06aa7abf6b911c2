package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

const polymorphicDoc = `{
  "type": "Model",
  "identifier": "Shoebox",
  "properties": {
    "type": "ModelProperties",
    "energy": {
      "type": "ModelEnergyProperties",
      "materials": [
        {"type": "EnergyMaterial", "name": "Brick", "thickness": 0.1, "conductivity": 0.9, "density": 1900, "specific_heat": 840},
        {"type": "EnergyWindowMaterialGas", "name": "Gap", "thickness": 0.0127, "gas_type": "Argon"}
      ],
      "constructions": [
        {"type": "OpaqueConstructionAbridged", "name": "Wall", "layers": ["Brick"]}
      ],
      "schedules": [
        {"type": "ScheduleFixedIntervalAbridged", "name": "Load", "values": [0.5, 1]}
      ],
      "hvacs": [
        {"type": "IdealAirSystemAbridged", "name": "Air", "economizer_type": "NoEconomizer"}
      ]
    }
  }
}`

func TestDecodeModelResolvesVariants(t *testing.T) {
	model, err := DecodeModel([]byte(polymorphicDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if model.RecordName() != "Shoebox" {
		t.Fatalf("expected identifier to name the model, got %q", model.RecordName())
	}
	energy := model.Energy()
	if energy == nil || len(energy.Materials) != 2 {
		t.Fatalf("unexpected energy properties %+v", energy)
	}
	brick, ok := energy.Materials[0].(*EnergyMaterial)
	if !ok || *brick.Conductivity != 0.9 || brick.Roughness != nil {
		t.Fatalf("expected opaque brick with unset roughness, got %#v", energy.Materials[0])
	}
	if _, ok := energy.Materials[1].(*EnergyWindowMaterialGas); !ok {
		t.Fatalf("expected gas layer, got %T", energy.Materials[1])
	}
	if _, ok := energy.Constructions[0].(*OpaqueConstructionAbridged); !ok {
		t.Fatalf("expected opaque construction, got %T", energy.Constructions[0])
	}
	if _, ok := energy.Schedules[0].(*ScheduleFixedIntervalAbridged); !ok {
		t.Fatalf("expected fixed interval schedule, got %T", energy.Schedules[0])
	}
	if air, ok := energy.HVACs[0].(*IdealAirSystemAbridged); !ok || *air.EconomizerType != "NoEconomizer" {
		t.Fatalf("unexpected hvac %#v", energy.HVACs[0])
	}
}

func TestDecodeModelRejectsUnknownDiscriminant(t *testing.T) {
	doc := `{"type": "Model", "name": "M", "properties": {"energy": {"materials": [{"type": "Concrete", "name": "Slab"}]}}}`
	_, err := DecodeModel([]byte(doc))
	var unknown *UnknownTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
	if unknown.Category != EntityMaterial || unknown.Name != "Slab" || unknown.Type != "Concrete" {
		t.Fatalf("unexpected error fields %+v", unknown)
	}
}

func TestDecodeModelRejectsWrongRootType(t *testing.T) {
	_, err := DecodeModel([]byte(`{"type": "SimulationParameter"}`))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if _, err := DecodeModel([]byte(`{"type": `)); err == nil {
		t.Fatal("expected malformed JSON to fail")
	}
}

func TestDecodeSimulationParameter(t *testing.T) {
	doc := `{
	  "type": "SimulationParameter",
	  "timestep": 4,
	  "run_period": {"start_date": [1, 1], "end_date": [6, 30], "leap_year": true},
	  "sizing_parameter": {"design_days": [{"name": "Hot", "day_type": "SummerDesignDay",
	    "sky_condition": {"type": "ASHRAETau", "date": [7, 21], "tau_b": 0.4, "tau_d": 2.1}}]}
	}`
	params, err := DecodeSimulationParameter([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *params.Timestep != 4 || params.RunPeriod.EndDate[0] != 6 || !*params.RunPeriod.LeapYear {
		t.Fatalf("unexpected run settings %+v %+v", params, params.RunPeriod)
	}
	day := params.SizingParameter.DesignDays[0]
	if day.SkyCondition.Type != "ASHRAETau" || *day.SkyCondition.TauD != 2.1 {
		t.Fatalf("unexpected sky %+v", day.SkyCondition)
	}
	if _, err := DecodeSimulationParameter([]byte(`{"type": "Model"}`)); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
}

func TestModelEncodesVariantsWithDiscriminant(t *testing.T) {
	model, err := DecodeModel([]byte(polymorphicDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := DecodeModel(data)
	if err != nil {
		t.Fatalf("decode re-encoded document: %v", err)
	}
	if len(again.Energy().Materials) != 2 || again.Energy().Materials[1].RecordType() != TypeEnergyWindowMaterialGas {
		t.Fatalf("expected materials to keep their discriminants, got %+v", again.Energy().Materials)
	}
}

func TestBaseRecordNamePrefersName(t *testing.T) {
	b := Base{Name: "Legacy", Identifier: "new_id"}
	if b.RecordName() != "Legacy" {
		t.Fatalf("expected name to win, got %q", b.RecordName())
	}
	b.Name = ""
	if b.RecordName() != "new_id" {
		t.Fatalf("expected identifier fallback, got %q", b.RecordName())
	}
}
