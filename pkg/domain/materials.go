package domain

// Material discriminants.
const (
	TypeEnergyMaterial                    = "EnergyMaterial"
	TypeEnergyMaterialNoMass              = "EnergyMaterialNoMass"
	TypeEnergyWindowMaterialGas           = "EnergyWindowMaterialGas"
	TypeEnergyWindowMaterialGasCustom     = "EnergyWindowMaterialGasCustom"
	TypeEnergyWindowMaterialGasMixture    = "EnergyWindowMaterialGasMixture"
	TypeEnergyWindowMaterialSimpleGlazSys = "EnergyWindowMaterialSimpleGlazSys"
	TypeEnergyWindowMaterialGlazing       = "EnergyWindowMaterialGlazing"
	TypeEnergyWindowMaterialBlind         = "EnergyWindowMaterialBlind"
	TypeEnergyWindowMaterialShade         = "EnergyWindowMaterialShade"
)

// MaterialTypes lists every material discriminant understood by the decoder.
func MaterialTypes() []string {
	return []string{
		TypeEnergyMaterial,
		TypeEnergyMaterialNoMass,
		TypeEnergyWindowMaterialGas,
		TypeEnergyWindowMaterialGasCustom,
		TypeEnergyWindowMaterialGasMixture,
		TypeEnergyWindowMaterialSimpleGlazSys,
		TypeEnergyWindowMaterialGlazing,
		TypeEnergyWindowMaterialBlind,
		TypeEnergyWindowMaterialShade,
	}
}

// Material is the closed set of material records.
type Material interface {
	Record
	isMaterial()
}

// EnergyMaterial is an opaque material with mass.
type EnergyMaterial struct {
	Base
	Roughness          *string  `json:"roughness,omitempty"`
	Thickness          *float64 `json:"thickness,omitempty"`
	Conductivity       *float64 `json:"conductivity,omitempty"`
	Density            *float64 `json:"density,omitempty"`
	SpecificHeat       *float64 `json:"specific_heat,omitempty"`
	ThermalAbsorptance *float64 `json:"thermal_absorptance,omitempty"`
	SolarAbsorptance   *float64 `json:"solar_absorptance,omitempty"`
	VisibleAbsorptance *float64 `json:"visible_absorptance,omitempty"`
}

// EnergyMaterialNoMass is an opaque material described only by its resistance.
type EnergyMaterialNoMass struct {
	Base
	RValue             *float64 `json:"r_value,omitempty"`
	Roughness          *string  `json:"roughness,omitempty"`
	ThermalAbsorptance *float64 `json:"thermal_absorptance,omitempty"`
	SolarAbsorptance   *float64 `json:"solar_absorptance,omitempty"`
	VisibleAbsorptance *float64 `json:"visible_absorptance,omitempty"`
}

// EnergyWindowMaterialGas is a gap filled with a standard gas.
type EnergyWindowMaterialGas struct {
	Base
	Thickness *float64 `json:"thickness,omitempty"`
	GasType   *string  `json:"gas_type,omitempty"`
}

// EnergyWindowMaterialGasCustom is a gap filled with a gas described by its
// property coefficients.
type EnergyWindowMaterialGasCustom struct {
	Base
	Thickness          *float64 `json:"thickness,omitempty"`
	ConductivityCoeffA *float64 `json:"conductivity_coeff_a,omitempty"`
	ViscosityCoeffA    *float64 `json:"viscosity_coeff_a,omitempty"`
	SpecificHeatCoeffA *float64 `json:"specific_heat_coeff_a,omitempty"`
	ConductivityCoeffB *float64 `json:"conductivity_coeff_b,omitempty"`
	ViscosityCoeffB    *float64 `json:"viscosity_coeff_b,omitempty"`
	SpecificHeatCoeffB *float64 `json:"specific_heat_coeff_b,omitempty"`
	ConductivityCoeffC *float64 `json:"conductivity_coeff_c,omitempty"`
	ViscosityCoeffC    *float64 `json:"viscosity_coeff_c,omitempty"`
	SpecificHeatCoeffC *float64 `json:"specific_heat_coeff_c,omitempty"`
	SpecificHeatRatio  *float64 `json:"specific_heat_ratio,omitempty"`
	MolecularWeight    *float64 `json:"molecular_weight,omitempty"`
}

// EnergyWindowMaterialGasMixture is a gap filled with up to four gases. The
// gas types and fractions are parallel lists.
type EnergyWindowMaterialGasMixture struct {
	Base
	Thickness    *float64  `json:"thickness,omitempty"`
	GasTypes     []string  `json:"gas_types,omitempty"`
	GasFractions []float64 `json:"gas_fractions,omitempty"`
}

// EnergyWindowMaterialSimpleGlazSys is a whole-window simple glazing system.
type EnergyWindowMaterialSimpleGlazSys struct {
	Base
	UFactor *float64 `json:"u_factor,omitempty"`
	SHGC    *float64 `json:"shgc,omitempty"`
	VT      *float64 `json:"vt,omitempty"`
}

// EnergyWindowMaterialGlazing is a single glass pane.
type EnergyWindowMaterialGlazing struct {
	Base
	Thickness              *float64 `json:"thickness,omitempty"`
	SolarTransmittance     *float64 `json:"solar_transmittance,omitempty"`
	SolarReflectance       *float64 `json:"solar_reflectance,omitempty"`
	SolarReflectanceBack   *float64 `json:"solar_reflectance_back,omitempty"`
	VisibleTransmittance   *float64 `json:"visible_transmittance,omitempty"`
	VisibleReflectance     *float64 `json:"visible_reflectance,omitempty"`
	VisibleReflectanceBack *float64 `json:"visible_reflectance_back,omitempty"`
	InfraredTransmittance  *float64 `json:"infrared_transmittance,omitempty"`
	Emissivity             *float64 `json:"emissivity,omitempty"`
	EmissivityBack         *float64 `json:"emissivity_back,omitempty"`
	Conductivity           *float64 `json:"conductivity,omitempty"`
	DirtCorrection         *float64 `json:"dirt_correction,omitempty"`
	SolarDiffusing         *string  `json:"solar_diffusing,omitempty"`
}

// EnergyWindowMaterialBlind is a slatted shading layer.
type EnergyWindowMaterialBlind struct {
	Base
	SlatOrientation               *string  `json:"slat_orientation,omitempty"`
	SlatWidth                     *float64 `json:"slat_width,omitempty"`
	SlatSeparation                *float64 `json:"slat_separation,omitempty"`
	SlatThickness                 *float64 `json:"slat_thickness,omitempty"`
	SlatAngle                     *float64 `json:"slat_angle,omitempty"`
	SlatConductivity              *float64 `json:"slat_conductivity,omitempty"`
	BeamSolarTransmittance        *float64 `json:"beam_solar_transmittance,omitempty"`
	BeamSolarReflectance          *float64 `json:"beam_solar_reflectance,omitempty"`
	BeamSolarReflectanceBack      *float64 `json:"beam_solar_reflectance_back,omitempty"`
	DiffuseSolarTransmittance     *float64 `json:"diffuse_solar_transmittance,omitempty"`
	DiffuseSolarReflectance       *float64 `json:"diffuse_solar_reflectance,omitempty"`
	DiffuseSolarReflectanceBack   *float64 `json:"diffuse_solar_reflectance_back,omitempty"`
	BeamVisibleTransmittance      *float64 `json:"beam_visible_transmittance,omitempty"`
	BeamVisibleReflectance        *float64 `json:"beam_visible_reflectance,omitempty"`
	BeamVisibleReflectanceBack    *float64 `json:"beam_visible_reflectance_back,omitempty"`
	DiffuseVisibleTransmittance   *float64 `json:"diffuse_visible_transmittance,omitempty"`
	DiffuseVisibleReflectance     *float64 `json:"diffuse_visible_reflectance,omitempty"`
	DiffuseVisibleReflectanceBack *float64 `json:"diffuse_visible_reflectance_back,omitempty"`
	InfraredTransmittance         *float64 `json:"infrared_transmittance,omitempty"`
	Emissivity                    *float64 `json:"emissivity,omitempty"`
	EmissivityBack                *float64 `json:"emissivity_back,omitempty"`
	DistanceToGlass               *float64 `json:"distance_to_glass,omitempty"`
	TopOpeningMultiplier          *float64 `json:"top_opening_multiplier,omitempty"`
	BottomOpeningMultiplier       *float64 `json:"bottom_opening_multiplier,omitempty"`
	LeftOpeningMultiplier         *float64 `json:"left_opening_multiplier,omitempty"`
	RightOpeningMultiplier        *float64 `json:"right_opening_multiplier,omitempty"`
}

// EnergyWindowMaterialShade is a diffusing shade layer.
type EnergyWindowMaterialShade struct {
	Base
	SolarTransmittance      *float64 `json:"solar_transmittance,omitempty"`
	SolarReflectance        *float64 `json:"solar_reflectance,omitempty"`
	VisibleTransmittance    *float64 `json:"visible_transmittance,omitempty"`
	VisibleReflectance      *float64 `json:"visible_reflectance,omitempty"`
	InfraredTransmittance   *float64 `json:"infrared_transmittance,omitempty"`
	Emissivity              *float64 `json:"emissivity,omitempty"`
	Thickness               *float64 `json:"thickness,omitempty"`
	Conductivity            *float64 `json:"conductivity,omitempty"`
	DistanceToGlass         *float64 `json:"distance_to_glass,omitempty"`
	TopOpeningMultiplier    *float64 `json:"top_opening_multiplier,omitempty"`
	BottomOpeningMultiplier *float64 `json:"bottom_opening_multiplier,omitempty"`
	LeftOpeningMultiplier   *float64 `json:"left_opening_multiplier,omitempty"`
	RightOpeningMultiplier  *float64 `json:"right_opening_multiplier,omitempty"`
	AirflowPermeability     *float64 `json:"airflow_permeability,omitempty"`
}

func (*EnergyMaterial) isMaterial()                    {}
func (*EnergyMaterialNoMass) isMaterial()              {}
func (*EnergyWindowMaterialGas) isMaterial()           {}
func (*EnergyWindowMaterialGasCustom) isMaterial()     {}
func (*EnergyWindowMaterialGasMixture) isMaterial()    {}
func (*EnergyWindowMaterialSimpleGlazSys) isMaterial() {}
func (*EnergyWindowMaterialGlazing) isMaterial()       {}
func (*EnergyWindowMaterialBlind) isMaterial()         {}
func (*EnergyWindowMaterialShade) isMaterial()         {}
