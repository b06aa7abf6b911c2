package osm

// Material is a construction layer.
type Material interface {
	Object
	// Fenestration reports whether the layer belongs in a window construction.
	Fenestration() bool
}

// StandardOpaqueMaterial is a massive opaque layer.
type StandardOpaqueMaterial struct {
	Base
	Roughness          string  `json:"roughness"`
	Thickness          float64 `json:"thickness"`
	Conductivity       float64 `json:"conductivity"`
	Density            float64 `json:"density"`
	SpecificHeat       float64 `json:"specific_heat"`
	ThermalAbsorptance float64 `json:"thermal_absorptance"`
	SolarAbsorptance   float64 `json:"solar_absorptance"`
	VisibleAbsorptance float64 `json:"visible_absorptance"`
}

// MasslessOpaqueMaterial is an opaque layer described only by its resistance.
type MasslessOpaqueMaterial struct {
	Base
	Roughness          string  `json:"roughness"`
	ThermalResistance  float64 `json:"thermal_resistance"`
	ThermalAbsorptance float64 `json:"thermal_absorptance"`
	SolarAbsorptance   float64 `json:"solar_absorptance"`
	VisibleAbsorptance float64 `json:"visible_absorptance"`
}

// GasCustom is the set of coefficients used when Gas.GasType is "Custom".
type GasCustom struct {
	ConductivityCoefficientA float64 `json:"conductivity_coefficient_a"`
	ConductivityCoefficientB float64 `json:"conductivity_coefficient_b"`
	ConductivityCoefficientC float64 `json:"conductivity_coefficient_c"`
	ViscosityCoefficientA    float64 `json:"viscosity_coefficient_a"`
	ViscosityCoefficientB    float64 `json:"viscosity_coefficient_b"`
	ViscosityCoefficientC    float64 `json:"viscosity_coefficient_c"`
	SpecificHeatCoefficientA float64 `json:"specific_heat_coefficient_a"`
	SpecificHeatCoefficientB float64 `json:"specific_heat_coefficient_b"`
	SpecificHeatCoefficientC float64 `json:"specific_heat_coefficient_c"`
	SpecificHeatRatio        float64 `json:"specific_heat_ratio"`
	MolecularWeight          float64 `json:"molecular_weight"`
}

// GasTypeCustom marks a gas layer described by its own coefficients.
const GasTypeCustom = "Custom"

// Gas is a single-gas cavity layer.
type Gas struct {
	Base
	GasType   string     `json:"gas_type"`
	Thickness float64    `json:"thickness"`
	Custom    *GasCustom `json:"custom,omitempty"`
}

// GasFraction is one component of a gas mixture.
type GasFraction struct {
	GasType  string  `json:"gas_type"`
	Fraction float64 `json:"fraction"`
}

// GasMixture is a cavity layer filled with up to four gases.
type GasMixture struct {
	Base
	Thickness float64       `json:"thickness"`
	Gases     []GasFraction `json:"gases"`
}

// SimpleGlazing is a whole-window glazing system.
type SimpleGlazing struct {
	Base
	UFactor                  float64 `json:"u_factor"`
	SolarHeatGainCoefficient float64 `json:"solar_heat_gain_coefficient"`
	VisibleTransmittance     float64 `json:"visible_transmittance"`
}

// StandardGlazing is a single glass pane with independent front and back
// optical properties.
type StandardGlazing struct {
	Base
	Thickness                                float64 `json:"thickness"`
	SolarTransmittance                       float64 `json:"solar_transmittance"`
	FrontSideSolarReflectance                float64 `json:"front_side_solar_reflectance"`
	BackSideSolarReflectance                 float64 `json:"back_side_solar_reflectance"`
	VisibleTransmittance                     float64 `json:"visible_transmittance"`
	FrontSideVisibleReflectance              float64 `json:"front_side_visible_reflectance"`
	BackSideVisibleReflectance               float64 `json:"back_side_visible_reflectance"`
	InfraredTransmittance                    float64 `json:"infrared_transmittance"`
	FrontSideInfraredHemisphericalEmissivity float64 `json:"front_side_infrared_hemispherical_emissivity"`
	BackSideInfraredHemisphericalEmissivity  float64 `json:"back_side_infrared_hemispherical_emissivity"`
	Conductivity                             float64 `json:"conductivity"`
	DirtCorrectionFactor                     float64 `json:"dirt_correction_factor"`
	SolarDiffusing                           bool    `json:"solar_diffusing"`
}

// Blind is a slatted shading layer.
type Blind struct {
	Base
	SlatOrientation                        string  `json:"slat_orientation"`
	SlatWidth                              float64 `json:"slat_width"`
	SlatSeparation                         float64 `json:"slat_separation"`
	SlatThickness                          float64 `json:"slat_thickness"`
	SlatAngle                              float64 `json:"slat_angle"`
	SlatConductivity                       float64 `json:"slat_conductivity"`
	SlatBeamSolarTransmittance             float64 `json:"slat_beam_solar_transmittance"`
	FrontSideSlatBeamSolarReflectance      float64 `json:"front_side_slat_beam_solar_reflectance"`
	BackSideSlatBeamSolarReflectance       float64 `json:"back_side_slat_beam_solar_reflectance"`
	SlatDiffuseSolarTransmittance          float64 `json:"slat_diffuse_solar_transmittance"`
	FrontSideSlatDiffuseSolarReflectance   float64 `json:"front_side_slat_diffuse_solar_reflectance"`
	BackSideSlatDiffuseSolarReflectance    float64 `json:"back_side_slat_diffuse_solar_reflectance"`
	SlatBeamVisibleTransmittance           float64 `json:"slat_beam_visible_transmittance"`
	FrontSideSlatBeamVisibleReflectance    float64 `json:"front_side_slat_beam_visible_reflectance"`
	BackSideSlatBeamVisibleReflectance     float64 `json:"back_side_slat_beam_visible_reflectance"`
	SlatDiffuseVisibleTransmittance        float64 `json:"slat_diffuse_visible_transmittance"`
	FrontSideSlatDiffuseVisibleReflectance float64 `json:"front_side_slat_diffuse_visible_reflectance"`
	BackSideSlatDiffuseVisibleReflectance  float64 `json:"back_side_slat_diffuse_visible_reflectance"`
	SlatInfraredTransmittance              float64 `json:"slat_infrared_transmittance"`
	FrontSideSlatInfraredEmissivity        float64 `json:"front_side_slat_infrared_emissivity"`
	BackSideSlatInfraredEmissivity         float64 `json:"back_side_slat_infrared_emissivity"`
	BlindToGlassDistance                   float64 `json:"blind_to_glass_distance"`
	TopOpeningMultiplier                   float64 `json:"top_opening_multiplier"`
	BottomOpeningMultiplier                float64 `json:"bottom_opening_multiplier"`
	LeftOpeningMultiplier                  float64 `json:"left_opening_multiplier"`
	RightOpeningMultiplier                 float64 `json:"right_opening_multiplier"`
}

// WindowShade is a diffusing shade layer.
type WindowShade struct {
	Base
	SolarTransmittance             float64 `json:"solar_transmittance"`
	SolarReflectance               float64 `json:"solar_reflectance"`
	VisibleTransmittance           float64 `json:"visible_transmittance"`
	VisibleReflectance             float64 `json:"visible_reflectance"`
	ThermalHemisphericalEmissivity float64 `json:"thermal_hemispherical_emissivity"`
	ThermalTransmittance           float64 `json:"thermal_transmittance"`
	Thickness                      float64 `json:"thickness"`
	Conductivity                   float64 `json:"conductivity"`
	ShadeToGlassDistance           float64 `json:"shade_to_glass_distance"`
	TopOpeningMultiplier           float64 `json:"top_opening_multiplier"`
	BottomOpeningMultiplier        float64 `json:"bottom_opening_multiplier"`
	LeftOpeningMultiplier          float64 `json:"left_opening_multiplier"`
	RightOpeningMultiplier         float64 `json:"right_opening_multiplier"`
	AirflowPermeability            float64 `json:"airflow_permeability"`
}

func (*StandardOpaqueMaterial) Kind() Kind { return KindStandardOpaqueMaterial }
func (*MasslessOpaqueMaterial) Kind() Kind { return KindMasslessOpaqueMaterial }
func (*Gas) Kind() Kind                    { return KindGas }
func (*GasMixture) Kind() Kind             { return KindGasMixture }
func (*SimpleGlazing) Kind() Kind          { return KindSimpleGlazing }
func (*StandardGlazing) Kind() Kind        { return KindStandardGlazing }
func (*Blind) Kind() Kind                  { return KindBlind }
func (*WindowShade) Kind() Kind            { return KindWindowShade }

func (*StandardOpaqueMaterial) Fenestration() bool { return false }
func (*MasslessOpaqueMaterial) Fenestration() bool { return false }
func (*Gas) Fenestration() bool                    { return true }
func (*GasMixture) Fenestration() bool             { return true }
func (*SimpleGlazing) Fenestration() bool          { return true }
func (*StandardGlazing) Fenestration() bool        { return true }
func (*Blind) Fenestration() bool                  { return true }
func (*WindowShade) Fenestration() bool            { return true }

// MaterialKinds lists the kinds whose objects implement Material.
func MaterialKinds() []Kind {
	return []Kind{
		KindStandardOpaqueMaterial, KindMasslessOpaqueMaterial, KindGas, KindGasMixture,
		KindSimpleGlazing, KindStandardGlazing, KindBlind, KindWindowShade,
	}
}

// LookupMaterial finds a material of any kind by name.
func (m *Model) LookupMaterial(name string) (Material, bool) {
	for _, kind := range MaterialKinds() {
		if obj, ok := m.Lookup(kind, name); ok {
			mat, ok := obj.(Material)
			return mat, ok
		}
	}
	return nil, false
}
