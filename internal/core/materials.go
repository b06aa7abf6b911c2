package core

import (
	"fmt"

	"energyport/internal/osm"
	"energyport/pkg/domain"
)

func newMaterialDispatcher() *Dispatcher[domain.Material, osm.Material] {
	d := NewDispatcher[domain.Material, osm.Material](domain.EntityMaterial)
	d.Register(domain.TypeEnergyMaterial, handle[domain.Material, osm.Material](domain.EntityMaterial, domain.TypeEnergyMaterial, buildOpaqueMaterial))
	d.Register(domain.TypeEnergyMaterialNoMass, handle[domain.Material, osm.Material](domain.EntityMaterial, domain.TypeEnergyMaterialNoMass, buildNoMassMaterial))
	d.Register(domain.TypeEnergyWindowMaterialGas, handle[domain.Material, osm.Material](domain.EntityMaterial, domain.TypeEnergyWindowMaterialGas, buildGas))
	d.Register(domain.TypeEnergyWindowMaterialGasCustom, handle[domain.Material, osm.Material](domain.EntityMaterial, domain.TypeEnergyWindowMaterialGasCustom, buildGasCustom))
	d.Register(domain.TypeEnergyWindowMaterialGasMixture, handle[domain.Material, osm.Material](domain.EntityMaterial, domain.TypeEnergyWindowMaterialGasMixture, buildGasMixture))
	d.Register(domain.TypeEnergyWindowMaterialSimpleGlazSys, handle[domain.Material, osm.Material](domain.EntityMaterial, domain.TypeEnergyWindowMaterialSimpleGlazSys, buildSimpleGlazing))
	d.Register(domain.TypeEnergyWindowMaterialGlazing, handle[domain.Material, osm.Material](domain.EntityMaterial, domain.TypeEnergyWindowMaterialGlazing, buildGlazing))
	d.Register(domain.TypeEnergyWindowMaterialBlind, handle[domain.Material, osm.Material](domain.EntityMaterial, domain.TypeEnergyWindowMaterialBlind, buildBlind))
	d.Register(domain.TypeEnergyWindowMaterialShade, handle[domain.Material, osm.Material](domain.EntityMaterial, domain.TypeEnergyWindowMaterialShade, buildWindowShade))
	return d
}

func buildOpaqueMaterial(bc *BuildContext, rec *domain.EnergyMaterial) (*osm.StandardOpaqueMaterial, error) {
	return findOrCreate(bc, domain.EntityMaterial, rec.RecordName(), func() (*osm.StandardOpaqueMaterial, error) {
		p := bc.props(rec.Type)
		mat := &osm.StandardOpaqueMaterial{
			Base:               osm.Base{Name: rec.RecordName()},
			Roughness:          p.str("roughness", rec.Roughness),
			Thickness:          p.float("thickness", rec.Thickness),
			Conductivity:       p.float("conductivity", rec.Conductivity),
			Density:            p.float("density", rec.Density),
			SpecificHeat:       p.float("specific_heat", rec.SpecificHeat),
			ThermalAbsorptance: p.float("thermal_absorptance", rec.ThermalAbsorptance),
			SolarAbsorptance:   p.float("solar_absorptance", rec.SolarAbsorptance),
			VisibleAbsorptance: p.float("visible_absorptance", rec.VisibleAbsorptance),
		}
		return mat, p.err()
	})
}

func buildNoMassMaterial(bc *BuildContext, rec *domain.EnergyMaterialNoMass) (*osm.MasslessOpaqueMaterial, error) {
	return findOrCreate(bc, domain.EntityMaterial, rec.RecordName(), func() (*osm.MasslessOpaqueMaterial, error) {
		p := bc.props(rec.Type)
		mat := &osm.MasslessOpaqueMaterial{
			Base:               osm.Base{Name: rec.RecordName()},
			Roughness:          p.str("roughness", rec.Roughness),
			ThermalResistance:  p.float("r_value", rec.RValue),
			ThermalAbsorptance: p.float("thermal_absorptance", rec.ThermalAbsorptance),
			SolarAbsorptance:   p.float("solar_absorptance", rec.SolarAbsorptance),
			VisibleAbsorptance: p.float("visible_absorptance", rec.VisibleAbsorptance),
		}
		return mat, p.err()
	})
}

func buildGas(bc *BuildContext, rec *domain.EnergyWindowMaterialGas) (*osm.Gas, error) {
	return findOrCreate(bc, domain.EntityMaterial, rec.RecordName(), func() (*osm.Gas, error) {
		p := bc.props(rec.Type)
		gas := &osm.Gas{
			Base:      osm.Base{Name: rec.RecordName()},
			GasType:   p.str("gas_type", rec.GasType),
			Thickness: p.float("thickness", rec.Thickness),
		}
		return gas, p.err()
	})
}

func buildGasCustom(bc *BuildContext, rec *domain.EnergyWindowMaterialGasCustom) (*osm.Gas, error) {
	return findOrCreate(bc, domain.EntityMaterial, rec.RecordName(), func() (*osm.Gas, error) {
		p := bc.props(rec.Type)
		gas := &osm.Gas{
			Base:      osm.Base{Name: rec.RecordName()},
			GasType:   osm.GasTypeCustom,
			Thickness: p.float("thickness", rec.Thickness),
			Custom: &osm.GasCustom{
				ConductivityCoefficientA: p.float("conductivity_coeff_a", rec.ConductivityCoeffA),
				ConductivityCoefficientB: p.float("conductivity_coeff_b", rec.ConductivityCoeffB),
				ConductivityCoefficientC: p.float("conductivity_coeff_c", rec.ConductivityCoeffC),
				ViscosityCoefficientA:    p.float("viscosity_coeff_a", rec.ViscosityCoeffA),
				ViscosityCoefficientB:    p.float("viscosity_coeff_b", rec.ViscosityCoeffB),
				ViscosityCoefficientC:    p.float("viscosity_coeff_c", rec.ViscosityCoeffC),
				SpecificHeatCoefficientA: p.float("specific_heat_coeff_a", rec.SpecificHeatCoeffA),
				SpecificHeatCoefficientB: p.float("specific_heat_coeff_b", rec.SpecificHeatCoeffB),
				SpecificHeatCoefficientC: p.float("specific_heat_coeff_c", rec.SpecificHeatCoeffC),
				SpecificHeatRatio:        p.float("specific_heat_ratio", rec.SpecificHeatRatio),
				MolecularWeight:          p.float("molecular_weight", rec.MolecularWeight),
			},
		}
		return gas, p.err()
	})
}

func buildGasMixture(bc *BuildContext, rec *domain.EnergyWindowMaterialGasMixture) (*osm.GasMixture, error) {
	return findOrCreate(bc, domain.EntityMaterial, rec.RecordName(), func() (*osm.GasMixture, error) {
		p := bc.props(rec.Type)
		thickness := p.float("thickness", rec.Thickness)
		types := p.strings("gas_types", rec.GasTypes)
		fractions := p.floats("gas_fractions", rec.GasFractions)
		if err := p.err(); err != nil {
			return nil, err
		}
		if len(types) != len(fractions) {
			return nil, fmt.Errorf("gas mixture %q: %d gas types but %d fractions", rec.RecordName(), len(types), len(fractions))
		}
		mix := &osm.GasMixture{Base: osm.Base{Name: rec.RecordName()}, Thickness: thickness}
		for i, gasType := range types {
			mix.Gases = append(mix.Gases, osm.GasFraction{GasType: gasType, Fraction: fractions[i]})
		}
		return mix, nil
	})
}

func buildSimpleGlazing(bc *BuildContext, rec *domain.EnergyWindowMaterialSimpleGlazSys) (*osm.SimpleGlazing, error) {
	return findOrCreate(bc, domain.EntityMaterial, rec.RecordName(), func() (*osm.SimpleGlazing, error) {
		p := bc.props(rec.Type)
		glz := &osm.SimpleGlazing{
			Base:                     osm.Base{Name: rec.RecordName()},
			UFactor:                  p.float("u_factor", rec.UFactor),
			SolarHeatGainCoefficient: p.float("shgc", rec.SHGC),
			VisibleTransmittance:     p.float("vt", rec.VT),
		}
		return glz, p.err()
	})
}

func buildGlazing(bc *BuildContext, rec *domain.EnergyWindowMaterialGlazing) (*osm.StandardGlazing, error) {
	return findOrCreate(bc, domain.EntityMaterial, rec.RecordName(), func() (*osm.StandardGlazing, error) {
		p := bc.props(rec.Type)
		glz := &osm.StandardGlazing{
			Base:                        osm.Base{Name: rec.RecordName()},
			Thickness:                   p.float("thickness", rec.Thickness),
			SolarTransmittance:          p.float("solar_transmittance", rec.SolarTransmittance),
			FrontSideSolarReflectance:   p.float("solar_reflectance", rec.SolarReflectance),
			BackSideSolarReflectance:    p.float("solar_reflectance_back", rec.SolarReflectanceBack),
			VisibleTransmittance:        p.float("visible_transmittance", rec.VisibleTransmittance),
			FrontSideVisibleReflectance: p.float("visible_reflectance", rec.VisibleReflectance),
			BackSideVisibleReflectance:  p.float("visible_reflectance_back", rec.VisibleReflectanceBack),
			InfraredTransmittance:       p.float("infrared_transmittance", rec.InfraredTransmittance),
			Conductivity:                p.float("conductivity", rec.Conductivity),
			DirtCorrectionFactor:        p.float("dirt_correction", rec.DirtCorrection),
			SolarDiffusing:              p.yesNo("solar_diffusing", rec.SolarDiffusing),
		}
		glz.FrontSideInfraredHemisphericalEmissivity = p.float("emissivity", rec.Emissivity)
		glz.BackSideInfraredHemisphericalEmissivity = p.float("emissivity_back", rec.EmissivityBack)
		return glz, p.err()
	})
}

func buildBlind(bc *BuildContext, rec *domain.EnergyWindowMaterialBlind) (*osm.Blind, error) {
	return findOrCreate(bc, domain.EntityMaterial, rec.RecordName(), func() (*osm.Blind, error) {
		p := bc.props(rec.Type)
		blind := &osm.Blind{
			Base:                                   osm.Base{Name: rec.RecordName()},
			SlatOrientation:                        p.str("slat_orientation", rec.SlatOrientation),
			SlatWidth:                              p.float("slat_width", rec.SlatWidth),
			SlatSeparation:                         p.float("slat_separation", rec.SlatSeparation),
			SlatThickness:                          p.float("slat_thickness", rec.SlatThickness),
			SlatAngle:                              p.float("slat_angle", rec.SlatAngle),
			SlatConductivity:                       p.float("slat_conductivity", rec.SlatConductivity),
			SlatBeamSolarTransmittance:             p.float("beam_solar_transmittance", rec.BeamSolarTransmittance),
			FrontSideSlatBeamSolarReflectance:      p.float("beam_solar_reflectance", rec.BeamSolarReflectance),
			BackSideSlatBeamSolarReflectance:       p.float("beam_solar_reflectance_back", rec.BeamSolarReflectanceBack),
			SlatDiffuseSolarTransmittance:          p.float("diffuse_solar_transmittance", rec.DiffuseSolarTransmittance),
			FrontSideSlatDiffuseSolarReflectance:   p.float("diffuse_solar_reflectance", rec.DiffuseSolarReflectance),
			BackSideSlatDiffuseSolarReflectance:    p.float("diffuse_solar_reflectance_back", rec.DiffuseSolarReflectanceBack),
			SlatBeamVisibleTransmittance:           p.float("beam_visible_transmittance", rec.BeamVisibleTransmittance),
			FrontSideSlatBeamVisibleReflectance:    p.float("beam_visible_reflectance", rec.BeamVisibleReflectance),
			BackSideSlatBeamVisibleReflectance:     p.float("beam_visible_reflectance_back", rec.BeamVisibleReflectanceBack),
			SlatDiffuseVisibleTransmittance:        p.float("diffuse_visible_transmittance", rec.DiffuseVisibleTransmittance),
			FrontSideSlatDiffuseVisibleReflectance: p.float("diffuse_visible_reflectance", rec.DiffuseVisibleReflectance),
			BackSideSlatDiffuseVisibleReflectance:  p.float("diffuse_visible_reflectance_back", rec.DiffuseVisibleReflectanceBack),
			SlatInfraredTransmittance:              p.float("infrared_transmittance", rec.InfraredTransmittance),
			FrontSideSlatInfraredEmissivity:        p.float("emissivity", rec.Emissivity),
			BackSideSlatInfraredEmissivity:         p.float("emissivity_back", rec.EmissivityBack),
			BlindToGlassDistance:                   p.float("distance_to_glass", rec.DistanceToGlass),
			TopOpeningMultiplier:                   p.float("top_opening_multiplier", rec.TopOpeningMultiplier),
			BottomOpeningMultiplier:                p.float("bottom_opening_multiplier", rec.BottomOpeningMultiplier),
			LeftOpeningMultiplier:                  p.float("left_opening_multiplier", rec.LeftOpeningMultiplier),
			RightOpeningMultiplier:                 p.float("right_opening_multiplier", rec.RightOpeningMultiplier),
		}
		return blind, p.err()
	})
}

func buildWindowShade(bc *BuildContext, rec *domain.EnergyWindowMaterialShade) (*osm.WindowShade, error) {
	return findOrCreate(bc, domain.EntityMaterial, rec.RecordName(), func() (*osm.WindowShade, error) {
		p := bc.props(rec.Type)
		shade := &osm.WindowShade{
			Base:                           osm.Base{Name: rec.RecordName()},
			SolarTransmittance:             p.float("solar_transmittance", rec.SolarTransmittance),
			SolarReflectance:               p.float("solar_reflectance", rec.SolarReflectance),
			VisibleTransmittance:           p.float("visible_transmittance", rec.VisibleTransmittance),
			VisibleReflectance:             p.float("visible_reflectance", rec.VisibleReflectance),
			ThermalHemisphericalEmissivity: p.float("emissivity", rec.Emissivity),
			ThermalTransmittance:           p.float("infrared_transmittance", rec.InfraredTransmittance),
			Thickness:                      p.float("thickness", rec.Thickness),
			Conductivity:                   p.float("conductivity", rec.Conductivity),
			ShadeToGlassDistance:           p.float("distance_to_glass", rec.DistanceToGlass),
			TopOpeningMultiplier:           p.float("top_opening_multiplier", rec.TopOpeningMultiplier),
			BottomOpeningMultiplier:        p.float("bottom_opening_multiplier", rec.BottomOpeningMultiplier),
			LeftOpeningMultiplier:          p.float("left_opening_multiplier", rec.LeftOpeningMultiplier),
			RightOpeningMultiplier:         p.float("right_opening_multiplier", rec.RightOpeningMultiplier),
			AirflowPermeability:            p.float("airflow_permeability", rec.AirflowPermeability),
		}
		return shade, p.err()
	})
}
