package equation

import (
	"strings"

	"github.com/roach88/simattr/internal/attr"
)

// Variant selects one physics-specific attribute set. Immutable after
// composition.
type Variant string

// The built-in equation variants.
const (
	Magnetodynamic Variant = "magnetodynamic"
	Electrostatic  Variant = "electrostatic"
	HeatTransfer   Variant = "heatTransfer"
)

// TypeTag returns the object type tag composed instances carry.
func (v Variant) TypeTag() string {
	return TypeTagPrefix + string(v)
}

// VariantFromTypeTag recovers the variant from an equation type tag.
// Returns false for non-equation tags and unknown variants.
func VariantFromTypeTag(tag string) (Variant, bool) {
	name, ok := strings.CutPrefix(tag, TypeTagPrefix)
	if !ok {
		return "", false
	}
	v := Variant(name)
	if _, known := variants[v]; !known {
		return "", false
	}
	return v, true
}

// Variants returns the known variants in a stable order.
func Variants() []Variant {
	return []Variant{Magnetodynamic, Electrostatic, HeatTransfer}
}

// override is one table-driven instance-level default applied after
// declaration, reflecting known solver capability limits at composition
// time.
type override struct {
	name  string
	value attr.Value
}

// Constraint is an advisory cross-attribute rule declared by a variant.
// The schema layer allows both attributes to coexist structurally; the
// solver enforces the constraint at consumption time.
type Constraint struct {
	// When names the bool attribute that activates the constraint.
	When string

	// Excludes names the bool attribute that must then be false.
	Excludes string

	// Note explains the restriction to the user.
	Note string
}

// variantSpec is the full data table for one variant.
type variantSpec struct {
	attrs       []attr.Descriptor
	defaults    []override
	constraints []Constraint
}

var variants = map[Variant]variantSpec{
	Magnetodynamic: {
		attrs: []attr.Descriptor{
			{Name: "IsHarmonic", Kind: attr.KindBool, Group: "Magnetodynamic",
				Doc: "If the magnetic source is harmonically driven"},
			{Name: "AngularFrequency", Kind: attr.KindFrequency, Group: "Magnetodynamic",
				Doc: "Frequency of the driving current"},
			{Name: "UsePiolaTransform", Kind: attr.KindBool, Group: "Magnetodynamic",
				Doc: "Must be true if basis functions for edge element interpolation " +
					"are members of the optimal edge element family " +
					"or if second-order approximation is used"},
			{Name: "QuadraticApproximation", Kind: attr.KindBool, Group: "Magnetodynamic",
				Doc: "Enables second-order approximation of driving current"},
			{Name: "StaticConductivity", Kind: attr.KindBool, Group: "Magnetodynamic",
				Doc: "See solver models manual for info"},
			{Name: "FixInputCurrentDensity", Kind: attr.KindBool, Group: "Magnetodynamic",
				Doc: "Ensures divergence-freeness of current density"},
			{Name: "AutomatedSourceProjectionBCs", Kind: attr.KindBool, Group: "Magnetodynamic",
				Doc: "See solver models manual for info"},
			{Name: "UseLagrangeGauge", Kind: attr.KindBool, Group: "Magnetodynamic",
				Doc: "See solver models manual for info"},
			{Name: "LagrangeGaugePenalizationCoefficient", Kind: attr.KindFloat,
				Group: "Magnetodynamic", Doc: "See solver models manual for info"},
			{Name: "UseTreeGauge", Kind: attr.KindBool, Group: "Magnetodynamic",
				Doc: "Ignored if UsePiolaTransform is true"},
			{Name: "LinearSystemRefactorize", Kind: attr.KindBool, Group: "Linear System"},
			{Name: "CalculateCurrentDensity", Kind: attr.KindBool, Group: "Results"},
			{Name: "CalculateElectricField", Kind: attr.KindBool, Group: "Results"},
			{Name: "CalculateHarmonicLoss", Kind: attr.KindBool, Group: "Results"},
			{Name: "CalculateJouleHeating", Kind: attr.KindBool, Group: "Results"},
			{Name: "CalculateMagneticFieldStrength", Kind: attr.KindBool, Group: "Results"},
			{Name: "CalculateMaxwellStress", Kind: attr.KindBool, Group: "Results"},
			{Name: "CalculateNodalForces", Kind: attr.KindBool, Group: "Results"},
			{Name: "CalculateNodalHeating", Kind: attr.KindBool, Group: "Results"},
		},
		defaults: []override{
			{PriorityAttribute, attr.Int(10)},
			// The bundled post processor cannot display elementary field
			// results, so only nodal fields default on.
			{"CalculateNodalFields", attr.Bool(true)},
		},
		constraints: []Constraint{
			{
				When:     "UseTreeGauge",
				Excludes: "UsePiolaTransform",
				Note:     "tree gauge is ignored when the Piola transform is active",
			},
		},
	},

	Electrostatic: {
		attrs: []attr.Descriptor{
			{Name: "CalculateCapacitanceMatrix", Kind: attr.KindBool, Group: "Electrostatic",
				Doc: "Compute the capacitance matrix between bodies"},
			{Name: "CapacitanceMatrixFilename", Kind: attr.KindString, Group: "Electrostatic",
				Doc: "File the capacitance matrix is written to"},
			{Name: "ConstantWeights", Kind: attr.KindBool, Group: "Electrostatic",
				Doc: "Use constant weighting for results"},
			{Name: "PotentialDifference", Kind: attr.KindFloat, Group: "Electrostatic",
				Doc: "Potential difference in volts for which the capacitance is computed"},
			{Name: "CalculateElectricEnergy", Kind: attr.KindBool, Group: "Results"},
			{Name: "CalculateElectricField", Kind: attr.KindBool, Group: "Results"},
			{Name: "CalculateElectricFlux", Kind: attr.KindBool, Group: "Results"},
			{Name: "CalculateSurfaceCharge", Kind: attr.KindBool, Group: "Results"},
		},
		defaults: []override{
			{PriorityAttribute, attr.Int(10)},
			{"CapacitanceMatrixFilename", attr.String("cmatrix.dat")},
			{"CalculateNodalFields", attr.Bool(true)},
		},
	},

	HeatTransfer: {
		attrs: []attr.Descriptor{
			{Name: "Bubbles", Kind: attr.KindBool, Group: "Heat Transfer",
				Doc: "Use bubble stabilization of the convection term"},
			{Name: "Stabilize", Kind: attr.KindBool, Group: "Heat Transfer",
				Doc: "Use residual-free-bubbles stabilization"},
			{Name: "ConvectionModel", Kind: attr.KindString, Group: "Heat Transfer",
				Doc: "Convection model: none, constant or computed"},
			{Name: "CalculateHeatFlux", Kind: attr.KindBool, Group: "Results"},
		},
		defaults: []override{
			{PriorityAttribute, attr.Int(20)},
			{"Stabilize", attr.Bool(true)},
			{"ConvectionModel", attr.String("none")},
			{"CalculateNodalFields", attr.Bool(true)},
		},
		constraints: []Constraint{
			{
				When:     "Bubbles",
				Excludes: "Stabilize",
				Note:     "bubble and residual stabilization are mutually exclusive",
			},
		},
	},
}
