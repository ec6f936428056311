package schema

import "github.com/roach88/simattr/internal/attr"

// Built-in object types shipped with the engine. Equation types are
// declared by the equation package; everything else lives here.
const (
	// TypeResultMechanical is the mechanical analysis result object.
	TypeResultMechanical = "result.mechanical"

	// TypeConstraintInitialFlowVelocity is the initial flow velocity
	// boundary condition.
	TypeConstraintInitialFlowVelocity = "constraint.initialFlowVelocity"
)

// StatsSlots is the number of entries in a current-schema Stats list:
// 13 result fields times a {min, max} pair each. Older files carried
// {min, avg, max} triples; the migrate package reduces those.
const StatsSlots = 26

// RegisterBuiltins declares the built-in non-equation object types into a
// registry. Called once at document open.
func RegisterBuiltins(r *Registry) error {
	if err := r.DeclareAll(TypeResultMechanical, resultMechanicalDescriptors()); err != nil {
		return err
	}
	return r.DeclareAll(TypeConstraintInitialFlowVelocity, initialFlowVelocityDescriptors())
}

// resultMechanicalDescriptors lists the mechanical result schema: a locked
// type marker, eigenmode data, and the per-node result fields.
func resultMechanicalDescriptors() []attr.Descriptor {
	lockedList := func(name, doc string) attr.Descriptor {
		return attr.Descriptor{
			Name:     name,
			Kind:     attr.KindScalarList,
			Group:    "NodeData",
			Doc:      doc,
			ReadOnly: true,
		}
	}
	lockedVectors := func(name, doc string) attr.Descriptor {
		return attr.Descriptor{
			Name:     name,
			Kind:     attr.KindVectorList,
			Group:    "NodeData",
			Doc:      doc,
			ReadOnly: true,
			Hidden:   true,
		}
	}

	return []attr.Descriptor{
		{
			Name:     "ResultType",
			Kind:     attr.KindString,
			Group:    "Base",
			Doc:      "Type of the result",
			ReadOnly: true,
			Default:  attr.String(TypeResultMechanical),
		},
		{
			Name:     "Eigenmode",
			Kind:     attr.KindInt,
			Group:    "Data",
			Doc:      "Eigenmode number for frequency analysis",
			ReadOnly: true,
		},
		{
			Name:     "EigenmodeFrequency",
			Kind:     attr.KindFrequency,
			Group:    "Data",
			Doc:      "Frequency of the eigenmode",
			ReadOnly: true,
		},
		{
			Name:    "Stats",
			Kind:    attr.KindScalarList,
			Group:   "Base",
			Doc:     "Min/max statistics per result field",
			Default: attr.ScalarList(make([]float64, StatsSlots)),
		},
		lockedVectors("DisplacementVectors", "List of displacement vectors"),
		lockedList("DisplacementLengths", "List of displacement lengths"),
		lockedList("vonMises", "List of von Mises equivalent stresses"),
		lockedList("Peeq", "List of equivalent plastic strain values"),
		lockedList("MohrCoulomb", "List of Mohr Coulomb stress values"),
		lockedList("ReinforcementRatio_x", "Reinforcement ratio x-direction"),
		lockedList("ReinforcementRatio_y", "Reinforcement ratio y-direction"),
		lockedList("ReinforcementRatio_z", "Reinforcement ratio z-direction"),
		lockedVectors("PS1Vector", "List of 1st principal stress vectors"),
		lockedVectors("PS2Vector", "List of 2nd principal stress vectors"),
		lockedVectors("PS3Vector", "List of 3rd principal stress vectors"),
		lockedList("PrincipalMax", "Maximum principal stress values"),
		lockedList("PrincipalMed", "Median principal stress values"),
		lockedList("PrincipalMin", "Minimum principal stress values"),
		lockedList("MaxShear", "List of maximum shear stress values"),
		lockedList("MassFlowRate", "List of mass flow rate values"),
		lockedList("NetworkPressure", "List of network pressure values"),
		lockedList("UserDefined", "User defined results"),
		lockedList("Temperature", "Temperature field"),
		lockedVectors("HeatFlux", "List of heat flux vectors"),
		lockedList("NodeStressXX", "Normal stress, x-direction"),
		lockedList("NodeStressYY", "Normal stress, y-direction"),
		lockedList("NodeStressZZ", "Normal stress, z-direction"),
		lockedList("NodeStressXY", "Shear stress, xy-plane"),
		lockedList("NodeStressXZ", "Shear stress, xz-plane"),
		lockedList("NodeStressYZ", "Shear stress, yz-plane"),
		lockedList("NodeStrainXX", "Normal strain, x-direction"),
		lockedList("NodeStrainYY", "Normal strain, y-direction"),
		lockedList("NodeStrainZZ", "Normal strain, z-direction"),
		lockedList("NodeStrainXY", "Shear strain, xy-plane"),
		lockedList("NodeStrainXZ", "Shear strain, xz-plane"),
		lockedList("NodeStrainYZ", "Shear strain, yz-plane"),
		lockedList("CriticalStrainRatio", "Critical strain ratio values"),
	}
}

// initialFlowVelocityDescriptors lists the initial flow velocity constraint
// schema: one velocity/formula/unspecified/hasFormula quartet per axis,
// with Unspecified defaulting true.
func initialFlowVelocityDescriptors() []attr.Descriptor {
	var descs []attr.Descriptor
	for _, axis := range []string{"X", "Y", "Z"} {
		lower := map[string]string{"X": "x", "Y": "y", "Z": "z"}[axis]
		descs = append(descs,
			attr.Descriptor{
				Name:  "Velocity" + axis,
				Kind:  attr.KindFloat,
				Group: "Parameter",
				Doc:   "Velocity in " + lower + "-direction",
			},
			attr.Descriptor{
				Name:  "Velocity" + axis + "Formula",
				Kind:  attr.KindString,
				Group: "Parameter",
				Doc:   "Velocity formula in " + lower + "-direction",
			},
			attr.Descriptor{
				Name:    "Velocity" + axis + "Unspecified",
				Kind:    attr.KindBool,
				Group:   "Parameter",
				Doc:     "Use velocity in " + lower + "-direction",
				Default: attr.Bool(true),
			},
			attr.Descriptor{
				Name:  "Velocity" + axis + "HasFormula",
				Kind:  attr.KindBool,
				Group: "Parameter",
				Doc:   "Use formula for velocity in " + lower + "-direction",
			},
		)
	}
	return descs
}
