package equation

import "github.com/roach88/simattr/internal/attr"

// TypeTagPrefix prefixes the object type tag of every equation variant.
const TypeTagPrefix = "equation."

// PriorityAttribute is the base attribute governing solve order among the
// equation instances attached to one solve context: ascending numeric
// order, ties broken by declaration order.
const PriorityAttribute = "Priority"

// baseDescriptors is the attribute set every equation variant starts from.
// Variant tables layer physics attributes and variant-specific result
// toggles on top; redeclaring a base name fails composition.
func baseDescriptors() []attr.Descriptor {
	return []attr.Descriptor{
		{
			Name:  PriorityAttribute,
			Kind:  attr.KindInt,
			Group: "Base",
			Doc:   "Solve order among equations, ascending",
		},
		{
			Name:  "CalculateNodalFields",
			Kind:  attr.KindBool,
			Group: "Results",
			Doc:   "Output nodal field results",
		},
		{
			Name:  "CalculateElementalFields",
			Kind:  attr.KindBool,
			Group: "Results",
			Doc:   "Output elemental field results",
		},
		{
			Name:  "DiscontinuousBodies",
			Kind:  attr.KindBool,
			Group: "Results",
			Doc:   "Treat bodies as discontinuous in result output",
		},
	}
}
