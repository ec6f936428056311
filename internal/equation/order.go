package equation

import "sort"

// SortByPriority returns the instances in evaluation order: ascending
// priority, ties broken by position in the input slice (declaration order,
// first-declared wins). The input is not modified.
func SortByPriority(insts []*Instance) []*Instance {
	ordered := make([]*Instance, len(insts))
	copy(ordered, insts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})
	return ordered
}
