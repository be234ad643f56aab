package generator

import "github.com/toyz/vtwrap/internal/models"

// MatchedSlot pairs a vtable accessor with the nested descriptor type it returns
type MatchedSlot struct {
	Accessor   models.MethodMeta
	Descriptor *models.DescriptorType
}

// Name returns the slot name shared by the accessor and its descriptor
func (s MatchedSlot) Name() string {
	return s.Accessor.Name
}

// MatchSlots returns the accessors of vtbl that denote real callable slots: an
// accessor matches when a nested type of vtbl has both the accessor's name and
// the accessor's declared return type. Result order follows accessor declaration
// order; a repeated accessor name only matches once.
func MatchSlots(vtbl *models.VtableType) []MatchedSlot {
	if vtbl == nil {
		return nil
	}

	nested := make(map[models.TypeRef]*models.DescriptorType, len(vtbl.Nested))
	for i := range vtbl.Nested {
		d := &vtbl.Nested[i]
		nested[d.Ref()] = d
	}

	var slots []MatchedSlot
	seen := make(map[string]bool)
	for _, m := range vtbl.Methods {
		d, ok := nested[m.Return]
		if !ok || d.Name != m.Name || seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		slots = append(slots, MatchedSlot{Accessor: m, Descriptor: d})
	}
	return slots
}
