package summary

import "tldr-summary/internal/domain/entity"

// ModelFilter narrows a model list to the models carrying a capability.
// Both strategies return the matching models in input order.
type ModelFilter interface {
	Filter(models []entity.ModelDescriptor, capability entity.Capability) []entity.ModelDescriptor
}

// NewModelFilter returns the helper-backed strategy when the registry exposes
// one, otherwise the manual strategy.
func NewModelFilter(helper ModelFilterHelper) ModelFilter {
	if helper != nil {
		return helperFilter{helper: helper}
	}
	return manualFilter{}
}

type helperFilter struct {
	helper ModelFilterHelper
}

func (f helperFilter) Filter(models []entity.ModelDescriptor, capability entity.Capability) []entity.ModelDescriptor {
	return f.helper.FilterModelsByCapability(models, capability)
}

type manualFilter struct{}

func (manualFilter) Filter(models []entity.ModelDescriptor, capability entity.Capability) []entity.ModelDescriptor {
	out := make([]entity.ModelDescriptor, 0, len(models))
	for _, m := range models {
		if m.Supports(capability) {
			out = append(out, m)
		}
	}
	return out
}
