package summary

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"tldr-summary/internal/domain/entity"
)

// helperStub filters by capability the way a registry utility would.
type helperStub struct {
	calls int
}

func (h *helperStub) FilterModelsByCapability(models []entity.ModelDescriptor, capability entity.Capability) []entity.ModelDescriptor {
	h.calls++
	var out []entity.ModelDescriptor
	for _, m := range models {
		for _, c := range m.Capabilities {
			if c == capability {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

func TestNewModelFilter_SelectsStrategy(t *testing.T) {
	_, isManual := NewModelFilter(nil).(manualFilter)
	assert.True(t, isManual)

	_, isHelper := NewModelFilter(&helperStub{}).(helperFilter)
	assert.True(t, isHelper)
}

func TestModelFilter_StrategiesAgree(t *testing.T) {
	inputs := [][]entity.ModelDescriptor{
		nil,
		{},
		{imageModel("i1")},
		{textModel("t1"), imageModel("i1"), textModel("t2")},
		{
			{Slug: "multi", Capabilities: []entity.Capability{"image_generation", entity.CapabilityTextGeneration}},
			{Slug: "none"},
			textModel("t3"),
		},
	}

	helper := &helperStub{}
	helperBacked := NewModelFilter(helper)
	manual := NewModelFilter(nil)

	for i, models := range inputs {
		want := manual.Filter(models, entity.CapabilityTextGeneration)
		got := helperBacked.Filter(models, entity.CapabilityTextGeneration)
		if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b []entity.ModelDescriptor) bool {
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i].Slug != b[i].Slug {
					return false
				}
			}
			return true
		})); diff != "" {
			t.Errorf("input %d: strategies disagree (-manual +helper):\n%s", i, diff)
		}
	}
	assert.Equal(t, len(inputs), helper.calls)
}

func TestResolver_HelperAndManualResolveTheSame(t *testing.T) {
	prefs := []entity.Preference{
		{},
		{Provider: "anthropic", Model: "painter"},
		{Provider: "openai", Model: "gpt-b"},
	}
	for _, pref := range prefs {
		manual := NewResolver(newTwoProviderRegistry(), NewModelFilter(nil)).Resolve(t.Context(), pref)
		helped := NewResolver(newTwoProviderRegistry(), NewModelFilter(&helperStub{})).Resolve(t.Context(), pref)
		assert.Equal(t, manual, helped)
	}
}
