package entity

// Preference is the operator's stored intent. Either field may be empty.
type Preference struct {
	Provider ProviderSlug `json:"selected_ai_platform" yaml:"selected_ai_platform"`
	Model    string       `json:"selected_ai_model" yaml:"selected_ai_model"`
}

// IsEmpty reports whether no provider was chosen.
func (p Preference) IsEmpty() bool {
	return p.Provider == "" && p.Model == ""
}

// EffectiveSelection is the provider/model pair computed for one request.
//
// When Provider is set it is one of the currently usable providers, and when
// Model is set it is one of that provider's text-generation models. A zero value
// means no provider is usable at all; a Provider with an empty Model means the
// provider exposes no usable model.
type EffectiveSelection struct {
	Provider ProviderSlug `json:"provider"`
	Model    string       `json:"model"`
}

// IsEmpty reports whether no provider could be selected.
func (s EffectiveSelection) IsEmpty() bool {
	return s.Provider == ""
}

// HasModel reports whether both a provider and a model were selected.
func (s EffectiveSelection) HasModel() bool {
	return s.Provider != "" && s.Model != ""
}
