package config

// Profile holds model settings for evaluation requests. Profiles let one
// configuration file describe several model/sampling combinations (say, a
// cheap screening pass and a careful scoring pass) selected with --profile.
type Profile struct {
	// Model is the language model name, e.g. "gemini-2.5-flash".
	Model string `yaml:"model,omitempty"`

	// Temperature is the sampling temperature. Lower values give more
	// consistent ratings. Pointer so that an explicit 0 survives merging.
	Temperature *float64 `yaml:"temperature,omitempty"`

	// TopP is the nucleus sampling parameter.
	TopP *float64 `yaml:"topP,omitempty"`

	// MaxTokens bounds the model's response length.
	MaxTokens int `yaml:"maxTokens,omitempty"`

	// SystemHint is an optional instruction prepended to every prompt,
	// e.g. to bias ratings toward a particular puzzle style.
	SystemHint string `yaml:"systemHint,omitempty"`
}

// File represents the structure of the .wordjudge configuration file.
type File struct {
	// Profiles maps profile names to their model settings.
	Profiles map[string]Profile `yaml:"profiles,omitempty"`

	// Defaults contains the profile applied when no profile is requested,
	// and the base that named profiles override.
	Defaults Profile `yaml:"defaults,omitempty"`
}

// GetProfile returns the named profile merged over the file's defaults.
// An empty name returns the defaults. The second return value reports
// whether the named profile exists; the defaults always exist.
func (cf *File) GetProfile(name string) (Profile, bool) {
	result := cf.Defaults
	if result.Model == "" {
		result.Model = DefaultModel
	}

	if name == "" {
		return result, true
	}

	override, ok := cf.Profiles[name]
	if !ok {
		return result, false
	}

	if override.Model != "" {
		result.Model = override.Model
	}
	if override.Temperature != nil {
		result.Temperature = override.Temperature
	}
	if override.TopP != nil {
		result.TopP = override.TopP
	}
	if override.MaxTokens != 0 {
		result.MaxTokens = override.MaxTokens
	}
	if override.SystemHint != "" {
		result.SystemHint = override.SystemHint
	}

	return result, true
}

// TemperatureOrDefault returns the profile temperature, falling back to
// DefaultTemperature when unset.
func (p Profile) TemperatureOrDefault() float64 {
	if p.Temperature != nil {
		return *p.Temperature
	}
	return DefaultTemperature
}

// TopPOrDefault returns the profile topP, falling back to DefaultTopP
// when unset.
func (p Profile) TopPOrDefault() float64 {
	if p.TopP != nil {
		return *p.TopP
	}
	return DefaultTopP
}

// MaxTokensOrDefault returns the profile max tokens, falling back to
// DefaultMaxTokens when unset.
func (p Profile) MaxTokensOrDefault() int {
	if p.MaxTokens != 0 {
		return p.MaxTokens
	}
	return DefaultMaxTokens
}
