// Package llm provides options pattern for text generation parameters.
//
// This package implements functional options for runtime parameter overrides
// while maintaining backward compatibility with existing code.
package llm

// GenerateOptions holds parameters for text generation.
// These options can be set at initialization (from config.yaml) and
// overridden at runtime (from prompts or direct calls).
type GenerateOptions struct {
	// Model is the model identifier (e.g., "glm-4.6", "gpt-4o-mini").
	// Local text-generation servers usually ignore it.
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls randomness in responses (0.0 = deterministic, 1.0 = random)
	Temperature float64

	// TopP is the nucleus sampling cutoff
	TopP float64

	// TypicalP filters tokens by typicality (1.0 = disabled)
	TypicalP float64

	// TopK keeps only the K most likely tokens (0 = disabled)
	TopK int

	// MinP discards tokens below this probability relative to the top one
	MinP float64

	// RepetitionPenalty discourages repeating tokens (1.0 = disabled)
	RepetitionPenalty float64

	// Stop lists sequences that terminate generation.
	// Empty slice means the server decides when to stop.
	Stop []string

	// Extra carries parameters that have no dedicated field above.
	// Keys are sent to the server as-is; values override dedicated
	// fields with the same JSON name.
	Extra map[string]any
}

// DefaultGenerateOptions returns the parameter set used when the caller
// overrides nothing. Values follow common local text-generation defaults.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		MaxTokens:         250,
		Temperature:       0.7,
		TopP:              0.9,
		TypicalP:          1.0,
		TopK:              20,
		MinP:              0.0,
		RepetitionPenalty: 1.15,
	}
}

// GenerateOption is a functional option for configuring GenerateOptions.
type GenerateOption func(*GenerateOptions)

// WithModel sets the model for generation.
// Runtime override: takes precedence over config.yaml default.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithMaxTokens sets the maximum tokens for generation.
// Runtime override: takes precedence over config.yaml default.
func WithMaxTokens(tokens int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = tokens
	}
}

// WithTemperature sets the temperature for generation.
// Runtime override: takes precedence over config.yaml default.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithTopP sets the nucleus sampling cutoff.
func WithTopP(p float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.TopP = p
	}
}

// WithTypicalP sets the typicality cutoff.
func WithTypicalP(p float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.TypicalP = p
	}
}

// WithTopK sets the top-K cutoff.
func WithTopK(k int) GenerateOption {
	return func(o *GenerateOptions) {
		o.TopK = k
	}
}

// WithMinP sets the minimal relative token probability.
func WithMinP(p float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.MinP = p
	}
}

// WithRepetitionPenalty sets the repetition penalty.
func WithRepetitionPenalty(penalty float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.RepetitionPenalty = penalty
	}
}

// WithStop sets the stop sequences. An empty call clears them.
func WithStop(stop ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Stop = stop
	}
}

// WithParam sets an arbitrary payload parameter by its JSON name.
// Use it for server-specific knobs (seed, mirostat_mode, guidance_scale...)
// that have no dedicated field. Later calls override earlier ones.
func WithParam(name string, value any) GenerateOption {
	return func(o *GenerateOptions) {
		if o.Extra == nil {
			o.Extra = make(map[string]any)
		}
		o.Extra[name] = value
	}
}
