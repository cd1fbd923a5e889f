package templating

// TemplateConfig holds all configuration options for the templating engine.
type TemplateConfig struct {
	// DefaultBlock is the block template used when a block names a template
	// that does not exist. Empty disables the fallback.
	DefaultBlock string `json:"default_block"`

	// DecodeContent resolves HTML entities in string content before it is
	// handed to a block template.
	DecodeContent bool `json:"decode_content"`

	// MaxRepeat sets a hard upper limit on the repeat function.
	MaxRepeat int `json:"max_repeat"`
}

// DefaultConfig returns a TemplateConfig with safe default values.
func DefaultConfig() *TemplateConfig {
	return &TemplateConfig{
		DefaultBlock:  "",
		DecodeContent: true,
		MaxRepeat:     1000,
	}
}
