package config

// Default values applied by ApplyDefaults.
const (
	DefaultEmbeddingDim = 768
	DefaultMaxKeywords  = 32
	DefaultMinTokenLen  = 4
)

// ApplyDefaults sets default values for any zero values in cfg.
// The seed is left as-is: zero is a valid seed.
func ApplyDefaults(cfg *Config) {
	if cfg.EmbeddingDim == 0 {
		cfg.EmbeddingDim = DefaultEmbeddingDim
	}
	if cfg.Extraction.MaxKeywords == 0 {
		cfg.Extraction.MaxKeywords = DefaultMaxKeywords
	}
	if cfg.Extraction.MinTokenLen == 0 {
		cfg.Extraction.MinTokenLen = DefaultMinTokenLen
	}
}

// Default returns a config with all defaults applied.
func Default() Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return cfg
}
