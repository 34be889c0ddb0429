package upload

// Settings states the configuration the upload pipeline recognizes.
type Settings struct {
	// MemoryThreshold is the max declared request content length for which the memory handler activates.
	MemoryThreshold int64 `yaml:"memoryThreshold" env:"UPLOAD_MEMORY_THRESHOLD"`

	// TempDir is the directory temp-file handlers write to. Empty means the OS default.
	TempDir string `yaml:"tempDir" env:"UPLOAD_TEMP_DIR"`

	// MaxHeaderBytes is the max cumulative header bytes allowed for a single part.
	MaxHeaderBytes int `yaml:"maxHeaderBytes" env:"UPLOAD_MAX_HEADER_BYTES"`

	// Handlers is the ordered list of handler implementations to install, by registered name.
	Handlers []string `yaml:"handlers" env:"UPLOAD_HANDLERS" envSeparator:","`

	// Quota is the cumulative upload byte cap enforced by the quota handler. Zero disables it.
	Quota int64 `yaml:"quota" env:"UPLOAD_QUOTA"`

	// ScanSignatures are the regexes the content scan handler rejects uploads on.
	ScanSignatures []string `yaml:"scanSignatures" env:"UPLOAD_SCAN_SIGNATURES" envSeparator:","`
}

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() Settings {
	return Settings{
		MemoryThreshold: 1024 * 2560, // 2.5 MiB
		MaxHeaderBytes:  1024,
		Handlers:        []string{"memory", "tempfile"},
	}
}
