package domain

import "time"

// Settings holds the project-level configuration.
type Settings struct {
	ModelsDir    string
	GmshPath     string
	Timeout      time.Duration
	CacheWarnMiB int64
	MemoSize     int
	MemoTTL      time.Duration
	LogFormat    string
}

// DefaultSettings returns the settings used when no configuration is provided.
func DefaultSettings() Settings {
	return Settings{
		ModelsDir:    DefaultModelsDir,
		GmshPath:     "gmsh",
		Timeout:      DefaultGenerationTimeout,
		CacheWarnMiB: DefaultCacheWarnMiB,
		MemoSize:     256,
		MemoTTL:      10 * time.Minute,
		LogFormat:    "pretty",
	}
}
