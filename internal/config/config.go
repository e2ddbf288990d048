// Package config handles tool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds resource archive locations.
type DataConfig struct {
	CRFPaths    []string `yaml:"crf_paths"`    // Paths to CRF archives
	TextureDirs []string `yaml:"texture_dirs"` // Archive directories holding textures
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	Dir        string `yaml:"dir"`
	WorldSpace bool   `yaml:"world_space"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			CRFPaths:    []string{"obj.crf"},
			TextureDirs: []string{"fam", "obj/txt16"},
		},
		Export: ExportConfig{
			Dir:        "export",
			WorldSpace: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
