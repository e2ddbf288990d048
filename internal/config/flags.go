package config

import (
	"flag"
	"strings"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagArchive = flag.String("archive", "", "Comma-separated CRF archives to search instead of the configured set")
	flagExport  = flag.String("export-dir", "", "Directory for exported meshes")
	flagLocal   = flag.Bool("local", false, "Export meshes in sub-object local space")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagArchive != "" {
		var paths []string
		for _, p := range strings.Split(*flagArchive, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		cfg.Data.CRFPaths = paths
	}
	if *flagExport != "" {
		cfg.Export.Dir = *flagExport
	}
	if *flagLocal {
		cfg.Export.WorldSpace = false
	}
}
