// bintool is a CLI utility for inspecting and converting Dark Engine
// object meshes.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/blackfen/darkmesh/internal/assets"
	"github.com/blackfen/darkmesh/internal/config"
	"github.com/blackfen/darkmesh/internal/logger"
	"github.com/blackfen/darkmesh/pkg/formats"
)

func main() {
	config.ParseFlags()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	rest := args[1:]

	switch command {
	case "info":
		cmdInfo(cfg, rest)
	case "objects", "tree":
		cmdObjects(cfg, rest)
	case "materials", "mats":
		cmdMaterials(cfg, rest)
	case "vhots":
		cmdVhots(cfg, rest)
	case "scan":
		cmdScan(cfg, rest)
	case "export":
		cmdExport(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bintool - Dark Engine object mesh utility

Usage:
  bintool [options] <command> [args]

Commands:
  info <model>        Show header fields, counts and table offsets
  objects <model>     Show the sub-object tree with joints and ranges
  materials <model>   Show the material table
  vhots <model>       Show attachment points per sub-object
  scan [archive...]   Decode every model in the given (or configured) archives
  export <model>      Convert a model to Wavefront OBJ/MTL

Options:
  -config <path>      Config file location
  -archive <paths>    Comma-separated CRF archives (overrides config)
  -export-dir <dir>   Output directory for export
  -local              Export sub-objects in local space
  -debug              Force debug logging

A <model> argument is tried as a file on disk first, then looked up in
the configured archives, so "bintool info wrench" works when wrench.bin
sits inside obj.crf.

Examples:
  bintool info models/wrench.bin
  bintool -archive obj.crf objects hammer
  bintool scan obj.crf mesh.crf
  bintool export -o ./out wrench`)
}

// loadModel reads a model from disk when name points at a readable
// file, otherwise looks it up in the configured archives.
func loadModel(cfg *config.Config, name string) (*formats.Model, error) {
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return formats.ParseBinFile(name)
	}

	mgr := assets.NewManager()
	defer mgr.Close()

	attached := 0
	for _, p := range cfg.Data.CRFPaths {
		if err := mgr.AddArchive(p); err != nil {
			logger.Warn("skipping archive", zap.String("path", p), zap.Error(err))
			continue
		}
		attached++
	}
	if attached == 0 {
		return nil, fmt.Errorf("%s: not a file and no usable archives configured", name)
	}

	return mgr.LoadModel(name)
}
