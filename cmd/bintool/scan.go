package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/blackfen/darkmesh/internal/config"
	"github.com/blackfen/darkmesh/internal/logger"
	"github.com/blackfen/darkmesh/pkg/crf"
	"github.com/blackfen/darkmesh/pkg/formats"
)

// cmdScan decodes every .bin entry of the given archives and reports
// per-entry results. Dark archives mix object meshes with AI meshes and
// motion databases under the same extension, so magic mismatches are
// expected and counted separately from real decode failures.
func cmdScan(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	quiet := fs.Bool("q", false, "Print the summary only")
	fs.Parse(args)

	paths := fs.Args()
	if len(paths) == 0 {
		paths = cfg.Data.CRFPaths
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: bintool scan [-q] <archive.crf> [archive.crf...]")
		os.Exit(1)
	}

	var total, decoded, otherFormat, broken int
	for _, p := range paths {
		archive, err := crf.Open(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		names := archive.Glob("bin")
		fmt.Printf("%s: %d .bin entries\n", p, len(names))

		for _, name := range names {
			total++
			data, err := archive.Read(name)
			if err != nil {
				broken++
				if !*quiet {
					fmt.Printf("  %-32s read failed: %v\n", name, err)
				}
				continue
			}

			m, err := formats.ParseBin(data)
			switch {
			case err == nil:
				decoded++
				logger.Sugar.Debugw("decoded model",
					"archive", p, "entry", name,
					"version", m.Version, "polygons", len(m.Polygons))
				if !*quiet {
					fmt.Printf("  %-32s v%d, %d polygons, %d sub-objects\n",
						name, m.Version, len(m.Polygons), len(m.Objects))
				}
			case errors.Is(err, formats.ErrInvalidBinMagic):
				otherFormat++
				if !*quiet {
					fmt.Printf("  %-32s not an object mesh\n", name)
				}
			default:
				broken++
				if !*quiet {
					fmt.Printf("  %-32s %v\n", name, err)
				}
			}
		}
		archive.Close()
	}

	fmt.Println()
	fmt.Printf("Scanned %d entries: %d decoded, %d other formats, %d broken\n",
		total, decoded, otherFormat, broken)
}
