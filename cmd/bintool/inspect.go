package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/blackfen/darkmesh/internal/config"
	"github.com/blackfen/darkmesh/pkg/formats"
	"github.com/blackfen/darkmesh/pkg/math"
)

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bintool info <model>")
		os.Exit(1)
	}

	m, err := loadModel(cfg, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Model:    %s (version %d, %d bytes)\n", m.Name, m.Version, m.Size)
	fmt.Printf("Radius:   %.3f (max polygon %.3f, points reach %.3f)\n",
		m.Radius, m.MaxPolyRadius, pointReach(m))
	fmt.Printf("Bounds:   (%.3f, %.3f, %.3f) .. (%.3f, %.3f, %.3f)\n",
		m.BBoxMin[0], m.BBoxMin[1], m.BBoxMin[2],
		m.BBoxMax[0], m.BBoxMax[1], m.BBoxMax[2])
	fmt.Printf("Center:   (%.3f, %.3f, %.3f)\n", m.Center[0], m.Center[1], m.Center[2])
	fmt.Printf("Params:   %d parms, %d vcalls\n", m.NumParms, m.NumVCalls)
	if m.Aux != nil {
		fmt.Printf("Extended: %d-byte records at %d (%s)\n",
			m.Aux.RecordSize, m.Aux.Offset, auxCaps(m.Aux))
	}

	fmt.Println()
	fmt.Println("Tables:")
	fmt.Printf("  %-10s %5d @ %d\n", "objects", len(m.Objects), m.Offsets.Objects)
	fmt.Printf("  %-10s %5d @ %d\n", "materials", len(m.Materials), m.Offsets.Materials)
	fmt.Printf("  %-10s %5d @ %d\n", "uvs", len(m.UVs), m.Offsets.UVs)
	fmt.Printf("  %-10s %5d @ %d\n", "vhots", len(m.Vhots), m.Offsets.Vhots)
	fmt.Printf("  %-10s %5d @ %d\n", "points", len(m.Points), m.Offsets.Points)
	fmt.Printf("  %-10s %5d @ %d\n", "lights", len(m.Lights), m.Offsets.Lights)
	fmt.Printf("  %-10s %5d @ %d\n", "normals", len(m.Normals), m.Offsets.Normals)
	fmt.Printf("  %-10s %5d @ %d\n", "polygons", len(m.Polygons), m.Offsets.Polygons)
	fmt.Printf("  %-10s %5d @ %d\n", "nodes", m.TotalNodes, m.Offsets.Nodes)
}

// pointReach measures the actual bounding-sphere radius about the
// header center. Hand-edited models often ship stale header radii.
func pointReach(m *formats.Model) float32 {
	center := math.FromArray(m.Center)
	var reach float32
	for _, p := range m.Points {
		if d := math.FromArray(p).Sub(center).Length(); d > reach {
			reach = d
		}
	}
	return reach
}

func auxCaps(aux *formats.AuxHeader) string {
	var caps []string
	if aux.Transparency {
		caps = append(caps, "transparency")
	}
	if aux.Illumination {
		caps = append(caps, "illumination")
	}
	if len(caps) == 0 {
		return "no capability flags"
	}
	return strings.Join(caps, ", ")
}

func cmdObjects(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bintool objects <model>")
		os.Exit(1)
	}

	m, err := loadModel(cfg, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m.SanitizePolygons()
	m.BuildHierarchy()

	if len(m.Objects) == 0 {
		fmt.Println("No sub-objects.")
		return
	}

	fmt.Printf("%s: %d sub-objects", m.Name, len(m.Objects))
	if m.HasJoints() {
		fmt.Print(", articulated")
	}
	fmt.Println()

	for _, root := range m.Roots() {
		printObject(m, root, 1)
	}
}

func printObject(m *formats.Model, i, depth int) {
	o := &m.Objects[i]
	indent := strings.Repeat("  ", depth)

	joint := "static"
	if o.Transform.Kind != formats.JointNone {
		joint = fmt.Sprintf("%s joint %d, %.3f..%.3f",
			strings.ToLower(o.Transform.Kind.String()),
			o.Transform.Joint, o.Transform.Min, o.Transform.Max)
	}

	fmt.Printf("%s%-12s [%s]  points %d..%d, %d polygons, %d vhots\n",
		indent, o.Name, joint,
		o.PointStart, o.PointStart+o.PointCount, len(o.Polygons), o.VhotCount)

	for _, c := range o.Children {
		printObject(m, c, depth+1)
	}
}

func cmdMaterials(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bintool materials <model>")
		os.Exit(1)
	}

	m, err := loadModel(cfg, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(m.Materials) == 0 {
		fmt.Println("No materials.")
		return
	}

	for i := range m.Materials {
		mat := &m.Materials[i]
		fmt.Printf("%3d  %-16s %-9s slot %2d  %s\n",
			i, mat.Name, mat.Kind, mat.Slot, materialDetail(mat))
	}
}

func materialDetail(mat *formats.Material) string {
	var d string
	switch mat.Kind {
	case formats.MaterialTextured:
		d = fmt.Sprintf("handle %d, uv scale %.2f", mat.Handle, mat.UVScale)
	case formats.MaterialFlatColor:
		d = fmt.Sprintf("rgb(%d, %d, %d), palette %d", mat.R, mat.G, mat.B, mat.Palette)
	case formats.MaterialReplacer:
		d = fmt.Sprintf("replaces texture slot %d", mat.ReplacerSlot)
	}
	if mat.Extended != nil {
		d += fmt.Sprintf(", transparency %.2f, illumination %.2f",
			mat.Extended.Transparency, mat.Extended.Illumination)
	}
	return d
}

func cmdVhots(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bintool vhots <model>")
		os.Exit(1)
	}

	m, err := loadModel(cfg, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(m.Vhots) == 0 {
		fmt.Println("No attachment points.")
		return
	}

	fmt.Printf("%d attachment points\n", len(m.Vhots))
	for i := range m.Objects {
		hots := m.VhotsOf(i)
		if len(hots) == 0 {
			continue
		}
		fmt.Printf("%s:\n", m.Objects[i].Name)
		for _, h := range hots {
			fmt.Printf("  %4d  (%.3f, %.3f, %.3f)\n",
				h.ID, h.Position[0], h.Position[1], h.Position[2])
		}
	}
}
