package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackfen/darkmesh/internal/config"
	"github.com/blackfen/darkmesh/internal/logger"
	"github.com/blackfen/darkmesh/pkg/formats"
	"github.com/blackfen/darkmesh/pkg/geometry"
	"github.com/blackfen/darkmesh/pkg/math"
)

func cmdExport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	outDir := fs.String("o", "", "Output directory (default from config)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bintool export [-o dir] <model>")
		os.Exit(1)
	}
	name := fs.Arg(0)

	m, err := loadModel(cfg, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m.SanitizePolygons()
	m.BuildHierarchy()
	geoms := geometry.Build(m)

	var world []math.Mat4
	if cfg.Export.WorldSpace {
		world = geometry.WorldTransforms(m, geoms)
	}

	dir := cfg.Export.Dir
	if *outDir != "" {
		dir = *outDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	objPath := filepath.Join(dir, base+".obj")
	mtlPath := filepath.Join(dir, base+".mtl")

	if err := os.WriteFile(objPath, []byte(buildOBJ(m, geoms, world, base+".mtl")), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(mtlPath, []byte(buildMTL(m)), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Sugar.Debugw("exported model",
		"model", m.Name, "objects", len(geoms), "file", objPath)
	fmt.Printf("Exported %s -> %s\n", m.Name, objPath)
}

// buildOBJ renders derived geometry as a Wavefront OBJ document. A
// non-nil world slice bakes each sub-object's accumulated transform
// into its vertices, otherwise parts stay in local space.
func buildOBJ(m *formats.Model, geoms []geometry.ObjectGeometry, world []math.Mat4, mtlName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", m.Name)
	fmt.Fprintf(&b, "mtllib %s\n", mtlName)

	vertexBase := 1
	for i, geo := range geoms {
		if geo.Mesh == nil {
			continue
		}

		verts := geo.Mesh.Vertices
		if world != nil {
			verts = make([]geometry.Vertex, len(geo.Mesh.Vertices))
			for j, v := range geo.Mesh.Vertices {
				v.Position = world[i].TransformPoint(v.Position)
				v.Normal = world[i].TransformDirection(v.Normal)
				verts[j] = v
			}
		}

		fmt.Fprintf(&b, "o %s\n", geo.Name)
		for _, v := range verts {
			fmt.Fprintf(&b, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
		}
		for _, v := range verts {
			fmt.Fprintf(&b, "vt %g %g\n", v.TexCoord[0], v.TexCoord[1])
		}
		for _, v := range verts {
			fmt.Fprintf(&b, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
		}

		for _, g := range geo.Mesh.Groups {
			fmt.Fprintf(&b, "usemtl mat%d\n", g.MatIndex)
			for t := g.Start; t < g.Start+g.Count; t += 3 {
				a, c, d := vertexBase+t, vertexBase+t+1, vertexBase+t+2
				fmt.Fprintf(&b, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, c, c, c, d, d, d)
			}
		}

		vertexBase += len(verts)
	}
	return b.String()
}

// buildMTL renders the material table as a Wavefront MTL document.
// Flat colors become diffuse entries, textured materials reference
// their stored texture name, replacers get a neutral placeholder.
func buildMTL(m *formats.Model) string {
	var b strings.Builder

	if len(m.Materials) == 0 {
		// Polygons resolve to index 0 even without a material table.
		b.WriteString("newmtl mat0\nKd 0.8 0.8 0.8\n")
		return b.String()
	}

	for i := range m.Materials {
		mat := &m.Materials[i]
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "newmtl mat%d\n", i)
		switch mat.Kind {
		case formats.MaterialFlatColor:
			fmt.Fprintf(&b, "Kd %.4f %.4f %.4f\n",
				float32(mat.R)/255, float32(mat.G)/255, float32(mat.B)/255)
		case formats.MaterialTextured:
			fmt.Fprintf(&b, "map_Kd %s\n", mat.Name)
		case formats.MaterialReplacer:
			fmt.Fprintf(&b, "# replaces texture slot %d\nKd 0.5 0.5 0.5\n", mat.ReplacerSlot)
		}
		if mat.Extended != nil && mat.Extended.Transparency > 0 {
			fmt.Fprintf(&b, "d %.4f\n", 1-mat.Extended.Transparency)
		}
	}
	return b.String()
}
