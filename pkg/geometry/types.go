// Package geometry derives renderable triangle data from parsed LGMD models.
package geometry

import "github.com/blackfen/darkmesh/pkg/math"

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// MaterialGroup is a contiguous vertex range drawn with one material.
type MaterialGroup struct {
	MatIndex int
	Start    int
	Count    int
}

// Mesh holds one sub-object's triangle data ready for rendering or export.
// Vertices form a plain triangle list; Groups slice it by material.
type Mesh struct {
	Vertices []Vertex
	Groups   []MaterialGroup
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// ObjectGeometry carries one sub-object's derived mesh and local
// transform. Mesh is nil when the sub-object owns no polygons; Local is
// nil when it has no articulated joint.
type ObjectGeometry struct {
	Name  string
	Mesh  *Mesh
	Local *math.Mat4
}
