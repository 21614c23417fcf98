package mesh

import (
	"fmt"
	"log/slog"

	"github.com/leengari/ply-scene/internal/linalg"
)

// SynthesizeNormals computes per-vertex normals (w = 0) for a mesh that
// declared none.
//
// Without indices every 3 consecutive positions form a triangle and its
// normal is copied to all 3 vertices. With indices the faces are
// fan-triangulated; smooth accumulates each face normal into its vertices,
// otherwise the vertex takes the normal of the last triangle that touches it.
//
// Zero-length normals are left as zero vectors and counted in degenerate.
func SynthesizeNormals(m *Mesh, smooth bool) (normals []float32, degenerate int, err error) {
	if m.Indexed() {
		normals, degenerate, err = indexedNormals(m, smooth)
	} else {
		normals, degenerate = unindexedNormals(m)
	}
	if err != nil {
		return nil, 0, err
	}
	if degenerate > 0 {
		slog.Warn("degenerate normals", slog.Int("count", degenerate), slog.Int("vertices", m.VertexCount()))
	}
	return normals, degenerate, nil
}

func faceNormal(a, b, c linalg.Vec3) linalg.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

func vertex(m *Mesh, i int) linalg.Vec3 {
	return linalg.Vec3FromSlice(m.Positions, i*Components)
}

func unindexedNormals(m *Mesh) ([]float32, int) {
	count := m.VertexCount()
	normals := make([]float32, count*Components)
	degenerate := 0

	for t := 0; t+2 < count; t += 3 {
		n, ok := faceNormal(vertex(m, t), vertex(m, t+1), vertex(m, t+2)).Normalize()
		if !ok {
			degenerate += 3
			continue
		}
		for k := 0; k < 3; k++ {
			put(normals, t+k, n)
		}
	}
	// trailing vertices that do not complete a triangle
	degenerate += count % 3
	return normals, degenerate
}

func indexedNormals(m *Mesh, smooth bool) ([]float32, int, error) {
	count := m.VertexCount()
	acc := make([]linalg.Vec3, count)

	tris := m.Triangulate()
	for i := 0; i < len(tris); i += 3 {
		for k := 0; k < 3; k++ {
			if int(tris[i+k]) >= count {
				return nil, 0, fmt.Errorf("triangle %d: index %d out of range (%d vertices)", i/3, tris[i+k], count)
			}
		}
		a, b, c := int(tris[i]), int(tris[i+1]), int(tris[i+2])
		n := faceNormal(vertex(m, a), vertex(m, b), vertex(m, c))
		for _, v := range [3]int{a, b, c} {
			if smooth {
				acc[v] = acc[v].Add(n)
			} else {
				acc[v] = n
			}
		}
	}

	normals := make([]float32, count*Components)
	degenerate := 0
	for i, v := range acc {
		n, ok := v.Normalize()
		if !ok {
			degenerate++
			continue
		}
		put(normals, i, n)
	}
	return normals, degenerate, nil
}

func put(dst []float32, i int, n linalg.Vec3) {
	off := i * Components
	dst[off] = n.X
	dst[off+1] = n.Y
	dst[off+2] = n.Z
}
