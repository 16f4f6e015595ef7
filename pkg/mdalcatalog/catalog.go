// Package mdalcatalog indexes a directory of mesh files by their
// spatial extent, so an application holding hundreds of result files
// can find which ones cover a region of interest without opening every
// mesh. It mirrors the teacher's ChartIndex: an R-tree over each
// entry's bounding box, built once and queried many times.
package mdalcatalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/mdal-go/mdal/internal/driver"
	"github.com/mdal-go/mdal/internal/meshgeom"
)

// Entry is one indexed mesh file's lightweight metadata: just enough
// to decide relevance without keeping the mesh itself resident.
type Entry struct {
	Path        string
	DriverName  string
	VertexCount int
	FaceCount   int
	Extent      meshgeom.BBox
}

// Bounds implements rtreego.Spatial so an Entry can be inserted
// directly into the tree.
func (e Entry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.Extent.MinX, e.Extent.MinY}
	lengths := []float64{
		maxSpan(e.Extent.MaxX - e.Extent.MinX),
		maxSpan(e.Extent.MaxY - e.Extent.MinY),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// maxSpan keeps a degenerate (zero-width) extent from producing an
// invalid rtreego.Rect, which requires every length to be positive.
func maxSpan(span float64) float64 {
	const epsilon = 1e-9
	if span < epsilon {
		return epsilon
	}
	return span
}

// Catalog is a spatial index over a set of mesh files, built once by
// BuildFromDir or Build and queried any number of times.
type Catalog struct {
	entries []Entry
	rtree   *rtreego.Rtree
}

// BuildFromDir walks root, asking m to load every file it finds, and
// keeps only the ones some registered driver recognises. Each mesh is
// opened just long enough to read its extent and element counts, then
// closed again.
func BuildFromDir(root string, m *driver.Manager) (*Catalog, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	var entries []Entry
	for _, p := range paths {
		mesh, err := m.Load(p)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Path:        p,
			DriverName:  mesh.DriverName(),
			VertexCount: mesh.VertexCount(),
			FaceCount:   mesh.FaceCount(),
			Extent:      mesh.Extent(),
		})
		mesh.Close()
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no mesh files recognised under %s", root)
	}
	return Build(entries), nil
}

// Build indexes a pre-collected set of entries.
func Build(entries []Entry) *Catalog {
	rtree := rtreego.NewTree(2, 25, 50)
	for _, e := range entries {
		rtree.Insert(e)
	}
	return &Catalog{entries: entries, rtree: rtree}
}

// Query returns every indexed entry whose extent intersects bounds,
// largest-vertex-count first (a proxy for resolution, the nautical-
// chart scale-priority idea adapted to meshes).
func (c *Catalog) Query(bounds meshgeom.BBox) []Entry {
	point := rtreego.Point{bounds.MinX, bounds.MinY}
	lengths := []float64{
		maxSpan(bounds.MaxX - bounds.MinX),
		maxSpan(bounds.MaxY - bounds.MinY),
	}
	queryRect, _ := rtreego.NewRect(point, lengths)

	var out []Entry
	for _, sp := range c.rtree.SearchIntersect(queryRect) {
		out = append(out, sp.(Entry))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].VertexCount > out[j].VertexCount
	})
	return out
}

// Count returns the number of indexed entries.
func (c *Catalog) Count() int { return len(c.entries) }

// All returns every indexed entry.
func (c *Catalog) All() []Entry { return c.entries }
