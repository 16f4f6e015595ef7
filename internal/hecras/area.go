package hecras

import (
	"strings"

	"github.com/mdal-go/mdal/internal/mdalerr"
	"github.com/mdal-go/mdal/internal/meshgeom"
)

// area holds one 2D Flow Area's raw geometry plus the offsets at which
// it was appended into the global mesh (spec.md §4.11's
// "area_elem_start_index[]").
type area struct {
	name            string
	vertexStart     int
	faceStart       int
	vertices        []meshgeom.Vertex
	faces           []meshgeom.Face
	bedElevation    []float64 // per cell (face), this area only
	faceCellIndices [][2]int  // per face (the format's "Face"), neighbouring cell ids, this area only, 0-based within area
	fileCellCount   int       // rows in this area's per-cell HDF5 datasets (Cells FacePoint Indexes), before the K<2 skip
	cellToFace      []int     // length fileCellCount; cellToFace[r] is this area's face index for file row r, or -1 if row r was dropped as not a real cell
}

// listAreas returns the 2D Flow Area names in declaration order, using
// whichever of the two schema variants the file actually has.
func listAreas(h *file) ([]string, error) {
	const namesPath = "/Geometry/2D Flow Areas/Names"
	if h.exists(namesPath) {
		return h.stringArray(namesPath)
	}
	const attrPath = "/Geometry/2D Flow Areas/Attributes"
	if h.exists(attrPath) {
		names, err := h.compoundStringField(attrPath, "Name")
		if err != nil {
			return nil, err
		}
		for i, n := range names {
			names[i] = strings.TrimRight(strings.TrimRight(n, "\x00"), " ")
		}
		return names, nil
	}
	return nil, mdalerr.New(mdalerr.StatusUnknownFormat, "no 2D Flow Areas group found")
}

// loadArea reads one area's geometry from under
// /Geometry/2D Flow Areas/<name>/...
func loadArea(h *file, name string, vertexStart, faceStart int) (*area, error) {
	base := "/Geometry/2D Flow Areas/" + name + "/"

	coords, shape, err := h.floats64(base + "FacePoints Coordinate")
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 || shape[1] != 2 {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "unexpected FacePoints Coordinate shape in area "+name)
	}
	n := shape[0]
	vertices := make([]meshgeom.Vertex, n)
	for i := 0; i < n; i++ {
		vertices[i] = meshgeom.Vertex{X: coords[2*i], Y: coords[2*i+1]}
	}

	idx, idxShape, err := h.ints32(base + "Cells FacePoint Indexes")
	if err != nil {
		return nil, err
	}
	if len(idxShape) != 2 {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "unexpected Cells FacePoint Indexes shape in area "+name)
	}
	rows, cols := idxShape[0], idxShape[1]
	allBed, _, err := h.floats64(base + "Cells Minimum Elevation")
	if err != nil {
		return nil, err
	}

	// Cells with fewer than 2 facepoints are not real cells (spec.md
	// §4.11); drop them from the face list and the bed-elevation array
	// so those two stay aligned with each other, but remember the file
	// row each surviving face came from (cellToFace) — every per-cell
	// HDF5 time series is still written at the file's full row count,
	// not the filtered one, so later reads must stride by rows and map
	// back through cellToFace rather than assume the arrays match up.
	var faces []meshgeom.Face
	var bed []float64
	cellToFace := make([]int, rows)
	for r := 0; r < rows; r++ {
		row := idx[r*cols : (r+1)*cols]
		var face meshgeom.Face
		for _, v := range row {
			if v < 0 {
				break
			}
			face = append(face, int(v))
		}
		if len(face) < 2 {
			cellToFace[r] = -1
			continue
		}
		cellToFace[r] = len(faces)
		faces = append(faces, face)
		if r < len(allBed) {
			bed = append(bed, allBed[r])
		}
	}

	var faceCells [][2]int
	if h.exists(base + "Faces Cell Indexes") {
		fc, fcShape, err := h.ints32(base + "Faces Cell Indexes")
		if err != nil {
			return nil, err
		}
		if len(fcShape) == 2 && fcShape[1] == 2 {
			faceCells = make([][2]int, fcShape[0])
			for r := 0; r < fcShape[0]; r++ {
				faceCells[r] = [2]int{int(fc[2*r]), int(fc[2*r+1])}
			}
		}
	}

	return &area{
		name:            name,
		vertexStart:     vertexStart,
		faceStart:       faceStart,
		vertices:        vertices,
		faces:           faces,
		bedElevation:    bed,
		faceCellIndices: faceCells,
		fileCellCount:   rows,
		cellToFace:      cellToFace,
	}, nil
}
