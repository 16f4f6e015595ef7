package hecras

import (
	"math"
	"strings"

	"github.com/mdal-go/mdal/internal/mdalerr"
	"github.com/mdal-go/mdal/internal/mdallog"
	"github.com/mdal-go/mdal/internal/mdaltime"
	"github.com/mdal-go/mdal/internal/model"
)

var unitWords = map[string]mdaltime.RelativeUnit{
	"seconds": mdaltime.Seconds,
	"minutes": mdaltime.Minutes,
	"hours":   mdaltime.Hours,
	"days":    mdaltime.Days,
}

// readTimeAxis reads the Time dataset, in the unit its own Time
// attribute names (falling back to the sibling Variables attribute's
// "Time|" suffix, defaulting to Hours, per spec.md §4.11).
func readTimeAxis(h *file, path string) ([]mdaltime.RelativeTimestamp, error) {
	vals, _, err := h.floats64(path)
	if err != nil {
		return nil, err
	}

	unit := mdaltime.Hours
	if raw, ok := h.stringAttribute(path, "Time"); ok {
		if u, ok := unitWords[strings.ToLower(strings.TrimSpace(raw))]; ok {
			unit = u
		}
	} else if raw, ok := h.stringAttribute(path, "Variables"); ok {
		stripped := strings.TrimPrefix(raw, "Time|")
		if u, ok := unitWords[strings.ToLower(strings.TrimSpace(stripped))]; ok {
			unit = u
		}
	}

	out := make([]mdaltime.RelativeTimestamp, len(vals))
	for i, v := range vals {
		out[i] = mdaltime.NewRelativeTimestamp(v, unit)
	}
	return out, nil
}

// readReferenceTime reads Time Date Stamp[0] from the unsteady output
// block (spec.md §4.11).
func readReferenceTime(h *file) (mdaltime.DateTime, error) {
	const path = "/Results/Unsteady/Output/Output Blocks/Base Output/Unsteady Time Series/Time Date Stamp"
	stamps, err := h.stringArray(path)
	if err != nil {
		return mdaltime.Invalid(), err
	}
	if len(stamps) == 0 {
		return mdaltime.Invalid(), mdalerr.New(mdalerr.StatusInvalidData, "Time Date Stamp is empty")
	}
	return parseTimeDateStamp(stamps[0])
}

// loadConcatenatedVariable builds a direct per-cell time series group
// for a variable stored per area and concatenated in area order,
// applying transform(value, bedElevation) to every value.
func loadConcatenatedVariable(mesh *Mesh, h *file, outBase, variable string, location model.DataLocation, times []mdaltime.RelativeTimestamp, refTime mdaltime.DateTime, transform func(v, bed float64) float64) {
	perArea := make([][]float64, len(mesh.areas))
	areaCols := make([]int, len(mesh.areas))
	t := -1
	for ai, a := range mesh.areas {
		path := outBase + "2D Flow Areas/" + a.name + "/" + variable
		if !h.exists(path) {
			mdallog.Warnf("hecras", "missing variable %q in area %q, skipping", variable, a.name)
			return
		}
		vals, shape, err := h.floats64(path)
		if err != nil || len(shape) != 2 {
			mdallog.Warnf("hecras", "failed reading variable %q in area %q: %v", variable, a.name, err)
			return
		}
		if shape[1] != a.fileCellCount {
			mdallog.Warnf("hecras", "variable %q in area %q has %d columns, want %d file cells, skipping", variable, a.name, shape[1], a.fileCellCount)
			return
		}
		t = shape[0]
		perArea[ai] = vals
		areaCols[ai] = shape[1]
	}
	if t < 0 {
		return
	}

	group := model.NewDatasetGroup(variable, mesh.driverName, mesh.uri, location, true, mesh.FaceCount(), mesh.FaceCount(), nil)
	group.SetReferenceTime(refTime)
	if err := group.StartEditing(); err != nil {
		return
	}
	for step := 0; step < t && step < len(times); step++ {
		values := make([]float64, mesh.FaceCount())
		for ai, a := range mesh.areas {
			cols := areaCols[ai]
			row := perArea[ai][step*cols : (step+1)*cols]
			for r, faceIdx := range a.cellToFace {
				if faceIdx < 0 {
					continue
				}
				values[a.faceStart+faceIdx] = transform(row[r], a.bedElevation[faceIdx])
			}
		}
		if _, err := group.AddDataset(times[step], values, nil); err != nil {
			return
		}
	}
	_ = group.CloseEditMode()
	mesh.AddGroup(group)
}

// loadFaceAveragedVariable loads a per-face (HDF5 "Face") variable and
// averages it onto the two adjoining cells using max, per spec.md
// §4.11's deliberate shear/velocity reconstruction rule.
func loadFaceAveragedVariable(mesh *Mesh, h *file, outBase, variable string, times []mdaltime.RelativeTimestamp, refTime mdaltime.DateTime) {
	perArea := make([][]float64, len(mesh.areas))
	t := -1
	for ai, a := range mesh.areas {
		if len(a.faceCellIndices) == 0 {
			mdallog.Warnf("hecras", "area %q has no Faces Cell Indexes, skipping %q", a.name, variable)
			return
		}
		path := outBase + "2D Flow Areas/" + a.name + "/" + variable
		if !h.exists(path) {
			mdallog.Warnf("hecras", "missing variable %q in area %q, skipping", variable, a.name)
			return
		}
		vals, shape, err := h.floats64(path)
		if err != nil || len(shape) != 2 {
			mdallog.Warnf("hecras", "failed reading variable %q in area %q: %v", variable, a.name, err)
			return
		}
		t = shape[0]
		perArea[ai] = vals
	}
	if t < 0 {
		return
	}

	group := model.NewDatasetGroup(variable, mesh.driverName, mesh.uri, model.OnFaces, true, mesh.FaceCount(), mesh.FaceCount(), nil)
	group.SetReferenceTime(refTime)
	if err := group.StartEditing(); err != nil {
		return
	}
	for step := 0; step < t && step < len(times); step++ {
		values := make([]float64, mesh.FaceCount())
		for i := range values {
			values[i] = math.NaN()
		}
		for ai, a := range mesh.areas {
			faceCols := len(a.faceCellIndices)
			row := perArea[ai][step*faceCols : (step+1)*faceCols]
			averageFacesOntoCells(row, a.faceCellIndices, len(a.bedElevation), values[a.faceStart:])
		}
		if _, err := group.AddDataset(times[step], values, nil); err != nil {
			return
		}
	}
	_ = group.CloseEditMode()
	mesh.AddGroup(group)
}

// loadSummaryMaximum loads a single-snapshot "<variable>/Maximums"
// group from the Summary Output tree, with time = 0 and an invalid
// reference time (spec.md §4.11).
func loadSummaryMaximum(mesh *Mesh, h *file, variable string) {
	perArea := make([]float64, mesh.FaceCount())
	found := false
	for _, a := range mesh.areas {
		path := "/Results/Unsteady/Summary/2D Flow Areas/" + a.name + "/Maximum " + variable
		if !h.exists(path) {
			continue
		}
		vals, _, err := h.floats64(path)
		if err != nil || len(vals) != a.fileCellCount {
			continue
		}
		for r, faceIdx := range a.cellToFace {
			if faceIdx < 0 {
				continue
			}
			perArea[a.faceStart+faceIdx] = vals[r]
		}
		found = true
	}
	if !found {
		return
	}

	group := model.NewDatasetGroup(variable+"/Maximums", mesh.driverName, mesh.uri, model.OnFaces, true, mesh.FaceCount(), mesh.FaceCount(), nil)
	if err := group.StartEditing(); err != nil {
		return
	}
	if _, err := group.AddDataset(mdaltime.RelativeTimestamp{}, perArea, nil); err != nil {
		return
	}
	_ = group.CloseEditMode()
	mesh.AddGroup(group)
}

// averageFacesOntoCells implements spec.md §4.11's face→cell
// reconstruction: for every non-zero, non-NaN face value, replace each
// adjoining cell's running max if the value is larger. dest must be at
// least cellCount long and pre-filled with NaN; only dest[:cellCount]
// is touched.
func averageFacesOntoCells(faceValues []float64, faceCellIndices [][2]int, cellCount int, dest []float64) {
	for fi, v := range faceValues {
		if v == 0 || math.IsNaN(v) {
			continue
		}
		if fi >= len(faceCellIndices) {
			continue
		}
		for _, localCell := range faceCellIndices[fi] {
			if localCell < 0 || localCell >= cellCount {
				continue
			}
			if math.IsNaN(dest[localCell]) || dest[localCell] < v {
				dest[localCell] = v
			}
		}
	}
}
