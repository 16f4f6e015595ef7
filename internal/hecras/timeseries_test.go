package hecras

import (
	"math"
	"testing"
)

func TestAverageFacesOntoCellsUsesMax(t *testing.T) {
	// Three faces: face0 borders cells 0/1, face1 borders cells 1/2,
	// face2 is a boundary face (second index out of range).
	faceCellIndices := [][2]int{{0, 1}, {1, 2}, {2, -1}}
	faceValues := []float64{5, 9, 3}
	dest := []float64{math.NaN(), math.NaN(), math.NaN()}

	averageFacesOntoCells(faceValues, faceCellIndices, 3, dest)

	if dest[0] != 5 {
		t.Fatalf("cell0 = %v, want 5", dest[0])
	}
	if dest[1] != 9 {
		t.Fatalf("cell1 = %v, want 9 (max of 5 and 9)", dest[1])
	}
	if dest[2] != 9 {
		t.Fatalf("cell2 = %v, want 9 (max of 9 and 3)", dest[2])
	}
}

func TestAverageFacesOntoCellsSkipsZeroAndNaN(t *testing.T) {
	faceCellIndices := [][2]int{{0, 1}}
	dest := []float64{math.NaN(), math.NaN()}

	averageFacesOntoCells([]float64{0}, faceCellIndices, 2, dest)
	if !math.IsNaN(dest[0]) || !math.IsNaN(dest[1]) {
		t.Fatalf("zero face value must not set a cell: %v", dest)
	}

	averageFacesOntoCells([]float64{math.NaN()}, faceCellIndices, 2, dest)
	if !math.IsNaN(dest[0]) || !math.IsNaN(dest[1]) {
		t.Fatalf("NaN face value must not set a cell: %v", dest)
	}
}

func TestWaterSurfaceAndDepthTransforms(t *testing.T) {
	if !math.IsNaN(waterSurfaceTransform(10.0, 10.0)) {
		t.Fatal("dry cell (ws == bed) must report NaN")
	}
	if waterSurfaceTransform(12.0, 10.0) != 12.0 {
		t.Fatal("wet cell must pass through unchanged")
	}
	if !math.IsNaN(depthTransform(0, 5)) {
		t.Fatal("zero depth must report NaN")
	}
	if depthTransform(1.5, 5) != 1.5 {
		t.Fatal("nonzero depth must pass through unchanged")
	}
}
