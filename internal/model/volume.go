package model

// VolumeInfo holds the extra per-face layering metadata an OnVolumes3D
// Dataset carries in addition to its scalar/vector values (spec.md §3).
type VolumeInfo struct {
	// VolumesCount is the total number of 3D cells (volumes) across all
	// faces.
	VolumesCount int
	// LevelCounts holds, per face, how many vertical levels that face
	// has.
	LevelCounts []int
	// IndexBase holds, per face, the start offset into the flat volume
	// value arrays.
	IndexBase []int
	// LevelZ is the flat vertical-level Z coordinate list, length
	// FaceCount + VolumesCount.
	LevelZ []float64
}
