package model

// ValueSource supplies one ValueKind's worth of values for a Dataset.
// It exists so Selafin and HEC-RAS datasets can seek into their backing
// file lazily (spec.md §3's "datasets may hold a shared handle to their
// file") while in-memory datasets (2DM, edited groups) can just slice a
// Go array — both look the same to Dataset.Data.
//
// offset and count are in elements (one scalar, one x/y pair, etc.); buf
// must be at least count*width(kind) long. Read returns the number of
// elements actually written.
type ValueSource interface {
	Read(offset, count int, buf []float64) (int, error)
}

// MemoryValueSource serves values already resident in a Go slice, where
// width float64s make up one element (1 for scalars, 2 for vectors).
type MemoryValueSource struct {
	values []float64
	width  int
}

// NewMemoryValueSource wraps values for ValueSource access.
func NewMemoryValueSource(values []float64, width int) *MemoryValueSource {
	return &MemoryValueSource{values: values, width: width}
}

func (s *MemoryValueSource) Read(offset, count int, buf []float64) (int, error) {
	start := offset * s.width
	n := count * s.width
	if start+n > len(s.values) {
		n = len(s.values) - start
		if n < 0 {
			n = 0
		}
	}
	copy(buf, s.values[start:start+n])
	return n / s.width, nil
}

func boolsToFloats(bs []bool) []float64 {
	out := make([]float64, len(bs))
	for i, b := range bs {
		if b {
			out[i] = 1
		}
	}
	return out
}
