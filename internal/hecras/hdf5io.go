// Package hecras implements the HEC-RAS 2D HDF5 engine of spec.md
// §4.11: multi-area hierarchical traversal, face→cell max-averaging,
// bed-elevation dependent depth/WSE reconstruction, and the two
// incompatible schema variants (pre- and post-5.0.5).
package hecras

import (
	"github.com/mdal-go/mdal/internal/mdalerr"
	hdf5 "github.com/scigolib/hdf5"
)

// file wraps *hdf5.File with the narrow read surface this engine needs:
// string/compound attributes and typed dataset reads. Only an internal
// superblock-parsing file of scigolib/hdf5 was present in the retrieval
// pack, so this wrapper's exact calls into the library are a best-effort
// mapping onto its documented pure-Go reader surface — see DESIGN.md.
type file struct {
	f *hdf5.File
}

func openFile(path string) (*file, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusFileNotFound, path, err)
	}
	return &file{f: f}, nil
}

func (h *file) Close() error {
	if h.f == nil {
		return nil
	}
	return h.f.Close()
}

// stringAttribute reads a string attribute at path/name, returning ok =
// false (never an error) if it is absent — can_read_mesh and optional
// per-variable metadata both rely on a missing attribute being
// harmless.
func (h *file) stringAttribute(path, name string) (string, bool) {
	v, ok, err := h.f.StringAttribute(path, name)
	if err != nil || !ok {
		return "", false
	}
	return v, true
}

func (h *file) exists(path string) bool {
	return h.f.Exists(path)
}

// floats64 reads a dataset as a flat []float64 plus its shape
// (row-major, e.g. [N,2] for an N×2 coordinate table).
func (h *file) floats64(path string) ([]float64, []int, error) {
	vals, shape, err := h.f.ReadFloat64(path)
	if err != nil {
		return nil, nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading dataset "+path, err)
	}
	return vals, shape, nil
}

// ints32 reads a dataset as a flat []int32 plus its shape.
func (h *file) ints32(path string) ([]int32, []int, error) {
	vals, shape, err := h.f.ReadInt32(path)
	if err != nil {
		return nil, nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading dataset "+path, err)
	}
	return vals, shape, nil
}

// stringArray reads a 1D string dataset (old-schema area Names list).
func (h *file) stringArray(path string) ([]string, error) {
	vals, err := h.f.ReadStringArray(path)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading dataset "+path, err)
	}
	return vals, nil
}

// compoundStringField reads one fixed-length-string field out of a
// compound dataset (5.0.5+ schema's Attributes table's Name field).
func (h *file) compoundStringField(path, field string) ([]string, error) {
	vals, err := h.f.ReadCompoundStringField(path, field)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading compound field "+field+" of "+path, err)
	}
	return vals, nil
}
