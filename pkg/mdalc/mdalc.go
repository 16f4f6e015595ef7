// Package mdalc is the thin C-ABI-shaped surface of spec.md §6:
// opaque integer handles over the real model.Mesh/DatasetGroup/Dataset
// types, plus a process-wide "last status" readable independently of
// any particular call's return value. It exists for callers embedding
// this library behind a C boundary (cgo export, or a future shared
// library build) who cannot hold a Go pointer across that boundary;
// pure-Go callers should use internal/model and internal/registry
// directly instead.
package mdalc

import (
	"sync"
	"sync/atomic"

	"github.com/mdal-go/mdal/internal/mdalerr"
	"github.com/mdal-go/mdal/internal/model"
	"github.com/mdal-go/mdal/internal/registry"
)

// MeshH, DatasetGroupH and DatasetH are opaque handles, per spec.md
// §6. 0 is never a valid handle; it is this package's null.
type MeshH int32
type DatasetGroupH int32
type DatasetH int32

var lastStatus atomic.Int32

// LastStatus returns the Status of the most recent call made through
// this package, from any goroutine. spec.md §6: "set by every entry
// point and readable via MDAL_LastStatus."
func LastStatus() mdalerr.Status {
	return mdalerr.Status(lastStatus.Load())
}

func setStatus(err error) {
	lastStatus.Store(int32(mdalerr.StatusOf(err)))
}

var (
	manager = registry.NewManager()

	mu         sync.Mutex
	nextHandle int32 = 1
	meshes     = map[MeshH]model.Mesh{}
	groups     = map[DatasetGroupH]*model.DatasetGroup{}
	datasets   = map[DatasetH]*model.Dataset{}
)

func allocHandle() int32 {
	mu.Lock()
	defer mu.Unlock()
	h := nextHandle
	nextHandle++
	return h
}

// OpenMesh loads uri through the built-in driver registry and returns a
// handle to it, or 0 on failure (check LastStatus for why).
func OpenMesh(uri string) MeshH {
	mesh, err := manager.Load(uri)
	setStatus(err)
	if err != nil {
		return 0
	}
	h := MeshH(allocHandle())
	mu.Lock()
	meshes[h] = mesh
	mu.Unlock()
	return h
}

// CloseMesh releases a mesh's backing file handle and forgets its
// handle. Closing an already-closed or unknown handle is a no-op.
func CloseMesh(h MeshH) {
	mu.Lock()
	mesh, ok := meshes[h]
	delete(meshes, h)
	mu.Unlock()
	if !ok {
		setStatus(nil)
		return
	}
	setStatus(mesh.Close())
}

// MeshVertexCount, MeshEdgeCount and MeshFaceCount report 0 for an
// unknown handle (and set LastStatus to InvalidData).
func MeshVertexCount(h MeshH) int { return withMesh(h, model.Mesh.VertexCount) }
func MeshEdgeCount(h MeshH) int   { return withMesh(h, model.Mesh.EdgeCount) }
func MeshFaceCount(h MeshH) int   { return withMesh(h, model.Mesh.FaceCount) }

func withMesh(h MeshH, f func(model.Mesh) int) int {
	mu.Lock()
	mesh, ok := meshes[h]
	mu.Unlock()
	if !ok {
		setStatus(mdalerr.New(mdalerr.StatusInvalidData, "unknown mesh handle"))
		return 0
	}
	setStatus(nil)
	return f(mesh)
}

// MeshGroupCount and MeshGroup expose a mesh's dataset groups by index;
// MeshGroup allocates a new DatasetGroupH on every call.
func MeshGroupCount(h MeshH) int {
	mu.Lock()
	mesh, ok := meshes[h]
	mu.Unlock()
	if !ok {
		setStatus(mdalerr.New(mdalerr.StatusInvalidData, "unknown mesh handle"))
		return 0
	}
	setStatus(nil)
	return len(mesh.Groups())
}

// MeshGroup returns a handle to mesh h's group at index, or 0 if
// either is out of range.
func MeshGroup(h MeshH, index int) DatasetGroupH {
	mu.Lock()
	mesh, ok := meshes[h]
	mu.Unlock()
	if !ok || index < 0 || index >= len(mesh.Groups()) {
		setStatus(mdalerr.New(mdalerr.StatusInvalidData, "group index out of range"))
		return 0
	}
	setStatus(nil)
	gh := DatasetGroupH(allocHandle())
	mu.Lock()
	groups[gh] = mesh.Groups()[index]
	mu.Unlock()
	return gh
}

// GroupDatasetCount and GroupDataset are the DatasetGroupH analogue of
// MeshGroupCount/MeshGroup.
func GroupDatasetCount(gh DatasetGroupH) int {
	mu.Lock()
	g, ok := groups[gh]
	mu.Unlock()
	if !ok {
		setStatus(mdalerr.New(mdalerr.StatusInvalidData, "unknown group handle"))
		return 0
	}
	setStatus(nil)
	return len(g.Datasets())
}

func GroupDataset(gh DatasetGroupH, index int) DatasetH {
	mu.Lock()
	g, ok := groups[gh]
	mu.Unlock()
	if !ok || index < 0 || index >= len(g.Datasets()) {
		setStatus(mdalerr.New(mdalerr.StatusInvalidData, "dataset index out of range"))
		return 0
	}
	setStatus(nil)
	dh := DatasetH(allocHandle())
	mu.Lock()
	datasets[dh] = g.Datasets()[index]
	mu.Unlock()
	return dh
}

// DatasetData copies len(buf) scalar values from dataset dh starting at
// offset and returns the count written. It writes nothing and returns 0
// if offset+len(buf) runs past the dataset's values or the dataset is
// not scalar.
func DatasetData(dh DatasetH, offset int, buf []float64) int {
	mu.Lock()
	d, ok := datasets[dh]
	mu.Unlock()
	if !ok {
		setStatus(mdalerr.New(mdalerr.StatusInvalidData, "unknown dataset handle"))
		return 0
	}
	setStatus(nil)
	return d.Data(offset, len(buf), model.ScalarDouble, buf)
}
