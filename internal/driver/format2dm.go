package driver

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/mdal-go/mdal/internal/mdalerr"
	"github.com/mdal-go/mdal/internal/mdaltime"
	"github.com/mdal-go/mdal/internal/meshgeom"
	"github.com/mdal-go/mdal/internal/model"
)

// TwoDM reads SMS's native ASCII mesh format (spec.md §4.1's "2DM"),
// the one format outside Selafin/HEC-RAS this repository reads bit-
// for-bit, since scenario S1 requires it end-to-end.
type TwoDM struct {
	baseDriver
}

// NewTwoDM builds the 2DM driver with the capability flags spec.md
// §4.7 defines for a read-only mesh format.
func NewTwoDM() *TwoDM {
	return &TwoDM{baseDriver: baseDriver{
		name:         "2DM",
		longName:     "SMS 2D Mesh",
		filters:      []string{"*.2dm"},
		capabilities: model.CapReadMesh,
		maxVertices:  4,
	}}
}

// CanReadMesh reports whether the file's first non-blank line starts
// with MESH2D (spec.md §6).
func (d *TwoDM) CanReadMesh(uri string) bool {
	f, err := os.Open(uri)
	if err != nil {
		return false
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		return strings.HasPrefix(line, "MESH2D")
	}
	return false
}

// twoDMNode is one ND card: 1-based id plus coordinates.
type twoDMNode struct {
	id      int
	x, y, z float64
}

// Load parses a 2DM file into a MemoryMesh, and synthesizes a "Bed
// Elevation" scalar vertex dataset group from the nodes' Z coordinates
// — 2DM has no separate elevation dataset card, so every reader
// surfaces the mesh's own Z as that group, as the format's consumers
// expect.
func (d *TwoDM) Load(uri string, meshName string) (model.Mesh, error) {
	f, err := os.Open(uri)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusFileNotFound, uri, err)
	}
	defer f.Close()

	var nodes []twoDMNode
	idToIndex := make(map[int]int)
	var faces []meshgeom.Face

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sawHeader := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		card := fields[0]
		switch {
		case card == "MESH2D":
			sawHeader = true
		case card == "ND":
			n, err := parseNode(fields)
			if err != nil {
				return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "malformed ND card", err)
			}
			idToIndex[n.id] = len(nodes)
			nodes = append(nodes, n)
		case card == "E3T" || card == "E4Q":
			face, err := parseElement(fields)
			if err != nil {
				return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "malformed element card", err)
			}
			faces = append(faces, face)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading 2dm file", err)
	}
	if !sawHeader {
		return nil, mdalerr.New(mdalerr.StatusUnknownFormat, "missing MESH2D header")
	}

	mesh := model.NewMemoryMesh(d.name, uri, "")
	for _, n := range nodes {
		mesh.AddVertex(meshgeom.Vertex{X: n.x, Y: n.y, Z: n.z})
	}
	for _, face := range faces {
		resolved := make(meshgeom.Face, len(face))
		for i, id := range face {
			idx, ok := idToIndex[id]
			if !ok {
				return nil, mdalerr.New(mdalerr.StatusInvalidData, "element references unknown node id")
			}
			resolved[i] = idx
		}
		mesh.AddFace(resolved)
	}

	group := model.NewDatasetGroup("Bed Elevation", d.name, uri, model.OnVertices, true, len(nodes), len(faces), nil)
	if err := group.StartEditing(); err != nil {
		return nil, err
	}
	z := make([]float64, len(nodes))
	for i, n := range nodes {
		z[i] = n.z
	}
	if _, err := group.AddDataset(mdaltime.RelativeTimestamp{}, z, nil); err != nil {
		return nil, err
	}
	if err := group.CloseEditMode(); err != nil {
		return nil, err
	}
	mesh.AddGroup(group)

	return mesh, nil
}

func (d *TwoDM) LoadDatasets(uri string, mesh model.Mesh) error {
	return mdalerr.New(mdalerr.StatusMissingDriverCapability, "2DM driver does not read separate dataset files")
}

func (d *TwoDM) Save(uri string, mesh model.Mesh) error {
	return mdalerr.New(mdalerr.StatusMissingDriverCapability, "2DM driver is read-only")
}

func (d *TwoDM) Persist(group *model.DatasetGroup) error {
	return mdalerr.New(mdalerr.StatusMissingDriverCapability, "2DM driver is read-only")
}

func parseNode(fields []string) (twoDMNode, error) {
	if len(fields) < 5 {
		return twoDMNode{}, mdalerr.New(mdalerr.StatusInvalidData, "ND card needs id, x, y, z")
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return twoDMNode{}, err
	}
	x, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return twoDMNode{}, err
	}
	y, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return twoDMNode{}, err
	}
	z, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return twoDMNode{}, err
	}
	return twoDMNode{id: id, x: x, y: y, z: z}, nil
}

// parseElement reads an element card's node-id list, skipping the
// leading card name and trailing element id. A trailing material id is
// common but optional, so it is read if present and ignored either way;
// only E3T and E4Q are supported, matching the original 2DM reader.
func parseElement(fields []string) (meshgeom.Face, error) {
	nodeCountByCard := map[string]int{
		"E3T": 3, "E4Q": 4,
	}
	n, ok := nodeCountByCard[fields[0]]
	if !ok {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "unsupported element card: "+fields[0])
	}
	// fields[0]=card, fields[1]=elem id, fields[2..2+n)=node ids, optional material id after.
	if len(fields) < 2+n {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "truncated element card: "+fields[0])
	}
	face := make(meshgeom.Face, n)
	for i := 0; i < n; i++ {
		id, err := strconv.Atoi(fields[2+i])
		if err != nil {
			return nil, err
		}
		face[i] = id
	}
	return face, nil
}
