package selafin

import (
	"os"
	"strings"

	"github.com/mdal-go/mdal/internal/binstream"
	"github.com/mdal-go/mdal/internal/mdalerr"
	"github.com/mdal-go/mdal/internal/mdaltime"
	"github.com/mdal-go/mdal/internal/meshgeom"
	"github.com/mdal-go/mdal/internal/model"
)

// Driver implements the driver.Driver contract for TELEMAC
// Selafin/Serafin files.
type Driver struct{}

// New returns the Selafin driver instance registered with the manager.
func New() *Driver { return &Driver{} }

func (d *Driver) Name() string       { return "Selafin" }
func (d *Driver) LongName() string   { return "TELEMAC Selafin/Serafin" }
func (d *Driver) Filters() []string  { return []string{"*.slf", "*.srf"} }
func (d *Driver) Capabilities() model.Capability {
	return model.CapReadMesh | model.CapReadDatasets
}
func (d *Driver) FaceVerticesMaximumCount() int { return 3 }

// CanReadMesh checks spec.md §6's magic bytes: the first record's
// length marker is 80, and bytes 84..91 close that record (80) and
// open the nbv1/nbv2 record (8), without parsing the rest of the file.
func (d *Driver) CanReadMesh(uri string) bool {
	f, err := os.Open(uri)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, 92)
	n, err := f.Read(buf)
	if err != nil || n < 92 {
		return false
	}
	swap, err := detectEndianness(f)
	if err != nil {
		return false
	}
	r := binstream.New(f, swap)
	if _, err := r.Seek(0, 0); err != nil {
		return false
	}
	titleLen, err := r.ReadUint32()
	if err != nil || titleLen != 80 {
		return false
	}
	if _, err := r.Seek(84, 0); err != nil {
		return false
	}
	titleEnd, err := r.ReadUint32()
	if err != nil || titleEnd != 80 {
		return false
	}
	nbvLen, err := r.ReadUint32()
	return err == nil && nbvLen == 8
}

func (d *Driver) CanReadDatasets(uri string) bool { return d.CanReadMesh(uri) }

// Load parses the full header, resolves vertices/faces into memory,
// and leaves the file handle open for lazy dataset access (spec.md
// §4.10).
func (d *Driver) Load(uri string, meshName string) (model.Mesh, error) {
	f, err := os.Open(uri)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusFileNotFound, uri, err)
	}

	swap, err := detectEndianness(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r := binstream.New(f, swap)

	h, err := parseHeader(r)
	if err != nil {
		f.Close()
		return nil, err
	}

	vertices, err := readVertices(r, h)
	if err != nil {
		f.Close()
		return nil, err
	}

	faces := make([]meshgeom.Face, h.nElem)
	for e := 0; e < h.nElem; e++ {
		face := make(meshgeom.Face, h.ndp)
		for i := 0; i < h.ndp; i++ {
			face[i] = int(h.ikle[e*h.ndp+i]) - 1
		}
		faces[e] = face
	}

	mesh := &Mesh{uri: uri, h: h, r: r, raw: f, vertices: vertices, faces: faces}
	if err := buildDatasetGroups(mesh, h, r); err != nil {
		f.Close()
		return nil, err
	}
	return mesh, nil
}

// readVertices seeks to the recorded X/Y record positions and decodes
// both coordinate arrays.
func readVertices(r *binstream.Reader, h *header) ([]meshgeom.Vertex, error) {
	if _, err := r.Seek(h.xPos, 0); err != nil {
		return nil, err
	}
	xs, err := readRecordFloatArray(r, h.nPoint, h.single)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading X coordinates", err)
	}
	if _, err := r.Seek(h.yPos, 0); err != nil {
		return nil, err
	}
	ys, err := readRecordFloatArray(r, h.nPoint, h.single)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading Y coordinates", err)
	}
	out := make([]meshgeom.Vertex, h.nPoint)
	for i := range out {
		out[i] = meshgeom.Vertex{X: xs[i], Y: ys[i]}
	}
	return out, nil
}

// buildDatasetGroups walks h's variable list, merging vector pairs per
// spec.md §4.10's canonicalisation table, and builds one DatasetGroup
// per resulting scalar/vector variable with one lazily-sourced Dataset
// per time step.
func buildDatasetGroups(mesh *Mesh, h *header, r *binstream.Reader) error {
	consumed := make([]bool, h.nbv1)
	type groupSpec struct {
		name     string
		isScalar bool
		uIndex   int
		vIndex   int
	}
	var specs []groupSpec

	for i, raw := range h.varNames {
		if consumed[i] {
			continue
		}
		canon := canonicalizeVarName(raw)
		_, base, half, ok := vectorPairFor(canon)
		if !ok {
			specs = append(specs, groupSpec{name: strings.TrimRight(raw, " "), isScalar: true, uIndex: i})
			continue
		}
		partnerCanon := otherHalf(canon)
		partner := -1
		for j := i + 1; j < h.nbv1; j++ {
			if consumed[j] {
				continue
			}
			if canonicalizeVarName(h.varNames[j]) == partnerCanon {
				partner = j
				break
			}
		}
		if partner < 0 {
			specs = append(specs, groupSpec{name: strings.TrimRight(raw, " "), isScalar: true, uIndex: i})
			continue
		}
		consumed[i] = true
		consumed[partner] = true
		uIdx, vIdx := i, partner
		if half == 1 {
			uIdx, vIdx = partner, i
		}
		specs = append(specs, groupSpec{name: base, isScalar: false, uIndex: uIdx, vIndex: vIdx})
	}

	for _, spec := range specs {
		group := model.NewDatasetGroup(spec.name, "Selafin", mesh.uri, model.OnVertices, spec.isScalar, h.nPoint, h.nElem, nil)
		group.SetReferenceTime(h.refTime)
		if err := group.StartEditing(); err != nil {
			return err
		}
		for step := range h.timeSteps {
			var src model.ValueSource
			if spec.isScalar {
				src = &scalarValueSource{r: r, pos: h.variablePos[step][spec.uIndex], count: h.nPoint, single: h.single}
			} else {
				src = &vectorValueSource{
					u: scalarValueSource{r: r, pos: h.variablePos[step][spec.uIndex], count: h.nPoint, single: h.single},
					v: scalarValueSource{r: r, pos: h.variablePos[step][spec.vIndex], count: h.nPoint, single: h.single},
				}
			}
			timeValue, err := readStepTime(r, h, step)
			if err != nil {
				return err
			}
			kind := model.ScalarDouble
			if !spec.isScalar {
				kind = model.Vector2DDouble
			}
			ds := model.NewDataset(group, mdaltime.NewRelativeTimestamp(timeValue, mdaltime.Seconds), map[model.ValueKind]model.ValueSource{kind: src}, nil)
			group.AppendDatasetReading(ds)
		}
		if err := group.CloseEditMode(); err != nil {
			return err
		}
		mesh.AddGroup(group)
	}
	return nil
}

// readStepTime decodes the single time value preceding step's variable
// records (seconds since the reference time, spec.md §4.10).
func readStepTime(r *binstream.Reader, h *header, step int) (float64, error) {
	if _, err := r.Seek(h.timeSteps[step], 0); err != nil {
		return 0, err
	}
	vals, err := readRecordFloatArray(r, 1, h.single)
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

func (d *Driver) LoadDatasets(uri string, mesh model.Mesh) error {
	return mdalerr.New(mdalerr.StatusMissingDriverCapability, "Selafin datasets are loaded together with the mesh")
}

func (d *Driver) Save(uri string, mesh model.Mesh) error {
	return mdalerr.New(mdalerr.StatusMissingDriverCapability, "Selafin writer not implemented in this build")
}

func (d *Driver) CreateDatasetGroup(mesh model.Mesh, name string, location model.DataLocation, isScalar bool) (*model.DatasetGroup, error) {
	return nil, mdalerr.New(mdalerr.StatusMissingDriverCapability, "Selafin writer not implemented in this build")
}

func (d *Driver) CreateDataset(group *model.DatasetGroup, time mdaltime.RelativeTimestamp, values []float64, active []bool) (*model.Dataset, error) {
	return nil, mdalerr.New(mdalerr.StatusMissingDriverCapability, "Selafin writer not implemented in this build")
}

func (d *Driver) Persist(group *model.DatasetGroup) error {
	return mdalerr.New(mdalerr.StatusMissingDriverCapability, "Selafin writer not implemented in this build")
}

// otherHalf returns the partner suffix of a canonicalised vector half,
// e.g. "velocity u" → "velocity v".
func otherHalf(canon string) string {
	for _, pair := range vectorPairs {
		if canon == pair[0] {
			return pair[1]
		}
		if canon == pair[1] {
			return pair[0]
		}
	}
	return ""
}
