package selafin

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/mdal-go/mdal/internal/binstream"
	"github.com/mdal-go/mdal/internal/mdalerr"
	"github.com/mdal-go/mdal/internal/mdaltime"
)

// header holds every piece of a parsed Selafin file that is cheap to
// keep resident: names, sizes, connectivity, and the stream positions
// the engine seeks back to for lazy reads (spec.md §4.10).
type header struct {
	title     string
	single    bool // true = "SERAFIN " (f32), false = "SERAFIND" (f64)
	nbv1      int
	nbv2      int
	varNames  []string // raw, trimmed, nbv1 long of them
	params    [10]int32
	refTime   mdaltime.DateTime // invalid if params[9] != 1
	is3D      bool
	nElem     int
	nPoint    int
	ndp       int
	ikle      []int32 // flattened nElem*ndp, 1-based as stored on disk

	xPos int64
	yPos int64

	// timeSteps[i] is the stream position of step i's time-value
	// record; variablePos[i][v] is the position of variable v's value
	// record within that step.
	timeSteps   []int64
	variablePos [][]int64
}

// detectEndianness peeks at the first 4 bytes of r (the title record's
// opening length marker, which must equal 80 for an 80-char title) to
// decide whether byte-swapping is needed, per spec.md §4.10. It seeks r
// back to the start before returning.
func detectEndianness(r io.ReadSeeker) (bool, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return false, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	if binary.LittleEndian.Uint32(buf) == 80 {
		return false, nil
	}
	rev := []byte{buf[3], buf[2], buf[1], buf[0]}
	if binary.LittleEndian.Uint32(rev) == 80 {
		return true, nil
	}
	return false, mdalerr.New(mdalerr.StatusUnknownFormat, "not a Selafin file: unrecognised title record length")
}

// parseHeader reads every fixed-size structure up through the IPOBO
// array, then indexes (without decoding) the X/Y coordinate records and
// every time step's records, per spec.md §4.10's parse order.
func parseHeader(r *binstream.Reader) (*header, error) {
	h := &header{}

	titlePayload, err := readRecordBytes(r)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading title record", err)
	}
	if len(titlePayload) < 80 {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "title record shorter than 80 bytes")
	}
	h.title = strings.TrimRight(string(titlePayload[:80]), " ")
	if len(titlePayload) >= 88 {
		tag := strings.TrimRight(string(titlePayload[80:88]), " ")
		h.single = tag != "SERAFIND"
	} else {
		h.single = true
	}

	nbv, err := readRecordInt32Array(r)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading nbv1/nbv2", err)
	}
	if len(nbv) != 2 {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "nbv1/nbv2 record must hold exactly 2 values")
	}
	h.nbv1, h.nbv2 = int(nbv[0]), int(nbv[1])

	for i := 0; i < h.nbv1; i++ {
		payload, err := readRecordBytes(r)
		if err != nil {
			return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading variable name record", err)
		}
		h.varNames = append(h.varNames, strings.TrimRight(string(payload), " "))
	}

	params, err := readRecordInt32Array(r)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading integer parameters", err)
	}
	if len(params) != 10 {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "integer parameter record must hold exactly 10 values")
	}
	copy(h.params[:], params)

	if h.params[6] != 0 {
		return nil, mdalerr.New(mdalerr.StatusMissingDriver, "3D layered Selafin files are not supported")
	}

	h.refTime = mdaltime.Invalid()
	if h.params[9] == 1 {
		date, err := readRecordInt32Array(r)
		if err != nil {
			return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading reference date record", err)
		}
		if len(date) != 6 {
			return nil, mdalerr.New(mdalerr.StatusInvalidData, "reference date record must hold exactly 6 values")
		}
		h.refTime = mdaltime.NewCivil(mdaltime.Gregorian, int(date[0]), int(date[1]), int(date[2]), int(date[3]), int(date[4]), int(date[5]), 0)
	}

	sizes, err := readRecordInt32Array(r)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading element/point/ndp record", err)
	}
	if len(sizes) != 4 {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "element/point/ndp record must hold exactly 4 values")
	}
	h.nElem, h.nPoint, h.ndp = int(sizes[0]), int(sizes[1]), int(sizes[2])
	if h.ndp != 3 {
		return nil, mdalerr.New(mdalerr.StatusMissingDriver, "only triangular (ndp=3) Selafin meshes are supported")
	}

	ikle, err := readRecordInt32Array(r)
	if err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading connectivity array", err)
	}
	if len(ikle) != h.nElem*h.ndp {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "connectivity array has unexpected length")
	}
	h.ikle = ikle

	if _, err := readRecordInt32Array(r); err != nil { // ipobo, ignored
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "reading ipobo array", err)
	}

	h.xPos, err = r.Pos()
	if err != nil {
		return nil, err
	}
	if err := skipRecord(r); err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "skipping X coordinate record", err)
	}
	h.yPos, err = r.Pos()
	if err != nil {
		return nil, err
	}
	if err := skipRecord(r); err != nil {
		return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "skipping Y coordinate record", err)
	}

	for {
		pos, err := r.Pos()
		if err != nil {
			return nil, err
		}
		if err := skipRecord(r); err != nil {
			// A clean end-of-file after the last complete step looks
			// like an EOF while reading the next time record's length
			// marker; anything else is a real parse failure.
			if err == io.EOF {
				break
			}
			return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "skipping time step record", err)
		}
		h.timeSteps = append(h.timeSteps, pos)

		varPos := make([]int64, h.nbv1)
		for v := 0; v < h.nbv1; v++ {
			p, err := r.Pos()
			if err != nil {
				return nil, err
			}
			varPos[v] = p
			if err := skipRecord(r); err != nil {
				return nil, mdalerr.Wrap(mdalerr.StatusInvalidData, "skipping variable value record", err)
			}
		}
		h.variablePos = append(h.variablePos, varPos)
	}

	return h, nil
}
