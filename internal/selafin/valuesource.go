package selafin

import (
	"math"

	"github.com/mdal-go/mdal/internal/binstream"
)

// scalarValueSource lazily reads one variable's values for one time
// step by seeking to its recorded record position (spec.md §4.10: the
// engine "does NOT load payloads" at parse time).
type scalarValueSource struct {
	r      *binstream.Reader
	pos    int64
	count  int
	single bool
}

func (s *scalarValueSource) Read(offset, count int, buf []float64) (int, error) {
	if _, err := s.r.Seek(s.pos, 0); err != nil {
		return 0, err
	}
	vals, err := readRecordFloatArray(s.r, s.count, s.single)
	if err != nil {
		return 0, err
	}
	n := count
	if offset+n > len(vals) {
		n = len(vals) - offset
	}
	if n < 0 {
		n = 0
	}
	copy(buf, vals[offset:offset+n])
	return n, nil
}

// vectorValueSource reads a merged 2D vector's u/v components from two
// independent scalar positions, interleaving them as (u,v) pairs.
type vectorValueSource struct {
	u, v scalarValueSource
}

func (vv *vectorValueSource) Read(offset, count int, buf []float64) (int, error) {
	uBuf := make([]float64, count)
	vBuf := make([]float64, count)
	nu, err := vv.u.Read(offset, count, uBuf)
	if err != nil {
		return 0, err
	}
	nv, err := vv.v.Read(offset, count, vBuf)
	if err != nil {
		return 0, err
	}
	n := nu
	if nv < n {
		n = nv
	}
	for i := 0; i < n; i++ {
		uval, vval := uBuf[i], vBuf[i]
		if uval == 0 {
			uval = math.NaN()
		}
		if vval == 0 {
			vval = math.NaN()
		}
		buf[2*i] = uval
		buf[2*i+1] = vval
	}
	return n, nil
}
