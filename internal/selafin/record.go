// Package selafin implements the TELEMAC Selafin/Serafin binary engine
// of spec.md §4.10: Fortran-record framing, endian and precision
// negotiation, and lazy access to dataset values by seeking into the
// file. Vertices and faces are not streamed: Load reads them into
// memory once.
package selafin

import (
	"github.com/mdal-go/mdal/internal/binstream"
	"github.com/mdal-go/mdal/internal/mdalerr"
)

// readRecordBytes reads one Fortran-framed record's raw payload: a u32
// length, that many bytes, and a trailing u32 length that must match
// the opening one (spec.md §4.10).
func readRecordBytes(r *binstream.Reader) ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	payload, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	n2, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if n2 != n {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "Fortran record length markers do not match")
	}
	return payload, nil
}

// readRecordInt32Array reads a record whose payload is a sequence of
// i32 values.
func readRecordInt32Array(r *binstream.Reader) ([]int32, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	count := int(n) / 4
	vals, err := r.ReadInt32Array(count)
	if err != nil {
		return nil, err
	}
	n2, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if n2 != n {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "Fortran record length markers do not match")
	}
	return vals, nil
}

// readRecordFloatArray reads a record whose payload is count
// single-or-double precision floats, converted to float64.
func readRecordFloatArray(r *binstream.Reader, count int, single bool) ([]float64, error) {
	width := 8
	if single {
		width = 4
	}
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if int(n) != count*width {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "unexpected float record length")
	}
	vals, err := r.ReadFloat64Array(count, single)
	if err != nil {
		return nil, err
	}
	n2, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if n2 != n {
		return nil, mdalerr.New(mdalerr.StatusInvalidData, "Fortran record length markers do not match")
	}
	return vals, nil
}

// skipRecord advances past one record without decoding its payload,
// used while indexing time steps (spec.md §4.10: "it does NOT load
// payloads").
func skipRecord(r *binstream.Reader) error {
	n, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if _, err := r.Seek(int64(n), 1); err != nil {
		return err
	}
	n2, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if n2 != n {
		return mdalerr.New(mdalerr.StatusInvalidData, "Fortran record length markers do not match")
	}
	return nil
}
