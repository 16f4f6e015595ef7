// Package binstream provides the low-level typed-read helpers that the
// Selafin driver builds its framing on: endian detection and
// byte-swapped reads of fixed-size numeric types from an io.Reader.
package binstream

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unsafe"
)

// IsNativeLittleEndian reports the host's byte order, detected on each
// call via an unsafe pointer probe rather than trusting runtime.GOARCH.
func IsNativeLittleEndian() bool {
	var i uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&i))
	return b[0] == 1
}

// Reader wraps an io.ReadSeeker with the typed reads the framed formats
// need, applying a byte swap when the stream's endianness differs from
// the detected native one.
type Reader struct {
	r               io.ReadSeeker
	changeEndianness bool
}

// New wraps r. changeEndianness should be the result of a format's own
// endian-negotiation probe (see internal/selafin's detectEndianness).
func New(r io.ReadSeeker, changeEndianness bool) *Reader {
	return &Reader{r: r, changeEndianness: changeEndianness}
}

// Seek repositions the underlying stream.
func (s *Reader) Seek(offset int64, whence int) (int64, error) {
	return s.r.Seek(offset, whence)
}

// Pos returns the current stream offset.
func (s *Reader) Pos() (int64, error) {
	return s.r.Seek(0, io.SeekCurrent)
}

func (s *Reader) readRaw(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, err
	}
	if s.changeEndianness {
		for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
	return buf, nil
}

// ReadUint32 reads a single uint32, swapping bytes if negotiated.
func (s *Reader) ReadUint32() (uint32, error) {
	b, err := s.readRaw(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32 reads a single int32, swapping bytes if negotiated.
func (s *Reader) ReadInt32() (int32, error) {
	v, err := s.ReadUint32()
	return int32(v), err
}

// ReadFloat32 reads a single IEEE-754 float32, swapping bytes if negotiated.
func (s *Reader) ReadFloat32() (float32, error) {
	v, err := s.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads a single IEEE-754 float64, swapping bytes if negotiated.
func (s *Reader) ReadFloat64() (float64, error) {
	b, err := s.readRaw(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// ReadBytes reads n raw bytes verbatim (no swap — used for ASCII payloads).
func (s *Reader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, fmt.Errorf("read %d bytes: %w", n, err)
	}
	return buf, nil
}

// ReadInt32Array reads n consecutive int32 values.
func (s *Reader) ReadInt32Array(n int) ([]int32, error) {
	out := make([]int32, n)
	for i := range out {
		v, err := s.ReadInt32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadFloat64Array reads n consecutive values, each converted to float64.
// single controls whether the on-disk representation is float32 (single
// precision Selafin files) or float64 (double precision).
func (s *Reader) ReadFloat64Array(n int, single bool) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		if single {
			v, err := s.ReadFloat32()
			if err != nil {
				return nil, err
			}
			out[i] = float64(v)
		} else {
			v, err := s.ReadFloat64()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
	}
	return out, nil
}
