package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Reader reads frame fields from a server frame.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadH reads 2 bytes as big-endian uint16.
func (r *Reader) ReadH() uint16 {
	if r.off+2 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

// ReadBytes reads n raw bytes.
func (r *Reader) ReadBytes(n int) []byte {
	if r.off+n > len(r.data) {
		remaining := r.data[r.off:]
		r.off = len(r.data)
		return remaining
	}
	b := make([]byte, n)
	copy(b, r.data[r.off:r.off+n])
	r.off += n
	return b
}

// ReadRest returns every unread byte as a string.
func (r *Reader) ReadRest() string {
	s := string(r.data[r.off:])
	r.off = len(r.data)
	return s
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Frame is a decoded server frame.
type Frame struct {
	Rows   int
	Cols   int
	Grid   []string
	Status string // empty for spectator frames
}

var ErrShortFrame = errors.New("short frame")

// ParseFrame decodes a complete frame: header, grid cells and trailing
// status text.
func ParseFrame(data []byte) (Frame, error) {
	if len(data) < 4 {
		return Frame{}, fmt.Errorf("frame header: %w", ErrShortFrame)
	}
	r := NewReader(data)
	f := Frame{Rows: int(r.ReadH()), Cols: int(r.ReadH())}

	rowBytes := f.Cols * 2
	if r.Remaining() < f.Rows*rowBytes {
		return Frame{}, fmt.Errorf("frame grid %dx%d in %d bytes: %w",
			f.Rows, f.Cols, r.Remaining(), ErrShortFrame)
	}
	dec := utf16.NewDecoder()
	f.Grid = make([]string, f.Rows)
	for y := range f.Grid {
		row, err := dec.Bytes(r.ReadBytes(rowBytes))
		if err != nil {
			return Frame{}, fmt.Errorf("frame row %d: %w", y, err)
		}
		f.Grid[y] = string(row)
	}
	f.Status = r.ReadRest()
	return f, nil
}

// GridSize returns the byte length of the header plus grid of data,
// or 0 when data is too short to hold a header.
func GridSize(data []byte) int {
	if len(data) < 4 {
		return 0
	}
	rows := int(binary.BigEndian.Uint16(data[0:2]))
	cols := int(binary.BigEndian.Uint16(data[2:4]))
	return 4 + rows*cols*2
}
