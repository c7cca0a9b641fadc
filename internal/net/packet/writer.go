package packet

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// utf16 is the cell encoding used on the wire: UTF-16 big-endian, no BOM.
var utf16 = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Writer builds a server frame. All multi-byte writes are big-endian.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 512)}
}

// NewWriterFrom starts a frame with a copy of prefix, typically a grid
// that was serialized once and is shared by every connection.
func NewWriterFrom(prefix []byte) *Writer {
	w := &Writer{buf: make([]byte, 0, len(prefix)+256)}
	w.buf = append(w.buf, prefix...)
	return w
}

// WriteH writes 2 bytes big-endian.
func (w *Writer) WriteH(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteGrid writes the row and column counts followed by every cell,
// row-major, as a 16-bit code. Rows must have equal length.
func (w *Writer) WriteGrid(rows []string) {
	cols := 0
	if len(rows) > 0 {
		cols = len([]rune(rows[0]))
	}
	w.WriteH(uint16(len(rows)))
	w.WriteH(uint16(cols))
	enc := utf16.NewEncoder()
	for _, row := range rows {
		encoded, err := enc.Bytes([]byte(row))
		if err != nil {
			// Fallback: truncate each rune to 16 bits
			for _, r := range row {
				w.WriteH(uint16(r))
			}
			continue
		}
		w.buf = append(w.buf, encoded...)
	}
}

// WriteS writes raw UTF-8 text with no terminator.
func (w *Writer) WriteS(s string) {
	w.buf = append(w.buf, s...)
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Bytes returns the frame content. Frames are not padded.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the current length.
func (w *Writer) Len() int {
	return len(w.buf)
}
