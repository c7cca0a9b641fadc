package packet

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteGridLayout(t *testing.T) {
	w := NewWriter()
	w.WriteGrid([]string{"#.", "T0"})
	want := []byte{
		0x00, 0x02, 0x00, 0x02,
		0x00, '#', 0x00, '.',
		0x00, 'T', 0x00, '0',
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("grid bytes = % x, want % x", w.Bytes(), want)
	}
}

func TestParseFrame(t *testing.T) {
	grid := []string{"####", "#0M#", "#.T#"}
	status := "Level:1.00/2 | Health:100/100 | Mana:124/124\nEquipped Treasure: none"

	g := NewWriter()
	g.WriteGrid(grid)
	w := NewWriterFrom(g.Bytes())
	w.WriteS(status)

	f, err := ParseFrame(w.Bytes())
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if f.Rows != 3 || f.Cols != 4 {
		t.Fatalf("size = %dx%d, want 3x4", f.Rows, f.Cols)
	}
	for i := range grid {
		if f.Grid[i] != grid[i] {
			t.Fatalf("row %d = %q, want %q", i, f.Grid[i], grid[i])
		}
	}
	if f.Status != status {
		t.Fatalf("status = %q, want %q", f.Status, status)
	}
	if n := GridSize(w.Bytes()); n != 4+3*4*2 {
		t.Fatalf("GridSize = %d", n)
	}
}

func TestNewWriterFromCopiesPrefix(t *testing.T) {
	g := NewWriter()
	g.WriteGrid([]string{"."})
	shared := g.Bytes()

	a := NewWriterFrom(shared)
	a.WriteS("a")
	b := NewWriterFrom(shared)
	b.WriteS("b")

	if string(a.Bytes()[len(shared):]) != "a" || string(b.Bytes()[len(shared):]) != "b" {
		t.Fatalf("frames share a backing array: %q %q", a.Bytes(), b.Bytes())
	}
}

func TestParseFrameShort(t *testing.T) {
	tests := map[string][]byte{
		"empty":        nil,
		"half header":  {0x00, 0x01},
		"missing grid": {0x00, 0x02, 0x00, 0x02, 0x00, '#'},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseFrame(data); !errors.Is(err, ErrShortFrame) {
				t.Fatalf("err = %v, want ErrShortFrame", err)
			}
		})
	}
}

func TestSpectatorFrameHasNoStatus(t *testing.T) {
	w := NewWriter()
	w.WriteGrid([]string{"#"})
	f, err := ParseFrame(w.Bytes())
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if f.Status != "" {
		t.Fatalf("status = %q, want empty", f.Status)
	}
}
