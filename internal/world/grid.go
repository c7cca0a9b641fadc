package world

import (
	"errors"
	"fmt"
)

// Grid cell glyphs that are not actors.
const (
	CellWall     = '#'
	CellEmpty    = '.'
	CellTreasure = 'T'
)

// Grid is the static terrain: walls and floor. Actors and treasures are not
// stored here; State draws them on top when a snapshot is taken.
type Grid struct {
	rows  int
	cols  int
	cells [][]rune
}

// NewGrid builds terrain from equal-length rows of '#' and '.'.
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New("grid has no rows")
	}
	g := &Grid{rows: len(rows), cells: make([][]rune, len(rows))}
	for y, row := range rows {
		cells := []rune(row)
		if y == 0 {
			g.cols = len(cells)
			if g.cols == 0 {
				return nil, errors.New("grid has no columns")
			}
		} else if len(cells) != g.cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(cells), g.cols)
		}
		for x, c := range cells {
			if c != CellWall && c != CellEmpty {
				return nil, fmt.Errorf("row %d col %d: invalid terrain %q", y, x, c)
			}
		}
		g.cells[y] = cells
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether pos lies on the grid.
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.cols && pos.Y >= 0 && pos.Y < g.rows
}

// IsWall reports whether pos is a wall. Out of bounds counts as wall.
func (g *Grid) IsWall(pos Position) bool {
	if !g.InBounds(pos) {
		return true
	}
	return g.cells[pos.Y][pos.X] == CellWall
}

// terrain returns a fresh copy of the cells for drawing.
func (g *Grid) terrain() [][]rune {
	out := make([][]rune, g.rows)
	for y, row := range g.cells {
		out[y] = append([]rune(nil), row...)
	}
	return out
}
