package data

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/dungeons/server/internal/world"
	"gopkg.in/yaml.v3"
)

//go:embed default_map.yaml
var defaultMapYAML []byte

// MapLayout is a dungeon terrain file: one string per row, '#' for wall and
// '.' for floor. Entities are never stored in a layout.
type MapLayout struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// LoadMapLayout reads and validates a layout from a YAML file.
func LoadMapLayout(path string) (*MapLayout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map layout %s: %w", path, err)
	}
	layout, err := ParseMapLayout(raw)
	if err != nil {
		return nil, fmt.Errorf("map layout %s: %w", path, err)
	}
	return layout, nil
}

// ParseMapLayout decodes and validates a YAML layout.
func ParseMapLayout(raw []byte) (*MapLayout, error) {
	var layout MapLayout
	if err := yaml.Unmarshal(raw, &layout); err != nil {
		return nil, fmt.Errorf("parse map layout: %w", err)
	}
	if _, err := layout.Grid(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// DefaultMapLayout returns the built-in 11x18 dungeon.
func DefaultMapLayout() *MapLayout {
	layout, err := ParseMapLayout(defaultMapYAML)
	if err != nil {
		panic(fmt.Sprintf("data: built-in map layout: %v", err))
	}
	return layout
}

// Grid builds the terrain for this layout.
func (l *MapLayout) Grid() (*world.Grid, error) {
	return world.NewGrid(l.Rows)
}
