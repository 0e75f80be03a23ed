// Package patterns holds the read-only seed library and the board seeders.
package patterns

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"lifegrid/pkg/sims/life"
)

// ErrUnknownPattern is returned when a name is not in the library.
var ErrUnknownPattern = errors.New("patterns: unknown pattern")

// Pattern is a named rectangular 0/1 matrix.
type Pattern struct {
	Key   string
	Name  string
	Cells [][]uint8
}

// Height returns the number of rows.
func (p Pattern) Height() int { return len(p.Cells) }

// Width returns the length of the longest row.
func (p Pattern) Width() int {
	w := 0
	for _, row := range p.Cells {
		w = max(w, len(row))
	}
	return w
}

// Population counts the live cells of the pattern.
func (p Pattern) Population() int {
	n := 0
	for _, row := range p.Cells {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

var library = []Pattern{
	{Key: "glider", Name: "Glider", Cells: [][]uint8{
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
	}},
	{Key: "blinker", Name: "Blinker", Cells: [][]uint8{
		{1, 1, 1},
	}},
	{Key: "toad", Name: "Toad", Cells: [][]uint8{
		{0, 1, 1, 1},
		{1, 1, 1, 0},
	}},
	{Key: "beacon", Name: "Beacon", Cells: [][]uint8{
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
		{0, 0, 1, 1},
	}},
	{Key: "pulsar", Name: "Pulsar", Cells: [][]uint8{
		{0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1},
		{0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0},
		{1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0},
	}},
	{Key: "gosperglidergun", Name: "Gosper Glider Gun", Cells: [][]uint8{
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
		{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}},
}

var aliases = map[string]string{
	"gosper":    "gosperglidergun",
	"glidergun": "gosperglidergun",
}

// Lookup returns a copy of the named pattern. Names are matched ignoring case,
// spaces, dashes and underscores.
func Lookup(name string) (Pattern, error) {
	key := normalize(name)
	if target, ok := aliases[key]; ok {
		key = target
	}
	for _, p := range library {
		if p.Key == key {
			return p.clone(), nil
		}
	}
	return Pattern{}, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
}

// Keys lists the library in its fixed order.
func Keys() []string {
	keys := make([]string, len(library))
	for i, p := range library {
		keys[i] = p.Key
	}
	return keys
}

// PlacementFor returns the anchor that centers p on a gridSize board:
// floor(gridSize/2) - floor(dim/2) on each axis.
func PlacementFor(p Pattern, gridSize int) (row, col int) {
	center := gridSize / 2
	return center - p.Height()/2, center - p.Width()/2
}

// Stamp writes p onto g at the given anchor, clipping at the board edges.
func Stamp(g *life.Grid, p Pattern, anchorRow, anchorCol int) {
	g.ApplyPattern(p.Cells, anchorRow, anchorCol)
}

// StampCentered writes p centered on g.
func StampCentered(g *life.Grid, p Pattern) {
	row, col := PlacementFor(p, g.Size())
	Stamp(g, p, row, col)
}

func (p Pattern) clone() Pattern {
	cells := make([][]uint8, len(p.Cells))
	for i, row := range p.Cells {
		cells[i] = slices.Clone(row)
	}
	p.Cells = cells
	return p
}

func normalize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}
