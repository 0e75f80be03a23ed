package ui

import (
	"fmt"

	"lifegrid/internal/core"
)

// Help lists the GUI key bindings shown under the parameters.
var Help = []string{
	"space  start / pause",
	"n      step once",
	"c      clear",
	"r      reset",
	"s      reseed",
	"x      random fill",
	"1-6    patterns",
	"v      switch variant",
	"+/-    speed",
	"[ ]    board size",
	"click  toggle cell",
}

// Lines flattens a snapshot into the text rows the panel draws. Group names
// become headers; every parameter is "label: value".
func Lines(snap core.ParameterSnapshot) []string {
	var out []string
	for i, g := range snap.Groups {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, g.Name)
		for _, p := range g.Params {
			out = append(out, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	return out
}
