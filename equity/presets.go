package equity

import (
	"fmt"
	"strings"
)

const (
	PresetZero        = "zero"
	PresetHandcrafted = "handcrafted"
)

// handcrafted was set by hand for the standard ten-column well: tall middle
// columns and uneven middle pairs cost more than the edges, and the tallest
// column is the heaviest single penalty.
var handcrafted = Weights{
	-1, -1.5, -2.3, -3.4, -5, -5, -3.4, -2.3, -1.5, -1,
	-0.5, -1.2, -2, -4, -4, -2.4, -2, -1.2, -0.5,
	-8, -1.5,
}

// Handcrafted returns a copy of the hand-set ten-column weights.
func Handcrafted() Weights {
	return handcrafted.Copy()
}

// Preset returns a named weight vector for a cols-wide board.
func Preset(name string, cols int) (Weights, error) {
	switch strings.ToLower(name) {
	case PresetZero:
		return Zero(cols), nil
	case PresetHandcrafted:
		w := Handcrafted()
		if err := w.Check(cols); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		return w, nil
	}
	return nil, fmt.Errorf("unknown weight preset %q", name)
}

// IsPreset reports whether name refers to a built-in vector rather than a
// file.
func IsPreset(name string) bool {
	switch strings.ToLower(name) {
	case PresetZero, PresetHandcrafted:
		return true
	}
	return false
}
