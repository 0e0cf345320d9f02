// Package layout models the passport print sheet: which grid is selected and where
// each copy of the photo lands on the sheet.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Layout is the closed set of print grids. The name reads columns x rows.
type Layout string

const (
	Layout3x4 Layout = "3x4"
	Layout2x3 Layout = "2x3"
)

// Default is the selection a grid screen starts with.
const Default = Layout3x4

var ErrUnknownLayout = errors.New("unknown layout")

var dims = map[Layout]struct{ rows, cols int }{
	Layout3x4: {rows: 4, cols: 3},
	Layout2x3: {rows: 3, cols: 2},
}

// All returns every layout in display order.
func All() []Layout {
	return []Layout{Layout3x4, Layout2x3}
}

// Parse accepts "3x4", "3 x 4" and "3X4" spellings.
func Parse(s string) (Layout, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	l := Layout(norm)
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, s)
	}
	return l, nil
}

func (l Layout) Valid() bool {
	_, ok := dims[l]
	return ok
}

func (l Layout) Rows() int { return dims[l].rows }

func (l Layout) Columns() int { return dims[l].cols }

// Cells is rows*columns, or 0 for an invalid layout.
func (l Layout) Cells() int { return l.Rows() * l.Columns() }

func (l Layout) String() string { return string(l) }

// Label is the button caption, e.g. "3 x 4".
func (l Layout) Label() string {
	return fmt.Sprintf("%d x %d", l.Columns(), l.Rows())
}

// FromLabel reverses Label.
func FromLabel(label string) (Layout, error) {
	for _, l := range All() {
		if l.Label() == label {
			return l, nil
		}
	}
	return Parse(label)
}
