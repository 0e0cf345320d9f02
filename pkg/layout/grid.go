package layout

import "passgrid/pkg/imageref"

// GridCell is one copy of the photo on the sheet.
type GridCell struct {
	Row    int
	Column int
	Image  imageref.Ref
}

// Grid is the derived composition of a layout and a single image reference.
// Cells are stored row-major.
type Grid struct {
	Layout Layout
	Cells  []GridCell
}

// Compose tiles image into every cell of l. An empty image falls back to fallback.
func Compose(l Layout, image, fallback imageref.Ref) Grid {
	src := image
	if src.IsZero() {
		src = fallback
	}
	rows, cols := l.Rows(), l.Columns()
	cells := make([]GridCell, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, GridCell{Row: r, Column: c, Image: src})
		}
	}
	return Grid{Layout: l, Cells: cells}
}

func (g Grid) Rows() int    { return g.Layout.Rows() }
func (g Grid) Columns() int { return g.Layout.Columns() }

// Source returns the reference shared by all cells.
func (g Grid) Source() imageref.Ref {
	if len(g.Cells) == 0 {
		return ""
	}
	return g.Cells[0].Image
}

// Row returns the cells of row r in column order.
func (g Grid) Row(r int) []GridCell {
	cols := g.Columns()
	if r < 0 || r >= g.Rows() || len(g.Cells) < (r+1)*cols {
		return nil
	}
	return g.Cells[r*cols : (r+1)*cols]
}
