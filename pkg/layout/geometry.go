package layout

// Geometry sizes the printed sheet in pixels. Cells keep a 3:4 (width:height) aspect.
type Geometry struct {
	CellWidth  int
	CellMargin int // left and right of every cell
	RowGap     int // below every row, the last included
	Padding    int // around the whole sheet
}

// DefaultGeometry mirrors the on-screen grid styling.
func DefaultGeometry() Geometry {
	return Geometry{
		CellWidth:  300,
		CellMargin: 5,
		RowGap:     10,
		Padding:    20,
	}
}

// CellHeight derives the 3:4 height from CellWidth.
func (g Geometry) CellHeight() int {
	return (g.CellWidth*4 + 1) / 3
}

// Box is a cell placed on the sheet.
type Box struct {
	Cell   GridCell
	X, Y   int
	Width  int
	Height int
}

// Frame is an arranged grid ready to be painted.
type Frame struct {
	Width  int
	Height int
	Boxes  []Box
}

// Arrange places every cell of grid on a sheet sized by geo.
func (g Grid) Arrange(geo Geometry) Frame {
	cw, ch := geo.CellWidth, geo.CellHeight()
	rows, cols := g.Rows(), g.Columns()

	f := Frame{
		Width:  2*geo.Padding + cols*(cw+2*geo.CellMargin),
		Height: 2*geo.Padding + rows*(ch+geo.RowGap),
		Boxes:  make([]Box, 0, len(g.Cells)),
	}

	for _, cell := range g.Cells {
		f.Boxes = append(f.Boxes, Box{
			Cell:   cell,
			X:      geo.Padding + cell.Column*(cw+2*geo.CellMargin) + geo.CellMargin,
			Y:      geo.Padding + cell.Row*(ch+geo.RowGap),
			Width:  cw,
			Height: ch,
		})
	}
	return f
}
