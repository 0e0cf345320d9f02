package layout

import (
	"errors"
	"testing"

	"passgrid/pkg/imageref"
)

func TestLayoutTable(t *testing.T) {
	tests := []struct {
		layout     Layout
		rows, cols int
		cells      int
		label      string
	}{
		{Layout3x4, 4, 3, 12, "3 x 4"},
		{Layout2x3, 3, 2, 6, "2 x 3"},
	}
	for _, tt := range tests {
		if tt.layout.Rows() != tt.rows || tt.layout.Columns() != tt.cols {
			t.Errorf("%s: got %dx%d, want %dx%d", tt.layout, tt.layout.Rows(), tt.layout.Columns(), tt.rows, tt.cols)
		}
		if tt.layout.Cells() != tt.cells {
			t.Errorf("%s: got %d cells, want %d", tt.layout, tt.layout.Cells(), tt.cells)
		}
		if tt.layout.Label() != tt.label {
			t.Errorf("%s: label %q, want %q", tt.layout, tt.layout.Label(), tt.label)
		}
	}
	if Default != Layout3x4 {
		t.Errorf("default layout is %s, want 3x4", Default)
	}
}

func TestParse(t *testing.T) {
	for _, s := range []string{"3x4", " 3 x 4 ", "3X4"} {
		l, err := Parse(s)
		if err != nil || l != Layout3x4 {
			t.Errorf("Parse(%q) = %q, %v", s, l, err)
		}
	}
	for _, s := range []string{"", "4x4", "grid"} {
		if _, err := Parse(s); !errors.Is(err, ErrUnknownLayout) {
			t.Errorf("Parse(%q): expected ErrUnknownLayout, got %v", s, err)
		}
	}
	l, err := FromLabel("2 x 3")
	if err != nil || l != Layout2x3 {
		t.Errorf("FromLabel: got %q, %v", l, err)
	}
}

func TestComposeCellCount(t *testing.T) {
	img := imageref.FromPath("/tmp/me.jpg")
	for _, l := range All() {
		g := Compose(l, img, imageref.Placeholder)
		if len(g.Cells) != l.Cells() {
			t.Fatalf("%s: %d cells, want %d", l, len(g.Cells), l.Cells())
		}
		for r := 0; r < l.Rows(); r++ {
			row := g.Row(r)
			if len(row) != l.Columns() {
				t.Fatalf("%s row %d: %d cells, want %d", l, r, len(row), l.Columns())
			}
			for c, cell := range row {
				if cell.Row != r || cell.Column != c {
					t.Errorf("%s: cell at (%d,%d) labelled (%d,%d)", l, r, c, cell.Row, cell.Column)
				}
			}
		}
	}
}

func TestComposeEveryCellSameImage(t *testing.T) {
	img := imageref.FromPath("/tmp/me.jpg")
	g := Compose(Layout3x4, img, imageref.Placeholder)
	for i, cell := range g.Cells {
		if cell.Image != img {
			t.Errorf("cell %d shows %q, want %q", i, cell.Image, img)
		}
	}
	if g.Source() != img {
		t.Errorf("Source = %q", g.Source())
	}

	empty := Compose(Layout2x3, "", imageref.Placeholder)
	for i, cell := range empty.Cells {
		if cell.Image != imageref.Placeholder {
			t.Errorf("cell %d shows %q, want fallback", i, cell.Image)
		}
	}
}

func TestComposeInvalidLayoutIsEmpty(t *testing.T) {
	g := Compose(Layout("9x9"), "/tmp/me.jpg", imageref.Placeholder)
	if len(g.Cells) != 0 {
		t.Errorf("expected no cells, got %d", len(g.Cells))
	}
	if g.Row(0) != nil {
		t.Error("expected nil row")
	}
}

func TestArrange(t *testing.T) {
	geo := Geometry{CellWidth: 30, CellMargin: 5, RowGap: 10, Padding: 20}
	g := Compose(Layout2x3, "/tmp/me.jpg", imageref.Placeholder)
	f := g.Arrange(geo)

	// 2 columns of (30 + 2*5) plus 2*20 padding.
	if f.Width != 120 {
		t.Errorf("width = %d, want 120", f.Width)
	}
	// 3 rows of 40, each followed by a gap of 10, plus 2*20 padding.
	if f.Height != 190 {
		t.Errorf("height = %d, want 190", f.Height)
	}
	if len(f.Boxes) != 6 {
		t.Fatalf("boxes = %d, want 6", len(f.Boxes))
	}

	last := f.Boxes[5]
	if last.X != 20+40+5 || last.Y != 20+2*50 {
		t.Errorf("last box at (%d,%d), want (65,120)", last.X, last.Y)
	}
	if last.Width != 30 || last.Height != 40 {
		t.Errorf("last box %dx%d, want 30x40", last.Width, last.Height)
	}
}

func TestArrangeKeepsGapBelowLastRow(t *testing.T) {
	geo := Geometry{CellWidth: 30, CellMargin: 5, RowGap: 10, Padding: 20}
	f := Compose(Layout3x4, "/tmp/me.jpg", imageref.Placeholder).Arrange(geo)

	last := f.Boxes[len(f.Boxes)-1]
	if bottom := f.Height - (last.Y + last.Height); bottom != geo.RowGap+geo.Padding {
		t.Errorf("space below last row = %d, want %d", bottom, geo.RowGap+geo.Padding)
	}
}

func TestDefaultGeometryAspect(t *testing.T) {
	geo := DefaultGeometry()
	if geo.CellHeight()*3 != geo.CellWidth*4 {
		t.Errorf("cell %dx%d is not 3:4", geo.CellWidth, geo.CellHeight())
	}
}
