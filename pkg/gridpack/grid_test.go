package gridpack

import "testing"

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(8)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	w, h := g.Shape()
	if w != 8 || h != 8 {
		t.Errorf("expected shape 8x8, got %dx%d", w, h)
	}
	if len(g.Cells) != 64 {
		t.Errorf("expected 64 cells, got %d", len(g.Cells))
	}
}

func TestCellPosition(t *testing.T) {
	g, _ := NewGrid(16)
	for _, idx := range []int{0, 15, 16, 17, 255} {
		cx, cy := g.CellPosition(idx)
		if got := g.Index(cx, cy); got != idx {
			t.Errorf("index %d -> (%d,%d) -> %d", idx, cx, cy, got)
		}
	}
	if cx, cy := g.CellPosition(33); cx != 1 || cy != 2 {
		t.Errorf("expected (1,2), got (%d,%d)", cx, cy)
	}
}

func TestRGBA8(t *testing.T) {
	g, _ := NewGrid(2)
	g.Cells[1] = Cell{OffsetX: 0.5, OffsetY: 0.25, Count: 3, Payload: 5}
	g.Cells[2] = Cell{OffsetX: 0, OffsetY: 0, Count: 1000, Payload: 400}

	data := g.RGBA8()
	if len(data) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(data))
	}

	want := []byte{
		0, 0, 0, 0,
		127, 63, 3, 5,
		0, 0, 255, 255,
		0, 0, 0, 0,
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("byte %d: expected %d, got %d", i, want[i], data[i])
		}
	}
}

func TestRGBA32F(t *testing.T) {
	g, _ := NewGrid(1)
	g.Cells[0] = Cell{OffsetX: 0.75, OffsetY: 0.5, Count: 300, Payload: 12.5}

	data := g.RGBA32F()
	want := []float32{0.75, 0.5, 300, 12.5}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("channel %d: expected %v, got %v", i, want[i], data[i])
		}
	}
}

func TestImageAndHeatmap(t *testing.T) {
	g, _ := NewGrid(4)
	g.Cells[g.Index(0, 0)] = Cell{Count: 1}
	g.Cells[g.Index(3, 3)] = Cell{Count: 9}

	img := g.Image()
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Fatalf("expected 4x4 image, got %v", img.Bounds())
	}
	if img.Pix[2] != 1 {
		t.Errorf("expected count 1 in first pixel blue channel, got %d", img.Pix[2])
	}

	hm := g.Heatmap()
	// Data y grows upward, so cell (0,0) is the bottom-left pixel.
	if hm.RGBAAt(0, 3).A != 255 {
		t.Error("expected cell (0,0) at bottom-left of heatmap")
	}
	if hm.RGBAAt(3, 0).R != 255 {
		t.Errorf("expected densest cell at full brightness, got %d", hm.RGBAAt(3, 0).R)
	}
	if hm.RGBAAt(1, 1).A != 0 {
		t.Error("expected absent cell to stay transparent")
	}
}

func TestMaxCount(t *testing.T) {
	g, _ := NewGrid(2)
	g.Cells[3].Count = 7
	g.Cells[0].Count = 2
	if g.MaxCount() != 7 {
		t.Errorf("expected 7, got %d", g.MaxCount())
	}
}
