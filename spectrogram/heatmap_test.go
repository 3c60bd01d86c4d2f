package spectrogram

import (
	"math"
	"testing"
)

func TestTranspose(t *testing.T) {
	m := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}
	got := transpose(m)

	if len(got) != 3 || len(got[0]) != 2 {
		t.Fatalf("dims = %dx%d, want 3x2", len(got), len(got[0]))
	}
	if got[0][0] != 1 || got[0][1] != 4 || got[2][1] != 6 {
		t.Errorf("transpose wrong: %v", got)
	}
}

func TestFrameTimes(t *testing.T) {
	times := frameTimes(3, 512, 22050)
	want := []float64{0, 512.0 / 22050.0, 1024.0 / 22050.0}

	for i := range want {
		if math.Abs(times[i]-want[i]) > 1e-12 {
			t.Errorf("times[%d] = %v, want %v", i, times[i], want[i])
		}
	}
}

func TestPoolRows_MaxPooling(t *testing.T) {
	data := [][]float64{
		{1, 0},
		{5, 2}, // Spike survives pooling
		{1, 0},
		{1, 0},
	}
	axis := []float64{10, 20, 30, 40}

	pooled, pooledAxis := poolRows(data, axis, 2)
	if len(pooled) != 2 {
		t.Fatalf("got %d rows, want 2", len(pooled))
	}
	if pooled[0][0] != 5 || pooled[0][1] != 2 {
		t.Errorf("first pooled row = %v, want [5 2]", pooled[0])
	}
	if pooledAxis[0] != 15 {
		t.Errorf("first pooled axis = %v, want 15", pooledAxis[0])
	}
}

func TestPoolForPlot_CapsDimensions(t *testing.T) {
	rows := maxPlotRows * 3
	cols := 10
	data := make([][]float64, rows)
	y := make([]float64, rows)
	for r := range data {
		data[r] = make([]float64, cols)
		y[r] = float64(r)
	}
	x := make([]float64, cols)
	for c := range x {
		x[c] = float64(c)
	}

	hm := &Heatmap{Data: data, X: x, Y: y}
	hm.poolForPlot()

	if len(hm.Data) > maxPlotRows {
		t.Errorf("rows = %d, want at most %d", len(hm.Data), maxPlotRows)
	}
	if len(hm.Y) != len(hm.Data) {
		t.Errorf("axis length %d does not match %d rows", len(hm.Y), len(hm.Data))
	}
}

func TestPoolForPlot_SmallUntouched(t *testing.T) {
	hm := &Heatmap{
		Data: [][]float64{{1, 2}, {3, 4}},
		X:    []float64{0, 1},
		Y:    []float64{0, 1},
	}
	hm.poolForPlot()

	if len(hm.Data) != 2 || len(hm.Data[0]) != 2 {
		t.Errorf("small heatmap was pooled: %v", hm.Data)
	}
}

func TestHeatGrid_Adapter(t *testing.T) {
	hm := &Heatmap{
		Data: [][]float64{{1, 2}, {3, 4}},
		X:    []float64{0.5, 1.5},
		Y:    []float64{100, 200},
	}
	grid := heatGrid{hm}

	c, r := grid.Dims()
	if c != 2 || r != 2 {
		t.Fatalf("dims = %d, %d, want 2, 2", c, r)
	}
	if grid.Z(1, 0) != 2 {
		t.Errorf("Z(1,0) = %v, want 2", grid.Z(1, 0))
	}
	if grid.X(1) != 1.5 || grid.Y(1) != 200 {
		t.Errorf("axis lookup wrong: X(1)=%v Y(1)=%v", grid.X(1), grid.Y(1))
	}
}
