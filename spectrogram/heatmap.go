package spectrogram

// Heatmap is the intermediate form every generator produces before
// rendering. Data is indexed [row][col] with row 0 at the bottom of the
// plot; X and Y give the axis value of each column and row.
type Heatmap struct {
	Data [][]float64
	X    []float64
	Y    []float64

	Title    string
	XLabel   string
	YLabel   string
	BarLabel string

	LogY bool

	// Optional explicit color range; when unset the data range is used
	VMin, VMax float64
	HasRange   bool
}

// heatGrid adapts a Heatmap to plotter.GridXYZ
type heatGrid struct {
	hm *Heatmap
}

func (g heatGrid) Dims() (c, r int) {
	if len(g.hm.Data) == 0 {
		return 0, 0
	}
	return len(g.hm.Data[0]), len(g.hm.Data)
}

func (g heatGrid) Z(c, r int) float64 { return g.hm.Data[r][c] }
func (g heatGrid) X(c int) float64    { return g.hm.X[c] }
func (g heatGrid) Y(r int) float64    { return g.hm.Y[r] }

// transpose flips a frames-by-bins matrix into bins-by-frames
func transpose(m [][]float64) [][]float64 {
	if len(m) == 0 {
		return nil
	}
	rows := len(m[0])
	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, len(m))
		for c := range m {
			out[r][c] = m[c][r]
		}
	}
	return out
}

// frameTimes returns the axis positions for a hopped frame sequence
func frameTimes(numFrames, hopSize, sampleRate int) []float64 {
	times := make([]float64, numFrames)
	for i := range times {
		times[i] = float64(i*hopSize) / float64(sampleRate)
	}
	return times
}

// Rendering caps. A raster backend draws every cell as a filled
// rectangle, so dense matrices are max-pooled down to these dimensions
// first. Max pooling keeps narrow transients visible where averaging
// would wash them out.
const (
	maxPlotRows = 512
	maxPlotCols = 1024
)

// poolForPlot reduces a heatmap in place to the rendering caps
func (hm *Heatmap) poolForPlot() {
	if len(hm.Data) == 0 {
		return
	}

	if len(hm.Data) > maxPlotRows {
		hm.Data, hm.Y = poolRows(hm.Data, hm.Y, maxPlotRows)
	}
	if len(hm.Data[0]) > maxPlotCols {
		cols := transpose(hm.Data)
		cols, hm.X = poolRows(cols, hm.X, maxPlotCols)
		hm.Data = transpose(cols)
	}
}

// poolRows max-pools groups of adjacent rows down to the target count.
// The axis value of a pooled row is the center of its group.
func poolRows(data [][]float64, axis []float64, target int) ([][]float64, []float64) {
	n := len(data)
	group := (n + target - 1) / target
	outRows := (n + group - 1) / group

	out := make([][]float64, outRows)
	outAxis := make([]float64, outRows)

	for r := 0; r < outRows; r++ {
		start := r * group
		end := start + group
		if end > n {
			end = n
		}

		pooled := make([]float64, len(data[start]))
		copy(pooled, data[start])
		for i := start + 1; i < end; i++ {
			for c, v := range data[i] {
				if v > pooled[c] {
					pooled[c] = v
				}
			}
		}
		out[r] = pooled
		outAxis[r] = 0.5 * (axis[start] + axis[end-1])
	}
	return out, outAxis
}
