package spectrogram

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const paletteColors = 255

// Renderer turns a Heatmap into a base64-encoded PNG with a labeled
// colorbar on the right edge.
type Renderer struct {
	width  vg.Length
	height vg.Length
	dpi    int
}

// NewRenderer creates a renderer at the standard 12x8 inch, 96 dpi canvas
func NewRenderer() *Renderer {
	return &Renderer{
		width:  12 * vg.Inch,
		height: 8 * vg.Inch,
		dpi:    96,
	}
}

// Render draws the heatmap and returns the PNG as base64. The colormap is
// chosen per spectrogram type so the six views stay visually distinct.
func (r *Renderer) Render(specType string, hm *Heatmap) (string, error) {
	if len(hm.Data) == 0 || len(hm.Data[0]) == 0 {
		return "", fmt.Errorf("empty heatmap")
	}

	hm.poolForPlot()

	p := plot.New()
	p.Title.Text = hm.Title
	p.X.Label.Text = hm.XLabel
	p.Y.Label.Text = hm.YLabel
	if hm.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	colors := colorMapFor(specType)
	heat := plotter.NewHeatMap(heatGrid{hm}, colors.Palette(paletteColors))
	if hm.HasRange {
		heat.Min = hm.VMin
		heat.Max = hm.VMax
	}
	if heat.Max <= heat.Min {
		// Flat data still needs a nonzero color range
		heat.Max = heat.Min + 1.0
	}
	colors.SetMin(heat.Min)
	colors.SetMax(heat.Max)
	p.Add(heat)

	bar := plot.New()
	cb := &plotter.ColorBar{ColorMap: colors}
	cb.Vertical = true
	bar.Add(cb)
	bar.HideX()
	bar.Y.Label.Text = hm.BarLabel

	img := vgimg.NewWith(vgimg.UseWH(r.width, r.height), vgimg.UseDPI(r.dpi))
	canvas := draw.New(img)

	barWidth := r.width / 7
	main := draw.Crop(canvas, 0, -barWidth, 0, 0)
	side := draw.Crop(canvas, r.width-barWidth, 0, 0, 0)
	p.Draw(main)
	bar.Draw(side)

	var buf bytes.Buffer
	pngCanvas := vgimg.PngCanvas{Canvas: img}
	if _, err := pngCanvas.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// colorMapFor assigns a distinct colormap to each spectrogram type. The
// kurtosis view gets a diverging map since its values sit on both sides
// of zero.
func colorMapFor(specType string) palette.ColorMap {
	switch specType {
	case TypeMel:
		return moreland.Kindlmann()
	case TypeCQT:
		return moreland.ExtendedKindlmann()
	case TypeLogSTFT:
		return moreland.BlackBody()
	case TypeScalogram:
		return moreland.ExtendedBlackBody()
	case TypeKurtosis:
		return moreland.SmoothBlueRed()
	case TypeModulation:
		return moreland.BlackBody()
	default:
		return moreland.Kindlmann()
	}
}
