package chart

import (
	"fmt"
	"image"
	"io"

	"gocv.io/x/gocv"
)

const font = gocv.FontHersheySimplex

// Render rasterises l into an RGBA image.
func Render(l Layout) (image.Image, error) {
	mat, err := draw(l)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("Mat to image conversion failed: %w", err)
	}
	return img, nil
}

// EncodePNG rasterises l and writes it to w as PNG.
func EncodePNG(l Layout, w io.Writer) error {
	mat, err := draw(l)
	if err != nil {
		return err
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return fmt.Errorf("PNG encoding failed: %w", err)
	}
	defer buf.Close()

	if _, err := w.Write(buf.GetBytes()); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// draw paints the layout on a fresh BGR Mat owned by the caller.
func draw(l Layout) (gocv.Mat, error) {
	if l.Size.Width <= 0 || l.Size.Height <= 0 {
		return gocv.Mat{}, fmt.Errorf("invalid chart size %dx%d", l.Size.Width, l.Size.Height)
	}

	bg := ColorBackground
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(bg.B), float64(bg.G), float64(bg.R), 0),
		l.Size.Height, l.Size.Width, gocv.MatTypeCV8UC3,
	)
	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, fmt.Errorf("failed to allocate %dx%d canvas", l.Size.Width, l.Size.Height)
	}

	for _, tick := range l.YTicks {
		gocv.Line(&mat, image.Pt(l.Plot.Min.X-4, tick.Y), image.Pt(l.Plot.Min.X, tick.Y), ColorAxis, 1)
		putLabel(&mat, tick.Label)
	}

	for _, bar := range l.Bars {
		gocv.Rectangle(&mat, bar.Rect, bar.Color, -1)
	}

	// Reference lines sit on top of the bars.
	for _, th := range l.Thresholds {
		for _, d := range th.Dashes {
			gocv.Line(&mat, d.From, d.To, ColorThreshold, 1)
		}
	}

	for _, axis := range l.Axes {
		gocv.Line(&mat, axis.From, axis.To, ColorAxis, 1)
	}

	for _, bar := range l.Bars {
		putLabel(&mat, bar.ValueLabel)
		putLabel(&mat, bar.TickLabel)
	}

	for _, label := range l.Labels {
		putLabel(&mat, label)
	}

	return mat, nil
}

func putLabel(mat *gocv.Mat, label Label) {
	if label.Text == "" {
		return
	}

	scale := label.Scale
	if scale <= 0 {
		scale = 0.5
	}
	thickness := 1
	if label.Bold {
		thickness = 2
	}

	size := gocv.GetTextSize(label.Text, font, scale, thickness)
	origin := label.Anchor
	switch label.Align {
	case AlignCenter:
		origin.X -= size.X / 2
	case AlignRight:
		origin.X -= size.X
	}

	gocv.PutText(mat, label.Text, origin, font, scale, ColorText, thickness)
}
