// Package chart turns BMI history into a colour-coded bar chart image.
//
// BuildLayout does all geometry in plain Go; Render and EncodePNG rasterise a
// Layout with OpenCV drawing primitives.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"bmi-tracker/internal/bmi"
	"bmi-tracker/internal/models"
)

const (
	Title  = "BMI History (Color-Coded by Category)"
	XLabel = "Weight (kg)"
	YLabel = "BMI"

	DefaultWidth  = 800
	DefaultHeight = 500
)

// Plot margins in pixels
const (
	marginLeft   = 60
	marginRight  = 20
	marginTop    = 50
	marginBottom = 60

	barFill      = 0.8
	headroom     = 1.1
	dashLength   = 6
	dashGap      = 4
	yTickStep    = 5.0
	labelPadding = 4
	tickPadding  = 18
)

var (
	ColorBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorAxis       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	ColorThreshold  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	ColorText       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// CategoryColor returns the bar colour for a category.
func CategoryColor(c bmi.Category) color.RGBA {
	switch c {
	case bmi.Underweight:
		return color.RGBA{R: 135, G: 206, B: 235, A: 255} // skyblue
	case bmi.NormalWeight:
		return color.RGBA{R: 0, G: 128, B: 0, A: 255}
	case bmi.Overweight:
		return color.RGBA{R: 255, G: 165, B: 0, A: 255}
	default:
		return color.RGBA{R: 255, G: 0, B: 0, A: 255}
	}
}

// Size is the output image size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is an 8x5 canvas.
func DefaultSize() Size {
	return Size{Width: DefaultWidth, Height: DefaultHeight}
}

// Align controls how a label is placed relative to its anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Label is a piece of text anchored at its baseline.
type Label struct {
	Text   string
	Anchor image.Point
	Align  Align
	Scale  float64
	Bold   bool
}

// Bar is one record drawn as a filled rectangle.
type Bar struct {
	Rect       image.Rectangle
	Color      color.RGBA
	Record     models.Record
	ValueLabel Label
	TickLabel  Label
}

// Segment is a straight line between two points.
type Segment struct {
	From image.Point
	To   image.Point
}

// Threshold is a dashed horizontal reference line at a category boundary.
type Threshold struct {
	Value  float64
	Y      int
	Dashes []Segment
}

// Tick is a labelled mark on the y axis.
type Tick struct {
	Value float64
	Y     int
	Label Label
}

// Layout is the fully computed geometry of a chart.
type Layout struct {
	Size       Size
	Plot       image.Rectangle
	YMax       float64
	Bars       []Bar
	Thresholds []Threshold
	YTicks     []Tick
	Axes       []Segment
	Labels     []Label
}

// BuildLayout computes one bar per record in storage order. It returns
// models.ErrNoData for an empty history.
func BuildLayout(records []models.Record, size Size) (Layout, error) {
	if len(records) == 0 {
		return Layout{}, models.ErrNoData
	}
	if size.Width <= marginLeft+marginRight || size.Height <= marginTop+marginBottom {
		return Layout{}, fmt.Errorf("chart size %dx%d too small", size.Width, size.Height)
	}

	plot := image.Rect(marginLeft, marginTop, size.Width-marginRight, size.Height-marginBottom)

	maxBMI := bmi.ObeseLowerBound
	for _, rec := range records {
		maxBMI = math.Max(maxBMI, rec.BMI)
	}
	yMax := maxBMI * headroom

	l := Layout{
		Size: size,
		Plot: plot,
		YMax: yMax,
	}

	l.Bars = layoutBars(records, plot, yMax)

	for _, th := range bmi.Thresholds {
		y := valueToY(th, plot, yMax)
		l.Thresholds = append(l.Thresholds, Threshold{
			Value:  th,
			Y:      y,
			Dashes: dashes(plot.Min.X, plot.Max.X, y),
		})
	}

	for v := 0.0; v <= yMax; v += yTickStep {
		y := valueToY(v, plot, yMax)
		l.YTicks = append(l.YTicks, Tick{
			Value: v,
			Y:     y,
			Label: Label{
				Text:   strconv.FormatFloat(v, 'f', -1, 64),
				Anchor: image.Pt(plot.Min.X-labelPadding-2, y+5),
				Align:  AlignRight,
				Scale:  0.4,
			},
		})
	}

	l.Axes = []Segment{
		{From: image.Pt(plot.Min.X, plot.Max.Y), To: image.Pt(plot.Max.X, plot.Max.Y)},
		{From: image.Pt(plot.Min.X, plot.Min.Y), To: image.Pt(plot.Min.X, plot.Max.Y)},
	}

	l.Labels = []Label{
		{Text: Title, Anchor: image.Pt(size.Width/2, marginTop/2+6), Align: AlignCenter, Scale: 0.6, Bold: true},
		{Text: XLabel, Anchor: image.Pt(plot.Min.X+plot.Dx()/2, size.Height-12), Align: AlignCenter, Scale: 0.5},
		{Text: YLabel, Anchor: image.Pt(plot.Min.X, plot.Min.Y-labelPadding-2), Align: AlignRight, Scale: 0.5},
	}

	return l, nil
}

func layoutBars(records []models.Record, plot image.Rectangle, yMax float64) []Bar {
	slot := float64(plot.Dx()) / float64(len(records))
	width := math.Max(1, slot*barFill)

	bars := make([]Bar, 0, len(records))
	for i, rec := range records {
		x0 := float64(plot.Min.X) + slot*float64(i) + (slot-width)/2
		left := int(math.Round(x0))
		right := int(math.Round(x0 + width))
		if right <= left {
			right = left + 1
		}
		top := valueToY(rec.BMI, plot, yMax)
		center := (left + right) / 2

		bars = append(bars, Bar{
			Rect:   image.Rect(left, top, right, plot.Max.Y),
			Color:  CategoryColor(rec.Category),
			Record: rec,
			ValueLabel: Label{
				Text:   fmt.Sprintf("%.1f", rec.BMI),
				Anchor: image.Pt(center, top-labelPadding),
				Align:  AlignCenter,
				Scale:  0.4,
				Bold:   true,
			},
			TickLabel: Label{
				Text:   bmi.FormatNumber(rec.Weight),
				Anchor: image.Pt(center, plot.Max.Y+tickPadding),
				Align:  AlignCenter,
				Scale:  0.4,
			},
		})
	}
	return bars
}

// valueToY maps a BMI value onto a pixel row inside plot, clamped to it.
func valueToY(v float64, plot image.Rectangle, yMax float64) int {
	frac := math.Min(math.Max(v/yMax, 0), 1)
	return plot.Max.Y - int(math.Round(frac*float64(plot.Dy())))
}

func dashes(x0, x1, y int) []Segment {
	var segs []Segment
	for x := x0; x < x1; x += dashLength + dashGap {
		end := min(x+dashLength, x1)
		segs = append(segs, Segment{From: image.Pt(x, y), To: image.Pt(end, y)})
	}
	return segs
}
