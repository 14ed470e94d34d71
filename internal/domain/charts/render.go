package charts

import (
	"bytes"

	chart "github.com/wcharczuk/go-chart/v2"
)

// PNG export dimensions.
const (
	exportWidth     = 1280
	exportHeight    = 720
	exportBarWidth  = 18
	exportDotRadius = 3
)

// RenderProgressionPNG renders a progression spec to a PNG image.
// Returns ErrEmptyChart when the spec has no traces to draw.
func RenderProgressionPNG(spec LineChartSpec) ([]byte, error) {
	if len(spec.Traces) == 0 {
		return nil, ErrEmptyChart
	}

	series := make([]chart.Series, 0, len(spec.Traces))
	for _, t := range spec.Traces {
		xs := make([]float64, len(t.X))
		for i, x := range t.X {
			xs[i] = float64(x)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    t.Code,
			XValues: xs,
			YValues: t.Y,
			Style: chart.Style{
				StrokeWidth: 2,
				DotWidth:    exportDotRadius,
			},
		})
	}

	ch := chart.Chart{
		Width:      exportWidth,
		Height:     exportHeight,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: spec.XTitle},
		YAxis:      chart.YAxis{Name: spec.YTitle},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderStandingsPNG renders a standings bar spec to a PNG image. Bars are
// drawn vertically in standings order; annotated zero-point drivers still
// get a labeled slot. Returns ErrEmptyChart when the spec has no bars.
func RenderStandingsPNG(spec BarChartSpec) ([]byte, error) {
	if len(spec.Bars) == 0 {
		return nil, ErrEmptyChart
	}

	bars := make([]chart.Value, 0, len(spec.Bars))
	for _, b := range spec.Bars {
		bars = append(bars, chart.Value{Label: b.Code, Value: b.Points})
	}

	ch := chart.BarChart{
		Width:      exportWidth,
		Height:     exportHeight,
		BarWidth:   exportBarWidth,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{},
		YAxis:      chart.YAxis{Name: spec.XTitle},
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
