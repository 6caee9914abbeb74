// Package chart renders distribution charts as PNG images for the dashboard.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Santosestevialima/telemarketing/internal/stats"
)

// Kind selects the rendered chart style.
type Kind string

const (
	KindBar Kind = "bar"
	KindPie Kind = "pie"
)

// ParseKind validates a chart kind submitted via form or spec file.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBar, KindPie:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown chart kind %q", s)
	}
}

// Theme fixes the visual styling once at startup; it replaces per-render
// styling state.
type Theme struct {
	Width   int
	Height  int
	Palette []drawing.Color
}

// DefaultTheme mirrors the dashboard's default look.
func DefaultTheme() Theme {
	return Theme{
		Width:  420,
		Height: 320,
		Palette: []drawing.Color{
			drawing.ColorFromHex("4c72b0"),
			drawing.ColorFromHex("dd8452"),
			drawing.ColorFromHex("55a868"),
			drawing.ColorFromHex("c44e52"),
		},
	}
}

// FromHex builds a theme from hex color strings like "4c72b0".
func FromHex(width, height int, hexes []string) Theme {
	th := DefaultTheme()
	if width > 0 {
		th.Width = width
	}
	if height > 0 {
		th.Height = height
	}
	if len(hexes) > 0 {
		th.Palette = make([]drawing.Color, len(hexes))
		for i, h := range hexes {
			th.Palette[i] = drawing.ColorFromHex(h)
		}
	}
	return th
}

// Render draws a distribution with the requested kind. Empty distributions
// render a blank placeholder so the page still shows an image frame.
func Render(kind Kind, title string, d stats.Distribution, th Theme) ([]byte, error) {
	if d.Empty() {
		return blank(th.Width, th.Height)
	}
	switch kind {
	case KindPie:
		return renderPie(title, d, th)
	default:
		return renderBars(title, d, th)
	}
}

func renderBars(title string, d stats.Distribution, th Theme) ([]byte, error) {
	bars := make([]chart.Value, 0, len(d.Buckets))
	for i, b := range d.Buckets {
		c := th.Palette[i%len(th.Palette)]
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", b.Value, b.Percent),
			Value: b.Percent,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}
	ch := chart.BarChart{
		Title:      title,
		Width:      th.Width,
		Height:     th.Height,
		BarWidth:   60,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPie(title string, d stats.Distribution, th Theme) ([]byte, error) {
	values := make([]chart.Value, 0, len(d.Buckets))
	for i, b := range d.Buckets {
		c := th.Palette[i%len(th.Palette)]
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.2f%%", b.Value, b.Percent),
			Value: b.Percent,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}
	ch := chart.PieChart{
		Title:  title,
		Width:  th.Width,
		Height: th.Height,
		Values: values,
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// blank produces a white placeholder image for the no-data case.
func blank(w, h int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
