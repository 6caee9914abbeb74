package chart_test

import (
	"bytes"
	"testing"

	"github.com/Santosestevialima/telemarketing/internal/chart"
	"github.com/Santosestevialima/telemarketing/internal/stats"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleDist() stats.Distribution {
	return stats.Distribution{
		Column: "y",
		Total:  5,
		Buckets: []stats.Bucket{
			{Value: "no", Count: 3, Percent: 60},
			{Value: "yes", Count: 2, Percent: 40},
		},
	}
}

func TestParseKind(t *testing.T) {
	for _, ok := range []string{"bar", "pie"} {
		if _, err := chart.ParseKind(ok); err != nil {
			t.Fatalf("ParseKind(%q): %v", ok, err)
		}
	}
	if _, err := chart.ParseKind("scatter"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRenderBarsPNG(t *testing.T) {
	img, err := chart.Render(chart.KindBar, "Raw data", sampleDist(), chart.DefaultTheme())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("bar chart is not a PNG")
	}
}

func TestRenderPiePNG(t *testing.T) {
	img, err := chart.Render(chart.KindPie, "Raw data", sampleDist(), chart.DefaultTheme())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("pie chart is not a PNG")
	}
}

func TestRenderEmptyDistribution(t *testing.T) {
	img, err := chart.Render(chart.KindBar, "Filtered data", stats.Distribution{Column: "y"}, chart.DefaultTheme())
	if err != nil {
		t.Fatalf("render placeholder: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("placeholder is not a PNG")
	}
}

func TestFromHexOverrides(t *testing.T) {
	th := chart.FromHex(640, 480, []string{"112233"})
	if th.Width != 640 || th.Height != 480 {
		t.Fatalf("size = %dx%d", th.Width, th.Height)
	}
	if len(th.Palette) != 1 {
		t.Fatalf("palette len = %d", len(th.Palette))
	}
	def := chart.FromHex(0, 0, nil)
	if def.Width != chart.DefaultTheme().Width || len(def.Palette) == 0 {
		t.Fatal("zero values should keep defaults")
	}
}
