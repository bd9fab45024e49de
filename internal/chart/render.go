package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/smallbiznis/agritatva/internal/config"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

const maxXTicks = 20

var (
	ErrEmptyChart        = errors.New("chart_empty")
	ErrUnsupportedFormat = errors.New("chart_format_unsupported")
)

// Renderer draws a Scatter into an image.
type Renderer struct {
	width  int
	height int
}

func NewRenderer(cfg config.Config) *Renderer {
	return NewRendererWithSize(cfg.ChartWidth, cfg.ChartHeight)
}

func NewRendererWithSize(width, height int) *Renderer {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 400
	}
	return &Renderer{width: width, height: height}
}

// Render writes the chart in the requested format. An empty scatter has
// nothing to draw and returns ErrEmptyChart.
func (r *Renderer) Render(s Scatter, format Format, w io.Writer) error {
	if s.Empty() {
		return ErrEmptyChart
	}

	var provider gochart.RendererProvider
	switch format {
	case FormatPNG:
		provider = gochart.PNG
	case FormatSVG:
		provider = gochart.SVG
	default:
		return ErrUnsupportedFormat
	}

	ch := r.toChart(s)
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", format, err)
	}
	return nil
}

func (r *Renderer) toChart(s Scatter) gochart.Chart {
	series := make([]gochart.Series, 0, len(s.Series))
	yMax := 0.0
	for _, item := range s.Series {
		xs := make([]float64, len(item.Points))
		ys := make([]float64, len(item.Points))
		for i, p := range item.Points {
			xs[i] = p.X
			ys[i] = p.Y
			yMax = math.Max(yMax, p.Y)
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    item.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(item.Color, item.PointRadius),
		})
	}

	n := s.Len()
	xMax := math.Max(1, float64(n-1))

	yMin := 0.0
	if !s.YAxis.BeginAtZero {
		yMin = lowestY(s)
	}
	if yMax <= yMin {
		yMax = yMin + 1
	}

	ch := gochart.Chart{
		Title:  s.Title,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 60, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:  s.XAxis.Label,
			Range: &gochart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: indexTicks(int(xMax), s.XAxis.Step),
		},
		YAxis: gochart.YAxis{
			Name:  s.YAxis.Label,
			Range: &gochart.ContinuousRange{Min: yMin, Max: niceCeil(yMax)},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.LegendThin(&ch)}
	return ch
}

func pointStyle(c RGBA, radius float64) gochart.Style {
	color := drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		StrokeColor: color,
		DotWidth:    radius,
		DotColor:    color.WithAlpha(153),
	}
}

// indexTicks labels integer indexes, thinning them out for long logs.
func indexTicks(maxIndex int, step float64) []gochart.Tick {
	stride := int(math.Max(1, step))
	if maxIndex/stride > maxXTicks {
		stride = int(math.Ceil(float64(maxIndex) / maxXTicks))
	}

	ticks := make([]gochart.Tick, 0, maxIndex/stride+1)
	for i := 0; i <= maxIndex; i += stride {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: strconv.Itoa(i)})
	}
	return ticks
}

func lowestY(s Scatter) float64 {
	lowest := math.Inf(1)
	for _, item := range s.Series {
		for _, p := range item.Points {
			lowest = math.Min(lowest, p.Y)
		}
	}
	if math.IsInf(lowest, 1) {
		return 0
	}
	return lowest
}

// niceCeil rounds v up to 1, 2, 2.5, 5 or 10 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(v))
	base := math.Pow(10, exp)
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if candidate := m * base; candidate >= v {
			return candidate
		}
	}
	return 10 * base
}
