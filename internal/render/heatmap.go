package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/math/f64"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/math-analysis-mcp/internal/jsonvalue"
	"github.com/ironsheep/math-analysis-mcp/internal/mathops"
)

const (
	// DefaultCellSize is the edge length in pixels of one matrix cell.
	DefaultCellSize = 16
	// MaxCellSize bounds the per-cell upscale factor.
	MaxCellSize = 64
	// MaxPixels bounds the rendered image area.
	MaxPixels = 4096 * 4096

	DefaultLowColor  = "#313695"
	DefaultHighColor = "#A50026"
)

// ErrInvalidOptions is wrapped by every option validation failure.
var ErrInvalidOptions = errors.New("invalid heatmap options")

// missingColor paints cells holding NaN or ±Inf.
var missingColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// gridColor separates cells when grid lines are requested.
var gridColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// HeatmapOptions controls how a matrix is rendered.
type HeatmapOptions struct {
	CellSize  int
	LowColor  string
	HighColor string
	ShowGrid  bool
}

// DefaultHeatmapOptions returns 16px cells on a blue-to-red ramp without
// grid lines.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		CellSize:  DefaultCellSize,
		LowColor:  DefaultLowColor,
		HighColor: DefaultHighColor,
	}
}

// HeatmapResult contains the rendered PNG and the value range it spans.
type HeatmapResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	LowColor    string  `json:"low_color"`
	HighColor   string  `json:"high_color"`
	MimeType    string  `json:"mime_type"`
	ImageBase64 string  `json:"image_base64"`
}

// Heatmap renders m as a PNG with one square block per cell.
//
// Each cell's color is a Lab-space blend between the low and high colors at
// t = (v-min)/(max-min); a flat matrix renders every cell at t = 0.5.
// Non-finite cells are drawn gray and excluded from the range. The image is
// built at one pixel per cell and upscaled with nearest-neighbour sampling
// so block edges stay sharp.
//
// # Errors
//
//   - the matrix is empty or ragged
//   - CellSize is outside 1..MaxCellSize, or the image would exceed MaxPixels
//   - a color is not a valid "#RRGGBB" hex string
func Heatmap(m mathops.Matrix, opts HeatmapOptions) (*HeatmapResult, error) {
	rows, cols := m.Rows(), m.Cols()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("cannot render an empty matrix: %w", mathops.ErrEmptyInput)
	}
	for i, row := range m {
		if len(row) != cols {
			return nil, fmt.Errorf("matrix row %d has %d columns, expected %d: %w",
				i, len(row), cols, mathops.ErrDimensionMismatch)
		}
	}

	if opts.CellSize < 1 || opts.CellSize > MaxCellSize {
		return nil, fmt.Errorf("cell size %d outside 1..%d: %w", opts.CellSize, MaxCellSize, ErrInvalidOptions)
	}
	width, height := cols*opts.CellSize, rows*opts.CellSize
	if width*height > MaxPixels {
		return nil, fmt.Errorf("heatmap of %dx%d pixels exceeds limit of %d: %w",
			width, height, MaxPixels, ErrInvalidOptions)
	}

	low, err := parseHexColor(opts.LowColor)
	if err != nil {
		return nil, err
	}
	high, err := parseHexColor(opts.HighColor)
	if err != nil {
		return nil, err
	}

	lo, hi := valueRange(m)
	small := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for y, row := range m {
		for x, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				small.SetNRGBA(x, y, missingColor)
				continue
			}
			small.Set(x, y, low.BlendLab(high, normalize(v, lo, hi)).Clamped())
		}
	}

	img := imaging.Resize(small, width, height, imaging.NearestNeighbor)
	if opts.ShowGrid && opts.CellSize > 2 {
		drawCellGrid(img, opts.CellSize)
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode heatmap: %w", err)
	}

	return &HeatmapResult{
		Width:       width,
		Height:      height,
		Rows:        rows,
		Cols:        cols,
		Min:         lo,
		Max:         hi,
		LowColor:    low.Hex(),
		HighColor:   high.Hex(),
		MimeType:    "image/png",
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// valueRange returns the smallest and largest finite values, or (0, 0)
// when there are none.
func valueRange(m mathops.Matrix) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range m {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

func normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	return f64.Clamp((v-lo)/(hi-lo), 0, 1)
}

// drawCellGrid draws one-pixel lines on the boundaries between cells.
func drawCellGrid(img *image.NRGBA, cellSize int) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	for x := cellSize; x < width; x += cellSize {
		for y := 0; y < height; y++ {
			img.SetNRGBA(x, y, gridColor)
		}
	}
	for y := cellSize; y < height; y += cellSize {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, gridColor)
		}
	}
}

func parseHexColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q, expected #RRGGBB or #RGB: %w", s, ErrInvalidOptions)
	}
	return c, nil
}

// ToValue encodes the result as a tool result object.
func (r *HeatmapResult) ToValue() jsonvalue.Value {
	out := jsonvalue.Object()
	out.Set("width", jsonvalue.Int(int64(r.Width)))
	out.Set("height", jsonvalue.Int(int64(r.Height)))
	out.Set("rows", jsonvalue.Int(int64(r.Rows)))
	out.Set("cols", jsonvalue.Int(int64(r.Cols)))
	out.Set("min", jsonvalue.Float(r.Min))
	out.Set("max", jsonvalue.Float(r.Max))
	out.Set("low_color", jsonvalue.String(r.LowColor))
	out.Set("high_color", jsonvalue.String(r.HighColor))
	out.Set("mime_type", jsonvalue.String(r.MimeType))
	out.Set("image_base64", jsonvalue.String(r.ImageBase64))
	return out
}
