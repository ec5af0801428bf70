package display

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/cwbudde/algo-ecg/internal/player"
)

const (
	imageWidth  = 1000
	imageHeight = 700
	panelMargin = 30
	gridSeconds = 0.2 // large ECG paper square
)

var (
	rawColor      = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	filteredColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	gridColor     = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	axisColor     = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// ImageName returns the file name for a still of record taken at now.
func ImageName(record string, now time.Time) string {
	return fmt.Sprintf("ecg_%s_%s.png", record, now.Format("150405"))
}

// PNGSaver writes paused frames as PNG images into Dir. It implements
// player.Saver.
type PNGSaver struct {
	Dir    string
	Limits Limits
	Now    func() time.Time
}

// Save renders f to Dir/ImageName(f.Record, Now()) and returns the path.
func (s PNGSaver) Save(f player.Frame) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	lim := s.Limits
	if lim.Max <= lim.Min {
		lim = DefaultLimits
	}
	path := filepath.Join(s.Dir, ImageName(f.Record, now()))
	if err := SavePNG(f, path, lim); err != nil {
		return "", err
	}
	return path, nil
}

// SavePNG draws the raw window above the filtered window and writes the
// image to path.
func SavePNG(f player.Frame, path string, lim Limits) error {
	img := Plot(f, lim)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode image: %w", err)
	}
	return out.Close()
}

// Plot renders f as a two-panel image.
func Plot(f player.Frame, lim Limits) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, imageWidth, imageHeight))
	fill(img, img.Bounds(), color.White)

	panelH := (imageHeight - 3*panelMargin) / 2
	top := image.Rect(panelMargin, panelMargin, imageWidth-panelMargin, panelMargin+panelH)
	bottom := image.Rect(panelMargin, 2*panelMargin+panelH, imageWidth-panelMargin, 2*panelMargin+2*panelH)

	drawPanel(img, top, f.Raw, f.SampleRate, lim, rawColor)
	drawPanel(img, bottom, f.Filtered, f.SampleRate, lim, filteredColor)
	return img
}

func drawPanel(img *image.RGBA, r image.Rectangle, samples []float64, fs float64, lim Limits, c color.Color) {
	// Vertical grid every gridSeconds.
	if fs > 0 && len(samples) > 1 {
		step := gridSeconds * fs * float64(r.Dx()) / float64(len(samples)-1)
		if step >= 4 {
			for x := float64(r.Min.X); x < float64(r.Max.X); x += step {
				line(img, int(x), r.Min.Y, int(x), r.Max.Y-1, gridColor)
			}
		}
	}
	if lim.Min < 0 && lim.Max > 0 {
		y := r.Min.Y + lim.row(0, r.Dy())
		line(img, r.Min.X, y, r.Max.X-1, y, axisColor)
	}
	frame(img, r, axisColor)

	if len(samples) == 0 {
		return
	}
	px := func(i int) int {
		if len(samples) == 1 {
			return r.Min.X
		}
		return r.Min.X + i*(r.Dx()-1)/(len(samples)-1)
	}
	py := func(v float64) int { return r.Min.Y + lim.row(v, r.Dy()) }

	x0, y0 := px(0), py(samples[0])
	for i := 1; i < len(samples); i++ {
		x1, y1 := px(i), py(samples[i])
		line(img, x0, y0, x1, y1, c)
		x0, y0 = x1, y1
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func frame(img *image.RGBA, r image.Rectangle, c color.Color) {
	line(img, r.Min.X, r.Min.Y, r.Max.X-1, r.Min.Y, c)
	line(img, r.Min.X, r.Max.Y-1, r.Max.X-1, r.Max.Y-1, c)
	line(img, r.Min.X, r.Min.Y, r.Min.X, r.Max.Y-1, c)
	line(img, r.Max.X-1, r.Min.Y, r.Max.X-1, r.Max.Y-1, c)
}

// line draws with Bresenham's algorithm.
func line(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
