package source

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/shinji-kodama/favicon-export/internal/model"
)

// SVGRenderSize is the length in pixels of the longer side an SVG source is
// rasterized at. It matches the largest frame an ICO file can hold, so every
// requested icon size is a downscale.
const SVGRenderSize = model.MaxIconDimension

// openSVG rasterizes the SVG document at path. Elements the renderer does
// not support are skipped.
func openSVG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", model.ErrSourceUndecodable, path, err)
	}
	defer func() { _ = f.Close() }()

	icon, err := oksvg.ReadIconStream(f, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrSourceUndecodable, path, err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("%w: %s: svg declares no size or viewBox", model.ErrSourceUndecodable, path)
	}

	size := rasterSize(icon.ViewBox.W, icon.ViewBox.H, SVGRenderSize)
	icon.SetTarget(0, 0, float64(size.Width), float64(size.Height))

	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	scanner := rasterx.NewScannerGV(size.Width, size.Height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size.Width, size.Height, scanner), 1.0)

	return img, nil
}

// rasterSize scales a viewBox so its longer side is longest pixels,
// keeping the aspect ratio. The shorter side is at least one pixel.
func rasterSize(w, h float64, longest int) model.Size {
	if w >= h {
		return model.Size{Width: longest, Height: max(1, int(math.Round(float64(longest)*h/w)))}
	}
	return model.Size{Width: max(1, int(math.Round(float64(longest)*w/h))), Height: longest}
}
