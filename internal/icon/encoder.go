package icon

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"os"
	"sort"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"

	"github.com/shinji-kodama/favicon-export/internal/model"
)

// Encoder turns a source image into ICO bytes.
//
// It is stateless apart from the resample filter, and is a struct so the
// exporter can hold one and tests can pick a faster filter.
type Encoder struct {
	// Filter is the resampling kernel used for every frame.
	Filter imaging.ResampleFilter
}

// NewEncoder creates an Encoder using the Lanczos filter.
func NewEncoder() *Encoder {
	return &Encoder{Filter: imaging.Lanczos}
}

// Plan returns the sizes that will actually be rendered for a source of the
// given bounds: requested sizes de-duplicated, sorted by width then height,
// and filtered to those that fit both the source and the ICO limit.
//
// Returns model.ErrInvalidSize if any requested size has a non-positive
// dimension, and model.ErrNoUsableSizes if nothing survives the filter.
func Plan(bounds image.Rectangle, requested []model.Size) ([]model.Size, error) {
	seen := make(map[model.Size]bool, len(requested))
	planned := make([]model.Size, 0, len(requested))

	for _, s := range requested {
		if !s.IsValid() {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidSize, s)
		}
		if seen[s] {
			continue
		}
		seen[s] = true

		if s.Width > bounds.Dx() || s.Height > bounds.Dy() {
			continue
		}
		if s.Width > model.MaxIconDimension || s.Height > model.MaxIconDimension {
			continue
		}
		planned = append(planned, s)
	}

	if len(planned) == 0 {
		return nil, fmt.Errorf("%w: requested %s, source is %dx%d",
			model.ErrNoUsableSizes, model.FormatSizes(requested), bounds.Dx(), bounds.Dy())
	}

	sort.Slice(planned, func(i, j int) bool {
		if planned[i].Width != planned[j].Width {
			return planned[i].Width < planned[j].Width
		}
		return planned[i].Height < planned[j].Height
	})
	return planned, nil
}

// FitSize returns the largest size with the source's aspect ratio that fits
// inside box. Neither dimension is ever rounded down to zero.
func FitSize(bounds image.Rectangle, box model.Size) model.Size {
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= box.Width && srcH <= box.Height {
		return model.Size{Width: srcW, Height: srcH}
	}

	aspect := float64(srcW) / float64(srcH)
	if float64(box.Width)/float64(box.Height) >= aspect {
		// Height is the limiting side.
		w := int(math.Round(float64(box.Height) * aspect))
		return model.Size{Width: clamp(w, 1, box.Width), Height: box.Height}
	}
	h := int(math.Round(float64(box.Width) / aspect))
	return model.Size{Width: box.Width, Height: clamp(h, 1, box.Height)}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Frames renders one image per planned size. The returned sizes are the
// real frame dimensions, which differ from the planned box only for
// non-square sources.
func (e *Encoder) Frames(src image.Image, sizes []model.Size) ([]image.Image, []model.Size, error) {
	planned, err := Plan(src.Bounds(), sizes)
	if err != nil {
		return nil, nil, err
	}

	frames := make([]image.Image, 0, len(planned))
	dims := make([]model.Size, 0, len(planned))
	for _, box := range planned {
		fit := FitSize(src.Bounds(), box)

		var frame *image.NRGBA
		if fit.Width == src.Bounds().Dx() && fit.Height == src.Bounds().Dy() {
			frame = imaging.Clone(src)
		} else {
			frame = imaging.Resize(src, fit.Width, fit.Height, e.Filter)
		}

		frames = append(frames, frame)
		dims = append(dims, fit)
	}
	return frames, dims, nil
}

// Encode renders src at the requested sizes and returns the ICO bytes
// together with the frame sizes written.
func (e *Encoder) Encode(src image.Image, sizes []model.Size) ([]byte, []model.Size, error) {
	frames, dims, err := e.Frames(src, sizes)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, frames); err != nil {
		return nil, nil, fmt.Errorf("failed to encode ICO: %w", err)
	}
	return buf.Bytes(), dims, nil
}

// WriteFile encodes src and writes the icon to path, replacing any existing
// file. The icon is fully encoded in memory first, so an encoding failure
// never leaves a partial file behind.
func (e *Encoder) WriteFile(path string, src image.Image, sizes []model.Size) ([]model.Size, error) {
	data, dims, err := e.Encode(src, sizes)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return dims, nil
}
