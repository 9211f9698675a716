package source

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "github.com/sergeymakinen/go-ico" // registers the "ico" format
	_ "golang.org/x/image/webp"         // registers the "webp" format

	"github.com/shinji-kodama/favicon-export/internal/model"
)

// Open decodes the image at path. When autoOrient is true the EXIF
// orientation tag (JPEG only) is applied, so a rotated phone photo produces
// an upright icon.
//
// The returned error wraps model.ErrSourceNotFound when the file does not
// exist and model.ErrSourceUndecodable for every other failure, including
// permission errors, directories and unknown formats.
//
// Files with an .svg extension are rasterized instead of decoded; see
// SVGRenderSize. autoOrient does not apply to them.
func Open(path string, autoOrient bool) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return openSVG(path)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(autoOrient))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", model.ErrSourceUndecodable, path, err)
	}

	// A decoder may succeed on a header that declares zero pixels. Nothing
	// can be resized out of such an image, so it counts as undecodable.
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %s: image has no pixels", model.ErrSourceUndecodable, path)
	}

	return img, nil
}
