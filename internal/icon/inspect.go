package icon

import (
	"fmt"
	"os"

	ico "github.com/sergeymakinen/go-ico"

	"github.com/shinji-kodama/favicon-export/internal/model"
)

// Inspect decodes every frame stored in the .ico file at path and returns
// their dimensions in file order.
func Inspect(path string) ([]model.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	frames, err := ico.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	sizes := make([]model.Size, 0, len(frames))
	for _, m := range frames {
		b := m.Bounds()
		sizes = append(sizes, model.Size{Width: b.Dx(), Height: b.Dy()})
	}
	return sizes, nil
}
