// Package icon renders a decoded image into a multi-resolution ICO file.
//
// The sizing rules follow the behaviour favicon sets have always been
// produced with:
//
//   - requested sizes are de-duplicated and sorted ascending;
//   - a size wider or taller than the source, or beyond the 256 pixel ICO
//     limit, is skipped rather than upscaled;
//   - each frame is an aspect-preserving downscale that fits inside the
//     requested box, resampled with the Lanczos filter.
//
// Resampling is done by github.com/disintegration/imaging and the ICO
// container is written by github.com/sergeymakinen/go-ico. This package
// never hand-encodes ICO directory entries.
package icon
