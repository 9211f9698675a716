// Package source opens and decodes the image a favicon set is generated from.
//
// Decoding is delegated to github.com/disintegration/imaging, which brings
// the standard library's PNG, JPEG and GIF decoders plus the BMP and TIFF
// decoders from golang.org/x/image. This package additionally registers the
// WebP decoder (golang.org/x/image/webp) and the ICO decoder
// (github.com/sergeymakinen/go-ico), so an existing favicon can be used as
// the source of a new set.
//
// SVG sources are rasterized with github.com/srwiley/oksvg and
// github.com/srwiley/rasterx at SVGRenderSize pixels on the longer side.
//
// The only failures reported are "not found" and "could not be decoded";
// callers tell them apart with errors.Is against model.ErrSourceNotFound and
// model.ErrSourceUndecodable.
package source
