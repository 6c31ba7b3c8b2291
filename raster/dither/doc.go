// Package dither implements single-pass error-diffusion dithering of a color
// raster onto a fixed palette.
//
// A run converts the source grid through a [colormodel.Model], then visits
// pixels in strict row-major order. Each pixel's working color (its converted
// value plus all error diffused into it so far) is replaced by the nearest
// palette entry, and the residual is pushed forward to unvisited neighbors
// according to a [kernel.Kernel]. Taps that fall outside the raster are
// dropped.
//
// Configuration is an immutable [Config] built from functional options and
// validated before any pixel is touched. An [Engine] performs exactly one
// run; the output never contains a color that is not a palette entry.
package dither
