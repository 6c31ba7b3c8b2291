// Package buffer provides Grid, the dense row-major color raster used both
// as the mutable working buffer of a dither pass and as its output buffer.
// All coordinate access is two-dimensional and bounds-checked; there is no
// flat-index arithmetic that could alias one row into the next.
package buffer
