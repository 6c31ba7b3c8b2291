package palette_test

import (
	"fmt"

	"github.com/cwbudde/algo-dither/raster/core"
	"github.com/cwbudde/algo-dither/raster/palette"
)

func ExampleParseHex() {
	p, err := palette.ParseHex("#000000", "ff8800", "#fff")
	if err != nil {
		panic(err)
	}

	fmt.Println(p.Len(), p.Hex())
	// Output: 3 [#000000 #ff8800 #ffffff]
}

func ExampleGray() {
	fmt.Println(palette.Gray(3).Hex())
	// Output: [#000000 #808080 #ffffff]
}

func ExampleMetric_Distance() {
	black, white := core.Gray(0), core.Gray(1)

	fmt.Printf("%.3f\n", palette.MetricWeighted.Distance(black, white))
	// Output: 1.000
}
