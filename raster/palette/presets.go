package palette

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/algo-dither/raster/core"
)

// Gray returns a palette of levels evenly spaced gray steps from black to
// white. levels below 2 yields a single black entry.
func Gray(levels int) Palette {
	if levels < 2 {
		return MustNew(core.Gray(0))
	}

	colors := make([]core.Color, levels)
	for i := range colors {
		colors[i] = core.Gray(float64(i) / float64(levels-1))
	}
	return MustNew(colors...)
}

// Named palette hex tables. Order is significant: nearest-color ties resolve
// to the earlier entry.
var namedHex = map[string][]string{
	"cga": {"#000000", "#55ffff", "#ff55ff", "#ffffff"},
	"ega": {
		"#000000", "#0000aa", "#00aa00", "#00aaaa",
		"#aa0000", "#aa00aa", "#aa5500", "#aaaaaa",
		"#555555", "#5555ff", "#55ff55", "#55ffff",
		"#ff5555", "#ff55ff", "#ffff55", "#ffffff",
	},
	"gameboy": {"#0f380f", "#306230", "#8bac0f", "#9bbc0f"},
	// Measured states of a 7-color e-paper panel.
	"eink7": {
		"#312838", "#aeada8", "#393f68", "#306544",
		"#923d3e", "#ada049", "#a05341",
	},
	"standard7": {
		"#000000", "#ffffff", "#0000ff", "#00ff00",
		"#ff0000", "#ffff00", "#ffa500",
	},
}

var named = func() map[string]Palette {
	m := map[string]Palette{
		"bw":     Gray(2),
		"gray4":  Gray(4),
		"gray8":  Gray(8),
		"gray16": Gray(16),
	}
	for name, codes := range namedHex {
		p, err := ParseHex(codes...)
		if err != nil {
			panic(err)
		}
		m[name] = p
	}
	return m
}()

// DefaultName is the palette used when none is configured.
const DefaultName = "bw"

// Named returns the palette registered under name (case-insensitive).
func Named(name string) (Palette, error) {
	p, ok := named[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Palette{}, fmt.Errorf("palette: unknown palette %q", name)
	}
	return p, nil
}

// Names returns all registered palette names, sorted.
func Names() []string {
	keys := make([]string, 0, len(named))
	for k := range named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
