package render

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// namedColors covers the matplotlib color names the original tools used as
// defaults plus the common single-word names callers tend to send.
var namedColors = map[string]drawing.Color{
	"steelblue": {R: 0x46, G: 0x82, B: 0xb4, A: 0xff},
	"skyblue":   {R: 0x87, G: 0xce, B: 0xeb, A: 0xff},
	"blue":      {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"red":       {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"green":     {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"orange":    {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	"purple":    {R: 0x80, G: 0x00, B: 0x80, A: 0xff},
	"gray":      {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"grey":      {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"black":     {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"gold":      {R: 0xff, G: 0xd7, B: 0x00, A: 0xff},
	"teal":      {R: 0x00, G: 0x80, B: 0x80, A: 0xff},
	"coral":     {R: 0xff, G: 0x7f, B: 0x50, A: 0xff},
}

// fillColor resolves a color name or #rrggbb hex value and applies the
// optional alpha (0 keeps the color opaque). Unknown names fall back to the
// bar default, steelblue.
func fillColor(name string, alpha float64) drawing.Color {
	c, ok := parseColor(name)
	if !ok {
		c = namedColors["steelblue"]
	}
	if alpha > 0 && alpha < 1 {
		c.A = uint8(alpha * 255)
	}
	return c
}

func parseColor(name string) (drawing.Color, bool) {
	s := strings.ToLower(strings.TrimSpace(name))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		return drawing.ColorFromHex(s[1:]), true
	}
	return drawing.Color{}, false
}
