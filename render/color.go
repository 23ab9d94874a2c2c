package render

import (
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

var named = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"gray":   "#808080",
	"grey":   "#808080",
	"silver": "#c0c0c0",
	"orange": "#ffa500",
}

// ParseColor reads "#rgb", "#rrggbb", "rgb(r, g, b)", a few CSS names,
// "none" and "transparent".
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "transparent":
		return color.Transparent, nil
	}
	if hex, ok := named[s]; ok {
		s = hex
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return nil, errors.Errorf("bad color %q", s)
		}
		var c [3]uint8
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return nil, errors.Errorf("bad color %q", s)
			}
			c[i] = uint8(v)
		}
		return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, errors.Wrapf(err, "bad color %q", s)
	}
	return c.Clamped(), nil
}

// Hex normalizes a color string to "#rrggbb", or "none".
func Hex(s string) string {
	c, err := ParseColor(s)
	if err != nil {
		return s
	}
	if _, _, _, a := c.RGBA(); a == 0 {
		return "none"
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
