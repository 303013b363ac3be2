package operations

import (
	"image/color"
	"strings"
)

var namedColors = map[string]color.NRGBA{
	"white":       {255, 255, 255, 255},
	"black":       {0, 0, 0, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a CSS-style color string: #rgb, #rrggbb, #rrggbbaa or
// a small set of named colors. Invalid input falls back to white, the same
// leniency the API documents for the background option.
func ParseColor(s string) color.NRGBA {
	s = strings.ToLower(strings.TrimSpace(s))

	if c, ok := namedColors[s]; ok {
		return c
	}

	if !strings.HasPrefix(s, "#") {
		return namedColors["white"]
	}

	hex := s[1:]
	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if okR && okG && okB {
			return color.NRGBA{r * 17, g * 17, b * 17, 255}
		}
	case 6, 8:
		var parts [4]uint8
		parts[3] = 255
		for i := 0; i*2 < len(hex); i++ {
			hi, okH := hexNibble(hex[i*2])
			lo, okL := hexNibble(hex[i*2+1])
			if !okH || !okL {
				return namedColors["white"]
			}
			parts[i] = hi<<4 | lo
		}
		return color.NRGBA{parts[0], parts[1], parts[2], parts[3]}
	}

	return namedColors["white"]
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}
