package style

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color interprets a property value as a color. Supported are the CSS named
// colors, hex notations (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb(…) and rgba(…).
// "transparent" yields a fully transparent color.
// If the value cannot be interpreted, Color returns nil and false.
func (v Value) Color() (color.Color, bool) {
	s := strings.ToLower(strings.TrimSpace(string(v)))
	switch {
	case s == "":
		return nil, false
	case s == "transparent":
		return color.NRGBA{}, true
	case strings.HasPrefix(s, "#"):
		return hexColor(s[1:])
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return funcColor(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	tracer().Debugf("style: cannot interpret %q as a color", s)
	return nil, false
}

func hexColor(h string) (color.Color, bool) {
	var digits [8]uint8
	switch len(h) {
	case 3, 4:
		for i := 0; i < len(h); i++ {
			n, err := strconv.ParseUint(h[i:i+1], 16, 8)
			if err != nil {
				return nil, false
			}
			digits[i] = uint8(n * 17)
		}
		if len(h) == 3 {
			digits[3] = 0xff
		}
	case 6, 8:
		for i := 0; i < len(h); i += 2 {
			n, err := strconv.ParseUint(h[i:i+2], 16, 8)
			if err != nil {
				return nil, false
			}
			digits[i/2] = uint8(n)
		}
		if len(h) == 6 {
			digits[3] = 0xff
		}
	default:
		return nil, false
	}
	return color.NRGBA{R: digits[0], G: digits[1], B: digits[2], A: digits[3]}, true
}

func funcColor(s string) (color.Color, bool) {
	open, close := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || close < open {
		return nil, false
	}
	args := strings.FieldsFunc(s[open+1:close], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return nil, false
	}
	var rgba [4]uint8
	rgba[3] = 0xff
	for i, a := range args {
		if i == 3 {
			f, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
			if err != nil {
				return nil, false
			}
			if strings.HasSuffix(a, "%") {
				f /= 100
			}
			rgba[3] = clamp8(f * 255)
			continue
		}
		if strings.HasSuffix(a, "%") {
			f, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
			if err != nil {
				return nil, false
			}
			rgba[i] = clamp8(f * 255 / 100)
			continue
		}
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, false
		}
		rgba[i] = clamp8(f)
	}
	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, true
}

func clamp8(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f + 0.5)
}

// ColorString returns a short, human readable name for a color; used for
// debugging output.
func ColorString(c color.Color) string {
	if c == nil {
		return "powderblue" // X11 color and CSS color
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "transparent"
	}
	if r == a && g == a && b == a {
		return "white"
	}
	if r == 0 && g == 0 && b == 0 {
		return "black"
	}
	if r >= 0x9000 && r >= g && r >= b {
		return "red"
	} else if g >= 0x9000 && g >= b {
		return "green"
	} else if b >= 0x9000 {
		return "blue"
	}
	return "gray"
}
