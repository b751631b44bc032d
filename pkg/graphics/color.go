// Package graphics recognises and blends the color strings that animated
// properties may carry: hex literals, rgb()/rgba() functions and the CSS
// named colors.
package graphics

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// maxByte is the maximum value of a byte, used for color normalization.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBA constructs a Color from red, green, blue bytes and alpha (0-1).
func RGBA(r, g, b uint8, a float64) Color {
	return RGBA8(r, g, b, alpha01ToByte(a))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// RGBAF returns normalized color components (0.0 to 1.0).
func (c Color) RGBAF() (r, g, b, a float64) {
	return float64(uint8(c>>16)) / maxByte,
		float64(uint8(c>>8)) / maxByte,
		float64(uint8(c)) / maxByte,
		float64(uint8(c>>24)) / maxByte
}

// Alpha returns the alpha component as a value from 0.0 (transparent) to 1.0 (opaque).
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / maxByte
}

// Lerp blends c towards to in RGB space. Progress outside [0, 1]
// extrapolates and is clamped to the representable gamut.
func (c Color) Lerp(to Color, t float64) Color {
	r1, g1, b1, a1 := c.RGBAF()
	r2, g2, b2, a2 := to.RGBAF()
	mixed := colorful.Color{R: r1, G: g1, B: b1}.
		BlendRgb(colorful.Color{R: r2, G: g2, B: b2}, t).
		Clamped()
	r, g, b := mixed.RGB255()
	return RGBA(r, g, b, a1+(a2-a1)*t)
}

// CSS formats the color as an rgba() function string.
func (c Color) CSS() string {
	alpha := strconv.FormatFloat(math.Round(c.Alpha()*1000)/1000, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", uint8(c>>16), uint8(c>>8), uint8(c), alpha)
}

// alpha01ToByte converts a 0-1 alpha to 0-255 with proper rounding.
func alpha01ToByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var fold = cases.Fold()

// IsColorName reports whether s is a CSS named color (case-insensitive),
// including "transparent".
func IsColorName(s string) bool {
	name := fold.String(strings.TrimSpace(s))
	if name == "transparent" {
		return true
	}
	_, ok := colornames.Map[name]
	return ok
}

// ParseColor parses a hex literal (#rgb, #rgba, #rrggbb, #rrggbbaa), an
// rgb()/rgba() function or a named color.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	}
	name := fold.String(s)
	if name == "transparent" {
		return 0, true
	}
	named, ok := colornames.Map[name]
	if !ok {
		return 0, false
	}
	c, ok := colorful.MakeColor(named)
	if !ok {
		return 0, false
	}
	r, g, b := c.RGB255()
	return RGBA8(r, g, b, named.A), true
}

func parseHex(s string) (Color, bool) {
	switch len(s) {
	case 4, 7:
		c, err := colorful.Hex(s)
		if err != nil {
			return 0, false
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), true
	case 5:
		v, err := strconv.ParseUint(s[1:], 16, 16)
		if err != nil {
			return 0, false
		}
		expand := func(n uint64) uint8 { return uint8(n<<4 | n) }
		return RGBA8(expand(v>>12&0xF), expand(v>>8&0xF), expand(v>>4&0xF), expand(v&0xF)), true
	case 9:
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return 0, false
		}
		return RGBA8(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), true
	}
	return 0, false
}

var funcPattern = regexp.MustCompile(`^rgba?\(\s*([^,\s]+)\s*,\s*([^,\s]+)\s*,\s*([^,\s)]+)\s*(?:,\s*([^,\s)]+)\s*)?\)$`)

func parseFunc(s string) (Color, bool) {
	m := funcPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, false
		}
		rgb[i] = uint8(math.Round(math.Max(0, math.Min(maxByte, v))))
	}
	alpha := 1.0
	if m[4] != "" {
		v, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return 0, false
		}
		alpha = v
	}
	return RGBA(rgb[0], rgb[1], rgb[2], alpha), true
}

var colorToken = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b|rgba?\([^)]*\)`)

// NormalizeColors rewrites every hex or rgb()/rgba() token inside s as an
// rgba() function so that two strings of the same shape expose the same
// sequence of numbers.
func NormalizeColors(s string) string {
	return colorToken.ReplaceAllStringFunc(s, func(tok string) string {
		c, ok := ParseColor(tok)
		if !ok {
			return tok
		}
		return c.CSS()
	})
}
