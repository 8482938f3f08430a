// Package colorkit is the color science core: conversions between hex, RGB,
// HSL and CMYK, harmony and tint/shade generation, nearest-name lookup and
// WCAG contrast evaluation.
//
// Every function is pure and safe for concurrent use. Malformed hex input
// never panics; it degrades to ok=false, an identity value or a
// single-element result depending on the operation.
package colorkit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL holds hue in degrees [0,360) and saturation/lightness in percent.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

type CMYK struct {
	C int `json:"c"`
	M int `json:"m"`
	Y int `json:"y"`
	K int `json:"k"`
}

var hexPattern = regexp.MustCompile(`^#?([a-fA-F\d]{2})([a-fA-F\d]{2})([a-fA-F\d]{2})$`)

// HexToRGB parses a 6-digit hex color with an optional leading '#'.
// Shorthand (#FFF) and alpha (#RRGGBBAA) forms are rejected.
func HexToRGB(hex string) (RGB, bool) {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}, false
	}
	var out [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return RGB{}, false
		}
		out[i] = int(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, true
}

// RGBToHex packs the channels into canonical #RRGGBB form. Channels outside
// [0,255] are clamped.
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", clampChannel(r), clampChannel(g), clampChannel(b))
}

func (c RGB) Hex() string {
	return RGBToHex(c.R, c.G, c.B)
}

// NormalizeHex returns the canonical uppercase form of a valid hex color.
func NormalizeHex(hex string) (string, bool) {
	rgb, ok := HexToRGB(strings.TrimSpace(hex))
	if !ok {
		return "", false
	}
	return rgb.Hex(), true
}

func RGBToHSL(r, g, b int) HSL {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	var h, s float64
	l := (max + min) / 2

	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		switch max {
		case rf:
			h = (gf - bf) / d
			if gf < bf {
				h += 6
			}
		case gf:
			h = (bf-rf)/d + 2
		default:
			h = (rf-gf)/d + 4
		}
		h /= 6
	}

	return HSL{
		H: round(h*360) % 360,
		S: round(s * 100),
		L: round(l * 100),
	}
}

func HSLToRGB(h, s, l int) RGB {
	return hslToRGBf(float64(h), float64(s), float64(l))
}

// hslToRGBf accepts fractional components so the contrast search can probe
// lightness between whole percents.
func hslToRGBf(h, s, l float64) RGB {
	h /= 360
	s /= 100
	l /= 100

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToChannel(p, q, h+1.0/3)
		g = hueToChannel(p, q, h)
		b = hueToChannel(p, q, h-1.0/3)
	}

	return RGB{
		R: clampChannel(round(r * 255)),
		G: clampChannel(round(g * 255)),
		B: clampChannel(round(b * 255)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func RGBToCMYK(r, g, b int) CMYK {
	c := 1 - float64(r)/255
	m := 1 - float64(g)/255
	y := 1 - float64(b)/255
	k := math.Min(c, math.Min(m, y))

	if k == 1 {
		return CMYK{K: 100}
	}

	return CMYK{
		C: round((c - k) / (1 - k) * 100),
		M: round((m - k) / (1 - k) * 100),
		Y: round((y - k) / (1 - k) * 100),
		K: round(k * 100),
	}
}

func CMYKToRGB(c, m, y, k int) RGB {
	cf := float64(c) / 100
	mf := float64(m) / 100
	yf := float64(y) / 100
	kf := float64(k) / 100

	return RGB{
		R: clampChannel(round(255 * (1 - cf) * (1 - kf))),
		G: clampChannel(round(255 * (1 - mf) * (1 - kf))),
		B: clampChannel(round(255 * (1 - yf) * (1 - kf))),
	}
}

func HexToHSL(hex string) (HSL, bool) {
	rgb, ok := HexToRGB(hex)
	if !ok {
		return HSL{}, false
	}
	return RGBToHSL(rgb.R, rgb.G, rgb.B), true
}

func HSLToHex(h, s, l int) string {
	return HSLToRGB(h, s, l).Hex()
}

func HexToCMYK(hex string) (CMYK, bool) {
	rgb, ok := HexToRGB(hex)
	if !ok {
		return CMYK{}, false
	}
	return RGBToCMYK(rgb.R, rgb.G, rgb.B), true
}

func FormatRGB(c RGB) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func FormatHSL(c HSL) string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

func FormatCMYK(c CMYK) string {
	return fmt.Sprintf("cmyk(%d%%, %d%%, %d%%, %d%%)", c.C, c.M, c.Y, c.K)
}

// round matches half-up rounding for the non-negative values used here.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
