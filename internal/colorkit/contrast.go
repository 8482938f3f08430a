package colorkit

import (
	"fmt"
	"math"
)

// WCAG 2 thresholds. AAA for large text shares the AA body-text ratio.
const (
	RatioAA       = 4.5
	RatioAAA      = 7.0
	RatioAALarge  = 3.0
	RatioAAALarge = 4.5

	// FixIterations bounds the lightness search in FixContrast. The search
	// does not run to convergence; when ten halvings are not enough the
	// caller gets pure black or white instead.
	FixIterations = 10
)

type ContrastResult struct {
	Ratio    float64 `json:"ratio"`
	AA       bool    `json:"aa"`
	AAA      bool    `json:"aaa"`
	AALarge  bool    `json:"aa_large"`
	AAALarge bool    `json:"aaa_large"`
}

// Luminance is the WCAG relative luminance in [0,1].
func Luminance(c RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(v int) float64 {
	c := float64(v) / 255
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// ContrastRatio is (Llighter+0.05)/(Ldarker+0.05). Malformed input on either
// side gives 1.
func ContrastRatio(a, b string) float64 {
	ca, ok := HexToRGB(a)
	if !ok {
		return 1
	}
	cb, ok := HexToRGB(b)
	if !ok {
		return 1
	}
	la, lb := Luminance(ca), Luminance(cb)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// CheckContrast grades fg against bg. Ratio is rounded to two decimals; the
// flags are computed from the unrounded value.
func CheckContrast(fg, bg string) ContrastResult {
	ratio := ContrastRatio(fg, bg)
	return ContrastResult{
		Ratio:    math.Floor(ratio*100+0.5) / 100,
		AA:       ratio >= RatioAA,
		AAA:      ratio >= RatioAAA,
		AALarge:  ratio >= RatioAALarge,
		AAALarge: ratio >= RatioAAALarge,
	}
}

// FixContrast returns the foreground lightness variant closest to fg that
// reaches target against bg, holding hue and saturation. Dark variants are
// searched on a light background and light variants on a dark one.
// Malformed input returns fg unchanged.
func FixContrast(fg, bg string, target float64) string {
	if CheckContrast(fg, bg).Ratio >= target {
		return fg
	}
	hsl, ok := HexToHSL(fg)
	if !ok {
		return fg
	}
	bgHSL, ok := HexToHSL(bg)
	if !ok {
		return fg
	}

	lightBg := bgHSL.L > 50
	low, high := float64(hsl.L), 100.0
	if lightBg {
		low, high = 0, float64(hsl.L)
	}

	best := fg
	for i := 0; i < FixIterations; i++ {
		mid := (low + high) / 2
		candidate := hslToRGBf(float64(hsl.H), float64(hsl.S), mid).Hex()
		passed := CheckContrast(candidate, bg).Ratio >= target
		if passed {
			best = candidate
		}
		// A pass moves back toward the seed lightness to find the closest
		// passing variant; a miss moves toward the extreme.
		if passed == lightBg {
			low = mid
		} else {
			high = mid
		}
	}

	if CheckContrast(best, bg).Ratio < target {
		if lightBg {
			return "#000000"
		}
		return "#FFFFFF"
	}
	return best
}

// SuggestedTextColor picks white or black text, whichever contrasts more
// with bg. Black wins ties.
func SuggestedTextColor(bg string) string {
	if ContrastRatio(bg, "#FFFFFF") > ContrastRatio(bg, "#000000") {
		return "#FFFFFF"
	}
	return "#000000"
}

func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.2f:1", ratio)
}
