package colorkit

import (
	"math"
	"strings"
)

type HarmonyKind int

const (
	Complementary HarmonyKind = iota
	Analogous
	Triadic
	SplitComplementary
	Tetradic
	// Square uses the same 90° spacing as Tetradic. Both are kept so
	// callers can present them as separate named schemes.
	Square
	Monochromatic
)

// HarmonyKinds lists every kind in display order.
var HarmonyKinds = []HarmonyKind{
	Complementary,
	Analogous,
	Triadic,
	SplitComplementary,
	Tetradic,
	Square,
	Monochromatic,
}

func (k HarmonyKind) String() string {
	switch k {
	case Complementary:
		return "Complementary"
	case Analogous:
		return "Analogous"
	case Triadic:
		return "Triadic"
	case SplitComplementary:
		return "Split-Complementary"
	case Tetradic:
		return "Tetradic"
	case Square:
		return "Square"
	case Monochromatic:
		return "Monochromatic"
	}
	return "Unknown"
}

// ParseHarmonyKind accepts the display name of a kind in any case, with
// '_' or ' ' allowed in place of '-'.
func ParseHarmonyKind(name string) (HarmonyKind, bool) {
	name = strings.NewReplacer("_", "-", " ", "-").Replace(strings.TrimSpace(name))
	for _, k := range HarmonyKinds {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return 0, false
}

type Harmony struct {
	Name   string      `json:"name"`
	Kind   HarmonyKind `json:"-"`
	Colors []string    `json:"colors"`
}

const (
	DefaultMonochromaticCount = 5
	DefaultRampCount          = 5
	// MaxStepCount caps MonochromaticN, Tints and Shades. Larger counts
	// are clamped to it.
	MaxStepCount = 100

	tintCeiling = 95
	shadeFloor  = 5
)

// hueOffsets lists rotations relative to the seed. A zero entry marks where
// the seed itself is placed.
var hueOffsets = map[HarmonyKind][]int{
	Complementary:      {0, 180},
	Analogous:          {-30, 0, 30},
	Triadic:            {0, 120, 240},
	SplitComplementary: {0, 150, 210},
	Tetradic:           {0, 90, 180, 270},
	Square:             {0, 90, 180, 270},
}

// Generate builds the harmony of the given kind around hex. Monochromatic
// uses DefaultMonochromaticCount steps.
func Generate(kind HarmonyKind, hex string) Harmony {
	if kind == Monochromatic {
		return MonochromaticN(hex, DefaultMonochromaticCount)
	}
	out := Harmony{Name: kind.String(), Kind: kind}
	hsl, ok := HexToHSL(hex)
	offsets, known := hueOffsets[kind]
	if !ok || !known {
		out.Colors = []string{hex}
		return out
	}
	out.Colors = make([]string, 0, len(offsets))
	for _, off := range offsets {
		if off == 0 {
			out.Colors = append(out.Colors, hex)
			continue
		}
		out.Colors = append(out.Colors, HSLToHex(NormalizeHue(hsl.H+off), hsl.S, hsl.L))
	}
	return out
}

func GetComplementary(hex string) Harmony      { return Generate(Complementary, hex) }
func GetAnalogous(hex string) Harmony          { return Generate(Analogous, hex) }
func GetTriadic(hex string) Harmony            { return Generate(Triadic, hex) }
func GetSplitComplementary(hex string) Harmony { return Generate(SplitComplementary, hex) }
func GetTetradic(hex string) Harmony           { return Generate(Tetradic, hex) }
func GetSquare(hex string) Harmony             { return Generate(Square, hex) }
func GetMonochromatic(hex string) Harmony      { return Generate(Monochromatic, hex) }

// MonochromaticN spreads count lightness steps evenly from 10% to 90% at the
// seed hue and saturation. A count of 1 yields the 10% step only; counts
// above MaxStepCount are clamped.
func MonochromaticN(hex string, count int) Harmony {
	out := Harmony{Name: Monochromatic.String(), Kind: Monochromatic}
	hsl, ok := HexToHSL(hex)
	if !ok {
		out.Colors = []string{hex}
		return out
	}
	count = clampCount(count, DefaultMonochromaticCount)
	step := 0.0
	if count > 1 {
		step = 80 / float64(count-1)
	}
	out.Colors = make([]string, 0, count)
	for i := 0; i < count; i++ {
		l := 10 + step*float64(i)
		out.Colors = append(out.Colors, HSLToHex(hsl.H, hsl.S, round(l)))
	}
	return out
}

// AllHarmonies returns one harmony per kind in HarmonyKinds order.
func AllHarmonies(hex string) []Harmony {
	out := make([]Harmony, 0, len(HarmonyKinds))
	for _, k := range HarmonyKinds {
		out = append(out, Generate(k, hex))
	}
	return out
}

// Tints steps lightness from the seed up toward 95% in count equal
// increments. Malformed input returns a single-element slice holding it.
func Tints(hex string, count int) []string {
	hsl, ok := HexToHSL(hex)
	if !ok {
		return []string{hex}
	}
	count = clampCount(count, DefaultRampCount)
	step := float64(tintCeiling-hsl.L) / float64(count)
	out := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		l := math.Min(tintCeiling, float64(hsl.L)+step*float64(i))
		out = append(out, HSLToHex(hsl.H, hsl.S, round(l)))
	}
	return out
}

// Shades steps lightness from the seed down toward a floor of 5%.
func Shades(hex string, count int) []string {
	hsl, ok := HexToHSL(hex)
	if !ok {
		return []string{hex}
	}
	count = clampCount(count, DefaultRampCount)
	step := float64(hsl.L) / float64(count)
	out := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		l := math.Max(shadeFloor, float64(hsl.L)-step*float64(i))
		out = append(out, HSLToHex(hsl.H, hsl.S, round(l)))
	}
	return out
}

func clampCount(count, fallback int) int {
	if count <= 0 {
		return fallback
	}
	if count > MaxStepCount {
		return MaxStepCount
	}
	return count
}

// NormalizeHue wraps any angle into [0,360).
func NormalizeHue(h int) int {
	h %= 360
	if h < 0 {
		h += 360
	}
	return h
}
