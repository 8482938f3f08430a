package colorkit

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

type NamedColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// NamedColors is the reference table used by Name. Order matters: on equal
// distance the earlier entry wins.
var NamedColors = []NamedColor{
	{Name: "Red", Hex: "#FF0000"}, {Name: "Crimson", Hex: "#DC143C"},
	{Name: "Coral", Hex: "#FF7F50"}, {Name: "Salmon", Hex: "#FA8072"},
	{Name: "Pink", Hex: "#FFC0CB"}, {Name: "Rose", Hex: "#FF007F"},
	{Name: "Maroon", Hex: "#800000"}, {Name: "Orange", Hex: "#FFA500"},
	{Name: "Tangerine", Hex: "#F28500"}, {Name: "Peach", Hex: "#FFE5B4"},
	{Name: "Yellow", Hex: "#FFFF00"}, {Name: "Gold", Hex: "#FFD700"},
	{Name: "Lemon", Hex: "#FFF44F"}, {Name: "Cream", Hex: "#FFFDD0"},
	{Name: "Green", Hex: "#008000"}, {Name: "Lime", Hex: "#00FF00"},
	{Name: "Mint", Hex: "#98FF98"}, {Name: "Emerald", Hex: "#50C878"},
	{Name: "Teal", Hex: "#008080"}, {Name: "Olive", Hex: "#808000"},
	{Name: "Forest", Hex: "#228B22"}, {Name: "Blue", Hex: "#0000FF"},
	{Name: "Sky Blue", Hex: "#87CEEB"}, {Name: "Navy", Hex: "#000080"},
	{Name: "Turquoise", Hex: "#40E0D0"}, {Name: "Cyan", Hex: "#00FFFF"},
	{Name: "Azure", Hex: "#007FFF"}, {Name: "Purple", Hex: "#800080"},
	{Name: "Violet", Hex: "#8F00FF"}, {Name: "Lavender", Hex: "#E6E6FA"},
	{Name: "Magenta", Hex: "#FF00FF"}, {Name: "Plum", Hex: "#DDA0DD"},
	{Name: "Brown", Hex: "#A52A2A"}, {Name: "Tan", Hex: "#D2B48C"},
	{Name: "Beige", Hex: "#F5F5DC"}, {Name: "Chocolate", Hex: "#D2691E"},
	{Name: "Black", Hex: "#000000"}, {Name: "Gray", Hex: "#808080"},
	{Name: "Silver", Hex: "#C0C0C0"}, {Name: "White", Hex: "#FFFFFF"},
}

const DefaultSimilarDistance = 50.0

// Distance is the Euclidean distance between two colors in RGB space. It is
// +Inf when either side does not parse.
func Distance(a, b string) float64 {
	ca, ok := HexToRGB(a)
	if !ok {
		return math.Inf(1)
	}
	cb, ok := HexToRGB(b)
	if !ok {
		return math.Inf(1)
	}
	dr := float64(ca.R - cb.R)
	dg := float64(ca.G - cb.G)
	db := float64(ca.B - cb.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// PerceptualDistance is the CIEDE2000 difference between two colors. It is
// reported alongside Distance but never used for ranking.
func PerceptualDistance(a, b string) float64 {
	ca, ok := HexToRGB(a)
	if !ok {
		return math.Inf(1)
	}
	cb, ok := HexToRGB(b)
	if !ok {
		return math.Inf(1)
	}
	return toColorful(ca).DistanceCIEDE2000(toColorful(cb))
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Nearest returns the table entry closest to hex. Malformed input yields the
// first entry.
func Nearest(hex string) NamedColor {
	best := NamedColors[0]
	min := math.Inf(1)
	for _, nc := range NamedColors {
		if d := Distance(hex, nc.Hex); d < min {
			min = d
			best = nc
		}
	}
	return best
}

// Name returns the nearest table name qualified by the query's lightness,
// e.g. "Dark Teal" or "Very Light Pink".
func Name(hex string) string {
	name := Nearest(hex).Name
	hsl, ok := HexToHSL(hex)
	if !ok {
		return name
	}
	switch {
	case hsl.L > 90:
		return "Very Light " + name
	case hsl.L > 70:
		return "Light " + name
	case hsl.L < 20:
		return "Very Dark " + name
	case hsl.L < 40:
		return "Dark " + name
	}
	return name
}

// Family buckets a color by hue. Colors under 10% saturation are White,
// Black or Gray.
func Family(hex string) string {
	hsl, ok := HexToHSL(hex)
	if !ok {
		return "Unknown"
	}
	if hsl.S < 10 {
		switch {
		case hsl.L > 90:
			return "White"
		case hsl.L < 10:
			return "Black"
		}
		return "Gray"
	}
	h := hsl.H
	switch {
	case h < 15 || h >= 345:
		return "Red"
	case h < 45:
		return "Orange"
	case h < 70:
		return "Yellow"
	case h < 150:
		return "Green"
	case h < 200:
		return "Cyan"
	case h < 260:
		return "Blue"
	case h < 290:
		return "Purple"
	}
	return "Pink"
}

type Candidate struct {
	Hex string `json:"hex"`
	ID  string `json:"id"`
}

type Match struct {
	Hex      string  `json:"hex"`
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
}

// FindSimilar returns candidates within maxDistance of target, closest first.
// Candidates whose hex string equals target are skipped. Ties keep input
// order. A non-positive maxDistance uses DefaultSimilarDistance.
func FindSimilar(target string, candidates []Candidate, maxDistance float64) []Match {
	if maxDistance <= 0 {
		maxDistance = DefaultSimilarDistance
	}
	out := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if c.Hex == target {
			continue
		}
		d := Distance(target, c.Hex)
		if d > maxDistance {
			continue
		}
		out = append(out, Match{Hex: c.Hex, ID: c.ID, Distance: d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}
