package colorkit

import (
	"reflect"
	"testing"
)

func TestComplementaryWrapsHue(t *testing.T) {
	h := GetComplementary("#FF0000")
	want := []string{"#FF0000", "#00FFFF"}
	if h.Name != "Complementary" || !reflect.DeepEqual(h.Colors, want) {
		t.Fatalf("unexpected harmony: %+v", h)
	}
}

func TestHarmonyOffsets(t *testing.T) {
	cases := []struct {
		kind HarmonyKind
		seed string
		want []string
	}{
		{Analogous, "#FF0000", []string{"#FF0080", "#FF0000", "#FF8000"}},
		{Triadic, "#FF0000", []string{"#FF0000", "#00FF00", "#0000FF"}},
		{SplitComplementary, "#FF0000", []string{"#FF0000", "#00FF80", "#007FFF"}},
		{Tetradic, "#3366CC", []string{"#3366CC", "#CC33B2", "#CC9933", "#33CC4D"}},
		{Square, "#3366CC", []string{"#3366CC", "#CC33B2", "#CC9933", "#33CC4D"}},
	}
	for _, tc := range cases {
		h := Generate(tc.kind, tc.seed)
		if h.Name != tc.kind.String() || h.Kind != tc.kind {
			t.Fatalf("%v: unexpected name %q", tc.kind, h.Name)
		}
		if !reflect.DeepEqual(h.Colors, tc.want) {
			t.Fatalf("%v: got %v want %v", tc.kind, h.Colors, tc.want)
		}
	}
}

func TestSeedKeptVerbatim(t *testing.T) {
	h := GetTriadic("ff0000")
	if h.Colors[0] != "ff0000" {
		t.Fatalf("seed should be passed through unchanged: %v", h.Colors)
	}
}

func TestMonochromatic(t *testing.T) {
	h := GetMonochromatic("#3366CC")
	want := []string{"#0A1429", "#1F3D7A", "#3366CC", "#85A3E0", "#D6E0F5"}
	if !reflect.DeepEqual(h.Colors, want) {
		t.Fatalf("got %v want %v", h.Colors, want)
	}
	if got := MonochromaticN("#3366CC", 1).Colors; len(got) != 1 || got[0] != "#0A1429" {
		t.Fatalf("single step should sit at 10%% lightness: %v", got)
	}
	if got := MonochromaticN("#3366CC", 9).Colors; len(got) != 9 {
		t.Fatalf("unexpected count: %d", len(got))
	}
}

func TestMalformedHarmonyDegrades(t *testing.T) {
	for _, h := range AllHarmonies("notacolor") {
		if len(h.Colors) != 1 || h.Colors[0] != "notacolor" {
			t.Fatalf("%s: expected single passthrough color, got %v", h.Name, h.Colors)
		}
	}
	if got := Tints("notacolor", 5); len(got) != 1 || got[0] != "notacolor" {
		t.Fatalf("unexpected tints: %v", got)
	}
	if got := Shades("notacolor", 5); len(got) != 1 || got[0] != "notacolor" {
		t.Fatalf("unexpected shades: %v", got)
	}
}

func TestAllHarmoniesOrder(t *testing.T) {
	got := AllHarmonies("#3366CC")
	names := make([]string, 0, len(got))
	for _, h := range got {
		names = append(names, h.Name)
	}
	want := []string{"Complementary", "Analogous", "Triadic", "Split-Complementary", "Tetradic", "Square", "Monochromatic"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %v", names)
	}
}

func TestParseHarmonyKind(t *testing.T) {
	k, ok := ParseHarmonyKind("Split-Complementary")
	if !ok || k != SplitComplementary {
		t.Fatalf("unexpected kind: %v ok=%v", k, ok)
	}
	if k, ok := ParseHarmonyKind("split_complementary"); !ok || k != SplitComplementary {
		t.Fatalf("expected case-insensitive match, got %v ok=%v", k, ok)
	}
	if _, ok := ParseHarmonyKind("Pentadic"); ok {
		t.Fatal("expected unknown kind to fail")
	}
}

func TestTintsAndShades(t *testing.T) {
	tints := Tints("#3366CC", 5)
	want := []string{"#5882D5", "#7C9DDE", "#A1B9E8", "#C6D4F1", "#EBF0FA"}
	if !reflect.DeepEqual(tints, want) {
		t.Fatalf("tints: got %v want %v", tints, want)
	}
	shades := Shades("#3366CC", 5)
	want = []string{"#2952A3", "#1F3D7A", "#142952", "#0A1429", "#050A14"}
	if !reflect.DeepEqual(shades, want) {
		t.Fatalf("shades: got %v want %v", shades, want)
	}
}

func TestTintsMonotonic(t *testing.T) {
	for _, seed := range []string{"#000000", "#3366CC", "#FF5733", "#F0F0F0", "#FFFFFF", "#1ABC9C"} {
		prev := -1
		tints := Tints(seed, 5)
		if len(tints) != 5 {
			t.Fatalf("%s: expected 5 tints, got %d", seed, len(tints))
		}
		for _, hex := range tints {
			hsl, _ := HexToHSL(hex)
			if hsl.L < prev || hsl.L > 96 {
				t.Fatalf("%s: lightness sequence broken at %s (%d after %d)", seed, hex, hsl.L, prev)
			}
			prev = hsl.L
		}
	}
}

func TestShadesFloor(t *testing.T) {
	for _, hex := range Shades("#000000", 5) {
		if hex != "#0D0D0D" {
			t.Fatalf("shades of black should clamp at 5%%: %s", hex)
		}
	}
}

func TestNormalizeHue(t *testing.T) {
	for in, want := range map[int]int{-30: 330, 0: 0, 360: 0, 390: 30, -720: 0} {
		if got := NormalizeHue(in); got != want {
			t.Fatalf("NormalizeHue(%d)=%d want %d", in, got, want)
		}
	}
}

func TestStepCountsClamped(t *testing.T) {
	huge := 1 << 62
	if got := len(Tints("#336699", huge)); got != MaxStepCount {
		t.Fatalf("tints: expected %d colors, got %d", MaxStepCount, got)
	}
	if got := len(Shades("#336699", huge)); got != MaxStepCount {
		t.Fatalf("shades: expected %d colors, got %d", MaxStepCount, got)
	}
	if got := len(MonochromaticN("#336699", huge).Colors); got != MaxStepCount {
		t.Fatalf("monochromatic: expected %d colors, got %d", MaxStepCount, got)
	}
	if got := len(Tints("#336699", MaxStepCount)); got != MaxStepCount {
		t.Fatalf("tints at the cap: expected %d colors, got %d", MaxStepCount, got)
	}
}
