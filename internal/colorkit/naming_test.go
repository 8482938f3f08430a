package colorkit

import (
	"math"
	"testing"
)

func TestNamedColorsTable(t *testing.T) {
	if len(NamedColors) != 40 {
		t.Fatalf("unexpected table size: %d", len(NamedColors))
	}
	for _, nc := range NamedColors {
		if _, ok := HexToRGB(nc.Hex); !ok {
			t.Fatalf("table entry %s has bad hex %s", nc.Name, nc.Hex)
		}
	}
}

func TestName(t *testing.T) {
	cases := map[string]string{
		"#3366CC": "Azure",
		"#FF5733": "Coral",
		"#1ABC9C": "Emerald",
		"#808080": "Gray",
		"#FFC0CB": "Light Pink",
		"#FFA07A": "Light Salmon",
		"#FFE0E6": "Very Light Beige",
		"#0A0A0A": "Very Dark Black",
		"#004040": "Very Dark Forest",
		"#000000": "Very Dark Black",
		"#FFFFFF": "Very Light White",
	}
	for hex, want := range cases {
		if got := Name(hex); got != want {
			t.Fatalf("Name(%s)=%q want %q", hex, got, want)
		}
	}
}

func TestNameMalformedFallsBackToFirstEntry(t *testing.T) {
	if got := Name("nope"); got != NamedColors[0].Name {
		t.Fatalf("unexpected name: %q", got)
	}
}

func TestFamily(t *testing.T) {
	cases := map[string]string{
		"#3366CC":   "Blue",
		"#FF5733":   "Red",
		"#1ABC9C":   "Cyan",
		"#FFC0CB":   "Red",
		"#FFA500":   "Orange",
		"#FFFF00":   "Yellow",
		"#00FF00":   "Green",
		"#8000FF":   "Purple",
		"#FF00FF":   "Pink",
		"#777777":   "Gray",
		"#FFFFFF":   "White",
		"#000000":   "Black",
		"notacolor": "Unknown",
	}
	for hex, want := range cases {
		if got := Family(hex); got != want {
			t.Fatalf("Family(%s)=%q want %q", hex, got, want)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	hexes := []string{"#000000", "#FFFFFF", "#3366CC", "#FF5733", "#1ABC9C", "bad"}
	for _, a := range hexes {
		for _, b := range hexes {
			if da, db := Distance(a, b), Distance(b, a); da != db && !(math.IsInf(da, 1) && math.IsInf(db, 1)) {
				t.Fatalf("asymmetric distance %s/%s: %v vs %v", a, b, da, db)
			}
		}
	}
	if d := Distance("#000000", "#FFFFFF"); math.Abs(d-441.6729559300637) > 1e-9 {
		t.Fatalf("unexpected distance: %v", d)
	}
	if !math.IsInf(Distance("bad", "#000000"), 1) {
		t.Fatal("malformed input should be infinitely far")
	}
}

func TestPerceptualDistance(t *testing.T) {
	if d := PerceptualDistance("#3366CC", "#3366CC"); d != 0 {
		t.Fatalf("identical colors should have zero difference: %v", d)
	}
	near := PerceptualDistance("#3366CC", "#3367CC")
	far := PerceptualDistance("#3366CC", "#FF5733")
	if !(near < far) {
		t.Fatalf("expected near < far, got %v and %v", near, far)
	}
	if !math.IsInf(PerceptualDistance("#3366CC", "x"), 1) {
		t.Fatal("malformed input should be infinitely far")
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []Candidate{
		{Hex: "#FF0000", ID: "a"},
		{Hex: "#F00A0A", ID: "b"},
		{Hex: "#0000FF", ID: "c"},
		{Hex: "#FF1E00", ID: "d"},
		{Hex: "#E61414", ID: "e"},
	}
	got := FindSimilar("#FF0000", candidates, 0)
	ids := ""
	for _, m := range got {
		ids += m.ID
	}
	if ids != "bde" {
		t.Fatalf("unexpected matches: %+v", got)
	}
	if got[1].Distance != 30 {
		t.Fatalf("unexpected distance: %v", got[1].Distance)
	}
}

func TestFindSimilarStableTies(t *testing.T) {
	candidates := []Candidate{
		{Hex: "#0A0000", ID: "first"},
		{Hex: "#000A00", ID: "second"},
		{Hex: "#00000A", ID: "third"},
	}
	got := FindSimilar("#000000", candidates, 10)
	if len(got) != 3 || got[0].ID != "first" || got[1].ID != "second" || got[2].ID != "third" {
		t.Fatalf("ties should keep input order: %+v", got)
	}
	if got := FindSimilar("#000000", candidates, 9.99); len(got) != 0 {
		t.Fatalf("threshold should be inclusive only at the bound: %+v", got)
	}
}
