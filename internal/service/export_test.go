package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"palette-grab/internal/model"
)

func samplePalette() model.Palette {
	return model.Palette{
		ID:   "p1",
		Name: "Ocean  Breeze",
		Colors: []model.ColorRecord{
			{ID: "a", Hex: "#1ABC9C"},
			{ID: "b", Hex: "#3366CC"},
		},
		CreatedAt: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC).UnixMilli(),
	}
}

func TestExportCSS(t *testing.T) {
	out, err := ExportPalette(samplePalette(), model.ExportCSS)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := ":root {\n  --color-1: #1ABC9C;\n  --color-2: #3366CC;\n}"
	if out.Content != want {
		t.Fatalf("got %q", out.Content)
	}
	if out.Filename != "ocean-breeze.css" || out.MimeType != "text/css" {
		t.Fatalf("unexpected file info: %+v", out)
	}
}

func TestExportSCSS(t *testing.T) {
	out, _ := ExportPalette(samplePalette(), model.ExportSCSS)
	if out.Content != "$color-1: #1ABC9C;\n$color-2: #3366CC;" {
		t.Fatalf("got %q", out.Content)
	}
	if out.Filename != "ocean-breeze.scss" {
		t.Fatalf("unexpected filename: %s", out.Filename)
	}
}

func TestExportJSON(t *testing.T) {
	out, err := ExportPalette(samplePalette(), model.ExportJSON)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var doc struct {
		Name      string   `json:"name"`
		Colors    []string `json:"colors"`
		CreatedAt string   `json:"createdAt"`
	}
	if err := json.Unmarshal([]byte(out.Content), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Name != "Ocean  Breeze" || len(doc.Colors) != 2 || doc.CreatedAt != "2024-05-01T12:30:00.000Z" {
		t.Fatalf("unexpected doc: %+v", doc)
	}
}

func TestExportTailwind(t *testing.T) {
	out, _ := ExportPalette(samplePalette(), model.ExportTailwind)
	want := "module.exports = {\n  theme: {\n    extend: {\n      colors: {\n        \"brand-1\": \"#1ABC9C\",\n        \"brand-2\": \"#3366CC\"\n}\n    }\n  }\n}"
	if out.Content != want {
		t.Fatalf("got %q", out.Content)
	}
	if out.Filename != "tailwind.config.js" {
		t.Fatalf("unexpected filename: %s", out.Filename)
	}
}

func TestExportUnsupported(t *testing.T) {
	if _, err := ExportPalette(samplePalette(), "ase"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
