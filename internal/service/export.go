package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"palette-grab/internal/model"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Export is a rendered palette file.
type Export struct {
	Content  string
	Filename string
	MimeType string
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportPalette renders p as CSS custom properties, SCSS variables, JSON or
// a Tailwind config fragment.
func ExportPalette(p model.Palette, format model.ExportFormat) (Export, error) {
	slug := whitespaceRun.ReplaceAllString(strings.ToLower(p.Name), "-")
	switch format {
	case model.ExportCSS:
		return Export{Content: exportCSS(p), Filename: slug + ".css", MimeType: "text/css"}, nil
	case model.ExportSCSS:
		return Export{Content: exportSCSS(p), Filename: slug + ".scss", MimeType: "text/plain"}, nil
	case model.ExportJSON:
		content, err := exportJSON(p)
		if err != nil {
			return Export{}, err
		}
		return Export{Content: content, Filename: slug + ".json", MimeType: "application/json"}, nil
	case model.ExportTailwind:
		content, err := exportTailwind(p)
		if err != nil {
			return Export{}, err
		}
		return Export{Content: content, Filename: "tailwind.config.js", MimeType: "text/javascript"}, nil
	}
	return Export{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func exportCSS(p model.Palette) string {
	lines := make([]string, 0, len(p.Colors))
	for i, c := range p.Colors {
		lines = append(lines, fmt.Sprintf("  --color-%d: %s;", i+1, c.Hex))
	}
	return ":root {\n" + strings.Join(lines, "\n") + "\n}"
}

func exportSCSS(p model.Palette) string {
	lines := make([]string, 0, len(p.Colors))
	for i, c := range p.Colors {
		lines = append(lines, fmt.Sprintf("$color-%d: %s;", i+1, c.Hex))
	}
	return strings.Join(lines, "\n")
}

func exportJSON(p model.Palette) (string, error) {
	colors := make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, c.Hex)
	}
	doc := struct {
		Name      string   `json:"name"`
		Colors    []string `json:"colors"`
		CreatedAt string   `json:"createdAt"`
	}{
		Name:      p.Name,
		Colors:    colors,
		CreatedAt: time.UnixMilli(p.CreatedAt).UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal palette: %w", err)
	}
	return string(b), nil
}

func exportTailwind(p model.Palette) (string, error) {
	// Keys are written by hand so brand-10 follows brand-9 instead of
	// json's lexical ordering.
	var sb strings.Builder
	sb.WriteString("{")
	for i, c := range p.Colors {
		if i > 0 {
			sb.WriteString(",")
		}
		hex, err := json.Marshal(c.Hex)
		if err != nil {
			return "", fmt.Errorf("marshal color: %w", err)
		}
		fmt.Fprintf(&sb, "\n        \"brand-%d\": %s", i+1, hex)
	}
	if len(p.Colors) > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return "module.exports = {\n  theme: {\n    extend: {\n      colors: " + sb.String() + "\n    }\n  }\n}", nil
}
