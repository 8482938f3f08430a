package service

import (
	"fmt"

	"palette-grab/internal/colorkit"
	"palette-grab/internal/model"
)

// ReportService assembles the derived values shown for a single color.
type ReportService struct {
	catalog *CatalogService
}

func NewReportService(catalog *CatalogService) *ReportService {
	return &ReportService{catalog: catalog}
}

func Convert(hex string) (model.Conversion, error) {
	rgb, ok := colorkit.HexToRGB(hex)
	if !ok {
		return model.Conversion{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	hsl := colorkit.RGBToHSL(rgb.R, rgb.G, rgb.B)
	cmyk := colorkit.RGBToCMYK(rgb.R, rgb.G, rgb.B)
	return model.Conversion{
		Hex:        rgb.Hex(),
		RGB:        rgb,
		HSL:        hsl,
		CMYK:       cmyk,
		RGBString:  colorkit.FormatRGB(rgb),
		HSLString:  colorkit.FormatHSL(hsl),
		CMYKString: colorkit.FormatCMYK(cmyk),
	}, nil
}

func ContrastAgainst(fg, bg string) model.ContrastPair {
	res := colorkit.CheckContrast(fg, bg)
	return model.ContrastPair{Background: bg, Result: res, Formatted: colorkit.FormatRatio(res.Ratio)}
}

// Build returns the full report for hex. Similar colors come from the saved
// history when a catalog is attached.
func (s *ReportService) Build(hex string) (model.ColorReport, error) {
	conv, err := Convert(hex)
	if err != nil {
		return model.ColorReport{}, err
	}
	nearest := colorkit.Nearest(hex)
	report := model.ColorReport{
		Conversion: conv,
		Name:       colorkit.Name(hex),
		Family:     colorkit.Family(hex),
		Nearest:    nearest,
		DeltaE:     colorkit.PerceptualDistance(hex, nearest.Hex),
		Harmonies:  colorkit.AllHarmonies(hex),
		Tints:      colorkit.Tints(hex, colorkit.DefaultRampCount),
		Shades:     colorkit.Shades(hex, colorkit.DefaultRampCount),
		TextColor:  colorkit.SuggestedTextColor(hex),
		OnWhite:    ContrastAgainst(hex, "#FFFFFF"),
		OnBlack:    ContrastAgainst(hex, "#000000"),
	}
	if s.catalog != nil {
		report.Similar = s.catalog.SimilarInHistory(hex, 0)
	}
	return report, nil
}
