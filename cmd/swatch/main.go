// Command swatch prints a color report to the terminal: conversions, name,
// harmonies, ramps and a contrast check against a background.
//
//	swatch '#3366CC' --bg '#FFFFFF' --target 4.5
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"palette-grab/internal/colorkit"
	"palette-grab/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle = lipgloss.NewStyle().Width(22).Foreground(lipgloss.Color("241"))
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func main() {
	fs := flag.NewFlagSet("swatch", flag.ExitOnError)
	bg := fs.String("bg", "#FFFFFF", "background color for the contrast check")
	target := fs.Float64("target", colorkit.RatioAA, "contrast ratio to fix towards")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: swatch <hex> [--bg <hex>] [--target <ratio>]")
		fs.PrintDefaults()
	}

	// Let the color come first, before the flags.
	args := os.Args[1:]
	var hex string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		hex, args = args[0], args[1:]
	}
	_ = fs.Parse(args)
	if hex == "" {
		hex = fs.Arg(0)
	}
	if hex == "" {
		fs.Usage()
		os.Exit(2)
	}

	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
	}

	out, err := render(hex, *bg, *target)
	if err != nil {
		fmt.Fprintln(os.Stderr, "swatch:", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

func render(hex, bg string, target float64) (string, error) {
	conv, err := service.Convert(hex)
	if err != nil {
		return "", err
	}
	if _, ok := colorkit.HexToRGB(bg); !ok {
		return "", fmt.Errorf("%w: background %q", service.ErrInvalidHex, bg)
	}
	if target < 1 || target > 21 {
		return "", fmt.Errorf("target ratio %.2f outside [1,21]", target)
	}

	var b strings.Builder
	b.WriteString(chip(conv.Hex) + " " + titleStyle.Render(colorkit.Name(conv.Hex)) + "\n\n")
	row(&b, "hex", conv.Hex)
	row(&b, "rgb", conv.RGBString)
	row(&b, "hsl", conv.HSLString)
	row(&b, "cmyk", conv.CMYKString)
	row(&b, "family", colorkit.Family(conv.Hex))
	nearest := colorkit.Nearest(conv.Hex)
	row(&b, "nearest", fmt.Sprintf("%s %s (ΔE %.1f)", nearest.Name, nearest.Hex, colorkit.PerceptualDistance(conv.Hex, nearest.Hex)))
	b.WriteString("\n")

	for _, h := range colorkit.AllHarmonies(conv.Hex) {
		row(&b, h.Name, chips(h.Colors))
	}
	row(&b, "Tints", chips(colorkit.Tints(conv.Hex, colorkit.DefaultRampCount)))
	row(&b, "Shades", chips(colorkit.Shades(conv.Hex, colorkit.DefaultRampCount)))
	b.WriteString("\n")

	res := colorkit.CheckContrast(conv.Hex, bg)
	row(&b, "on "+strings.ToUpper(bg), colorkit.FormatRatio(res.Ratio))
	row(&b, "AA / AAA", grade(res.AA)+" / "+grade(res.AAA))
	row(&b, "AA / AAA large", grade(res.AALarge)+" / "+grade(res.AAALarge))
	if res.Ratio < target {
		fixed := colorkit.FixContrast(conv.Hex, bg, target)
		row(&b, fmt.Sprintf("fix for %.1f:1", target), chip(fixed)+" "+fixed+" "+colorkit.FormatRatio(colorkit.ContrastRatio(fixed, bg)))
	}
	row(&b, "text on swatch", colorkit.SuggestedTextColor(conv.Hex))

	return boxStyle.Render(strings.TrimRight(b.String(), "\n")), nil
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label) + value + "\n")
}

func chip(hex string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(colorkit.SuggestedTextColor(hex))).
		Render("   ")
}

func chips(colors []string) string {
	parts := make([]string, 0, len(colors))
	for _, c := range colors {
		parts = append(parts, chip(c))
	}
	return strings.Join(parts, " ")
}

func grade(ok bool) string {
	if ok {
		return passStyle.Render("pass")
	}
	return failStyle.Render("fail")
}
