package model

import (
	"time"

	"palette-grab/internal/colorkit"
)

type ColorFormat string

const (
	FormatHex ColorFormat = "hex"
	FormatRGB ColorFormat = "rgb"
	FormatHSL ColorFormat = "hsl"
)

var SupportedColorFormats = map[ColorFormat]struct{}{
	FormatHex: {},
	FormatRGB: {},
	FormatHSL: {},
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type ExportFormat string

const (
	ExportCSS      ExportFormat = "css"
	ExportSCSS     ExportFormat = "scss"
	ExportJSON     ExportFormat = "json"
	ExportTailwind ExportFormat = "tailwind"
)

type ColorRecord struct {
	ID        string `json:"id"`
	Hex       string `json:"hex"`
	Timestamp int64  `json:"timestamp"`
	ImageURL  string `json:"image_url,omitempty"`
	Note      string `json:"note,omitempty"`
}

type Palette struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Colors    []ColorRecord `json:"colors"`
	CreatedAt int64         `json:"created_at"`
}

type Settings struct {
	DefaultFormat ColorFormat `json:"default_format"`
	Theme         Theme       `json:"theme"`
}

type StoredState struct {
	History           []ColorRecord `json:"history"`
	Palettes          []Palette     `json:"palettes"`
	Settings          Settings      `json:"settings"`
	LastUpdatedUnixMS int64         `json:"last_updated_unix_ms"`
	CreatedAt         time.Time     `json:"created_at"`
}

// Sample is one point read from a camera frame.
type Sample struct {
	Hex         string       `json:"hex"`
	RGB         colorkit.RGB `json:"rgb"`
	Name        string       `json:"name"`
	X           int          `json:"x"`
	Y           int          `json:"y"`
	Radius      int          `json:"radius"`
	FrameWidth  int          `json:"frame_width"`
	FrameHeight int          `json:"frame_height"`
	Format      string       `json:"format"`
	Record      *ColorRecord `json:"record,omitempty"`
	CreatedAt   int64        `json:"created_at_unix_ms"`
}

type Conversion struct {
	Hex        string        `json:"hex"`
	RGB        colorkit.RGB  `json:"rgb"`
	HSL        colorkit.HSL  `json:"hsl"`
	CMYK       colorkit.CMYK `json:"cmyk"`
	RGBString  string        `json:"rgb_string"`
	HSLString  string        `json:"hsl_string"`
	CMYKString string        `json:"cmyk_string"`
}

type ContrastPair struct {
	Background string                  `json:"background"`
	Result     colorkit.ContrastResult `json:"result"`
	Formatted  string                  `json:"formatted"`
}

// ColorReport gathers everything the detail view shows for one color.
type ColorReport struct {
	Conversion

	Name      string              `json:"name"`
	Family    string              `json:"family"`
	Nearest   colorkit.NamedColor `json:"nearest"`
	DeltaE    float64             `json:"delta_e"`
	Harmonies []colorkit.Harmony  `json:"harmonies"`
	Tints     []string            `json:"tints"`
	Shades    []string            `json:"shades"`
	TextColor string              `json:"text_color"`
	OnWhite   ContrastPair        `json:"on_white"`
	OnBlack   ContrastPair        `json:"on_black"`
	Similar   []colorkit.Match    `json:"similar,omitempty"`
}

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	CreatedAt int64       `json:"created_at_unix_ms"`
}
