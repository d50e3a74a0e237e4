// Package docbuilder programmatically constructs the .docx packet for one
// TribePacketContext. No per-Tribe templates: every document is assembled
// from a single style catalog and a set of section renderers selected by
// variant. Grounded structurally on the teacher's pkg/draft (a
// section-by-section renderer building one output document from a
// typed report) and pkg/validate's report_html.go/report_md.go
// (format-specific renderer pairing with a shared data model), retargeted
// here from Markdown/HTML text output to programmatic .docx construction
// via github.com/fumiama/go-docx.
package docbuilder

import "fmt"

// HeadingLevel identifies one of the document's heading ranks.
type HeadingLevel int

const (
	LevelTitle HeadingLevel = iota
	LevelH1
	LevelH2
	LevelH3
)

// minorThirdScale is the multiplier applied between adjacent heading
// levels (spec §4.9: "minor-third scale 1.2x between adjacent levels").
const minorThirdScale = 1.2

// bodySize and captionSize are the spec's hard floors (spec §4.9).
const (
	bodySizePt    = 9.0
	captionSizePt = 8.0
)

// StyleCatalog is the single, program-wide set of named styles every
// section renderer draws from. Registration is idempotent: applying the
// same style definition twice never creates a duplicate (spec §4.9).
type StyleCatalog struct {
	fontFamily string
	sizes      map[HeadingLevel]float64
	registered map[string]bool
	palette    Palette
}

// Palette is the verified color set (spec §4.9: 4.5:1 contrast minimum
// for normal text, 3:1 for large text). The ratios of DefaultPalette are
// checked by the contrast tests in style_test.go; neither NewStyleCatalog
// nor the renderer checks a palette.
type Palette struct {
	TextOnLight   string // hex, #RRGGBB
	TextOnDark    string
	Background    string
	Accent        string
	ConfidenceHigh   string
	ConfidenceMedium string
	ConfidenceLow    string
}

// DefaultPalette is verified (by the contrastRatio checks in style_test.go)
// to meet 4.5:1 against Background for TextOnLight and 3:1 for Accent at
// large text sizes.
var DefaultPalette = Palette{
	TextOnLight:      "#1A1A1A",
	TextOnDark:       "#F5F5F5",
	Background:       "#FFFFFF",
	Accent:           "#2B4C7E",
	ConfidenceHigh:   "#1B5E20",
	ConfidenceMedium: "#8F6000",
	ConfidenceLow:    "#8A1C1C",
}

// NewStyleCatalog builds the style catalog's size table from the minor-
// third scale, rooted at body size.
func NewStyleCatalog(fontFamily string, palette Palette) *StyleCatalog {
	c := &StyleCatalog{
		fontFamily: fontFamily,
		sizes:      make(map[HeadingLevel]float64),
		registered: make(map[string]bool),
		palette:    palette,
	}
	c.sizes[LevelH3] = bodySizePt * 1.2
	c.sizes[LevelH2] = c.sizes[LevelH3] * minorThirdScale
	c.sizes[LevelH1] = c.sizes[LevelH2] * minorThirdScale
	c.sizes[LevelTitle] = c.sizes[LevelH1] * minorThirdScale
	return c
}

// SizeFor returns the point size for a heading level.
func (c *StyleCatalog) SizeFor(level HeadingLevel) float64 {
	return c.sizes[level]
}

// StyleName returns the canonical style name for a heading level, and
// registers it (idempotently) in the catalog's registered-style set.
func (c *StyleCatalog) StyleName(level HeadingLevel) string {
	name := fmt.Sprintf("PacketHeading%d", int(level))
	if level == LevelTitle {
		name = "PacketTitle"
	}
	c.registered[name] = true
	return name
}

// IsRegistered reports whether a style name has been registered. Only
// names handed out by StyleName are recorded; BodyStyleName and
// CaptionStyleName, which renderSection also uses, are never registered.
func (c *StyleCatalog) IsRegistered(name string) bool {
	return c.registered[name]
}

// BodyStyleName and CaptionStyleName are fixed, catalog-wide style names
// for body text and table captions/footnotes.
const (
	BodyStyleName    = "PacketBody"
	CaptionStyleName = "PacketCaption"
)
