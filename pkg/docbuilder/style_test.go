package docbuilder

import (
	"math"
	"strconv"
	"testing"
)

// relativeLuminance implements the WCAG 2.x relative luminance formula for
// an sRGB hex color.
func relativeLuminance(hex string) float64 {
	r, _ := strconv.ParseInt(hex[1:3], 16, 64)
	g, _ := strconv.ParseInt(hex[3:5], 16, 64)
	b, _ := strconv.ParseInt(hex[5:7], 16, 64)

	channel := func(c int64) float64 {
		v := float64(c) / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(r) + 0.7152*channel(g) + 0.0722*channel(b)
}

// contrastRatio computes the WCAG contrast ratio between two hex colors.
func contrastRatio(a, b string) float64 {
	la, lb := relativeLuminance(a), relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func TestDefaultPaletteTextMeetsNormalTextContrast(t *testing.T) {
	ratio := contrastRatio(DefaultPalette.TextOnLight, DefaultPalette.Background)
	if ratio < 4.5 {
		t.Errorf("TextOnLight/Background contrast = %.2f, want >= 4.5", ratio)
	}
}

func TestDefaultPaletteAccentMeetsLargeTextContrast(t *testing.T) {
	ratio := contrastRatio(DefaultPalette.Accent, DefaultPalette.Background)
	if ratio < 3.0 {
		t.Errorf("Accent/Background contrast = %.2f, want >= 3.0", ratio)
	}
}

func TestDefaultPaletteConfidenceBadgesMeetLargeTextContrast(t *testing.T) {
	for name, hex := range map[string]string{
		"high":   DefaultPalette.ConfidenceHigh,
		"medium": DefaultPalette.ConfidenceMedium,
		"low":    DefaultPalette.ConfidenceLow,
	} {
		ratio := contrastRatio(hex, DefaultPalette.Background)
		if ratio < 3.0 {
			t.Errorf("confidence badge %s contrast = %.2f, want >= 3.0", name, ratio)
		}
	}
}

func TestNewStyleCatalogSizesFollowMinorThirdScale(t *testing.T) {
	c := NewStyleCatalog("Calibri", DefaultPalette)
	h3 := c.SizeFor(LevelH3)
	h2 := c.SizeFor(LevelH2)
	h1 := c.SizeFor(LevelH1)
	title := c.SizeFor(LevelTitle)

	if h3 != bodySizePt*1.2 {
		t.Errorf("H3 size = %v, want %v", h3, bodySizePt*1.2)
	}
	for _, pair := range [][2]float64{{h2, h3}, {h1, h2}, {title, h1}} {
		got := pair[0] / pair[1]
		if math.Abs(got-minorThirdScale) > 1e-9 {
			t.Errorf("expected a %v scale step, got %v", minorThirdScale, got)
		}
	}
}

func TestStyleNameRegistersIdempotently(t *testing.T) {
	c := NewStyleCatalog("Calibri", DefaultPalette)
	name := c.StyleName(LevelH1)
	if !c.IsRegistered(name) {
		t.Fatalf("expected %s to be registered after StyleName", name)
	}
	again := c.StyleName(LevelH1)
	if again != name {
		t.Errorf("StyleName should be stable across calls, got %q then %q", name, again)
	}
}

func TestStyleNameTitleIsDistinct(t *testing.T) {
	c := NewStyleCatalog("Calibri", DefaultPalette)
	if got := c.StyleName(LevelTitle); got != "PacketTitle" {
		t.Errorf("StyleName(LevelTitle) = %q, want PacketTitle", got)
	}
}
