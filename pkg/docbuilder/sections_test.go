package docbuilder

import (
	"testing"

	"github.com/coolbeans/regula/pkg/types"
)

func TestFormatDollar(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{9999.99, "$9999.99"},
		{10000, "$10K"},
		{1500000, "$1500K"},
	}
	for _, c := range cases {
		if got := FormatDollar(c.amount); got != c.want {
			t.Errorf("FormatDollar(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func baseContext() *types.TribePacketContext {
	return &types.TribePacketContext{
		Tribe:   &types.Tribe{ID: "acoma", Name: "Pueblo of Acoma"},
		Variant: types.DefaultVariantConfigs()[types.VariantTribalInternal],
	}
}

func TestBuildSectionsRestrictsToIncludedSections(t *testing.T) {
	ctx := baseContext()
	ctx.Variant = types.DefaultVariantConfigs()[types.VariantCongressional]
	sections := BuildSections(ctx)
	for _, s := range sections {
		if s.Name == "strategy" || s.Name == "talking_points" || s.Name == "timing" || s.Name == "hazard_profile" || s.Name == "funding_history" {
			t.Errorf("did not expect section %s to be included in the congressional variant", s.Name)
		}
	}
}

func TestHazardSectionSuppressedWhenAbsent(t *testing.T) {
	ctx := baseContext()
	sections := BuildSections(ctx)
	sec := findSection(t, sections, "hazard_profile")
	if !sec.Suppressed {
		t.Error("expected hazard section to be suppressed when no hazard profile is attached")
	}
}

func TestHazardSectionPopulatedWithTopHazards(t *testing.T) {
	ctx := baseContext()
	ctx.Hazard = &types.HazardProfile{
		TopHazards: []types.TopHazard{
			{Code: types.HazardWildfire, Rating: "Very High", EAL: 20000},
		},
	}
	sections := BuildSections(ctx)
	sec := findSection(t, sections, "hazard_profile")
	if sec.Suppressed {
		t.Fatal("did not expect hazard section to be suppressed")
	}
	if sec.Table == nil || len(sec.Table.Rows) != 1 {
		t.Fatalf("expected one hazard row, got %+v", sec.Table)
	}
	if sec.Table.Rows[0][2] != "$20K" {
		t.Errorf("hazard EAL column = %s, want $20K", sec.Table.Rows[0][2])
	}
}

func TestFundingHistorySectionSuppressedWhenNoAwardsCache(t *testing.T) {
	ctx := baseContext()
	sections := BuildSections(ctx)
	sec := findSection(t, sections, "funding_history")
	if !sec.Suppressed {
		t.Error("expected funding history section to be suppressed with no award cache")
	}
}

func TestFundingHistorySectionFirstTimeApplicantText(t *testing.T) {
	ctx := baseContext()
	ctx.Awards = &types.TribeAwardCache{FirstTimeApplicant: true}
	sections := BuildSections(ctx)
	sec := findSection(t, sections, "funding_history")
	if sec.Suppressed {
		t.Error("a first-time applicant is not a data gap and should not be suppressed")
	}
	if len(sec.Paragraphs) == 0 || !containsSubstr(sec.Paragraphs[0], "first-time applicant") {
		t.Errorf("expected first-time-applicant narrative, got %v", sec.Paragraphs)
	}
	if sec.Table != nil {
		t.Error("did not expect a funding table for a first-time applicant")
	}
}

func TestFundingHistorySectionWithAwards(t *testing.T) {
	ctx := baseContext()
	ctx.Awards = &types.TribeAwardCache{
		TotalObligation: 50000,
		Trend:           types.TrendIncreasing,
		ProgramSummary: map[string]*types.ProgramSummary{
			"93.123": {Count: 2, Total: 50000},
		},
	}
	sections := BuildSections(ctx)
	sec := findSection(t, sections, "funding_history")
	if sec.Table == nil || len(sec.Table.Rows) != 1 {
		t.Fatalf("expected one program row, got %+v", sec.Table)
	}
	if sec.Table.Rows[0][0] != "93.123" {
		t.Errorf("program row = %v, want program number 93.123 first", sec.Table.Rows[0])
	}
}

func TestDelegationSectionSuppressedWhenEmpty(t *testing.T) {
	ctx := baseContext()
	sections := BuildSections(ctx)
	sec := findSection(t, sections, "delegation")
	if !sec.Suppressed {
		t.Error("expected delegation section to be suppressed with no legislators")
	}
}

func TestBillsSectionSuppressedWhenEmpty(t *testing.T) {
	ctx := baseContext()
	sections := BuildSections(ctx)
	sec := findSection(t, sections, "bills")
	if !sec.Suppressed {
		t.Error("expected bills section to be suppressed with no bills")
	}
}

func TestOverviewSectionNamesRegion(t *testing.T) {
	ctx := baseContext()
	ctx.Variant = types.DefaultVariantConfigs()[types.VariantRegionalInternal]
	ctx.RegionID = "southwest"
	ctx.RegionTribes = []*types.Tribe{{ID: "acoma"}, {ID: "zuni"}}
	sections := BuildSections(ctx)
	sec := findSection(t, sections, "overview")
	if !containsSubstr(sec.Paragraphs[0], "southwest region") {
		t.Errorf("expected overview to name the region, got %q", sec.Paragraphs[0])
	}
}

func findSection(t *testing.T, sections []Section, name string) Section {
	t.Helper()
	for _, s := range sections {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("section %s not found among %d sections", name, len(sections))
	return Section{}
}

func containsSubstr(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
