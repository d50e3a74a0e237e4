package qualitygate

import (
	"testing"

	"github.com/coolbeans/regula/pkg/types"
)

func congressionalVariant() *types.VariantConfig {
	return types.DefaultVariantConfigs()[types.VariantCongressional]
}

func internalVariant() *types.VariantConfig {
	return types.DefaultVariantConfigs()[types.VariantTribalInternal]
}

func TestAirGapSweepCatchesPlainTerm(t *testing.T) {
	doc := &RenderedDocument{Text: "this document discusses internal strategy"}
	result := AirGapSweep(doc, []string{"strategy"})
	if result.Pass {
		t.Error("expected a forbidden term to fail the sweep")
	}
}

func TestAirGapSweepCatchesDottedAbbreviation(t *testing.T) {
	doc := &RenderedDocument{Text: "authorized under U.S.C. title 25"}
	result := AirGapSweep(doc, []string{"USC"})
	if result.Pass {
		t.Error("expected the dotted-abbreviation variant to match")
	}
}

func TestAirGapSweepPassesCleanText(t *testing.T) {
	doc := &RenderedDocument{Text: "program overview for fiscal year 2026"}
	result := AirGapSweep(doc, []string{"strategy", "talking points"})
	if !result.Pass {
		t.Errorf("expected clean text to pass, got %s", result.Detail)
	}
}

func TestPlaceholderDetection(t *testing.T) {
	cases := []struct {
		text string
		pass bool
	}{
		{"final figures pending TODO", false},
		{"[insert county name]", false},
		{"award total is TBD", false},
		{"all figures are final", true},
	}
	for _, c := range cases {
		doc := &RenderedDocument{Text: c.text}
		got := PlaceholderDetection(doc)
		if got.Pass != c.pass {
			t.Errorf("PlaceholderDetection(%q).Pass = %v, want %v", c.text, got.Pass, c.pass)
		}
	}
}

func TestAudienceLeakageNotApplicableForInternal(t *testing.T) {
	doc := &RenderedDocument{Text: "our strategy is to push for a markup vote"}
	result := AudienceLeakage(doc, internalVariant(), []string{"markup vote"})
	if !result.Pass {
		t.Error("expected audience leakage check to be inapplicable for a non-congressional variant")
	}
}

func TestAudienceLeakageCatchesInternalPhrase(t *testing.T) {
	doc := &RenderedDocument{Text: "recommend we hold the line until markup"}
	result := AudienceLeakage(doc, congressionalVariant(), []string{"hold the line"})
	if result.Pass {
		t.Error("expected an internal phrase to fail audience leakage")
	}
}

func TestAudienceLeakageCatchesDisallowedSectionCategory(t *testing.T) {
	doc := &RenderedDocument{
		Text: "clean narrative",
		SectionsByName: map[string]RenderedSection{
			"strategy": {Category: types.CategoryStrategy},
		},
	}
	result := AudienceLeakage(doc, congressionalVariant(), nil)
	if result.Pass {
		t.Error("expected a strategy section to fail audience leakage for the congressional variant")
	}
}

func TestAudienceLeakageIgnoresSuppressedSection(t *testing.T) {
	doc := &RenderedDocument{
		Text: "clean narrative",
		SectionsByName: map[string]RenderedSection{
			"strategy": {Category: types.CategoryStrategy, Suppressed: true},
		},
	}
	result := AudienceLeakage(doc, congressionalVariant(), nil)
	if !result.Pass {
		t.Errorf("expected a suppressed section to be ignored, got %s", result.Detail)
	}
}

func TestPageBudgetCheck(t *testing.T) {
	variant := congressionalVariant()
	if !PageBudgetCheck(&RenderedDocument{PageCount: 3}, variant).Pass {
		t.Error("expected 3 pages to be within the congressional budget (2-4)")
	}
	if PageBudgetCheck(&RenderedDocument{PageCount: 10}, variant).Pass {
		t.Error("expected 10 pages to exceed the congressional budget")
	}
}

func TestStructuralChecksMissingHeading(t *testing.T) {
	doc := &RenderedDocument{Headings: []string{"Overview"}}
	result := StructuralChecks(doc, []string{"Overview", "Programs"})
	if result.Pass {
		t.Error("expected a missing expected heading to fail")
	}
}

func TestStructuralChecksEmptyTable(t *testing.T) {
	doc := &RenderedDocument{
		SectionsByName: map[string]RenderedSection{
			"programs": {HasTable: true, TableRows: 0},
		},
	}
	result := StructuralChecks(doc, nil)
	if result.Pass {
		t.Error("expected a zero-row table to fail structural checks")
	}
}

func TestStructuralChecksSuppressedTableIgnored(t *testing.T) {
	doc := &RenderedDocument{
		SectionsByName: map[string]RenderedSection{
			"programs": {HasTable: true, TableRows: 0, Suppressed: true},
		},
	}
	result := StructuralChecks(doc, nil)
	if !result.Pass {
		t.Errorf("expected a suppressed empty table to be ignored, got %s", result.Detail)
	}
}

func TestRunAutomatedChecksOrder(t *testing.T) {
	doc := &RenderedDocument{Headings: []string{"Overview"}}
	results := RunAutomatedChecks(doc, internalVariant(), nil, nil, []string{"Overview"})
	wantOrder := []string{"air_gap_sweep", "placeholder_detection", "audience_leakage", "page_budget", "structural_checks"}
	if len(results) != len(wantOrder) {
		t.Fatalf("expected %d checks, got %d", len(wantOrder), len(results))
	}
	for i, name := range wantOrder {
		if results[i].Name != name {
			t.Errorf("check %d = %s, want %s", i, results[i].Name, name)
		}
	}
}
