package types

// DocumentVariant identifies one of the four audience-differentiated
// document types the packet orchestrator produces.
type DocumentVariant string

const (
	VariantTribalInternal      DocumentVariant = "A"
	VariantCongressional       DocumentVariant = "B"
	VariantRegionalInternal    DocumentVariant = "C"
	VariantRegionalCongress    DocumentVariant = "D"
)

// IsCongressional reports whether a variant is audience-restricted to
// congressional staff (subject to audience-leakage enforcement).
func (v DocumentVariant) IsCongressional() bool {
	return v == VariantCongressional || v == VariantRegionalCongress
}

// IsRegional reports whether a variant aggregates across a region's Tribe
// set rather than covering a single Tribe.
func (v DocumentVariant) IsRegional() bool {
	return v == VariantRegionalInternal || v == VariantRegionalCongress
}

// SectionCategory classifies a document section's content for audience
// permitted-content-category enforcement.
type SectionCategory string

const (
	CategoryProgramSummary  SectionCategory = "program_summary"
	CategoryDelegationFacts SectionCategory = "delegation_facts"
	CategoryBillStatus      SectionCategory = "bill_status"
	CategoryStrategy        SectionCategory = "strategy"
	CategoryTalkingPoints   SectionCategory = "talking_points"
	CategoryTiming          SectionCategory = "timing"
	CategoryPoliticalFrame  SectionCategory = "political_framing"
	CategoryHazardProfile   SectionCategory = "hazard_profile"
	CategoryFundingHistory  SectionCategory = "funding_history"
)

// PageBudget is the inclusive page-count range a variant's rendered
// document must fall within.
type PageBudget struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// InRange reports whether a page count satisfies the budget.
func (b PageBudget) InRange(pages int) bool {
	return pages >= b.Min && pages <= b.Max
}

// VariantConfig is the per-variant configuration artifact consumed by the
// document builder and quality gate (spec §3, §6).
type VariantConfig struct {
	Variant                   DocumentVariant   `json:"variant"`
	AudienceTag               string            `json:"audience_tag"`
	Confidential              bool              `json:"confidential"`
	IncludedSections          []string          `json:"included_sections"`
	PermittedContentCategories []SectionCategory `json:"permitted_content_categories"`
	PageBudget                PageBudget        `json:"page_budget"`
}

// DefaultVariantConfigs returns the four standard variant configurations.
// RunConfig carries no variant settings, so these are the configurations
// every run uses.
func DefaultVariantConfigs() map[DocumentVariant]*VariantConfig {
	return map[DocumentVariant]*VariantConfig{
		VariantTribalInternal: {
			Variant:     VariantTribalInternal,
			AudienceTag: "tribal-internal",
			Confidential: true,
			IncludedSections: []string{
				"overview", "programs", "hazard_profile", "funding_history",
				"delegation", "bills", "strategy", "talking_points", "timing",
			},
			PermittedContentCategories: []SectionCategory{
				CategoryProgramSummary, CategoryDelegationFacts, CategoryBillStatus,
				CategoryStrategy, CategoryTalkingPoints, CategoryTiming,
				CategoryPoliticalFrame, CategoryHazardProfile, CategoryFundingHistory,
			},
			PageBudget: PageBudget{Min: 3, Max: 8},
		},
		VariantCongressional: {
			Variant:     VariantCongressional,
			AudienceTag: "congressional",
			Confidential: false,
			IncludedSections: []string{
				"overview", "programs", "delegation", "bills",
			},
			PermittedContentCategories: []SectionCategory{
				CategoryProgramSummary, CategoryDelegationFacts, CategoryBillStatus,
			},
			PageBudget: PageBudget{Min: 2, Max: 4},
		},
		VariantRegionalInternal: {
			Variant:     VariantRegionalInternal,
			AudienceTag: "regional-internal",
			Confidential: true,
			IncludedSections: []string{
				"overview", "programs", "hazard_profile", "funding_history",
				"delegation", "bills", "strategy", "talking_points",
			},
			PermittedContentCategories: []SectionCategory{
				CategoryProgramSummary, CategoryDelegationFacts, CategoryBillStatus,
				CategoryStrategy, CategoryTalkingPoints, CategoryPoliticalFrame,
				CategoryHazardProfile, CategoryFundingHistory,
			},
			PageBudget: PageBudget{Min: 4, Max: 12},
		},
		VariantRegionalCongress: {
			Variant:     VariantRegionalCongress,
			AudienceTag: "regional-congressional",
			Confidential: false,
			IncludedSections: []string{
				"overview", "programs", "delegation", "bills",
			},
			PermittedContentCategories: []SectionCategory{
				CategoryProgramSummary, CategoryDelegationFacts, CategoryBillStatus,
			},
			PageBudget: PageBudget{Min: 3, Max: 6},
		},
	}
}
