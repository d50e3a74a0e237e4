package docbuilder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coolbeans/regula/pkg/types"
)

// Table is a renderer-agnostic table model. It carries no column widths:
// renderTable splits one fixed total width evenly across the columns, so
// every table with the same number of columns gets the same widths.
type Table struct {
	Kind         string
	Headers      []string
	Rows         [][]string
	DollarColumn int // -1 if none; column index formatted as currency
}

// Section is one renderer-agnostic section of the built document.
type Section struct {
	Name             string
	Category         types.SectionCategory
	Level            HeadingLevel
	Paragraphs       []string
	Table            *Table
	ConfidenceBadge  types.ConfidenceLevel
	Suppressed       bool
}

// FormatDollar renders a dollar amount per spec §4.9: thousands rounding
// at or above $10,000, exact below.
func FormatDollar(amount float64) string {
	if amount >= 10000 {
		thousands := amount / 1000
		return fmt.Sprintf("$%.0fK", thousands)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// BuildSections assembles the ordered section list for one packet
// context, restricted to the sections the variant config includes, with
// a confidence badge attached to each from the context's per-section
// confidence map (spec §4.9: "all variants include confidence badges
// adjacent to each section header").
func BuildSections(ctx *types.TribePacketContext) []Section {
	included := make(map[string]bool, len(ctx.Variant.IncludedSections))
	for _, s := range ctx.Variant.IncludedSections {
		included[s] = true
	}

	var sections []Section
	add := func(s Section) {
		if !included[s.Name] {
			return
		}
		if ctx.Confidence != nil {
			s.ConfidenceBadge = ctx.Confidence.Section[s.Name]
		}
		sections = append(sections, s)
	}

	add(overviewSection(ctx))
	add(programsSection(ctx))
	add(hazardSection(ctx))
	add(fundingHistorySection(ctx))
	add(delegationSection(ctx))
	add(billsSection(ctx))
	add(strategySection(ctx))
	add(talkingPointsSection(ctx))
	add(timingSection(ctx))

	return sections
}

func overviewSection(ctx *types.TribePacketContext) Section {
	name := ctx.Tribe.Name
	if ctx.IsRegional() {
		name = fmt.Sprintf("%s region (%d Tribes)", ctx.RegionID, len(ctx.RegionTribes))
	}
	return Section{
		Name:       "overview",
		Category:   types.CategoryProgramSummary,
		Level:      LevelH1,
		Paragraphs: []string{fmt.Sprintf("Packet overview for %s.", name)},
	}
}

func programsSection(ctx *types.TribePacketContext) Section {
	rows := make([][]string, 0, len(ctx.SelectedPrograms))
	for _, p := range ctx.SelectedPrograms {
		rows = append(rows, []string{p.Name, p.Agency, string(p.Status)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return Section{
		Name:     "programs",
		Category: types.CategoryProgramSummary,
		Level:    LevelH1,
		Table: &Table{
			Kind:         "programs",
			Headers:      []string{"Program", "Agency", "Status"},
			Rows:         rows,
			DollarColumn: -1,
		},
	}
}

func hazardSection(ctx *types.TribePacketContext) Section {
	sec := Section{Name: "hazard_profile", Category: types.CategoryHazardProfile, Level: LevelH1}
	if ctx.Hazard == nil || len(ctx.Hazard.TopHazards) == 0 {
		sec.Suppressed = true
		sec.Paragraphs = []string{"No hazard data resolved for this area."}
		return sec
	}
	rows := make([][]string, 0, len(ctx.Hazard.TopHazards))
	for _, h := range ctx.Hazard.TopHazards {
		rows = append(rows, []string{string(h.Code), h.Rating, FormatDollar(h.EAL)})
	}
	sec.Table = &Table{
		Kind:         "hazards",
		Headers:      []string{"Hazard", "Rating", "Annual Loss"},
		Rows:         rows,
		DollarColumn: 2,
	}
	return sec
}

func fundingHistorySection(ctx *types.TribePacketContext) Section {
	sec := Section{Name: "funding_history", Category: types.CategoryFundingHistory, Level: LevelH1}
	if ctx.Awards == nil {
		sec.Suppressed = true
		sec.Paragraphs = []string{"No award history available."}
		return sec
	}
	if ctx.Awards.FirstTimeApplicant {
		sec.Paragraphs = []string{"This Tribe has no recorded award history in the lookback window; it is a first-time applicant context, not a data gap."}
		return sec
	}

	var programNames []string
	for p := range ctx.Awards.ProgramSummary {
		programNames = append(programNames, p)
	}
	sort.Strings(programNames)

	rows := make([][]string, 0, len(programNames))
	for _, p := range programNames {
		s := ctx.Awards.ProgramSummary[p]
		rows = append(rows, []string{p, fmt.Sprintf("%d", s.Count), FormatDollar(s.Total)})
	}
	sec.Paragraphs = []string{fmt.Sprintf("Total obligation: %s. Trend: %s.", FormatDollar(ctx.Awards.TotalObligation), ctx.Awards.Trend)}
	sec.Table = &Table{Kind: "funding", Headers: []string{"Program", "Awards", "Total"}, Rows: rows, DollarColumn: 2}
	return sec
}

func delegationSection(ctx *types.TribePacketContext) Section {
	sec := Section{Name: "delegation", Category: types.CategoryDelegationFacts, Level: LevelH1}
	if ctx.Delegation == nil || len(ctx.Delegation.Legislators) == 0 {
		sec.Suppressed = true
		sec.Paragraphs = []string{"No delegation resolved."}
		return sec
	}
	rows := make([][]string, 0, len(ctx.Delegation.Legislators))
	for _, l := range ctx.Delegation.Legislators {
		rows = append(rows, []string{l.Name, string(l.Chamber), l.Party})
	}
	sec.Table = &Table{Kind: "delegation", Headers: []string{"Legislator", "Chamber", "Party"}, Rows: rows, DollarColumn: -1}
	return sec
}

func billsSection(ctx *types.TribePacketContext) Section {
	sec := Section{Name: "bills", Category: types.CategoryBillStatus, Level: LevelH1}
	if len(ctx.Bills) == 0 {
		sec.Suppressed = true
		sec.Paragraphs = []string{"No relevant bill activity."}
		return sec
	}
	rows := make([][]string, 0, len(ctx.Bills))
	for _, b := range ctx.Bills {
		rows = append(rows, []string{b.ID, b.Title, b.Status})
	}
	sec.Table = &Table{Kind: "bills", Headers: []string{"Bill", "Title", "Status"}, Rows: rows, DollarColumn: -1}
	return sec
}

func strategySection(ctx *types.TribePacketContext) Section {
	return Section{
		Name:       "strategy",
		Category:   types.CategoryStrategy,
		Level:      LevelH1,
		Paragraphs: []string{strings.TrimSpace(fmt.Sprintf("Strategic posture for %s.", ctx.Tribe.Name))},
	}
}

func talkingPointsSection(ctx *types.TribePacketContext) Section {
	return Section{
		Name:       "talking_points",
		Category:   types.CategoryTalkingPoints,
		Level:      LevelH2,
		Paragraphs: []string{"Talking points for delegation outreach."},
	}
}

func timingSection(ctx *types.TribePacketContext) Section {
	return Section{
		Name:       "timing",
		Category:   types.CategoryTiming,
		Level:      LevelH2,
		Paragraphs: []string{"Timing considerations for upcoming legislative action."},
	}
}
