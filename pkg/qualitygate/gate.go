package qualitygate

import (
	"sort"
	"time"

	"github.com/coolbeans/regula/pkg/types"
)

// MinCriticsCompleted is the minimum number of critics that must complete
// for the gate to evaluate at all (spec §4.10): fewer completing is
// itself a failure, not an auto-pass.
const MinCriticsCompleted = 3

// CriticReport is one critic's full submission: its identity, priority,
// and the critiques it raised.
type CriticReport struct {
	Name      string
	Priority  types.CriticPriority
	Completed bool
	Critiques []types.Critique
}

// resolveConflicts finds every pair of critiques on the same section with
// contradictory recommendations and resolves each by priority, ties
// broken by critic name (spec §4.10). A critique survives ("wins") if no
// critique on the same section from a strictly-lower-priority-number
// critic (or same-priority, lexicographically-earlier critic) disagrees
// with it.
func resolveConflicts(reports []CriticReport) (survivors []types.Critique, conflicts []types.ConflictEntry) {
	type attributed struct {
		types.Critique
		criticName string
	}

	bySection := make(map[string][]attributed)
	for _, r := range reports {
		if !r.Completed {
			continue
		}
		for _, c := range r.Critiques {
			bySection[c.Section] = append(bySection[c.Section], attributed{Critique: c, criticName: r.Name})
		}
	}

	var sections []string
	for s := range bySection {
		sections = append(sections, s)
	}
	sort.Strings(sections)

	for _, section := range sections {
		items := bySection[section]
		sort.Slice(items, func(i, j int) bool {
			if items[i].Priority != items[j].Priority {
				return items[i].Priority < items[j].Priority
			}
			return items[i].criticName < items[j].criticName
		})

		if len(items) == 1 {
			survivors = append(survivors, items[0].Critique)
			continue
		}

		winner := items[0]
		survivors = append(survivors, winner.Critique)
		contested := false
		for _, loser := range items[1:] {
			if loser.Recommendation == winner.Recommendation {
				if !contested {
					survivors = append(survivors, loser.Critique)
				}
				continue // not actually a conflict
			}
			contested = true
			conflicts = append(conflicts, types.ConflictEntry{
				Section:    section,
				Winner:     winner.criticName,
				Loser:      loser.criticName,
				WinnerPrio: winner.Priority,
				LoserPrio:  loser.Priority,
				TieBreak:   winner.Priority == loser.Priority,
			})
		}
	}

	return survivors, conflicts
}

// Run evaluates the automated checks and the critic panel, and emits the
// final QualityGateResult (spec §4.10). The gate passes only if every
// automated check passes, at least MinCriticsCompleted critics completed,
// and no surviving critique (after conflict resolution) is blocker-severity.
func Run(doc *RenderedDocument, variant *types.VariantConfig, forbiddenTerms, internalPhrases, expectedHeadings []string, critics []CriticReport, asOf time.Time) *types.QualityGateResult {
	checks := RunAutomatedChecks(doc, variant, forbiddenTerms, internalPhrases, expectedHeadings)

	result := &types.QualityGateResult{
		SeverityCounts: make(map[types.CriticSeverity]int),
		GeneratedAt:    asOf.UTC().Format(time.RFC3339),
	}

	pass := true
	for _, c := range checks {
		if !c.Pass {
			pass = false
			result.FailingChecks = append(result.FailingChecks, c.Name+": "+c.Detail)
		}
	}

	completed := 0
	for _, r := range critics {
		if r.Completed {
			completed++
		}
	}
	result.CriticsCompleted = completed
	if completed < MinCriticsCompleted {
		pass = false
		result.FailingChecks = append(result.FailingChecks, "fewer than minimum critics completed")
	}

	survivors, conflicts := resolveConflicts(critics)
	result.ConflictResolution = conflicts

	for _, c := range survivors {
		result.SeverityCounts[c.Severity]++
		if c.Severity == types.SeverityBlocker {
			pass = false
		}
	}

	result.Pass = pass
	return result
}
