// Package relevance selects the 8-12 programs that will appear in a
// Tribe's packet. Grounded directly on the teacher's
// pkg/simulate.ProvisionMatcher.Match: weighted per-candidate scoring,
// descending sort, deterministic lexicographic tiebreak.
package relevance

import (
	"sort"

	"github.com/coolbeans/regula/pkg/types"
)

// Default component weights for the relevance score (spec §4.6 step 1).
// Not individually mandated by the spec beyond "weighted sum"; chosen so
// hazard and award-history alignment — the two signals most directly tied
// to a Tribe's actual circumstances — dominate the fixed program weight.
const (
	weightHazardAlignment    = 0.35
	weightEcoregionAlignment = 0.15
	weightAwardPresence      = 0.25
	weightCIStatusModifier   = 0.15
	weightProgramBase        = 0.10
)

// statusModifier scores a program's confidence-intelligence status: a
// program flagged as AT_RISK or worse is still relevant (arguably more
// so, for talking points) but a TERMINATED program contributes nothing:
// it earns neither this modifier nor the fixed program base weight.
var statusModifier = map[types.ProgramStatus]float64{
	types.StatusSecure:              1.0,
	types.StatusStable:              0.9,
	types.StatusStableButVulnerable: 0.8,
	types.StatusAtRisk:              0.9,
	types.StatusUncertain:           0.6,
	types.StatusFlagged:             0.7,
	types.StatusTerminated:          0.0,
}

// Candidate bundles a Program with the per-Tribe signals needed to score
// it: whether its tagged hazards appear in the Tribe's top hazards,
// whether its ecoregion tags match the Tribe's ecoregion, and whether the
// Tribe has award history under its program number.
type Candidate struct {
	Program        *types.Program
	HazardOverlap  float64 // fraction of program's hazard tags present in the Tribe's top hazards
	EcoregionMatch bool
	HasAwardHistory bool
}

// Scored is one candidate with its computed relevance score.
type Scored struct {
	Program *types.Program
	Score   float64
}

// score computes one candidate's weighted relevance score (spec §4.6
// step 1).
func score(c Candidate) float64 {
	var s float64
	s += weightHazardAlignment * c.HazardOverlap
	if c.EcoregionMatch {
		s += weightEcoregionAlignment
	}
	if c.HasAwardHistory {
		s += weightAwardPresence
	}
	s += weightCIStatusModifier * statusModifier[c.Program.Status]
	if c.Program.Status != types.StatusTerminated {
		s += weightProgramBase
	}
	return s
}

// Select scores every candidate, sorts descending with a lexicographic
// program-id tiebreak, and returns the top N clamped to [min, max]. If
// fewer than min candidates have non-zero score, every non-zero candidate
// is returned without padding (spec §4.6 steps 2-4).
func Select(candidates []Candidate, min, max int) []Scored {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		sc := score(c)
		if sc <= 0 {
			continue
		}
		scored = append(scored, Scored{Program: c.Program, Score: sc})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Program.ID < scored[j].Program.ID
	})

	if len(scored) <= min {
		return scored
	}
	if len(scored) > max {
		return scored[:max]
	}
	return scored
}
