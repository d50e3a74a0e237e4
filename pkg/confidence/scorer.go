// Package confidence computes the per-domain and per-section confidence
// badges attached to a packet. Grounded on the teacher's
// pkg/validate.evaluateMetrics (metric-value-vs-threshold bucketing),
// adapted from pass/warn/fail to HIGH/MEDIUM/LOW.
package confidence

import (
	"math"
	"time"

	"github.com/coolbeans/regula/pkg/types"
)

// DecayHalfLifeDays is the freshness-decay half-life in days (spec §4.7).
const DecayHalfLifeDays = 69.0

// SourceWeight is the authoritativeness weight for one data domain's
// upstream source (spec §4.7).
type SourceWeight float64

const (
	WeightFederalAuthoritative SourceWeight = 0.95
	WeightGeographicAuthoritative SourceWeight = 0.85
	WeightCachedProcessed     SourceWeight = 0.70
	WeightInferred            SourceWeight = 0.50
)

// Signal is one domain's raw confidence inputs.
type Signal struct {
	Domain      types.ConfidenceDomain
	Present     bool
	SourceWeight float64
	GeneratedAt time.Time
	AsOf        time.Time
}

// domainScore computes present × source_weight × freshness_decay for one
// domain (spec §4.7).
func domainScore(s Signal) float64 {
	if !s.Present {
		return 0
	}
	ageDays := s.AsOf.Sub(s.GeneratedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	decay := math.Pow(0.5, ageDays/DecayHalfLifeDays)
	return s.SourceWeight * decay
}

// SectionWeight pairs a domain with its contribution weight to a
// section's composite score; weights across a section's domains need not
// sum to 1 but conventionally do.
type SectionWeight struct {
	Domain types.ConfidenceDomain
	Weight float64
}

// Score computes every domain's numeric confidence and level, plus the
// per-section composite level derived from the given section weight
// definitions (spec §4.7).
func Score(signals []Signal, sections map[string][]SectionWeight) *types.ConfidenceScore {
	domainNumeric := make(map[types.ConfidenceDomain]float64, len(signals))
	result := &types.ConfidenceScore{
		Domains: make(map[types.ConfidenceDomain]types.ConfidenceLevel, len(signals)),
		Section: make(map[string]types.ConfidenceLevel, len(sections)),
	}

	for _, s := range signals {
		v := domainScore(s)
		domainNumeric[s.Domain] = v
		result.Domains[s.Domain] = types.LevelForScore(v)
	}

	for section, weights := range sections {
		var composite float64
		for _, w := range weights {
			composite += w.Weight * domainNumeric[w.Domain]
		}
		result.Section[section] = types.LevelForScore(composite)
	}

	return result
}
