// Package match resolves a free-text award recipient name to a tribe_id.
// Grounded on the teacher's pkg/simulate.ProvisionMatcher: a tiered matcher
// that tries a cheap exact path first, falls back to a scored candidate
// search, and resolves ties deterministically.
package match

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/coolbeans/regula/pkg/registry"
	"github.com/coolbeans/regula/pkg/types"
)

// DefaultThreshold is the fuzzy token-sort-ratio cutoff below which a
// candidate is discarded (spec §4.2).
const DefaultThreshold = 85.0

// consortiumMarkers are case-insensitive substrings that identify an
// inter-Tribal organization rather than a single Tribe. Awards to these
// recipients are never matched to a single Tribe id.
var consortiumMarkers = []string{
	"inter tribal",
	"consortium",
	"council of",
	"intertribal",
}

// Tier identifies which stage of the algorithm resolved a match.
type Tier string

const (
	TierAlias      Tier = "alias"
	TierFuzzy      Tier = "fuzzy"
	TierConsortium Tier = "consortium"
	TierNone       Tier = "none"
)

// Trace is a diagnostic record of how a single lookup was resolved,
// mirroring the teacher's MatchResult/MatchSummary shape: callers that
// don't need it can discard it, but the populator uses it to build the
// top-20 unmatched and consortium reports.
type Trace struct {
	Input      string
	Normalized string
	Tier       Tier
	TribeID    string
	Score      float64
	Candidates int
}

// Matcher resolves recipient names against a Registry and AliasMap.
type Matcher struct {
	reg       *registry.Registry
	aliases   *types.AliasMap
	threshold float64
}

// New constructs a Matcher with the given fuzzy-match threshold.
func New(reg *registry.Registry, aliases *types.AliasMap, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{reg: reg, aliases: aliases, threshold: threshold}
}

// Normalize lowercases, collapses internal whitespace, and strips trailing
// punctuation, per spec §4.2 step 1.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	fields := strings.Fields(s)
	s = strings.Join(fields, " ")
	return strings.TrimRight(s, ".,;:!?")
}

// isConsortium reports whether the normalized name matches one of the
// known inter-Tribal organization markers.
func isConsortium(normalized string) bool {
	for _, m := range consortiumMarkers {
		if strings.Contains(normalized, m) {
			return true
		}
	}
	return false
}

// Match resolves recipientName (optionally scoped by recipientState) to a
// tribe_id, following the six-step algorithm of spec §4.2. Returns "" when
// no Tribe can be confidently identified.
func (m *Matcher) Match(recipientName, recipientState string) (string, *Trace) {
	trace := &Trace{Input: recipientName}

	if strings.TrimSpace(recipientName) == "" {
		trace.Tier = TierNone
		return "", trace
	}

	normalized := Normalize(recipientName)
	trace.Normalized = normalized

	if isConsortium(normalized) {
		trace.Tier = TierConsortium
		return "", trace
	}

	if id, ok := m.aliases.Lookup(normalized); ok {
		trace.Tier = TierAlias
		trace.TribeID = id
		trace.Score = 100
		return id, trace
	}

	id, score, candidates := m.fuzzyMatch(normalized, recipientState)
	trace.Candidates = candidates
	if id == "" {
		trace.Tier = TierNone
		return "", trace
	}
	trace.Tier = TierFuzzy
	trace.TribeID = id
	trace.Score = score
	return id, trace
}

type scoredTribe struct {
	tribe *types.Tribe
	score float64
}

// fuzzyMatch implements spec §4.2 steps 3-5: best-per-Tribe token-sort
// ratio, state-overlap filter, threshold filter, score-then-id tiebreak.
func (m *Matcher) fuzzyMatch(normalized, recipientState string) (string, float64, int) {
	stateFilter := recipientState != "" && types.IsValidStateCode(recipientState)

	var candidates []scoredTribe
	for _, t := range m.reg.All() {
		best := 0.0
		for _, name := range t.AllNames() {
			s := float64(fuzzy.TokenSortRatio(normalized, Normalize(name), true, true))
			if s > best {
				best = s
			}
		}
		if best < m.threshold {
			continue
		}
		if stateFilter && !t.HasState(recipientState) {
			continue
		}
		candidates = append(candidates, scoredTribe{tribe: t, score: best})
	}

	if len(candidates) == 0 {
		return "", 0, 0
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].tribe.ID < candidates[j].tribe.ID
	})

	winner := candidates[0]
	return winner.tribe.ID, winner.score, len(candidates)
}
