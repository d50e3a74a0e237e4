package awards

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/coolbeans/regula/internal/fiscalyear"
	"github.com/coolbeans/regula/pkg/errtax"
	"github.com/coolbeans/regula/pkg/match"
	"github.com/coolbeans/regula/pkg/registry"
	"github.com/coolbeans/regula/pkg/types"
)

// MaxPages is the per-(program,year) pagination cap (spec §4.3): beyond
// this many pages the populator stops and records a truncation warning
// rather than paginating indefinitely against a misbehaving source.
const MaxPages = 100

// RecordsPerPage is assumed fixed by the source for the purpose of the
// 10,000-record truncation note; the real cap is MaxPages regardless of
// page size.
const RecordsPerPage = 100

// ProgramYear identifies one (program_number, fiscal_year) fetch unit.
type ProgramYear struct {
	ProgramNumber string
	FiscalYear    int
}

// SliceOutcome records whether a single (program, year) fetch completed.
type SliceOutcome struct {
	ProgramYear ProgramYear
	Complete    bool
	Truncated   bool
	Err         error
}

// Populator fetches, dedupes, matches, and groups award records into
// per-Tribe caches.
type Populator struct {
	source  AwardSource
	matcher *match.Matcher
	reg     *registry.Registry
	breaker *circuitBreaker
}

// New constructs a Populator.
func New(source AwardSource, matcher *match.Matcher, reg *registry.Registry) *Populator {
	return &Populator{source: source, matcher: matcher, reg: reg, breaker: newCircuitBreaker()}
}

// Result is the full output of a populator run: per-Tribe caches plus the
// coverage artifacts spec §4.3 step 5 requires.
type Result struct {
	Caches     map[string]*types.TribeAwardCache
	Consortium types.ConsortiumSummary
	Unmatched  []types.UnmatchedRecipient
	Slices     []SliceOutcome
}

// Run fetches every (program, year) pair, then dedupes, matches, groups,
// and reports per spec §4.3.
func (p *Populator) Run(ctx context.Context, pairs []ProgramYear, asOf time.Time) (*Result, error) {
	var all []types.AwardRecord
	var slices []SliceOutcome

	for _, pair := range pairs {
		records, truncated, err := p.fetchPair(ctx, pair)
		outcome := SliceOutcome{ProgramYear: pair, Truncated: truncated}
		if err != nil {
			outcome.Complete = false
			outcome.Err = err
			slices = append(slices, outcome)
			continue
		}
		outcome.Complete = true
		slices = append(slices, outcome)
		for _, r := range records {
			r.FiscalYear = pair.FiscalYear
			all = append(all, r)
		}
	}

	deduped := dedupe(all)

	caches, consortium, unmatched := p.matchAndGroup(deduped, asOf)

	return &Result{
		Caches:     caches,
		Consortium: consortium,
		Unmatched:  unmatched,
		Slices:     slices,
	}, nil
}

// fetchPair issues the paginated request for one (program, year), honoring
// the circuit breaker and the per-request page cap.
func (p *Populator) fetchPair(ctx context.Context, pair ProgramYear) ([]types.AwardRecord, bool, error) {
	if p.breaker.IsOpen() && !p.breaker.Allow() {
		return nil, false, errtax.Transport(fmt.Sprintf("%s/%d", pair.ProgramNumber, pair.FiscalYear),
			fmt.Errorf("circuit breaker open"))
	}

	var out []types.AwardRecord
	page := 0
	for {
		if page >= MaxPages {
			return out, true, nil
		}
		if !p.breaker.Allow() {
			return out, false, errtax.Transport(fmt.Sprintf("%s/%d", pair.ProgramNumber, pair.FiscalYear),
				fmt.Errorf("circuit breaker open"))
		}

		result, err := p.source.FetchPage(ctx, pair.ProgramNumber, pair.FiscalYear, page)
		if err != nil {
			p.breaker.RecordFailure()
			return out, false, errtax.Transport(fmt.Sprintf("%s/%d page %d", pair.ProgramNumber, pair.FiscalYear, page), err)
		}
		p.breaker.RecordSuccess()

		for _, raw := range result.Records {
			out = append(out, types.AwardRecord{
				AwardID:        raw.AwardID,
				RecipientName:  raw.RecipientName,
				RecipientState: raw.RecipientState,
				Obligation:     raw.Obligation,
				ProgramNumber:  raw.ProgramNumber,
				StartDate:      raw.StartDate,
				Description:    raw.Description,
				AwardingAgency: raw.AwardingAgency,
			})
		}

		if !result.HasMore {
			return out, false, nil
		}
		page++
	}
}

// dedupe removes duplicate award records by DedupeKey, keeping the first
// occurrence encountered.
func dedupe(records []types.AwardRecord) []types.AwardRecord {
	seen := make(map[string]bool, len(records))
	out := make([]types.AwardRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		key := r.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, *r)
	}
	return out
}

// matchAndGroup resolves every record to a tribe_id, groups by Tribe,
// builds the consortium summary and the top-20 unmatched-by-obligation
// report, and emits zero-award caches for every registered Tribe that
// received no matches.
func (p *Populator) matchAndGroup(records []types.AwardRecord, asOf time.Time) (map[string]*types.TribeAwardCache, types.ConsortiumSummary, []types.UnmatchedRecipient) {
	byTribe := make(map[string][]*types.AwardRecord)
	unmatchedTotals := make(map[string]*types.UnmatchedRecipient)
	consortium := types.ConsortiumSummary{}

	for i := range records {
		r := &records[i]
		id, trace := p.matcher.Match(r.RecipientName, r.RecipientState)
		switch trace.Tier {
		case match.TierConsortium:
			consortium.Count++
			consortium.TotalObligation += r.Obligation
			consortium.Recipients = append(consortium.Recipients, r.RecipientName)
			continue
		}
		if id == "" {
			key := strings.ToLower(strings.TrimSpace(r.RecipientName))
			u, ok := unmatchedTotals[key]
			if !ok {
				u = &types.UnmatchedRecipient{RecipientName: r.RecipientName, State: r.RecipientState}
				unmatchedTotals[key] = u
			}
			u.TotalObligation += r.Obligation
			u.AwardCount++
			continue
		}
		byTribe[id] = append(byTribe[id], r)
	}

	caches := make(map[string]*types.TribeAwardCache, p.reg.Len())
	for _, t := range p.reg.All() {
		caches[t.ID] = buildCache(t, byTribe[t.ID], asOf)
	}

	unmatched := make([]types.UnmatchedRecipient, 0, len(unmatchedTotals))
	for _, u := range unmatchedTotals {
		unmatched = append(unmatched, *u)
	}
	sort.Slice(unmatched, func(i, j int) bool {
		if unmatched[i].TotalObligation != unmatched[j].TotalObligation {
			return unmatched[i].TotalObligation > unmatched[j].TotalObligation
		}
		return unmatched[i].RecipientName < unmatched[j].RecipientName
	})
	if len(unmatched) > 20 {
		unmatched = unmatched[:20]
	}

	return caches, consortium, unmatched
}

// buildCache assembles one Tribe's award cache: totals, per-program
// summaries, per-year obligations, and a trend classification. A Tribe
// with no awards at all receives a first-time-applicant cache rather than
// a placeholder record (spec §4.3 step 4).
func buildCache(t *types.Tribe, records []*types.AwardRecord, asOf time.Time) *types.TribeAwardCache {
	fy := fiscalyear.Current(asOf)
	window := fiscalyear.Window(fy, 5)

	cache := &types.TribeAwardCache{
		TribeID:            t.ID,
		TribeName:          t.Name,
		FiscalYearStart:    window[0],
		FiscalYearEnd:      window[len(window)-1],
		Awards:             make([]*types.AwardRecord, 0, len(records)),
		ProgramSummary:     make(map[string]*types.ProgramSummary),
		PerYearObligations: make(map[string]float64),
		GeneratedAt:        asOf.UTC().Format(time.RFC3339),
	}

	if len(records) == 0 {
		cache.FirstTimeApplicant = true
		cache.Trend = types.TrendNew
		return cache
	}

	for _, r := range records {
		cache.Awards = append(cache.Awards, r)
		cache.TotalObligation += r.Obligation
		cache.Count++

		ps, ok := cache.ProgramSummary[r.ProgramNumber]
		if !ok {
			ps = &types.ProgramSummary{}
			cache.ProgramSummary[r.ProgramNumber] = ps
		}
		ps.Count++
		ps.Total += r.Obligation

		yearKey := fmt.Sprintf("%d", r.FiscalYear)
		cache.PerYearObligations[yearKey] += r.Obligation
	}

	cache.Trend = classifyTrend(cache.PerYearObligations, window)
	return cache
}

// classifyTrend compares the most recent two fiscal years with recorded
// obligations in the window to label the Tribe's trajectory.
func classifyTrend(perYear map[string]float64, window []int) types.Trend {
	var years []int
	for _, fy := range window {
		if _, ok := perYear[fmt.Sprintf("%d", fy)]; ok {
			years = append(years, fy)
		}
	}
	if len(years) == 0 {
		return types.TrendNone
	}
	if len(years) == 1 {
		return types.TrendNew
	}

	latest := perYear[fmt.Sprintf("%d", years[len(years)-1])]
	previous := perYear[fmt.Sprintf("%d", years[len(years)-2])]

	switch {
	case latest > previous:
		return types.TrendIncreasing
	case latest < previous:
		return types.TrendDecreasing
	default:
		return types.TrendStable
	}
}
