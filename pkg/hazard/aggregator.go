// Package hazard aggregates county-level National Risk Index data into
// per-Tribe hazard profiles, weighted by the area crosswalk. Grounded on
// the teacher's pkg/analysis (weighted-aggregation-over-rows pattern in
// matrix.go, percentile/rating derivation in impact.go).
package hazard

import (
	"sort"

	"github.com/coolbeans/regula/pkg/types"
)

// RelationalFallback maps a Tribal area id to an equal-weighted county
// list, used when no crosswalk entry exists for that area (spec §4.5
// step 1, tier 2).
type RelationalFallback map[string][]string

// StateFallback maps a Tribal area's (or Tribe's) state codes to an
// equal-weighted county list, the last-resort tier (spec §4.5 step 1,
// tier 3).
type StateFallback map[string][]string

// Inputs bundles everything the aggregator needs per run: the area
// crosswalk, the two fallback tiers, the county hazard rows keyed by
// FIPS, and the USFS wildfire override rows keyed by area id.
type Inputs struct {
	Crosswalk  *types.AreaWeightCrosswalk
	Relational RelationalFallback
	State      StateFallback
	Counties   map[string]*types.CountyHazardRow
	Wildfire   map[string][]types.WildfireOverrideRow
}

// countyWeight pairs a resolved county FIPS with its weight, regardless of
// which fallback tier produced it.
type countyWeight struct {
	fips   string
	weight float64
}

// resolveWeights implements spec §4.5 step 1's three-tier fallback for a
// single Tribe.
func resolveWeights(in *Inputs, areaID string, tribeStates []string) []countyWeight {
	if in.Crosswalk != nil {
		if entries, ok := in.Crosswalk.Crosswalk[areaID]; ok && len(entries) > 0 {
			out := make([]countyWeight, len(entries))
			for i, e := range entries {
				out[i] = countyWeight{fips: e.CountyFIPS, weight: e.Weight}
			}
			return out
		}
	}

	if counties, ok := in.Relational[areaID]; ok && len(counties) > 0 {
		return equalWeight(counties)
	}

	var stateCounties []string
	for _, s := range tribeStates {
		stateCounties = append(stateCounties, in.State[s]...)
	}
	if len(stateCounties) > 0 {
		return equalWeight(dedupeStrings(stateCounties))
	}

	return nil
}

func equalWeight(counties []string) []countyWeight {
	if len(counties) == 0 {
		return nil
	}
	w := 1.0 / float64(len(counties))
	out := make([]countyWeight, len(counties))
	for i, c := range counties {
		out[i] = countyWeight{fips: c, weight: w}
	}
	return out
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Aggregate builds a HazardProfile for one Tribe per spec §4.5.
func Aggregate(in *Inputs, areaID string, tribeID string, tribeStates []string, generatedAt string) *types.HazardProfile {
	weights := resolveWeights(in, areaID, tribeStates)

	profile := &types.HazardProfile{
		TribeID:     tribeID,
		AllHazards:  make(map[types.HazardCode]*types.HazardTypeRecord),
		GeneratedAt: generatedAt,
	}

	if len(weights) == 0 {
		return profile
	}

	rows := make([]*types.CountyHazardRow, 0, len(weights))
	rowWeights := make([]float64, 0, len(weights))
	for _, cw := range weights {
		row, ok := in.Counties[cw.fips]
		if !ok {
			continue
		}
		rows = append(rows, row)
		rowWeights = append(rowWeights, cw.weight)
	}
	if len(rows) == 0 {
		return profile
	}
	profile.CountiesAnalyzed = len(rows)
	profile.NRIVersion = rows[0].NRIVersion

	profile.Composite = aggregateComposite(rows, rowWeights)

	for _, code := range types.AllHazardCodes {
		rec := aggregateHazardType(rows, rowWeights, code)
		if rec == nil || rec.RiskScore == 0 {
			continue
		}
		profile.AllHazards[code] = rec
	}

	profile.TopHazards = topFive(profile.AllHazards)
	applyWildfireOverride(profile, in.Wildfire[areaID])

	return profile
}

// aggregateComposite computes the weighted-average composite percentile
// scores and re-derives their quintile ratings (spec §4.5 steps 3, 5).
func aggregateComposite(rows []*types.CountyHazardRow, weights []float64) types.CompositeNRI {
	var risk, eal, sovi, resl float64
	var totalWeight float64
	for i, row := range rows {
		w := weights[i]
		totalWeight += w
		risk += row.RiskScore * w
		eal += row.EALTotal * w // dollar-valued total: weighted sum (step 4)
		sovi += row.SoVIScore * w
		resl += row.RESLScore * w
	}
	if totalWeight > 0 {
		risk /= totalWeight
		sovi /= totalWeight
		resl /= totalWeight
		// eal intentionally left as the raw weighted sum, not divided by
		// totalWeight: a Tribe's EAL exposure is its area-share of each
		// county's dollar exposure, not an average of county exposures.
	}

	return types.CompositeNRI{
		RiskScore:  risk,
		EALTotal:   eal,
		EALRating:  types.RatingForScore(risk),
		SoVIScore:  sovi,
		SoVIRating: types.RatingForScore(sovi),
		RESLScore:  resl,
		RESLRating: types.RatingForScore(resl),
		RiskRating: types.RatingForScore(risk),
	}
}

// aggregateHazardType computes one hazard type's weighted-average risk
// score (percentile) and weighted-sum EAL (dollars) across the resolved
// counties (spec §4.5 steps 3, 4).
func aggregateHazardType(rows []*types.CountyHazardRow, weights []float64, code types.HazardCode) *types.HazardTypeRecord {
	var riskScore, eal, freq, totalWeight float64
	found := false
	for i, row := range rows {
		rec, ok := row.Hazards[code]
		if !ok {
			continue
		}
		found = true
		w := weights[i]
		totalWeight += w
		riskScore += rec.RiskScore * w
		eal += rec.EAL * w
		freq += rec.AnnualFrequency * w
	}
	if !found {
		return nil
	}
	if totalWeight > 0 {
		riskScore /= totalWeight
		freq /= totalWeight
	}
	return &types.HazardTypeRecord{
		RiskScore:       riskScore,
		Rating:          string(types.RatingForScore(riskScore)),
		EAL:             eal,
		AnnualFrequency: freq,
	}
}

// topFive extracts the five highest-weighted-risk-score hazards,
// descending, after dropping zero-score hazards (spec §4.5 steps 6-7).
func topFive(hazards map[types.HazardCode]*types.HazardTypeRecord) []types.TopHazard {
	entries := make([]types.TopHazard, 0, len(hazards))
	for code, rec := range hazards {
		entries = append(entries, types.TopHazard{
			Code:      code,
			RiskScore: rec.RiskScore,
			Rating:    rec.Rating,
			EAL:       rec.EAL,
			Source:    "NRI",
		})
	}
	sortTopHazards(entries)
	if len(entries) > 5 {
		entries = entries[:5]
	}
	return entries
}

func sortTopHazards(entries []types.TopHazard) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].RiskScore != entries[j].RiskScore {
			return entries[i].RiskScore > entries[j].RiskScore
		}
		return entries[i].Code < entries[j].Code
	})
}

// applyWildfireOverride replaces the WFIR entry's risk score with the
// USFS conditional-risk-to-structures value when both the override and
// the computed NRI score are positive, preserving the original under
// NRIWFIROriginal and re-sorting the top-5 (spec §4.5 step 8).
func applyWildfireOverride(profile *types.HazardProfile, overrides []types.WildfireOverrideRow) {
	if len(overrides) == 0 {
		return
	}
	var riskToHomes float64
	for _, o := range overrides {
		riskToHomes += o.RiskToHomes
	}
	if riskToHomes <= 0 {
		return
	}

	wfir, ok := profile.AllHazards[types.HazardWildfire]
	if !ok || wfir.RiskScore <= 0 {
		return
	}

	original := wfir.RiskScore
	wfir.RiskScore = riskToHomes
	wfir.Rating = string(types.RatingForScore(riskToHomes))

	found := false
	for i, th := range profile.TopHazards {
		if th.Code == types.HazardWildfire {
			orig := original
			profile.TopHazards[i].RiskScore = riskToHomes
			profile.TopHazards[i].Rating = wfir.Rating
			profile.TopHazards[i].Source = "USFS"
			profile.TopHazards[i].NRIWFIROriginal = &orig
			found = true
			break
		}
	}
	if !found {
		orig := original
		profile.TopHazards = append(profile.TopHazards, types.TopHazard{
			Code:            types.HazardWildfire,
			RiskScore:       riskToHomes,
			Rating:          wfir.Rating,
			EAL:             wfir.EAL,
			Source:          "USFS",
			NRIWFIROriginal: &orig,
		})
	}
	sortTopHazards(profile.TopHazards)
	if len(profile.TopHazards) > 5 {
		profile.TopHazards = profile.TopHazards[:5]
	}
}
