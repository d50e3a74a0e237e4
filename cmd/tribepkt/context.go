package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/coolbeans/regula/pkg/confidence"
	"github.com/coolbeans/regula/pkg/errtax"
	"github.com/coolbeans/regula/pkg/relevance"
	"github.com/coolbeans/regula/pkg/types"
)

// artifactContextBuilder assembles a TribePacketContext by reading the
// per-Tribe (or per-region) JSON artifacts the upstream batch collaborators
// (pkg/awards, pkg/hazard, a delegation resolver, a bill-intelligence feed)
// have already produced, and running the relevance and confidence packages
// against them. A missing artifact is a survivable coverage gap, not a
// build failure (spec §4.8 step 1): only a malformed file or an
// unexpected I/O failure aborts the unit.
type artifactContextBuilder struct {
	dataDir  string
	programs []*types.Program
	cfg      *types.RunConfig
}

// newArtifactContextBuilder loads the shared program inventory once and
// returns a builder that reads the remaining artifacts per call.
func newArtifactContextBuilder(dataDir string, cfg *types.RunConfig) (*artifactContextBuilder, error) {
	var programs []*types.Program
	path := filepath.Join(dataDir, "programs.json")
	if err := readJSON(path, &programs); err != nil {
		if os.IsNotExist(err) {
			return nil, errtax.DataIntegrity(path, fmt.Errorf("program inventory is required and was not found"))
		}
		return nil, err
	}
	return &artifactContextBuilder{dataDir: dataDir, programs: programs, cfg: cfg}, nil
}

// Build implements orchestrator.ContextBuilder.
func (b *artifactContextBuilder) Build(tribe *types.Tribe, variant *types.VariantConfig, regionID string, regionTribes []*types.Tribe) (*types.TribePacketContext, error) {
	key := regionID
	ecoregion := regionID
	if tribe != nil {
		key = tribe.ID
		ecoregion = tribe.Ecoregion
	}

	asOf := time.Now().UTC()

	awards, err := loadAwardCache(b.dataDir, key)
	if err != nil {
		return nil, err
	}
	hazard, err := loadHazardProfile(b.dataDir, key)
	if err != nil {
		return nil, err
	}
	delegation, err := loadDelegation(b.dataDir, key)
	if err != nil {
		return nil, err
	}
	bills, err := loadBills(b.dataDir, key)
	if err != nil {
		return nil, err
	}

	selected := selectPrograms(b.programs, hazard, awards, ecoregion, b.cfg)
	conf := scoreConfidence(awards, hazard, delegation, bills, asOf)

	return &types.TribePacketContext{
		Tribe:            tribe,
		Delegation:       delegation,
		SelectedPrograms: selected,
		Awards:           awards,
		Hazard:           hazard,
		Bills:            bills,
		Confidence:       conf,
		Variant:          variant,
		RegionID:         regionID,
		RegionTribes:     regionTribes,
		GeneratedAt:      asOf.Format(time.RFC3339),
	}, nil
}

// selectPrograms builds one relevance.Candidate per inventory program and
// delegates ranking to pkg/relevance (spec §4.6).
func selectPrograms(programs []*types.Program, hazard *types.HazardProfile, awards *types.TribeAwardCache, ecoregion string, cfg *types.RunConfig) []*types.Program {
	topHazards := make(map[types.HazardCode]bool)
	if hazard != nil {
		for _, h := range hazard.TopHazards {
			topHazards[h.Code] = true
		}
	}

	candidates := make([]relevance.Candidate, 0, len(programs))
	for _, p := range programs {
		candidates = append(candidates, relevance.Candidate{
			Program:         p,
			HazardOverlap:   hazardOverlap(p.HazardTags, topHazards),
			EcoregionMatch:  ecoregion != "" && containsString(p.EcoregionTags, ecoregion),
			HasAwardHistory: awards != nil && awards.ProgramSummary[p.ProgramNumber] != nil,
		})
	}

	min, max := cfg.RelevanceMin, cfg.RelevanceMax
	if min <= 0 || max <= 0 {
		def := types.DefaultRunConfig()
		min, max = def.RelevanceMin, def.RelevanceMax
	}

	scored := relevance.Select(candidates, min, max)
	out := make([]*types.Program, len(scored))
	for i, s := range scored {
		out[i] = s.Program
	}
	return out
}

func hazardOverlap(tags []types.HazardCode, top map[types.HazardCode]bool) float64 {
	if len(tags) == 0 {
		return 0
	}
	hits := 0
	for _, t := range tags {
		if top[t] {
			hits++
		}
	}
	return float64(hits) / float64(len(tags))
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// scoreConfidence builds one confidence.Signal per domain from whichever
// artifacts loaded, and weights the document sections docbuilder renders
// (spec §4.7).
func scoreConfidence(awards *types.TribeAwardCache, hazard *types.HazardProfile, delegation *types.TribeDelegation, bills []*types.Bill, asOf time.Time) *types.ConfidenceScore {
	signals := []confidence.Signal{
		{
			Domain:       types.DomainIdentity,
			Present:      true,
			SourceWeight: float64(confidence.WeightFederalAuthoritative),
			GeneratedAt:  asOf,
			AsOf:         asOf,
		},
		{
			Domain:       types.DomainDelegation,
			Present:      delegation != nil && len(delegation.Legislators) > 0,
			SourceWeight: float64(confidence.WeightFederalAuthoritative),
			GeneratedAt:  parseOrAsOf(delegationTimestamp(delegation), asOf),
			AsOf:         asOf,
		},
		{
			Domain:       types.DomainFunding,
			Present:      awards != nil,
			SourceWeight: float64(confidence.WeightCachedProcessed),
			GeneratedAt:  parseOrAsOf(awardTimestamp(awards), asOf),
			AsOf:         asOf,
		},
		{
			Domain:       types.DomainHazard,
			Present:      hazard != nil,
			SourceWeight: float64(confidence.WeightGeographicAuthoritative),
			GeneratedAt:  parseOrAsOf(hazardTimestamp(hazard), asOf),
			AsOf:         asOf,
		},
		{
			Domain:       types.DomainIntel,
			Present:      len(bills) > 0,
			SourceWeight: float64(confidence.WeightInferred),
			GeneratedAt:  asOf,
			AsOf:         asOf,
		},
	}

	sections := map[string][]confidence.SectionWeight{
		"overview":        {{Domain: types.DomainIdentity, Weight: 1.0}},
		"programs":        {{Domain: types.DomainFunding, Weight: 0.5}, {Domain: types.DomainIdentity, Weight: 0.5}},
		"hazard_profile":  {{Domain: types.DomainHazard, Weight: 1.0}},
		"funding_history": {{Domain: types.DomainFunding, Weight: 1.0}},
		"delegation":      {{Domain: types.DomainDelegation, Weight: 1.0}},
		"bills":           {{Domain: types.DomainIntel, Weight: 1.0}},
		"strategy":        {{Domain: types.DomainFunding, Weight: 0.3}, {Domain: types.DomainHazard, Weight: 0.3}, {Domain: types.DomainIntel, Weight: 0.4}},
		"talking_points":  {{Domain: types.DomainIntel, Weight: 0.5}, {Domain: types.DomainDelegation, Weight: 0.5}},
		"timing":          {{Domain: types.DomainIntel, Weight: 1.0}},
	}

	return confidence.Score(signals, sections)
}

func delegationTimestamp(d *types.TribeDelegation) string {
	if d == nil {
		return ""
	}
	return d.GeneratedAt
}

func awardTimestamp(a *types.TribeAwardCache) string {
	if a == nil {
		return ""
	}
	return a.GeneratedAt
}

func hazardTimestamp(h *types.HazardProfile) string {
	if h == nil {
		return ""
	}
	return h.GeneratedAt
}

func parseOrAsOf(ts string, asOf time.Time) time.Time {
	if ts == "" {
		return asOf
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return asOf
	}
	return t
}

func loadAwardCache(dataDir, key string) (*types.TribeAwardCache, error) {
	var out types.TribeAwardCache
	path := filepath.Join(dataDir, "awards", key+".json")
	if err := readJSON(path, &out); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func loadHazardProfile(dataDir, key string) (*types.HazardProfile, error) {
	var out types.HazardProfile
	path := filepath.Join(dataDir, "hazard", key+".json")
	if err := readJSON(path, &out); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func loadDelegation(dataDir, key string) (*types.TribeDelegation, error) {
	var out types.TribeDelegation
	path := filepath.Join(dataDir, "delegation", key+".json")
	if err := readJSON(path, &out); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func loadBills(dataDir, key string) ([]*types.Bill, error) {
	var out []*types.Bill
	path := filepath.Join(dataDir, "bills", key+".json")
	if err := readJSON(path, &out); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// readJSON reads and unmarshals path into v. The caller distinguishes a
// missing-file error (os.IsNotExist) from every other failure; the latter
// always carries an errtax category so callers can propagate it unwrapped.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return errtax.IO(path, fmt.Errorf("read artifact: %w", err))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errtax.DataIntegrity(path, fmt.Errorf("parse artifact JSON: %w", err))
	}
	return nil
}
