package types

import "time"

// RunConfig holds user-configurable run-wide thresholds loaded from YAML,
// mirroring the teacher's pkg/validate.ValidationConfig shape.
type RunConfig struct {
	FuzzyMatchThreshold  float64            `yaml:"fuzzy_match_threshold"`
	SourceWeights        map[string]float64 `yaml:"source_weights"`
	DecayHalfLifeDays    float64            `yaml:"decay_half_life_days"`
	SliverFilterFraction float64            `yaml:"sliver_filter_fraction"`
	ForbiddenTermsPath   string             `yaml:"forbidden_terms_path"`
	InternalPhrasesPath  string             `yaml:"internal_phrases_path"`
	RelevanceMin         int                `yaml:"relevance_min"`
	RelevanceMax         int                `yaml:"relevance_max"`
	FiscalYearStartMonth time.Month         `yaml:"-"` // always October; not user-configurable
}

// DefaultRunConfig returns the specification's default thresholds.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		FuzzyMatchThreshold: 85.0,
		SourceWeights: map[string]float64{
			"federal_authoritative": 0.95,
			"geographic_authoritative": 0.85,
			"cached_processed": 0.70,
			"inferred": 0.50,
		},
		DecayHalfLifeDays:    69.0,
		SliverFilterFraction: 0.01,
		RelevanceMin:         8,
		RelevanceMax:         12,
		FiscalYearStartMonth: time.October,
	}
}

// TribeOutcome records what happened to a single Tribe during a run, for
// the coverage report's per-Tribe list.
type TribeOutcome struct {
	TribeID       string   `json:"tribe_id"`
	Variants      []string `json:"variants_written"`
	Failed        []string `json:"variants_failed,omitempty"`
	FailureReason string   `json:"failure_reason,omitempty"`
	Attempted     bool     `json:"attempted"`
}

// ConsortiumSummary aggregates awards attributed to inter-Tribal
// organizations rather than any single member Tribe.
type ConsortiumSummary struct {
	Count           int     `json:"count"`
	TotalObligation float64 `json:"total_obligation"`
	Recipients      []string `json:"recipients"`
}

// UnmatchedRecipient is one entry in the top-20 unmatched-by-obligation
// report.
type UnmatchedRecipient struct {
	RecipientName string  `json:"recipient_name"`
	State         string  `json:"state,omitempty"`
	TotalObligation float64 `json:"total_obligation"`
	AwardCount    int     `json:"award_count"`
}

// CoverageReport is the run-wide output artifact (spec §6).
type CoverageReport struct {
	TotalTribes        int                    `json:"total_tribes"`
	CountWithAwards     int                    `json:"count_with_awards"`
	CountWithHazards    int                    `json:"count_with_hazards"`
	CountWithDelegation int                    `json:"count_with_delegation"`
	WrittenCount        int                    `json:"written_count"`
	FailedCount         int                    `json:"failed_count"`
	FailuresByCheck     map[string]int         `json:"failures_by_check"`
	TopUnmatched        []UnmatchedRecipient   `json:"top_unmatched"`
	Consortium          ConsortiumSummary      `json:"consortium_summary"`
	PerTribe            []TribeOutcome         `json:"per_tribe"`
	GeneratedAt         string                 `json:"generated_at"`
}

// RunManifest is the record shape for which (tribe, variant) documents were
// written in a run, keyed by ManifestKey. No package in this module reads
// or writes a RunManifest, and `--force` does not change what is built:
// every requested (tribe, variant) pair is rebuilt on every run.
type RunManifest struct {
	Version   string                      `json:"version"`
	UpdatedAt time.Time                   `json:"updated_at"`
	Entries   map[string]*ManifestEntry   `json:"entries"`
}

// ManifestEntry records one written document's provenance.
type ManifestEntry struct {
	TribeID     string    `json:"tribe_id"`
	Variant     string    `json:"variant"`
	Path        string    `json:"path"`
	WrittenAt   time.Time `json:"written_at"`
	SourceHash  string    `json:"source_hash"`
}

// ManifestKey returns the manifest key for a (tribe, variant) pair.
func ManifestKey(tribeID string, variant DocumentVariant) string {
	return tribeID + "/" + string(variant)
}
