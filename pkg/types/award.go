package types

import "fmt"

// AwardRecord is a single federal award obligation as received from the
// upstream award-data collaborator (see pkg/awards for the populator that
// consumes these). FiscalYear is injected by the populator, not the source.
type AwardRecord struct {
	AwardID         string  `json:"award_id,omitempty"`
	RecipientName   string  `json:"recipient_name"`
	RecipientState  string  `json:"recipient_state,omitempty"`
	Obligation      float64 `json:"obligation"`
	FiscalYear      int     `json:"fiscal_year"`
	ProgramNumber   string  `json:"program_number"`
	StartDate       string  `json:"start_date,omitempty"`
	Description     string  `json:"description,omitempty"`
	AwardingAgency  string  `json:"awarding_agency,omitempty"`
}

// DedupeKey returns the award's stable identity for deduplication: the raw
// award id when present, or a composite fallback key when it is not.
func (a *AwardRecord) DedupeKey() string {
	if a.AwardID != "" {
		return a.AwardID
	}
	return fmt.Sprintf("%s|%s|%.6f|%s", a.RecipientName, a.ProgramNumber, a.Obligation, a.StartDate)
}

// Trend labels the coarse trajectory of a Tribe's award history across its
// fiscal-year window.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
	TrendNew        Trend = "new"
	TrendNone       Trend = "none"
)

// ProgramSummary rolls up award count and total obligation for one program
// number within a Tribe's cache.
type ProgramSummary struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// TribeAwardCache is the per-Tribe award artifact emitted by the award
// populator (spec §3, §4.3).
type TribeAwardCache struct {
	TribeID            string                     `json:"tribe_id"`
	TribeName          string                     `json:"tribe_name"`
	FiscalYearStart    int                        `json:"fiscal_year_start"`
	FiscalYearEnd      int                        `json:"fiscal_year_end"`
	Awards             []*AwardRecord             `json:"awards"`
	TotalObligation    float64                    `json:"total_obligation"`
	Count              int                        `json:"count"`
	ProgramSummary     map[string]*ProgramSummary `json:"program_summary"`
	PerYearObligations map[string]float64         `json:"per_year_obligations"`
	Trend              Trend                      `json:"trend"`
	FirstTimeApplicant bool                       `json:"first_time_applicant,omitempty"`
	GeneratedAt        string                     `json:"generated_at"`
}
