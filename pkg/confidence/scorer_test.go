package confidence

import (
	"testing"
	"time"

	"github.com/coolbeans/regula/pkg/types"
)

func TestScoreAbsentDomainIsLow(t *testing.T) {
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	signals := []Signal{{Domain: types.DomainFunding, Present: false, AsOf: asOf}}
	result := Score(signals, nil)
	if result.Domains[types.DomainFunding] != types.ConfidenceLow {
		t.Errorf("absent domain = %s, want LOW", result.Domains[types.DomainFunding])
	}
}

func TestScoreFreshFederalDataIsHigh(t *testing.T) {
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	signals := []Signal{{
		Domain: types.DomainHazard, Present: true,
		SourceWeight: float64(WeightFederalAuthoritative),
		GeneratedAt:  asOf, AsOf: asOf,
	}}
	result := Score(signals, nil)
	if result.Domains[types.DomainHazard] != types.ConfidenceHigh {
		t.Errorf("fresh federal data = %s, want HIGH", result.Domains[types.DomainHazard])
	}
}

func TestScoreDecaysWithAge(t *testing.T) {
	generated := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := generated.Add(time.Duration(DecayHalfLifeDays*24) * time.Hour)
	signals := []Signal{{
		Domain: types.DomainIdentity, Present: true,
		SourceWeight: float64(WeightFederalAuthoritative),
		GeneratedAt:  generated, AsOf: asOf,
	}}
	result := Score(signals, nil)
	got := domainScore(signals[0])
	want := float64(WeightFederalAuthoritative) * 0.5
	if got < want-0.001 || got > want+0.001 {
		t.Errorf("domainScore after one half-life = %v, want ~%v", got, want)
	}
	if result.Domains[types.DomainIdentity] != types.ConfidenceLow {
		t.Errorf("after one half-life, level = %s, want LOW (0.475)", result.Domains[types.DomainIdentity])
	}
}

func TestScoreSectionComposite(t *testing.T) {
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	signals := []Signal{
		{Domain: types.DomainFunding, Present: true, SourceWeight: float64(WeightFederalAuthoritative), GeneratedAt: asOf, AsOf: asOf},
		{Domain: types.DomainHazard, Present: false, AsOf: asOf},
	}
	sections := map[string][]SectionWeight{
		"funding_history": {{Domain: types.DomainFunding, Weight: 1.0}},
		"hazard_profile":  {{Domain: types.DomainHazard, Weight: 1.0}},
	}
	result := Score(signals, sections)
	if result.Section["funding_history"] != types.ConfidenceHigh {
		t.Errorf("funding_history section = %s, want HIGH", result.Section["funding_history"])
	}
	if result.Section["hazard_profile"] != types.ConfidenceLow {
		t.Errorf("hazard_profile section = %s, want LOW", result.Section["hazard_profile"])
	}
}
