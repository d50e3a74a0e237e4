package awards

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coolbeans/regula/pkg/match"
	"github.com/coolbeans/regula/pkg/registry"
	"github.com/coolbeans/regula/pkg/types"
)

type fakeSource struct {
	pages map[string][]Page
	err   map[string]error
	calls int
}

func (f *fakeSource) key(programNumber string, fiscalYear, page int) string {
	return fmt.Sprintf("%s/%d/%d", programNumber, fiscalYear, page)
}

func (f *fakeSource) FetchPage(ctx context.Context, programNumber string, fiscalYear, page int) (Page, error) {
	f.calls++
	k := f.key(programNumber, fiscalYear, page)
	if err, ok := f.err[k]; ok {
		return Page{}, err
	}
	if p, ok := f.pages[k]; ok {
		return p[0], nil
	}
	return Page{}, nil
}

func testAwardsRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	body := `{"metadata": {}, "tribes": [
		{"tribe_id": "acoma", "name": "Pueblo of Acoma", "states": ["NM"]},
		{"tribe_id": "zuni", "name": "Pueblo of Zuni", "states": ["NM"]}
	]}`
	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	reg, err := registry.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return reg
}

func TestPopulatorRunGroupsAndClassifies(t *testing.T) {
	reg := testAwardsRegistry(t)
	m := match.New(reg, &types.AliasMap{}, 0)

	src := &fakeSource{pages: map[string][]Page{
		"p1/2026/0": {{Records: []RawAward{
			{AwardID: "a1", RecipientName: "Pueblo of Acoma", RecipientState: "NM", Obligation: 1000, ProgramNumber: "p1"},
			{AwardID: "a2", RecipientName: "Great Plains Inter Tribal Consortium", RecipientState: "", Obligation: 500, ProgramNumber: "p1"},
			{AwardID: "a3", RecipientName: "Unknown Recipient LLC", RecipientState: "TX", Obligation: 250, ProgramNumber: "p1"},
		}, HasMore: false}},
		"p1/2025/0": {{Records: []RawAward{
			{AwardID: "a4", RecipientName: "Pueblo of Acoma", RecipientState: "NM", Obligation: 400, ProgramNumber: "p1"},
		}, HasMore: false}},
	}}

	pop := New(src, m, reg)
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	result, err := pop.Run(context.Background(), []ProgramYear{{ProgramNumber: "p1", FiscalYear: 2026}, {ProgramNumber: "p1", FiscalYear: 2025}}, asOf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	acoma := result.Caches["acoma"]
	if acoma == nil || acoma.FirstTimeApplicant {
		t.Fatalf("expected acoma to have award history, got %+v", acoma)
	}
	if acoma.TotalObligation != 1400 {
		t.Errorf("acoma TotalObligation = %v, want 1400", acoma.TotalObligation)
	}
	if acoma.Trend != types.TrendIncreasing {
		t.Errorf("acoma Trend = %s, want increasing", acoma.Trend)
	}

	zuni := result.Caches["zuni"]
	if zuni == nil || !zuni.FirstTimeApplicant {
		t.Fatalf("expected zuni to be a first-time applicant, got %+v", zuni)
	}

	if result.Consortium.Count != 1 || result.Consortium.TotalObligation != 500 {
		t.Errorf("Consortium = %+v, want count=1 total=500", result.Consortium)
	}

	if len(result.Unmatched) != 1 || result.Unmatched[0].RecipientName != "Unknown Recipient LLC" {
		t.Errorf("Unmatched = %+v", result.Unmatched)
	}
}

func TestPopulatorDedupesByAwardID(t *testing.T) {
	reg := testAwardsRegistry(t)
	m := match.New(reg, &types.AliasMap{}, 0)

	src := &fakeSource{pages: map[string][]Page{
		"p1/2026/0": {{Records: []RawAward{
			{AwardID: "dup", RecipientName: "Pueblo of Acoma", RecipientState: "NM", Obligation: 100, ProgramNumber: "p1"},
			{AwardID: "dup", RecipientName: "Pueblo of Acoma", RecipientState: "NM", Obligation: 100, ProgramNumber: "p1"},
		}, HasMore: false}},
	}}

	pop := New(src, m, reg)
	result, err := pop.Run(context.Background(), []ProgramYear{{ProgramNumber: "p1", FiscalYear: 2026}}, time.Now())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Caches["acoma"].Count != 1 {
		t.Errorf("expected deduped award count 1, got %d", result.Caches["acoma"].Count)
	}
}

func TestPopulatorRecordsTransportFailure(t *testing.T) {
	reg := testAwardsRegistry(t)
	m := match.New(reg, &types.AliasMap{}, 0)

	src := &fakeSource{err: map[string]error{"p1/2026/0": errors.New("upstream down")}}
	pop := New(src, m, reg)

	result, err := pop.Run(context.Background(), []ProgramYear{{ProgramNumber: "p1", FiscalYear: 2026}}, time.Now())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Slices) != 1 || result.Slices[0].Complete {
		t.Errorf("Slices = %+v, want one incomplete slice", result.Slices)
	}
	if result.Slices[0].Err == nil {
		t.Error("expected the slice outcome to carry the transport error")
	}
}
