package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coolbeans/regula/pkg/errtax"
	"github.com/coolbeans/regula/pkg/types"
)

func writeArtifact(t *testing.T, dir, rel string, v any) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", rel, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func testPrograms() []*types.Program {
	return []*types.Program{
		{ID: "p-1", Name: "Program One", Agency: "HUD", ProgramNumber: "14.850", Status: types.StatusSecure, HazardTags: []types.HazardCode{types.HazardWildfire}},
		{ID: "p-2", Name: "Program Two", Agency: "FEMA", ProgramNumber: "97.039", Status: types.StatusTerminated},
	}
}

func TestArtifactContextBuilderMissingArtifactsAreSurvivable(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "programs.json", testPrograms())

	builder, err := newArtifactContextBuilder(dir, types.DefaultRunConfig())
	if err != nil {
		t.Fatalf("newArtifactContextBuilder: %v", err)
	}

	tribe := &types.Tribe{ID: "acoma", Name: "Pueblo of Acoma", States: []string{"NM"}}
	variant := types.DefaultVariantConfigs()[types.VariantTribalInternal]
	ctx, err := builder.Build(tribe, variant, "", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if ctx.Awards != nil || ctx.Hazard != nil || ctx.Delegation != nil || len(ctx.Bills) != 0 {
		t.Errorf("expected every optional artifact to be nil/empty, got %+v", ctx)
	}
	if ctx.Confidence.Domains[types.DomainFunding] != types.ConfidenceLow {
		t.Errorf("funding confidence = %s, want LOW when no award cache is present", ctx.Confidence.Domains[types.DomainFunding])
	}
}

func TestArtifactContextBuilderLoadsAndScoresPresentArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "programs.json", testPrograms())
	writeArtifact(t, dir, "awards/acoma.json", &types.TribeAwardCache{
		TribeID:         "acoma",
		TotalObligation: 50000,
		ProgramSummary:  map[string]*types.ProgramSummary{"14.850": {Count: 2, Total: 50000}},
		GeneratedAt:     "2026-07-01T00:00:00Z",
	})
	writeArtifact(t, dir, "hazard/acoma.json", &types.HazardProfile{
		TribeID:     "acoma",
		TopHazards:  []types.TopHazard{{Code: types.HazardWildfire, Rating: "Relatively High"}},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})

	builder, err := newArtifactContextBuilder(dir, types.DefaultRunConfig())
	if err != nil {
		t.Fatalf("newArtifactContextBuilder: %v", err)
	}

	tribe := &types.Tribe{ID: "acoma", Name: "Pueblo of Acoma", States: []string{"NM"}}
	variant := types.DefaultVariantConfigs()[types.VariantTribalInternal]
	ctx, err := builder.Build(tribe, variant, "", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if ctx.Awards == nil || ctx.Hazard == nil {
		t.Fatalf("expected awards and hazard to load, got %+v", ctx)
	}
	if len(ctx.SelectedPrograms) == 0 {
		t.Fatal("expected at least one selected program")
	}
	for _, p := range ctx.SelectedPrograms {
		if p.ID == "p-2" {
			t.Error("a TERMINATED program with no hazard/award signal should score zero and never be selected")
		}
	}
	if ctx.Confidence.Domains[types.DomainHazard] == types.ConfidenceLow {
		t.Errorf("hazard confidence = LOW, want better given a freshly generated profile")
	}
}

func TestArtifactContextBuilderMalformedArtifactIsDataIntegrityError(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "programs.json", testPrograms())
	if err := os.MkdirAll(filepath.Join(dir, "awards"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "awards", "acoma.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write malformed fixture: %v", err)
	}

	builder, err := newArtifactContextBuilder(dir, types.DefaultRunConfig())
	if err != nil {
		t.Fatalf("newArtifactContextBuilder: %v", err)
	}

	tribe := &types.Tribe{ID: "acoma", Name: "Pueblo of Acoma", States: []string{"NM"}}
	variant := types.DefaultVariantConfigs()[types.VariantTribalInternal]
	_, err = builder.Build(tribe, variant, "", nil)
	if err == nil {
		t.Fatal("expected an error for malformed award cache JSON")
	}
	if cat, ok := errtax.CategoryOf(err); !ok || cat != errtax.CategoryDataIntegrity {
		t.Errorf("category = %v, ok=%v, want data-integrity", cat, ok)
	}
}

func TestNewArtifactContextBuilderRequiresProgramInventory(t *testing.T) {
	_, err := newArtifactContextBuilder(t.TempDir(), types.DefaultRunConfig())
	if err == nil {
		t.Fatal("expected an error when programs.json is absent")
	}
	if cat, ok := errtax.CategoryOf(err); !ok || cat != errtax.CategoryDataIntegrity {
		t.Errorf("category = %v, ok=%v, want data-integrity", cat, ok)
	}
}
