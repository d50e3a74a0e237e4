// Command tribepkt drives the Tribal policy packet orchestrator (spec §6).
// Adapted from the teacher's cmd/regula (a single cobra root with one
// subcommand per pipeline stage); this binary's surface is narrower,
// matching spec §6's explicit CLI scope.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/coolbeans/regula/pkg/config"
	"github.com/coolbeans/regula/pkg/docbuilder"
	"github.com/coolbeans/regula/pkg/errtax"
	"github.com/coolbeans/regula/pkg/orchestrator"
	"github.com/coolbeans/regula/pkg/registry"
	"github.com/coolbeans/regula/pkg/types"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "tribepkt",
		Short:   "Tribal policy packet orchestrator",
		Version: version,
	}
	rootCmd.AddCommand(prepPacketsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func prepPacketsCmd() *cobra.Command {
	var (
		allTribes    bool
		tribeID      string
		variant      string
		dryRun       bool
		force        bool
		reportOnly   bool
		refreshData  bool
		registryPath string
		outputDir    string
		dataDir      string
		configPath   string
	)

	cmd := &cobra.Command{
		Use:   "prep-packets",
		Short: "Build Tribal policy packets",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Load(registryPath)
			if err != nil {
				return err
			}

			units := resolveUnits(reg, tribeID, variant)
			if len(units) == 0 {
				return errtax.DataIntegrity("", fmt.Errorf("no matching (tribe, variant) units for the given flags"))
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if reportOnly {
				report := rebuildCoverageReport(reg, units, outputDir, time.Now())
				fmt.Printf("tribepkt: %d document(s) on disk, %d missing, across %d Tribe(s)\n",
					report.WrittenCount, report.FailedCount, report.TotalTribes)
				return nil
			}
			if refreshData {
				fmt.Println("refresh-data requested: upstream re-fetch is driven by the award/hazard/bill collaborators, not this binary")
			}

			forbiddenTerms, err := config.LoadWordList(cfg.ForbiddenTermsPath)
			if err != nil {
				return err
			}
			internalPhrases, err := config.LoadWordList(cfg.InternalPhrasesPath)
			if err != nil {
				return err
			}

			contextBuilder, err := newArtifactContextBuilder(dataDir, cfg)
			if err != nil {
				return err
			}

			catalog := docbuilder.NewStyleCatalog("Calibri", docbuilder.DefaultPalette)
			gateConfig := orchestrator.GateConfig{
				ForbiddenTerms:   forbiddenTerms,
				InternalPhrases:  internalPhrases,
				ExpectedHeadings: []string{"overview", "programs"},
			}

			orch := orchestrator.New(reg, contextBuilder, gateConfig, catalog)
			report := orch.Run(units, orchestrator.Options{
				OutputDir: outputDir,
				DryRun:    dryRun,
				Force:     force,
				AsOf:      time.Now(),
			})

			if report.FailedCount > 0 {
				fmt.Fprintf(os.Stderr, "tribepkt: %d unit(s) failed\n", report.FailedCount)
				return errtax.GateFailure("", fmt.Errorf("%d units failed the quality gate", report.FailedCount))
			}
			fmt.Printf("tribepkt: wrote %d document(s)\n", report.WrittenCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&allTribes, "prep-packets", false, "process every Tribe and variant")
	cmd.Flags().StringVar(&tribeID, "tribe", "", "restrict to a single Tribe id")
	cmd.Flags().StringVar(&variant, "variant", "", "restrict to a single variant (A|B|C|D)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "load and match only; do not write documents")
	cmd.Flags().BoolVar(&force, "force", false, "accepted but has no effect: every requested unit is always rebuilt")
	cmd.Flags().BoolVar(&reportOnly, "report-only", false, "rebuild the coverage report from existing artifacts")
	cmd.Flags().BoolVar(&refreshData, "refresh-data", false, "force upstream collaborators to re-fetch")
	cmd.Flags().StringVar(&registryPath, "registry", "data/tribal_registry.json", "path to the Tribal registry JSON artifact")
	cmd.Flags().StringVar(&outputDir, "output", "out", "output directory for written packets")
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "directory holding the per-Tribe award/hazard/delegation/bill artifacts")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML run-configuration file (spec §2)")

	return cmd
}

// rebuildCoverageReport reconstructs a CoverageReport from the documents
// already present under outputDir, without re-rendering or re-gating
// anything (spec §6 --report-only). A unit's output file missing from
// disk counts as a gap, not a failure reason beyond "not written".
func rebuildCoverageReport(reg *registry.Registry, units []orchestrator.Unit, outputDir string, asOf time.Time) *types.CoverageReport {
	report := &types.CoverageReport{
		FailuresByCheck: make(map[string]int),
		GeneratedAt:     asOf.UTC().Format(time.RFC3339),
		TotalTribes:     reg.Len(),
	}

	outcomes := make(map[string]*types.TribeOutcome)
	for _, unit := range units {
		outcome, ok := outcomes[unit.TribeID]
		if !ok {
			outcome = &types.TribeOutcome{TribeID: unit.TribeID, Attempted: true}
			outcomes[unit.TribeID] = outcome
		}

		path := filepath.Join(outputDir, unit.TribeID, fmt.Sprintf("%s.docx", unit.Variant))
		if _, err := os.Stat(path); err != nil {
			outcome.Failed = append(outcome.Failed, string(unit.Variant))
			outcome.FailureReason = "no document on disk"
			report.FailedCount++
			report.FailuresByCheck["not-written"]++
			continue
		}
		outcome.Variants = append(outcome.Variants, string(unit.Variant))
		report.WrittenCount++
	}

	var ids []string
	for id := range outcomes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		report.PerTribe = append(report.PerTribe, *outcomes[id])
	}

	return report
}

// resolveUnits expands the --tribe/--variant flags into the full unit
// list for a run. An empty tribeID means every registered Tribe; an
// empty variant means every variant.
func resolveUnits(reg *registry.Registry, tribeID, variant string) []orchestrator.Unit {
	var variants []types.DocumentVariant
	if variant == "" {
		variants = []types.DocumentVariant{
			types.VariantTribalInternal, types.VariantCongressional,
			types.VariantRegionalInternal, types.VariantRegionalCongress,
		}
	} else {
		variants = []types.DocumentVariant{types.DocumentVariant(variant)}
	}

	var tribes []*types.Tribe
	if tribeID == "" {
		tribes = reg.All()
	} else if t, ok := reg.ByID(tribeID); ok {
		tribes = []*types.Tribe{t}
	}

	var units []orchestrator.Unit
	for _, t := range tribes {
		for _, v := range variants {
			if v.IsRegional() {
				continue // regional variants are expanded separately, by region
			}
			units = append(units, orchestrator.Unit{TribeID: t.ID, Variant: v})
		}
	}

	if tribeID == "" {
		units = append(units, regionalUnits(reg, variants)...)
	}
	return units
}

// regionalUnits groups every registered Tribe by ecoregion and emits one
// unit per (region, regional variant) pair. A Tribe without an ecoregion
// tag belongs to no region and is excluded from C/D variants.
func regionalUnits(reg *registry.Registry, variants []types.DocumentVariant) []orchestrator.Unit {
	byRegion := make(map[string][]*types.Tribe)
	for _, t := range reg.All() {
		if t.Ecoregion == "" {
			continue
		}
		byRegion[t.Ecoregion] = append(byRegion[t.Ecoregion], t)
	}

	var regionIDs []string
	for id := range byRegion {
		regionIDs = append(regionIDs, id)
	}
	sort.Strings(regionIDs)

	var units []orchestrator.Unit
	for _, regionID := range regionIDs {
		tribes := byRegion[regionID]
		for _, v := range variants {
			if !v.IsRegional() {
				continue
			}
			units = append(units, orchestrator.Unit{TribeID: regionID, Variant: v, RegionTribes: tribes})
		}
	}
	return units
}

// exitCodeFor maps a taxonomy category to a stable nonzero exit code
// (spec §6).
func exitCodeFor(err error) int {
	category, ok := errtax.CategoryOf(err)
	if !ok {
		return 1
	}
	switch category {
	case errtax.CategoryDataIntegrity:
		return 2
	case errtax.CategoryTransport:
		return 3
	case errtax.CategoryGateFailure:
		return 4
	case errtax.CategoryCoverageGap:
		return 5
	case errtax.CategoryIO:
		return 6
	default:
		return 1
	}
}
