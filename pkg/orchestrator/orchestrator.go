// Package orchestrator drives a full run: for every (Tribe, variant) unit
// it assembles a context, builds the document, runs the quality gate, and
// writes the result — isolating failures per unit and emitting a final
// coverage report. Grounded on the teacher's pkg/validate.GatePipeline.Run
// (sequential stage execution over a list of units, each producing a
// result that rolls into an aggregate report), generalized here from
// "gates over one document" to "Tribe x variant units over a whole run."
package orchestrator

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/coolbeans/regula/pkg/docbuilder"
	"github.com/coolbeans/regula/pkg/errtax"
	"github.com/coolbeans/regula/pkg/qualitygate"
	"github.com/coolbeans/regula/pkg/registry"
	"github.com/coolbeans/regula/pkg/types"
)

// ContextBuilder assembles a TribePacketContext for one (Tribe, variant)
// pair. Implemented by the caller (cmd/tribepkt) since it requires wiring
// together every upstream artifact (awards, hazard, delegation, bills,
// confidence, relevance-selected programs).
type ContextBuilder interface {
	Build(tribe *types.Tribe, variant *types.VariantConfig, regionID string, regionTribes []*types.Tribe) (*types.TribePacketContext, error)
}

// GateConfig bundles the static inputs the quality gate needs beyond the
// rendered document itself.
type GateConfig struct {
	ForbiddenTerms   []string
	InternalPhrases  []string
	ExpectedHeadings []string
	Critics          func(ctx *types.TribePacketContext, summary *docbuilder.RenderedSummary) []qualitygate.CriticReport
}

// Unit is one (Tribe-or-region, variant) work item.
type Unit struct {
	TribeID      string // Tribe id for single-tribe variants; region id for regional ones
	Variant      types.DocumentVariant
	RegionTribes []*types.Tribe // non-nil only for regional variants
}

// Options configures a single orchestrator run.
type Options struct {
	OutputDir string
	DryRun    bool
	Force     bool
	AsOf      time.Time
}

// Orchestrator drives a run end to end.
type Orchestrator struct {
	reg      *registry.Registry
	contexts ContextBuilder
	gate     GateConfig
	catalog  *docbuilder.StyleCatalog
}

// New constructs an Orchestrator.
func New(reg *registry.Registry, contexts ContextBuilder, gate GateConfig, catalog *docbuilder.StyleCatalog) *Orchestrator {
	return &Orchestrator{reg: reg, contexts: contexts, gate: gate, catalog: catalog}
}

// Run executes every unit in lexicographic (tribe_id, variant) order,
// isolating per-unit failures, and returns the run's coverage report
// (spec §4.8).
func (o *Orchestrator) Run(units []Unit, opts Options) *types.CoverageReport {
	sort.Slice(units, func(i, j int) bool {
		if units[i].TribeID != units[j].TribeID {
			return units[i].TribeID < units[j].TribeID
		}
		return units[i].Variant < units[j].Variant
	})

	report := &types.CoverageReport{
		FailuresByCheck: make(map[string]int),
		GeneratedAt:     opts.AsOf.UTC().Format(time.RFC3339),
	}

	outcomes := make(map[string]*types.TribeOutcome)

	for _, unit := range units {
		outcome, ok := outcomes[unit.TribeID]
		if !ok {
			outcome = &types.TribeOutcome{TribeID: unit.TribeID, Attempted: true}
			outcomes[unit.TribeID] = outcome
		}

		if err := o.runUnit(unit, opts); err != nil {
			outcome.Failed = append(outcome.Failed, string(unit.Variant))
			outcome.FailureReason = err.Error()
			report.FailedCount++
			report.FailuresByCheck[classify(err)]++
			continue
		}
		outcome.Variants = append(outcome.Variants, string(unit.Variant))
		report.WrittenCount++
	}

	for _, id := range sortedKeys(outcomes) {
		report.PerTribe = append(report.PerTribe, *outcomes[id])
	}
	report.TotalTribes = o.reg.Len()

	return report
}

// runUnit builds, gates, and (unless dry-run) writes a single document.
func (o *Orchestrator) runUnit(unit Unit, opts Options) error {
	var tribe *types.Tribe
	var regionTribes []*types.Tribe
	variantDef := types.DefaultVariantConfigs()[unit.Variant]

	if variantDef.Variant.IsRegional() {
		regionTribes = unit.RegionTribes
	} else {
		t, ok := o.reg.ByID(unit.TribeID)
		if !ok {
			return fmt.Errorf("unknown tribe id %s", unit.TribeID)
		}
		tribe = t
	}

	ctx, err := o.contexts.Build(tribe, variantDef, unit.TribeID, regionTribes)
	if err != nil {
		if _, ok := errtax.CategoryOf(err); ok {
			return err
		}
		return errtax.CoverageGap(unit.TribeID, fmt.Errorf("build context: %w", err))
	}

	doc, summary := docbuilder.Build(ctx, o.catalog)

	rendered := &qualitygate.RenderedDocument{
		Text:      summary.Text,
		PageCount: summary.PageCount,
		Headings:  summary.Headings,
	}
	rendered.SectionsByName = make(map[string]qualitygate.RenderedSection, len(summary.SectionsByName))
	for name, s := range summary.SectionsByName {
		rendered.SectionsByName[name] = qualitygate.RenderedSection{
			Category:   s.Category,
			HasTable:   s.HasTable,
			TableRows:  s.TableRows,
			Suppressed: s.Suppressed,
		}
	}

	var critics []qualitygate.CriticReport
	if o.gate.Critics != nil {
		critics = o.gate.Critics(ctx, summary)
	}

	result := qualitygate.Run(rendered, variantDef, o.gate.ForbiddenTerms, o.gate.InternalPhrases, o.gate.ExpectedHeadings, critics, opts.AsOf)
	if !result.Pass {
		return errtax.GateFailure(unit.TribeID, fmt.Errorf("quality gate failed: %v", result.FailingChecks))
	}

	if opts.DryRun {
		return nil
	}

	path := filepath.Join(opts.OutputDir, unit.TribeID, fmt.Sprintf("%s.docx", unit.Variant))
	if err := docbuilder.WriteAtomic(doc, path); err != nil {
		if _, ok := errtax.CategoryOf(err); ok {
			return err
		}
		return errtax.IO(path, err)
	}
	return nil
}

// classify buckets a unit failure by its taxonomy category (spec §7) for
// the coverage report's FailuresByCheck tally, falling back to "unknown"
// for errors that never passed through errtax.
func classify(err error) string {
	category, ok := errtax.CategoryOf(err)
	if !ok {
		return "unknown"
	}
	return string(category)
}

func sortedKeys(m map[string]*types.TribeOutcome) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
