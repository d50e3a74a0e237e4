package docbuilder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fumiama/go-docx"

	"github.com/coolbeans/regula/pkg/errtax"
	"github.com/coolbeans/regula/pkg/types"
)

// Build renders one TribePacketContext into a .docx document in memory
// and returns both the document handle and the text/structure summary
// the quality gate inspects.
func Build(ctx *types.TribePacketContext, catalog *StyleCatalog) (*docx.Docx, *RenderedSummary) {
	sections := BuildSections(ctx)
	doc := docx.New()

	summary := &RenderedSummary{
		SectionsByName: make(map[string]SectionSummary, len(sections)),
	}

	for _, sec := range sections {
		renderSection(doc, catalog, sec)
		summary.Headings = append(summary.Headings, sec.Name)

		rows := 0
		hasTable := sec.Table != nil
		if hasTable {
			rows = len(sec.Table.Rows)
		}
		summary.SectionsByName[sec.Name] = SectionSummary{
			Category:   sec.Category,
			HasTable:   hasTable,
			TableRows:  rows,
			Suppressed: sec.Suppressed,
		}
		for _, p := range sec.Paragraphs {
			summary.Text += p + "\n"
		}
		if sec.Table != nil {
			for _, row := range sec.Table.Rows {
				for _, cell := range row {
					summary.Text += cell + " "
				}
				summary.Text += "\n"
			}
		}
	}

	summary.PageCount = estimatePageCount(sections)

	return doc, summary
}

// linesPerPage approximates how many rendered lines (headings, paragraphs,
// table rows) fit on one page at the catalog's body size, for the page
// budget check (spec §4.10). A heading counts as 2 lines; it carries extra
// leading at the minor-third scale. Deliberately coarse: this estimates
// pagination without laying out the actual .docx, so the page budget check
// operates on a rendered-line count rather than a rasterized page count.
const linesPerPage = 6

func estimatePageCount(sections []Section) int {
	lines := 0
	for _, sec := range sections {
		if sec.Suppressed {
			continue
		}
		lines += 2 // heading
		lines += len(sec.Paragraphs)
		if sec.Table != nil {
			lines += 1 + len(sec.Table.Rows) // header row plus data rows
		}
	}
	if lines == 0 {
		return 1
	}
	pages := (lines + linesPerPage - 1) / linesPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// RenderedSummary is the text/structure projection of a built document,
// shaped to satisfy qualitygate.RenderedDocument without importing it
// here (docbuilder has no dependency on qualitygate; the orchestrator
// adapts between the two).
type RenderedSummary struct {
	Text           string
	PageCount      int
	Headings       []string
	SectionsByName map[string]SectionSummary
}

// SectionSummary mirrors qualitygate.RenderedSection's fields.
type SectionSummary struct {
	Category   types.SectionCategory
	HasTable   bool
	TableRows  int
	Suppressed bool
}

// renderSection emits one section's heading, paragraphs, confidence
// badge, and table into the document using the catalog's registered
// styles.
func renderSection(doc *docx.Docx, catalog *StyleCatalog, sec Section) {
	heading := doc.AddParagraph().AddText(headingText(sec))
	heading.Size(fmt.Sprintf("%d", int(catalog.SizeFor(sec.Level)*2))) // go-docx sizes are half-points
	heading.Style(catalog.StyleName(sec.Level))

	if sec.ConfidenceBadge != "" {
		badge := doc.AddParagraph().AddText(fmt.Sprintf("Confidence: %s", sec.ConfidenceBadge))
		badge.Style(CaptionStyleName)
		badge.Size(fmt.Sprintf("%d", int(captionSizePt*2)))
	}

	for _, p := range sec.Paragraphs {
		para := doc.AddParagraph().AddText(p)
		para.Style(BodyStyleName)
		para.Size(fmt.Sprintf("%d", int(bodySizePt*2)))
	}

	if sec.Table != nil && !sec.Suppressed {
		renderTable(doc, sec.Table)
	}
}

func headingText(sec Section) string {
	return sec.Name
}

// renderTable writes a table with equal column widths set by its column
// count (Kind is not consulted) and right-aligned dollar-amount cells
// (spec §4.9).
func renderTable(doc *docx.Docx, t *Table) {
	cols := len(t.Headers)
	table := doc.AddTable(len(t.Rows)+1, cols, 9000/cols, nil)

	for c, h := range t.Headers {
		table.TableCells[0][c].AddParagraph().AddText(h)
	}
	for r, row := range t.Rows {
		for c, cell := range row {
			para := table.TableCells[r+1][c].AddParagraph()
			if c == t.DollarColumn {
				para.Justification("right")
			}
			para.AddText(cell)
		}
	}
}

// WriteAtomic writes the built document to path using a temp-file-then-
// rename sequence in the same directory, so a crash mid-write never
// leaves a partial file at path (spec §4.9, §4.8 step 4).
func WriteAtomic(doc *docx.Docx, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".packet-*.docx.tmp")
	if err != nil {
		return errtax.IO(path, fmt.Errorf("create temp file: %w", err))
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := doc.WriteTo(tmp); err != nil {
		tmp.Close()
		return errtax.IO(path, fmt.Errorf("write document: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return errtax.IO(path, fmt.Errorf("close temp file: %w", err))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errtax.IO(path, fmt.Errorf("rename into place: %w", err))
	}
	return nil
}
