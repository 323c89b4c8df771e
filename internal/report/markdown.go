package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/noticegen/internal/model"
)

// MarkdownWriter outputs notice reports in Markdown format.
// This format is designed for committing into a repository or attaching
// to release documentation. It uses the nao1215/markdown fluent builder
// for type-safe tables and code blocks.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the report as Markdown.
func (w *MarkdownWriter) Write(report *model.NoticeReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeDependencies(md, report)
	w.writeNotices(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the per-ecosystem summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.NoticeReport) {
	md.H1("Third Party Notices")
	md.PlainText("")

	counts := report.CountBySource()
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST")},
			{"Dependencies", strconv.Itoa(len(report.Entries))},
			{"Cargo packages", strconv.Itoa(counts[model.EcosystemCargo])},
			{"pnpm packages", strconv.Itoa(counts[model.EcosystemPnpm])},
			{"Licenses in use", strings.Join(report.Licenses, ", ")},
		},
	})
	md.PlainText("")
}

// writeDependencies writes the dependency table.
func (w *MarkdownWriter) writeDependencies(md *markdown.Markdown, report *model.NoticeReport) {
	md.H2("Dependencies")
	md.PlainText("")

	if len(report.Entries) == 0 {
		md.PlainText("No third-party dependencies.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Entries))
	for _, e := range report.Entries {
		pkg := e.Name
		if e.PackageURL != "" {
			pkg = "[" + e.Name + "](" + e.PackageURL + ")"
		}
		rows = append(rows, []string{
			pkg,
			e.Version,
			e.LicenseText(),
			e.Source.String(),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Name", "Version", "License", "Ecosystem"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeNotices writes one section per dependency that carries copyright
// notices. Dependencies without harvested notices are omitted here; they
// already appear in the table above.
func (w *MarkdownWriter) writeNotices(md *markdown.Markdown, report *model.NoticeReport) {
	hasNotices := false
	for _, e := range report.Entries {
		if len(e.Notices) > 0 {
			hasNotices = true
			break
		}
	}
	if !hasNotices {
		return
	}

	md.H2("Copyright Notices")
	md.PlainText("")

	for _, e := range report.Entries {
		if len(e.Notices) == 0 {
			continue
		}
		md.H3(e.Name + " " + e.Version)
		md.CodeBlocks(markdown.SyntaxHighlightText, strings.Join(e.Notices, "\n"))
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [noticegen](https://github.com/nao1215/noticegen)*")
}
