package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/noticegen/internal/model"
)

// Formats describes which report files a run should emit.
type Formats struct {
	// JSON emits <filename>.json.
	JSON bool

	// Markdown emits <filename>.md.
	Markdown bool

	// HTML emits <filename>.html.
	HTML bool
}

// RenderFiles renders the report in every enabled format and writes the
// files into outDir as <filename>.<ext>, overwriting existing files of
// the same name. The output directory is created if needed.
//
// All formats are rendered to memory before the first file is written:
// if any renderer fails, nothing is emitted, so a run never leaves a
// partial set of notice documents behind.
//
// Returns the paths of the written files in render order.
func RenderFiles(rpt *model.NoticeReport, outDir, filename string, formats Formats) ([]string, error) {
	type rendered struct {
		path string
		data []byte
	}

	var outputs []rendered
	render := func(ext string, w Writer, buf *bytes.Buffer) error {
		if _, err := w.Write(rpt); err != nil {
			return fmt.Errorf("rendering %s report: %w", ext, err)
		}
		outputs = append(outputs, rendered{
			path: filepath.Join(outDir, filename+"."+ext),
			data: buf.Bytes(),
		})
		return nil
	}

	if formats.JSON {
		var buf bytes.Buffer
		if err := render("json", NewJSONWriter(&buf, WithPrettyPrint()), &buf); err != nil {
			return nil, err
		}
	}
	if formats.Markdown {
		var buf bytes.Buffer
		if err := render("md", NewMarkdownWriter(&buf), &buf); err != nil {
			return nil, err
		}
	}
	if formats.HTML {
		var buf bytes.Buffer
		if err := render("html", NewHTMLWriter(&buf), &buf); err != nil {
			return nil, err
		}
	}

	if len(outputs) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	paths := make([]string, 0, len(outputs))
	for _, out := range outputs {
		if err := os.WriteFile(out.path, out.data, 0600); err != nil {
			return nil, fmt.Errorf("writing %s: %w", out.path, err)
		}
		paths = append(paths, out.path)
	}
	return paths, nil
}
