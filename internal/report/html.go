package report

import (
	"html/template"
	"io"
	"strings"

	"github.com/nao1215/noticegen/internal/model"
)

// HTMLWriter outputs notice reports as a standalone HTML page.
// The page is self-contained (inline stylesheet, no scripts) so it can be
// shipped alongside release artifacts and opened offline. Escaping is
// handled by html/template.
type HTMLWriter struct {
	baseWriter
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(output),
	}
}

// htmlTemplate is the full notice page. The dark stylesheet keeps long
// license tables readable.
var htmlTemplate = template.Must(template.New("notices").Funcs(template.FuncMap{
	"join": func(s []string, sep string) string { return strings.Join(s, sep) },
}).Parse(`<html>
<head>
<style>
    table {
        border-collapse: collapse;
    }
    a {
        color: hsl(200, 40%, 50%);
    }
    body {
        padding: 1em;
        color: hsl(0, 0%, 80%) !important;
        background: hsl(0, 0%, 15%);
    }
    td {
        border-bottom: 1px solid hsl(0, 0%, 20%);
        padding: 4px;
    }
    pre {
        margin: 2em;
        background: hsl(0, 0%, 20%);
        padding: 2em;
        text-wrap: wrap;
    }
</style>
</head>
<body>
<h1>Third Party Notices</h1>
<p>Generated {{.GeneratedAt.UTC.Format "2006-01-02 15:04:05 MST"}}</p>
<h2>Dependencies</h2>
<table>
<thead>
<tr>
<th>Name</th>
<th>Version</th>
<th>License</th>
<th>Ecosystem</th>
<th>Package URL</th>
</tr>
</thead>
<tbody>
{{- range .Entries}}
<tr>
<td>{{.Name}}</td><td>{{.Version}}</td><td>{{.LicenseText}}</td><td>{{.Source}}</td><td>{{if .PackageURL}}<a href="{{.PackageURL}}">{{.PackageURL}}</a>{{end}}</td>
</tr>
{{- end}}
</tbody>
</table>

<h2>Copyright Notices</h2>
{{- range .Entries}}
{{- if .Notices}}
<h3>{{.Name}} {{.Version}}</h3>
<pre>
{{join .Notices "\n"}}
</pre>
{{- end}}
{{- end}}
</body>
</html>
`))

// Write renders the report as HTML.
func (w *HTMLWriter) Write(report *model.NoticeReport) (int, error) {
	var buf strings.Builder
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return 0, err
	}
	return io.WriteString(w.output, buf.String())
}
