// Package report renders validated notice reports into their output
// formats.
//
// This package contains writers for the three supported formats:
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for documentation
//   - HTMLWriter: a standalone styled HTML page
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably. RenderFiles drives all enabled writers for a run,
// rendering to memory first so that a failure emits no files at all.
package report
