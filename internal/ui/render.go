package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// Success renders a one-line success message.
func Success(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

// Failure renders an error message, wrapped to width.
// Continuation lines keep their own indentation.
func Failure(msg string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return ErrorStyle.Render("✗ ") + wordwrap.String(msg, width-2)
}

// Note renders a muted informational line.
func Note(msg string) string {
	return NoteStyle.Render(msg)
}

// HighlightYAML applies syntax highlighting to YAML source using chroma
func HighlightYAML(src string) string {
	return highlightCode(src, "yaml")
}

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().Syntax)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// Table lays out rows under headers with columns padded to their widest cell.
// Widths are measured in terminal cells, so wide runes line up.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		var line strings.Builder
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i < len(widths)-1 {
				cell = runewidth.FillRight(cell, widths[i]+TableGap)
			}
			line.WriteString(cell)
		}
		sb.WriteString(style(strings.TrimRight(line.String(), " ")))
		sb.WriteByte('\n')
	}

	writeRow(headers, func(s string) string { return TableHeaderStyle.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return sb.String()
}
