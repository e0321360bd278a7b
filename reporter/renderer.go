package reporter

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the size all tabstops render as.
const TabstopWidth = 4

// Renderer produces terminal-friendly renderings of diagnostics, with the
// offending source line excerpted and underlined.
type Renderer struct {
	// Colored enables ANSI color escapes in the output.
	Colored bool
}

// Render formats one diagnostic against the source text it was produced
// from. The returned string has no trailing newline.
func (r Renderer) Render(path string, text string, d Diagnostic) string {
	var sb strings.Builder

	bold, red, reset := "", "", ""
	if r.Colored {
		bold, red, reset = "\033[1m", "\033[31m", "\033[0m"
	}

	fmt.Fprintf(&sb, "%s%s:%s:%s %serror:%s %s",
		bold, path, d.Range.Start, reset, red, reset, d.Message)

	line, ok := sourceLine(text, d.Range.Start.Line)
	if !ok {
		return sb.String()
	}

	rendered, widths := expandTabs(line)
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "  %4d | %s\n", d.Range.Start.Line, rendered)

	// Underline from the start column to the end column (or end of line when
	// the range spans lines). Columns are 1-based character counts; display
	// width is measured in grapheme clusters so the caret lines up under
	// multi-byte source.
	startCol := d.Range.Start.Column
	endCol := d.Range.End.Column
	if d.Range.End.Line != d.Range.Start.Line || endCol <= startCol {
		endCol = startCol + 1
	}
	pad := displayWidth(widths, startCol-1)
	width := displayWidth(widths, endCol-1) - pad
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(&sb, "       | %s%s%s%s", strings.Repeat(" ", pad), red, strings.Repeat("^", width), reset)

	return sb.String()
}

// sourceLine extracts the 1-based line from text.
func sourceLine(text string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	cur := 1
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			if cur == line {
				return strings.TrimSuffix(text[start:i], "\r"), true
			}
			cur++
			start = i + 1
		}
	}
	if cur == line {
		return text[start:], true
	}
	return "", false
}

// expandTabs renders tabs as spaces and returns, for each source character,
// its display width in terminal cells.
func expandTabs(line string) (string, []int) {
	var sb strings.Builder
	var widths []int

	state := -1
	rest := line
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "\t" {
			sb.WriteString(strings.Repeat(" ", TabstopWidth))
			width = TabstopWidth
		} else {
			sb.WriteString(cluster)
		}
		// a cluster can span several source characters; charge the width to
		// the first and zero to the rest so column arithmetic stays aligned
		chars := len([]rune(cluster))
		widths = append(widths, width)
		for i := 1; i < chars; i++ {
			widths = append(widths, 0)
		}
	}
	return sb.String(), widths
}

// displayWidth sums the display widths of the first n source characters.
func displayWidth(widths []int, n int) int {
	if n > len(widths) {
		n = len(widths)
	}
	total := 0
	for _, w := range widths[:n] {
		total += w
	}
	return total
}
