package term

import "strings"

// Terminal layout constants.
const (
	MinTerminalWidth      = 60
	DefaultTerminalWidth  = 80
	DefaultTerminalHeight = 24
	MaxNameColumnWidth    = 40
	MinColumnWidth        = 8

	minSpacing        = 4
	horizontalPadding = 4

	// Column layout reserves cursor, checkbox, and separators up front.
	fixedColumnWidth = 8
	idColumnWidth    = 10

	// Verbose control labels need a wide terminal.
	verboseControlsWidth = 120
)

// Truncate shortens text to at most max characters, ending in "..." when
// anything was cut. When max is no larger than the suffix, a prefix of the
// suffix is returned; non-positive max yields the empty string.
func Truncate(text string, max int) string {
	const suffix = "..."
	if max <= 0 {
		return ""
	}
	if len(text) <= max {
		return text
	}
	if max <= len(suffix) {
		return suffix[:max]
	}
	return text[:max-len(suffix)] + suffix
}

// Wrap greedily word-wraps text to the given width. Words longer than the
// width occupy a line of their own; they are never split.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if len(test) <= width {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// CenteredRow lays the cells out in equal-width columns spanning width,
// centering each cell within its column.
func CenteredRow(cells []string, width int) string {
	if len(cells) == 0 {
		return ""
	}

	colWidth := width / len(cells)
	var b strings.Builder
	for _, cell := range cells {
		left := (colWidth - len(cell)) / 2
		if left < 0 {
			left = 0
		}
		right := colWidth - left - len(cell)
		if right < 0 {
			right = 0
		}
		b.WriteString(strings.Repeat(" ", left))
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", right))
	}
	return b.String()
}

// ColumnWidths computes the name and description column widths for the
// column layout. The name column tracks the longest name plus breathing
// room, capped at MaxNameColumnWidth and half the remaining width; the
// description column absorbs the rest. Narrow terminals fall back to fixed
// minimums.
func ColumnWidths(width int, names []string) (nameWidth, descWidth int) {
	remaining := width - fixedColumnWidth - idColumnWidth

	if remaining <= 20 {
		nameWidth = 10
		descWidth = remaining - nameWidth
		if descWidth < 10 {
			descWidth = 10
		}
		return nameWidth, descWidth
	}

	maxName := 0
	for _, n := range names {
		if len(n) > maxName {
			maxName = len(n)
		}
	}

	nameWidth = maxName + 2
	if nameWidth > remaining/2 {
		nameWidth = remaining / 2
	}
	if nameWidth > MaxNameColumnWidth {
		nameWidth = MaxNameColumnWidth
	}
	if nameWidth < 10 {
		nameWidth = 10
	}

	descWidth = remaining - nameWidth
	if descWidth < 10 {
		descWidth = 10
	}
	return nameWidth, descWidth
}

var verboseControls = []string{
	"[j/k] Navigate", "[Space] Toggle selection", "[a] Select/deselect all",
	"[f] Filters", "[d] Delete", "[x] Package", "[u] Update selected",
	"[s] Set metadata", "[q] Quit",
}

var shortControls = []string{
	"[j/k] Nav", "[Space] Select", "[a] All", "[f] Filters",
	"[d] Delete", "[x] Package", "[u] Update", "[s] Set", "[q] Quit",
}

// ControlBar produces the control hint lines for the given width. Verbose
// labels are used on wide terminals; when even the short set does not fit
// on one line it is split into two centered rows.
func ControlBar(width int) []string {
	labels := shortControls
	if width >= verboseControlsWidth {
		labels = verboseControls
	}
	return controlLines(labels, width)
}

func controlLines(labels []string, width int) []string {
	if len(labels) == 0 {
		return nil
	}

	total := 0
	for _, l := range labels {
		total += len(l)
	}
	required := total + (len(labels)-1)*minSpacing + horizontalPadding

	if required <= width {
		spacing := minSpacing
		if len(labels) > 1 {
			spacing = (width - total - horizontalPadding) / (len(labels) - 1)
			if spacing < minSpacing {
				spacing = minSpacing
			}
		}
		var b strings.Builder
		b.WriteString("  ")
		for i, l := range labels {
			b.WriteString(l)
			if i < len(labels)-1 {
				b.WriteString(strings.Repeat(" ", spacing))
			}
		}
		b.WriteString("  ")
		return []string{b.String()}
	}

	mid := len(labels) / 2
	return []string{
		CenteredRow(labels[:mid], width),
		CenteredRow(labels[mid:], width),
	}
}
