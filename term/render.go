package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Renderer draws full frames. Every frame starts by clearing the screen
// and homing the cursor so no stale content survives between redraws.
type Renderer struct {
	out io.Writer

	header  *color.Color
	current *color.Color
	errText *color.Color
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:     out,
		header:  color.New(color.Bold),
		current: color.New(color.FgCyan),
		errText: color.New(color.FgRed),
	}
}

// Clear erases the screen and homes the cursor.
func (r *Renderer) Clear() {
	fmt.Fprint(r.out, "\033[2J\033[H")
}

// Frame draws the browse screen: header, document list in the layout
// fitting the width, status line, and control bar.
func (r *Renderer) Frame(m *Model, width int) {
	r.Clear()

	r.header.Fprintln(r.out, "LocalDocs - Document Manager")
	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	fmt.Fprintln(r.out)

	if width < MinTerminalWidth {
		r.treeLayout(m, width)
	} else {
		r.columnLayout(m, width)
	}

	fmt.Fprintln(r.out)
	r.statusLine(m)
	fmt.Fprintln(r.out)
	for _, line := range ControlBar(width) {
		fmt.Fprintln(r.out, line)
	}
}

// treeLayout stacks one block per document for narrow terminals.
func (r *Renderer) treeLayout(m *Model, width int) {
	for i, doc := range m.Visible {
		cursor := " "
		if i == m.Cursor {
			cursor = ">"
		}
		checkbox := "[ ]"
		if m.Selected[doc.ID] {
			checkbox = "[x]"
		}

		head := fmt.Sprintf("%s %s %s", cursor, checkbox, doc.ID)
		if i == m.Cursor {
			r.current.Fprintln(r.out, head)
		} else {
			fmt.Fprintln(r.out, head)
		}

		fmt.Fprintf(r.out, "     ├─ %s\n", Truncate(doc.Metadata.DisplayName(), width-8))
		if len(doc.Metadata.Tags) > 0 {
			fmt.Fprintf(r.out, "     ├─ tags: %s\n", Truncate(strings.Join(doc.Metadata.Tags, ","), width-15))
		}
		for j, line := range Wrap(doc.Metadata.DisplayDescription(), width-8) {
			if j == 0 {
				fmt.Fprintf(r.out, "     └─ %s\n", line)
			} else {
				fmt.Fprintf(r.out, "        %s\n", line)
			}
		}

		if i < len(m.Visible)-1 {
			fmt.Fprintln(r.out)
		}
	}
}

// columnLayout aligns id, name, and description columns for wide
// terminals.
func (r *Renderer) columnLayout(m *Model, width int) {
	names := make([]string, len(m.Visible))
	for i, doc := range m.Visible {
		names[i] = doc.Metadata.DisplayName()
	}
	nameWidth, descWidth := ColumnWidths(width, names)

	for i, doc := range m.Visible {
		cursor := " "
		if i == m.Cursor {
			cursor = ">"
		}
		checkbox := "[ ]"
		if m.Selected[doc.ID] {
			checkbox = "[x]"
		}

		line := fmt.Sprintf("%s %s %-*s %-*s %s",
			cursor, checkbox,
			idColumnWidth, doc.ID,
			nameWidth, Truncate(doc.Metadata.DisplayName(), nameWidth),
			Truncate(doc.Metadata.DisplayDescription(), descWidth))

		if i == m.Cursor {
			r.current.Fprintln(r.out, line)
		} else {
			fmt.Fprintln(r.out, line)
		}
	}
}

// statusLine reports selection and filter state. Up to three active tags
// are named; the rest collapse into an overflow count.
func (r *Renderer) statusLine(m *Model) {
	if len(m.ActiveTags) > 0 {
		tags := m.ActiveTagList()
		var tagsStr string
		if len(tags) <= 3 {
			tagsStr = strings.Join(tags, ", ")
		} else {
			tagsStr = fmt.Sprintf("%s, +%d more", strings.Join(tags[:3], ", "), len(tags)-3)
		}
		fmt.Fprintf(r.out, "Selected: %d/%d documents tagged %s\n", len(m.Selected), len(m.Visible), tagsStr)
		return
	}
	fmt.Fprintf(r.out, "Selected: %d/%d documents\n", len(m.Selected), len(m.Visible))
}

// TagFilterFrame draws the tag filter screen with its own cursor.
func (r *Renderer) TagFilterFrame(m *Model, tagCursor int) {
	r.Clear()

	r.header.Fprintln(r.out, "Filter by tags:")
	fmt.Fprintln(r.out)

	for i, tag := range m.AvailableTags {
		cursor := " "
		if i == tagCursor {
			cursor = ">"
		}
		checkbox := "[ ]"
		if m.ActiveTags[tag] {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", cursor, checkbox, tag)
		if i == tagCursor {
			r.current.Fprintln(r.out, line)
		} else {
			fmt.Fprintln(r.out, line)
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%d documents match current filters (Total: %d)\n", len(m.Visible), len(m.Docs))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "[j/k] navigate  [space] toggle  [a] toggle all  [enter/esc] back to documents")
}

// Message draws a full-screen message with a continue prompt.
func (r *Renderer) Message(msg string) {
	r.Clear()
	fmt.Fprintln(r.out, msg)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Press any key to continue...")
}

// ErrorMessage draws a full-screen error with a continue prompt.
func (r *Renderer) ErrorMessage(msg string) {
	r.Clear()
	r.errText.Fprintln(r.out, "Error:")
	fmt.Fprintln(r.out, msg)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Press any key to continue...")
}
