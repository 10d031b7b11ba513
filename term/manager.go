package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jubalm/localdocs"
)

// State identifies the manager's position in the session state machine.
type State int

// Session states. Browsing is the initial state; Terminated is final.
const (
	StateBrowsing State = iota
	StateTagFilter
	StateConfirmDelete
	StateConfirmExport
	StateConfirmUpdate
	StateSetMetadata
	StateConfirmQuit
	StateTerminated
)

// Interactive export uses a fixed package name and format; the flow has no
// free-text input. The package command offers the full choice set.
const exportPackageName = "localdocs-export"

// Manager runs the interactive session: it owns the model, drives the
// read-decode-update-render loop, and dispatches to the confirmation
// sub-flows. All mutation happens between key events on one goroutine.
type Manager struct {
	store       localdocs.DocumentStore
	keys        KeyReader
	out         io.Writer
	size        func() (width, height int)
	interactive func() bool

	model    *Model
	renderer *Renderer

	state     State
	tagCursor int

	// message, when set, takes over the screen until the next key.
	message        string
	messageIsError bool
}

// NewManager wires a manager to a real terminal.
func NewManager(store localdocs.DocumentStore, t *Terminal) *Manager {
	return newManager(store, t, os.Stdout, t.Size, t.IsInteractive)
}

// NewManagerFor wires a manager with explicit collaborators, used by tests
// and non-TTY frontends.
func NewManagerFor(store localdocs.DocumentStore, keys KeyReader, out io.Writer, size func() (int, int), interactive func() bool) *Manager {
	return newManager(store, keys, out, size, interactive)
}

func newManager(store localdocs.DocumentStore, keys KeyReader, out io.Writer, size func() (int, int), interactive func() bool) *Manager {
	return &Manager{
		store:       store,
		keys:        keys,
		out:         out,
		size:        size,
		interactive: interactive,
		model:       NewModel(store),
		renderer:    NewRenderer(out),
	}
}

// Model exposes the session model for inspection.
func (m *Manager) Model() *Model { return m.model }

// State returns the current state.
func (m *Manager) State() State { return m.state }

// Run drives the session until the user quits. It returns false when the
// terminal cannot support interactive use; the session then never starts.
// An empty collection is a no-op success.
func (m *Manager) Run(ctx context.Context) (bool, error) {
	if !m.interactive() {
		fmt.Fprintln(m.out, "Interactive mode requires a terminal that supports keyboard input.")
		fmt.Fprintln(m.out, "Use regular CLI commands instead:")
		fmt.Fprintln(m.out, "  localdocs extract  - Extract document data")
		fmt.Fprintln(m.out, "  localdocs package  - Create document packages")
		fmt.Fprintln(m.out, "  localdocs remove   - Remove a document")
		return false, nil
	}

	if err := m.model.Load(ctx); err != nil {
		return false, err
	}
	if len(m.model.Docs) == 0 {
		fmt.Fprintln(m.out, "No documents found. Use 'localdocs add <url>' to add documents first.")
		return true, nil
	}

	m.model.ActivateAllTags()
	m.state = StateBrowsing

	for m.state != StateTerminated {
		m.renderState()

		key, err := m.keys.ReadKey()
		if err != nil {
			m.renderer.Clear()
			if errors.Is(err, io.EOF) {
				return true, nil
			}
			return true, err
		}

		m.handleKey(ctx, key)
	}

	m.renderer.Clear()
	return true, nil
}

func (m *Manager) renderState() {
	if m.message != "" {
		if m.messageIsError {
			m.renderer.ErrorMessage(m.message)
		} else {
			m.renderer.Message(m.message)
		}
		return
	}

	switch m.state {
	case StateBrowsing:
		w, _ := m.size()
		m.renderer.Frame(m.model, w)
	case StateTagFilter:
		m.renderer.TagFilterFrame(m.model, m.tagCursor)
	case StateConfirmDelete:
		m.confirmFrame("Delete the following documents?",
			"This cannot be undone.", "Continue? [y/N]: ")
	case StateConfirmUpdate:
		m.confirmFrame("Update the following documents from their URLs?",
			"This will re-download content from the original URLs.", "Continue? [y/N]: ")
	case StateConfirmExport:
		m.confirmFrame("Package the following documents?",
			"", fmt.Sprintf("Create package '%s'? [y/N]: ", exportPackageName))
	case StateConfirmQuit:
		m.quitFrame()
	}
}

// confirmFrame lists the affected documents above a confirmation prompt.
func (m *Manager) confirmFrame(title, warning, prompt string) {
	m.renderer.Clear()
	fmt.Fprintln(m.out, title)
	fmt.Fprintln(m.out)
	for _, id := range m.model.SelectedIDs() {
		fmt.Fprintf(m.out, "- %s (%s)\n", id, m.docName(id))
	}
	fmt.Fprintln(m.out)
	if warning != "" {
		fmt.Fprintln(m.out, warning)
	}
	fmt.Fprint(m.out, prompt)
}

func (m *Manager) quitFrame() {
	m.renderer.Clear()
	if n := len(m.model.Selected); n > 0 {
		plural := "s"
		if n == 1 {
			plural = ""
		}
		fmt.Fprintf(m.out, "You have %d document%s selected.\n", n, plural)
	}
	fmt.Fprintln(m.out, "Exit interactive manager?")
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "[y] Yes, exit    [n] No, stay")
}

func (m *Manager) docName(id string) string {
	for _, doc := range m.model.Docs {
		if doc.ID == id {
			return doc.Metadata.DisplayName()
		}
	}
	return localdocs.UnnamedPlaceholder
}

func (m *Manager) handleKey(ctx context.Context, key Key) {
	// Any key dismisses a message screen.
	if m.message != "" {
		m.message = ""
		m.messageIsError = false
		m.state = StateBrowsing
		return
	}

	name := normalizeKey(key)

	switch m.state {
	case StateBrowsing:
		m.handleBrowsing(ctx, name)
	case StateTagFilter:
		m.handleTagFilter(name)
	case StateConfirmDelete:
		m.handleConfirmDelete(ctx, name)
	case StateConfirmUpdate:
		m.handleConfirmUpdate(ctx, name)
	case StateConfirmExport:
		m.handleConfirmExport(ctx, name)
	case StateSetMetadata:
		// Reached only via its message screen, handled above.
		m.state = StateBrowsing
	case StateConfirmQuit:
		m.handleConfirmQuit(name)
	}
}

// normalizeKey folds upper-case command letters onto their lower-case
// equivalents.
func normalizeKey(key Key) string {
	if !key.Ctrl && len(key.Name) == 1 && key.Name[0] >= 'A' && key.Name[0] <= 'Z' {
		return strings.ToLower(key.Name)
	}
	return key.Name
}

func (m *Manager) handleBrowsing(ctx context.Context, name string) {
	switch name {
	case "j", KeyDown:
		m.model.MoveCursor(+1)
	case "k", KeyUp:
		m.model.MoveCursor(-1)
	case " ":
		m.model.ToggleCurrent()
	case "a":
		m.model.ToggleAll()
	case "d":
		if len(m.model.Selected) == 0 {
			m.showMessage("No documents selected for deletion.")
			return
		}
		m.state = StateConfirmDelete
	case "x":
		if len(m.model.Selected) == 0 {
			m.showMessage("No documents selected for packaging.")
			return
		}
		m.state = StateConfirmExport
	case "u":
		if len(m.model.Selected) == 0 {
			m.showMessage("No documents selected for update.")
			return
		}
		m.state = StateConfirmUpdate
	case "s":
		m.runSetMetadata(ctx)
	case "f":
		if len(m.model.AvailableTags) == 0 {
			m.showMessage("No tags available in the collection.")
			return
		}
		m.tagCursor = 0
		m.state = StateTagFilter
	case "q":
		m.state = StateConfirmQuit
	}
}

func (m *Manager) handleTagFilter(name string) {
	switch name {
	case "j", KeyDown:
		if m.tagCursor < len(m.model.AvailableTags)-1 {
			m.tagCursor++
		}
	case "k", KeyUp:
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case " ":
		if len(m.model.AvailableTags) > 0 {
			m.model.ToggleTag(m.model.AvailableTags[m.tagCursor])
		}
	case "a":
		m.model.ToggleAllTags()
	case KeyReturn, KeyEscape:
		m.state = StateBrowsing
	}
}

func (m *Manager) handleConfirmDelete(ctx context.Context, name string) {
	if name != "y" {
		m.showMessage("Deletion cancelled.")
		return
	}

	ids := m.model.SelectedIDs()
	deleted, failed := 0, 0
	for _, id := range ids {
		if err := m.store.Delete(ctx, id); err != nil {
			failed++
		} else {
			deleted++
		}
	}

	if err := m.model.Load(ctx); err != nil {
		m.showError(fmt.Sprintf("Reloading documents failed: %v", err))
		return
	}
	m.model.Selected = make(map[string]bool)
	m.model.RecomputeVisible()

	msg := fmt.Sprintf("Deleted %d documents.", deleted)
	if failed > 0 {
		msg += fmt.Sprintf(" Failed: %d", failed)
	}
	m.showMessage(msg)
}

func (m *Manager) handleConfirmUpdate(ctx context.Context, name string) {
	if name != "y" {
		m.showMessage("Update cancelled.")
		return
	}

	ids := m.model.SelectedIDs()
	updated, failed := 0, 0
	for _, id := range ids {
		if err := m.store.Update(ctx, id); err != nil {
			failed++
		} else {
			updated++
		}
	}

	m.model.Selected = make(map[string]bool)
	m.model.RecomputeVisible()

	msg := fmt.Sprintf("Updated %d/%d documents.", updated, len(ids))
	if failed > 0 {
		msg += fmt.Sprintf(" Failed: %d", failed)
	}
	m.showMessage(msg)
}

func (m *Manager) handleConfirmExport(ctx context.Context, name string) {
	if name != "y" {
		m.showMessage("Package creation cancelled.")
		return
	}

	ids := m.model.SelectedIDs()
	err := m.store.ExportSelected(ctx, exportPackageName, ids, localdocs.DefaultExportFormat, false)
	if err != nil {
		m.showError(fmt.Sprintf("Package creation failed: %s", localdocs.ErrorMessage(err)))
		return
	}
	m.showMessage(fmt.Sprintf("Package '%s' created successfully.", exportPackageName))
}

// runSetMetadata applies the placeholder edit to the document under the
// cursor. The flow captures no free text; empty fields receive the display
// placeholders and populated fields are left alone.
func (m *Manager) runSetMetadata(ctx context.Context) {
	doc, ok := m.model.CurrentDoc()
	if !ok {
		return
	}
	m.state = StateSetMetadata

	var upd localdocs.MetadataUpdate
	if doc.Metadata.Name == "" {
		name := localdocs.UnnamedPlaceholder
		upd.Name = &name
	}
	if doc.Metadata.Description == "" {
		desc := localdocs.NoDescriptionPlaceholder
		upd.Description = &desc
	}

	if err := m.store.SetMetadata(ctx, doc.ID, upd); err != nil {
		m.showError(fmt.Sprintf("Metadata update failed: %s", localdocs.ErrorMessage(err)))
		return
	}
	if err := m.model.Load(ctx); err != nil {
		m.showError(fmt.Sprintf("Reloading documents failed: %v", err))
		return
	}

	tags := strings.Join(doc.Metadata.Tags, ",")
	if tags == "" {
		tags = "[no tags]"
	}
	m.message = fmt.Sprintf(
		"Edit metadata for %s:\n\nName: %s\nDescription: %s\nTags: %s\n\nUpdated metadata for %s.",
		doc.ID, doc.Metadata.DisplayName(), doc.Metadata.DisplayDescription(), tags, doc.ID)
}

func (m *Manager) handleConfirmQuit(name string) {
	switch name {
	case "y":
		m.state = StateTerminated
	case "n":
		m.state = StateBrowsing
	}
	// Anything else re-shows the prompt.
}

func (m *Manager) showMessage(msg string) {
	m.message = msg
	m.messageIsError = false
}

func (m *Manager) showError(msg string) {
	m.message = msg
	m.messageIsError = true
}
