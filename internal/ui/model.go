// Package ui is the interactive viewer: a Bubble Tea model over a rendered
// node tree with a raw JSON tab, in-place expansion, copy, search and an
// autosaved refinement note.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/assetview/internal/drafts"
	"github.com/oakwood-commons/assetview/internal/render"
	"github.com/oakwood-commons/assetview/pkg/value"
)

// Tab selects what the viewer shows.
type Tab int

const (
	TabView Tab = iota
	TabRaw
)

func (t Tab) String() string {
	if t == TabRaw {
		return "Raw"
	}
	return "View"
}

type inputMode int

const (
	modeNone inputMode = iota
	modeSearch
	modeNote
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header line plus status and footer lines
	chromeHeight = 3
)

// Params configures a viewer.
type Params struct {
	Value    value.Value
	Renderer *render.Renderer
	// Asset names the value; the note is stored under drafts.NoteKey(Asset).
	Asset     string
	Clipboard Clipboard
	// Drafts may be nil, which disables notes.
	Drafts drafts.Store
	// Autosave stores the note when the editor is left with esc as well as
	// with enter.
	Autosave bool
	NoColor  bool
	Width    int
	Height   int
	Log      logr.Logger
	Context  context.Context
}

type (
	copiedMsg     struct{ err error }
	noteLoadedMsg struct {
		body string
		err  error
	}
	noteSavedMsg struct{ err error }
)

// Model is the viewer state. Everything it shows or remembers lives here.
type Model struct {
	ctx       context.Context
	log       logr.Logger
	renderer  *render.Renderer
	clip      Clipboard
	store     drafts.Store
	autosave  bool
	asset     string
	noColor   bool
	value     value.Value
	root      *render.Node
	open      map[*render.Node]bool
	lines     []line
	visible   []line
	cursor    int
	offset    int
	tab       Tab
	mode      inputMode
	search    textinput.Model
	noteInput textinput.Model
	filter    string
	note      string
	flash     string
	raw       viewport.Model
	width     int
	height    int
	styles    styles
	quitting  bool
}

// New builds the model and renders p.Value.
func New(p Params) *Model {
	r := p.Renderer
	if r == nil {
		r = render.New(render.DefaultOptions())
	}
	ctx := p.Context
	if ctx == nil {
		ctx = context.Background()
	}
	clip := p.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}
	w, h := p.Width, p.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}

	si := textinput.New()
	si.Prompt = "/"
	si.Placeholder = "search"
	si.CharLimit = 200
	si.SetWidth(w - 2)

	ni := textinput.New()
	ni.Prompt = "note: "
	ni.CharLimit = 2000
	ni.SetWidth(w - 7)

	m := &Model{
		ctx:       ctx,
		log:       p.Log,
		renderer:  r,
		clip:      clip,
		store:     p.Drafts,
		autosave:  p.Autosave,
		asset:     p.Asset,
		noColor:   p.NoColor,
		value:     p.Value,
		open:      map[*render.Node]bool{},
		search:    si,
		noteInput: ni,
		raw:       viewport.New(viewport.WithWidth(w), viewport.WithHeight(max(1, h-chromeHeight))),
		width:     w,
		height:    h,
		styles:    newStyles(p.NoColor),
	}
	m.root = r.Render(p.Value)
	m.raw.SetContent(rawJSON(p.Value))
	m.rebuild()
	return m
}

func rawJSON(v value.Value) string {
	out, err := value.Encode(v, "  ")
	if err != nil {
		return fmt.Sprintf("cannot encode value: %v", err)
	}
	return string(out)
}

func (m *Model) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return m.loadNote()
}

func (m *Model) loadNote() tea.Cmd {
	store, ctx, key := m.store, m.ctx, drafts.NoteKey(m.asset)
	return func() tea.Msg {
		d, err := store.Get(ctx, key)
		if errors.Is(err, drafts.ErrNotFound) {
			return noteLoadedMsg{}
		}
		return noteLoadedMsg{body: d.Body, err: err}
	}
}

func (m *Model) saveNote(body string) tea.Cmd {
	store, ctx, key, log := m.store, m.ctx, drafts.NoteKey(m.asset), m.log
	return func() tea.Msg {
		err := store.Set(ctx, key, body)
		if err == nil {
			log.V(1).Info("note saved", "key", key)
		}
		return noteSavedMsg{err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.raw.SetWidth(msg.Width)
		m.raw.SetHeight(max(1, msg.Height-chromeHeight))
		m.search.SetWidth(max(1, msg.Width-2))
		m.noteInput.SetWidth(max(1, msg.Width-7))
		m.scrollToCursor()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.flash = "⚠ Copy failed: " + msg.err.Error()
		} else {
			m.flash = "✓ Copied to clipboard"
		}
		return m, nil

	case noteLoadedMsg:
		if msg.err != nil {
			m.flash = "⚠ Could not load note: " + msg.err.Error()
			return m, nil
		}
		m.note = msg.body
		return m, nil

	case noteSavedMsg:
		if msg.err != nil {
			m.flash = "⚠ Note not saved: " + msg.err.Error()
		} else {
			m.flash = "✓ Note saved"
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg, key)
	case modeNote:
		return m.handleNoteKey(msg, key)
	}

	m.flash = ""
	act := actionFor(key)
	if m.tab == TabRaw {
		switch act {
		case actionTab:
			m.tab = TabView
			return m, nil
		case actionQuit:
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.raw, cmd = m.raw.Update(msg)
		return m, cmd
	}

	switch act {
	case actionUp:
		m.moveCursor(-1)
	case actionDown:
		m.moveCursor(1)
	case actionPageUp:
		m.moveCursor(-m.bodyHeight())
	case actionPageDown:
		m.moveCursor(m.bodyHeight())
	case actionTop:
		m.moveCursor(-len(m.visible))
	case actionBottom:
		m.moveCursor(len(m.visible))
	case actionEnter:
		m.activate()
	case actionCopy:
		return m, m.copySelected()
	case actionSearch:
		m.mode = modeSearch
		m.search.SetValue(m.filter)
		return m, m.search.Focus()
	case actionNote:
		if m.store == nil {
			m.flash = "notes are disabled"
			return m, nil
		}
		m.mode = modeNote
		m.noteInput.SetValue(m.note)
		return m, m.noteInput.Focus()
	case actionTab:
		m.tab = TabRaw
	case actionClear:
		if m.filter != "" {
			m.filter = ""
			m.refilter()
		}
	case actionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		m.mode = modeNone
		m.search.Blur()
		return m, nil
	case "esc":
		m.mode = modeNone
		m.search.Blur()
		m.filter = ""
		m.refilter()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter = m.search.Value()
	m.refilter()
	return m, cmd
}

func (m *Model) handleNoteKey(msg tea.KeyPressMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		return m, m.commitNote()
	case "esc":
		if m.autosave {
			return m, m.commitNote()
		}
		m.mode = modeNone
		m.noteInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m *Model) commitNote() tea.Cmd {
	m.mode = modeNone
	m.noteInput.Blur()
	body := m.noteInput.Value()
	if body == m.note {
		return nil
	}
	m.note = body
	return m.saveNote(body)
}

func (m *Model) copySelected() tea.Cmd {
	l, ok := m.selected()
	if !ok {
		return nil
	}
	text := copyText(l.node)
	clip := m.clip
	return func() tea.Msg {
		return copiedMsg{err: clip.WriteAll(text)}
	}
}

// activate expands a placeholder in place or toggles a truncated string.
func (m *Model) activate() {
	l, ok := m.selected()
	if !ok {
		return
	}
	switch l.node.Kind {
	case render.KindPlaceholder:
		expanded := m.renderer.Expand(l.node)
		if l.parent == nil {
			m.root = expanded
		} else {
			l.parent.Children[l.index] = expanded
		}
		m.rebuild()
	case render.KindTruncated:
		m.open[l.node] = !m.open[l.node]
		m.rebuild()
	}
}

func (m *Model) selected() (line, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return line{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) rebuild() {
	m.lines = buildLines(m.root, m.open)
	m.refilter()
}

func (m *Model) refilter() {
	var current *render.Node
	if l, ok := m.selected(); ok {
		current = l.node
	}
	m.visible = filterLines(m.lines, m.filter)
	m.cursor = min(m.cursor, max(0, len(m.visible)-1))
	for i, l := range m.visible {
		if l.node == current {
			m.cursor = i
			break
		}
	}
	m.scrollToCursor()
}

func (m *Model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
	m.scrollToCursor()
}

func (m *Model) bodyHeight() int {
	return max(1, m.height-chromeHeight)
}

func (m *Model) scrollToCursor() {
	h := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(0, min(m.offset, len(m.visible)-h))
}

func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.content())
	v.AltScreen = true
	return v
}

func (m *Model) content() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	if m.tab == TabRaw {
		b.WriteString(m.raw.View())
	} else {
		b.WriteString(m.body())
	}
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) header() string {
	tabs := make([]string, 0, 2)
	for _, t := range []Tab{TabView, TabRaw} {
		if t == m.tab {
			tabs = append(tabs, m.styles.activeTab.Render("["+t.String()+"]"))
		} else {
			tabs = append(tabs, m.styles.tab.Render(" "+t.String()+" "))
		}
	}
	title := m.asset
	if m.filter != "" {
		title += fmt.Sprintf("  filter: %q (%d/%d)", m.filter, len(m.visible), len(m.lines))
	}
	return strings.Join(tabs, " ") + "  " + m.styles.title.Render(title)
}

func (m *Model) body() string {
	h := m.bodyHeight()
	if len(m.visible) == 0 {
		return m.styles.muted.Render("no matching lines") + strings.Repeat("\n", h-1)
	}
	rows := make([]string, 0, h)
	end := min(len(m.visible), m.offset+h)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderLine(m.visible[i], i == m.cursor))
	}
	for len(rows) < h {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderLine(l line, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}
	indent := strings.Repeat("  ", l.depth)
	var text string
	switch {
	case l.label == "":
		text = m.valueStyle(l).Render(l.text)
	case l.text == "":
		text = m.styles.heading.Render(l.label)
	default:
		text = m.styles.key.Render(l.label+":") + " " + m.valueStyle(l).Render(l.text)
	}
	out := prefix + indent + text
	if selected && !m.noColor {
		out = m.styles.cursor.Render(out)
	}
	return out
}

func (m *Model) valueStyle(l line) lipgloss.Style {
	if l.muted {
		return m.styles.muted
	}
	if l.node != nil && l.node.Kind == render.KindLink {
		return m.styles.link
	}
	return m.styles.value
}

func (m *Model) status() string {
	switch m.mode {
	case modeSearch:
		return m.search.View()
	case modeNote:
		return m.noteInput.View()
	}
	if m.flash != "" {
		return m.flash
	}
	if m.note != "" {
		return m.styles.muted.Render("note: " + m.note)
	}
	return ""
}

func (m *Model) footer() string {
	return m.styles.muted.Render(helpLine)
}

// Note returns the current refinement note.
func (m *Model) Note() string { return m.note }

// ActiveTab returns the tab being shown.
func (m *Model) ActiveTab() Tab { return m.tab }

// Run starts the viewer and blocks until it exits.
func Run(p Params, opts ...tea.ProgramOption) error {
	m := New(p)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
