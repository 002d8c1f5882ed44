package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/assetview/internal/drafts"
	"github.com/oakwood-commons/assetview/internal/render"
	"github.com/oakwood-commons/assetview/pkg/value"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

var longSummary = strings.Repeat("a", 150)

func fixture(t *testing.T) value.Value {
	t.Helper()
	v, err := value.DecodeJSON([]byte(`{
		"name": "Acme",
		"site": "https://example.com",
		"summary": "` + longSummary + `",
		"tags": ["x", "y"],
		"deep": {"a": {"b": {"c": {"d": 1}}}}
	}`))
	require.NoError(t, err)
	return v
}

func newTestModel(t *testing.T, clip Clipboard, store drafts.Store) *Model {
	t.Helper()
	return New(Params{
		Value:     fixture(t),
		Renderer:  render.New(render.DefaultOptions()),
		Asset:     "report",
		Clipboard: clip,
		Drafts:    store,
		NoColor:   true,
		Width:     80,
		Height:    30,
	})
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func send(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(press(k))
	}
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func plainLines(m *Model) []string {
	out := make([]string, len(m.visible))
	for i, l := range m.visible {
		out[i] = strings.Repeat("  ", l.depth) + l.plain()
	}
	return out
}

func TestInitialLines(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, nil)
	assert.Equal(t, []string{
		"Name: Acme",
		"Site: https://example.com",
		"Summary: " + longSummary[:100] + "… (150 chars)",
		"Tags: [x] [y]",
		"Deep",
		"  A",
		"    B",
		"      C: ▸ {1 key} (expand)",
	}, plainLines(m))
	assert.Equal(t, TabView, m.ActiveTab())
	assert.Nil(t, m.Init(), "no store, nothing to load")
}

func TestCursorMovement(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, nil)
	send(m, "up")
	assert.Equal(t, 0, m.cursor)
	send(m, "down", "j", "j")
	assert.Equal(t, 3, m.cursor)
	send(m, "k")
	assert.Equal(t, 2, m.cursor)
	send(m, "G")
	assert.Equal(t, 7, m.cursor)
	send(m, "down")
	assert.Equal(t, 7, m.cursor)
	send(m, "g")
	assert.Equal(t, 0, m.cursor)
}

func TestEnterExpandsPlaceholderInPlace(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, nil)
	send(m, "G", "enter")
	lines := plainLines(m)
	require.Len(t, lines, 9)
	assert.Equal(t, "      C", lines[7])
	assert.Equal(t, "        D: 1", lines[8])
	assert.Equal(t, 7, m.cursor)
}

func TestEnterTogglesTruncatedString(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, nil)
	send(m, "down", "down", "enter")
	assert.Equal(t, "Summary: "+longSummary, plainLines(m)[2])
	assert.Equal(t, 2, m.cursor)
	send(m, "enter")
	assert.Contains(t, plainLines(m)[2], "(150 chars)")
}

func TestEnterOnLeafDoesNothing(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, nil)
	before := plainLines(m)
	send(m, "enter")
	assert.Equal(t, before, plainLines(m))
}

func TestCopy(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{name: "leaf", want: "Acme"},
		{name: "link copies address", keys: []string{"down"}, want: "https://example.com"},
		{name: "truncated copies full string", keys: []string{"down", "down"}, want: longSummary},
		{name: "chips copy one per line", keys: []string{"down", "down", "down"}, want: "x\ny"},
		{name: "placeholder copies json", keys: []string{"G"}, want: "{\n  \"d\": 1\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := &fakeClipboard{}
			m := newTestModel(t, clip, nil)
			send(m, tt.keys...)
			cmd := send(m, "c")
			require.NotNil(t, cmd)
			m.Update(cmd())
			assert.Equal(t, tt.want, clip.text)
			assert.Equal(t, "✓ Copied to clipboard", m.flash)
		})
	}
}

func TestCopyFailureIsReported(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{err: ErrClipboardUnsupported}, nil)
	cmd := send(m, "c")
	m.Update(cmd())
	assert.True(t, strings.HasPrefix(m.flash, "⚠ Copy failed"))
}

func TestSearchFiltersLines(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, nil)
	send(m, "/")
	assert.Equal(t, modeSearch, m.mode)
	typeText(m, "ACME")
	assert.Equal(t, []string{"Name: Acme"}, plainLines(m))
	send(m, "enter")
	assert.Equal(t, modeNone, m.mode)
	assert.Equal(t, "ACME", m.filter)
	assert.Contains(t, m.content(), `filter: "ACME" (1/8)`)

	send(m, "esc")
	assert.Len(t, plainLines(m), 8)
}

func TestSearchWithoutMatches(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, nil)
	send(m, "/")
	typeText(m, "zzz")
	send(m, "enter")
	assert.Empty(t, m.visible)
	assert.Contains(t, m.content(), "no matching lines")
	assert.Nil(t, send(m, "c"), "nothing selected to copy")
	send(m, "esc")
	assert.Len(t, m.visible, 8)
}

func TestTabs(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, nil)
	send(m, "tab")
	assert.Equal(t, TabRaw, m.ActiveTab())
	out := m.content()
	assert.Contains(t, out, "[Raw]")
	assert.Contains(t, out, `"name": "Acme"`)

	send(m, "tab")
	assert.Equal(t, TabView, m.ActiveTab())
	assert.Contains(t, m.content(), "> Name: Acme")
}

func TestNoteAutosave(t *testing.T) {
	ctx := context.Background()
	store := drafts.NewMemoryStore()
	require.NoError(t, store.Set(ctx, drafts.NoteKey("report"), "draft one"))

	m := newTestModel(t, &fakeClipboard{}, store)
	m.autosave = true
	init := m.Init()
	require.NotNil(t, init)
	m.Update(init())
	assert.Equal(t, "draft one", m.Note())

	send(m, "n")
	assert.Equal(t, modeNote, m.mode)
	typeText(m, " + two")
	cmd := send(m, "esc")
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, "✓ Note saved", m.flash)

	d, err := store.Get(ctx, "notes/report")
	require.NoError(t, err)
	assert.Equal(t, "draft one + two", d.Body)
}

func TestNoteDiscardedWithoutAutosave(t *testing.T) {
	store := drafts.NewMemoryStore()
	m := newTestModel(t, &fakeClipboard{}, store)
	m.Update(m.Init()())

	send(m, "n")
	typeText(m, "scratch")
	assert.Nil(t, send(m, "esc"))
	assert.Equal(t, "", m.Note())

	send(m, "n")
	typeText(m, "kept")
	cmd := send(m, "enter")
	require.NotNil(t, cmd)
	m.Update(cmd())
	d, err := store.Get(context.Background(), "notes/report")
	require.NoError(t, err)
	assert.Equal(t, "kept", d.Body)
	assert.Contains(t, m.content(), "note: kept")
}

func TestNotesDisabledWithoutStore(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, nil)
	send(m, "n")
	assert.Equal(t, modeNone, m.mode)
	assert.Equal(t, "notes are disabled", m.flash)
}

type failingStore struct{ drafts.Store }

func (failingStore) Get(context.Context, string) (drafts.Draft, error) {
	return drafts.Draft{}, errors.New("disk gone")
}

func TestNoteLoadFailure(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{}, failingStore{})
	m.Update(m.Init()())
	assert.Contains(t, m.flash, "disk gone")
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t, &fakeClipboard{}, nil)
			cmd := send(m, k)
			require.NotNil(t, cmd)
			_, ok := cmd().(tea.QuitMsg)
			assert.True(t, ok)
			assert.True(t, m.quitting)
		})
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	obj := value.NewObject()
	for i := range 40 {
		obj.Set(strings.Repeat("k", i+1), value.Int(int64(i)))
	}
	m := New(Params{Value: obj.Value(), NoColor: true, Width: 40, Height: 10, Clipboard: &fakeClipboard{}})
	for range 20 {
		send(m, "down")
	}
	assert.Equal(t, 20, m.cursor)
	assert.LessOrEqual(t, m.offset, 20)
	assert.Greater(t, m.offset+m.bodyHeight(), 20)

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})
	assert.Greater(t, m.offset+m.bodyHeight(), 20)
	assert.Contains(t, m.content(), "> "+render.HumanizeKey(strings.Repeat("k", 21))+": 20")
}
