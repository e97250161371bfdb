package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"chatlog/internal/chat"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

// drain 执行命令并展开 BatchMsg，收集全部消息。
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Session == nil {
		opts.Session = chat.NewSession(chat.WithID("test-session"))
	}
	m := New(opts)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

func TestTypingRelaysToSession(t *testing.T) {
	m := newTestModel(t, Options{})
	typeText(m, "  hi  ")

	if got := m.session.CurrentInputText(); got != "  hi  " {
		t.Fatalf("CurrentInputText() = %q, want %q", got, "  hi  ")
	}
	if m.session.Len() != 0 {
		t.Fatalf("typing must not submit, Len() = %d", m.session.Len())
	}
}

func TestEnterSubmitsTrimmedLine(t *testing.T) {
	m := newTestModel(t, Options{})
	typeText(m, "  hello world  ")
	press(m, tea.KeyEnter)

	want := []chat.Entry{{Text: "hello world", Sequence: 0}}
	if got := m.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() = %+v, want %+v", got, want)
	}
	if m.textarea.Value() != "" || m.session.CurrentInputText() != "" {
		t.Fatalf("composer not cleared: textarea=%q session=%q", m.textarea.Value(), m.session.CurrentInputText())
	}
	if !strings.Contains(m.viewport.View(), "hello world") {
		t.Fatalf("viewport does not show submitted line")
	}
}

func TestEnterOnBlankLeavesComposer(t *testing.T) {
	m := newTestModel(t, Options{})
	typeText(m, "   ")
	press(m, tea.KeyEnter)

	if m.session.Len() != 0 {
		t.Fatalf("blank submit appended an entry")
	}
	if m.textarea.Value() != "   " || m.session.CurrentInputText() != "   " {
		t.Fatalf("blank submit changed composer: textarea=%q session=%q", m.textarea.Value(), m.session.CurrentInputText())
	}
}

func TestInterleavedBlankSubmits(t *testing.T) {
	m := newTestModel(t, Options{})
	typeText(m, "a")
	press(m, tea.KeyEnter)
	typeText(m, "  ")
	press(m, tea.KeyEnter)
	m.setComposer("")
	typeText(m, "b")
	press(m, tea.KeyEnter)

	want := []chat.Entry{{Text: "a", Sequence: 0}, {Text: "b", Sequence: 1}}
	if got := m.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() = %+v, want %+v", got, want)
	}
}

func TestAltEnterInsertsNewline(t *testing.T) {
	m := newTestModel(t, Options{})
	typeText(m, "a")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	typeText(m, "b")

	if m.session.Len() != 0 {
		t.Fatalf("alt+enter must not submit")
	}
	if got := m.session.CurrentInputText(); got != "a\nb" {
		t.Fatalf("CurrentInputText() = %q, want %q", got, "a\nb")
	}
	if m.textarea.Height() != 2 {
		t.Fatalf("composer height = %d, want 2", m.textarea.Height())
	}
}

func TestHistoryRecallGoesThroughSession(t *testing.T) {
	m := newTestModel(t, Options{})
	typeText(m, "first")
	press(m, tea.KeyEnter)
	typeText(m, "draft")

	press(m, tea.KeyCtrlP)
	if got := m.session.CurrentInputText(); got != "first" {
		t.Fatalf("after ctrl+p CurrentInputText() = %q, want %q", got, "first")
	}
	press(m, tea.KeyCtrlN)
	if got := m.session.CurrentInputText(); got != "draft" {
		t.Fatalf("after ctrl+n CurrentInputText() = %q, want %q", got, "draft")
	}
}

func TestCopyTranscript(t *testing.T) {
	var copied string
	m := newTestModel(t, Options{Clipboard: func(s string) error {
		copied = s
		return nil
	}})

	for _, msg := range drain(press(m, tea.KeyCtrlY)) {
		m.Update(msg)
	}
	if m.notice != "nothing to copy" {
		t.Fatalf("notice = %q, want %q", m.notice, "nothing to copy")
	}

	typeText(m, "one")
	press(m, tea.KeyEnter)
	typeText(m, "two")
	press(m, tea.KeyEnter)
	for _, msg := range drain(press(m, tea.KeyCtrlY)) {
		m.Update(msg)
	}
	if copied != "one\ntwo\n" {
		t.Fatalf("copied = %q, want %q", copied, "one\ntwo\n")
	}
	if m.notice != "copied 2 lines" {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestCopyTranscriptError(t *testing.T) {
	m := newTestModel(t, Options{Clipboard: func(string) error {
		return errors.New("no clipboard")
	}})
	typeText(m, "one")
	press(m, tea.KeyEnter)
	for _, msg := range drain(press(m, tea.KeyCtrlY)) {
		m.Update(msg)
	}
	if !strings.Contains(m.notice, "no clipboard") {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestFindMode(t *testing.T) {
	m := newTestModel(t, Options{})
	for _, line := range []string{"apple pie", "banana", "apple tart"} {
		typeText(m, line)
		press(m, tea.KeyEnter)
	}

	press(m, tea.KeyCtrlF)
	if !m.finding {
		t.Fatalf("ctrl+f did not open find bar")
	}
	typeText(m, "apple")
	if len(m.matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(m.matches))
	}
	if m.session.CurrentInputText() != "" {
		t.Fatalf("find query leaked into composer: %q", m.session.CurrentInputText())
	}
	if !strings.Contains(m.View(), "find:") {
		t.Fatalf("view does not show find bar")
	}

	press(m, tea.KeyEsc)
	if m.finding || m.matches != nil {
		t.Fatalf("esc did not close find bar")
	}
	if m.session.Len() != 3 {
		t.Fatalf("find must not change transcript, Len() = %d", m.session.Len())
	}
}

func TestViewShowsStatus(t *testing.T) {
	m := newTestModel(t, Options{Title: "Lobby"})
	view := m.View()
	if !strings.Contains(view, "Lobby") {
		t.Fatalf("view missing title")
	}
	if !strings.Contains(view, emptyTranscriptText) {
		t.Fatalf("view missing empty transcript hint")
	}
	typeText(m, "x")
	press(m, tea.KeyEnter)
	if !strings.Contains(m.View(), "Messages: 1") {
		t.Fatalf("view missing message count")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	cmd := press(m, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatalf("ctrl+c returned nil command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c did not quit")
	}
}

func TestNewWithExistingSession(t *testing.T) {
	s := chat.NewSession()
	s.TextChanged("earlier")
	s.Submit()
	s.TextChanged("pending")

	m := New(Options{Session: s})
	if m.textarea.Value() != "pending" {
		t.Fatalf("composer = %q, want %q", m.textarea.Value(), "pending")
	}
	press(m, tea.KeyCtrlP)
	if got := m.session.CurrentInputText(); got != "earlier" {
		t.Fatalf("history not seeded, CurrentInputText() = %q", got)
	}
}

func TestEditingRecalledLineStopsBrowsing(t *testing.T) {
	m := newTestModel(t, Options{})
	for _, line := range []string{"first", "second"} {
		typeText(m, line)
		press(m, tea.KeyEnter)
	}
	press(m, tea.KeyCtrlP)
	press(m, tea.KeyCtrlP)
	if got := m.session.CurrentInputText(); got != "first" {
		t.Fatalf("after two ctrl+p CurrentInputText() = %q, want %q", got, "first")
	}

	typeText(m, "X")
	if m.history.Browsing() {
		t.Fatalf("typing into a recalled line should end browsing")
	}
	press(m, tea.KeyCtrlN)
	if got := m.session.CurrentInputText(); got != "firstX" {
		t.Fatalf("ctrl+n overwrote the edit: CurrentInputText() = %q, want %q", got, "firstX")
	}
}

func TestStatusShowsWrappedLineCount(t *testing.T) {
	m := newTestModel(t, Options{})
	typeText(m, "short")
	press(m, tea.KeyEnter)
	if strings.Contains(m.View(), "Lines:") {
		t.Fatalf("line count should be hidden when every entry fits on one line")
	}

	typeText(m, strings.Repeat("word ", 40))
	press(m, tea.KeyEnter)
	lines := m.viewport.LineCount()
	if lines <= 2 {
		t.Fatalf("LineCount() = %d, want wrapped entry to span several lines", lines)
	}
	if !strings.Contains(m.View(), fmt.Sprintf("Lines: %d", lines)) {
		t.Fatalf("view missing line count %d", lines)
	}
}
