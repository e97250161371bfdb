package tui

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"chatlog/internal/chat"
	"chatlog/internal/logger"
	"chatlog/internal/tui/render"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const emptyTranscriptText = "No messages yet. Type a line and press Enter."

type Options struct {
	// Session 为空时创建新会话。
	Session        *chat.Session
	Title          string
	Placeholder    string
	CopyableOutput bool
	Log            *logger.LogEntry
	// Clipboard 为空时写入系统剪贴板。
	Clipboard func(string) error
}

type noticeMsg struct {
	Text string
}

// Model 是 Bubble Tea 绑定层：只持有展示状态（尺寸、焦点、滚动、搜索），
// 领域状态全部在 chat.Session 中，每次转换后重新读取。
type Model struct {
	session   *chat.Session
	textarea  textarea.Model
	viewport  render.TranscriptViewport
	findInput textinput.Model
	help      help.Model
	keys      keyMap
	history   promptHistory
	log       *logger.LogEntry
	copyFn    func(string) error

	title           string
	finding         bool
	matches         []chat.Match
	showHelp        bool
	notice          string
	transcriptDirty bool
	width           int
	height          int
	// chatStatusHeight 为滚动状态栏预留高度。
	chatStatusHeight int
}

func New(opts Options) *Model {
	ti := textarea.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = "› "
	ti.CharLimit = 0
	ti.SetWidth(80)
	ti.SetHeight(1) // 默认单行，按需扩展
	ti.ShowLineNumbers = false
	ti.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ti.Focus()

	fi := textinput.New()
	fi.Prompt = "find: "
	fi.Placeholder = "search transcript"

	sess := opts.Session
	if sess == nil {
		sess = chat.NewSession()
	}
	log := opts.Log
	if log == nil {
		log = logger.Named("tui")
	}
	log = log.WithField("session_id", sess.ID())
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = "Chat"
	}

	m := &Model{
		session:          sess,
		textarea:         ti,
		viewport:         render.NewTranscriptViewport(80, 12),
		findInput:        fi,
		help:             help.New(),
		keys:             defaultKeyMap(),
		log:              log,
		copyFn:           copyFn,
		title:            title,
		transcriptDirty:  true,
		width:            80,
		height:           24,
		chatStatusHeight: 1,
	}
	m.textarea.SetValue(sess.CurrentInputText())
	for e := range sess.TranscriptEntries() {
		m.history.Add(e.Text)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	m.flushTranscript()
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.finish(cmds...)
	case noticeMsg:
		m.notice = msg.Text
		return m.finish(cmds...)
	case tea.MouseMsg:
		if cmd := m.viewport.HandleUpdate(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m.finish(cmds...)
	case tea.KeyMsg:
		if m.finding {
			return m.updateFind(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleHelp):
			m.showHelp = !m.showHelp
			return m.finish(cmds...)
		case key.Matches(msg, m.keys.Find):
			m.openFind()
			return m.finish(textinput.Blink)
		case key.Matches(msg, m.keys.Copy):
			return m.finish(m.copyTranscript())
		case key.Matches(msg, m.keys.HistPrev):
			if text, ok := m.history.Prev(m.textarea.Value()); ok {
				m.setComposer(text)
			}
			return m.finish(cmds...)
		case key.Matches(msg, m.keys.HistNext):
			if text, ok := m.history.Next(); ok {
				m.setComposer(text)
			}
			return m.finish(cmds...)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.PageUp()
			return m.finish(cmds...)
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.PageDown()
			return m.finish(cmds...)
		case key.Matches(msg, m.keys.LineUp):
			m.viewport.ScrollUp(1)
			return m.finish(cmds...)
		case key.Matches(msg, m.keys.LineDown):
			m.viewport.ScrollDown(1)
			return m.finish(cmds...)
		case key.Matches(msg, m.keys.Submit):
			m.submit()
			return m.finish(cmds...)
		}
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	if m.textarea.Value() != before && m.history.Browsing() {
		// 编辑了召回的内容后不再处于浏览状态，ctrl+n 不应覆盖编辑。
		m.history.ResetBrowsing()
	}
	m.syncComposer()
	return m.finish(cmds...)
}

func (m *Model) finish(cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	if m.transcriptDirty {
		m.flushTranscript()
	}
	return m, tea.Batch(cmds...)
}

// syncComposer 在输入框内容变化后把新值投递给会话。
func (m *Model) syncComposer() {
	value := m.textarea.Value()
	if value == m.session.CurrentInputText() {
		return
	}
	m.session.TextChanged(value)
	m.notice = ""
	m.setComposerHeight()
}

func (m *Model) setComposer(text string) {
	m.textarea.SetValue(text)
	m.syncComposer()
}

// submit 请求会话提交；空白输入时会话不变，输入框也保持原样。
func (m *Model) submit() {
	if !m.session.Submit() {
		return
	}
	last, _ := m.session.Last()
	m.history.Add(last.Text)
	m.log.WithField("sequence", last.Sequence).Debug("line submitted")
	m.textarea.SetValue(m.session.CurrentInputText())
	m.setComposerHeight()
	m.viewport.GotoBottom()
	m.refreshTranscript()
}

func (m *Model) openFind() {
	m.finding = true
	m.matches = nil
	m.findInput.Reset()
	m.findInput.Focus()
	m.textarea.Blur()
}

func (m *Model) closeFind() {
	m.finding = false
	m.matches = nil
	m.findInput.Blur()
	m.textarea.Focus()
}

func (m *Model) updateFind(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.CloseFind):
		m.closeFind()
		return m.finish()
	}
	var cmd tea.Cmd
	m.findInput, cmd = m.findInput.Update(msg)
	m.matches = chat.Find(m.session.TranscriptEntries(), m.findInput.Value())
	return m.finish(cmd)
}

func (m *Model) copyTranscript() tea.Cmd {
	n := m.session.Len()
	if n == 0 {
		return func() tea.Msg { return noticeMsg{Text: "nothing to copy"} }
	}
	text := chat.Format(m.session.TranscriptEntries())
	copyFn := m.copyFn
	log := m.log
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			log.WithError(err).Warn("copy transcript failed")
			return noticeMsg{Text: fmt.Sprintf("copy failed: %v", err)}
		}
		return noticeMsg{Text: fmt.Sprintf("copied %d lines", n)}
	}
}

func (m *Model) View() string {
	banner := renderBanner(m.title, m.session.ID(), m.width)
	var body string
	if m.finding {
		body = m.renderFind()
	} else {
		body = m.viewport.View()
		if status := m.renderScrollStatus(); status != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, body, status)
		}
	}
	chatPane := renderPane("", body, m.width, m.viewport.Height+m.chatStatusHeight)
	composer := renderPane("Message", m.textarea.View(), m.width, m.textarea.Height())
	status := statusLine(m.session.Len(), m.transcriptLines(), m.notice, m.width)
	hints := renderHints(m.help.ShortHelpView(m.keys.hintBindings()), m.width)
	content := lipgloss.JoinVertical(lipgloss.Left, banner, chatPane, composer, status, hints)

	if m.showHelp {
		overlay := modalStyle.Render(m.help.FullHelpView([][]key.Binding{m.keys.helpBindings()}))
		return lipgloss.JoinVertical(lipgloss.Left, content, overlay)
	}
	return content
}

// Entries 返回当前聊天记录的只读视图。
func (m *Model) Entries() []chat.Entry {
	return slices.Collect(m.session.TranscriptEntries())
}

// SessionID returns the id of the underlying session.
func (m *Model) SessionID() string {
	return m.session.ID()
}

func (m *Model) renderFind() string {
	lines := []string{m.findInput.View()}
	switch {
	case strings.TrimSpace(m.findInput.Value()) == "":
	case len(m.matches) == 0:
		lines = append(lines, hintStyle.Render("no matches"))
	default:
		limit := m.viewport.Height - 1
		if limit < 1 {
			limit = 1
		}
		rendered := render.RenderMatches(m.matches, m.viewport.Width)
		if len(rendered) > limit {
			rendered = rendered[:limit]
		}
		lines = append(lines, rendered...)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	composerHeight := m.textarea.Height() + 3 // title + border
	headerHeight := lipgloss.Height(renderBanner(m.title, m.session.ID(), width))
	statusHeight := 1
	hintsHeight := 1
	mainHeight := height - composerHeight - headerHeight - statusHeight - hintsHeight
	if mainHeight < 6 {
		mainHeight = 6
	}
	contentHeight := mainHeight - 2 // border
	if contentHeight < 3 {
		contentHeight = 3
	}
	statusReserve := 1
	if contentHeight <= statusReserve {
		statusReserve = 0
	}
	m.chatStatusHeight = statusReserve
	viewHeight := contentHeight - statusReserve
	if viewHeight < 1 {
		viewHeight = 1
	}
	chatWidth := width - 4 // border + padding
	if chatWidth < 10 {
		chatWidth = 10
	}
	m.viewport.Resize(chatWidth, viewHeight)
	m.textarea.SetWidth(chatWidth)
	m.findInput.Width = chatWidth - len(m.findInput.Prompt)
	m.refreshTranscript()
}

func (m *Model) setComposerHeight() {
	lines := strings.Count(m.textarea.Value(), "\n") + 1
	if lines > 6 {
		lines = 6
	}
	if m.textarea.Height() != lines {
		m.textarea.SetHeight(lines)
		if m.width > 0 && m.height > 0 {
			m.resize(m.width, m.height)
		}
	}
}

func (m *Model) refreshTranscript() {
	m.transcriptDirty = true
}

func (m *Model) flushTranscript() {
	m.transcriptDirty = false
	m.viewport.SetLines(m.renderTranscriptLines())
}

func (m *Model) renderTranscriptLines() []string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	lines := render.RenderEntries(m.session.TranscriptEntries(), width)
	if len(lines) == 0 {
		return []string{hintStyle.Render(emptyTranscriptText)}
	}
	return lines
}

func (m *Model) renderScrollStatus() string {
	if m.chatStatusHeight == 0 {
		return ""
	}
	percent := int(math.Round(m.viewport.ScrollPercent() * 100))
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	width := m.viewport.Width - 12
	if width < 10 {
		width = 10
	}
	filled := int(math.Round(float64(width) * float64(percent) / 100.0))
	if filled > width {
		filled = width
	}
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
	return hintStyle.Render(fmt.Sprintf("%s %3d%%", bar, percent))
}

var (
	accentColor = lipgloss.Color("#7D56F4")
	mutedColor  = lipgloss.Color("#7D7A85")
	hintStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("#FFB454"))
)

func renderBanner(title, sessionID string, width int) string {
	id := sessionID
	if len(id) > 8 {
		id = id[:8]
	}
	left := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render(title)
	right := hintStyle.Render("session " + id)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1).
		Width(maxInt(20, width-2)).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().PaddingLeft(2).Render(right)))
}

func renderPane(title string, body string, width int, height int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5E6472")).
		Padding(0, 1)
	if width > 0 {
		style = style.Width(maxInt(20, width-2))
	}
	content := body
	if strings.TrimSpace(title) != "" {
		titleText := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render(title)
		content = lipgloss.JoinVertical(lipgloss.Left, titleText, body)
		height++
	}
	if height > 0 {
		style = style.Height(height)
	}
	return style.Render(content)
}

// transcriptLines 返回记录换行后的行数；空记录时视口里只有提示语，计为 0。
func (m *Model) transcriptLines() int {
	if m.session.Len() == 0 {
		return 0
	}
	return m.viewport.LineCount()
}

func statusLine(count, lines int, notice string, width int) string {
	parts := []string{fmt.Sprintf("Messages: %d", count)}
	if lines > count {
		parts = append(parts, fmt.Sprintf("Lines: %d", lines))
	}
	if notice != "" {
		parts = append(parts, notice)
	}
	return hintStyle.
		Padding(0, 1).
		Width(maxInt(20, width)).
		Render(strings.Join(parts, " • "))
}

func renderHints(hint string, width int) string {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Width(maxInt(20, width)).
		Render(hint)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
