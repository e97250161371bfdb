package render

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// TranscriptViewport 包装 bubbles viewport：内容未变时跳过重设，
// 追加内容时若原本停在底部则继续贴底。
type TranscriptViewport struct {
	viewport.Model
	lastLines []string
}

func NewTranscriptViewport(width, height int) TranscriptViewport {
	return TranscriptViewport{Model: viewport.New(width, height)}
}

// Resize 更新宽高，宽度变化时丢弃缓存（换行结果随宽度变化）。
func (v *TranscriptViewport) Resize(width, height int) {
	if v.Width != width {
		v.lastLines = nil
	}
	v.Width = width
	v.Height = height
}

// HandleUpdate 代理 bubbles 的 Update（鼠标滚轮等）。
func (v *TranscriptViewport) HandleUpdate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.Model, cmd = v.Model.Update(msg)
	return cmd
}

// SetLines 更新内容，返回内容是否发生变化。
func (v *TranscriptViewport) SetLines(lines []string) bool {
	if v.lastLines != nil && slices.Equal(lines, v.lastLines) {
		return false
	}
	stickToBottom := v.AtBottom()
	v.lastLines = append([]string{}, lines...)
	v.SetContent(strings.Join(lines, "\n"))
	if stickToBottom {
		v.GotoBottom()
	}
	return true
}

// LineCount 返回当前内容的行数。
func (v *TranscriptViewport) LineCount() int {
	return len(v.lastLines)
}
