package render

import (
	"iter"
	"strings"

	"chatlog/internal/chat"

	"github.com/charmbracelet/lipgloss"
)

const (
	entryPrefix = "› "
	entryIndent = "  "
)

var (
	prefixStyle    = lipgloss.NewStyle().Faint(true).Bold(true)
	indentStyle    = lipgloss.NewStyle().Faint(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454")).Bold(true)
)

// RenderEntries 将聊天记录渲染为按宽度换行后的终端行。
// 每条记录首行带 "› " 前缀，续行缩进两列。
func RenderEntries(entries iter.Seq[chat.Entry], width int) []string {
	wrapWidth := width - len(entryIndent)
	if wrapWidth < 1 {
		wrapWidth = width
	}
	var lines []string
	for e := range entries {
		body := wrapText(strings.TrimRight(e.Text, "\n"), wrapWidth)
		for i, l := range body {
			if i == 0 {
				lines = append(lines, prefixStyle.Render(entryPrefix)+l)
				continue
			}
			lines = append(lines, indentStyle.Render(entryIndent)+l)
		}
	}
	return lines
}

// RenderMatches 渲染搜索结果，命中字符高亮，单行截断到 width。
func RenderMatches(matches []chat.Match, width int) []string {
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		text := firstLine(m.Entry.Text)
		if width > len(entryPrefix) {
			text = truncate(text, width-len(entryPrefix))
		}
		lines = append(lines, prefixStyle.Render(entryPrefix)+applyHighlights(text, m.Highlights))
	}
	return lines
}

func applyHighlights(text string, indexes []int) string {
	if len(indexes) == 0 {
		return text
	}
	marked := map[int]bool{}
	for _, idx := range indexes {
		marked[idx] = true
	}
	var b strings.Builder
	i := 0
	for _, r := range text {
		ch := string(r)
		if marked[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(ch)
		}
		i++
	}
	return b.String()
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx] + " …"
	}
	return text
}
