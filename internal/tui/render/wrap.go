package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText 按显示宽度做词级别换行，保留显式换行。
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	lines := []string{}
	for _, raw := range strings.Split(text, "\n") {
		if raw == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapLine(raw, width)...)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// wrapLine 按单个空格切分，连续空格在行内原样保留，只有折行处的分隔空格被吃掉。
func wrapLine(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	out := []string{}
	current := ""
	for i, tok := range strings.Split(line, " ") {
		if i > 0 {
			if runewidth.StringWidth(current)+1+runewidth.StringWidth(tok) <= width {
				current += " " + tok
				continue
			}
			out = append(out, current)
		}
		if runewidth.StringWidth(tok) > width {
			chunks := breakLongWord(tok, width)
			out = append(out, chunks[:len(chunks)-1]...)
			current = chunks[len(chunks)-1]
			continue
		}
		current = tok
	}
	return append(out, current)
}

func breakLongWord(word string, width int) []string {
	out := []string{}
	current := []rune{}
	w := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && len(current) > 0 {
			out = append(out, string(current))
			current = current[:0]
			w = 0
		}
		current = append(current, r)
		w += rw
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	return out
}
