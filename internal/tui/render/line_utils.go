package render

import "github.com/mattn/go-runewidth"

// truncate 按显示宽度截断，超出部分以 … 结尾。
func truncate(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
