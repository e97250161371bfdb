package chat

import (
	"iter"
	"strings"
)

// Entry 是已提交的一行聊天记录，追加后不可变。
type Entry struct {
	Text     string
	Sequence int
}

// Transcript 是只追加的聊天记录，插入顺序即显示顺序与序号顺序。
type Transcript struct {
	entries []Entry
}

// Append 追加一行并分配下一个序号；调用方保证 text 非空。
func (t *Transcript) Append(text string) Entry {
	e := Entry{Text: text, Sequence: len(t.entries)}
	t.entries = append(t.entries, e)
	return e
}

// Entries 按插入顺序遍历记录。可重复遍历，遍历方无法修改底层日志。
func (t *Transcript) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range t.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Len 返回记录条数。
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Format 将记录渲染为纯文本，每条一行，用于复制到剪贴板。
func Format(entries iter.Seq[Entry]) string {
	var b strings.Builder
	for e := range entries {
		b.WriteString(e.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
