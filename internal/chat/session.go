package chat

import (
	"iter"
	"strings"

	"github.com/google/uuid"
)

// Session 组合输入缓冲区与聊天记录，二者生命周期一致。
// 只有一个隐式状态（编辑中）：状态完全由缓冲区内容与记录长度表达。
// Session 不做并发保护，由 UI 事件循环逐条投递事件。
type Session struct {
	id         string
	buffer     InputBuffer
	transcript Transcript
	keepRaw    bool
}

// Option 配置 Session。
type Option func(*Session)

// WithRawText 让提交时保存未裁剪的原文；是否为空仍按裁剪后的内容判断。
func WithRawText() Option {
	return func(s *Session) {
		s.keepRaw = true
	}
}

// WithID 指定会话 ID，默认随机生成。
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// NewSession 创建空会话：缓冲区为空，记录为空。
func NewSession(opts ...Option) *Session {
	s := &Session{id: uuid.NewString()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID 返回会话标识。
func (s *Session) ID() string {
	return s.id
}

// TextChanged 将 UI 的编辑结果写入缓冲区，不做任何校验。
func (s *Session) TextChanged(text string) {
	s.buffer.SetContent(text)
}

// Submit 尝试把缓冲区内容移入聊天记录。
// 裁剪后为空时什么都不做并返回 false；否则追加一条记录、清空缓冲区并返回 true。
func (s *Session) Submit() bool {
	raw := s.buffer.Content()
	normalized := strings.TrimSpace(raw)
	if normalized == "" {
		return false
	}
	text := normalized
	if s.keepRaw {
		text = raw
	}
	s.transcript.Append(text)
	s.buffer.Clear()
	return true
}

// CurrentInputText 返回正在编辑的文本。
func (s *Session) CurrentInputText() string {
	return s.buffer.Content()
}

// TranscriptEntries 按顺序返回聊天记录的只读视图。
func (s *Session) TranscriptEntries() iter.Seq[Entry] {
	return s.transcript.Entries()
}

// Len 返回聊天记录条数。
func (s *Session) Len() int {
	return s.transcript.Len()
}

// Last 返回最近一条记录。
func (s *Session) Last() (Entry, bool) {
	n := s.transcript.Len()
	if n == 0 {
		return Entry{}, false
	}
	return s.transcript.entries[n-1], true
}
