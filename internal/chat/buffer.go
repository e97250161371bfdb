package chat

// InputBuffer 保存用户正在编辑、尚未提交的文本。
// 编辑阶段不做校验，允许为空或只含空白。
type InputBuffer struct {
	content string
}

// SetContent 无条件替换缓冲区内容。
func (b *InputBuffer) SetContent(text string) {
	b.content = text
}

// Clear 清空缓冲区。
func (b *InputBuffer) Clear() {
	b.content = ""
}

// Content 返回当前内容。
func (b *InputBuffer) Content() string {
	return b.content
}
