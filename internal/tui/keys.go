package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit     key.Binding
	Quit       key.Binding
	Find       key.Binding
	CloseFind  key.Binding
	Copy       key.Binding
	HistPrev   key.Binding
	HistNext   key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	LineUp     key.Binding
	LineDown   key.Binding
	ToggleHelp key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "发送")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "退出")),
		Find:       key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("Ctrl+F", "搜索")),
		CloseFind:  key.NewBinding(key.WithKeys("esc", "enter", "ctrl+f"), key.WithHelp("Esc", "关闭搜索")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("Ctrl+Y", "复制记录")),
		HistPrev:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("Ctrl+P", "上一条")),
		HistNext:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("Ctrl+N", "下一条")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "上翻")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "下翻")),
		LineUp:     key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("Alt+↑", "上滚")),
		LineDown:   key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("Alt+↓", "下滚")),
		ToggleHelp: key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "帮助")),
	}
}

// hintBindings 是底部提示行展示的按键。
func (k keyMap) hintBindings() []key.Binding {
	return []key.Binding{k.Submit, k.Find, k.Copy, k.HistPrev, k.ToggleHelp, k.Quit}
}

// helpBindings 是帮助浮层展示的全部按键。
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Submit, k.Quit, k.Find, k.Copy,
		k.HistPrev, k.HistNext, k.PageUp, k.PageDown, k.LineUp, k.LineDown, k.ToggleHelp,
	}
}
