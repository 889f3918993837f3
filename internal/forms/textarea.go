// File: internal/forms/textarea.go
package forms

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// TextareaOptions 多行文本字段的装配参数
type TextareaOptions struct {
	// Label 渲染在输入框上方的标签
	Label string

	// Placeholder 占位提示
	Placeholder string

	// Width 输入框宽度，0 用默认
	Width int

	// Height 可见行数，0 用默认
	Height int

	// CharLimit 最大输入长度，0 不限制
	CharLimit int
}

// TextareaField 把一个多行 textarea 绑定到共享表单状态，
// 提交策略与 Field 相同：每次按键写回并重新校验。
type TextareaField struct {
	name  string
	opts  TextareaOptions
	state *State
	input textarea.Model
}

// NewTextareaField 创建多行文本字段
func NewTextareaField(state *State, name string, opts TextareaOptions) *TextareaField {
	ta := textarea.New()
	ta.Placeholder = opts.Placeholder
	if opts.Width > 0 {
		ta.SetWidth(opts.Width)
	}
	if opts.Height > 0 {
		ta.SetHeight(opts.Height)
	}
	if opts.CharLimit > 0 {
		ta.CharLimit = opts.CharLimit
	}
	ta.ShowLineNumbers = false

	ta.SetValue(displayValue(state.Value(name)))

	return &TextareaField{
		name:  name,
		opts:  opts,
		state: state,
		input: ta,
	}
}

// Name 字段名
func (f *TextareaField) Name() string {
	return f.name
}

// Focus 获得焦点
func (f *TextareaField) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur 失去焦点
func (f *TextareaField) Blur() {
	f.input.Blur()
}

// Focused 是否持有焦点
func (f *TextareaField) Focused() bool {
	return f.input.Focused()
}

// Update 处理输入事件并把最新值写回共享状态
func (f *TextareaField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.state.SetValue(f.name, f.input.Value())
	return cmd
}

// SetValue 程序化写入
func (f *TextareaField) SetValue(value any) {
	f.input.SetValue(displayValue(value))
	f.state.SetValue(f.name, f.input.Value())
}

// View 渲染标签、输入框和当前错误
func (f *TextareaField) View() string {
	var b strings.Builder
	if f.opts.Label != "" {
		b.WriteString(fieldLabelStyle.Render(f.opts.Label))
		b.WriteString("\n")
	}
	b.WriteString(f.input.View())
	if msg := ErrorText(f.state.Error(f.name)); msg != "" {
		b.WriteString("\n")
		b.WriteString(msg)
	}
	return b.String()
}
