// File: internal/forms/field.go
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FieldOptions 文本类字段的装配参数。
// 选项集是封闭的，适配器只认识这里列出的键。
type FieldOptions struct {
	// Label 渲染在输入框上方的标签
	Label string

	// Placeholder 占位提示
	Placeholder string

	// Width 输入框宽度，0 用默认
	Width int

	// CharLimit 最大输入长度，0 不限制
	CharLimit int

	// Secret 密码态，回显为掩码
	Secret bool

	// Numeric 数字态：只接受数字输入，提交值为整数；
	// 空串視为"未填"而不是 0
	Numeric bool
}

// Field 把一个 textinput 绑定到共享表单状态：
// 每次按键后把当前值写回 State 并触发该字段的重新校验。
type Field struct {
	name  string
	opts  FieldOptions
	state *State
	input textinput.Model
}

// NewTextField 创建文本字段
func NewTextField(state *State, name string, opts FieldOptions) *Field {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	if opts.Width > 0 {
		ti.Width = opts.Width
	}
	if opts.CharLimit > 0 {
		ti.CharLimit = opts.CharLimit
	}
	if opts.Secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	if opts.Numeric {
		ti.Validate = func(s string) error {
			for _, r := range s {
				if r < '0' || r > '9' {
					return fmt.Errorf("only digits allowed")
				}
			}
			return nil
		}
	}

	// 初始值取状态里的当前值（含默认值）
	ti.SetValue(displayValue(state.Value(name)))

	return &Field{
		name:  name,
		opts:  opts,
		state: state,
		input: ti,
	}
}

// NewPasswordField 创建密码字段
func NewPasswordField(state *State, name string, opts FieldOptions) *Field {
	opts.Secret = true
	return NewTextField(state, name, opts)
}

// NewNumberField 创建数字字段
func NewNumberField(state *State, name string, opts FieldOptions) *Field {
	opts.Numeric = true
	return NewTextField(state, name, opts)
}

// Name 字段名
func (f *Field) Name() string {
	return f.name
}

// Focus 获得焦点
func (f *Field) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur 失去焦点
func (f *Field) Blur() {
	f.input.Blur()
}

// Focused 是否持有焦点
func (f *Field) Focused() bool {
	return f.input.Focused()
}

// Update 处理输入事件并把最新值写回共享状态
func (f *Field) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.commit()
	return cmd
}

// SetValue 程序化写入（比如 Reset 后回填）
func (f *Field) SetValue(value any) {
	f.input.SetValue(displayValue(value))
	f.commit()
}

// commit 把输入框当前内容按字段类型转换后写入状态。
// 数字字段的空串表示"未填",写 nil 让默认值回落策略接管。
func (f *Field) commit() {
	raw := f.input.Value()
	if f.opts.Numeric {
		if raw == "" {
			f.state.SetValue(f.name, nil)
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			f.state.SetValue(f.name, nil)
			return
		}
		f.state.SetValue(f.name, n)
		return
	}
	f.state.SetValue(f.name, raw)
}

// View 渲染标签、输入框和当前错误
func (f *Field) View() string {
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

// SelectOption 下拉选项
type SelectOption struct {
	Value string
	Label string
}

// SelectField 单选下拉：上下键移动、回车确认，值写回共享状态
type SelectField struct {
	name    string
	label   string
	state   *State
	options []SelectOption
	cursor  int
	focused bool
	open    bool
}

// NewSelectField 创建下拉字段。
// 状态里已有的值（含默认值）会定位初始光标。
func NewSelectField(state *State, name, label string, options []SelectOption) *SelectField {
	f := &SelectField{
		name:    name,
		label:   label,
		state:   state,
		options: options,
	}
	current := state.StringValue(name)
	for i, opt := range options {
		if opt.Value == current {
			f.cursor = i
			break
		}
	}
	return f
}

// Name 字段名
func (f *SelectField) Name() string {
	return f.name
}

// Focus 获得焦点
func (f *SelectField) Focus() tea.Cmd {
	f.focused = true
	return nil
}

// Blur 失去焦点并收起选项
func (f *SelectField) Blur() {
	f.focused = false
	f.open = false
}

// Focused 是否持有焦点
func (f *SelectField) Focused() bool {
	return f.focused
}

// Update 处理按键：回车展开/确认，上下键移动光标
func (f *SelectField) Update(msg tea.Msg) tea.Cmd {
	if !f.focused {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "enter", " ":
		if !f.open {
			f.open = true
			return nil
		}
		f.open = false
		if len(f.options) > 0 {
			f.state.SetValue(f.name, f.options[f.cursor].Value)
		}
	case "up", "k":
		if f.open && f.cursor > 0 {
			f.cursor--
		}
	case "down", "j":
		if f.open && f.cursor < len(f.options)-1 {
			f.cursor++
		}
	case "esc":
		f.open = false
	}
	return nil
}

// View 渲染下拉框
func (f *SelectField) View() string {
	var b strings.Builder
	if f.label != "" {
		b.WriteString(fieldLabelStyle.Render(f.label))
		b.WriteString("\n")
	}

	selected := f.state.StringValue(f.name)
	display := ""
	for _, opt := range f.options {
		if opt.Value == selected {
			display = opt.Label
			break
		}
	}
	if display == "" {
		display = selectPlaceholder
	}
	b.WriteString(selectBoxStyle.Render(display + " ▾"))

	if f.open {
		for i, opt := range f.options {
			b.WriteString("\n")
			if i == f.cursor {
				b.WriteString(selectCursorStyle.Render("> " + opt.Label))
			} else {
				b.WriteString("  " + opt.Label)
			}
		}
	}

	if msg := ErrorText(f.state.Error(f.name)); msg != "" {
		b.WriteString("\n")
		b.WriteString(msg)
	}
	return b.String()
}

const selectPlaceholder = "Select..."

var (
	fieldLabelStyle   = lipgloss.NewStyle().Bold(true)
	selectBoxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	selectCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// displayValue 把状态值转成输入框可编辑的字符串
func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
