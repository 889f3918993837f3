// File: internal/forms/group.go
package forms

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GroupKind 组控件的呈现形态
type GroupKind int

const (
	// Checkbox 多选，值为字符串切片
	Checkbox GroupKind = iota
	// Radio 单选，值为字符串
	Radio
	// Switch 开关形态的多选，值为字符串切片
	Switch
)

// GroupLayout 选项的排布方向
type GroupLayout int

const (
	// LayoutVertical 纵向排布
	LayoutVertical GroupLayout = iota
	// LayoutHorizontal 横向排布
	LayoutHorizontal
)

// GroupOption 组内的一个选项
type GroupOption struct {
	Value string
	Label string
}

// GroupField 把一组同名选项绑定到共享表单状态。
// 多选形态（Checkbox / Switch）维护字符串切片，切换即增删成员；
// 单选形态（Radio）维护单个字符串。
type GroupField struct {
	name    string
	label   string
	kind    GroupKind
	layout  GroupLayout
	state   *State
	options []GroupOption
	cursor  int
	focused bool
}

// NewGroupField 创建组字段
func NewGroupField(state *State, name, label string, kind GroupKind, layout GroupLayout, options []GroupOption) *GroupField {
	return &GroupField{
		name:    name,
		label:   label,
		kind:    kind,
		layout:  layout,
		state:   state,
		options: options,
	}
}

// Name 字段名
func (g *GroupField) Name() string {
	return g.name
}

// Focus 获得焦点
func (g *GroupField) Focus() tea.Cmd {
	g.focused = true
	return nil
}

// Blur 失去焦点
func (g *GroupField) Blur() {
	g.focused = false
}

// Focused 是否持有焦点
func (g *GroupField) Focused() bool {
	return g.focused
}

// Update 处理按键：方向键移动光标，空格/回车切换选中
func (g *GroupField) Update(msg tea.Msg) tea.Cmd {
	if !g.focused {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	prevKey, nextKey := "up", "down"
	if g.layout == LayoutHorizontal {
		prevKey, nextKey = "left", "right"
	}

	switch keyMsg.String() {
	case prevKey:
		if g.cursor > 0 {
			g.cursor--
		}
	case nextKey:
		if g.cursor < len(g.options)-1 {
			g.cursor++
		}
	case " ", "enter":
		g.Toggle(g.cursor)
	}
	return nil
}

// Toggle 切换指定下标选项的选中状态
func (g *GroupField) Toggle(index int) {
	if index < 0 || index >= len(g.options) {
		return
	}
	value := g.options[index].Value

	if g.kind == Radio {
		g.state.SetValue(g.name, value)
		return
	}

	selected := g.state.StringsValue(g.name)
	for i, v := range selected {
		if v == value {
			// 选中集合为空时写 nil，让默认值回落策略接管
			next := append(append([]string{}, selected[:i]...), selected[i+1:]...)
			if len(next) == 0 {
				g.state.SetValue(g.name, nil)
			} else {
				g.state.SetValue(g.name, next)
			}
			return
		}
	}
	g.state.SetValue(g.name, append(append([]string{}, selected...), value))
}

// Selected 选项当前是否选中
func (g *GroupField) Selected(value string) bool {
	if g.kind == Radio {
		return g.state.StringValue(g.name) == value
	}
	for _, v := range g.state.StringsValue(g.name) {
		if v == value {
			return true
		}
	}
	return false
}

// View 按形态与排布渲染选项组
func (g *GroupField) View() string {
	var rendered []string
	for i, opt := range g.options {
		marker := g.marker(opt.Value)
		line := marker + " " + opt.Label
		if g.focused && i == g.cursor {
			line = groupCursorStyle.Render(line)
		}
		rendered = append(rendered, line)
	}

	var body string
	if g.layout == LayoutHorizontal {
		body = strings.Join(rendered, "   ")
	} else {
		body = strings.Join(rendered, "\n")
	}

	var b strings.Builder
	if g.label != "" {
		b.WriteString(fieldLabelStyle.Render(g.label))
		b.WriteString("\n")
	}
	b.WriteString(body)
	if msg := ErrorText(g.state.Error(g.name)); msg != "" {
		b.WriteString("\n")
		b.WriteString(msg)
	}
	return b.String()
}

func (g *GroupField) marker(value string) string {
	selected := g.Selected(value)
	switch g.kind {
	case Radio:
		if selected {
			return "(•)"
		}
		return "( )"
	case Switch:
		if selected {
			return "[on ]"
		}
		return "[off]"
	default:
		if selected {
			return "[x]"
		}
		return "[ ]"
	}
}

var groupCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
