// File: internal/forms/errortext.go
package forms

import "github.com/charmbracelet/lipgloss"

var errorTextStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true)

// ErrorText 渲染一条字段错误。
// 消息为空时返回空串，调用方据此决定完全不占行。
func ErrorText(msg string) string {
	if msg == "" {
		return ""
	}
	return errorTextStyle.Render("⚠ " + msg)
}
