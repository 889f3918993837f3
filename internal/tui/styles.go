// File: internal/tui/styles.go

// Package tui 终端商城界面：页面路由、会话守卫与各业务页面。
package tui

import "github.com/charmbracelet/lipgloss"

// 基础配色
var (
	colorPrimary = lipgloss.Color("63")
	colorAccent  = lipgloss.Color("205")
	colorMuted   = lipgloss.Color("241")
	colorDanger  = lipgloss.Color("196")
	colorSuccess = lipgloss.Color("42")
)

// Styles 页面共用的渲染样式
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Price    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Selected lipgloss.Style
	Skeleton lipgloss.Style
	Card     lipgloss.Style
	Help     lipgloss.Style
	Badge    lipgloss.Style
}

// DefaultStyles 默认样式集
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1),
		Subtitle: lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Price:    lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		Error:    lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(colorSuccess),
		Selected: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Skeleton: lipgloss.NewStyle().Foreground(colorMuted),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2),
		Help:     lipgloss.NewStyle().Foreground(colorMuted).Padding(1, 1, 0, 1),
		Badge:    lipgloss.NewStyle().Background(colorAccent).Foreground(lipgloss.Color("0")).Padding(0, 1),
	}
}

// skeletonRow 加载中的占位行
const skeletonRow = "░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░"
