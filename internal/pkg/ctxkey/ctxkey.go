// File: internal/pkg/ctxkey/ctxkey.go
package ctxkey

import "context"

// ContextKey 统一的 context key 类型
type ContextKey string

const (
	// Language 语言偏好
	Language ContextKey = "language"

	// RequestID 本次 API 请求 ID（客户端生成，用于日志关联）
	RequestID ContextKey = "request_id"

	// UserEmail 当前登录用户邮箱（会话解析后设置）
	UserEmail ContextKey = "user_email"

	// Page 当前所在页面（TUI 路由设置，用于日志关联）
	Page ContextKey = "page"
)

// WithValue 在 context 中设置指定 key 的值
func WithValue(ctx context.Context, key ContextKey, value interface{}) context.Context {
	return context.WithValue(ctx, key, value)
}

// GetString 从 context 中获取字符串类型的值
func GetString(ctx context.Context, key ContextKey) string {
	if value, ok := ctx.Value(key).(string); ok {
		return value
	}
	return ""
}
