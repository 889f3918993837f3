// File: internal/pkg/xerrors/codes.go
package xerrors

import "fmt"

// ErrorCode 错误码类型（类型安全）
type ErrorCode int

// IsValid 检查错误码是否在预定义列表中
func (c ErrorCode) IsValid() bool {
	_, exists := codeMessages[c]
	return exists
}

// String 返回错误码的字符串表示
func (c ErrorCode) String() string {
	if msg, ok := codeMessages[c]; ok {
		return fmt.Sprintf("%d (%s)", c, msg)
	}
	return fmt.Sprintf("%d (未定义的错误码)", c)
}

// Message 返回错误码对应的消息
func (c ErrorCode) Message() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return "未知错误"
}

// ToInt 转换为 int（用于 JSON 序列化等场景）
func (c ErrorCode) ToInt() int {
	return int(c)
}

// -----------------------------------------------------------------------------
// 业务错误码统一定义
// 按模块或领域对错误码进行分段，便于管理。
// -----------------------------------------------------------------------------
const (
	// 1xxxxx: 通用错误码
	CodeSuccess          ErrorCode = 100000 // 操作成功
	CodeInternalError    ErrorCode = 100001 // 内部错误
	CodeInvalidParams    ErrorCode = 100002 // 参数错误
	CodeInvalidRequest   ErrorCode = 100003 // 请求格式错误
	CodeResourceNotFound ErrorCode = 100404 // 资源不存在
	CodeRequestTimeout   ErrorCode = 100408 // 请求超时

	// 2xxxxx: 会话与认证错误码
	CodeAuthenticationFailed ErrorCode = 200001 // 认证失败
	CodeInvalidCredentials   ErrorCode = 200002 // 凭据无效
	CodeSessionExpired       ErrorCode = 200003 // 会话过期
	CodeNotLoggedIn          ErrorCode = 200004 // 未登录
	CodeEmailExists          ErrorCode = 200005 // 邮箱已注册

	// 3xxxxx: 表单校验错误码
	CodeFormValidationFailed ErrorCode = 300001 // 表单校验失败
	CodeFormDefaultsFailed   ErrorCode = 300002 // 表单默认值加载失败

	// 4xxxxx: API 传输错误码
	CodeAPIRequestFailed ErrorCode = 400001 // API 请求失败
	CodeAPIDecodeFailed  ErrorCode = 400002 // API 响应解析失败
	CodeAPIStatusError   ErrorCode = 400003 // API 返回非预期状态码

	// 5xxxxx: 数据转换错误码
	CodeMissingWireField ErrorCode = 500001 // 响应缺少必填字段
	CodeInvalidDecimal   ErrorCode = 500002 // 金额字段不是合法的十进制串

	// 6xxxxx: 商城业务错误码
	CodeProductNotFound     ErrorCode = 600001 // 商品不存在
	CodeProductOutOfStock   ErrorCode = 600002 // 商品库存不足
	CodeCartProductNotFound ErrorCode = 600003 // 购物车中无此商品

	// 7xxxxx: 对象存储错误码
	CodeUploadFailed         ErrorCode = 700001 // 图片上传失败
	CodeStorageConfigMissing ErrorCode = 700002 // 对象存储配置缺失
)

var codeMessages = map[ErrorCode]string{
	CodeSuccess:          "操作成功",
	CodeInternalError:    "内部错误",
	CodeInvalidParams:    "参数错误",
	CodeInvalidRequest:   "请求格式错误",
	CodeResourceNotFound: "资源不存在",
	CodeRequestTimeout:   "请求超时",

	CodeAuthenticationFailed: "认证失败",
	CodeInvalidCredentials:   "凭据无效",
	CodeSessionExpired:       "会话过期",
	CodeNotLoggedIn:          "未登录",
	CodeEmailExists:          "邮箱已注册",

	CodeFormValidationFailed: "表单校验失败",
	CodeFormDefaultsFailed:   "表单默认值加载失败",

	CodeAPIRequestFailed: "API 请求失败",
	CodeAPIDecodeFailed:  "API 响应解析失败",
	CodeAPIStatusError:   "API 返回非预期状态码",

	CodeMissingWireField: "响应缺少必填字段",
	CodeInvalidDecimal:   "金额字段不是合法的十进制串",

	CodeProductNotFound:     "商品不存在",
	CodeProductOutOfStock:   "商品库存不足",
	CodeCartProductNotFound: "购物车中无此商品",

	CodeUploadFailed:         "图片上传失败",
	CodeStorageConfigMissing: "对象存储配置缺失",
}

// 辅助函数
// getCategoryByCode 根据错误码获取分类
func getCategoryByCode(code ErrorCode) string {
	switch {
	case code >= 100000 && code < 200000:
		return "system"
	case code >= 200000 && code < 300000:
		return "authentication"
	case code >= 300000 && code < 400000:
		return "form"
	case code >= 400000 && code < 500000:
		return "transport"
	case code >= 500000 && code < 600000:
		return "transform"
	case code >= 600000 && code < 700000:
		return "business"
	case code >= 700000 && code < 800000:
		return "storage"
	default:
		return "unknown"
	}
}

// getLevelByCode 根据错误码获取级别
func getLevelByCode(code ErrorCode) ErrorLevel {
	switch {
	case code == CodeSuccess:
		return LevelInfo
	case code >= 100001 && code <= 100003: // 参数错误等
		return LevelWarn
	case code >= 300000 && code < 400000: // 表单错误在字段旁边提示，不是故障
		return LevelWarn
	case code >= 500000 && code < 600000: // 响应数据损坏，视为严重
		return LevelCritical
	default:
		return LevelError
	}
}

// isRetryableByCode 根据错误码判断是否可重试
func isRetryableByCode(code ErrorCode) bool {
	retryableCodes := map[ErrorCode]bool{
		CodeInternalError:    true,
		CodeRequestTimeout:   true,
		CodeAPIRequestFailed: true,
		CodeUploadFailed:     true,
	}
	return retryableCodes[code]
}
