// File: internal/pkg/i18n/error_messages.go
package i18n

import (
	"bazaar-tui/internal/pkg/xerrors"

	"golang.org/x/text/language"
)

// ErrorMessages 错误消息的多语言映射
var ErrorMessages = map[xerrors.ErrorCode]map[language.Tag]string{
	// 1xxxxx: 通用错误码
	xerrors.CodeSuccess:          {language.Chinese: "操作成功", language.English: "Operation successful"},
	xerrors.CodeInternalError:    {language.Chinese: "内部错误", language.English: "Internal error"},
	xerrors.CodeInvalidParams:    {language.Chinese: "参数错误", language.English: "Invalid parameters"},
	xerrors.CodeInvalidRequest:   {language.Chinese: "请求格式错误", language.English: "Invalid request format"},
	xerrors.CodeResourceNotFound: {language.Chinese: "资源不存在", language.English: "Resource not found"},
	xerrors.CodeRequestTimeout:   {language.Chinese: "请求超时", language.English: "Request timed out"},

	// 2xxxxx: 会话与认证错误码
	xerrors.CodeAuthenticationFailed: {language.Chinese: "认证失败", language.English: "Authentication failed"},
	xerrors.CodeInvalidCredentials:   {language.Chinese: "邮箱或密码不正确", language.English: "Incorrect email or password"},
	xerrors.CodeSessionExpired:       {language.Chinese: "会话已过期，请重新登录", language.English: "Your session has expired, please sign in again"},
	xerrors.CodeNotLoggedIn:          {language.Chinese: "请先登录", language.English: "Please sign in first"},
	xerrors.CodeEmailExists:          {language.Chinese: "邮箱已注册", language.English: "Email is already registered"},

	// 3xxxxx: 表单校验错误码
	xerrors.CodeFormValidationFailed: {language.Chinese: "表单校验失败", language.English: "Form validation failed"},
	xerrors.CodeFormDefaultsFailed:   {language.Chinese: "表单默认值加载失败", language.English: "Failed to load form defaults"},

	// 4xxxxx: API 传输错误码
	xerrors.CodeAPIRequestFailed: {language.Chinese: "网络请求失败", language.English: "Network request failed"},
	xerrors.CodeAPIDecodeFailed:  {language.Chinese: "响应解析失败", language.English: "Failed to decode response"},
	xerrors.CodeAPIStatusError:   {language.Chinese: "服务端返回异常状态", language.English: "Unexpected response status"},

	// 5xxxxx: 数据转换错误码
	xerrors.CodeMissingWireField: {language.Chinese: "响应缺少必填字段", language.English: "Response is missing a required field"},
	xerrors.CodeInvalidDecimal:   {language.Chinese: "金额格式不正确", language.English: "Invalid decimal amount"},

	// 6xxxxx: 商城业务错误码
	xerrors.CodeProductNotFound:     {language.Chinese: "商品不存在", language.English: "Product not found"},
	xerrors.CodeProductOutOfStock:   {language.Chinese: "商品库存不足", language.English: "Product is out of stock"},
	xerrors.CodeCartProductNotFound: {language.Chinese: "购物车中无此商品", language.English: "Product is not in your cart"},

	// 7xxxxx: 对象存储错误码
	xerrors.CodeUploadFailed:         {language.Chinese: "图片上传失败", language.English: "Image upload failed"},
	xerrors.CodeStorageConfigMissing: {language.Chinese: "对象存储配置缺失", language.English: "Object storage is not configured"},
}

// GetErrorMessage 获取错误码对应语言的消息
func GetErrorMessage(code xerrors.ErrorCode, lang language.Tag) string {
	if messages, ok := ErrorMessages[code]; ok {
		if msg, ok := messages[lang]; ok {
			return msg
		}
		// 如果指定语言没有翻译，返回英文（默认）
		if msg, ok := messages[language.English]; ok {
			return msg
		}
	}
	// 如果完全没有定义，返回通用错误消息
	if lang == language.Chinese {
		return "未知错误"
	}
	return "Unknown error"
}
