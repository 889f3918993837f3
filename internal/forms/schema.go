// File: internal/forms/schema.go
package forms

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// FieldRule 单个字段的声明式约束。
// 规则集是封闭的：每个选项的含义都在这里定义，不接受透传的任意标签。
type FieldRule struct {
	// Label 错误消息里的字段展示名，缺省用字段名
	Label string

	// Required 必填。空串、nil、空切片都算未填
	Required bool

	// Email 必须是合法邮箱
	Email bool

	// UUID 必须是合法 UUID 字符串
	UUID bool

	// Min / Max 下界与上界。字符串按长度算，数字按数值算
	Min *float64
	Max *float64

	// OneOf 取值必须是其中之一
	OneOf []string
}

// Refinement 跨字段约束（如"确认密码必须与密码一致"）
type Refinement struct {
	// Field 校验失败时错误挂到哪个字段
	Field string

	// DependsOn 参与计算的字段，其中任一字段变化都会重跑本约束
	DependsOn []string

	// Message 校验失败时的错误消息
	Message string

	// Check 返回 true 表示通过
	Check func(values Values) bool
}

// Schema 表单的声明式校验描述。
// 构造完成后不再变化，同一个实例在表单整个生命周期内复用。
type Schema struct {
	fields      map[string]FieldRule
	order       []string
	refinements []Refinement
	validate    *validator.Validate
}

// NewSchema 创建空 Schema
func NewSchema() *Schema {
	return &Schema{
		fields:   make(map[string]FieldRule),
		validate: validator.New(),
	}
}

// Field 声明一个字段的约束，返回自身便于链式调用
func (s *Schema) Field(name string, rule FieldRule) *Schema {
	if _, exists := s.fields[name]; !exists {
		s.order = append(s.order, name)
	}
	s.fields[name] = rule
	return s
}

// Refine 声明一个跨字段约束
func (s *Schema) Refine(field string, dependsOn []string, message string, check func(values Values) bool) *Schema {
	s.refinements = append(s.refinements, Refinement{
		Field:     field,
		DependsOn: dependsOn,
		Message:   message,
		Check:     check,
	})
	return s
}

// Fields 返回声明顺序的字段名
func (s *Schema) Fields() []string {
	return s.order
}

// Validate 校验全部字段，返回字段名到错误消息的映射。
// 字段自身的规则先跑，跨字段约束只在目标字段没有规则错误时附加。
func (s *Schema) Validate(values Values, lang language.Tag) map[string]string {
	errs := make(map[string]string)

	for _, name := range s.order {
		if msg := s.checkField(name, values[name], lang); msg != "" {
			errs[name] = msg
		}
	}

	for _, r := range s.refinements {
		if _, taken := errs[r.Field]; taken {
			continue
		}
		if !r.Check(values) {
			errs[r.Field] = r.Message
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateField 只校验一个字段及引用它的跨字段约束
func (s *Schema) validateField(name string, values Values, lang language.Tag) map[string]string {
	errs := make(map[string]string)

	if _, declared := s.fields[name]; declared {
		if msg := s.checkField(name, values[name], lang); msg != "" {
			errs[name] = msg
		}
	}

	for _, r := range s.refinements {
		if !dependsOn(r, name) {
			continue
		}
		if _, taken := errs[r.Field]; taken {
			continue
		}
		if !r.Check(values) {
			errs[r.Field] = r.Message
		}
	}

	return errs
}

// fieldsTouchedBy 返回字段变化后需要刷新错误位的字段集合
func (s *Schema) fieldsTouchedBy(name string) []string {
	touched := []string{name}
	for _, r := range s.refinements {
		if dependsOn(r, name) && r.Field != name {
			touched = append(touched, r.Field)
		}
	}
	return touched
}

func dependsOn(r Refinement, name string) bool {
	for _, field := range r.DependsOn {
		if field == name {
			return true
		}
	}
	return false
}

// checkField 用 validator 引擎跑单字段规则并翻译首个错误
func (s *Schema) checkField(name string, value any, lang language.Tag) string {
	rule, declared := s.fields[name]
	if !declared {
		return ""
	}

	tag := buildTag(rule)
	if tag == "" {
		return ""
	}

	// validator 不接受 nil 接口值，统一转成空串让 required 生效
	if value == nil {
		value = ""
	}

	err := s.validate.Var(value, tag)
	if err == nil {
		return ""
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return err.Error()
	}

	return translateFieldError(rule, name, validationErrs[0], lang)
}

// buildTag 把封闭的规则集编译成 validator 的标签串
func buildTag(rule FieldRule) string {
	var parts []string
	if rule.Required {
		parts = append(parts, "required")
	} else if len(parts) == 0 {
		// 非必填字段空值直接放行
		parts = append(parts, "omitempty")
	}
	if rule.Email {
		parts = append(parts, "email")
	}
	if rule.UUID {
		parts = append(parts, "uuid")
	}
	if rule.Min != nil {
		parts = append(parts, "min="+formatBound(*rule.Min))
	}
	if rule.Max != nil {
		parts = append(parts, "max="+formatBound(*rule.Max))
	}
	if len(rule.OneOf) > 0 {
		parts = append(parts, "oneof="+strings.Join(rule.OneOf, " "))
	}
	return strings.Join(parts, ",")
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// translateFieldError 把 validator 错误翻译成用户可读消息
func translateFieldError(rule FieldRule, name string, fe validator.FieldError, lang language.Tag) string {
	label := rule.Label
	if label == "" {
		label = name
	}
	zh := lang == language.Chinese
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		if zh {
			return fmt.Sprintf("%s不能为空", label)
		}
		return fmt.Sprintf("%s is required", label)
	case "email":
		if zh {
			return fmt.Sprintf("%s格式不正确,请输入有效的邮箱地址", label)
		}
		return fmt.Sprintf("%s must be a valid email address", label)
	case "uuid":
		if zh {
			return fmt.Sprintf("%s格式不正确,请输入有效的UUID", label)
		}
		return fmt.Sprintf("%s must be a valid UUID", label)
	case "min":
		if isString {
			if zh {
				return fmt.Sprintf("%s长度不能少于%s个字符", label, fe.Param())
			}
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		if zh {
			return fmt.Sprintf("%s不能小于%s", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if isString {
			if zh {
				return fmt.Sprintf("%s长度不能超过%s个字符", label, fe.Param())
			}
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		if zh {
			return fmt.Sprintf("%s不能大于%s", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "oneof":
		if zh {
			return fmt.Sprintf("%s的值必须是以下之一: %s", label, fe.Param())
		}
		return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
	default:
		if zh {
			return fmt.Sprintf("%s验证失败: %s", label, fe.Tag())
		}
		return fmt.Sprintf("%s failed validation: %s", label, fe.Tag())
	}
}
