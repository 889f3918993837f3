// File: internal/forms/state.go

// Package forms 通用的受控表单管线：
// 共享表单状态 + 声明式校验 Schema + 提交状态机 + 字段绑定适配器。
package forms

import (
	"sync"

	"golang.org/x/text/language"

	"bazaar-tui/internal/pkg/i18n"
)

// Values 表单值集合，按字段名索引
type Values map[string]any

// State 表单的共享可变状态。
// 字段绑定适配器逐键写入，提交状态机在异步提交前后翻转 isSubmitting。
// 随表单容器创建，容器销毁即废弃。
type State struct {
	mu           sync.RWMutex
	values       Values
	defaults     Values
	dirty        map[string]bool
	errors       map[string]string
	isSubmitting bool
	schema       *Schema
	lang         language.Tag
}

func newState(schema *Schema, defaults Values, lang language.Tag) *State {
	if defaults == nil {
		defaults = Values{}
	}
	values := make(Values, len(defaults))
	for name, value := range defaults {
		values[name] = value
	}
	if (lang == language.Tag{}) {
		lang = i18n.DefaultLanguage
	}
	return &State{
		values:   values,
		defaults: defaults,
		dirty:    make(map[string]bool),
		errors:   make(map[string]string),
		schema:   schema,
		lang:     lang,
	}
}

// Value 读取字段当前值，未写入过则返回默认值
func (s *State) Value(name string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if value, ok := s.values[name]; ok {
		return value
	}
	return s.defaults[name]
}

// StringValue 以字符串形式读取字段值
func (s *State) StringValue(name string) string {
	if value, ok := s.Value(name).(string); ok {
		return value
	}
	return ""
}

// StringsValue 以字符串切片形式读取字段值（组控件用）
func (s *State) StringsValue(name string) []string {
	if value, ok := s.Value(name).([]string); ok {
		return value
	}
	return nil
}

// SetValue 写入字段值。
// 空值（nil、空串、空切片）回落到该字段声明时的默认值，而不是清成未定义——
// 这个策略对文本、数字、下拉、日期各类字段统一生效。
// 每次写入都会重新校验该字段以及引用它的跨字段约束。
func (s *State) SetValue(name string, value any) {
	s.mu.Lock()
	if isEmptyValue(value) {
		value = s.defaults[name]
	}
	s.values[name] = value
	s.dirty[name] = true
	s.mu.Unlock()

	s.revalidateField(name)
}

// Error 读取字段当前的校验错误，无错误返回空串
func (s *State) Error(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors[name]
}

// Errors 返回全部字段错误的副本
func (s *State) Errors() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.errors))
	for name, msg := range s.errors {
		out[name] = msg
	}
	return out
}

// Dirty 字段是否被用户改过
func (s *State) Dirty(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty[name]
}

// IsSubmitting 是否正在提交
func (s *State) IsSubmitting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSubmitting
}

// IsValid 当前是否没有任何校验错误
func (s *State) IsValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.errors) == 0
}

// Values 返回当前全部字段值的副本
func (s *State) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Values, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}

// Reset 恢复到默认值并清空错误
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(Values, len(s.defaults))
	for name, value := range s.defaults {
		s.values[name] = value
	}
	s.dirty = make(map[string]bool)
	s.errors = make(map[string]string)
}

func (s *State) setSubmitting(submitting bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isSubmitting = submitting
}

func (s *State) setErrors(errs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = make(map[string]string, len(errs))
	for name, msg := range errs {
		s.errors[name] = msg
	}
}

// revalidateField 校验单个字段及引用它的跨字段约束
func (s *State) revalidateField(name string) {
	if s.schema == nil {
		return
	}

	s.mu.RLock()
	values := make(Values, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	lang := s.lang
	s.mu.RUnlock()

	errs := s.schema.validateField(name, values, lang)

	s.mu.Lock()
	// 本字段和受影响的跨字段约束目标都要刷新
	for _, field := range s.schema.fieldsTouchedBy(name) {
		if msg, ok := errs[field]; ok {
			s.errors[field] = msg
		} else {
			delete(s.errors, field)
		}
	}
	s.mu.Unlock()
}

// validateAll 提交前的整表校验，返回字段名到错误消息的映射
func (s *State) validateAll() map[string]string {
	if s.schema == nil {
		return nil
	}

	s.mu.RLock()
	values := make(Values, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	lang := s.lang
	s.mu.RUnlock()

	return s.schema.Validate(values, lang)
}

// isEmptyValue 判断写入值是否视为"空"
func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	default:
		return false
	}
}
