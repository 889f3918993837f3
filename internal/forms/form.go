// File: internal/forms/form.go
package forms

import (
	"context"

	"golang.org/x/text/language"

	"bazaar-tui/internal/pkg/log"
	"bazaar-tui/internal/pkg/xerrors"
)

// Config 表单容器的装配参数
type Config struct {
	// Schema 校验描述，nil 表示任何输入都视为合法
	Schema *Schema

	// DefaultValues 静态默认值
	DefaultValues Values

	// DefaultsFunc 异步默认值加载器（比如编辑页先拉取现有数据）。
	// 只在 New 时调用一次，返回值覆盖同名的静态默认值。
	DefaultsFunc func(ctx context.Context) (Values, error)

	// Language 错误消息语言，零值用英文
	Language language.Tag

	// OnSubmit 校验通过后的提交动作
	OnSubmit func(ctx context.Context, values Values) error

	// OnSubmitError 校验失败时的回调（展示提示等），可为 nil。
	// 收到的是带 field_errors 元数据的校验错误。
	OnSubmitError func(err error)
}

// Form 表单容器：聚合共享状态、校验 Schema 与提交状态机。
// 一个页面一个实例，字段适配器通过 State() 挂接。
type Form struct {
	state  *State
	cfg    Config
	logger log.Logger
}

// New 创建表单。
// DefaultsFunc 在这里执行且只执行一次；加载失败时表单照常创建
// （退回静态默认值），错误包装后一并返回让调用方决定如何提示。
func New(ctx context.Context, cfg Config) (*Form, error) {
	lang := cfg.Language
	if lang == (language.Tag{}) {
		lang = language.English
	}

	defaults := make(Values, len(cfg.DefaultValues))
	for name, value := range cfg.DefaultValues {
		defaults[name] = value
	}

	var loadErr error
	if cfg.DefaultsFunc != nil {
		loaded, err := cfg.DefaultsFunc(ctx)
		if err != nil {
			loadErr = xerrors.Wrap(err, xerrors.CodeFormDefaultsFailed, "加载表单默认值失败").
				WithComponent("forms", "load_defaults")
			log.Warn("表单默认值加载失败,回落到静态默认值",
				log.String("error", err.Error()),
			)
		} else {
			for name, value := range loaded {
				defaults[name] = value
			}
		}
	}

	form := &Form{
		state:  newState(cfg.Schema, defaults, lang),
		cfg:    cfg,
		logger: log.GetLogger(),
	}
	return form, loadErr
}

// State 返回共享表单状态，字段适配器据此读写
func (f *Form) State() *State {
	return f.state
}

// Submit 执行提交状态机：整表校验 -> 提交动作 -> 复位。
//
// 校验失败时错误写入各字段、OnSubmitError 被调用、
// 提交动作一次都不会执行；校验通过时提交动作恰好执行一次，
// 其返回的错误原样向上传递。
// 无论提交动作成功、失败还是 panic，isSubmitting 都保证复位。
func (f *Form) Submit(ctx context.Context) error {
	f.state.setSubmitting(true)
	defer f.state.setSubmitting(false)

	if errs := f.state.validateAll(); len(errs) > 0 {
		f.state.setErrors(errs)
		err := xerrors.FromCode(xerrors.CodeFormValidationFailed).
			WithComponent("forms", "submit").
			WithMetadata("field_errors", errs)
		if f.cfg.OnSubmitError != nil {
			f.cfg.OnSubmitError(err)
		}
		return err
	}
	f.state.setErrors(nil)

	if f.cfg.OnSubmit == nil {
		return nil
	}

	return f.cfg.OnSubmit(ctx, f.state.Values())
}

// Reset 恢复默认值并清空错误
func (f *Form) Reset() {
	f.state.Reset()
}
