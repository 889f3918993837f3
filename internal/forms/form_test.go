// File: internal/forms/form_test.go
package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"bazaar-tui/internal/pkg/xerrors"
)

func float(v float64) *float64 { return &v }

func loginSchema() *Schema {
	return NewSchema().
		Field("email", FieldRule{Label: "Email", Required: true, Email: true}).
		Field("password", FieldRule{Label: "Password", Required: true, Min: float(8)})
}

// TestFormSubmitValidationFailure 校验失败时提交动作一次都不执行，
// 错误写入对应字段，OnSubmitError 收到校验错误。
func TestFormSubmitValidationFailure(t *testing.T) {
	submitCalls := 0
	errorCalls := 0
	var observed error
	form, err := New(context.Background(), Config{
		Schema: loginSchema(),
		OnSubmit: func(ctx context.Context, values Values) error {
			submitCalls++
			return nil
		},
		OnSubmitError: func(err error) {
			errorCalls++
			observed = err
		},
	})
	require.NoError(t, err)

	form.State().SetValue("email", "not-an-email")
	form.State().SetValue("password", "short")

	err = form.Submit(context.Background())
	require.Error(t, err)

	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, xerrors.CodeFormValidationFailed, appErr.Code)

	require.Zero(t, submitCalls)
	require.Equal(t, 1, errorCalls)
	require.ErrorIs(t, observed, err)
	require.NotEmpty(t, form.State().Error("email"))
	require.NotEmpty(t, form.State().Error("password"))
	require.False(t, form.State().IsSubmitting())
}

// TestFormSubmitSuccess 校验通过时提交动作恰好执行一次，收到的是当前值快照。
func TestFormSubmitSuccess(t *testing.T) {
	submitCalls := 0
	var got Values
	form, err := New(context.Background(), Config{
		Schema: loginSchema(),
		OnSubmit: func(ctx context.Context, values Values) error {
			submitCalls++
			got = values
			return nil
		},
	})
	require.NoError(t, err)

	form.State().SetValue("email", "jane@example.com")
	form.State().SetValue("password", "long-enough-secret")

	require.NoError(t, form.Submit(context.Background()))
	require.Equal(t, 1, submitCalls)
	require.Equal(t, "jane@example.com", got["email"])
	require.True(t, form.State().IsValid())
	require.False(t, form.State().IsSubmitting())
}

// TestFormSubmitErrorResetsSubmitting 提交动作失败后 isSubmitting 依然复位，
// 错误原样向上传递而不触发校验错误回调。
func TestFormSubmitErrorResetsSubmitting(t *testing.T) {
	boom := errors.New("boom")
	errorCalls := 0
	form, err := New(context.Background(), Config{
		Schema: loginSchema(),
		OnSubmit: func(ctx context.Context, values Values) error {
			require.True(t, values != nil)
			return boom
		},
		OnSubmitError: func(err error) { errorCalls++ },
	})
	require.NoError(t, err)

	form.State().SetValue("email", "jane@example.com")
	form.State().SetValue("password", "long-enough-secret")

	err = form.Submit(context.Background())
	require.ErrorIs(t, err, boom)
	require.Zero(t, errorCalls)
	require.False(t, form.State().IsSubmitting())
}

// TestFormNilSchemaAlwaysValid 未提供 Schema 时任何输入都能通过提交。
func TestFormNilSchemaAlwaysValid(t *testing.T) {
	submitCalls := 0
	form, err := New(context.Background(), Config{
		OnSubmit: func(ctx context.Context, values Values) error {
			submitCalls++
			return nil
		},
	})
	require.NoError(t, err)

	form.State().SetValue("anything", "")
	require.NoError(t, form.Submit(context.Background()))
	require.Equal(t, 1, submitCalls)
}

// TestFormDefaultsFuncOverridesStatic 异步默认值覆盖静态默认值，且只加载一次。
func TestFormDefaultsFuncOverridesStatic(t *testing.T) {
	loads := 0
	form, err := New(context.Background(), Config{
		DefaultValues: Values{"name": "static", "quantity": 1},
		DefaultsFunc: func(ctx context.Context) (Values, error) {
			loads++
			return Values{"name": "loaded"}, nil
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, loads)
	require.Equal(t, "loaded", form.State().Value("name"))
	require.Equal(t, 1, form.State().Value("quantity"))
}

// TestFormDefaultsFuncFailure 默认值加载失败时表单仍可用，退回静态默认值。
func TestFormDefaultsFuncFailure(t *testing.T) {
	form, err := New(context.Background(), Config{
		DefaultValues: Values{"name": "static"},
		DefaultsFunc: func(ctx context.Context) (Values, error) {
			return nil, errors.New("backend down")
		},
	})
	require.Error(t, err)

	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, xerrors.CodeFormDefaultsFailed, appErr.Code)

	require.NotNil(t, form)
	require.Equal(t, "static", form.State().Value("name"))
}

// TestStateEmptyValueFallsBackToDefault 写入空值时回落到默认值而不是清空。
func TestStateEmptyValueFallsBackToDefault(t *testing.T) {
	form, err := New(context.Background(), Config{
		DefaultValues: Values{"quantity": 1, "name": "widget", "tags": []string{"new"}},
	})
	require.NoError(t, err)
	state := form.State()

	state.SetValue("quantity", 5)
	require.Equal(t, 5, state.Value("quantity"))
	state.SetValue("quantity", nil)
	require.Equal(t, 1, state.Value("quantity"))

	state.SetValue("name", "gadget")
	state.SetValue("name", "")
	require.Equal(t, "widget", state.Value("name"))

	state.SetValue("tags", []string{"sale"})
	state.SetValue("tags", []string{})
	require.Equal(t, []string{"new"}, state.Value("tags"))
}

// TestSchemaRefinement 跨字段约束：两个密码不一致时错误挂在确认字段上。
func TestSchemaRefinement(t *testing.T) {
	schema := NewSchema().
		Field("password", FieldRule{Label: "Password", Required: true, Min: float(8)}).
		Field("confirmPassword", FieldRule{Label: "Confirm Password", Required: true}).
		Refine("confirmPassword", []string{"password", "confirmPassword"},
			"Passwords do not match",
			func(v Values) bool {
				return v["password"] == v["confirmPassword"]
			})

	values := Values{"password": "long-enough-secret", "confirmPassword": "different"}
	errs := schema.Validate(values, language.English)
	require.Len(t, errs, 1)
	require.Equal(t, "Passwords do not match", errs["confirmPassword"])

	values["confirmPassword"] = "long-enough-secret"
	require.Empty(t, schema.Validate(values, language.English))
}

// TestSchemaRevalidationOnDependentChange 修改密码字段会刷新确认字段的跨字段错误位。
func TestSchemaRevalidationOnDependentChange(t *testing.T) {
	schema := NewSchema().
		Field("password", FieldRule{Label: "Password", Required: true}).
		Field("confirmPassword", FieldRule{Label: "Confirm Password", Required: true}).
		Refine("confirmPassword", []string{"password", "confirmPassword"},
			"Passwords do not match",
			func(v Values) bool {
				return v["password"] == v["confirmPassword"]
			})

	form, err := New(context.Background(), Config{Schema: schema})
	require.NoError(t, err)
	state := form.State()

	state.SetValue("password", "secret-one")
	state.SetValue("confirmPassword", "secret-two")
	require.Equal(t, "Passwords do not match", state.Error("confirmPassword"))

	// 改的是 password，但 confirmPassword 的错误应当被清掉
	state.SetValue("password", "secret-two")
	require.Empty(t, state.Error("confirmPassword"))
}

// TestSchemaLocalizedMessages 同一个规则按语言给出不同的错误文案。
func TestSchemaLocalizedMessages(t *testing.T) {
	schema := NewSchema().
		Field("email", FieldRule{Label: "Email", Required: true})

	en := schema.Validate(Values{}, language.English)
	require.Equal(t, "Email is required", en["email"])

	zh := schema.Validate(Values{}, language.Chinese)
	require.Equal(t, "Email不能为空", zh["email"])
}

// TestGroupFieldToggle 多选组切换增删成员，选空后回落到默认值。
func TestGroupFieldToggle(t *testing.T) {
	form, err := New(context.Background(), Config{
		DefaultValues: Values{"categories": []string{"books"}},
	})
	require.NoError(t, err)
	state := form.State()

	group := NewGroupField(state, "categories", "Categories", Checkbox, LayoutVertical, []GroupOption{
		{Value: "books", Label: "Books"},
		{Value: "games", Label: "Games"},
	})

	require.True(t, group.Selected("books"))
	require.False(t, group.Selected("games"))

	group.Toggle(1)
	require.Equal(t, []string{"books", "games"}, state.StringsValue("categories"))

	group.Toggle(0)
	require.Equal(t, []string{"games"}, state.StringsValue("categories"))

	// 最后一个也取消后，空集合回落到默认值
	group.Toggle(1)
	require.Equal(t, []string{"books"}, state.StringsValue("categories"))
}

// TestGroupFieldRadio 单选组互斥，值为单个字符串。
func TestGroupFieldRadio(t *testing.T) {
	form, err := New(context.Background(), Config{})
	require.NoError(t, err)
	state := form.State()

	group := NewGroupField(state, "sort", "Sort", Radio, LayoutHorizontal, []GroupOption{
		{Value: "price", Label: "Price"},
		{Value: "name", Label: "Name"},
	})

	group.Toggle(0)
	require.Equal(t, "price", state.StringValue("sort"))
	group.Toggle(1)
	require.Equal(t, "name", state.StringValue("sort"))
	require.False(t, group.Selected("price"))
}

// TestErrorTextEmpty 空消息渲染为空串，不占任何行。
func TestErrorTextEmpty(t *testing.T) {
	require.Empty(t, ErrorText(""))
	require.Contains(t, ErrorText("Email is required"), "Email is required")
}

// TestFieldNumericEmptyMeansUnset 数字字段清空后视为未填，回落到默认值。
func TestFieldNumericEmptyMeansUnset(t *testing.T) {
	form, err := New(context.Background(), Config{
		DefaultValues: Values{"quantity": 1},
	})
	require.NoError(t, err)
	state := form.State()

	field := NewNumberField(state, "quantity", FieldOptions{Label: "Quantity"})
	field.SetValue(7)
	require.Equal(t, 7, state.Value("quantity"))

	field.SetValue("")
	require.Equal(t, 1, state.Value("quantity"))
}
