// File: internal/tui/login.go
package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"bazaar-tui/internal/forms"
	"bazaar-tui/internal/pkg/xerrors"
)

// formControl 表单页里可聚焦控件的统一形状
type formControl interface {
	Name() string
	Focus() tea.Cmd
	Blur()
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// loginPage 登录页
type loginPage struct {
	app *App

	form     *forms.Form
	controls []formControl
	focus    int
}

func minBound(v float64) *float64 { return &v }

func newLoginPage(app *App) *loginPage {
	p := &loginPage{app: app}

	schema := forms.NewSchema().
		Field("email", forms.FieldRule{Label: "Email", Required: true, Email: true}).
		Field("password", forms.FieldRule{Label: "Password", Required: true, Min: minBound(8)})

	form, _ := forms.New(context.Background(), forms.Config{
		Schema:   schema,
		Language: app.lang,
		OnSubmit: func(ctx context.Context, values forms.Values) error {
			email, _ := values["email"].(string)
			password, _ := values["password"].(string)
			return app.deps.Auth.Login(ctx, email, password)
		},
	})
	p.form = form

	state := form.State()
	p.controls = []formControl{
		forms.NewTextField(state, "email", forms.FieldOptions{
			Label:       "Email",
			Placeholder: "you@example.com",
			Width:       40,
		}),
		forms.NewPasswordField(state, "password", forms.FieldOptions{
			Label: "Password",
			Width: 40,
		}),
	}
	return p
}

func (p *loginPage) Init() tea.Cmd {
	return p.controls[0].Focus()
}

func (p *loginPage) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch keyMsg.String() {
		case "esc":
			return goTo(RouteProducts)
		case "tab", "shift+tab":
			return p.moveFocus(keyMsg.String() == "tab")
		case "enter":
			if p.focus == len(p.controls)-1 {
				return p.submit()
			}
			return p.moveFocus(true)
		}
	}
	return p.controls[p.focus].Update(msg)
}

func (p *loginPage) moveFocus(forward bool) tea.Cmd {
	p.controls[p.focus].Blur()
	if forward {
		p.focus = (p.focus + 1) % len(p.controls)
	} else {
		p.focus = (p.focus - 1 + len(p.controls)) % len(p.controls)
	}
	return p.controls[p.focus].Focus()
}

// submit 执行登录，成功后跳回商品页（有受守卫的目标时由根模型接管）
func (p *loginPage) submit() tea.Cmd {
	if p.form.State().IsSubmitting() {
		return nil
	}
	form := p.form
	return func() tea.Msg {
		if err := form.Submit(context.Background()); err != nil {
			var appErr *xerrors.AppError
			if errors.As(err, &appErr) && appErr.Code == xerrors.CodeFormValidationFailed {
				// 字段错误已写入状态，直接重渲染
				return nil
			}
			if errors.As(err, &appErr) && appErr.Code == xerrors.CodeInvalidCredentials {
				return flashMsg{text: "Incorrect email or password.", isError: true}
			}
			return errMsg{err: err}
		}
		return flashMsg{text: "Signed in.", isError: false}
	}
}

func (p *loginPage) View() string {
	var b strings.Builder
	b.WriteString(p.app.styles.Subtitle.Render("Sign In"))
	b.WriteString("\n\n")
	for _, control := range p.controls {
		b.WriteString(control.View())
		b.WriteString("\n\n")
	}
	if p.form.State().IsSubmitting() {
		b.WriteString(p.app.styles.Muted.Render("Signing in..."))
		b.WriteString("\n")
	}
	b.WriteString(p.app.styles.Help.Render("tab next field · enter submit · esc back"))
	return b.String()
}
