// File: internal/tui/register.go
package tui

import (
	"context"
	"errors"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"bazaar-tui/internal/forms"
	"bazaar-tui/internal/pkg/xerrors"
)

// registerPage 注册页：注册成功后直接登录并回到商品页。
type registerPage struct {
	app *App

	form     *forms.Form
	controls []formControl
	focus    int
}

func newRegisterPage(app *App) *registerPage {
	p := &registerPage{app: app}

	schema := forms.NewSchema().
		Field("name", forms.FieldRule{Label: "Name", Required: true}).
		Field("email", forms.FieldRule{Label: "Email", Required: true, Email: true}).
		Field("password", forms.FieldRule{Label: "Password", Required: true, Min: minBound(8)}).
		Field("confirmPassword", forms.FieldRule{Label: "Confirm Password", Required: true}).
		Refine("password", []string{"password"},
			"Password must contain a letter and a digit",
			func(values forms.Values) bool {
				password, _ := values["password"].(string)
				return strings.ContainsFunc(password, unicode.IsLetter) &&
					strings.ContainsAny(password, "0123456789")
			}).
		Refine("confirmPassword", []string{"password", "confirmPassword"},
			"Passwords do not match",
			func(values forms.Values) bool {
				return values["password"] == values["confirmPassword"]
			})

	form, _ := forms.New(context.Background(), forms.Config{
		Schema:   schema,
		Language: app.lang,
		OnSubmit: func(ctx context.Context, values forms.Values) error {
			name, _ := values["name"].(string)
			email, _ := values["email"].(string)
			password, _ := values["password"].(string)
			return app.deps.Auth.RegisterAndLogin(ctx, name, email, password)
		},
	})
	p.form = form

	state := form.State()
	p.controls = []formControl{
		forms.NewTextField(state, "name", forms.FieldOptions{
			Label:       "Name",
			Placeholder: "Jane Doe",
			Width:       40,
		}),
		forms.NewTextField(state, "email", forms.FieldOptions{
			Label:       "Email",
			Placeholder: "you@example.com",
			Width:       40,
		}),
		forms.NewPasswordField(state, "password", forms.FieldOptions{
			Label: "Password",
			Width: 40,
		}),
		forms.NewPasswordField(state, "confirmPassword", forms.FieldOptions{
			Label: "Confirm Password",
			Width: 40,
		}),
	}
	return p
}

func (p *registerPage) Init() tea.Cmd {
	return p.controls[0].Focus()
}

func (p *registerPage) Update(msg tea.Msg) tea.Cmd {
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

func (p *registerPage) moveFocus(forward bool) tea.Cmd {
	p.controls[p.focus].Blur()
	if forward {
		p.focus = (p.focus + 1) % len(p.controls)
	} else {
		p.focus = (p.focus - 1 + len(p.controls)) % len(p.controls)
	}
	return p.controls[p.focus].Focus()
}

func (p *registerPage) submit() tea.Cmd {
	if p.form.State().IsSubmitting() {
		return nil
	}
	form := p.form
	return func() tea.Msg {
		if err := form.Submit(context.Background()); err != nil {
			var appErr *xerrors.AppError
			if errors.As(err, &appErr) {
				switch appErr.Code {
				case xerrors.CodeFormValidationFailed:
					return nil
				case xerrors.CodeEmailExists:
					return flashMsg{text: "This email is already registered.", isError: true}
				}
			}
			return errMsg{err: err}
		}
		return flashMsg{text: "Welcome! Your account is ready.", isError: false}
	}
}

func (p *registerPage) View() string {
	var b strings.Builder
	b.WriteString(p.app.styles.Subtitle.Render("Create Account"))
	b.WriteString("\n\n")
	for _, control := range p.controls {
		b.WriteString(control.View())
		b.WriteString("\n\n")
	}
	if p.form.State().IsSubmitting() {
		b.WriteString(p.app.styles.Muted.Render("Creating your account..."))
		b.WriteString("\n")
	}
	b.WriteString(p.app.styles.Help.Render("tab next field · enter submit · esc back"))
	return b.String()
}
