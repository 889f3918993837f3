// File: internal/tui/app.go
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/auth"
	"bazaar-tui/internal/pkg/config"
	"bazaar-tui/internal/pkg/i18n"
	"bazaar-tui/internal/pkg/log"
	"bazaar-tui/internal/pkg/xerrors"
	"bazaar-tui/internal/session"
	"bazaar-tui/internal/storage"
)

// Deps 页面层依赖的服务集合
type Deps struct {
	Client   *api.Client
	Sessions *session.Manager
	Auth     *auth.Service
	Config   *config.Config
	// Uploader 可为 nil：存储未配置时商品编辑页禁用图片上传
	Uploader storage.Uploader
}

// page 所有页面的统一形状
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// App 根模型：持有会话快照、当前页面与受守卫的跳转。
// 会话事件由订阅监听器推进 channel，再以消息形式进入 Update 单线程消费。
type App struct {
	deps   Deps
	styles Styles
	lang   language.Tag

	route   Route
	current page

	// pending 等待登录完成后要去的页面
	pending *navigateMsg

	session   session.Snapshot
	sessionCh chan session.Snapshot

	width  int
	height int

	flash    string
	flashErr bool
}

// NewApp 创建根模型并订阅会话变化
func NewApp(deps Deps) *App {
	app := &App{
		deps:      deps,
		styles:    DefaultStyles(),
		lang:      i18n.ParseLanguageCode(deps.Config.Language),
		sessionCh: make(chan session.Snapshot, 8),
	}
	app.session = deps.Sessions.Snapshot()
	deps.Sessions.Subscribe(func(snapshot session.Snapshot) {
		select {
		case app.sessionCh <- snapshot:
		default:
			// 消费不过来时丢弃旧事件，下一次快照是全量的
		}
	})
	app.route = RouteProducts
	app.current = newProductsPage(app)
	return app
}

// Init 启动会话解析与首页加载
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.listenSession(),
		a.resolveSession(),
		a.current.Init(),
	)
}

// listenSession 把会话 channel 的下一个事件转成消息
func (a *App) listenSession() tea.Cmd {
	return func() tea.Msg {
		return sessionChangedMsg{snapshot: <-a.sessionCh}
	}
}

// resolveSession 启动时询问服务端当前登录态
func (a *App) resolveSession() tea.Cmd {
	return func() tea.Msg {
		if err := a.deps.Auth.Initialize(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// Update 根消息循环
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.current.Update(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.flash = ""
		return a, a.current.Update(msg)

	case sessionChangedMsg:
		a.session = msg.snapshot
		cmds := []tea.Cmd{a.listenSession()}
		switch msg.snapshot.Status {
		case session.StatusAuthenticated:
			if a.pending != nil {
				target := *a.pending
				a.pending = nil
				cmds = append(cmds, a.navigate(target))
			}
		case session.StatusUnauthenticated:
			// 401 降级：受保护页面退回登录页
			if routeRequiresAuth(a.route) {
				a.pending = &navigateMsg{route: a.route}
				cmds = append(cmds, a.navigate(navigateMsg{route: RouteLogin}))
				a.setFlash("Your session has expired. Please sign in again.", true)
			}
		}
		return a, tea.Batch(cmds...)

	case navigateMsg:
		return a, a.navigate(msg)

	case flashMsg:
		a.setFlash(msg.text, msg.isError)
		return a, nil

	case errMsg:
		log.Warn("页面异步操作失败", log.String("error", msg.err.Error()))
		a.setFlash(a.userMessage(msg.err), true)
		return a, nil
	}

	return a, a.current.Update(msg)
}

// navigate 执行带守卫的页面跳转
func (a *App) navigate(msg navigateMsg) tea.Cmd {
	if routeRequiresAuth(msg.route) {
		switch a.session.Status {
		case session.StatusLoading:
			// 登录态还没确定，先记下目标等会话解析完
			a.pending = &msg
			return nil
		case session.StatusUnauthenticated:
			// 复制一份再改写 msg，pending 不能跟着变成登录页
			target := msg
			a.pending = &target
			msg = navigateMsg{route: RouteLogin}
		}
	}

	a.route = msg.route
	switch msg.route {
	case RouteProducts:
		a.current = newProductsPage(a)
	case RouteProductDetail:
		a.current = newProductDetailPage(a, msg.productID)
	case RouteCart:
		a.current = newCartPage(a)
	case RouteLogin:
		a.current = newLoginPage(a)
	case RouteRegister:
		a.current = newRegisterPage(a)
	case RouteAccount:
		a.current = newAccountPage(a)
	case RouteProductEdit:
		a.current = newProductEditPage(a, msg.productID)
	}
	return a.current.Init()
}

// View 渲染标题栏、提示条与当前页面
func (a *App) View() string {
	header := a.styles.Title.Render("next bazaar") + "  " + a.sessionLine()
	body := a.current.View()

	out := header + "\n"
	if a.flash != "" {
		if a.flashErr {
			out += a.styles.Error.Render(a.flash) + "\n"
		} else {
			out += a.styles.Success.Render(a.flash) + "\n"
		}
	}
	return out + body
}

func (a *App) sessionLine() string {
	switch a.session.Status {
	case session.StatusLoading:
		return a.styles.Muted.Render("checking session...")
	case session.StatusAuthenticated:
		if a.session.User != nil {
			return a.styles.Muted.Render("signed in as " + a.session.User.Name)
		}
		return a.styles.Muted.Render("signed in")
	default:
		return a.styles.Muted.Render("guest")
	}
}

// userMessage 把内部错误翻成当前语言的用户可读提示
func (a *App) userMessage(err error) string {
	var appErr *xerrors.AppError
	if errors.As(err, &appErr) {
		return i18n.GetErrorMessage(appErr.Code, a.lang)
	}
	return err.Error()
}

func (a *App) setFlash(text string, isError bool) {
	a.flash = text
	a.flashErr = isError
}

// goTo 页面内部发起跳转用的命令
func goTo(route Route) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{route: route}
	}
}

func goToProduct(route Route, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{route: route, productID: id}
	}
}

func flash(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return flashMsg{text: text, isError: isError}
	}
}
