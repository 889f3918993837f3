// File: internal/tui/account.go
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"bazaar-tui/internal/converter"
	"bazaar-tui/internal/model"
	"bazaar-tui/internal/money"
)

// accountPage 账户页：个人信息、我发布的商品、登出入口。
type accountPage struct {
	app *App

	loading bool
	list    *model.ProductList
	cursor  int
}

func newAccountPage(app *App) *accountPage {
	return &accountPage{app: app, loading: true}
}

func (p *accountPage) Init() tea.Cmd {
	client := p.app.deps.Client
	pageSize := int32(p.app.deps.Config.PageSize)
	return func() tea.Msg {
		resp, err := client.ListMyProducts(context.Background(), 1, pageSize)
		if err != nil {
			return errMsg{err: err}
		}
		list, err := converter.ConvertProductList(resp)
		if err != nil {
			return errMsg{err: err}
		}
		return myProductsLoadedMsg{list: &list}
	}
}

func (p *accountPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case myProductsLoadedMsg:
		p.loading = false
		p.list = msg.list
		if p.cursor >= len(msg.list.Products) {
			p.cursor = 0
		}
		return nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *accountPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "b":
		return goTo(RouteProducts)
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.list != nil && p.cursor < len(p.list.Products)-1 {
			p.cursor++
		}
	case "enter", "e":
		if p.list != nil && p.cursor < len(p.list.Products) {
			return goToProduct(RouteProductEdit, p.list.Products[p.cursor].ID)
		}
	case "n":
		// 新建商品：零值 ID 表示创建
		return goToProduct(RouteProductEdit, uuid.Nil)
	case "x":
		return p.logout()
	case "q":
		return tea.Quit
	}
	return nil
}

func (p *accountPage) logout() tea.Cmd {
	authService := p.app.deps.Auth
	return func() tea.Msg {
		if err := authService.Logout(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return navigateMsg{route: RouteProducts}
	}
}

func (p *accountPage) View() string {
	var b strings.Builder
	b.WriteString(p.app.styles.Subtitle.Render("My Account"))
	b.WriteString("\n\n")

	if user := p.app.session.User; user != nil {
		var info strings.Builder
		info.WriteString("Name:  " + user.Name + "\n")
		info.WriteString("Email: " + user.Email)
		b.WriteString(p.app.styles.Card.Render(info.String()))
		b.WriteString("\n\n")
	}

	b.WriteString(p.app.styles.Subtitle.Render("My Products"))
	b.WriteString("\n")

	if p.loading {
		for i := 0; i < p.app.deps.Config.LoadingSkeletons; i++ {
			b.WriteString(p.app.styles.Skeleton.Render(skeletonRow))
			b.WriteString("\n")
		}
	} else if p.list == nil || len(p.list.Products) == 0 {
		b.WriteString(p.app.styles.Muted.Render("You have not listed any products yet."))
		b.WriteString("\n")
	} else {
		for i, product := range p.list.Products {
			line := fmt.Sprintf("%-32s %10s  stock %d",
				truncate(product.Name, 32),
				money.Format(product.Price),
				product.StockQuantity,
			)
			if i == p.cursor {
				b.WriteString(p.app.styles.Selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(p.app.styles.Help.Render("enter edit · n new product · x sign out · esc back · q quit"))
	return b.String()
}
