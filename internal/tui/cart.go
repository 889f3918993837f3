// File: internal/tui/cart.go
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"bazaar-tui/internal/converter"
	"bazaar-tui/internal/model"
	"bazaar-tui/internal/money"
)

// cartPage 购物车页：改数量、删条目，金额全部来自服务端。
type cartPage struct {
	app *App

	loading bool
	cart    *model.Cart
	cursor  int
	busy    bool
}

func newCartPage(app *App) *cartPage {
	return &cartPage{app: app, loading: true}
}

func (p *cartPage) Init() tea.Cmd {
	return p.loadCart()
}

func (p *cartPage) loadCart() tea.Cmd {
	client := p.app.deps.Client
	return func() tea.Msg {
		resp, err := client.GetCart(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		cart, err := converter.ConvertCart(resp)
		if err != nil {
			return errMsg{err: err}
		}
		return cartLoadedMsg{cart: &cart}
	}
}

func (p *cartPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case cartLoadedMsg:
		p.loading = false
		p.busy = false
		p.cart = msg.cart
		if p.cursor >= len(msg.cart.Products) {
			p.cursor = 0
		}
		return nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *cartPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "b":
		return goTo(RouteProducts)
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cart != nil && p.cursor < len(p.cart.Products)-1 {
			p.cursor++
		}
	case "+":
		return p.changeQuantity(+1)
	case "-":
		return p.changeQuantity(-1)
	case "d", "delete":
		return p.removeCurrent()
	case "q":
		return tea.Quit
	}
	return nil
}

// changeQuantity 调整当前条目的数量。
// 每次变更都走服务端，返回后整车重新拉取，金额保持服务端口径。
func (p *cartPage) changeQuantity(delta int32) tea.Cmd {
	item, ok := p.currentItem()
	if !ok || p.busy {
		return nil
	}
	next := item.Quantity + delta
	if next < 1 {
		return nil
	}
	p.busy = true

	client := p.app.deps.Client
	productID := item.ID
	loadCart := p.loadCart()
	return func() tea.Msg {
		if _, err := client.UpdateCartProductQuantity(context.Background(), productID, next); err != nil {
			return errMsg{err: err}
		}
		return loadCart()
	}
}

func (p *cartPage) removeCurrent() tea.Cmd {
	item, ok := p.currentItem()
	if !ok || p.busy {
		return nil
	}
	p.busy = true

	client := p.app.deps.Client
	productID := item.ID
	loadCart := p.loadCart()
	return func() tea.Msg {
		if _, err := client.DeleteCartProduct(context.Background(), productID); err != nil {
			return errMsg{err: err}
		}
		return loadCart()
	}
}

func (p *cartPage) currentItem() (model.CartProduct, bool) {
	if p.cart == nil || p.cursor >= len(p.cart.Products) {
		return model.CartProduct{}, false
	}
	return p.cart.Products[p.cursor], true
}

func (p *cartPage) View() string {
	var b strings.Builder
	b.WriteString(p.app.styles.Subtitle.Render("Shopping Cart"))
	b.WriteString("\n\n")

	if p.loading {
		for i := 0; i < p.app.deps.Config.LoadingSkeletons; i++ {
			b.WriteString(p.app.styles.Skeleton.Render(skeletonRow))
			b.WriteString("\n")
		}
		return b.String()
	}

	if p.cart == nil || len(p.cart.Products) == 0 {
		b.WriteString(p.app.styles.Muted.Render("Your cart is empty."))
		b.WriteString("\n")
		b.WriteString(p.app.styles.Help.Render("esc back · q quit"))
		return b.String()
	}

	for i, item := range p.cart.Products {
		line := fmt.Sprintf("%-28s x%-3d %10s  subtotal %s",
			truncate(item.Name, 28),
			item.Quantity,
			money.Format(item.Price),
			money.Format(item.Subtotal),
		)
		if i == p.cursor {
			b.WriteString(p.app.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	var totals strings.Builder
	totals.WriteString(fmt.Sprintf("Subtotal  %s\n", money.Format(p.cart.Subtotal)))
	totals.WriteString(fmt.Sprintf("Shipping  %s\n", money.Format(p.cart.Shipping)))
	totals.WriteString(fmt.Sprintf("Tax       %s\n", money.Format(p.cart.Tax)))
	totals.WriteString(p.app.styles.Price.Render(fmt.Sprintf("Total     %s", money.Format(p.cart.Total))))

	b.WriteString("\n")
	b.WriteString(p.app.styles.Card.Render(totals.String()))
	b.WriteString("\n")
	b.WriteString(p.app.styles.Help.Render("↑/↓ select · +/- quantity · d remove · esc back · q quit"))
	return b.String()
}
