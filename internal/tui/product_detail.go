// File: internal/tui/product_detail.go
package tui

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/converter"
	"bazaar-tui/internal/model"
	"bazaar-tui/internal/money"
)

// productDetailPage 商品详情页：数量选择 + 加入购物车。
type productDetailPage struct {
	app *App

	productID uuid.UUID
	loading   bool
	product   *model.Product
	quantity  int32
	adding    bool
}

func newProductDetailPage(app *App, productID uuid.UUID) *productDetailPage {
	return &productDetailPage{
		app:       app,
		productID: productID,
		loading:   true,
		quantity:  1,
	}
}

func (p *productDetailPage) Init() tea.Cmd {
	client := p.app.deps.Client
	id := p.productID
	return func() tea.Msg {
		resp, err := client.GetProduct(context.Background(), id)
		if err != nil {
			return errMsg{err: err}
		}
		product, err := converter.ConvertProduct(resp)
		if err != nil {
			return errMsg{err: err}
		}
		return productLoadedMsg{product: &product}
	}
}

func (p *productDetailPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case productLoadedMsg:
		p.loading = false
		p.product = msg.product
		return nil

	case cartCountMsg:
		p.adding = false
		return flash(fmt.Sprintf("Added to cart (%d items in cart)", msg.count), false)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *productDetailPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "b":
		return goTo(RouteProducts)
	case "up", "+", "k":
		if p.product != nil && p.quantity < p.product.StockQuantity {
			p.quantity++
		}
	case "down", "-", "j":
		if p.quantity > 1 {
			p.quantity--
		}
	case "enter":
		return p.addToCart()
	case "c":
		return goTo(RouteCart)
	case "q":
		return tea.Quit
	}
	return nil
}

// addToCart 把当前数量加入购物车。
// 未登录时服务端返回 401，这里顺带把用户带去登录页。
func (p *productDetailPage) addToCart() tea.Cmd {
	if p.product == nil || p.adding {
		return nil
	}
	if p.product.StockQuantity <= 0 {
		return flash("This product is out of stock.", true)
	}
	p.adding = true

	client := p.app.deps.Client
	req := api.AddCartProductRequest{
		ProductID: p.product.ID,
		Quantity:  p.quantity,
	}
	return func() tea.Msg {
		if _, err := client.AddCartProduct(context.Background(), req); err != nil {
			if api.StatusCodeOf(err) == http.StatusUnauthorized {
				return flashMsg{text: "Please sign in to add items to your cart.", isError: true}
			}
			return errMsg{err: err}
		}
		count, err := client.GetCartProductCount(context.Background())
		if err != nil || count.Count == nil {
			return cartCountMsg{count: 0}
		}
		return cartCountMsg{count: *count.Count}
	}
}

func (p *productDetailPage) View() string {
	var b strings.Builder
	if p.loading {
		for i := 0; i < p.app.deps.Config.LoadingSkeletons; i++ {
			b.WriteString(p.app.styles.Skeleton.Render(skeletonRow))
			b.WriteString("\n")
		}
		return b.String()
	}
	if p.product == nil {
		return p.app.styles.Muted.Render("Product not found.")
	}

	product := p.product
	var card strings.Builder
	card.WriteString(p.app.styles.Subtitle.Render(product.Name))
	card.WriteString("\n")
	card.WriteString(p.app.styles.Price.Render(money.Format(product.Price)))
	card.WriteString("\n\n")
	if product.Description != nil {
		card.WriteString(*product.Description)
		card.WriteString("\n\n")
	}
	card.WriteString(p.app.styles.Muted.Render("Category: " + product.Category))
	card.WriteString("\n")
	card.WriteString(p.app.styles.Muted.Render("Seller:   " + product.Seller))
	card.WriteString("\n")
	if product.StockQuantity > 0 {
		card.WriteString(p.app.styles.Muted.Render(fmt.Sprintf("In stock: %d", product.StockQuantity)))
	} else {
		card.WriteString(p.app.styles.Error.Render("Out of stock"))
	}
	card.WriteString("\n\n")
	card.WriteString(fmt.Sprintf("Quantity: %s", p.app.styles.Selected.Render(fmt.Sprintf("< %d >", p.quantity))))

	b.WriteString(p.app.styles.Card.Render(card.String()))
	b.WriteString("\n")
	b.WriteString(p.app.styles.Help.Render("+/- quantity · enter add to cart · c cart · esc back · q quit"))
	return b.String()
}
