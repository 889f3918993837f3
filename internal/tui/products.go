// File: internal/tui/products.go
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/converter"
	"bazaar-tui/internal/forms"
	"bazaar-tui/internal/model"
	"bazaar-tui/internal/money"
)

// productsPage 商品列表页：分页浏览、分类过滤、加载骨架行。
type productsPage struct {
	app *App

	loading    bool
	list       *model.ProductList
	categories []model.Category

	// filter 分类单选组，空值表示全部分类
	filterState *forms.State
	filter      *forms.GroupField
	filterOn    bool

	pageID int32
	cursor int
}

func newProductsPage(app *App) *productsPage {
	form, _ := forms.New(context.Background(), forms.Config{
		DefaultValues: forms.Values{"category": ""},
	})
	return &productsPage{
		app:         app,
		loading:     true,
		filterState: form.State(),
		pageID:      1,
	}
}

func (p *productsPage) Init() tea.Cmd {
	return tea.Batch(p.loadProducts(), p.loadCategories())
}

// loadProducts 拉取当前页并转换为领域模型
func (p *productsPage) loadProducts() tea.Cmd {
	pageID := p.pageID
	var categoryID *uuid.UUID
	if selected := p.filterState.StringValue("category"); selected != "" {
		for _, category := range p.categories {
			if category.ID.String() == selected {
				id := category.ID
				categoryID = &id
				break
			}
		}
	}
	client := p.app.deps.Client
	pageSize := int32(p.app.deps.Config.PageSize)

	return func() tea.Msg {
		resp, err := client.ListProducts(context.Background(), api.ListProductsParams{
			PageID:     pageID,
			PageSize:   pageSize,
			CategoryID: categoryID,
		})
		if err != nil {
			return errMsg{err: err}
		}
		list, err := converter.ConvertProductList(resp)
		if err != nil {
			return errMsg{err: err}
		}
		return productsLoadedMsg{list: &list}
	}
}

func (p *productsPage) loadCategories() tea.Cmd {
	client := p.app.deps.Client
	return func() tea.Msg {
		resp, err := client.ListProductCategories(context.Background(), 1, 100)
		if err != nil {
			return errMsg{err: err}
		}
		categories, err := converter.ConvertProductCategories(resp)
		if err != nil {
			return errMsg{err: err}
		}
		return categoriesLoadedMsg{categories: categories}
	}
}

func (p *productsPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		p.loading = false
		p.list = msg.list
		if p.cursor >= len(msg.list.Products) {
			p.cursor = 0
		}
		return nil

	case categoriesLoadedMsg:
		p.categories = msg.categories
		options := make([]forms.GroupOption, 0, len(msg.categories)+1)
		options = append(options, forms.GroupOption{Value: "", Label: "All"})
		for _, category := range msg.categories {
			options = append(options, forms.GroupOption{
				Value: category.ID.String(),
				Label: category.Name,
			})
		}
		p.filter = forms.NewGroupField(p.filterState, "category", "",
			forms.Radio, forms.LayoutHorizontal, options)
		return nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *productsPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.filterOn {
		return p.handleFilterKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.list != nil && p.cursor < len(p.list.Products)-1 {
			p.cursor++
		}
	case "enter":
		if p.list != nil && p.cursor < len(p.list.Products) {
			return goToProduct(RouteProductDetail, p.list.Products[p.cursor].ID)
		}
	case "n":
		if p.list != nil && int64(p.pageID) < p.list.Meta.PageCount {
			p.pageID++
			p.loading = true
			return p.loadProducts()
		}
	case "p":
		if p.pageID > 1 {
			p.pageID--
			p.loading = true
			return p.loadProducts()
		}
	case "f", "tab":
		if p.filter != nil {
			p.filterOn = true
			p.filter.Focus()
		}
	case "c":
		return goTo(RouteCart)
	case "a":
		return goTo(RouteAccount)
	case "l":
		return goTo(RouteLogin)
	case "s":
		return goTo(RouteRegister)
	case "q":
		return tea.Quit
	}
	return nil
}

// handleFilterKey 过滤器持有焦点时的按键处理。
// 选中的分类发生变化就回到第一页重新拉取。
func (p *productsPage) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "f", "tab":
		p.filterOn = false
		p.filter.Blur()
		return nil
	}

	before := p.filterState.StringValue("category")
	p.filter.Update(msg)
	if after := p.filterState.StringValue("category"); after != before {
		p.pageID = 1
		p.loading = true
		return p.loadProducts()
	}
	return nil
}

func (p *productsPage) View() string {
	var b strings.Builder
	b.WriteString(p.app.styles.Subtitle.Render("Products"))
	b.WriteString("\n")
	if p.filter != nil {
		b.WriteString(p.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if p.loading {
		// 加载中渲染固定数量的骨架行，数据到达后全部消失
		for i := 0; i < p.app.deps.Config.LoadingSkeletons; i++ {
			b.WriteString(p.app.styles.Skeleton.Render(skeletonRow))
			b.WriteString("\n")
		}
		return b.String()
	}

	if p.list == nil || len(p.list.Products) == 0 {
		b.WriteString(p.app.styles.Muted.Render("No products found."))
		b.WriteString("\n")
	} else {
		for i, product := range p.list.Products {
			line := fmt.Sprintf("%-32s %10s  %s",
				truncate(product.Name, 32),
				money.Format(product.Price),
				p.app.styles.Muted.Render(product.Category),
			)
			if i == p.cursor {
				b.WriteString(p.app.styles.Selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(p.app.styles.Muted.Render(fmt.Sprintf(
			"page %d/%d  (%d items)",
			p.list.Meta.PageID, p.list.Meta.PageCount, p.list.Meta.TotalCount,
		)))
		b.WriteString("\n")
	}

	help := "↑/↓ select · enter detail · n/p page · f filter · c cart · a account · l login · s sign up · q quit"
	if p.filterOn {
		help = "←/→ move · space select · esc done"
	}
	b.WriteString(p.app.styles.Help.Render(help))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
