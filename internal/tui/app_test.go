// File: internal/tui/app_test.go
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ericlagergren/decimal"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/model"
	"bazaar-tui/internal/pkg/config"
	"bazaar-tui/internal/pkg/log"
	"bazaar-tui/internal/session"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	return NewApp(Deps{
		Client:   api.NewClient("http://127.0.0.1:1"),
		Sessions: session.NewManager(log.GetLogger()),
		Config:   &config.Config{PageSize: 20, LoadingSkeletons: 3},
	})
}

func sampleList(names ...string) *model.ProductList {
	products := make([]model.Product, 0, len(names))
	for _, name := range names {
		price := new(decimal.Big)
		price.SetString("9.99")
		products = append(products, model.Product{
			ID:       uuid.New(),
			Name:     name,
			Price:    price,
			Category: "Books",
		})
	}
	return &model.ProductList{
		Meta:     model.ListMeta{PageID: 1, PageSize: 20, PageCount: 1, TotalCount: int64(len(names))},
		Products: products,
	}
}

// TestProductsPageSkeletonRows 加载中恰好渲染配置数量的骨架行，数据到达后一行不剩。
func TestProductsPageSkeletonRows(t *testing.T) {
	app := newTestApp(t)
	page := newProductsPage(app)

	view := page.View()
	require.Equal(t, 3, strings.Count(view, skeletonRow))

	page.Update(productsLoadedMsg{list: sampleList("Go in Action")})
	view = page.View()
	require.Zero(t, strings.Count(view, skeletonRow))
	require.Contains(t, view, "Go in Action")
}

// TestNavigateGuardUnauthenticated 未登录访问受保护页面会被引到登录页，登录后自动续跳。
func TestNavigateGuardUnauthenticated(t *testing.T) {
	app := newTestApp(t)
	app.session = session.Snapshot{Status: session.StatusUnauthenticated}

	app.navigate(navigateMsg{route: RouteCart})
	require.Equal(t, RouteLogin, app.route)
	require.NotNil(t, app.pending)
	require.Equal(t, RouteCart, app.pending.route)

	user := model.User{Name: "Jane", Email: "jane@example.com"}
	app.Update(sessionChangedMsg{snapshot: session.Snapshot{
		Status: session.StatusAuthenticated,
		User:   &user,
	}})
	require.Equal(t, RouteCart, app.route)
	require.Nil(t, app.pending)
}

// TestNavigateGuardLoading 会话未解析时先记下目标，解析为已登录后再进入。
func TestNavigateGuardLoading(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, session.StatusLoading, app.session.Status)

	app.navigate(navigateMsg{route: RouteAccount})
	require.Equal(t, RouteProducts, app.route)
	require.NotNil(t, app.pending)

	user := model.User{Name: "Jane", Email: "jane@example.com"}
	app.Update(sessionChangedMsg{snapshot: session.Snapshot{
		Status: session.StatusAuthenticated,
		User:   &user,
	}})
	require.Equal(t, RouteAccount, app.route)
}

// TestSessionExpiryDemotesProtectedRoute 受保护页面上收到 401 降级时退回登录页。
func TestSessionExpiryDemotesProtectedRoute(t *testing.T) {
	app := newTestApp(t)
	user := model.User{Name: "Jane", Email: "jane@example.com"}
	app.session = session.Snapshot{Status: session.StatusAuthenticated, User: &user}

	app.navigate(navigateMsg{route: RouteCart})
	require.Equal(t, RouteCart, app.route)

	app.Update(sessionChangedMsg{snapshot: session.Snapshot{Status: session.StatusUnauthenticated}})
	require.Equal(t, RouteLogin, app.route)
	require.NotNil(t, app.pending)
	require.Equal(t, RouteCart, app.pending.route)
}

// TestUnguardedRouteSurvivesDemotion 商品页等公开页面不受会话降级影响。
func TestUnguardedRouteSurvivesDemotion(t *testing.T) {
	app := newTestApp(t)
	app.session = session.Snapshot{Status: session.StatusAuthenticated, User: &model.User{Name: "J", Email: "j@e.c"}}

	app.Update(sessionChangedMsg{snapshot: session.Snapshot{Status: session.StatusUnauthenticated}})
	require.Equal(t, RouteProducts, app.route)
}

var _ tea.Model = (*App)(nil)

// TestProductsCategoryFilterGroup 分类过滤组：选中分类后回到第一页重新拉取，
// 切回 All 同样触发刷新。
func TestProductsCategoryFilterGroup(t *testing.T) {
	app := newTestApp(t)
	page := newProductsPage(app)
	page.Update(productsLoadedMsg{list: sampleList("Go in Action")})

	books := model.Category{ID: uuid.New(), Name: "Books"}
	page.Update(categoriesLoadedMsg{categories: []model.Category{books}})
	require.NotNil(t, page.filter)

	// 打开过滤器，右移到 Books 并确认
	require.Nil(t, page.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}))
	require.True(t, page.filterOn)
	require.Nil(t, page.handleKey(tea.KeyMsg{Type: tea.KeyRight}))

	page.pageID = 3
	cmd := page.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, page.loading)
	require.Equal(t, int32(1), page.pageID)
	require.Equal(t, books.ID.String(), page.filterState.StringValue("category"))

	// 光标不动再确认一次：选中值没变，不触发刷新
	page.loading = false
	require.Nil(t, page.handleKey(tea.KeyMsg{Type: tea.KeyEnter}))

	// 左移回 All 并确认，恢复全部分类
	require.Nil(t, page.handleKey(tea.KeyMsg{Type: tea.KeyLeft}))
	cmd = page.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Empty(t, page.filterState.StringValue("category"))

	// esc 关闭过滤器，列表键恢复生效
	require.Nil(t, page.handleKey(tea.KeyMsg{Type: tea.KeyEsc}))
	require.False(t, page.filterOn)
}
