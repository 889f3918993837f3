// File: internal/tui/messages.go
package tui

import (
	"github.com/google/uuid"

	"bazaar-tui/internal/model"
	"bazaar-tui/internal/session"
)

// Route 页面标识
type Route int

const (
	RouteProducts Route = iota
	RouteProductDetail
	RouteCart
	RouteLogin
	RouteRegister
	RouteAccount
	RouteProductEdit
)

// 需要登录才能进入的页面
func routeRequiresAuth(r Route) bool {
	switch r {
	case RouteCart, RouteAccount, RouteProductEdit:
		return true
	default:
		return false
	}
}

// sessionChangedMsg 会话状态变化（登录、登出、401 降级）
type sessionChangedMsg struct {
	snapshot session.Snapshot
}

// navigateMsg 页面跳转请求
type navigateMsg struct {
	route     Route
	productID uuid.UUID // RouteProductDetail / RouteProductEdit 用
}

// productsLoadedMsg 商品列表拉取完成
type productsLoadedMsg struct {
	list *model.ProductList
}

// categoriesLoadedMsg 分类列表拉取完成
type categoriesLoadedMsg struct {
	categories []model.Category
}

// productLoadedMsg 商品详情拉取完成
type productLoadedMsg struct {
	product *model.Product
}

// myProductsLoadedMsg 我发布的商品拉取完成
type myProductsLoadedMsg struct {
	list *model.ProductList
}

// cartLoadedMsg 购物车拉取完成
type cartLoadedMsg struct {
	cart *model.Cart
}

// cartCountMsg 购物车商品数拉取完成
type cartCountMsg struct {
	count int32
}

// flashMsg 顶部一次性提示
type flashMsg struct {
	text    string
	isError bool
}

// errMsg 异步操作失败
type errMsg struct {
	err error
}

func (m errMsg) Error() string { return m.err.Error() }
