// File: test/integration/storefront_flow_test.go
package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/auth"
	"bazaar-tui/internal/converter"
	"bazaar-tui/internal/money"
	"bazaar-tui/internal/pkg/xerrors"
	"bazaar-tui/internal/session"
	"bazaar-tui/test/internal/apitest"
)

type env struct {
	server   *apitest.Server
	client   *api.Client
	sessions *session.Manager
	auth     *auth.Service
}

func setup(t *testing.T) *env {
	t.Helper()
	server := apitest.NewServer()
	t.Cleanup(server.Close)

	sessions := session.NewManager(nil)
	client := api.NewClient(server.URL(),
		api.WithResponseObserver(sessions.Observer()),
	)
	return &env{
		server:   server,
		client:   client,
		sessions: sessions,
		auth:     auth.NewService(client, sessions, nil),
	}
}

// TestInitializeWithoutSession 无会话启动时初始探测解析为未登录。
func TestInitializeWithoutSession(t *testing.T) {
	e := setup(t)

	require.NoError(t, e.auth.Initialize(context.Background()))
	require.Equal(t, session.StatusUnauthenticated, e.sessions.Snapshot().Status)
}

// TestRegisterLoginLogoutFlow 注册后直接登录，登出后会话回到未登录。
func TestRegisterLoginLogoutFlow(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	require.NoError(t, e.auth.Initialize(ctx))

	require.NoError(t, e.auth.RegisterAndLogin(ctx, "Jane", "jane@example.com", "secret-password"))

	snapshot := e.sessions.Snapshot()
	require.Equal(t, session.StatusAuthenticated, snapshot.Status)
	require.Equal(t, "Jane", snapshot.User.Name)
	require.Equal(t, "jane@example.com", snapshot.User.Email)

	require.NoError(t, e.auth.Logout(ctx))
	require.Equal(t, session.StatusUnauthenticated, e.sessions.Snapshot().Status)
}

// TestDuplicateEmailRegistration 重复邮箱注册得到明确的业务错误。
func TestDuplicateEmailRegistration(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	require.NoError(t, e.auth.RegisterAndLogin(ctx, "Jane", "jane@example.com", "secret-password"))
	require.NoError(t, e.auth.Logout(ctx))

	err := e.auth.RegisterAndLogin(ctx, "Janet", "jane@example.com", "another-secret")
	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, xerrors.CodeEmailExists, appErr.Code)
}

// TestWrongPassword 密码错误映射为凭据无效，而不是笼统的请求失败。
func TestWrongPassword(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	require.NoError(t, e.auth.RegisterAndLogin(ctx, "Jane", "jane@example.com", "secret-password"))
	require.NoError(t, e.auth.Logout(ctx))

	err := e.auth.Login(ctx, "jane@example.com", "wrong-password")
	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, xerrors.CodeInvalidCredentials, appErr.Code)
	require.Equal(t, session.StatusUnauthenticated, e.sessions.Snapshot().Status)
}

// TestProductBrowsing 商品列表、类目过滤与详情的完整读路径。
func TestProductBrowsing(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	books := e.server.SeedCategory("Books")
	games := e.server.SeedCategory("Games")
	bookID := e.server.SeedProduct("Go in Action", "39.99", 10, books, "Jane")
	e.server.SeedProduct("Chess Set", "120.00", 3, games, "Bob")

	resp, err := e.client.ListProducts(ctx, api.ListProductsParams{PageID: 1, PageSize: 20})
	require.NoError(t, err)
	list, err := converter.ConvertProductList(resp)
	require.NoError(t, err)
	require.Len(t, list.Products, 2)
	require.Equal(t, int64(2), list.Meta.TotalCount)

	// 类目过滤
	resp, err = e.client.ListProducts(ctx, api.ListProductsParams{PageID: 1, PageSize: 20, CategoryID: &books})
	require.NoError(t, err)
	list, err = converter.ConvertProductList(resp)
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	require.Equal(t, "Go in Action", list.Products[0].Name)
	require.Equal(t, "$39.99", money.Format(list.Products[0].Price))

	// 详情
	detail, err := e.client.GetProduct(ctx, bookID)
	require.NoError(t, err)
	product, err := converter.ConvertProduct(detail)
	require.NoError(t, err)
	require.Equal(t, int32(10), product.StockQuantity)
}

// TestCartFlow 加车、改量、删除的完整链路，金额全程十进制串。
func TestCartFlow(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	books := e.server.SeedCategory("Books")
	bookID := e.server.SeedProduct("Go in Action", "39.99", 10, books, "Seller")
	require.NoError(t, e.auth.RegisterAndLogin(ctx, "Jane", "jane@example.com", "secret-password"))

	_, err := e.client.AddCartProduct(ctx, api.AddCartProductRequest{ProductID: bookID, Quantity: 2})
	require.NoError(t, err)

	resp, err := e.client.GetCart(ctx)
	require.NoError(t, err)
	cart, err := converter.ConvertCart(resp)
	require.NoError(t, err)
	require.Len(t, cart.Products, 1)
	require.Equal(t, int32(2), cart.Products[0].Quantity)
	require.Equal(t, "$79.98", money.Format(cart.Products[0].Subtotal))
	require.Equal(t, "$79.98", money.Format(cart.Subtotal))
	// 运费 5.00 + 税 10%
	require.Equal(t, "$92.98", money.Format(cart.Total))

	_, err = e.client.UpdateCartProductQuantity(ctx, bookID, 1)
	require.NoError(t, err)
	count, err := e.client.GetCartProductCount(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(1), *count.Count)

	_, err = e.client.DeleteCartProduct(ctx, bookID)
	require.NoError(t, err)
	resp, err = e.client.GetCart(ctx)
	require.NoError(t, err)
	cart, err = converter.ConvertCart(resp)
	require.NoError(t, err)
	require.Empty(t, cart.Products)
	require.Equal(t, "$0.00", money.Format(cart.Total))
}

// TestSellerProductManagement 卖家创建并更新自己的商品。
func TestSellerProductManagement(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	books := e.server.SeedCategory("Books")
	require.NoError(t, e.auth.RegisterAndLogin(ctx, "Jane", "jane@example.com", "secret-password"))

	_, err := e.client.CreateProduct(ctx, api.SaveProductRequest{
		Name:          "My First Book",
		Price:         "10.00",
		StockQuantity: 5,
		CategoryID:    books.String(),
	})
	require.NoError(t, err)

	mine, err := e.client.ListMyProducts(ctx, 1, 20)
	require.NoError(t, err)
	list, err := converter.ConvertProductList(mine)
	require.NoError(t, err)
	require.Len(t, list.Products, 1)

	_, err = e.client.UpdateProduct(ctx, list.Products[0].ID, api.SaveProductRequest{
		Name:          "My First Book (2nd ed)",
		Price:         "12.00",
		StockQuantity: 8,
		CategoryID:    books.String(),
	})
	require.NoError(t, err)

	mine, err = e.client.ListMyProducts(ctx, 1, 20)
	require.NoError(t, err)
	list, err = converter.ConvertProductList(mine)
	require.NoError(t, err)
	require.Equal(t, "My First Book (2nd ed)", list.Products[0].Name)
	require.Equal(t, int32(8), list.Products[0].StockQuantity)
}

// TestSessionExpiryDemotesGlobally 服务端会话失效后，任意请求的 401 都会把会话降级。
func TestSessionExpiryDemotesGlobally(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	require.NoError(t, e.auth.RegisterAndLogin(ctx, "Jane", "jane@example.com", "secret-password"))
	require.Equal(t, session.StatusAuthenticated, e.sessions.Snapshot().Status)

	e.server.ExpireSessions()

	_, err := e.client.GetCart(ctx)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, api.StatusCodeOf(err))
	require.Equal(t, session.StatusUnauthenticated, e.sessions.Snapshot().Status)
}

// TestProtectedEndpointsRequireLogin 未登录访问受保护接口得到 401。
func TestProtectedEndpointsRequireLogin(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.client.GetCart(ctx)
	require.Equal(t, http.StatusUnauthorized, api.StatusCodeOf(err))

	_, err = e.client.ListMyProducts(ctx, 1, 20)
	require.Equal(t, http.StatusUnauthorized, api.StatusCodeOf(err))
}
