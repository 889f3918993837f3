// File: internal/api/cart.go
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// GetCart 拉取当前用户的购物车（需登录）
func (c *Client) GetCart(ctx context.Context) (*CartResponse, error) {
	return doJSON[struct{}, CartResponse](ctx, c, http.MethodGet, "/api/v1/cart-products", "/api/v1/cart-products", nil)
}

// AddCartProduct 把商品加入购物车，已存在时服务端累加数量
func (c *Client) AddCartProduct(ctx context.Context, req AddCartProductRequest) (*MessageResponse, error) {
	return doJSON[AddCartProductRequest, MessageResponse](ctx, c, http.MethodPost, "/api/v1/cart-products", "/api/v1/cart-products", &req)
}

// UpdateCartProductQuantity 修改购物车中某商品的数量
func (c *Client) UpdateCartProductQuantity(ctx context.Context, productID uuid.UUID, quantity int32) (*MessageResponse, error) {
	req := UpdateCartProductQuantityRequest{Quantity: quantity}
	path := fmt.Sprintf("/api/v1/cart-products/%s", productID)
	return doJSON[UpdateCartProductQuantityRequest, MessageResponse](ctx, c, http.MethodPut, "/api/v1/cart-products/:product_id", path, &req)
}

// DeleteCartProduct 从购物车移除商品
func (c *Client) DeleteCartProduct(ctx context.Context, productID uuid.UUID) (*MessageResponse, error) {
	path := fmt.Sprintf("/api/v1/cart-products/%s", productID)
	return doJSON[struct{}, MessageResponse](ctx, c, http.MethodDelete, "/api/v1/cart-products/:product_id", path, nil)
}

// GetCartProductCount 购物车商品件数（Header 角标用）
func (c *Client) GetCartProductCount(ctx context.Context) (*CartProductCountResponse, error) {
	return doJSON[struct{}, CartProductCountResponse](ctx, c, http.MethodGet, "/api/v1/cart-products/count", "/api/v1/cart-products/count", nil)
}
