// File: internal/api/products.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// ListProducts 分页拉取商品列表，可按类目过滤
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) (*ListProductsResponse, error) {
	query := url.Values{}
	query.Set("page_id", strconv.Itoa(int(params.PageID)))
	query.Set("page_size", strconv.Itoa(int(params.PageSize)))
	if params.CategoryID != nil {
		query.Set("category_id", params.CategoryID.String())
	}

	path := "/api/v1/products?" + query.Encode()
	return doJSON[struct{}, ListProductsResponse](ctx, c, http.MethodGet, "/api/v1/products", path, nil)
}

// GetProduct 拉取单个商品
func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	path := fmt.Sprintf("/api/v1/products/%s", id)
	return doJSON[struct{}, ProductResponse](ctx, c, http.MethodGet, "/api/v1/products/:id", path, nil)
}

// ListProductCategories 拉取类目列表
func (c *Client) ListProductCategories(ctx context.Context, pageID, pageSize int32) (*ListProductCategoriesResponse, error) {
	query := url.Values{}
	query.Set("page_id", strconv.Itoa(int(pageID)))
	query.Set("page_size", strconv.Itoa(int(pageSize)))

	path := "/api/v1/products/categories?" + query.Encode()
	return doJSON[struct{}, ListProductCategoriesResponse](ctx, c, http.MethodGet, "/api/v1/products/categories", path, nil)
}

// ListMyProducts 拉取当前卖家自己的商品（需登录）
func (c *Client) ListMyProducts(ctx context.Context, pageID, pageSize int32) (*ListProductsResponse, error) {
	query := url.Values{}
	query.Set("page_id", strconv.Itoa(int(pageID)))
	query.Set("page_size", strconv.Itoa(int(pageSize)))

	path := "/api/v1/users/products?" + query.Encode()
	return doJSON[struct{}, ListProductsResponse](ctx, c, http.MethodGet, "/api/v1/users/products", path, nil)
}

// CreateProduct 新建商品（需登录）
func (c *Client) CreateProduct(ctx context.Context, req SaveProductRequest) (*MessageResponse, error) {
	return doJSON[SaveProductRequest, MessageResponse](ctx, c, http.MethodPost, "/api/v1/users/products", "/api/v1/users/products", &req)
}

// UpdateProduct 更新商品（需登录）
func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, req SaveProductRequest) (*MessageResponse, error) {
	path := fmt.Sprintf("/api/v1/users/products/%s", id)
	return doJSON[SaveProductRequest, MessageResponse](ctx, c, http.MethodPut, "/api/v1/users/products/:id", path, &req)
}
