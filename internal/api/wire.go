// File: internal/api/wire.go
package api

import (
	"github.com/google/uuid"
)

// 线上格式（wire format）模型
// 服务端返回 snake_case JSON，金额一律是十进制字符串。
// 响应字段全部用指针建模，让转换层能区分 "字段缺失" 和 "零值"。

// ProductResponse 商品响应
type ProductResponse struct {
	ID            *uuid.UUID `json:"id"`
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	Price         *string    `json:"price"`
	StockQuantity *int32     `json:"stock_quantity"`
	CategoryID    *uuid.UUID `json:"category_id"`
	Category      *string    `json:"category"`
	Seller        *string    `json:"seller"`
	ImageURL      *string    `json:"image_url"`
}

// ListMetaResponse 列表接口的 meta 段
type ListMetaResponse struct {
	PageID     *int32 `json:"page_id"`
	PageSize   *int32 `json:"page_size"`
	PageCount  *int64 `json:"page_count"`
	TotalCount *int64 `json:"total_count"`
}

// ListProductsResponse 商品列表响应
type ListProductsResponse struct {
	Meta ListMetaResponse  `json:"meta"`
	Data []ProductResponse `json:"data"`
}

// ProductCategoryResponse 类目响应
type ProductCategoryResponse struct {
	ID   *uuid.UUID `json:"id"`
	Name *string    `json:"name"`
}

// ListProductCategoriesResponse 类目列表响应
type ListProductCategoriesResponse struct {
	Meta ListMetaResponse          `json:"meta"`
	Data []ProductCategoryResponse `json:"data"`
}

// CartProductResponse 购物车行响应
type CartProductResponse struct {
	ID          *uuid.UUID `json:"id"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *string    `json:"price"`
	Quantity    *int32     `json:"quantity"`
	Subtotal    *string    `json:"subtotal"`
	ImageURL    *string    `json:"image_url"`
}

// CartResponse 购物车响应，合计金额由服务端计算
type CartResponse struct {
	Products []CartProductResponse `json:"products"`
	Subtotal *string               `json:"subtotal"`
	Shipping *string               `json:"shipping"`
	Tax      *string               `json:"tax"`
	Total    *string               `json:"total"`
}

// CartProductCountResponse 购物车商品件数
type CartProductCountResponse struct {
	Count *int32 `json:"count"`
}

// UserResponse 当前用户响应
type UserResponse struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// MessageResponse 变更类接口的通用响应
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse 服务端错误响应体
type ErrorResponse struct {
	Error string `json:"error"`
}

// 请求模型

// CreateUserRequest 注册请求
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginUserRequest 登录请求
type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AddCartProductRequest 加入购物车请求
type AddCartProductRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int32     `json:"quantity" validate:"required,min=1"`
}

// UpdateCartProductQuantityRequest 修改购物车数量请求
type UpdateCartProductQuantityRequest struct {
	Quantity int32 `json:"quantity" validate:"required,min=1"`
}

// SaveProductRequest 创建/更新商品请求（卖家后台）
type SaveProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   *string `json:"description,omitempty"`
	Price         string  `json:"price" validate:"required"`
	StockQuantity int32   `json:"stock_quantity" validate:"min=0"`
	CategoryID    string  `json:"category_id" validate:"required,uuid"`
	ImageURL      *string `json:"image_url,omitempty"`
}

// ListProductsParams 商品列表查询参数
type ListProductsParams struct {
	PageID     int32
	PageSize   int32
	CategoryID *uuid.UUID
}
