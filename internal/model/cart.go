// File: internal/model/cart.go
package model

import (
	"github.com/ericlagergren/decimal"
	"github.com/google/uuid"
)

// CartProduct 购物车中的一行商品
type CartProduct struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Price       *decimal.Big
	Quantity    int32
	Subtotal    *decimal.Big
	ImageURL    *string
}

// Cart 购物车整体
// Subtotal 等金额由服务端计算，客户端直接信任，不重新累加
type Cart struct {
	Products []CartProduct
	Subtotal *decimal.Big
	Shipping *decimal.Big
	Tax      *decimal.Big
	Total    *decimal.Big
}
