// File: internal/model/product.go
package model

import (
	"github.com/ericlagergren/decimal"
	"github.com/google/uuid"
)

// Product UI 层商品模型（camelCase 域格式）
// Price 永远是十进制大数，金额运算不经过浮点
type Product struct {
	ID            uuid.UUID
	Name          string
	Description   *string // 线上格式缺失时保持 nil，不折叠成空串
	Price         *decimal.Big
	StockQuantity int32
	CategoryID    uuid.UUID
	Category      string
	Seller        string
	ImageURL      *string
}

// Category 商品类目
type Category struct {
	ID   uuid.UUID
	Name string
}

// ListMeta 列表接口的分页信息
type ListMeta struct {
	PageID     int32
	PageSize   int32
	PageCount  int64
	TotalCount int64
}

// ProductList 分页的商品列表
type ProductList struct {
	Meta     ListMeta
	Products []Product
}
