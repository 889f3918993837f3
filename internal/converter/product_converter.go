// File: internal/converter/product_converter.go
package converter

import (
	"github.com/ericlagergren/decimal"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/model"
	"bazaar-tui/internal/pkg/xerrors"
)

// ConvertProduct 将商品线上响应转换为 UI 层模型
// 必填字段缺失立即报错并带出原始对象，绝不产出半成品
func ConvertProduct(resp *api.ProductResponse) (model.Product, error) {
	var missing []string
	if resp.ID == nil {
		missing = append(missing, "id")
	}
	if resp.Name == nil {
		missing = append(missing, "name")
	}
	if resp.Price == nil {
		missing = append(missing, "price")
	}
	if resp.StockQuantity == nil {
		missing = append(missing, "stock_quantity")
	}
	if resp.CategoryID == nil {
		missing = append(missing, "category_id")
	}
	if resp.Category == nil {
		missing = append(missing, "category")
	}
	if resp.Seller == nil {
		missing = append(missing, "seller")
	}
	if len(missing) > 0 {
		return model.Product{}, xerrors.NewMissingFieldError("product", missing, resp)
	}

	price, err := parseDecimal("price", *resp.Price)
	if err != nil {
		return model.Product{}, err
	}

	return model.Product{
		ID:            *resp.ID,
		Name:          *resp.Name,
		Description:   resp.Description,
		Price:         price,
		StockQuantity: *resp.StockQuantity,
		CategoryID:    *resp.CategoryID,
		Category:      *resp.Category,
		Seller:        *resp.Seller,
		ImageURL:      resp.ImageURL,
	}, nil
}

// ConvertProductList 转换分页商品列表，任一行损坏则整体失败
func ConvertProductList(resp *api.ListProductsResponse) (model.ProductList, error) {
	meta, err := convertListMeta(&resp.Meta)
	if err != nil {
		return model.ProductList{}, err
	}

	products := make([]model.Product, 0, len(resp.Data))
	for i := range resp.Data {
		product, err := ConvertProduct(&resp.Data[i])
		if err != nil {
			return model.ProductList{}, err
		}
		products = append(products, product)
	}

	return model.ProductList{Meta: meta, Products: products}, nil
}

// ConvertProductCategory 将类目线上响应转换为 UI 层模型
func ConvertProductCategory(resp *api.ProductCategoryResponse) (model.Category, error) {
	var missing []string
	if resp.ID == nil {
		missing = append(missing, "id")
	}
	if resp.Name == nil {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return model.Category{}, xerrors.NewMissingFieldError("product_category", missing, resp)
	}

	return model.Category{
		ID:   *resp.ID,
		Name: *resp.Name,
	}, nil
}

// ConvertProductCategories 转换类目列表
func ConvertProductCategories(resp *api.ListProductCategoriesResponse) ([]model.Category, error) {
	categories := make([]model.Category, 0, len(resp.Data))
	for i := range resp.Data {
		category, err := ConvertProductCategory(&resp.Data[i])
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// convertListMeta 转换分页 meta 段
func convertListMeta(meta *api.ListMetaResponse) (model.ListMeta, error) {
	var missing []string
	if meta.PageID == nil {
		missing = append(missing, "page_id")
	}
	if meta.PageSize == nil {
		missing = append(missing, "page_size")
	}
	if len(missing) > 0 {
		return model.ListMeta{}, xerrors.NewMissingFieldError("list_meta", missing, meta)
	}

	out := model.ListMeta{
		PageID:   *meta.PageID,
		PageSize: *meta.PageSize,
	}
	// page_count / total_count 只有部分列表接口返回
	if meta.PageCount != nil {
		out.PageCount = *meta.PageCount
	}
	if meta.TotalCount != nil {
		out.TotalCount = *meta.TotalCount
	}
	return out, nil
}

// parseDecimal 把线上格式的十进制字符串解析为 decimal.Big
// 金额不允许经过 float64
func parseDecimal(field, value string) (*decimal.Big, error) {
	d, ok := new(decimal.Big).SetString(value)
	if !ok {
		return nil, xerrors.NewDecimalError(field, value)
	}
	return d, nil
}
