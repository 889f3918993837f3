// File: internal/converter/cart_converter.go
package converter

import (
	"bazaar-tui/internal/api"
	"bazaar-tui/internal/model"
	"bazaar-tui/internal/pkg/xerrors"
)

// ConvertCartProduct 将购物车行线上响应转换为 UI 层模型
func ConvertCartProduct(resp *api.CartProductResponse) (model.CartProduct, error) {
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
	if resp.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if resp.Subtotal == nil {
		missing = append(missing, "subtotal")
	}
	if len(missing) > 0 {
		return model.CartProduct{}, xerrors.NewMissingFieldError("cart_product", missing, resp)
	}

	price, err := parseDecimal("price", *resp.Price)
	if err != nil {
		return model.CartProduct{}, err
	}
	subtotal, err := parseDecimal("subtotal", *resp.Subtotal)
	if err != nil {
		return model.CartProduct{}, err
	}

	return model.CartProduct{
		ID:          *resp.ID,
		Name:        *resp.Name,
		Description: resp.Description,
		Price:       price,
		Quantity:    *resp.Quantity,
		Subtotal:    subtotal,
		ImageURL:    resp.ImageURL,
	}, nil
}

// ConvertCart 将购物车线上响应转换为 UI 层模型
// 合计金额由服务端计算，这里只转换不复核
func ConvertCart(resp *api.CartResponse) (model.Cart, error) {
	var missing []string
	if resp.Products == nil {
		missing = append(missing, "products")
	}
	if resp.Subtotal == nil {
		missing = append(missing, "subtotal")
	}
	if resp.Shipping == nil {
		missing = append(missing, "shipping")
	}
	if resp.Tax == nil {
		missing = append(missing, "tax")
	}
	if resp.Total == nil {
		missing = append(missing, "total")
	}
	if len(missing) > 0 {
		return model.Cart{}, xerrors.NewMissingFieldError("cart", missing, resp)
	}

	products := make([]model.CartProduct, 0, len(resp.Products))
	for i := range resp.Products {
		product, err := ConvertCartProduct(&resp.Products[i])
		if err != nil {
			return model.Cart{}, err
		}
		products = append(products, product)
	}

	subtotal, err := parseDecimal("subtotal", *resp.Subtotal)
	if err != nil {
		return model.Cart{}, err
	}
	shipping, err := parseDecimal("shipping", *resp.Shipping)
	if err != nil {
		return model.Cart{}, err
	}
	tax, err := parseDecimal("tax", *resp.Tax)
	if err != nil {
		return model.Cart{}, err
	}
	total, err := parseDecimal("total", *resp.Total)
	if err != nil {
		return model.Cart{}, err
	}

	return model.Cart{
		Products: products,
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}, nil
}
