// File: internal/converter/cart_converter_test.go
package converter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/pkg/xerrors"
)

func validCartProductResponse() api.CartProductResponse {
	return api.CartProductResponse{
		ID:       id(uuid.New()),
		Name:     str("Go in Action"),
		Price:    str("12.50"),
		Quantity: i32(2),
		Subtotal: str("25.00"),
	}
}

// TestConvertCart 合计金额直接采用服务端数值，不在客户端重新累加。
func TestConvertCart(t *testing.T) {
	resp := &api.CartResponse{
		Products: []api.CartProductResponse{validCartProductResponse()},
		Subtotal: str("25.00"),
		Shipping: str("5.00"),
		Tax:      str("2.50"),
		// 故意给一个与 subtotal+shipping+tax 不一致的总价，转换层必须照单全收
		Total: str("99.99"),
	}

	cart, err := ConvertCart(resp)
	require.NoError(t, err)
	require.Len(t, cart.Products, 1)
	require.Equal(t, "25.00", cart.Subtotal.String())
	require.Equal(t, "99.99", cart.Total.String())
}

// TestConvertCartMissingTotals 合计字段缺失立即失败。
func TestConvertCartMissingTotals(t *testing.T) {
	resp := &api.CartResponse{
		Products: []api.CartProductResponse{validCartProductResponse()},
		Subtotal: str("25.00"),
	}

	_, err := ConvertCart(resp)
	require.Error(t, err)

	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, xerrors.CodeMissingWireField, appErr.Code)
	require.ElementsMatch(t, []string{"shipping", "tax", "total"}, appErr.Context.Metadata["missing_fields"])
}

// TestConvertCartProductMissingFields 行级必填字段一次性全部报出。
func TestConvertCartProductMissingFields(t *testing.T) {
	resp := validCartProductResponse()
	resp.Quantity = nil
	resp.Subtotal = nil

	_, err := ConvertCartProduct(&resp)
	require.Error(t, err)

	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, []string{"quantity", "subtotal"}, appErr.Context.Metadata["missing_fields"])
}
