// File: internal/converter/user_converter.go
package converter

import (
	"bazaar-tui/internal/api"
	"bazaar-tui/internal/model"
	"bazaar-tui/internal/pkg/xerrors"
)

// ConvertUser 将 "who am I" 响应转换为 UI 层模型
func ConvertUser(resp *api.UserResponse) (model.User, error) {
	var missing []string
	if resp.Name == nil {
		missing = append(missing, "name")
	}
	if resp.Email == nil {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return model.User{}, xerrors.NewMissingFieldError("user", missing, resp)
	}

	return model.User{
		Name:  *resp.Name,
		Email: *resp.Email,
	}, nil
}
