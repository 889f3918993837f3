// File: internal/api/users.go
package api

import (
	"context"
	"net/http"
)

// CreateUser 注册新用户
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*MessageResponse, error) {
	return doJSON[CreateUserRequest, MessageResponse](ctx, c, http.MethodPost, "/api/v1/users", "/api/v1/users", &req)
}

// LoginUser 登录，成功后服务端通过 Set-Cookie 下发会话
func (c *Client) LoginUser(ctx context.Context, req LoginUserRequest) (*MessageResponse, error) {
	return doJSON[LoginUserRequest, MessageResponse](ctx, c, http.MethodPost, "/api/v1/users/login", "/api/v1/users/login", &req)
}

// LogoutUser 登出（需登录）
func (c *Client) LogoutUser(ctx context.Context) (*MessageResponse, error) {
	return doJSON[struct{}, MessageResponse](ctx, c, http.MethodPost, "/api/v1/users/logout", "/api/v1/users/logout", nil)
}

// GetCurrentUser 查询当前登录用户（会话初始化时的 "who am I"）
func (c *Client) GetCurrentUser(ctx context.Context) (*UserResponse, error) {
	return doJSON[struct{}, UserResponse](ctx, c, http.MethodGet, "/api/v1/users/me", "/api/v1/users/me", nil)
}
