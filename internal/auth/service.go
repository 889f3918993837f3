// File: internal/auth/service.go

// Package auth 登录 / 注册 / 登出流程
package auth

import (
	"context"
	"net/http"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/converter"
	"bazaar-tui/internal/pkg/log"
	"bazaar-tui/internal/pkg/xerrors"
	"bazaar-tui/internal/session"
)

// Service 封装认证流程，登录成功后负责把用户写进会话
type Service struct {
	client   *api.Client
	sessions *session.Manager
	logger   log.Logger
}

// NewService 创建认证服务
func NewService(client *api.Client, sessions *session.Manager, logger log.Logger) *Service {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Service{
		client:   client,
		sessions: sessions,
		logger:   logger.With("component", "auth"),
	}
}

// Initialize 应用启动时的 "who am I" 解析。
// 401 意味着没有有效会话，属于正常路径；其他错误原样抛给调用方。
func (s *Service) Initialize(ctx context.Context) error {
	resp, err := s.client.GetCurrentUser(ctx)
	if err != nil {
		if api.StatusCodeOf(err) == http.StatusUnauthorized {
			s.sessions.Resolve(nil)
			return nil
		}
		return err
	}

	user, err := converter.ConvertUser(resp)
	if err != nil {
		return err
	}

	s.sessions.Resolve(&user)
	s.logger.InfoContext(ctx, "session resolved", log.String("email", user.Email))
	return nil
}

// Login 登录并把会话置为 authenticated
func (s *Service) Login(ctx context.Context, email, password string) error {
	_, err := s.client.LoginUser(ctx, api.LoginUserRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		if api.StatusCodeOf(err) == http.StatusUnauthorized {
			return xerrors.FromCode(xerrors.CodeInvalidCredentials)
		}
		return err
	}

	// 登录响应只有 message，用户信息另取
	resp, err := s.client.GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	user, err := converter.ConvertUser(resp)
	if err != nil {
		return err
	}

	s.sessions.SetAuthenticated(user)
	s.logger.InfoContext(ctx, "login succeeded", log.String("email", user.Email))
	return nil
}

// RegisterAndLogin 注册后紧接着登录，两步顺序执行
func (s *Service) RegisterAndLogin(ctx context.Context, name, email, password string) error {
	_, err := s.client.CreateUser(ctx, api.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		// 服务端对重复邮箱返回 403
		if api.StatusCodeOf(err) == http.StatusForbidden {
			return xerrors.FromCode(xerrors.CodeEmailExists)
		}
		return err
	}

	return s.Login(ctx, email, password)
}

// Logout 登出并把会话置为 unauthenticated。
// 即使服务端登出失败，本地会话也会清掉，避免界面卡在已登录态。
func (s *Service) Logout(ctx context.Context) error {
	_, err := s.client.LogoutUser(ctx)
	s.sessions.SetUnauthenticated()
	if err != nil {
		s.logger.WarnContext(ctx, "logout request failed", log.Any("error", err))
		return err
	}
	return nil
}
