// File: internal/session/manager.go

// Package session 维护进程级的登录会话状态。
// 状态机: loading -> authenticated / unauthenticated，
// authenticated -> unauthenticated（任意请求返回 401 触发），
// unauthenticated -> authenticated（登录成功），
// 初始解析完成后不会再回到 loading。
package session

import (
	"net/http"
	"sync"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/model"
	"bazaar-tui/internal/pkg/log"
)

// Status 会话状态
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Snapshot 某一时刻的会话视图
type Snapshot struct {
	Status Status
	User   *model.User
}

// Listener 会话变化回调，在写入者的 goroutine 上同步执行
type Listener func(Snapshot)

// Manager 会话状态的唯一持有者。
// 所有写入都走内部的 dispatch，一处收口；读取方用 Snapshot / Subscribe。
type Manager struct {
	mu        sync.RWMutex
	status    Status
	user      *model.User
	listeners map[int]Listener
	nextID    int
	logger    log.Logger
}

// NewManager 创建会话管理器，初始状态 loading
func NewManager(logger log.Logger) *Manager {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Manager{
		status:    StatusLoading,
		listeners: make(map[int]Listener),
		logger:    logger.With("component", "session"),
	}
}

// Snapshot 返回当前会话视图
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{Status: m.status, User: m.user}
}

// Subscribe 注册会话变化监听，返回注销函数
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Resolve 初始 "who am I" 请求的结果。
// user 非 nil 则进入 authenticated，否则 unauthenticated。
// 只在 loading 状态下生效，后续调用是 no-op。
func (m *Manager) Resolve(user *model.User) {
	m.mu.Lock()
	if m.status != StatusLoading {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	if user != nil {
		m.dispatch(StatusAuthenticated, user)
	} else {
		m.dispatch(StatusUnauthenticated, nil)
	}
}

// SetAuthenticated 登录成功后写入用户
func (m *Manager) SetAuthenticated(user model.User) {
	m.dispatch(StatusAuthenticated, &user)
}

// SetUnauthenticated 登出或会话失效
func (m *Manager) SetUnauthenticated() {
	m.dispatch(StatusUnauthenticated, nil)
}

// Observer 返回挂到 API 客户端上的全局响应观察者。
// 任何请求返回 401 都会把会话降级为 unauthenticated，
// 各页面不需要也不应该自己再判断 401。
func (m *Manager) Observer() api.ResponseObserver {
	return func(resp *http.Response) {
		if resp.StatusCode == http.StatusUnauthorized {
			m.logger.Info("session demoted by 401 response",
				log.String("path", resp.Request.URL.Path),
			)
			m.dispatch(StatusUnauthenticated, nil)
		}
	}
}

// dispatch 唯一的状态写入口
func (m *Manager) dispatch(status Status, user *model.User) {
	m.mu.Lock()

	// 初始解析完成后不允许回到 loading
	if status == StatusLoading {
		m.mu.Unlock()
		return
	}
	if m.status == status && sameUser(m.user, user) {
		m.mu.Unlock()
		return
	}

	from := m.status
	m.status = status
	m.user = user
	snapshot := Snapshot{Status: status, User: user}
	listeners := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	m.logger.Debug("session transition",
		log.String("from", from.String()),
		log.String("to", status.String()),
	)

	// 在锁外通知，监听者可以安全地再读 Snapshot
	for _, fn := range listeners {
		fn(snapshot)
	}
}

func sameUser(a, b *model.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
