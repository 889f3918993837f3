// File: internal/session/manager_test.go
package session

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"bazaar-tui/internal/model"
)

func jane() model.User {
	return model.User{Name: "Jane", Email: "jane@example.com"}
}

// TestManagerStartsLoading 初始状态是 loading。
func TestManagerStartsLoading(t *testing.T) {
	m := NewManager(nil)
	require.Equal(t, StatusLoading, m.Snapshot().Status)
	require.Nil(t, m.Snapshot().User)
}

// TestResolveOnlyActsWhileLoading Resolve 只在初始解析阶段生效。
func TestResolveOnlyActsWhileLoading(t *testing.T) {
	m := NewManager(nil)
	user := jane()
	m.Resolve(&user)
	require.Equal(t, StatusAuthenticated, m.Snapshot().Status)

	// 已解析后再 Resolve 是 no-op
	m.Resolve(nil)
	require.Equal(t, StatusAuthenticated, m.Snapshot().Status)
}

// TestResolveNilMeansUnauthenticated 初始探测失败（401）按未登录解析。
func TestResolveNilMeansUnauthenticated(t *testing.T) {
	m := NewManager(nil)
	m.Resolve(nil)
	require.Equal(t, StatusUnauthenticated, m.Snapshot().Status)
}

// TestLoginThenLogoutTransitions 登录登出的正常迁移路径。
func TestLoginThenLogoutTransitions(t *testing.T) {
	m := NewManager(nil)
	m.Resolve(nil)

	var transitions []Status
	m.Subscribe(func(s Snapshot) {
		transitions = append(transitions, s.Status)
	})

	m.SetAuthenticated(jane())
	require.Equal(t, StatusAuthenticated, m.Snapshot().Status)
	require.Equal(t, "Jane", m.Snapshot().User.Name)

	m.SetUnauthenticated()
	require.Equal(t, StatusUnauthenticated, m.Snapshot().Status)
	require.Nil(t, m.Snapshot().User)

	require.Equal(t, []Status{StatusAuthenticated, StatusUnauthenticated}, transitions)
}

// TestDuplicateDispatchIsDeduped 相同状态不重复通知监听者。
func TestDuplicateDispatchIsDeduped(t *testing.T) {
	m := NewManager(nil)
	m.Resolve(nil)

	notified := 0
	m.Subscribe(func(Snapshot) { notified++ })

	m.SetUnauthenticated()
	m.SetUnauthenticated()
	require.Zero(t, notified)

	m.SetAuthenticated(jane())
	m.SetAuthenticated(jane())
	require.Equal(t, 1, notified)
}

// TestUnsubscribeStopsNotifications 注销后不再收到会话事件。
func TestUnsubscribeStopsNotifications(t *testing.T) {
	m := NewManager(nil)
	notified := 0
	unsubscribe := m.Subscribe(func(Snapshot) { notified++ })

	m.Resolve(nil)
	require.Equal(t, 1, notified)

	unsubscribe()
	m.SetAuthenticated(jane())
	require.Equal(t, 1, notified)
}

// TestObserverDemotesOn401 任意请求的 401 响应都会把会话降级。
func TestObserverDemotesOn401(t *testing.T) {
	m := NewManager(nil)
	user := jane()
	m.Resolve(&user)

	observer := m.Observer()
	reqURL, err := url.Parse("http://localhost/api/v1/cart-products")
	require.NoError(t, err)

	observer(&http.Response{
		StatusCode: http.StatusUnauthorized,
		Request:    &http.Request{URL: reqURL},
	})
	require.Equal(t, StatusUnauthenticated, m.Snapshot().Status)
}

// TestObserverIgnoresOtherStatuses 非 401 状态码不影响会话。
func TestObserverIgnoresOtherStatuses(t *testing.T) {
	m := NewManager(nil)
	user := jane()
	m.Resolve(&user)

	observer := m.Observer()
	for _, code := range []int{http.StatusOK, http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		rec := httptest.NewRecorder()
		rec.Code = code
		resp := rec.Result()
		resp.StatusCode = code
		resp.Request = httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		observer(resp)
	}
	require.Equal(t, StatusAuthenticated, m.Snapshot().Status)
}
