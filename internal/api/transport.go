// File: internal/api/transport.go
package api

import (
	"context"
	"net/http"
	"time"

	"bazaar-tui/internal/pkg/metrics"
)

// ResponseObserver 观察每一个出站请求的响应。
// 会话管理器用它实现全局 401 降级：不论请求来自哪个页面，
// 只要看到 401 就把会话置为未认证。
type ResponseObserver func(resp *http.Response)

type routeKey struct{}

// withRoute 把路由模板放进 context，供传输层打指标
func withRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

func routeOf(req *http.Request) string {
	if route, ok := req.Context().Value(routeKey{}).(string); ok {
		return route
	}
	return req.URL.Path
}

// observerTransport 在响应到达时依次通知观察者
type observerTransport struct {
	next      http.RoundTripper
	observers []ResponseObserver
}

func (t *observerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if resp != nil {
		for _, obs := range t.observers {
			obs(resp)
		}
	}
	return resp, err
}

// metricsTransport 记录出站请求指标
type metricsTransport struct {
	next    http.RoundTripper
	metrics *metrics.ClientMetrics
}

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.metrics == nil {
		return t.next.RoundTrip(req)
	}

	route := routeOf(req)
	t.metrics.IncInFlight()
	started := time.Now()

	resp, err := t.next.RoundTrip(req)

	elapsed := time.Since(started)
	t.metrics.DecInFlight()

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	t.metrics.RecordRequest(route, req.Method, statusCode, elapsed)

	return resp, err
}
