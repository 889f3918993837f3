// File: internal/pkg/metrics/client_metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClientMetrics 出站 API 请求指标收集器
type ClientMetrics struct {
	// 出站请求总数（按路由模板、方法、状态码分组）
	RequestsTotal *prometheus.CounterVec

	// 出站请求延迟直方图（按路由模板分组）
	RequestDuration *prometheus.HistogramVec

	// 当前在途请求数（Gauge 类型）
	RequestsInFlight prometheus.Gauge
}

var (
	// DefaultClientMetrics 默认的客户端指标实例
	DefaultClientMetrics *ClientMetrics
)

// ClientBuckets 是针对终端用户可感知延迟优化的 buckets
// 单位：秒
var ClientBuckets = []float64{
	0.05, // 50ms
	0.1,  // 100ms
	0.2,  // 200ms
	0.3,  // 300ms
	0.5,  // 500ms
	1,    // 1s
	2,    // 2s
	5,    // 5s
	15,   // 15s - 客户端超时边界
}

// init 初始化默认指标
func init() {
	DefaultClientMetrics = NewClientMetrics("bazaar")
}

// NewClientMetrics 创建新的客户端指标收集器
func NewClientMetrics(namespace string) *ClientMetrics {
	return NewClientMetricsWithRegistry(namespace, GetRegisterer())
}

// NewClientMetricsWithRegistry 创建新的客户端指标收集器（使用自定义注册表）
func NewClientMetricsWithRegistry(namespace string, registerer prometheus.Registerer) *ClientMetrics {
	factory := promauto.With(registerer)

	return &ClientMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of outbound API requests by route template, method, and status code",
			},
			[]string{"route", "method", "status_code"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Outbound API request latency histogram by route template",
				Buckets:   ClientBuckets,
			},
			[]string{"route"},
		),

		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "api_requests_in_flight",
				Help:      "Current number of in-flight outbound API requests",
			},
		),
	}
}

// RecordRequest 记录一次出站请求
//
// 参数:
//   - route: 路由模板（如 "/api/v1/products/:id"，而非具体 ID）
//   - method: HTTP 方法（GET/POST/PUT/DELETE 等）
//   - statusCode: HTTP 状态码，网络层失败时为 0
//   - duration: 请求耗时
func (m *ClientMetrics) RecordRequest(route, method string, statusCode int, duration time.Duration) {
	statusCodeLabel := strconv.Itoa(statusCode)
	m.RequestsTotal.WithLabelValues(route, method, statusCodeLabel).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// IncInFlight 增加在途请求数
func (m *ClientMetrics) IncInFlight() {
	m.RequestsInFlight.Inc()
}

// DecInFlight 减少在途请求数
func (m *ClientMetrics) DecInFlight() {
	m.RequestsInFlight.Dec()
}
