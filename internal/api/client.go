// File: internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	"bazaar-tui/internal/pkg/ctxkey"
	"bazaar-tui/internal/pkg/log"
	"bazaar-tui/internal/pkg/metrics"
	"bazaar-tui/internal/pkg/xerrors"
)

// Client 访问商城 REST API 的 HTTP 客户端。
// 认证基于 Cookie：登录成功后服务端下发会话 Cookie，
// cookiejar 负责在后续请求中带上（等价于浏览器的 withCredentials）。
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// Option 客户端可选配置
type Option func(*options)

type options struct {
	timeout   time.Duration
	logger    log.Logger
	metrics   *metrics.ClientMetrics
	observers []ResponseObserver
}

// WithTimeout 设置单次请求超时
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger 注入日志器
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics 注入指标收集器
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithResponseObserver 注册全局响应观察者。
// 观察者按注册顺序对每个响应同步执行，是会话层 401 降级的唯一入口。
func WithResponseObserver(obs ResponseObserver) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// NewClient 创建客户端
func NewClient(baseURL string, opts ...Option) *Client {
	o := &options{
		timeout: 15 * time.Second,
		logger:  log.GetLogger(),
		metrics: metrics.DefaultClientMetrics,
	}
	for _, opt := range opts {
		opt(o)
	}

	// Cookie 会话依赖 jar，构造失败只可能是编程错误
	jar, err := cookiejar.New(nil)
	xerrors.Must(err)

	var transport http.RoundTripper = http.DefaultTransport
	transport = &observerTransport{next: transport, observers: o.observers}
	transport = &metricsTransport{next: transport, metrics: o.metrics}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:       jar,
			Timeout:   o.timeout,
			Transport: transport,
		},
		logger: o.logger.With("component", "api_client"),
	}
}

// BaseURL 返回配置的 API 基础地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON 发送 JSON 请求并解析响应。
// route 是路由模板（用于指标和日志），path 是实际路径。
func doJSON[T any, R any](ctx context.Context, c *Client, method, route, path string, payload *T) (*R, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, xerrors.Wrap(err, xerrors.CodeInvalidRequest, "encode request")
		}
		body = bytes.NewReader(buf)
	}

	requestID := uuid.NewString()
	ctx = ctxkey.WithValue(ctx, ctxkey.RequestID, requestID)
	ctx = withRoute(ctx, route)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, xerrors.Wrap(err, xerrors.CodeInvalidRequest, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "api request failed",
			log.String("method", method),
			log.String("route", route),
			log.Any("error", err),
		)
		return nil, xerrors.Wrap(err, xerrors.CodeAPIRequestFailed, fmt.Sprintf("%s %s", method, route)).
			WithRequestID(requestID)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, xerrors.Wrap(err, xerrors.CodeAPIRequestFailed, "read response").
			WithRequestID(requestID)
	}

	c.logger.DebugContext(ctx, "api request done",
		log.String("method", method),
		log.String("route", route),
		log.Int("status", resp.StatusCode),
		log.Int64("elapsed_ms", time.Since(started).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(method, route, resp.StatusCode, bodyBytes).
			WithRequestID(requestID)
	}

	if len(bodyBytes) == 0 {
		// 部分变更接口返回空体
		return new(R), nil
	}

	var out R
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return nil, xerrors.Wrap(err, xerrors.CodeAPIDecodeFailed, fmt.Sprintf("%s %s", method, route)).
			WithRequestID(requestID)
	}

	return &out, nil
}

// statusError 将非 2xx 响应翻成带错误码的 AppError
func statusError(method, route string, statusCode int, body []byte) *xerrors.AppError {
	// 服务端错误体是 {"error": "..."}，带上便于排查
	var errBody ErrorResponse
	detail := string(body)
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error != "" {
		detail = errBody.Error
	}

	switch statusCode {
	case http.StatusUnauthorized:
		// 会话降级由响应观察者统一处理，这里只负责把错误交还调用方
		return xerrors.New(xerrors.CodeSessionExpired, detail).
			WithMetadata("status_code", statusCode)
	case http.StatusNotFound:
		return xerrors.New(xerrors.CodeResourceNotFound, detail).
			WithMetadata("status_code", statusCode)
	default:
		return xerrors.NewAPIStatusError(method, route, statusCode, detail)
	}
}

// StatusCodeOf 从错误中提取 HTTP 状态码，没有则返回 0
func StatusCodeOf(err error) int {
	appErr, ok := err.(*xerrors.AppError)
	if !ok || appErr.Context == nil || appErr.Context.Metadata == nil {
		return 0
	}
	if code, ok := appErr.Context.Metadata["status_code"].(int); ok {
		return code
	}
	return 0
}
