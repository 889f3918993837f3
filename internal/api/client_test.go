// File: internal/api/client_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bazaar-tui/internal/pkg/xerrors"
)

// TestListProductsQueryParams 分页与类目过滤参数按线上格式拼进查询串。
func TestListProductsQueryParams(t *testing.T) {
	categoryID := uuid.New()
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"page_id":     r.URL.Query().Get("page_id"),
			"page_size":   r.URL.Query().Get("page_size"),
			"category_id": r.URL.Query().Get("category_id"),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"meta": map[string]any{"page_id": 2, "page_size": 10},
			"data": []any{},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.ListProducts(context.Background(), ListProductsParams{
		PageID:     2,
		PageSize:   10,
		CategoryID: &categoryID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Meta.PageID)
	require.Equal(t, "2", gotQuery["page_id"])
	require.Equal(t, "10", gotQuery["page_size"])
	require.Equal(t, categoryID.String(), gotQuery["category_id"])
}

// TestLoginCookiePersistsAcrossRequests 登录下发的会话 Cookie 会自动带到后续请求。
func TestLoginCookiePersistsAcrossRequests(t *testing.T) {
	var meCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/users/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		case "/api/v1/users/me":
			if c, err := r.Cookie("session"); err == nil {
				meCookie = c.Value
			}
			json.NewEncoder(w).Encode(map[string]string{"name": "Jane", "email": "jane@example.com"})
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.LoginUser(context.Background(), LoginUserRequest{
		Email:    "jane@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = client.GetCurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "abc123", meCookie)
}

// TestUnauthorizedMapsToSessionExpired 401 映射为会话过期错误并触发响应观察者。
func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "session has expired"})
	}))
	defer server.Close()

	observed := 0
	client := NewClient(server.URL, WithResponseObserver(func(resp *http.Response) {
		if resp.StatusCode == http.StatusUnauthorized {
			observed++
		}
	}))

	_, err := client.GetCart(context.Background())
	require.Error(t, err)

	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, xerrors.CodeSessionExpired, appErr.Code)
	require.Equal(t, http.StatusUnauthorized, StatusCodeOf(err))
	require.Equal(t, 1, observed)
}

// TestNotFoundMapsToResourceNotFound 404 映射为资源不存在。
func TestNotFoundMapsToResourceNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "product not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetProduct(context.Background(), uuid.New())

	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, xerrors.CodeResourceNotFound, appErr.Code)
	require.Equal(t, http.StatusNotFound, StatusCodeOf(err))
}

// TestServerErrorCarriesBody 其他错误状态码带出服务端 error 字段内容。
func TestServerErrorCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "database is down"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetCartProductCount(context.Background())

	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, xerrors.CodeAPIStatusError, appErr.Code)
	require.Equal(t, http.StatusInternalServerError, StatusCodeOf(err))
	require.Equal(t, "database is down", appErr.Context.Metadata["body"])
}

// TestEmptyResponseBody 变更接口返回空体时不报解码错误。
func TestEmptyResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.LogoutUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Empty(t, resp.Message)
}

// TestObserverRunsForEveryRequest 观察者对每个响应都执行，而不只在出错时。
func TestObserverRunsForEveryRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer server.Close()

	seen := 0
	client := NewClient(server.URL, WithResponseObserver(func(*http.Response) { seen++ }))

	for i := 0; i < 3; i++ {
		_, err := client.LogoutUser(context.Background())
		require.NoError(t, err)
	}
	require.Equal(t, 3, seen)
}
