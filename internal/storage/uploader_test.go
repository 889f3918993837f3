// File: internal/storage/uploader_test.go
package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bazaar-tui/internal/pkg/config"
	"bazaar-tui/internal/pkg/xerrors"
)

// TestBucketUploaderKeyAndURL 对象键带毫秒时间戳前缀，返回的 URL 指向上传位置。
func TestBucketUploaderKeyAndURL(t *testing.T) {
	var gotPath, gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	uploader, err := NewBucketUploader(&config.Config{
		StorageEndpoint: server.URL,
		StorageBucket:   "bazaar-images",
	})
	require.NoError(t, err)
	uploader.now = func() time.Time { return time.UnixMilli(1700000000000) }

	url, err := uploader.Upload(context.Background(), "photo.png", "image/png", strings.NewReader("fake-png"))
	require.NoError(t, err)
	require.Equal(t, "/bazaar-images/1700000000000-photo.png", gotPath)
	require.Equal(t, "image/png", gotContentType)
	require.Equal(t, "fake-png", gotBody)
	require.Equal(t, server.URL+"/bazaar-images/1700000000000-photo.png", url)
}

// TestBucketUploaderServerError 非 2xx 响应映射为上传错误。
func TestBucketUploaderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied", http.StatusForbidden)
	}))
	defer server.Close()

	uploader, err := NewBucketUploader(&config.Config{
		StorageEndpoint: server.URL,
		StorageBucket:   "bazaar-images",
	})
	require.NoError(t, err)

	_, err = uploader.Upload(context.Background(), "photo.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)

	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, xerrors.CodeUploadFailed, appErr.Code)
}

// TestBucketUploaderConfigMissing 存储配置缺失时创建失败。
func TestBucketUploaderConfigMissing(t *testing.T) {
	_, err := NewBucketUploader(&config.Config{})
	require.Error(t, err)

	var appErr *xerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, xerrors.CodeStorageConfigMissing, appErr.Code)
}
