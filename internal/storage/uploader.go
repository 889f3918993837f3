// File: internal/storage/uploader.go

// Package storage 商品图片上传。
// 对象键用"毫秒时间戳-原始文件名"，同名文件重复上传互不覆盖。
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bazaar-tui/internal/pkg/config"
	"bazaar-tui/internal/pkg/log"
	"bazaar-tui/internal/pkg/xerrors"
)

// Uploader 把一个文件流上传到对象存储并返回可公开访问的 URL
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// BucketUploader 通过 HTTP PUT 直传对象存储桶
type BucketUploader struct {
	endpoint   string
	bucket     string
	httpClient *http.Client
	logger     log.Logger
	now        func() time.Time
}

// NewBucketUploader 根据配置创建上传器。
// 存储配置不完整时返回错误，调用方据此禁用上传入口。
func NewBucketUploader(cfg *config.Config) (*BucketUploader, error) {
	if cfg.StorageEndpoint == "" || cfg.StorageBucket == "" {
		return nil, xerrors.FromCode(xerrors.CodeStorageConfigMissing).
			WithComponent("storage", "init")
	}
	return &BucketUploader{
		endpoint:   strings.TrimRight(cfg.StorageEndpoint, "/"),
		bucket:     cfg.StorageBucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.GetLogger(),
		now:        time.Now,
	}, nil
}

// Upload 上传文件并返回对象的公开 URL
func (u *BucketUploader) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	key := fmt.Sprintf("%d-%s", u.now().UnixMilli(), name)
	url := fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, r)
	if err != nil {
		return "", xerrors.NewUploadError(key, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	u.logger.Info("开始上传文件",
		log.String("key", key),
		log.String("content_type", contentType),
	)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", xerrors.NewUploadError(key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", xerrors.NewUploadError(key,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}

	u.logger.Info("文件上传完成", log.String("url", url))
	return url, nil
}
