// File: internal/pkg/config/config.go
package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config 客户端运行所需的全部配置，启动时从环境变量加载一次
type Config struct {
	// API 基础地址，例如 http://localhost:8080
	APIBaseURL string `envconfig:"BAZAAR_API_BASE_URL" default:"http://localhost:8080"`

	// 每个 API 请求的超时时间
	RequestTimeout time.Duration `envconfig:"BAZAAR_REQUEST_TIMEOUT" default:"15s"`

	// 商品列表每页条数
	PageSize int `envconfig:"BAZAAR_PAGE_SIZE" default:"20"`

	// 商品列表加载中展示的骨架行数
	LoadingSkeletons int `envconfig:"BAZAAR_LOADING_SKELETONS" default:"3"`

	// 界面语言（zh / en）
	Language string `envconfig:"BAZAAR_LANGUAGE" default:"en"`

	// 运行环境（development / production），影响日志格式
	Environment string `envconfig:"BAZAAR_ENV" default:"development"`

	// 对象存储（商品图片上传）
	StorageEndpoint  string `envconfig:"BAZAAR_S3_ENDPOINT"`
	StorageBucket    string `envconfig:"BAZAAR_S3_BUCKET"`
	StorageAccessKey string `envconfig:"BAZAAR_S3_ACCESS_KEY_ID"`
	StorageSecretKey string `envconfig:"BAZAAR_S3_SECRET_ACCESS_KEY"`
}

// Load 从环境变量加载配置
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SanitizeForLog 清理配置中的敏感信息，用于日志输出
// 不要在日志中输出密钥等敏感信息
func (c Config) SanitizeForLog() map[string]any {
	out := map[string]any{
		"api_base_url":      c.APIBaseURL,
		"request_timeout":   c.RequestTimeout.String(),
		"page_size":         c.PageSize,
		"loading_skeletons": c.LoadingSkeletons,
		"language":          c.Language,
		"environment":       c.Environment,
		"storage_endpoint":  c.StorageEndpoint,
		"storage_bucket":    c.StorageBucket,
	}
	if c.StorageAccessKey != "" {
		out["storage_access_key"] = "***REDACTED***"
	}
	if c.StorageSecretKey != "" {
		out["storage_secret_key"] = "***REDACTED***"
	}
	return out
}

// IsProduction 是否生产环境
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
