package config

import (
	"time"

	"github.com/shouni/go-visual-prompt-kit/pkg/remote"
)

// デフォルト値の定義
const (
	DefaultGeminiModel      = "gemini-3-flash-preview"
	DefaultDescriptionModel = "gemini-3-flash-preview"
	DefaultPromptModel      = "gemini-3-flash-preview"
	DefaultRateInterval     = 2 * time.Second
	DefaultRateBurst        = 2
	DefaultCacheTTL         = 30 * time.Minute
	DefaultCacheCleanup     = time.Hour
	DefaultMaxImageEdge     = 1536
	DefaultTemperature      = float32(0.2)
)

// Config は解析パイプラインの各 Runner を動作させるための基本設定です。
type Config struct {
	// --- AI Model Settings ---
	GeminiAPIKey     string
	GeminiModel      string // 構造化解析用
	DescriptionModel string // 自然文の説明用
	PromptModel      string // プロバイダ向けプロンプト用
	Temperature      float32

	// --- Retry & Rate ---
	Retry        remote.Policy
	RateInterval time.Duration
	RateBurst    int

	// --- Cache ---
	CacheTTL     time.Duration
	CacheCleanup time.Duration

	// --- Input ---
	MaxImageEdge int // 送信前に長辺をこの値まで縮小します。0 以下なら縮小しません。
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		GeminiModel:      DefaultGeminiModel,
		DescriptionModel: DefaultDescriptionModel,
		PromptModel:      DefaultPromptModel,
		Temperature:      DefaultTemperature,
		Retry:            remote.DefaultPolicy(),
		RateInterval:     DefaultRateInterval,
		RateBurst:        DefaultRateBurst,
		CacheTTL:         DefaultCacheTTL,
		CacheCleanup:     DefaultCacheCleanup,
		MaxImageEdge:     DefaultMaxImageEdge,
	}
}
