package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shouni/go-utils/envutil"

	libconfig "github.com/shouni/go-visual-prompt-kit/pkg/config"
)

// デフォルト値の定義なのだ
const (
	DefaultLogLevel = "info"
)

// Config はアプリケーション全体の環境設定を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	DescriptionModel string
	PromptModel      string
	MaxRetries       int
	RateInterval     time.Duration

	Options AnalyzeOptions
}

// AnalyzeOptions は CLI フラグから渡される実行時のパラメータなのだ。
type AnalyzeOptions struct {
	Labels           []string // --label
	OutputDir        string   // --output-dir: 空なら書き出さない
	Example          bool     // --example: compile で同梱のサンプルを使う
	Sections         string   // --sections
	NoProviderPrompt bool     // --no-provider-prompt
	Verbose          bool     // --verbose
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
// 数値や期間の形式が不正な場合はエラーを返します。
func LoadConfig() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", libconfig.DefaultGeminiModel),
		DescriptionModel: envutil.GetEnv("GEMINI_DESCRIPTION_MODEL", libconfig.DefaultDescriptionModel),
		PromptModel:      envutil.GetEnv("GEMINI_PROMPT_MODEL", libconfig.DefaultPromptModel),
	}

	retries, err := strconv.Atoi(envutil.GetEnv("MAX_RETRIES", "0"))
	if err != nil {
		return nil, fmt.Errorf("MAX_RETRIES の値が不正です: %w", err)
	}
	cfg.MaxRetries = retries

	interval, err := time.ParseDuration(envutil.GetEnv("RATE_INTERVAL", libconfig.DefaultRateInterval.String()))
	if err != nil {
		return nil, fmt.Errorf("RATE_INTERVAL の値が不正です: %w", err)
	}
	cfg.RateInterval = interval

	return cfg, nil
}

// ToLibraryConfig は環境設定をパイプライン用の設定に変換します。未指定の項目は既定値のままです。
func (c *Config) ToLibraryConfig() libconfig.Config {
	lc := libconfig.DefaultConfig()
	lc.GeminiAPIKey = c.GeminiAPIKey
	if c.GeminiModel != "" {
		lc.GeminiModel = c.GeminiModel
	}
	if c.DescriptionModel != "" {
		lc.DescriptionModel = c.DescriptionModel
	}
	if c.PromptModel != "" {
		lc.PromptModel = c.PromptModel
	}
	// MAX_RETRIES は再試行の回数なので、最初の1回を足して総試行回数にするのだ
	if c.MaxRetries > 0 {
		lc.Retry.MaxAttempts = c.MaxRetries + 1
	}
	if c.RateInterval > 0 {
		lc.RateInterval = c.RateInterval
	}
	return lc
}
