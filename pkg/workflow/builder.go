package workflow

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/shouni/go-visual-prompt-kit/pkg/config"
	"github.com/shouni/go-visual-prompt-kit/pkg/prompts"
	"github.com/shouni/go-visual-prompt-kit/pkg/remote"
)

// initializeGenerator は引数の Generator を返し、nil の場合は Gemini API 用の Generator を作成します。
func initializeGenerator(ctx context.Context, gen remote.Generator, apiKey string) (remote.Generator, error) {
	if gen != nil {
		return gen, nil
	}
	g, err := remote.NewGenAIGenerator(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// initializeClient はレートリミッタ付きの再試行クライアントを作成します。
func initializeClient(cfg config.Config, gen remote.Generator, opts ...remote.Option) (*remote.Client, error) {
	all := make([]remote.Option, 0, len(opts)+1)
	if cfg.RateInterval > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = config.DefaultRateBurst
		}
		all = append(all, remote.WithLimiter(rate.NewLimiter(rate.Every(cfg.RateInterval), burst)))
	}
	all = append(all, opts...)

	client, err := remote.NewClient(gen, cfg.Retry, all...)
	if err != nil {
		return nil, fmt.Errorf("リモートクライアントの初期化に失敗しました: %w", err)
	}
	return client, nil
}

// initializePromptBuilder は PromptBuilder を初期化します。
// 引数として既存のビルダーが渡された場合はそれを返し、nil の場合は新規作成します。
func initializePromptBuilder(pb prompts.PromptBuilder) (prompts.PromptBuilder, error) {
	if pb != nil {
		return pb, nil
	}
	builder, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("TextPromptBuilder の新規作成に失敗しました: %w", err)
	}
	return builder, nil
}

// initializeCache は解析結果とプロバイダ向けプロンプトで共有するキャッシュを作成します。
func initializeCache(cfg config.Config) *cache.Cache {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	cleanup := cfg.CacheCleanup
	if cleanup <= 0 {
		cleanup = config.DefaultCacheCleanup
	}
	return cache.New(ttl, cleanup)
}
