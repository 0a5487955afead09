package runner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-visual-prompt-kit/pkg/config"
	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/prompts"
	"github.com/shouni/go-visual-prompt-kit/pkg/remote"
)

// ProviderPromptRunner は生成モデル向けの3つ目のプロンプト形式をベストエフォートで作ります。
// どのような失敗もエラーとしては返さず、("", false) になるのだ。
type ProviderPromptRunner struct {
	cfg           config.Config
	client        *remote.Client
	promptBuilder prompts.PromptBuilder
	cache         *cache.Cache
}

// NewProviderPromptRunner は依存関係を注入して初期化します。
func NewProviderPromptRunner(cfg config.Config, client *remote.Client, pb prompts.PromptBuilder, c *cache.Cache) *ProviderPromptRunner {
	return &ProviderPromptRunner{
		cfg:           cfg,
		client:        client,
		promptBuilder: pb,
		cache:         c,
	}
}

// Run はメタデータからプロバイダ向けのプロンプトを生成します。
func (pr *ProviderPromptRunner) Run(ctx context.Context, m domain.ImageMetadata) (string, bool) {
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		slog.WarnContext(ctx, "ProviderPromptRunner: メタデータの変換に失敗しました", "error", err)
		return "", false
	}

	sum := sha256.Sum256(append([]byte(pr.cfg.PromptModel+"\x00"), payload...))
	key := "provider:" + hex.EncodeToString(sum[:])
	if cached, ok := pr.cache.Get(key); ok {
		return cached.(string), true
	}

	p, err := pr.promptBuilder.Build(prompts.ModeProvider, prompts.TemplateData{MetadataJSON: string(payload)})
	if err != nil {
		slog.WarnContext(ctx, "ProviderPromptRunner: プロンプトの生成に失敗しました", "error", err)
		return "", false
	}

	resp, err := pr.client.Generate(ctx, remote.Request{
		Model:       pr.cfg.PromptModel,
		Parts:       []remote.Part{remote.TextPart(p)},
		Temperature: &pr.cfg.Temperature,
	})
	if err != nil {
		slog.WarnContext(ctx, "ProviderPromptRunner: プロバイダ向けプロンプトは利用できません", "error", err)
		return "", false
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", false
	}
	pr.cache.Set(key, text, cache.DefaultExpiration)
	return text, true
}
