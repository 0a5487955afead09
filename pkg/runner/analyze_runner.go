package runner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-visual-prompt-kit/pkg/asset"
	"github.com/shouni/go-visual-prompt-kit/pkg/config"
	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/parser"
	"github.com/shouni/go-visual-prompt-kit/pkg/prompts"
	"github.com/shouni/go-visual-prompt-kit/pkg/remote"
)

// DescriptionPlaceholder は説明文の生成に失敗した場合に使う代替テキストです。
const DescriptionPlaceholder = "Description unavailable."

// AnalyzeInput は解析対象の画像と任意のラベルです。
type AnalyzeInput struct {
	Images []asset.Image
	Labels []string
}

// AnalyzeOutput は構造化解析と説明文の結果です。
type AnalyzeOutput struct {
	Metadata            domain.ImageMetadata
	Description         string
	DescriptionDegraded bool
}

// AnalyzeRunner は構造化解析と説明文生成を並行して実行します。
// 構造化解析の失敗は致命的ですが、説明文の失敗は代替テキストに置き換えて続行します。
type AnalyzeRunner struct {
	cfg           config.Config
	client        *remote.Client
	promptBuilder prompts.PromptBuilder
	cache         *cache.Cache
	group         singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
}

// flight は同じキーの解析を待っている呼び出し元の数と、解析に渡すコンテキストです。
// 待っている呼び出し元が全員いなくなった時点で解析をキャンセルします。
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewAnalyzeRunner は依存関係を注入して初期化します。
func NewAnalyzeRunner(cfg config.Config, client *remote.Client, pb prompts.PromptBuilder, c *cache.Cache) *AnalyzeRunner {
	return &AnalyzeRunner{
		cfg:           cfg,
		client:        client,
		promptBuilder: pb,
		cache:         c,
		flights:       make(map[string]*flight),
	}
}

// Run は画像を解析します。同じ入力の結果はキャッシュされ、同時に実行された同じ入力の解析は1回にまとめられます。
// 呼び出し元ごとに ctx のキャンセルで待機を打ち切れます。相乗りしている他の呼び出し元の解析は続行されます。
// 返される Metadata はキャッシュと共有されるため、変更しないでください。
func (ar *AnalyzeRunner) Run(ctx context.Context, in AnalyzeInput) (AnalyzeOutput, error) {
	if len(in.Images) == 0 {
		return AnalyzeOutput{}, fmt.Errorf("解析する画像が指定されていません")
	}

	key := ar.cacheKey(in)
	if cached, ok := ar.cache.Get(key); ok {
		slog.InfoContext(ctx, "AnalyzeRunner: キャッシュを使用します", "key", key[:12])
		return cached.(AnalyzeOutput), nil
	}

	f := ar.join(ctx, key)
	defer ar.leave(key, f)

	ch := ar.group.DoChan(key, func() (any, error) {
		out, err := ar.analyze(f.ctx, in)
		if err != nil {
			return nil, err
		}
		ar.cache.Set(key, out, cache.DefaultExpiration)
		return out, nil
	})

	select {
	case <-ctx.Done():
		return AnalyzeOutput{}, fmt.Errorf("%w: %w", remote.ErrCancelled, context.Cause(ctx))
	case res := <-ch:
		if res.Err != nil {
			return AnalyzeOutput{}, res.Err
		}
		if res.Shared {
			slog.DebugContext(ctx, "AnalyzeRunner: 実行中の解析結果を共有しました", "key", key[:12])
		}
		return res.Val.(AnalyzeOutput), nil
	}
}

// join は key の解析に呼び出し元を登録します。解析のコンテキストは呼び出し元のキャンセルから切り離し、値だけを引き継ぎます。
func (ar *AnalyzeRunner) join(ctx context.Context, key string) *flight {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	f, ok := ar.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		ar.flights[key] = f
	}
	f.waiters++
	return f
}

// leave は呼び出し元の登録を外し、最後の1人であれば解析をキャンセルします。
func (ar *AnalyzeRunner) leave(key string, f *flight) {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if ar.flights[key] == f {
		delete(ar.flights, key)
	}
}

func (ar *AnalyzeRunner) analyze(ctx context.Context, in AnalyzeInput) (AnalyzeOutput, error) {
	data := prompts.TemplateData{Labels: in.Labels, ImageCount: len(in.Images)}

	analysisPrompt, err := ar.promptBuilder.Build(prompts.ModeAnalysis, data)
	if err != nil {
		return AnalyzeOutput{}, fmt.Errorf("解析プロンプトの生成に失敗: %w", err)
	}
	descriptionPrompt, err := ar.promptBuilder.Build(prompts.ModeDescription, data)
	if err != nil {
		return AnalyzeOutput{}, fmt.Errorf("説明プロンプトの生成に失敗: %w", err)
	}

	imageParts := make([]remote.Part, 0, len(in.Images))
	for _, img := range in.Images {
		imageParts = append(imageParts, remote.Part{Data: img.Data, MIMEType: img.MIMEType})
	}

	metaReq := remote.Request{
		Model:       ar.cfg.GeminiModel,
		Parts:       append(append([]remote.Part{}, imageParts...), remote.TextPart(analysisPrompt)),
		Temperature: &ar.cfg.Temperature,
		JSON:        true,
	}
	descReq := remote.Request{
		Model: ar.cfg.DescriptionModel,
		Parts: append(append([]remote.Part{}, imageParts...), remote.TextPart(descriptionPrompt)),
	}

	slog.InfoContext(ctx, "AnalyzeRunner: 解析を開始します",
		"images", len(in.Images),
		"model", ar.cfg.GeminiModel,
		"description_model", ar.cfg.DescriptionModel,
	)
	start := time.Now()

	// 両方の完了を待つため、各 goroutine はエラーを返さず結果を変数に格納するのだ
	var (
		g           errgroup.Group
		metadata    domain.ImageMetadata
		metaErr     error
		description string
		descErr     error
	)
	g.Go(func() error {
		metadata, metaErr = remote.GenerateJSON(ctx, ar.client, metaReq, parser.DecodeAnalysis, ar.repairRequest)
		return nil
	})
	g.Go(func() error {
		resp, err := ar.client.Generate(ctx, descReq)
		if err != nil {
			descErr = err
			return nil
		}
		description = strings.TrimSpace(resp.Text)
		return nil
	})
	_ = g.Wait()

	if metaErr != nil {
		return AnalyzeOutput{}, fmt.Errorf("画像の構造化解析に失敗しました: %w", metaErr)
	}

	out := AnalyzeOutput{Metadata: metadata, Description: description}
	if descErr != nil || description == "" {
		slog.WarnContext(ctx, "AnalyzeRunner: 説明文の生成に失敗したため代替テキストを使用します", "error", descErr)
		out.Description = DescriptionPlaceholder
		out.DescriptionDegraded = true
	}

	slog.InfoContext(ctx, "AnalyzeRunner: 解析が完了しました",
		"elapsed", time.Since(start),
		"has_identity", metadata.HasIdentity(),
		"description_degraded", out.DescriptionDegraded,
	)
	return out, nil
}

// repairRequest は不正な JSON を修正させるリクエストを組み立てます。
func (ar *AnalyzeRunner) repairRequest(invalid string, cause *parser.SyntaxError) (remote.Request, error) {
	p, err := ar.promptBuilder.Build(prompts.ModeRepair, prompts.TemplateData{
		InvalidJSON: invalid,
		ParseError:  cause.Err.Error(),
	})
	if err != nil {
		return remote.Request{}, err
	}
	return remote.Request{
		Model:       ar.cfg.GeminiModel,
		Parts:       []remote.Part{remote.TextPart(p)},
		Temperature: &ar.cfg.Temperature,
		JSON:        true,
	}, nil
}

// cacheKey は画像、ラベル、モデルから SHA-256 のキーを作ります。
func (ar *AnalyzeRunner) cacheKey(in AnalyzeInput) string {
	h := sha256.New()
	h.Write([]byte(ar.cfg.GeminiModel))
	h.Write([]byte{0})
	h.Write([]byte(ar.cfg.DescriptionModel))
	for _, img := range in.Images {
		h.Write([]byte{0})
		h.Write(img.Data)
	}
	for _, l := range in.Labels {
		h.Write([]byte{0})
		h.Write([]byte(l))
	}
	return hex.EncodeToString(h.Sum(nil))
}
