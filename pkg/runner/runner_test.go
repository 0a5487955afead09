package runner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-visual-prompt-kit/pkg/asset"
	"github.com/shouni/go-visual-prompt-kit/pkg/config"
	"github.com/shouni/go-visual-prompt-kit/pkg/prompts"
	"github.com/shouni/go-visual-prompt-kit/pkg/remote"
)

const (
	structuredModel  = "structured-model"
	descriptionModel = "description-model"
	providerModel    = "provider-model"
)

const analysisJSON = "```json\n" + `{
  "subject": {"archetype": "mysterious wanderer", "identity": {"primaryColor": {"description": "violet", "hex": "#8F00FF"}, "fixedSeed": "Aria-7"}},
  "technical": {"render": "photorealistic"},
  "palette": {"colors": ["#8B4513", "#FFD700"]},
  "negative": "blurry"
}` + "\n```"

// routedGenerator はモデル名ごとに応答を返すテスト用の Generator なのだ。
type routedGenerator struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     map[string]int
}

func newRoutedGenerator() *routedGenerator {
	return &routedGenerator{
		responses: map[string]string{},
		errs:      map[string]error{},
		calls:     map[string]int{},
	}
}

func (g *routedGenerator) GenerateContent(_ context.Context, req remote.Request) (*remote.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[req.Model]++
	if err := g.errs[req.Model]; err != nil {
		return nil, err
	}
	return &remote.Response{Text: g.responses[req.Model]}, nil
}

func (g *routedGenerator) count(model string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[model]
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.GeminiModel = structuredModel
	cfg.DescriptionModel = descriptionModel
	cfg.PromptModel = providerModel
	cfg.Retry = remote.Policy{MaxAttempts: 1}
	return cfg
}

func newTestRunners(t *testing.T, gen remote.Generator) (*AnalyzeRunner, *ProviderPromptRunner) {
	t.Helper()
	cfg := testConfig()
	client, err := remote.NewClient(gen, cfg.Retry, remote.WithSleep(func(context.Context, time.Duration) error { return nil }))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		t.Fatalf("NewTextPromptBuilder: %v", err)
	}
	c := cache.New(time.Minute, time.Minute)
	return NewAnalyzeRunner(cfg, client, pb, c), NewProviderPromptRunner(cfg, client, pb, c)
}

func testInput() AnalyzeInput {
	return AnalyzeInput{
		Images: []asset.Image{{Path: "a.png", Data: []byte("fake-image"), MIMEType: "image/png"}},
		Labels: []string{"hero"},
	}
}

func TestAnalyzeRunner_Run(t *testing.T) {
	t.Run("両方成功", func(t *testing.T) {
		gen := newRoutedGenerator()
		gen.responses[structuredModel] = analysisJSON
		gen.responses[descriptionModel] = "  A lone traveler at dusk.  "
		ar, _ := newTestRunners(t, gen)

		out, err := ar.Run(context.Background(), testInput())
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if out.Metadata.Subject.Archetype != "mysterious wanderer" || !out.Metadata.HasIdentity() {
			t.Errorf("Metadata = %+v", out.Metadata.Subject)
		}
		if out.Description != "A lone traveler at dusk." || out.DescriptionDegraded {
			t.Errorf("Description = %q (degraded=%v)", out.Description, out.DescriptionDegraded)
		}
	})

	t.Run("説明文の失敗は代替テキストになる", func(t *testing.T) {
		gen := newRoutedGenerator()
		gen.responses[structuredModel] = analysisJSON
		gen.errs[descriptionModel] = remote.ErrContentBlocked
		ar, _ := newTestRunners(t, gen)

		out, err := ar.Run(context.Background(), testInput())
		if err != nil {
			t.Fatalf("説明文の失敗で全体が失敗してはいけません: %v", err)
		}
		if out.Description != DescriptionPlaceholder || !out.DescriptionDegraded {
			t.Errorf("Description = %q (degraded=%v)", out.Description, out.DescriptionDegraded)
		}
		if out.Metadata.Technical.Render != "photorealistic" {
			t.Errorf("構造化結果は保持されるべきです: %+v", out.Metadata.Technical)
		}
	})

	t.Run("構造化解析の失敗は致命的", func(t *testing.T) {
		gen := newRoutedGenerator()
		gen.errs[structuredModel] = remote.ErrContentBlocked
		gen.responses[descriptionModel] = "fine"
		ar, _ := newTestRunners(t, gen)

		_, err := ar.Run(context.Background(), testInput())
		if !errors.Is(err, remote.ErrContentBlocked) {
			t.Fatalf("ErrContentBlocked を期待しました: %v", err)
		}
		if gen.count(descriptionModel) != 1 {
			t.Errorf("説明文の呼び出しも完了まで待つべきです: %d", gen.count(descriptionModel))
		}
	})

	t.Run("不正なJSONは修復を依頼する", func(t *testing.T) {
		gen := newRoutedGenerator()
		gen.responses[structuredModel] = `{"subject": `
		gen.responses[descriptionModel] = "fine"
		ar, _ := newTestRunners(t, gen)

		_, err := ar.Run(context.Background(), testInput())
		if err == nil {
			t.Fatal("修復できない JSON はエラーになるべきです")
		}
		if got := gen.count(structuredModel); got != 1+remote.DefaultMaxRepairs {
			t.Errorf("構造化解析の呼び出し回数 = %d, want %d", got, 1+remote.DefaultMaxRepairs)
		}
	})

	t.Run("同じ入力はキャッシュされる", func(t *testing.T) {
		gen := newRoutedGenerator()
		gen.responses[structuredModel] = analysisJSON
		gen.responses[descriptionModel] = "cached"
		ar, _ := newTestRunners(t, gen)

		for range 3 {
			if _, err := ar.Run(context.Background(), testInput()); err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
		}
		if gen.count(structuredModel) != 1 {
			t.Errorf("呼び出し回数 = %d, want 1", gen.count(structuredModel))
		}

		other := testInput()
		other.Labels = []string{"villain"}
		if _, err := ar.Run(context.Background(), other); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if gen.count(structuredModel) != 2 {
			t.Errorf("ラベルが異なれば再解析するべきです: %d", gen.count(structuredModel))
		}
	})

	t.Run("画像なし", func(t *testing.T) {
		ar, _ := newTestRunners(t, newRoutedGenerator())
		if _, err := ar.Run(context.Background(), AnalyzeInput{}); err == nil {
			t.Error("エラーを期待しました")
		}
	})
}

// gatedGenerator は release が閉じられるまで応答を保留するテスト用の Generator なのだ。
type gatedGenerator struct {
	started   chan struct{}
	release   chan struct{}
	cancelled chan struct{}
}

func newGatedGenerator() *gatedGenerator {
	return &gatedGenerator{
		started:   make(chan struct{}, 8),
		release:   make(chan struct{}),
		cancelled: make(chan struct{}, 8),
	}
}

func (g *gatedGenerator) GenerateContent(ctx context.Context, req remote.Request) (*remote.Response, error) {
	g.started <- struct{}{}
	select {
	case <-g.release:
		if req.Model == structuredModel {
			return &remote.Response{Text: analysisJSON}, nil
		}
		return &remote.Response{Text: "gated"}, nil
	case <-ctx.Done():
		g.cancelled <- struct{}{}
		return nil, ctx.Err()
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("条件が満たされないままタイムアウトしました")
		}
		time.Sleep(time.Millisecond)
	}
}

func waiters(ar *AnalyzeRunner, in AnalyzeInput) int {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	if f, ok := ar.flights[ar.cacheKey(in)]; ok {
		return f.waiters
	}
	return 0
}

func TestAnalyzeRunner_Run_Cancellation(t *testing.T) {
	t.Run("相乗りした呼び出し元は先頭のキャンセルの影響を受けない", func(t *testing.T) {
		gen := newGatedGenerator()
		ar, _ := newTestRunners(t, gen)
		in := testInput()

		ctx1, cancel1 := context.WithCancel(context.Background())
		defer cancel1()
		errs1 := make(chan error, 1)
		go func() {
			_, err := ar.Run(ctx1, in)
			errs1 <- err
		}()
		<-gen.started

		type result struct {
			out AnalyzeOutput
			err error
		}
		res2 := make(chan result, 1)
		go func() {
			out, err := ar.Run(context.Background(), in)
			res2 <- result{out, err}
		}()
		waitFor(t, func() bool { return waiters(ar, in) == 2 })

		cancel1()
		if err := <-errs1; !errors.Is(err, remote.ErrCancelled) || !errors.Is(err, context.Canceled) {
			t.Fatalf("キャンセルした呼び出し元は ErrCancelled を受け取るべきです: %v", err)
		}

		close(gen.release)
		got := <-res2
		if got.err != nil {
			t.Fatalf("生きている呼び出し元は結果を受け取るべきです: %v", got.err)
		}
		if got.out.Metadata.Subject.Archetype != "mysterious wanderer" || got.out.Description != "gated" {
			t.Errorf("結果が不正: %+v", got.out)
		}
		select {
		case <-gen.cancelled:
			t.Error("待っている呼び出し元がいる間は解析をキャンセルしてはいけません")
		default:
		}
	})

	t.Run("全員がキャンセルすると解析も止まる", func(t *testing.T) {
		gen := newGatedGenerator()
		ar, _ := newTestRunners(t, gen)
		in := testInput()

		ctx, cancel := context.WithCancel(context.Background())
		errs := make(chan error, 1)
		go func() {
			_, err := ar.Run(ctx, in)
			errs <- err
		}()
		<-gen.started

		cancel()
		if err := <-errs; !errors.Is(err, remote.ErrCancelled) {
			t.Fatalf("ErrCancelled を期待しました: %v", err)
		}
		select {
		case <-gen.cancelled:
		case <-time.After(2 * time.Second):
			t.Fatal("最後の呼び出し元が去った後も解析が続いています")
		}
		waitFor(t, func() bool { return waiters(ar, in) == 0 })
	})
}

func TestProviderPromptRunner_Run(t *testing.T) {
	t.Run("成功", func(t *testing.T) {
		gen := newRoutedGenerator()
		gen.responses[providerModel] = " A wanderer in golden light. "
		_, pr := newTestRunners(t, gen)

		got, ok := pr.Run(context.Background(), testMetadata())
		if !ok || got != "A wanderer in golden light." {
			t.Errorf("Run = %q, %v", got, ok)
		}
		if _, ok := pr.Run(context.Background(), testMetadata()); !ok || gen.count(providerModel) != 1 {
			t.Errorf("2回目はキャッシュを使うべきです: calls=%d", gen.count(providerModel))
		}
	})

	t.Run("失敗してもエラーにしない", func(t *testing.T) {
		gen := newRoutedGenerator()
		gen.errs[providerModel] = errors.New("boom")
		_, pr := newTestRunners(t, gen)

		got, ok := pr.Run(context.Background(), testMetadata())
		if ok || got != "" {
			t.Errorf("Run = %q, %v", got, ok)
		}
	})

	t.Run("キャンセル済み", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gen := newRoutedGenerator()
		gen.responses[providerModel] = "unused"
		_, pr := newTestRunners(t, gen)

		if got, ok := pr.Run(ctx, testMetadata()); ok || got != "" {
			t.Errorf("Run = %q, %v", got, ok)
		}
	})
}

func TestCompileRunner_Run(t *testing.T) {
	m := testMetadata()
	got := NewCompileRunner(nil, prompts.Sections{prompts.SectionNegative: false}).Run(m)

	if !strings.Contains(got.Universal, "--neg blurry") {
		t.Errorf("Universal = %q", got.Universal)
	}
	if strings.Contains(got.Weighted, "--no") || !strings.Contains(got.Weighted, "in the style of photorealistic") {
		t.Errorf("Weighted = %q", got.Weighted)
	}
	if got.Provider != "" {
		t.Errorf("Provider は空であるべきです: %q", got.Provider)
	}
}
