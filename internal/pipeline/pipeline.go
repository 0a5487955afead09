package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shouni/go-visual-prompt-kit/examples"
	"github.com/shouni/go-visual-prompt-kit/internal/builder"
	"github.com/shouni/go-visual-prompt-kit/internal/config"
	"github.com/shouni/go-visual-prompt-kit/pkg/asset"
	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/publisher"
	"github.com/shouni/go-visual-prompt-kit/pkg/runner"
	"github.com/shouni/go-visual-prompt-kit/pkg/workflow"
)

// ExecuteAnalyze は画像を解析し、プロンプトを out に出力するのだ。
// --output-dir が指定されていれば analysis.json と prompts.md も書き出します。
func ExecuteAnalyze(ctx context.Context, cfg *config.Config, paths []string, out io.Writer) error {
	if len(paths) == 0 {
		return fmt.Errorf("解析する画像を1つ以上指定してほしいのだ")
	}

	appCtx, err := builder.BuildAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	maxEdge := cfg.ToLibraryConfig().MaxImageEdge
	images := make([]asset.Image, 0, len(paths))
	for _, p := range paths {
		img, err := asset.LoadImage(p, maxEdge)
		if err != nil {
			return err
		}
		images = append(images, img)
	}

	result, err := appCtx.Manager.Analyze(ctx, runner.AnalyzeInput{
		Images: images,
		Labels: appCtx.Options.Labels,
	})
	if err != nil {
		return fmt.Errorf("画像の解析に失敗しました: %w", err)
	}

	return emit(ctx, appCtx.Manager, appCtx.Options.OutputDir, result, out)
}

// ExecuteCompile は保存済みの解析結果からプロンプトを生成するのだ。通信は行いません。
func ExecuteCompile(ctx context.Context, cfg *config.Config, path string, out io.Writer) error {
	appCtx, err := builder.BuildOfflineContext(cfg)
	if err != nil {
		return err
	}

	raw, err := readStored(path, appCtx.Options.Example)
	if err != nil {
		return err
	}

	result, err := workflow.CompileStored(raw, appCtx.Sections, appCtx.Sections)
	if err != nil {
		return err
	}
	return emit(ctx, publisher.NewPublisher(nil), appCtx.Options.OutputDir, result, out)
}

func readStored(path string, useExample bool) ([]byte, error) {
	if useExample {
		return examples.WandererJSON, nil
	}
	if path == "" {
		return nil, fmt.Errorf("解析結果のJSONファイルを指定してほしいのだ（または --example）")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("JSONファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	return raw, nil
}

// resultPublisher は解析結果の書き出し先です。*workflow.Manager と *publisher.Publisher が満たします。
type resultPublisher interface {
	Publish(ctx context.Context, result domain.AnalysisResult, opts publisher.Options) (publisher.PublishResult, error)
}

// emit は結果を Markdown で出力し、outputDir が指定されていれば書き出します。
func emit(ctx context.Context, pub resultPublisher, outputDir string, result domain.AnalysisResult, out io.Writer) error {
	if _, err := io.WriteString(out, publisher.BuildMarkdown(result, "")); err != nil {
		return fmt.Errorf("結果の出力に失敗しました: %w", err)
	}

	if outputDir == "" {
		return nil
	}
	res, err := pub.Publish(ctx, result, publisher.Options{OutputDir: outputDir})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "成果物を保存したのだ", "analysis", res.AnalysisPath, "markdown", res.MarkdownPath)
	return nil
}
