package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-visual-prompt-kit/pkg/asset"
	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	// Title は prompts.md の見出しに使います。空の場合は archetype を使います。
	Title string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	AnalysisPath string // 生成された analysis.json のパス
	MarkdownPath string // 生成された prompts.md のパス
}

// Publisher は解析結果の永続化を担います。
type Publisher struct {
	writer OutputWriter
}

// NewPublisher は指定された writer で Publisher を生成します。nil の場合は LocalWriter を使います。
func NewPublisher(writer OutputWriter) *Publisher {
	if writer == nil {
		writer = LocalWriter{}
	}
	return &Publisher{writer: writer}
}

// Publish は analysis.json と prompts.md を書き出し、生成されたファイル情報を返却するのだ！
func (p *Publisher) Publish(ctx context.Context, result domain.AnalysisResult, opts Options) (PublishResult, error) {
	out := PublishResult{}
	if opts.OutputDir == "" {
		return out, fmt.Errorf("出力ディレクトリが指定されていません")
	}

	// 1. 出力パスの解決
	analysisPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultAnalysisJSON)
	if err != nil {
		return out, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	markdownPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultPromptsName)
	if err != nil {
		return out, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	// 2. JSON の書き出し
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return out, fmt.Errorf("解析結果のJSON変換に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, analysisPath, bytes.NewReader(payload), "application/json"); err != nil {
		return out, fmt.Errorf("analysis.json の書き込みに失敗しました: %w", err)
	}
	out.AnalysisPath = analysisPath

	// 3. Markdown の書き出し
	content := BuildMarkdown(result, opts.Title)
	if err := p.writer.Write(ctx, markdownPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return out, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	out.MarkdownPath = markdownPath

	slog.InfoContext(ctx, "解析結果を書き出しました", "analysis", analysisPath, "markdown", markdownPath)
	return out, nil
}
