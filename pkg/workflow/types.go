package workflow

import (
	"context"

	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/publisher"
	"github.com/shouni/go-visual-prompt-kit/pkg/runner"
)

// AnalyzeRunner は、画像を構造化メタデータと説明文に解析する責務を持ちます。
type AnalyzeRunner interface {
	Run(ctx context.Context, in runner.AnalyzeInput) (runner.AnalyzeOutput, error)
}

// ProviderPromptRunner は、メタデータから生成モデル向けのプロンプトをベストエフォートで作る責務を持ちます。
type ProviderPromptRunner interface {
	Run(ctx context.Context, m domain.ImageMetadata) (string, bool)
}

// CompileRunner は、メタデータから2形式のプロンプトを生成する責務を持ちます。
type CompileRunner interface {
	Run(m domain.ImageMetadata) domain.CompiledPrompts
}

// PublishRunner は、解析結果をファイルとして書き出す責務を持ちます。
type PublishRunner interface {
	Publish(ctx context.Context, result domain.AnalysisResult, opts publisher.Options) (publisher.PublishResult, error)
}
