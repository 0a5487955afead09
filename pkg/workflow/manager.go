package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-visual-prompt-kit/pkg/config"
	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/parser"
	"github.com/shouni/go-visual-prompt-kit/pkg/prompts"
	"github.com/shouni/go-visual-prompt-kit/pkg/publisher"
	"github.com/shouni/go-visual-prompt-kit/pkg/remote"
	"github.com/shouni/go-visual-prompt-kit/pkg/runner"
)

// ManagerArgs は Manager の初期化に使う引数です。nil のフィールドは既定の実装で補われます。
type ManagerArgs struct {
	Config        config.Config
	Generator     remote.Generator
	PromptBuilder prompts.PromptBuilder
	Writer        publisher.OutputWriter
	ClientOptions []remote.Option

	UniversalSections prompts.Sections
	WeightedSections  prompts.Sections
	// DisableProviderPrompt が true の場合、プロバイダ向けプロンプトを生成しません。
	DisableProviderPrompt bool
}

// Manager は、解析パイプラインの各工程を担う Runner 群を構築・管理します。
type Manager struct {
	analyzer        AnalyzeRunner
	providerPrompts ProviderPromptRunner
	compiler        CompileRunner
	publisher       PublishRunner
}

// New は、設定を基に新しい Manager を初期化します。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	gen, err := initializeGenerator(ctx, args.Generator, args.Config.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	client, err := initializeClient(args.Config, gen, args.ClientOptions...)
	if err != nil {
		return nil, err
	}

	pb, err := initializePromptBuilder(args.PromptBuilder)
	if err != nil {
		return nil, err
	}

	c := initializeCache(args.Config)

	m := &Manager{
		analyzer:  runner.NewAnalyzeRunner(args.Config, client, pb, c),
		compiler:  runner.NewCompileRunner(args.UniversalSections, args.WeightedSections),
		publisher: publisher.NewPublisher(args.Writer),
	}
	if !args.DisableProviderPrompt {
		m.providerPrompts = runner.NewProviderPromptRunner(args.Config, client, pb, c)
	}
	return m, nil
}

// Analyze は画像を解析し、2形式のプロンプトと（可能なら）プロバイダ向けプロンプトを生成します。
// プロバイダ向けプロンプトは構造化結果が得られた後に順番に実行し、失敗しても全体は失敗しません。
func (m *Manager) Analyze(ctx context.Context, in runner.AnalyzeInput) (domain.AnalysisResult, error) {
	out, err := m.analyzer.Run(ctx, in)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	result := domain.AnalysisResult{
		Metadata:            out.Metadata,
		Description:         out.Description,
		DescriptionDegraded: out.DescriptionDegraded,
		Prompts:             m.compiler.Run(out.Metadata),
	}

	if m.providerPrompts != nil {
		if text, ok := m.providerPrompts.Run(ctx, out.Metadata); ok {
			result.Prompts.Provider = text
		} else {
			slog.InfoContext(ctx, "プロバイダ向けプロンプトは利用できません")
		}
	}
	return result, nil
}

// Compile は保存済みのメタデータから2形式のプロンプトを生成します。通信は行いません。
func (m *Manager) Compile(meta domain.ImageMetadata) domain.CompiledPrompts {
	return m.compiler.Run(meta)
}

// Publish は解析結果を書き出します。
func (m *Manager) Publish(ctx context.Context, result domain.AnalysisResult, opts publisher.Options) (publisher.PublishResult, error) {
	return m.publisher.Publish(ctx, result, opts)
}

// CompileStored は保存済みの解析結果から2形式のプロンプトを生成します。通信は行わないため Manager を必要としません。
func CompileStored(raw []byte, universal, weighted prompts.Sections) (domain.AnalysisResult, error) {
	meta, description, err := DecodeStored(raw)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return domain.AnalysisResult{
		Metadata:    meta,
		Description: description,
		Prompts:     runner.NewCompileRunner(universal, weighted).Run(meta),
	}, nil
}

// DecodeStored は analysis.json（AnalysisResult 形式）とメタデータ単体の JSON のどちらも受け付けます。
func DecodeStored(raw []byte) (domain.ImageMetadata, string, error) {
	var envelope struct {
		Metadata    json.RawMessage `json:"metadata"`
		Description string          `json:"description"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Metadata) > 0 {
		meta, err := parser.DecodeAnalysis(string(envelope.Metadata))
		if err != nil {
			return domain.ImageMetadata{}, "", fmt.Errorf("保存済みメタデータの解析に失敗しました: %w", err)
		}
		return meta, envelope.Description, nil
	}

	meta, err := parser.DecodeAnalysis(string(raw))
	if err != nil {
		return domain.ImageMetadata{}, "", fmt.Errorf("保存済みメタデータの解析に失敗しました: %w", err)
	}
	return meta, "", nil
}
