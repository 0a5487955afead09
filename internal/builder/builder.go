package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-visual-prompt-kit/internal/config"
	"github.com/shouni/go-visual-prompt-kit/pkg/prompts"
	"github.com/shouni/go-visual-prompt-kit/pkg/workflow"
)

// BuildAppContext は解析に必要な Manager を含む AppContext を構築します。
func BuildAppContext(ctx context.Context, cfg *config.Config) (AppContext, error) {
	sections, err := BuildSections(cfg.Options.Sections)
	if err != nil {
		return AppContext{}, err
	}

	manager, err := workflow.New(ctx, workflow.ManagerArgs{
		Config:                cfg.ToLibraryConfig(),
		UniversalSections:     sections,
		WeightedSections:      sections,
		DisableProviderPrompt: cfg.Options.NoProviderPrompt,
	})
	if err != nil {
		return AppContext{}, fmt.Errorf("ワークフローの初期化に失敗しました: %w", err)
	}

	return NewAppContext(cfg, sections, manager), nil
}

// BuildOfflineContext は通信を伴わない処理用に、Manager を持たない AppContext を構築します。
func BuildOfflineContext(cfg *config.Config) (AppContext, error) {
	sections, err := BuildSections(cfg.Options.Sections)
	if err != nil {
		return AppContext{}, err
	}
	return NewAppContext(cfg, sections, nil), nil
}

// BuildSections は --sections の指定を解釈します。空の場合は nil（既定値のまま）を返します。
func BuildSections(spec string) (prompts.Sections, error) {
	if spec == "" {
		return nil, nil
	}
	sections, err := prompts.ParseSections(spec)
	if err != nil {
		return nil, fmt.Errorf("--sections の指定が不正です: %w", err)
	}
	return sections, nil
}
