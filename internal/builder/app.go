package builder

import (
	"github.com/shouni/go-visual-prompt-kit/internal/config"
	"github.com/shouni/go-visual-prompt-kit/pkg/prompts"
	"github.com/shouni/go-visual-prompt-kit/pkg/workflow"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各 Execute 関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config   *config.Config        // Configは、環境変数から読み込まれたグローバルな設定です。
	Options  config.AnalyzeOptions // Optionsは、コマンドラインから渡された実行時の設定です。
	Sections prompts.Sections      // Sectionsは、両形式に適用するセクションの上書き設定です。
	Manager  *workflow.Manager     // Managerは、解析と変換を行う Runner 群です。compile では nil なのだ。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(cfg *config.Config, sections prompts.Sections, manager *workflow.Manager) AppContext {
	return AppContext{
		Config:   cfg,
		Options:  cfg.Options,
		Sections: sections,
		Manager:  manager,
	}
}
