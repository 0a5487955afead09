package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-visual-prompt-kit/internal/pipeline"
)

// analyzeCmd は、画像を Gemini で解析してプロンプトを生成するのだ。
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>...",
	Short: "画像を解析してプロンプトを生成するのだ。",
	Long: `1枚以上の画像を Gemini で解析し、メタデータと説明文を取得するのだ。
その後、汎用プロンプト・重み付きプロンプト・プロバイダ向けプロンプトを出力するよ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: analyzeCommand,
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&opts.Labels, "label", "l", nil, "画像ごとのラベルなのだ（指定順に対応）。")
	analyzeCmd.Flags().BoolVar(&opts.NoProviderPrompt, "no-provider-prompt", false, "プロバイダ向けプロンプトの生成を省略するのだ。")
	analyzeCmd.Flags().StringVar(&model, "model", "", "解析に使う Gemini モデル名なのだ。")
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	slog.InfoContext(ctx, "画像解析パイプラインを起動するのだ！",
		"images", len(args),
		"model", cfg.ToLibraryConfig().GeminiModel,
		"output", opts.OutputDir)

	if err := pipeline.ExecuteAnalyze(ctx, cfg, args, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.InfoContext(ctx, "すべての工程が完了したのだ！")
	return nil
}
