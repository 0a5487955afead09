package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-visual-prompt-kit/internal/pipeline"
)

// compileCmd は、保存済みの解析結果からプロンプトだけを再生成するのだ。
var compileCmd = &cobra.Command{
	Use:   "compile [analysis.json]",
	Short: "保存済みの解析結果からプロンプトを再生成するのだ。",
	Long: `analyze が書き出した analysis.json、またはメタデータ単体の JSON を読み込み、
API を呼ばずに汎用・重み付きプロンプトを組み立てるのだ。--sections を変えて試すのに便利だよ。`,
	Args: cobra.MaximumNArgs(1),
	RunE: compileCommand,
}

func init() {
	compileCmd.Flags().BoolVar(&opts.Example, "example", false, "同梱のサンプルを入力に使うのだ。")
}

func compileCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	if err := pipeline.ExecuteCompile(cmd.Context(), cfg, path, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("プロンプトの再生成に失敗したのだ: %w", err)
	}
	return nil
}
