package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
	"github.com/spf13/cobra"

	"github.com/shouni/go-visual-prompt-kit/internal/config"
)

const appName = "visual-prompt"

// opts は各コマンドのフラグを受け取る実行時オプションなのだ。
var opts config.AnalyzeOptions

// model は --model で指定された解析用モデルなのだ。空なら環境変数か既定値を使うよ。
var model string

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "画像を解析して、生成AI向けのプロンプトを組み立てるのだ。",
	Long: `画像を構造化メタデータに分解し、汎用の自然文プロンプトと
Stable Diffusion / Midjourney 向けの重み付きプロンプトを生成するのだ。
identity（顔立ちや髪など）が含まれる場合は、ドリフト防止の否定語も付けるのだよ。`,
	SilenceUsage:      true,
	PersistentPreRunE: preRunAppE,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "デバッグログを出力するのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Sections, "sections", "s", "", "セクションの有効/無効を上書きするのだ（例: scene=false,text_content）。")
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "analysis.json と prompts.md の保存先なのだ。空なら標準出力のみ。")
}

// preRunAppE は、.env の読み込みとロガーの初期化を行うのだ。
func preRunAppE(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".env の読み込みに失敗しました: %w", err)
	}

	level, err := resolveLogLevel(opts.Verbose, envutil.GetEnv("LOG_LEVEL", config.DefaultLogLevel))
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// resolveLogLevel は --verbose を LOG_LEVEL より優先します。
func resolveLogLevel(verbose bool, env string) (slog.Level, error) {
	if verbose {
		return slog.LevelDebug, nil
	}
	if env == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(env))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL の値が不正です: %w", err)
	}
	return level, nil
}

// requireAPIKey は Gemini API を使うコマンドの事前チェックなのだ。
func requireAPIKey(cfg *config.Config) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// loadConfig は環境変数の設定にフラグの値を重ねるのだ。
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if model != "" {
		cfg.GeminiModel = model
	}
	cfg.Options = opts
	return cfg, nil
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(analyzeCmd, compileCmd, driftCmd)
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
