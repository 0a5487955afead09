package asset

import (
	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultAnalysisJSON は正規化済みの解析結果を書き出すファイル名です。
	DefaultAnalysisJSON = "analysis.json"
	// DefaultPromptsName は生成したプロンプトを書き出す Markdown のファイル名です。
	DefaultPromptsName = "prompts.md"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}
