package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// SyntaxError はモデル応答から JSON を取り出せなかったことを表します。
// 自己修復ループはこのエラーを受けて再生成を依頼します。
type SyntaxError struct {
	Snippet string
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("AIからの応答に含まれるJSONの解析に失敗しました (応答抜粋: %q): %v", e.Snippet, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ExtractJSON はモデル応答のテキストから JSON 部分を取り出します。
// コードフェンス、最外側のオブジェクトまたは配列、テキスト全体の順に試します。
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if matches := jsonBlockRegex.FindStringSubmatch(raw); len(matches) > 1 {
		return matches[1]
	}

	if first, last := strings.IndexAny(raw, "{["), strings.LastIndexAny(raw, "}]"); first != -1 && last > first {
		return raw[first : last+1]
	}
	return raw
}

// DecodeAnalysis はモデルの応答テキストを ImageMetadata に変換します。
// 配列で返ってきた場合は先頭の解析結果のみを使います。構文エラーは *SyntaxError で返します。
func DecodeAnalysis(raw string) (domain.ImageMetadata, error) {
	payload := ExtractJSON(raw)

	var v any
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return domain.NewImageMetadata(), &SyntaxError{Snippet: truncateString(raw, 200), Err: err}
	}

	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return domain.NewImageMetadata(), nil
		}
		v = list[0]
	}
	return NormalizeMetadata(v), nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
