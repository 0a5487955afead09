package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-visual-prompt-kit/pkg/parser"
)

// RepairFunc は解析できなかった応答と原因から、修復を依頼するリクエストを組み立てます。
type RepairFunc func(invalid string, cause *parser.SyntaxError) (Request, error)

// GenerateJSON は応答を decode で解釈し、構文エラーの場合は repair で組み立てたリクエストで
// Policy.MaxRepairs 回まで修復を依頼します。構文エラー以外の失敗は修復せずに返します。
func GenerateJSON[T any](
	ctx context.Context,
	c *Client,
	req Request,
	decode func(raw string) (T, error),
	repair RepairFunc,
) (T, error) {
	var zero T
	current := req
	for repairs := 0; ; repairs++ {
		resp, err := c.Generate(ctx, current)
		if err != nil {
			return zero, err
		}

		v, err := decode(resp.Text)
		if err == nil {
			return v, nil
		}

		var syntaxErr *parser.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return zero, fmt.Errorf("応答の解釈に失敗しました: %w", err)
		}
		if repair == nil || repairs >= c.policy.MaxRepairs {
			return zero, fmt.Errorf("JSON の修復を%d回試みましたが解析できませんでした: %w", repairs, err)
		}

		slog.WarnContext(ctx, "不正な JSON を修復します",
			"model", req.Model,
			"repair", repairs+1,
			"max_repairs", c.policy.MaxRepairs,
			"error", syntaxErr,
		)
		current, err = repair(resp.Text, syntaxErr)
		if err != nil {
			return zero, fmt.Errorf("修復リクエストの作成に失敗しました: %w", err)
		}
	}
}
