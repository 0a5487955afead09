package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shouni/go-visual-prompt-kit/pkg/drift"
)

// driftCmd は、属性値に対するドリフト候補を表示するのだ。
var driftCmd = &cobra.Command{
	Use:   "drift <category> <value>",
	Short: "属性値から取り違えやすい候補を3つ表示するのだ。",
	Long: `identity の属性（faceShape, hairWave など）と値を受け取り、
画像生成で混同されやすい値を3つ表示するのだ。否定語の調整に使ってね。`,
	Args: cobra.MinimumNArgs(2),
	RunE: driftCommand,
}

func driftCommand(cmd *cobra.Command, args []string) error {
	category, ok := drift.ParseCategory(args[0])
	if !ok {
		names := make([]string, 0, len(drift.Categories()))
		for _, c := range drift.Categories() {
			names = append(names, c.String())
		}
		return fmt.Errorf("未知のカテゴリ '%s' なのだ（%s）", args[0], strings.Join(names, ", "))
	}

	value := strings.Join(args[1:], " ")
	negs := drift.InferNegatives(category, value)
	for _, n := range negs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), n); err != nil {
			return err
		}
	}
	if drift.IsDefault(negs) {
		slog.WarnContext(cmd.Context(), "候補表に無い値なので汎用の候補を表示したのだ", "category", category.String(), "value", value)
	}
	return nil
}
