package publisher

import (
	"fmt"
	"strings"

	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
)

const defaultTitle = "Visual Prompt"

// BuildMarkdown は解析結果を Markdown にします。空のプロンプトは節ごと省略します。
func BuildMarkdown(result domain.AnalysisResult, title string) string {
	if title == "" {
		title = result.Metadata.Subject.Archetype
	}
	if title == "" {
		title = defaultTitle
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	sb.WriteString("## Description\n\n")
	sb.WriteString(result.Description)
	if result.DescriptionDegraded {
		sb.WriteString("\n\n> 説明文の生成に失敗したため代替テキストを表示しています。")
	}
	sb.WriteString("\n\n")

	writeCodeSection(&sb, "Universal", result.Prompts.Universal)
	writeCodeSection(&sb, "Weighted", result.Prompts.Weighted)
	writeCodeSection(&sb, "Provider", result.Prompts.Provider)

	return sb.String()
}

func writeCodeSection(sb *strings.Builder, heading, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n```text\n%s\n```\n\n", heading, body))
}
