package prompts

import (
	_ "embed"
)

const (
	ModeAnalysis    = "analysis"
	ModeDescription = "description"
	ModeProvider    = "provider"
	ModeRepair      = "repair"
)

// TemplateData は解析用プロンプトのテンプレートに渡すデータ構造です。
type TemplateData struct {
	// Labels は各画像に付与された任意のラベルです。画像と同じ順序で並びます。
	Labels     []string
	ImageCount int
	// MetadataJSON は provider モードで参照する正規化済みメタデータです。
	MetadataJSON string
	// InvalidJSON と ParseError は repair モードでのみ使います。
	InvalidJSON string
	ParseError  string
}

var (
	//go:embed analysis.md
	AnalysisPrompt string
	//go:embed description.md
	DescriptionPrompt string
	//go:embed provider.md
	ProviderPrompt string
	//go:embed repair.md
	RepairPrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップなのだ。
var allTemplates = map[string]string{
	ModeAnalysis:    AnalysisPrompt,
	ModeDescription: DescriptionPrompt,
	ModeProvider:    ProviderPrompt,
	ModeRepair:      RepairPrompt,
}
