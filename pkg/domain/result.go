package domain

// CompiledPrompts は1件の解析から生成されたプロンプト群です。
// Provider はベストエフォートで生成され、失敗時は空文字になります。
type CompiledPrompts struct {
	Universal string `json:"universal"`
	Weighted  string `json:"weighted"`
	Provider  string `json:"provider,omitempty"`
}

// AnalysisResult は解析パイプライン全体の出力です。
type AnalysisResult struct {
	Metadata    ImageMetadata   `json:"metadata"`
	Description string          `json:"description"`
	Prompts     CompiledPrompts `json:"prompts"`

	// DescriptionDegraded は自然言語記述の生成に失敗し、プレースホルダに置き換えたことを示します。
	DescriptionDegraded bool `json:"description_degraded,omitempty"`
}
