package runner

import (
	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/prompts"
)

// CompileRunner はメタデータから2つの形式のプロンプトを生成します。通信は行いません。
type CompileRunner struct {
	universal prompts.Sections
	weighted  prompts.Sections
}

// NewCompileRunner は各形式のセクション上書き設定を受け取ります。nil は既定値のままを意味します。
func NewCompileRunner(universal, weighted prompts.Sections) *CompileRunner {
	return &CompileRunner{
		universal: universal,
		weighted:  weighted,
	}
}

// Run は汎用形式と位置重み付け形式のプロンプトを返します。Provider は空のままです。
func (cr *CompileRunner) Run(m domain.ImageMetadata) domain.CompiledPrompts {
	return domain.CompiledPrompts{
		Universal: prompts.GenerateUniversalPrompt(m, cr.universal),
		Weighted:  prompts.GenerateSDMJPrompt(m, cr.weighted),
	}
}
