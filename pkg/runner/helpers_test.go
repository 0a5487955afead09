package runner

import (
	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/parser"
)

func testMetadata() domain.ImageMetadata {
	m, err := parser.DecodeAnalysis(analysisJSON)
	if err != nil {
		panic(err)
	}
	return m
}
