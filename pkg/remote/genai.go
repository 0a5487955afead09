package remote

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenAIGenerator は google.golang.org/genai を使って Gemini API を1回呼び出す Generator です。
type GenAIGenerator struct {
	client *genai.Client
}

// NewGenAIGenerator は APIキーから Gemini API 用のクライアントを初期化します。
func NewGenAIGenerator(ctx context.Context, apiKey string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return &GenAIGenerator{client: client}, nil
}

// GenerateContent は1回分の GenerateContent を実行し、応答を解釈します。
func (g *GenAIGenerator) GenerateContent(ctx context.Context, req Request) (*Response, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("モデル名が指定されていません")
	}

	contents := []*genai.Content{genai.NewContentFromParts(toGenAIParts(req.Parts), genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, req.Model, contents, buildConfig(req))
	if err != nil {
		return nil, err
	}
	return interpretResponse(resp)
}

func toGenAIParts(parts []Part) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if len(p.Data) > 0 {
			out = append(out, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		if p.Text != "" {
			out = append(out, genai.NewPartFromText(p.Text))
		}
	}
	return out
}

func buildConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

// interpretResponse はブロック理由と終了理由を確認し、テキストを取り出します。
func interpretResponse(resp *genai.GenerateContentResponse) (*Response, error) {
	if resp == nil {
		return nil, ErrEmptyResponse
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, fmt.Errorf("%w: %s", ErrContentBlocked, fb.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}

	finish := resp.Candidates[0].FinishReason
	if finish != "" && finish != genai.FinishReasonStop {
		if finish == genai.FinishReasonSafety {
			return nil, fmt.Errorf("%w: %s", ErrContentBlocked, finish)
		}
		return nil, fmt.Errorf("%w: %s", ErrBadFinishReason, finish)
	}

	text := resp.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}
	return &Response{Text: text, FinishReason: string(finish)}, nil
}
