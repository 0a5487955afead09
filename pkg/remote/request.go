package remote

import "context"

// Part はリクエストを構成する1要素です。Data が空でなければ画像などのバイナリとして扱います。
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// TextPart はテキストだけの Part を作ります。
func TextPart(text string) Part {
	return Part{Text: text}
}

// Request は1回の生成リクエストです。
type Request struct {
	Model       string
	System      string
	Parts       []Part
	Temperature *float32
	// JSON が true の場合、応答を application/json として要求します。
	JSON bool
}

// Response は生成結果です。
type Response struct {
	Text         string
	FinishReason string
}

// Generator はプロバイダへの1回分の呼び出しを表す契約です。再試行は Client が担います。
type Generator interface {
	GenerateContent(ctx context.Context, req Request) (*Response, error)
}
