package asset

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
)

// Image は解析に送る1枚の画像です。
type Image struct {
	Path     string
	Data     []byte
	MIMEType string
}

// LoadImage はファイルから画像を読み込み、DecodeImage と同じ規則で整えます。
func LoadImage(path string, maxEdge int) (Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("画像ファイルの読み込みに失敗しました (%s): %w", path, err)
	}
	return DecodeImage(path, raw, maxEdge)
}

// DecodeImage は画像の形式を判定し、長辺が maxEdge を超える場合は向きを補正したうえで縮小して再エンコードします。
// 縮小が不要な画像と、デコーダを持たない WebP は元のバイト列のまま返します。
func DecodeImage(name string, raw []byte, maxEdge int) (Image, error) {
	mime := http.DetectContentType(raw)
	if !strings.HasPrefix(mime, "image/") {
		return Image{}, fmt.Errorf("画像ではないファイルです (%s): %s", name, mime)
	}
	original := Image{Path: name, Data: raw, MIMEType: mime}
	if maxEdge <= 0 || mime == "image/webp" {
		return original, nil
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, fmt.Errorf("画像のデコードに失敗しました (%s): %w", name, err)
	}

	b := img.Bounds()
	if b.Dx() <= maxEdge && b.Dy() <= maxEdge {
		return original, nil
	}

	format, outMIME := imaging.JPEG, "image/jpeg"
	if mime == "image/png" {
		format, outMIME = imaging.PNG, "image/png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos), format); err != nil {
		return Image{}, fmt.Errorf("縮小画像のエンコードに失敗しました (%s): %w", name, err)
	}
	return Image{Path: name, Data: buf.Bytes(), MIMEType: outMIME}, nil
}
