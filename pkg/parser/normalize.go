package parser

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
)

// NormalizeString は任意の値を文字列フィールド用に正規化します。
// nil、"None"、"none"、文字列以外の型はすべて "" になります。空白のみの文字列はそのまま返します。
func NormalizeString(v any) string {
	s, ok := v.(string)
	if !ok || isSentinel(s) {
		return ""
	}
	return s
}

// NormalizeArray は任意の値を文字列配列フィールド用に正規化します。
// 配列以外は空配列になり、番兵値の要素は除去され、残りは文字列化されます。
func NormalizeArray(v any) []string {
	out := []string{}
	switch items := v.(type) {
	case []any:
		for _, item := range items {
			if item == nil {
				continue
			}
			if s, ok := item.(string); ok && isSentinel(s) {
				continue
			}
			out = append(out, stringify(item))
		}
	case []string:
		for _, item := range items {
			if isSentinel(item) {
				continue
			}
			out = append(out, item)
		}
	}
	return out
}

// NormalizeMetadata は AI が返した任意の JSON 値を ImageMetadata に変換します。
// 失敗することはなく、オブジェクト以外の入力は全フィールドが空の ImageMetadata になります。
func NormalizeMetadata(raw any) domain.ImageMetadata {
	md := domain.NewImageMetadata()
	root, ok := raw.(map[string]any)
	if !ok {
		return md
	}

	meta := asObject(root["meta"])
	md.Meta = domain.MetaSection{
		Intent:      NormalizeString(meta["intent"]),
		AspectRatio: NormalizeString(meta["aspect_ratio"]),
		Quality:     NormalizeString(meta["quality"]),
	}

	subject := asObject(root["subject"])
	md.Subject = domain.SubjectSection{
		Archetype:   NormalizeString(subject["archetype"]),
		Description: NormalizeString(subject["description"]),
		Expression:  NormalizeString(subject["expression"]),
		Pose:        NormalizeString(subject["pose"]),
		Attire:      NormalizeString(subject["attire"]),
		Identity:    NormalizeIdentity(subject["identity"]),
	}

	scene := asObject(root["scene"])
	md.Scene = domain.SceneSection{
		Setting:    NormalizeString(scene["setting"]),
		Atmosphere: NormalizeString(scene["atmosphere"]),
		Elements:   NormalizeArray(scene["elements"]),
	}

	technical := asObject(root["technical"])
	md.Technical = domain.TechnicalSection{
		Shot:     NormalizeString(technical["shot"]),
		Lens:     NormalizeString(technical["lens"]),
		Lighting: NormalizeString(technical["lighting"]),
		Render:   NormalizeString(technical["render"]),
	}

	palette := asObject(root["palette"])
	md.Palette = domain.PaletteSection{
		Colors: NormalizeArray(palette["colors"]),
		Mood:   NormalizeString(palette["mood"]),
	}

	details := asObject(root["details"])
	md.Details = domain.DetailsSection{
		Textures: NormalizeArray(details["textures"]),
		Accents:  NormalizeArray(details["accents"]),
	}

	md.Negative = NormalizeString(root["negative"])

	text := asObject(root["text_content"])
	md.TextContent = domain.TextContentSection{
		Overlay: NormalizeString(text["overlay"]),
		Style:   NormalizeString(text["style"]),
	}

	return md
}

// NormalizeIdentity は subject.identity を正規化します。
// 主色の記述か固定シードのどちらも空の場合、意味のある identity ではないとみなし nil を返します。
func NormalizeIdentity(raw any) *domain.SubjectIdentity {
	obj := asObject(raw)
	if len(obj) == 0 {
		return nil
	}

	id := &domain.SubjectIdentity{
		PrimaryColor:           normalizeColor(obj["primaryColor"]),
		SecondaryColor:         normalizeColor(obj["secondaryColor"]),
		AccentColor:            normalizeColor(obj["accentColor"]),
		Texture:                NormalizeString(obj["texture"]),
		Structure:              NormalizeString(obj["structure"]),
		DistinguishingFeatures: NormalizeArray(obj["distinguishingFeatures"]),
		EstimatedAge:           NormalizeString(obj["estimatedAge"]),
		Species:                NormalizeString(obj["species"]),
		FixedSeed:              NormalizeString(obj["fixedSeed"]),
		FaceGeometry:           normalizeFaceGeometry(obj["faceGeometry"]),
		HairSpecifics:          normalizeHairSpecifics(obj["hairSpecifics"]),
		IdentityNegatives:      NormalizeArray(obj["identityNegatives"]),
		Confidence:             NormalizeConfidence(obj["confidence"]),
	}

	if id.PrimaryColor.Description == "" && id.FixedSeed == "" {
		return nil
	}
	return id
}

// NormalizeConfidence は確度の各値を [0,1] に丸めます。overall が 0 の場合は nil を返します。
func NormalizeConfidence(raw any) *domain.IdentityConfidence {
	obj := asObject(raw)
	if len(obj) == 0 {
		return nil
	}

	c := &domain.IdentityConfidence{
		Overall:        clampUnit(obj["overall"]),
		PrimaryColor:   clampUnit(obj["primaryColor"]),
		SecondaryColor: clampUnit(obj["secondaryColor"]),
		AccentColor:    clampUnit(obj["accentColor"]),
		FaceGeometry:   clampUnit(obj["faceGeometry"]),
		HairSpecifics:  clampUnit(obj["hairSpecifics"]),
	}
	if c.Overall == 0 {
		return nil
	}
	return c
}

func normalizeColor(raw any) domain.IdentityColor {
	// 色がオブジェクトではなく文字列だけで返ってくることがあるのだ
	if s, ok := raw.(string); ok {
		return domain.IdentityColor{Description: NormalizeString(s)}
	}
	obj := asObject(raw)
	return domain.IdentityColor{
		Description: NormalizeString(obj["description"]),
		Hex:         NormalizeString(obj["hex"]),
	}
}

func normalizeFaceGeometry(raw any) *domain.FaceGeometry {
	obj := asObject(raw)
	fg := domain.FaceGeometry{
		FaceShape: NormalizeString(obj["faceShape"]),
		EyeShape:  NormalizeString(obj["eyeShape"]),
		BrowStyle: NormalizeString(obj["browStyle"]),
		NoseShape: NormalizeString(obj["noseShape"]),
		LipShape:  NormalizeString(obj["lipShape"]),
	}
	if fg.IsZero() {
		return nil
	}
	return &fg
}

func normalizeHairSpecifics(raw any) *domain.HairSpecifics {
	obj := asObject(raw)
	hs := domain.HairSpecifics{
		HairLength: NormalizeString(obj["hairLength"]),
		HairWave:   NormalizeString(obj["hairWave"]),
		HairPart:   NormalizeString(obj["hairPart"]),
	}
	if hs.IsZero() {
		return nil
	}
	return &hs
}

// asObject はオブジェクトを期待する位置の値を map として取り出します。
// オブジェクトの代わりに配列が返ってきた場合は先頭要素を採用します。
func asObject(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		if len(t) > 0 {
			if m, ok := t[0].(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}

func isSentinel(s string) bool {
	return s == "None" || s == "none"
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func clampUnit(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	switch {
	case math.IsNaN(f):
		return 0
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
