package domain

// ImageMetadata は画像解析結果を正規化した正準レコードです。
// 文字列フィールドは不明な場合でも必ず "" を、配列フィールドは [] を保持します。
type ImageMetadata struct {
	Meta        MetaSection        `json:"meta"`
	Subject     SubjectSection     `json:"subject"`
	Scene       SceneSection       `json:"scene"`
	Technical   TechnicalSection   `json:"technical"`
	Palette     PaletteSection     `json:"palette"`
	Details     DetailsSection     `json:"details"`
	Negative    string             `json:"negative"`
	TextContent TextContentSection `json:"text_content"`
}

// MetaSection は生成意図や画面比などのメタ情報です。
type MetaSection struct {
	Intent      string `json:"intent"`
	AspectRatio string `json:"aspect_ratio"`
	Quality     string `json:"quality"`
}

// SubjectSection は被写体の記述です。Identity は強いシグナルがある場合のみ存在します。
type SubjectSection struct {
	Archetype   string           `json:"archetype"`
	Description string           `json:"description"`
	Expression  string           `json:"expression"`
	Pose        string           `json:"pose"`
	Attire      string           `json:"attire"`
	Identity    *SubjectIdentity `json:"identity,omitempty"`
}

// SceneSection は舞台設定です。
type SceneSection struct {
	Setting    string   `json:"setting"`
	Atmosphere string   `json:"atmosphere"`
	Elements   []string `json:"elements"`
}

// TechnicalSection は撮影・レンダリング条件です。
type TechnicalSection struct {
	Shot     string `json:"shot"`
	Lens     string `json:"lens"`
	Lighting string `json:"lighting"`
	Render   string `json:"render"`
}

// PaletteSection は配色です。Colors は "#RRGGBB" 形式の文字列を想定します。
type PaletteSection struct {
	Colors []string `json:"colors"`
	Mood   string   `json:"mood"`
}

// DetailsSection は質感やアクセントの列挙です。
type DetailsSection struct {
	Textures []string `json:"textures"`
	Accents  []string `json:"accents"`
}

// TextContentSection は画像内に描画するテキストです。
type TextContentSection struct {
	Overlay string `json:"overlay"`
	Style   string `json:"style"`
}

// NewImageMetadata は全フィールドが空値で埋まった ImageMetadata を返します。
func NewImageMetadata() ImageMetadata {
	return ImageMetadata{
		Scene:   SceneSection{Elements: []string{}},
		Palette: PaletteSection{Colors: []string{}},
		Details: DetailsSection{Textures: []string{}, Accents: []string{}},
	}
}

// HasIdentity は被写体にアイデンティティ情報が付与されているかを返します。
func (m ImageMetadata) HasIdentity() bool {
	return m.Subject.Identity != nil
}
