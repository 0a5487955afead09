package domain

// IdentityColor は色の自然言語表現と16進表記の組です。
type IdentityColor struct {
	Description string `json:"description"`
	Hex         string `json:"hex"`
}

// FaceGeometry は顔の造形に関する属性です。
type FaceGeometry struct {
	FaceShape string `json:"faceShape"`
	EyeShape  string `json:"eyeShape"`
	BrowStyle string `json:"browStyle"`
	NoseShape string `json:"noseShape"`
	LipShape  string `json:"lipShape"`
}

// IsZero は全フィールドが空かどうかを返します。
func (f FaceGeometry) IsZero() bool {
	return f == FaceGeometry{}
}

// HairSpecifics は髪型の詳細です。
type HairSpecifics struct {
	HairLength string `json:"hairLength"`
	HairWave   string `json:"hairWave"`
	HairPart   string `json:"hairPart"`
}

// IsZero は全フィールドが空かどうかを返します。
func (h HairSpecifics) IsZero() bool {
	return h == HairSpecifics{}
}

// IdentityConfidence は各属性の推定確度です。値は [0,1] に収まります。
type IdentityConfidence struct {
	Overall        float64 `json:"overall"`
	PrimaryColor   float64 `json:"primaryColor"`
	SecondaryColor float64 `json:"secondaryColor"`
	AccentColor    float64 `json:"accentColor"`
	FaceGeometry   float64 `json:"faceGeometry"`
	HairSpecifics  float64 `json:"hairSpecifics"`
}

// SubjectIdentity は被写体の同一性を固定するための属性群です。
// Primary/Secondary/Accent はそれぞれ瞳・肌・髪の色に対応します。
type SubjectIdentity struct {
	PrimaryColor           IdentityColor       `json:"primaryColor"`
	SecondaryColor         IdentityColor       `json:"secondaryColor"`
	AccentColor            IdentityColor       `json:"accentColor"`
	Texture                string              `json:"texture"`
	Structure              string              `json:"structure"`
	DistinguishingFeatures []string            `json:"distinguishingFeatures"`
	EstimatedAge           string              `json:"estimatedAge"`
	Species                string              `json:"species"`
	FixedSeed              string              `json:"fixedSeed"`
	FaceGeometry           *FaceGeometry       `json:"faceGeometry,omitempty"`
	HairSpecifics          *HairSpecifics      `json:"hairSpecifics,omitempty"`
	IdentityNegatives      []string            `json:"identityNegatives"`
	Confidence             *IdentityConfidence `json:"confidence,omitempty"`
}

// LockedAttribute は属性値と、その値からドリフトしやすい3つの候補の組です。
type LockedAttribute[T any] struct {
	Is  T         `json:"is"`
	Not [3]string `json:"not"`
}

// LockedFaceGeometry は FaceGeometry の各フィールドをロックしたものです。
type LockedFaceGeometry struct {
	FaceShape LockedAttribute[string] `json:"faceShape"`
	EyeShape  LockedAttribute[string] `json:"eyeShape"`
	BrowStyle LockedAttribute[string] `json:"browStyle"`
	NoseShape LockedAttribute[string] `json:"noseShape"`
	LipShape  LockedAttribute[string] `json:"lipShape"`
}

// LockedHairSpecifics は HairSpecifics の各フィールドをロックしたものです。
type LockedHairSpecifics struct {
	HairLength LockedAttribute[string] `json:"hairLength"`
	HairWave   LockedAttribute[string] `json:"hairWave"`
	HairPart   LockedAttribute[string] `json:"hairPart"`
}

// LockedSubjectIdentity はプロンプト生成時にその都度組み立てられる派生データで、永続化はしません。
type LockedSubjectIdentity struct {
	PrimaryColor           LockedAttribute[IdentityColor] `json:"primaryColor"`
	SecondaryColor         LockedAttribute[IdentityColor] `json:"secondaryColor"`
	AccentColor            LockedAttribute[IdentityColor] `json:"accentColor"`
	Texture                LockedAttribute[string]        `json:"texture"`
	Structure              LockedAttribute[string]        `json:"structure"`
	FaceGeometry           *LockedFaceGeometry            `json:"faceGeometry,omitempty"`
	HairSpecifics          *LockedHairSpecifics           `json:"hairSpecifics,omitempty"`
	DistinguishingFeatures []string                       `json:"distinguishingFeatures"`
	EstimatedAge           string                         `json:"estimatedAge"`
	Species                string                         `json:"species"`
	FixedSeed              string                         `json:"fixedSeed"`
	IdentityNegatives      []string                       `json:"identityNegatives"`
	Confidence             *IdentityConfidence            `json:"confidence,omitempty"`
}

// PromptPair はプロンプト組み立てに注入する肯定句と否定語の組です。
type PromptPair struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}
