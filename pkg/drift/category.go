package drift

import "strings"

// Category はドリフト推定テーブルの種別です。
type Category int

const (
	EyeColor Category = iota + 1
	EyeShape
	FaceShape
	BrowStyle
	NoseShape
	LipShape
	HairLength
	HairWave
	HairPart
	HairColor
	SkinTone
	BodyStructure
	Texture
)

var categoryNames = map[Category]string{
	EyeColor:      "eyeColor",
	EyeShape:      "eyeShape",
	FaceShape:     "faceShape",
	BrowStyle:     "browStyle",
	NoseShape:     "noseShape",
	LipShape:      "lipShape",
	HairLength:    "hairLength",
	HairWave:      "hairWave",
	HairPart:      "hairPart",
	HairColor:     "hairColor",
	SkinTone:      "skinTone",
	BodyStructure: "structure",
	Texture:       "texture",
}

// categoryAliases は identity のフィールド名などのキーを Category に解決します。
// 複数のキーが同じテーブルを指すことがあります。
var categoryAliases = map[string]Category{
	"eyecolor":       EyeColor,
	"primarycolor":   EyeColor,
	"eyeshape":       EyeShape,
	"faceshape":      FaceShape,
	"browstyle":      BrowStyle,
	"noseshape":      NoseShape,
	"lipshape":       LipShape,
	"hairlength":     HairLength,
	"hairwave":       HairWave,
	"hairpart":       HairPart,
	"haircolor":      HairColor,
	"accentcolor":    HairColor,
	"skintone":       SkinTone,
	"secondarycolor": SkinTone,
	"structure":      BodyStructure,
	"bodystructure":  BodyStructure,
	"build":          BodyStructure,
	"texture":        Texture,
	"hairtexture":    Texture,
}

// String はカテゴリの正式なキー名を返します。
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Valid は既知のカテゴリかどうかを返します。
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory はキー名（大文字小文字、ハイフン、アンダースコアは無視）からカテゴリを解決します。
func ParseCategory(key string) (Category, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.NewReplacer("_", "", "-", "", " ", "").Replace(k)
	c, ok := categoryAliases[k]
	return c, ok
}

// Categories は全カテゴリを宣言順で返します。
func Categories() []Category {
	return []Category{
		EyeColor, EyeShape, FaceShape, BrowStyle, NoseShape, LipShape,
		HairLength, HairWave, HairPart, HairColor, SkinTone, BodyStructure, Texture,
	}
}
