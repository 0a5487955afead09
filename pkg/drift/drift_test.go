package drift

import (
	"strings"
	"testing"
)

func TestInferNegatives_EmptyValue(t *testing.T) {
	for _, c := range Categories() {
		for _, v := range []string{"", "   ", "\t\n"} {
			if got := InferNegatives(c, v); got != DefaultNegatives {
				t.Errorf("InferNegatives(%s, %q) = %v, want %v", c, v, got, DefaultNegatives)
			}
		}
	}
}

func TestInferNegativesByKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		expected [3]string
	}{
		{"完全一致", "eyeColor", "violet", [3]string{"blue", "purple", "lavender"}},
		{"大文字と空白を正規化", "eyeColor", "  Violet ", [3]string{"blue", "purple", "lavender"}},
		{"別名キー", "primaryColor", "violet", [3]string{"blue", "purple", "lavender"}},
		{"複合表現は宣言順で最初の包含一致", "eyeColor", "deep violet with blue undertones", [3]string{"blue", "purple", "lavender"}},
		{"キーが値を含む場合も一致", "faceShape", "ova", [3]string{"round", "long", "heart"}},
		{"より具体的なキーが先に当たる", "hairPart", "deep side part", [3]string{"middle part", "center part", "no part"}},
		{"肌色の別名", "secondaryColor", "warm olive", [3]string{"tan", "beige", "medium"}},
		{"髪色の別名", "accentColor", "Jet Black", [3]string{"dark brown", "black", "blue-black"}},
		{"Unicode の空白で区切られた値", "eyeColor", "soft\u00a0violet\u3000tint", [3]string{"blue", "purple", "lavender"}},
		{"未知のカテゴリ", "tailShape", "violet", DefaultNegatives},
		{"一致なし", "noseShape", "indescribable", DefaultNegatives},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferNegativesByKey(tt.key, tt.value); got != tt.expected {
				t.Errorf("InferNegativesByKey(%q, %q) = %v, want %v", tt.key, tt.value, got, tt.expected)
			}
		})
	}
}

func TestInferNegatives_InvalidCategory(t *testing.T) {
	if got := InferNegatives(Category(0), "violet"); got != DefaultNegatives {
		t.Errorf("ゼロ値カテゴリは既定値を返すべきなのだ: %v", got)
	}
	if got := InferNegatives(Category(99), "violet"); got != DefaultNegatives {
		t.Errorf("範囲外カテゴリは既定値を返すべきなのだ: %v", got)
	}
}

func TestTables_WellFormed(t *testing.T) {
	if len(Categories()) != 13 {
		t.Fatalf("カテゴリ数が 13 ではないのだ: %d", len(Categories()))
	}
	for _, c := range Categories() {
		keys := Keys(c)
		if len(keys) == 0 {
			t.Errorf("%s のテーブルが空なのだ", c)
			continue
		}
		for _, k := range keys {
			if k != strings.ToLower(strings.TrimSpace(k)) {
				t.Errorf("%s: キー %q は小文字・トリム済みであるべきなのだ", c, k)
			}
			negs := InferNegatives(c, k)
			if IsDefault(negs) {
				t.Errorf("%s: キー %q が自分自身に一致しないのだ", c, k)
			}
			for _, n := range negs {
				if n == "" || n == k {
					t.Errorf("%s: キー %q の候補 %v が不正なのだ", c, k, negs)
				}
			}
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"eyeColor":       EyeColor,
		"eye_color":      EyeColor,
		"PrimaryColor":   EyeColor,
		"secondaryColor": SkinTone,
		"accentColor":    HairColor,
		"hair-part":      HairPart,
		"structure":      BodyStructure,
		"texture":        Texture,
	}
	for key, want := range tests {
		got, ok := ParseCategory(key)
		if !ok || got != want {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v", key, got, ok, want)
		}
	}
	if _, ok := ParseCategory("wingspan"); ok {
		t.Error("未知のキーが解決されてしまったのだ")
	}
}
