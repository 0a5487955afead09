package drift

import (
	"strings"
	"unicode"
)

// DefaultNegatives は一致する候補が見つからない場合の汎用的な3語です。
var DefaultNegatives = [3]string{"different", "changed", "altered"}

// IsDefault は推定結果が汎用の3語（テーブル不一致）かどうかを返します。
func IsDefault(negs [3]string) bool {
	return negs == DefaultNegatives
}

// InferNegatives は属性値から、生成モデルが取り違えやすい3つの候補を推定します。
// 完全一致、部分一致、単語単位の一致の順に探索し、どれにも当たらなければ DefaultNegatives を返します。
// 部分一致と単語一致はテーブルの宣言順で最初に当たったものを採用します。
func InferNegatives(c Category, value string) [3]string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return DefaultNegatives
	}

	t := tableFor(c)
	if t == nil {
		return DefaultNegatives
	}

	// 1. 完全一致
	if i, ok := t.index[v]; ok {
		return t.entries[i].alts
	}

	// 2. 部分一致（どちらか一方がもう一方を含む）
	for _, en := range t.entries {
		if strings.Contains(v, en.key) || strings.Contains(en.key, v) {
			return en.alts
		}
	}

	// 3. 単語単位の一致
	words := strings.FieldsFunc(v, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if i, ok := t.index[w]; ok {
			return t.entries[i].alts
		}
	}

	return DefaultNegatives
}

// InferNegativesByKey はキー名でカテゴリを指定する版です。未知のキーはエラーにせず DefaultNegatives を返します。
func InferNegativesByKey(key, value string) [3]string {
	c, ok := ParseCategory(key)
	if !ok {
		return DefaultNegatives
	}
	return InferNegatives(c, value)
}
