package prompts

import (
	"strings"

	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/identity"
)

const (
	// MaxUserNegatives はユーザー定義の否定語を優先して採用する件数です。
	MaxUserNegatives = 5
	// MaxDriftNegatives は推定由来の否定語を採用する件数です。
	MaxDriftNegatives = 7
	// MaxIdentityNegatives は identity 由来の否定語の上限です。メタデータ自身の否定語は数えません。
	MaxIdentityNegatives = MaxUserNegatives + MaxDriftNegatives

	weightedNegativeLimit = 8
)

// SplitNegatives はカンマ区切りの否定語文字列を項目に分割します。空の項目は捨てます。
func SplitNegatives(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// IdentityNegatives は identity の否定語をユーザー定義を最大5件、推定由来を最大7件の順で集め、
// 重複を除いて MaxIdentityNegatives 件に収めます。
func IdentityNegatives(id domain.SubjectIdentity) []string {
	terms := make([]string, 0, MaxIdentityNegatives)
	terms = append(terms, head(id.IdentityNegatives, MaxUserNegatives)...)
	terms = append(terms, head(identity.DriftOnlyNegatives(id), MaxDriftNegatives)...)
	return head(dedupe(terms), MaxIdentityNegatives)
}

// CombineNegatives はメタデータ自身の否定語に identity の否定語を続け、重複を除きます。
// limit が正の場合は全体をその件数に切り詰めます。0 以下なら全体の上限はありません。
func CombineNegatives(base []string, id *domain.SubjectIdentity, limit int) []string {
	terms := make([]string, 0, len(base)+MaxIdentityNegatives)
	terms = append(terms, base...)
	if id != nil {
		terms = append(terms, IdentityNegatives(*id)...)
	}

	out := dedupe(terms)
	if limit > 0 {
		out = head(out, limit)
	}
	return out
}

// dedupe は大文字小文字を区別せずに重複を除きます。初出の表記を残します。
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		key := strings.ToLower(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
