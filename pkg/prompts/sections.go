package prompts

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Section はプロンプトの構成要素を切り替えるためのキーです。
type Section string

const (
	SectionMeta        Section = "meta"
	SectionSubject     Section = "subject"
	SectionIdentity    Section = "identity"
	SectionScene       Section = "scene"
	SectionTechnical   Section = "technical"
	SectionPalette     Section = "palette"
	SectionDetails     Section = "details"
	SectionTextContent Section = "text_content"
	SectionNegative    Section = "negative"

	// 位置重み付け形式のみで使うセクション
	SectionStyle       Section = "style"
	SectionSecondary   Section = "secondary"
	SectionFraming     Section = "framing"
	SectionAspectRatio Section = "aspect_ratio"
)

// Sections はセクションごとの有効/無効の設定です。
type Sections map[Section]bool

// Enabled はセクションが有効かどうかを返します。未設定のキーは無効として扱います。
func (s Sections) Enabled(sec Section) bool {
	return s[sec]
}

// DefaultUniversalSections は汎用形式の推奨設定を返します。
// テキストオーバーレイは多くの場合空なので既定では無効です。
func DefaultUniversalSections() Sections {
	return Sections{
		SectionMeta:        true,
		SectionSubject:     true,
		SectionIdentity:    true,
		SectionScene:       true,
		SectionTechnical:   true,
		SectionPalette:     true,
		SectionDetails:     true,
		SectionTextContent: false,
		SectionNegative:    true,
	}
}

// DefaultWeightedSections は位置重み付け形式の推奨設定を返します。
func DefaultWeightedSections() Sections {
	return Sections{
		SectionSubject:     true,
		SectionIdentity:    true,
		SectionStyle:       true,
		SectionPalette:     true,
		SectionSecondary:   true,
		SectionFraming:     true,
		SectionAspectRatio: true,
		SectionNegative:    true,
	}
}

// ResolveSections は既定値に上書き設定を重ねた新しい Sections を返します。どちらの引数も変更しません。
func ResolveSections(defaults, overrides Sections) Sections {
	effective := make(Sections, len(defaults)+len(overrides))
	maps.Copy(effective, defaults)
	maps.Copy(effective, overrides)
	return effective
}

// ParseSections は "scene=false,text_content=true" 形式の文字列を Sections に変換します。
// 値を省略したキーは true として扱います。
func ParseSections(spec string) (Sections, error) {
	out := Sections{}
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, raw, hasValue := strings.Cut(item, "=")
		sec := Section(strings.ToLower(strings.TrimSpace(key)))
		if !sec.valid() {
			return nil, fmt.Errorf("不明なセクションです: '%s'", key)
		}
		enabled := true
		if hasValue {
			v, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("セクション '%s' の値 '%s' を解釈できません: %w", key, raw, err)
			}
			enabled = v
		}
		out[sec] = enabled
	}
	return out, nil
}

func (s Section) valid() bool {
	switch s {
	case SectionMeta, SectionSubject, SectionIdentity, SectionScene, SectionTechnical,
		SectionPalette, SectionDetails, SectionTextContent, SectionNegative,
		SectionStyle, SectionSecondary, SectionFraming, SectionAspectRatio:
		return true
	}
	return false
}
