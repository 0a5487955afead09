package prompts

import (
	"strings"

	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/identity"
)

// segmentList は空の値を無視しながらプロンプトの断片を積み上げます。
type segmentList []string

func (l *segmentList) add(values ...string) {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			*l = append(*l, v)
		}
	}
}

func (l *segmentList) addPrefixed(prefix, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*l = append(*l, prefix+v)
	}
}

// GenerateUniversalPrompt はメタデータを汎用的なカンマ区切りのプロンプトに変換します。
// overrides は DefaultUniversalSections に重ねられます。本文が空の場合は "" を返します。
func GenerateUniversalPrompt(m domain.ImageMetadata, overrides Sections) string {
	sec := ResolveSections(DefaultUniversalSections(), overrides)
	var segs segmentList

	if sec.Enabled(SectionMeta) {
		segs.add(m.Meta.Intent, m.Meta.Quality)
		segs.addPrefixed("aspect ratio ", m.Meta.AspectRatio)
	}

	if sec.Enabled(SectionSubject) {
		segs.add(m.Subject.Archetype, m.Subject.Description)
		if sec.Enabled(SectionIdentity) && m.Subject.Identity != nil {
			segs.add(identity.Clause(*m.Subject.Identity))
		}
		segs.add(m.Subject.Expression, m.Subject.Pose, m.Subject.Attire)
	}

	if sec.Enabled(SectionScene) {
		segs.add(m.Scene.Setting, m.Scene.Atmosphere)
		segs.add(strings.Join(dedupe(m.Scene.Elements), ", "))
	}

	if sec.Enabled(SectionTechnical) {
		segs.add(m.Technical.Shot)
		segs.addPrefixed("shot with ", m.Technical.Lens)
		segs.add(m.Technical.Lighting, m.Technical.Render)
	}

	if sec.Enabled(SectionPalette) {
		segs.addPrefixed("color palette: ", formatPaletteList(m.Palette.Colors))
		segs.add(m.Palette.Mood)
	}

	if sec.Enabled(SectionDetails) {
		segs.add(strings.Join(dedupe(m.Details.Textures), ", "))
		segs.add(strings.Join(dedupe(m.Details.Accents), ", "))
	}

	if sec.Enabled(SectionTextContent) {
		if o := strings.TrimSpace(m.TextContent.Overlay); o != "" {
			segs.add(`text "` + o + `"`)
		}
		segs.addPrefixed("typography: ", m.TextContent.Style)
	}

	if len(segs) == 0 {
		return ""
	}
	out := strings.Join(segs, ", ")

	if sec.Enabled(SectionNegative) {
		var id *domain.SubjectIdentity
		if sec.Enabled(SectionIdentity) {
			id = m.Subject.Identity
		}
		if negs := CombineNegatives(SplitNegatives(m.Negative), id, 0); len(negs) > 0 {
			out += "\n\n--neg " + strings.Join(negs, ", ")
		}
	}
	return out
}

// formatPaletteList はパレットの全色を修飾付きの色名にし、重複を除いて並べます。
func formatPaletteList(colors []string) string {
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		if strings.TrimSpace(c) == "" {
			continue
		}
		names = append(names, FormatColorWithModifier(c))
	}
	return strings.Join(dedupe(names), ", ")
}
