package prompts

import (
	"strings"

	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/identity"
)

const (
	// MaxWeightedSegments は位置重み付け形式で採用する断片の上限です。
	MaxWeightedSegments = 8
	maxSecondaryTerms   = 3
)

// GenerateSDMJPrompt はメタデータを位置重み付けの文法に従うプロンプトに変換します。
//
// 断片の並びは 被写体、画風、2色パレット、副次的なスタイル語(最大3)、構図、レンズ の順で、
// 全体を小文字化したうえで先頭8断片に切り詰めます。
// 否定語は "--no"、アスペクト比は末尾の "--ar" として付与します。どちらも8断片の上限には数えません。
func GenerateSDMJPrompt(m domain.ImageMetadata, overrides Sections) string {
	sec := ResolveSections(DefaultWeightedSections(), overrides)
	var segs segmentList

	// 1. 被写体：様式を含まない文字どおりの描写
	var subject segmentList
	if sec.Enabled(SectionSubject) {
		subject.add(m.Subject.Archetype)
	}
	if sec.Enabled(SectionIdentity) && m.Subject.Identity != nil {
		subject.add(identity.Clause(*m.Subject.Identity))
	}
	if sec.Enabled(SectionSubject) {
		subject.add(m.Subject.Description, m.Subject.Pose, m.Subject.Attire)
		subject.addPrefixed("in ", m.Scene.Setting)
	}
	segs.add(strings.Join(subject, " "))

	// 2. 画風はこの位置に一度だけ
	if sec.Enabled(SectionStyle) {
		segs.addPrefixed("in the style of ", m.Technical.Render)
	}

	// 3. 2色に満たないパレットは出さない
	if sec.Enabled(SectionPalette) && len(m.Palette.Colors) >= 2 {
		segs.add(FormatColorPalette(m.Palette.Colors[:2]))
	}

	// 4-6. 副次的なスタイル語
	if sec.Enabled(SectionSecondary) {
		var secondary segmentList
		secondary.add(head(m.Details.Textures, 2)...)
		secondary.add(m.Scene.Atmosphere, m.Palette.Mood)
		secondary.add(head(m.Details.Accents, 1)...)
		segs.add(head(secondary, maxSecondaryTerms)...)
	}

	// 7+. 構図とレンズ
	if sec.Enabled(SectionFraming) {
		segs.add(m.Technical.Shot, m.Technical.Lens)
	}

	if len(segs) == 0 {
		return ""
	}
	for i := range segs {
		segs[i] = strings.ToLower(segs[i])
	}
	out := strings.Join(head(segs, MaxWeightedSegments), ", ")

	if sec.Enabled(SectionNegative) {
		var id *domain.SubjectIdentity
		if sec.Enabled(SectionIdentity) {
			id = m.Subject.Identity
		}
		if negs := CombineNegatives(SplitNegatives(m.Negative), id, weightedNegativeLimit); len(negs) > 0 {
			out += " --no " + strings.Join(negs, ", ")
		}
	}

	if ar := strings.TrimSpace(m.Meta.AspectRatio); ar != "" && sec.Enabled(SectionAspectRatio) {
		out += " --ar " + ar
	}
	return out
}

// GenerateMidjourneyPrompt は GenerateSDMJPrompt の旧名です。
func GenerateMidjourneyPrompt(m domain.ImageMetadata, overrides Sections) string {
	return GenerateSDMJPrompt(m, overrides)
}

// GenerateStableDiffusionPrompt は GenerateSDMJPrompt の旧名です。
func GenerateStableDiffusionPrompt(m domain.ImageMetadata, overrides Sections) string {
	return GenerateSDMJPrompt(m, overrides)
}
