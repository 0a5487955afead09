package identity

import (
	"strings"

	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/drift"
)

const (
	// DefaultMaxNegatives は GetDriftNegatives の既定の上限です。
	DefaultMaxNegatives = 15
	// MaxFeatures は1つのフレーズにまとめる特徴の最大数です。
	MaxFeatures = 3
)

// pairBuilder は肯定句を順に積み、否定語を初出順で重複排除しながら集めます。
type pairBuilder struct {
	positive []string
	negative []string
	seen     map[string]struct{}
}

func newPairBuilder() *pairBuilder {
	return &pairBuilder{
		positive: []string{},
		negative: []string{},
		seen:     make(map[string]struct{}),
	}
}

func (b *pairBuilder) addPositive(phrase string) {
	if strings.TrimSpace(phrase) == "" {
		return
	}
	b.positive = append(b.positive, phrase)
}

func (b *pairBuilder) addNegative(term string) {
	if strings.TrimSpace(term) == "" {
		return
	}
	if _, ok := b.seen[term]; ok {
		return
	}
	b.seen[term] = struct{}{}
	b.negative = append(b.negative, term)
}

// addDrift はドリフト候補を否定語として追加します。
// テーブル不一致の汎用候補は名詞を付けずに追加するため、複数の属性から来ても1組にまとまります。
func (b *pairBuilder) addDrift(negs [3]string, noun string) {
	if drift.IsDefault(negs) {
		noun = ""
	}
	for _, n := range negs {
		if noun != "" {
			n = n + " " + noun
		}
		b.addNegative(n)
	}
}

// lockedPhrase は "<値> <名詞>" の句とその否定語を追加します。
func (b *pairBuilder) lockedPhrase(attr domain.LockedAttribute[string], noun string) {
	if attr.Is == "" {
		return
	}
	b.addPositive(attr.Is + " " + noun)
	b.addDrift(attr.Not, noun)
}

func (b *pairBuilder) pair() domain.PromptPair {
	return domain.PromptPair{Positive: b.positive, Negative: b.negative}
}

// BuildLockedIdentityPromptPair はロック済み identity から肯定句の列と否定語の集合を組み立てます。
// 走査順は 種族、年齢、顔の造形、瞳、肌、髪、体格、質感、特徴、固定シード です。
func BuildLockedIdentityPromptPair(l domain.LockedSubjectIdentity) domain.PromptPair {
	b := newPairBuilder()

	b.addPositive(l.Species)
	b.addPositive(l.EstimatedAge)

	if fg := l.FaceGeometry; fg != nil {
		b.lockedPhrase(fg.FaceShape, "face")
		b.lockedPhrase(fg.EyeShape, "eyes")
		b.lockedPhrase(fg.BrowStyle, "brows")
		b.lockedPhrase(fg.NoseShape, "nose")
		b.lockedPhrase(fg.LipShape, "lips")
	}

	if desc := l.PrimaryColor.Is.Description; desc != "" {
		b.addPositive(desc + " eyes")
		b.addDrift(l.PrimaryColor.Not, "eyes")
	}
	if desc := l.SecondaryColor.Is.Description; desc != "" {
		b.addPositive(desc + " skin")
		b.addDrift(l.SecondaryColor.Not, "skin")
	}

	textureUsed := writeHair(b, l)

	if l.Structure.Is != "" {
		b.addPositive(l.Structure.Is + " build")
		b.addDrift(l.Structure.Not, "build")
	}

	// 髪の詳細がある場合、質感は髪の句と重複するため出さないのだ
	if l.HairSpecifics == nil && !textureUsed && l.Texture.Is != "" {
		b.addPositive(l.Texture.Is)
		b.addDrift(l.Texture.Not, "")
	}

	if features := firstNonEmpty(l.DistinguishingFeatures, MaxFeatures); len(features) > 0 {
		b.addPositive(strings.Join(features, ", "))
	}

	if l.FixedSeed != "" {
		b.addPositive(`"` + l.FixedSeed + `"`)
	}

	for _, n := range l.IdentityNegatives {
		b.addNegative(n)
	}

	return b.pair()
}

// writeHair は長さ、ウェーブ、髪色を1つの句にまとめて追加します。
// どれも無い場合は質感を髪の句として使い、その場合は true を返します。
func writeHair(b *pairBuilder, l domain.LockedSubjectIdentity) bool {
	var words []string
	var length, wave, part domain.LockedAttribute[string]
	if hs := l.HairSpecifics; hs != nil {
		length, wave, part = hs.HairLength, hs.HairWave, hs.HairPart
	}
	if length.Is != "" {
		words = append(words, length.Is)
	}
	if wave.Is != "" {
		words = append(words, wave.Is)
	}
	if desc := l.AccentColor.Is.Description; desc != "" {
		words = append(words, desc)
	}

	if len(words) == 0 {
		if l.Texture.Is == "" {
			return false
		}
		b.addPositive(l.Texture.Is)
		b.addDrift(l.Texture.Not, "")
		return true
	}

	phrase := strings.Join(words, " ") + " hair"
	withPart := part.Is != "" && !strings.EqualFold(strings.TrimSpace(part.Is), "none")
	if withPart {
		phrase += " parted " + part.Is
	}
	b.addPositive(phrase)

	if length.Is != "" {
		b.addDrift(length.Not, "hair")
	}
	if wave.Is != "" {
		b.addDrift(wave.Not, "hair")
	}
	if l.AccentColor.Is.Description != "" {
		b.addDrift(l.AccentColor.Not, "hair")
	}
	if withPart {
		b.addDrift(part.Not, "")
	}
	return false
}

// Phrases はドリフト推定を行わずに identity の肯定句だけを返します。
func Phrases(id domain.SubjectIdentity) []string {
	return BuildLockedIdentityPromptPair(lock(id, noInference)).Positive
}

// Clause は identity をプロンプトに差し込むための括弧付きの句にします。肯定句が無ければ "" を返します。
func Clause(id domain.SubjectIdentity) string {
	phrases := Phrases(id)
	if len(phrases) == 0 {
		return ""
	}
	return "[identity lock: " + strings.Join(phrases, ", ") + "]"
}

// GetDriftNegatives は identity をロックして否定語を組み立て、maxNegatives 件に切り詰めます。
// maxNegatives が 0 以下の場合は DefaultMaxNegatives を使います。
func GetDriftNegatives(id domain.SubjectIdentity, maxNegatives int) []string {
	if maxNegatives <= 0 {
		maxNegatives = DefaultMaxNegatives
	}
	negs := BuildLockedIdentityPromptPair(Hydrate(id)).Negative
	if len(negs) > maxNegatives {
		negs = negs[:maxNegatives]
	}
	return negs
}

// DriftOnlyNegatives はユーザー定義の否定語を除いた、推定由来の否定語だけを返します。
func DriftOnlyNegatives(id domain.SubjectIdentity) []string {
	locked := Hydrate(id)
	locked.IdentityNegatives = nil
	return BuildLockedIdentityPromptPair(locked).Negative
}

func firstNonEmpty(items []string, limit int) []string {
	out := make([]string, 0, limit)
	for _, s := range items {
		if len(out) == limit {
			break
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
