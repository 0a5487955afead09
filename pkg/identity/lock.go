package identity

import (
	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
	"github.com/shouni/go-visual-prompt-kit/pkg/drift"
)

// inferFunc は属性値からドリフト候補を求める関数です。
type inferFunc func(c drift.Category, value string) [3]string

// Hydrate は SubjectIdentity の各ロック対象属性にドリフト候補を付与します。
// ロック対象外のフィールドはそのまま引き継ぎます。
func Hydrate(id domain.SubjectIdentity) domain.LockedSubjectIdentity {
	return lock(id, drift.InferNegatives)
}

// noInference は推定を行わず、常に汎用候補を返します。
func noInference(drift.Category, string) [3]string {
	return drift.DefaultNegatives
}

func lock(id domain.SubjectIdentity, infer inferFunc) domain.LockedSubjectIdentity {
	locked := domain.LockedSubjectIdentity{
		PrimaryColor:           lockColor(id.PrimaryColor, drift.EyeColor, infer),
		SecondaryColor:         lockColor(id.SecondaryColor, drift.SkinTone, infer),
		AccentColor:            lockColor(id.AccentColor, drift.HairColor, infer),
		Texture:                lockValue(id.Texture, drift.Texture, infer),
		Structure:              lockValue(id.Structure, drift.BodyStructure, infer),
		DistinguishingFeatures: copyStrings(id.DistinguishingFeatures),
		EstimatedAge:           id.EstimatedAge,
		Species:                id.Species,
		FixedSeed:              id.FixedSeed,
		IdentityNegatives:      copyStrings(id.IdentityNegatives),
	}

	if fg := id.FaceGeometry; fg != nil {
		locked.FaceGeometry = &domain.LockedFaceGeometry{
			FaceShape: lockValue(fg.FaceShape, drift.FaceShape, infer),
			EyeShape:  lockValue(fg.EyeShape, drift.EyeShape, infer),
			BrowStyle: lockValue(fg.BrowStyle, drift.BrowStyle, infer),
			NoseShape: lockValue(fg.NoseShape, drift.NoseShape, infer),
			LipShape:  lockValue(fg.LipShape, drift.LipShape, infer),
		}
	}

	if hs := id.HairSpecifics; hs != nil {
		locked.HairSpecifics = &domain.LockedHairSpecifics{
			HairLength: lockValue(hs.HairLength, drift.HairLength, infer),
			HairWave:   lockValue(hs.HairWave, drift.HairWave, infer),
			HairPart:   lockValue(hs.HairPart, drift.HairPart, infer),
		}
	}

	if id.Confidence != nil {
		c := *id.Confidence
		locked.Confidence = &c
	}

	return locked
}

func lockValue(v string, c drift.Category, infer inferFunc) domain.LockedAttribute[string] {
	return domain.LockedAttribute[string]{Is: v, Not: infer(c, v)}
}

func lockColor(v domain.IdentityColor, c drift.Category, infer inferFunc) domain.LockedAttribute[domain.IdentityColor] {
	return domain.LockedAttribute[domain.IdentityColor]{Is: v, Not: infer(c, v.Description)}
}

func copyStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
