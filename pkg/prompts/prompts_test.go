package prompts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shouni/go-visual-prompt-kit/pkg/domain"
)

func completeMetadata() domain.ImageMetadata {
	m := domain.NewImageMetadata()
	m.Meta = domain.MetaSection{Intent: "character portrait", AspectRatio: "16:9", Quality: "highly detailed"}
	m.Subject = domain.SubjectSection{
		Archetype:   "mysterious wanderer",
		Description: "a cloaked traveler with a weathered face",
		Expression:  "contemplative",
		Pose:        "standing on a ridge",
		Attire:      "tattered grey cloak",
	}
	m.Scene = domain.SceneSection{Setting: "misty mountain pass", Atmosphere: "melancholic", Elements: []string{"fog", "pine trees"}}
	m.Technical = domain.TechnicalSection{Shot: "medium shot", Lens: "85mm f/1.4", Lighting: "golden hour backlight", Render: "photorealistic"}
	m.Palette = domain.PaletteSection{Colors: []string{"#8B4513", "#FFD700"}, Mood: "warm and nostalgic"}
	m.Details = domain.DetailsSection{Textures: []string{"rough wool", "wet stone", "leather"}, Accents: []string{"glowing lantern"}}
	m.Negative = "blurry, low quality, cartoon, anime"
	return m
}

func testIdentity() *domain.SubjectIdentity {
	return &domain.SubjectIdentity{
		PrimaryColor:      domain.IdentityColor{Description: "violet", Hex: "#8F00FF"},
		AccentColor:       domain.IdentityColor{Description: "black", Hex: "#000000"},
		Species:           "human",
		FixedSeed:         "Aria-7",
		HairSpecifics:     &domain.HairSpecifics{HairLength: "long", HairWave: "wavy"},
		IdentityNegatives: []string{"glasses", "blurry"},
	}
}

func TestGenerateUniversalPrompt(t *testing.T) {
	got := GenerateUniversalPrompt(completeMetadata(), nil)

	want := "character portrait, highly detailed, aspect ratio 16:9, " +
		"mysterious wanderer, a cloaked traveler with a weathered face, contemplative, standing on a ridge, tattered grey cloak, " +
		"misty mountain pass, melancholic, fog, pine trees, " +
		"medium shot, shot with 85mm f/1.4, golden hour backlight, photorealistic, " +
		"color palette: brown, light gold, warm and nostalgic, " +
		"rough wool, wet stone, leather, glowing lantern" +
		"\n\n--neg blurry, low quality, cartoon, anime"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("汎用プロンプトが一致しません (-want +got):\n%s", diff)
	}
}

func TestGenerateUniversalPrompt_Identity(t *testing.T) {
	m := completeMetadata()
	m.Subject.Identity = testIdentity()
	got := GenerateUniversalPrompt(m, nil)

	clauseAt := strings.Index(got, "[identity lock: human, violet eyes, long wavy black hair")
	descAt := strings.Index(got, "a cloaked traveler")
	exprAt := strings.Index(got, "contemplative")
	if clauseAt < 0 || !(descAt < clauseAt && clauseAt < exprAt) {
		t.Fatalf("identity の句は description の直後に入るべきです: %q", got)
	}

	_, neg, ok := strings.Cut(got, "\n\n--neg ")
	if !ok {
		t.Fatalf("否定語ブロックがありません: %q", got)
	}
	terms := strings.Split(neg, ", ")
	if len(terms) > 4+MaxIdentityNegatives {
		t.Errorf("否定語はメタデータの4件と identity の最大%d件まで: got %d", MaxIdentityNegatives, len(terms))
	}
	if terms[0] != "blurry" || terms[4] != "glasses" {
		t.Errorf("メタデータの否定語、ユーザー定義の順になるべきです: %v", terms)
	}
	if strings.Count(neg, "blurry") != 1 {
		t.Errorf("重複は除かれるべきです: %v", terms)
	}
	if !strings.Contains(neg, "blue eyes") {
		t.Errorf("推定由来の否定語が含まれていません: %v", terms)
	}

	t.Run("メタデータの否定語が多くてもidentityの否定語は残る", func(t *testing.T) {
		m := completeMetadata()
		m.Subject.Identity = testIdentity()
		base := make([]string, 12)
		for i := range base {
			base[i] = fmt.Sprintf("a%d", i+1)
		}
		m.Negative = strings.Join(base, ", ")

		_, neg, ok := strings.Cut(GenerateUniversalPrompt(m, nil), "\n\n--neg ")
		if !ok {
			t.Fatal("否定語ブロックがありません")
		}
		terms := strings.Split(neg, ", ")
		if diff := cmp.Diff(base, terms[:12]); diff != "" {
			t.Errorf("メタデータの否定語が先頭に全件並ぶべきです (-want +got):\n%s", diff)
		}
		rest := terms[12:]
		if len(rest) == 0 || rest[0] != "glasses" || rest[1] != "blurry" {
			t.Errorf("ユーザー定義の否定語がメタデータの後に続くべきです: %v", rest)
		}
		if len(rest) > MaxIdentityNegatives {
			t.Errorf("identity の否定語は最大%d件: got %d", MaxIdentityNegatives, len(rest))
		}
	})

	t.Run("identityセクション無効", func(t *testing.T) {
		got := GenerateUniversalPrompt(m, Sections{SectionIdentity: false})
		if strings.Contains(got, "identity lock") || strings.Contains(got, "glasses") {
			t.Errorf("identity が出力されています: %q", got)
		}
	})
}

func TestGenerateUniversalPrompt_EdgeCases(t *testing.T) {
	t.Run("空のメタデータ", func(t *testing.T) {
		if got := GenerateUniversalPrompt(domain.NewImageMetadata(), nil); got != "" {
			t.Errorf("空文字になるべきです: %q", got)
		}
	})

	t.Run("否定語だけでは出力しない", func(t *testing.T) {
		m := domain.NewImageMetadata()
		m.Negative = "blurry"
		if got := GenerateUniversalPrompt(m, nil); got != "" {
			t.Errorf("空文字になるべきです: %q", got)
		}
	})

	t.Run("negativeが空でもidentityの否定語は出す", func(t *testing.T) {
		m := domain.NewImageMetadata()
		m.Subject.Identity = testIdentity()
		got := GenerateUniversalPrompt(m, nil)
		if !strings.Contains(got, "\n\n--neg glasses, blurry") {
			t.Errorf("identity の否定語ブロックがありません: %q", got)
		}
	})

	t.Run("セクションの切り替え", func(t *testing.T) {
		got := GenerateUniversalPrompt(completeMetadata(), Sections{SectionScene: false, SectionNegative: false})
		if strings.Contains(got, "misty mountain pass") || strings.Contains(got, "--neg") {
			t.Errorf("無効にしたセクションが出力されています: %q", got)
		}
	})

	t.Run("テキストオーバーレイは明示したときだけ", func(t *testing.T) {
		m := completeMetadata()
		m.TextContent = domain.TextContentSection{Overlay: "THE END", Style: "bold serif"}
		if got := GenerateUniversalPrompt(m, nil); strings.Contains(got, "THE END") {
			t.Errorf("既定では出力しないはずです: %q", got)
		}
		got := GenerateUniversalPrompt(m, Sections{SectionTextContent: true})
		if !strings.Contains(got, `text "THE END", typography: bold serif`) {
			t.Errorf("テキストオーバーレイがありません: %q", got)
		}
	})
}

func TestGenerateSDMJPrompt(t *testing.T) {
	got := GenerateSDMJPrompt(completeMetadata(), nil)

	want := "mysterious wanderer a cloaked traveler with a weathered face standing on a ridge tattered grey cloak in misty mountain pass, " +
		"in the style of photorealistic, brown and light gold, rough wool, wet stone, melancholic, medium shot, 85mm f/1.4" +
		" --no blurry, low quality, cartoon, anime --ar 16:9"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("位置重み付けプロンプトが一致しません (-want +got):\n%s", diff)
	}

	if n := strings.Count(got, "in the style of photorealistic"); n != 1 {
		t.Errorf("画風は1回だけ: got %d", n)
	}
	if !strings.HasSuffix(got, "--ar 16:9") {
		t.Errorf("末尾は --ar であるべきです: %q", got)
	}
}

func TestGenerateSDMJPrompt_Limits(t *testing.T) {
	m := completeMetadata()
	m.Subject.Identity = testIdentity()
	m.Meta.AspectRatio = "3:2"
	got := GenerateSDMJPrompt(m, nil)

	body, rest, ok := strings.Cut(got, " --no ")
	if !ok {
		t.Fatalf("--no がありません: %q", got)
	}
	if !strings.HasSuffix(body, "medium shot, 85mm f/1.4") {
		t.Errorf("構図とレンズは末尾に残るべきです: %q", body)
	}
	if body != strings.ToLower(body) {
		t.Errorf("本文は小文字化されるべきです: %q", body)
	}
	if !strings.Contains(body, `"aria-7"`) {
		t.Errorf("identity の句が被写体に含まれていません: %q", body)
	}

	negs, ar, ok := strings.Cut(rest, " --ar ")
	if !ok || ar != "3:2" {
		t.Fatalf("--ar が不正: %q", rest)
	}
	terms := strings.Split(negs, ", ")
	if len(terms) > weightedNegativeLimit {
		t.Errorf("否定語は最大%d件: got %d (%v)", weightedNegativeLimit, len(terms), terms)
	}
	seen := map[string]bool{}
	for _, term := range terms {
		if seen[term] {
			t.Errorf("否定語が重複しています: %q", term)
		}
		seen[term] = true
	}
}

func TestGenerateSDMJPrompt_EdgeCases(t *testing.T) {
	t.Run("空のメタデータ", func(t *testing.T) {
		m := domain.NewImageMetadata()
		m.Meta.AspectRatio = "1:1"
		if got := GenerateSDMJPrompt(m, nil); got != "" {
			t.Errorf("空文字になるべきです: %q", got)
		}
	})

	t.Run("1色だけならパレットを出さない", func(t *testing.T) {
		m := completeMetadata()
		m.Palette.Colors = []string{"#FFD700"}
		if got := GenerateSDMJPrompt(m, nil); strings.Contains(got, "gold") {
			t.Errorf("パレットは省略されるべきです: %q", got)
		}
	})

	t.Run("旧名の関数も同じ結果", func(t *testing.T) {
		m := completeMetadata()
		want := GenerateSDMJPrompt(m, nil)
		if got := GenerateMidjourneyPrompt(m, nil); got != want {
			t.Errorf("GenerateMidjourneyPrompt = %q", got)
		}
		if got := GenerateStableDiffusionPrompt(m, nil); got != want {
			t.Errorf("GenerateStableDiffusionPrompt = %q", got)
		}
	})
}

func TestResolveSections(t *testing.T) {
	defaults := DefaultUniversalSections()
	got := ResolveSections(defaults, Sections{SectionScene: false, SectionTextContent: true})

	if got.Enabled(SectionScene) || !got.Enabled(SectionTextContent) || !got.Enabled(SectionMeta) {
		t.Errorf("上書きが反映されていません: %v", got)
	}
	if !defaults.Enabled(SectionScene) || defaults.Enabled(SectionTextContent) {
		t.Errorf("既定値が変更されています: %v", defaults)
	}
}

func TestParseSections(t *testing.T) {
	got, err := ParseSections("scene=false, text_content, Negative=0")
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	want := Sections{SectionScene: false, SectionTextContent: true, SectionNegative: false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if _, err := ParseSections("unknown=true"); err == nil {
		t.Error("不明なセクションはエラーになるべきです")
	}
	if _, err := ParseSections("scene=maybe"); err == nil {
		t.Error("真偽値でない値はエラーになるべきです")
	}
}

func TestTextPromptBuilder(t *testing.T) {
	b, err := NewTextPromptBuilder()
	if err != nil {
		t.Fatalf("NewTextPromptBuilder: %v", err)
	}

	got, err := b.Build(ModeAnalysis, TemplateData{ImageCount: 2, Labels: []string{"front", "side"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, want := range []string{"2 attached image(s)", "- Image 1: front", "- Image 2: side", `"aspect_ratio"`} {
		if !strings.Contains(got, want) {
			t.Errorf("analysis プロンプトに %q が含まれていません", want)
		}
	}

	got, err = b.Build(ModeRepair, TemplateData{InvalidJSON: `{"a":`, ParseError: "unexpected end"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(got, `{"a":`) || !strings.Contains(got, "unexpected end") {
		t.Errorf("repair プロンプトが不正: %q", got)
	}

	if _, err := b.Build("unknown", TemplateData{}); err == nil {
		t.Error("不明なモードはエラーになるべきです")
	}
}

func TestIdentityNegatives(t *testing.T) {
	id := *testIdentity()
	id.IdentityNegatives = []string{"u1", "u2", "u3", "u4", "u5", "u6"}

	got := IdentityNegatives(id)
	if len(got) != MaxIdentityNegatives {
		t.Fatalf("identity の否定語は%d件に収まるべきです: got %d (%v)", MaxIdentityNegatives, len(got), got)
	}
	if diff := cmp.Diff([]string{"u1", "u2", "u3", "u4", "u5"}, got[:MaxUserNegatives]); diff != "" {
		t.Errorf("ユーザー定義は先頭5件だけ採用されるべきです (-want +got):\n%s", diff)
	}
	if got[MaxUserNegatives] != "blue eyes" {
		t.Errorf("推定由来の否定語がユーザー定義の後に続くべきです: %v", got)
	}
}
