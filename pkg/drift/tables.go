package drift

// entry はテーブルの1行です。宣言順が部分一致の優先順位になります。
type entry struct {
	key  string
	alts [3]string
}

// table は宣言順を保持したドリフトマップです。
type table struct {
	entries []entry
	index   map[string]int
}

func newTable(entries ...entry) *table {
	t := &table{entries: entries, index: make(map[string]int, len(entries))}
	for i, en := range entries {
		if _, dup := t.index[en.key]; !dup {
			t.index[en.key] = i
		}
	}
	return t
}

func e(key, a, b, c string) entry {
	return entry{key: key, alts: [3]string{a, b, c}}
}

// tables は Category を添字とする不変テーブルです。
var tables = [...]*table{
	EyeColor: newTable(
		e("violet", "blue", "purple", "lavender"),
		e("amber", "hazel", "brown", "gold"),
		e("hazel", "brown", "green", "amber"),
		e("gray", "blue", "silver", "pale blue"),
		e("grey", "blue", "silver", "pale blue"),
		e("green", "hazel", "blue", "gray"),
		e("blue", "gray", "green", "teal"),
		e("dark brown", "black", "brown", "hazel"),
		e("brown", "hazel", "dark brown", "amber"),
		e("black", "dark brown", "brown", "gray"),
		e("red", "pink", "brown", "orange"),
		e("gold", "amber", "yellow", "hazel"),
		e("silver", "gray", "white", "pale blue"),
	),
	EyeShape: newTable(
		e("almond", "round", "hooded", "upturned"),
		e("round", "almond", "narrow", "hooded"),
		e("hooded", "almond", "monolid", "deep-set"),
		e("monolid", "hooded", "almond", "double eyelid"),
		e("upturned", "downturned", "almond", "round"),
		e("downturned", "upturned", "almond", "cat-eye"),
		e("deep-set", "protruding", "hooded", "round"),
		e("wide-set", "close-set", "round", "almond"),
		e("close-set", "wide-set", "almond", "narrow"),
		e("cat-eye", "round", "downturned", "almond"),
		e("narrow", "wide", "round", "almond"),
	),
	FaceShape: newTable(
		e("oval", "round", "long", "heart"),
		e("round", "oval", "square", "long"),
		e("square", "round", "oval", "rectangular"),
		e("heart", "oval", "diamond", "round"),
		e("diamond", "heart", "oval", "square"),
		e("oblong", "oval", "rectangular", "round"),
		e("rectangular", "square", "oblong", "oval"),
		e("triangular", "heart", "square", "round"),
		e("angular", "soft", "round", "oval"),
		e("long", "round", "short", "square"),
	),
	BrowStyle: newTable(
		e("arched", "straight", "flat", "rounded"),
		e("straight", "arched", "curved", "angled"),
		e("soft angled", "sharp arch", "straight", "rounded"),
		e("angled", "rounded", "straight", "flat"),
		e("rounded", "angled", "straight", "arched"),
		e("bushy", "thin", "groomed", "sparse"),
		e("thick", "thin", "sparse", "pencil-thin"),
		e("thin", "thick", "bushy", "full"),
		e("sparse", "thick", "full", "bushy"),
		e("full", "thin", "sparse", "pencil-thin"),
		e("flat", "arched", "curved", "high"),
	),
	NoseShape: newTable(
		e("button", "pointed", "wide", "long"),
		e("aquiline", "straight", "button", "snub"),
		e("roman", "straight", "button", "flat"),
		e("hooked", "straight", "button", "upturned"),
		e("straight", "hooked", "upturned", "button"),
		e("upturned", "straight", "drooping", "hooked"),
		e("snub", "pointed", "aquiline", "long"),
		e("pointed", "rounded", "button", "wide"),
		e("wide", "narrow", "pointed", "thin"),
		e("broad", "narrow", "thin", "pointed"),
		e("narrow", "wide", "broad", "flat"),
		e("flat", "high-bridged", "pointed", "aquiline"),
	),
	LipShape: newTable(
		e("full", "thin", "narrow", "flat"),
		e("plump", "thin", "narrow", "flat"),
		e("thin", "full", "plump", "pouty"),
		e("bow-shaped", "straight", "thin", "flat"),
		e("heart-shaped", "straight", "thin", "wide"),
		e("pouty", "thin", "flat", "straight"),
		e("wide", "narrow", "small", "thin"),
		e("small", "wide", "full", "large"),
		e("downturned", "upturned", "straight", "smiling"),
		e("upturned", "downturned", "flat", "straight"),
	),
	HairLength: newTable(
		e("bald", "buzzed", "short", "shaved"),
		e("buzzed", "short", "pixie", "bald"),
		e("pixie", "bob", "short", "buzzed"),
		e("chin-length", "shoulder-length", "short", "long"),
		e("bob", "pixie", "shoulder-length", "long"),
		e("shoulder-length", "short", "long", "chin-length"),
		e("mid-back", "shoulder-length", "waist-length", "short"),
		e("waist-length", "shoulder-length", "mid-back", "short"),
		e("medium", "short", "long", "shoulder-length"),
		e("short", "long", "medium", "shoulder-length"),
		e("long", "short", "medium", "shoulder-length"),
	),
	HairWave: newTable(
		e("straight", "wavy", "curly", "frizzy"),
		e("wavy", "straight", "curly", "frizzy"),
		e("loose waves", "straight", "tight curls", "frizzy"),
		e("tight curls", "straight", "loose waves", "wavy"),
		e("curly", "straight", "wavy", "frizzy"),
		e("coily", "curly", "wavy", "straight"),
		e("kinky", "straight", "wavy", "loose curls"),
		e("frizzy", "sleek", "straight", "smooth"),
		e("sleek", "frizzy", "wavy", "curly"),
	),
	HairPart: newTable(
		e("middle", "side part", "no part", "off-center part"),
		e("off-center", "middle part", "side part", "no part"),
		e("center", "side part", "no part", "off-center part"),
		e("deep side", "middle part", "center part", "no part"),
		e("side", "middle part", "center part", "no part"),
		e("left", "right part", "middle part", "no part"),
		e("right", "left part", "middle part", "no part"),
		e("zigzag", "straight part", "middle part", "side part"),
		e("none", "middle part", "side part", "center part"),
	),
	HairColor: newTable(
		e("platinum blonde", "blonde", "white", "silver"),
		e("strawberry blonde", "blonde", "ginger", "red"),
		e("dirty blonde", "blonde", "light brown", "brown"),
		e("blonde", "platinum", "brown", "ginger"),
		e("blond", "platinum", "brown", "ginger"),
		e("jet black", "dark brown", "black", "blue-black"),
		e("dark brown", "black", "brown", "chestnut"),
		e("light brown", "blonde", "brown", "dark blonde"),
		e("chestnut", "brown", "auburn", "red"),
		e("auburn", "red", "brown", "copper"),
		e("copper", "orange", "red", "auburn"),
		e("ginger", "orange", "red", "blonde"),
		e("red", "auburn", "orange", "pink"),
		e("brown", "black", "blonde", "dark brown"),
		e("black", "dark brown", "blue-black", "brown"),
		e("silver", "gray", "white", "platinum"),
		e("gray", "silver", "white", "black"),
		e("grey", "silver", "white", "black"),
		e("white", "silver", "gray", "platinum"),
		e("pink", "red", "purple", "magenta"),
		e("blue", "teal", "purple", "black"),
		e("purple", "pink", "blue", "violet"),
		e("green", "teal", "blue", "black"),
	),
	SkinTone: newTable(
		e("porcelain", "pale", "fair", "ivory"),
		e("ivory", "porcelain", "pale", "fair"),
		e("pale", "fair", "porcelain", "light"),
		e("fair", "light", "pale", "medium"),
		e("light", "fair", "medium", "pale"),
		e("beige", "light", "tan", "olive"),
		e("olive", "tan", "beige", "medium"),
		e("golden", "tan", "olive", "bronze"),
		e("medium", "light", "tan", "olive"),
		e("tan", "olive", "medium", "brown"),
		e("bronze", "tan", "brown", "golden"),
		e("brown", "tan", "dark", "medium"),
		e("ebony", "dark", "deep", "brown"),
		e("deep", "dark", "brown", "ebony"),
		e("dark", "brown", "deep", "ebony"),
	),
	BodyStructure: newTable(
		e("slender", "athletic", "curvy", "stocky"),
		e("slim", "athletic", "stocky", "heavy"),
		e("petite", "tall", "large", "broad"),
		e("athletic", "slender", "muscular", "stocky"),
		e("muscular", "lean", "slender", "heavyset"),
		e("lean", "muscular", "stocky", "heavy"),
		e("stocky", "slender", "lanky", "tall"),
		e("broad-shouldered", "narrow-shouldered", "slender", "petite"),
		e("curvy", "slender", "athletic", "straight"),
		e("heavyset", "slender", "lean", "athletic"),
		e("lanky", "stocky", "muscular", "short"),
		e("tall", "short", "petite", "stocky"),
		e("average", "muscular", "slender", "heavyset"),
	),
	Texture: newTable(
		e("silky", "coarse", "frizzy", "matte"),
		e("smooth", "rough", "textured", "coarse"),
		e("coarse", "silky", "smooth", "fine"),
		e("fine", "thick", "coarse", "voluminous"),
		e("thick", "thin", "fine", "sparse"),
		e("glossy", "matte", "dull", "dry"),
		e("matte", "glossy", "shiny", "oily"),
		e("fluffy", "sleek", "flat", "straight"),
		e("sleek", "fluffy", "frizzy", "voluminous"),
		e("voluminous", "flat", "thin", "sleek"),
		e("dry", "glossy", "oily", "silky"),
		e("rough", "smooth", "silky", "soft"),
		e("soft", "coarse", "rough", "wiry"),
		e("wiry", "soft", "silky", "smooth"),
		e("scaly", "smooth", "furry", "feathered"),
		e("furry", "scaly", "smooth", "bald"),
		e("feathered", "furry", "scaly", "smooth"),
	),
}

func tableFor(c Category) *table {
	if !c.Valid() || int(c) >= len(tables) {
		return nil
	}
	return tables[c]
}

// Keys はカテゴリのテーブルキーを宣言順で返します。
func Keys(c Category) []string {
	t := tableFor(c)
	if t == nil {
		return nil
	}
	keys := make([]string, len(t.entries))
	for i, en := range t.entries {
		keys[i] = en.key
	}
	return keys
}
