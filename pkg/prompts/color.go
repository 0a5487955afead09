package prompts

import (
	"strconv"
	"strings"
)

// namedColor は色名変換で使う基準色です。
type namedColor struct {
	name    string
	r, g, b int
}

// referenceColors は宣言順に探索され、距離が同じ場合は先に宣言された色が優先されます。
var referenceColors = []namedColor{
	{"red", 255, 0, 0},
	{"orange", 255, 165, 0},
	{"yellow", 255, 255, 0},
	{"green", 0, 128, 0},
	{"cyan", 0, 255, 255},
	{"blue", 0, 0, 255},
	{"indigo", 75, 0, 130},
	{"purple", 128, 0, 128},
	{"pink", 255, 192, 203},
	{"brown", 139, 69, 19},
	{"gray", 128, 128, 128},
	{"black", 0, 0, 0},
	{"white", 255, 255, 255},
	{"gold", 255, 215, 0},
	{"silver", 192, 192, 192},
	{"bronze", 205, 127, 50},
	{"amber", 255, 191, 0},
	{"teal", 0, 128, 128},
	{"navy", 0, 0, 128},
	{"maroon", 128, 0, 0},
	{"olive", 128, 128, 0},
	{"coral", 255, 127, 80},
	{"azure", 0, 127, 255},
}

const (
	unknownColor = "unknown"

	lightThreshold = 180.0
	darkThreshold  = 80.0
)

// parseHex は "#RGB" / "#RRGGBB"（# は省略可）を RGB に変換します。
func parseHex(hex string) (r, g, b int, ok bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}

// HexToSimpleColorName は16進カラーを最も近い基準色の名前に変換します。
// 解析できない入力には "unknown" を返します。
func HexToSimpleColorName(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return unknownColor
	}

	best := ""
	bestDist := -1
	for _, c := range referenceColors {
		dr, dg, db := r-c.r, g-c.g, b-c.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = c.name, d
		}
	}
	return best
}

// GetColorModifier は輝度に応じて "light" / "dark" / "" を返します。
func GetColorModifier(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return ""
	}
	lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	switch {
	case lum > lightThreshold:
		return "light"
	case lum < darkThreshold:
		return "dark"
	default:
		return ""
	}
}

// FormatColorWithModifier は "light gold" のような修飾付きの色名を返します。黒と白には修飾を付けないのだ。
func FormatColorWithModifier(hex string) string {
	name := HexToSimpleColorName(hex)
	if name == unknownColor || name == "black" || name == "white" {
		return name
	}
	if mod := GetColorModifier(hex); mod != "" {
		return mod + " " + name
	}
	return name
}

// FormatColorPalette は先頭2色を "A and B" の形にまとめます。2色が同じ表記になる場合は1つにまとめます。
func FormatColorPalette(colors []string) string {
	switch len(colors) {
	case 0:
		return ""
	case 1:
		return FormatColorWithModifier(colors[0])
	}
	first := FormatColorWithModifier(colors[0])
	second := FormatColorWithModifier(colors[1])
	if first == second {
		return first
	}
	return first + " and " + second
}
