package ingredient

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	parenPattern = regexp.MustCompile(`\([^)]*\)`)

	// 需要在標點處理前移除的複合詞
	preReplacer = strings.NewReplacer(
		"½", " ", "¼", " ", "¾", " ", "⅓", " ", "⅔", " ", "⅛", " ",
		"bone-in", " ", "skin-on", " ",
	)
)

// 烹調狀態、尺寸、容器/單位、停用詞與量測描述
var normalizeStopWords = toSet(
	// cooking state
	"fresh", "dried", "minced", "chopped", "sliced", "diced", "whole", "ground",
	"crushed", "grated", "shredded", "cooked", "uncooked", "raw", "frozen",
	"organic", "natural", "pure", "fine", "coarse", "finely", "packed",
	"softened", "melted", "beaten", "pounded", "flattened", "tenderized", "cut",
	// size / qualifier
	"small", "medium", "large", "extra", "about", "approximately", "jumbo", "mini",
	"thick", "thin",
	// unit / container
	"can", "cans", "jar", "jars", "bottle", "bottles", "bag", "bags", "box", "boxes",
	"package", "packages", "pkg", "container", "containers",
	"lb", "lbs", "pound", "pounds", "oz", "ounce", "ounces",
	"cup", "cups", "tablespoon", "tablespoons", "tbsp", "teaspoon", "teaspoons", "tsp",
	"gram", "grams", "kg", "ml", "liter", "liters", "pint", "pints", "quart", "quarts",
	"gallon", "gallons", "pinch", "dash", "piece", "pieces",
	// stopwords
	"of", "the", "and", "or", "each", "divided", "to", "into", "for", "with", "from",
	"an", "per", "taste", "optional",
	// measurement
	"inch", "inches", "thickness", "diameter",
)

// 模糊比對時額外去除的描述詞
var coreStopWords = toSet(
	"boneless", "skinless", "lean", "canned", "unsalted", "salted", "low", "fat",
	"free", "reduced", "sodium", "plain", "original", "classic", "premium",
	"homemade", "all", "purpose", "virgin", "baby", "prepared", "seasoned",
	"marinated", "peeled", "trimmed", "halved", "quartered", "shelled", "style",
	"great", "value", "kirkland", "store", "brand",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Simplify 小寫、去重音、標點轉空白並壓縮空白；不移除任何詞彙
func Simplify(name string) string {
	if name == "" {
		return ""
	}
	s, _, err := transform.String(accentFolder, strings.ToLower(name))
	if err != nil {
		s = strings.ToLower(name)
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Normalize 將食材或品項名稱正規化為可比對的核心字串
func Normalize(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	s := strings.ToLower(name)
	s = parenPattern.ReplaceAllString(s, " ")
	s = preReplacer.Replace(s)
	return strings.Join(filterTokens(strings.Fields(Simplify(s)), normalizeStopWords), " ")
}

// Core 從已正規化的字串再去除延伸描述詞
func Core(normalized string) string {
	return strings.Join(filterTokens(strings.Fields(normalized), coreStopWords), " ")
}

// Tokens 切出長度至少 3 的詞
func Tokens(s string) []string {
	var out []string
	for _, tok := range strings.Fields(s) {
		if len(tok) >= 3 {
			out = append(out, tok)
		}
	}
	return out
}

func filterTokens(tokens []string, stop map[string]struct{}) []string {
	out := tokens[:0:0]
	for _, tok := range tokens {
		if len(tok) < 2 || unicode.IsDigit(rune(tok[0])) {
			continue
		}
		if _, skip := stop[tok]; skip {
			continue
		}
		out = append(out, tok)
	}
	return out
}
