package ingredient

import "strings"

// 植物性 / 肉類替代品關鍵字（含品牌），比對原始名稱
var veganKeywords = []string{
	"vegan", "plant-based", "plant based", "meatless", "tofu", "seitan", "tempeh",
	"impossible", "beyond meat", "beyond burger", "beyond beef", "beyond sausage",
	"gardein", "morningstar", "boca", "tofurky", "quorn", "lightlife", "field roast",
	"veggie burger", "veggie crumbles", "dairy-free", "dairy free",
	"textured vegetable protein",
}

// 動物性蛋白關鍵字，比對正規化後名稱；三個字元以下需整詞相符
var animalKeywords = []string{
	"chicken", "beef", "pork", "turkey", "lamb", "veal", "duck", "venison", "bison",
	"fish", "salmon", "tuna", "cod", "tilapia", "halibut", "trout", "catfish",
	"shrimp", "crab", "lobster", "scallop", "anchovy", "sardine",
	"bacon", "ham", "sausage", "steak", "hamburger", "meatball",
	"pepperoni", "salami", "prosciutto", "chorizo",
	"ground beef", "ground turkey", "ground pork", "ground chicken",
}

// IsVegan 名稱或品牌是否標示為植物性
func IsVegan(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range veganKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsAnimalProtein 名稱是否為動物性蛋白；植物性名稱一律回傳 false，兩份清單互斥
func IsAnimalProtein(name string) bool {
	if IsVegan(name) {
		return false
	}
	normalized := Normalize(name)
	if normalized == "" {
		return false
	}
	tokens := strings.Fields(normalized)
	for _, kw := range animalKeywords {
		if len(kw) <= 3 {
			if containsToken(tokens, kw) {
				return true
			}
			continue
		}
		if animalHit(normalized, kw) {
			return true
		}
	}
	return false
}

// 這些關鍵字後接麵包類字詞時只是修飾語（hamburger buns）
var breadQualified = map[string]bool{"hamburger": true}

var breadWords = map[string]bool{"bun": true, "buns": true, "roll": true, "rolls": true}

func animalHit(normalized, kw string) bool {
	rest := normalized
	for {
		i := strings.Index(rest, kw)
		if i < 0 {
			return false
		}
		rest = rest[i+len(kw):]
		if !breadQualified[kw] {
			return true
		}
		next := strings.Fields(rest)
		if len(next) == 0 || !breadWords[next[0]] {
			return true
		}
	}
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}

// Profile 一個名稱的飲食屬性
type Profile struct {
	Vegan  bool
	Animal bool
}

// ProfileOf 計算名稱的飲食屬性；extra 可帶入品牌等行銷字樣
func ProfileOf(name string, extra ...string) Profile {
	full := strings.TrimSpace(name + " " + strings.Join(extra, " "))
	vegan := IsVegan(full)
	return Profile{
		Vegan:  vegan,
		Animal: !vegan && IsAnimalProtein(name),
	}
}

// Compatible 植物性與動物性不可互相配對（雙向）
func Compatible(a, b Profile) bool {
	if a.Vegan && b.Animal {
		return false
	}
	if a.Animal && b.Vegan {
		return false
	}
	return true
}
