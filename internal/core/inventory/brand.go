package inventory

import (
	"regexp"
	"strings"

	"pantry-planner/internal/core/ingredient"
	"pantry-planner/internal/pkg/common"
)

// 便利性商品類型
const (
	ConvenienceBurgerPatties = "burger_patties"
	ConvenienceChicken       = "chicken_convenience"
	ConveniencePizza         = "pizza"
	ConvenienceNoodles       = "instant_noodles"
	ConvenienceMacAndCheese  = "mac_and_cheese"
	ConvenienceFrozenMeal    = "frozen_meal"
	ConvenienceSnackMeal     = "snack_meal"
)

// 調理包需要搭配的蛋白質
const (
	ProteinGroundBeef   = "ground beef"
	ProteinGroundTurkey = "ground turkey"
	ProteinChicken      = "chicken"
	ProteinTuna         = "tuna"
)

// BrandAnalysis 品牌分析結果
type BrandAnalysis struct {
	IsHelperMeal            bool   `json:"isHelperMeal"`
	RequiredProtein         string `json:"requiredProtein,omitempty"`
	RequiredComponent       string `json:"requiredComponent,omitempty"`
	IsStandaloneConvenience bool   `json:"isStandaloneConvenience"`
	IsConvenienceProtein    bool   `json:"isConvenienceProtein"`
	ConvenienceType         string `json:"convenienceType,omitempty"`
}

type conveniencePattern struct {
	phrases []string
	kind    string
}

// 依序比對，先符合者優先
var convenienceProteins = []conveniencePattern{
	{phrases: []string{"hamburger patties", "hamburger patty", "burger patties", "beef patties", "beef patty"}, kind: ConvenienceBurgerPatties},
	{phrases: []string{"chicken patties", "chicken patty", "chicken nuggets", "chicken fries", "popcorn chicken"}, kind: ConvenienceChicken},
}

type helperPattern struct {
	brand   *regexp.Regexp
	protein string
}

var helperBrands = []helperPattern{
	{brand: regexp.MustCompile(`(?i)^hamburger\s*helper$`), protein: ProteinGroundBeef},
	{brand: regexp.MustCompile(`(?i)^tuna\s*helper$`), protein: ProteinTuna},
	{brand: regexp.MustCompile(`(?i)^chicken\s*helper$`), protein: ProteinChicken},
	{brand: regexp.MustCompile(`(?i)^turkey\s*helper$`), protein: ProteinGroundTurkey},
}

// 品牌欄位缺漏時，直接從「品牌 + 名稱」辨識
var strictHelper = regexp.MustCompile(`(?i)\b(hamburger|tuna|chicken|turkey)\s*helper\b`)

var helperProteinByWord = map[string]string{
	"hamburger": ProteinGroundBeef,
	"tuna":      ProteinTuna,
	"chicken":   ProteinChicken,
	"turkey":    ProteinGroundTurkey,
}

// 調理包名稱中常見的字眼
var mealKitWords = []string{
	"helper", "cheesy", "cheeseburger", "macaroni", "lasagna", "stroganoff", "beef",
	"pasta", "tuna", "chicken", "turkey", "casserole", "potatoes", "noodle", "rice",
	"taco", "chili", "cheddar", "alfredo", "fettuccine", "romanoff", "tetrazzini",
	"italian", "mac", "shells", "bacon", "crunchy", "deluxe", "cheese", "skillet",
	"melt", "ranch", "enchilada", "beef pasta", "salmon",
}

type standalonePattern struct {
	pattern *regexp.Regexp
	kind    string
}

var standalonePatterns = []standalonePattern{
	{regexp.MustCompile(`\bfrozen\b.*\bpizzas?$|\b(digiorno|totino|red baron|tombstone|jack s)\b`), ConveniencePizza},
	{regexp.MustCompile(`\bramen\b|\bcup (of )?noodles?\b|\b(maruchan|nissin|top ramen)\b`), ConvenienceNoodles},
	{regexp.MustCompile(`\bmac (and |n )?cheese\b|\bmacaroni and cheese\b|\bkraft dinner\b|\beasy mac\b`), ConvenienceMacAndCheese},
	{regexp.MustCompile(`\b(lean cuisine|stouffer|marie callender|hungry man|banquet|healthy choice|michelina|smart ones|amy s kitchen)\b`), ConvenienceFrozenMeal},
	{regexp.MustCompile(`\bfrozen (dinner|meal|entree|burrito)s?\b|\btv dinner\b`), ConvenienceFrozenMeal},
	{regexp.MustCompile(`\bhot pockets?\b|\blunchables?\b|\bbagel bites\b|\bpizza rolls\b`), ConvenienceSnackMeal},
}

// AnalyzeBrand 依固定優先序分析品牌與名稱，第一條符合的規則勝出
func AnalyzeBrand(item common.InventoryItem) BrandAnalysis {
	name := ingredient.Simplify(item.Name)
	brand := strings.TrimSpace(item.Brand)

	for _, p := range convenienceProteins {
		for _, phrase := range p.phrases {
			if strings.Contains(name, phrase) {
				return BrandAnalysis{IsConvenienceProtein: true, ConvenienceType: p.kind}
			}
		}
	}

	if protein, ok := helperProtein(brand, name); ok {
		return BrandAnalysis{
			IsHelperMeal:      true,
			RequiredProtein:   protein,
			RequiredComponent: CategoryProtein,
		}
	}

	combined := strings.TrimSpace(ingredient.Simplify(brand) + " " + name)
	for _, p := range standalonePatterns {
		if p.pattern.MatchString(combined) {
			return BrandAnalysis{IsStandaloneConvenience: true, ConvenienceType: p.kind}
		}
	}

	return BrandAnalysis{}
}

func helperProtein(brand, name string) (string, bool) {
	for _, h := range helperBrands {
		if h.brand.MatchString(brand) && hasMealKitWord(name) {
			return h.protein, true
		}
	}
	if m := strictHelper.FindStringSubmatch(brand + " " + name); m != nil {
		return helperProteinByWord[strings.ToLower(m[1])], true
	}
	return "", false
}

func hasMealKitWord(name string) bool {
	for _, w := range mealKitWords {
		if hasWordPrefix(name, w) {
			return true
		}
	}
	return false
}
