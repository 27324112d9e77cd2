package ingredient

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"
)

//go:embed tables.yaml
var tablesYAML []byte

type tableFile struct {
	Variations      map[string][]string `yaml:"variations"`
	NeverCrossMatch map[string][]string `yaml:"never_cross_match"`
	Specialty       []string            `yaml:"specialty"`
}

type guard struct {
	key    string
	blocks []string
}

// Tables 食材比對用的唯讀規則表
type Tables struct {
	// 正規化名稱 → 所屬同義詞群組
	groups    map[string][]int
	groupName []string
	guards    []guard
	specialty []string
}

var (
	tablesOnce   sync.Once
	sharedTables *Tables
)

// DefaultTables 取得內嵌規則表，只解析一次
func DefaultTables() *Tables {
	tablesOnce.Do(func() {
		t, err := ParseTables(tablesYAML)
		if err != nil {
			panic(fmt.Sprintf("內嵌食材規則表解析失敗: %v", err))
		}
		sharedTables = t
	})
	return sharedTables
}

// ParseTables 從 YAML 建立規則表
func ParseTables(data []byte) (*Tables, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse ingredient tables: %w", err)
	}

	t := &Tables{groups: make(map[string][]int)}

	canonical := make([]string, 0, len(file.Variations))
	for name := range file.Variations {
		canonical = append(canonical, name)
	}
	sort.Strings(canonical)

	for id, name := range canonical {
		t.groupName = append(t.groupName, name)
		terms := append([]string{name}, file.Variations[name]...)
		for _, term := range terms {
			key := Normalize(term)
			if key == "" {
				continue
			}
			if !containsInt(t.groups[key], id) {
				t.groups[key] = append(t.groups[key], id)
			}
		}
	}

	keys := make([]string, 0, len(file.NeverCrossMatch))
	for k := range file.NeverCrossMatch {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		g := guard{key: Simplify(k)}
		for _, b := range file.NeverCrossMatch[k] {
			g.blocks = append(g.blocks, Simplify(b))
		}
		t.guards = append(t.guards, g)
	}

	for _, s := range file.Specialty {
		t.specialty = append(t.specialty, Simplify(s))
	}
	return t, nil
}

// Variation 若兩個已正規化名稱屬於同一同義詞群組，回傳群組名稱
func (t *Tables) Variation(a, b string) (string, bool) {
	ga, ok := t.groups[a]
	if !ok {
		return "", false
	}
	gb, ok := t.groups[b]
	if !ok {
		return "", false
	}
	for _, x := range ga {
		if containsInt(gb, x) {
			return t.groupName[x], true
		}
	}
	return "", false
}

// Blocked 兩個名稱是否被互斥表禁止在模糊層級配對（雙向）
func (t *Tables) Blocked(a, b string) bool {
	sa, sb := Simplify(a), Simplify(b)
	for _, g := range t.guards {
		if blockedBy(g, sa, sb) || blockedBy(g, sb, sa) {
			return true
		}
	}
	return false
}

func blockedBy(g guard, holder, other string) bool {
	if !hasPhrase(holder, g.key) || hasPhrase(other, g.key) {
		return false
	}
	for _, b := range g.blocks {
		if hasPhrase(other, b) {
			return true
		}
	}
	return false
}

// SpecialtyConflict 特殊食材只能與同一種特殊食材做模糊比對
func (t *Tables) SpecialtyConflict(a, b string) bool {
	sa, sb := t.specialtyOf(Simplify(a)), t.specialtyOf(Simplify(b))
	if len(sa) != len(sb) {
		return true
	}
	for i := range sa {
		if sa[i] != sb[i] {
			return true
		}
	}
	return false
}

// IsSpecialty 名稱是否屬於特殊食材
func (t *Tables) IsSpecialty(name string) bool {
	return len(t.specialtyOf(Simplify(name))) > 0
}

func (t *Tables) specialtyOf(simplified string) []string {
	var found []string
	for _, s := range t.specialty {
		if hasPhrase(simplified, s) {
			found = append(found, s)
		}
	}
	return found
}

// 以整詞邊界判斷片語是否出現
func hasPhrase(s, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(" "+s+" ", " "+phrase+" ")
}

func containsInt(xs []int, want int) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
