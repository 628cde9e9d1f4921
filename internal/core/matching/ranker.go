package matching

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

// 推薦與風味過濾模式
const (
	ModeAnd = "and"
	ModeOr  = "or"
)

// SuggestFilter 推薦過濾條件
type SuggestFilter struct {
	// 手上持有的原料 id；Mode 為 and 時酒譜必須包含全部，
	// or 時至少包含一個
	IngredientIDs []uint
	Mode          string
	// 風味 macro 過濾，語意同上
	Macros    []string
	MacroMode string
	// 允許的最大缺貨數，nil 表示不設限
	MaxMissing *int
}

// Ranker 酒譜搜尋排序與隨機推薦。
// 每次呼叫都是對快照輸入的同步計算，不保留跨呼叫狀態。
type Ranker struct {
	matcher    *Matcher
	classifier MacroClassifier

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRanker 建立排序器。rng 可注入以便測試取得確定性結果，
// 傳入 nil 時使用時間種子。
func NewRanker(matcher *Matcher, classifier MacroClassifier, rng *rand.Rand) *Ranker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Ranker{
		matcher:    matcher,
		classifier: classifier,
		rng:        rng,
	}
}

// Rank 為候選酒譜附上可用性統計並套用過濾與排序。
// 候選清單已完成文字／屬性過濾與分頁（分頁契約：在可用性計算
// 之前套用，頁界不受庫存狀態影響）。availableOnly 會讓一頁
// 的結果數少於分頁大小，這是預期行為。
func (r *Ranker) Rank(candidates []RecipeView, availableOnly, orderMissing bool) ([]Ranked, error) {
	out := make([]Ranked, 0, len(candidates))
	for _, recipe := range candidates {
		available, missingCount, err := r.matcher.Counts(recipe)
		if err != nil {
			return nil, err
		}
		if availableOnly && missingCount > 0 {
			continue
		}
		out = append(out, Ranked{
			Recipe:         recipe,
			AvailableCount: available,
			MissingCount:   missingCount,
		})
	}

	if orderMissing {
		// 穩定排序：缺貨數相同時保持原有相對順序
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MissingCount < out[j].MissingCount
		})
	}
	return out, nil
}

// Suggest 隨機推薦：在缺貨數不超過 maxMissing 的候選中隨機挑選，
// 最多回傳 limit 筆
func (r *Ranker) Suggest(candidates []RecipeView, limit int, maxMissing *int) ([]Ranked, error) {
	return r.SuggestFiltered(candidates, SuggestFilter{MaxMissing: maxMissing}, limit)
}

// SuggestFiltered 依過濾條件隨機推薦
func (r *Ranker) SuggestFiltered(candidates []RecipeView, filter SuggestFilter, limit int) ([]Ranked, error) {
	qualified := make([]Ranked, 0, len(candidates))

	for _, recipe := range candidates {
		ok, err := r.qualifies(recipe, filter)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		available, missingCount, err := r.matcher.Counts(recipe)
		if err != nil {
			return nil, err
		}
		if filter.MaxMissing != nil && missingCount > *filter.MaxMissing {
			continue
		}
		qualified = append(qualified, Ranked{
			Recipe:         recipe,
			AvailableCount: available,
			MissingCount:   missingCount,
		})
	}

	r.shuffle(qualified)

	if limit > 0 && len(qualified) > limit {
		qualified = qualified[:limit]
	}
	return qualified, nil
}

// qualifies 檢查原料集合與風味過濾條件，兩者都要通過
func (r *Ranker) qualifies(recipe RecipeView, filter SuggestFilter) (bool, error) {
	if len(filter.IngredientIDs) > 0 {
		ids, err := r.matcher.ingredientIDSet(recipe)
		if err != nil {
			return false, err
		}
		if !matchSet(filter.IngredientIDs, ids, filter.Mode) {
			return false, nil
		}
	}

	if len(filter.Macros) > 0 && r.classifier != nil {
		names := make([]string, 0, len(recipe.RecipeIngredients()))
		for _, ri := range recipe.RecipeIngredients() {
			names = append(names, ri.Name)
		}
		hits := make(map[string]struct{})
		for _, m := range r.classifier.MacrosForRecipe(names) {
			hits[m] = struct{}{}
		}
		if !matchStringSet(filter.Macros, hits, filter.MacroMode) {
			return false, nil
		}
	}

	return true, nil
}

// matchSet and 模式要求全部存在，or 模式至少一個
func matchSet(wanted []uint, have map[uint]struct{}, mode string) bool {
	if mode == ModeOr {
		for _, id := range wanted {
			if _, ok := have[id]; ok {
				return true
			}
		}
		return false
	}
	for _, id := range wanted {
		if _, ok := have[id]; !ok {
			return false
		}
	}
	return true
}

func matchStringSet(wanted []string, have map[string]struct{}, mode string) bool {
	if mode == ModeOr {
		for _, name := range wanted {
			if _, ok := have[name]; ok {
				return true
			}
		}
		return false
	}
	for _, name := range wanted {
		if _, ok := have[name]; !ok {
			return false
		}
	}
	return true
}

// shuffle 原地洗牌，rand.Rand 不是併發安全的所以上鎖
func (r *Ranker) shuffle(items []Ranked) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
