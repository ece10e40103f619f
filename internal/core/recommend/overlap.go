package recommend

// Overlap 查詢食材與食譜食材的字面重疊百分比
//
// 以完全相同的字串比對：100 × |查詢 ∩ 食譜| / |查詢|，查詢為空時為 0。
func Overlap(query, recipe []string) float64 {
	q := toSet(query)
	if len(q) == 0 {
		return 0
	}
	r := toSet(recipe)

	shared := 0
	for item := range q {
		if _, ok := r[item]; ok {
			shared++
		}
	}
	return 100 * float64(shared) / float64(len(q))
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
