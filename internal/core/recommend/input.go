package recommend

import "strings"

// ParseIngredientInput 解析使用者輸入的食材文字，以逗號分隔並去除前後空白，空項目略過
func ParseIngredientInput(input string) []string {
	parts := strings.Split(input, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
