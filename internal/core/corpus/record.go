package corpus

import (
	"fmt"
	"strings"

	"recipe-recommender/internal/pkg/common"
)

// NutritionFields 營養欄位數量與順序由資料來源固定
const NutritionFields = 7

// 營養欄位索引
const (
	NutritionCalories = iota
	NutritionTotalFat
	NutritionSugar
	NutritionSodium
	NutritionProtein
	NutritionSaturatedFat
	NutritionCarbohydrates
)

// Nutrition 營養資訊：卡路里，其餘為每日建議攝取量百分比
type Nutrition [NutritionFields]float64

// ParseNutrition 解析營養欄位
func ParseNutrition(raw string) (Nutrition, error) {
	var n Nutrition
	values, err := ParseNumberList(raw)
	if err != nil {
		return n, err
	}
	if len(values) != NutritionFields {
		return n, fmt.Errorf("%w: expected %d nutrition values, got %d", ErrInvalidLiteral, NutritionFields, len(values))
	}
	copy(n[:], values)
	return n, nil
}

// Facts 將營養資訊換算成顯示用份量
func (n Nutrition) Facts() []common.NutritionFact {
	return []common.NutritionFact{
		{Name: "Calories", Value: n[NutritionCalories], Unit: ""},
		{Name: "Sugar", Value: common.PercentDailyValue(n[NutritionSugar], common.DailySugarGrams), Unit: "g"},
		{Name: "Sodium", Value: common.PercentDailyValue(n[NutritionSodium], common.DailySodiumMilligrams), Unit: "mg"},
		{Name: "Protein", Value: common.PercentDailyValue(n[NutritionProtein], common.DailyProteinGrams), Unit: "g"},
		{Name: "Saturated Fat", Value: common.PercentDailyValue(n[NutritionSaturatedFat], common.DailySatFatGrams), Unit: "g"},
		{Name: "Carbohydrates", Value: common.PercentDailyValue(n[NutritionCarbohydrates], common.DailyCarbsGrams), Unit: "g"},
	}
}

// Recipe 一筆通過驗證的食譜，建立後不可變更
type Recipe struct {
	row            int
	name           string
	ingredients    []string
	ingredientText string
	rawNutrition   string
	rawSteps       string
}

// NewRecipe 建立食譜記錄；營養與步驟欄位保留原始字串，於組裝結果時才解析
func NewRecipe(row int, name string, ingredients []string, rawNutrition, rawSteps string) *Recipe {
	items := make([]string, len(ingredients))
	copy(items, ingredients)
	return &Recipe{
		row:            row,
		name:           name,
		ingredients:    items,
		ingredientText: JoinIngredients(items),
		rawNutrition:   rawNutrition,
		rawSteps:       rawSteps,
	}
}

// Row 資料來源中的列號
func (r *Recipe) Row() int { return r.row }

// Name 食譜名稱
func (r *Recipe) Name() string { return r.name }

// Ingredients 回傳食材清單副本
func (r *Recipe) Ingredients() []string {
	out := make([]string, len(r.ingredients))
	copy(out, r.ingredients)
	return out
}

// IngredientText 正規化後的食材文字
func (r *Recipe) IngredientText() string { return r.ingredientText }

// Nutrition 解析營養資訊
func (r *Recipe) Nutrition() (Nutrition, error) {
	n, err := ParseNutrition(r.rawNutrition)
	if err != nil {
		return n, common.NewRecordParseError(r.row, r.name, "nutrition", err)
	}
	return n, nil
}

// Steps 解析料理步驟
func (r *Recipe) Steps() ([]string, error) {
	steps, err := ParseStringList(r.rawSteps)
	if err != nil {
		return nil, common.NewRecordParseError(r.row, r.name, "steps", err)
	}
	return steps, nil
}

// JoinIngredients 以單一空白串接食材，語料與查詢共用同一規則
func JoinIngredients(items []string) string {
	return strings.Join(items, " ")
}
