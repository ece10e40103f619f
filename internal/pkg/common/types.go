package common

// NutritionFact 營養資訊顯示項目
type NutritionFact struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// 每日建議攝取量（以 2000 大卡為基準）
const (
	DailySugarGrams       = 50.0
	DailySodiumMilligrams = 2300.0
	DailyProteinGrams     = 50.0
	DailySatFatGrams      = 20.0
	DailyCarbsGrams       = 275.0
)

// PercentDailyValue 將每日攝取百分比換算為實際份量
func PercentDailyValue(pdv, daily float64) float64 {
	return pdv * daily / 100
}
