package recommend

import (
	"time"

	"recipe-recommender/internal/core/corpus"
	"recipe-recommender/internal/pkg/common"
)

// Scored 排名結果中的一筆：語料索引與相似度
type Scored struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Recommendation 推薦結果
type Recommendation struct {
	RecipeIndex       int                    `json:"recipe_index"`
	RecipeName        string                 `json:"recipe_name"`
	Ingredients       []string               `json:"ingredients"`
	SimilarityScore   float64                `json:"similarity_score"`
	OverlapPercentage float64                `json:"overlap_percentage"`
	Nutrition         corpus.Nutrition       `json:"nutrition"`
	NutritionFacts    []common.NutritionFact `json:"nutrition_facts,omitempty"`
	Steps             []string               `json:"steps"`
}

// SkippedRecord 組裝時被略過的食譜
type SkippedRecord struct {
	RecipeIndex int    `json:"recipe_index"`
	Row         int    `json:"row"`
	RecipeName  string `json:"recipe_name"`
	Field       string `json:"field"`
	Reason      string `json:"reason"`
}

// Result 一次查詢的完整結果
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Skipped         []SkippedRecord  `json:"skipped,omitempty"`
}

// Stats 引擎統計
type Stats struct {
	Source          string                    `json:"source"`
	Generation      string                    `json:"generation"`
	Recipes         int                       `json:"recipes"`
	VocabularySize  int                       `json:"vocabulary_size"`
	Rows            int                       `json:"rows"`
	Dropped         map[corpus.DropReason]int `json:"dropped"`
	LoadWarnings    int                       `json:"load_warnings"`
	BuiltAt         time.Time                 `json:"built_at"`
	BuildDurationMs int64                     `json:"build_duration_ms"`
}
