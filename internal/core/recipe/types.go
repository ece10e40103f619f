package recipe

import (
	"recipe-recommender/internal/core/cache"
	"recipe-recommender/internal/core/recommend"
)

// RecommendRequest 推薦查詢請求；TopN 為 nil 時使用預設值
type RecommendRequest struct {
	Ingredients []string `json:"ingredients"`
	TopN        *int     `json:"top_n,omitempty"`
}

// RecommendResponse 推薦查詢回應
type RecommendResponse struct {
	Query           []string                   `json:"query"`
	TopN            int                        `json:"top_n"`
	Generation      string                     `json:"generation"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Skipped         []recommend.SkippedRecord  `json:"skipped,omitempty"`
	CacheHit        bool                       `json:"cache_hit"`
}

// StatsResponse 服務統計
type StatsResponse struct {
	Engine recommend.Stats `json:"engine"`
	Cache  *cache.Stats    `json:"cache,omitempty"`
}
