package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"recipe-recommender/internal/core/cache"
	"recipe-recommender/internal/core/corpus"
	"recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/metrics"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// RecommendService 食譜推薦服務
//
// 服務中的引擎放在 atomic 指標後面；重新載入時在旁邊建好新引擎再一次換上，失敗時舊引擎繼續服務。
type RecommendService struct {
	source      string
	sourceOpts  corpus.SourceOptions
	defaultTopN int
	maxTopN     int

	engine   atomic.Pointer[recommend.Engine]
	cache    cache.Store
	reloadMu sync.Mutex
}

// NewRecommendService 創建推薦服務；store 可為 nil（不快取）
func NewRecommendService(cfg *config.Config, store cache.Store) *RecommendService {
	return &RecommendService{
		source: cfg.Corpus.Path,
		sourceOpts: corpus.SourceOptions{
			FetchTimeout: cfg.Corpus.FetchTimeout,
			MaxBytes:     cfg.Corpus.MaxBytes,
		},
		defaultTopN: cfg.Recommend.DefaultTopN,
		maxTopN:     cfg.Recommend.MaxTopN,
		cache:       store,
	}
}

// Load 首次建立引擎
func (s *RecommendService) Load(ctx context.Context) error {
	_, err := s.Reload(ctx)
	return err
}

// Reload 重新載入語料並換上新引擎
func (s *RecommendService) Reload(ctx context.Context) (*recommend.Stats, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	e, err := recommend.Build(ctx, s.source, s.sourceOpts)
	metrics.RecordEngineBuild(time.Since(start), err)
	if err != nil {
		fields := []zap.Field{zap.String("source", s.source), zap.Error(err)}
		if s.Ready() {
			common.LogError("Reload failed, keeping current engine", fields...)
		} else {
			common.LogError("Failed to build recommendation engine", fields...)
		}
		return nil, err
	}

	s.Install(e)
	stats := e.Stats()
	return &stats, nil
}

// Install 換上已建立的引擎
func (s *RecommendService) Install(e *recommend.Engine) {
	previous := s.engine.Swap(e)

	stats := e.Stats()
	dropped := make(map[string]int, len(stats.Dropped))
	for reason, n := range stats.Dropped {
		dropped[string(reason)] = n
	}
	metrics.UpdateCorpusGauges(stats.Recipes, stats.VocabularySize, dropped)
	metrics.RecordSkipped("load", stats.LoadWarnings)

	if previous != nil {
		common.LogInfo("Recommendation engine swapped",
			zap.String("previous_generation", previous.Generation()),
			zap.String("generation", e.Generation()),
		)
	}
}

// Ready 是否已有引擎可服務
func (s *RecommendService) Ready() bool {
	return s.engine.Load() != nil
}

// Engine 目前服務中的引擎
func (s *RecommendService) Engine() *recommend.Engine {
	return s.engine.Load()
}

// ResolveTopN 套用預設值並檢查上限
func (s *RecommendService) ResolveTopN(topN *int) (int, error) {
	if topN == nil {
		return s.defaultTopN, nil
	}
	if *topN < 1 {
		return 0, common.NewValidationError(fmt.Sprintf("top_n must be at least 1, got %d", *topN))
	}
	if *topN > s.maxTopN {
		return 0, common.NewValidationError(fmt.Sprintf("top_n must not exceed %d, got %d", s.maxTopN, *topN))
	}
	return *topN, nil
}

// Recommend 推薦食譜
func (s *RecommendService) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	start := time.Now()

	e := s.Engine()
	if e == nil {
		metrics.RecordRecommend("unavailable", time.Since(start))
		return nil, common.ErrServiceUnavailable
	}

	resp := &RecommendResponse{
		Query:           req.Ingredients,
		Generation:      e.Generation(),
		Recommendations: []recommend.Recommendation{},
	}
	if resp.Query == nil {
		resp.Query = []string{}
	}

	// 空查詢直接回傳空結果
	if len(req.Ingredients) == 0 {
		resp.TopN = s.defaultTopN
		if req.TopN != nil {
			resp.TopN = *req.TopN
		}
		metrics.RecordRecommend("empty", time.Since(start))
		return resp, nil
	}

	topN, err := s.ResolveTopN(req.TopN)
	if err != nil {
		metrics.RecordRecommend("invalid", time.Since(start))
		return nil, err
	}
	resp.TopN = topN

	key := cache.Key(e.Generation(), strconv.Itoa(topN), strings.Join(req.Ingredients, "\x1f"))
	if result, ok := s.fromCache(ctx, key); ok {
		resp.Recommendations = result.Recommendations
		resp.Skipped = result.Skipped
		resp.CacheHit = true
		metrics.RecordRecommend("ok", time.Since(start))
		return resp, nil
	}

	result, err := e.Recommend(req.Ingredients, topN)
	if err != nil {
		outcome := "error"
		if common.IsValidationError(err) {
			outcome = "invalid"
		}
		metrics.RecordRecommend(outcome, time.Since(start))
		return nil, err
	}
	metrics.RecordSkipped("assemble", len(result.Skipped))
	s.toCache(ctx, key, result)

	resp.Recommendations = result.Recommendations
	resp.Skipped = result.Skipped
	metrics.RecordRecommend("ok", time.Since(start))

	common.LogDebug("Recommendation served",
		zap.Int("ingredients", len(req.Ingredients)),
		zap.Int("top_n", topN),
		zap.Int("results", len(result.Recommendations)),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

// Stats 服務統計
func (s *RecommendService) Stats() (*StatsResponse, error) {
	e := s.Engine()
	if e == nil {
		return nil, common.ErrServiceUnavailable
	}
	resp := &StatsResponse{Engine: e.Stats()}
	if s.cache != nil {
		stats := s.cache.Stats()
		resp.Cache = &stats
	}
	return resp, nil
}

// Close 釋放快取資源
func (s *RecommendService) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}

// fromCache 從緩存獲取結果；任何錯誤都視為未命中
func (s *RecommendService) fromCache(ctx context.Context, key string) (*recommend.Result, bool) {
	if s.cache == nil {
		return nil, false
	}
	backend := s.cache.Backend()

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if cache.IsMiss(err) {
			metrics.RecordCacheMiss(backend)
		} else {
			metrics.RecordCacheError(backend, "get")
			common.LogWarn("Cache read failed", zap.String("backend", backend), zap.Error(err))
		}
		return nil, false
	}

	var result recommend.Result
	if err := common.ParseJSONBytes(data, &result); err != nil {
		metrics.RecordCacheError(backend, "decode")
		common.LogWarn("Cached result is corrupt", zap.String("backend", backend), zap.Error(err))
		return nil, false
	}
	metrics.RecordCacheHit(backend)
	return &result, true
}

// toCache 將結果存入緩存；失敗只記錄
func (s *RecommendService) toCache(ctx context.Context, key string, result *recommend.Result) {
	if s.cache == nil {
		return
	}
	backend := s.cache.Backend()

	data, err := json.Marshal(result)
	if err != nil {
		metrics.RecordCacheError(backend, "encode")
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		metrics.RecordCacheError(backend, "set")
		common.LogWarn("Cache write failed", zap.String("backend", backend), zap.Error(err))
	}
}
