package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus 指標：HTTP 請求、推薦查詢、語料載入與結果快取

var (
	// HTTP 指標
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_http_requests_rejected_total",
			Help: "Requests rejected by middleware before reaching a handler",
		},
		[]string{"reason"}, // "rate_limit", "duplicate", "body_too_large"
	)

	// 推薦指標
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_recommend_requests_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"result"}, // "ok", "empty", "invalid", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_recommend_duration_seconds",
			Help:    "Time spent ranking and assembling recommendations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_records_skipped_total",
			Help: "Recipe records skipped because a serialized field could not be parsed",
		},
		[]string{"stage"}, // "load", "assemble"
	)

	// 語料指標
	CorpusRecipes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_corpus_recipes",
			Help: "Number of recipes in the live index",
		},
	)

	CorpusVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_corpus_vocabulary_size",
			Help: "Number of distinct terms in the live index",
		},
	)

	CorpusDropped = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recipe_corpus_dropped_records",
			Help: "Records dropped while loading the live corpus, by reason",
		},
		[]string{"reason"},
	)

	EngineBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_engine_builds_total",
			Help: "Engine build attempts",
		},
		[]string{"status"}, // "success", "failure"
	)

	EngineBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_engine_build_duration_seconds",
			Help:    "Time to load the corpus and build the index",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	EngineReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_engine_ready",
			Help: "1 when a recommendation engine is serving, 0 otherwise",
		},
	)

	// 快取指標
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_cache_hits_total",
			Help: "Recommendation cache hits",
		},
		[]string{"backend"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_cache_misses_total",
			Help: "Recommendation cache misses",
		},
		[]string{"backend"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_cache_errors_total",
			Help: "Recommendation cache read or write failures",
		},
		[]string{"backend", "operation"},
	)
)

// RecordHTTPRequest 記錄 HTTP 請求
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRejected 記錄被中介層拒絕的請求
func RecordRejected(reason string) {
	HTTPRequestsRejected.WithLabelValues(reason).Inc()
}

// RecordRecommend 記錄一次推薦查詢
func RecordRecommend(result string, duration time.Duration) {
	RecommendRequests.WithLabelValues(result).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordSkipped 記錄被略過的食譜筆數
func RecordSkipped(stage string, count int) {
	if count <= 0 {
		return
	}
	RecordsSkipped.WithLabelValues(stage).Add(float64(count))
}

// RecordEngineBuild 記錄引擎建立結果
func RecordEngineBuild(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	EngineBuilds.WithLabelValues(status).Inc()
	EngineBuildDuration.Observe(duration.Seconds())
}

// UpdateCorpusGauges 更新目前服務中語料的統計
func UpdateCorpusGauges(recipes, vocabulary int, dropped map[string]int) {
	CorpusRecipes.Set(float64(recipes))
	CorpusVocabularySize.Set(float64(vocabulary))
	CorpusDropped.Reset()
	for reason, n := range dropped {
		CorpusDropped.WithLabelValues(reason).Set(float64(n))
	}
	EngineReady.Set(1)
}

// RecordCacheHit 記錄快取命中
func RecordCacheHit(backend string) {
	CacheHits.WithLabelValues(backend).Inc()
}

// RecordCacheMiss 記錄快取未命中
func RecordCacheMiss(backend string) {
	CacheMisses.WithLabelValues(backend).Inc()
}

// RecordCacheError 記錄快取錯誤
func RecordCacheError(backend, operation string) {
	CacheErrors.WithLabelValues(backend, operation).Inc()
}
