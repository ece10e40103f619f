package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-recommender/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// ReadinessChecker 回報推薦引擎是否可服務
type ReadinessChecker interface {
	Ready() bool
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Version     string                 `json:"version"`
	Uptime      string                 `json:"uptime"`
	EngineReady bool                   `json:"engine_ready"`
	Runtime     map[string]interface{} `json:"runtime"`
}

// Handler 健康檢查處理器
type Handler struct {
	version string
	checker ReadinessChecker
	started time.Time
}

// NewHandler 創建健康檢查處理器
func NewHandler(cfg *config.Config, checker ReadinessChecker) *Handler {
	return &Handler{
		version: cfg.App.Version,
		checker: checker,
		started: time.Now(),
	}
}

// HealthCheck 健康檢查；引擎尚未就緒時狀態為 starting，但仍回傳 200
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	ready := h.checker.Ready()
	status := "ok"
	if !ready {
		status = "starting"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:      status,
		Timestamp:   time.Now(),
		Version:     h.version,
		Uptime:      time.Since(h.started).Round(time.Second).String(),
		EngineReady: ready,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	})
}

// ReadinessCheck 就緒檢查；引擎建立完成前回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if !h.checker.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
