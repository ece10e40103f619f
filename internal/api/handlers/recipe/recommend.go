package recipe

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	recipeService "recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recommender 推薦服務介面
type Recommender interface {
	Recommend(ctx context.Context, req recipeService.RecommendRequest) (*recipeService.RecommendResponse, error)
	Stats() (*recipeService.StatsResponse, error)
	Reload(ctx context.Context) (*recommend.Stats, error)
}

// Handler 食譜推薦處理器
type Handler struct {
	svc   Recommender
	debug bool
}

// NewHandler 創建新的處理器
func NewHandler(svc Recommender, debug bool) *Handler {
	return &Handler{svc: svc, debug: debug}
}

// HandleRecommend 處理 JSON 推薦請求
func (h *Handler) HandleRecommend(c *gin.Context) {
	var req recipeService.RecommendRequest
	if err := common.DecodeJSONStrict(c.Request.Body, &req); err != nil {
		common.LogWarn("Invalid recommend request",
			zap.String("request_id", common.RequestID(c)),
			zap.Error(err),
		)
		common.WriteError(c, common.NewValidationError(fmt.Sprintf("invalid request body: %v", err)), h.debug)
		return
	}
	h.recommend(c, req)
}

// HandleRecommendQuery 處理查詢字串推薦請求：?ingredients=a,b,c&top_n=5
func (h *Handler) HandleRecommendQuery(c *gin.Context) {
	req := recipeService.RecommendRequest{
		Ingredients: recommend.ParseIngredientInput(c.Query("ingredients")),
	}
	if raw := strings.TrimSpace(c.Query("top_n")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			common.WriteError(c, common.NewValidationError(fmt.Sprintf("top_n must be an integer, got %q", raw)), h.debug)
			return
		}
		req.TopN = &n
	}
	h.recommend(c, req)
}

func (h *Handler) recommend(c *gin.Context, req recipeService.RecommendRequest) {
	resp, err := h.svc.Recommend(c.Request.Context(), req)
	if err != nil {
		common.WriteError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleStats 回傳引擎與快取統計
func (h *Handler) HandleStats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		common.WriteError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HandleReload 重新載入語料；失敗時舊引擎繼續服務
func (h *Handler) HandleReload(c *gin.Context) {
	common.LogInfo("Corpus reload requested", zap.String("request_id", common.RequestID(c)))

	stats, err := h.svc.Reload(c.Request.Context())
	if err != nil {
		common.WriteError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "reloaded",
		"engine": stats,
	})
}
