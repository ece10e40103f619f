package recipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	recipeService "recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "name,id,minutes,contributor_id,submitted,tags,nutrition,n_steps,steps,description,ingredients,n_ingredients"

func row(name, ingredients string) string {
	return name + `,1,10,1,2005-01-01,[],"[120.0, 5.0, 10.0, 4.0, 8.0, 3.0, 2.0]",2,"['prep', 'cook']",d,"` + ingredients + `",3`
}

func setup(t *testing.T, load bool) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "recipes.csv")
	doc := header + "\n" + strings.Join([]string{
		row("A", "['chicken', 'onion', 'garlic']"),
		row("B", "['chicken', 'rice', 'onion']"),
		row("C", "['beef', 'carrot', 'potato']"),
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	svc := recipeService.NewRecommendService(&config.Config{
		Corpus:    config.CorpusConfig{Path: path},
		Recommend: config.RecommendConfig{DefaultTopN: 2, MaxTopN: 3},
	}, nil)
	if load {
		require.NoError(t, svc.Load(context.Background()))
	}

	h := NewHandler(svc, false)
	r := gin.New()
	r.POST("/recommend", h.HandleRecommend)
	r.GET("/recommend", h.HandleRecommendQuery)
	r.GET("/stats", h.HandleStats)
	r.POST("/reload", h.HandleReload)
	return r, path
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) recipeService.RecommendResponse {
	t.Helper()
	var resp recipeService.RecommendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestHandleRecommend(t *testing.T) {
	r, _ := setup(t, true)

	w := serve(r, http.MethodPost, "/recommend", `{"ingredients":["chicken","onion"],"top_n":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "A", resp.Recommendations[0].RecipeName)
	assert.Equal(t, "B", resp.Recommendations[1].RecipeName)
	assert.Equal(t, 100.0, resp.Recommendations[0].OverlapPercentage)
	assert.Equal(t, 100.0, resp.Recommendations[1].OverlapPercentage)
}

func TestHandleRecommend_DefaultTopN(t *testing.T) {
	r, _ := setup(t, true)

	resp := decode(t, serve(r, http.MethodPost, "/recommend", `{"ingredients":["chicken"]}`))
	assert.Equal(t, 2, resp.TopN)
	assert.Len(t, resp.Recommendations, 2)
}

func TestHandleRecommend_EmptyQuery(t *testing.T) {
	r, _ := setup(t, true)

	w := serve(r, http.MethodPost, "/recommend", `{"ingredients":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Recommendations)
}

func TestHandleRecommend_BadRequests(t *testing.T) {
	r, _ := setup(t, true)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"ingredients":`},
		{"unknown field", `{"ingredients":["a"],"limit":3}`},
		{"top_n above max", `{"ingredients":["a"],"top_n":4}`},
		{"top_n zero", `{"ingredients":["a"],"top_n":0}`},
		{"wrong type", `{"ingredients":"chicken"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodPost, "/recommend", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
		})
	}
}

func TestHandleRecommendQuery(t *testing.T) {
	r, _ := setup(t, true)

	w := serve(r, http.MethodGet, "/recommend?ingredients=chicken,+rice&top_n=1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, []string{"chicken", "rice"}, resp.Query)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "B", resp.Recommendations[0].RecipeName)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/recommend?ingredients=a&top_n=abc", "").Code)
}

func TestHandlers_NotReady(t *testing.T) {
	r, _ := setup(t, false)

	w := serve(r, http.MethodPost, "/recommend", `{"ingredients":["chicken"]}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "SERVICE_UNAVAILABLE")

	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/stats", "").Code)
}

func TestHandleReload(t *testing.T) {
	r, path := setup(t, true)

	w := serve(r, http.MethodPost, "/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reloaded"`)

	require.NoError(t, os.WriteFile(path, []byte("name\nA\n"), 0o644))
	w = serve(r, http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "CORPUS_FORMAT")

	// 舊引擎仍在服務
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/recommend", `{"ingredients":["rice"]}`).Code)

	w = serve(r, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recipes":3`)
}
