package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"recipe-recommender/internal/core/corpus"
	"recipe-recommender/internal/core/vector"
	"recipe-recommender/internal/pkg/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine 推薦引擎：過濾後的語料與其向量索引，建立後唯讀，可供多個 goroutine 同時查詢
type Engine struct {
	corpus        *corpus.Corpus
	index         *vector.Index
	generation    string
	builtAt       time.Time
	buildDuration time.Duration
}

// Build 從資料來源載入語料並建立引擎
func Build(ctx context.Context, source string, opts corpus.SourceOptions) (*Engine, error) {
	start := time.Now()

	c, err := corpus.LoadSource(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, err := New(c)
	if err != nil {
		return nil, err
	}
	e.buildDuration = time.Since(start)

	common.LogInfo("Recommendation engine ready",
		zap.String("source", source),
		zap.String("generation", e.generation),
		zap.Int("recipes", c.Len()),
		zap.Int("vocabulary", e.index.Model().VocabularySize()),
		zap.Duration("duration", e.buildDuration),
	)
	return e, nil
}

// New 以已載入的語料建立引擎
func New(c *corpus.Corpus) (*Engine, error) {
	if c == nil || c.Len() == 0 {
		source, rows := "", 0
		if c != nil {
			source, rows = c.Source, c.Stats.Rows
		}
		return nil, common.NewEmptyCorpusError(source, rows)
	}

	start := time.Now()
	ix, err := vector.BuildIndex(c.IngredientTexts())
	if err != nil {
		if errors.Is(err, vector.ErrEmptyVocabulary) {
			return nil, common.NewCorpusFormatError(c.Source, "no indexable ingredient terms", err)
		}
		return nil, fmt.Errorf("build vector index: %w", err)
	}

	return &Engine{
		corpus:        c,
		index:         ix,
		generation:    uuid.NewString(),
		builtAt:       time.Now(),
		buildDuration: time.Since(start),
	}, nil
}

// Generation 引擎世代 ID，每次建立都不同
func (e *Engine) Generation() string {
	return e.generation
}

// Corpus 引擎使用的語料
func (e *Engine) Corpus() *corpus.Corpus {
	return e.corpus
}

// Len 食譜數量
func (e *Engine) Len() int {
	return e.corpus.Len()
}

// Rank 依餘弦相似度排序，回傳前 topN 筆
//
// 查詢為空時回傳空結果；分數相同時語料索引較小者在前；查詢詞彙都不在詞彙表時分數皆為 0，依語料順序回傳。
func (e *Engine) Rank(ingredients []string, topN int) ([]Scored, error) {
	if len(ingredients) == 0 {
		return []Scored{}, nil
	}
	if topN < 1 {
		return nil, common.NewValidationError(fmt.Sprintf("top_n must be at least 1, got %d", topN))
	}

	q := e.index.Embed(corpus.JoinIngredients(ingredients))
	scores := e.index.Similarities(q)

	ranked := make([]Scored, len(scores))
	for i, s := range scores {
		ranked[i] = Scored{Index: i, Score: s}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})

	if topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked, nil
}

// Overlap 查詢與第 i 筆食譜的重疊百分比
func (e *Engine) Overlap(ingredients []string, index int) float64 {
	return Overlap(ingredients, e.corpus.Recipes[index].Ingredients())
}

// Recommend 排名並組裝推薦結果
func (e *Engine) Recommend(ingredients []string, topN int) (*Result, error) {
	ranked, err := e.Rank(ingredients, topN)
	if err != nil {
		return nil, err
	}
	return assemble(e.corpus, ingredients, ranked), nil
}

// Stats 引擎統計
func (e *Engine) Stats() Stats {
	dropped := make(map[corpus.DropReason]int, len(e.corpus.Stats.Dropped))
	for k, v := range e.corpus.Stats.Dropped {
		dropped[k] = v
	}
	return Stats{
		Source:          e.corpus.Source,
		Generation:      e.generation,
		Recipes:         e.corpus.Len(),
		VocabularySize:  e.index.Model().VocabularySize(),
		Rows:            e.corpus.Stats.Rows,
		Dropped:         dropped,
		LoadWarnings:    len(e.corpus.Warnings),
		BuiltAt:         e.builtAt,
		BuildDurationMs: e.buildDuration.Milliseconds(),
	}
}
