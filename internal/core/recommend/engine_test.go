package recommend

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recipe-recommender/internal/core/corpus"
	"recipe-recommender/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	goodNutrition = "[138.4, 10.0, 50.0, 3.0, 3.0, 19.0, 6.0]"
	goodSteps     = "['chop', 'simmer']"
)

func newCorpus(recipes ...*corpus.Recipe) *corpus.Corpus {
	return &corpus.Corpus{
		Source:  "fixture",
		Recipes: recipes,
		Stats:   corpus.LoadStats{Rows: len(recipes), Retained: len(recipes), Dropped: map[corpus.DropReason]int{}},
	}
}

func recipe(row int, name string, ingredients ...string) *corpus.Recipe {
	return corpus.NewRecipe(row, name, ingredients, goodNutrition, goodSteps)
}

func chickenFixture(t *testing.T) *Engine {
	t.Helper()
	e, err := New(newCorpus(
		recipe(1, "A", "chicken", "onion", "garlic"),
		recipe(2, "B", "chicken", "rice", "onion"),
	))
	require.NoError(t, err)
	return e
}

func TestNew_EmptyCorpus(t *testing.T) {
	_, err := New(newCorpus())
	require.Error(t, err)
	assert.True(t, common.IsEmptyCorpusError(err))
	assert.True(t, common.IsFatalCorpusError(err))

	_, err = New(nil)
	assert.True(t, common.IsEmptyCorpusError(err))
}

func TestNew_NoIndexableTerms(t *testing.T) {
	_, err := New(newCorpus(recipe(1, "letters", "a", "b", "c")))
	require.Error(t, err)
	assert.True(t, common.IsCorpusFormatError(err))
}

func TestRank_ChickenOnion(t *testing.T) {
	e := chickenFixture(t)

	ranked, err := e.Rank([]string{"chicken", "onion"}, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, 0, ranked[0].Index)
	assert.Equal(t, 1, ranked[1].Index)
	assert.Greater(t, ranked[0].Score, 0.0)
	assert.Greater(t, ranked[1].Score, 0.0)

	assert.Equal(t, 100.0, e.Overlap([]string{"chicken", "onion"}, 0))
	assert.Equal(t, 100.0, e.Overlap([]string{"chicken", "onion"}, 1))
}

func TestRank_RarerSharedTermRanksHigher(t *testing.T) {
	e := chickenFixture(t)

	ranked, err := e.Rank([]string{"chicken", "rice"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, ranked[0].Index)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRank_EmptyQuery(t *testing.T) {
	e := chickenFixture(t)
	for _, n := range []int{-1, 0, 1, 100} {
		ranked, err := e.Rank(nil, n)
		require.NoError(t, err)
		assert.Empty(t, ranked)
	}
}

func TestRank_InvalidTopN(t *testing.T) {
	e := chickenFixture(t)
	_, err := e.Rank([]string{"chicken"}, 0)
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestRank_UnseenTerms(t *testing.T) {
	e, err := New(newCorpus(
		recipe(1, "A", "chicken", "onion", "garlic"),
		recipe(2, "B", "chicken", "rice", "onion"),
		recipe(3, "C", "beef", "carrot", "potato"),
	))
	require.NoError(t, err)

	ranked, err := e.Rank([]string{"kale"}, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	for i, s := range ranked {
		assert.Equal(t, i, s.Index)
		assert.Zero(t, s.Score)
	}

	res, err := e.Recommend([]string{"kale"}, 2)
	require.NoError(t, err)
	for _, r := range res.Recommendations {
		assert.Zero(t, r.OverlapPercentage)
	}
}

func TestRank_Properties(t *testing.T) {
	e, err := New(newCorpus(
		recipe(1, "A", "chicken", "onion", "garlic"),
		recipe(2, "B", "chicken", "rice", "onion"),
		recipe(3, "C", "beef", "carrot", "onion"),
		recipe(4, "D", "tofu", "soy sauce", "ginger"),
		recipe(5, "E", "garlic", "onion", "chicken"),
	))
	require.NoError(t, err)

	queries := [][]string{
		{"onion"},
		{"chicken", "garlic"},
		{"soy sauce", "kale"},
		{"beef", "beef", "carrot"},
	}
	for _, q := range queries {
		for _, n := range []int{1, 3, 5, 50} {
			ranked, err := e.Rank(q, n)
			require.NoError(t, err)

			want := n
			if want > e.Len() {
				want = e.Len()
			}
			assert.Len(t, ranked, want)

			for i, s := range ranked {
				assert.GreaterOrEqual(t, s.Score, 0.0)
				assert.LessOrEqual(t, s.Score, 1.0)
				if i == 0 {
					continue
				}
				prev := ranked[i-1]
				assert.GreaterOrEqual(t, prev.Score, s.Score)
				if prev.Score == s.Score {
					assert.Less(t, prev.Index, s.Index)
				}
			}
		}
	}
}

func TestRank_IdenticalProportionsScoreOne(t *testing.T) {
	e := chickenFixture(t)
	ranked, err := e.Rank([]string{"chicken", "onion", "garlic"}, 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 0, ranked[0].Index)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
}

func TestRecommend_AssemblesRecords(t *testing.T) {
	e := chickenFixture(t)

	res, err := e.Recommend([]string{"chicken", "garlic"}, 5)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 2)
	assert.Empty(t, res.Skipped)

	top := res.Recommendations[0]
	assert.Equal(t, "A", top.RecipeName)
	assert.Equal(t, []string{"chicken", "onion", "garlic"}, top.Ingredients)
	assert.Equal(t, 100.0, top.OverlapPercentage)
	assert.Equal(t, []string{"chop", "simmer"}, top.Steps)
	assert.Equal(t, 138.4, top.Nutrition[corpus.NutritionCalories])
	assert.NotEmpty(t, top.NutritionFacts)

	assert.Equal(t, 50.0, res.Recommendations[1].OverlapPercentage)
}

func TestRecommend_SkipsMalformedRecord(t *testing.T) {
	e, err := New(newCorpus(
		corpus.NewRecipe(1, "broken", []string{"chicken", "onion", "garlic"}, "[1, 2]", goodSteps),
		recipe(2, "B", "chicken", "rice", "onion"),
	))
	require.NoError(t, err)

	res, err := e.Recommend([]string{"chicken", "garlic"}, 2)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "B", res.Recommendations[0].RecipeName)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "broken", res.Skipped[0].RecipeName)
	assert.Equal(t, "nutrition", res.Skipped[0].Field)
	assert.Equal(t, 0, res.Skipped[0].RecipeIndex)
}

func TestBuild_DeterministicAcrossReloads(t *testing.T) {
	header := "name,id,minutes,contributor_id,submitted,tags,nutrition,n_steps,steps,description,ingredients,n_ingredients"
	rows := []string{
		`A,1,10,1,2005-01-01,[],"` + goodNutrition + `",2,"` + goodSteps + `",d,"['chicken', 'onion', 'garlic']",3`,
		`B,2,10,1,2005-01-01,[],"` + goodNutrition + `",2,"` + goodSteps + `",d,"['chicken', 'rice', 'onion']",3`,
		`C,3,10,1,2005-01-01,[],"` + goodNutrition + `",2,"` + goodSteps + `",d,"['beef', 'carrot', 'onion']",3`,
	}
	path := filepath.Join(t.TempDir(), "recipes.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"\n"+strings.Join(rows, "\n")+"\n"), 0o644))

	first, err := Build(context.Background(), path, corpus.SourceOptions{})
	require.NoError(t, err)
	second, err := Build(context.Background(), path, corpus.SourceOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, first.Generation(), second.Generation())
	for i := 0; i < first.Len(); i++ {
		assert.Equal(t, first.index.Vector(i), second.index.Vector(i))
	}

	q := []string{"onion", "rice"}
	a, err := first.Rank(q, 3)
	require.NoError(t, err)
	b, err := second.Rank(q, 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	stats := first.Stats()
	assert.Equal(t, 3, stats.Recipes)
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, path, stats.Source)
	assert.Positive(t, stats.VocabularySize)
}

func TestBuild_MissingSource(t *testing.T) {
	_, err := Build(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), corpus.SourceOptions{})
	require.Error(t, err)
	assert.True(t, common.IsCorpusFormatError(err))
}
