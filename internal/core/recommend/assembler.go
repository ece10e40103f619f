package recommend

import (
	"errors"

	"recipe-recommender/internal/core/corpus"
	"recipe-recommender/internal/pkg/common"
)

// assemble 依排名讀取食譜資料並計算重疊度；單筆失敗只略過該筆
func assemble(c *corpus.Corpus, query []string, ranked []Scored) *Result {
	result := &Result{Recommendations: make([]Recommendation, 0, len(ranked))}

	for _, s := range ranked {
		recipe := c.Recipes[s.Index]

		rec, err := buildRecommendation(recipe, query, s)
		if err != nil {
			common.LogRecordWarning("assemble", err)
			result.Skipped = append(result.Skipped, skippedFrom(s.Index, recipe, err))
			continue
		}
		result.Recommendations = append(result.Recommendations, rec)
	}
	return result
}

func buildRecommendation(recipe *corpus.Recipe, query []string, s Scored) (Recommendation, error) {
	nutrition, err := recipe.Nutrition()
	if err != nil {
		return Recommendation{}, err
	}
	steps, err := recipe.Steps()
	if err != nil {
		return Recommendation{}, err
	}

	ingredients := recipe.Ingredients()
	return Recommendation{
		RecipeIndex:       s.Index,
		RecipeName:        recipe.Name(),
		Ingredients:       ingredients,
		SimilarityScore:   s.Score,
		OverlapPercentage: Overlap(query, ingredients),
		Nutrition:         nutrition,
		NutritionFacts:    nutrition.Facts(),
		Steps:             steps,
	}, nil
}

func skippedFrom(index int, recipe *corpus.Recipe, err error) SkippedRecord {
	skipped := SkippedRecord{
		RecipeIndex: index,
		Row:         recipe.Row(),
		RecipeName:  recipe.Name(),
		Reason:      err.Error(),
	}
	var rpe *common.RecordParseError
	if errors.As(err, &rpe) {
		skipped.Field = rpe.Field
	}
	return skipped
}
