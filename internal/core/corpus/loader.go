package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// 資料來源的固定欄位位置
const (
	ColumnName        = 0
	ColumnNutrition   = 6
	ColumnSteps       = 8
	ColumnIngredients = 10
	MinColumns        = 11

	// MinIngredients 每筆食譜至少需要的不同食材數
	MinIngredients = 3
)

// DropReason 食譜被排除的原因
type DropReason string

const (
	DropMissingIngredients    DropReason = "missing_ingredients"
	DropUnparsableIngredients DropReason = "unparsable_ingredients"
	DropTooFewIngredients     DropReason = "too_few_ingredients"
	DropDuplicate             DropReason = "duplicate"
)

// LoadStats 載入統計
type LoadStats struct {
	Rows     int                `json:"rows"`
	Retained int                `json:"retained"`
	Dropped  map[DropReason]int `json:"dropped"`
}

// Corpus 過濾後的食譜集合，順序即為後續索引空間
type Corpus struct {
	Source   string
	Recipes  []*Recipe
	Stats    LoadStats
	Warnings []error
}

// Len 食譜數量
func (c *Corpus) Len() int {
	return len(c.Recipes)
}

// IngredientTexts 依序回傳所有食譜的正規化食材文字
func (c *Corpus) IngredientTexts() []string {
	texts := make([]string, len(c.Recipes))
	for i, r := range c.Recipes {
		texts[i] = r.IngredientText()
	}
	return texts
}

// Load 從 CSV 讀取並過濾食譜
//
// 過濾順序：缺少食材欄位、食材欄位無法解析、不同食材少於 3 項、食材清單重複（保留第一筆）。
func Load(r io.Reader, source string) (*Corpus, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, common.NewCorpusFormatError(source, "missing header row", nil)
		}
		return nil, common.NewCorpusFormatError(source, "unreadable header row", err)
	}
	if len(header) < MinColumns {
		return nil, common.NewCorpusFormatError(source,
			fmt.Sprintf("expected at least %d columns, got %d", MinColumns, len(header)), nil)
	}

	c := &Corpus{
		Source: source,
		Stats:  LoadStats{Dropped: make(map[DropReason]int)},
	}
	seen := make(map[string]struct{})

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, common.NewCorpusFormatError(source, "unreadable row", err)
		}
		c.Stats.Rows++
		row := c.Stats.Rows

		recipe, reason, err := parseRow(row, record)
		if err != nil {
			c.Warnings = append(c.Warnings, err)
			common.LogRecordWarning("load", err)
		}
		if reason != "" {
			c.Stats.Dropped[reason]++
			continue
		}

		key := strings.Join(recipe.ingredients, "\x1f")
		if _, dup := seen[key]; dup {
			c.Stats.Dropped[DropDuplicate]++
			continue
		}
		seen[key] = struct{}{}
		c.Recipes = append(c.Recipes, recipe)
	}

	c.Stats.Retained = len(c.Recipes)
	common.LogInfo("Corpus loaded",
		zap.String("source", source),
		zap.Int("rows", c.Stats.Rows),
		zap.Int("retained", c.Stats.Retained),
		zap.Int("warnings", len(c.Warnings)),
	)
	return c, nil
}

// parseRow 驗證單列資料，回傳食譜或排除原因
func parseRow(row int, record []string) (*Recipe, DropReason, error) {
	if len(record) <= ColumnIngredients || strings.TrimSpace(record[ColumnIngredients]) == "" {
		return nil, DropMissingIngredients, nil
	}

	name := field(record, ColumnName)
	ingredients, err := ParseStringList(record[ColumnIngredients])
	if err != nil {
		return nil, DropUnparsableIngredients, common.NewRecordParseError(row, name, "ingredients", err)
	}
	if distinctCount(ingredients) < MinIngredients {
		return nil, DropTooFewIngredients, nil
	}

	return NewRecipe(row, name, ingredients, field(record, ColumnNutrition), field(record, ColumnSteps)), "", nil
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}

func distinctCount(items []string) int {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return len(set)
}
