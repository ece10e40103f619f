package corpus

import (
	"strings"
	"testing"

	"recipe-recommender/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	nutrition = "[100.0, 1.0, 2.0, 3.0, 4.0, 5.0, 6.0]"
	steps     = "['chop', 'cook']"
)

func TestLoad_FiltersInOrder(t *testing.T) {
	doc := csvDoc(
		csvRow("A", nutrition, steps, "['chicken', 'onion', 'garlic']"),
		csvRow("missing", nutrition, steps, ""),
		csvRow("two items", nutrition, steps, "['salt', 'water']"),
		csvRow("repeated items", nutrition, steps, "['salt', 'salt', 'water']"),
		csvRow("broken", nutrition, steps, "['salt', 'water'"),
		csvRow("B", nutrition, steps, "['chicken', 'rice', 'onion']"),
		csvRow("A again", nutrition, steps, `["chicken", "onion", "garlic"]`),
	)

	c, err := Load(strings.NewReader(doc), "test.csv")
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, "A", c.Recipes[0].Name())
	assert.Equal(t, "B", c.Recipes[1].Name())
	assert.Equal(t, 1, c.Recipes[0].Row())
	assert.Equal(t, 6, c.Recipes[1].Row())

	assert.Equal(t, 7, c.Stats.Rows)
	assert.Equal(t, 2, c.Stats.Retained)
	assert.Equal(t, 1, c.Stats.Dropped[DropMissingIngredients])
	assert.Equal(t, 2, c.Stats.Dropped[DropTooFewIngredients])
	assert.Equal(t, 1, c.Stats.Dropped[DropUnparsableIngredients])
	assert.Equal(t, 1, c.Stats.Dropped[DropDuplicate])

	require.Len(t, c.Warnings, 1)
	assert.True(t, common.IsRecordParseError(c.Warnings[0]))
}

func TestLoad_RetainedRecordsInvariant(t *testing.T) {
	doc := csvDoc(
		csvRow("1", nutrition, steps, "['a', 'b', 'c']"),
		csvRow("2", nutrition, steps, "['a', 'b', 'c']"),
		csvRow("3", nutrition, steps, "['a', 'b', 'c', 'd']"),
		csvRow("4", nutrition, steps, "['x', 'y']"),
	)
	c, err := Load(strings.NewReader(doc), "test.csv")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, r := range c.Recipes {
		assert.GreaterOrEqual(t, len(r.Ingredients()), MinIngredients)
		key := strings.Join(r.Ingredients(), "|")
		assert.False(t, seen[key], "duplicate ingredient list %q", key)
		seen[key] = true
	}
}

func TestLoad_NormalizedText(t *testing.T) {
	doc := csvDoc(csvRow("A", nutrition, steps, "['Chicken Breast', ' onion', 'garlic']"))
	c, err := Load(strings.NewReader(doc), "test.csv")
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Chicken Breast  onion garlic", c.Recipes[0].IngredientText())
	assert.Equal(t, []string{"Chicken Breast  onion garlic"}, c.IngredientTexts())
}

func TestLoad_ShortRowCountsAsMissing(t *testing.T) {
	doc := testHeader + "\n" + "short,1,2\n" + csvRow("A", nutrition, steps, "['a', 'b', 'c']") + "\n"
	c, err := Load(strings.NewReader(doc), "test.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Stats.Dropped[DropMissingIngredients])
}

func TestLoad_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty input", ""},
		{"too few columns", "name,id,ingredients\nA,1,\"['a','b','c']\"\n"},
		{"malformed csv", testHeader + "\n\"unterminated,1,2,3,4,5,6,7,8,9,10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), "bad.csv")
			require.Error(t, err)
			assert.True(t, common.IsCorpusFormatError(err), "got %v", err)
		})
	}
}

func TestLoad_NoSurvivorsIsNotALoadError(t *testing.T) {
	doc := csvDoc(csvRow("A", nutrition, steps, "['a', 'b']"))
	c, err := Load(strings.NewReader(doc), "test.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestRecipe_LazyFields(t *testing.T) {
	r := NewRecipe(3, "Soup", []string{"a", "b", "c"}, "[1, 2]", "not a list")

	_, err := r.Nutrition()
	require.Error(t, err)
	assert.True(t, common.IsRecordParseError(err))

	_, err = r.Steps()
	require.Error(t, err)
	assert.True(t, common.IsRecordParseError(err))

	ingredients := r.Ingredients()
	ingredients[0] = "changed"
	assert.Equal(t, "a", r.Ingredients()[0])
}
