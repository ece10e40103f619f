package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"recipe-recommender/internal/core/corpus"
	"recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	corpusPath   string
	logLevel     string
	fetchTimeout time.Duration
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "recipes",
		Short:         "Recommend recipes from the ingredients you have",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logLevel == "" {
				return nil
			}
			return common.InitLogger(opts.logLevel, "")
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.corpusPath, "corpus", "", "recipe CSV path or http(s) URL (defaults to CORPUS_PATH)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "enable logging at this level (debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&opts.fetchTimeout, "fetch-timeout", 2*time.Minute, "timeout for downloading a remote corpus")

	root.AddCommand(newRecommendCmd(opts), newStatsCmd(opts))
	return root
}

// buildEngine 依旗標或設定載入語料
func (o *rootOptions) buildEngine(cmd *cobra.Command) (*recommend.Engine, error) {
	path := o.corpusPath
	opts := corpus.SourceOptions{FetchTimeout: o.fetchTimeout}
	if path == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Corpus.Path
		opts.MaxBytes = cfg.Corpus.MaxBytes
	}
	return recommend.Build(cmd.Context(), path, opts)
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	var (
		topN        int
		ingredients string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "recommend [ingredient...]",
		Short: "Rank recipes by similarity to the given ingredients",
		Example: `  recipes recommend --corpus RAW_recipes.csv chicken onion garlic
  recipes recommend --corpus RAW_recipes.csv --ingredients "chicken breast, bell pepper" --top-n 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := append(recommend.ParseIngredientInput(ingredients), args...)
			if len(query) == 0 {
				return fmt.Errorf("no ingredients given")
			}

			e, err := root.buildEngine(cmd)
			if err != nil {
				return err
			}
			result, err := e.Recommend(query, topN)
			if err != nil {
				return err
			}

			if asJSON {
				s, err := common.ToIndentedJSON(result)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
				return err
			}
			return printRecommendations(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().IntVarP(&topN, "top-n", "n", 5, "number of recipes to return")
	cmd.Flags().StringVarP(&ingredients, "ingredients", "i", "", "comma-separated ingredient list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func newStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Load the corpus and print index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.buildEngine(cmd)
			if err != nil {
				return err
			}
			s, err := common.ToIndentedJSON(e.Stats())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
}

func printRecommendations(w io.Writer, result *recommend.Result) error {
	if len(result.Recommendations) == 0 {
		_, err := fmt.Fprintln(w, "No recipes found.")
		return err
	}

	var b strings.Builder
	for i, r := range result.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.RecipeName)
		fmt.Fprintf(&b, "   similarity %.4f, ingredient overlap %.0f%%\n", r.SimilarityScore, r.OverlapPercentage)
		fmt.Fprintf(&b, "   ingredients: %s\n", strings.Join(r.Ingredients, ", "))

		facts := make([]string, 0, len(r.NutritionFacts))
		for _, f := range r.NutritionFacts {
			facts = append(facts, strings.TrimSpace(fmt.Sprintf("%s %.1f %s", f.Name, f.Value, f.Unit)))
		}
		fmt.Fprintf(&b, "   nutrition: %s\n", strings.Join(facts, ", "))

		for j, step := range r.Steps {
			fmt.Fprintf(&b, "   %d) %s\n", j+1, step)
		}
		b.WriteString("\n")
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(&b, "skipped %q (row %d): %s\n", s.RecipeName, s.Row, s.Reason)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
