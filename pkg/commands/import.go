package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/mise/pkg/runner/importer"
	"tableflip.dev/mise/pkg/store"
)

func addImport(topLevel *cobra.Command) {
	var (
		title     string
		category  string
		sourceURL string
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "import a recipe from pasted text",
		Long: "Import reads free-form recipe text, finds the ingredient and step\n" +
			"sections, and stores the result as a new recipe. Reads stdin when no\n" +
			"file is given.",
		Example: `
pbpaste | mise import --title 唐揚げ --category お肉
mise import recipe.txt --title 唐揚げ
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			i := importer.Import{
				Title:       title,
				Category:    category,
				SourceURL:   sourceURL,
				Path:        path,
				In:          cmd.InOrStdin(),
				Persistence: p,
			}
			return i.Do(context.Background())
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Title for the imported recipe.")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category name; created if missing.")
	cmd.Flags().StringVar(&sourceURL, "source", "", "Source URL to record on the recipe.")

	topLevel.AddCommand(cmd)
}
