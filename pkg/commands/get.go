package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mise/pkg/commands/options"
	"tableflip.dev/mise/pkg/runner/show"
	"tableflip.dev/mise/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	so := &options.SelectionOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "get [recipe]",
		Short: "get recipes or one recipe in full",
		Example: `
mise get
mise get 唐揚げ
mise get --category お肉
mise get --favorites
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				so.Recipe = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := show.Show{
				ShowID:      io.ShowID,
				Category:    so.Category,
				Favorites:   so.Favorites,
				Recipe:      so.Recipe,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddCategoryArgs(cmd, so)
	options.AddRecipeArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
