package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/mise/pkg/commands/options"
	"tableflip.dev/mise/pkg/runner/category"
	"tableflip.dev/mise/pkg/store"
)

func addCategory(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	var (
		add    string
		rename []string
		remove string
	)

	cmd := &cobra.Command{
		Use:   "category",
		Short: "list and manage recipe categories",
		Example: `
mise category
mise category --add おやつ
mise category --rename お肉,肉料理
mise category --rm おやつ
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			c := category.Category{
				ShowID:      io.ShowID,
				Add:         add,
				Rename:      rename,
				Remove:      remove,
				Persistence: p,
			}
			return c.Do(context.Background())
		},
	}

	cmd.Flags().StringVar(&add, "add", "", "Add a category with the given name.")
	cmd.Flags().StringSliceVar(&rename, "rename", nil, "Rename a category: old,new.")
	cmd.Flags().StringVar(&remove, "rm", "", "Delete a category; its recipes move to the fallback category.")
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
