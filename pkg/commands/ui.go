package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/mise/pkg/store"
	teaui "tableflip.dev/mise/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
mise ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			return teaui.Run(context.Background(), p, cfg)
		},
	}

	topLevel.AddCommand(cmd)
}
