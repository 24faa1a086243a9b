package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/mise/pkg/runner/pull"
	"tableflip.dev/mise/pkg/store"
)

func addSync(topLevel *cobra.Command) {
	var reset bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "reconcile the local collection with charm cloud",
		Long: "Sync pulls the recipe record stored under your charm identity. The\n" +
			"remote copy wins; a missing remote record is seeded from the local\n" +
			"collection. Pass --reset (or set MISE_RESET=1) to destructively\n" +
			"replace both the remote record and the local collection with the\n" +
			"built-in sample data.",
		Example: `
mise sync
mise sync --reset
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			if reset {
				cfg = forcedReset{cfg}
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			s := pull.Pull{Persistence: p, Config: cfg}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "destructively replace the remote and local data with the sample set")

	topLevel.AddCommand(cmd)
}

type forcedReset struct {
	store.Config
}

func (forcedReset) ResetRemote() bool {
	return true
}
