// Package pull reconciles the local collection with the charm cloud copy
// once and exits.
package pull

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/mise/pkg/app"
	"tableflip.dev/mise/pkg/store"
	"tableflip.dev/mise/pkg/sync"
)

type Pull struct {
	Persistence store.Persistence
	Config      store.Config
}

func (n *Pull) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not sync, no persistence")
	}

	remote, err := sync.OpenCharm()
	if err != nil {
		return err
	}
	defer func() { _ = remote.Close() }()

	id, err := remote.Identity()
	if err != nil {
		return err
	}

	data := n.Persistence.Load(ctx)
	machine := app.NewMachine(app.NewState(data))
	s := sync.New(machine, n.Persistence, remote, n.Config)
	if err := s.Pull(ctx); err != nil {
		return err
	}

	after := machine.State().Data()
	faint := color.New(color.Faint)
	_, _ = faint.Printf("synced as %s\n", id)
	fmt.Printf("%d categories, %d recipes\n", len(after.Categories), len(after.Recipes))
	return nil
}
