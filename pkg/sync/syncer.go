package sync

import (
	"context"
	gosync "sync"

	"tableflip.dev/mise/pkg/app"
	"tableflip.dev/mise/pkg/recipe"
	"tableflip.dev/mise/pkg/store"
)

// Syncer keeps the machine's collection and a remote record in step.
// Pulls happen when an identity signs in, pushes happen on every data
// change once the first pull resolved. Errors are reported through the
// OnError callback and never stop the app.
type Syncer struct {
	machine *app.Machine
	local   store.Persistence
	remote  Remote
	cfg     store.Config

	mu      gosync.Mutex
	ready   bool
	lastErr error
	onError func(error)
}

// New wires a syncer. local may be nil when no disk copy should be kept.
func New(machine *app.Machine, local store.Persistence, remote Remote, cfg store.Config) *Syncer {
	return &Syncer{machine: machine, local: local, remote: remote, cfg: cfg}
}

// OnError registers the error sink. Without one, sync failures are
// dropped silently.
func (s *Syncer) OnError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// Run consumes identity events until the context ends or the channel
// closes. Sign-in triggers a pull, sign-out stops pushes.
func (s *Syncer) Run(ctx context.Context, events <-chan IdentityEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.SignedIn {
				s.resolve(ctx)
			} else {
				s.setReady(false)
			}
		}
	}
}

// Observe returns the machine observer that pushes data changes. Pushes
// are fire-and-forget: concurrent writes race and the last one to
// resolve wins, which is fine for a whole-record store.
func (s *Syncer) Observe() app.Observer {
	return func(st app.State, dataChanged bool) {
		if !dataChanged || !s.isReady() {
			return
		}
		data := st.Data()
		go func() {
			if err := s.remote.Merge(context.Background(), data); err != nil {
				s.fail(err)
			}
		}()
	}
}

// Pull fetches the remote record once, loads it into the machine, and
// saves it locally. An absent record is seeded from the local data
// instead. Used by the one-shot sync command.
func (s *Syncer) Pull(ctx context.Context) error {
	s.resolve(ctx)
	return s.lastError()
}

// resolve is the sign-in reconciliation: the remote copy wins, an absent
// remote is seeded from local, and a configured reset overwrites the
// remote with fresh seed data and loads that seed everywhere. Ready is
// set once the flow resolves, handled failures included, so a failed
// pull does not suppress pushes for the rest of the session.
func (s *Syncer) resolve(ctx context.Context) {
	s.clearError()
	defer s.setReady(true)

	if s.cfg != nil && s.cfg.ResetRemote() {
		seed := recipe.Seed()
		if err := s.remote.Replace(ctx, seed); err != nil {
			s.fail(err)
			return
		}
		s.machine.Dispatch(app.LoadData{Data: seed})
		if s.local != nil {
			if err := s.local.Save(ctx, seed); err != nil {
				s.fail(err)
			}
		}
		return
	}

	raw, ok, err := s.remote.Fetch(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	if !ok {
		if err := s.remote.Replace(ctx, s.machine.State().Data()); err != nil {
			s.fail(err)
		}
		return
	}

	data := recipe.NormalizeJSON(raw)
	// Load before marking ready so the push observer does not echo the
	// remote data straight back.
	s.machine.Dispatch(app.LoadData{Data: data})
	if s.local != nil {
		if err := s.local.Save(ctx, data); err != nil {
			s.fail(err)
		}
	}
}

func (s *Syncer) setReady(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = v
}

func (s *Syncer) isReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *Syncer) fail(err error) {
	s.mu.Lock()
	s.lastErr = err
	fn := s.onError
	s.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

func (s *Syncer) clearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

func (s *Syncer) lastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
