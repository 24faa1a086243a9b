package sync

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	gosync "sync"
	"testing"
	"time"

	"tableflip.dev/mise/pkg/app"
	"tableflip.dev/mise/pkg/recipe"
	"tableflip.dev/mise/pkg/store"
)

type fakeRemote struct {
	mu       gosync.Mutex
	raw      []byte
	fetchErr error
	replaces int
	merged   chan recipe.AppData
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{merged: make(chan recipe.AppData, 8)}
}

func (f *fakeRemote) Fetch(_ context.Context) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, false, f.fetchErr
	}
	if f.raw == nil {
		return nil, false, nil
	}
	return f.raw, true, nil
}

func (f *fakeRemote) Merge(_ context.Context, data recipe.AppData) error {
	f.merged <- data
	return nil
}

func (f *fakeRemote) Replace(_ context.Context, data recipe.AppData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaces++
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	f.raw = raw
	return nil
}

type fakeLocal struct {
	saved recipe.AppData
}

func (f *fakeLocal) Load(_ context.Context) recipe.AppData { return f.saved }

func (f *fakeLocal) Save(_ context.Context, data recipe.AppData) error {
	f.saved = data
	return nil
}

func (f *fakeLocal) Watch(_ context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	close(ch)
	return ch, nil
}

type fakeConfig struct {
	path  string
	reset bool
}

func (f fakeConfig) BasePath() string  { return f.path }
func (f fakeConfig) ResetRemote() bool { return f.reset }

func localData() recipe.AppData {
	return recipe.AppData{
		Categories: []recipe.Category{
			{ID: "cat-favorites", Name: recipe.FavoritesName},
			{ID: "cat-soup", Name: "スープ"},
		},
		Recipes: []recipe.Recipe{{
			ID:          "r-miso",
			Title:       "味噌汁",
			CategoryID:  "cat-soup",
			Ingredients: []recipe.IngredientLine{{ID: "i-1", Name: "豆腐", AmountText: "半丁"}},
			Steps:       []recipe.Step{{ID: "s-1", Title: "煮る"}},
		}},
	}
}

func TestPullSeedsAbsentRemote(t *testing.T) {
	remote := newFakeRemote()
	m := app.NewMachine(app.NewState(localData()))
	s := New(m, nil, remote, fakeConfig{})

	if err := s.Pull(context.Background()); err != nil {
		t.Fatalf("pull: %v", err)
	}
	if remote.replaces != 1 {
		t.Fatalf("replaces = %d, want the local data seeded once", remote.replaces)
	}
	var seeded recipe.AppData
	if err := json.Unmarshal(remote.raw, &seeded); err != nil {
		t.Fatalf("unmarshal seeded record: %v", err)
	}
	if !reflect.DeepEqual(seeded, localData()) {
		t.Fatalf("seeded record = %+v", seeded)
	}
}

func TestPullRemoteWins(t *testing.T) {
	remote := newFakeRemote()
	remoteData := localData()
	remoteData.Recipes[0].Title = "豚汁"
	if err := remote.Replace(context.Background(), remoteData); err != nil {
		t.Fatalf("prime remote: %v", err)
	}
	remote.replaces = 0

	m := app.NewMachine(app.NewState(localData()))
	s := New(m, nil, remote, fakeConfig{})
	if err := s.Pull(context.Background()); err != nil {
		t.Fatalf("pull: %v", err)
	}
	r, ok := recipe.RecipeByID(m.State().Recipes, "r-miso")
	if !ok || r.Title != "豚汁" {
		t.Fatalf("recipe after pull = %+v, want the remote title", r)
	}
	if remote.replaces != 0 {
		t.Fatal("pull must not overwrite an existing remote record")
	}
}

func TestResetReseedsRemote(t *testing.T) {
	remote := newFakeRemote()
	remoteData := localData()
	remoteData.Recipes[0].Title = "豚汁"
	if err := remote.Replace(context.Background(), remoteData); err != nil {
		t.Fatalf("prime remote: %v", err)
	}

	local := &fakeLocal{}
	m := app.NewMachine(app.NewState(localData()))
	s := New(m, local, remote, fakeConfig{reset: true})
	if err := s.Pull(context.Background()); err != nil {
		t.Fatalf("pull: %v", err)
	}

	seed := recipe.Seed()
	var after recipe.AppData
	if err := json.Unmarshal(remote.raw, &after); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(after, seed) {
		t.Fatalf("remote categories = %d, want the seed catalog (%d)",
			len(after.Categories), len(seed.Categories))
	}
	if !reflect.DeepEqual(m.State().Data(), seed) {
		t.Fatal("machine not loaded with the seed after reset")
	}
	if !reflect.DeepEqual(local.saved, seed) {
		t.Fatal("local store not rewritten with the seed after reset")
	}
}

func TestPushesResumeAfterFailedPull(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchErr = errors.New("record unavailable")
	m := app.NewMachine(app.NewState(localData()))
	s := New(m, nil, remote, fakeConfig{})
	m.Subscribe(s.Observe())

	if err := s.Pull(context.Background()); err == nil {
		t.Fatal("expected the fetch failure surfaced")
	}

	m.Dispatch(app.ToggleFavorite{ID: "r-miso"})
	select {
	case <-remote.merged:
	case <-time.After(time.Second):
		t.Fatal("no push after the handled pull failure")
	}
}

func TestPushesOnlyAfterFirstResolve(t *testing.T) {
	remote := newFakeRemote()
	m := app.NewMachine(app.NewState(localData()))
	s := New(m, nil, remote, fakeConfig{})
	m.Subscribe(s.Observe())

	m.Dispatch(app.ToggleFavorite{ID: "r-miso"})
	select {
	case <-remote.merged:
		t.Fatal("push before the first pull resolved")
	case <-time.After(50 * time.Millisecond):
	}

	if err := s.Pull(context.Background()); err != nil {
		t.Fatalf("pull: %v", err)
	}
	m.Dispatch(app.ToggleFavorite{ID: "r-miso"})
	select {
	case data := <-remote.merged:
		if data.Recipes[0].IsFavorite {
			t.Fatalf("pushed data = %+v, want the second toggle", data.Recipes[0])
		}
	case <-time.After(time.Second):
		t.Fatal("no push after resolve")
	}
}

func TestRunStopsPushesOnSignOut(t *testing.T) {
	remote := newFakeRemote()
	m := app.NewMachine(app.NewState(localData()))
	s := New(m, nil, remote, fakeConfig{})
	m.Subscribe(s.Observe())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan IdentityEvent)
	done := make(chan struct{})
	go func() {
		s.Run(ctx, events)
		close(done)
	}()

	events <- IdentityEvent{UID: "u-1", SignedIn: true}
	m.Dispatch(app.ToggleFavorite{ID: "r-miso"})
	select {
	case <-remote.merged:
	case <-time.After(time.Second):
		t.Fatal("no push while signed in")
	}

	events <- IdentityEvent{SignedIn: false}
	// The sign-out is handled on the Run goroutine; wait for it to land.
	for i := 0; i < 100 && s.isReady(); i++ {
		time.Sleep(5 * time.Millisecond)
	}
	m.Dispatch(app.ToggleFavorite{ID: "r-miso"})
	select {
	case <-remote.merged:
		t.Fatal("push after sign-out")
	case <-time.After(50 * time.Millisecond):
	}

	close(events)
	<-done
}

func TestSanitizeDropsNulls(t *testing.T) {
	doc := map[string]any{
		"title":    "味噌汁",
		"imageUrl": nil,
		"steps":    []any{map[string]any{"title": "煮る", "note": nil}, nil},
		"empty":    "",
	}
	got, ok := Sanitize(doc).(map[string]any)
	if !ok {
		t.Fatal("sanitized document is not an object")
	}
	if _, present := got["imageUrl"]; present {
		t.Fatal("null field survived")
	}
	if got["empty"] != "" {
		t.Fatal("empty string must pass through")
	}
	steps, _ := got["steps"].([]any)
	if len(steps) != 1 {
		t.Fatalf("steps = %v, want the nil element dropped", steps)
	}
	if step, _ := steps[0].(map[string]any); len(step) != 1 || step["title"] != "煮る" {
		t.Fatalf("step = %v", steps[0])
	}
}
