// Package teaui hosts the Bubble Tea program for the mise TUI.
package teaui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mise/pkg/app"
	"tableflip.dev/mise/pkg/recipe"
	"tableflip.dev/mise/pkg/store"
	"tableflip.dev/mise/pkg/sync"
	"tableflip.dev/mise/pkg/tui/theme"
)

// Model states and actions
type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeHelp
)

// rowKind identifies what an editor row edits.
type rowKind int

const (
	rowTitle rowKind = iota
	rowSource
	rowImage
	rowCategory
	rowIngredient
	rowStep
)

type editRow struct {
	kind rowKind
	id   string
}

// insertTarget records which row and field the text input feeds.
type insertTarget struct {
	kind  rowKind
	id    string
	field int // 0: name/title, 1: amount/note
}

// category item for the catalog list
type categoryItem struct {
	c     recipe.Category
	count int
}

func (c categoryItem) Title() string       { return fmt.Sprintf("%s (%d)", c.c.Name, c.count) }
func (c categoryItem) Description() string { return "" }
func (c categoryItem) FilterValue() string { return c.c.Name }

// recipe item for list views
type recipeItem struct {
	r   recipe.Recipe
	cat string
}

func (it recipeItem) Title() string {
	mark := "  "
	if it.r.IsFavorite {
		mark = "★ "
	}
	if it.cat != "" {
		return fmt.Sprintf("%s%s · %s", mark, it.r.Title, it.cat)
	}
	return mark + it.r.Title
}
func (it recipeItem) Description() string { return "" }
func (it recipeItem) FilterValue() string { return it.r.Title }

// Model contains UI state
type Model struct {
	machine     *app.Machine
	persistence store.Persistence
	ctx         context.Context
	cancel      context.CancelFunc
	mode        mode

	catList list.Model
	recList list.Model

	input  textinput.Model
	insert insertTarget

	status string

	editIndex  int
	awaitingDD bool
	lastDTime  time.Time

	termWidth  int
	termHeight int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	theme theme.Theme
}

// New creates a new UI model over the state machine.
func New(machine *app.Machine, p store.Persistence) Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	l1 := list.New([]list.Item{}, d, 40, 20)
	l1.Title = "Categories"
	l1.SetShowHelp(false)
	l1.SetShowStatusBar(false)

	l2 := list.New([]list.Item{}, d, 60, 20)
	l2.Title = "Recipes"
	l2.SetShowHelp(false)
	l2.SetShowStatusBar(false)

	ti := textinput.New()
	ti.Placeholder = "Type here"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("212")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		machine:     machine,
		persistence: p,
		ctx:         ctx,
		cancel:      cancel,
		mode:        modeNormal,
		catList:     l1,
		recList:     l2,
		input:       ti,
		status:      "j/k move, enter open, n new, i edit, f favorite, ? help",
		theme:       theme.Default(),
	}
	m.rebuild(machine.State())
	return m
}

// Init starts the store watcher.
func (m Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.persistence)
}

// messages
type errMsg struct{ err error }
type dataReloadedMsg struct{ data recipe.AppData }

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct{}
type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, p store.Persistence) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := p.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if _, ok := <-ch; ok {
			return watchEventMsg{}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) reloadCmd() tea.Cmd {
	p := m.persistence
	ctx := m.ctx
	return func() tea.Msg {
		return dataReloadedMsg{data: p.Load(ctx)}
	}
}

// dispatch feeds one action to the machine, refreshes the lists, and
// returns a save command when the durable data changed.
func (m *Model) dispatch(a app.Action) tea.Cmd {
	before := m.machine.State().Data()
	st := m.machine.Dispatch(a)
	m.rebuild(st)
	after := st.Data()
	if m.persistence == nil || dataEqual(before, after) {
		return nil
	}
	p := m.persistence
	ctx := m.ctx
	return func() tea.Msg {
		if err := p.Save(ctx, after); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func dataEqual(a, b recipe.AppData) bool {
	if len(a.Categories) != len(b.Categories) || len(a.Recipes) != len(b.Recipes) {
		return false
	}
	for i := range a.Categories {
		if a.Categories[i] != b.Categories[i] {
			return false
		}
	}
	for i := range a.Recipes {
		if !recipeEqual(a.Recipes[i], b.Recipes[i]) {
			return false
		}
	}
	return true
}

func recipeEqual(a, b recipe.Recipe) bool {
	if a.ID != b.ID || a.Title != b.Title || a.CategoryID != b.CategoryID ||
		a.ImageURL != b.ImageURL || a.SourceURL != b.SourceURL ||
		a.IsFavorite != b.IsFavorite || a.LastRunAt != b.LastRunAt ||
		len(a.Ingredients) != len(b.Ingredients) || len(a.Steps) != len(b.Steps) {
		return false
	}
	for i := range a.Ingredients {
		if a.Ingredients[i] != b.Ingredients[i] {
			return false
		}
	}
	for i := range a.Steps {
		if a.Steps[i] != b.Steps[i] {
			return false
		}
	}
	return true
}

// rebuild projects the machine state into the list models.
func (m *Model) rebuild(st app.State) {
	items := make([]list.Item, 0, len(st.Categories))
	selCat := 0
	for i, c := range st.Categories {
		items = append(items, categoryItem{c: c, count: len(st.RecipesIn(c.ID))})
		if c.ID == st.SelectedCategoryID {
			selCat = i
		}
	}
	m.catList.SetItems(items)
	if len(items) > 0 {
		m.catList.Select(selCat)
	}

	var recipes []recipe.Recipe
	switch st.View {
	case app.ViewCategoryList:
		recipes = st.RecipesIn(st.SelectedCategoryID)
		if cat, ok := st.SelectedCategory(); ok {
			m.recList.Title = cat.Name
		}
	default:
		recipes = st.AllRecipes()
		m.recList.Title = "All recipes"
	}
	recItems := make([]list.Item, 0, len(recipes))
	selRec := 0
	for i, r := range recipes {
		catName := ""
		if st.View == app.ViewList {
			if c, ok := recipe.CategoryByID(st.Categories, r.CategoryID); ok {
				catName = c.Name
			}
		}
		recItems = append(recItems, recipeItem{r: r, cat: catName})
		if r.ID == st.SelectedRecipeID {
			selRec = i
		}
	}
	m.recList.SetItems(recItems)
	if len(recItems) > 0 {
		m.recList.Select(selRec)
	}

	if st.Draft != nil {
		rows := editRows(*st.Draft)
		if m.editIndex >= len(rows) {
			m.editIndex = len(rows) - 1
		}
		if m.editIndex < 0 {
			m.editIndex = 0
		}
	} else {
		m.editIndex = 0
	}
}

// editRows lays out the editor cursor order: fixed fields first, then
// ingredient lines, then steps.
func editRows(d recipe.Recipe) []editRow {
	rows := []editRow{
		{kind: rowTitle},
		{kind: rowSource},
		{kind: rowImage},
		{kind: rowCategory},
	}
	for _, in := range d.Ingredients {
		rows = append(rows, editRow{kind: rowIngredient, id: in.ID})
	}
	for _, st := range d.Steps {
		rows = append(rows, editRow{kind: rowStep, id: st.ID})
	}
	return rows
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case dataReloadedMsg:
		cmds = append(cmds, m.dispatch(app.LoadData{Data: msg.data}))
		cmds = append(cmds, m.waitForWatch())
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "watch unavailable: " + msg.err.Error()
			break
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		cmds = append(cmds, m.reloadCmd())
	case watchStoppedMsg:
		m.watchCh = nil
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
			}
			skipListRouting = true
		case modeInsert:
			m.handleInsertKey(msg, &cmds)
			skipListRouting = true
		case modeNormal:
			skipListRouting = m.handleNormalKey(msg, &cmds)
		}
	}

	// route list updates depending on the active view
	st := m.machine.State()
	if m.mode == modeNormal && !skipListRouting {
		switch st.View {
		case app.ViewCategories:
			var cmd tea.Cmd
			m.catList, cmd = m.catList.Update(msg)
			cmds = append(cmds, cmd)
		case app.ViewList, app.ViewCategoryList:
			var cmd tea.Cmd
			m.recList, cmd = m.recList.Update(msg)
			cmds = append(cmds, cmd)
			if it, ok := m.recList.SelectedItem().(recipeItem); ok && it.r.ID != st.SelectedRecipeID {
				cmds = append(cmds, m.dispatch(app.SelectRecipe{ID: it.r.ID}))
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleInsertKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		m.submitInsert(value, cmds)
		return true
	case "esc":
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		m.status = "Cancelled"
		return true
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		return false
	}
}

func (m *Model) submitInsert(value string, cmds *[]tea.Cmd) {
	t := m.insert
	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()

	var action app.Action
	switch t.kind {
	case rowTitle:
		action = app.SetDraftTitle{Title: value}
	case rowSource:
		action = app.SetDraftSourceURL{URL: value}
	case rowImage:
		action = app.SetDraftImageURL{URL: value}
	case rowIngredient:
		if t.field == 1 {
			action = app.UpdateIngredientAmount{ID: t.id, Amount: value}
		} else {
			action = app.UpdateIngredientName{ID: t.id, Name: value}
		}
	case rowStep:
		if t.field == 1 {
			action = app.UpdateStepNote{ID: t.id, Note: value}
		} else {
			action = app.UpdateStepTitle{ID: t.id, Title: value}
		}
	case rowCategory:
		if t.id != "" {
			action = app.RenameCategory{ID: t.id, Name: value}
		} else {
			action = app.AddCategory{Name: value}
		}
	}
	*cmds = append(*cmds, m.dispatch(action))
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	st := m.machine.State()
	key := msg.String()

	if key == "?" {
		m.mode = modeHelp
		return true
	}

	switch st.View {
	case app.ViewCategories:
		return m.handleCategoriesKey(st, key, cmds)
	case app.ViewList, app.ViewCategoryList:
		return m.handleListKey(st, key, cmds)
	case app.ViewEdit:
		return m.handleEditKey(st, key, cmds)
	case app.ViewRun:
		return m.handleRunKey(key, cmds)
	}
	return false
}

func (m *Model) selectedCategory() (recipe.Category, bool) {
	if it, ok := m.catList.SelectedItem().(categoryItem); ok {
		return it.c, true
	}
	return recipe.Category{}, false
}

func (m *Model) handleCategoriesKey(st app.State, key string, cmds *[]tea.Cmd) bool {
	switch key {
	case "enter":
		if c, ok := m.selectedCategory(); ok {
			*cmds = append(*cmds, m.dispatch(app.OpenCategory{ID: c.ID}))
		}
		return true
	case "a":
		*cmds = append(*cmds, m.dispatch(app.OpenAllRecipes{}))
		return true
	case "n":
		m.beginInsert(insertTarget{kind: rowCategory}, "New category name", "", cmds)
		return true
	case "i":
		if c, ok := m.selectedCategory(); ok {
			if c.IsFavorites() {
				m.status = "Favorites cannot be renamed"
				return true
			}
			m.beginRename(c, cmds)
		}
		return true
	case "d":
		if c, ok := m.selectedCategory(); ok {
			if c.IsFavorites() {
				m.status = "Favorites cannot be deleted"
				return true
			}
			if m.awaitingDD && time.Since(m.lastDTime) < 600*time.Millisecond {
				*cmds = append(*cmds, m.dispatch(app.DeleteCategory{ID: c.ID}))
				m.status = "Category deleted, recipes reassigned"
				m.awaitingDD = false
			} else {
				m.awaitingDD = true
				m.lastDTime = time.Now()
			}
		}
		return true
	case "q":
		m.quit(cmds)
		return true
	case "r":
		*cmds = append(*cmds, m.reloadCmd())
		return true
	}
	return false
}

// beginRename routes through submitInsert with a rename closure: the
// category row kind doubles for add and rename, disambiguated here.
func (m *Model) beginRename(c recipe.Category, cmds *[]tea.Cmd) {
	m.insert = insertTarget{kind: rowCategory, id: c.ID}
	m.mode = modeInsert
	m.input.Placeholder = "Category name"
	m.input.SetValue(c.Name)
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
}

func (m *Model) beginInsert(t insertTarget, placeholder, value string, cmds *[]tea.Cmd) {
	m.insert = t
	m.mode = modeInsert
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
}

func (m *Model) handleListKey(st app.State, key string, cmds *[]tea.Cmd) bool {
	current := func() (recipe.Recipe, bool) {
		it, ok := m.recList.SelectedItem().(recipeItem)
		return it.r, ok
	}
	switch key {
	case "enter":
		if r, ok := current(); ok {
			*cmds = append(*cmds, m.dispatch(app.Run{ID: r.ID}))
		}
		return true
	case "n":
		m.editIndex = 0
		*cmds = append(*cmds, m.dispatch(app.CreateRecipe{}))
		return true
	case "i", "e":
		if r, ok := current(); ok {
			m.editIndex = 0
			*cmds = append(*cmds, m.dispatch(app.EditRecipe{ID: r.ID}))
		}
		return true
	case "f":
		if r, ok := current(); ok {
			*cmds = append(*cmds, m.dispatch(app.ToggleFavorite{ID: r.ID}))
		}
		return true
	case "d":
		if r, ok := current(); ok {
			if m.awaitingDD && time.Since(m.lastDTime) < 600*time.Millisecond {
				*cmds = append(*cmds, m.dispatch(app.DeleteRecipe{ID: r.ID}))
				m.status = "Recipe deleted"
				m.awaitingDD = false
			} else {
				m.awaitingDD = true
				m.lastDTime = time.Now()
			}
		}
		return true
	case "esc":
		*cmds = append(*cmds, m.dispatch(app.OpenCategories{}))
		return true
	case "q":
		m.quit(cmds)
		return true
	case "r":
		*cmds = append(*cmds, m.reloadCmd())
		return true
	}
	return false
}

func (m *Model) handleEditKey(st app.State, key string, cmds *[]tea.Cmd) bool {
	if st.Draft == nil {
		return false
	}
	rows := editRows(*st.Draft)
	row := rows[m.editIndex]

	switch key {
	case "j", "down":
		if m.editIndex < len(rows)-1 {
			m.editIndex++
		}
		return true
	case "k", "up":
		if m.editIndex > 0 {
			m.editIndex--
		}
		return true
	case "enter", "i":
		m.beginEditRow(st, row, 0, cmds)
		return true
	case "a":
		if row.kind == rowIngredient || row.kind == rowStep {
			m.beginEditRow(st, row, 1, cmds)
		}
		return true
	case "tab":
		if row.kind == rowCategory {
			*cmds = append(*cmds, m.dispatch(app.SetDraftCategory{ID: nextCategoryID(st)}))
		}
		return true
	case "o":
		*cmds = append(*cmds, m.dispatch(app.AddIngredient{}))
		return true
	case "O":
		*cmds = append(*cmds, m.dispatch(app.AddStep{}))
		return true
	case "x":
		switch row.kind {
		case rowIngredient:
			*cmds = append(*cmds, m.dispatch(app.DeleteIngredient{ID: row.id}))
		case rowStep:
			*cmds = append(*cmds, m.dispatch(app.DeleteStep{ID: row.id}))
		}
		return true
	case "w", "ctrl+s":
		*cmds = append(*cmds, m.dispatch(app.SaveDraft{}))
		m.status = "Saved"
		return true
	case "esc", "q":
		*cmds = append(*cmds, m.dispatch(app.BackToList{}))
		m.status = "Edit discarded"
		return true
	}
	return false
}

// nextCategoryID cycles the draft category through the non-reserved
// categories.
func nextCategoryID(st app.State) string {
	ids := make([]string, 0, len(st.Categories))
	for _, c := range st.Categories {
		if !c.IsFavorites() {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		return st.Draft.CategoryID
	}
	for i, id := range ids {
		if id == st.Draft.CategoryID {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

func (m *Model) beginEditRow(st app.State, row editRow, field int, cmds *[]tea.Cmd) {
	d := st.Draft
	switch row.kind {
	case rowTitle:
		m.beginInsert(insertTarget{kind: rowTitle}, "Recipe title", d.Title, cmds)
	case rowSource:
		m.beginInsert(insertTarget{kind: rowSource}, "Source URL", d.SourceURL, cmds)
	case rowImage:
		m.beginInsert(insertTarget{kind: rowImage}, "Image URL", d.ImageURL, cmds)
	case rowCategory:
		m.status = "Tab cycles the category"
	case rowIngredient:
		for _, in := range d.Ingredients {
			if in.ID != row.id {
				continue
			}
			if field == 1 {
				m.beginInsert(insertTarget{kind: rowIngredient, id: in.ID, field: 1}, "Amount", in.AmountText, cmds)
			} else {
				m.beginInsert(insertTarget{kind: rowIngredient, id: in.ID}, "Ingredient", in.Name, cmds)
			}
		}
	case rowStep:
		for _, s := range d.Steps {
			if s.ID != row.id {
				continue
			}
			if field == 1 {
				m.beginInsert(insertTarget{kind: rowStep, id: s.ID, field: 1}, "Step note", s.Note, cmds)
			} else {
				m.beginInsert(insertTarget{kind: rowStep, id: s.ID}, "Step", s.Title, cmds)
			}
		}
	}
}

func (m *Model) handleRunKey(key string, cmds *[]tea.Cmd) bool {
	switch key {
	case "l", "right", "n", "space", "enter":
		*cmds = append(*cmds, m.dispatch(app.RunNext{}))
		return true
	case "h", "left", "p":
		*cmds = append(*cmds, m.dispatch(app.RunPrev{}))
		return true
	case "esc", "q":
		*cmds = append(*cmds, m.dispatch(app.BackToList{}))
		return true
	}
	return false
}

func (m *Model) quit(cmds *[]tea.Cmd) {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	*cmds = append(*cmds, tea.Quit)
}

// applySizes recalculates list sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	width := m.termWidth - 4
	if width < 30 {
		width = 30
	}
	height := m.termHeight - 4
	if height < 5 {
		height = 5
	}
	m.catList.SetSize(width, height)
	m.recList.SetSize(width, height)
}

// Run launches the interactive TUI program. Remote sync is wired in when
// a charm identity is available and silently skipped otherwise.
func Run(ctx context.Context, p store.Persistence, cfg store.Config) error {
	machine := app.NewMachine(app.NewState(p.Load(ctx)))
	prog := tea.NewProgram(New(machine, p), tea.WithAltScreen())

	if remote, err := sync.OpenCharm(); err == nil {
		defer func() { _ = remote.Close() }()
		s := sync.New(machine, p, remote, cfg)
		s.OnError(func(err error) {
			prog.Send(errMsg{err})
		})
		machine.Subscribe(s.Observe())
		events := make(chan sync.IdentityEvent, 1)
		if id, err := remote.Identity(); err == nil {
			events <- sync.IdentityEvent{UID: id, SignedIn: true}
		}
		go s.Run(ctx, events)
	}

	_, err := prog.Run()
	return err
}
