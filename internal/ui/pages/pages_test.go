package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/taskboard/internal/database/repository"
	"github.com/jask/taskboard/internal/navigator"
	"github.com/jask/taskboard/internal/service"
	"github.com/jask/taskboard/internal/ui/table"
)

var errMissing = service.ErrNotFound

// memStore is an in-memory Store and navigator.Mutator.
type memStore struct {
	epics   map[int64]*repository.Epic
	stories map[int64]*repository.Story
	nextID  int64
	listErr error
}

func newMemStore() *memStore {
	return &memStore{epics: map[int64]*repository.Epic{}, stories: map[int64]*repository.Story{}}
}

func (m *memStore) Epic(_ context.Context, id int64) (repository.Epic, error) {
	e, ok := m.epics[id]
	if !ok {
		return repository.Epic{}, fmt.Errorf("epic %d: %w", id, errMissing)
	}
	return *e, nil
}

func (m *memStore) Epics(context.Context) ([]repository.Epic, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []repository.Epic
	for id := int64(1); id <= m.nextID; id++ {
		if e, ok := m.epics[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memStore) Story(_ context.Context, id int64) (repository.Story, error) {
	s, ok := m.stories[id]
	if !ok {
		return repository.Story{}, fmt.Errorf("story %d: %w", id, errMissing)
	}
	return *s, nil
}

func (m *memStore) Stories(_ context.Context, epicID int64) ([]repository.Story, error) {
	var out []repository.Story
	for _, id := range m.epics[epicID].Stories {
		out = append(out, *m.stories[id])
	}
	return out, nil
}

func (m *memStore) CreateEpic(_ context.Context, d repository.EpicDraft) (int64, error) {
	m.nextID++
	m.epics[m.nextID] = &repository.Epic{ID: m.nextID, Name: d.Name, Description: d.Description, Status: repository.StatusOpen}
	return m.nextID, nil
}

func (m *memStore) CreateStory(_ context.Context, epicID int64, d repository.StoryDraft) (int64, error) {
	e, ok := m.epics[epicID]
	if !ok {
		return 0, errMissing
	}
	m.nextID++
	m.stories[m.nextID] = &repository.Story{ID: m.nextID, EpicID: epicID, Name: d.Name, Description: d.Description, Status: repository.StatusOpen}
	e.Stories = append(e.Stories, m.nextID)
	return m.nextID, nil
}

func (m *memStore) UpdateEpicStatus(_ context.Context, id int64, s repository.Status) error {
	e, ok := m.epics[id]
	if !ok {
		return errMissing
	}
	e.Status = s
	return nil
}

func (m *memStore) UpdateStoryStatus(_ context.Context, id int64, s repository.Status) error {
	st, ok := m.stories[id]
	if !ok {
		return errMissing
	}
	st.Status = s
	return nil
}

func (m *memStore) DeleteEpic(_ context.Context, id int64) error {
	e, ok := m.epics[id]
	if !ok {
		return errMissing
	}
	for _, sid := range e.Stories {
		delete(m.stories, sid)
	}
	delete(m.epics, id)
	return nil
}

func (m *memStore) DeleteStory(_ context.Context, epicID, storyID int64) error {
	e, ok := m.epics[epicID]
	if !ok || !containsID(e.Stories, storyID) {
		return errMissing
	}
	delete(m.stories, storyID)
	kept := e.Stories[:0]
	for _, id := range e.Stories {
		if id != storyID {
			kept = append(kept, id)
		}
	}
	e.Stories = kept
	return nil
}

type fixture struct {
	store *memStore
	deps  *Deps
	nav   *navigator.Navigator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	deps := &Deps{Store: store, Style: table.DefaultStyle()}
	return &fixture{store: store, deps: deps, nav: navigator.New(NewHome(deps), store)}
}

// submit feeds one line to the current page and applies the result.
func (f *fixture) submit(t *testing.T, line string) navigator.Action {
	t.Helper()
	ctx := context.Background()
	action, err := f.nav.Current().HandleInput(ctx, line)
	require.NoError(t, err)
	if action != nil {
		require.NoError(t, f.nav.Apply(ctx, action))
	}
	return action
}

func (f *fixture) draw(t *testing.T) string {
	t.Helper()
	out, err := f.nav.Current().Draw(context.Background())
	require.NoError(t, err)
	return out
}

func TestHomeSelectsEpic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.store.CreateEpic(ctx, repository.EpicDraft{Name: "Alpha", Description: "first epic"})
	_, _ = f.store.CreateEpic(ctx, repository.EpicDraft{Name: "Beta", Description: "second epic"})

	home := f.draw(t)
	require.Contains(t, home, "Alpha")
	require.Contains(t, home, "Beta")

	action := f.submit(t, "1")
	nav, ok := action.(navigator.NavigateToPage)
	require.True(t, ok)
	detail, ok := nav.Page.(*EpicDetail)
	require.True(t, ok)
	require.Equal(t, int64(1), detail.EpicID())

	out := f.draw(t)
	require.Contains(t, out, "Alpha")
	require.Contains(t, out, "first epic")
	require.NotContains(t, out, "Beta")
	require.Equal(t, []string{"Epics", "Epic #1"}, f.nav.Breadcrumbs())
}

func TestHomeUnknownInput(t *testing.T) {
	f := newFixture(t)
	require.Nil(t, f.submit(t, "qq"))
	require.Contains(t, f.draw(t), `unknown command "qq", did you mean "q"?`)

	require.Nil(t, f.submit(t, "7"))
	require.Contains(t, f.draw(t), "no epic with id 7")

	require.Nil(t, f.submit(t, "zebra"))
	out := f.draw(t)
	require.Contains(t, out, `unknown command "zebra"`)
	require.NotContains(t, out, "did you mean")
	require.Equal(t, 1, f.nav.Len())
}

func TestHomeInputStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.store.listErr = errors.New("db locked")
	_, err := f.nav.Current().HandleInput(context.Background(), "1")
	require.ErrorContains(t, err, "db locked")
}

func TestHomeQuit(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, navigator.Exit{}, f.submit(t, "Q"))
	require.Nil(t, f.nav.Current())
}

func TestCreateEpicAndStoryFlow(t *testing.T) {
	f := newFixture(t)

	f.submit(t, "c")
	require.Contains(t, f.draw(t), "epic name:")

	require.Nil(t, f.submit(t, "   "))
	require.Contains(t, f.draw(t), "epic name is required")

	require.Nil(t, f.submit(t, "Epic - Project 1"))
	out := f.draw(t)
	require.Contains(t, out, "epic description:")
	require.Contains(t, out, "Epic - Project 1")

	action := f.submit(t, "the first one")
	require.Equal(t, navigator.CreateItem{
		Kind:        navigator.KindEpic,
		Name:        "Epic - Project 1",
		Description: "the first one",
		Then:        navigator.Transition{Pop: 1},
	}, action)
	require.IsType(t, &Home{}, f.nav.Current())
	require.Contains(t, f.draw(t), "Epic - Project 1")

	f.submit(t, "1")
	f.submit(t, "c")
	require.Equal(t, "New story in epic #1", f.nav.Current().Title())
	f.submit(t, "Story - Project 1")
	f.submit(t, "")
	require.IsType(t, &EpicDetail{}, f.nav.Current())
	out = f.draw(t)
	require.Contains(t, out, "STORIES")
	require.Contains(t, out, "Story - Project 1")

	f.submit(t, "2")
	require.IsType(t, &StoryDetail{}, f.nav.Current())
	require.Equal(t, "Story #2", f.nav.Current().Title())
	require.Contains(t, f.draw(t), "|Story - P...|")
}

func TestFormCancel(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "c")
	f.submit(t, "half typed")
	require.Equal(t, navigator.NavigateToPreviousPage{}, f.submit(t, ":p"))
	require.IsType(t, &Home{}, f.nav.Current())
	epics, err := f.store.Epics(context.Background())
	require.NoError(t, err)
	require.Empty(t, epics)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	epicID, _ := f.store.CreateEpic(ctx, repository.EpicDraft{Name: "E"})
	storyID, _ := f.store.CreateStory(ctx, epicID, repository.StoryDraft{Name: "S"})

	f.submit(t, "1")
	f.submit(t, "u")
	out := f.draw(t)
	require.Contains(t, out, "UPDATE STATUS")
	require.Contains(t, out, "current")

	require.Nil(t, f.submit(t, "9"))
	require.Contains(t, f.draw(t), "choose a status between 1 and 4")

	f.submit(t, "2")
	require.IsType(t, &EpicDetail{}, f.nav.Current())
	require.Contains(t, f.draw(t), "IN PROGRESS")

	f.submit(t, fmt.Sprint(storyID))
	f.submit(t, "u")
	f.submit(t, "4")
	require.IsType(t, &StoryDetail{}, f.nav.Current())
	require.Contains(t, f.draw(t), "CLOSED")
}

func TestDeleteEpicPopsDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	epicID, _ := f.store.CreateEpic(ctx, repository.EpicDraft{Name: "Doomed"})
	_, _ = f.store.CreateStory(ctx, epicID, repository.StoryDraft{Name: "S"})

	f.submit(t, "1")
	f.submit(t, "d")
	out := f.draw(t)
	require.Contains(t, out, `delete epic #1 "Doomed"`)
	require.Contains(t, out, "All 1 of its stories")

	require.Nil(t, f.submit(t, "yes"))
	require.Contains(t, f.draw(t), `did you mean "y"?`)

	f.submit(t, "y")
	require.IsType(t, &Home{}, f.nav.Current())
	require.NotContains(t, f.draw(t), "Doomed")
	require.Empty(t, f.store.stories)
}

func TestDeleteStoryDeclined(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	epicID, _ := f.store.CreateEpic(ctx, repository.EpicDraft{Name: "E"})
	storyID, _ := f.store.CreateStory(ctx, epicID, repository.StoryDraft{Name: "S"})

	f.submit(t, "1")
	f.submit(t, fmt.Sprint(storyID))
	f.submit(t, "d")
	f.submit(t, "n")
	require.IsType(t, &StoryDetail{}, f.nav.Current())

	f.submit(t, "d")
	f.submit(t, "y")
	require.IsType(t, &EpicDetail{}, f.nav.Current())
	require.Empty(t, f.store.stories)
	require.Empty(t, f.store.epics[epicID].Stories)
}

func TestEpicDetailRejectsForeignStory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.store.CreateEpic(ctx, repository.EpicDraft{Name: "A"})
	b, _ := f.store.CreateEpic(ctx, repository.EpicDraft{Name: "B"})
	foreign, _ := f.store.CreateStory(ctx, b, repository.StoryDraft{Name: "not yours"})

	f.submit(t, fmt.Sprint(a))
	require.Nil(t, f.submit(t, fmt.Sprint(foreign)))
	require.Contains(t, f.draw(t), fmt.Sprintf("epic #%d has no story with id %d", a, foreign))
}

func TestDrawFailsForVanishedEpic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id, _ := f.store.CreateEpic(ctx, repository.EpicDraft{Name: "E"})
	page := NewEpicDetail(f.deps, id)
	require.NoError(t, f.store.DeleteEpic(ctx, id))
	_, err := page.Draw(ctx)
	require.True(t, errors.Is(err, errMissing))
}

func TestEpicDetailInputAfterEpicVanished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id, _ := f.store.CreateEpic(ctx, repository.EpicDraft{Name: "E"})
	f.submit(t, fmt.Sprint(id))
	require.NoError(t, f.store.DeleteEpic(ctx, id))

	action, err := f.nav.Current().HandleInput(ctx, "5")
	require.NoError(t, err)
	require.Nil(t, action)
	detail := f.nav.Current().(*EpicDetail)
	require.Equal(t, fmt.Sprintf("epic #%d no longer exists", id), detail.notice)

	f.store.epics[id] = &repository.Epic{ID: id, Name: "E"}
	require.Contains(t, f.draw(t), "no longer exists")
}

func TestEpicDetailInputStoreFailure(t *testing.T) {
	f := newFixture(t)
	deps := &Deps{Store: failingStore{f.store}, Style: table.DefaultStyle()}
	_, err := NewEpicDetail(deps, 1).HandleInput(context.Background(), "5")
	require.ErrorContains(t, err, "disk I/O error")
}

// failingStore fails every epic lookup with an error other than not-found.
type failingStore struct{ *memStore }

func (failingStore) Epic(context.Context, int64) (repository.Epic, error) {
	return repository.Epic{}, errors.New("disk I/O error")
}

func TestStoryDetailChecksEpic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.store.CreateEpic(ctx, repository.EpicDraft{Name: "A"})
	b, _ := f.store.CreateEpic(ctx, repository.EpicDraft{Name: "B"})
	s, _ := f.store.CreateStory(ctx, b, repository.StoryDraft{Name: "S"})
	_, err := NewStoryDetail(f.deps, a, s).Draw(ctx)
	require.ErrorContains(t, err, "does not belong")
}

func TestNoticeClearedByNextInput(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "what")
	require.Contains(t, f.draw(t), "unknown command")
	f.submit(t, "c")
	f.submit(t, ":p")
	require.NotContains(t, f.draw(t), "unknown command")
}

func TestSuggest(t *testing.T) {
	cmds := []string{"p", "u", "d", "c"}
	require.Equal(t, "p", suggest("pp", cmds))
	require.Equal(t, "d", suggest("del", cmds))
	require.Equal(t, "", suggest("delete", cmds))
	require.Equal(t, "", suggest("x", cmds))
	require.Equal(t, "", suggest("", cmds))
	require.Equal(t, "please enter a command", unknownInput("  ", cmds))
}

func TestScreenLayout(t *testing.T) {
	out := screen("", "a\n", "b")
	require.Equal(t, "a\n\nb\n", out)
	out = screen("oops", "a")
	require.True(t, strings.HasSuffix(out, "\n! oops\n"))
}
