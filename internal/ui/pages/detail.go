package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jask/taskboard/internal/navigator"
	"github.com/jask/taskboard/internal/service"
)

var (
	epicDetailCommands  = []string{"p", "u", "d", "c"}
	storyDetailCommands = []string{"p", "u", "d"}
)

// EpicDetail shows one epic and its stories.
type EpicDetail struct {
	deps   *Deps
	epicID int64
	notice string
}

func NewEpicDetail(deps *Deps, epicID int64) *EpicDetail {
	return &EpicDetail{deps: deps, epicID: epicID}
}

func (p *EpicDetail) Title() string { return fmt.Sprintf("Epic #%d", p.epicID) }

// EpicID is the epic shown by the page.
func (p *EpicDetail) EpicID() int64 { return p.epicID }

func (p *EpicDetail) Draw(ctx context.Context) (string, error) {
	e, err := p.deps.Store.Epic(ctx, p.epicID)
	if err != nil {
		return "", err
	}
	stories, err := p.deps.Store.Stories(ctx, p.epicID)
	if err != nil {
		return "", err
	}

	info := p.deps.table("EPIC").
		Column("id", 6).
		Column("name", 12).
		Column("description", 27).
		Column("status", 13).
		Build()
	if err := info.AddRow(idString(e.ID), e.Name, e.Description, e.Status.Label()); err != nil {
		return "", err
	}

	list := p.deps.table("STORIES").
		Column("id", 11).
		Column("name", 32).
		Column("status", 17).
		Build()
	for _, s := range stories {
		if err := list.AddRow(idString(s.ID), s.Name, s.Status.Label()); err != nil {
			return "", err
		}
	}

	return screen(p.notice,
		info.Render(),
		list.Render(),
		"[p] previous | [u] update epic | [d] delete epic | [c] create story | [:id:] navigate to story",
	), nil
}

func (p *EpicDetail) HandleInput(ctx context.Context, input string) (navigator.Action, error) {
	p.notice = ""
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "p":
		return navigator.NavigateToPreviousPage{}, nil
	case "u":
		return navigator.NavigateToPage{Page: NewStatusForm(p.deps, navigator.KindEpic, p.epicID, p.epicID)}, nil
	case "d":
		return navigator.NavigateToPage{Page: NewDeleteConfirm(p.deps, navigator.KindEpic, p.epicID, p.epicID)}, nil
	case "c":
		return navigator.NavigateToPage{Page: NewStoryForm(p.deps, p.epicID)}, nil
	}
	id, ok := parseID(input)
	if !ok {
		p.notice = unknownInput(input, epicDetailCommands)
		return nil, nil
	}
	e, err := p.deps.Store.Epic(ctx, p.epicID)
	if errors.Is(err, service.ErrNotFound) {
		p.notice = fmt.Sprintf("epic #%d no longer exists", p.epicID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !containsID(e.Stories, id) {
		p.notice = fmt.Sprintf("epic #%d has no story with id %d", p.epicID, id)
		return nil, nil
	}
	return navigator.NavigateToPage{Page: NewStoryDetail(p.deps, p.epicID, id)}, nil
}

// StoryDetail shows one story.
type StoryDetail struct {
	deps    *Deps
	epicID  int64
	storyID int64
	notice  string
}

func NewStoryDetail(deps *Deps, epicID, storyID int64) *StoryDetail {
	return &StoryDetail{deps: deps, epicID: epicID, storyID: storyID}
}

func (p *StoryDetail) Title() string { return fmt.Sprintf("Story #%d", p.storyID) }

func (p *StoryDetail) Draw(ctx context.Context) (string, error) {
	s, err := p.deps.Store.Story(ctx, p.storyID)
	if err != nil {
		return "", err
	}
	if s.EpicID != p.epicID {
		return "", fmt.Errorf("story %d does not belong to epic %d", p.storyID, p.epicID)
	}
	info := p.deps.table("STORY").
		Column("id", 6).
		Column("name", 12).
		Column("description", 27).
		Column("status", 13).
		Build()
	if err := info.AddRow(idString(s.ID), s.Name, s.Description, s.Status.Label()); err != nil {
		return "", err
	}
	return screen(p.notice,
		info.Render(),
		"[p] previous | [u] update story | [d] delete story",
	), nil
}

func (p *StoryDetail) HandleInput(_ context.Context, input string) (navigator.Action, error) {
	p.notice = ""
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "p":
		return navigator.NavigateToPreviousPage{}, nil
	case "u":
		return navigator.NavigateToPage{Page: NewStatusForm(p.deps, navigator.KindStory, p.epicID, p.storyID)}, nil
	case "d":
		return navigator.NavigateToPage{Page: NewDeleteConfirm(p.deps, navigator.KindStory, p.epicID, p.storyID)}, nil
	}
	p.notice = unknownInput(input, storyDetailCommands)
	return nil, nil
}
