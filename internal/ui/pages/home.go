package pages

import (
	"context"
	"strings"

	"github.com/jask/taskboard/internal/navigator"
)

var homeCommands = []string{"q", "c"}

// Home lists every epic.
type Home struct {
	deps   *Deps
	notice string
}

func NewHome(deps *Deps) *Home {
	return &Home{deps: deps}
}

func (p *Home) Title() string { return "Epics" }

func (p *Home) Draw(ctx context.Context) (string, error) {
	epics, err := p.deps.Store.Epics(ctx)
	if err != nil {
		return "", err
	}
	t := p.deps.table("EPICS").
		Column("id", 11).
		Column("name", 32).
		Column("status", 17).
		Build()
	for _, e := range epics {
		if err := t.AddRow(idString(e.ID), e.Name, e.Status.Label()); err != nil {
			return "", err
		}
	}
	return screen(p.notice, t.Render(), "[q] quit | [c] create epic | [:id:] navigate to epic"), nil
}

func (p *Home) HandleInput(ctx context.Context, input string) (navigator.Action, error) {
	p.notice = ""
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "q":
		return navigator.Exit{}, nil
	case "c":
		return navigator.NavigateToPage{Page: NewEpicForm(p.deps)}, nil
	}
	id, ok := parseID(input)
	if !ok {
		p.notice = unknownInput(input, homeCommands)
		return nil, nil
	}
	epics, err := p.deps.Store.Epics(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range epics {
		if e.ID == id {
			return navigator.NavigateToPage{Page: NewEpicDetail(p.deps, id)}, nil
		}
	}
	p.notice = "no epic with id " + idString(id)
	return nil, nil
}
