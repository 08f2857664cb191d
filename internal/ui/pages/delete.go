package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/jask/taskboard/internal/navigator"
)

var confirmCommands = []string{"y", "n"}

// DeleteConfirm asks before deleting an epic or story. It sits on top of
// the detail page of the item, so a confirmed delete pops both.
type DeleteConfirm struct {
	deps   *Deps
	kind   navigator.Kind
	epicID int64
	id     int64
	notice string
}

func NewDeleteConfirm(deps *Deps, kind navigator.Kind, epicID, id int64) *DeleteConfirm {
	return &DeleteConfirm{deps: deps, kind: kind, epicID: epicID, id: id}
}

func (p *DeleteConfirm) Title() string { return fmt.Sprintf("Delete %s #%d", p.kind, p.id) }

func (p *DeleteConfirm) Draw(ctx context.Context) (string, error) {
	var question string
	switch p.kind {
	case navigator.KindEpic:
		e, err := p.deps.Store.Epic(ctx, p.id)
		if err != nil {
			return "", err
		}
		question = fmt.Sprintf("Are you sure you want to delete epic #%d %q?", e.ID, e.Name)
		if n := len(e.Stories); n > 0 {
			question += fmt.Sprintf(" All %d of its stories will also be deleted.", n)
		}
	default:
		s, err := p.deps.Store.Story(ctx, p.id)
		if err != nil {
			return "", err
		}
		question = fmt.Sprintf("Are you sure you want to delete story #%d %q?", s.ID, s.Name)
	}
	return screen(p.notice, question, "[y] yes | [n] no"), nil
}

func (p *DeleteConfirm) HandleInput(_ context.Context, input string) (navigator.Action, error) {
	p.notice = ""
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y":
		return navigator.DeleteItem{
			Kind:   p.kind,
			EpicID: p.epicID,
			ID:     p.id,
			Then:   navigator.Transition{Pop: 2},
		}, nil
	case "n":
		return navigator.NavigateToPreviousPage{}, nil
	}
	p.notice = unknownInput(input, confirmCommands)
	return nil, nil
}
