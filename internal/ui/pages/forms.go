package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/jask/taskboard/internal/database/repository"
	"github.com/jask/taskboard/internal/navigator"
)

type formField struct {
	label    string
	required bool
	value    string
}

// CreateForm collects the fields of a new epic or story, one input line
// per field, and then emits a CreateItem.
type CreateForm struct {
	deps   *Deps
	kind   navigator.Kind
	epicID int64
	fields []formField
	step   int
	notice string
}

func NewEpicForm(deps *Deps) *CreateForm {
	return newCreateForm(deps, navigator.KindEpic, 0)
}

func NewStoryForm(deps *Deps, epicID int64) *CreateForm {
	return newCreateForm(deps, navigator.KindStory, epicID)
}

func newCreateForm(deps *Deps, kind navigator.Kind, epicID int64) *CreateForm {
	return &CreateForm{
		deps:   deps,
		kind:   kind,
		epicID: epicID,
		fields: []formField{
			{label: "name", required: true},
			{label: "description"},
		},
	}
}

func (p *CreateForm) Title() string {
	if p.kind == navigator.KindStory {
		return fmt.Sprintf("New story in epic #%d", p.epicID)
	}
	return "New epic"
}

func (p *CreateForm) Draw(context.Context) (string, error) {
	title := "NEW " + strings.ToUpper(p.kind.String())
	t := p.deps.table(title).
		Column("field", 14).
		Column("value", 40).
		Build()
	for _, f := range p.fields[:p.step] {
		if err := t.AddRow(f.label, f.value); err != nil {
			return "", err
		}
	}
	prompt := ""
	if p.step < len(p.fields) {
		prompt = fmt.Sprintf("%s %s:", p.kind, p.fields[p.step].label)
	}
	return screen(p.notice, t.Render(), fmt.Sprintf("[%s] cancel", backCommand), prompt), nil
}

func (p *CreateForm) HandleInput(_ context.Context, input string) (navigator.Action, error) {
	p.notice = ""
	value := strings.TrimSpace(input)
	if value == backCommand {
		return navigator.NavigateToPreviousPage{}, nil
	}
	if p.step >= len(p.fields) {
		return nil, nil
	}
	f := &p.fields[p.step]
	if f.required && value == "" {
		p.notice = fmt.Sprintf("%s %s is required", p.kind, f.label)
		return nil, nil
	}
	f.value = value
	p.step++
	if p.step < len(p.fields) {
		return nil, nil
	}
	return navigator.CreateItem{
		Kind:        p.kind,
		EpicID:      p.epicID,
		Name:        p.fields[0].value,
		Description: p.fields[1].value,
		Then:        navigator.Transition{Pop: 1},
	}, nil
}

// StatusForm lets the user pick a new status for an epic or story.
type StatusForm struct {
	deps   *Deps
	kind   navigator.Kind
	epicID int64
	id     int64
	notice string
}

func NewStatusForm(deps *Deps, kind navigator.Kind, epicID, id int64) *StatusForm {
	return &StatusForm{deps: deps, kind: kind, epicID: epicID, id: id}
}

func (p *StatusForm) Title() string { return fmt.Sprintf("Status of %s #%d", p.kind, p.id) }

func (p *StatusForm) current(ctx context.Context) (repository.Status, error) {
	if p.kind == navigator.KindStory {
		s, err := p.deps.Store.Story(ctx, p.id)
		return s.Status, err
	}
	e, err := p.deps.Store.Epic(ctx, p.id)
	return e.Status, err
}

func (p *StatusForm) Draw(ctx context.Context) (string, error) {
	cur, err := p.current(ctx)
	if err != nil {
		return "", err
	}
	t := p.deps.table("UPDATE STATUS").
		Column("#", 4).
		Column("status", 20).
		Column("", 10).
		Build()
	for i, s := range repository.Statuses {
		mark := ""
		if s == cur {
			mark = "current"
		}
		if err := t.AddRow(fmt.Sprint(i+1), s.Label(), mark); err != nil {
			return "", err
		}
	}
	return screen(p.notice, t.Render(), fmt.Sprintf("[1-%d] set status | [%s] cancel", len(repository.Statuses), backCommand)), nil
}

func (p *StatusForm) HandleInput(_ context.Context, input string) (navigator.Action, error) {
	p.notice = ""
	value := strings.TrimSpace(input)
	if value == backCommand {
		return navigator.NavigateToPreviousPage{}, nil
	}
	n, ok := parseID(value)
	if !ok || n > int64(len(repository.Statuses)) {
		p.notice = fmt.Sprintf("choose a status between 1 and %d", len(repository.Statuses))
		return nil, nil
	}
	return navigator.UpdateItem{
		Kind:   p.kind,
		ID:     p.id,
		Status: repository.Statuses[n-1],
		Then:   navigator.Transition{Pop: 1},
	}, nil
}
