// Package navigator owns the stack of pages shown by the board and applies
// the actions pages produce.
package navigator

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jask/taskboard/internal/database/repository"
)

// Mutator is the write side of the persistence collaborator.
type Mutator interface {
	CreateEpic(ctx context.Context, d repository.EpicDraft) (int64, error)
	CreateStory(ctx context.Context, epicID int64, d repository.StoryDraft) (int64, error)
	UpdateEpicStatus(ctx context.Context, id int64, s repository.Status) error
	UpdateStoryStatus(ctx context.Context, id int64, s repository.Status) error
	DeleteEpic(ctx context.Context, id int64) error
	DeleteStory(ctx context.Context, epicID, storyID int64) error
}

type Navigator struct {
	stack pageStack
	store Mutator
	log   logrus.FieldLogger
}

type Option func(*Navigator)

func WithLogger(l logrus.FieldLogger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.log = l
		}
	}
}

// New returns a navigator whose stack holds only home.
func New(home Page, store Mutator, opts ...Option) *Navigator {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	n := &Navigator{store: store, log: quiet}
	for _, opt := range opts {
		opt(n)
	}
	n.stack.Push(home)
	return n
}

// Current returns the top page, or nil once the stack is empty.
func (n *Navigator) Current() Page {
	return n.stack.Top()
}

func (n *Navigator) Len() int {
	return n.stack.Len()
}

// Breadcrumbs returns the page titles from the bottom of the stack up.
func (n *Navigator) Breadcrumbs() []string {
	return n.stack.Titles()
}

// Apply performs a. Mutations run before any stack change; when the
// mutation fails the stack is untouched and an *ActionError is returned.
func (n *Navigator) Apply(ctx context.Context, a Action) error {
	switch act := a.(type) {
	case NavigateToPage:
		n.stack.Push(act.Page)
	case NavigateToPreviousPage:
		n.stack.Pop()
	case Exit:
		n.stack.Clear()
	case CreateItem:
		if err := n.create(ctx, act); err != nil {
			return n.fail(act, err)
		}
		n.transition(act.Then)
	case UpdateItem:
		if err := n.update(ctx, act); err != nil {
			return n.fail(act, err)
		}
		n.transition(act.Then)
	case DeleteItem:
		if err := n.delete(ctx, act); err != nil {
			return n.fail(act, err)
		}
		n.transition(act.Then)
	default:
		return n.fail(a, ErrUnknownAction)
	}
	n.log.WithFields(logrus.Fields{
		"action": describe(a),
		"depth":  n.stack.Len(),
	}).Debug("action applied")
	return nil
}

func (n *Navigator) create(ctx context.Context, a CreateItem) error {
	var (
		id  int64
		err error
	)
	switch a.Kind {
	case KindEpic:
		id, err = n.store.CreateEpic(ctx, repository.EpicDraft{Name: a.Name, Description: a.Description})
	case KindStory:
		id, err = n.store.CreateStory(ctx, a.EpicID, repository.StoryDraft{Name: a.Name, Description: a.Description})
	default:
		return fmt.Errorf("create kind %d: %w", a.Kind, ErrUnknownAction)
	}
	if err != nil {
		return err
	}
	n.log.WithFields(logrus.Fields{"kind": a.Kind.String(), "id": id}).Info("item created")
	return nil
}

func (n *Navigator) update(ctx context.Context, a UpdateItem) error {
	var err error
	switch a.Kind {
	case KindEpic:
		err = n.store.UpdateEpicStatus(ctx, a.ID, a.Status)
	case KindStory:
		err = n.store.UpdateStoryStatus(ctx, a.ID, a.Status)
	default:
		return fmt.Errorf("update kind %d: %w", a.Kind, ErrUnknownAction)
	}
	if err != nil {
		return err
	}
	n.log.WithFields(logrus.Fields{"kind": a.Kind.String(), "id": a.ID, "status": a.Status}).Info("item updated")
	return nil
}

func (n *Navigator) delete(ctx context.Context, a DeleteItem) error {
	var err error
	switch a.Kind {
	case KindEpic:
		err = n.store.DeleteEpic(ctx, a.ID)
	case KindStory:
		err = n.store.DeleteStory(ctx, a.EpicID, a.ID)
	default:
		return fmt.Errorf("delete kind %d: %w", a.Kind, ErrUnknownAction)
	}
	if err != nil {
		return err
	}
	n.log.WithFields(logrus.Fields{"kind": a.Kind.String(), "id": a.ID}).Info("item deleted")
	return nil
}

func (n *Navigator) transition(t Transition) {
	for i := 0; i < t.Pop && n.stack.Len() > 0; i++ {
		n.stack.Pop()
	}
	n.stack.Push(t.Push)
}

func (n *Navigator) fail(a Action, err error) error {
	name := describe(a)
	n.log.WithError(err).WithField("action", name).Error("action failed")
	return &ActionError{Action: name, Err: err}
}

func describe(a Action) string {
	switch act := a.(type) {
	case NavigateToPage:
		return "navigate"
	case NavigateToPreviousPage:
		return "back"
	case Exit:
		return "exit"
	case CreateItem:
		return "create " + act.Kind.String()
	case UpdateItem:
		return "update " + act.Kind.String()
	case DeleteItem:
		return "delete " + act.Kind.String()
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("%T", a)
}
