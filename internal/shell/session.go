// Package shell runs the board in a plain line-oriented terminal.
package shell

import (
	"context"

	"github.com/jask/taskboard/internal/navigator"
)

// Session is the state shared by the console loop and the TUI: the
// navigator and nothing else.
type Session struct {
	nav *navigator.Navigator
}

func NewSession(nav *navigator.Navigator) *Session {
	return &Session{nav: nav}
}

// Done reports whether the stack has been emptied.
func (s *Session) Done() bool {
	return s.nav.Len() == 0
}

// Breadcrumbs returns the titles of the open pages, oldest first.
func (s *Session) Breadcrumbs() []string {
	return s.nav.Breadcrumbs()
}

// Frame draws the current page. A failed draw is returned as a
// *navigator.DrawError.
func (s *Session) Frame(ctx context.Context) (string, error) {
	p := s.nav.Current()
	if p == nil {
		return "", nil
	}
	out, err := p.Draw(ctx)
	if err != nil {
		return "", &navigator.DrawError{Page: p.Title(), Err: err}
	}
	return out, nil
}

// Submit hands one line of input to the current page and applies the
// action it returns, if any.
func (s *Session) Submit(ctx context.Context, line string) error {
	p := s.nav.Current()
	if p == nil {
		return nil
	}
	action, err := p.HandleInput(ctx, line)
	if err != nil {
		return &navigator.InputError{Page: p.Title(), Input: line, Err: err}
	}
	if action == nil {
		return nil
	}
	return s.nav.Apply(ctx, action)
}
