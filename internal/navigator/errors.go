package navigator

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is wrapped by the ActionError returned for an Action
// type the navigator does not handle.
var ErrUnknownAction = errors.New("unknown action")

// DrawError reports a page that could not render.
type DrawError struct {
	Page string
	Err  error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("draw %s: %v", e.Page, e.Err)
}

func (e *DrawError) Unwrap() error { return e.Err }

// InputError reports a page input handler that failed.
type InputError struct {
	Page  string
	Input string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("handle input %q on %s: %v", e.Input, e.Page, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ActionError reports an action whose persistence effect failed. The
// stack is left as it was before Apply.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("apply %s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }
