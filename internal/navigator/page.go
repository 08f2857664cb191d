package navigator

import (
	"context"

	"github.com/jask/taskboard/internal/database/repository"
)

// Page is one screen of the board: it renders itself and turns a line of
// user input into an optional Action.
type Page interface {
	Title() string
	// Draw returns the text to display.
	Draw(ctx context.Context) (string, error)
	// HandleInput returns a nil Action when the input is not recognized;
	// the page then stays current. Errors are reserved for failures the
	// loop cannot recover from.
	HandleInput(ctx context.Context, input string) (Action, error)
}

// Action is a navigation or mutation intent produced by a page.
type Action interface {
	action()
}

// Kind selects the entity a mutation applies to.
type Kind int

const (
	KindEpic Kind = iota + 1
	KindStory
)

func (k Kind) String() string {
	switch k {
	case KindEpic:
		return "epic"
	case KindStory:
		return "story"
	}
	return "unknown"
}

// Transition is the stack change applied after a mutation commits: Pop
// pages are removed (stopping at an empty stack), then Push is pushed if
// set. The zero value leaves the stack unchanged.
type Transition struct {
	Pop  int
	Push Page
}

type NavigateToPage struct {
	Page Page
}

type NavigateToPreviousPage struct{}

// CreateItem creates an epic, or a story under EpicID.
type CreateItem struct {
	Kind        Kind
	EpicID      int64
	Name        string
	Description string
	Then        Transition
}

// UpdateItem sets the status of the epic or story with ID.
type UpdateItem struct {
	Kind   Kind
	ID     int64
	Status repository.Status
	Then   Transition
}

// DeleteItem deletes the epic ID, or the story ID of epic EpicID.
type DeleteItem struct {
	Kind   Kind
	EpicID int64
	ID     int64
	Then   Transition
}

type Exit struct{}

func (NavigateToPage) action()         {}
func (NavigateToPreviousPage) action() {}
func (CreateItem) action()             {}
func (UpdateItem) action()             {}
func (DeleteItem) action()             {}
func (Exit) action()                   {}
