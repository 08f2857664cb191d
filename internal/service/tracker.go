package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jask/taskboard/internal/database"
	"github.com/jask/taskboard/internal/database/repository"
)

var (
	// ErrNotFound is returned when a referenced epic or story does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned for drafts or statuses that cannot be stored.
	ErrInvalid = errors.New("invalid")
)

// Tracker is the board's persistence service. Pages read through it and
// the navigator applies mutations through it.
type Tracker struct {
	DB *sql.DB
}

func NewTracker(db *sql.DB) *Tracker {
	return &Tracker{DB: db}
}

func (s *Tracker) Epic(ctx context.Context, id int64) (repository.Epic, error) {
	e, err := repository.NewEpicRepo(s.DB).Get(ctx, id)
	if err != nil {
		return repository.Epic{}, fmt.Errorf("load epic %d: %w", id, err)
	}
	if e == nil {
		return repository.Epic{}, fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}
	return *e, nil
}

func (s *Tracker) Epics(ctx context.Context) ([]repository.Epic, error) {
	list, err := repository.NewEpicRepo(s.DB).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list epics: %w", err)
	}
	return list, nil
}

func (s *Tracker) Story(ctx context.Context, id int64) (repository.Story, error) {
	st, err := repository.NewStoryRepo(s.DB).Get(ctx, id)
	if err != nil {
		return repository.Story{}, fmt.Errorf("load story %d: %w", id, err)
	}
	if st == nil {
		return repository.Story{}, fmt.Errorf("story %d: %w", id, ErrNotFound)
	}
	return *st, nil
}

func (s *Tracker) Stories(ctx context.Context, epicID int64) ([]repository.Story, error) {
	list, err := repository.NewStoryRepo(s.DB).ListByEpic(ctx, epicID)
	if err != nil {
		return nil, fmt.Errorf("list stories of epic %d: %w", epicID, err)
	}
	return list, nil
}

func (s *Tracker) CreateEpic(ctx context.Context, d repository.EpicDraft) (int64, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	if d.Name == "" {
		return 0, fmt.Errorf("epic name required: %w", ErrInvalid)
	}
	id, err := repository.NewEpicRepo(s.DB).Insert(ctx, d)
	if err != nil {
		return 0, fmt.Errorf("create epic: %w", err)
	}
	return id, nil
}

// CreateStory adds a story to an existing epic.
func (s *Tracker) CreateStory(ctx context.Context, epicID int64, d repository.StoryDraft) (int64, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	if d.Name == "" {
		return 0, fmt.Errorf("story name required: %w", ErrInvalid)
	}
	var id int64
	err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		e, err := repository.NewEpicRepo(tx).Get(ctx, epicID)
		if err != nil {
			return err
		}
		if e == nil {
			return fmt.Errorf("epic %d: %w", epicID, ErrNotFound)
		}
		id, err = repository.NewStoryRepo(tx).Insert(ctx, epicID, d)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("create story: %w", err)
	}
	return id, nil
}

func (s *Tracker) UpdateEpicStatus(ctx context.Context, id int64, st repository.Status) error {
	if !st.Valid() {
		return fmt.Errorf("status %q: %w", st, ErrInvalid)
	}
	ok, err := repository.NewEpicRepo(s.DB).SetStatus(ctx, id, st)
	if err != nil {
		return fmt.Errorf("update epic %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Tracker) UpdateStoryStatus(ctx context.Context, id int64, st repository.Status) error {
	if !st.Valid() {
		return fmt.Errorf("status %q: %w", st, ErrInvalid)
	}
	ok, err := repository.NewStoryRepo(s.DB).SetStatus(ctx, id, st)
	if err != nil {
		return fmt.Errorf("update story %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("story %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteEpic removes an epic together with its stories.
func (s *Tracker) DeleteEpic(ctx context.Context, id int64) error {
	err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stories WHERE epic_id = ?`, id); err != nil {
			return err
		}
		ok, err := repository.NewEpicRepo(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("epic %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete epic: %w", err)
	}
	return nil
}

// DeleteStory removes a story of the given epic. A story of another epic
// is reported as not found.
func (s *Tracker) DeleteStory(ctx context.Context, epicID, storyID int64) error {
	ok, err := repository.NewStoryRepo(s.DB).Delete(ctx, epicID, storyID)
	if err != nil {
		return fmt.Errorf("delete story %d: %w", storyID, err)
	}
	if !ok {
		return fmt.Errorf("story %d of epic %d: %w", storyID, epicID, ErrNotFound)
	}
	return nil
}
