package repository

import (
	"context"
	"database/sql"
	"errors"
)

// StoryRepo handles stories.
type StoryRepo struct {
	db DBTX
}

func NewStoryRepo(db DBTX) *StoryRepo { return &StoryRepo{db: db} }

func (r *StoryRepo) Insert(ctx context.Context, epicID int64, d StoryDraft) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO stories(epic_id, name, description, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, epicID, d.Name, d.Description, string(StatusOpen))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *StoryRepo) InsertWithID(ctx context.Context, s Story) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO stories(id, epic_id, name, description, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`, s.ID, s.EpicID, s.Name, s.Description, string(s.Status), s.CreatedAt.UTC(), s.UpdatedAt.UTC())
	return err
}

// Get returns nil, nil when the story does not exist.
func (r *StoryRepo) Get(ctx context.Context, id int64) (*Story, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, epic_id, name, description, status, created_at, updated_at
	FROM stories WHERE id = ?`, id)
	var s Story
	if err := row.Scan(&s.ID, &s.EpicID, &s.Name, &s.Description, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListByEpic returns the stories of one epic ordered by id.
func (r *StoryRepo) ListByEpic(ctx context.Context, epicID int64) ([]Story, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, epic_id, name, description, status, created_at, updated_at
	FROM stories WHERE epic_id = ? ORDER BY id`, epicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Story
	for rows.Next() {
		var s Story
		if err := rows.Scan(&s.ID, &s.EpicID, &s.Name, &s.Description, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StoryRepo) SetStatus(ctx context.Context, id int64, s Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	UPDATE stories SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, string(s), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes a story only if it belongs to epicID.
func (r *StoryRepo) Delete(ctx context.Context, epicID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ? AND epic_id = ?`, id, epicID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
