package repository

import (
	"context"
	"database/sql"
	"errors"
)

// EpicRepo handles epics.
type EpicRepo struct {
	db DBTX
}

func NewEpicRepo(db DBTX) *EpicRepo {
	return &EpicRepo{db: db}
}

func (r *EpicRepo) Insert(ctx context.Context, d EpicDraft) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO epics(name, description, status, created_at, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, d.Name, d.Description, string(StatusOpen))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertWithID writes an epic keeping its id and timestamps; used by
// snapshot import.
func (r *EpicRepo) InsertWithID(ctx context.Context, e Epic) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO epics(id, name, description, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`, e.ID, e.Name, e.Description, string(e.Status), e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	return err
}

// Get returns nil, nil when the epic does not exist.
func (r *EpicRepo) Get(ctx context.Context, id int64) (*Epic, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, description, status, created_at, updated_at
	FROM epics WHERE id = ?`, id)
	var e Epic
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	ids, err := r.storyIDs(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Stories = ids
	return &e, nil
}

func (r *EpicRepo) List(ctx context.Context) ([]Epic, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, description, status, created_at, updated_at
	FROM epics ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Epic
	for rows.Next() {
		var e Epic
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		ids, err := r.storyIDs(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Stories = ids
	}
	return out, nil
}

// SetStatus reports whether a row was updated.
func (r *EpicRepo) SetStatus(ctx context.Context, id int64, s Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	UPDATE epics SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, string(s), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes the epic; its stories go with it (ON DELETE CASCADE).
func (r *EpicRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM epics WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *EpicRepo) storyIDs(ctx context.Context, epicID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM stories WHERE epic_id = ? ORDER BY id`, epicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
