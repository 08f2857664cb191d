package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jask/taskboard/internal/database"
	"github.com/jask/taskboard/internal/database/repository"
	"github.com/jask/taskboard/internal/snapshot"
)

// MaintenanceService houses whole-board operations surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes all epics and stories. It keeps the schema intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		return wipe(ctx, tx)
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}

// Export reads the whole board into a snapshot document.
func (s *MaintenanceService) Export(ctx context.Context) (snapshot.Document, error) {
	if s.DB == nil {
		return snapshot.Document{}, fmt.Errorf("maintenance: db not configured")
	}
	doc := snapshot.Document{Version: snapshot.Version, ExportedAt: database.Now()}
	epics, err := repository.NewEpicRepo(s.DB).List(ctx)
	if err != nil {
		return snapshot.Document{}, fmt.Errorf("export epics: %w", err)
	}
	stories := repository.NewStoryRepo(s.DB)
	for _, e := range epics {
		list, err := stories.ListByEpic(ctx, e.ID)
		if err != nil {
			return snapshot.Document{}, fmt.Errorf("export stories of epic %d: %w", e.ID, err)
		}
		se := snapshot.Epic{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Status:      string(e.Status),
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
			Stories:     make([]snapshot.Story, 0, len(list)),
		}
		for _, st := range list {
			se.Stories = append(se.Stories, snapshot.Story{
				ID:          st.ID,
				Name:        st.Name,
				Description: st.Description,
				Status:      string(st.Status),
				CreatedAt:   st.CreatedAt,
				UpdatedAt:   st.UpdatedAt,
			})
		}
		doc.Epics = append(doc.Epics, se)
	}
	return doc, nil
}

// Import replaces the board with doc in a single transaction, keeping ids.
func (s *MaintenanceService) Import(ctx context.Context, doc snapshot.Document) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	return database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := wipe(ctx, tx); err != nil {
			return err
		}
		epics := repository.NewEpicRepo(tx)
		stories := repository.NewStoryRepo(tx)
		for _, e := range doc.Epics {
			status, err := repository.ParseStatus(e.Status)
			if err != nil {
				return fmt.Errorf("epic %d: %w", e.ID, err)
			}
			if err := epics.InsertWithID(ctx, repository.Epic{
				ID:          e.ID,
				Name:        e.Name,
				Description: e.Description,
				Status:      status,
				CreatedAt:   stamp(e.CreatedAt),
				UpdatedAt:   stamp(e.UpdatedAt),
			}); err != nil {
				return fmt.Errorf("import epic %d: %w", e.ID, err)
			}
			for _, st := range e.Stories {
				status, err := repository.ParseStatus(st.Status)
				if err != nil {
					return fmt.Errorf("story %d: %w", st.ID, err)
				}
				if err := stories.InsertWithID(ctx, repository.Story{
					ID:          st.ID,
					EpicID:      e.ID,
					Name:        st.Name,
					Description: st.Description,
					Status:      status,
					CreatedAt:   stamp(st.CreatedAt),
					UpdatedAt:   stamp(st.UpdatedAt),
				}); err != nil {
					return fmt.Errorf("import story %d: %w", st.ID, err)
				}
			}
		}
		return nil
	})
}

func wipe(ctx context.Context, tx *sql.Tx) error {
	for _, t := range []string{"stories", "epics"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return fmt.Errorf("reset table %s: %w", t, err)
		}
	}
	return nil
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return database.Now()
	}
	return t
}
