package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/taskboard/internal/database/repository"
	"github.com/jask/taskboard/internal/snapshot"
)

func TestMaintenanceExportResetImport(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	db := openTestDB(t)
	tr := NewTracker(db)
	svc := &MaintenanceService{DB: db}

	epicID, err := tr.CreateEpic(ctx, repository.EpicDraft{Name: "Epic", Description: "d"})
	require.NoError(t, err)
	storyID, err := tr.CreateStory(ctx, epicID, repository.StoryDraft{Name: "Story"})
	require.NoError(t, err)
	require.NoError(t, tr.UpdateStoryStatus(ctx, storyID, repository.StatusResolved))

	doc, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, snapshot.Version, doc.Version)
	require.Len(t, doc.Epics, 1)
	require.Len(t, doc.Epics[0].Stories, 1)
	require.Equal(t, "resolved", doc.Epics[0].Stories[0].Status)

	require.NoError(t, svc.Reset(ctx))
	list, err := tr.Epics(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, svc.Import(ctx, doc))
	e, err := tr.Epic(ctx, epicID)
	require.NoError(t, err)
	require.Equal(t, "Epic", e.Name)
	require.Equal(t, []int64{storyID}, e.Stories)
	st, err := tr.Story(ctx, storyID)
	require.NoError(t, err)
	require.Equal(t, repository.StatusResolved, st.Status)

	// New rows continue after the imported ids.
	next, err := tr.CreateEpic(ctx, repository.EpicDraft{Name: "Next"})
	require.NoError(t, err)
	require.Greater(t, next, epicID)
}

func TestMaintenanceImportIsAtomic(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	db := openTestDB(t)
	tr := NewTracker(db)
	svc := &MaintenanceService{DB: db}

	_, err := tr.CreateEpic(ctx, repository.EpicDraft{Name: "keep me"})
	require.NoError(t, err)

	bad := snapshot.Document{Version: snapshot.Version, Epics: []snapshot.Epic{
		{ID: 1, Name: "ok", Status: "open"},
		{ID: 2, Name: "broken", Status: "sleeping"},
	}}
	require.Error(t, svc.Import(ctx, bad))

	list, err := tr.Epics(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "keep me", list[0].Name)
}

func TestMaintenanceRequiresDB(t *testing.T) {
	svc := &MaintenanceService{}
	require.Error(t, svc.Reset(testContext(t)))
	_, err := svc.Export(testContext(t))
	require.Error(t, err)
}
