package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/jask/taskboard/internal/database/repository"
	"github.com/jask/taskboard/internal/service"
	"github.com/jask/taskboard/internal/snapshot"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setup(t *testing.T) (home, dbPath string) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKBOARD_CONFIG", "")
	return home, filepath.Join(home, "data", "board.db")
}

func seed(t *testing.T, dbPath string) {
	t.Helper()
	db, err := openDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	tr := service.NewTracker(db)
	id, err := tr.CreateEpic(ctx, repository.EpicDraft{Name: "Epic - Project 1"})
	require.NoError(t, err)
	_, err = tr.CreateStory(ctx, id, repository.StoryDraft{Name: "Story - Project 1"})
	require.NoError(t, err)
}

func TestExportResetImport(t *testing.T) {
	home, dbPath := setup(t)
	seed(t, dbPath)
	file := filepath.Join(home, "board.json")

	out, err := execute(t, "export", file, "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "exported 1 epics, 1 stories")
	doc, err := snapshot.Read(file)
	require.NoError(t, err)
	require.Equal(t, "Epic - Project 1", doc.Epics[0].Name)

	_, err = execute(t, "reset", "--db", dbPath)
	require.ErrorContains(t, err, "--yes")

	out, err = execute(t, "reset", "--yes", "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "board reset")

	out, err = execute(t, "import", file, "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "imported 1 epics, 1 stories")

	db, err := openDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()
	stories, err := service.NewTracker(db).Stories(context.Background(), doc.Epics[0].ID)
	require.NoError(t, err)
	require.Len(t, stories, 1)
}

func TestSeedOnlyEmptyBoard(t *testing.T) {
	_, dbPath := setup(t)
	out, err := execute(t, "seed", "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "seeded 4 epics, 9 stories")

	_, err = execute(t, "seed", "--db", dbPath)
	require.ErrorContains(t, err, "already has 4 epics")
}

func TestImportMissingFile(t *testing.T) {
	home, dbPath := setup(t)
	_, err := execute(t, "import", filepath.Join(home, "nope.json"), "--db", dbPath)
	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	home, _ := setup(t)
	path := filepath.Join(home, "cfg", "config.toml")

	out, err := execute(t, "config", "init", "--config", path, "--plain")
	require.NoError(t, err)
	require.Contains(t, out, "wrote "+path)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "plain")

	_, err = execute(t, "config", "init", "--config", path)
	require.ErrorContains(t, err, "already exists")
	_, err = execute(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestUnknownSubcommand(t *testing.T) {
	setup(t)
	_, err := execute(t, "frobnicate")
	require.Error(t, err)
}
