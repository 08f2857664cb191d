// Package demo fills an empty board with sample epics and stories.
package demo

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/jask/taskboard/internal/database/repository"
)

// Board is the part of the tracker Seed writes through.
type Board interface {
	CreateEpic(ctx context.Context, d repository.EpicDraft) (int64, error)
	CreateStory(ctx context.Context, epicID int64, d repository.StoryDraft) (int64, error)
	UpdateEpicStatus(ctx context.Context, id int64, s repository.Status) error
	UpdateStoryStatus(ctx context.Context, id int64, s repository.Status) error
}

type sampleEpic struct {
	name    string
	desc    string
	stories []string
}

var samples = []sampleEpic{
	{
		name: "Onboarding",
		desc: "First-run experience for new users",
		stories: []string{
			"Welcome screen",
			"Import an existing board",
			"Keyboard shortcut cheat sheet",
		},
	},
	{
		name: "Search",
		desc: "Find epics and stories by name",
		stories: []string{
			"Index story names",
			"Fuzzy matching",
		},
	},
	{
		name: "Release 1.0",
		desc: "Everything left before the first tagged release",
		stories: []string{
			"Write the changelog",
			"Package for Homebrew",
			"Publish snapshot format docs",
			"Smoke test on Windows",
		},
	},
	{name: "Icebox", desc: "Ideas nobody has picked up yet"},
}

// Result counts what Seed created.
type Result struct {
	Epics   int
	Stories int
}

// Seed creates the sample epics with their stories. Statuses are drawn
// from rng so repeated demos look different; pass a seeded source for a
// stable board.
func Seed(ctx context.Context, b Board, rng *rand.Rand) (Result, error) {
	var res Result
	for _, e := range samples {
		epicID, err := b.CreateEpic(ctx, repository.EpicDraft{Name: e.name, Description: e.desc})
		if err != nil {
			return res, fmt.Errorf("seed epic %q: %w", e.name, err)
		}
		res.Epics++
		if err := b.UpdateEpicStatus(ctx, epicID, pick(rng)); err != nil {
			return res, err
		}
		for _, name := range e.stories {
			storyID, err := b.CreateStory(ctx, epicID, repository.StoryDraft{Name: name})
			if err != nil {
				return res, fmt.Errorf("seed story %q: %w", name, err)
			}
			res.Stories++
			if err := b.UpdateStoryStatus(ctx, storyID, pick(rng)); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

func pick(rng *rand.Rand) repository.Status {
	return repository.Statuses[rng.IntN(len(repository.Statuses))]
}
