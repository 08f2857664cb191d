// Package pages holds the concrete board pages driven by the navigator.
//
// Pages only read from the store. Every change to stored data is returned
// as a navigator.Action so that the navigator can apply the write and the
// stack change together.
package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/taskboard/internal/database/repository"
	"github.com/jask/taskboard/internal/ui/table"
)

// Store is the read side of the persistence collaborator. Lookups of a
// missing epic or story fail with an error matching service.ErrNotFound.
type Store interface {
	Epic(ctx context.Context, id int64) (repository.Epic, error)
	Epics(ctx context.Context) ([]repository.Epic, error)
	Story(ctx context.Context, id int64) (repository.Story, error)
	Stories(ctx context.Context, epicID int64) ([]repository.Story, error)
}

// Deps is shared by every page; it is built once at startup.
type Deps struct {
	Store Store
	Style table.Style
}

func (d *Deps) table(title string) *table.Builder {
	return table.NewBuilder().Title(title).Style(d.Style)
}

// backCommand leaves a form without saving.
const backCommand = ":p"

func parseID(input string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// screen joins the parts of a page with blank lines and appends the
// notice, if any.
func screen(notice string, parts ...string) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p)
		if !strings.HasSuffix(p, "\n") {
			b.WriteByte('\n')
		}
	}
	if notice != "" {
		fmt.Fprintf(&b, "\n! %s\n", notice)
	}
	return b.String()
}
