package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/calvinalkan/gh-board/internal/board"
)

// FakeRunner answers `gh project` queries from an in-memory board.
// Used by tests in place of [ExecRunner].
type FakeRunner struct {
	Fields board.Fields
	Items  []board.Item

	// Fail makes calls whose joined args contain the key return the error.
	Fail map[string]error

	mu    sync.Mutex
	calls [][]string
}

var errUnknownQuery = errors.New("fake gh: unknown query")

// Run implements [Runner].
func (r *FakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string{name}, args...))
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	joined := strings.Join(args, " ")
	for key, err := range r.Fail {
		if strings.Contains(joined, key) {
			return nil, err
		}
	}

	switch {
	case slices.Contains(args, "field-list"):
		return json.Marshal(map[string]any{"fields": r.Fields, "totalCount": len(r.Fields)})
	case slices.Contains(args, "item-list"):
		limit := 0
		if i := slices.Index(args, "--limit"); i >= 0 && i+1 < len(args) {
			_, _ = fmt.Sscanf(args[i+1], "%d", &limit)
		}

		items := r.Items
		if limit < len(items) {
			items = items[:limit]
		}

		return json.Marshal(map[string]any{"items": items, "totalCount": len(r.Items)})
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownQuery, joined)
	}
}

// Calls returns the argument lists seen so far, binary first.
func (r *FakeRunner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.calls)
}
