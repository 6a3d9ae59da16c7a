// Package github retrieves project boards through the gh command line.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/calvinalkan/gh-board/internal/board"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultBinary is the gh executable looked up on PATH.
const DefaultBinary = "gh"

// Error variables for retrieval.
var (
	ErrOwnerRequired   = errors.New("owner is required")
	ErrProjectRequired = errors.New("project number is required")
	ErrInvalidProject  = errors.New("project must be a positive number")
	ErrCommandFailed   = errors.New("gh command failed")
	ErrInvalidResponse = errors.New("invalid gh response")
)

// Target identifies a project board.
type Target struct {
	Owner   string
	Project string
}

// Validate checks that owner and project are usable as gh arguments.
func (t Target) Validate() error {
	if strings.TrimSpace(t.Owner) == "" {
		return ErrOwnerRequired
	}

	if strings.TrimSpace(t.Project) == "" {
		return ErrProjectRequired
	}

	n, err := strconv.Atoi(t.Project)
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProject, t.Project)
	}

	return nil
}

// Fetcher builds snapshots from `gh project` queries.
type Fetcher struct {
	runner Runner
	binary string
	log    *zap.Logger
}

// NewFetcher returns a Fetcher. Empty binary means [DefaultBinary], a nil
// logger disables logging.
func NewFetcher(runner Runner, binary string, log *zap.Logger) *Fetcher {
	if binary == "" {
		binary = DefaultBinary
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Fetcher{runner: runner, binary: binary, log: log}
}

type fieldListResponse struct {
	Fields board.Fields `json:"fields"`
}

type itemListResponse struct {
	Items      []board.Item `json:"items"`
	TotalCount int          `json:"totalCount"`
}

// Fetch retrieves the field definitions and every item of the project.
//
// The field list and a one-item query for the total count run
// concurrently; the full item list is requested with that count as limit.
func (f *Fetcher) Fetch(ctx context.Context, target Target) (board.Snapshot, error) {
	if err := target.Validate(); err != nil {
		return board.Snapshot{}, err
	}

	var (
		fields fieldListResponse
		sample itemListResponse
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return f.query(egCtx, &fields, "project", "field-list", target.Project, "--owner", target.Owner, "--format", "json")
	})

	eg.Go(func() error {
		return f.query(egCtx, &sample, "project", "item-list", target.Project, "--owner", target.Owner, "--limit", "1", "--format", "json")
	})

	if err := eg.Wait(); err != nil {
		return board.Snapshot{}, err
	}

	snap := board.Snapshot{Fields: fields.Fields, Items: []board.Item{}}

	if sample.TotalCount <= 0 {
		f.log.Debug("project has no items", zap.String("owner", target.Owner), zap.String("project", target.Project))

		return snap, nil
	}

	var all itemListResponse

	limit := strconv.Itoa(sample.TotalCount)

	err := f.query(ctx, &all, "project", "item-list", target.Project, "--owner", target.Owner, "--limit", limit, "--format", "json")
	if err != nil {
		return board.Snapshot{}, err
	}

	if all.Items != nil {
		snap.Items = all.Items
	}

	f.log.Debug("project fetched",
		zap.Int("fields", len(snap.Fields)),
		zap.Int("items", len(snap.Items)),
		zap.Int("total", sample.TotalCount))

	return snap, nil
}

func (f *Fetcher) query(ctx context.Context, dst any, args ...string) error {
	f.log.Debug("running gh", zap.String("binary", f.binary), zap.Strings("args", args))

	out, err := f.runner.Run(ctx, f.binary, args...)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrCommandFailed, f.binary, strings.Join(args[:2], " "), err)
	}

	if err := json.Unmarshal(out, dst); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrInvalidResponse, f.binary, strings.Join(args[:2], " "), err)
	}

	return nil
}
