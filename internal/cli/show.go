package cli

import (
	"context"

	"github.com/calvinalkan/gh-board/internal/board"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

// ShowCmd returns the show command.
func ShowCmd(a *app) *Command {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.StringP("save", "s", "", "Save the retrieved snapshot to `file`")
	fs.StringP("load", "l", "", "Render a snapshot from `file` instead of querying gh")

	return &Command{
		Flags:   fs,
		MaxArgs: 2,
		Usage: "show [owner] [project] [flags]",
		Short: "Render the board (default command)",
		Long: `Fetch the project board with gh and print it grouped by status.

Owner and project default to the configured values. Lanes follow the
order of the Status field; Backlog and Done are left out. Only items
whose title carries an issue key (e.g. AB-123) are listed.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execShow(ctx, io, a, fs, args)
		},
	}
}

func execShow(ctx context.Context, io *IO, a *app, fs *flag.FlagSet, args []string) error {
	savePath, _ := fs.GetString("save")
	loadPath, _ := fs.GetString("load")

	if savePath != "" && loadPath != "" {
		return usage(errConflictingIO)
	}

	snap, err := a.snapshot(ctx, loadPath, args)
	if err != nil {
		return err
	}

	lanes, err := board.Build(snap)
	if err != nil {
		return err
	}

	if savePath != "" {
		if err := a.store.Save(a.path(savePath), snap); err != nil {
			return err
		}
	}

	a.log.Debug("board built", zap.Int("lanes", len(lanes)))

	io.Println(board.Render(lanes))

	return nil
}

// FetchCmd returns the fetch command.
func FetchCmd(a *app) *Command {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.StringP("output", "o", "", "Write the snapshot to `file` (required)")

	return &Command{
		Flags:   fs,
		MaxArgs: 2,
		Usage: "fetch [owner] [project] -o <file>",
		Short: "Save a board snapshot without rendering",
		Long: `Query gh for the project's fields and items and write them to a JSON
file. Render it later with 'gh-board show --load <file>'.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execFetch(ctx, io, a, fs, args)
		},
	}
}

func execFetch(ctx context.Context, io *IO, a *app, fs *flag.FlagSet, args []string) error {
	output, _ := fs.GetString("output")
	if output == "" {
		return usage(errOutputRequired)
	}

	snap, err := a.fetcher.Fetch(ctx, a.target(args))
	if err != nil {
		return err
	}

	path := a.path(output)

	if err := a.store.Save(path, snap); err != nil {
		return err
	}

	io.Printf("saved %d items to %s\n", len(snap.Items), path)

	return nil
}

// LanesCmd returns the lanes command.
func LanesCmd(a *app) *Command {
	fs := flag.NewFlagSet("lanes", flag.ContinueOnError)
	fs.StringP("load", "l", "", "Read a snapshot from `file` instead of querying gh")

	return &Command{
		Flags:   fs,
		MaxArgs: 2,
		Usage: "lanes [owner] [project] [flags]",
		Short: "List active lanes with item counts",
		Long:  "Print one line per active lane: status, item count and status tag, tab separated.",
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execLanes(ctx, io, a, fs, args)
		},
	}
}

func execLanes(ctx context.Context, io *IO, a *app, fs *flag.FlagSet, args []string) error {
	loadPath, _ := fs.GetString("load")

	snap, err := a.snapshot(ctx, loadPath, args)
	if err != nil {
		return err
	}

	lanes, err := board.Build(snap)
	if err != nil {
		return err
	}

	for _, lane := range lanes {
		io.Printf("%s\t%d\t%s\n", lane.Status, len(lane.Items), board.StatusTag(lane.Status))
	}

	return nil
}
