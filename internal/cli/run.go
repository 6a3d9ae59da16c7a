package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/calvinalkan/gh-board/internal/board"
	"github.com/calvinalkan/gh-board/internal/fs"
	"github.com/calvinalkan/gh-board/internal/github"
	"github.com/calvinalkan/gh-board/internal/snapshot"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// defaultCommand runs when the first argument is not a command name, so
// `gh-board myorg 1 --save data.json` works.
const defaultCommand = "show"

var (
	errConflictingIO  = errors.New("--save and --load cannot be used together")
	errOutputRequired = errors.New("--output is required")
)

// deps are the collaborators Run wires into commands.
type deps struct {
	runner github.Runner
	fs     fs.FS
}

// Run is the main entry point. Returns exit code.
// sigCh may be nil; a signal on it cancels the running command.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	return run(deps{runner: github.ExecRunner{}, fs: fs.NewReal()}, in, out, errOut, args, env, sigCh)
}

func run(d deps, _ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	o := NewIO(out, errOut)

	globals := newGlobalFlags()

	if len(args) > 0 {
		args = args[1:]
	}

	if err := globals.fs.Parse(args); err != nil {
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		printUsage(NewIO(errOut, errOut), globals)

		return 1
	}

	remaining := globals.fs.Args()

	if globals.help {
		printUsage(o, globals)

		return 0
	}

	cfg, err := LoadConfig(LoadConfigInput{
		WorkDirOverride: globals.cwd,
		ConfigPath:      globals.config,
		Overrides: Config{
			Owner:   globals.owner,
			Project: ProjectRef(globals.project),
			GH:      globals.gh,
		},
		GHOverridden: globals.fs.Changed("gh"),
		Env:          env,
	})
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	// Bare invocation renders the configured board, if there is one.
	if len(remaining) == 0 {
		if cfg.Owner == "" || cfg.Project == "" {
			printUsage(o, globals)

			return 0
		}

		remaining = []string{defaultCommand}
	}

	log := newLogger(errOut, globals.verbose)
	defer func() { _ = log.Sync() }()

	a := &app{
		cfg:     cfg,
		fetcher: github.NewFetcher(d.runner, cfg.GH, log),
		store:   snapshot.NewStore(d.fs, log),
		log:     log,
	}

	cmd, cmdArgs := newCommands(a).Resolve(remaining, defaultCommand)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return cmd.Run(ctx, o, cmdArgs)
}

type globalFlags struct {
	fs      *flag.FlagSet
	cwd     string
	config  string
	owner   string
	project string
	gh      string
	verbose bool
	help    bool
}

func newGlobalFlags() *globalFlags {
	g := &globalFlags{fs: flag.NewFlagSet("gh-board", flag.ContinueOnError)}

	g.fs.SetInterspersed(false)
	g.fs.SetOutput(&strings.Builder{}) // discard pflag output
	g.fs.StringVarP(&g.cwd, "cwd", "C", "", "Run as if started in `dir`")
	g.fs.StringVarP(&g.config, "config", "c", "", "Use specified config `file`")
	g.fs.StringVar(&g.owner, "owner", "", "Project owner (user or organization)")
	g.fs.StringVar(&g.project, "project", "", "Project `number`")
	g.fs.StringVar(&g.gh, "gh", "", "Path to the gh `binary`")
	g.fs.BoolVarP(&g.verbose, "verbose", "v", false, "Log gh invocations to stderr")
	g.fs.BoolVarP(&g.help, "help", "h", false, "Show help")

	return g
}

func newCommands(a *app) Commands {
	return Commands{
		ShowCmd(a),
		FetchCmd(a),
		LanesCmd(a),
		PrintConfigCmd(a),
	}
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)

	return zap.New(core)
}

func printUsage(o *IO, g *globalFlags) {
	o.Println(`gh-board - GitHub project board digest

Usage: gh-board [global flags] <command> [args]
       gh-board [global flags] <owner> <project> [flags]`)
	o.Println()
	o.Println("Global flags:")

	var buf strings.Builder
	g.fs.SetOutput(&buf)
	g.fs.PrintDefaults()
	g.fs.SetOutput(&strings.Builder{})
	o.Printf("%s", buf.String())

	o.Println()
	o.Println("Commands:")
	newCommands(nil).PrintList(o)

	o.Println()
	o.Println("Run 'gh-board <command> --help' for command flags.")
}

// app carries the resolved configuration and collaborators of one run.
type app struct {
	cfg     Config
	fetcher *github.Fetcher
	store   *snapshot.Store
	log     *zap.Logger
}

// target merges positional [owner] [project] over the configuration.
func (a *app) target(args []string) github.Target {
	t := github.Target{Owner: a.cfg.Owner, Project: string(a.cfg.Project)}

	switch len(args) {
	case 0:
	case 1:
		t.Owner = args[0]
	default:
		t.Owner, t.Project = args[0], args[1]
	}

	return t
}

// path resolves p against the effective working directory.
func (a *app) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(a.cfg.EffectiveCwd, p)
}

// snapshot loads loadPath if set, otherwise fetches the target board.
func (a *app) snapshot(ctx context.Context, loadPath string, args []string) (board.Snapshot, error) {
	if loadPath != "" {
		return a.store.Load(a.path(loadPath))
	}

	return a.fetcher.Fetch(ctx, a.target(args))
}
