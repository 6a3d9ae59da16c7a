package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

var errTooManyArgs = errors.New("too many arguments")

// Command is one gh-board subcommand.
type Command struct {
	// Flags are the command's own flags; the set's name is ignored.
	Flags *flag.FlagSet

	// Usage follows "gh-board" in help output and starts with the
	// command name, e.g. "fetch [owner] [project] -o <file>".
	Usage string

	// Short is listed in the global usage, Long in "<cmd> --help".
	Short string
	Long  string

	// MaxArgs caps positional arguments. Extra ones are a usage error.
	MaxArgs int

	Exec func(ctx context.Context, o *IO, args []string) error
}

// usageError marks an error caused by how the command was invoked. Run
// follows it with the command help on stderr.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usage(err error) error { return usageError{err: err} }

// Name is the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// PrintHelp writes the help shown by "gh-board <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: gh-board", c.Usage)
	o.Println()

	if c.Long != "" {
		o.Println(c.Long)
	} else {
		o.Println(c.Short)
	}

	if c.Flags == nil || !c.Flags.HasFlags() {
		return
	}

	var buf strings.Builder

	c.Flags.SetOutput(&buf)
	c.Flags.PrintDefaults()
	c.Flags.SetOutput(&strings.Builder{})

	o.Println()
	o.Println("Flags:")
	o.Printf("%s", buf.String())
}

// Run parses args, runs Exec and returns the exit code. Errors are
// printed here so that help always follows the error line.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	err := c.parse(args)
	if errors.Is(err, flag.ErrHelp) {
		c.PrintHelp(o)

		return 0
	}

	if err == nil {
		err = c.Exec(ctx, o, c.Flags.Args())
	}

	if err == nil {
		return 0
	}

	o.ErrPrintln("error:", err)

	var uerr usageError
	if errors.As(err, &uerr) {
		o.ErrPrintln()
		c.PrintHelp(NewIO(o.errOut, o.errOut))
	}

	return 1
}

func (c *Command) parse(args []string) error {
	c.Flags.SetOutput(&strings.Builder{})

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}

		return usage(err)
	}

	if extra := c.Flags.Args(); len(extra) > c.MaxArgs {
		return usage(fmt.Errorf("%w: %s", errTooManyArgs, strings.Join(extra[c.MaxArgs:], " ")))
	}

	return nil
}

// Commands is the command table, in the order usage lists it.
type Commands []*Command

// Lookup returns the command called name, or nil.
func (cs Commands) Lookup(name string) *Command {
	for _, c := range cs {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// Resolve picks the command named by args[0] and returns it with its
// arguments. When args[0] names no command, fallback runs with all args.
func (cs Commands) Resolve(args []string, fallback string) (*Command, []string) {
	if len(args) > 0 {
		if c := cs.Lookup(args[0]); c != nil {
			return c, args[1:]
		}
	}

	return cs.Lookup(fallback), args
}

// PrintList writes one aligned "usage  short" line per command.
func (cs Commands) PrintList(o *IO) {
	width := 0
	for _, c := range cs {
		width = max(width, len(c.Usage))
	}

	for _, c := range cs {
		o.Printf("  %-*s  %s\n", width, c.Usage, c.Short)
	}
}
