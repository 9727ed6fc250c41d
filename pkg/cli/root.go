package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

var (
	// ErrIssuesFound is returned when a check reported diagnostics.
	ErrIssuesFound = errors.New("issues found")
	// ErrNoFiles is returned when no file matched the given paths.
	ErrNoFiles = errors.New("no files to check")
)

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet
}

// NewRootCommand creates the root command
func NewRootCommand() *Command {
	root := &Command{
		Name:        "csshint",
		Description: "csshint - A CSS code style linter",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("csshint", flag.ContinueOnError),
	}

	// Add subcommands
	root.Subcommands["check"] = newCheckCommand()
	root.Subcommands["rules"] = newRulesCommand()
	root.Subcommands["init"] = newInitCommand()
	root.Subcommands["serve"] = newServeCommand()
	root.Subcommands["version"] = newVersionCommand()

	return root
}

// Execute runs the command with the process arguments
func (c *Command) Execute() error {
	return c.ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the command with the given arguments. Arguments that do
// not name a subcommand are treated as paths for check.
func (c *Command) ExecuteArgs(args []string) error {
	if len(args) == 0 {
		return c.usage()
	}

	// Check for help flag
	if strings.EqualFold(args[0], "-h") || strings.EqualFold(args[0], "--help") {
		return c.usage()
	}

	// Check for subcommand
	if subcmd, ok := c.Subcommands[args[0]]; ok {
		return subcmd.Run(args[1:])
	}

	return c.Subcommands["check"].Run(args)
}

// usage prints the command usage
func (c *Command) usage() error {
	fmt.Fprintf(stdout, "Usage: %s <command> [args]\n\n", c.Name)
	fmt.Fprintf(stdout, "Commands:\n")

	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(stdout, "  %-15s %s\n", name, c.Subcommands[name].Description)
	}
	return nil
}

// ExitCode maps the result of Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrIssuesFound):
		return 1
	default:
		return 2
	}
}

// parseFlags parses args, treating -h as success.
func parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func newVersionCommand() *Command {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	return &Command{
		Name:        "version",
		Description: "Print the csshint version",
		Flags:       fs,
		Run: func(args []string) error {
			if ok, err := parseFlags(fs, args); !ok {
				return err
			}
			_, err := fmt.Fprintf(stdout, "csshint %s\n", Version)
			return err
		},
	}
}
