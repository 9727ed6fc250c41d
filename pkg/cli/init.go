package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/platinummonkey/csshint/pkg/linter"
	"github.com/platinummonkey/csshint/pkg/linter/rules"
)

// newInitCommand creates the init command
func newInitCommand() *Command {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	dir := fs.String("dir", ".", "Directory to write the configuration file to")
	force := fs.Bool("force", false, "Overwrite an existing configuration file")

	return &Command{
		Name:        "init",
		Description: "Write a .csshintrc with every rule's default",
		Flags:       fs,
		Run: func(args []string) error {
			if ok, err := parseFlags(fs, args); !ok {
				return err
			}
			return runInit(*dir, *force)
		},
	}
}

func runInit(dir string, force bool) error {
	path := filepath.Join(dir, linter.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}

	if err := linter.SaveConfig(rules.NewRegistry().Defaults(), path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(stdout, "Wrote %s\n", path)
	return err
}
