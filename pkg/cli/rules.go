package cli

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/platinummonkey/csshint/pkg/linter"
	"github.com/platinummonkey/csshint/pkg/linter/rules"
)

// newRulesCommand creates the rules command
func newRulesCommand() *Command {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	format := fs.String("format", "text", "Output format: text, json")

	return &Command{
		Name:        "rules",
		Description: "List available rules and their defaults",
		Flags:       fs,
		Run: func(args []string) error {
			if ok, err := parseFlags(fs, args); !ok {
				return err
			}
			return listRules(rules.NewRegistry(), *format)
		},
	}
}

func listRules(registry *linter.RuleRegistry, format string) error {
	allRules := registry.Summaries()

	switch format {
	case "json":
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(allRules)
	case "text":
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	fmt.Fprintf(stdout, "Available rules (%d):\n\n", len(allRules))
	for _, rule := range allRules {
		def, err := json.Marshal(rule.Default)
		if err != nil {
			return fmt.Errorf("failed to encode default of %s: %w", rule.Name, err)
		}
		fmt.Fprintf(stdout, "  - %-36s %s\n    %s\n", rule.Name, def, rule.Description)
	}
	fmt.Fprintf(stdout, "\n%s defaults to %d; 0 disables the limit.\n", linter.MaxErrorKey, linter.DefaultMaxErrors)
	return nil
}
