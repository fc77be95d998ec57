// Package cli provides shared utilities for the deskhive and deskhived commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const helpJSONFlag = "help-json"

// CommandDoc is the machine-readable command description emitted by
// --help-json. Shell tooling consumes it instead of scraping help text.
type CommandDoc struct {
	Name        string       `json:"name"`
	Use         string       `json:"use,omitempty"`
	Description string       `json:"description,omitempty"`
	Long        string       `json:"long,omitempty"`
	Flags       []FlagDoc    `json:"flags,omitempty"`
	Subcommands []CommandDoc `json:"subcommands,omitempty"`
}

// FlagDoc describes one flag of a command.
type FlagDoc struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// Describe walks a cobra command tree into a CommandDoc. Hidden commands
// and cobra's built-in help are left out.
func Describe(cmd *cobra.Command) CommandDoc {
	doc := CommandDoc{
		Name:        cmd.Name(),
		Use:         cmd.Use,
		Description: cmd.Short,
		Long:        cmd.Long,
	}

	_, required := cmd.Annotations[cobra.BashCompOneRequiredFlag]
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" || f.Name == helpJSONFlag {
			return
		}
		doc.Flags = append(doc.Flags, FlagDoc{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
			Description: f.Usage,
			Required:    required,
		})
	})

	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" {
			continue
		}
		doc.Subcommands = append(doc.Subcommands, Describe(sub))
	}

	return doc
}

// AddHelpJSONFlag registers --help-json on the command and its children.
func AddHelpJSONFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(helpJSONFlag, false, "Output command schema as JSON")
}

// CheckHelpJSON scans os.Args for --help-json and, when present, prints the
// schema of the addressed subcommand and exits. It runs before Execute so a
// missing positional argument does not block the output.
func CheckHelpJSON(root *cobra.Command) {
	args := os.Args[1:]
	for i, arg := range args {
		if arg != "--"+helpJSONFlag {
			continue
		}
		out, err := json.MarshalIndent(Describe(resolveCommand(root, args[:i])), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		os.Exit(0)
	}
}

// resolveCommand follows the leading command words, stopping at the first
// one that is not a known subcommand name or alias.
func resolveCommand(cmd *cobra.Command, path []string) *cobra.Command {
	for _, word := range path {
		matched := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == word || sub.HasAlias(word) {
				cmd = sub
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	return cmd
}
