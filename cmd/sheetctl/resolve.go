package main

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newResolveCommand(v *viper.Viper) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "resolve SHEET KEY",
		Short: "Print the rule chain a sheet resolves for a key",
		Long: `Print the rule chain a sheet resolves for a key, most general rule
first.

Examples:
  sheetctl --types types.yaml resolve fancy ui.form.Button
  sheetctl resolve fancy ui.form.Button --dump`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd, v)
			if err != nil {
				return err
			}
			defer ws.close()
			s, err := ws.sheet(args[0])
			if err != nil {
				return err
			}
			key, ok := ws.universe.Lookup(args[1])
			if !ok {
				return fmt.Errorf("unknown key %q", args[1])
			}

			chain := s.Resolve(key)
			out := cmd.OutOrStdout()
			header := color.New(color.FgCyan, color.Bold)
			header.Fprintf(out, "%s[%s]\n", s.Name(), key.Name())
			fmt.Fprintf(out, "  sheets: %s\n", strings.Join(names(s.Linearization()), " > "))
			fmt.Fprintf(out, "  keys:   %s\n", strings.Join(names(key.Linearization()), " > "))
			if len(chain) == 0 {
				fmt.Fprintln(out, color.YellowString("  (no rules)"))
				return nil
			}
			for i, rule := range chain {
				fmt.Fprintf(out, "  %d. %s", i+1, rule.Name)
				if rule.Ref != "" && rule.Ref != rule.Name {
					fmt.Fprintf(out, " (%s)", rule.Ref)
				}
				fmt.Fprintf(out, " -> %s\n", strings.Join(names(rule.Targets()), ", "))
			}
			if dump {
				spew.Fdump(out, chain)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the resolved chain")
	return cmd
}

func names[T interface{ Name() string }](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name()
	}
	return out
}
