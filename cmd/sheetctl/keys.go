package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stackb/rulesheet/pkg/keys"
)

func newKeysCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "keys SHEET",
		Short: "List the keys a sheet has rules for",
		Long: `List every key bound by a sheet or one of its ancestors, with the
rule chain the sheet resolves for it.`,
		Args: cobra.ExactArgs(1),
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

			var bound []keys.Key
			for key := range s.Keys() {
				bound = append(bound, key)
			}
			sort.Slice(bound, func(i, j int) bool {
				return bound[i].Name() < bound[j].Name()
			})

			out := cmd.OutOrStdout()
			color.New(color.FgCyan, color.Bold).Fprintln(out, s.Name())
			for _, key := range bound {
				fmt.Fprintf(out, "  %s: %s\n", key.Name(), strings.Join(s.Resolve(key).Names(), ", "))
			}
			return nil
		},
	}
}
