package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stackb/rulesheet/pkg/sheetfile"
)

func newFmtCommand(v *viper.Viper) *cobra.Command {
	var output string
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Print every loaded sheet in canonical form",
		Long: `Print every loaded sheet as a single canonical sheet file.  Wildcard
targets are expanded and extensions are folded into the sheet they extend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd, v)
			if err != nil {
				return err
			}
			defer ws.close()
			data, err := sheetfile.Format(ws.library)
			if err != nil {
				return err
			}

			if check {
				if output == "" {
					return fmt.Errorf("--check requires --output")
				}
				existing, err := os.ReadFile(output)
				if err != nil {
					return err
				}
				if !bytes.Equal(existing, data) {
					return fmt.Errorf("%s is not formatted", output)
				}
				return nil
			}
			if output != "" {
				return os.WriteFile(output, data, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&check, "check", false, "fail if --output differs from the canonical form")
	return cmd
}
