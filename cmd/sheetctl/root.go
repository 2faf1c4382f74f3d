package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stackb/rulesheet/pkg/keys"
	"github.com/stackb/rulesheet/pkg/logger"
	"github.com/stackb/rulesheet/pkg/sheet"
	"github.com/stackb/rulesheet/pkg/sheetfile"
)

const (
	envPrefix      = "RULESHEET"
	configName     = ".rulesheet"
	defaultPattern = "**/*.star"
)

func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfgFile string

	root := &cobra.Command{
		Use:   "sheetctl",
		Short: "Inspect rule sheet files",
		Long: `sheetctl loads a key hierarchy and a set of sheet files and reports
how rules cascade through them.

Flags may also be set in .rulesheet.yaml in the sheet directory or as
RULESHEET_* environment variables (for example RULESHEET_TYPES).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfig(v, cfgFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: <dir>/.rulesheet.yaml)")
	flags.StringP("dir", "C", ".", "directory sheet patterns are relative to")
	flags.StringP("types", "t", "", "YAML file declaring the key hierarchy")
	flags.StringArrayP("sheets", "s", nil, "sheet file pattern, repeatable; !-prefixed patterns exclude (default: **/*.star)")
	flags.Bool("debug", false, "log at the debug level")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	_ = v.BindPFlags(flags)

	root.AddCommand(
		newResolveCommand(v),
		newKeysCommand(v),
		newFmtCommand(v),
	)
	return root
}

func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(v.GetString("dir"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// workspace is the loaded state every command operates on.
type workspace struct {
	universe *keys.Universe
	library  *sheetfile.Library
	files    []string
	log      zerolog.Logger
	close    func() error
}

func loadWorkspace(cmd *cobra.Command, v *viper.Viper) (*workspace, error) {
	log, closeLog, err := logger.FromEnv(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	ws := &workspace{log: log, close: closeLog}
	if err := ws.load(v); err != nil {
		closeLog()
		return nil, err
	}
	return ws, nil
}

func (w *workspace) load(v *viper.Viper) error {
	log := w.log
	if name := v.GetString("log-level"); name != "" {
		level, err := logger.ParseLevel(name)
		if err != nil {
			return err
		}
		log = log.Level(level)
	}
	if v.GetBool("debug") {
		log = log.Level(zerolog.DebugLevel)
	}

	universe := keys.NewUniverse()
	if types := v.GetString("types"); types != "" {
		f, err := os.Open(types)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := keys.LoadYAML(universe, f); err != nil {
			return fmt.Errorf("%s: %w", types, err)
		}
	}

	patterns := v.GetStringSlice("sheets")
	if len(patterns) == 0 {
		patterns = []string{defaultPattern}
	}
	loader := sheetfile.NewLoader(universe, sheetfile.WithLogger(log))
	files, err := loader.LoadGlob(os.DirFS(v.GetString("dir")), patterns...)
	if err != nil {
		return err
	}
	log.Debug().
		Strs("files", files).
		Int("keys", len(universe.Names())).
		Int("sheets", len(loader.Library().Names())).
		Msg("workspace loaded")

	w.universe = universe
	w.library = loader.Library()
	w.files = files
	w.log = log
	return nil
}

func (w *workspace) sheet(name string) (*sheet.Sheet, error) {
	s, ok := w.library.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown sheet %q (have %s)", name, strings.Join(w.library.Names(), ", "))
	}
	return s, nil
}
