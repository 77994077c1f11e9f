// Command vrgesture records gesture examples, trains gesture set
// recognizers and recognizes captured lines.
//
// Captures are read from JSON files holding an array of {"x","y","z"} points.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/neurlang/vrgesture/config"
	"github.com/neurlang/vrgesture/geometry"
	"github.com/neurlang/vrgesture/gesture"
	"github.com/neurlang/vrgesture/logging"
	"github.com/neurlang/vrgesture/manager"
	"github.com/neurlang/vrgesture/store"
	"github.com/neurlang/vrgesture/trainer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is the state shared by all commands, set up before any of them runs
type env struct {
	cfg   config.Config
	log   *zap.Logger
	store *store.Store
	mgr   *manager.Manager
}

var (
	configPath string
	rootDir    string
	logLevel   string

	app env
)

func setup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return err
		}
	}
	if rootDir != "" {
		cfg.Root = rootDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	s := store.NewOs(cfg.Root, log)
	app = env{
		cfg:   cfg,
		log:   log,
		store: s,
		mgr:   manager.New(s, trainer.New(s, cfg, log), log),
	}
	return nil
}

// readLine loads a capture file
func readLine(path string) (geometry.Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read capture")
	}
	var line geometry.Line
	if err := json.Unmarshal(data, &line); err != nil {
		return nil, errors.Wrapf(err, "parse capture %s", path)
	}
	return line, nil
}

func parseHand(s string) (gesture.Hand, error) {
	h, err := gesture.ParseHand(s)
	return h, errors.Wrap(err, "--hand")
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	fail(enc.Encode(v))
}

func main() {
	rootCmd := &cobra.Command{
		Use:               "vrgesture",
		Short:             "record, train and recognize 3D gestures",
		PersistentPreRunE: setup,
		SilenceUsage:      true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "directory of the gesture sets (overrides the config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides the config)")

	rootCmd.AddCommand(setCmd())
	rootCmd.AddCommand(gestureCmd())
	rootCmd.AddCommand(recordCmd())
	rootCmd.AddCommand(trainCmd())
	rootCmd.AddCommand(recognizeCmd())

	err := rootCmd.Execute()
	if app.log != nil {
		_ = app.log.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func fail(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
