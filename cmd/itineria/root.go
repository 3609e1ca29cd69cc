package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/itineria/config"
	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/loader"
)

// errNoPath is returned by search when the goal is unreachable, so the
// process exits non-zero after printing the empty route.
var errNoPath = errors.New("no path")

// input holds the persistent flags and the state prepared for subcommands.
type input struct {
	configPath string
	envFiles   []string
	network    string
	towns      string
	roads      string
	verbose    bool
	logFormat  string

	cfg   config.Config
	graph *core.Graph
	log   *logrus.Logger
}

func newRootCommand(version string) *cobra.Command {
	in := &input{}
	root := &cobra.Command{
		Use:               "itineria",
		Short:             "Route between towns with breadth-first, depth-first, uniform-cost, greedy and A* search",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: in.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&in.configPath, "config", "c", "", "YAML config file (default: itineria/config.yaml under the XDG config dirs)")
	pf.StringSliceVar(&in.envFiles, "env", []string{".env"}, ".env files to read, missing ones are skipped")
	pf.StringVar(&in.network, "network", "", "YAML network file")
	pf.StringVar(&in.towns, "towns", "", "towns CSV file (with --roads)")
	pf.StringVar(&in.roads, "roads", "", "roads CSV file (with --towns)")
	pf.BoolVarP(&in.verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&in.logFormat, "log-format", "", "log format: text, json or auto")

	root.AddCommand(
		newSearchCommand(in),
		newCompareCommand(in),
		newLocationsCommand(in),
		newExportCommand(in),
		newServeCommand(in),
	)

	return root
}

// setup loads the configuration, applies flag overrides, builds the logger
// and loads the graph.
func (in *input) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(in.configPath, in.envFiles...)
	if err != nil {
		return err
	}
	in.override(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	in.cfg = cfg

	in.log, err = cfg.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	in.graph, err = loader.Load(cfg.Data)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.Data, err)
	}
	in.log.WithFields(logrus.Fields{
		"source":    cfg.Data.String(),
		"locations": in.graph.LocationCount(),
		"links":     in.graph.LinkCount(),
	}).Debug("graph loaded")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(config.WithLogger(ctx, in.log))

	return nil
}

// override lets explicitly set flags win over every config layer.
func (in *input) override(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("network") {
		cfg.Data = loader.Source{Network: in.network}
	}
	if fs.Changed("towns") || fs.Changed("roads") {
		cfg.Data = loader.Source{Towns: in.towns, Roads: in.roads}
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = in.logFormat
	}
	if in.verbose {
		cfg.Log.Level = logrus.DebugLevel.String()
	}
}

// endpoints resolves the two location arguments by id or name.
func (in *input) endpoints(args []string) (*core.Location, *core.Location, error) {
	from, ok := in.graph.Find(args[0])
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", core.ErrLocationNotFound, args[0])
	}
	to, ok := in.graph.Find(args[1])
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", core.ErrLocationNotFound, args[1])
	}

	return from, to, nil
}

// searchContext bounds a command by the configured search timeout.
func (in *input) searchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if in.cfg.Search.Timeout > 0 {
		return context.WithTimeout(ctx, in.cfg.Search.Timeout)
	}

	return context.WithCancel(ctx)
}
