package main

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/itineria/config"
)

// searchFlags are the search settings a command may override.
type searchFlags struct {
	strategy      string
	metric        string
	heuristic     string
	maxDepth      int
	maxExpansions int
	timeout       time.Duration
}

// searchFlagSet registers the shared search flags. The strategy flag is left
// out for commands that run several strategies.
func (f *searchFlags) searchFlagSet(withStrategy bool) *pflag.FlagSet {
	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	if withStrategy {
		fs.StringVarP(&f.strategy, "strategy", "s", "", "bfs, dfs, iddfs, ucs, greedy or astar (default from config)")
	}
	fs.StringVarP(&f.metric, "metric", "m", "", "distance or time (default from config)")
	fs.StringVar(&f.heuristic, "heuristic", "", "crowflies, timebound or zero")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "iterative deepening ceiling (0: number of locations)")
	fs.IntVar(&f.maxExpansions, "max-expansions", 0, "expansion budget (0: unlimited)")
	fs.DurationVar(&f.timeout, "timeout", 0, "search timeout (0: from config)")

	return fs
}

// apply copies the flags the user set onto s and validates the result.
func (f *searchFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("strategy") {
		cfg.Search.Strategy = f.strategy
	}
	if fs.Changed("metric") {
		cfg.Search.Metric = f.metric
	}
	if fs.Changed("heuristic") {
		cfg.Search.Heuristic = f.heuristic
	}
	if fs.Changed("max-depth") {
		cfg.Search.MaxDepth = f.maxDepth
	}
	if fs.Changed("max-expansions") {
		cfg.Search.MaxExpansions = f.maxExpansions
	}
	if fs.Changed("timeout") {
		cfg.Search.Timeout = f.timeout
	}

	return cfg.Validate()
}
