package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/itineria/compare"
	"github.com/katalvlaran/itineria/config"
	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/loader"
	"github.com/katalvlaran/itineria/route"
	"github.com/katalvlaran/itineria/search"
	"github.com/katalvlaran/itineria/server"
)

func newSearchCommand(in *input) *cobra.Command {
	var (
		sf     searchFlags
		format string
		trace  bool
	)
	cmd := &cobra.Command{
		Use:   "search <from> <to>",
		Short: "Find a route between two locations, given by id or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.apply(cmd.Flags(), &in.cfg); err != nil {
				return err
			}
			from, to, err := in.endpoints(args)
			if err != nil {
				return err
			}
			strategy := in.cfg.Search.ParsedStrategy()
			metric := in.cfg.Search.ParsedMetric()

			ctx, cancel := in.searchContext(cmd.Context())
			defer cancel()

			var st search.Stats
			opts := append(in.cfg.Search.Options(in.graph),
				search.WithContext(ctx),
				search.WithStats(&st),
				search.WithLogger(config.Logger(ctx)),
			)
			if trace {
				out := cmd.ErrOrStderr()
				opts = append(opts, search.WithNotifier(func(l *core.Location) {
					fmt.Fprintf(out, "expand %d %s\n", l.ID, l.Name)
				}))
			}

			goal, err := search.Search(in.graph, strategy, from, to, metric, opts...)
			if err != nil {
				return err
			}
			rt := route.New(strategy, metric, goal, st)
			if err := writeRoute(cmd.OutOrStdout(), rt, format); err != nil {
				return err
			}
			if !rt.Found {
				return fmt.Errorf("%w from %s to %s", errNoPath, from.Name, to.Name)
			}

			return nil
		},
	}
	cmd.Flags().AddFlagSet(sf.searchFlagSet(true))
	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format: text, json or geojson")
	cmd.Flags().BoolVar(&trace, "trace", false, "print every expanded location to stderr")

	return cmd
}

func writeRoute(w io.Writer, rt route.Route, format string) error {
	switch strings.ToLower(format) {
	case "text", "":
		_, err := fmt.Fprintf(w, "%s\n%d expanded, %d generated\n", rt, rt.Stats.Expanded, rt.Stats.Generated)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rt)
	case "geojson":
		raw, err := rt.FeatureCollection().MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(raw))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newCompareCommand(in *input) *cobra.Command {
	var (
		sf         searchFlags
		strategies []string
	)
	cmd := &cobra.Command{
		Use:   "compare <from> <to>",
		Short: "Run several strategies on the same query and compare their effort",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.apply(cmd.Flags(), &in.cfg); err != nil {
				return err
			}
			from, to, err := in.endpoints(args)
			if err != nil {
				return err
			}

			list := search.Strategies()
			if len(strategies) > 0 {
				list = list[:0:0]
				for _, name := range strategies {
					s, err := search.ParseStrategy(name)
					if err != nil {
						return err
					}
					list = append(list, s)
				}
			}

			runner, err := compare.NewRunner(
				compare.WithPoolSize(len(list)),
				compare.WithLogger(config.Logger(cmd.Context())),
			)
			if err != nil {
				return err
			}
			defer runner.Release()

			ctx, cancel := in.searchContext(cmd.Context())
			defer cancel()

			metric := in.cfg.Search.ParsedMetric()
			results, err := runner.Run(ctx, in.graph, from, to, metric, list, in.cfg.Search.Options(in.graph)...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s by %s\n", from.Name, to.Name, metric)

			return compare.WriteTable(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().AddFlagSet(sf.searchFlagSet(false))
	cmd.Flags().StringSliceVar(&strategies, "strategies", nil, "strategies to run (default: all)")

	return cmd
}

func newLocationsCommand(in *input) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the locations of the loaded network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tLAT\tLON\tLINKS\t")
			for _, l := range in.graph.Locations() {
				fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\t%d\t\n", l.ID, l.Name, l.Lat(), l.Lon(), l.Degree())
			}

			return tw.Flush()
		},
	}
}

func newExportCommand(in *input) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded network as a YAML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" || output == "-" {
				return loader.WriteYAML(cmd.OutOrStdout(), in.graph)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := loader.WriteYAML(f, in.graph); err != nil {
				f.Close()
				return err
			}
			config.Logger(cmd.Context()).WithField("path", output).Info("network exported")

			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "O", "", "output file (default: stdout)")

	return cmd
}

func newServeCommand(in *input) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				in.cfg.Server.Addr = addr
			}

			opts := []compare.Option{compare.WithLogger(in.log)}
			if in.cfg.Server.PoolSize > 0 {
				opts = append(opts, compare.WithPoolSize(in.cfg.Server.PoolSize))
			}
			runner, err := compare.NewRunner(opts...)
			if err != nil {
				return err
			}
			defer runner.Release()

			return server.New(in.graph, in.cfg, runner, in.log).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}
