// Package config holds the settings shared by the itineria CLI and HTTP
// server: where the graph comes from, default search parameters, the listen
// address and logging.
//
// Settings are layered, later layers winning:
//
//  1. Default()
//  2. a YAML file (explicit path, or itineria/config.yaml under the XDG config dirs)
//  3. a .env file
//  4. ITINERIA_* environment variables
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/heuristic"
	"github.com/katalvlaran/itineria/loader"
	"github.com/katalvlaran/itineria/search"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ITINERIA_"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full settings tree.
type Config struct {
	Data   loader.Source `yaml:"data"`
	Search Search        `yaml:"search"`
	Server Server        `yaml:"server"`
	Log    Log           `yaml:"log"`
}

// Search holds the defaults applied when a request does not say otherwise.
type Search struct {
	Strategy string `yaml:"strategy"`
	Metric   string `yaml:"metric"`

	// Heuristic is one of "crowflies", "timebound" or "zero".
	Heuristic string `yaml:"heuristic"`

	// MaxDepth caps iterative deepening. 0 means the location count of the
	// loaded graph, so an unreachable goal still terminates.
	MaxDepth int `yaml:"max_depth"`

	// MaxExpansions caps every search; 0 disables the cap.
	MaxExpansions int `yaml:"max_expansions"`

	// Timeout bounds a single search or comparison; 0 disables it.
	Timeout time.Duration `yaml:"timeout"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// PoolSize bounds concurrent searches of one comparison; 0 means one
	// worker per CPU.
	PoolSize int `yaml:"pool_size"`
}

// Log configures the logrus logger.
type Log struct {
	// Level is a logrus level name.
	Level string `yaml:"level"`

	// Format is "text", "json", or "auto" (text on a terminal, json otherwise).
	Format string `yaml:"format"`
}

// Default returns the built-in settings: bundled network, A* on distance,
// crow-flies heuristic, server on :8080, info-level automatic logging.
func Default() Config {
	return Config{
		Search: Search{
			Strategy:  search.AStar.String(),
			Metric:    search.Distance.String(),
			Heuristic: "crowflies",
			Timeout:   10 * time.Second,
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: Log{Level: "info", Format: "auto"},
	}
}

// FileName is the config path searched under the XDG config directories.
const FileName = "itineria/config.yaml"

// Load builds a Config from defaults, the YAML file at path and the
// environment. An empty path falls back to the XDG location when such a file
// exists. envFiles are .env files read in order; missing ones are ignored.
// Variables already present in the process environment take precedence over
// .env values.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path == "" {
		if found, err := xdg.SearchConfigFile(FileName); err == nil {
			path = found
		}
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		err = cfg.decode(f)
		f.Close()
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}

	env, err := readEnv(envFiles)
	if err != nil {
		return cfg, err
	}
	if err := cfg.apply(env); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Read decodes a YAML document over Default and validates the result.
// It does not consult the environment.
func Read(in io.Reader) (Config, error) {
	cfg := Default()
	if err := cfg.decode(in); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) decode(in io.Reader) error {
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// readEnv merges the .env files with the process environment.
func readEnv(files []string) (map[string]string, error) {
	env := make(map[string]string)
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}

	return env, nil
}

// apply copies ITINERIA_* overrides into c.
func (c *Config) apply(env map[string]string) error {
	strs := map[string]*string{
		"DATA_NETWORK": &c.Data.Network,
		"DATA_TOWNS":   &c.Data.Towns,
		"DATA_ROADS":   &c.Data.Roads,
		"STRATEGY":     &c.Search.Strategy,
		"METRIC":       &c.Search.Metric,
		"HEURISTIC":    &c.Search.Heuristic,
		"ADDR":         &c.Server.Addr,
		"LOG_LEVEL":    &c.Log.Level,
		"LOG_FORMAT":   &c.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := env[EnvPrefix+key]; ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MAX_DEPTH":      &c.Search.MaxDepth,
		"MAX_EXPANSIONS": &c.Search.MaxExpansions,
		"POOL_SIZE":      &c.Server.PoolSize,
	}
	for key, dst := range ints {
		v, ok := env[EnvPrefix+key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s: %w", ErrInvalidConfig, EnvPrefix, key, err)
		}
		*dst = n
	}

	durations := map[string]*time.Duration{
		"TIMEOUT":       &c.Search.Timeout,
		"READ_TIMEOUT":  &c.Server.ReadTimeout,
		"WRITE_TIMEOUT": &c.Server.WriteTimeout,
	}
	for key, dst := range durations {
		v, ok := env[EnvPrefix+key]
		if !ok {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s: %w", ErrInvalidConfig, EnvPrefix, key, err)
		}
		*dst = d
	}

	return nil
}

// Validate checks every enumerated or bounded field.
func (c Config) Validate() error {
	if _, err := search.ParseStrategy(c.Search.Strategy); err != nil {
		return fmt.Errorf("%w: search.strategy: %w", ErrInvalidConfig, err)
	}
	if _, err := search.ParseMetric(c.Search.Metric); err != nil {
		return fmt.Errorf("%w: search.metric: %w", ErrInvalidConfig, err)
	}
	if _, ok := heuristics[strings.ToLower(c.Search.Heuristic)]; !ok {
		return fmt.Errorf("%w: search.heuristic: unknown %q", ErrInvalidConfig, c.Search.Heuristic)
	}
	if c.Search.MaxDepth < 0 || c.Search.MaxExpansions < 0 || c.Server.PoolSize < 0 {
		return fmt.Errorf("%w: limits cannot be negative", ErrInvalidConfig)
	}
	if c.Search.Timeout < 0 {
		return fmt.Errorf("%w: search.timeout cannot be negative", ErrInvalidConfig)
	}
	if (c.Data.Towns == "") != (c.Data.Roads == "") {
		return fmt.Errorf("%w: data.towns and data.roads must be set together", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "auto", "":
	default:
		return fmt.Errorf("%w: log.format: unknown %q", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// ParsedStrategy returns the parsed default strategy.
func (s Search) ParsedStrategy() search.Strategy {
	st, _ := search.ParseStrategy(s.Strategy)
	return st
}

// ParsedMetric returns the parsed default metric.
func (s Search) ParsedMetric() search.Metric {
	m, _ := search.ParseMetric(s.Metric)
	return m
}

var heuristics = map[string]func(g *core.Graph) heuristic.Func{
	"crowflies": func(*core.Graph) heuristic.Func { return heuristic.CrowFlies },
	"":          func(*core.Graph) heuristic.Func { return heuristic.CrowFlies },
	"timebound": heuristic.TimeBound,
	"zero":      func(*core.Graph) heuristic.Func { return heuristic.Zero },
}

// Options turns the search settings into search options for g.
func (s Search) Options(g *core.Graph) []search.Option {
	depth := s.MaxDepth
	if depth == 0 {
		depth = g.LocationCount()
	}
	h := heuristic.CrowFlies
	if build, ok := heuristics[strings.ToLower(s.Heuristic)]; ok {
		h = build(g)
	}

	return []search.Option{
		search.WithHeuristic(h),
		search.WithMaxDepth(depth),
		search.WithMaxExpansions(s.MaxExpansions),
	}
}
