// Package loader builds core graphs from external data: the ';' separated
// towns/roads tables, a YAML network document, or the bundled sample network
// of French towns.
package loader

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/itineria/core"
)

// ErrUnknownFormat is returned by Load for a file it cannot classify.
var ErrUnknownFormat = errors.New("loader: unknown graph file format")

//go:embed data/towns.csv data/roads.csv
var bundled embed.FS

// Bundled returns the sample network shipped with the module: eighteen French
// towns keyed by department number, with road distances in kilometres and
// travel times in minutes.
func Bundled() (*core.Graph, error) {
	towns, err := bundled.Open("data/towns.csv")
	if err != nil {
		return nil, err
	}
	defer towns.Close()

	roads, err := bundled.Open("data/roads.csv")
	if err != nil {
		return nil, err
	}
	defer roads.Close()

	return readCSV("towns.csv", towns, "roads.csv", roads)
}

// Source names where a graph comes from. The zero value is the bundled network.
type Source struct {
	// Network is a YAML document. It takes precedence over the CSV pair.
	Network string `yaml:"network"`

	// Towns and Roads are the two CSV tables; both must be set together.
	Towns string `yaml:"towns"`
	Roads string `yaml:"roads"`
}

// Load resolves src to a graph.
func Load(src Source) (*core.Graph, error) {
	switch {
	case src.Network != "":
		switch strings.ToLower(filepath.Ext(src.Network)) {
		case ".yaml", ".yml":
			return LoadYAML(src.Network)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, src.Network)
		}
	case src.Towns != "" || src.Roads != "":
		if src.Towns == "" || src.Roads == "" {
			return nil, fmt.Errorf("%w: towns and roads tables must be given together", ErrUnknownFormat)
		}
		return LoadCSV(src.Towns, src.Roads)
	default:
		return Bundled()
	}
}

// String describes src for log records.
func (s Source) String() string {
	switch {
	case s.Network != "":
		return s.Network
	case s.Towns != "" || s.Roads != "":
		return s.Towns + "+" + s.Roads
	default:
		return "bundled"
	}
}
