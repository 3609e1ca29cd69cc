package loader

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/itineria/core"
)

// Network is the YAML document layout:
//
//	locations:
//	  - {id: 75, name: Paris, lat: 48.8566, lon: 2.3522}
//	links:
//	  - {from: 75, to: 69, distance: 465, time: 270}
type Network struct {
	Locations []LocationEntry `yaml:"locations"`
	Links     []LinkEntry     `yaml:"links"`
}

// LocationEntry is one entry of the locations list.
type LocationEntry struct {
	ID   int     `yaml:"id"`
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// LinkEntry is one entry of the links list.
type LinkEntry struct {
	From     int     `yaml:"from"`
	To       int     `yaml:"to"`
	Distance float64 `yaml:"distance"`
	Time     float64 `yaml:"time"`
}

// LoadYAML reads a network document from path.
func LoadYAML(path string) (*core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := ReadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// ReadYAML decodes a network document and builds its graph. Unknown keys are
// rejected so that typos do not silently drop data.
func ReadYAML(in io.Reader) (*core.Graph, error) {
	var n Network
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedGraph, err)
	}

	return n.Graph()
}

// Graph builds the graph described by n.
func (n Network) Graph() (*core.Graph, error) {
	g := core.NewGraph()
	for i, l := range n.Locations {
		if _, err := g.AddLocation(l.ID, l.Name, l.Lat, l.Lon); err != nil {
			return nil, fmt.Errorf("locations[%d]: %w", i, err)
		}
	}
	for i, k := range n.Links {
		if _, err := g.AddLink(k.From, k.To, k.Distance, k.Time); err != nil {
			return nil, fmt.Errorf("links[%d]: %w", i, err)
		}
	}

	return g, nil
}

// NetworkOf is the inverse of Network.Graph: it lists the locations of g by
// id and its links in insertion order.
func NetworkOf(g *core.Graph) Network {
	var n Network
	for _, l := range g.Locations() {
		n.Locations = append(n.Locations, LocationEntry{ID: l.ID, Name: l.Name, Lat: l.Lat(), Lon: l.Lon()})
	}
	for _, k := range g.Links() {
		n.Links = append(n.Links, LinkEntry{From: k.A.ID, To: k.B.ID, Distance: k.Distance, Time: k.Time})
	}

	return n
}

// WriteYAML encodes g as a network document.
func WriteYAML(w io.Writer, g *core.Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NetworkOf(g)); err != nil {
		return err
	}

	return enc.Close()
}
