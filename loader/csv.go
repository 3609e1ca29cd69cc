package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/itineria/core"
)

// Column names of the two CSV tables. Columns are matched by header name, so
// their order in the file is free and extra columns are ignored.
var (
	townColumns = []string{"dept_id", "name", "latitude", "longitude"}
	roadColumns = []string{"town1", "town2", "distance", "time"}
)

// LoadCSV reads a towns table and a roads table from disk.
func LoadCSV(townsPath, roadsPath string) (*core.Graph, error) {
	towns, err := os.Open(townsPath)
	if err != nil {
		return nil, err
	}
	defer towns.Close()

	roads, err := os.Open(roadsPath)
	if err != nil {
		return nil, err
	}
	defer roads.Close()

	return readCSV(townsPath, towns, roadsPath, roads)
}

// ReadCSV builds a graph from ';' separated towns and roads tables, each with
// a header row:
//
//	dept_id;name;latitude;longitude
//	town1;town2;distance;time
//
// Roads must reference towns declared in the first table.
func ReadCSV(towns, roads io.Reader) (*core.Graph, error) {
	return readCSV("towns", towns, "roads", roads)
}

func readCSV(townsName string, towns io.Reader, roadsName string, roads io.Reader) (*core.Graph, error) {
	g := core.NewGraph()

	err := readRows(townsName, towns, townColumns, func(row record) error {
		id, err := row.integer("dept_id")
		if err != nil {
			return err
		}
		lat, err := row.number("latitude")
		if err != nil {
			return err
		}
		lon, err := row.number("longitude")
		if err != nil {
			return err
		}
		_, err = g.AddLocation(id, row.get("name"), lat, lon)

		return err
	})
	if err != nil {
		return nil, err
	}

	err = readRows(roadsName, roads, roadColumns, func(row record) error {
		a, err := row.integer("town1")
		if err != nil {
			return err
		}
		b, err := row.integer("town2")
		if err != nil {
			return err
		}
		distance, err := row.number("distance")
		if err != nil {
			return err
		}
		time, err := row.number("time")
		if err != nil {
			return err
		}
		_, err = g.AddLink(a, b, distance, time)

		return err
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

// record is one data row addressed by column name.
type record struct {
	fields []string
	index  map[string]int
}

func (r record) get(col string) string { return strings.TrimSpace(r.fields[r.index[col]]) }

func (r record) integer(col string) (int, error) {
	v, err := strconv.Atoi(r.get(col))
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %w", core.ErrMalformedGraph, col, err)
	}

	return v, nil
}

func (r record) number(col string) (float64, error) {
	v, err := strconv.ParseFloat(r.get(col), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %w", core.ErrMalformedGraph, col, err)
	}

	return v, nil
}

// readRows parses a ';' separated table with a header row and hands every data
// row to fn. Errors are prefixed with source:line.
func readRows(source string, in io.Reader, columns []string, fn func(record) error) error {
	cr := csv.NewReader(in)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: empty table", core.ErrMalformedGraph, source)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrMalformedGraph, source, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		index[h] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%w: %s: missing column %q", core.ErrMalformedGraph, source, col)
		}
	}

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", core.ErrMalformedGraph, source, err)
		}
		line, _ := cr.FieldPos(0)
		if err := fn(record{fields: fields, index: index}); err != nil {
			return fmt.Errorf("%s:%d: %w", source, line, err)
		}
	}
}
