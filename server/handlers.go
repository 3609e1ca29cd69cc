package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/katalvlaran/itineria/compare"
	"github.com/katalvlaran/itineria/config"
	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/route"
	"github.com/katalvlaran/itineria/search"
)

// errBadRequest marks malformed query parameters or bodies.
var errBadRequest = errors.New("bad request")

// locationRef names a location by numeric id or by name. In JSON bodies it
// may be a number or a string.
type locationRef string

func (l *locationRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = locationRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("location must be an id or a name: %w", err)
	}
	*l = locationRef(n.String())

	return nil
}

// RouteRequest is the body of POST /api/route; GET takes the same fields as
// query parameters.
type RouteRequest struct {
	From     locationRef `json:"from"`
	To       locationRef `json:"to"`
	Strategy string      `json:"strategy"`
	Metric   string      `json:"metric"`
	Format   string      `json:"format"`
}

// query is a validated request.
type query struct {
	from, to *core.Location
	strategy search.Strategy
	metric   search.Metric
	geojson  bool
}

func (s *Server) resolve(ref locationRef) (*core.Location, error) {
	key := strings.TrimSpace(string(ref))
	if key == "" {
		return nil, fmt.Errorf("%w: missing location", errBadRequest)
	}
	if loc, ok := s.graph.Find(key); ok {
		return loc, nil
	}

	return nil, fmt.Errorf("%w: %q", core.ErrLocationNotFound, key)
}

func (s *Server) parse(req RouteRequest) (query, error) {
	var (
		q   query
		err error
	)
	if q.from, err = s.resolve(req.From); err != nil {
		return q, err
	}
	if q.to, err = s.resolve(req.To); err != nil {
		return q, err
	}

	q.strategy = s.cfg.Search.ParsedStrategy()
	if req.Strategy != "" {
		if q.strategy, err = search.ParseStrategy(req.Strategy); err != nil {
			return q, err
		}
	}
	q.metric = s.cfg.Search.ParsedMetric()
	if req.Metric != "" {
		if q.metric, err = search.ParseMetric(req.Metric); err != nil {
			return q, err
		}
	}

	switch strings.ToLower(req.Format) {
	case "", "json":
	case "geojson":
		q.geojson = true
	default:
		return q, fmt.Errorf("%w: unknown format %q", errBadRequest, req.Format)
	}

	return q, nil
}

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, core.ErrLocationNotFound),
		errors.Is(err, search.ErrLocationNotFound),
		errors.Is(err, search.ErrUnknownStrategy),
		errors.Is(err, search.ErrInvalidMetric):
		return http.StatusBadRequest
	case errors.Is(err, search.ErrBudgetExhausted),
		errors.Is(err, search.ErrDepthLimitReached):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// searchContext bounds a request by the configured search timeout.
func (s *Server) searchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Search.Timeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Search.Timeout)
	}

	return context.WithCancel(ctx)
}

// RouteQuery serves GET /api/route?from=&to=&strategy=&metric=&format=.
func (s *Server) RouteQuery(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	s.route(w, r, RouteRequest{
		From:     locationRef(v.Get("from")),
		To:       locationRef(v.Get("to")),
		Strategy: v.Get("strategy"),
		Metric:   v.Get("metric"),
		Format:   v.Get("format"),
	})
}

// RouteBody serves POST /api/route with a JSON RouteRequest.
func (s *Server) RouteBody(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	s.route(w, r, req)
}

func (s *Server) route(w http.ResponseWriter, r *http.Request, req RouteRequest) {
	q, err := s.parse(req)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	ctx, cancel := s.searchContext(r.Context())
	defer cancel()

	var st search.Stats
	opts := append(s.cfg.Search.Options(s.graph),
		search.WithContext(ctx),
		search.WithStats(&st),
		search.WithLogger(config.Logger(ctx)),
	)
	goal, err := search.Search(s.graph, q.strategy, q.from, q.to, q.metric, opts...)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	rt := route.New(q.strategy, q.metric, goal, st)
	status := http.StatusOK
	if !rt.Found {
		status = http.StatusNotFound
	}
	if q.geojson {
		writeGeoJSON(w, status, rt.FeatureCollection())
		return
	}
	writeJSON(w, status, rt)
}

// ComparisonEntry is one row of a comparison response.
type ComparisonEntry struct {
	Strategy  string       `json:"strategy"`
	Label     string       `json:"label"`
	Found     bool         `json:"found"`
	Cost      float64      `json:"cost"`
	Links     int          `json:"links"`
	Stats     search.Stats `json:"stats"`
	ElapsedMS float64      `json:"elapsed_ms"`
	Error     string       `json:"error,omitempty"`
}

// Comparison is the response of GET /api/compare.
type Comparison struct {
	From    route.Stop        `json:"from"`
	To      route.Stop        `json:"to"`
	Metric  string            `json:"metric"`
	Unit    string            `json:"unit"`
	Best    string            `json:"best,omitempty"`
	Results []ComparisonEntry `json:"results"`
}

// Compare serves GET /api/compare?from=&to=&metric=&strategies=bfs,ucs.
// Without strategies every strategy runs.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	q, err := s.parse(RouteRequest{
		From:   locationRef(v.Get("from")),
		To:     locationRef(v.Get("to")),
		Metric: v.Get("metric"),
	})
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	strategies := search.Strategies()
	if list := strings.TrimSpace(v.Get("strategies")); list != "" {
		strategies = strategies[:0:0]
		for _, name := range strings.Split(list, ",") {
			st, err := search.ParseStrategy(name)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			strategies = append(strategies, st)
		}
	}

	ctx, cancel := s.searchContext(r.Context())
	defer cancel()

	opts := s.cfg.Search.Options(s.graph)
	var results []compare.Result
	if s.runner != nil {
		results, err = s.runner.Run(ctx, s.graph, q.from, q.to, q.metric, strategies, opts...)
	} else {
		results, err = compare.Run(ctx, s.graph, q.from, q.to, q.metric, strategies, opts...)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := Comparison{
		From:    route.StopOf(q.from),
		To:      route.StopOf(q.to),
		Metric:  q.metric.String(),
		Unit:    q.metric.Unit(),
		Results: make([]ComparisonEntry, len(results)),
	}
	if best := compare.Best(results); best >= 0 {
		out.Best = results[best].Strategy.String()
	}
	for i, res := range results {
		e := ComparisonEntry{
			Strategy:  res.Strategy.String(),
			Label:     res.Strategy.Label(),
			Found:     res.Found(),
			Cost:      res.Cost(),
			Stats:     res.Stats,
			ElapsedMS: float64(res.Elapsed.Microseconds()) / 1000,
		}
		if res.Found() {
			e.Links = res.Goal.Depth
		}
		if res.Err != nil {
			e.Error = res.Err.Error()
		}
		out.Results[i] = e
	}
	writeJSON(w, http.StatusOK, out)
}

// LocationView is a location with its degree.
type LocationView struct {
	route.Stop
	Degree int `json:"degree"`
}

// Locations serves GET /api/locations, ordered by id.
func (s *Server) Locations(w http.ResponseWriter, _ *http.Request) {
	locs := s.graph.Locations()
	out := make([]LocationView, len(locs))
	for i, l := range locs {
		out[i] = LocationView{Stop: route.StopOf(l), Degree: l.Degree()}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"locations": out,
		"count":     len(out),
	})
}

// NeighbourView is one entry of a location's adjacency.
type NeighbourView struct {
	route.Stop
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`
}

// Location serves GET /api/locations/{ref} with the location's neighbours.
func (s *Server) Location(w http.ResponseWriter, r *http.Request) {
	loc, err := s.resolve(locationRef(mux.Vars(r)["ref"]))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	nbrs := s.graph.Neighbours(loc)
	out := make([]NeighbourView, len(nbrs))
	for i, adj := range nbrs {
		out[i] = NeighbourView{
			Stop:     route.StopOf(adj.Location),
			Distance: adj.Link.Distance,
			Time:     adj.Link.Time,
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"location":   LocationView{Stop: route.StopOf(loc), Degree: loc.Degree()},
		"neighbours": out,
	})
}

// Bounds serves GET /api/bounds as {min: {lat, lon}, max: {lat, lon}}.
func (s *Server) Bounds(w http.ResponseWriter, _ *http.Request) {
	b := s.graph.Bounds()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"min": map[string]float64{"lat": b.Min.Lat(), "lon": b.Min.Lon()},
		"max": map[string]float64{"lat": b.Max.Lat(), "lon": b.Max.Lon()},
	})
}

// Network serves GET /api/network as a GeoJSON FeatureCollection.
func (s *Server) Network(w http.ResponseWriter, _ *http.Request) {
	writeGeoJSON(w, http.StatusOK, route.Network(s.graph))
}

type strategyView struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Informed bool   `json:"informed"`
}

type metricView struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// Strategies serves GET /api/strategies with the strategy and metric names
// and the configured defaults.
func (s *Server) Strategies(w http.ResponseWriter, _ *http.Request) {
	strategies := make([]strategyView, 0, len(search.Strategies()))
	for _, st := range search.Strategies() {
		strategies = append(strategies, strategyView{Name: st.String(), Label: st.Label(), Informed: st.Informed()})
	}
	metrics := make([]metricView, 0, len(search.Metrics()))
	for _, m := range search.Metrics() {
		metrics = append(metrics, metricView{Name: m.String(), Unit: m.Unit()})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"strategies": strategies,
		"metrics":    metrics,
		"defaults": map[string]string{
			"strategy": s.cfg.Search.ParsedStrategy().String(),
			"metric":   s.cfg.Search.ParsedMetric().String(),
		},
	})
}
