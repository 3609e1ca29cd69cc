// Package server exposes the search engine over HTTP: the location list, the
// network geometry, single-strategy routes (JSON or GeoJSON) and side-by-side
// strategy comparisons.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/itineria/compare"
	"github.com/katalvlaran/itineria/config"
	"github.com/katalvlaran/itineria/core"
)

// Server serves one read-only graph.
type Server struct {
	graph  *core.Graph
	cfg    config.Config
	runner *compare.Runner
	log    logrus.FieldLogger
	router *mux.Router
}

// New wires the routes for g. runner runs comparisons and stays owned by the
// caller.
func New(g *core.Graph, cfg config.Config, runner *compare.Runner, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{
		graph:  g,
		cfg:    cfg,
		runner: runner,
		log:    logger,
		router: mux.NewRouter(),
	}
	s.router.Use(s.logRequests)
	s.RegisterRoutes(s.router)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("no such endpoint"))
	})

	return s
}

// RegisterRoutes attaches the API endpoints to router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/locations", s.Locations).Methods(http.MethodGet)
	api.HandleFunc("/locations/{ref}", s.Location).Methods(http.MethodGet)
	api.HandleFunc("/bounds", s.Bounds).Methods(http.MethodGet)
	api.HandleFunc("/network", s.Network).Methods(http.MethodGet)
	api.HandleFunc("/strategies", s.Strategies).Methods(http.MethodGet)
	api.HandleFunc("/route", s.RouteQuery).Methods(http.MethodGet)
	api.HandleFunc("/route", s.RouteBody).Methods(http.MethodPost)
	api.HandleFunc("/compare", s.Compare).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"locations": s.graph.LocationCount(),
			"links":     s.graph.LinkCount(),
		})
	}).Methods(http.MethodGet)
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs one record per request and makes the request logger
// available to handlers through config.Logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		entry := s.log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		})
		next.ServeHTTP(rec, r.WithContext(config.WithLogger(r.Context(), entry)))

		entry = entry.WithFields(logrus.Fields{
			"status":  rec.status,
			"elapsed": time.Since(began),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request failed")
		} else {
			entry.Info("request served")
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeGeoJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
