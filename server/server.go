package server

import (
	"io"
	"net/http"
	"os"
	"time"

	metrics "github.com/armon/go-metrics"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Aehsan4004/hashmap/storage"
)

const (
	metricsInterval  = 10 * time.Second
	metricsRetention = time.Minute
)

type Server struct {
	store  *storage.Store
	sink   *metrics.InmemSink
	router *mux.Router
}

func New(store *storage.Store) (*Server, error) {
	sink := metrics.NewInmemSink(metricsInterval, metricsRetention)

	cfg := metrics.DefaultConfig("hashmap")
	cfg.EnableHostname = false
	cfg.EnableRuntimeMetrics = false
	if _, err := metrics.NewGlobal(cfg, sink); err != nil {
		return nil, errors.Wrap(err, "set up metrics")
	}

	s := &Server{
		store: store,
		sink:  sink,
	}
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/insert/", timed("insert", s.InsertHandler)).Methods(http.MethodPost)
	r.HandleFunc("/retrieve/", timed("retrieve", s.RetrieveHandler)).Methods(http.MethodPost)
	r.HandleFunc("/has/", timed("has", s.HasHandler)).Methods(http.MethodPost)
	r.HandleFunc("/remove/", timed("remove", s.RemoveHandler)).Methods(http.MethodPost)
	r.HandleFunc("/clear/", timed("clear", s.ClearHandler)).Methods(http.MethodPost)
	r.HandleFunc("/keys/", s.KeysHandler).Methods(http.MethodGet)
	r.HandleFunc("/values/", s.ValuesHandler).Methods(http.MethodGet)
	r.HandleFunc("/entries/", s.EntriesHandler).Methods(http.MethodGet)
	r.HandleFunc("/stats/", s.StatsHandler).Methods(http.MethodGet)

	m := r.PathPrefix("/members").Subrouter()
	m.MethodNotAllowedHandler = r.MethodNotAllowedHandler
	m.HandleFunc("/", s.MembersHandler).Methods(http.MethodGet)
	m.HandleFunc("/add/", timed("members.add", s.AddMemberHandler)).Methods(http.MethodPost)
	m.HandleFunc("/has/", timed("members.has", s.HasMemberHandler)).Methods(http.MethodPost)
	m.HandleFunc("/remove/", timed("members.remove", s.RemoveMemberHandler)).Methods(http.MethodPost)

	r.HandleFunc("/ping/", PingHandler).Methods(http.MethodGet)
	r.HandleFunc("/metrics/", s.MetricsHandler).Methods(http.MethodGet)

	s.router = r
}

func timed(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer metrics.MeasureSince([]string{"server", name}, time.Now())
		h(w, r)
	}
}

// Handler returns the router wrapped with access logging to out.
func (s *Server) Handler(out io.Writer) http.Handler {
	return handlers.LoggingHandler(out, s.router)
}

func (s *Server) ListenAndServe(listenOn string) error {
	srv := &http.Server{
		Addr:              listenOn,
		Handler:           s.Handler(os.Stderr),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Infof("Starting server on %s", listenOn)
	return srv.ListenAndServe()
}
