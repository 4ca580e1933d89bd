package service

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Node is the read-only view of a node that the service publishes. The
// implementation is responsible for synchronising with the main loop.
type Node interface {
	GetStats() map[string]string
	Neighbors() []string
	Messages() []int
}

// Service serves the introspection API.
type Service struct {
	bindAddress string
	node        Node
	metrics     *Metrics
	mux         *http.ServeMux
	logger      *logrus.Entry
}

// NewService creates a service and registers its handlers. metrics may be nil,
// in which case /metrics is not served.
func NewService(bindAddress string, n Node, metrics *Metrics, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		node:        n,
		metrics:     metrics,
		mux:         http.NewServeMux(),
		logger:      logger,
	}

	service.registerHandlers()

	return &service
}

func (s *Service) registerHandlers() {
	s.logger.Debug("Registering glomers API handlers")
	s.mux.HandleFunc("/stats", s.makeHandler(s.GetStats))
	s.mux.HandleFunc("/neighbors", s.makeHandler(s.GetNeighbors))
	s.mux.HandleFunc("/messages", s.makeHandler(s.GetMessages))
	if s.metrics != nil {
		s.mux.Handle("/metrics", s.metrics.Handler())
	}
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Handler returns the http.Handler with every route registered.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// Serve calls ListenAndServe. This is a blocking call.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving glomers API")

	err := http.ListenAndServe(s.bindAddress, s.mux)
	if err != nil {
		s.logger.Error(err)
	}
}

// GetStats returns the node's stats as a JSON object.
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.node.GetStats())
}

// GetNeighbors returns the node's neighbors as a JSON list.
func (s *Service) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	neighbors := s.node.Neighbors()
	if neighbors == nil {
		neighbors = []string{}
	}
	writeJSON(w, neighbors)
}

// GetMessages returns every broadcast value received so far as a JSON list.
func (s *Service) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages := s.node.Messages()
	if messages == nil {
		messages = []int{}
	}
	writeJSON(w, messages)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(v)
}
