// Package server exposes the tester over HTTP: a small dashboard page plus a
// JSON API for triggering tests and reading results.
package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mirror-tools/mirror-test/pkg/audit"
	"github.com/mirror-tools/mirror-test/pkg/tester"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

type Server struct {
	port   int
	tester *tester.Tester
	audit  *audit.Logger
}

func NewServer(port int, t *tester.Tester, auditLog *audit.Logger) *Server {
	return &Server{
		port:   port,
		tester: t,
		audit:  auditLog,
	}
}

// Handler builds the router. Split out from Start so tests can drive it with
// httptest.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.Path("/").
		Methods(http.MethodGet).
		HandlerFunc(s.Dashboard)
	router.Path("/api/distributions").
		Methods(http.MethodGet).
		HandlerFunc(s.ListDistributions)
	router.Path("/api/test").
		Methods(http.MethodPost).
		HandlerFunc(s.TriggerTest)
	router.Path("/api/logs/{distribution}").
		Methods(http.MethodGet).
		HandlerFunc(s.GetLogs)
	router.Path("/api/dockerfile/{distribution}").
		Methods(http.MethodGet).
		HandlerFunc(s.GetDockerfile)
	router.Path("/api/stats").
		Methods(http.MethodGet).
		HandlerFunc(s.GetStats)
	router.Path("/api/build-history").
		Methods(http.MethodGet).
		HandlerFunc(s.GetBuildHistory)

	return router
}

func (s *Server) Start() error {
	console.Infof("Server running on 0.0.0.0:%d", s.port)

	loggedRouter := handlers.LoggingHandler(os.Stdout, s.Handler())

	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), loggedRouter)
}

func distributionVar(r *http.Request) string {
	return mux.Vars(r)["distribution"]
}
