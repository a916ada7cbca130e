package server

import (
	"net/http"
	"time"

	"github.com/mirror-tools/mirror-test/pkg/errors"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

type logsResponse struct {
	Distribution string `json:"distribution"`
	Timestamp    string `json:"timestamp"`
	ReturnCode   *int   `json:"return_code,omitempty"`
	Passed       bool   `json:"passed"`
	Dockerfile   string `json:"dockerfile"`
	Stdout       string `json:"stdout"`
	Stderr       string `json:"stderr"`
}

func (s *Server) GetLogs(w http.ResponseWriter, r *http.Request) {
	name := distributionVar(r)

	record, err := s.tester.Latest(name)
	if err != nil {
		if errors.IsLogsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		console.Error(err.Error())
		http.Error(w, "failed to read build logs", http.StatusInternalServerError)
		return
	}

	resp := logsResponse{
		Distribution: record.Distribution,
		Timestamp:    record.Timestamp.Format(time.RFC3339),
		Passed:       record.Passed(),
		Dockerfile:   record.Dockerfile,
		Stdout:       record.Stdout,
		Stderr:       record.Stderr,
	}
	if record.HasReturnCode {
		code := record.ReturnCode
		resp.ReturnCode = &code
	}
	writeJSON(w, resp)
}

func (s *Server) GetDockerfile(w http.ResponseWriter, r *http.Request) {
	name := distributionVar(r)

	script, err := s.tester.Dockerfile(name)
	if err != nil {
		if errors.IsDistributionNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		console.Error(err.Error())
		http.Error(w, "failed to generate Dockerfile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(script))
}
