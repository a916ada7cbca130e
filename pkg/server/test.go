package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/mirror-tools/mirror-test/pkg/audit"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

type testRequest struct {
	Distribution  string   `json:"distribution,omitempty"`
	Distributions []string `json:"distributions,omitempty"`
}

type testResponse struct {
	Distribution string `json:"distribution"`
	Passed       bool   `json:"passed"`
	ReturnCode   int    `json:"return_code"`
	Error        string `json:"error,omitempty"`
}

// TriggerTest runs tests for the requested distributions, or all configured
// distributions when the request names none. Concurrent triggers for the same
// distribution share one build.
func (s *Server) TriggerTest(w http.ResponseWriter, r *http.Request) {
	var req testRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	names := req.Distributions
	if req.Distribution != "" {
		names = append(names, req.Distribution)
	}
	for _, name := range names {
		if name == "all" {
			names = nil
			break
		}
	}
	if len(names) == 0 {
		names = s.tester.Config().DistributionNames()
	}

	console.Infof("Received test request for %s", strings.Join(names, ", "))

	results := s.tester.TestMany(r.Context(), names)

	responses := make([]testResponse, 0, len(names))
	allPassed := true
	for _, name := range names {
		result := results[name]
		resp := testResponse{
			Distribution: name,
			Passed:       result.Passed,
			ReturnCode:   result.Record.ReturnCode,
		}
		if result.Err != nil {
			resp.Error = result.Err.Error()
		}
		if !result.Passed {
			allPassed = false
		}
		responses = append(responses, resp)
	}

	if err := s.audit.Log(audit.Event{
		User:    r.RemoteAddr,
		Action:  "test_triggered",
		Success: allPassed,
		Details: map[string]string{"distributions": strings.Join(names, ",")},
	}); err != nil {
		console.Warnf("Failed to write audit event: %s", err)
	}

	writeJSON(w, responses)
}
