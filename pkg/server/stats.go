package server

import (
	"net/http"
)

type statsResponse struct {
	Distributions int `json:"distributions"`
	Tested        int `json:"tested"`
	Passing       int `json:"passing"`
	Failing       int `json:"failing"`
	Untested      int `json:"untested"`
}

// GetStats summarizes the latest outcome of every configured distribution.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	cfg := s.tester.Config()

	stats := statsResponse{}
	for _, name := range cfg.DistributionNames() {
		stats.Distributions++
		record, err := s.tester.Latest(name)
		if err != nil {
			stats.Untested++
			continue
		}
		stats.Tested++
		if record.Passed() {
			stats.Passing++
		} else {
			stats.Failing++
		}
	}

	writeJSON(w, stats)
}
