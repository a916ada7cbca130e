package server

import (
	"encoding/json"
	"net/http"

	"github.com/mirror-tools/mirror-test/pkg/buildlog"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

type distributionInfo struct {
	Name           string `json:"name"`
	BaseImage      string `json:"base_image"`
	PackageManager string `json:"package_manager"`
	Sources        int    `json:"sources"`
	HasLogs        bool   `json:"has_logs"`
	LastPassed     *bool  `json:"last_passed,omitempty"`
}

func (s *Server) ListDistributions(w http.ResponseWriter, r *http.Request) {
	cfg := s.tester.Config()

	infos := []distributionInfo{}
	for _, name := range cfg.DistributionNames() {
		dist := cfg.Distribution(name)
		info := distributionInfo{
			Name:           name,
			BaseImage:      dist.Image(),
			PackageManager: dist.PackageManager,
			Sources:        len(dist.Sources),
			HasLogs:        s.tester.Store().HasLogs(name),
		}
		if record, err := s.tester.Latest(name); err == nil {
			passed := record.Passed()
			info.LastPassed = &passed
		}
		infos = append(infos, info)
	}

	writeJSON(w, infos)
}

func (s *Server) GetBuildHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.tester.History().Entries()
	if entries == nil {
		entries = []buildlog.HistoryEntry{}
	}
	writeJSON(w, entries)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		console.Error(err.Error())
	}
}
