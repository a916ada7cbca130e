package server

import (
	"html/template"
	"net/http"

	"github.com/mirror-tools/mirror-test/pkg/global"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<title>mirror-test</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
.passing { color: #2a7a2a; }
.failing { color: #b03030; }
.untested { color: #888; }
</style>
</head>
<body>
<h1>mirror-test {{.Version}}</h1>
<table>
<tr><th>Distribution</th><th>Base image</th><th>Package manager</th><th>Status</th></tr>
{{range .Rows}}
<tr>
<td>{{.Name}}</td>
<td>{{.BaseImage}}</td>
<td>{{.PackageManager}}</td>
<td><span class="{{.Status}}">{{.Status}}</span></td>
</tr>
{{end}}
</table>
<p>API: GET /api/distributions, POST /api/test, GET /api/logs/{name}, GET /api/dockerfile/{name}, GET /api/stats, GET /api/build-history</p>
</body>
</html>
`))

type dashboardRow struct {
	Name           string
	BaseImage      string
	PackageManager string
	Status         string
}

type dashboardData struct {
	Version string
	Rows    []dashboardRow
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	cfg := s.tester.Config()

	data := dashboardData{Version: global.Version}
	for _, name := range cfg.DistributionNames() {
		dist := cfg.Distribution(name)
		row := dashboardRow{
			Name:           name,
			BaseImage:      dist.Image(),
			PackageManager: dist.PackageManager,
			Status:         "untested",
		}
		if record, err := s.tester.Latest(name); err == nil {
			if record.Passed() {
				row.Status = "passing"
			} else {
				row.Status = "failing"
			}
		}
		data.Rows = append(data.Rows, row)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		console.Error(err.Error())
	}
}
