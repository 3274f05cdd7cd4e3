package introspect

import (
	"encoding/json"
	"html/template"
	"net/http"
	"os"
	"runtime"
	"time"
)

// startTime anchors uptime reporting to process start.
var startTime = time.Now()

func uptimeSeconds() int64 {
	return int64(time.Since(startTime).Seconds())
}

func hostname() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HealthResponse is the JSON response for the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Hostname  string `json:"hostname"`
	Uptime    int64  `json:"uptime"`
	Version   string `json:"version"`
}

// HealthHandler returns an HTTP handler reporting service liveness.
func HealthHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Hostname:  hostname(),
			Uptime:    uptimeSeconds(),
			Version:   version,
		})
	}
}

// InfoResponse is the JSON response for the info endpoint.
type InfoResponse struct {
	Runtime     map[string]any    `json:"runtime"`
	Environment map[string]string `json:"environment"`
}

// InfoHandler returns an HTTP handler reporting runtime information and
// echoing the named environment variables.
func InfoHandler(envKeys ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env := make(map[string]string, len(envKeys))
		for _, key := range envKeys {
			env[key] = os.Getenv(key)
		}

		writeJSON(w, http.StatusOK, InfoResponse{
			Runtime: map[string]any{
				"go_version": runtime.Version(),
				"platform":   runtime.GOOS + "/" + runtime.GOARCH,
				"hostname":   hostname(),
				"timestamp":  time.Now().UTC().Format(time.RFC3339),
				"uptime":     uptimeSeconds(),
			},
			Environment: env,
		})
	}
}

// TimeResponse is the JSON response for the time endpoint.
type TimeResponse struct {
	CurrentTime   string `json:"current_time"`
	UnixTimestamp int64  `json:"unix_timestamp"`
	Timezone      string `json:"timezone"`
}

// TimeHandler returns an HTTP handler reporting the current time.
func TimeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		zone, _ := now.Zone()
		writeJSON(w, http.StatusOK, TimeResponse{
			CurrentTime:   now.Format(time.RFC3339),
			UnixTimestamp: now.Unix(),
			Timezone:      zone,
		})
	}
}

// StatsHandler returns an HTTP handler serving per-source statistics
// snapshots from the registry.
func StatsHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"sources": reg.Snapshot(),
		})
	}
}

// NotFoundHandler returns an HTTP handler serving a JSON 404.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":       "Not Found",
			"message":     "The requested endpoint does not exist",
			"status_code": http.StatusNotFound,
		})
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Service}}</title></head>
<body>
<h1>{{.Service}}</h1>
<ul>
<li><strong>Hostname:</strong> {{.Hostname}}</li>
<li><strong>Go version:</strong> {{.GoVersion}}</li>
<li><strong>Uptime:</strong> {{.Uptime}} seconds</li>
</ul>
<h2>Endpoints</h2>
<ul>
<li><a href="/health">GET /health</a></li>
<li><a href="/api/info">GET /api/info</a></li>
<li><a href="/api/time">GET /api/time</a></li>
<li><a href="/api/stats">GET /api/stats</a></li>
</ul>
</body>
</html>
`))

// IndexHandler returns an HTTP handler serving a small HTML page listing
// the available endpoints. Unmatched paths get the JSON 404.
func IndexHandler(service string) http.HandlerFunc {
	notFound := NotFoundHandler()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			notFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = indexTemplate.Execute(w, map[string]any{
			"Service":   service,
			"Hostname":  hostname(),
			"GoVersion": runtime.Version(),
			"Uptime":    uptimeSeconds(),
		})
	}
}

// Mux assembles the read-only endpoints on a new ServeMux.
func Mux(reg *Registry, service, version string, envKeys ...string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", IndexHandler(service))
	mux.HandleFunc("/health", HealthHandler(version))
	mux.HandleFunc("/api/info", InfoHandler(envKeys...))
	mux.HandleFunc("/api/time", TimeHandler())
	mux.HandleFunc("/api/stats", StatsHandler(reg))
	return mux
}
