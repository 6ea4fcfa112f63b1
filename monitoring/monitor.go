// Package monitoring turns a simulation into a small web server so that the
// run can be observed live from a browser.
package monitoring

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/icnsim/sim"
)

//go:embed web
var webAssets embed.FS

// Monitor exposes the live state of a simulation over HTTP.
type Monitor struct {
	engine     sim.Engine
	driver     *sim.Driver
	portNumber int
	url        string
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// rejected and replaced with a random free port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server. "+
				"Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that is used in the simulation.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterDriver registers the driver whose state is served.
func (m *Monitor) RegisterDriver(d *sim.Driver) {
	m.driver = d
}

// StartServer starts the monitor as a web server, on the configured port if
// one was given.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/info", m.info)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/snapshot", m.snapshot)
	r.HandleFunc("/api/packets", m.listPackets)
	r.HandleFunc("/api/progress", m.progress)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)

	assets, err := fs.Sub(webAssets, "web")
	dieOnErr(err)
	r.PathPrefix("/").Handler(http.FileServer(http.FS(assets)))

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.url)

	go func() {
		dieOnErr(http.Serve(listener, r))
	}()
}

// OpenDashboard opens the monitoring page in the default browser.
func (m *Monitor) OpenDashboard() {
	if m.url == "" {
		return
	}

	_ = browser.OpenURL(m.url)
}

func (m *Monitor) info(w http.ResponseWriter, _ *http.Request) {
	t := m.driver.Topology()
	writeJSON(w, map[string]any{
		"topology":  t.Kind(),
		"size":      t.Size(),
		"nodes":     len(t.Nodes()),
		"packets":   len(m.driver.Packets()),
		"switching": m.driver.Switching(),
		"max_steps": m.driver.MaxSteps(),
	})
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]int{"step": m.engine.CurrentStep()})
}

func (m *Monitor) snapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.driver.LatestSnapshot())
}

// listPackets pauses the engine so that packet state is read at a step
// boundary.
func (m *Monitor) listPackets(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	results := m.driver.Results()
	m.engine.Continue()

	writeJSON(w, results)
}

func (m *Monitor) progress(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	completed := 0
	for _, p := range m.driver.Packets() {
		if p.Completed {
			completed++
		}
	}
	m.engine.Continue()

	writeJSON(w, map[string]int{
		"step":      m.engine.CurrentStep(),
		"max_steps": m.driver.MaxSteps(),
		"completed": completed,
		"total":     len(m.driver.Packets()),
	})
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"cpu_percent": cpuPercent,
		"memory_rss":  memInfo.RSS,
	})
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
