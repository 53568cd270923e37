package main

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"
	logs "github.com/sirupsen/logrus"

	"github.com/vkuznet/memserve/assets"
)

// Memory contains details about memory information
type Memory struct {
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"usedPercent"`
}

// Mem keeps memory information
type Mem struct {
	Virtual Memory
	Swap    Memory
}

// helper function to provide response
func responseError(w http.ResponseWriter, msg string, err error, code int) {
	logs.WithFields(logs.Fields{"Error": err}).Error(msg)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// AssetHandler answers requests from the in-memory asset store
func (srv *Server) AssetHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		atomic.AddUint64(&srv.TotalGetRequests, 1)
	case http.MethodHead:
		atomic.AddUint64(&srv.TotalHeadRequests, 1)
	}
	path := strings.TrimPrefix(r.URL.Path, srv.base())
	resp := srv.store.Map(assets.Request{Method: r.Method, URL: path})
	if resp.Status != assets.StatusOK {
		atomic.AddUint64(&srv.TotalMisses, 1)
		srv.metrics.Requests.WithLabelValues("miss").Inc()
		w.WriteHeader(resp.Status.Code())
		return
	}
	atomic.AddUint64(&srv.TotalHits, 1)
	srv.metrics.Requests.WithLabelValues("hit").Inc()
	w.Header().Set("Content-Type", resp.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(resp.Status.Code())
	if r.Method != http.MethodHead {
		w.Write(resp.Body)
	}
}

// StatusHandler handlers Status requests
func (srv *Server) StatusHandler(w http.ResponseWriter, r *http.Request) {
	// get cpu and mem profiles
	m, _ := mem.VirtualMemory()
	s, _ := mem.SwapMemory()
	l, _ := load.Avg()
	c, _ := cpu.Percent(time.Millisecond, true)

	rec := make(map[string]interface{})
	rec["NGo"] = runtime.NumGoroutine()
	var virt, swap Memory
	if m != nil {
		virt = Memory{Total: m.Total, Free: m.Free, Used: m.Used, UsedPercent: m.UsedPercent}
	}
	if s != nil {
		swap = Memory{Total: s.Total, Free: s.Free, Used: s.Used, UsedPercent: s.UsedPercent}
	}
	rec["Memory"] = Mem{Virtual: virt, Swap: swap}
	rec["Load"] = l
	rec["CPU"] = c
	rec["Uptime"] = time.Since(srv.started).Seconds()
	rec["getRequests"] = atomic.LoadUint64(&srv.TotalGetRequests)
	rec["headRequests"] = atomic.LoadUint64(&srv.TotalHeadRequests)
	rec["hits"] = atomic.LoadUint64(&srv.TotalHits)
	rec["misses"] = atomic.LoadUint64(&srv.TotalMisses)
	rec["files"] = srv.store.Len()
	rec["bytes"] = srv.store.Size()
	rec["root"] = srv.store.Root()
	data, err := json.Marshal(rec)
	if err != nil {
		responseError(w, "unable to marshal data", err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
