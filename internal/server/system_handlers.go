package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/vantez/engine/internal/database"
	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/httputil"
	"github.com/vantez/engine/internal/modules/engine"
	"github.com/vantez/engine/internal/scheduler"
)

// SystemHandlers handles monitoring and job trigger endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	cacheDB     *database.DB
	engine      *engine.Service
	scheduler   *scheduler.Scheduler
	jobs        map[string]scheduler.Job
	jobNames    []string
}

// NewSystemHandlers creates a new system handlers instance. Any dependency
// may be nil; the matching part of the status is then omitted.
func NewSystemHandlers(
	log zerolog.Logger,
	cacheDB *database.DB,
	engineService *engine.Service,
	sched *scheduler.Scheduler,
	jobs []scheduler.Job,
) *SystemHandlers {
	h := &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		startupTime: time.Now(),
		cacheDB:     cacheDB,
		engine:      engineService,
		scheduler:   sched,
		jobs:        make(map[string]scheduler.Job, len(jobs)),
	}
	for _, job := range jobs {
		if _, dup := h.jobs[job.Name()]; dup {
			continue
		}
		h.jobs[job.Name()] = job
		h.jobNames = append(h.jobNames, job.Name())
	}
	return h
}

// SystemStatusResponse is the body of GET /api/system/status
type SystemStatusResponse struct {
	Status        string                   `json:"status"`
	Version       string                   `json:"version"`
	UptimeSeconds float64                  `json:"uptime_seconds"`
	Goroutines    int                      `json:"goroutines"`
	CPUPercent    float64                  `json:"cpu_percent"`
	MemoryPercent float64                  `json:"memory_percent"`
	Macro         *domain.MacroAssumptions `json:"macro,omitempty"`
	CacheDB       *database.Stats          `json:"cache_db,omitempty"`
	Jobs          []string                 `json:"jobs"`
}

// HandleSystemStatus returns process, host and cache database status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPercent, memPercent := h.getSystemStats()
	response := SystemStatusResponse{
		Status:        "healthy",
		Version:       Version,
		UptimeSeconds: time.Since(h.startupTime).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		Jobs:          h.jobNameList(),
	}

	if h.engine != nil {
		macro := h.engine.Macro()
		response.Macro = &macro
	}

	if h.cacheDB != nil {
		if err := h.cacheDB.QuickCheck(r.Context()); err != nil {
			h.log.Warn().Err(err).Msg("Cache database check failed")
			response.Status = "degraded"
		}
		stats, err := h.cacheDB.GetStats()
		if err != nil {
			h.log.Warn().Err(err).Msg("Failed to get cache database stats")
		} else {
			response.CacheDB = stats
		}
	}

	httputil.WriteData(w, r, h.log, http.StatusOK, response)
}

// HandleListJobs lists the jobs that can be triggered manually
func (h *SystemHandlers) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, r, h.log, http.StatusOK, h.jobNameList())
}

// HandleTriggerJob runs a registered job immediately
// POST /api/system/jobs/{name}
func (h *SystemHandlers) HandleTriggerJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	job, ok := h.jobs[name]
	if !ok {
		httputil.WriteError(w, r, h.log, http.StatusNotFound, "unknown job", name)
		return
	}

	h.log.Info().Str("job", name).Msg("Manual job run triggered")

	var err error
	if h.scheduler != nil {
		err = h.scheduler.RunNow(job)
	} else {
		err = job.Run()
	}
	if err != nil {
		h.log.Error().Err(err).Str("job", name).Msg("Manual job run failed")
		httputil.WriteError(w, r, h.log, http.StatusInternalServerError, "job failed", err.Error())
		return
	}

	httputil.WriteData(w, r, h.log, http.StatusOK, map[string]string{
		"job":    name,
		"status": "completed",
	})
}

func (h *SystemHandlers) jobNameList() []string {
	names := make([]string, len(h.jobNames))
	copy(names, h.jobNames)
	return names
}

// getSystemStats returns CPU and memory usage percentages
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	// 100ms sample keeps the endpoint responsive
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}
	return cpuAvg, memStat.UsedPercent
}
