package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/clientdata"
	"github.com/vantez/engine/internal/config"
	"github.com/vantez/engine/internal/scheduler"
)

// CheckCacheDatabaseSchedule runs the cache integrity check hourly
const CheckCacheDatabaseSchedule = "0 15 * * * *"

// RegisterJobs creates the background jobs and registers them with the
// scheduler. The scheduler is not started.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil || container.Scheduler == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	instances := &JobInstances{
		RefreshBenchmarkRate: scheduler.NewRefreshBenchmarkRateJob(container.BenchmarkClient, log),
		ClientDataCleanup:    clientdata.NewCleanupJob(container.ClientDataRepo, log),
		CheckCacheDatabase:   scheduler.NewCheckCacheDatabaseJob(container.CacheDB, log),
	}

	schedules := []struct {
		spec string
		job  scheduler.Job
	}{
		{cfg.RateRefreshSchedule, instances.RefreshBenchmarkRate},
		{cfg.CacheCleanupSchedule, instances.ClientDataCleanup},
		{CheckCacheDatabaseSchedule, instances.CheckCacheDatabase},
	}
	for _, s := range schedules {
		if err := container.Scheduler.AddJob(s.spec, s.job); err != nil {
			return nil, fmt.Errorf("failed to register job %s: %w", s.job.Name(), err)
		}
	}

	return instances, nil
}
