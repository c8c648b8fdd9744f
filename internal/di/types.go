package di

import (
	"github.com/vantez/engine/internal/clientdata"
	"github.com/vantez/engine/internal/clients/bcb"
	"github.com/vantez/engine/internal/database"
	"github.com/vantez/engine/internal/modules/engine"
	"github.com/vantez/engine/internal/modules/fixedincome"
	"github.com/vantez/engine/internal/modules/simulation"
	"github.com/vantez/engine/internal/modules/tags"
	"github.com/vantez/engine/internal/scheduler"
	"github.com/vantez/engine/internal/workers"
)

// Container holds every long-lived dependency of the service
type Container struct {
	// Databases
	CacheDB *database.DB

	// Repositories
	ClientDataRepo *clientdata.Repository

	// Clients
	BenchmarkClient *bcb.Client

	// Services
	Classifier    *tags.Classifier
	AnalysisPool  *workers.Pool
	EngineService *engine.Service
	Projector     *fixedincome.Projector
	Simulator     *simulation.Simulator

	Scheduler *scheduler.Scheduler
}

// Close releases the databases held by the container
func (c *Container) Close() error {
	if c == nil || c.CacheDB == nil {
		return nil
	}
	return c.CacheDB.Close()
}

// JobInstances holds the registered jobs for manual triggering via API
type JobInstances struct {
	RefreshBenchmarkRate scheduler.Job
	ClientDataCleanup    scheduler.Job
	CheckCacheDatabase   scheduler.Job
}

// All returns the jobs in registration order
func (j *JobInstances) All() []scheduler.Job {
	if j == nil {
		return nil
	}
	return []scheduler.Job{j.RefreshBenchmarkRate, j.ClientDataCleanup, j.CheckCacheDatabase}
}
