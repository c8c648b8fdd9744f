package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/clientdata"
	"github.com/vantez/engine/internal/clients/bcb"
	"github.com/vantez/engine/internal/config"
	"github.com/vantez/engine/internal/modules/engine"
	"github.com/vantez/engine/internal/modules/fixedincome"
	"github.com/vantez/engine/internal/modules/simulation"
	"github.com/vantez/engine/internal/modules/tags"
	"github.com/vantez/engine/internal/scheduler"
	"github.com/vantez/engine/internal/workers"
)

// InitializeServices builds the repositories, clients and services on top
// of the initialized databases
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil || container.CacheDB == nil {
		return fmt.Errorf("container has no cache database")
	}

	container.ClientDataRepo = clientdata.NewRepository(container.CacheDB.Conn())

	container.BenchmarkClient = bcb.NewClient(
		cfg.BenchmarkRateURL,
		cfg.FallbackBenchmarkRate,
		container.ClientDataRepo,
		log,
	)

	container.Classifier = tags.NewClassifier(cfg.StateOwnedPrefixes, log)
	container.AnalysisPool = workers.NewPool(cfg.SimulationWorkers)
	container.EngineService = engine.NewService(cfg.Macro, container.Classifier, container.AnalysisPool, log)
	container.Projector = fixedincome.NewProjector(cfg.Macro, log)
	container.Simulator = simulation.NewSimulator(cfg.SimulationWorkers, log)

	container.Scheduler = scheduler.New(log)

	log.Info().
		Str("macro_version", cfg.Macro.Version).
		Int("workers", container.AnalysisPool.Size()).
		Msg("Services initialized")
	return nil
}
