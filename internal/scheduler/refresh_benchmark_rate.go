package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/clients/bcb"
)

// BenchmarkRateFetcher queries the rate API, bypassing fresh cache entries
type BenchmarkRateFetcher interface {
	Fetch(ctx context.Context) (bcb.Quote, error)
}

// RefreshBenchmarkRateJob keeps the benchmark rate cache warm so requests
// never wait on the upstream API
type RefreshBenchmarkRateJob struct {
	fetcher BenchmarkRateFetcher
	timeout time.Duration
	log     zerolog.Logger
}

// NewRefreshBenchmarkRateJob creates a new RefreshBenchmarkRateJob
func NewRefreshBenchmarkRateJob(fetcher BenchmarkRateFetcher, log zerolog.Logger) *RefreshBenchmarkRateJob {
	return &RefreshBenchmarkRateJob{
		fetcher: fetcher,
		timeout: 30 * time.Second,
		log:     log.With().Str("job", "refresh_benchmark_rate").Logger(),
	}
}

// Name returns the job name
func (j *RefreshBenchmarkRateJob) Name() string {
	return "refresh_benchmark_rate"
}

// Run fetches the latest rate, which also refreshes the cache
func (j *RefreshBenchmarkRateJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	quote, err := j.fetcher.Fetch(ctx)
	if err != nil {
		j.log.Warn().Err(err).Msg("Benchmark rate refresh failed")
		return err
	}

	j.log.Info().
		Float64("rate", quote.Rate).
		Str("date", quote.Date).
		Msg("Benchmark rate refreshed")
	return nil
}
