package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/database"
)

// CheckCacheDatabaseJob verifies the cache database is reachable and
// truncates its write-ahead log
type CheckCacheDatabaseJob struct {
	db  *database.DB
	log zerolog.Logger
}

// NewCheckCacheDatabaseJob creates a new CheckCacheDatabaseJob
func NewCheckCacheDatabaseJob(db *database.DB, log zerolog.Logger) *CheckCacheDatabaseJob {
	return &CheckCacheDatabaseJob{
		db:  db,
		log: log.With().Str("job", "check_cache_database").Logger(),
	}
}

// Name returns the job name
func (j *CheckCacheDatabaseJob) Name() string {
	return "check_cache_database"
}

// Run executes the check
func (j *CheckCacheDatabaseJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := j.db.QuickCheck(ctx); err != nil {
		j.log.Error().Err(err).Str("database", j.db.Name()).Msg("Cache database unreachable")
		return fmt.Errorf("database %s unreachable: %w", j.db.Name(), err)
	}

	if err := j.db.WALCheckpoint("TRUNCATE"); err != nil {
		// a busy checkpoint is retried on the next run
		j.log.Warn().Err(err).Str("database", j.db.Name()).Msg("WAL checkpoint failed")
		return nil
	}

	j.log.Debug().Str("database", j.db.Name()).Msg("Cache database OK")
	return nil
}
