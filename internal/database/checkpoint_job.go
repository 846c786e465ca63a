package database

import (
	"github.com/rs/zerolog"
)

// CheckpointJob periodically truncates the WAL. With the connection pool
// keeping connections open, SQLite's automatic checkpointing alone can let
// the log file grow on a long-running process.
type CheckpointJob struct {
	db  *DB
	log zerolog.Logger
}

// NewCheckpointJob creates a new WAL checkpoint job
func NewCheckpointJob(db *DB, log zerolog.Logger) *CheckpointJob {
	return &CheckpointJob{
		db:  db,
		log: log.With().Str("job", "wal_checkpoint").Logger(),
	}
}

// Name returns the job name
func (j *CheckpointJob) Name() string {
	return "wal_checkpoint"
}

// Run executes the checkpoint
func (j *CheckpointJob) Run() error {
	if err := j.db.Checkpoint(); err != nil {
		return err
	}
	j.log.Debug().Str("path", j.db.Path()).Msg("WAL checkpoint completed")
	return nil
}
