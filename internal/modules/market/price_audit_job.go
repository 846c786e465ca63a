package market

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// StalePriceAuditJob logs stocks whose price has not been refreshed within
// the configured window. Prices only move through explicit updates, so a
// quiet symbol usually means someone forgot it exists.
type StalePriceAuditJob struct {
	stockRepo *StockRepository
	maxAge    time.Duration
	log       zerolog.Logger
}

// NewStalePriceAuditJob creates a new stale price audit job
func NewStalePriceAuditJob(stockRepo *StockRepository, maxAge time.Duration, log zerolog.Logger) *StalePriceAuditJob {
	return &StalePriceAuditJob{
		stockRepo: stockRepo,
		maxAge:    maxAge,
		log:       log.With().Str("job", "stale_price_audit").Logger(),
	}
}

// Name returns the job name
func (j *StalePriceAuditJob) Name() string {
	return "stale_price_audit"
}

// Run executes the audit
func (j *StalePriceAuditJob) Run() error {
	cutoff := time.Now().Add(-j.maxAge)

	stale, err := j.stockRepo.GetStale(cutoff)
	if err != nil {
		return fmt.Errorf("failed to find stale stocks: %w", err)
	}

	if len(stale) == 0 {
		j.log.Debug().Msg("All stock prices are fresh")
		return nil
	}

	for _, stock := range stale {
		j.log.Warn().
			Str("symbol", stock.Symbol).
			Time("last_updated", stock.LastUpdated).
			Msg("Stock price is stale")
	}

	j.log.Info().Int("count", len(stale)).Msg("Stale price audit completed")
	return nil
}
