package market

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStalePriceAuditJob_Name(t *testing.T) {
	job := NewStalePriceAuditJob(nil, time.Hour, zerolog.New(nil))
	assert.Equal(t, "stale_price_audit", job.Name())
}

func TestStalePriceAuditJob_RunWithStaleStocks(t *testing.T) {
	repo := setupRepo(t)
	log := zerolog.New(nil).Level(zerolog.Disabled)

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(&Stock{Symbol: "OLD", CurrentPrice: 10, LastUpdated: old}))

	job := NewStalePriceAuditJob(repo, 24*time.Hour, log)
	assert.NoError(t, job.Run())
}

func TestStalePriceAuditJob_RunAllFresh(t *testing.T) {
	repo := setupRepo(t)
	log := zerolog.New(nil).Level(zerolog.Disabled)

	require.NoError(t, repo.Save(&Stock{Symbol: "AAPL", CurrentPrice: 150}))

	job := NewStalePriceAuditJob(repo, 24*time.Hour, log)
	assert.NoError(t, job.Run())
}
