package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gthiam/portfolio-analyzer/internal/domain"
	"github.com/gthiam/portfolio-analyzer/internal/modules/market"
)

const epsilon = 1e-9

func stock(symbol, sector string, price float64) market.Stock {
	return market.Stock{
		ID:           "stock-" + symbol,
		Symbol:       symbol,
		CompanyName:  symbol + " Inc",
		Sector:       sector,
		CurrentPrice: price,
	}
}

func position(s market.Stock, quantity, purchasePrice float64) Position {
	return Position{
		Stock:         s,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
	}
}

func TestPositionValue(t *testing.T) {
	p := position(stock("AAPL", "Technology", 150.00), 10, 140.00)

	assert.InDelta(t, 1500.00, PositionValue(p), epsilon)
	assert.InDelta(t, 1400.00, PositionCost(p), epsilon)
}

func TestPositionPnL_MatchesValueMinusCost(t *testing.T) {
	positions := []Position{
		position(stock("AAPL", "Technology", 150.00), 10, 140.00),
		position(stock("XOM", "Energy", 80.00), 5, 95.00), // losing position
		position(stock("FRAC", "Technology", 3.33), 0.75, 2.5),
	}

	for _, p := range positions {
		assert.InDelta(t, PositionValue(p)-p.Quantity*p.PurchasePrice, PositionPnL(p), epsilon)
	}
}

func TestPositionPnL_Negative(t *testing.T) {
	p := position(stock("XOM", "Energy", 80.00), 5, 95.00)

	assert.InDelta(t, -75.00, PositionPnL(p), epsilon)
}

func TestPositionReturnPct(t *testing.T) {
	p := position(stock("AAPL", "Technology", 150.00), 10, 140.00)

	pct, err := PositionReturnPct(p)
	require.NoError(t, err)
	assert.InDelta(t, 7.142857142857143, pct, 1e-6)
}

func TestPositionReturnPct_ZeroPurchasePrice(t *testing.T) {
	p := position(stock("FREE", "Misc", 10.00), 1, 0)

	_, err := PositionReturnPct(p)
	assert.ErrorIs(t, err, domain.ErrZeroPurchasePrice)
}

func TestTotals_EmptyPortfolio(t *testing.T) {
	p := Portfolio{ID: "p1", Name: "Empty"}

	assert.Zero(t, TotalValue(p))
	assert.Zero(t, TotalCost(p))
	assert.Zero(t, TotalPnL(p))
	assert.Zero(t, ReturnPct(p))
	assert.Empty(t, SectorAllocation(p))
}

func TestTotalPnL_EqualsValueMinusCost(t *testing.T) {
	p := Portfolio{
		Positions: []Position{
			position(stock("AAPL", "Technology", 150.00), 10, 140.00),
			position(stock("XOM", "Energy", 100.00), 5, 95.00),
			position(stock("JNJ", "Healthcare", 160.25), 3.5, 170.10),
		},
	}

	assert.InDelta(t, TotalValue(p)-TotalCost(p), TotalPnL(p), epsilon)
}

func TestReturnPct_Portfolio(t *testing.T) {
	p := Portfolio{
		Positions: []Position{
			position(stock("AAPL", "Technology", 150.00), 10, 100.00), // cost 1000, value 1500
		},
	}

	assert.InDelta(t, 50.0, ReturnPct(p), epsilon)
}

func TestSectorAllocation_TwoSectors(t *testing.T) {
	p := Portfolio{
		Positions: []Position{
			position(stock("AAPL", "Technology", 150.00), 10, 140.00), // value 1500
			position(stock("XOM", "Energy", 100.00), 5, 95.00),        // value 500
		},
	}

	allocation := SectorAllocation(p)
	require.Len(t, allocation, 2)
	assert.InDelta(t, 75.0, allocation["Technology"], epsilon)
	assert.InDelta(t, 25.0, allocation["Energy"], epsilon)
}

func TestSectorAllocation_SumsToOneHundred(t *testing.T) {
	p := Portfolio{
		Positions: []Position{
			position(stock("AAPL", "Technology", 150.00), 10, 140.00),
			position(stock("MSFT", "Technology", 410.00), 2.5, 395.00),
			position(stock("XOM", "Energy", 101.37), 7, 95.00),
			position(stock("JNJ", "Healthcare", 160.25), 3, 170.10),
		},
	}

	total := 0.0
	for _, pct := range SectorAllocation(p) {
		total += pct
	}
	assert.InDelta(t, 100.0, total, 1e-6)
}

func TestSectorAllocation_SameStockTwice(t *testing.T) {
	// The same stock may appear in multiple positions; its sector
	// accumulates across both.
	aapl := stock("AAPL", "Technology", 100.00)
	p := Portfolio{
		Positions: []Position{
			position(aapl, 5, 90.00),  // value 500
			position(aapl, 10, 95.00), // value 1000
			position(stock("XOM", "Energy", 100.00), 5, 95.00), // value 500
		},
	}

	allocation := SectorAllocation(p)
	assert.InDelta(t, 75.0, allocation["Technology"], epsilon)
	assert.InDelta(t, 25.0, allocation["Energy"], epsilon)
}

func TestSectorAllocation_ZeroTotalValue(t *testing.T) {
	// All prices at zero: allocation is undefined, not a division by zero.
	p := Portfolio{
		Positions: []Position{
			position(stock("ZERO", "Technology", 0), 10, 5.00),
		},
	}

	assert.Empty(t, SectorAllocation(p))
}

func TestBuildReport(t *testing.T) {
	p := Portfolio{
		ID:   "p1",
		Name: "Tech",
		Positions: []Position{
			position(stock("AAPL", "Technology", 150.00), 10, 140.00),
			position(stock("XOM", "Energy", 100.00), 5, 95.00),
		},
	}

	report := BuildReport(p)

	assert.Equal(t, "p1", report.PortfolioID)
	assert.Equal(t, "Tech", report.Name)
	assert.InDelta(t, 2000.00, report.TotalValue, epsilon)
	assert.InDelta(t, 1875.00, report.TotalCost, epsilon)
	assert.InDelta(t, 125.00, report.TotalPnL, epsilon)
	assert.InDelta(t, report.TotalValue-report.TotalCost, report.TotalPnL, epsilon)

	require.Len(t, report.Positions, 2)
	assert.Equal(t, "AAPL", report.Positions[0].Symbol)
	assert.InDelta(t, 1500.00, report.Positions[0].CurrentValue, epsilon)
	assert.InDelta(t, 100.00, report.Positions[0].UnrealizedPnL, epsilon)
	assert.InDelta(t, 7.14, report.Positions[0].ReturnPct, 0.01)

	assert.InDelta(t, 75.0, report.SectorAllocation["Technology"], epsilon)
	assert.InDelta(t, 25.0, report.SectorAllocation["Energy"], epsilon)
}

func TestBuildReport_EmptyPortfolio(t *testing.T) {
	report := BuildReport(Portfolio{ID: "p1", Name: "Empty"})

	assert.Zero(t, report.TotalValue)
	assert.Zero(t, report.TotalCost)
	assert.Zero(t, report.TotalPnL)
	assert.Zero(t, report.ReturnPct)
	assert.Empty(t, report.SectorAllocation)
	assert.Empty(t, report.Positions)
}
