package portfolio

import (
	"github.com/gthiam/portfolio-analyzer/internal/domain"
	"github.com/gthiam/portfolio-analyzer/pkg/formulas"
)

// Valuation engine: pure, stateless functions over a portfolio snapshot.
// Every call re-derives from the positions' current stock prices, so a price
// update is reflected on the next call. No rounding happens during
// accumulation; callers round for display only.

// PositionValue returns the current market value of a position.
func PositionValue(p Position) float64 {
	return p.Quantity * p.Stock.CurrentPrice
}

// PositionCost returns the acquisition cost of a position.
func PositionCost(p Position) float64 {
	return p.Quantity * p.PurchasePrice
}

// PositionPnL returns the unrealized profit or loss of a position.
// May be negative.
func PositionPnL(p Position) float64 {
	return PositionValue(p) - PositionCost(p)
}

// PositionReturnPct returns the percentage return of a position against its
// purchase price. A zero purchase price makes the ratio undefined and yields
// domain.ErrZeroPurchasePrice instead of a non-finite value. Positions
// created through the service are validated against this, so the error only
// surfaces for snapshots built by hand.
func PositionReturnPct(p Position) (float64, error) {
	if p.PurchasePrice == 0 {
		return 0, domain.ErrZeroPurchasePrice
	}
	return (p.Stock.CurrentPrice - p.PurchasePrice) / p.PurchasePrice * 100, nil
}

// TotalValue returns the sum of position values; 0 for an empty portfolio.
func TotalValue(p Portfolio) float64 {
	values := make([]float64, len(p.Positions))
	for i, pos := range p.Positions {
		values[i] = PositionValue(pos)
	}
	return formulas.Sum(values)
}

// TotalCost returns the sum of position costs; 0 for an empty portfolio.
func TotalCost(p Portfolio) float64 {
	costs := make([]float64, len(p.Positions))
	for i, pos := range p.Positions {
		costs[i] = PositionCost(pos)
	}
	return formulas.Sum(costs)
}

// TotalPnL returns the sum of unrealized P&L over all positions. It always
// equals TotalValue - TotalCost.
func TotalPnL(p Portfolio) float64 {
	pnls := make([]float64, len(p.Positions))
	for i, pos := range p.Positions {
		pnls[i] = PositionPnL(pos)
	}
	return formulas.Sum(pnls)
}

// ReturnPct returns the money-weighted return of the whole portfolio as a
// percentage of its cost. When the total cost is zero (empty portfolio) the
// ratio is undefined and 0 is returned as the documented sentinel.
func ReturnPct(p Portfolio) float64 {
	return formulas.PercentOf(TotalPnL(p), TotalCost(p))
}

// SectorAllocation returns, per distinct sector, the percentage of the
// portfolio's total value held in that sector. The percentages sum to 100
// within floating-point tolerance. When the total value is zero the
// allocation is undefined for every sector and an empty map is returned.
func SectorAllocation(p Portfolio) map[string]float64 {
	totalValue := TotalValue(p)
	if totalValue == 0 {
		return map[string]float64{}
	}

	allocation := make(map[string]float64)
	for _, pos := range p.Positions {
		allocation[pos.Stock.Sector] += formulas.PercentOf(PositionValue(pos), totalValue)
	}

	return allocation
}

// PositionReport is the per-position display tuple consumed by the console
// and the HTTP API.
type PositionReport struct {
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"company_name"`
	Sector        string  `json:"sector"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	CurrentPrice  float64 `json:"current_price"`
	CurrentValue  float64 `json:"current_value"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
	ReturnPct     float64 `json:"return_pct"`
}

// Report aggregates the portfolio statistics in one strongly-typed record.
type Report struct {
	PortfolioID      string             `json:"portfolio_id"`
	Name             string             `json:"name"`
	TotalValue       float64            `json:"total_value"`
	TotalCost        float64            `json:"total_cost"`
	TotalPnL         float64            `json:"total_pnl"`
	ReturnPct        float64            `json:"return_pct"`
	SectorAllocation map[string]float64 `json:"sector_allocation"`
	Positions        []PositionReport   `json:"positions"`
}

// BuildReport computes the full aggregate report for a portfolio snapshot.
func BuildReport(p Portfolio) Report {
	positions := make([]PositionReport, 0, len(p.Positions))
	for _, pos := range p.Positions {
		// Positions are validated at creation, so a zero purchase price
		// cannot appear here; guard anyway and fall back to the 0 sentinel.
		returnPct, err := PositionReturnPct(pos)
		if err != nil {
			returnPct = 0
		}

		positions = append(positions, PositionReport{
			Symbol:        pos.Stock.Symbol,
			CompanyName:   pos.Stock.CompanyName,
			Sector:        pos.Stock.Sector,
			Quantity:      pos.Quantity,
			PurchasePrice: pos.PurchasePrice,
			CurrentPrice:  pos.Stock.CurrentPrice,
			CurrentValue:  PositionValue(pos),
			UnrealizedPnL: PositionPnL(pos),
			ReturnPct:     returnPct,
		})
	}

	return Report{
		PortfolioID:      p.ID,
		Name:             p.Name,
		TotalValue:       TotalValue(p),
		TotalCost:        TotalCost(p),
		TotalPnL:         TotalPnL(p),
		ReturnPct:        ReturnPct(p),
		SectorAllocation: SectorAllocation(p),
		Positions:        positions,
	}
}
