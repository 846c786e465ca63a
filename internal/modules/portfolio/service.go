package portfolio

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gthiam/portfolio-analyzer/internal/domain"
	"github.com/gthiam/portfolio-analyzer/internal/modules/ledger"
	"github.com/gthiam/portfolio-analyzer/internal/modules/market"
)

// Service orchestrates portfolio operations: entity creation and lookup,
// persistence through the repositories, and reporting through the valuation
// engine. All validation happens here, before anything touches the store.
type Service struct {
	portfolioRepo   *PortfolioRepository
	positionRepo    *PositionRepository
	stockRepo       *market.StockRepository
	transactionRepo *ledger.TransactionRepository
	log             zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(
	portfolioRepo *PortfolioRepository,
	positionRepo *PositionRepository,
	stockRepo *market.StockRepository,
	transactionRepo *ledger.TransactionRepository,
	log zerolog.Logger,
) *Service {
	return &Service{
		portfolioRepo:   portfolioRepo,
		positionRepo:    positionRepo,
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
		log:             log.With().Str("service", "portfolio").Logger(),
	}
}

// CreatePortfolio constructs and persists a new empty portfolio.
func (s *Service) CreatePortfolio(name, description string) (*Portfolio, error) {
	if name == "" {
		return nil, domain.Validationf("name", "must not be empty")
	}

	p := &Portfolio{
		Name:         name,
		Description:  description,
		CreationDate: time.Now().UTC().Truncate(time.Second),
	}

	if err := s.portfolioRepo.Save(p); err != nil {
		return nil, err
	}

	return p, nil
}

// AddStock is an idempotent upsert keyed by symbol. An existing stock gets a
// price update only when the price actually differs; otherwise it is
// returned unchanged. An unknown symbol creates a new stock.
func (s *Service) AddStock(symbol, companyName, sector string, currentPrice float64) (*market.Stock, error) {
	symbol = market.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, domain.Validationf("symbol", "must not be empty")
	}
	if currentPrice < 0 {
		return nil, domain.Validationf("currentPrice", "must not be negative, got %v", currentPrice)
	}

	existing, err := s.stockRepo.GetBySymbol(symbol)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.CurrentPrice != currentPrice {
			if err := s.stockRepo.UpdatePrice(symbol, currentPrice); err != nil {
				return nil, err
			}
			existing.CurrentPrice = currentPrice
			existing.LastUpdated = time.Now().UTC().Truncate(time.Second)
		}
		return existing, nil
	}

	stock := &market.Stock{
		Symbol:       symbol,
		CompanyName:  companyName,
		Sector:       sector,
		CurrentPrice: currentPrice,
	}
	if err := s.stockRepo.Save(stock); err != nil {
		return nil, err
	}

	return stock, nil
}

// AddPosition opens a position in a portfolio. Quantity and purchase price
// must be strictly positive; a zero purchase price would make the position's
// return percentage undefined, so it is rejected here instead. A BUY
// transaction is recorded alongside the position.
func (s *Service) AddPosition(portfolioID, symbol string, quantity, purchasePrice float64) (*Position, error) {
	if quantity <= 0 {
		return nil, domain.Validationf("quantity", "must be positive, got %v", quantity)
	}
	if purchasePrice <= 0 {
		return nil, domain.Validationf("purchasePrice", "must be positive, got %v", purchasePrice)
	}

	p, err := s.portfolioRepo.GetByID(portfolioID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPortfolioNotFound
	}

	stock, err := s.stockRepo.GetBySymbol(symbol)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrStockNotFound
	}

	position := &Position{
		Stock:         *stock,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		PurchaseDate:  time.Now().UTC().Truncate(time.Second),
	}

	if err := s.positionRepo.Save(portfolioID, position); err != nil {
		return nil, err
	}

	tx := &ledger.Transaction{
		PortfolioID: portfolioID,
		StockID:     stock.ID,
		Symbol:      stock.Symbol,
		Type:        ledger.TransactionBuy,
		Quantity:    quantity,
		Price:       purchasePrice,
	}
	if err := s.transactionRepo.Save(tx); err != nil {
		// The position is already durable; a failed journal entry should not
		// roll it back, but it must not pass silently either.
		s.log.Error().Err(err).Str("portfolio_id", portfolioID).Msg("Failed to record BUY transaction")
	}

	return position, nil
}

// GetPortfolio returns a portfolio with all its positions and their stocks
// resolved, or nil if not found.
func (s *Service) GetPortfolio(id string) (*Portfolio, error) {
	p, err := s.portfolioRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	positions, err := s.positionRepo.GetByPortfolio(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions for portfolio %s: %w", id, err)
	}
	p.Positions = positions

	return p, nil
}

// DeletePortfolio removes a portfolio; its positions are removed with it.
// Returns false when no portfolio has that ID. The transaction journal is
// deliberately kept as a historical record.
func (s *Service) DeletePortfolio(id string) (bool, error) {
	return s.portfolioRepo.Delete(id)
}

// GetAllPortfolios returns all portfolios in summary form.
func (s *Service) GetAllPortfolios() ([]Portfolio, error) {
	return s.portfolioRepo.GetAll()
}

// UpdateStockPrice sets a stock's current price. Unlike AddStock this is not
// an upsert: an unknown symbol is an error.
func (s *Service) UpdateStockPrice(symbol string, newPrice float64) error {
	if newPrice < 0 {
		return domain.Validationf("newPrice", "must not be negative, got %v", newPrice)
	}
	return s.stockRepo.UpdatePrice(symbol, newPrice)
}

// Report loads a portfolio and computes its aggregate valuation report.
func (s *Service) Report(portfolioID string) (*Report, error) {
	p, err := s.GetPortfolio(portfolioID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPortfolioNotFound
	}

	report := BuildReport(*p)
	return &report, nil
}

// Transactions returns the portfolio's trade journal, most recent first.
func (s *Service) Transactions(portfolioID string) ([]ledger.Transaction, error) {
	p, err := s.portfolioRepo.GetByID(portfolioID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPortfolioNotFound
	}
	return s.transactionRepo.GetByPortfolio(portfolioID)
}
