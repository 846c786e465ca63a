// Command console is the interactive menu for managing portfolios from a
// terminal.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gthiam/portfolio-analyzer/internal/config"
	"github.com/gthiam/portfolio-analyzer/internal/database"
	"github.com/gthiam/portfolio-analyzer/internal/modules/ledger"
	"github.com/gthiam/portfolio-analyzer/internal/modules/market"
	"github.com/gthiam/portfolio-analyzer/internal/modules/portfolio"
	"github.com/gthiam/portfolio-analyzer/pkg/logger"
)

type console struct {
	service *portfolio.Service
	in      *bufio.Scanner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	// Keep structured logs out of the menu unless debugging is requested.
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := market.InitSchema(db.Conn()); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize schema:", err)
		os.Exit(1)
	}
	if err := portfolio.InitSchema(db.Conn()); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize schema:", err)
		os.Exit(1)
	}
	if err := ledger.InitSchema(db.Conn()); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize schema:", err)
		os.Exit(1)
	}

	stockRepo := market.NewStockRepository(db.Conn(), log)
	portfolioRepo := portfolio.NewPortfolioRepository(db.Conn(), log)
	positionRepo := portfolio.NewPositionRepository(db.Conn(), log)
	transactionRepo := ledger.NewTransactionRepository(db.Conn(), log)
	service := portfolio.NewService(portfolioRepo, positionRepo, stockRepo, transactionRepo, log)

	c := &console{
		service: service,
		in:      bufio.NewScanner(os.Stdin),
	}
	c.run()
}

func (c *console) run() {
	fmt.Println("Welcome to Investment Portfolio Analyzer")

	for {
		printMenu()
		choice := c.readInt("Enter your choice: ")

		var err error
		switch choice {
		case 1:
			err = c.createPortfolio()
		case 2:
			err = c.viewPortfolios()
		case 3:
			err = c.addStock()
		case 4:
			err = c.addPosition()
		case 5:
			err = c.viewPortfolioDetails()
		case 6:
			err = c.updateStockPrice()
		case 7:
			err = c.viewTransactions()
		case 8:
			err = c.deletePortfolio()
		case 0:
			fmt.Println("Thank you for using Investment Portfolio Analyzer!")
			return
		default:
			fmt.Println("Invalid option. Please try again.")
		}

		if err != nil {
			fmt.Println("Error:", err)
		}
	}
}

func printMenu() {
	fmt.Println("\n===== MENU =====")
	fmt.Println("1. Create new portfolio")
	fmt.Println("2. View all portfolios")
	fmt.Println("3. Add stock to registry")
	fmt.Println("4. Add position to portfolio")
	fmt.Println("5. View portfolio details")
	fmt.Println("6. Update stock price")
	fmt.Println("7. View portfolio transactions")
	fmt.Println("8. Delete portfolio")
	fmt.Println("0. Exit")
	fmt.Println("================")
}

func (c *console) createPortfolio() error {
	fmt.Println("\n--- Create New Portfolio ---")
	name := c.readString("Enter portfolio name: ")
	description := c.readString("Enter description: ")

	p, err := c.service.CreatePortfolio(name, description)
	if err != nil {
		return err
	}

	fmt.Println("Portfolio created with ID:", p.ID)
	return nil
}

func (c *console) viewPortfolios() error {
	fmt.Println("\n--- All Portfolios ---")

	portfolios, err := c.service.GetAllPortfolios()
	if err != nil {
		return err
	}

	if len(portfolios) == 0 {
		fmt.Println("No portfolios found.")
		return nil
	}

	for _, p := range portfolios {
		fmt.Printf("%s: %s\n", p.ID, p.Name)
	}
	return nil
}

func (c *console) addStock() error {
	fmt.Println("\n--- Add Stock ---")
	symbol := c.readString("Enter stock symbol: ")
	name := c.readString("Enter company name: ")
	sector := c.readString("Enter sector: ")
	price := c.readFloat("Enter current price: ")

	stock, err := c.service.AddStock(symbol, name, sector, price)
	if err != nil {
		return err
	}

	fmt.Println("Stock saved with ID:", stock.ID)
	return nil
}

func (c *console) addPosition() error {
	fmt.Println("\n--- Add Position ---")
	portfolioID := c.readString("Enter portfolio ID: ")
	symbol := c.readString("Enter stock symbol: ")
	quantity := c.readFloat("Enter quantity: ")
	price := c.readFloat("Enter purchase price: ")

	if _, err := c.service.AddPosition(portfolioID, symbol, quantity, price); err != nil {
		return err
	}

	fmt.Println("Position added successfully.")
	return nil
}

func (c *console) viewPortfolioDetails() error {
	fmt.Println("\n--- Portfolio Details ---")
	portfolioID := c.readString("Enter portfolio ID: ")

	p, err := c.service.GetPortfolio(portfolioID)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Println("Portfolio not found.")
		return nil
	}

	fmt.Println("Portfolio:", p.Name)
	fmt.Println("Description:", p.Description)

	if len(p.Positions) == 0 {
		fmt.Println("No positions in this portfolio.")
		return nil
	}

	report := portfolio.BuildReport(*p)

	fmt.Println("\nPositions:")
	for _, pos := range report.Positions {
		fmt.Printf("%-6s %-20s %8.2f shares @ $%-8.2f Current: $%-8.2f P/L: $%.2f (%.2f%%)\n",
			pos.Symbol,
			pos.CompanyName,
			pos.Quantity,
			pos.PurchasePrice,
			pos.CurrentPrice,
			pos.UnrealizedPnL,
			pos.ReturnPct)
	}

	fmt.Println("\nPortfolio Statistics:")
	fmt.Printf("Total Value: $%.2f\n", report.TotalValue)
	fmt.Printf("Total Cost: $%.2f\n", report.TotalCost)
	fmt.Printf("Total P/L: $%.2f\n", report.TotalPnL)
	fmt.Printf("Return: %.2f%%\n", report.ReturnPct)

	fmt.Println("\nSector Allocation:")
	sectors := make([]string, 0, len(report.SectorAllocation))
	for sector := range report.SectorAllocation {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)
	for _, sector := range sectors {
		fmt.Printf("%s: %.2f%%\n", sector, report.SectorAllocation[sector])
	}

	return nil
}

func (c *console) updateStockPrice() error {
	fmt.Println("\n--- Update Stock Price ---")
	symbol := c.readString("Enter stock symbol: ")
	price := c.readFloat("Enter new price: ")

	if err := c.service.UpdateStockPrice(symbol, price); err != nil {
		return err
	}

	fmt.Println("Stock price updated successfully.")
	return nil
}

func (c *console) viewTransactions() error {
	fmt.Println("\n--- Portfolio Transactions ---")
	portfolioID := c.readString("Enter portfolio ID: ")

	transactions, err := c.service.Transactions(portfolioID)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		fmt.Println("No transactions recorded.")
		return nil
	}

	for _, tx := range transactions {
		fmt.Printf("%s  %-4s %-6s %8.2f @ $%-8.2f total $%.2f\n",
			tx.TransactionDate.Format("2006-01-02 15:04"),
			tx.Type,
			tx.Symbol,
			tx.Quantity,
			tx.Price,
			tx.Amount())
	}

	return nil
}

func (c *console) deletePortfolio() error {
	fmt.Println("\n--- Delete Portfolio ---")
	portfolioID := c.readString("Enter portfolio ID: ")

	deleted, err := c.service.DeletePortfolio(portfolioID)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println("Portfolio not found.")
		return nil
	}

	fmt.Println("Portfolio deleted.")
	return nil
}

// Input helpers

func (c *console) readString(prompt string) string {
	fmt.Print(prompt)
	if !c.in.Scan() {
		// EOF on stdin: nothing more to read, leave cleanly.
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) readInt(prompt string) int {
	for {
		raw := c.readString(prompt)
		value, err := strconv.Atoi(raw)
		if err == nil {
			return value
		}
		fmt.Println("Please enter a valid number.")
	}
}

func (c *console) readFloat(prompt string) float64 {
	for {
		raw := c.readString(prompt)
		value, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return value
		}
		fmt.Println("Please enter a valid number.")
	}
}
