package services

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"billbox/internal/dto"
	"billbox/internal/models"
	"billbox/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// seedCategories is a fixed palette of plausible spending categories
var seedCategories = []struct {
	name  string
	color string
}{
	{"Groceries", "#2e7d32"},
	{"Rent", "#c62828"},
	{"Transport", "#1565c0"},
	{"Dining", "#ef6c00"},
	{"Entertainment", "#6a1b9a"},
	{"Utilities", "#00838f"},
}

var seedFrequencies = []string{
	models.FrequencyDaily,
	models.FrequencyWeekly,
	models.FrequencyMonthly,
}

type demoSeeder struct {
	userRepo      repositories.UserRepositoryInterface
	categoryRepo  repositories.CategoryRepositoryInterface
	recurringRepo repositories.RecurringRuleRepositoryInterface
	budgetRepo    repositories.BudgetRepositoryInterface
	ledger        LedgerServiceInterface
	logger        *slog.Logger
	rng           *rand.Rand
}

// NewDemoSeeder creates a SeederServiceInterface that fills the store with
// believable demo data
func NewDemoSeeder(
	userRepo repositories.UserRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	recurringRepo repositories.RecurringRuleRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	ledger LedgerServiceInterface,
	logger *slog.Logger,
) SeederServiceInterface {
	return &demoSeeder{
		userRepo:      userRepo,
		categoryRepo:  categoryRepo,
		recurringRepo: recurringRepo,
		budgetRepo:    budgetRepo,
		ledger:        ledger,
		logger:        logger,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed creates userCount demo users, each with categories, transactions,
// recurring rules and budgets
func (s *demoSeeder) Seed(userCount int) (*dto.SeedResult, error) {
	if userCount <= 0 {
		userCount = 3
	}

	result := &dto.SeedResult{}

	for i := 0; i < userCount; i++ {
		user := &models.User{
			Email:       gofakeit.Email(),
			DisplayName: gofakeit.Name(),
			Money:       decimal.Zero,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
		result.Users++

		var categories []models.Category
		for _, sc := range seedCategories {
			category := &models.Category{
				UserID: user.ID,
				Name:   sc.name,
				Color:  sc.color,
			}
			if err := s.categoryRepo.Create(category); err != nil {
				return nil, fmt.Errorf("failed to seed category: %w", err)
			}
			categories = append(categories, *category)
			result.Categories++
		}

		// Income first so spending leaves a plausible balance
		salary := decimal.NewFromFloat(gofakeit.Float64Range(1800, 4500)).Round(2)
		if _, err := s.ledger.CreateTransaction(user.ID, nil, salary, "Salary"); err != nil {
			return nil, fmt.Errorf("failed to seed income: %w", err)
		}
		result.Transactions++

		for j := 0; j < 8; j++ {
			category := categories[s.rng.Intn(len(categories))]
			value := decimal.NewFromFloat(-gofakeit.Float64Range(3, 180)).Round(2)
			if _, err := s.ledger.CreateTransaction(user.ID, &category.ID, value, gofakeit.ProductName()); err != nil {
				return nil, fmt.Errorf("failed to seed transaction: %w", err)
			}
			result.Transactions++
		}

		for j := 0; j < 2; j++ {
			rule := &models.RecurringRule{
				UserID:    user.ID,
				Amount:    decimal.NewFromFloat(-gofakeit.Float64Range(5, 60)).Round(2),
				Frequency: seedFrequencies[s.rng.Intn(len(seedFrequencies))],
				LastRun:   time.Now().UTC().AddDate(0, 0, -s.rng.Intn(45)),
			}
			if err := s.recurringRepo.Create(rule); err != nil {
				return nil, fmt.Errorf("failed to seed recurring rule: %w", err)
			}
			result.RecurringRules++
		}

		for _, category := range categories[:3] {
			budget := &models.Budget{
				UserID:       user.ID,
				CategoryID:   category.ID,
				BudgetAmount: decimal.NewFromFloat(gofakeit.Float64Range(100, 600)).Round(2),
				RealAmount:   decimal.NewFromFloat(gofakeit.Float64Range(0, 400)).Round(2),
				PeriodStart:  time.Now().UTC().AddDate(0, 0, -15),
				PeriodEnd:    time.Now().UTC().AddDate(0, 0, 15),
			}
			if _, err := s.budgetRepo.Upsert(budget); err != nil {
				return nil, fmt.Errorf("failed to seed budget: %w", err)
			}
			result.Budgets++
		}
	}

	s.logger.Info("demo data seeded",
		"users", result.Users,
		"categories", result.Categories,
		"transactions", result.Transactions)
	return result, nil
}
