// Package seed populates the store with demo users and transactions.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/ledgerd/ledgerd/internal/auth"
	"github.com/ledgerd/ledgerd/internal/model"
	"github.com/ledgerd/ledgerd/internal/repository"
)

const (
	demoUsers           = 5
	transactionsPerUser = 10
)

var demoDescriptions = []string{
	"Coffee shop payment",
	"Salary deposit",
	"ATM withdrawal",
	"Online shopping",
	"Restaurant bill",
	"Utility payment",
	"Transfer to friend",
	"Subscription payment",
	"Freelance income",
	"Gas station payment",
}

// Run seeds demo data. It is idempotent: when any user already exists
// the seed is skipped entirely.
func Run(ctx context.Context, repo *repository.Repository, logger *slog.Logger) error {
	existing, err := repo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("database already seeded, skipping")
		return nil
	}

	users := make([]*model.User, 0, demoUsers)
	for i := 1; i <= demoUsers; i++ {
		key, err := auth.GenerateAPIKey()
		if err != nil {
			return fmt.Errorf("generate demo api key: %w", err)
		}

		user := &model.User{
			Username: fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			APIKey:   key,
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create demo user %s: %w", user.Username, err)
		}
		users = append(users, user)

		logger.Info("demo user created",
			"username", user.Username,
			"api_key", user.APIKey,
		)
	}

	total := 0
	for _, user := range users {
		for i := 0; i < transactionsPerUser; i++ {
			desc := demoDescriptions[rand.Intn(len(demoDescriptions))]
			tx := &model.Transaction{
				UserID:      user.ID,
				Amount:      randomAmount(),
				Description: &desc,
				Type:        model.TransactionTypes[rand.Intn(len(model.TransactionTypes))],
			}
			if err := repo.CreateTransaction(ctx, tx); err != nil {
				return fmt.Errorf("create demo transaction: %w", err)
			}
			total++
		}
	}

	logger.Info("database seeded",
		"users", len(users),
		"transactions", total,
	)

	return nil
}

// randomAmount returns an amount between 10.00 and 1000.00 rounded to
// two decimal places.
func randomAmount() float64 {
	amount := 10.0 + rand.Float64()*990.0
	return math.Round(amount*100) / 100
}
