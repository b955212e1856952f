// Command usertier switches a user between the FREE and PREMIUM tiers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/adapter/repo"
	"server/internal/domain"
)

func main() {
	var (
		idFlag     string
		emailFlag  string
		tierFlag   string
		activeFlag bool
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.StringVar(&tierFlag, "tier", "PREMIUM", "tier to assign (FREE, PREMIUM)")
	flag.BoolVar(&activeFlag, "active", true, "whether the subscription is active")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)
	tier := domain.SubscriptionTier(strings.ToUpper(strings.TrimSpace(tierFlag)))

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	if tier != domain.TierFree && tier != domain.TierPremium {
		exitWithError(fmt.Errorf("unsupported tier %q", tier))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	users := repo.NewUserRepository(pool)
	subscriptions := repo.NewSubscriptionRepository(pool)

	var user *domain.User
	if userID != "" {
		user, err = users.GetByID(ctx, userID)
	} else {
		user, err = users.GetByEmail(ctx, strings.ToLower(email))
	}
	if err != nil {
		exitWithError(fmt.Errorf("failed to load user: %w", err))
	}

	sub, err := subscriptions.Upsert(ctx, &domain.Subscription{
		UserID:   user.ID,
		Tier:     tier,
		IsActive: activeFlag,
	})
	if err != nil {
		exitWithError(fmt.Errorf("failed to update subscription: %w", err))
	}

	fmt.Printf("User %s (%s) set to tier %s (active=%v)\n", user.ID, user.Email, sub.Tier, sub.IsActive)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
