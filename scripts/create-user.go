// Command create-user registers a user directly against the database and
// prints the issued API key. Useful for bootstrapping environments where
// the HTTP API is not reachable yet.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ledgerd/ledgerd/internal/auth"
	"github.com/ledgerd/ledgerd/internal/model"
	"github.com/ledgerd/ledgerd/internal/repository"
)

type output struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	APIKey   string `json:"api_key"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		username    = flag.String("username", "", "Username for the new user")
		email       = flag.String("email", "", "Email for the new user")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if strings.TrimSpace(*username) == "" || strings.TrimSpace(*email) == "" {
		fmt.Fprintln(os.Stderr, "-username and -email are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "apply migrations:", err)
		os.Exit(1)
	}

	key, err := auth.GenerateAPIKey()
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate api key:", err)
		os.Exit(1)
	}

	user := &model.User{
		Username: strings.TrimSpace(*username),
		Email:    strings.TrimSpace(*email),
		APIKey:   key,
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			fmt.Fprintf(os.Stderr, "username %s already taken\n", user.Username)
		case errors.Is(err, repository.ErrEmailExists):
			fmt.Fprintf(os.Stderr, "email %s already taken\n", user.Email)
		default:
			fmt.Fprintln(os.Stderr, "create user:", err)
		}
		os.Exit(1)
	}

	out := output{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		APIKey:   user.APIKey,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.APIKey)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
