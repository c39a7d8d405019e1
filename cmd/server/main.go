package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/loan-ledger/internal/auth"
	"github.com/iliyamo/loan-ledger/internal/config"
	"github.com/iliyamo/loan-ledger/internal/database"
	"github.com/iliyamo/loan-ledger/internal/handler"
	"github.com/iliyamo/loan-ledger/internal/ledger"
	"github.com/iliyamo/loan-ledger/internal/queue"
	"github.com/iliyamo/loan-ledger/internal/repository"
	"github.com/iliyamo/loan-ledger/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("database schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	loans := repository.NewLoanRepo(db)
	payments := repository.NewPaymentRepo(db)

	creds := auth.NewCredentials(users)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	gate := auth.NewGate(tokens, users)
	svc := ledger.New(loans, payments)

	if cfg.SeedUsersFile != "" {
		if err := seedUsers(context.Background(), creds, cfg.SeedUsersFile); err != nil {
			log.Fatalf("seed users: %v", err)
		}
	}

	rdb := config.NewRedisClient() // nil disables rate limiting and caching
	if rdb == nil {
		log.Print("redis unavailable; rate limiting and caching disabled")
	}

	if cfg.EventsEnabled {
		go func() {
			if err := queue.StartLedgerConsumer(); err != nil {
				log.Printf("ledger consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	router.Register(e, handler.NewAuthHandler(creds, tokens), handler.NewLoanHandler(svc, cfg.EventsEnabled), gate, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedUsers provisions users from a JSON file of {"email","password"}
// pairs. Registration is idempotent, so re-running the same file on every
// boot is harmless.
func seedUsers(ctx context.Context, creds *auth.Credentials, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var entries []struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	for _, e := range entries {
		if err := creds.Register(ctx, e.Email, e.Password); err != nil {
			return err
		}
	}
	log.Printf("seeded %d user(s) from %s", len(entries), path)
	return nil
}
