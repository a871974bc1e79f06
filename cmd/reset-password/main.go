package main

import (
	"flag"
	"log/slog"
	"os"

	"go-retail-sales/internal/config"
	"go-retail-sales/internal/repository"
	"go-retail-sales/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "admin@example.com", "account to reset")
	password := flag.String("password", "", "new password (required)")
	flag.Parse()

	if len(*password) < 6 {
		slog.Error("password must be at least 6 characters")
		os.Exit(2)
	}

	cfg := config.Load()
	db, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepo(db)
	user, err := userRepo.FindByEmail(*email)
	if err != nil {
		slog.Error("user not found", "email", *email, "error", err)
		os.Exit(1)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	if err := userRepo.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		slog.Error("failed to update password", "email", *email, "error", err)
		os.Exit(1)
	}

	slog.Info("password reset", "email", *email)
}
