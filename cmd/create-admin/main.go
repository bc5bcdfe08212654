package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/digiwolf/leads/internal/config"
	"github.com/digiwolf/leads/internal/infra/auth"
	"github.com/digiwolf/leads/internal/infra/database"
	"github.com/digiwolf/leads/internal/infra/logger"
	"github.com/digiwolf/leads/internal/usecase"
)

const (
	defaultEmail    = "admin@digiwolf.com"
	defaultName     = "Admin User"
	defaultPassword = "admin123"
)

func main() {
	email := flag.String("email", defaultEmail, "admin email")
	name := flag.String("name", defaultName, "admin display name")
	password := flag.String("password", defaultPassword, "admin password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuração inválida:", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, dialect, err := database.NewDBConnection(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("falha ao conectar no banco")
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, dialect); err != nil {
		logger.Log.Fatal().Err(err).Msg("falha na migração")
	}

	uc := usecase.NewAdminUseCase(
		database.NewAdminRepository(db, dialect),
		auth.NewJWTManager(cfg.JWTSecret, 0),
	)

	user, err := uc.ProvisionAdmin(ctx, *email, *name, *password)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("falha ao criar admin")
	}

	fmt.Println("Admin user created successfully!")
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Name: %s\n", user.Name)
	if *password == defaultPassword {
		fmt.Println("WARNING: change the default password after first login.")
	}
}
