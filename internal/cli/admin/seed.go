package admin

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/deskhive/deskhive/internal/config"
	"github.com/deskhive/deskhive/internal/database"
	"github.com/deskhive/deskhive/internal/domain"
	"github.com/deskhive/deskhive/internal/repository"
	"github.com/deskhive/deskhive/internal/service"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed demo users and starter knowledge items",
		Long:  "Create one demo account per role and a small starter knowledge base. Existing rows are left alone.",
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	userRepo := repository.NewUserRepository(pool)
	knowledgeRepo := repository.NewKnowledgeRepository(pool)
	now := time.Now().UTC()

	users := []*domain.User{
		{
			Email:    "admin@example.com",
			FullName: "Администратор Системы",
			Role:     domain.RoleAdmin,
		},
		{
			Email:    "specialist@example.com",
			FullName: "Иванов Иван Иванович",
			Role:     domain.RoleSpecialist,
		},
		{
			Email:    "user@example.com",
			FullName: "Петров Петр Петрович",
			Role:     domain.RoleClient,
		},
	}
	for _, u := range users {
		if _, err := userRepo.GetByEmail(ctx, u.Email); err == nil {
			log.Printf("seed: user %s already exists", u.Email)
			continue
		} else if err != domain.ErrUserNotFound {
			return err
		}

		u.ID = uuid.NewString()
		u.PasswordHash = service.HashPassword("password123")
		u.IsActive = true
		u.CreatedAt = now
		if err := userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		log.Printf("seed: created %s user %s (id %s)", u.Role, u.Email, u.ID)
	}

	itemCount, _, err := knowledgeRepo.Stats(ctx)
	if err != nil {
		return err
	}
	if itemCount > 0 {
		log.Printf("seed: knowledge base already has %d items, skipping", itemCount)
		return nil
	}

	items := []*domain.KnowledgeItem{
		{
			Problem:   "Не включается компьютер",
			Solution:  "Проверить питание и кабель, затем нажать кнопку включения",
			Frequency: 5,
		},
		{
			Problem:   "Медленно работает интернет",
			Solution:  "Перезагрузить роутер и проверить кабель",
			Frequency: 3,
		},
		{
			Problem:   "Принтер не печатает",
			Solution:  "Проверить подключение, очередь печати и драйвер",
			Frequency: 2,
		},
	}
	for _, item := range items {
		item.ID = uuid.NewString()
		item.CreatedAt = now
		if err := knowledgeRepo.Insert(ctx, item); err != nil {
			return fmt.Errorf("failed to create knowledge item: %w", err)
		}
	}
	log.Printf("seed: created %d knowledge items", len(items))

	return nil
}
