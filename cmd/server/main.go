package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/trendora/recommendation-service/internal/catalog"
	"github.com/trendora/recommendation-service/internal/config"
	"github.com/trendora/recommendation-service/internal/decor"
	"github.com/trendora/recommendation-service/internal/handler"
	"github.com/trendora/recommendation-service/internal/model"
	"github.com/trendora/recommendation-service/internal/recommend"
	"github.com/trendora/recommendation-service/internal/repository"
	"github.com/trendora/recommendation-service/internal/router"
	"github.com/trendora/recommendation-service/internal/service"
	"github.com/trendora/recommendation-service/internal/session"
	"github.com/trendora/recommendation-service/seeds"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	ctx := context.Background()

	// ------------ Catalog ---------------
	// Both sources are required; the process cannot serve without them.
	cat, err := catalog.Load(cfg.TrendingCSV, cfg.CatalogCSV)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	log.Printf("loaded catalog: %d products, %d trending", cat.Len(), cat.TrendingLen())

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to parse database config %v", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("failed to connect to database %v", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatalf("database not ready: %v", err)
	}
	log.Println("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			log.Fatalf("failed to migrate down %v", err)
		}
		log.Println("migrations dropped")
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		log.Fatalf("failed to migrate up %v", err)
	}

	repo := repository.New(pool)

	// ------------ Setup Seed Data ---------------
	if err := checkSeed(ctx, pool, repo); err != nil {
		log.Fatalf("failed to check seed %v", err)
	}

	// ------------ Redis sessions ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to parse redis url %v", err)
	}
	sessions := session.NewStore(redis.NewClient(redisOpts), cfg.SessionTTL)
	if err := sessions.Ping(ctx); err != nil {
		log.Fatalf("redis not ready: %v", err)
	}
	log.Println("connected to Redis")

	// ------------ Wiring ---------------
	embedder := model.NewClient(cfg.EmbeddingURL, cfg.EmbeddingModel)
	lexical := recommend.NewLexical(cat)
	semantic := recommend.NewSemantic(cat, embedder)
	svc := service.NewService(cat, lexical, semantic, repo, decor.NewRandom())

	tmpl, err := handler.ParseTemplates(cfg.TemplateGlob)
	if err != nil {
		log.Fatalf("failed to parse templates %v", err)
	}
	h := handler.NewHandler(svc, sessions, tmpl)

	// ---------------- Server --------------------
	log.Printf("Server running on %s", cfg.Addr())
	log.Fatal(http.ListenAndServe(cfg.Addr(), router.Setup(h, cfg.StaticDir)))
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Printf("waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations dropped successfully")
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations applied successfully")
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, repo *repository.Repository) error {
	count, err := repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("check users count: %w", err)
	}
	if count > 0 {
		log.Printf("database already seeded (%d users), skipping", count)
		return nil
	}
	return seeds.Setup(ctx, pool)
}
