package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/narwhalmedia/storefront/internal/config"
	"github.com/narwhalmedia/storefront/internal/product/repository"
	"github.com/narwhalmedia/storefront/internal/product/seed"
	"github.com/narwhalmedia/storefront/pkg/database"
)

func main() {
	var (
		count    = flag.Int("count", 40, "Number of products to generate")
		prune    = flag.Bool("prune", false, "Delete generated products instead of creating them")
		keep     = flag.Int("keep", 2, "Products to keep when pruning")
		seedFlag = flag.Uint64("seed", 0, "Random seed (0 picks one)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGormDB(&database.Config{
		Driver:     cfg.Database.Driver,
		Host:       cfg.Database.Host,
		Port:       cfg.Database.Port,
		User:       cfg.Database.User,
		Password:   cfg.Database.Password,
		Database:   cfg.Database.Database,
		SSLMode:    cfg.Database.SSLMode,
		SQLitePath: cfg.Database.SQLitePath,
		LogLevel:   database.ParseLogLevel(cfg.Database.LogLevel),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	repo := repository.NewGormRepository(db)

	if *prune {
		deleted, err := seed.Prune(ctx, repo, *keep)
		if err != nil {
			log.Fatalf("Failed to prune products: %v", err)
		}
		fmt.Printf("Deleted %d products\n", deleted)
		return
	}

	if err := seed.Insert(ctx, repo, seed.NewGenerator(*seedFlag), *count); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	fmt.Printf("Created %d products\n", *count)
}
