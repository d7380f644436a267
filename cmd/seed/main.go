package main

import (
	"context"
	"log"
	"os"

	"fauve-storefront/internal/config"
	"fauve-storefront/internal/db"
	"fauve-storefront/internal/docstore"
	"fauve-storefront/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var store docstore.Store
	switch cfg.DocStoreDriver {
	case "mongo":
		mongoStore, err := docstore.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			logger.Fatalf("connect mongo: %v", err)
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				logger.Printf("close mongo: %v", err)
			}
		}()
		store = mongoStore
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect db: %v", err)
		}
		defer pool.Close()
		store = docstore.NewPostgres(pool)
	default:
		logger.Fatalf("seeding needs a persistent document store, set DOCSTORE_DRIVER to postgres or mongo")
	}

	if err := seed.Apply(ctx, store); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
